// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"cogentcore.org/inspect/attrs"
)

// GroupResolver resolves the properties in layout groups.
type GroupResolver interface {

	// GroupProperties returns the properties in the group of the
	// given kind that starts at the given property, starting with it.
	GroupProperties(p *Property, kind string) []*Property

	// Reset clears everything resolved.
	Reset()
}

// DefaultGroupResolver groups the property with an [attrs.BeginGroup]
// with the following siblings up to and including the one with the
// [attrs.EndGroup] that closes it. Groups of the same kind can be
// nested. A group that is never closed extends to the last sibling.
type DefaultGroupResolver struct {
	groups map[string][]*Property
}

func (gr *DefaultGroupResolver) GroupProperties(p *Property, kind string) []*Property {
	if g, ok := gr.groups[kind]; ok {
		return g
	}
	g := []*Property{p}
	if p.parent != nil && p.parent.children != nil {
		sibs := p.parent.children
		depth := 1
		for j := p.index; j < sibs.Len(); j++ {
			s := sibs.Get(j)
			list := s.Attributes()
			if j > p.index {
				depth += countGroups[*attrs.BeginGroup](list, kind, func(a *attrs.BeginGroup) string { return a.Kind })
				g = append(g, s)
			}
			depth -= countGroups[*attrs.EndGroup](list, kind, func(a *attrs.EndGroup) string { return a.Kind })
			if depth <= 0 {
				break
			}
		}
	}
	if gr.groups == nil {
		gr.groups = map[string][]*Property{}
	}
	gr.groups[kind] = g
	return g
}

func (gr *DefaultGroupResolver) Reset() {
	gr.groups = nil
}

// countGroups returns the number of attributes of type T
// of the given kind in the given list.
func countGroups[T any](list []any, kind string, kindOf func(T) string) int {
	n := 0
	for _, a := range list {
		if t, ok := a.(T); ok && kindOf(t) == kind {
			n++
		}
	}
	return n
}
