// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"fmt"
	"reflect"

	"cogentcore.org/inspect/attrs"
	"cogentcore.org/inspect/base/reflectx"
	"github.com/samber/lo"
)

// AttributeSources are where an attribute of a property is declared.
type AttributeSources int32

const (
	// SourceMember is an attribute declared on the member
	// the property comes from.
	SourceMember AttributeSources = iota

	// SourceType is an attribute declared on the type the
	// values of the property are presented as.
	SourceType
)

func (as AttributeSources) String() string {
	if as == SourceType {
		return "Type"
	}
	return "Member"
}

// AttributeResolver resolves the attributes that apply to a property.
type AttributeResolver interface {

	// Attributes returns the attributes of the given property.
	Attributes(p *Property) []any

	// AttributeSource returns where the given attribute of the given
	// property is declared. It fails with [ErrNotFound] for attributes
	// the property does not have.
	AttributeSource(p *Property, a any) (AttributeSources, error)

	// Reset clears everything resolved.
	Reset()
}

// DefaultAttributeResolver resolves the member attributes of a
// property followed by the attributes of its value type, and keeps
// them until it is reset.
type DefaultAttributeResolver struct {
	list    []any
	sources []AttributeSources
	done    bool
}

func (ar *DefaultAttributeResolver) resolve(p *Property) {
	if ar.done {
		return
	}
	ar.done = true
	member := p.Info().MemberAttributes()
	typ := p.tree.attributes.Type(p.ValueType())
	ar.list = append(append([]any{}, member...), typ...)
	ar.sources = make([]AttributeSources, len(ar.list))
	for i := len(member); i < len(ar.list); i++ {
		ar.sources[i] = SourceType
	}
}

func (ar *DefaultAttributeResolver) Attributes(p *Property) []any {
	ar.resolve(p)
	return ar.list
}

func (ar *DefaultAttributeResolver) AttributeSource(p *Property, a any) (AttributeSources, error) {
	ar.resolve(p)
	_, i, ok := lo.FindIndexOf(ar.list, func(o any) bool { return sameAttribute(o, a) })
	if !ok {
		return SourceMember, fmt.Errorf("inspector: attribute %T of %q: %w", a, p.Path(), ErrNotFound)
	}
	return ar.sources[i], nil
}

func (ar *DefaultAttributeResolver) Reset() {
	ar.list, ar.sources, ar.done = nil, nil, false
}

// sameAttribute returns whether the given attributes are the same:
// identical for pointers, and equal otherwise.
func sameAttribute(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() == reflect.Pointer && vb.Kind() == reflect.Pointer {
		return va.Type() == vb.Type() && va.Pointer() == vb.Pointer()
	}
	return reflectx.Equal(va, vb)
}

// Attribute returns the first attribute of type T of the given property.
func Attribute[T any](p *Property) (T, bool) {
	return attrs.Get[T](p.Attributes())
}
