// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"reflect"
)

// ViewKinds are the kinds of [EntryView].
type ViewKinds int32

const (
	// DeclaredView presents values as the declared type of their slot.
	DeclaredView ViewKinds = iota

	// RuntimeView presents values as the concrete type they all
	// currently have, for slots of interface types.
	RuntimeView
)

// EntryView is the type a property presents the values of its
// [ValueEntry] as, which determines its children, attributes and
// drawers. Only slots of interface types can have a [RuntimeView].
// When the view of a property changes, the property is refreshed,
// discarding its children and everything resolved for the old type.
type EntryView struct {
	Kind ViewKinds
	Type reflect.Type
}

// viewFor returns the view for the current values of the given entry.
func viewFor(e *ValueEntry) EntryView {
	decl := e.BaseValueType()
	if decl.Kind() != reflect.Interface || e.ValueType() == decl {
		return EntryView{Kind: DeclaredView, Type: decl}
	}
	return EntryView{Kind: RuntimeView, Type: e.ValueType()}
}

func (v EntryView) String() string {
	if v.Kind == RuntimeView {
		return "runtime " + v.Type.String()
	}
	return "declared " + v.Type.String()
}
