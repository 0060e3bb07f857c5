// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attrs

import (
	"reflect"

	"cogentcore.org/inspect/base/errors"
	"cogentcore.org/inspect/base/reflectx"
)

type memberKey struct {
	owner reflect.Type
	name  string
}

// Registry records attributes attached to members and types
// outside of their declarations.
type Registry struct {
	members map[memberKey][]any
	types   map[reflect.Type][]any
}

// Default is the registry used by inspectors that are
// not given another one.
var Default = NewRegistry()

// NewRegistry returns a new empty registry.
func NewRegistry() *Registry {
	return &Registry{members: map[memberKey][]any{}, types: map[reflect.Type][]any{}}
}

// AddMember attaches the given attributes to the member (field or method)
// with the given name on the given owner type. Pointer owner types are
// registered as their element type.
func (r *Registry) AddMember(owner reflect.Type, name string, list ...any) *Registry {
	k := memberKey{reflectx.NonPointerType(owner), name}
	r.members[k] = append(r.members[k], list...)
	return r
}

// AddType attaches the given attributes to the given type.
func (r *Registry) AddType(typ reflect.Type, list ...any) *Registry {
	r.types[typ] = append(r.types[typ], list...)
	return r
}

// Member returns all attributes of the member with the given name
// on the given owner type: those registered here, followed by those
// declared through [MemberAttributer] on the owner.
func (r *Registry) Member(owner reflect.Type, name string) []any {
	owner = reflectx.NonPointerType(owner)
	list := append([]any{}, r.members[memberKey{owner, name}]...)
	if ma, ok := zeroAs[MemberAttributer](owner); ok {
		list = append(list, ma.InspectorMemberAttributes()[name]...)
	}
	return list
}

// Field returns all attributes of the given struct field on the given
// owner type: those parsed from its tag followed by those of [Registry.Member].
// Tag parse errors are logged and the parsable items are kept.
func (r *Registry) Field(owner reflect.Type, f reflect.StructField) []any {
	list, err := Parse(f.Tag)
	errors.Log(err)
	return append(list, r.Member(owner, f.Name)...)
}

// Type returns all attributes of the given type: those registered
// for it (or for its element type if it is a pointer), followed by
// those declared through [TypeAttributer].
func (r *Registry) Type(typ reflect.Type) []any {
	if typ == nil {
		return nil
	}
	list := append([]any{}, r.types[typ]...)
	if nt := reflectx.NonPointerType(typ); nt != typ {
		list = append(list, r.types[nt]...)
	}
	if ta, ok := zeroAs[TypeAttributer](typ); ok {
		list = append(list, ta.InspectorAttributes()...)
	}
	return list
}

// zeroAs returns a zero value of the given type (or a new pointer to
// one) as a T, if either implements T. Interface types never do.
func zeroAs[T any](typ reflect.Type) (T, bool) {
	var zero T
	nt := reflectx.NonPointerType(typ)
	if nt.Kind() == reflect.Interface {
		return zero, false
	}
	pv := reflect.New(nt)
	if t, ok := pv.Elem().Interface().(T); ok {
		return t, true
	}
	if t, ok := pv.Interface().(T); ok {
		return t, true
	}
	return zero, false
}
