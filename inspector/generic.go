// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"fmt"
	"reflect"

	"cogentcore.org/inspect/attrs"
	"cogentcore.org/inspect/base/reflectx"
)

// member is a resolved member of a struct type, shared by all
// properties presented as that type.
type member struct {
	name     string
	typ      reflect.Type
	accessor ValueAccessor
	info     *MemberInfo
}

type registeredAccessor struct {
	name       string
	accessor   ValueAccessor
	attributes []any
}

// Accessors is a registry of synthetic accessors, which are added as
// members of their owner types after the fields. Trees use
// [DefaultAccessors] unless given another one with [WithAccessors].
type Accessors struct {
	byOwner map[reflect.Type][]registeredAccessor

	// version is incremented by every [Accessors.Add], so that trees
	// know to drop the members they have resolved.
	version uint64
}

// DefaultAccessors are the accessors used by trees without [WithAccessors].
var DefaultAccessors = NewAccessors()

// NewAccessors returns a new empty accessor registry.
func NewAccessors() *Accessors {
	return &Accessors{byOwner: map[reflect.Type][]registeredAccessor{}}
}

// Add registers a synthetic accessor with the given name and attributes
// as a member of the given owner type (or its element type for pointers).
func (a *Accessors) Add(owner reflect.Type, name string, acc ValueAccessor, attributes ...any) *Accessors {
	owner = reflectx.NonPointerType(owner)
	a.byOwner[owner] = append(a.byOwner[owner], registeredAccessor{name: name, accessor: acc, attributes: attributes})
	a.version++
	return a
}

// AddAccessor registers a synthetic accessor in [DefaultAccessors],
// typically in an init function.
func AddAccessor(owner reflect.Type, name string, acc ValueAccessor, attributes ...any) {
	DefaultAccessors.Add(owner, name, acc, attributes...)
}

// GenericResolver resolves the members of structs as children, in the
// order: fields (including those promoted from embedded structs), then
// registered accessors, then methods. Members that are hidden are
// skipped. Other members are included if they are serializable by
// default, or shown explicitly with [attrs.ShowInInspector]. Methods
// are never serializable, so they need an attribute such as
// [attrs.Button], and must have no arguments.
type GenericResolver struct {
	property *Property
	typ      reflect.Type
	infos    []*PropertyInfo
	names    map[string]int
}

func (gr *GenericResolver) Initialize(p *Property) error {
	typ := reflectx.NonPointerType(p.ValueType())
	if typ.Kind() != reflect.Struct {
		return fmt.Errorf("%v is not a struct", typ)
	}
	gr.property, gr.typ = p, typ
	ms := p.tree.members(typ)
	gr.infos = make([]*PropertyInfo, len(ms))
	gr.names = make(map[string]int, len(ms))
	for i, m := range ms {
		gr.infos[i] = &PropertyInfo{Name: m.name, Type: m.typ, Accessor: m.accessor, Member: m.info}
		gr.names[m.name] = i
	}
	return nil
}

func (gr *GenericResolver) Deinitialize() {
	gr.infos = nil
	gr.names = nil
}

func (gr *GenericResolver) Initialized() bool { return gr.infos != nil }

func (gr *GenericResolver) ChildCount() int { return len(gr.infos) }

func (gr *GenericResolver) ChildInfo(i int) *PropertyInfo { return gr.infos[i] }

func (gr *GenericResolver) ChildNameToIndex(name string) (int, error) {
	i, ok := gr.names[name]
	if !ok {
		return -1, fmt.Errorf("inspector: member %q of %v: %w", name, gr.typ, ErrNotFound)
	}
	return i, nil
}

// resolveMembers returns the members of the given struct type.
func resolveMembers(typ reflect.Type, reg *attrs.Registry, accs *Accessors) []*member {
	var ms []*member
	for _, f := range reflect.VisibleFields(typ) {
		if f.Name == "_" || !f.IsExported() || !reachable(typ, f) {
			continue
		}
		if f.Anonymous && reflectx.NonPointerType(f.Type).Kind() == reflect.Struct {
			continue // its fields are promoted
		}
		list := reg.Field(typ, f)
		if attrs.Has[*attrs.Hide](list) {
			continue
		}
		if !serializable(f) && !attrs.Has[*attrs.ShowInInspector](list) {
			continue
		}
		ms = append(ms, &member{
			name:     f.Name,
			typ:      f.Type,
			accessor: NewFieldAccessor(typ, f, attrs.Has[*attrs.ReadOnly](list)),
			info:     &MemberInfo{Kind: MemberField, Owner: typ, Field: f, Attributes: list},
		})
	}
	for _, ra := range accs.byOwner[typ] {
		list := append(append([]any{}, ra.attributes...), reg.Member(typ, ra.name)...)
		if attrs.Has[*attrs.Hide](list) {
			continue
		}
		ms = append(ms, &member{
			name:     ra.name,
			typ:      ra.accessor.ValueType(),
			accessor: ra.accessor,
			info:     &MemberInfo{Kind: MemberAccessor, Owner: typ, Attributes: list},
		})
	}
	pt := reflect.PointerTo(typ)
	for i := range pt.NumMethod() {
		m := pt.Method(i)
		if m.Type.NumIn() != 1 {
			continue
		}
		list := reg.Member(typ, m.Name)
		if len(list) == 0 || attrs.Has[*attrs.Hide](list) {
			continue
		}
		acc := NewMethodAccessor(pt, m)
		ms = append(ms, &member{
			name:     m.Name,
			typ:      acc.ValueType(),
			accessor: acc,
			info:     &MemberInfo{Kind: MemberMethod, Owner: typ, Method: m, Attributes: list},
		})
	}
	return ms
}

// reachable returns whether the given field can be set through the
// structs embedded along its index path, which is not the case for
// unexported embedded pointers.
func reachable(typ reflect.Type, f reflect.StructField) bool {
	for k := 1; k < len(f.Index); k++ {
		sf := typ.FieldByIndex(f.Index[:k])
		if !sf.IsExported() && sf.Type.Kind() == reflect.Pointer {
			return false
		}
	}
	return true
}

// serializable returns whether the given field would be saved by
// the usual encoders: it is not excluded by a tag, and its type
// can be represented in a data file.
func serializable(f reflect.StructField) bool {
	for _, key := range []string{"json", "yaml", "toml"} {
		if f.Tag.Get(key) == "-" {
			return false
		}
	}
	return reflectx.IsSerializable(f.Type)
}
