// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"reflect"
)

// These are a set of consistently named functions for navigating pointer
// and interface values within the reflect system.

// NonPointerType returns a non-pointer version of the given type.
func NonPointerType(typ reflect.Type) reflect.Type {
	if typ == nil {
		return typ
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}

// PointerType returns the pointer version of the given type
// if it is not already a pointer type.
func PointerType(typ reflect.Type) reflect.Type {
	if typ == nil {
		return typ
	}
	if typ.Kind() != reflect.Pointer {
		typ = reflect.PointerTo(typ)
	}
	return typ
}

// Indirect follows the given value through any pointers and interfaces
// until it reaches a concrete non-pointer value. It returns false if
// the value is invalid or a nil pointer or interface is encountered
// along the way.
func Indirect(v reflect.Value) (reflect.Value, bool) {
	for {
		if !v.IsValid() {
			return v, false
		}
		switch v.Kind() {
		case reflect.Pointer, reflect.Interface:
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		default:
			return v, true
		}
	}
}

// OnePointerValue returns a value that is exactly one pointer away
// from the concrete value behind v, following through pointers and
// interfaces. If the concrete value is not addressable, the pointer is
// to a copy of it. It returns an invalid value for nil values.
func OnePointerValue(v reflect.Value) reflect.Value {
	c, ok := Indirect(v)
	if !ok {
		return reflect.Value{}
	}
	if c.CanAddr() {
		return c.Addr()
	}
	pv := reflect.New(c.Type())
	pv.Elem().Set(c)
	return pv
}

// WritableInPlace returns whether a write into a part of the concrete
// value behind v (a struct field, slice element or map entry) would be
// visible through v. That is the case for values reached through a
// pointer, addressable values, slices and non-nil maps. Structs and
// arrays held by value inside an interface or a map are not, and must
// be copied, modified, and written back by their owner.
func WritableInPlace(v reflect.Value) bool {
	for v.IsValid() {
		switch v.Kind() {
		case reflect.Pointer:
			return !v.IsNil()
		case reflect.Interface:
			if v.IsNil() {
				return false
			}
			v = v.Elem()
		case reflect.Slice:
			return true
		case reflect.Map:
			return !v.IsNil()
		default:
			return v.CanSet()
		}
	}
	return false
}

// AddressableCopy returns a new settable value holding a shallow
// copy of the concrete value behind v, following through interfaces
// but not pointers.
func AddressableCopy(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	cp := reflect.New(v.Type()).Elem()
	cp.Set(v)
	return cp
}
