// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"fmt"
	"reflect"
)

// KindIsBasic returns whether the given kind is a basic,
// non-composite kind (booleans, numbers and strings).
func KindIsBasic(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// KindIsNumber returns whether the given kind is an integer or float kind.
func KindIsNumber(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

// IsBasic returns whether the non-pointer version of the given
// type is a basic type (see [KindIsBasic]).
func IsBasic(typ reflect.Type) bool {
	typ = NonPointerType(typ)
	return typ != nil && KindIsBasic(typ.Kind())
}

// IsComposite returns whether the non-pointer version of the given type
// is a struct, slice, array or map, which are the kinds that can have
// addressable parts.
func IsComposite(typ reflect.Type) bool {
	typ = NonPointerType(typ)
	if typ == nil {
		return false
	}
	switch typ.Kind() {
	case reflect.Struct, reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

// IsSerializable returns whether values of the given type can be
// represented in a data file: everything except functions, channels
// and unsafe pointers, including through pointer and container types.
func IsSerializable(typ reflect.Type) bool {
	typ = NonPointerType(typ)
	if typ == nil {
		return false
	}
	switch typ.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return false
	case reflect.Slice, reflect.Array:
		return IsSerializable(typ.Elem())
	case reflect.Map:
		return IsSerializable(typ.Key()) && IsSerializable(typ.Elem())
	}
	return true
}

// Equal returns whether the two values are equal. Values that are
// comparable at run time (including through interfaces) are compared
// with ==, so pointers compare by identity. Everything else is
// compared with [reflect.DeepEqual]. Two invalid values are equal.
func Equal(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if a.Type() != b.Type() {
		return false
	}
	if a.Comparable() && b.Comparable() {
		return a.Equal(b)
	}
	if !a.CanInterface() || !b.CanInterface() {
		return false
	}
	return reflect.DeepEqual(a.Interface(), b.Interface())
}

// ToType returns a value of the given type holding the given value,
// which can be a [reflect.Value] or any other value. A nil value
// results in the zero value of the type. Values are assigned directly
// when assignable, and converted between numeric kinds and other
// convertible types otherwise. It returns an error if neither is possible.
func ToType(value any, typ reflect.Type) (reflect.Value, error) {
	var v reflect.Value
	if rv, ok := value.(reflect.Value); ok {
		v = rv
	} else {
		v = reflect.ValueOf(value)
	}
	if !v.IsValid() {
		return reflect.Zero(typ), nil
	}
	if v.Type().AssignableTo(typ) {
		if v.Type() == typ {
			return v, nil
		}
		nv := reflect.New(typ).Elem()
		nv.Set(v)
		return nv, nil
	}
	if v.Kind() == reflect.Interface && !v.IsNil() {
		return ToType(v.Elem(), typ)
	}
	if typ.Kind() != reflect.String && v.Type().ConvertibleTo(typ) {
		return v.Convert(typ), nil
	}
	if typ.Kind() == reflect.String && v.Kind() == reflect.String {
		return v.Convert(typ), nil
	}
	return reflect.Value{}, fmt.Errorf("reflectx.ToType: cannot use value of type %v as %v", v.Type(), typ)
}

// NewDefault returns a new default value of the given type, suitable
// for adding to a collection. Pointer types get a newly allocated
// element, maps and slices are made empty, and everything else is the
// zero value.
func NewDefault(typ reflect.Type) reflect.Value {
	switch typ.Kind() {
	case reflect.Pointer:
		return reflect.New(typ.Elem())
	case reflect.Map:
		return reflect.MakeMap(typ)
	case reflect.Slice:
		return reflect.MakeSlice(typ, 0, 0)
	}
	return reflect.Zero(typ)
}
