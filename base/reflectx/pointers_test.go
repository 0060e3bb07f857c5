// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pointersStruct struct {
	A int
}

func TestNonPointerType(t *testing.T) {
	assert.Equal(t, reflect.TypeFor[int](), NonPointerType(reflect.TypeFor[int]()))
	assert.Equal(t, reflect.TypeFor[int](), NonPointerType(reflect.TypeFor[*int]()))
	assert.Equal(t, reflect.TypeFor[int](), NonPointerType(reflect.TypeFor[**int]()))
	assert.Equal(t, reflect.TypeFor[any](), NonPointerType(reflect.TypeFor[*any]()))
	assert.Equal(t, nil, NonPointerType(reflect.TypeOf(nil)))
}

func TestPointerType(t *testing.T) {
	assert.Equal(t, reflect.TypeFor[*int](), PointerType(reflect.TypeFor[int]()))
	assert.Equal(t, reflect.TypeFor[*int](), PointerType(reflect.TypeFor[*int]()))
}

func TestIndirect(t *testing.T) {
	v := 1
	p := &v
	a := any(p)

	iv, ok := Indirect(reflect.ValueOf(&a))
	assert.True(t, ok)
	assert.Equal(t, 1, iv.Interface())
	assert.True(t, iv.CanSet())

	_, ok = Indirect(reflect.ValueOf((*int)(nil)))
	assert.False(t, ok)

	var an any
	_, ok = Indirect(reflect.ValueOf(&an))
	assert.False(t, ok)

	_, ok = Indirect(reflect.Value{})
	assert.False(t, ok)
}

func TestOnePointerValue(t *testing.T) {
	s := &pointersStruct{A: 2}
	pv := OnePointerValue(reflect.ValueOf(s))
	assert.Equal(t, s, pv.Interface())

	var a any = pointersStruct{A: 3}
	pv = OnePointerValue(reflect.ValueOf(a))
	assert.Equal(t, reflect.TypeFor[*pointersStruct](), pv.Type())
	assert.Equal(t, 3, pv.Elem().Field(0).Interface())

	assert.False(t, OnePointerValue(reflect.ValueOf((*pointersStruct)(nil))).IsValid())
}

func TestWritableInPlace(t *testing.T) {
	s := &pointersStruct{}
	assert.True(t, WritableInPlace(reflect.ValueOf(s)))
	assert.True(t, WritableInPlace(reflect.ValueOf(s).Elem()))
	assert.False(t, WritableInPlace(reflect.ValueOf(*s)))

	var a any = pointersStruct{}
	assert.False(t, WritableInPlace(reflect.ValueOf(&a).Elem()))
	a = s
	assert.True(t, WritableInPlace(reflect.ValueOf(&a).Elem()))

	assert.True(t, WritableInPlace(reflect.ValueOf([]int{1})))
	assert.True(t, WritableInPlace(reflect.ValueOf(map[string]int{})))
	assert.False(t, WritableInPlace(reflect.ValueOf(map[string]int(nil))))
	assert.False(t, WritableInPlace(reflect.ValueOf((*pointersStruct)(nil))))
}

func TestAddressableCopy(t *testing.T) {
	var a any = pointersStruct{A: 5}
	cp := AddressableCopy(reflect.ValueOf(&a).Elem())
	assert.True(t, cp.CanSet())
	cp.Field(0).SetInt(6)
	assert.Equal(t, 5, a.(pointersStruct).A)
	assert.Equal(t, 6, cp.Interface().(pointersStruct).A)
}
