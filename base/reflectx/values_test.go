// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	assert.True(t, IsBasic(reflect.TypeFor[int]()))
	assert.True(t, IsBasic(reflect.TypeFor[*string]()))
	assert.False(t, IsBasic(reflect.TypeFor[[]int]()))
	assert.True(t, IsComposite(reflect.TypeFor[*pointersStruct]()))
	assert.True(t, IsComposite(reflect.TypeFor[map[string]int]()))
	assert.False(t, IsComposite(reflect.TypeFor[any]()))
	assert.True(t, KindIsNumber(reflect.Float32))
	assert.False(t, KindIsNumber(reflect.String))
}

func TestIsSerializable(t *testing.T) {
	assert.True(t, IsSerializable(reflect.TypeFor[[]map[string]int]()))
	assert.False(t, IsSerializable(reflect.TypeFor[func()]()))
	assert.False(t, IsSerializable(reflect.TypeFor[[]chan int]()))
	assert.False(t, IsSerializable(reflect.TypeFor[map[string]func()]()))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(reflect.ValueOf(1), reflect.ValueOf(1)))
	assert.False(t, Equal(reflect.ValueOf(1), reflect.ValueOf(2)))
	assert.False(t, Equal(reflect.ValueOf(1), reflect.ValueOf(int64(1))))
	assert.True(t, Equal(reflect.ValueOf([]int{1, 2}), reflect.ValueOf([]int{1, 2})))
	assert.True(t, Equal(reflect.Value{}, reflect.Value{}))
	assert.False(t, Equal(reflect.Value{}, reflect.ValueOf(1)))

	a, b := &pointersStruct{}, &pointersStruct{}
	assert.False(t, Equal(reflect.ValueOf(a), reflect.ValueOf(b)))
	assert.True(t, Equal(reflect.ValueOf(a), reflect.ValueOf(a)))

	// interfaces holding non-comparable values must not panic
	x, y := any([]int{1}), any([]int{1})
	assert.True(t, Equal(reflect.ValueOf(&x).Elem(), reflect.ValueOf(&y).Elem()))
}

func TestToType(t *testing.T) {
	v, err := ToType(3, reflect.TypeFor[float64]())
	require.NoError(t, err)
	assert.Equal(t, 3.0, v.Interface())

	v, err = ToType(nil, reflect.TypeFor[*pointersStruct]())
	require.NoError(t, err)
	assert.True(t, v.IsNil())

	v, err = ToType(pointersStruct{}, reflect.TypeFor[any]())
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[any](), v.Type())

	_, err = ToType("x", reflect.TypeFor[int]())
	assert.Error(t, err)

	_, err = ToType(65, reflect.TypeFor[string]())
	assert.Error(t, err)
}

func TestNewDefault(t *testing.T) {
	v := NewDefault(reflect.TypeFor[*pointersStruct]())
	assert.False(t, v.IsNil())
	assert.Equal(t, 0, NewDefault(reflect.TypeFor[int]()).Interface())
	assert.NotNil(t, NewDefault(reflect.TypeFor[map[string]int]()).Interface())
}
