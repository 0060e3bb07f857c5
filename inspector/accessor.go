// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"fmt"
	"reflect"

	"cogentcore.org/inspect/base/reflectx"
)

// ValueAccessor gets and sets one value slot on an owner value.
// The owner is the current value of the parent property for one
// target, which may be a pointer, an interface, or a plain value.
// Get fails with [ErrUnavailable] when the slot cannot be reached,
// and Set fails with an [UnsupportedError] for read-only slots.
type ValueAccessor interface {

	// OwnerType is the type of owner the accessor applies to.
	OwnerType() reflect.Type

	// ValueType is the declared type of the slot.
	ValueType() reflect.Type

	// ReadOnly returns whether the slot cannot be set.
	ReadOnly() bool

	// Get returns the value of the slot on the given owner.
	Get(owner reflect.Value) (reflect.Value, error)

	// Set sets the value of the slot on the given owner, converting
	// the given value to [ValueAccessor.ValueType] if needed. Owners
	// that are not addressable cannot be set through.
	Set(owner, value reflect.Value) error
}

// FieldAccessor accesses a struct field, including fields
// promoted from embedded structs.
type FieldAccessor struct {
	owner    reflect.Type
	field    reflect.StructField
	readOnly bool
}

// NewFieldAccessor returns an accessor for the given field of the given owner type.
func NewFieldAccessor(owner reflect.Type, field reflect.StructField, readOnly bool) *FieldAccessor {
	return &FieldAccessor{owner: owner, field: field, readOnly: readOnly}
}

func (fa *FieldAccessor) OwnerType() reflect.Type { return fa.owner }
func (fa *FieldAccessor) ValueType() reflect.Type { return fa.field.Type }
func (fa *FieldAccessor) ReadOnly() bool          { return fa.readOnly }

// Field returns the struct field.
func (fa *FieldAccessor) Field() reflect.StructField { return fa.field }

func (fa *FieldAccessor) fieldValue(owner reflect.Value) (reflect.Value, error) {
	c, ok := reflectx.Indirect(owner)
	if !ok {
		return reflect.Value{}, fmt.Errorf("field %s: %w", fa.field.Name, ErrUnavailable)
	}
	if c.Type() != reflectx.NonPointerType(fa.owner) {
		return reflect.Value{}, fmt.Errorf("field %s: owner is a %v, not a %v", fa.field.Name, c.Type(), fa.owner)
	}
	fv, err := c.FieldByIndexErr(fa.field.Index)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("field %s: %w", fa.field.Name, ErrUnavailable)
	}
	return fv, nil
}

func (fa *FieldAccessor) Get(owner reflect.Value) (reflect.Value, error) {
	return fa.fieldValue(owner)
}

func (fa *FieldAccessor) Set(owner, value reflect.Value) error {
	if fa.readOnly {
		return &UnsupportedError{Op: "set", Subject: "field " + fa.field.Name, Reason: "it is read-only"}
	}
	fv, err := fa.fieldValue(owner)
	if err != nil {
		return err
	}
	if !fv.CanSet() {
		return &UnsupportedError{Op: "set", Subject: "field " + fa.field.Name, Reason: "its owner is not addressable"}
	}
	v, err := reflectx.ToType(value, fv.Type())
	if err != nil {
		return err
	}
	fv.Set(v)
	return nil
}

// MethodAccessor accesses a method without arguments as a read-only
// bound method value, which can be called to invoke it on the owner.
type MethodAccessor struct {
	owner  reflect.Type
	method reflect.Method
	typ    reflect.Type
}

// NewMethodAccessor returns an accessor for the given method of the
// given owner type, which must come from the method set of that type
// or of a pointer to it.
func NewMethodAccessor(owner reflect.Type, method reflect.Method) *MethodAccessor {
	ft := method.Type
	in := make([]reflect.Type, 0, ft.NumIn())
	for i := 1; i < ft.NumIn(); i++ {
		in = append(in, ft.In(i))
	}
	out := make([]reflect.Type, 0, ft.NumOut())
	for i := range ft.NumOut() {
		out = append(out, ft.Out(i))
	}
	return &MethodAccessor{owner: owner, method: method, typ: reflect.FuncOf(in, out, ft.IsVariadic())}
}

func (ma *MethodAccessor) OwnerType() reflect.Type { return ma.owner }
func (ma *MethodAccessor) ValueType() reflect.Type { return ma.typ }
func (ma *MethodAccessor) ReadOnly() bool          { return true }

// Method returns the method.
func (ma *MethodAccessor) Method() reflect.Method { return ma.method }

func (ma *MethodAccessor) Get(owner reflect.Value) (reflect.Value, error) {
	pv := reflectx.OnePointerValue(owner)
	if !pv.IsValid() {
		return reflect.Value{}, fmt.Errorf("method %s: %w", ma.method.Name, ErrUnavailable)
	}
	m := pv.MethodByName(ma.method.Name)
	if !m.IsValid() {
		return reflect.Value{}, fmt.Errorf("method %s: owner is a %v, not a %v", ma.method.Name, pv.Type(), ma.owner)
	}
	return m, nil
}

func (ma *MethodAccessor) Set(owner, value reflect.Value) error {
	return &UnsupportedError{Op: "set", Subject: "method " + ma.method.Name, Reason: "methods are read-only"}
}

// FuncAccessor is a synthetic accessor defined by functions,
// for values that are computed rather than stored in a field.
// It is read-only if it has no setter.
type FuncAccessor struct {
	Owner  reflect.Type
	Value  reflect.Type
	Getter func(owner reflect.Value) (reflect.Value, error)
	Setter func(owner, value reflect.Value) error
}

// NewFuncAccessor returns a [FuncAccessor] for owners of type O and
// values of type V. The owner is passed as an O when it is one or when
// a pointer to it is one, so O is typically a pointer to a struct.
// A nil set function makes the accessor read-only.
func NewFuncAccessor[O, V any](get func(o O) V, set func(o O, v V)) *FuncAccessor {
	fa := &FuncAccessor{
		Owner: reflect.TypeFor[O](),
		Value: reflect.TypeFor[V](),
		Getter: func(owner reflect.Value) (reflect.Value, error) {
			o, err := ownerAs[O](owner)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(get(o)), nil
		},
	}
	if set != nil {
		fa.Setter = func(owner, value reflect.Value) error {
			o, err := ownerAs[O](owner)
			if err != nil {
				return err
			}
			v, err := reflectx.ToType(value, fa.Value)
			if err != nil {
				return err
			}
			// a nil interface value asserts to the zero V
			vv, _ := v.Interface().(V)
			set(o, vv)
			return nil
		}
	}
	return fa
}

func (fa *FuncAccessor) OwnerType() reflect.Type { return fa.Owner }
func (fa *FuncAccessor) ValueType() reflect.Type { return fa.Value }
func (fa *FuncAccessor) ReadOnly() bool          { return fa.Setter == nil }

func (fa *FuncAccessor) Get(owner reflect.Value) (reflect.Value, error) {
	v, err := fa.Getter(owner)
	if err != nil {
		return v, err
	}
	// values are always of the declared type
	return reflectx.ToType(v, fa.Value)
}

func (fa *FuncAccessor) Set(owner, value reflect.Value) error {
	if fa.Setter == nil {
		return &UnsupportedError{Op: "set", Subject: "accessor of " + fa.Owner.String(), Reason: "it has no setter"}
	}
	return fa.Setter(owner, value)
}

// ownerAs returns the given owner as an O, either itself or a pointer to it.
func ownerAs[O any](owner reflect.Value) (O, error) {
	var zero O
	ot := reflect.TypeFor[O]()
	c, ok := reflectx.Indirect(owner)
	if !ok {
		return zero, ErrUnavailable
	}
	if c.Type().AssignableTo(ot) && c.CanInterface() {
		return c.Interface().(O), nil
	}
	if p := reflectx.OnePointerValue(c); p.Type().AssignableTo(ot) {
		return p.Interface().(O), nil
	}
	return zero, fmt.Errorf("owner is a %v, not a %v", c.Type(), ot)
}
