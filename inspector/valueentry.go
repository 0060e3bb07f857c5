// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"cogentcore.org/inspect/base/errors"
	"cogentcore.org/inspect/base/reflectx"
)

// ValueStates summarize the values of a [ValueEntry] across the targets.
type ValueStates int32

const (
	// ValuesConsistent is when all values are available and equal.
	ValuesConsistent ValueStates = iota

	// ValuesConflicted is when some available values differ.
	ValuesConflicted

	// ValuesPartiallyUnavailable is when the available values are
	// equal but some targets have no value.
	ValuesPartiallyUnavailable

	// ValuesUnavailable is when no target has a value.
	ValuesUnavailable
)

func (vs ValueStates) String() string {
	switch vs {
	case ValuesConsistent:
		return "Consistent"
	case ValuesConflicted:
		return "Conflicted"
	case ValuesPartiallyUnavailable:
		return "PartiallyUnavailable"
	case ValuesUnavailable:
		return "Unavailable"
	}
	return "ValueStates(" + strconv.Itoa(int(vs)) + ")"
}

// ValueEntry is the value of a property across all targets of its tree,
// with one value per target in target order. Each value is read through
// the accessor of the property from the current value of the parent
// property for the same target. Values that cannot be read are
// unavailable, which is represented by an invalid [reflect.Value].
type ValueEntry struct {
	property *Property
	accessor ValueAccessor
	declared reflect.Type

	values []reflect.Value
	errs   []error

	conflicted bool
	state      ValueStates
	runtime    reflect.Type

	listeners []*valueListener
}

type valueListener struct {
	fun func(i int)
}

func newValueEntry(p *Property, acc ValueAccessor, declared reflect.Type) *ValueEntry {
	return &ValueEntry{property: p, accessor: acc, declared: declared, runtime: declared}
}

// Accessor returns the accessor of the entry, which is nil for the root.
func (e *ValueEntry) Accessor() ValueAccessor {
	return e.accessor
}

// ValueCount returns the number of values, which is the number of targets.
func (e *ValueEntry) ValueCount() int {
	return len(e.values)
}

// Update re-reads all values and recomputes the state of the entry.
func (e *ValueEntry) Update() {
	n := len(e.property.tree.targets)
	if len(e.values) != n {
		e.values = make([]reflect.Value, n)
		e.errs = make([]error, n)
	}
	for i := range n {
		e.values[i], e.errs[i] = e.read(i)
	}
	e.computeState()
}

// reread re-reads the value at the given index.
func (e *ValueEntry) reread(i int) {
	e.values[i], e.errs[i] = e.read(i)
	e.computeState()
}

func (e *ValueEntry) read(i int) (reflect.Value, error) {
	var v reflect.Value
	if e.accessor == nil {
		v = reflect.ValueOf(e.property.tree.targets[i])
	} else {
		owner, err := e.owner(i)
		if err != nil {
			return reflect.Value{}, err
		}
		v, err = e.accessor.Get(owner)
		if err != nil {
			return reflect.Value{}, err
		}
	}
	if !v.IsValid() {
		return v, ErrUnavailable
	}
	return v, nil
}

// owner returns the current value of the parent property at the given index.
func (e *ValueEntry) owner(i int) (reflect.Value, error) {
	par := e.property.parent
	if par == nil || par.entry == nil {
		return reflect.Value{}, fmt.Errorf("property %q has no owner: %w", e.property.Path(), ErrUnavailable)
	}
	if !par.entry.Available(i) {
		return reflect.Value{}, ErrUnavailable
	}
	return par.entry.values[i], nil
}

func (e *ValueEntry) computeState() {
	avail := 0
	e.conflicted = false
	var first reflect.Value
	var rt reflect.Type
	sameType := true
	for i, v := range e.values {
		if e.errs[i] != nil {
			continue
		}
		avail++
		ct := concreteType(v)
		if avail == 1 {
			first, rt = v, ct
			continue
		}
		if ct != rt {
			sameType = false
		}
		if !e.conflicted && e.declared.Kind() != reflect.Func && !reflectx.Equal(first, v) {
			e.conflicted = true
		}
	}
	switch {
	case avail == 0:
		e.state = ValuesUnavailable
	case e.conflicted:
		e.state = ValuesConflicted
	case avail < len(e.values):
		e.state = ValuesPartiallyUnavailable
	default:
		e.state = ValuesConsistent
	}
	e.runtime = e.declared
	if avail > 0 && sameType && rt != nil {
		e.runtime = rt
	}
}

// concreteType returns the type of the value behind any interface,
// or nil for a nil interface.
func concreteType(v reflect.Value) reflect.Type {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		return v.Elem().Type()
	}
	return v.Type()
}

// State returns the state of the values.
func (e *ValueEntry) State() ValueStates {
	return e.state
}

// IsConflicted returns whether any two available values differ.
// It is always false for a single target.
func (e *ValueEntry) IsConflicted() bool {
	return e.conflicted
}

// BaseValueType returns the declared type of the slot.
func (e *ValueEntry) BaseValueType() reflect.Type {
	return e.declared
}

// ValueType returns the type common to the values behind any
// interfaces, or the declared type if they have different types.
func (e *ValueEntry) ValueType() reflect.Type {
	return e.runtime
}

// Available returns whether the value at the given index is available.
func (e *ValueEntry) Available(i int) bool {
	return i >= 0 && i < len(e.values) && e.errs[i] == nil
}

// Err returns the error reading the value at the given index, if any.
func (e *ValueEntry) Err(i int) error {
	if i < 0 || i >= len(e.errs) {
		return ErrUnavailable
	}
	return e.errs[i]
}

// Value returns the value at the given index, which is
// invalid if it is unavailable.
func (e *ValueEntry) Value(i int) reflect.Value {
	if !e.Available(i) {
		return reflect.Value{}
	}
	return e.values[i]
}

// WeakValue returns the value at the given index as an untyped value.
func (e *ValueEntry) WeakValue(i int) (any, bool) {
	v := e.Value(i)
	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}
	return v.Interface(), true
}

// WeakValues returns all values as untyped values, with nil for
// unavailable ones.
func (e *ValueEntry) WeakValues() []any {
	vs := make([]any, len(e.values))
	for i := range vs {
		vs[i], _ = e.WeakValue(i)
	}
	return vs
}

// SmartValue returns the first available value, which is the
// value of all targets when the entry is not conflicted.
func (e *ValueEntry) SmartValue() (any, bool) {
	for i := range e.values {
		if v, ok := e.WeakValue(i); ok {
			return v, true
		}
	}
	return nil, false
}

// OnValueChanged adds a function called with the target index after
// every successful change through the entry. It returns a function
// that removes it.
func (e *ValueEntry) OnValueChanged(fun func(i int)) (remove func()) {
	l := &valueListener{fun: fun}
	e.listeners = append(e.listeners, l)
	return func() {
		e.listeners = slices.DeleteFunc(e.listeners, func(o *valueListener) bool { return o == l })
	}
}

// SetValue sets the value at the given index and re-reads it, so that
// the entry reflects the value the target actually holds afterward.
// Values held in owners that are not addressable (such as structs in
// interfaces or maps) are written back to the owner through the parent
// entry. Read-only slots fail with an [UnsupportedError].
func (e *ValueEntry) SetValue(i int, value any) error {
	if i < 0 || i >= len(e.values) {
		return fmt.Errorf("inspector: setting %q: target index %d out of range [0, %d)", e.property.Path(), i, len(e.values))
	}
	if err := e.set(i, value); err != nil {
		return err
	}
	for _, l := range slices.Clone(e.listeners) {
		l.fun(i)
	}
	return nil
}

func (e *ValueEntry) set(i int, value any) error {
	if e.accessor == nil {
		return &UnsupportedError{Op: "set", Subject: "target " + strconv.Itoa(i), Reason: "targets cannot be replaced"}
	}
	if e.accessor.ReadOnly() {
		return &UnsupportedError{Op: "set", Subject: strconv.Quote(e.property.Path()), Reason: "it is read-only"}
	}
	v, ok := value.(reflect.Value)
	if !ok {
		v = reflect.ValueOf(value)
	}
	owner, err := e.owner(i)
	if err != nil {
		return fmt.Errorf("inspector: setting %q: %w", e.property.Path(), err)
	}
	if reflectx.WritableInPlace(owner) {
		err = e.accessor.Set(owner, v)
	} else {
		cp := reflectx.AddressableCopy(owner)
		err = e.accessor.Set(cp, v)
		if err == nil {
			err = e.property.parent.entry.set(i, cp)
		}
	}
	e.reread(i)
	e.property.markStale()
	return err
}

// SetAll sets the value of all targets, returning the
// errors for the targets that failed.
func (e *ValueEntry) SetAll(value any) error {
	var errs []error
	for i := range e.values {
		if err := e.SetValue(i, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TypedEntry is a strongly typed view of a [ValueEntry].
type TypedEntry[T any] struct {
	*ValueEntry
}

// Typed returns a strongly typed view of the given entry, which
// fails if the values of the entry cannot be T.
func Typed[T any](e *ValueEntry) (*TypedEntry[T], error) {
	tt := reflect.TypeFor[T]()
	if e.ValueType() != tt && e.BaseValueType() != tt && !e.ValueType().AssignableTo(tt) {
		return nil, fmt.Errorf("inspector: values of %q are %v, not %v", e.property.Path(), e.ValueType(), tt)
	}
	return &TypedEntry[T]{e}, nil
}

// Value returns the value at the given index, or the zero
// value if it is unavailable.
func (te *TypedEntry[T]) Value(i int) T {
	if w, ok := te.WeakValue(i); ok {
		if t, ok := w.(T); ok {
			return t
		}
	}
	var zero T
	return zero
}

// SmartValue returns the value of the first target.
func (te *TypedEntry[T]) SmartValue() T {
	return te.Value(0)
}

// SetValue sets the value at the given index.
func (te *TypedEntry[T]) SetValue(i int, v T) error {
	return te.ValueEntry.SetValue(i, v)
}

// SetSmartValue sets the value of all targets.
func (te *TypedEntry[T]) SetSmartValue(v T) error {
	return te.SetAll(v)
}
