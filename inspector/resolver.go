// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"fmt"
	"reflect"

	"cogentcore.org/inspect/base/errors"
	"cogentcore.org/inspect/base/reflectx"
)

// PropertyResolver determines the child slots of a property from
// the type its values are presented as.
type PropertyResolver interface {

	// Initialize initializes the resolver for the given property.
	Initialize(p *Property) error

	// Deinitialize releases everything resolved, including all
	// [PropertyInfo]s, so that the resolver can be initialized again.
	Deinitialize()

	// Initialized returns whether the resolver is initialized.
	Initialized() bool

	// ChildCount returns the current number of children.
	ChildCount() int

	// ChildInfo returns the info of the child at the given index,
	// which must be less than the last [PropertyResolver.ChildCount].
	ChildInfo(i int) *PropertyInfo

	// ChildNameToIndex returns the index of the child with the given name.
	// It fails with an [UnsupportedError] for positional children.
	ChildNameToIndex(name string) (int, error)
}

// CollectionResolver is a [PropertyResolver] for a collection that can
// queue changes to its elements. Changes are queued per target and
// applied by [CollectionResolver.ApplyChanges] in the order they were
// queued, against the collections as they are at that time.
type CollectionResolver interface {
	PropertyResolver

	// ElementType is the type of the elements.
	ElementType() reflect.Type

	// Ordered returns whether elements have positions that
	// can be inserted at, removed at and moved.
	Ordered() bool

	// ReadOnly returns whether the collection cannot be changed.
	ReadOnly() bool

	// QueueAdd queues adding the given value to the collection of the given target.
	QueueAdd(target int, value any) error

	// QueueRemove queues removing the given value (or key, for maps)
	// from the collection of the given target.
	QueueRemove(target int, value any) error

	// QueueInsertAt queues inserting the given value at the given index.
	QueueInsertAt(target, index int, value any) error

	// QueueRemoveAt queues removing the element at the given index.
	QueueRemoveAt(target, index int) error

	// QueueMove queues moving the element at from to the index to.
	QueueMove(target, from, to int) error

	// HasPendingChanges returns whether there are queued changes.
	HasPendingChanges() bool

	// ApplyChanges applies and clears all queued changes, returning
	// whether there were any and the errors of those that failed.
	ApplyChanges() (bool, error)
}

// ResolverLocator selects the children resolver for a property.
type ResolverLocator struct {
	overrides map[reflect.Type]func() PropertyResolver
}

// NewResolverLocator returns a new locator using the standard resolvers.
func NewResolverLocator() *ResolverLocator {
	return &ResolverLocator{overrides: map[reflect.Type]func() PropertyResolver{}}
}

// Register makes properties presented as the given type (or a pointer
// to it) use resolvers made by the given function.
func (rl *ResolverLocator) Register(typ reflect.Type, fun func() PropertyResolver) *ResolverLocator {
	rl.overrides[typ] = fun
	return rl
}

// Locate returns a new children resolver for the given property, or
// nil if it has no children. Logic roots must have children, so a
// root of a type without children is a [ResolutionError].
func (rl *ResolverLocator) Locate(p *Property) (PropertyResolver, error) {
	typ := p.ValueType()
	nt := reflectx.NonPointerType(typ)
	if fun, ok := rl.overrides[typ]; ok {
		return fun(), nil
	}
	if fun, ok := rl.overrides[nt]; ok {
		return fun(), nil
	}
	switch nt.Kind() {
	case reflect.Struct:
		return &GenericResolver{}, nil
	case reflect.Slice:
		return &ListResolver{}, nil
	case reflect.Array:
		return &ArrayResolver{}, nil
	case reflect.Map:
		return &MapResolver{}, nil
	}
	if p.Info().LogicRoot {
		return nil, &ResolutionError{Path: p.Path(), Err: fmt.Errorf("%w: targets of type %v have no members", ErrUnsupported, typ)}
	}
	return nil, nil
}

// collectionBase has the state common to collection resolvers.
type collectionBase struct {
	property *Property
	typ      reflect.Type
	queue    []func() error
	init     bool
}

func (cb *collectionBase) initialize(p *Property, kind reflect.Kind) error {
	typ := reflectx.NonPointerType(p.ValueType())
	if typ.Kind() != kind {
		return fmt.Errorf("%v is not a %v", typ, kind)
	}
	cb.property, cb.typ, cb.init = p, typ, true
	return nil
}

func (cb *collectionBase) Initialized() bool { return cb.init }

func (cb *collectionBase) ElementType() reflect.Type { return cb.typ.Elem() }

func (cb *collectionBase) ReadOnly() bool { return cb.property.IsReadOnly() }

func (cb *collectionBase) HasPendingChanges() bool { return len(cb.queue) > 0 }

func (cb *collectionBase) ApplyChanges() (bool, error) {
	if len(cb.queue) == 0 {
		return false, nil
	}
	q := cb.queue
	cb.queue = nil
	var errs []error
	for _, fun := range q {
		if err := fun(); err != nil {
			errs = append(errs, err)
		}
	}
	return true, errors.Join(errs...)
}

// enqueue validates the target and queues the given change for it.
func (cb *collectionBase) enqueue(target int, fun func() error) error {
	if !cb.init {
		return fmt.Errorf("inspector: resolver is not initialized")
	}
	if target < 0 || target >= len(cb.property.tree.targets) {
		return fmt.Errorf("inspector: target index %d out of range [0, %d)", target, len(cb.property.tree.targets))
	}
	if cb.ReadOnly() {
		return &UnsupportedError{Op: "change", Subject: cb.property.Path(), Reason: "it is read-only"}
	}
	cb.queue = append(cb.queue, fun)
	return nil
}

// element converts the given value to the element type.
func (cb *collectionBase) element(value any) (reflect.Value, error) {
	return reflectx.ToType(value, cb.ElementType())
}

// collection returns the current collection of the given target,
// re-reading it so that earlier changes are reflected.
func (cb *collectionBase) collection(target int) (reflect.Value, error) {
	e := cb.property.entry
	e.reread(target)
	if err := e.Err(target); err != nil {
		return reflect.Value{}, err
	}
	c, ok := reflectx.Indirect(e.Value(target))
	if !ok {
		return reflect.Value{}, ErrUnavailable
	}
	return c, nil
}

// write replaces the collection of the given target. Collections behind
// pointers are set through them; others are set through the entry.
func (cb *collectionBase) write(target int, nc reflect.Value) error {
	e := cb.property.entry
	v := e.Value(target)
	if v.Kind() == reflect.Pointer {
		c, ok := reflectx.Indirect(v)
		if ok && c.CanSet() {
			c.Set(nc)
			e.reread(target)
			cb.property.markStale()
			return nil
		}
	}
	return e.SetValue(target, nc)
}

// minLength returns the smallest length of the collections of all
// targets, which is 0 if any target has no collection.
func (cb *collectionBase) minLength() int {
	e := cb.property.entry
	n := -1
	for i := range e.ValueCount() {
		c, ok := reflectx.Indirect(e.Value(i))
		if !ok || ((c.Kind() == reflect.Slice || c.Kind() == reflect.Map) && c.IsNil()) {
			return 0
		}
		if n < 0 || c.Len() < n {
			n = c.Len()
		}
	}
	return max(n, 0)
}

func (cb *collectionBase) unsupported(op, reason string) error {
	subject := "collection"
	if cb.property != nil {
		subject = cb.property.Path()
	}
	return &UnsupportedError{Op: op, Subject: subject, Reason: reason}
}

// elementName returns the name of the element at the given index.
func elementName(i int) string {
	return fmt.Sprintf("[%d]", i)
}

// elementAccessor accesses an element of a slice or array by index.
type elementAccessor struct {
	owner reflect.Type
	index int
}

func (ea *elementAccessor) OwnerType() reflect.Type { return ea.owner }
func (ea *elementAccessor) ValueType() reflect.Type { return ea.owner.Elem() }
func (ea *elementAccessor) ReadOnly() bool          { return false }

func (ea *elementAccessor) element(owner reflect.Value) (reflect.Value, error) {
	c, ok := reflectx.Indirect(owner)
	if !ok || c.Type() != ea.owner {
		return reflect.Value{}, fmt.Errorf("element %d: %w", ea.index, ErrUnavailable)
	}
	if ea.index >= c.Len() {
		return reflect.Value{}, fmt.Errorf("element %d of %d: %w", ea.index, c.Len(), ErrUnavailable)
	}
	return c.Index(ea.index), nil
}

func (ea *elementAccessor) Get(owner reflect.Value) (reflect.Value, error) {
	return ea.element(owner)
}

func (ea *elementAccessor) Set(owner, value reflect.Value) error {
	ev, err := ea.element(owner)
	if err != nil {
		return err
	}
	if !ev.CanSet() {
		return &UnsupportedError{Op: "set", Subject: elementName(ea.index), Reason: "its owner is not addressable"}
	}
	v, err := reflectx.ToType(value, ev.Type())
	if err != nil {
		return err
	}
	ev.Set(v)
	return nil
}

// mapAccessor accesses the value of a map for a key.
type mapAccessor struct {
	owner reflect.Type
	key   reflect.Value
}

func (ma *mapAccessor) OwnerType() reflect.Type { return ma.owner }
func (ma *mapAccessor) ValueType() reflect.Type { return ma.owner.Elem() }
func (ma *mapAccessor) ReadOnly() bool          { return false }

func (ma *mapAccessor) mapValue(owner reflect.Value) (reflect.Value, error) {
	c, ok := reflectx.Indirect(owner)
	if !ok || c.Type() != ma.owner || c.IsNil() {
		return reflect.Value{}, fmt.Errorf("key %v: %w", ma.key, ErrUnavailable)
	}
	return c, nil
}

func (ma *mapAccessor) Get(owner reflect.Value) (reflect.Value, error) {
	c, err := ma.mapValue(owner)
	if err != nil {
		return c, err
	}
	v := c.MapIndex(ma.key)
	if !v.IsValid() {
		return v, fmt.Errorf("key %v: %w", ma.key, ErrUnavailable)
	}
	return v, nil
}

func (ma *mapAccessor) Set(owner, value reflect.Value) error {
	c, err := ma.mapValue(owner)
	if err != nil {
		return err
	}
	v, err := reflectx.ToType(value, ma.owner.Elem())
	if err != nil {
		return err
	}
	c.SetMapIndex(ma.key, v)
	return nil
}
