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

// The following interfaces can be implemented by the owners of
// collections to customize how the collection drawer changes them.
// Each method gets the name of the collection member, so that one
// owner can customize several collections. Methods are called on a
// pointer to the owner of each target.

// ElementCreator creates the elements added to a collection.
type ElementCreator interface {
	CreateInspectorElement(member string) any
}

// ElementRemover removes the given element from a collection itself.
type ElementRemover interface {
	RemoveInspectorElement(member string, value any)
}

// IndexRemover removes the element at the given index from a collection itself.
type IndexRemover interface {
	RemoveInspectorIndex(member string, index int)
}

// IndexLabeler returns the labels of the elements of a collection.
type IndexLabeler interface {
	InspectorIndexLabel(member string, index int) string
}

// ElementAddedNotifier is notified of elements added to a collection.
type ElementAddedNotifier interface {
	InspectorElementAdded(member string, value any)
}

// ElementRemovedNotifier is notified of elements removed from a collection.
type ElementRemovedNotifier interface {
	InspectorElementRemoved(member string, value any)
}

// collectionCallbacks are the custom callbacks of a collection, each of
// which is nil if the owner does not customize it. The target index
// selects the owner to call.
type collectionCallbacks struct {
	create      func(i int) (any, error)
	removeValue func(i int, value any) error
	removeIndex func(i, index int) error
	indexLabel  func(index int) string
	added       func(i int, value any)
	removed     func(i int, value any)
}

// resolveCallbacks resolves the callbacks of the collection of the
// given property from its list settings and the interfaces implemented
// by its owner. Named callbacks that the owner does not have are an error.
func resolveCallbacks(p *Property, ls *attrs.ListDrawerSettings, a any) (*collectionCallbacks, error) {
	cb := &collectionCallbacks{}
	owner := p.parent
	if a != nil {
		owner = attributeOwner(p, a)
	}
	if owner == nil {
		return cb, nil
	}
	member := p.Name()
	pt := reflect.PointerTo(reflectx.NonPointerType(owner.ValueType()))

	// call calls the method with the given name on the owner of the given
	// target with the given arguments, returning its first result.
	call := func(name string) func(i int, args ...any) (reflect.Value, error) {
		return func(i int, args ...any) (reflect.Value, error) {
			var out reflect.Value
			err := withOwner(owner, i, func(pv reflect.Value) error {
				m := pv.MethodByName(name)
				in := make([]reflect.Value, len(args))
				for k, arg := range args {
					v, err := reflectx.ToType(arg, m.Type().In(k))
					if err != nil {
						return err
					}
					in[k] = v
				}
				if res := m.Call(in); len(res) > 0 {
					out = res[0]
				}
				return nil
			})
			return out, err
		}
	}
	named := func(name string, nin, nout int) (func(i int, args ...any) (reflect.Value, error), error) {
		if name == "" {
			return nil, nil
		}
		m, ok := pt.MethodByName(name)
		if !ok || m.Type.NumIn() != nin+1 || m.Type.NumOut() != nout {
			return nil, &ResolutionError{Path: p.path, Err: fmt.Errorf("list callback: %v has no method %s with %d arguments and %d results: %w", pt, name, nin, nout, ErrNotFound)}
		}
		return call(name), nil
	}
	implements := func(iface reflect.Type) bool { return pt.Implements(iface) }

	// notify calls a notification, which has no way to report
	// a failure other than the log.
	notify := func(name string, f func(int, ...any) (reflect.Value, error), i int, args ...any) {
		if _, err := f(i, args...); err != nil {
			p.tree.logger.Warn("inspector: collection notification", "path", p.path, "method", name, "target", i, "err", err)
		}
	}

	if ls != nil {
		fns := []struct {
			name      string
			nin, nout int
			set       func(f func(i int, args ...any) (reflect.Value, error))
		}{
			{ls.CreateElement, 0, 1, func(f func(int, ...any) (reflect.Value, error)) {
				cb.create = func(i int) (any, error) {
					v, err := f(i)
					if err != nil || !v.IsValid() {
						return nil, err
					}
					return v.Interface(), nil
				}
			}},
			{ls.RemoveElement, 1, 0, func(f func(int, ...any) (reflect.Value, error)) {
				cb.removeValue = func(i int, value any) error { _, err := f(i, value); return err }
			}},
			{ls.RemoveIndex, 1, 0, func(f func(int, ...any) (reflect.Value, error)) {
				cb.removeIndex = func(i, index int) error { _, err := f(i, index); return err }
			}},
			{ls.IndexLabel, 1, 1, func(f func(int, ...any) (reflect.Value, error)) {
				cb.indexLabel = func(index int) string {
					v, err := f(0, index)
					if err != nil || !v.IsValid() {
						return elementName(index)
					}
					return fmt.Sprint(v.Interface())
				}
			}},
			{ls.OnAdded, 1, 0, func(f func(int, ...any) (reflect.Value, error)) {
				cb.added = func(i int, value any) { notify(ls.OnAdded, f, i, value) }
			}},
			{ls.OnRemoved, 1, 0, func(f func(int, ...any) (reflect.Value, error)) {
				cb.removed = func(i int, value any) { notify(ls.OnRemoved, f, i, value) }
			}},
		}
		for _, fn := range fns {
			f, err := named(fn.name, fn.nin, fn.nout)
			if err != nil {
				return nil, err
			}
			if f != nil {
				fn.set(f)
			}
		}
	}

	if cb.create == nil && implements(reflect.TypeFor[ElementCreator]()) {
		f := call("CreateInspectorElement")
		cb.create = func(i int) (any, error) {
			v, err := f(i, member)
			if err != nil || !v.IsValid() || (v.Kind() == reflect.Interface && v.IsNil()) {
				return nil, err
			}
			return v.Interface(), nil
		}
	}
	if cb.removeValue == nil && implements(reflect.TypeFor[ElementRemover]()) {
		f := call("RemoveInspectorElement")
		cb.removeValue = func(i int, value any) error { _, err := f(i, member, value); return err }
	}
	if cb.removeIndex == nil && implements(reflect.TypeFor[IndexRemover]()) {
		f := call("RemoveInspectorIndex")
		cb.removeIndex = func(i, index int) error { _, err := f(i, member, index); return err }
	}
	if cb.indexLabel == nil && implements(reflect.TypeFor[IndexLabeler]()) {
		f := call("InspectorIndexLabel")
		cb.indexLabel = func(index int) string {
			v, err := f(0, member, index)
			if err != nil || !v.IsValid() {
				return elementName(index)
			}
			return v.String()
		}
	}
	if cb.added == nil && implements(reflect.TypeFor[ElementAddedNotifier]()) {
		f := call("InspectorElementAdded")
		cb.added = func(i int, value any) { notify("InspectorElementAdded", f, i, member, value) }
	}
	if cb.removed == nil && implements(reflect.TypeFor[ElementRemovedNotifier]()) {
		f := call("InspectorElementRemoved")
		cb.removed = func(i int, value any) { notify("InspectorElementRemoved", f, i, member, value) }
	}
	return cb, nil
}
