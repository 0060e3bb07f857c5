// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"fmt"
	"reflect"

	"cogentcore.org/inspect/base/reflectx"
	"cogentcore.org/inspect/base/slicesx"
)

// ListResolver resolves the elements of slices as children, using the
// shortest slice across the targets. It supports all collection changes.
type ListResolver struct {
	collectionBase
	infos []*PropertyInfo
}

func (lr *ListResolver) Initialize(p *Property) error {
	return lr.initialize(p, reflect.Slice)
}

func (lr *ListResolver) Deinitialize() {
	lr.infos = nil
	lr.queue = nil
	lr.init = false
}

func (lr *ListResolver) Ordered() bool { return true }

func (lr *ListResolver) ChildCount() int {
	return lr.minLength()
}

func (lr *ListResolver) ChildInfo(i int) *PropertyInfo {
	return elementInfo(&lr.infos, lr.typ, i)
}

func (lr *ListResolver) ChildNameToIndex(name string) (int, error) {
	return -1, lr.unsupported("find "+name+" in", "list elements are positional")
}

// elementInfo returns the info for the element at the given index,
// creating and caching it as needed.
func elementInfo(infos *[]*PropertyInfo, typ reflect.Type, i int) *PropertyInfo {
	for len(*infos) <= i {
		*infos = append(*infos, nil)
	}
	if (*infos)[i] == nil {
		(*infos)[i] = &PropertyInfo{Name: elementName(i), Type: typ.Elem(), Accessor: &elementAccessor{owner: typ, index: i}}
	}
	return (*infos)[i]
}

// copySlice returns a new slice with the elements of the given one,
// so that changes never write into a backing array shared with others.
func copySlice(s reflect.Value, capacity int) reflect.Value {
	ns := reflect.MakeSlice(s.Type(), s.Len(), max(capacity, s.Len()))
	reflect.Copy(ns, s)
	return ns
}

func (lr *ListResolver) QueueAdd(target int, value any) error {
	ev, err := lr.element(value)
	if err != nil {
		return err
	}
	return lr.enqueue(target, func() error {
		s, err := lr.collection(target)
		if err != nil {
			return err
		}
		return lr.write(target, reflect.Append(copySlice(s, s.Len()+1), ev))
	})
}

func (lr *ListResolver) QueueInsertAt(target, index int, value any) error {
	ev, err := lr.element(value)
	if err != nil {
		return err
	}
	return lr.enqueue(target, func() error {
		s, err := lr.collection(target)
		if err != nil {
			return err
		}
		if index < 0 || index > s.Len() {
			return fmt.Errorf("inspector: insert index %d out of range [0, %d]", index, s.Len())
		}
		ns := reflect.MakeSlice(s.Type(), s.Len()+1, s.Len()+1)
		reflect.Copy(ns, s.Slice(0, index))
		ns.Index(index).Set(ev)
		reflect.Copy(ns.Slice(index+1, ns.Len()), s.Slice(index, s.Len()))
		return lr.write(target, ns)
	})
}

func (lr *ListResolver) QueueRemoveAt(target, index int) error {
	return lr.enqueue(target, func() error {
		s, err := lr.collection(target)
		if err != nil {
			return err
		}
		return lr.removeAt(target, s, index)
	})
}

func (lr *ListResolver) removeAt(target int, s reflect.Value, index int) error {
	if index < 0 || index >= s.Len() {
		return fmt.Errorf("inspector: remove index %d out of range [0, %d)", index, s.Len())
	}
	ns := reflect.MakeSlice(s.Type(), 0, s.Len()-1)
	ns = reflect.AppendSlice(ns, s.Slice(0, index))
	ns = reflect.AppendSlice(ns, s.Slice(index+1, s.Len()))
	return lr.write(target, ns)
}

// QueueRemove queues removing the first element equal to the given value.
// Removing a value that is not present does nothing.
func (lr *ListResolver) QueueRemove(target int, value any) error {
	ev, err := lr.element(value)
	if err != nil {
		return err
	}
	return lr.enqueue(target, func() error {
		s, err := lr.collection(target)
		if err != nil {
			return err
		}
		for i := range s.Len() {
			if reflectx.Equal(s.Index(i), ev) {
				return lr.removeAt(target, s, i)
			}
		}
		return nil
	})
}

func (lr *ListResolver) QueueMove(target, from, to int) error {
	return lr.enqueue(target, func() error {
		s, err := lr.collection(target)
		if err != nil {
			return err
		}
		ns, err := moveElements(s, from, to)
		if err != nil {
			return err
		}
		return lr.write(target, ns)
	})
}

// moveElements returns a copy of the given slice or array with
// the element at from moved to to.
func moveElements(c reflect.Value, from, to int) (reflect.Value, error) {
	elems := make([]reflect.Value, c.Len())
	for i := range elems {
		elems[i] = c.Index(i)
	}
	elems, err := slicesx.Move(elems, from, to)
	if err != nil {
		return reflect.Value{}, err
	}
	var nc reflect.Value
	if c.Kind() == reflect.Array {
		nc = reflect.New(c.Type()).Elem()
	} else {
		nc = reflect.MakeSlice(c.Type(), len(elems), len(elems))
	}
	for i, e := range elems {
		nc.Index(i).Set(e)
	}
	return nc, nil
}

// ArrayResolver resolves the elements of arrays as children. Arrays have
// a fixed length, so only moves are supported.
type ArrayResolver struct {
	collectionBase
	infos []*PropertyInfo
}

func (ar *ArrayResolver) Initialize(p *Property) error {
	return ar.initialize(p, reflect.Array)
}

func (ar *ArrayResolver) Deinitialize() {
	ar.infos = nil
	ar.queue = nil
	ar.init = false
}

func (ar *ArrayResolver) Ordered() bool { return true }

func (ar *ArrayResolver) ChildCount() int {
	return ar.minLength()
}

func (ar *ArrayResolver) ChildInfo(i int) *PropertyInfo {
	return elementInfo(&ar.infos, ar.typ, i)
}

func (ar *ArrayResolver) ChildNameToIndex(name string) (int, error) {
	return -1, ar.unsupported("find "+name+" in", "array elements are positional")
}

func (ar *ArrayResolver) QueueAdd(target int, value any) error {
	return ar.unsupported("add to", "arrays have a fixed length")
}

func (ar *ArrayResolver) QueueInsertAt(target, index int, value any) error {
	return ar.unsupported("insert into", "arrays have a fixed length")
}

func (ar *ArrayResolver) QueueRemove(target int, value any) error {
	return ar.unsupported("remove from", "arrays have a fixed length")
}

func (ar *ArrayResolver) QueueRemoveAt(target, index int) error {
	return ar.unsupported("remove from", "arrays have a fixed length")
}

func (ar *ArrayResolver) QueueMove(target, from, to int) error {
	return ar.enqueue(target, func() error {
		a, err := ar.collection(target)
		if err != nil {
			return err
		}
		na, err := moveElements(a, from, to)
		if err != nil {
			return err
		}
		return ar.write(target, na)
	})
}
