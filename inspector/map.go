// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"cogentcore.org/inspect/base/reflectx"
)

// MapEntry is a key and value to add to a map.
type MapEntry struct {
	Key   any
	Value any
}

// MapResolver resolves the values of maps as children, named by their
// keys in brackets. Children are the keys present in the maps of all
// targets, in sorted order. Maps are unordered, so positional changes
// are not supported; elements are added with a [MapEntry] and removed
// by key.
type MapResolver struct {
	collectionBase
	keys  []reflect.Value
	infos map[string]*PropertyInfo
}

func (mr *MapResolver) Initialize(p *Property) error {
	if err := mr.initialize(p, reflect.Map); err != nil {
		return err
	}
	mr.infos = map[string]*PropertyInfo{}
	return nil
}

func (mr *MapResolver) Deinitialize() {
	mr.keys = nil
	mr.infos = nil
	mr.queue = nil
	mr.init = false
}

func (mr *MapResolver) Ordered() bool { return false }

// KeyType returns the type of the keys.
func (mr *MapResolver) KeyType() reflect.Type { return mr.typ.Key() }

// ChildCount recomputes the keys common to all targets.
func (mr *MapResolver) ChildCount() int {
	e := mr.property.entry
	mr.keys = mr.keys[:0]
	if mr.minLength() == 0 {
		return 0
	}
	first, _ := reflectx.Indirect(e.Value(0))
	for _, k := range first.MapKeys() {
		common := true
		for i := 1; i < e.ValueCount(); i++ {
			c, _ := reflectx.Indirect(e.Value(i))
			if !c.MapIndex(k).IsValid() {
				common = false
				break
			}
		}
		if common {
			mr.keys = append(mr.keys, k)
		}
	}
	slices.SortFunc(mr.keys, compareKeys)
	return len(mr.keys)
}

// compareKeys orders map keys naturally for numbers and strings,
// and by their printed form otherwise.
func compareKeys(a, b reflect.Value) int {
	switch {
	case a.CanInt():
		return cmp.Compare(a.Int(), b.Int())
	case a.CanUint():
		return cmp.Compare(a.Uint(), b.Uint())
	case a.CanFloat():
		return cmp.Compare(a.Float(), b.Float())
	case a.Kind() == reflect.String:
		return cmp.Compare(a.String(), b.String())
	}
	return cmp.Or(cmp.Compare(fmt.Sprint(a), fmt.Sprint(b)), cmp.Compare(keyName(a), keyName(b)))
}

// keyName returns the child name for the given key. Keys of maps with
// interface keys can print the same for different dynamic types, so
// their strings are quoted and their values other than ints and bools
// carry their type, as in ["1"], [1] and [float64(1)].
func keyName(k reflect.Value) string {
	if k.Kind() != reflect.Interface || k.IsNil() || !k.CanInterface() {
		return fmt.Sprintf("[%v]", k)
	}
	switch d := k.Elem().Interface().(type) {
	case string:
		return fmt.Sprintf("[%q]", d)
	case int, bool:
		return fmt.Sprintf("[%v]", d)
	default:
		return fmt.Sprintf("[%T(%v)]", d, d)
	}
}

// Key returns the key of the child at the given index.
func (mr *MapResolver) Key(i int) reflect.Value {
	return mr.keys[i]
}

func (mr *MapResolver) ChildInfo(i int) *PropertyInfo {
	k := mr.keys[i]
	name := keyName(k)
	pi, ok := mr.infos[name]
	if !ok {
		pi = &PropertyInfo{Name: name, Type: mr.typ.Elem(), Accessor: &mapAccessor{owner: mr.typ, key: k}}
		mr.infos[name] = pi
	}
	return pi
}

func (mr *MapResolver) ChildNameToIndex(name string) (int, error) {
	for i, k := range mr.keys {
		if keyName(k) == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("inspector: key %s in %q: %w", name, mr.property.Path(), ErrNotFound)
}

// QueueAdd queues adding the given [MapEntry]. Adding a key that
// is already present fails when the change is applied.
func (mr *MapResolver) QueueAdd(target int, value any) error {
	me, ok := value.(MapEntry)
	if !ok {
		return fmt.Errorf("inspector: values added to maps must be a MapEntry, not %T", value)
	}
	kv, err := reflectx.ToType(me.Key, mr.KeyType())
	if err != nil {
		return err
	}
	ev, err := mr.element(me.Value)
	if err != nil {
		return err
	}
	return mr.enqueue(target, func() error {
		m, err := mr.collection(target)
		if err != nil {
			return err
		}
		if m.IsNil() {
			nm := reflect.MakeMap(m.Type())
			nm.SetMapIndex(kv, ev)
			return mr.write(target, nm)
		}
		if m.MapIndex(kv).IsValid() {
			return fmt.Errorf("inspector: key %v is already in %q", kv, mr.property.Path())
		}
		m.SetMapIndex(kv, ev)
		mr.property.markStale()
		return nil
	})
}

// QueueRemove queues removing the given key.
func (mr *MapResolver) QueueRemove(target int, key any) error {
	kv, err := reflectx.ToType(key, mr.KeyType())
	if err != nil {
		return err
	}
	return mr.enqueue(target, func() error {
		m, err := mr.collection(target)
		if err != nil {
			return err
		}
		if !m.IsNil() {
			m.SetMapIndex(kv, reflect.Value{})
			mr.property.markStale()
		}
		return nil
	})
}

func (mr *MapResolver) QueueInsertAt(target, index int, value any) error {
	return mr.unsupported("insert into", "maps are unordered")
}

func (mr *MapResolver) QueueRemoveAt(target, index int) error {
	return mr.unsupported("remove at an index from", "maps are unordered")
}

func (mr *MapResolver) QueueMove(target, from, to int) error {
	return mr.unsupported("move elements of", "maps are unordered")
}
