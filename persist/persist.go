// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package persist provides a keyed store of user interface scratch
// state that survives rebuilds of an inspector, such as whether a
// property is expanded. Values are held by pointer so that callers
// can keep and modify them directly, and the store can be saved to
// and opened from TOML or JSON files.
package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
)

// Store is a keyed store of scratch values.
// It is not safe for concurrent use.
type Store struct {

	// values are the live values, each a pointer.
	values map[string]any

	// raw are values loaded from a file that have not
	// yet been claimed with a type through [Get].
	raw map[string]any
}

// NewStore returns a new empty store.
func NewStore() *Store {
	return &Store{values: map[string]any{}, raw: map[string]any{}}
}

// Key returns a store key for the given parts, which are typically the
// drawer or feature name, the root target type, the property path,
// and a custom key.
func Key(parts ...string) string {
	return strings.Join(parts, "+")
}

// Get returns a pointer to the value for the given key in the given
// store, creating it with the given default value if it does not exist.
// A value loaded from a file is converted to T on first access; if that
// fails, or the key holds a value of another type, the value is reset
// to the default.
func Get[T any](s *Store, key string, def T) *T {
	if v, ok := s.values[key]; ok {
		if p, ok := v.(*T); ok {
			return p
		}
	}
	p := new(T)
	*p = def
	if r, ok := s.raw[key]; ok {
		delete(s.raw, key)
		if err := convert(r, p); err != nil {
			*p = def
		}
	}
	s.values[key] = p
	return p
}

// convert converts the given loaded value to the value pointed to by p.
func convert(raw any, p any) error {
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, p)
}

// Has returns whether the store has a value for the given key.
func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	if !ok {
		_, ok = s.raw[key]
	}
	return ok
}

// Delete deletes the value for the given key.
func (s *Store) Delete(key string) {
	delete(s.values, key)
	delete(s.raw, key)
}

// DeletePrefix deletes all values whose keys start with the given prefix.
func (s *Store) DeletePrefix(prefix string) {
	for k := range s.values {
		if strings.HasPrefix(k, prefix) {
			delete(s.values, k)
		}
	}
	for k := range s.raw {
		if strings.HasPrefix(k, prefix) {
			delete(s.raw, k)
		}
	}
}

// Keys returns the sorted keys of all values in the store.
func (s *Store) Keys() []string {
	keys := append(lo.Keys(s.values), lo.Keys(s.raw)...)
	slices.Sort(keys)
	return keys
}

// Len returns the number of values in the store.
func (s *Store) Len() int {
	return len(s.values) + len(s.raw)
}

// Map returns all values in the store as plain values keyed by key.
// Nil values are omitted, as they cannot be saved.
func (s *Store) Map() map[string]any {
	m := make(map[string]any, s.Len())
	for k, v := range s.raw {
		if v != nil {
			m[k] = v
		}
	}
	for k, p := range s.values {
		v := reflect.ValueOf(p).Elem()
		if !v.IsValid() || ((v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer || v.Kind() == reflect.Map || v.Kind() == reflect.Slice) && v.IsNil()) {
			continue
		}
		m[k] = v.Interface()
	}
	return m
}

// Save saves the store to the given file, in TOML or JSON format
// according to its extension.
func (s *Store) Save(filename string) error {
	var b []byte
	var err error
	switch ext := filepath.Ext(filename); ext {
	case ".toml":
		b, err = toml.Marshal(s.Map())
	case ".json":
		b, err = json.MarshalIndent(s.Map(), "", "\t")
	default:
		return fmt.Errorf("persist.Store.Save: unsupported file extension %q", ext)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}

// Open opens the store from the given file, in TOML or JSON format
// according to its extension. Loaded values replace existing ones with
// the same keys: values already returned by [Get] are set through
// their pointers, and the others are typed on their next [Get].
func (s *Store) Open(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	m := map[string]any{}
	switch ext := filepath.Ext(filename); ext {
	case ".toml":
		err = toml.Unmarshal(b, &m)
	case ".json":
		err = json.Unmarshal(b, &m)
	default:
		return fmt.Errorf("persist.Store.Open: unsupported file extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("persist.Store.Open: %q: %w", filename, err)
	}
	for k, v := range m {
		if p, ok := s.values[k]; ok {
			if err := convert(v, p); err == nil {
				continue
			}
			delete(s.values, k)
		}
		s.raw[k] = v
	}
	return nil
}
