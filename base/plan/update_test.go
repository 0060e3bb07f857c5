// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type nameObj struct {
	name  string
	index int
}

func (n *nameObj) PlanName() string {
	return n.name
}

func assertNames(t *testing.T, names []string, items []*nameObj) {
	if len(names) != len(items) {
		t.Error("lengths of lists are not the same:", len(names), len(items))
	}
	for i, nm := range names {
		inm := items[i].PlanName()
		if nm != inm {
			t.Error("item at index:", i, "name mismatch, should be:", nm, "was:", inm)
		}
		assert.Equal(t, i, items[i].index)
	}
}

func update(s *[]*nameObj, names []string, destroyed *[]string) bool {
	return Update(s, len(names),
		func(i int) string { return names[i] },
		func(name string, i int) *nameObj { return &nameObj{name: name} },
		func(e *nameObj, i int) { e.index = i },
		func(e *nameObj) { *destroyed = append(*destroyed, e.name) })
}

func TestUpdate(t *testing.T) {
	var s []*nameObj
	var destroyed []string

	names1 := []string{"a", "b", "c"}
	changed := update(&s, names1, &destroyed)
	assertNames(t, names1, s)
	assert.Equal(t, true, changed)
	b := s[1]

	names2 := []string{"a", "aa", "b", "c"}
	changed = update(&s, names2, &destroyed)
	assertNames(t, names2, s)
	assert.Equal(t, true, changed)
	assert.Same(t, b, s[2])

	names3 := []string{"a", "aa", "bb", "c"}
	changed = update(&s, names3, &destroyed)
	assertNames(t, names3, s)
	assert.Equal(t, true, changed)
	assert.Equal(t, []string{"b"}, destroyed)

	names4 := []string{"c", "aa", "bb"}
	changed = update(&s, names4, &destroyed)
	assertNames(t, names4, s)
	assert.Equal(t, true, changed)
	assert.Equal(t, []string{"b", "a"}, destroyed)

	changed = update(&s, names4, &destroyed)
	assertNames(t, names4, s)
	assert.Equal(t, false, changed)
}

func TestUpdateNilCallbacks(t *testing.T) {
	var s []*nameObj
	changed := Update(&s, 2,
		func(i int) string { return []string{"x", "y"}[i] },
		func(name string, i int) *nameObj { return &nameObj{name: name, index: i} }, nil, nil)
	assert.True(t, changed)
	assert.Len(t, s, 2)
}
