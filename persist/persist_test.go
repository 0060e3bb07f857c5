// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package persist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type selection struct {
	Indices []int
	Anchor  int
}

func TestGet(t *testing.T) {
	s := NewStore()
	k := Key("state", "game.Player", "Items", "expanded")
	assert.Equal(t, "state+game.Player+Items+expanded", k)

	p := Get(s, k, true)
	assert.True(t, *p)
	*p = false
	assert.Same(t, p, Get(s, k, true))
	assert.False(t, *Get(s, k, true))

	// a different type resets the value
	i := Get(s, k, 3)
	assert.Equal(t, 3, *i)
	assert.True(t, s.Has(k))
	assert.Equal(t, 1, s.Len())

	s.Delete(k)
	assert.False(t, s.Has(k))
}

func TestDeletePrefix(t *testing.T) {
	s := NewStore()
	Get(s, Key("a", "x"), 1)
	Get(s, Key("a", "y"), 2)
	Get(s, Key("b", "x"), 3)
	s.DeletePrefix("a+")
	assert.Equal(t, []string{"b+x"}, s.Keys())
}

func testSaveOpen(t *testing.T, ext string) {
	fn := filepath.Join(t.TempDir(), "state"+ext)
	s := NewStore()
	*Get(s, Key("state", "T", "A", "expanded"), false) = true
	Get(s, Key("collection", "T", "List", "selection"), selection{Indices: []int{1, 3}, Anchor: 1})
	Get(s, "nil", []int(nil))
	require.NoError(t, s.Save(fn))

	o := NewStore()
	require.NoError(t, o.Open(fn))
	assert.Equal(t, 2, o.Len())
	assert.True(t, *Get(o, Key("state", "T", "A", "expanded"), false))
	sel := Get(o, Key("collection", "T", "List", "selection"), selection{})
	assert.Equal(t, selection{Indices: []int{1, 3}, Anchor: 1}, *sel)
	assert.Equal(t, []string{"collection+T+List+selection", "state+T+A+expanded"}, o.Keys())
}

func TestSaveOpenTOML(t *testing.T) {
	testSaveOpen(t, ".toml")
}

func TestSaveOpenJSON(t *testing.T) {
	testSaveOpen(t, ".json")
}

func TestBadFiles(t *testing.T) {
	s := NewStore()
	assert.Error(t, s.Save(filepath.Join(t.TempDir(), "x.txt")))
	assert.Error(t, s.Open(filepath.Join(t.TempDir(), "missing.toml")))
}

func TestConvertFailure(t *testing.T) {
	s := NewStore()
	s.raw["k"] = "not a number"
	assert.Equal(t, 7, *Get(s, "k", 7))
}

func TestOpenLiveValues(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "state.json")
	s := NewStore()
	*Get(s, "expanded", false) = true
	*Get(s, "count", 0) = 7
	require.NoError(t, s.Save(fn))

	o := NewStore()
	expanded := Get(o, "expanded", false)
	count := Get(o, "count", "none")
	require.NoError(t, o.Open(fn))
	assert.True(t, *expanded)
	assert.Same(t, expanded, Get(o, "expanded", false))

	// a value of another type is typed again on its next get
	assert.Equal(t, "none", *count)
	assert.Equal(t, 7, *Get(o, "count", 0))
}
