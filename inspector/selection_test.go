// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionList(t *testing.T) {
	var sl SelectionList
	assert.False(t, sl.Handle(2, ItemInput{}))
	assert.Equal(t, 0, sl.Len())

	assert.True(t, sl.Handle(2, ItemInput{Clicked: true}))
	assert.Equal(t, []int{2}, sl.Indices())

	sl.Handle(5, ItemInput{Clicked: true, Shift: true})
	assert.Equal(t, []int{2, 3, 4, 5}, sl.Indices())

	sl.Handle(3, ItemInput{Clicked: true, Action: true})
	assert.Equal(t, []int{2, 4, 5}, sl.Indices())
	assert.False(t, sl.Contains(3))

	sl.Handle(0, ItemInput{Clicked: true, Shift: true})
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, sl.Indices())

	sl.Retain(3)
	assert.Equal(t, []int{0, 1, 2}, sl.Indices())

	sl.Handle(7, ItemInput{Clicked: true, Action: true})
	assert.Equal(t, []int{0, 1, 2, 7}, sl.Indices())

	sl.Handle(1, ItemInput{Clicked: true})
	assert.Equal(t, []int{1}, sl.Indices())

	sl.Clear()
	assert.Equal(t, 0, sl.Len())
}

func TestSelectionIndicesCopy(t *testing.T) {
	var sl SelectionList
	sl.Select(1)
	ix := sl.Indices()
	ix[0] = 9
	assert.True(t, sl.Contains(1))
}
