// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slicesx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove(t *testing.T) {
	s := []string{"a", "b", "c", "d"}
	s, err := Move(s, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a", "d"}, s)

	s, err = Move(s, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "b", "c", "a"}, s)

	_, err = Move(s, 4, 0)
	assert.Error(t, err)
	_, err = Move(s, 0, -1)
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 5))
	assert.Equal(t, 5, Clamp(9, 5))
	assert.Equal(t, 2, Clamp(2, 5))
}

func TestSearch(t *testing.T) {
	s := []int{10, 11, 12, 13, 14}
	for i, v := range s {
		for start := -1; start <= len(s)+1; start++ {
			assert.Equal(t, i, Search(s, func(e int) bool { return e == v }, start))
		}
	}
	assert.Equal(t, -1, Search(s, func(e int) bool { return e == 99 }))
	assert.Equal(t, -1, Search([]int{}, func(e int) bool { return true }))
}
