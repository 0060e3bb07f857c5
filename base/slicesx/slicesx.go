// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slicesx provides additional slice functions
// beyond those in the standard [slices] package.
package slicesx

import (
	"fmt"
	"slices"
)

// Move moves the element in the given slice at the given
// old position to the given new position and returns the
// resulting slice. The new position is interpreted in terms
// of the slice after the element has been removed, so moving
// to len(s)-1 places the element last. It returns an error
// if either index is out of range.
func Move[E any](s []E, from, to int) ([]E, error) {
	if from < 0 || from >= len(s) {
		return s, fmt.Errorf("slicesx.Move: from index %d out of range [0, %d)", from, len(s))
	}
	if to < 0 || to >= len(s) {
		return s, fmt.Errorf("slicesx.Move: to index %d out of range [0, %d)", to, len(s))
	}
	if from == to {
		return s, nil
	}
	temp := s[from]
	s = slices.Delete(s, from, from+1)
	s = slices.Insert(s, to, temp)
	return s, nil
}

// Clamp returns the given index clamped to the range [0, n].
func Clamp(i, n int) int {
	return max(0, min(i, n))
}

// Search returns the index of the item in the given slice that matches the target
// according to the given match function, using the given optional starting index
// to optimize the search by searching bidirectionally outward from given index.
// This is much faster when you have some idea about where the item might be.
// If no start index is given, it starts in the middle, which is a good default.
// It returns -1 if no item matching the match function is found.
func Search[E any](slice []E, match func(e E) bool, startIndex ...int) int {
	n := len(slice)
	if n == 0 {
		return -1
	}
	si := n / 2
	if len(startIndex) > 0 && startIndex[0] >= 0 {
		si = min(startIndex[0], n-1)
	}
	for d := 0; si-d >= 0 || si+d < n; d++ {
		if up := si + d; up < n && match(slice[up]) {
			return up
		}
		if dn := si - d - 1; dn >= 0 && match(slice[dn]) {
			return dn
		}
	}
	return -1
}
