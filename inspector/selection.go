// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"slices"

	"github.com/samber/lo"
)

// SelectionList is the selected elements of a collection, by index.
// Clicking an element selects only it, clicking with the action key
// toggles it, and clicking with shift selects the range from the
// element clicked last.
type SelectionList struct {
	indices []int
	anchor  int
}

// Select makes the element at the given index the only selected one.
func (sl *SelectionList) Select(i int) {
	sl.indices = []int{i}
	sl.anchor = i
}

// Toggle toggles whether the element at the given index is selected.
func (sl *SelectionList) Toggle(i int) {
	if sl.Contains(i) {
		sl.indices = lo.Without(sl.indices, i)
	} else {
		sl.indices = append(sl.indices, i)
		slices.Sort(sl.indices)
	}
	sl.anchor = i
}

// SelectRange adds the elements from the last one clicked
// to the given index to the selection.
func (sl *SelectionList) SelectRange(i int) {
	from, to := min(sl.anchor, i), max(sl.anchor, i)
	sl.indices = lo.Uniq(append(sl.indices, lo.RangeFrom(from, to-from+1)...))
	slices.Sort(sl.indices)
}

// Clear deselects all elements.
func (sl *SelectionList) Clear() {
	sl.indices = nil
	sl.anchor = 0
}

// Contains returns whether the element at the given index is selected.
func (sl *SelectionList) Contains(i int) bool {
	return lo.Contains(sl.indices, i)
}

// Len returns the number of selected elements.
func (sl *SelectionList) Len() int {
	return len(sl.indices)
}

// Indices returns the indices of the selected elements in ascending order.
func (sl *SelectionList) Indices() []int {
	return slices.Clone(sl.indices)
}

// Handle updates the selection for the given input on the element
// at the given index, returning whether it changed.
func (sl *SelectionList) Handle(i int, in ItemInput) bool {
	if !in.Clicked {
		return false
	}
	switch {
	case in.Shift:
		sl.SelectRange(i)
	case in.Action:
		sl.Toggle(i)
	default:
		sl.Select(i)
	}
	return true
}

// Retain drops the selected indices that are not less than n,
// for when a collection has shrunk.
func (sl *SelectionList) Retain(n int) {
	sl.indices = lo.Filter(sl.indices, func(i int, _ int) bool { return i < n })
}
