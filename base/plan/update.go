// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plan provides an efficient mechanism for updating a slice
// to contain a target list of elements, generating minimal edits to
// modify the current slice contents to match the target.
// The mechanism depends on the use of unique name string identifiers
// to determine whether an element is currently configured correctly.
// Elements whose names are still part of the target are kept as the
// same values, so any state they carry survives the update.
package plan

import (
	"log/slog"
	"slices"

	"cogentcore.org/inspect/base/slicesx"
)

// Namer is an interface that types can implement to specify their name in a plan context.
type Namer interface {

	// PlanName returns the name of the object in a plan context.
	PlanName() string
}

// Update ensures that the elements of the slice contain
// the elements according to the plan, specified by unique
// element names, with n = total number of items in the target slice.
// If a new item is needed then new is called to create it,
// for given name at given index position.
// If update is non-nil, it is called on every element that ends
// up in the slice (new or kept) with its final index.
// If destroy is non-nil, then it is called on any element
// that is being deleted from the slice.
// It returns whether any changes were made.
func Update[T Namer](s *[]T, n int, name func(i int) string, new func(name string, i int) T, update func(e T, i int), destroy func(e T)) bool {
	names := make([]string, n)
	nmap := make(map[string]int, n)
	for i := range n {
		nm := name(i)
		names[i] = nm
		if _, has := nmap[nm]; has {
			slog.Error("plan.Update: duplicate name", "name", nm)
		}
		nmap[nm] = i
	}
	mods := false
	r := *s
	// first remove anything we don't want
	smap := make(map[string]int, len(r))
	for i := len(r) - 1; i >= 0; i-- {
		nm := r[i].PlanName()
		if _, ok := nmap[nm]; !ok {
			mods = true
			if destroy != nil {
				destroy(r[i])
			}
			r = slices.Delete(r, i, i+1)
		}
	}
	for i, e := range r {
		smap[e.PlanName()] = i
	}
	// next add and move items as needed; in order so guaranteed
	for i, tn := range names {
		start, ok := smap[tn]
		ci := -1
		if ok {
			ci = slicesx.Search(r, func(e T) bool { return e.PlanName() == tn }, start)
		}
		if ci < 0 {
			mods = true
			r = slices.Insert(r, i, new(tn, i))
		} else if ci != i {
			mods = true
			e := r[ci]
			r = slices.Delete(r, ci, ci+1)
			r = slices.Insert(r, i, e)
		}
	}
	if update != nil {
		for i, e := range r {
			update(e, i)
		}
	}
	*s = r
	return mods
}
