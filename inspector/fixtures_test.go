// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"fmt"
	"testing"

	"cogentcore.org/inspect/attrs"
	"cogentcore.org/inspect/dnd"
	"github.com/stretchr/testify/require"
)

type stats struct {
	Speed float64
	Armor int
}

type dog struct {
	Name string
}

type cat struct {
	Lives int
}

type player struct {
	Name   string
	Health int
	Stats  stats
	Tags   []string
	Nums   []int
	Pos    [3]int
	Scores map[string]int
	Pet    any
	Level  int `inspect:"readonly"`
	Skip   int `inspect:"-"`
	Notes  func()
	secret int
}

func (p *player) Heal() { p.Health = 100 }

func (p *player) InspectorMemberAttributes() map[string][]any {
	return map[string][]any{"Heal": {&attrs.Button{}}}
}

type counter struct {
	N int
}

func (c *counter) Bump() { c.N = 42 }

func (c *counter) Explode() {
	c.N = -1
	panic("boom")
}

func (c *counter) InspectorMemberAttributes() map[string][]any {
	return map[string][]any{"Bump": {&attrs.Button{}}, "Explode": {&attrs.Button{}}}
}

type counters struct {
	Slot  any
	Items map[string]counter
}

func newPlayers(n int) []*player {
	ps := make([]*player, n)
	for i := range ps {
		ps[i] = &player{Name: fmt.Sprintf("P%d", i), Health: 10, Tags: []string{"a", "b", "c"}, Nums: []int{1, 2, 3}, Pos: [3]int{1, 2, 3}}
	}
	return ps
}

func targetsOf[T any](ts []T) []any {
	out := make([]any, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}

func newTestTree(t *testing.T, targets []any, opts ...Option) *Tree {
	t.Helper()
	tr, err := NewTree(targets, opts...)
	require.NoError(t, err)
	t.Cleanup(tr.Close)
	return tr
}

func find(t *testing.T, tr *Tree, path string) *Property {
	t.Helper()
	p, err := tr.Find(path)
	require.NoError(t, err)
	return p
}

// recorder is a painter that records what is drawn, with scripted input.
type recorder struct {
	lines   []string
	presses map[string]bool
	edits   map[string]any
}

func newRecorder() *recorder {
	return &recorder{presses: map[string]bool{}, edits: map[string]any{}}
}

func (r *recorder) add(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *recorder) Label(label, text string)                   { r.add("label %s=%s", label, text) }
func (r *recorder) MessageBox(text string, kind MessageKinds) { r.add("message %s", text) }
func (r *recorder) Foldout(label string, expanded bool) bool {
	r.add("foldout %s", label)
	return true
}
func (r *recorder) Field(label string, value any, mixed bool) (any, bool) {
	r.add("field %s=%v", label, value)
	v, ok := r.edits[label]
	delete(r.edits, label)
	return v, ok
}
func (r *recorder) Button(label string) bool {
	r.add("button %s", label)
	ok := r.presses[label]
	delete(r.presses, label)
	return ok
}
func (r *recorder) BeginGroup(kind, label string)               { r.add("group %s %s", kind, label) }
func (r *recorder) EndGroup()                                   { r.add("endgroup") }
func (r *recorder) BeginItem(index int, selected bool) ItemInput { return ItemInput{} }
func (r *recorder) EndItem()                                    {}
func (r *recorder) BeginDisabled()                              { r.add("disabled") }
func (r *recorder) EndDisabled()                                { r.add("enabled") }
func (r *recorder) Rect() dnd.Rect                              { return dnd.Rect{} }
