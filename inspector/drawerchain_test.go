// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"cogentcore.org/inspect/attrs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type traceDrawer struct {
	name     string
	log      *[]string
	next     *bool
	disposed *int
}

func (td *traceDrawer) Init(p *Property) error { return nil }

func (td *traceDrawer) Draw(c *DrawContext, label string) {
	*td.log = append(*td.log, td.name)
	ok := c.CallNext(label)
	if td.next != nil {
		*td.next = ok
	}
}

func (td *traceDrawer) Dispose() {
	if td.disposed != nil {
		*td.disposed++
	}
}

type failDrawer struct{}

func (fd *failDrawer) Init(p *Property) error       { return errors.New("boom") }
func (fd *failDrawer) Draw(c *DrawContext, l string) {}

func traceSpec(priority int, log *[]string, next *bool) *DrawerSpec {
	name := strconv.Itoa(priority)
	return &DrawerSpec{Name: name, Priority: priority, New: func() Drawer {
		return &traceDrawer{name: name, log: log, next: next}
	}}
}

func TestDrawerChainOrder(t *testing.T) {
	var log []string
	var last bool
	d := NewDrawers(traceSpec(1, &log, &last), traceSpec(10, &log, nil), traceSpec(5, &log, nil))
	tr := newTestTree(t, targetsOf(newPlayers(1)), WithDrawers(d))
	p := find(t, tr, "Health")

	p.Draw(newRecorder(), "Health")
	assert.Equal(t, []string{"10", "5", "1"}, log)
	assert.False(t, last, "calling past the end of the chain")

	chain := p.DrawerChain()
	assert.Equal(t, 3, chain.Len())
	assert.Equal(t, "10", chain.Specs()[0].Name)

	log = nil
	p.Draw(newRecorder(), "Health")
	assert.Equal(t, []string{"10", "5", "1"}, log, "the chain restarts on every draw")
}

func TestDrawerChainStableOrder(t *testing.T) {
	var log []string
	a := &DrawerSpec{Name: "a", New: func() Drawer { return &traceDrawer{name: "a", log: &log} }}
	b := &DrawerSpec{Name: "b", New: func() Drawer { return &traceDrawer{name: "b", log: &log} }}
	tr := newTestTree(t, targetsOf(newPlayers(1)), WithDrawers(NewDrawers(a, b)))
	find(t, tr, "Name").Draw(newRecorder(), "Name")
	assert.Equal(t, []string{"a", "b"}, log)
}

func TestDrawerSpecFilters(t *testing.T) {
	tr := newTestTree(t, targetsOf(newPlayers(1)))
	readOnly := &DrawerSpec{Attribute: reflect.TypeFor[*attrs.ReadOnly]()}
	ints := &DrawerSpec{ValueType: reflect.TypeFor[int]()}
	named := &DrawerSpec{Match: func(p *Property) bool { return p.Name() == "Name" }}

	level, health, name := find(t, tr, "Level"), find(t, tr, "Health"), find(t, tr, "Name")
	assert.True(t, readOnly.Applies(level))
	assert.False(t, readOnly.Applies(health))
	assert.True(t, ints.Applies(health))
	assert.False(t, ints.Applies(name))
	assert.True(t, named.Applies(name))
	assert.False(t, named.Applies(health))
}

func TestDrawerInitError(t *testing.T) {
	var log []string
	d := NewDrawers(
		&DrawerSpec{Name: "fail", Priority: 10, New: func() Drawer { return &failDrawer{} }},
		traceSpec(1, &log, nil),
	)
	tr := newTestTree(t, targetsOf(newPlayers(1)), WithDrawers(d))
	r := newRecorder()
	find(t, tr, "Health").Draw(r, "Health")
	assert.Equal(t, []string{"message Health: boom"}, r.lines)
	assert.Empty(t, log)
	_, ok := find(t, tr, "Health").DrawerChain().Drawers()[0].(*ErrorDrawer)
	assert.True(t, ok)
}

func TestDrawerChainDispose(t *testing.T) {
	var log []string
	disposed := 0
	d := NewDrawers(&DrawerSpec{Name: "d", New: func() Drawer {
		return &traceDrawer{name: "d", log: &log, disposed: &disposed}
	}})
	tr := newTestTree(t, targetsOf(newPlayers(1)), WithDrawers(d))
	p := find(t, tr, "Health")
	p.Draw(newRecorder(), "Health")
	require.Equal(t, 0, disposed)
	p.Refresh()
	assert.Equal(t, 1, disposed)
}

func TestNewDrawerChain(t *testing.T) {
	var log []string
	dc := NewDrawerChain(&traceDrawer{name: "x", log: &log})
	assert.Nil(t, dc.Current())
	assert.True(t, dc.MoveNext())
	assert.NotNil(t, dc.Current())
	assert.False(t, dc.MoveNext())
	assert.False(t, dc.MoveNext())
	assert.Nil(t, dc.Current())
	dc.Reset()
	assert.True(t, dc.MoveNext())
	assert.Empty(t, dc.Specs())
}
