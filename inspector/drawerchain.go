// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"cmp"
	"reflect"
	"slices"

	"cogentcore.org/inspect/attrs"
	"cogentcore.org/inspect/base/reflectx"
)

// Drawer priorities. Drawers with higher priorities run first.
const (
	// PriorityValue is for drawers that draw a value itself.
	PriorityValue = 0

	// PriorityAttribute is for drawers that draw a value
	// according to an attribute.
	PriorityAttribute = 1000

	// PriorityWrapper is for drawers that wrap the drawing
	// of a value, such as by changing its label.
	PriorityWrapper = 2000

	// PrioritySuper is for drawers that decide whether and how
	// the rest of the chain runs.
	PrioritySuper = 3000
)

// Drawer draws a property, typically as one link of its [DrawerChain].
type Drawer interface {

	// Init initializes the drawer for the given property. A drawer that
	// fails to initialize is replaced by one that shows the error.
	Init(p *Property) error

	// Draw draws the property with the given label. Drawers that do
	// not draw the value themselves delegate with [DrawContext.CallNext].
	Draw(c *DrawContext, label string)
}

// Disposer is implemented by drawers that hold resources
// to release when their chain is discarded.
type Disposer interface {
	Dispose()
}

// DrawerSpec describes when and with which priority a drawer applies.
type DrawerSpec struct {

	// Name identifies the drawer, such as in scratch store keys.
	Name string

	// Priority orders the drawers of a chain, higher first.
	Priority int

	// Attribute, if set, is the attribute type that a property
	// must have for the drawer to apply.
	Attribute reflect.Type

	// ValueType, if set, is the type that the values of a property
	// must be compatible with for the drawer to apply.
	ValueType reflect.Type

	// Match, if set, is an additional predicate on the property.
	Match func(p *Property) bool

	// New returns a new drawer.
	New func() Drawer
}

// Applies returns whether the drawer applies to the given property.
func (ds *DrawerSpec) Applies(p *Property) bool {
	if ds.Attribute != nil && len(attrs.OfType(p.Attributes(), ds.Attribute)) == 0 {
		return false
	}
	if ds.ValueType != nil && !typeCompatible(p.ValueType(), ds.ValueType) {
		return false
	}
	return ds.Match == nil || ds.Match(p)
}

func typeCompatible(typ, want reflect.Type) bool {
	return typ == want || typ.AssignableTo(want) || reflectx.NonPointerType(typ) == want
}

// Drawers is a registry of drawers.
type Drawers struct {
	specs []*DrawerSpec
}

// NewDrawers returns a registry with the given drawers.
func NewDrawers(specs ...*DrawerSpec) *Drawers {
	return &Drawers{specs: specs}
}

// Add adds the given drawer. Drawers with the same priority
// run in the order they were added.
func (d *Drawers) Add(spec *DrawerSpec) *Drawers {
	d.specs = append(d.specs, spec)
	return d
}

// Specs returns all drawers in the order they were added.
func (d *Drawers) Specs() []*DrawerSpec {
	return d.specs
}

// Applicable returns the drawers that apply to the given property,
// ordered by descending priority.
func (d *Drawers) Applicable(p *Property) []*DrawerSpec {
	var out []*DrawerSpec
	for _, ds := range d.specs {
		if ds.Applies(p) {
			out = append(out, ds)
		}
	}
	slices.SortStableFunc(out, func(a, b *DrawerSpec) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
	return out
}

// DrawerChain is a forward-only cursor over the drawers of a
// property, restarted with [DrawerChain.Reset] for every draw.
type DrawerChain struct {
	drawers []Drawer
	specs   []*DrawerSpec
	current int
}

// NewDrawerChain returns a chain over the given drawers.
func NewDrawerChain(drawers ...Drawer) *DrawerChain {
	return &DrawerChain{drawers: drawers, current: -1}
}

// Reset rewinds the chain to before the first drawer.
func (dc *DrawerChain) Reset() {
	dc.current = -1
}

// MoveNext advances to the next drawer, returning whether there is one.
func (dc *DrawerChain) MoveNext() bool {
	if dc.current < len(dc.drawers) {
		dc.current++
	}
	return dc.current < len(dc.drawers)
}

// Current returns the current drawer, or nil if there is none.
func (dc *DrawerChain) Current() Drawer {
	if dc.current < 0 || dc.current >= len(dc.drawers) {
		return nil
	}
	return dc.drawers[dc.current]
}

// Len returns the number of drawers.
func (dc *DrawerChain) Len() int {
	return len(dc.drawers)
}

// Drawers returns all drawers in order.
func (dc *DrawerChain) Drawers() []Drawer {
	return dc.drawers
}

// Specs returns the specs the drawers were made from, in order.
// It is empty for chains made with [NewDrawerChain].
func (dc *DrawerChain) Specs() []*DrawerSpec {
	return dc.specs
}

func (dc *DrawerChain) dispose() {
	for _, d := range dc.drawers {
		if ds, ok := d.(Disposer); ok {
			ds.Dispose()
		}
	}
}

// DrawContext is the context of one draw of a property.
type DrawContext struct {
	Painter  Painter
	Property *Property
	chain    *DrawerChain
}

// CallNext draws the property with the next drawer in its chain,
// returning false (and drawing nothing) if there is none.
func (c *DrawContext) CallNext(label string) bool {
	if !c.chain.MoveNext() {
		return false
	}
	c.chain.Current().Draw(c, label)
	return true
}

// Tree returns the tree of the property.
func (c *DrawContext) Tree() *Tree {
	return c.Property.tree
}

// DrawerChainResolver resolves the drawer chain of a property.
type DrawerChainResolver interface {

	// DrawerChain returns the drawer chain of the given property.
	DrawerChain(p *Property) *DrawerChain

	// Reset discards the resolved chain.
	Reset()
}

// DefaultDrawerChainResolver resolves the chain of the drawers in the
// tree registry that apply to a property, and keeps it until it is reset.
// A property with an error only has the error drawer.
type DefaultDrawerChainResolver struct {
	chain *DrawerChain
}

func (cr *DefaultDrawerChainResolver) DrawerChain(p *Property) *DrawerChain {
	if cr.chain != nil {
		return cr.chain
	}
	if err := p.Err(); err != nil {
		cr.chain = NewDrawerChain(&ErrorDrawer{Err: err})
		return cr.chain
	}
	specs := p.tree.drawers.Applicable(p)
	chain := &DrawerChain{specs: specs, current: -1}
	for _, ds := range specs {
		d := ds.New()
		if err := d.Init(p); err != nil {
			p.tree.logger.Debug("inspector: drawer failed to initialize", "drawer", ds.Name, "path", p.Path(), "err", err)
			d = &ErrorDrawer{Err: err}
		}
		chain.drawers = append(chain.drawers, d)
	}
	cr.chain = chain
	return chain
}

func (cr *DefaultDrawerChainResolver) Reset() {
	if cr.chain != nil {
		cr.chain.dispose()
		cr.chain = nil
	}
}
