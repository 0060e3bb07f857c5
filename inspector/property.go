// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"fmt"
	"reflect"
	"strings"

	"cogentcore.org/inspect/attrs"
	"cogentcore.org/inspect/base/errors"
	"cogentcore.org/inspect/base/labels"
	"cogentcore.org/inspect/persist"
)

// Property is one node of a [Tree]: a slot (the root target set, a
// member, or a collection element) and its values across all targets.
// Properties are created lazily as their parent's children are
// accessed, and reused across updates as long as their slot exists.
type Property struct {
	tree   *Tree
	parent *Property
	info   *PropertyInfo
	index  int
	path   string

	// tick is the tree update id of the last update.
	tick  uint64
	stale bool

	entry *ValueEntry
	view  EntryView

	children       *Children
	resolver       PropertyResolver
	customResolver bool
	resolved       bool

	attrResolver  AttributeResolver
	groupResolver GroupResolver
	chainResolver DrawerChainResolver

	// err is the error resolving the children of the property.
	err error

	label string

	// SkipDrawCount is the number of upcoming draws to skip, which is
	// used by drawers that draw the property as part of something else.
	SkipDrawCount int

	state    *PropertyState
	disposed bool
}

func newProperty(tree *Tree, parent *Property, info *PropertyInfo, index int) *Property {
	p := &Property{tree: tree, parent: parent, info: info, index: index}
	switch {
	case parent == nil:
	case parent.path == "" || strings.HasPrefix(info.Name, "["):
		p.path = parent.path + info.Name
	default:
		p.path = parent.path + "." + info.Name
	}
	p.entry = newValueEntry(p, info.Accessor, info.Type)
	p.view = EntryView{Kind: DeclaredView, Type: info.Type}
	p.attrResolver = &DefaultAttributeResolver{}
	p.groupResolver = &DefaultGroupResolver{}
	p.chainResolver = &DefaultDrawerChainResolver{}
	return p
}

func (p *Property) String() string {
	if p.path == "" {
		return "<root> " + p.info.Type.String()
	}
	return p.path + " " + p.ValueType().String()
}

// Tree returns the tree of the property.
func (p *Property) Tree() *Tree { return p.tree }

// Parent returns the parent of the property, which is nil for the root.
func (p *Property) Parent() *Property { return p.parent }

// Info returns the info of the slot of the property.
func (p *Property) Info() *PropertyInfo { return p.info }

// Index returns the index of the property in its parent's children.
func (p *Property) Index() int { return p.index }

// Name returns the name of the slot of the property.
func (p *Property) Name() string { return p.info.Name }

// Path returns the path of the property from the root, such as
// "Enemies[2].Health". The path of the root is empty.
func (p *Property) Path() string { return p.path }

// NiceName returns the name of the property in a form suitable for a label.
func (p *Property) NiceName() string {
	return labels.NiceName(p.info.Name)
}

// Label returns the label of the property, which is
// its [Property.NiceName] unless set with [Property.SetLabel].
func (p *Property) Label() string {
	if p.label != "" {
		return p.label
	}
	return p.NiceName()
}

// SetLabel sets the label of the property.
func (p *Property) SetLabel(label string) *Property {
	p.label = label
	return p
}

// ValueEntry returns the values of the property across the targets.
func (p *Property) ValueEntry() *ValueEntry { return p.entry }

// BaseValueEntry returns the underlying values of the property
// regardless of the type they are presented as.
func (p *Property) BaseValueEntry() *ValueEntry { return p.entry }

// View returns the type the values are currently presented as.
func (p *Property) View() EntryView { return p.view }

// ValueType returns the type the values are presented as, which is
// the common runtime type for slots of interface types.
func (p *Property) ValueType() reflect.Type { return p.view.Type }

// IsSelfReadOnly returns whether the slot of the property itself
// cannot be written, because of its accessor or an [attrs.ReadOnly].
func (p *Property) IsSelfReadOnly() bool {
	if p.info.Accessor != nil && p.info.Accessor.ReadOnly() && !p.info.IsMethod() {
		return true
	}
	return attrs.Has[*attrs.ReadOnly](p.Attributes())
}

// IsReadOnly returns whether the property or any of its ancestors is read-only.
func (p *Property) IsReadOnly() bool {
	for q := p; q != nil; q = q.parent {
		if q.IsSelfReadOnly() {
			return true
		}
	}
	return false
}

// Err returns the error resolving the property, if any.
func (p *Property) Err() error { return p.err }

// Attributes returns the attributes of the property.
func (p *Property) Attributes() []any {
	return p.attrResolver.Attributes(p)
}

// AttributeSource returns where the given attribute of the property is declared.
func (p *Property) AttributeSource(a any) (AttributeSources, error) {
	return p.attrResolver.AttributeSource(p, a)
}

// GroupProperties returns the properties in the group of the
// given kind that starts at the property.
func (p *Property) GroupProperties(kind string) []*Property {
	return p.groupResolver.GroupProperties(p, kind)
}

// DrawerChain returns the drawer chain of the property.
func (p *Property) DrawerChain() *DrawerChain {
	return p.chainResolver.DrawerChain(p)
}

// ChildrenResolver returns the children resolver of the
// property, which is nil if it has no children.
func (p *Property) ChildrenResolver() PropertyResolver {
	return p.resolver
}

// SetChildrenResolver sets a custom children resolver, which is used
// instead of the one located for the value type, and refreshes the property.
func (p *Property) SetChildrenResolver(r PropertyResolver) *Property {
	p.refresh()
	p.resolver, p.customResolver = r, r != nil
	p.stale = true
	return p
}

// SetAttributeResolver sets the attribute resolver and refreshes the property.
func (p *Property) SetAttributeResolver(r AttributeResolver) *Property {
	p.attrResolver = r
	p.Refresh()
	return p
}

// SetGroupResolver sets the group resolver and refreshes the property.
func (p *Property) SetGroupResolver(r GroupResolver) *Property {
	p.groupResolver = r
	p.Refresh()
	return p
}

// SetDrawerChainResolver sets the drawer chain resolver and refreshes the property.
func (p *Property) SetDrawerChainResolver(r DrawerChainResolver) *Property {
	p.chainResolver.Reset()
	p.chainResolver = r
	p.Refresh()
	return p
}

// Children returns the children of the property, which is nil
// if it has none or has not been updated yet.
func (p *Property) Children() *Children {
	return p.children
}

// Update updates the values of the property and reconciles its
// children with its current values. Properties are updated at most
// once per tree update unless force is set or they have been changed
// since. A change of the type the values are presented as refreshes
// the property.
func (p *Property) Update(force bool) {
	if p.disposed {
		return
	}
	if !force && !p.stale && p.tick == p.tree.tick {
		return
	}
	force = force || p.stale
	p.tick = p.tree.tick
	p.stale = false

	p.entry.Update()
	if v := viewFor(p.entry); v != p.view {
		p.tree.logger.Debug("inspector: view changed", "path", p.path, "from", p.view, "to", v)
		p.refresh()
		p.view = v
	}
	if !p.resolved {
		p.resolveChildren()
	}
	if p.resolver == nil || !p.resolver.Initialized() {
		return
	}
	if p.children == nil {
		p.children = newChildren(p)
	}
	p.children.update(force)
}

// resolveChildren locates and initializes the children resolver.
func (p *Property) resolveChildren() {
	p.resolved = true
	if p.resolver == nil {
		r, err := p.tree.resolvers.Locate(p)
		if err != nil {
			p.err = err
			return
		}
		p.resolver = r
	}
	if p.resolver == nil {
		return
	}
	if err := p.resolver.Initialize(p); err != nil {
		p.err = &ResolutionError{Path: p.path, Err: err}
		p.tree.logger.Debug("inspector: children resolver failed", "path", p.path, "err", err)
	}
}

// Refresh discards the children of the property and everything
// resolved for it, which is resolved again on the next update.
func (p *Property) Refresh() {
	p.refresh()
	p.stale = true
}

func (p *Property) refresh() {
	if p.children != nil {
		p.children.dispose()
		p.children = nil
	}
	if p.resolver != nil {
		p.resolver.Deinitialize()
		if !p.customResolver {
			p.resolver = nil
		}
	}
	p.resolved = false
	p.err = nil
	p.attrResolver.Reset()
	p.groupResolver.Reset()
	p.chainResolver.Reset()
}

// markStale makes the next update of the property re-read its values
// and reconcile its children even within the same tree update.
func (p *Property) markStale() {
	p.stale = true
}

// dispose releases the property and all of its descendants.
func (p *Property) dispose() {
	if p.disposed {
		return
	}
	p.refresh()
	p.entry.listeners = nil
	p.disposed = true
}

// Disposed returns whether the property has been removed from its tree.
func (p *Property) Disposed() bool { return p.disposed }

// Collection returns the children resolver of the property
// if it is a collection.
func (p *Property) Collection() (CollectionResolver, bool) {
	cr, ok := p.resolver.(CollectionResolver)
	return cr, ok
}

// ApplyChanges applies the queued collection changes of the property and
// all of its materialized descendants, returning whether there were any.
func (p *Property) ApplyChanges() (bool, error) {
	changed := false
	var errs []error
	p.WalkDown(func(q *Property) bool {
		cr, ok := q.Collection()
		if !ok {
			return Continue
		}
		ch, err := cr.ApplyChanges()
		if ch {
			changed = true
			q.markStale()
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", q.path, err))
		}
		return Continue
	})
	return changed, errors.Join(errs...)
}

// Continue and Break are the return values of [Property.WalkDown] functions.
const (
	Continue = true
	Break    = false
)

// WalkDown calls the given function on the property and its materialized
// descendants, depth first. Returning [Break] skips the descendants of a
// property.
func (p *Property) WalkDown(fun func(q *Property) bool) {
	if !fun(p) || p.children == nil {
		return
	}
	for _, c := range p.children.materialized() {
		c.WalkDown(fun)
	}
}

// Draw draws the property with the given label through its drawer
// chain, and applies the collection changes queued while drawing.
func (p *Property) Draw(pt Painter, label string) {
	if p.SkipDrawCount > 0 {
		p.SkipDrawCount--
		return
	}
	p.Update(false)
	chain := p.DrawerChain()
	chain.Reset()
	ro := p.IsSelfReadOnly()
	if ro {
		pt.BeginDisabled()
	}
	c := &DrawContext{Painter: pt, Property: p, chain: chain}
	c.CallNext(label)
	if ro {
		pt.EndDisabled()
	}
	if cr, ok := p.Collection(); ok && cr.HasPendingChanges() {
		_, err := cr.ApplyChanges()
		if err != nil {
			p.tree.logger.Warn("inspector: applying collection changes", "path", p.path, "err", err)
		}
		p.Update(true)
	}
}

// ContextKey returns the scratch store key for the given drawer
// and key on the property.
func (p *Property) ContextKey(drawer, key string) string {
	return persist.Key(drawer, p.tree.targetType.String(), p.path, key)
}

// Context returns the value in the scratch store of the tree for the
// given drawer and key on the property, creating it with the given
// default value if needed. Values are kept across frames and, if the
// store is saved, across sessions.
func Context[T any](p *Property, drawer, key string, def T) *T {
	return persist.Get(p.tree.store, p.ContextKey(drawer, key), def)
}

// PropertyState is the persistent drawing state of a property.
type PropertyState struct {
	expanded *bool
}

// State returns the persistent drawing state of the property.
func (p *Property) State() *PropertyState {
	if p.state == nil {
		p.state = &PropertyState{expanded: Context(p, "state", "expanded", p.tree.settings.DefaultExpanded)}
	}
	return p.state
}

// Expanded returns whether the property is expanded.
func (ps *PropertyState) Expanded() bool { return *ps.expanded }

// SetExpanded sets whether the property is expanded.
func (ps *PropertyState) SetExpanded(expanded bool) { *ps.expanded = expanded }
