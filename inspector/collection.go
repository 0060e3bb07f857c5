// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"fmt"
	"reflect"
	"strconv"

	"cogentcore.org/inspect/attrs"
	"cogentcore.org/inspect/base/errors"
	"cogentcore.org/inspect/base/labels"
	"cogentcore.org/inspect/base/reflectx"
	"cogentcore.org/inspect/dnd"
)

// CollectionDrawer draws a list, array or map: a foldout header with
// the number of elements and an add button, and each element with a
// remove button and a drag handle. Elements can be selected, and
// dragged within the collection or to other collections of the same
// element type, including those of other trees in the same session.
// It is configured by [attrs.ListDrawerSettings] or
// [attrs.MetroListDrawerSettings] and the callback interfaces
// implemented by the owner of the collection.
type CollectionDrawer struct {
	property  *Property
	cr        CollectionResolver
	settings  attrs.ListDrawerSettings
	metro     *attrs.MetroListDrawerSettings
	callbacks *collectionCallbacks
	selection SelectionList
	zoneKey   string
}

func (cd *CollectionDrawer) Init(p *Property) error {
	cd.property = p
	cd.cr, _ = p.Collection()
	ls, a := attrs.ListSettings(p.Attributes())
	if ls != nil {
		cd.settings = *ls
	} else {
		cd.settings.ShowIndexLabels = p.tree.settings.ShowIndexLabels
	}
	cd.metro, _ = a.(*attrs.MetroListDrawerSettings)
	cb, err := resolveCallbacks(p, ls, a)
	if err != nil {
		return err
	}
	cd.callbacks = cb
	cd.zoneKey = p.tree.id.String() + "+" + p.path
	return nil
}

// Selection returns the selected elements.
func (cd *CollectionDrawer) Selection() *SelectionList {
	return &cd.selection
}

// editable returns whether the collection can be changed.
func (cd *CollectionDrawer) editable() bool {
	return !cd.cr.ReadOnly() && !cd.settings.ReadOnly
}

// resizable returns whether elements can be added and removed,
// which arrays never can.
func (cd *CollectionDrawer) resizable() bool {
	_, fixed := cd.cr.(*ArrayResolver)
	return cd.editable() && !fixed
}

// draggable returns whether elements can be dragged.
func (cd *CollectionDrawer) draggable() bool {
	return cd.editable() && cd.cr.Ordered() && cd.settings.Draggable()
}

func (cd *CollectionDrawer) Draw(c *DrawContext, label string) {
	p, pt := c.Property, c.Painter
	if p.entry.State() == ValuesUnavailable {
		pt.Label(label, "None")
		return
	}
	n := 0
	if p.children != nil {
		n = p.children.Len()
	}
	cd.selection.Retain(n)
	st := p.State()
	st.SetExpanded(pt.Foldout(label+" ("+strconv.Itoa(n)+")", st.Expanded()))
	header := pt.Rect()
	if cd.resizable() && !cd.settings.HideAddButton && pt.Button("+") {
		cd.Add()
	}
	if !st.Expanded() {
		return
	}

	session := p.tree.session
	zone := session.Zone(cd.zoneKey, cd.cr.ElementType(), true)
	zone.Owner = p.tree.id.String()
	zone.Enabled = cd.draggable()
	zone.BeginFrame()
	zone.Rect = header

	pt.BeginGroup("children", label)
	if cd.metro != nil {
		pt.BeginGroup("metro", cd.metro.SideLineColor)
	}
	for i := 0; i < n; i++ {
		q := p.children.Get(i)
		in := pt.BeginItem(i, cd.selection.Contains(i))
		cd.selection.Handle(i, in)
		q.Draw(pt, cd.itemLabel(q, i))
		r := pt.Rect()
		zone.Items = append(zone.Items, r)
		zone.Rect = zone.Rect.Union(r)
		if cd.draggable() {
			cd.handle(session, q, i, r)
		}
		if cd.resizable() && !cd.settings.HideRemoveButton && pt.Button("-") {
			cd.Remove(i)
		}
		pt.EndItem()
	}
	if cd.metro != nil {
		pt.EndGroup()
	}
	pt.EndGroup()
	if obj, h, ok := zone.Claim(); ok {
		cd.drop(obj, h, zone.InsertIndex)
	}
}

// itemLabel returns the label of the element at the given index.
func (cd *CollectionDrawer) itemLabel(q *Property, i int) string {
	var label string
	switch {
	case cd.callbacks.indexLabel != nil:
		label = cd.callbacks.indexLabel(i)
	case cd.cr.Ordered() && cd.settings.ShowIndexLabels:
		label = elementName(i)
	case !cd.cr.Ordered():
		label = q.Name()
	}
	if cd.metro != nil && cd.metro.IconGetter != "" {
		if icon, err := memberOf(q.entry.Value(0), cd.metro.IconGetter); err == nil {
			label = fmt.Sprint(icon.Interface()) + " " + label
		}
	}
	return label
}

// handle registers the drag handle of the given element.
func (cd *CollectionDrawer) handle(session *dnd.Session, q *Property, i int, r dnd.Rect) {
	obj, ok := q.entry.WeakValue(0)
	if !ok || obj == nil {
		return
	}
	h := session.Handle(cd.zoneKey+elementName(i), obj, dnd.Move)
	h.Owner = cd.property.tree.id.String()
	h.Source = cd.zoneKey
	h.Index = i
	h.Rect = r
	h.Enabled = true
	h.OnFinished = func(ev dnd.DropEvents, z *dnd.Zone) {
		if ev != dnd.Moved || z == nil || z.Key == cd.zoneKey {
			return
		}
		// the element has moved to another collection
		index := h.Index
		cd.property.tree.QueueCallback(func() {
			cd.Remove(index)
			if _, err := cd.property.ApplyChanges(); err != nil {
				cd.property.tree.logger.Warn("inspector: removing dragged element", "path", cd.property.path, "err", err)
			}
		})
	}
}

// drop inserts the given object dropped from the given handle at the given
// index, or moves it if it comes from this collection.
func (cd *CollectionDrawer) drop(obj any, h *dnd.Handle, index int) {
	p := cd.property
	var errs []error
	for i := range p.entry.ValueCount() {
		if h.Source == cd.zoneKey && h.Method == dnd.Move {
			to := index
			if to > h.Index {
				to--
			}
			if to != h.Index {
				errs = append(errs, cd.cr.QueueMove(i, h.Index, to))
			}
			cd.selection.Select(to)
			continue
		}
		v := obj
		if i > 0 {
			cp, err := dnd.Clone(obj)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			v = cp
		}
		if err := cd.cr.QueueInsertAt(i, index, v); err != nil {
			errs = append(errs, err)
			continue
		}
		cd.notify(cd.callbacks.added, i, v)
	}
	if err := errors.Join(errs...); err != nil {
		p.tree.logger.Warn("inspector: dropping element", "path", p.path, "err", err)
	}
}

// newElement returns a new element for the given target.
func (cd *CollectionDrawer) newElement(i int) (any, error) {
	if cd.callbacks.create != nil {
		return cd.callbacks.create(i)
	}
	return reflectx.NewDefault(cd.cr.ElementType()).Interface(), nil
}

// Add queues adding a new element to the collection of every target,
// made by the creation callback if there is one. Maps get a new entry
// with an unused key for string keys and the zero key otherwise.
func (cd *CollectionDrawer) Add() {
	p := cd.property
	var errs []error
	for i := range p.entry.ValueCount() {
		v, err := cd.newElement(i)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if mr, ok := cd.cr.(*MapResolver); ok {
			v = MapEntry{Key: newMapKey(p.entry.Value(i), mr.KeyType()), Value: v}
		}
		if err := cd.cr.QueueAdd(i, v); err != nil {
			errs = append(errs, err)
			continue
		}
		cd.notify(cd.callbacks.added, i, v)
	}
	for _, err := range errs {
		p.tree.logger.Warn("inspector: adding element", "path", p.path, "err", err)
	}
}

// newMapKey returns a key that is not in the given map.
func newMapKey(m reflect.Value, typ reflect.Type) any {
	if typ.Kind() != reflect.String {
		return reflect.Zero(typ).Interface()
	}
	c, _ := reflectx.Indirect(m)
	base := labels.Sentence("New" + labels.FriendlyTypeName(typ))
	for n := 1; ; n++ {
		name := base
		if n > 1 {
			name += " " + strconv.Itoa(n)
		}
		k := reflect.ValueOf(name).Convert(typ)
		if !c.IsValid() || c.IsNil() || !c.MapIndex(k).IsValid() {
			return k.Interface()
		}
	}
}

// Remove queues removing the element at the given index from the
// collection of every target, through the removal callbacks if there
// are any.
func (cd *CollectionDrawer) Remove(index int) {
	p := cd.property
	if p.children == nil || index < 0 || index >= p.children.Len() {
		return
	}
	q := p.children.Get(index)
	var errs []error
	for i := range p.entry.ValueCount() {
		value, _ := q.entry.WeakValue(i)
		var err error
		switch {
		case cd.callbacks.removeIndex != nil:
			err = cd.callbacks.removeIndex(i, index)
			p.markStale()
		case cd.callbacks.removeValue != nil:
			err = cd.callbacks.removeValue(i, value)
			p.markStale()
		case cd.cr.Ordered():
			err = cd.cr.QueueRemoveAt(i, index)
		default:
			err = cd.cr.QueueRemove(i, cd.cr.(*MapResolver).Key(index).Interface())
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cd.notify(cd.callbacks.removed, i, value)
	}
	for _, err := range errs {
		p.tree.logger.Warn("inspector: removing element", "path", p.path, "err", err)
	}
	cd.selection.Clear()
}

// notify calls the given notification, if any, on the next update,
// after the change it is about has been applied.
func (cd *CollectionDrawer) notify(fun func(i int, value any), i int, value any) {
	if fun == nil {
		return
	}
	cd.property.tree.QueueCallback(func() { fun(i, value) })
}

// DuplicateElement queues inserting a deep copy of the element at the
// given index of the given list property after it, for every target.
func DuplicateElement(p *Property, index int) error {
	cr, ok := p.Collection()
	if !ok {
		return &UnsupportedError{Op: "duplicate an element of", Subject: strconv.Quote(p.path), Reason: "it is not a collection"}
	}
	if !cr.Ordered() {
		return &UnsupportedError{Op: "duplicate an element of", Subject: strconv.Quote(p.path), Reason: "it is unordered"}
	}
	if p.children == nil || index < 0 || index >= p.children.Len() {
		return fmt.Errorf("inspector: duplicate index %d of %q: %w", index, p.path, ErrNotFound)
	}
	q := p.children.Get(index)
	var errs []error
	for i := range p.entry.ValueCount() {
		v, ok := q.entry.WeakValue(i)
		if !ok {
			continue
		}
		cp, err := dnd.Clone(v)
		if err == nil {
			err = cr.QueueInsertAt(i, index+1, cp)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
