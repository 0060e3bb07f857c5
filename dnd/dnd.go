// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dnd provides a drag and drop session: the drag handles and
// drop zones registered by drawers during a draw pass, and the state of
// the current drag, which the host drives with pointer events.
//
// A session is an explicit context object rather than global state, so
// that several inspectors can share one (to drag between them) and so
// that all of its state is released by [Session.Close].
package dnd

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Methods are the ways a dragged object can be dropped.
type Methods int32

const (
	// Move removes the object from its source when dropped.
	Move Methods = iota

	// Copy drops a deep copy of the object, leaving the source as is.
	Copy

	// Reference drops the object itself, leaving the source as is.
	Reference
)

// String returns the name of the method.
func (m Methods) String() string {
	switch m {
	case Move:
		return "Move"
	case Copy:
		return "Copy"
	case Reference:
		return "Reference"
	}
	return fmt.Sprintf("Methods(%d)", int32(m))
}

// DropEvents are the outcomes of a drag.
type DropEvents int32

const (
	// Canceled is a drag that ended outside of any accepting zone.
	Canceled DropEvents = iota

	// Moved is a drag dropped with [Move].
	Moved

	// Copied is a drag dropped with [Copy].
	Copied

	// Referenced is a drag dropped with [Reference].
	Referenced
)

// Handle is a draggable element.
type Handle struct {

	// ID uniquely identifies the handle for the lifetime of its session.
	ID uuid.UUID

	// Key is the key the handle is registered under.
	Key string

	// Owner identifies the tree that registered the handle.
	Owner string

	// Source is the key of the drop zone the element belongs to, if any.
	Source string

	// Index is the index of the element in its source.
	Index int

	// Object is the dragged value.
	Object any

	// Method is how the object is dropped.
	Method Methods

	// Enabled is whether the handle can be dragged.
	Enabled bool

	// Rect is the layout rectangle of the handle.
	Rect Rect

	// OnFinished, if set, is called when a drag of this handle ends,
	// with the zone it was dropped on (nil when canceled).
	OnFinished func(ev DropEvents, z *Zone)
}

// Zone is an area that accepts dropped objects of a type.
type Zone struct {

	// Key is the key the zone is registered under.
	Key string

	// Owner identifies the tree that registered the zone.
	Owner string

	// Type is the type of object the zone accepts.
	Type reflect.Type

	// CanAcceptMove is whether the zone accepts objects dropped with [Move].
	CanAcceptMove bool

	// Enabled is whether the zone accepts drops at all.
	Enabled bool

	// Rect is the layout rectangle of the zone.
	Rect Rect

	// Items are the layout rectangles of the elements in the zone,
	// in order, which determine [Zone.InsertIndex] on a drop.
	Items []Rect

	// InsertIndex is the index at which the claimed object
	// should be inserted.
	InsertIndex int

	claimed *Handle
	object  any
	ready   bool
}

// Accepts returns whether the zone accepts a drop of the given handle.
func (z *Zone) Accepts(h *Handle) bool {
	if !z.Enabled || h == nil || h.Object == nil {
		return false
	}
	if h.Method == Move && !z.CanAcceptMove {
		return false
	}
	return z.Type == nil || reflect.TypeOf(h.Object).AssignableTo(z.Type)
}

// ReadyToClaim returns whether an object has been dropped on
// the zone and not yet claimed.
func (z *Zone) ReadyToClaim() bool {
	return z.ready
}

// Claim returns the object dropped on the zone and the handle it came
// from, clearing the zone. It returns false if there is none.
func (z *Zone) Claim() (any, *Handle, bool) {
	if !z.ready {
		return nil, nil, false
	}
	obj, h := z.object, z.claimed
	z.ready, z.object, z.claimed = false, nil, nil
	return obj, h, true
}

// BeginFrame clears the item rectangles of the zone
// before they are registered again in a draw pass.
func (z *Zone) BeginFrame() {
	z.Items = z.Items[:0]
}

// insertIndex returns the index at which a drop at the given point
// inserts: the number of items whose center is above the point.
func (z *Zone) insertIndex(p Point) int {
	n := 0
	for _, r := range z.Items {
		if r.Center().Y < p.Y {
			n++
		}
	}
	return n
}

type cacheKey struct {
	key string
	typ reflect.Type
}

// Session is the drag and drop state shared by the inspectors
// that can exchange dragged objects.
type Session struct {
	handles  map[cacheKey]*Handle
	zones    map[cacheKey]*Zone
	order    []*Zone
	dragging *Handle
	hovering *Zone
	closed   bool
}

// NewSession returns a new drag and drop session.
func NewSession() *Session {
	return &Session{handles: map[cacheKey]*Handle{}, zones: map[cacheKey]*Zone{}}
}

// Handle returns the drag handle for the given key and object, creating
// it if needed. Handles are cached by the key and the type of the object,
// and the object and method are updated on every call.
func (s *Session) Handle(key string, obj any, method Methods) *Handle {
	k := cacheKey{key, reflect.TypeOf(obj)}
	h, ok := s.handles[k]
	if !ok {
		h = &Handle{ID: uuid.New(), Key: key, Enabled: true}
		s.handles[k] = h
	}
	h.Object = obj
	h.Method = method
	return h
}

// Zone returns the drop zone for the given key and type, creating it if needed.
func (s *Session) Zone(key string, typ reflect.Type, canAcceptMove bool) *Zone {
	k := cacheKey{key, typ}
	z, ok := s.zones[k]
	if !ok {
		z = &Zone{Key: key, Type: typ, Enabled: true}
		s.zones[k] = z
		s.order = append(s.order, z)
	}
	z.CanAcceptMove = canAcceptMove
	return z
}

// Dragging returns the handle being dragged, or nil.
func (s *Session) Dragging() *Handle {
	return s.dragging
}

// InProgress returns whether a drag is in progress.
func (s *Session) InProgress() bool {
	return s.dragging != nil
}

// Hovering returns the zone under the current drag position
// that accepts the dragged handle, or nil.
func (s *Session) Hovering() *Zone {
	return s.hovering
}

// StartDrag starts dragging the given handle.
func (s *Session) StartDrag(h *Handle) error {
	switch {
	case s.closed:
		return fmt.Errorf("dnd.Session.StartDrag: session is closed")
	case s.dragging != nil:
		return fmt.Errorf("dnd.Session.StartDrag: a drag of %q is already in progress", s.dragging.Key)
	case !h.Enabled:
		return fmt.Errorf("dnd.Session.StartDrag: handle %q is disabled", h.Key)
	}
	s.dragging = h
	s.hovering = nil
	return nil
}

// DragTo updates the current drag position, returning the
// accepting zone under it, if any.
func (s *Session) DragTo(p Point) *Zone {
	s.hovering = s.zoneAt(p)
	return s.hovering
}

// zoneAt returns the last registered accepting zone containing the point,
// which is the innermost one for zones registered in layout order.
func (s *Session) zoneAt(p Point) *Zone {
	for i := len(s.order) - 1; i >= 0; i-- {
		z := s.order[i]
		if z.Rect.Contains(p) && z.Accepts(s.dragging) {
			return z
		}
	}
	return nil
}

// Drop ends the current drag at the given point. If an accepting zone
// is there, the object (a deep copy for [Copy]) is made ready for it to
// claim. The handle's OnFinished is called with the outcome, which is
// also returned.
func (s *Session) Drop(p Point) (DropEvents, error) {
	h := s.dragging
	if h == nil {
		return Canceled, fmt.Errorf("dnd.Session.Drop: no drag in progress")
	}
	s.dragging, s.hovering = nil, nil
	z := s.zoneAt(p)
	if z == nil {
		s.finish(h, Canceled, nil)
		return Canceled, nil
	}
	obj := h.Object
	ev := Moved
	switch h.Method {
	case Copy:
		c, err := Clone(obj)
		if err != nil {
			s.finish(h, Canceled, nil)
			return Canceled, err
		}
		obj, ev = c, Copied
	case Reference:
		ev = Referenced
	}
	z.object, z.claimed, z.ready = obj, h, true
	z.InsertIndex = z.insertIndex(p)
	s.finish(h, ev, z)
	return ev, nil
}

// Cancel ends the current drag without dropping.
func (s *Session) Cancel() {
	if h := s.dragging; h != nil {
		s.dragging, s.hovering = nil, nil
		s.finish(h, Canceled, nil)
	}
}

func (s *Session) finish(h *Handle, ev DropEvents, z *Zone) {
	if h.OnFinished != nil {
		h.OnFinished(ev, z)
	}
}

// Close ends the session: any drag is canceled and all handles and
// zones are released. A closed session rejects new drags.
func (s *Session) Close() {
	s.Cancel()
	clear(s.handles)
	clear(s.zones)
	s.order = nil
	s.closed = true
}

// Clone returns a deep copy of the given value.
func Clone(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Struct, reflect.Slice, reflect.Map:
		dst := reflect.New(rv.Type())
		if err := copier.CopyWithOption(dst.Interface(), v, copier.Option{DeepCopy: true}); err != nil {
			return nil, err
		}
		return dst.Elem().Interface(), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return v, nil
		}
		dst := reflect.New(rv.Type().Elem())
		if err := copier.CopyWithOption(dst.Interface(), v, copier.Option{DeepCopy: true}); err != nil {
			return nil, err
		}
		return dst.Interface(), nil
	}
	return v, nil
}
