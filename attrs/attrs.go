// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package attrs provides the declarative attribute records that control
// how members and types are shown in an inspector, along with the
// parsing of them from struct tags and a registry for attaching them
// to members and types that cannot be tagged.
//
// Attributes are plain pointer values such as [*Button] or [*ReadOnly].
// Any other pointer value can also be used as a custom attribute.
package attrs

import (
	"reflect"

	"github.com/samber/lo"
)

// ShowInInspector marks a member that would not be shown by default
// (for example a method or a non-serializable field) as shown.
type ShowInInspector struct{}

// Hide marks a member as hidden.
type Hide struct{}

// ReadOnly marks a member or type as not editable.
type ReadOnly struct{}

// ShowIf shows a member only when the member named Condition on the
// owner (or on the value itself for type attributes) equals Value.
// A nil Value means true.
type ShowIf struct {
	Condition string
	Value     any
}

// HideIf is the inverse of [ShowIf].
type HideIf struct {
	Condition string
	Value     any
}

// Button shows a method as a button that calls it on every target.
type Button struct {

	// Label is the button text; the nice name of the method is used if empty.
	Label string
}

// LabelText replaces the label of a member.
type LabelText struct {
	Text string
}

// OnValueChanged calls the method named Method on the owner whenever
// the member value is changed through the inspector.
type OnValueChanged struct {
	Method string
}

// ListDrawerSettings controls how a collection is drawn.
type ListDrawerSettings struct {
	ReadOnly         bool
	HideAddButton    bool
	HideRemoveButton bool

	// NoDrag disables drag and drop reordering of elements.
	NoDrag bool

	// ShowIndexLabels shows a label with the index of each element.
	ShowIndexLabels bool

	// The following are names of methods on the owner of the
	// collection, or on the collection type for type attributes.
	// They are an alternative to implementing the collection
	// callback interfaces of the inspector package.

	// OnAdded is called with each added element: func(value any).
	OnAdded string

	// OnRemoved is called with each removed element: func(value any).
	OnRemoved string

	// CreateElement returns a new element to add: func() any.
	CreateElement string

	// RemoveElement removes the given element itself: func(value any).
	RemoveElement string

	// RemoveIndex removes the element at the given index itself: func(index int).
	RemoveIndex string

	// IndexLabel returns the label of the element at the given index: func(index int) string.
	IndexLabel string
}

// Draggable returns whether elements can be reordered by drag and drop.
func (ls *ListDrawerSettings) Draggable() bool {
	return !ls.NoDrag
}

// MetroListDrawerSettings is a [ListDrawerSettings] with additional
// decoration settings.
type MetroListDrawerSettings struct {
	ListDrawerSettings

	// SideLineColor is the color of the line beside the elements.
	SideLineColor string

	// IconGetter is the name of a method returning an icon name.
	IconGetter string
}

// NumberStyles are the styles of number fields.
type NumberStyles int32

const (
	// NumberDefault is a plain text field.
	NumberDefault NumberStyles = iota

	// NumberSpinBox is a field with increment and decrement buttons.
	NumberSpinBox
)

// NumberDrawerSettings constrains the values of a number field.
type NumberDrawerSettings struct {
	Style NumberStyles

	// Min and Max are the inclusive bounds, if set.
	Min, Max *float64

	// Step is the increment that values snap to, if set.
	Step *float64
}

// Clamp returns the given value clamped to the bounds and
// snapped to the step of the settings.
func (ns *NumberDrawerSettings) Clamp(v float64) float64 {
	if ns.Step != nil && *ns.Step > 0 {
		base := 0.0
		if ns.Min != nil {
			base = *ns.Min
		}
		n := (v - base) / *ns.Step
		if n < 0 {
			n -= 0.5
		} else {
			n += 0.5
		}
		v = base + float64(int64(n))**ns.Step
	}
	if ns.Min != nil && v < *ns.Min {
		v = *ns.Min
	}
	if ns.Max != nil && v > *ns.Max {
		v = *ns.Max
	}
	return v
}

// BeginGroup starts a layout group of the given Kind at the member it
// is on. Following sibling members belong to the group until one
// with an [EndGroup] of the same kind.
type BeginGroup struct {

	// Kind is the kind of group, such as "box" or "foldout".
	Kind string

	// Name is the title of the group.
	Name string
}

// EndGroup ends the innermost open group of the given Kind after
// the member it is on.
type EndGroup struct {
	Kind string
}

// TypeAttributer is implemented by types that declare attributes
// for all of their values. The method is called on a zero value.
type TypeAttributer interface {
	InspectorAttributes() []any
}

// MemberAttributer is implemented by types that declare attributes
// for their members by name, which is the only way to attach them
// to methods without a [Registry]. The method is called on a zero value.
type MemberAttributer interface {
	InspectorMemberAttributes() map[string][]any
}

// Get returns the first attribute of type T in the given list.
func Get[T any](list []any) (T, bool) {
	a, ok := lo.Find(list, func(a any) bool {
		_, is := a.(T)
		return is
	})
	if !ok {
		var zero T
		return zero, false
	}
	return a.(T), true
}

// Has returns whether the given list contains an attribute of type T.
func Has[T any](list []any) bool {
	_, ok := Get[T](list)
	return ok
}

// OfType returns all attributes in the given list with the given
// dynamic type.
func OfType(list []any, typ reflect.Type) []any {
	return lo.Filter(list, func(a any, _ int) bool {
		return reflect.TypeOf(a) == typ
	})
}

// ListSettings returns the collection settings in the given list,
// preferring [MetroListDrawerSettings] over [ListDrawerSettings].
// It also returns the attribute value itself, for source lookups.
func ListSettings(list []any) (*ListDrawerSettings, any) {
	if m, ok := Get[*MetroListDrawerSettings](list); ok {
		return &m.ListDrawerSettings, m
	}
	if ls, ok := Get[*ListDrawerSettings](list); ok {
		return ls, ls
	}
	return nil, nil
}
