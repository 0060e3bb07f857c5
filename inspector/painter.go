// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"cogentcore.org/inspect/dnd"
)

// MessageKinds are the kinds of messages shown with [Painter.MessageBox].
type MessageKinds int32

const (
	MessageInfo MessageKinds = iota
	MessageWarning
	MessageError
)

// ItemInput is the pointer input on a collection item in one draw pass.
type ItemInput struct {

	// Clicked is whether the item was clicked.
	Clicked bool

	// Action is whether the action key (control or command) was held.
	Action bool

	// Shift is whether the shift key was held.
	Shift bool
}

// Painter is the host rendering substrate that drawers draw through.
// It is an immediate mode interface: every call draws one element in
// layout order, and calls that can be interacted with return the
// result of the interaction in this pass.
type Painter interface {

	// Label draws a read-only labeled text.
	Label(label, text string)

	// MessageBox draws a message.
	MessageBox(text string, kind MessageKinds)

	// Foldout draws a foldout header and returns whether it is expanded.
	Foldout(label string, expanded bool) bool

	// Field draws an editable field for the given value, which shows
	// a mixed value placeholder if mixed is set. It returns the new
	// value and true if it was edited.
	Field(label string, value any, mixed bool) (any, bool)

	// Button draws a button and returns whether it was pressed.
	Button(label string) bool

	// BeginGroup starts a group of the given kind with the given title.
	BeginGroup(kind, label string)

	// EndGroup ends the last group.
	EndGroup()

	// BeginItem starts a collection item at the given index,
	// and returns the pointer input on it.
	BeginItem(index int, selected bool) ItemInput

	// EndItem ends the last item.
	EndItem()

	// BeginDisabled starts a scope of read-only elements.
	BeginDisabled()

	// EndDisabled ends the last read-only scope.
	EndDisabled()

	// Rect returns the layout rectangle of the last element drawn.
	Rect() dnd.Rect
}
