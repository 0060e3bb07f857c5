// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package textpaint provides an [inspector.Painter] that draws
// inspectors as indented text, with scripted input for tests
// and command line tools.
package textpaint

import (
	"fmt"
	"io"
	"strings"

	"cogentcore.org/inspect/dnd"
	"cogentcore.org/inspect/inspector"
)

// Painter draws inspectors as indented lines of text. Every drawn
// element is one line, whose line number is the Y coordinate of its
// layout rectangle. Input is scripted before a draw pass and consumed
// by the first matching element.
type Painter struct {

	// ExpandAll makes all foldouts expanded.
	ExpandAll bool

	// HideButtons omits buttons from the output.
	HideButtons bool

	// Indent is the text of one level of indentation.
	Indent string

	lines    []string
	depth    int
	disabled int
	item     string
	last     dnd.Rect

	presses map[string]int
	edits   map[string]any
	toggles map[string]bool
	clicks  map[int]inspector.ItemInput
}

// New returns a new painter.
func New() *Painter {
	pt := &Painter{Indent: "  "}
	pt.Reset()
	return pt
}

// Reset clears the output and all scripted input.
func (pt *Painter) Reset() {
	pt.lines = nil
	pt.depth, pt.disabled = 0, 0
	pt.item = ""
	pt.presses = map[string]int{}
	pt.edits = map[string]any{}
	pt.toggles = map[string]bool{}
	pt.clicks = map[int]inspector.ItemInput{}
}

// Clear clears the output, keeping the scripted input
// that has not been consumed.
func (pt *Painter) Clear() {
	pt.lines = nil
	pt.depth, pt.disabled = 0, 0
	pt.item = ""
}

// Press makes the next button with the given label pressed.
func (pt *Painter) Press(label string) *Painter {
	pt.presses[label]++
	return pt
}

// Edit makes the next field with the given label edited to the given value.
func (pt *Painter) Edit(label string, value any) *Painter {
	pt.edits[label] = value
	return pt
}

// Toggle makes the next foldout with the given label toggled.
func (pt *Painter) Toggle(label string) *Painter {
	pt.toggles[label] = true
	return pt
}

// Click makes the next item with the given index clicked with the given input.
func (pt *Painter) Click(index int, in inspector.ItemInput) *Painter {
	in.Clicked = true
	pt.clicks[index] = in
	return pt
}

// Lines returns the lines drawn since the last reset.
func (pt *Painter) Lines() []string {
	return pt.lines
}

// String returns the text drawn since the last reset.
func (pt *Painter) String() string {
	if len(pt.lines) == 0 {
		return ""
	}
	return strings.Join(pt.lines, "\n") + "\n"
}

// WriteTo writes the text drawn since the last reset to the given writer.
func (pt *Painter) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, pt.String())
	return int64(n), err
}

func (pt *Painter) line(s string) {
	prefix := strings.Repeat(pt.Indent, pt.depth) + pt.item
	pt.item = ""
	y := float32(len(pt.lines))
	x := float32(len(prefix))
	pt.last = dnd.Rect{Min: dnd.Point{X: x, Y: y}, Max: dnd.Point{X: x + float32(len(s)), Y: y + 1}}
	pt.lines = append(pt.lines, prefix+s)
}

func (pt *Painter) suffix() string {
	if pt.disabled > 0 {
		return " (read-only)"
	}
	return ""
}

func labeled(label, text string) string {
	if label == "" {
		return text
	}
	return label + ": " + text
}

func (pt *Painter) Label(label, text string) {
	pt.line(labeled(label, text))
}

func (pt *Painter) MessageBox(text string, kind inspector.MessageKinds) {
	switch kind {
	case inspector.MessageError:
		pt.line("error: " + text)
	case inspector.MessageWarning:
		pt.line("warning: " + text)
	default:
		pt.line("info: " + text)
	}
}

func (pt *Painter) Foldout(label string, expanded bool) bool {
	if pt.toggles[label] {
		delete(pt.toggles, label)
		expanded = !expanded
	}
	if pt.ExpandAll {
		expanded = true
	}
	mark := "▸ "
	if expanded {
		mark = "▾ "
	}
	pt.line(mark + label)
	return expanded
}

func (pt *Painter) Field(label string, value any, mixed bool) (any, bool) {
	text := fmt.Sprint(value)
	if value == nil {
		text = "None"
	}
	pt.line(labeled(label, text) + pt.suffix())
	if pt.disabled > 0 {
		return nil, false
	}
	nv, ok := pt.edits[label]
	if !ok {
		return nil, false
	}
	delete(pt.edits, label)
	return nv, true
}

func (pt *Painter) Button(label string) bool {
	if !pt.HideButtons {
		pt.line("[" + label + "]")
	}
	if pt.disabled > 0 || pt.presses[label] == 0 {
		return false
	}
	pt.presses[label]--
	return true
}

func (pt *Painter) BeginGroup(kind, label string) {
	if kind != "children" && kind != "metro" && label != "" {
		pt.line(label + ":")
	}
	pt.depth++
}

func (pt *Painter) EndGroup() {
	pt.depth--
}

func (pt *Painter) BeginItem(index int, selected bool) inspector.ItemInput {
	if selected {
		pt.item = "* "
	} else {
		pt.item = "- "
	}
	in, ok := pt.clicks[index]
	if ok {
		delete(pt.clicks, index)
	}
	return in
}

func (pt *Painter) EndItem() {
	pt.item = ""
}

func (pt *Painter) BeginDisabled() {
	pt.disabled++
}

func (pt *Painter) EndDisabled() {
	pt.disabled--
}

func (pt *Painter) Rect() dnd.Rect {
	return pt.last
}
