// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"cogentcore.org/inspect/inspector"
	"github.com/m1gwings/treedrawer/tree"
)

// drawTree returns a drawing of the property tree of the given tree,
// with the names of the given documents at the root.
func drawTree(tr *inspector.Tree, docs []*Document) string {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = filepath.Base(d.Filename)
	}
	t := tree.NewTree(tree.NodeString(strings.Join(names, ", ")))
	addChildren(t, tr.Root())
	return t.String()
}

// addChildren adds the children of the given property to the given node.
func addChildren(t *tree.Tree, p *inspector.Property) {
	ch := p.Children()
	if ch == nil {
		return
	}
	for i := 0; i < ch.Len(); i++ {
		q := ch.Get(i)
		if q.Children() != nil && q.Children().Len() > 0 {
			addChildren(t.AddChild(tree.NodeString(q.Label())), q)
			continue
		}
		t.AddChild(tree.NodeString(q.Label() + ": " + valueText(q)))
	}
}

// valueText returns the text of the values of the given property.
func valueText(p *inspector.Property) string {
	e := p.ValueEntry()
	if e.IsConflicted() {
		return p.Tree().Settings().ConflictPlaceholder
	}
	v, ok := e.SmartValue()
	if !ok || v == nil {
		return "None"
	}
	return fmt.Sprint(v)
}
