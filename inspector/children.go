// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"fmt"
	"strconv"
	"strings"

	"cogentcore.org/inspect/base/errors"
	"cogentcore.org/inspect/base/plan"
)

// childSlot is one child slot of a property, with its node
// if it has been materialized.
type childSlot struct {
	key  string
	info *PropertyInfo
	node *Property
}

func (cs *childSlot) PlanName() string { return cs.key }

// slotKey returns the reconciliation key of the given info. Slots with
// the same name and declared type keep their node across updates.
func slotKey(info *PropertyInfo) string {
	return info.Name + "|" + info.Type.String()
}

// Children are the children of a property, which are reconciled with
// its children resolver on every update of the property. The nodes of
// children are created when they are first accessed.
type Children struct {
	parent *Property
	slots  []*childSlot
}

func newChildren(parent *Property) *Children {
	return &Children{parent: parent}
}

// update reconciles the slots with the resolver of the parent, keeping
// the nodes of slots that still exist and disposing the rest, and
// updates the nodes that have been materialized.
func (c *Children) update(force bool) {
	r := c.parent.resolver
	n := r.ChildCount()
	infos := make([]*PropertyInfo, n)
	for i := range n {
		infos[i] = r.ChildInfo(i)
	}
	changed := plan.Update(&c.slots, n,
		func(i int) string { return slotKey(infos[i]) },
		func(key string, i int) *childSlot { return &childSlot{key: key, info: infos[i]} },
		func(cs *childSlot, i int) {
			if cs.info != infos[i] {
				if cs.node != nil {
					cs.node.dispose()
					cs.node = nil
				}
				cs.info = infos[i]
			}
			if cs.node != nil {
				cs.node.index = i
			}
		},
		func(cs *childSlot) {
			if cs.node != nil {
				cs.node.dispose()
			}
		})
	if changed {
		c.parent.tree.logger.Debug("inspector: children changed", "path", c.parent.path, "count", n)
	}
	for _, cs := range c.slots {
		if cs.node != nil {
			cs.node.Update(force)
		}
	}
}

// Len returns the number of children.
func (c *Children) Len() int {
	return len(c.slots)
}

// Get returns the child at the given index, creating it if needed.
func (c *Children) Get(i int) *Property {
	cs := c.slots[i]
	if cs.node == nil {
		cs.node = newProperty(c.parent.tree, c.parent, cs.info, i)
		cs.node.Update(false)
	}
	return cs.node
}

// All returns all children, creating them as needed.
func (c *Children) All() []*Property {
	ps := make([]*Property, len(c.slots))
	for i := range c.slots {
		ps[i] = c.Get(i)
	}
	return ps
}

// materialized returns the children that have been created.
func (c *Children) materialized() []*Property {
	var ps []*Property
	for _, cs := range c.slots {
		if cs.node != nil {
			ps = append(ps, cs.node)
		}
	}
	return ps
}

// ByName returns the child with the given name. Elements of lists and
// arrays can be found by their index, with or without brackets.
func (c *Children) ByName(name string) (*Property, error) {
	r := c.parent.resolver
	i, err := r.ChildNameToIndex(name)
	if errors.Is(err, ErrUnsupported) {
		i, err = positionalIndex(name)
	} else if errors.Is(err, ErrNotFound) && !strings.HasPrefix(name, "[") {
		if j, err2 := r.ChildNameToIndex("[" + name + "]"); err2 == nil {
			i, err = j, nil
		}
	}
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= c.Len() {
		return nil, fmt.Errorf("inspector: child %s of %q is out of range: %w", name, c.parent.path, ErrNotFound)
	}
	return c.Get(i), nil
}

func positionalIndex(name string) (int, error) {
	s := strings.TrimSuffix(strings.TrimPrefix(name, "["), "]")
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, fmt.Errorf("inspector: %q is not an index: %w", name, ErrNotFound)
	}
	return i, nil
}

// Update updates all materialized children.
func (c *Children) Update() {
	for _, p := range c.materialized() {
		p.Update(false)
	}
}

// Refresh refreshes all materialized children.
func (c *Children) Refresh() {
	for _, p := range c.materialized() {
		p.Refresh()
	}
}

func (c *Children) dispose() {
	for _, cs := range c.slots {
		if cs.node != nil {
			cs.node.dispose()
		}
	}
	c.slots = nil
}
