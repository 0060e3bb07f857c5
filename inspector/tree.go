// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"cmp"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"cogentcore.org/inspect/attrs"
	"cogentcore.org/inspect/base/errors"
	"cogentcore.org/inspect/dnd"
	"cogentcore.org/inspect/persist"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Tree inspects a set of targets of the same type at once. Its root
// property represents the whole set, and every other property is a
// slot reached from it, with one value per target.
//
// A tree is not safe for concurrent use: it is meant to be updated
// and drawn from the host's single frame loop.
type Tree struct {
	id         uuid.UUID
	targets    []any
	targetType reflect.Type

	// tick is the update id, incremented by every [Tree.Update].
	tick uint64
	root *Property

	// callbacks are run at the start of the next update.
	callbacks []func()

	settings    *Settings
	logger      *slog.Logger
	store       *persist.Store
	drawers     *Drawers
	attributes  *attrs.Registry
	accessors   *Accessors
	resolvers   *ResolverLocator
	session     *dnd.Session
	ownsSession bool

	// memberCache has the resolved members of struct types,
	// for the accessors at accessorsVersion.
	memberCache      *lru.Cache[reflect.Type, []*member]
	accessorsVersion uint64
}

// NewTree returns a new tree inspecting the given targets, which
// must be non-nil values of the same type. Targets are typically
// pointers, so that changes are made to the values themselves.
func NewTree(targets []any, opts ...Option) (*Tree, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("inspector.NewTree: no targets")
	}
	var typ reflect.Type
	for i, tg := range targets {
		if tg == nil {
			return nil, fmt.Errorf("inspector.NewTree: target %d is nil", i)
		}
		tt := reflect.TypeOf(tg)
		if typ == nil {
			typ = tt
		} else if tt != typ {
			return nil, fmt.Errorf("inspector.NewTree: target %d is %v, but target 0 is %v", i, tt, typ)
		}
	}
	t := &Tree{id: uuid.New(), targets: slices.Clone(targets), targetType: typ}
	for _, opt := range opts {
		opt(t)
	}
	if t.settings == nil {
		t.settings = DefaultSettings()
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	if t.store == nil {
		t.store = persist.NewStore()
	}
	if t.drawers == nil {
		t.drawers = DefaultDrawers
	}
	if t.attributes == nil {
		t.attributes = attrs.Default
	}
	if t.accessors == nil {
		t.accessors = DefaultAccessors
	}
	if t.resolvers == nil {
		t.resolvers = NewResolverLocator()
	}
	if t.session == nil {
		t.session = dnd.NewSession()
		t.ownsSession = true
	}
	mc, err := lru.New[reflect.Type, []*member](max(t.settings.MemberCacheSize, 1))
	if err != nil {
		return nil, err
	}
	t.memberCache = mc
	t.accessorsVersion = t.accessors.version
	t.root = newProperty(t, nil, &PropertyInfo{Type: typ, LogicRoot: true}, 0)
	t.Update(true)
	return t, nil
}

// ID returns the unique id of the tree.
func (t *Tree) ID() uuid.UUID { return t.id }

// Targets returns the targets of the tree.
func (t *Tree) Targets() []any { return t.targets }

// TargetType returns the type of the targets.
func (t *Tree) TargetType() reflect.Type { return t.targetType }

// UpdateID returns the id of the last update, which increases
// with every [Tree.Update].
func (t *Tree) UpdateID() uint64 { return t.tick }

// Root returns the root property, which represents all targets.
func (t *Tree) Root() *Property { return t.root }

// Settings returns the settings of the tree.
func (t *Tree) Settings() *Settings { return t.settings }

// Logger returns the logger of the tree.
func (t *Tree) Logger() *slog.Logger { return t.logger }

// Store returns the scratch store of the tree.
func (t *Tree) Store() *persist.Store { return t.store }

// DragSession returns the drag and drop session of the tree.
func (t *Tree) DragSession() *dnd.Session { return t.session }

// members returns the members of the given struct type.
func (t *Tree) members(typ reflect.Type) []*member {
	if t.accessorsVersion != t.accessors.version {
		t.memberCache.Purge()
		t.accessorsVersion = t.accessors.version
	}
	if ms, ok := t.memberCache.Get(typ); ok {
		return ms
	}
	ms := resolveMembers(typ, t.attributes, t.accessors)
	t.memberCache.Add(typ, ms)
	return ms
}

// QueueCallback queues the given function to run at the start of the
// next update, after the functions queued before it. Functions queued
// while the queue runs are run on the update after. A panic in a function
// is logged and does not prevent the others from running.
func (t *Tree) QueueCallback(fun func()) {
	t.callbacks = append(t.callbacks, fun)
}

func (t *Tree) runCallbacks() {
	q := t.callbacks
	t.callbacks = nil
	for _, fun := range q {
		t.runCallback(fun)
	}
}

func (t *Tree) runCallback(fun func()) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("inspector: queued callback panicked", "err", errors.FromPanic(r))
		}
	}()
	fun()
}

// Update runs the queued callbacks and updates the tree: the values of
// all properties that have been created, and their children.
func (t *Tree) Update(force bool) {
	t.runCallbacks()
	t.tick++
	t.root.Update(force)
}

// Draw updates the tree and draws the properties of the targets.
func (t *Tree) Draw(pt Painter) {
	t.Update(false)
	if err := t.root.Err(); err != nil {
		(&ErrorDrawer{Err: err}).Draw(&DrawContext{Painter: pt, Property: t.root}, "")
		return
	}
	ch := t.root.Children()
	if ch == nil {
		return
	}
	for i := 0; i < ch.Len(); i++ {
		c := ch.Get(i)
		c.Draw(pt, c.Label())
	}
}

// ApplyChanges applies the queued collection changes of all properties,
// and updates the tree if there were any.
func (t *Tree) ApplyChanges() (bool, error) {
	changed, err := t.root.ApplyChanges()
	if changed {
		t.root.Update(true)
	}
	return changed, err
}

// WalkDown calls the given function on all properties that have
// been created, depth first. See [Property.WalkDown].
func (t *Tree) WalkDown(fun func(p *Property) bool) {
	t.root.WalkDown(fun)
}

// Find returns the property at the given path, such as
// "Enemies[2].Health" or "Stats.Speed", creating properties as needed.
func (t *Tree) Find(path string) (*Property, error) {
	p := t.root
	for _, seg := range splitPath(path) {
		p.Update(false)
		if err := p.Err(); err != nil {
			return nil, err
		}
		ch := p.Children()
		if ch == nil {
			return nil, fmt.Errorf("inspector: %q has no children: %w", p.path, ErrNotFound)
		}
		c, err := ch.ByName(seg)
		if err != nil {
			return nil, err
		}
		p = c
	}
	return p, nil
}

// splitPath splits the given property path into child names,
// such that "A.B[2][k].C" becomes "A", "B", "[2]", "[k]" and "C".
func splitPath(path string) []string {
	var segs []string
	for _, part := range strings.Split(path, ".") {
		for part != "" {
			i := strings.Index(part[1:], "[")
			if i < 0 {
				segs = append(segs, part)
				break
			}
			segs = append(segs, part[:i+1])
			part = part[i+1:]
		}
	}
	return segs
}

// SearchResult is a property found by [Tree.Search].
type SearchResult struct {
	Property *Property

	// Score is the similarity of the property to the query, from 0 to 1.
	Score float64
}

// Search returns up to limit properties (all if limit <= 0) whose labels
// or paths are similar to the given query, best match first. Properties
// are created as needed down to the search depth of the settings.
func (t *Tree) Search(query string, limit int) []SearchResult {
	if query == "" {
		return nil
	}
	jw := metrics.NewJaroWinkler()
	jw.CaseSensitive = false
	q := strings.ToLower(query)
	var res []SearchResult
	var visit func(p *Property, depth int)
	visit = func(p *Property, depth int) {
		if p != t.root {
			score := max(strutil.Similarity(query, p.Label(), jw), strutil.Similarity(query, p.Name(), jw))
			if strings.Contains(strings.ToLower(p.path), q) {
				score = max(score, 1)
			}
			if score >= t.settings.SearchThreshold {
				res = append(res, SearchResult{Property: p, Score: score})
			}
		}
		if depth >= t.settings.SearchDepth {
			return
		}
		p.Update(false)
		if ch := p.Children(); ch != nil {
			for i := 0; i < ch.Len(); i++ {
				visit(ch.Get(i), depth+1)
			}
		}
	}
	visit(t.root, 0)
	slices.SortStableFunc(res, func(a, b SearchResult) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res
}

// Close releases the tree: all properties are disposed, and the drag
// and drop session is closed unless it is shared.
func (t *Tree) Close() {
	t.root.dispose()
	t.callbacks = nil
	if t.ownsSession {
		t.session.Close()
	}
}
