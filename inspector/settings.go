// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"log/slog"
	"os"

	"cogentcore.org/inspect/attrs"
	"cogentcore.org/inspect/dnd"
	"cogentcore.org/inspect/persist"
	"github.com/pelletier/go-toml/v2"
)

// Settings are the settings of a [Tree], which can be saved
// and loaded as TOML.
type Settings struct {

	// ConflictPlaceholder is shown instead of the value of a
	// field whose targets have different values.
	ConflictPlaceholder string

	// DefaultExpanded is whether composite properties are expanded
	// until they are folded for the first time.
	DefaultExpanded bool

	// ShowIndexLabels is whether collection elements are labeled
	// with their index by default.
	ShowIndexLabels bool

	// MemberCacheSize is the number of struct types whose
	// resolved members are kept.
	MemberCacheSize int

	// SearchThreshold is the minimum similarity, from 0 to 1, of
	// the properties returned by [Tree.Search].
	SearchThreshold float64

	// SearchDepth is the maximum depth of properties
	// searched by [Tree.Search].
	SearchDepth int
}

// DefaultSettings returns the default settings.
func DefaultSettings() *Settings {
	return &Settings{
		ConflictPlaceholder: "-",
		DefaultExpanded:     false,
		ShowIndexLabels:     true,
		MemberCacheSize:     256,
		SearchThreshold:     0.8,
		SearchDepth:         8,
	}
}

// LoadSettings returns the default settings with the values
// in the given TOML file applied on top of them.
func LoadSettings(filename string) (*Settings, error) {
	s := DefaultSettings()
	b, err := os.ReadFile(filename)
	if err != nil {
		return s, err
	}
	if err := toml.Unmarshal(b, s); err != nil {
		return s, err
	}
	return s, nil
}

// Save saves the settings to the given TOML file.
func (s *Settings) Save(filename string) error {
	b, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}

// Option is an option for [NewTree].
type Option func(t *Tree)

// WithSettings sets the settings of the tree.
func WithSettings(s *Settings) Option {
	return func(t *Tree) { t.settings = s }
}

// WithLogger sets the logger of the tree.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tree) { t.logger = l }
}

// WithStore sets the scratch store of the tree, which can
// be shared by trees to share their drawing state.
func WithStore(s *persist.Store) Option {
	return func(t *Tree) { t.store = s }
}

// WithDrawers sets the drawer registry of the tree.
func WithDrawers(d *Drawers) Option {
	return func(t *Tree) { t.drawers = d }
}

// WithAttributes sets the attribute registry of the tree.
func WithAttributes(r *attrs.Registry) Option {
	return func(t *Tree) { t.attributes = r }
}

// WithAccessors sets the synthetic accessor registry of the tree.
func WithAccessors(a *Accessors) Option {
	return func(t *Tree) { t.accessors = a }
}

// WithResolvers sets the children resolver locator of the tree.
func WithResolvers(rl *ResolverLocator) Option {
	return func(t *Tree) { t.resolvers = rl }
}

// WithDragSession sets the drag and drop session of the tree, which
// can be shared by trees to drag elements between them. A shared
// session is not closed by [Tree.Close].
func WithDragSession(s *dnd.Session) Option {
	return func(t *Tree) { t.session = s }
}
