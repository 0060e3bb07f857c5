// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log/slog"

	"cogentcore.org/inspect/base/logx"
	"github.com/spf13/cobra"
)

// Config is the configuration of the inspect command.
type Config struct {

	// Files are the data files to inspect, one target each.
	Files []string

	// Settings is a TOML file with the inspector settings.
	Settings string

	// Set are path=value assignments applied to all targets.
	Set []string

	// Write writes the targets back to their files after Set.
	Write bool

	// Watch prints the tree again whenever one of the files changes.
	Watch bool

	// Search is a fuzzy query for properties to list instead of the tree.
	Search string

	// Limit is the maximum number of search results.
	Limit int

	// Tree prints the tree as a drawing instead of indented text.
	Tree bool

	// Collapsed prints foldouts in their saved state instead of expanded.
	Collapsed bool

	// Buttons prints the buttons of collections and methods.
	Buttons bool

	// Verbose, VeryVerbose and Quiet select the log level.
	Verbose     bool
	VeryVerbose bool
	Quiet       bool
}

// addFlags binds the flags of the given command to the config.
func (c *Config) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&c.Settings, "config", "", "TOML file with the inspector settings")
	f.StringArrayVar(&c.Set, "set", nil, "set a property of all targets, as path=value (repeatable)")
	f.BoolVar(&c.Write, "write", false, "write the targets back to their files after --set")
	f.BoolVarP(&c.Watch, "watch", "w", false, "print the tree again whenever a file changes")
	f.StringVar(&c.Search, "search", "", "list the properties matching a fuzzy query")
	f.IntVar(&c.Limit, "limit", 20, "maximum number of search results")
	f.BoolVar(&c.Tree, "tree", false, "print the property tree as a drawing")
	f.BoolVar(&c.Collapsed, "collapsed", false, "do not expand all foldouts")
	f.BoolVar(&c.Buttons, "buttons", false, "print buttons")
	f.BoolVarP(&c.Verbose, "verbose", "v", false, "log info messages")
	f.BoolVar(&c.VeryVerbose, "vv", false, "log debug messages")
	f.BoolVarP(&c.Quiet, "quiet", "q", false, "only log errors")
	cmd.MarkFlagsMutuallyExclusive("watch", "write")
}

// level returns the log level selected by the flags.
func (c *Config) level() slog.Level {
	return logx.LevelFromFlags(c.VeryVerbose, c.Verbose, c.Quiet)
}
