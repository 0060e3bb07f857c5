// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"

	"cogentcore.org/inspect/base/errors"
	"cogentcore.org/inspect/base/logx"
	"cogentcore.org/inspect/inspector"
	"cogentcore.org/inspect/textpaint"
	"github.com/mitchellh/go-homedir"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRootCmd() *cobra.Command {
	c := &Config{}
	cmd := &cobra.Command{
		Use:   "inspect [flags] FILE...",
		Short: "Inspect and edit JSON, YAML and TOML files as one target set",
		Long: `Inspect loads each file as one target of an inspector and prints the
property tree of all of them, showing values that differ between files
with the conflict placeholder. Properties are named by path, such as
"server.ports[0]", and can be set in all files at once with --set.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Files = args
			logx.UserLevel = c.level()
			errOut := cmd.ErrOrStderr()
			noColor := termenv.NewOutput(errOut).EnvColorProfile() == termenv.Ascii
			logger := slog.New(logx.NewHandler(errOut, noColor))
			if err := run(c, cmd.OutOrStdout(), logger); err != nil {
				return err
			}
			if c.Watch {
				return watch(cmd.Context(), c, cmd.OutOrStdout(), logger)
			}
			return nil
		},
	}
	c.addFlags(cmd)
	return cmd
}

// run runs the command with the given config.
func run(c *Config, w io.Writer, logger *slog.Logger) error {
	docs, err := loadDocuments(c.Files)
	if err != nil {
		return err
	}
	opts := []inspector.Option{inspector.WithLogger(logger)}
	if c.Settings != "" {
		fn, err := homedir.Expand(c.Settings)
		if err != nil {
			return err
		}
		s, err := inspector.LoadSettings(fn)
		if err != nil {
			return err
		}
		opts = append(opts, inspector.WithSettings(s))
	}
	targets := make([]any, len(docs))
	for i, d := range docs {
		targets[i] = d.Data
	}
	tr, err := inspector.NewTree(targets, opts...)
	if err != nil {
		return err
	}
	defer tr.Close()

	if len(c.Set) > 0 {
		if err := applySets(tr, c.Set); err != nil {
			return err
		}
		if c.Write {
			var errs []error
			for _, d := range docs {
				if err := d.Save(); err != nil {
					errs = append(errs, err)
					continue
				}
				logger.Info("wrote", "file", d.Filename)
			}
			if err := errors.Join(errs...); err != nil {
				return err
			}
		}
	}

	switch {
	case c.Search != "":
		for _, r := range tr.Search(c.Search, c.Limit) {
			fmt.Fprintf(w, "%s\t%.2f\n", r.Property.Path(), r.Score)
		}
	case c.Tree:
		fmt.Fprint(w, drawTree(tr, docs))
	default:
		pt := textpaint.New()
		pt.ExpandAll = !c.Collapsed
		pt.HideButtons = !c.Buttons
		tr.Draw(pt)
		_, err = pt.WriteTo(w)
	}
	return err
}

// applySets applies the given path=value assignments to all targets.
// Values are parsed as YAML for properties that are not text.
func applySets(tr *inspector.Tree, sets []string) error {
	var errs []error
	for _, s := range sets {
		path, text, ok := strings.Cut(s, "=")
		if !ok {
			errs = append(errs, fmt.Errorf("inspect: --set %q: want path=value", s))
			continue
		}
		if err := setPath(tr, strings.TrimSpace(path), text); err != nil {
			errs = append(errs, fmt.Errorf("inspect: --set %q: %w", s, err))
		}
	}
	return errors.Join(errs...)
}

func setPath(tr *inspector.Tree, path, text string) error {
	p, err := tr.Find(path)
	if err != nil {
		return err
	}
	var v any
	if p.ValueType().Kind() == reflect.Interface {
		// values of mixed or dynamic types take the type of the text
		err = yaml.Unmarshal([]byte(text), &v)
	} else {
		v, err = inspector.ParseInput(text, p.ValueType())
	}
	if err != nil {
		return err
	}
	if err := p.ValueEntry().SetAll(v); err != nil {
		return err
	}
	tr.Update(true)
	return nil
}
