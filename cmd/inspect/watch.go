// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// watch runs the command again whenever one of the files of the config
// is written, until the given context is done.
func watch(ctx context.Context, c *Config, w io.Writer, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	for _, fn := range c.Files {
		if err := watcher.Add(fn); err != nil {
			return err
		}
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			logger.Info("reloading", "file", ev.Name)
			if err := run(c, w, logger); err != nil {
				logger.Error("inspect", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("inspect: watching files", "err", err)
		}
	}
}
