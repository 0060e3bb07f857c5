// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Document is a data file loaded as a target.
type Document struct {
	Filename string
	Data     map[string]any
}

// format returns the format of the given file by its extension.
func format(filename string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	default:
		return "", fmt.Errorf("inspect: %s: unsupported file extension %q", filename, ext)
	}
}

// loadDocument loads the given JSON, YAML or TOML file.
func loadDocument(filename string) (*Document, error) {
	f, err := format(filename)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	d := &Document{Filename: filename, Data: map[string]any{}}
	switch f {
	case "json":
		err = json.Unmarshal(b, &d.Data)
	case "yaml":
		err = yaml.Unmarshal(b, &d.Data)
	case "toml":
		err = toml.Unmarshal(b, &d.Data)
	}
	if err != nil {
		return nil, fmt.Errorf("inspect: %s: %w", filename, err)
	}
	if d.Data == nil {
		d.Data = map[string]any{}
	}
	return d, nil
}

// loadDocuments loads all of the given files.
func loadDocuments(filenames []string) ([]*Document, error) {
	docs := make([]*Document, len(filenames))
	for i, fn := range filenames {
		d, err := loadDocument(fn)
		if err != nil {
			return nil, err
		}
		docs[i] = d
	}
	return docs, nil
}

// Save writes the document back to its file in its format.
func (d *Document) Save() error {
	f, err := format(d.Filename)
	if err != nil {
		return err
	}
	var b []byte
	switch f {
	case "json":
		b, err = json.MarshalIndent(d.Data, "", "  ")
		b = append(b, '\n')
	case "yaml":
		b, err = yaml.Marshal(d.Data)
	case "toml":
		b, err = toml.Marshal(d.Data)
	}
	if err != nil {
		return fmt.Errorf("inspect: %s: %w", d.Filename, err)
	}
	return os.WriteFile(d.Filename, b, 0666)
}
