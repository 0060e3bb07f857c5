// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(content), 0666))
	return fn
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDump(t *testing.T) {
	fn := writeFile(t, "a.json", `{"name": "web", "port": 80, "server": {"host": "localhost"}}`)
	out, err := execute(t, fn)
	require.NoError(t, err)
	assert.Contains(t, out, "[name]: web\n")
	assert.Contains(t, out, "[port]: 80\n")
	assert.Contains(t, out, "▾ [server] (1)\n")
	assert.Contains(t, out, "  - [host]: localhost\n")
	assert.NotContains(t, out, "[+]")
}

func TestDumpConflicts(t *testing.T) {
	a := writeFile(t, "a.json", `{"name": "web", "port": 80}`)
	b := writeFile(t, "b.yaml", "name: web\nport: 81\nextra: true\n")
	out, err := execute(t, a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "[name]: web\n")
	assert.NotContains(t, out, "[extra]", "only keys in all targets are shown")
	assert.Contains(t, out, "[port]: -\n")
}

func TestSetAndWrite(t *testing.T) {
	a := writeFile(t, "a.json", `{"name": "web", "port": 80}`)
	b := writeFile(t, "b.toml", "name = \"api\"\nport = 81\n")
	out, err := execute(t, "--set", "port=9090", "--set", "name=svc", "--write", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "[port]: 9090\n")
	assert.Contains(t, out, "[name]: svc\n")

	for _, fn := range []string{a, b} {
		d, err := loadDocument(fn)
		require.NoError(t, err)
		assert.Equal(t, "svc", d.Data["name"])
		assert.EqualValues(t, 9090, d.Data["port"])
	}
}

func TestSetErrors(t *testing.T) {
	a := writeFile(t, "a.json", `{"port": 80}`)
	_, err := execute(t, "--set", "port", a)
	assert.ErrorContains(t, err, "want path=value")
	_, err = execute(t, "--set", "missing=1", a)
	assert.Error(t, err)
	_, err = execute(t, "--set", "port=[1", a)
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	fn := writeFile(t, "a.yaml", "name: web\nserver:\n  port: 80\n")
	out, err := execute(t, "--search", "port", fn)
	require.NoError(t, err)
	assert.Contains(t, out, "[server][port]\t")
}

func TestTree(t *testing.T) {
	fn := writeFile(t, "a.json", `{"name": "web", "server": {"port": 80}}`)
	out, err := execute(t, "--tree", fn)
	require.NoError(t, err)
	assert.Contains(t, out, "a.json")
	assert.Contains(t, out, "[name]: web")
	assert.Contains(t, out, "[port]: 80")
}

func TestSettings(t *testing.T) {
	cfg := writeFile(t, "settings.toml", "ConflictPlaceholder = \"<mixed>\"\n")
	a := writeFile(t, "a.json", `{"port": 80}`)
	b := writeFile(t, "b.json", `{"port": 81}`)
	out, err := execute(t, "--config", cfg, a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "[port]: <mixed>\n")
}

func TestUnsupported(t *testing.T) {
	fn := writeFile(t, "a.txt", "hello")
	_, err := execute(t, fn)
	assert.ErrorContains(t, err, "unsupported file extension")
	_, err = execute(t)
	assert.Error(t, err)
}

// syncBuffer is a buffer that is safe for concurrent use.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (sb *syncBuffer) Write(p []byte) (int, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.b.Write(p)
}

func (sb *syncBuffer) String() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.b.String()
}

func TestWatch(t *testing.T) {
	fn := writeFile(t, "a.json", `{"port": 80}`)
	ctx, cancel := context.WithCancel(context.Background())
	cmd := newRootCmd()
	var out syncBuffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--watch", fn})
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "[port]: 80") }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(fn, []byte(`{"port": 81}`), 0666))
	require.Eventually(t, func() bool { return strings.Contains(out.String(), "[port]: 81") }, 5*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestWatchWriteExclusive(t *testing.T) {
	fn := writeFile(t, "a.json", `{"port": 80}`)
	_, err := execute(t, "--watch", "--write", fn)
	assert.Error(t, err)
}
