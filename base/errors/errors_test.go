// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := New("boom")
	assert.Equal(t, err, Log(err))
	assert.Equal(t, 3, Log1(3, err))
	assert.Equal(t, 4, Ignore1(4, err))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(New("boom")) })
	assert.Equal(t, "a", Must1("a", nil))
	assert.Panics(t, func() { Must1("a", New("boom")) })
}

func TestFromPanic(t *testing.T) {
	assert.NoError(t, FromPanic(nil))
	base := New("inner")
	err := FromPanic(base)
	assert.True(t, Is(err, base))
	assert.EqualError(t, FromPanic(42), "panic: 42")
	assert.EqualError(t, FromPanic(fmt.Sprint("x")), "panic: x")
}
