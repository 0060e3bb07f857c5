// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"fmt"

	"cogentcore.org/inspect/base/errors"
)

var (
	// ErrUnsupported is matched by all [UnsupportedError]s.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrNotFound is returned for lookups of things that do not exist,
	// such as the source of an attribute a property does not have.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when a value cannot be reached,
	// such as through a nil pointer.
	ErrUnavailable = errors.New("value unavailable")
)

// UnsupportedError is an operation that is not supported by its subject,
// such as writing a read-only slot or inserting into a map.
// It is scoped to the single operation and always returned to the caller.
type UnsupportedError struct {

	// Op is the operation, such as "set" or "insert".
	Op string

	// Subject is what the operation was attempted on.
	Subject string

	// Reason is why it is not supported.
	Reason string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("inspector: cannot %s %s: %s", e.Op, e.Subject, e.Reason)
}

// Is makes [errors.Is] match [ErrUnsupported].
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// ResolutionError is a failure to resolve the children, attributes or
// drawers of the property at Path. It is stored on that property and
// rendered inline for it, without affecting other properties.
type ResolutionError struct {
	Path string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("inspector: resolving %q: %v", e.Path, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
