// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package content

import "fmt"

// Code classifies a failure reported through an error sink or returned
// from an engine operation.
type Code int32

const (
	// Cancelled means a newer operation of the same kind preempted
	// this one before it completed.
	Cancelled Code = iota

	// OutOfResources means an auxiliary object could not be
	// constructed.
	OutOfResources

	// InvalidArgument means the caller passed out-of-range or
	// malformed input. Never retried.
	InvalidArgument

	// Transient means the engine was paused or its surface lost; the
	// operation becomes a no-op and a later resume recovers cleanly.
	// Transient failures are never surfaced to the observer goroutine.
	Transient
)

var codeNames = []string{"Cancelled", "OutOfResources", "InvalidArgument", "Transient"}

func (c Code) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return "Code(invalid)"
	}
	return codeNames[c]
}

// Error is a classified engine failure.
type Error struct {
	// Code classifies the failure.
	Code Code

	// Op names the operation that failed.
	Op string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

// NewError returns a new [Error] with the given code and operation name.
func NewError(code Code, op string) *Error {
	return &Error{Code: code, Op: op}
}
