// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides small helpers for logging errors where they
// occur while still returning them to the caller.
package errors

import "log/slog"

// Log logs the given error if it is non-nil and returns it unchanged.
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error())
	}
	return err
}

// Log1 logs the given error if it is non-nil and returns the value.
// It is useful for wrapping two-value function calls inline.
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error())
	}
	return v
}

// Ignore1 returns the value, discarding the error.
func Ignore1[T any](v T, _ error) T {
	return v
}
