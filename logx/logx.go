// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides leveled logging helpers on top of [log/slog],
// gated by a settable user verbosity level.
package logx

import "log/slog"

// UserLevel is the verbosity level the user has selected. Messages
// below this level are not emitted.
var UserLevel = slog.LevelInfo

// SetUserLevel sets [UserLevel].
func SetUserLevel(level slog.Level) {
	UserLevel = level
}

func enabled(level slog.Level) bool {
	return level >= UserLevel
}

// Debug logs the given message at the debug level if enabled.
func Debug(msg string, args ...any) {
	if enabled(slog.LevelDebug) {
		slog.Debug(msg, args...)
	}
}

// Info logs the given message at the info level if enabled.
func Info(msg string, args ...any) {
	if enabled(slog.LevelInfo) {
		slog.Info(msg, args...)
	}
}

// Warn logs the given message at the warn level if enabled.
func Warn(msg string, args ...any) {
	if enabled(slog.LevelWarn) {
		slog.Warn(msg, args...)
	}
}

// Error logs the given message at the error level if enabled.
func Error(msg string, args ...any) {
	if enabled(slog.LevelError) {
		slog.Error(msg, args...)
	}
}
