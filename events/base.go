// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the typed input events that flow into the
// pan/zoom engine: raw multi-touch streams and the synthesized pinch
// and tap gestures, each stamped with a monotonic event time.
package events

// Event is the interface for all input events.
type Event interface {
	// Type returns the type of the event.
	Type() Types

	// When returns the monotonic time of the event in milliseconds.
	// All gesture timing (tap windows, velocity deltas) is computed
	// against event times, never the wall clock.
	When() int64
}

// Handler handles an input event, reporting what it did with it.
type Handler interface {
	HandleEvent(ev Event) Status
}

// Base is the common base type for all events. It provides the type and
// time; concrete events embed it and add their payload.
type Base struct {
	// Typ is the type of the event.
	Typ Types

	// Time is the monotonic time of the event in milliseconds.
	Time int64
}

func (ev *Base) Type() Types {
	return ev.Typ
}

func (ev *Base) When() int64 {
	return ev.Time
}
