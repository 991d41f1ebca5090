// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

// Types is the type of an input event. The type carries both the source
// of the event (multi-touch, pinch, tap) and the action within it, so a
// handler can dispatch on the type alone.
type Types int32

const (
	// UnknownType is the zero value, an unknown event type.
	UnknownType Types = iota

	// TouchStart happens when the first touch of a sequence goes down.
	// All previously tracked touches are discarded.
	TouchStart

	// TouchStartPointer happens when an additional touch goes down
	// while others are already tracked. Tracked touches are kept.
	TouchStartPointer

	// TouchMove happens when any tracked touch moves.
	TouchMove

	// TouchEnd happens when a tracked touch is lifted.
	TouchEnd

	// TouchCancel happens when the host aborts the touch sequence,
	// for example when the application loses its window surface.
	TouchCancel

	// PinchStart is emitted by the gesture recognizer when a second
	// touch goes down, opening a pinch gesture.
	PinchStart

	// PinchScale is emitted on each motion during a pinch, carrying the
	// current and previous span between the two defining touches.
	PinchScale

	// PinchEnd is emitted when a pinch drops below two touches.
	PinchEnd

	// TapLong is a press held in place past the long-press duration.
	TapLong

	// TapUp is a touch lifted within the tap window. It highlights the
	// target but does not activate it; see TapConfirmed.
	TapUp

	// TapConfirmed activates the tap target. It follows TapUp, either
	// immediately or after the double-tap exclusion delay.
	TapConfirmed

	// TapDouble is two taps in rapid succession.
	TapDouble

	// TapCancel revokes a pending tap, for example when the touch
	// started panning instead.
	TapCancel
)

var typeNames = []string{"UnknownType", "TouchStart", "TouchStartPointer",
	"TouchMove", "TouchEnd", "TouchCancel", "PinchStart", "PinchScale",
	"PinchEnd", "TapLong", "TapUp", "TapConfirmed", "TapDouble", "TapCancel"}

func (t Types) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Types(invalid)"
	}
	return typeNames[t]
}

// Status is what a handler did with an event.
type Status int32

const (
	// Ignore means the handler did not use the event; the host should
	// take its default action.
	Ignore Status = iota

	// ConsumeNoDefault means the handler used the event and the host
	// must not take its default action.
	ConsumeNoDefault

	// ConsumeDoDefault means the handler used the event but the host
	// should still take its default action.
	ConsumeDoDefault
)

func (s Status) String() string {
	switch s {
	case ConsumeNoDefault:
		return "ConsumeNoDefault"
	case ConsumeDoDefault:
		return "ConsumeDoDefault"
	}
	return "Ignore"
}
