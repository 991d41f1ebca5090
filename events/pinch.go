// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"image"
)

// Pinch is a two-finger scale gesture event ([PinchStart],
// [PinchScale], [PinchEnd]), synthesized by the gesture recognizer.
type Pinch struct {
	Base

	// Focus is the midpoint between the two touches defining the
	// pinch, in device pixels. It is held stationary in screen space
	// while scaling.
	Focus image.Point

	// CurrentSpan is the current distance between the two touches.
	CurrentSpan float32

	// PreviousSpan is the span carried by the previous pinch event,
	// equal to CurrentSpan on [PinchStart].
	PreviousSpan float32
}

// NewPinch returns a new [Pinch] event of the given type and time.
func NewPinch(typ Types, time int64, focus image.Point, span, prevSpan float32) *Pinch {
	ev := &Pinch{}
	ev.Typ = typ
	ev.Time = time
	ev.Focus = focus
	ev.CurrentSpan = span
	ev.PreviousSpan = prevSpan
	return ev
}

func (ev *Pinch) String() string {
	return fmt.Sprintf("%v{Focus: %v, Span: %v <- %v, Time: %v}", ev.Type(),
		ev.Focus, ev.CurrentSpan, ev.PreviousSpan, ev.Time)
}
