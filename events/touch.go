// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"image"
)

// TouchPoint is one finger in a multi-touch event: a stable identifier
// assigned by the host for the lifetime of the touch, and its current
// position in device pixels.
type TouchPoint struct {
	ID    int64
	Point image.Point
}

// Touch is a multi-touch event ([TouchStart], [TouchStartPointer],
// [TouchMove], [TouchEnd], [TouchCancel]) carrying the set of touches
// the action applies to.
type Touch struct {
	Base

	// Points are the touches this event describes. For a start event
	// these are the new touches; for move/end the changed ones.
	Points []TouchPoint
}

// NewTouch returns a new [Touch] event of the given type and time.
func NewTouch(typ Types, time int64, points ...TouchPoint) *Touch {
	ev := &Touch{}
	ev.Typ = typ
	ev.Time = time
	ev.Points = points
	return ev
}

func (ev *Touch) String() string {
	return fmt.Sprintf("%v{Points: %v, Time: %v}", ev.Type(), ev.Points, ev.Time)
}

// FirstPoint returns the position of the first touch in the event, or
// the zero point if the event carries none.
func (ev *Touch) FirstPoint() image.Point {
	if len(ev.Points) == 0 {
		return image.Point{}
	}
	return ev.Points[0].Point
}
