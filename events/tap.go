// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"image"
)

// Tap is a tap-family gesture event ([TapLong], [TapUp], [TapConfirmed],
// [TapDouble], [TapCancel]) carrying the tapped point.
type Tap struct {
	Base

	// Point is where the tap happened, in device pixels.
	Point image.Point
}

// NewTap returns a new [Tap] event of the given type and time.
func NewTap(typ Types, time int64, point image.Point) *Tap {
	ev := &Tap{}
	ev.Typ = typ
	ev.Time = time
	ev.Point = point
	return ev
}

func (ev *Tap) String() string {
	return fmt.Sprintf("%v{Point: %v, Time: %v}", ev.Type(), ev.Point, ev.Time)
}
