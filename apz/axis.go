// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apz

import (
	"github.com/chewxy/math32"

	"github.com/glidegfx/glide/config"
)

const (
	// epsilon is the float precision correction threshold.
	epsilon = 1e-4

	// msPerFrame is the milliseconds per frame at 60 fps, used to
	// express velocity as displacement per frame.
	msPerFrame = 1000.0 / 60.0

	// maxEventAcceleration throttles the velocity change between two
	// events, rejecting outlier samples from very small time deltas or
	// touch points far from the previous position.
	maxEventAcceleration = 12
)

// Overscroll is the overscroll state of an axis: whether a position,
// displacement, or scale takes the viewport outside the page rect, and
// on which side.
type Overscroll int32

const (
	// OverscrollNone means the viewport stays within the page.
	OverscrollNone Overscroll = iota

	// OverscrollMinus means the viewport crosses the start (left/top)
	// of the page.
	OverscrollMinus

	// OverscrollPlus means the viewport crosses the end (right/bottom)
	// of the page.
	OverscrollPlus

	// OverscrollBoth means the content is smaller than the viewport on
	// this axis, so both edges are crossed at once.
	OverscrollBoth
)

var overscrollNames = []string{"OverscrollNone", "OverscrollMinus",
	"OverscrollPlus", "OverscrollBoth"}

func (o Overscroll) String() string {
	if o < 0 || int(o) >= len(overscrollNames) {
		return "Overscroll(invalid)"
	}
	return overscrollNames[o]
}

// Projection is the one-axis view of [FrameMetrics] an [Axis] computes
// against. The axis holds no reference back to the controller; every
// operation takes a fresh projection snapshot instead.
type Projection struct {

	// Origin is the scroll offset component on this axis.
	Origin int

	// ViewportLength is the viewport extent on this axis.
	ViewportLength int

	// PageStart is the page rect origin component on this axis.
	PageStart int

	// PageLength is the page rect extent on this axis, at the current
	// zoom.
	PageLength int

	// CSSPageLength is the page extent on this axis in CSS pixels.
	CSSPageLength float32

	// Scale is the current zoom.
	Scale float32
}

// ViewportEnd returns the far edge of the viewport on this axis.
func (p Projection) ViewportEnd() int {
	return p.Origin + p.ViewportLength
}

// PageEnd returns the far edge of the page on this axis.
func (p Projection) PageEnd() int {
	return p.PageStart + p.PageLength
}

// Axis tracks position, velocity, and overscroll for one axis of
// movement. Everything here is specific to one axis; the X axis knows
// nothing about the Y axis and vice versa.
type Axis struct {

	// Pos is the position of the most recent touch on this axis.
	Pos int

	// StartPos is the position where the current touch began.
	StartPos int

	// Velocity is the current velocity, in device pixels per frame.
	Velocity float32

	// Fling is the fling friction tuning.
	Fling config.Fling
}

// StartTouch notifies the axis that a touch has begun: the user has put
// a finger down but has not yet tried to pan.
func (a *Axis) StartTouch(pos int) {
	a.StartPos = pos
	a.Pos = pos
	a.Velocity = 0
}

// StopTouch notifies the axis that a touch has ended. This stops a
// fling when the user puts a finger down in the middle of one.
func (a *Axis) StopTouch() {
	a.Velocity = 0
}

// UpdateWithTouch notifies the axis of a new touch position and the
// time in milliseconds since the previous one, recalculating velocity.
// A zero time delta only moves the position; velocity is unchanged.
func (a *Axis) UpdateWithTouch(pos int, timeDelta int64) {
	if timeDelta == 0 {
		a.Pos = pos
		return
	}
	newVelocity := msPerFrame * float32(a.Pos-pos) / float32(timeDelta)

	curVelocityIsLow := math32.Abs(newVelocity) < 1
	directionChange := (a.Velocity > 0) != (newVelocity > 0)

	// A low velocity, or a direction change to a near-zero velocity, is
	// adopted directly; anything else is throttled against the previous
	// velocity to reject outlier samples.
	if curVelocityIsLow || (directionChange && math32.Abs(newVelocity)-epsilon <= 0) {
		a.Velocity = newVelocity
	} else {
		maxChange := math32.Abs(a.Velocity * float32(timeDelta) * maxEventAcceleration)
		a.Velocity = math32.Min(a.Velocity+maxChange, math32.Max(a.Velocity-maxChange, newVelocity))
	}
	a.Pos = pos
}

// UpdateAndGetDisplacement returns the displacement the axis should
// move this frame at the given zoom, clamped so it does not overscroll
// the page rect. The result can be zero even at high velocity when the
// viewport is already at a page boundary.
func (a *Axis) UpdateAndGetDisplacement(p Projection, scale float32) int {
	displacement := int(math32.Round(a.Velocity / scale))
	if a.DisplacementWillOverscroll(p, displacement) != OverscrollNone {
		displacement -= a.DisplacementWillOverscrollAmount(p, displacement)
	}
	return displacement
}

// PanDistance returns the distance between the start of the current
// touch and the most recent position.
func (a *Axis) PanDistance() float32 {
	return math32.Abs(float32(a.Pos - a.StartPos))
}

// FlingApplyFrictionOrCancel applies one frame of fling friction, or
// cancels the fling when the velocity is too low to be visible.
// It returns whether the fling should continue to another frame.
func (a *Axis) FlingApplyFrictionOrCancel() bool {
	if math32.Abs(a.Velocity) <= a.Fling.StoppedThreshold {
		a.Velocity = 0
		return false
	}
	if math32.Abs(a.Velocity) >= a.Fling.VelocityThreshold {
		a.Velocity *= a.Fling.FrictionFast
	} else {
		a.Velocity *= a.Fling.FrictionSlow
	}
	return true
}

// GetOverscroll returns the overscroll state of the axis at its
// current position.
func (a *Axis) GetOverscroll(p Projection) Overscroll {
	minus := p.Origin < p.PageStart
	plus := p.ViewportEnd() > p.PageEnd()
	switch {
	case (minus && plus) || p.PageLength < p.ViewportLength:
		return OverscrollBoth
	case minus:
		return OverscrollMinus
	case plus:
		return OverscrollPlus
	}
	return OverscrollNone
}

// GetExcess returns the signed amount by which the axis is past the
// page bound. Positive excess overflows in the positive direction.
func (a *Axis) GetExcess(p Projection) int {
	switch a.GetOverscroll(p) {
	case OverscrollMinus:
		return p.Origin - p.PageStart
	case OverscrollPlus:
		return p.ViewportEnd() - p.PageEnd()
	case OverscrollBoth:
		return (p.ViewportEnd() - p.PageEnd()) + (p.PageStart - p.Origin)
	}
	return 0
}

// DisplacementWillOverscroll returns the overscroll state the axis
// would be in if the given displacement were applied.
func (a *Axis) DisplacementWillOverscroll(p Projection, displacement int) Overscroll {
	minus := p.Origin+displacement < p.PageStart
	plus := p.ViewportEnd()+displacement > p.PageEnd()
	switch {
	case minus && plus:
		return OverscrollBoth
	case minus:
		return OverscrollMinus
	case plus:
		return OverscrollPlus
	}
	return OverscrollNone
}

// DisplacementWillOverscrollAmount returns the signed amount by which
// the given displacement would take the axis past the page bound.
func (a *Axis) DisplacementWillOverscrollAmount(p Projection, displacement int) int {
	switch a.DisplacementWillOverscroll(p, displacement) {
	case OverscrollMinus:
		return (p.Origin + displacement) - p.PageStart
	case OverscrollPlus:
		return (p.ViewportEnd() + displacement) - p.PageEnd()
	}
	// A displacement cannot overscroll both ways; that takes a zoom
	// too far out, which scale clamping handles.
	return 0
}

// ScaleWillOverscroll returns the overscroll state the axis would be in
// if the page were scaled by the given factor about the given focus
// position.
func (a *Axis) ScaleWillOverscroll(p Projection, scale float32, focus int) Overscroll {
	originAfterScale := lround(float32(p.Origin+focus)*scale) - focus

	both := a.ScaleWillOverscrollBothWays(p, scale)
	minus := originAfterScale < lround(float32(p.PageStart)*scale)
	plus := originAfterScale+p.ViewportLength > lround(float32(p.PageEnd())*scale)

	switch {
	case (minus && plus) || both:
		return OverscrollBoth
	case minus:
		return OverscrollMinus
	case plus:
		return OverscrollPlus
	}
	return OverscrollNone
}

// ScaleWillOverscrollAmount returns the signed amount by which scaling
// by the given factor about the given focus would take the axis past
// the page bound. Overscroll in both directions returns 0; callers
// handle that case by suppressing the scale.
func (a *Axis) ScaleWillOverscrollAmount(p Projection, scale float32, focus int) int {
	originAfterScale := lround(float32(p.Origin+focus)*scale) - focus
	switch a.ScaleWillOverscroll(p, scale, focus) {
	case OverscrollMinus:
		return originAfterScale - lround(float32(p.PageStart)*scale)
	case OverscrollPlus:
		return (originAfterScale + p.ViewportLength) - lround(float32(p.PageEnd())*scale)
	}
	return 0
}

// ScaleWillOverscrollBothWays reports whether scaling by the given
// factor leaves the content smaller than the viewport on this axis.
func (a *Axis) ScaleWillOverscrollBothWays(p Projection, scale float32) bool {
	scaled := int(math32.Ceil(p.CSSPageLength * scale * p.Scale))
	return scaled < p.ViewportLength
}

// lround rounds to the nearest integer, halves away from zero.
func lround(v float32) int {
	return int(math32.Round(v))
}
