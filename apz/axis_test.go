// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apz

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glidegfx/glide/config"
)

func testProjection() Projection {
	return Projection{
		Origin:         0,
		ViewportLength: 480,
		PageStart:      0,
		PageLength:     1920,
		CSSPageLength:  1920,
		Scale:          1,
	}
}

func newTestAxis() Axis {
	return Axis{Fling: config.Defaults().Fling}
}

func TestAxisStartTouch(t *testing.T) {
	a := newTestAxis()
	a.Velocity = 5
	a.StartTouch(100)
	assert.Equal(t, 100, a.StartPos)
	assert.Equal(t, 100, a.Pos)
	assert.Equal(t, float32(0), a.Velocity)
}

func TestAxisPanDistance(t *testing.T) {
	a := newTestAxis()
	a.StartTouch(100)
	a.UpdateWithTouch(140, 0)
	assert.Equal(t, float32(40), a.PanDistance())
	a.UpdateWithTouch(60, 0)
	assert.Equal(t, float32(40), a.PanDistance())
}

func TestAxisVelocityLowAdopted(t *testing.T) {
	a := newTestAxis()
	a.StartTouch(0)
	// 0.5 device pixels per frame is below the low-velocity cutoff and
	// adopted directly.
	a.UpdateWithTouch(-3, 100)
	assert.InDelta(t, 0.5, a.Velocity, 1e-3)
}

func TestAxisVelocityThrottledFromRest(t *testing.T) {
	a := newTestAxis()
	a.StartTouch(0)
	// A large jump from rest allows zero change, so the sample is
	// rejected outright.
	a.UpdateWithTouch(-600, 16)
	assert.Equal(t, float32(0), a.Velocity)
	assert.Equal(t, -600, a.Pos)
}

func TestAxisVelocityThrottleWindow(t *testing.T) {
	a := newTestAxis()
	a.StartTouch(0)
	a.UpdateWithTouch(-5, 100)
	require.InDelta(t, 0.833, a.Velocity, 1e-2)

	// The window is |v*dt*12|, far larger than the new sample, so it
	// is adopted unchanged.
	a.UpdateWithTouch(-65, 16)
	assert.InDelta(t, 62.5, a.Velocity, 0.5)
}

func TestAxisDirectionChangeNearZeroAdopted(t *testing.T) {
	a := newTestAxis()
	a.StartTouch(0)
	a.Velocity = 5
	a.Pos = 0
	// Direction flips and the new sample is essentially zero.
	a.UpdateWithTouch(0, 100)
	assert.Equal(t, float32(0), a.Velocity)
}

func TestAxisDisplacementClampsAtPageStart(t *testing.T) {
	a := newTestAxis()
	p := testProjection()
	a.Velocity = -50

	// Origin is already at the page start; a negative displacement is
	// clamped to zero.
	d := a.UpdateAndGetDisplacement(p, 1)
	assert.Equal(t, 0, d)
}

func TestAxisDisplacementClampsAtPageEnd(t *testing.T) {
	a := newTestAxis()
	p := testProjection()
	p.Origin = 1430 // 10 px short of the end
	a.Velocity = 50

	d := a.UpdateAndGetDisplacement(p, 1)
	assert.Equal(t, 10, d)
}

func TestAxisDisplacementNoOverscrollStaysInPage(t *testing.T) {
	a := newTestAxis()
	p := testProjection()
	p.Origin = 700

	for _, d := range []int{-700, -100, 0, 100, 740} {
		if a.DisplacementWillOverscroll(p, d) == OverscrollNone {
			origin := p.Origin + d
			assert.GreaterOrEqual(t, origin, p.PageStart)
			assert.LessOrEqual(t, origin, p.PageEnd()-p.ViewportLength)
		}
	}
}

func TestAxisOverscrollStates(t *testing.T) {
	a := newTestAxis()
	p := testProjection()

	tests := []struct {
		origin int
		want   Overscroll
		excess int
	}{
		{0, OverscrollNone, 0},
		{-10, OverscrollMinus, -10},
		{1441, OverscrollPlus, 1},
		{720, OverscrollNone, 0},
	}
	for _, tt := range tests {
		p.Origin = tt.origin
		assert.Equal(t, tt.want, a.GetOverscroll(p), "origin %d", tt.origin)
		assert.Equal(t, tt.excess, a.GetExcess(p), "origin %d", tt.origin)
	}

	// Content smaller than the viewport overscrolls both ways.
	p.Origin = 0
	p.PageLength = 100
	assert.Equal(t, OverscrollBoth, a.GetOverscroll(p))
}

func TestAxisScaleWillOverscroll(t *testing.T) {
	a := newTestAxis()
	p := testProjection()

	// Zooming out far enough that the content is smaller than the
	// viewport overscrolls both ways.
	assert.Equal(t, OverscrollBoth, a.ScaleWillOverscroll(p, 0.2, 0))
	assert.True(t, a.ScaleWillOverscrollBothWays(p, 0.2))

	// At or above the page-fit scale it never overscrolls both ways.
	fit := float32(p.ViewportLength) / p.CSSPageLength
	for _, s := range []float32{fit, fit * 2, 1, 4, 8} {
		assert.False(t, a.ScaleWillOverscrollBothWays(p, s), "scale %v", s)
	}
}

func TestAxisScaleWillOverscrollAmount(t *testing.T) {
	a := newTestAxis()
	p := testProjection()
	p.Origin = 1400

	// Zooming out from the far end of the page pulls the viewport past
	// the page end.
	got := a.ScaleWillOverscroll(p, 0.5, 0)
	require.Equal(t, OverscrollPlus, got)
	amount := a.ScaleWillOverscrollAmount(p, 0.5, 0)
	assert.Equal(t, (700+480)-960, amount)
}

func TestAxisFlingFriction(t *testing.T) {
	a := newTestAxis()
	a.Velocity = 50

	require.True(t, a.FlingApplyFrictionOrCancel())
	assert.InDelta(t, 50*0.970, a.Velocity, 1e-4)

	a.Velocity = 5
	require.True(t, a.FlingApplyFrictionOrCancel())
	assert.InDelta(t, 5*0.850, a.Velocity, 1e-4)

	a.Velocity = 0.05
	assert.False(t, a.FlingApplyFrictionOrCancel())
	assert.Equal(t, float32(0), a.Velocity)
}

func TestAxisFlingTerminates(t *testing.T) {
	a := newTestAxis()
	a.Velocity = 50

	prev := math32.Abs(a.Velocity)
	frames := 0
	for a.FlingApplyFrictionOrCancel() {
		frames++
		require.Less(t, frames, 500, "fling must terminate in finite frames")
		cur := math32.Abs(a.Velocity)
		require.Less(t, cur, prev, "friction must monotonically decrease |velocity|")
		prev = cur
	}
	assert.Equal(t, float32(0), a.Velocity)
}
