// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apz

import (
	"github.com/chewxy/math32"

	"github.com/glidegfx/glide/content"
	"github.com/glidegfx/glide/geom"
)

// zoomFrames is the easing curve of the animated zoom, one entry per
// composite frame. The sequence looks smoother than straight-line
// zooming.
var zoomFrames = [...]float32{
	0.00000, 0.10211, 0.19864, 0.29043, 0.37816, 0.46155, 0.54054, 0.61496,
	0.68467, 0.74910, 0.80794, 0.86069, 0.90651, 0.94471, 0.97401, 0.99309,
}

// zoomAnimation is an in-flight animated zoom toward a target rect.
type zoomAnimation struct {
	frame      int
	startRes   float32
	targetRes  float32
	startOff   geom.Vector2
	targetOff  geom.Vector2
	onComplete func()
	onError    func(*content.Error)
}

// ZoomToRect starts an animated zoom that brings the given CSS-pixel
// rect into view, driven one frame per composite. Exactly one of
// onComplete and onError is eventually invoked, on the observer
// goroutine when the bridge has a Call(func()) method (as
// [content.Dispatcher] does) and inline on the driving goroutine
// otherwise; a second ZoomToRect or a touch cancels the animation with
// [content.Cancelled]. Either sink may be nil.
//
// An empty rect returns [content.InvalidArgument] synchronously and
// invokes neither sink. Starting a zoom while a touch gesture is in
// progress returns [content.Cancelled]: the gesture wins.
func (c *Controller) ZoomToRect(rect geom.Box2, onComplete func(), onError func(*content.Error)) error {
	if rect.IsEmpty() {
		return content.NewError(content.InvalidArgument, "ZoomToRect")
	}

	switch st := c.State(); {
	case st.IsAnimation():
		c.CancelAnimation()
	case st == WaitingListeners:
		c.setState(Nothing)
	case st != Nothing:
		return content.NewError(content.Cancelled, "ZoomToRect")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	size := rect.Size()
	vp := c.metrics.Viewport
	targetRes := math32.Min(float32(vp.Dx())/size.X, float32(vp.Dy())/size.Y)
	targetRes = math32.Max(c.minZoom, math32.Min(targetRes, c.maxZoom))

	targetOff := rect.Min.MulScalar(targetRes)
	page := c.metrics.CSSContentRect.MulScalar(targetRes)
	limit := page.Size().Sub(geom.FromPoint(vp.Size()))
	targetOff = targetOff.Clamp(page.Min, page.Min.Add(geom.Vec2(
		math32.Max(0, limit.X), math32.Max(0, limit.Y))))

	c.zoom = &zoomAnimation{
		startRes:   c.metrics.Scale(),
		targetRes:  targetRes,
		startOff:   geom.FromPoint(c.metrics.ViewportScrollOffset),
		targetOff:  targetOff,
		onComplete: onComplete,
		onError:    onError,
	}
	c.setState(AnimatedZoom)
	c.forceRepaint()
	return nil
}

// DoZoomFrame advances the animated zoom by one frame. The compositor
// calls it once per composite; outside the [AnimatedZoom] state it is a
// no-op.
func (c *Controller) DoZoomFrame() {
	if c.State() != AnimatedZoom {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	z := c.zoom
	if z == nil {
		return
	}

	t := float32(1)
	if z.frame < len(zoomFrames) {
		t = zoomFrames[z.frame]
	}

	res := z.startRes + (z.targetRes-z.startRes)*t
	c.metrics.Resolution = geom.Vector2Scalar(res)
	c.metrics.UpdateContentRect()
	c.metrics.ViewportScrollOffset = z.startOff.Add(
		z.targetOff.Sub(z.startOff).MulScalar(t)).ToPoint()
	c.forceRepaint()

	z.frame++
	if z.frame >= len(zoomFrames) {
		c.metrics.Resolution = geom.Vector2Scalar(z.targetRes)
		c.metrics.UpdateContentRect()
		c.metrics.ViewportScrollOffset = z.targetOff.ToPoint()
		c.sendViewportChange()
		c.zoom = nil
		c.setState(Nothing)
		if z.onComplete != nil {
			c.dispatch(z.onComplete)
		}
	}
}

// cancelZoomLocked reports a cancelled animated zoom to its error sink.
// Callers hold the write lock.
func (c *Controller) cancelZoomLocked() {
	z := c.zoom
	if z == nil {
		return
	}
	c.zoom = nil
	if z.onError != nil {
		err := content.NewError(content.Cancelled, "ZoomToRect")
		c.dispatch(func() { z.onError(err) })
	}
}

// dispatch runs the given sink on the observer goroutine when the
// bridge supports it, so sinks always land on the observer side.
func (c *Controller) dispatch(fn func()) {
	type caller interface{ Call(func()) }
	if d, ok := c.bridge.(caller); ok {
		d.Call(fn)
		return
	}
	fn()
}
