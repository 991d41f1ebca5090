// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package apz is the asynchronous pan/zoom controller: it owns the
// viewport and zoom state, interprets gesture events into scrolls and
// scales, drives fling and zoom animations from the composite loop, and
// computes the displayport the document side is asked to rasterize.
//
// Concurrency: input entry points run on the UI goroutine; the fling
// and zoom drivers and the transform derivation run on the compositor
// goroutine. FrameMetrics and the two axis trackers are guarded by a
// single RWMutex. No controller operation is reentrant: a bridge or
// scheduler callback must never call back into the controller
// synchronously.
package apz

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/chewxy/math32"

	"github.com/glidegfx/glide/config"
	"github.com/glidegfx/glide/content"
	"github.com/glidegfx/glide/events"
	"github.com/glidegfx/glide/geom"
)

// Scheduler requests composite frames from the compositor. The
// controller holds only this one-way interface; the compositor calls
// back through the controller's exported frame-driver methods, so the
// two sides communicate by requests rather than shared ownership.
type Scheduler interface {
	ScheduleComposite()
}

// Controller is the asynchronous pan/zoom controller. Create one with
// [New].
type Controller struct {
	mu sync.RWMutex // guards metrics, axes, and the zoom animation

	state         atomic.Int32
	x, y          Axis
	metrics       FrameMetrics
	bridge        content.Notifier
	scheduler     Scheduler
	zoom          *zoomAnimation
	layersUpdated atomic.Bool
	compositing   atomic.Bool

	dpi          int
	panThreshold float32
	minZoom      float32
	maxZoom      float32

	repaintInterval int64 // milliseconds
	dpMultiplier    float32

	lastEventTime int64
	lastRepaint   int64
	lastZoomFocus image.Point
}

// New returns a new [Controller] publishing through the given bridge.
// A nil settings uses [config.Defaults].
func New(bridge content.Notifier, settings *config.Settings) *Controller {
	if settings == nil {
		settings = config.Defaults()
	}
	c := &Controller{
		bridge:          bridge,
		metrics:         NewFrameMetrics(),
		minZoom:         settings.Zoom.Min,
		maxZoom:         settings.Zoom.Max,
		repaintInterval: settings.Pan.RepaintInterval.Milliseconds(),
		dpMultiplier:    settings.DisplayPort.SizeMultiplier,
	}
	c.x.Fling = settings.Fling
	c.y.Fling = settings.Fling
	c.SetDPI(settings.DPI)
	return c
}

// SetScheduler sets the compositor-side frame scheduler the controller
// requests repaints from.
func (c *Controller) SetScheduler(s Scheduler) {
	c.scheduler = s
}

// SetCompositing sets whether a compositor is attached. Input events
// are ignored until it is.
func (c *Controller) SetCompositing(on bool) {
	c.compositing.Store(on)
}

// SetDPI sets the display density and derives the pan threshold from
// it as DPI/16.
func (c *Controller) SetDPI(dpi int) {
	c.dpi = dpi
	c.panThreshold = float32(dpi) / 16
}

// PanThreshold returns the pan distance, in device pixels, a touch must
// move before it becomes a pan.
func (c *Controller) PanThreshold() float32 {
	return c.panThreshold
}

// Metrics returns a copy of the current frame metrics.
func (c *Controller) Metrics() FrameMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.metrics
}

// SetMetrics replaces the frame metrics wholesale.
func (c *Controller) SetMetrics(m FrameMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = m
}

// UpdateViewportSize changes the viewport rect to the given size. The
// scroll offset is unchanged.
func (c *Controller) UpdateViewportSize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics.Viewport = image.Rect(0, 0, width, height)
}

// NotifyLayersUpdated adopts authoritative new metrics published by the
// document side after it repainted.
func (c *Controller) NotifyLayersUpdated(m FrameMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m.UpdateContentRect()
	c.metrics = m
}

// LayersUpdated reports whether a pan or zoom has changed the metrics
// since the last reset.
func (c *Controller) LayersUpdated() bool {
	return c.layersUpdated.Load()
}

// ResetLayersUpdated clears the layers-updated flag after the
// compositor has synchronized.
func (c *Controller) ResetLayersUpdated() {
	c.layersUpdated.Store(false)
}

// HandleEvent is the controller's input entry point. The gesture
// recognizer passes through every event it does not consume itself.
// Events are ignored until a compositor is attached.
func (c *Controller) HandleEvent(ev events.Event) events.Status {
	if !c.compositing.Load() {
		return events.Ignore
	}

	status := events.Ignore
	switch e := ev.(type) {
	case *events.Touch:
		switch e.Type() {
		case events.TouchStart, events.TouchStartPointer:
			status = c.onTouchStart(e)
		case events.TouchMove:
			status = c.onTouchMove(e)
		case events.TouchEnd:
			status = c.onTouchEnd(e)
		case events.TouchCancel:
			status = events.ConsumeNoDefault
		}
	case *events.Pinch:
		switch e.Type() {
		case events.PinchStart:
			status = c.onScaleBegin(e)
		case events.PinchScale:
			status = c.onScale(e)
		case events.PinchEnd:
			status = c.onScaleEnd(e)
		}
	case *events.Tap:
		switch e.Type() {
		case events.TapLong:
			status = c.sendGesture(content.TopicGestureLongPress, e.Point)
		case events.TapUp, events.TapConfirmed:
			status = c.sendGesture(content.TopicGestureSingleTap, e.Point)
		case events.TapDouble:
			status = c.sendGesture(content.TopicGestureDoubleTap, e.Point)
		case events.TapCancel:
			status = c.onCancelTap()
		}
	}

	c.lastEventTime = ev.When()
	return status
}

func (c *Controller) onTouchStart(e *events.Touch) events.Status {
	pt := e.FirstPoint()

	switch c.State() {
	case AnimatedZoom, Fling, Bounce:
		c.CancelAnimation()
		fallthrough
	case Nothing, WaitingListeners:
		c.mu.Lock()
		c.x.StartTouch(pt.X)
		c.y.StartTouch(pt.Y)
		c.mu.Unlock()
		c.setState(Touching)
	}

	return events.ConsumeNoDefault
}

func (c *Controller) onTouchMove(e *events.Touch) events.Status {
	pt := e.FirstPoint()

	switch st := c.State(); st {
	case AnimatedZoom, Fling, Bounce, Nothing, WaitingListeners, Touching:
		if c.panDistance(e) < c.panThreshold {
			return events.ConsumeNoDefault
		}
		c.lastRepaint = e.Time
		c.mu.Lock()
		c.x.StartTouch(pt.X)
		c.y.StartTouch(pt.Y)
		c.mu.Unlock()
		c.onCancelTap()
		c.setState(Panning)
	case Panning:
		c.trackTouch(e)
	}

	return events.ConsumeNoDefault
}

func (c *Controller) onTouchEnd(e *events.Touch) events.Status {
	c.onCancelTap()

	switch st := c.State(); {
	case st == Touching:
		c.setState(Nothing)
	case st.IsPanning():
		c.mu.Lock()
		c.forceRepaint()
		c.sendViewportChange()
		c.mu.Unlock()
		c.setState(Fling)
	}

	return events.ConsumeNoDefault
}

func (c *Controller) onScaleBegin(e *events.Pinch) events.Status {
	c.onCancelTap()
	if st := c.State(); st.IsAnimation() {
		c.CancelAnimation()
	}
	c.setState(Pinching)
	c.lastZoomFocus = e.Focus

	return events.ConsumeNoDefault
}

func (c *Controller) onScale(e *events.Pinch) events.Status {
	if math32.Abs(e.PreviousSpan) <= epsilon {
		// Still handling the pinch; this sample is just thrown away.
		return events.ConsumeNoDefault
	}

	spanRatio := e.CurrentSpan / e.PreviousSpan

	c.mu.Lock()
	defer c.mu.Unlock()

	scale := c.metrics.Scale()
	focus := e.Focus

	// Displace by the change in focus point, clamped to the page
	// bounds, so a two-finger drag pans while it scales.
	xFocusChange := int(float32(c.lastZoomFocus.X-focus.X) / scale)
	yFocusChange := int(float32(c.lastZoomFocus.Y-focus.Y) / scale)
	px, py := c.metrics.ProjectionX(), c.metrics.ProjectionY()
	if c.x.DisplacementWillOverscroll(px, xFocusChange) != OverscrollNone {
		xFocusChange -= c.x.DisplacementWillOverscrollAmount(px, xFocusChange)
	}
	if c.y.DisplacementWillOverscroll(py, yFocusChange) != OverscrollNone {
		yFocusChange -= c.y.DisplacementWillOverscrollAmount(py, yFocusChange)
	}
	c.scrollBy(image.Pt(xFocusChange, yFocusChange))

	// Zooming toward a page edge can push the viewport over it; these
	// are the displacements that keep the edge pinned to the boundary.
	neededDisplacementX, neededDisplacementY := 0, 0

	doScale := (scale < c.maxZoom && spanRatio > 1) || (scale > c.minZoom && spanRatio < 1)

	// Reduce the span ratio so the effective scale lands exactly on
	// the zoom clamp instead of overshooting it.
	if scale*spanRatio > c.maxZoom {
		spanRatio = c.maxZoom / scale
	} else if scale*spanRatio < c.minZoom {
		spanRatio = c.minZoom / scale
	}

	if doScale {
		px, py = c.metrics.ProjectionX(), c.metrics.ProjectionY()
		switch c.x.ScaleWillOverscroll(px, spanRatio, focus.X) {
		case OverscrollMinus, OverscrollPlus:
			neededDisplacementX = -c.x.ScaleWillOverscrollAmount(px, spanRatio, focus.X)
		case OverscrollBoth:
			// Overscrolling both ways means we are already at the
			// maximum zoomed-out amount; clamp the scale here.
			doScale = false
		}
	}

	if doScale {
		switch c.y.ScaleWillOverscroll(py, spanRatio, focus.Y) {
		case OverscrollMinus, OverscrollPlus:
			neededDisplacementY = -c.y.ScaleWillOverscrollAmount(py, spanRatio, focus.Y)
		case OverscrollBoth:
			doScale = false
		}
	}

	if doScale {
		c.scaleWithFocus(scale*spanRatio, focus)
		if neededDisplacementX != 0 || neededDisplacementY != 0 {
			c.scrollBy(image.Pt(neededDisplacementX, neededDisplacementY))
		}
		c.forceRepaint()
		// Publishing the viewport on every scale sample would repaint
		// far too often; the pinch end publishes instead.
	}

	c.lastZoomFocus = focus

	return events.ConsumeNoDefault
}

func (c *Controller) onScaleEnd(e *events.Pinch) events.Status {
	// The last finger down continues as a drag.
	c.setState(Panning)
	c.mu.Lock()
	c.x.StartTouch(e.Focus.X)
	c.y.StartTouch(e.Focus.Y)
	c.forceRepaint()
	c.sendViewportChange()
	c.mu.Unlock()

	return events.ConsumeNoDefault
}

func (c *Controller) sendGesture(topic string, pt image.Point) events.Status {
	c.mu.RLock()
	actual := c.convertViewPointToLayerPoint(pt)
	c.mu.RUnlock()
	c.bridge.SendGestureEvent(topic, actual)
	return events.ConsumeNoDefault
}

func (c *Controller) onCancelTap() events.Status {
	c.bridge.SendGestureEvent(content.TopicGestureCancel, image.Point{})
	return events.ConsumeNoDefault
}

// panDistance returns the distance the touch has moved since it
// started, in screen pixels.
func (c *Controller) panDistance(e *events.Touch) float32 {
	pt := e.FirstPoint()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.x.UpdateWithTouch(pt.X, 0)
	c.y.UpdateWithTouch(pt.Y, 0)
	return math32.Hypot(c.x.PanDistance(), c.y.PanDistance()) * c.metrics.Scale()
}

// trackTouch applies one move sample of an active pan: velocity update,
// clamped scroll, repaint request, and the throttled displayport
// publication.
func (c *Controller) trackTouch(e *events.Touch) {
	pt := e.FirstPoint()
	timeDelta := e.Time - c.lastEventTime

	// A duplicate event; throw it away.
	if timeDelta == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.x.UpdateWithTouch(pt.X, timeDelta)
	c.y.UpdateWithTouch(pt.Y, timeDelta)

	scale := c.metrics.Scale()
	xDisplacement := c.x.UpdateAndGetDisplacement(c.metrics.ProjectionX(), scale)
	yDisplacement := c.y.UpdateAndGetDisplacement(c.metrics.ProjectionY(), scale)
	if xDisplacement == 0 && yDisplacement == 0 {
		return
	}

	c.scrollBy(image.Pt(xDisplacement, yDisplacement))
	c.forceRepaint()

	if e.Time-c.lastRepaint >= c.repaintInterval {
		c.sendViewportChange()
		c.lastRepaint = e.Time
	}
}

// DoFling advances the fling animation by one frame. The compositor
// calls it once per composite; outside the [Fling] state it is a no-op.
func (c *Controller) DoFling() {
	if c.State() != Fling {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	xContinue := c.x.FlingApplyFrictionOrCancel()
	yContinue := c.y.FlingApplyFrictionOrCancel()
	if !xContinue && !yContinue {
		c.forceRepaint()
		c.sendViewportChange()
		c.setState(Nothing)
		return
	}

	scale := c.metrics.Scale()
	c.scrollBy(image.Pt(
		c.x.UpdateAndGetDisplacement(c.metrics.ProjectionX(), scale),
		c.y.UpdateAndGetDisplacement(c.metrics.ProjectionY(), scale),
	))
	c.forceRepaint()
	c.sendViewportChange()
}

// CancelAnimation stops any composite-driven animation. The next frame
// driver tick becomes a no-op. A cancelled animated zoom reports
// [content.Cancelled] to its error sink.
func (c *Controller) CancelAnimation() {
	c.mu.Lock()
	c.cancelZoomLocked()
	c.mu.Unlock()
	c.setState(Nothing)
}

// ScrollBy adds the given offset to the viewport scroll offset and
// commits the updated metrics.
func (c *Controller) ScrollBy(offset image.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scrollBy(offset)
}

// ScaleWithFocus sets the zoom to the given absolute scale, keeping the
// given focus point stationary in screen space.
func (c *Controller) ScaleWithFocus(scale float32, focus image.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scaleWithFocus(scale, focus)
}

// scrollBy adds the given offset to the viewport scroll offset.
// Callers hold the write lock.
func (c *Controller) scrollBy(offset image.Point) {
	c.metrics.ViewportScrollOffset = c.metrics.ViewportScrollOffset.Add(offset)
}

// scaleWithFocus sets the zoom to the given absolute scale, adjusting
// the scroll offset so the focus point stays stationary in screen
// space. Callers hold the write lock.
func (c *Controller) scaleWithFocus(scale float32, focus image.Point) {
	scaleFactor := scale / c.metrics.Scale()

	c.metrics.Resolution = geom.Vector2Scalar(scale)
	c.metrics.UpdateContentRect()

	off := geom.FromPoint(c.metrics.ViewportScrollOffset)
	f := geom.FromPoint(focus)
	c.metrics.ViewportScrollOffset = off.Add(f).MulScalar(scaleFactor).Sub(f).ToPoint()
}

// forceRepaint marks the metrics as changed and requests a composite.
// Callers hold the write lock.
func (c *Controller) forceRepaint() {
	c.layersUpdated.Store(true)
	if c.scheduler != nil {
		c.scheduler.ScheduleComposite()
	}
}

// sendViewportChange recomputes the displayport and publishes the new
// viewport to the document side. Callers hold the write lock.
func (c *Controller) sendViewportChange() {
	c.metrics.DisplayPort = c.calculatePendingDisplayPort()
	dp := c.metrics.DisplayPort
	off := c.metrics.ViewportScrollOffset
	scale := c.metrics.Scale()
	c.bridge.SendViewportChange(off.X, off.Y, scale, content.DisplayPort{
		Left:       dp.Min.X,
		Top:        dp.Min.Y,
		Right:      dp.Max.X,
		Bottom:     dp.Max.Y,
		Resolution: scale,
	})
}

// calculatePendingDisplayPort returns the region around the viewport
// the document side should rasterize, relative to the scroll offset:
// the viewport expanded by (multiplier-1)/2 of its size on every side,
// clamped against the page at the current zoom. When the raw port
// extends past the page start it is shifted inward with its far edge
// held, and symmetrically shrunk at the page end. Callers hold at
// least the read lock.
func (c *Controller) calculatePendingDisplayPort() image.Rectangle {
	size := geom.FromPoint(c.metrics.Viewport.Size())
	margin := size.MulScalar((c.dpMultiplier - 1) / 2)
	port := geom.Box2{Min: margin.Negate(), Max: size.Add(margin)}

	page := c.metrics.CSSContentRect.MulScalar(c.metrics.Scale())
	off := geom.FromPoint(c.metrics.ViewportScrollOffset)

	if port.Min.X+off.X < page.Min.X {
		port.Min.X = page.Min.X - off.X
	}
	if port.Min.Y+off.Y < page.Min.Y {
		port.Min.Y = page.Min.Y - off.Y
	}
	if port.Max.X+off.X > page.Max.X {
		port.Max.X = math32.Max(port.Min.X, page.Max.X-off.X)
	}
	if port.Max.Y+off.Y > page.Max.Y {
		port.Max.Y = math32.Max(port.Min.Y, page.Max.Y-off.Y)
	}

	return geom.RoundRect(port)
}

// convertViewPointToLayerPoint converts a screen point to page
// coordinates at the current zoom. Callers hold at least the read lock.
func (c *Controller) convertViewPointToLayerPoint(viewPoint image.Point) image.Point {
	scale := c.metrics.Scale()
	off := c.metrics.ViewportScrollOffset
	return image.Pt(off.X+int(float32(viewPoint.X)/scale),
		off.Y+int(float32(viewPoint.Y)/scale))
}

// AdoptFirstPaint adopts the metrics of the primary scrollable layer
// wholesale on the first paint of a page.
func (c *Controller) AdoptFirstPaint(m FrameMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics.ViewportScrollOffset = m.ViewportScrollOffset
	c.metrics.Resolution = m.Resolution
	c.metrics.ContentRect = m.ContentRect
	c.metrics.CSSContentRect = m.CSSContentRect
	c.metrics.Scrollable = m.Scrollable
}

// AdoptPageRect adopts a new CSS page rect after a document-side
// reflow, recomputing the content rect at the current zoom.
func (c *Controller) AdoptPageRect(cssRect geom.Box2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics.CSSContentRect = cssRect
	c.metrics.UpdateContentRect()
}

// SyncViewportInfo stores the absolute displayport computed by the
// compositor and returns the scroll offset and zoom it should composite
// with.
func (c *Controller) SyncViewportInfo(absDisplayPort image.Rectangle) (offset image.Point, zoom float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics.DisplayPort = absDisplayPort.Sub(c.metrics.ViewportScrollOffset)
	return c.metrics.ViewportScrollOffset, c.metrics.Scale()
}

// PublishViewport publishes the current viewport to the document side,
// outside of any gesture. The compositor uses it for first-paint and
// page-rect notifications.
func (c *Controller) PublishViewport() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sendViewportChange()
}
