// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compositor schedules composite frames, resolves the async
// pan/zoom transform, and samples property animations onto the shadow
// layer tree.
//
// All composites execute sequentially on the driver's own goroutine; a
// new composite is never interleaved with another. Pause and resume are
// synchronous for the caller: they block until the compositor goroutine
// acknowledges, so a window surface is never torn down under a frame in
// flight.
package compositor

import (
	"image"
	"sync"
	"time"

	"github.com/glidegfx/glide/apz"
	"github.com/glidegfx/glide/geom"
)

// compositeInterval is the floor between composite frames. 60 fps is
// the most the display can show, so frames closer than this waste
// computation.
const compositeInterval = 15 * time.Millisecond

// Driver runs the composite loop over a shadow layer tree. Create one
// with [New]; call [Driver.Stop] when done.
type Driver struct {
	manager    LayerManager
	controller *apz.Controller

	tasks    chan func()
	stop     chan struct{}
	stopOnce sync.Once

	mu               sync.Mutex // guards scheduling state
	compositePending bool
	lastCompose      time.Time
	widgetSize       geom.Vector2

	pauseMu sync.Mutex
	ack     *sync.Cond
	paused  bool

	// The driver's copy of the viewport data, synchronized from the
	// controller each composite and used as the transform source when
	// no controller is attached.
	scrollOffset  image.Point
	xScale        float32
	yScale        float32
	isFirstPaint  bool
	layersUpdated bool
	contentRect   image.Rectangle
}

// New returns a new running [Driver] compositing the given manager's
// shadow tree. controller may be nil for a compositor without async
// pan/zoom; otherwise the driver registers itself as the controller's
// frame scheduler and marks it compositing.
func New(manager LayerManager, controller *apz.Controller) *Driver {
	d := &Driver{
		manager:    manager,
		controller: controller,
		tasks:      make(chan func(), 64),
		stop:       make(chan struct{}),
		xScale:     1,
		yScale:     1,
	}
	d.ack = sync.NewCond(&d.pauseMu)
	if controller != nil {
		controller.SetScheduler(d)
		controller.SetCompositing(true)
	}
	go d.run()
	return d
}

func (d *Driver) run() {
	for {
		select {
		case fn := <-d.tasks:
			fn()
		case <-d.stop:
			return
		}
	}
}

func (d *Driver) post(fn func()) {
	select {
	case d.tasks <- fn:
	case <-d.stop:
	}
}

// Stop ends the composite loop. Idempotent; any composite scheduled
// after Stop is a no-op.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() {
		if d.controller != nil {
			d.controller.SetCompositing(false)
		}
		close(d.stop)
	})
}

// SetWidgetSize sets the window size used to clamp fixed-layer
// translations.
func (d *Driver) SetWidgetSize(width, height int) {
	d.mu.Lock()
	d.widgetSize = geom.Vec2(float32(width), float32(height))
	d.mu.Unlock()
}

// ScheduleComposite requests a composite frame. It is idempotent while
// one is already queued, and enforces the frame-interval floor: a
// request arriving sooner than 15 ms after the previous composite is
// delayed by the remainder.
func (d *Driver) ScheduleComposite() {
	d.mu.Lock()
	if d.compositePending {
		d.mu.Unlock()
		return
	}
	d.compositePending = true

	var delay time.Duration
	if !d.lastCompose.IsZero() {
		if delta := time.Since(d.lastCompose); delta < compositeInterval {
			delay = compositeInterval - delta
		}
	}
	d.mu.Unlock()

	if delay > 0 {
		time.AfterFunc(delay, func() { d.post(d.composite) })
	} else {
		d.post(d.composite)
	}
}

// SchedulePause pauses compositing, blocking until the compositor
// goroutine acknowledges. Used when the host window loses its surface.
// Must not be called from the compositor goroutine.
func (d *Driver) SchedulePause() {
	d.pauseMu.Lock()
	defer d.pauseMu.Unlock()

	d.post(d.pause)
	for !d.paused {
		d.ack.Wait()
	}
}

// ScheduleResume resumes compositing at the given widget size, blocking
// until the compositor goroutine acknowledges and has composited a
// frame. Must not be called from the compositor goroutine.
func (d *Driver) ScheduleResume(width, height int) {
	d.pauseMu.Lock()
	defer d.pauseMu.Unlock()

	d.post(func() { d.resume(width, height) })
	for d.paused {
		d.ack.Wait()
	}
}

func (d *Driver) pause() {
	d.pauseMu.Lock()
	d.paused = true
	d.ack.Broadcast()
	d.pauseMu.Unlock()
}

func (d *Driver) resume(width, height int) {
	d.SetWidgetSize(width, height)
	d.pauseMu.Lock()
	d.paused = false
	d.pauseMu.Unlock()

	// Composite before acknowledging, so the caller returns to a
	// freshly rendered surface.
	d.composite()

	d.pauseMu.Lock()
	d.ack.Broadcast()
	d.pauseMu.Unlock()
}

// ShadowLayersUpdated notifies the driver that the document side
// committed a new shadow tree. The layers' properties are mirrored to
// their shadows and a composite is scheduled.
func (d *Driver) ShadowLayersUpdated(firstPaint bool) {
	d.post(func() {
		d.isFirstPaint = d.isFirstPaint || firstPaint
		d.layersUpdated = true
		if root := d.manager.Root(); root != nil {
			mirrorShadowProperties(root)
		}
		d.ScheduleComposite()
	})
}

// composite runs one frame. Runs on the compositor goroutine only.
func (d *Driver) composite() {
	d.mu.Lock()
	d.compositePending = false
	d.lastCompose = time.Now()
	widgetSize := d.widgetSize
	d.mu.Unlock()

	d.pauseMu.Lock()
	paused := d.paused
	d.pauseMu.Unlock()

	if paused || d.manager == nil || d.manager.Root() == nil {
		return
	}

	release := resolveRefLayers(d.manager.Root())
	defer release()

	d.transformShadowTree(widgetSize)
	d.manager.EndEmptyTransaction()
}

func (d *Driver) transformShadowTree(widgetSize geom.Vector2) {
	layer := d.primaryScrollableLayer()
	metrics := layer.Metrics
	rootTransform := d.manager.Root().Transform

	if d.isFirstPaint {
		d.contentRect = metrics.ContentRect
		if d.controller != nil {
			d.controller.AdoptFirstPaint(metrics)
		}
		d.isFirstPaint = false
	} else if metrics.ContentRect != d.contentRect {
		d.contentRect = metrics.ContentRect
		if d.controller != nil {
			d.controller.AdoptPageRect(metrics.CSSContentRect)
		}
	}

	if d.controller != nil {
		// Advance any composite-driven animation by one frame; a pan
		// or zoom from it is signaled during synchronization below.
		d.controller.DoFling()
		d.controller.DoZoomFrame()
		if d.controller.LayersUpdated() {
			d.layersUpdated = true
			d.controller.ResetLayersUpdated()
		}
	}

	// Synchronize the viewport after the notifications above, sending
	// the absolute displayport and pulling back the offset and zoom to
	// composite with.
	absDisplayPort := metrics.DisplayPort.Add(metrics.ViewportScrollOffset)
	if d.controller != nil {
		d.scrollOffset, d.xScale = d.controller.SyncViewportInfo(absDisplayPort)
		d.yScale = d.xScale
		if d.layersUpdated {
			d.controller.PublishViewport()
		}
	}
	d.layersUpdated = false

	var treeTransform geom.Matrix2
	var fixedTranslation geom.Vector2
	if d.controller != nil {
		vt, fixed := d.controller.ContentTransformForFrame(metrics, rootTransform, widgetSize)
		treeTransform = vt.Matrix2()
		fixedTranslation = fixed
	} else {
		treeTransform, fixedTranslation = d.fallbackTransform(metrics, rootTransform, widgetSize)
	}

	if layer.Shadow != nil {
		layer.Shadow.SetShadowTransform(treeTransform.Mul(layer.Transform))
	}

	translateFixedLayers(layer, fixedTranslation)

	if SampleAnimations(layer, d.lastCompose) {
		d.ScheduleComposite()
	}
}

// fallbackTransform derives the composite transform from the driver's
// own viewport copy when no pan/zoom controller is attached. A
// non-scrollable primary layer yields identity transforms.
func (d *Driver) fallbackTransform(metrics apz.FrameMetrics, rootTransform geom.Matrix2, widgetSize geom.Vector2) (geom.Matrix2, geom.Vector2) {
	rootScaleX := rootTransform.XScale()
	rootScaleY := rootTransform.YScale()
	tempScaleDiffX := rootScaleX * d.xScale
	tempScaleDiffY := rootScaleY * d.yScale

	metricsOffset := geom.Vector2{}
	if metrics.IsScrollable() {
		metricsOffset = geom.FromPoint(metrics.ViewportScrollOffset)
	}

	off := geom.FromPoint(d.scrollOffset)
	compensation := geom.Vec2(
		(off.X/tempScaleDiffX-metricsOffset.X)*d.xScale,
		(off.Y/tempScaleDiffY-metricsOffset.Y)*d.yScale,
	)
	tree := apz.ViewTransform{
		Translation: compensation.Negate(),
		ScaleX:      d.xScale,
		ScaleY:      d.yScale,
	}

	cr := geom.B2FromRect(d.contentRect)
	offset := geom.Vec2(off.X/tempScaleDiffX, off.Y/tempScaleDiffY).
		Clamp(cr.Min, cr.Max.Sub(widgetSize))
	return tree.Matrix2(), offset.Sub(metricsOffset)
}

// translateFixedLayers applies the reverse-view translation to every
// fixed-position layer not nested under another fixed-position
// ancestor, so they stay anchored to the viewport while the page moves.
func translateFixedLayers(l *Layer, translation geom.Vector2) {
	parentFixed := l.parent != nil && l.parent.FixedPosition
	if l.FixedPosition && !parentFixed && l.Shadow != nil {
		transform := l.Transform
		transform.X0 += translation.X
		transform.Y0 += translation.Y
		l.Shadow.SetShadowTransform(transform)

		if l.ClipRect != nil {
			moved := l.ClipRect.Add(translation.ToPoint())
			l.Shadow.SetShadowClip(&moved)
		}
	}

	for _, child := range l.Children() {
		translateFixedLayers(child, translation)
	}
}

// primaryScrollableLayer finds the first scrollable layer breadth-first,
// falling back to the root.
func (d *Driver) primaryScrollableLayer() *Layer {
	root := d.manager.Root()
	queue := []*Layer{root}
	for len(queue) > 0 {
		l := queue[0]
		queue = queue[1:]
		if l.Metrics.IsScrollable() {
			return l
		}
		queue = append(queue, l.Children()...)
	}
	return root
}
