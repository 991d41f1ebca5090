// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compositor

import (
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glidegfx/glide/apz"
	"github.com/glidegfx/glide/content"
	"github.com/glidegfx/glide/events"
	"github.com/glidegfx/glide/geom"
)

func touchEvent(time int64, x, y int) *events.Touch {
	return events.NewTouch(events.TouchStart, time,
		events.TouchPoint{ID: 0, Point: image.Pt(x, y)})
}

func moveEvent(time int64, x, y int) *events.Touch {
	return events.NewTouch(events.TouchMove, time,
		events.TouchPoint{ID: 0, Point: image.Pt(x, y)})
}

func endEvent(time int64, x, y int) *events.Touch {
	return events.NewTouch(events.TouchEnd, time,
		events.TouchPoint{ID: 0, Point: image.Pt(x, y)})
}

// fakeManager is a layer manager whose renders are observable.
type fakeManager struct {
	mu     sync.Mutex
	root   *Layer
	ends   atomic.Int32
	rended chan time.Time
}

func newFakeManager(root *Layer) *fakeManager {
	return &fakeManager{root: root, rended: make(chan time.Time, 64)}
}

func (m *fakeManager) Root() *Layer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root
}

func (m *fakeManager) EndEmptyTransaction() {
	m.ends.Add(1)
	select {
	case m.rended <- time.Now():
	default:
	}
}

// nullBridge drops all notifications.
type nullBridge struct{}

func (nullBridge) SendViewportChange(x, y int, zoom float32, dp content.DisplayPort) {}
func (nullBridge) SendGestureEvent(topic string, pt image.Point)                     {}

func scrollableLayer() *Layer {
	l := NewLayer()
	l.Metrics = apz.NewFrameMetrics()
	l.Metrics.Viewport = image.Rect(0, 0, 320, 480)
	l.Metrics.CSSContentRect = geom.B2(0, 0, 1280, 1920)
	l.Metrics.Scrollable = true
	l.Metrics.UpdateContentRect()
	return l
}

func waitRender(t *testing.T, m *fakeManager) time.Time {
	t.Helper()
	select {
	case ts := <-m.rended:
		return ts
	case <-time.After(time.Second):
		t.Fatal("no composite happened")
		return time.Time{}
	}
}

func TestDriverCompositesOnSchedule(t *testing.T) {
	root := scrollableLayer()
	root.Shadow = &recordingShadow{}
	mgr := newFakeManager(root)
	d := New(mgr, nil)
	defer d.Stop()

	d.ScheduleComposite()
	waitRender(t, mgr)
	assert.GreaterOrEqual(t, mgr.ends.Load(), int32(1))
}

func TestDriverScheduleIsIdempotent(t *testing.T) {
	root := scrollableLayer()
	root.Shadow = &recordingShadow{}
	mgr := newFakeManager(root)
	d := New(mgr, nil)
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.ScheduleComposite()
	}
	waitRender(t, mgr)
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, mgr.ends.Load(), int32(3),
		"requests while a composite is queued must coalesce")
}

func TestDriverEnforcesFrameFloor(t *testing.T) {
	root := scrollableLayer()
	root.Shadow = &recordingShadow{}
	mgr := newFakeManager(root)
	d := New(mgr, nil)
	defer d.Stop()

	d.ScheduleComposite()
	first := waitRender(t, mgr)
	d.ScheduleComposite()
	second := waitRender(t, mgr)

	assert.GreaterOrEqual(t, second.Sub(first), 10*time.Millisecond,
		"frames closer than the floor must be delayed")
}

func TestDriverPauseBlocksUntilAcknowledged(t *testing.T) {
	root := scrollableLayer()
	root.Shadow = &recordingShadow{}
	mgr := newFakeManager(root)
	d := New(mgr, nil)
	defer d.Stop()

	d.SchedulePause()
	before := mgr.ends.Load()

	d.ScheduleComposite()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, mgr.ends.Load(), "paused compositor must not render")

	d.ScheduleResume(320, 480)
	assert.Greater(t, mgr.ends.Load(), before, "resume composites immediately")
}

func TestDriverTeardownMakesCompositeNoOp(t *testing.T) {
	mgr := newFakeManager(nil)
	d := New(mgr, nil)
	defer d.Stop()

	d.ScheduleComposite()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), mgr.ends.Load(), "no root layer, no render")
}

func TestDriverAppliesAsyncTransform(t *testing.T) {
	root := scrollableLayer()
	shadow := &recordingShadow{}
	root.Shadow = shadow
	mgr := newFakeManager(root)

	c := apz.New(nullBridge{}, nil)
	m := c.Metrics()
	m.Viewport = image.Rect(0, 0, 320, 480)
	m.CSSContentRect = geom.B2(0, 0, 1280, 1920)
	m.ViewportScrollOffset = image.Pt(100, 200)
	m.Scrollable = true
	m.UpdateContentRect()
	c.SetMetrics(m)

	d := New(mgr, c)
	defer d.Stop()
	d.SetWidgetSize(320, 480)

	d.ScheduleComposite()
	waitRender(t, mgr)

	got := shadow.Transform()
	assert.InDelta(t, -100, got.X0, 1e-3)
	assert.InDelta(t, -200, got.Y0, 1e-3)
	assert.InDelta(t, 1, got.XX, 1e-3)
}

func TestDriverTranslatesFixedLayers(t *testing.T) {
	root := scrollableLayer()
	root.Shadow = &recordingShadow{}

	fixed := NewLayer()
	fixedShadow := &recordingShadow{}
	fixed.Shadow = fixedShadow
	fixed.FixedPosition = true
	clip := image.Rect(0, 0, 50, 50)
	fixed.ClipRect = &clip
	root.AddChild(fixed)

	nested := NewLayer()
	nestedShadow := &recordingShadow{}
	nested.Shadow = nestedShadow
	nested.FixedPosition = true
	fixed.AddChild(nested)

	c := apz.New(nullBridge{}, nil)
	m := c.Metrics()
	m.Viewport = image.Rect(0, 0, 320, 480)
	m.CSSContentRect = geom.B2(0, 0, 1280, 1920)
	m.ViewportScrollOffset = image.Pt(100, 0)
	m.Scrollable = true
	m.UpdateContentRect()
	c.SetMetrics(m)

	mgr := newFakeManager(root)
	d := New(mgr, c)
	defer d.Stop()
	d.SetWidgetSize(320, 480)

	d.ScheduleComposite()
	waitRender(t, mgr)

	got := fixedShadow.Transform()
	assert.InDelta(t, 100, got.X0, 1e-3)

	// A fixed layer nested under a fixed ancestor is left alone.
	assert.Equal(t, geom.Matrix2{}, nestedShadow.Transform())

	// The clip rect moves with the layer.
	fixedShadow.mu.Lock()
	defer fixedShadow.mu.Unlock()
	require.NotNil(t, fixedShadow.clip)
	assert.Equal(t, image.Rect(100, 0, 150, 50), *fixedShadow.clip)
}

func TestDriverFirstPaintAdoptsMetrics(t *testing.T) {
	root := scrollableLayer()
	root.Shadow = &recordingShadow{}
	root.Metrics.ViewportScrollOffset = image.Pt(40, 60)
	root.Metrics.Resolution = geom.Vec2(2, 2)
	root.Metrics.UpdateContentRect()

	c := apz.New(nullBridge{}, nil)
	mgr := newFakeManager(root)
	d := New(mgr, c)
	defer d.Stop()

	d.ShadowLayersUpdated(true)
	waitRender(t, mgr)

	require.Eventually(t, func() bool {
		m := c.Metrics()
		return m.ViewportScrollOffset == image.Pt(40, 60) && m.Scale() == 2
	}, time.Second, time.Millisecond)
}

func TestDriverPageRectChangeAdopted(t *testing.T) {
	root := scrollableLayer()
	root.Shadow = &recordingShadow{}

	c := apz.New(nullBridge{}, nil)
	mgr := newFakeManager(root)
	d := New(mgr, c)
	defer d.Stop()

	d.ShadowLayersUpdated(true)
	waitRender(t, mgr)

	// The document side reflows to a taller page.
	mgr.mu.Lock()
	root.Metrics.CSSContentRect = geom.B2(0, 0, 1280, 4000)
	root.Metrics.UpdateContentRect()
	mgr.mu.Unlock()

	d.ScheduleComposite()
	waitRender(t, mgr)

	require.Eventually(t, func() bool {
		return c.Metrics().ContentRect.Dy() == 4000
	}, time.Second, time.Millisecond)
}

func TestDriverAdvancesFling(t *testing.T) {
	root := scrollableLayer()
	root.Shadow = &recordingShadow{}

	bridge := content.NewDispatcher()
	defer bridge.Stop()
	c := apz.New(bridge, nil)
	m := c.Metrics()
	m.Viewport = image.Rect(0, 0, 320, 480)
	m.CSSContentRect = geom.B2(0, 0, 1280, 1920)
	m.Scrollable = true
	m.UpdateContentRect()
	c.SetMetrics(m)

	mgr := newFakeManager(root)
	d := New(mgr, c)
	defer d.Stop()

	// A pan that ends flinging: the composite loop keeps scheduling
	// itself until the fling decays to a stop.
	c.HandleEvent(touchEvent(0, 0, 400))
	c.HandleEvent(moveEvent(16, 0, 395))
	c.HandleEvent(moveEvent(48, 0, 394))
	c.HandleEvent(moveEvent(64, 0, 380))
	c.HandleEvent(endEvent(80, 0, 380))

	require.Eventually(t, func() bool {
		return c.State() == apz.Nothing
	}, 10*time.Second, 5*time.Millisecond)
	assert.Greater(t, c.Metrics().ViewportScrollOffset.Y, 0)
}

func TestResolveRefLayersScoped(t *testing.T) {
	root := scrollableLayer()
	ref := NewLayer()
	ref.RefID = 7
	root.AddChild(ref)

	sub := NewLayer()
	RegisterIndirectTree(7, sub)
	defer UnregisterIndirectTree(7)

	release := resolveRefLayers(root)
	assert.Contains(t, ref.Children(), sub)
	release()
	assert.NotContains(t, ref.Children(), sub)
}

func TestRegisterIndirectTreeCollisionPanics(t *testing.T) {
	RegisterIndirectTree(9, NewLayer())
	defer UnregisterIndirectTree(9)
	assert.Panics(t, func() { RegisterIndirectTree(9, NewLayer()) })
}

func TestDriverSchedulesWhileAnimating(t *testing.T) {
	start := time.Now()
	root := scrollableLayer()
	shadow := &recordingShadow{}
	root.Shadow = shadow
	root.Animations = []*Animation{opacityAnimation(start, 200*time.Millisecond, 1)}

	mgr := newFakeManager(root)
	d := New(mgr, nil)
	defer d.Stop()

	d.ScheduleComposite()
	waitRender(t, mgr)

	// The animation keeps the composite loop alive until it expires
	// and is removed.
	require.Eventually(t, func() bool {
		mgr.mu.Lock()
		defer mgr.mu.Unlock()
		return len(root.Animations) == 0
	}, 5*time.Second, 5*time.Millisecond)
	assert.Greater(t, mgr.ends.Load(), int32(1))
}
