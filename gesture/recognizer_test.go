// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gesture

import (
	"fmt"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glidegfx/glide/config"
	"github.com/glidegfx/glide/events"
)

// recordingHandler records every event it receives.
type recordingHandler struct {
	mu  sync.Mutex
	evs []events.Event
}

func (h *recordingHandler) HandleEvent(ev events.Event) events.Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.evs = append(h.evs, ev)
	return events.ConsumeNoDefault
}

func (h *recordingHandler) types() []events.Types {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts := make([]events.Types, len(h.evs))
	for i, ev := range h.evs {
		ts[i] = ev.Type()
	}
	return ts
}

func (h *recordingHandler) count(typ events.Types) int {
	n := 0
	for _, t := range h.types() {
		if t == typ {
			n++
		}
	}
	return n
}

func (h *recordingHandler) find(typ events.Types) events.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ev := range h.evs {
		if ev.Type() == typ {
			return ev
		}
	}
	return nil
}

func touch(typ events.Types, time int64, points ...events.TouchPoint) *events.Touch {
	return events.NewTouch(typ, time, points...)
}

func pt(id int64, x, y int) events.TouchPoint {
	return events.TouchPoint{ID: id, Point: image.Pt(x, y)}
}

func TestRecognizerSingleTap(t *testing.T) {
	h := &recordingHandler{}
	r := New(h, nil)

	r.HandleEvent(touch(events.TouchStart, 0, pt(0, 100, 200)))
	r.HandleEvent(touch(events.TouchEnd, 100, pt(0, 100, 200)))

	assert.Equal(t, []events.Types{events.TouchStart, events.TapUp,
		events.TapConfirmed, events.TouchEnd}, h.types())

	tap := h.find(events.TapUp).(*events.Tap)
	assert.Equal(t, image.Pt(100, 200), tap.Point)
}

func TestRecognizerTapWindowExpired(t *testing.T) {
	h := &recordingHandler{}
	r := New(h, nil)

	r.HandleEvent(touch(events.TouchStart, 0, pt(0, 100, 200)))
	r.HandleEvent(touch(events.TouchEnd, 600, pt(0, 100, 200)))

	assert.Equal(t, 0, h.count(events.TapUp))
	assert.Equal(t, 0, h.count(events.TapConfirmed))
}

func TestRecognizerMoveCancelsTap(t *testing.T) {
	h := &recordingHandler{}
	r := New(h, nil)

	r.HandleEvent(touch(events.TouchStart, 0, pt(0, 100, 200)))
	r.HandleEvent(touch(events.TouchMove, 16, pt(0, 105, 200)))
	r.HandleEvent(touch(events.TouchEnd, 100, pt(0, 105, 200)))

	assert.Equal(t, 0, h.count(events.TapUp))
}

func TestRecognizerPinchLifecycle(t *testing.T) {
	h := &recordingHandler{}
	r := New(h, nil)

	r.HandleEvent(touch(events.TouchStart, 0, pt(0, 0, 0)))
	require.Equal(t, NoGesture, r.State())

	status := r.HandleEvent(touch(events.TouchStartPointer, 10, pt(1, 100, 0)))
	assert.Equal(t, events.ConsumeNoDefault, status)
	assert.Equal(t, InPinchGesture, r.State())

	start := h.find(events.PinchStart).(*events.Pinch)
	assert.Equal(t, image.Pt(50, 0), start.Focus)
	assert.Equal(t, float32(100), start.CurrentSpan)
	assert.Equal(t, float32(100), start.PreviousSpan)

	r.HandleEvent(touch(events.TouchMove, 20, pt(1, 200, 0)))
	scale := h.find(events.PinchScale).(*events.Pinch)
	assert.Equal(t, image.Pt(100, 0), scale.Focus)
	assert.Equal(t, float32(200), scale.CurrentSpan)
	assert.Equal(t, float32(100), scale.PreviousSpan)

	r.HandleEvent(touch(events.TouchEnd, 30, pt(1, 200, 0)))
	assert.Equal(t, 1, h.count(events.PinchEnd))
	assert.Equal(t, NoGesture, r.State())

	// Touch events during the pinch were consumed, not forwarded.
	assert.Equal(t, 0, h.count(events.TouchStartPointer))
	assert.Equal(t, 0, h.count(events.TouchMove))
}

func TestRecognizerPinchCancelledByTouchCancel(t *testing.T) {
	h := &recordingHandler{}
	r := New(h, nil)

	r.HandleEvent(touch(events.TouchStart, 0, pt(0, 0, 0)))
	r.HandleEvent(touch(events.TouchStartPointer, 10, pt(1, 100, 0)))
	require.Equal(t, InPinchGesture, r.State())

	r.HandleEvent(touch(events.TouchCancel, 20))
	assert.Equal(t, NoGesture, r.State())
	assert.Equal(t, 1, h.count(events.PinchEnd))
}

func TestRecognizerDuplicateStartIsNoOp(t *testing.T) {
	h := &recordingHandler{}
	r := New(h, nil)

	r.HandleEvent(touch(events.TouchStart, 0, pt(0, 0, 0)))
	// The same identifier again must not open a pinch.
	r.HandleEvent(touch(events.TouchStartPointer, 10, pt(0, 50, 0)))
	assert.Equal(t, NoGesture, r.State())
	assert.Equal(t, 0, h.count(events.PinchStart))
}

func TestRecognizerStrayEndIsNoOp(t *testing.T) {
	h := &recordingHandler{}
	r := New(h, nil)

	assert.NotPanics(t, func() {
		r.HandleEvent(touch(events.TouchEnd, 0, pt(7, 0, 0)))
	})
}

func TestRecognizerDeterministicOutput(t *testing.T) {
	sequence := func() []*events.Touch {
		return []*events.Touch{
			touch(events.TouchStart, 0, pt(0, 10, 10)),
			touch(events.TouchStartPointer, 5, pt(1, 110, 10)),
			touch(events.TouchMove, 21, pt(1, 150, 10)),
			touch(events.TouchEnd, 40, pt(1, 150, 10)),
			touch(events.TouchMove, 56, pt(0, 30, 10)),
			touch(events.TouchEnd, 70, pt(0, 30, 10)),
		}
	}

	run := func() []string {
		h := &recordingHandler{}
		r := New(h, nil)
		for _, ev := range sequence() {
			r.HandleEvent(ev)
		}
		out := make([]string, len(h.evs))
		for i, ev := range h.evs {
			out[i] = fmt.Sprint(ev)
		}
		return out
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)
}

func TestRecognizerSplitTapConfirm(t *testing.T) {
	settings := config.Defaults()
	settings.Gesture.SplitTapConfirm = true
	settings.Gesture.TapConfirmDelay = 10 * time.Millisecond

	h := &recordingHandler{}
	r := New(h, settings)

	r.HandleEvent(touch(events.TouchStart, 0, pt(0, 100, 200)))
	r.HandleEvent(touch(events.TouchEnd, 50, pt(0, 100, 200)))

	assert.Equal(t, 1, h.count(events.TapUp))
	assert.Equal(t, 0, h.count(events.TapConfirmed))

	require.Eventually(t, func() bool {
		return h.count(events.TapConfirmed) == 1
	}, time.Second, time.Millisecond)
}

func TestRecognizerDoubleTap(t *testing.T) {
	settings := config.Defaults()
	settings.Gesture.SplitTapConfirm = true
	settings.Gesture.TapConfirmDelay = 50 * time.Millisecond

	h := &recordingHandler{}
	r := New(h, settings)

	r.HandleEvent(touch(events.TouchStart, 0, pt(0, 100, 200)))
	r.HandleEvent(touch(events.TouchEnd, 50, pt(0, 100, 200)))
	// Second tap inside the exclusion window becomes a double tap.
	r.HandleEvent(touch(events.TouchStart, 80, pt(0, 102, 201)))
	r.HandleEvent(touch(events.TouchEnd, 120, pt(0, 102, 201)))

	assert.Equal(t, 1, h.count(events.TapDouble))

	// The pending confirmation was cancelled; only the second tap's
	// own confirmation may fire later.
	time.Sleep(80 * time.Millisecond)
	assert.LessOrEqual(t, h.count(events.TapConfirmed), 1)
}
