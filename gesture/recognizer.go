// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gesture interprets the raw multi-touch stream: it keeps the
// set of pressed touches, synthesizes pinch and tap events, and passes
// everything it does not consume through to the pan/zoom controller.
//
// Seeing two fingers on the screen means the user wants to pinch, so
// the touches are not forwarded (the controller would read them as a
// pan); a pinch event is synthesized and sent instead.
package gesture

import (
	"image"
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/glidegfx/glide/config"
	"github.com/glidegfx/glide/events"
	"github.com/glidegfx/glide/logx"
)

// State is the recognizer's gesture state.
type State int32

const (
	// NoGesture means no synthesized gesture is in progress.
	NoGesture State = iota

	// InPinchGesture means two or more touches are down and pinch
	// events are being synthesized.
	InPinchGesture
)

func (s State) String() string {
	if s == InPinchGesture {
		return "InPinchGesture"
	}
	return "NoGesture"
}

// pendingTap is a tap waiting out the double-tap exclusion window.
type pendingTap struct {
	point image.Point
	time  int64
	timer *time.Timer
}

// Recognizer filters and interprets the multi-touch stream. Create one
// with [New]. All methods must be called from the UI goroutine; the
// internal lock only covers the split-tap timer callback.
type Recognizer struct {
	mu      sync.Mutex
	handler events.Handler
	state   State

	// touches are the currently pressed touches in press order, keyed
	// by their stable identifiers.
	touches []events.TouchPoint

	// touchStartTime is when the most recent touch sequence started,
	// and tapCandidate whether the sequence can still be a tap. Any
	// move, or a second touch, revokes candidacy.
	touchStartTime int64
	tapCandidate   bool

	previousSpan float32

	maxTapTime      int64 // milliseconds
	splitTapConfirm bool
	tapConfirmDelay time.Duration
	pending         *pendingTap
}

// New returns a new [Recognizer] forwarding to the given handler,
// normally the pan/zoom controller. A nil settings uses
// [config.Defaults].
func New(handler events.Handler, settings *config.Settings) *Recognizer {
	if settings == nil {
		settings = config.Defaults()
	}
	return &Recognizer{
		handler:         handler,
		maxTapTime:      settings.Gesture.MaxTapTime.Milliseconds(),
		splitTapConfirm: settings.Gesture.SplitTapConfirm,
		tapConfirmDelay: settings.Gesture.TapConfirmDelay,
	}
}

// State returns the recognizer's current gesture state.
func (r *Recognizer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// HandleEvent is the recognizer's input entry point. Touch events are
// interpreted here; everything else goes straight to the handler.
func (r *Recognizer) HandleEvent(ev events.Event) events.Status {
	touch, ok := ev.(*events.Touch)
	if !ok {
		return r.handler.HandleEvent(ev)
	}
	return r.handleTouch(touch)
}

func (r *Recognizer) handleTouch(ev *events.Touch) events.Status {
	r.mu.Lock()

	switch ev.Type() {
	case events.TouchStart:
		if r.pending != nil {
			// Second tap within the exclusion window: a double tap.
			r.pending.timer.Stop()
			r.pending = nil
			r.emitLocked(events.NewTap(events.TapDouble, ev.Time, ev.FirstPoint()))
		}
		r.touches = r.touches[:0]
		r.touchStartTime = ev.Time
		r.tapCandidate = true
		if r.state == InPinchGesture {
			r.emitLocked(events.NewPinch(events.PinchEnd, ev.Time,
				ev.FirstPoint(), r.previousSpan, r.previousSpan))
			r.state = NoGesture
		}
		r.addTouches(ev.Points)
	case events.TouchStartPointer:
		r.addTouches(ev.Points)
	case events.TouchMove:
		r.tapCandidate = false
		r.moveTouches(ev.Points)
	case events.TouchEnd:
		r.removeTouches(ev.Points)
		if r.tapCandidate && ev.Time-r.touchStartTime <= r.maxTapTime {
			r.emitTapLocked(ev)
		}
		r.tapCandidate = false
	case events.TouchCancel:
		r.touches = r.touches[:0]
		r.tapCandidate = false
		if r.pending != nil {
			r.pending.timer.Stop()
			r.pending = nil
		}
		if r.state == InPinchGesture {
			r.emitLocked(events.NewPinch(events.PinchEnd, ev.Time,
				ev.FirstPoint(), r.previousSpan, r.previousSpan))
			r.state = NoGesture
		}
	}

	if len(r.touches) > 1 {
		r.tapCandidate = false
	}

	if r.handlePinchLocked(ev) == events.ConsumeNoDefault {
		r.mu.Unlock()
		return events.ConsumeNoDefault
	}
	r.mu.Unlock()

	return r.handler.HandleEvent(ev)
}

// handlePinchLocked synthesizes pinch events while two or more touches
// are down, consuming the underlying touch events.
func (r *Recognizer) handlePinchLocked(ev *events.Touch) events.Status {
	if len(r.touches) > 1 {
		first := r.touches[0].Point
		second := r.touches[len(r.touches)-1].Point
		focus := first.Add(second).Div(2)
		span := math32.Hypot(float32(first.X-second.X), float32(first.Y-second.Y))

		if r.state == NoGesture {
			r.emitLocked(events.NewPinch(events.PinchStart, ev.Time, focus, span, span))
			r.state = InPinchGesture
		} else {
			r.emitLocked(events.NewPinch(events.PinchScale, ev.Time, focus, span, r.previousSpan))
		}
		r.previousSpan = span
		return events.ConsumeNoDefault
	}

	if r.state == InPinchGesture {
		focus := ev.FirstPoint()
		if len(r.touches) == 1 {
			focus = r.touches[0].Point
		}
		r.emitLocked(events.NewPinch(events.PinchEnd, ev.Time, focus,
			r.previousSpan, r.previousSpan))
		r.state = NoGesture
		return events.ConsumeNoDefault
	}

	return events.Ignore
}

// emitTapLocked emits the tap events for a touch lifted within the tap
// window: tap-up, then tap-confirmed either immediately or after the
// double-tap exclusion delay when split confirmation is on.
func (r *Recognizer) emitTapLocked(ev *events.Touch) {
	pt := ev.FirstPoint()
	r.emitLocked(events.NewTap(events.TapUp, ev.Time, pt))

	if !r.splitTapConfirm {
		r.emitLocked(events.NewTap(events.TapConfirmed, ev.Time, pt))
		return
	}

	p := &pendingTap{point: pt, time: ev.Time}
	p.timer = time.AfterFunc(r.tapConfirmDelay, func() {
		r.mu.Lock()
		if r.pending != p {
			r.mu.Unlock()
			return
		}
		r.pending = nil
		r.emitLocked(events.NewTap(events.TapConfirmed,
			p.time+r.tapConfirmDelay.Milliseconds(), p.point))
		r.mu.Unlock()
	})
	if r.pending != nil {
		r.pending.timer.Stop()
	}
	r.pending = p
}

// emitLocked sends a synthesized event to the handler. The handler
// must not call back into the recognizer.
func (r *Recognizer) emitLocked(ev events.Event) {
	r.handler.HandleEvent(ev)
}

func (r *Recognizer) addTouches(points []events.TouchPoint) {
	for _, p := range points {
		if r.findTouch(p.ID) >= 0 {
			logx.Warn("gesture: touch already tracked", "id", p.ID)
			continue
		}
		r.touches = append(r.touches, p)
	}
}

func (r *Recognizer) moveTouches(points []events.TouchPoint) {
	for _, p := range points {
		if i := r.findTouch(p.ID); i >= 0 {
			r.touches[i] = p
		}
	}
}

func (r *Recognizer) removeTouches(points []events.TouchPoint) {
	for _, p := range points {
		i := r.findTouch(p.ID)
		if i < 0 {
			logx.Warn("gesture: end for untracked touch", "id", p.ID)
			continue
		}
		r.touches = append(r.touches[:i], r.touches[i+1:]...)
	}
}

func (r *Recognizer) findTouch(id int64) int {
	for i, t := range r.touches {
		if t.ID == id {
			return i
		}
	}
	return -1
}
