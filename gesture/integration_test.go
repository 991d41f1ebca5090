// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gesture_test

import (
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glidegfx/glide/apz"
	"github.com/glidegfx/glide/content"
	"github.com/glidegfx/glide/events"
	"github.com/glidegfx/glide/gesture"
	"github.com/glidegfx/glide/geom"
)

// TestSingleTapEndToEnd drives the whole input path: raw touches into
// the recognizer, synthesized taps into the controller, and the
// resulting gesture notification out through the dispatcher.
func TestSingleTapEndToEnd(t *testing.T) {
	bridge := content.NewDispatcher()
	defer bridge.Stop()

	var mu sync.Mutex
	var msgs []content.Message
	bridge.Observe(func(msg content.Message) {
		mu.Lock()
		msgs = append(msgs, msg)
		mu.Unlock()
	})

	c := apz.New(bridge, nil)
	c.SetCompositing(true)
	m := c.Metrics()
	m.Viewport = image.Rect(0, 0, 320, 480)
	m.CSSContentRect = geom.B2(0, 0, 1280, 1920)
	m.Scrollable = true
	m.UpdateContentRect()
	c.SetMetrics(m)

	r := gesture.New(c, nil)

	r.HandleEvent(events.NewTouch(events.TouchStart, 0,
		events.TouchPoint{ID: 0, Point: image.Pt(100, 200)}))
	require.Equal(t, apz.Touching, c.State())

	r.HandleEvent(events.NewTouch(events.TouchEnd, 100,
		events.TouchPoint{ID: 0, Point: image.Pt(100, 200)}))
	assert.Equal(t, apz.Nothing, c.State())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, msg := range msgs {
			if msg.Topic == content.TopicGestureSingleTap {
				data := msg.Data.(content.GestureData)
				return data.X == 100 && data.Y == 200
			}
		}
		return false
	}, time.Second, time.Millisecond, "observer must receive Gesture:SingleTap{100,200}")
}

// TestPinchEndToEnd drives a pinch-open through the recognizer and
// checks the controller's resulting zoom.
func TestPinchEndToEnd(t *testing.T) {
	bridge := content.NewDispatcher()
	defer bridge.Stop()

	c := apz.New(bridge, nil)
	c.SetCompositing(true)
	m := c.Metrics()
	m.Viewport = image.Rect(0, 0, 320, 480)
	m.CSSContentRect = geom.B2(0, 0, 1280, 1920)
	m.Scrollable = true
	m.UpdateContentRect()
	c.SetMetrics(m)

	r := gesture.New(c, nil)

	r.HandleEvent(events.NewTouch(events.TouchStart, 0,
		events.TouchPoint{ID: 0, Point: image.Pt(0, 0)}))
	r.HandleEvent(events.NewTouch(events.TouchStartPointer, 5,
		events.TouchPoint{ID: 1, Point: image.Pt(100, 0)}))
	require.Equal(t, apz.Pinching, c.State())

	r.HandleEvent(events.NewTouch(events.TouchMove, 21,
		events.TouchPoint{ID: 1, Point: image.Pt(200, 0)}))

	got := c.Metrics()
	assert.Equal(t, float32(2), got.Scale())
	assert.Equal(t, 2560, got.ContentRect.Dx())

	r.HandleEvent(events.NewTouch(events.TouchEnd, 40,
		events.TouchPoint{ID: 1, Point: image.Pt(200, 0)}))
	assert.Equal(t, apz.Panning, c.State())
}
