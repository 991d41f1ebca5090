// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package content bridges the pan/zoom engine to the document-side
// runtime. State changes are published as typed messages on a dedicated
// observer goroutine; callers never block. The payloads stay typed at
// the boundary and are serialized to JSON only when a downstream
// consumer needs text (see [Wire] and [Forwarder]).
package content

import (
	"image"
	"sync"
)

// Topics for the messages the engine publishes.
const (
	TopicViewportChange   = "Viewport:Change"
	TopicGestureLongPress = "Gesture:LongPress"
	TopicGestureSingleTap = "Gesture:SingleTap"
	TopicGestureDoubleTap = "Gesture:DoubleTap"
	TopicGestureCancel    = "Gesture:Cancel"
)

// DisplayPort is the displayport part of a viewport notification.
type DisplayPort struct {
	Left       int     `json:"left"`
	Top        int     `json:"top"`
	Right      int     `json:"right"`
	Bottom     int     `json:"bottom"`
	Resolution float32 `json:"resolution"`
}

// ViewportData is the payload of a [TopicViewportChange] message.
type ViewportData struct {
	X           int         `json:"x"`
	Y           int         `json:"y"`
	Zoom        float32     `json:"zoom"`
	DisplayPort DisplayPort `json:"displayPort"`
}

// GestureData is the payload of a Gesture:* message.
type GestureData struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Message is one notification to the document side.
type Message struct {
	Topic string
	Data  any
}

// Notifier is the engine-facing side of the bridge. The pan/zoom
// controller publishes through this interface; [Dispatcher] is the
// standard implementation.
type Notifier interface {
	// SendViewportChange publishes a [TopicViewportChange] message for
	// the given scroll offset, zoom, and displayport.
	SendViewportChange(x, y int, zoom float32, dp DisplayPort)

	// SendGestureEvent publishes a gesture message with the given
	// topic for the given point.
	SendGestureEvent(topic string, pt image.Point)
}

// Dispatcher queues messages and delivers them FIFO on its own
// goroutine. Sends never block the caller.
type Dispatcher struct {
	queue  queue
	notify chan struct{}
	done   chan struct{}

	mu        sync.RWMutex
	observers []func(Message)
	stopped   bool
}

// NewDispatcher returns a new running [Dispatcher]. Call [Dispatcher.Stop]
// when done with it.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	d.queue.init()
	go d.run()
	return d
}

// Observe registers a function called on the observer goroutine for
// every published message, in publication order.
func (d *Dispatcher) Observe(fn func(Message)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, fn)
}

// SendViewportChange implements [Notifier].
func (d *Dispatcher) SendViewportChange(x, y int, zoom float32, dp DisplayPort) {
	d.post(item{msg: Message{Topic: TopicViewportChange,
		Data: ViewportData{X: x, Y: y, Zoom: zoom, DisplayPort: dp}}})
}

// SendGestureEvent implements [Notifier].
func (d *Dispatcher) SendGestureEvent(topic string, pt image.Point) {
	d.post(item{msg: Message{Topic: topic, Data: GestureData{X: pt.X, Y: pt.Y}}})
}

// Call runs the given function on the observer goroutine, after all
// messages published before it. Completion and error sinks are invoked
// through here, so their single invocation lands on the observer side.
func (d *Dispatcher) Call(fn func()) {
	d.post(item{fn: fn})
}

// Stop drains nothing further and stops the observer goroutine.
// Messages posted after Stop are dropped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()
	close(d.done)
}

func (d *Dispatcher) post(it item) {
	d.mu.RLock()
	stopped := d.stopped
	d.mu.RUnlock()
	if stopped {
		return
	}
	d.queue.push(it)
	select {
	case d.notify <- struct{}{}:
	default:
	}
}

func (d *Dispatcher) run() {
	for {
		select {
		case <-d.done:
			return
		case <-d.notify:
			for {
				it, ok := d.queue.pop()
				if !ok {
					break
				}
				d.deliver(it)
			}
		}
	}
}

func (d *Dispatcher) deliver(it item) {
	if it.fn != nil {
		it.fn()
		return
	}
	d.mu.RLock()
	obs := d.observers
	d.mu.RUnlock()
	for _, fn := range obs {
		fn(it.msg)
	}
}
