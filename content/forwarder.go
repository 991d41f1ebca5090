// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package content

import (
	"github.com/gorilla/websocket"

	"github.com/glidegfx/glide/base/errors"
)

// Forwarder streams bridge messages to a WebSocket peer as JSON text
// frames, for document-side runtimes living in another process.
// Register it on a [Dispatcher] with [Forwarder.Attach].
type Forwarder struct {
	conn *websocket.Conn
	done chan struct{}
}

// ConnectForwarder dials the given WebSocket URL and returns a
// [Forwarder] writing to it.
func ConnectForwarder(url string) (*Forwarder, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &Forwarder{conn: conn, done: make(chan struct{})}, nil
}

// Attach registers the forwarder on the given dispatcher, so every
// published message is also written to the peer. Write runs on the
// observer goroutine, preserving publication order on the wire.
func (f *Forwarder) Attach(d *Dispatcher) {
	d.Observe(func(msg Message) {
		select {
		case <-f.done:
			return
		default:
		}
		data, err := Wire(msg)
		if err != nil {
			errors.Log(err)
			return
		}
		if err := f.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			errors.Log(err)
			f.Close()
		}
	})
}

// Close closes the connection to the peer. It is safe to call multiple
// times.
func (f *Forwarder) Close() error {
	select {
	case <-f.done:
		return nil
	default:
		close(f.done)
	}
	return f.conn.Close()
}
