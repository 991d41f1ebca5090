// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package content

import "encoding/json"

// wireMessage is the text form of a [Message] for consumers that need
// serialized notifications.
type wireMessage struct {
	Topic string `json:"topic"`
	Data  any    `json:"data"`
}

// Wire returns the JSON wire form of the given message.
func Wire(msg Message) ([]byte, error) {
	return json.Marshal(wireMessage{Topic: msg.Topic, Data: msg.Data})
}
