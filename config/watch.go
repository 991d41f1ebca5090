// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"github.com/fsnotify/fsnotify"

	"github.com/glidegfx/glide/base/errors"
	"github.com/glidegfx/glide/logx"
)

// Watch watches the given settings file and calls fn with the reloaded
// settings every time it is written. It returns a stop function that
// ends the watch. A write that fails to parse is logged and skipped;
// the previous settings stay in effect.
func Watch(path string, fn func(*Settings)) (func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				s, err := Open(path)
				if err != nil {
					logx.Warn("config: reload failed", "path", path, "err", err)
					continue
				}
				fn(s)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				errors.Log(err)
			}
		}
	}()
	return func() { w.Close() }, nil
}
