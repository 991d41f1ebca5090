// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the tunable settings of the pan/zoom engine.
// Settings load from TOML or YAML files, selected by extension, and can
// be watched for changes to hot-reload tuning at runtime.
package config

import "time"

// Settings are the tunable parameters of the engine. The zero value is
// not usable; start from [Defaults].
type Settings struct {

	// DPI is the dots-per-inch of the display. The pan threshold is
	// derived from it as DPI/16.
	DPI int `toml:"dpi" yaml:"dpi"`

	Gesture     Gesture     `toml:"gesture" yaml:"gesture"`
	Pan         Pan         `toml:"pan" yaml:"pan"`
	Zoom        Zoom        `toml:"zoom" yaml:"zoom"`
	Fling       Fling       `toml:"fling" yaml:"fling"`
	DisplayPort DisplayPort `toml:"displayport" yaml:"displayport"`
	Bridge      Bridge      `toml:"bridge" yaml:"bridge"`
}

// Gesture are the gesture recognizer settings.
type Gesture struct {

	// MaxTapTime is the longest press that still counts as a tap.
	MaxTapTime time.Duration `toml:"max-tap-time" yaml:"max-tap-time"`

	// SplitTapConfirm delays the tap-confirmed event by
	// TapConfirmDelay so a second tap can turn the pair into a
	// double-tap. When off, tap-up and tap-confirmed are emitted
	// back-to-back.
	SplitTapConfirm bool `toml:"split-tap-confirm" yaml:"split-tap-confirm"`

	// TapConfirmDelay is the double-tap exclusion window used when
	// SplitTapConfirm is on.
	TapConfirmDelay time.Duration `toml:"tap-confirm-delay" yaml:"tap-confirm-delay"`
}

// Pan are the panning settings.
type Pan struct {

	// RepaintInterval throttles how often a new displayport is
	// published to the document side while panning.
	RepaintInterval time.Duration `toml:"repaint-interval" yaml:"repaint-interval"`
}

// Zoom are the zoom clamp settings.
type Zoom struct {

	// Min is the lowest resolution a pinch can reach.
	Min float32 `toml:"min" yaml:"min"`

	// Max is the highest resolution a pinch can reach.
	Max float32 `toml:"max" yaml:"max"`
}

// Fling are the fling physics settings.
type Fling struct {

	// FrictionFast is the per-frame friction above VelocityThreshold.
	FrictionFast float32 `toml:"friction-fast" yaml:"friction-fast"`

	// FrictionSlow is the per-frame friction below VelocityThreshold.
	FrictionSlow float32 `toml:"friction-slow" yaml:"friction-slow"`

	// VelocityThreshold divides the fast and slow friction regimes.
	VelocityThreshold float32 `toml:"velocity-threshold" yaml:"velocity-threshold"`

	// StoppedThreshold is the velocity below which a fling stops
	// outright instead of asymptotically approaching zero.
	StoppedThreshold float32 `toml:"stopped-threshold" yaml:"stopped-threshold"`
}

// DisplayPort are the displayport sizing settings.
type DisplayPort struct {

	// SizeMultiplier is the ratio of the displayport to the viewport
	// on each dimension.
	SizeMultiplier float32 `toml:"size-multiplier" yaml:"size-multiplier"`
}

// Bridge are the content bridge settings.
type Bridge struct {

	// WebSocketURL is the address of a WebSocket peer for bridge
	// messages. It is only loaded and saved here; the engine does not
	// dial it by itself (see content.ConnectForwarder).
	WebSocketURL string `toml:"websocket-url" yaml:"websocket-url"`
}

// Defaults returns the default settings.
func Defaults() *Settings {
	return &Settings{
		DPI: 72,
		Gesture: Gesture{
			MaxTapTime:      500 * time.Millisecond,
			TapConfirmDelay: 300 * time.Millisecond,
		},
		Pan: Pan{
			RepaintInterval: 250 * time.Millisecond,
		},
		Zoom: Zoom{
			Min: 0.125,
			Max: 8,
		},
		Fling: Fling{
			FrictionFast:      0.970,
			FrictionSlow:      0.850,
			VelocityThreshold: 10,
			StoppedThreshold:  0.1,
		},
		DisplayPort: DisplayPort{
			SizeMultiplier: 2,
		},
	}
}
