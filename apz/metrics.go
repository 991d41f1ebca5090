// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apz

import (
	"image"

	"github.com/glidegfx/glide/geom"
)

// FrameMetrics is the authoritative scroll/zoom descriptor exchanged
// between the pan/zoom controller and the document side. All rects are
// in integer device pixels except CSSContentRect, which is in CSS
// pixels and therefore zoom-invariant.
type FrameMetrics struct {

	// Viewport is the visible area. Its origin is always (0, 0); the
	// size comes from the window.
	Viewport image.Rectangle

	// ViewportScrollOffset is the origin of the viewport within the
	// page.
	ViewportScrollOffset image.Point

	// DisplayPort is the region the document side is asked to
	// rasterize, relative to ViewportScrollOffset. Its absolute
	// position is DisplayPort.Min + ViewportScrollOffset.
	DisplayPort image.Rectangle

	// ContentRect is the full page at the current zoom. It is always
	// CSSContentRect scaled by Resolution and rounded.
	ContentRect image.Rectangle

	// CSSContentRect is the full page in CSS pixels.
	CSSContentRect geom.Box2

	// Resolution is the current zoom. The X and Y components are
	// always equal (uniform scale); code reading only X is correct.
	Resolution geom.Vector2

	// Scrollable is false for leaf and fixed layers, whose metrics do
	// not participate in async scrolling.
	Scrollable bool
}

// NewFrameMetrics returns metrics at zoom 1 with empty rects.
func NewFrameMetrics() FrameMetrics {
	return FrameMetrics{Resolution: geom.Vec2(1, 1)}
}

// IsScrollable reports whether this layer's metrics participate in
// async scrolling.
func (m *FrameMetrics) IsScrollable() bool {
	return m.Scrollable
}

// Scale returns the current zoom as a scalar.
func (m FrameMetrics) Scale() float32 {
	return m.Resolution.X
}

// UpdateContentRect recomputes ContentRect from CSSContentRect and
// Resolution. It must be called after any mutation of Resolution or
// CSSContentRect, before the next frame is committed.
func (m *FrameMetrics) UpdateContentRect() {
	m.ContentRect = geom.RoundRect(m.CSSContentRect.MulScalar(m.Scale()))
}

// ProjectionX returns the X-axis projection of the metrics.
func (m *FrameMetrics) ProjectionX() Projection {
	return Projection{
		Origin:         m.ViewportScrollOffset.X,
		ViewportLength: m.Viewport.Dx(),
		PageStart:      m.ContentRect.Min.X,
		PageLength:     m.ContentRect.Dx(),
		CSSPageLength:  m.CSSContentRect.Size().X,
		Scale:          m.Scale(),
	}
}

// ProjectionY returns the Y-axis projection of the metrics.
func (m *FrameMetrics) ProjectionY() Projection {
	return Projection{
		Origin:         m.ViewportScrollOffset.Y,
		ViewportLength: m.Viewport.Dy(),
		PageStart:      m.ContentRect.Min.Y,
		PageLength:     m.ContentRect.Dy(),
		CSSPageLength:  m.CSSContentRect.Size().Y,
		Scale:          m.Scale(),
	}
}
