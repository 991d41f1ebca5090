// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apz

import (
	"github.com/chewxy/math32"

	"github.com/glidegfx/glide/geom"
)

// ViewTransform is the async transform the compositor applies to the
// primary scrollable layer: a scale with a translation applied after
// it.
type ViewTransform struct {

	// Translation is applied after the scale.
	Translation geom.Vector2

	// ScaleX and ScaleY are the zoom components.
	ScaleX float32
	ScaleY float32
}

// Matrix2 returns the transform as an affine matrix.
func (vt ViewTransform) Matrix2() geom.Matrix2 {
	return geom.Translate2D(vt.Translation.X, vt.Translation.Y).Scale(vt.ScaleX, vt.ScaleY)
}

// ContentTransformForFrame resolves the async transform for one
// composite frame. frame is the document-side metrics of the primary
// scrollable layer (what is currently painted), rootTransform the root
// layer's transform, and widgetSize the window size.
//
// It returns the tree transform to apply to the primary scrollable
// layer, and the translation to apply to fixed-position layers in the
// opposite sense, so they appear anchored to the viewport while the
// page moves under them.
func (c *Controller) ContentTransformForFrame(frame FrameMetrics, rootTransform geom.Matrix2, widgetSize geom.Vector2) (ViewTransform, geom.Vector2) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// The root scales are what is currently painted; the local scales
	// are what the user has pinched to. The painted content is moved
	// and stretched to stand in until the document side repaints at
	// the new resolution.
	rootScaleX := rootTransform.XScale()
	rootScaleY := rootTransform.YScale()
	localScaleX := c.metrics.Resolution.X
	localScaleY := c.metrics.Resolution.Y

	metricsOffset := geom.Vector2{}
	if frame.IsScrollable() {
		metricsOffset = geom.FromPoint(frame.ViewportScrollOffset)
	}

	off := geom.FromPoint(c.metrics.ViewportScrollOffset)
	scrollCompensation := geom.Vec2(
		off.X/rootScaleX-metricsOffset.X,
		off.Y/rootScaleY-metricsOffset.Y,
	)
	tree := ViewTransform{
		Translation: scrollCompensation.Negate(),
		ScaleX:      localScaleX,
		ScaleY:      localScaleY,
	}

	offsetX := off.X / (rootScaleX * localScaleX)
	offsetY := off.Y / (rootScaleY * localScaleY)

	cr := c.metrics.ContentRect
	offsetX = math32.Max(float32(cr.Min.X),
		math32.Min(offsetX, float32(cr.Max.X)-widgetSize.X))
	offsetY = math32.Max(float32(cr.Min.Y),
		math32.Min(offsetY, float32(cr.Max.Y)-widgetSize.Y))

	fixed := geom.Vec2(offsetX-metricsOffset.X, offsetY-metricsOffset.Y)
	return tree, fixed
}
