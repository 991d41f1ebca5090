// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compositor

import (
	"image"

	"github.com/glidegfx/glide/apz"
	"github.com/glidegfx/glide/geom"
)

// ShadowLayer is the compositor-side surface of a layer: the mutable
// copy the backend rasterizes. The engine only writes these four
// properties; everything else about rendering lives behind the backend.
type ShadowLayer interface {
	SetShadowTransform(m geom.Matrix2)
	SetShadowClip(rect *image.Rectangle)
	SetShadowVisibleRegion(region []image.Rectangle)
	SetShadowOpacity(opacity float32)
}

// Layer is one node of the shadow layer tree, mirroring the document's
// logical layer tree.
type Layer struct {

	// Metrics are the layer's scroll/zoom metrics. Non-scrollable
	// metrics denote leaf or fixed layers.
	Metrics apz.FrameMetrics

	// Transform is the layer's own transform, composed with the async
	// transform on the primary scrollable layer.
	Transform geom.Matrix2

	// Opacity is the layer's opacity.
	Opacity float32

	// ClipRect clips the layer when non-nil.
	ClipRect *image.Rectangle

	// VisibleRegion is the set of rects the layer contributes pixels
	// in.
	VisibleRegion []image.Rectangle

	// FixedPosition anchors the layer to the viewport instead of the
	// page.
	FixedPosition bool

	// RefID makes this a reference layer: its child subtree lives in
	// another tree, resolved by this ID each frame. Zero for normal
	// layers.
	RefID uint64

	// Animations are the property animations attached to this layer.
	Animations []*Animation

	// Shadow is the backend surface the compositor writes resolved
	// properties to.
	Shadow ShadowLayer

	parent   *Layer
	children []*Layer

	// refChild is the referent subtree connected for the duration of
	// one composite frame.
	refChild *Layer
}

// NewLayer returns a new layer with an identity transform and full
// opacity.
func NewLayer() *Layer {
	return &Layer{Transform: geom.Identity2(), Opacity: 1}
}

// AddChild appends a child layer.
func (l *Layer) AddChild(child *Layer) {
	child.parent = l
	l.children = append(l.children, child)
}

// Parent returns the layer's parent, or nil for a root.
func (l *Layer) Parent() *Layer {
	return l.parent
}

// Children returns the layer's children, including a connected referent
// subtree during a composite.
func (l *Layer) Children() []*Layer {
	if l.refChild != nil {
		return append(append([]*Layer{}, l.children...), l.refChild)
	}
	return l.children
}

// mirrorShadowProperties copies each layer's properties to its shadow,
// down the whole tree. The compositor does this when a shadow-tree
// update arrives, before any async transforms are applied on top.
func mirrorShadowProperties(l *Layer) {
	if l.Shadow != nil {
		l.Shadow.SetShadowTransform(l.Transform)
		l.Shadow.SetShadowVisibleRegion(l.VisibleRegion)
		l.Shadow.SetShadowClip(l.ClipRect)
		l.Shadow.SetShadowOpacity(l.Opacity)
	}
	for _, child := range l.Children() {
		mirrorShadowProperties(child)
	}
}

// LayerManager owns the shadow tree the compositor renders.
type LayerManager interface {

	// Root returns the root of the shadow tree, or nil before the
	// first update or during teardown.
	Root() *Layer

	// EndEmptyTransaction renders the current shadow tree without any
	// content changes.
	EndEmptyTransaction()
}
