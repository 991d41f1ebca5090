// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"image"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/fixed"
)

// Box2 is a 2D float32 rectangle defined by its minimum and maximum
// corner points. Content rects in CSS pixels are carried as Box2;
// device-pixel rects use [image.Rectangle].
type Box2 struct {
	Min Vector2
	Max Vector2
}

// B2 returns a new [Box2] from the given minimum and maximum x and y
// coordinates.
func B2(x0, y0, x1, y1 float32) Box2 {
	return Box2{Vec2(x0, y0), Vec2(x1, y1)}
}

// B2FromRect returns a new [Box2] from the given [image.Rectangle].
func B2FromRect(rect image.Rectangle) Box2 {
	return Box2{FromPoint(rect.Min), FromPoint(rect.Max)}
}

// B2FromFixed returns a new [Box2] from the given [fixed.Rectangle26_6].
func B2FromFixed(rect fixed.Rectangle26_6) Box2 {
	return Box2{FromFixed(rect.Min), FromFixed(rect.Max)}
}

// IsEmpty returns whether the box has a non-positive extent on either
// dimension.
func (b Box2) IsEmpty() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y
}

// Size returns the size of the box, the vector from Min to Max.
func (b Box2) Size() Vector2 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the box.
func (b Box2) Center() Vector2 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// Translate returns the box translated by the given offset.
func (b Box2) Translate(offset Vector2) Box2 {
	return Box2{b.Min.Add(offset), b.Max.Add(offset)}
}

// MulScalar returns the box with both corners scaled by the given
// scalar, scaling the box about the coordinate origin.
func (b Box2) MulScalar(s float32) Box2 {
	return Box2{b.Min.MulScalar(s), b.Max.MulScalar(s)}
}

// ContainsPoint returns whether the box contains the given point.
func (b Box2) ContainsPoint(pt Vector2) bool {
	return pt.X >= b.Min.X && pt.X <= b.Max.X && pt.Y >= b.Min.Y && pt.Y <= b.Max.Y
}

// ContainsBox returns whether the box fully contains the other box.
func (b Box2) ContainsBox(other Box2) bool {
	return b.Min.X <= other.Min.X && other.Max.X <= b.Max.X &&
		b.Min.Y <= other.Min.Y && other.Max.Y <= b.Max.Y
}

// ToRect returns the box as an [image.Rectangle], flooring Min and
// ceiling Max so the result covers the box.
func (b Box2) ToRect() image.Rectangle {
	return image.Rectangle{Min: b.Min.ToPointFloor(), Max: b.Max.ToPointCeil()}
}

// ToFixed returns the box as a [fixed.Rectangle26_6].
func (b Box2) ToFixed() fixed.Rectangle26_6 {
	return fixed.Rectangle26_6{Min: b.Min.ToFixed(), Max: b.Max.ToFixed()}
}

// RoundRect returns the box as an [image.Rectangle] with the origin and
// the width/height each rounded to the nearest integer, matching how
// content rects are derived from CSS rects at a given zoom.
func RoundRect(b Box2) image.Rectangle {
	x := int(math32.Round(b.Min.X))
	y := int(math32.Round(b.Min.Y))
	w := int(math32.Round(b.Max.X - b.Min.X))
	h := int(math32.Round(b.Max.Y - b.Min.Y))
	return image.Rect(x, y, x+w, y+h)
}

// ScaleRoundOut returns the rectangle scaled by the given factor and
// rounded outward, so the result covers the scaled rectangle.
func ScaleRoundOut(r image.Rectangle, scale float32) image.Rectangle {
	return B2FromRect(r).MulScalar(scale).ToRect()
}

// ScaleRoundIn returns the rectangle scaled by the given factor and
// rounded inward, so the result is covered by the scaled rectangle.
func ScaleRoundIn(r image.Rectangle, scale float32) image.Rectangle {
	b := B2FromRect(r).MulScalar(scale)
	return image.Rectangle{Min: b.Min.ToPointCeil(), Max: b.Max.ToPointFloor()}
}
