// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/fixed"
)

// Vector2 is a 2D float32 vector, used for positions, sizes, scale
// factors, and translations.
type Vector2 struct {
	X float32
	Y float32
}

// Vec2 returns a new [Vector2] with the given x and y components.
func Vec2(x, y float32) Vector2 {
	return Vector2{x, y}
}

// Vector2Scalar returns a new [Vector2] with both components set to the
// given scalar value.
func Vector2Scalar(s float32) Vector2 {
	return Vector2{s, s}
}

// FromPoint returns a new [Vector2] from the given [image.Point].
func FromPoint(pt image.Point) Vector2 {
	return Vec2(float32(pt.X), float32(pt.Y))
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%v, %v)", v.X, v.Y)
}

// Add adds the other vector to this one and returns the result.
func (v Vector2) Add(other Vector2) Vector2 {
	return Vec2(v.X+other.X, v.Y+other.Y)
}

// Sub subtracts the other vector from this one and returns the result.
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vec2(v.X-other.X, v.Y-other.Y)
}

// Mul multiplies this vector component-wise by the other and returns
// the result.
func (v Vector2) Mul(other Vector2) Vector2 {
	return Vec2(v.X*other.X, v.Y*other.Y)
}

// Div divides this vector component-wise by the other and returns
// the result.
func (v Vector2) Div(other Vector2) Vector2 {
	return Vec2(v.X/other.X, v.Y/other.Y)
}

// MulScalar multiplies each component by the given scalar and returns
// the result.
func (v Vector2) MulScalar(s float32) Vector2 {
	return Vec2(v.X*s, v.Y*s)
}

// DivScalar divides each component by the given scalar and returns
// the result.
func (v Vector2) DivScalar(s float32) Vector2 {
	return Vec2(v.X/s, v.Y/s)
}

// Negate returns the vector with each component negated.
func (v Vector2) Negate() Vector2 {
	return Vec2(-v.X, -v.Y)
}

// Length returns the length (magnitude) of the vector.
func (v Vector2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// DistanceTo returns the Euclidean distance to the other vector.
func (v Vector2) DistanceTo(other Vector2) float32 {
	return v.Sub(other).Length()
}

// Clamp clamps each component between the corresponding components of
// min and max and returns the result.
func (v Vector2) Clamp(min, max Vector2) Vector2 {
	return Vec2(math32.Max(min.X, math32.Min(v.X, max.X)),
		math32.Max(min.Y, math32.Min(v.Y, max.Y)))
}

// Round returns the vector with each component rounded to the nearest
// integer value, halves away from zero.
func (v Vector2) Round() Vector2 {
	return Vec2(math32.Round(v.X), math32.Round(v.Y))
}

// ToPoint returns the vector as an [image.Point], rounding each
// component to the nearest integer.
func (v Vector2) ToPoint() image.Point {
	return image.Pt(int(math32.Round(v.X)), int(math32.Round(v.Y)))
}

// ToPointFloor returns the vector as an [image.Point] with each
// component floored.
func (v Vector2) ToPointFloor() image.Point {
	return image.Pt(int(math32.Floor(v.X)), int(math32.Floor(v.Y)))
}

// ToPointCeil returns the vector as an [image.Point] with each
// component ceiled.
func (v Vector2) ToPointCeil() image.Point {
	return image.Pt(int(math32.Ceil(v.X)), int(math32.Ceil(v.Y)))
}

// ToFixed returns the vector as a [fixed.Point26_6].
func (v Vector2) ToFixed() fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(v.X * 64), Y: fixed.Int26_6(v.Y * 64)}
}

// FromFixed returns a new [Vector2] from the given [fixed.Point26_6].
func FromFixed(pt fixed.Point26_6) Vector2 {
	return Vec2(float32(pt.X)/64, float32(pt.Y)/64)
}
