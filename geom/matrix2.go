// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "fmt"

// Matrix2 is a 2D affine transform matrix in row-major layout:
//
//	XX  XY  X0
//	YX  YY  Y0
//
// Column vectors are multiplied on the right, so XX/YY are the scale
// components and X0/Y0 the translation.
type Matrix2 struct {
	XX, YX, XY, YY, X0, Y0 float32
}

// Identity2 returns a new identity [Matrix2].
func Identity2() Matrix2 {
	return Matrix2{XX: 1, YY: 1}
}

// Translate2D returns a new [Matrix2] that translates by the given offsets.
func Translate2D(x, y float32) Matrix2 {
	m := Identity2()
	m.X0 = x
	m.Y0 = y
	return m
}

// Scale2D returns a new [Matrix2] that scales by the given factors.
func Scale2D(x, y float32) Matrix2 {
	m := Identity2()
	m.XX = x
	m.YY = y
	return m
}

func (m Matrix2) String() string {
	return fmt.Sprintf("[%v %v %v; %v %v %v]", m.XX, m.XY, m.X0, m.YX, m.YY, m.Y0)
}

// Mul returns this matrix times the other matrix, applying the other
// matrix first when the result transforms a point.
func (m Matrix2) Mul(other Matrix2) Matrix2 {
	return Matrix2{
		XX: m.XX*other.XX + m.XY*other.YX,
		YX: m.YX*other.XX + m.YY*other.YX,
		XY: m.XX*other.XY + m.XY*other.YY,
		YY: m.YX*other.XY + m.YY*other.YY,
		X0: m.XX*other.X0 + m.XY*other.Y0 + m.X0,
		Y0: m.YX*other.X0 + m.YY*other.Y0 + m.Y0,
	}
}

// Translate returns this matrix with an additional translation composed in.
func (m Matrix2) Translate(x, y float32) Matrix2 {
	return m.Mul(Translate2D(x, y))
}

// Scale returns this matrix with an additional scale composed in.
func (m Matrix2) Scale(x, y float32) Matrix2 {
	return m.Mul(Scale2D(x, y))
}

// MulVector2AsPoint returns the given point transformed by this matrix,
// including the translation.
func (m Matrix2) MulVector2AsPoint(v Vector2) Vector2 {
	return Vec2(m.XX*v.X+m.XY*v.Y+m.X0, m.YX*v.X+m.YY*v.Y+m.Y0)
}

// MulVector2AsVector returns the given vector transformed by this
// matrix, excluding the translation.
func (m Matrix2) MulVector2AsVector(v Vector2) Vector2 {
	return Vec2(m.XX*v.X+m.XY*v.Y, m.YX*v.X+m.YY*v.Y)
}

// XScale returns the X scale component of the matrix.
func (m Matrix2) XScale() float32 {
	return m.XX
}

// YScale returns the Y scale component of the matrix.
func (m Matrix2) YScale() float32 {
	return m.YY
}

// Lerp returns the matrix linearly interpolated toward other by t,
// component-wise. t = 0 yields this matrix, t = 1 the other.
func (m Matrix2) Lerp(other Matrix2, t float32) Matrix2 {
	lerp := func(a, b float32) float32 { return a + (b-a)*t }
	return Matrix2{
		XX: lerp(m.XX, other.XX),
		YX: lerp(m.YX, other.YX),
		XY: lerp(m.XY, other.XY),
		YY: lerp(m.YY, other.YY),
		X0: lerp(m.X0, other.X0),
		Y0: lerp(m.Y0, other.Y0),
	}
}
