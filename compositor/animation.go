// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compositor

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/glidegfx/glide/geom"
)

// Direction is the playback direction of an animation across
// iterations.
type Direction int32

const (
	// DirectionNormal plays every iteration forward.
	DirectionNormal Direction = iota

	// DirectionAlternate plays odd iterations backward.
	DirectionAlternate

	// DirectionReverse plays every iteration backward.
	DirectionReverse

	// DirectionAlternateReverse plays even iterations backward.
	DirectionAlternateReverse
)

// ValueKind is the kind of animated property value.
type ValueKind int32

const (
	// ValueOpacity animates layer opacity.
	ValueOpacity ValueKind = iota

	// ValueTransform animates the layer transform.
	ValueTransform
)

// Value is one animatable property value.
type Value struct {
	Kind      ValueKind
	Opacity   float32
	Transform geom.Matrix2
}

// OpacityValue returns an opacity [Value].
func OpacityValue(v float32) Value {
	return Value{Kind: ValueOpacity, Opacity: v}
}

// TransformValue returns a transform [Value].
func TransformValue(m geom.Matrix2) Value {
	return Value{Kind: ValueTransform, Transform: m}
}

// TimingKind is the kind of a segment timing function.
type TimingKind int32

const (
	// TimingLinear maps input to output unchanged.
	TimingLinear TimingKind = iota

	// TimingCubicBezier eases along a cubic bezier with control points
	// (X1, Y1) and (X2, Y2).
	TimingCubicBezier

	// TimingSteps holds the output constant across Steps intervals.
	TimingSteps
)

// TimingFunction shapes a segment's progress from linear time to eased
// output, as CSS timing functions do.
type TimingFunction struct {
	Kind           TimingKind
	X1, Y1, X2, Y2 float32
	Steps          int
}

// Linear returns the linear timing function.
func Linear() TimingFunction {
	return TimingFunction{Kind: TimingLinear}
}

// CubicBezier returns a cubic bezier timing function with the given
// control points.
func CubicBezier(x1, y1, x2, y2 float32) TimingFunction {
	return TimingFunction{Kind: TimingCubicBezier, X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Ease returns the CSS "ease" timing function.
func Ease() TimingFunction { return CubicBezier(0.25, 0.1, 0.25, 1) }

// EaseInOut returns the CSS "ease-in-out" timing function.
func EaseInOut() TimingFunction { return CubicBezier(0.42, 0, 0.58, 1) }

// StepsFn returns a step timing function with the given number of
// intervals.
func StepsFn(n int) TimingFunction {
	return TimingFunction{Kind: TimingSteps, Steps: n}
}

// Value returns the eased output for the given input position in [0, 1].
func (tf TimingFunction) Value(t float32) float32 {
	switch tf.Kind {
	case TimingCubicBezier:
		return bezierY(tf, solveBezierX(tf, t))
	case TimingSteps:
		if tf.Steps <= 0 {
			return t
		}
		return math32.Min(1, math32.Floor(t*float32(tf.Steps))/float32(tf.Steps))
	}
	return t
}

func bezierX(tf TimingFunction, u float32) float32 {
	return bezier(tf.X1, tf.X2, u)
}

func bezierY(tf TimingFunction, u float32) float32 {
	return bezier(tf.Y1, tf.Y2, u)
}

// bezier evaluates a cubic bezier coordinate with endpoints 0 and 1 and
// the given control values at parameter u.
func bezier(c1, c2, u float32) float32 {
	omu := 1 - u
	return 3*omu*omu*u*c1 + 3*omu*u*u*c2 + u*u*u
}

// solveBezierX finds the curve parameter whose x equals the given input
// by bisection; the curve's x is monotonic on [0, 1] for valid control
// points.
func solveBezierX(tf TimingFunction, x float32) float32 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	lo, hi := float32(0), float32(1)
	for i := 0; i < 32; i++ {
		mid := (lo + hi) / 2
		if bezierX(tf, mid) < x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// Segment is one piece of an animation, covering [StartPoint, EndPoint]
// of an iteration and interpolating StartState to EndState through its
// timing function.
type Segment struct {
	StartState Value
	EndState   Value
	StartPoint float32
	EndPoint   float32
	Timing     TimingFunction
}

// Animation is a property animation attached to a layer, sampled by the
// compositor each frame.
type Animation struct {

	// StartTime is when the animation started.
	StartTime time.Time

	// Duration is the length of one iteration.
	Duration time.Duration

	// NumIterations is how many iterations to play; -1 plays forever.
	NumIterations float32

	// Direction is the playback direction across iterations.
	Direction Direction

	// Segments partition each iteration; their points cover [0, 1].
	Segments []Segment

	// ScaleTransform is the layer's scaling matrix, composed with every
	// sampled transform value. Identity when the layer has none.
	ScaleTransform geom.Matrix2
}

// PositionInIteration returns the fractional position within the
// current iteration at the given time, in [0, 1]. It returns -1 when
// the animation has expired.
func (a *Animation) PositionInIteration(now time.Time) float32 {
	elapsed := float32(now.Sub(a.StartTime)) / float32(a.Duration)
	if elapsed < 0 {
		elapsed = 0
	}

	iterations := math32.Inf(1)
	if a.NumIterations != -1 {
		iterations = a.NumIterations
	}
	if elapsed >= iterations {
		return -1
	}

	iteration := math32.Floor(elapsed)
	pos := elapsed - iteration

	reversed := false
	switch a.Direction {
	case DirectionReverse:
		reversed = true
	case DirectionAlternate:
		reversed = int(iteration)%2 == 1
	case DirectionAlternateReverse:
		reversed = int(iteration)%2 == 0
	}
	if reversed {
		pos = 1 - pos
	}
	return pos
}

// sample resolves the animation's value at the given time, reporting
// whether it is still active. An expired animation reports false and
// must be removed on the same frame.
func (a *Animation) sample(now time.Time) (Value, bool) {
	pos := a.PositionInIteration(now)
	if pos < 0 {
		return Value{}, false
	}

	// Segments are few; a linear scan locates the active one.
	seg := &a.Segments[0]
	for i := range a.Segments {
		if a.Segments[i].EndPoint >= pos {
			seg = &a.Segments[i]
			break
		}
	}

	positionInSegment := (pos - seg.StartPoint) / (seg.EndPoint - seg.StartPoint)
	point := seg.Timing.Value(positionInSegment)

	switch seg.EndState.Kind {
	case ValueTransform:
		m := seg.StartState.Transform.Lerp(seg.EndState.Transform, point)
		return TransformValue(m.Mul(a.ScaleTransform)), true
	default:
		v := seg.StartState.Opacity + (seg.EndState.Opacity-seg.StartState.Opacity)*point
		return OpacityValue(v), true
	}
}

// SampleAnimations samples every property animation under the given
// layer at the given time, applying the resolved values to the shadow
// layers. Expired animations are removed on the frame they expire. It
// reports whether any animation remains active, in which case the
// caller schedules another composite.
func SampleAnimations(l *Layer, now time.Time) bool {
	active := false
	for i := len(l.Animations) - 1; i >= 0; i-- {
		v, ok := l.Animations[i].sample(now)
		if !ok {
			l.Animations = append(l.Animations[:i], l.Animations[i+1:]...)
			continue
		}
		active = true
		if l.Shadow == nil {
			continue
		}
		switch v.Kind {
		case ValueOpacity:
			l.Shadow.SetShadowOpacity(v.Opacity)
		case ValueTransform:
			l.Shadow.SetShadowTransform(v.Transform)
		}
	}

	for _, child := range l.Children() {
		if SampleAnimations(child, now) {
			active = true
		}
	}
	return active
}
