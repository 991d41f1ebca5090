// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apz

import "fmt"

// State is the pan/zoom controller's interaction state. The initial
// state is [Nothing]; the animation states ([Fling], [Bounce],
// [AnimatedZoom]) are driven by the composite loop until they decide to
// transition back to [Nothing].
type State int32

const (
	// Nothing means no touch or animation is in progress.
	Nothing State = iota

	// WaitingListeners means input is held while document-side touch
	// listeners get a chance to consume it.
	WaitingListeners

	// Touching means a finger is down but has not moved past the pan
	// threshold.
	Touching

	// Panning means the touch is scrolling the page.
	Panning

	// PanningLocked is a pan locked to a single axis.
	PanningLocked

	// PanningHold is a pan with the finger currently stationary.
	PanningHold

	// PanningHoldLocked is an axis-locked pan with the finger
	// currently stationary.
	PanningHoldLocked

	// Pinching means two fingers are scaling the page.
	Pinching

	// Fling is the inertial animation after a pan ends.
	Fling

	// Bounce is the overscroll spring-back animation.
	Bounce

	// AnimatedZoom is a programmatic zoom animation toward a target
	// rect.
	AnimatedZoom
)

var stateNames = []string{"Nothing", "WaitingListeners", "Touching",
	"Panning", "PanningLocked", "PanningHold", "PanningHoldLocked",
	"Pinching", "Fling", "Bounce", "AnimatedZoom"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "State(invalid)"
	}
	return stateNames[s]
}

// IsPanning reports whether the state is one of the panning states.
func (s State) IsPanning() bool {
	switch s {
	case Panning, PanningLocked, PanningHold, PanningHoldLocked:
		return true
	}
	return false
}

// IsAnimation reports whether the state is driven by the composite
// loop.
func (s State) IsAnimation() bool {
	switch s {
	case Fling, Bounce, AnimatedZoom:
		return true
	}
	return false
}

// stateTransitions is the total transition relation of the controller.
// Every setState call is checked against it; a transition outside the
// table is an internal invariant violation and panics.
var stateTransitions = map[State][]State{
	Nothing:           {Touching, Panning, Pinching, AnimatedZoom, WaitingListeners},
	WaitingListeners:  {Nothing, Touching, Panning, Pinching},
	Touching:          {Nothing, Panning, Pinching},
	Panning:           {Fling, Pinching, Nothing},
	PanningLocked:     {Fling, Pinching, Nothing},
	PanningHold:       {Fling, Pinching, Panning, Nothing},
	PanningHoldLocked: {Fling, Pinching, PanningLocked, Nothing},
	Pinching:          {Panning, Nothing},
	Fling:             {Nothing, Panning, Pinching},
	Bounce:            {Nothing, Panning, Pinching},
	AnimatedZoom:      {Nothing, Panning, Pinching},
}

// canTransition reports whether moving from one state to the other is
// in the transition table. Self-transitions are always allowed.
func canTransition(from, to State) bool {
	if from == to {
		return true
	}
	for _, s := range stateTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (c *Controller) setState(to State) {
	from := State(c.state.Load())
	if !canTransition(from, to) {
		panic(fmt.Sprintf("apz: illegal state transition %v -> %v", from, to))
	}
	c.state.Store(int32(to))
}

// State returns the controller's current interaction state.
func (c *Controller) State() State {
	return State(c.state.Load())
}
