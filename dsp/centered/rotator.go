package centered

import (
	"math"

	"github.com/cwbudde/algo-centered/internal/atomicfloat"
)

// Rotator applies a 2D rotation to each stereo frame:
//
//	L' =  L·cos(pan) − R·sin(pan)
//	R' =  L·sin(pan) + R·cos(pan)
//
// with pan in radians. A pan of 0 is the exact identity, so a disabled
// or converged correction passes the signal through untouched.
//
// The instantaneous pan of the most recent frame is published through
// an atomic cell for display consumers; publication never blocks.
type Rotator struct {
	pan atomicfloat.Value
}

// NewRotator returns a rotator resting at 0 radians.
func NewRotator() *Rotator {
	return &Rotator{}
}

// Process rotates one frame by panRad radians, publishes the angle, and
// returns the rotated pair.
func (r *Rotator) Process(left, right, panRad float64) (outL, outR float64) {
	r.pan.Store(panRad)

	sin, cos := math.Sincos(panRad)

	return left*cos - right*sin, left*sin + right*cos
}

// Pan returns the most recently published rotation angle in radians.
// Safe to call from any goroutine.
func (r *Rotator) Pan() float64 {
	return r.pan.Load()
}

// Reset republishes a 0 angle.
func (r *Rotator) Reset() {
	r.pan.Store(0)
}
