// Package atomicfloat provides a lock-free float64 cell for publishing
// display telemetry from the audio thread to a consumer on another
// schedule. Stores and loads are single atomic word operations; readers
// may observe a value that is at most one store stale, which is the
// intended contract for meter and scope data.
package atomicfloat

import (
	"math"
	"sync/atomic"
)

// Value is a float64 with atomic load/store semantics.
// The zero Value holds 0.
type Value struct {
	bits atomic.Uint64
}

// Store atomically sets the value.
func (v *Value) Store(f float64) {
	v.bits.Store(math.Float64bits(f))
}

// Load atomically returns the current value.
func (v *Value) Load() float64 {
	return math.Float64frombits(v.bits.Load())
}

// Pair is a left/right cell pair for stereo telemetry.
type Pair struct {
	Left  Value
	Right Value
}

// Store atomically sets both channels. The two stores are individually
// atomic; a reader may see one channel from the previous frame.
func (p *Pair) Store(left, right float64) {
	p.Left.Store(left)
	p.Right.Store(right)
}

// Load atomically reads both channels.
func (p *Pair) Load() (left, right float64) {
	return p.Left.Load(), p.Right.Load()
}
