package centered

import "github.com/cwbudde/algo-centered/internal/atomicfloat"

// ScopeFrames is the fixed capacity of a Scope ring.
const ScopeFrames = 1000

// Scope is a fixed-capacity circular buffer of recent stereo frames
// feeding a goniometer-style display.
//
// The engine writes frames on the audio thread; a display consumer
// reads them on its own schedule through Snapshot. Every cell is an
// atomic scalar, so the two sides need no lock; a snapshot may mix
// frames from adjacent blocks, which is acceptable for display data.
// The ring is allocated once and never resized.
type Scope struct {
	frames [ScopeFrames]atomicfloat.Pair

	// idx is touched only by the writing (audio) thread.
	idx int
}

// NewScope returns an empty ring.
func NewScope() *Scope {
	return &Scope{}
}

// Write stores one frame at the wrapping index, overwriting the oldest
// frame once the ring is full. Audio thread only.
func (s *Scope) Write(left, right float64) {
	s.frames[s.idx].Store(left, right)

	s.idx++
	if s.idx >= ScopeFrames {
		s.idx = 0
	}
}

// Capacity returns the ring capacity in frames.
func (s *Scope) Capacity() int {
	return ScopeFrames
}

// Snapshot copies up to min(len(left), len(right), ScopeFrames) frames
// in storage order into the destination slices and returns the count.
// Safe to call from any goroutine.
func (s *Scope) Snapshot(left, right []float64) int {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}

	if n > ScopeFrames {
		n = ScopeFrames
	}

	for i := 0; i < n; i++ {
		left[i], right[i] = s.frames[i].Load()
	}

	return n
}

// Reset zeroes every frame and rewinds the write index. Control path
// only; concurrent Snapshot readers simply see the cleared frames.
func (s *Scope) Reset() {
	for i := range s.frames {
		s.frames[i].Store(0, 0)
	}

	s.idx = 0
}
