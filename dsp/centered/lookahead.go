package centered

import "github.com/cwbudde/algo-centered/dsp/core"

// lookaheadLine is the stereo delay ring behind the engine's lookahead
// parameter.
//
// The backing arrays are allocated once, at the sample count of the
// maximum lookahead time, so changing the parameter only re-slices
// them: no allocation can ever happen between blocks, let alone inside
// one. A length of 0 means bypass.
type lookaheadLine struct {
	left  []float64
	right []float64
	pos   int
}

func newLookaheadLine(maxSamples int) *lookaheadLine {
	if maxSamples < 1 {
		maxSamples = 1
	}

	return &lookaheadLine{
		left:  make([]float64, 0, maxSamples),
		right: make([]float64, 0, maxSamples),
	}
}

func (l *lookaheadLine) len() int {
	return len(l.left)
}

func (l *lookaheadLine) cap() int {
	return cap(l.left)
}

// setLength re-slices the ring to n frames (clamped to the fixed
// capacity), clearing its content. Control path only.
func (l *lookaheadLine) setLength(n int) {
	if n < 0 {
		n = 0
	}

	if n > cap(l.left) {
		n = cap(l.left)
	}

	l.left = l.left[:n]
	l.right = l.right[:n]
	l.clear()
}

// process writes one frame and returns the frame it displaces, exactly
// len() samples old. Must not be called on a zero-length line.
func (l *lookaheadLine) process(left, right float64) (outL, outR float64) {
	outL = l.left[l.pos]
	outR = l.right[l.pos]

	l.left[l.pos] = left
	l.right[l.pos] = right

	l.pos++
	if l.pos >= len(l.left) {
		l.pos = 0
	}

	return outL, outR
}

// visit calls fn for every buffered frame, oldest first.
func (l *lookaheadLine) visit(fn func(left, right float64)) {
	n := len(l.left)
	for i := 0; i < n; i++ {
		j := l.pos + i
		if j >= n {
			j -= n
		}

		fn(l.left[j], l.right[j])
	}
}

func (l *lookaheadLine) clear() {
	core.Zero(l.left)
	core.Zero(l.right)
	l.pos = 0
}
