package centered

import (
	"fmt"
	"math"
)

// Smoother ramps the correction angle linearly toward a retargeted
// value over a configurable number of milliseconds, so estimate jumps
// between blocks never step the rotation audibly.
//
// SetTarget is called once per block; Next must be called exactly once
// per sample to keep the ramp duration accurate. The produced sequence
// is monotonic toward the target, never overshoots, and lands exactly
// on the target after round(rampMs/1000 · sampleRate) calls.
type Smoother struct {
	sampleRate float64

	current   float64
	target    float64
	step      float64
	stepsLeft int
}

// NewSmoother creates a smoother resting at the −45° baseline.
func NewSmoother(sampleRate float64) (*Smoother, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("smoother %w", err)
	}

	return &Smoother{
		sampleRate: sampleRate,
		current:    baselineAngleDeg,
		target:     baselineAngleDeg,
	}, nil
}

// SetSampleRate updates the sample rate used to derive step counts.
// A ramp in progress keeps its remaining step count.
func (s *Smoother) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return fmt.Errorf("smoother %w", err)
	}

	s.sampleRate = sampleRate

	return nil
}

// SetTarget restarts the ramp from the current value toward target
// degrees over rampMs milliseconds. A ramp of zero samples jumps
// immediately.
func (s *Smoother) SetTarget(target, rampMs float64) {
	s.target = target

	steps := int(math.Round(rampMs / 1000.0 * s.sampleRate))
	if steps <= 0 || target == s.current {
		s.current = target
		s.stepsLeft = 0
		s.step = 0

		return
	}

	s.stepsLeft = steps
	s.step = (target - s.current) / float64(steps)
}

// Next advances the ramp by one sample and returns the smoothed value
// in degrees.
func (s *Smoother) Next() float64 {
	if s.stepsLeft == 0 {
		return s.current
	}

	s.stepsLeft--
	if s.stepsLeft == 0 {
		// Land exactly on the target instead of accumulating step error.
		s.current = s.target
	} else {
		s.current += s.step
	}

	return s.current
}

// Value returns the current smoothed angle without advancing the ramp.
func (s *Smoother) Value() float64 {
	return s.current
}

// Target returns the angle the ramp is heading toward.
func (s *Smoother) Target() float64 {
	return s.target
}

// Reset snaps the smoother to value degrees and cancels any ramp.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.step = 0
	s.stepsLeft = 0
}
