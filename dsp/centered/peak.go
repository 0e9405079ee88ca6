package centered

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-centered/dsp/core"
	"github.com/cwbudde/algo-centered/internal/atomicfloat"
)

const peakDecayMs = 150.0

// PeakFollower tracks a decaying peak magnitude per channel.
//
// The instantaneous magnitude replaces the held peak whenever it
// exceeds it; otherwise the peak decays geometrically toward the
// current magnitude. The decay weight is 0.25^(1/(sampleRate·0.15)),
// which lets a held peak fall to a quarter of its value over 150 ms.
//
// Levels are held in atomic cells so meter consumers on another
// schedule can read them without synchronization.
type PeakFollower struct {
	sampleRate  float64
	decayWeight float64

	levels atomicfloat.Pair
}

// NewPeakFollower creates a follower for the given sample rate.
func NewPeakFollower(sampleRate float64) (*PeakFollower, error) {
	p := &PeakFollower{}
	if err := p.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	return p, nil
}

// SetSampleRate recomputes the decay weight for a new sample rate.
func (p *PeakFollower) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return fmt.Errorf("peak follower %w", err)
	}

	p.sampleRate = sampleRate
	p.decayWeight = math.Pow(0.25, 1.0/(sampleRate*peakDecayMs/1000.0))

	return nil
}

// Observe updates both channel peaks from one frame.
func (p *PeakFollower) Observe(left, right float64) {
	p.observeOne(&p.levels.Left, left)
	p.observeOne(&p.levels.Right, right)
}

func (p *PeakFollower) observeOne(cell *atomicfloat.Value, sample float64) {
	amp := math.Abs(sample)

	peak := cell.Load()
	if amp > peak {
		peak = amp
	} else {
		peak = core.FlushDenormals(peak*p.decayWeight + amp*(1.0-p.decayWeight))
	}

	cell.Store(peak)
}

// Levels returns the current decayed peak magnitudes. Safe to call
// from any goroutine.
func (p *PeakFollower) Levels() (left, right float64) {
	return p.levels.Load()
}

// DecayWeight returns the per-sample decay factor, in [0, 1).
func (p *PeakFollower) DecayWeight() float64 {
	return p.decayWeight
}

// SampleRate returns the sample rate in Hz.
func (p *PeakFollower) SampleRate() float64 {
	return p.sampleRate
}

// Reset clears both channel peaks.
func (p *PeakFollower) Reset() {
	p.levels.Store(0, 0)
}
