package signal

import (
	"fmt"
	"math"
)

// Pan places a mono signal in the stereo field using the constant-power
// pan law. panDeg is the pan angle in degrees: 0 is hard left, 45 is
// center, 90 is hard right. The returned channels satisfy
// left² + right² = mono² for every sample.
func Pan(mono []float64, panDeg float64) (left, right []float64, err error) {
	if len(mono) == 0 {
		return nil, nil, fmt.Errorf("pan input must not be empty")
	}
	if panDeg < 0 || panDeg > 90 || math.IsNaN(panDeg) {
		return nil, nil, fmt.Errorf("pan angle must be in [0, 90] degrees: %f", panDeg)
	}

	sin, cos := math.Sincos(panDeg * math.Pi / 180)

	left = make([]float64, len(mono))
	right = make([]float64, len(mono))
	for i, v := range mono {
		left[i] = v * cos
		right[i] = v * sin
	}
	return left, right, nil
}

// PannedSine generates a sine wave placed at panDeg in the stereo
// field. It is the stereo form of Sine with the Pan law applied.
func (g *Generator) PannedSine(freqHz, amplitude, panDeg float64, samples int) (left, right []float64, err error) {
	mono, err := g.Sine(freqHz, amplitude, samples)
	if err != nil {
		return nil, nil, err
	}
	return Pan(mono, panDeg)
}

// PannedNoise generates deterministic white noise placed at panDeg in
// the stereo field.
func (g *Generator) PannedNoise(amplitude, panDeg float64, samples int) (left, right []float64, err error) {
	mono, err := g.WhiteNoise(amplitude, samples)
	if err != nil {
		return nil, nil, err
	}
	return Pan(mono, panDeg)
}
