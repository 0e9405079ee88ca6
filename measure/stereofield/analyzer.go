// Package stereofield measures the stereo image of a recorded signal:
// per-channel level, balance, inter-channel correlation, the dominant
// pan angle, and the inter-channel lag.
//
// This is an offline analysis tool. The real-time engine in
// dsp/centered publishes the same kind of numbers continuously; this
// package computes them exactly over a whole capture, which makes it
// useful for verifying the engine's behavior and for one-shot
// diagnostics.
package stereofield

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-centered/dsp/centered"
	"github.com/cwbudde/algo-centered/dsp/core"
)

// ErrEmptyInput is returned when an input signal has no samples.
var ErrEmptyInput = errors.New("stereofield: empty input")

// Report holds stereo-field measurements over one capture.
//
//nolint:revive
type Report struct {
	Frames int

	RMSLeft     float64
	RMSRight    float64
	RMSLeft_dB  float64
	RMSRight_dB float64
	RMSMid      float64
	RMSSide     float64

	// Balance is the energy skew in [-1, 1]: -1 all left, 0 even,
	// +1 all right.
	Balance float64

	// Correlation is the normalized inter-channel product in [-1, 1]:
	// +1 mono-compatible, 0 unrelated, -1 out of phase.
	Correlation float64

	// DominantAngle is the whole-capture pan angle in degrees, using
	// the same running-average estimate the real-time engine computes
	// per block (0 left, 45 center, 90 right).
	DominantAngle float64

	// LagSamples is the inter-channel delay at the cross-correlation
	// peak. Positive means the right channel lags the left.
	LagSamples int
	LagSeconds float64
}

// Analyze measures the stereo field of paired channel captures.
// Both slices must have the same nonzero length.
func Analyze(left, right []float64, sampleRate float64) (Report, error) {
	if len(left) == 0 || len(right) == 0 {
		return Report{}, ErrEmptyInput
	}

	if len(left) != len(right) {
		return Report{}, fmt.Errorf("stereofield: channel lengths must match: %d != %d",
			len(left), len(right))
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Report{}, fmt.Errorf("stereofield: sample rate must be > 0 and finite: %f", sampleRate)
	}

	n := len(left)
	r := Report{Frames: n}

	scratch := make([]float64, n)

	vecmath.MulBlock(scratch, left, left)
	energyL := blockSum(scratch)

	vecmath.MulBlock(scratch, right, right)
	energyR := blockSum(scratch)

	vecmath.MulBlock(scratch, left, right)
	cross := blockSum(scratch)

	r.RMSLeft = math.Sqrt(energyL / float64(n))
	r.RMSRight = math.Sqrt(energyR / float64(n))
	r.RMSLeft_dB = core.LinearToDB(r.RMSLeft)
	r.RMSRight_dB = core.LinearToDB(r.RMSRight)

	if total := energyL + energyR; total > 0 {
		r.Balance = (energyR - energyL) / total
	}

	if denom := math.Sqrt(energyL * energyR); denom > 0 {
		r.Correlation = cross / denom
	}

	// Mid/side levels via the usual half-sum/half-difference encoding.
	mid := make([]float64, n)
	side := make([]float64, n)

	vecmath.ScaleBlock(mid, left, 0.5)
	vecmath.ScaleBlock(scratch, right, 0.5)
	vecmath.AddBlockInPlace(mid, scratch)

	vecmath.ScaleBlock(side, left, 0.5)
	vecmath.ScaleBlock(scratch, right, -0.5)
	vecmath.AddBlockInPlace(side, scratch)

	vecmath.MulBlock(scratch, mid, mid)
	r.RMSMid = math.Sqrt(blockSum(scratch) / float64(n))

	vecmath.MulBlock(scratch, side, side)
	r.RMSSide = math.Sqrt(blockSum(scratch) / float64(n))

	r.DominantAngle = centered.NewEstimator().EstimateBlock(left, right)

	lag, err := EstimateLag(left, right)
	if err != nil {
		return Report{}, err
	}

	r.LagSamples = lag
	r.LagSeconds = float64(lag) / sampleRate

	return r, nil
}

// EstimateLag returns the inter-channel delay at the peak of the FFT
// cross-correlation of the two channels, in samples. Positive means
// the right channel lags the left.
func EstimateLag(left, right []float64) (int, error) {
	if len(left) == 0 || len(right) == 0 {
		return 0, ErrEmptyInput
	}

	n := len(left)
	m := len(right)
	fftSize := nextPowerOf2(n + m - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("stereofield: FFT plan: %w", err)
	}

	leftPadded := make([]complex128, fftSize)
	rightPadded := make([]complex128, fftSize)

	for i, v := range left {
		leftPadded[i] = complex(v, 0)
	}

	for i, v := range right {
		rightPadded[i] = complex(v, 0)
	}

	leftFreq := make([]complex128, fftSize)
	rightFreq := make([]complex128, fftSize)

	if err := plan.Forward(leftFreq, leftPadded); err != nil {
		return 0, fmt.Errorf("stereofield: forward FFT: %w", err)
	}

	if err := plan.Forward(rightFreq, rightPadded); err != nil {
		return 0, fmt.Errorf("stereofield: forward FFT: %w", err)
	}

	// Cross-correlation spectrum: L · conj(R).
	corrFreq := make([]complex128, fftSize)
	for i := range corrFreq {
		conj := complex(real(rightFreq[i]), -imag(rightFreq[i]))
		corrFreq[i] = leftFreq[i] * conj
	}

	corrTime := make([]complex128, fftSize)
	if err := plan.Inverse(corrTime, corrFreq); err != nil {
		return 0, fmt.Errorf("stereofield: inverse FFT: %w", err)
	}

	// Rearrange the circular result into linear lags: negative lags
	// -(m-1)..-1 sit at the tail of the FFT output.
	corr := make([]float64, n+m-1)

	for i := 0; i < n; i++ {
		corr[m-1+i] = real(corrTime[i])
	}

	for i := 0; i < m-1; i++ {
		corr[i] = real(corrTime[fftSize-m+1+i])
	}

	peak := 0
	for i, v := range corr {
		if v > corr[peak] {
			peak = i
		}
	}

	// corr peaks at lag l where left[j] matches right[j-l]; a right
	// channel delayed by d peaks at l = -d, so negate for the
	// positive-means-right-lags convention.
	return (m - 1) - peak, nil
}

func blockSum(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v
	}

	return sum
}

func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}

	return size
}
