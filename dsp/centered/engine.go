package centered

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-centered/dsp/core"
)

const (
	defaultCorrectionAmount = 100.0
	defaultReactionTimeMs   = 5.0
	defaultLookaheadMs      = 5.0

	minCorrectionAmount = 0.0
	maxCorrectionAmount = 100.0

	minReactionTimeMs = 0.0
	maxReactionTimeMs = 25.0

	minLookaheadMs = 0.0
	maxLookaheadMs = 10.0
)

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("sample rate must be > 0 and finite: %f", sampleRate)
	}

	return nil
}

// EngineOption mutates engine construction parameters.
type EngineOption func(*engineConfig) error

type engineConfig struct {
	amount      float64
	reactionMs  float64
	lookaheadMs float64
	latencyFn   func(samples int)
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		amount:      defaultCorrectionAmount,
		reactionMs:  defaultReactionTimeMs,
		lookaheadMs: defaultLookaheadMs,
	}
}

// WithCorrectionAmount sets the correction amount in percent.
// 0 passes the signal through, 100 applies the full counter-rotation.
func WithCorrectionAmount(percent float64) EngineOption {
	return func(cfg *engineConfig) error {
		if err := validateCorrectionAmount(percent); err != nil {
			return err
		}

		cfg.amount = percent

		return nil
	}
}

// WithReactionTime sets the correction ramp time in milliseconds.
func WithReactionTime(ms float64) EngineOption {
	return func(cfg *engineConfig) error {
		if err := validateReactionTime(ms); err != nil {
			return err
		}

		cfg.reactionMs = ms

		return nil
	}
}

// WithLookahead sets the lookahead time in milliseconds. The added
// delay is reported through the latency callback.
func WithLookahead(ms float64) EngineOption {
	return func(cfg *engineConfig) error {
		if err := validateLookahead(ms); err != nil {
			return err
		}

		cfg.lookaheadMs = ms

		return nil
	}
}

// WithLatencyCallback registers a function invoked with the engine's
// latency in samples at construction and whenever it changes, so a
// host can keep its delay compensation in step with the lookahead
// buffer. The callback runs on the control path, never per sample.
func WithLatencyCallback(fn func(samples int)) EngineOption {
	return func(cfg *engineConfig) error {
		cfg.latencyFn = fn

		return nil
	}
}

func validateCorrectionAmount(percent float64) error {
	if percent < minCorrectionAmount || percent > maxCorrectionAmount ||
		math.IsNaN(percent) || math.IsInf(percent, 0) {
		return fmt.Errorf("correction amount must be in [%g, %g]: %f",
			minCorrectionAmount, maxCorrectionAmount, percent)
	}

	return nil
}

func validateReactionTime(ms float64) error {
	if ms < minReactionTimeMs || ms > maxReactionTimeMs ||
		math.IsNaN(ms) || math.IsInf(ms, 0) {
		return fmt.Errorf("reaction time must be in [%g, %g] ms: %f",
			minReactionTimeMs, maxReactionTimeMs, ms)
	}

	return nil
}

func validateLookahead(ms float64) error {
	if ms < minLookaheadMs || ms > maxLookaheadMs ||
		math.IsNaN(ms) || math.IsInf(ms, 0) {
		return fmt.Errorf("lookahead must be in [%g, %g] ms: %f",
			minLookaheadMs, maxLookaheadMs, ms)
	}

	return nil
}

// Engine is the stereo center-correction pipeline.
//
// One audio thread drives ProcessStereoInPlace or
// ProcessInterleavedInPlace block by block. Parameter setters and Reset
// belong to the control path: call them between blocks, not
// concurrently with processing. Telemetry accessors (CorrectionAngle,
// PrePeaks, PostPeaks, scope snapshots) are safe from any goroutine.
//
// This processor is stereo, real-time safe, and not thread-safe beyond
// the telemetry surface described above.
type Engine struct {
	sampleRate  float64
	amount      float64
	reactionMs  float64
	lookaheadMs float64
	lookSamples int

	estimator *Estimator
	smoother  *Smoother
	rotator   *Rotator
	line      *lookaheadLine

	prePeak  *PeakFollower
	postPeak *PeakFollower

	preScope  *Scope
	postScope *Scope

	displayOpen atomic.Bool
	latencyFn   func(samples int)

	scratchL []float64
	scratchR []float64
}

// New creates an engine with production defaults and optional
// overrides.
func New(sampleRate float64, opts ...EngineOption) (*Engine, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("engine %w", err)
	}

	cfg := defaultEngineConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	smoother, err := NewSmoother(sampleRate)
	if err != nil {
		return nil, err
	}

	prePeak, err := NewPeakFollower(sampleRate)
	if err != nil {
		return nil, err
	}

	postPeak, err := NewPeakFollower(sampleRate)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		sampleRate:  sampleRate,
		amount:      cfg.amount,
		reactionMs:  cfg.reactionMs,
		lookaheadMs: cfg.lookaheadMs,
		estimator:   NewEstimator(),
		smoother:    smoother,
		rotator:     NewRotator(),
		line:        newLookaheadLine(maxLookaheadSamples(sampleRate)),
		prePeak:     prePeak,
		postPeak:    postPeak,
		preScope:    NewScope(),
		postScope:   NewScope(),
		latencyFn:   cfg.latencyFn,
	}

	e.lookSamples = lookaheadSamples(sampleRate, e.lookaheadMs)
	e.line.setLength(e.lookSamples)
	e.reportLatency()

	return e, nil
}

func lookaheadSamples(sampleRate, ms float64) int {
	return int(math.Round(sampleRate * ms / 1000.0))
}

func maxLookaheadSamples(sampleRate float64) int {
	return lookaheadSamples(sampleRate, maxLookaheadMs)
}

// SetSampleRate updates the sample rate, recomputing the peak decay
// weights, the smoother step derivation, and the lookahead allocation.
// The reported latency follows the new sample count. Control path only.
func (e *Engine) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return fmt.Errorf("engine %w", err)
	}

	if err := e.smoother.SetSampleRate(sampleRate); err != nil {
		return err
	}

	if err := e.prePeak.SetSampleRate(sampleRate); err != nil {
		return err
	}

	if err := e.postPeak.SetSampleRate(sampleRate); err != nil {
		return err
	}

	e.sampleRate = sampleRate
	e.line = newLookaheadLine(maxLookaheadSamples(sampleRate))
	e.applyLookahead()

	return nil
}

// SetCorrectionAmount sets the correction amount in percent.
func (e *Engine) SetCorrectionAmount(percent float64) error {
	if err := validateCorrectionAmount(percent); err != nil {
		return err
	}

	e.amount = percent

	return nil
}

// SetReactionTime sets the correction ramp time in milliseconds.
// It takes effect at the next block's retarget.
func (e *Engine) SetReactionTime(ms float64) error {
	if err := validateReactionTime(ms); err != nil {
		return err
	}

	e.reactionMs = ms

	return nil
}

// SetLookahead sets the lookahead time in milliseconds. The delay ring
// is re-lengthed within its fixed allocation and the new latency is
// reported before the call returns, so ring capacity and reported
// latency can never diverge. Control path only.
func (e *Engine) SetLookahead(ms float64) error {
	if err := validateLookahead(ms); err != nil {
		return err
	}

	e.lookaheadMs = ms
	e.applyLookahead()

	return nil
}

func (e *Engine) applyLookahead() {
	samples := lookaheadSamples(e.sampleRate, e.lookaheadMs)
	if samples == e.lookSamples && samples == e.line.len() {
		return
	}

	e.lookSamples = samples
	e.line.setLength(samples)
	e.reportLatency()
}

func (e *Engine) reportLatency() {
	if e.latencyFn != nil {
		e.latencyFn(e.lookSamples)
	}
}

// CorrectionAmount returns the correction amount in percent.
func (e *Engine) CorrectionAmount() float64 { return e.amount }

// ReactionTime returns the ramp time in milliseconds.
func (e *Engine) ReactionTime() float64 { return e.reactionMs }

// Lookahead returns the lookahead time in milliseconds.
func (e *Engine) Lookahead() float64 { return e.lookaheadMs }

// SampleRate returns the sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Latency returns the engine's current delay in samples. It always
// equals the lookahead ring's length.
func (e *Engine) Latency() int { return e.lookSamples }

// AttachDisplay marks a display consumer as present. While attached,
// the engine feeds the scope rings and peak followers each block.
// Safe to call from any goroutine.
func (e *Engine) AttachDisplay() { e.displayOpen.Store(true) }

// DetachDisplay marks the display as closed; scope and peak writes are
// skipped entirely until it reattaches.
func (e *Engine) DetachDisplay() { e.displayOpen.Store(false) }

// DisplayAttached reports whether a display consumer is attached.
func (e *Engine) DisplayAttached() bool { return e.displayOpen.Load() }

// CorrectionAngle returns the instantaneous rotation angle of the most
// recent frame, in radians. Safe to call from any goroutine.
func (e *Engine) CorrectionAngle() float64 { return e.rotator.Pan() }

// PrePeaks returns the decayed input peak magnitudes.
func (e *Engine) PrePeaks() (left, right float64) { return e.prePeak.Levels() }

// PostPeaks returns the decayed output peak magnitudes.
func (e *Engine) PostPeaks() (left, right float64) { return e.postPeak.Levels() }

// PreScope returns the ring of recent input frames.
func (e *Engine) PreScope() *Scope { return e.preScope }

// PostScope returns the ring of recent output frames.
func (e *Engine) PostScope() *Scope { return e.postScope }

// Reset restores the stream-start state: smoother and estimator at the
// −45° baseline, peaks and scopes cleared, lookahead ring silent.
// Control path only.
func (e *Engine) Reset() {
	e.estimator.Reset()
	e.smoother.Reset(baselineAngleDeg)
	e.rotator.Reset()
	e.line.clear()
	e.prePeak.Reset()
	e.postPeak.Reset()
	e.preScope.Reset()
	e.postScope.Reset()
}

// ProcessStereoInPlace runs one block through the pipeline, replacing
// both buffers with the corrected signal. Both buffers must have the
// same length. With lookahead active the output is delayed by
// Latency() samples.
func (e *Engine) ProcessStereoInPlace(left, right []float64) error {
	if len(left) != len(right) {
		return fmt.Errorf("engine: left and right buffers must have equal length: %d != %d",
			len(left), len(right))
	}

	// Polled once per block; mid-block attach waits for the next block.
	visible := e.displayOpen.Load()

	if visible {
		for i := range left {
			e.preScope.Write(left[i], right[i])
			e.prePeak.Observe(left[i], right[i])
		}
	}

	if e.lookSamples > 0 {
		for i := range left {
			left[i], right[i] = e.line.process(left[i], right[i])
		}

		// The ring now holds the newest frames, one lookahead ahead of
		// the delayed program path the rotator is about to consume.
		e.estimator.Begin()
		e.line.visit(e.estimator.Observe)
		e.smoother.SetTarget(e.estimator.End(), e.reactionMs)
	} else {
		e.smoother.SetTarget(e.estimator.EstimateBlock(left, right), e.reactionMs)
	}

	gain := e.amount / 100.0

	for i := range left {
		pan := (centerAngleDeg - e.smoother.Next()) * degToRad * gain
		left[i], right[i] = e.rotator.Process(left[i], right[i], pan)
	}

	if visible {
		for i := range left {
			e.postScope.Write(left[i], right[i])
			e.postPeak.Observe(left[i], right[i])
		}
	}

	return nil
}

// ProcessInterleavedInPlace runs one interleaved stereo block
// (L, R, L, R, ...) through the pipeline in place. The buffer length
// must be even. Scratch buffers are reused across calls, so in steady
// state this allocates nothing.
func (e *Engine) ProcessInterleavedInPlace(buf []float64) error {
	if len(buf)%2 != 0 {
		return fmt.Errorf("engine: interleaved buffer length must be even: %d", len(buf))
	}

	frames := len(buf) / 2
	e.scratchL = core.EnsureLen(e.scratchL, frames)
	e.scratchR = core.EnsureLen(e.scratchR, frames)

	for i := 0; i < frames; i++ {
		e.scratchL[i] = buf[2*i]
		e.scratchR[i] = buf[2*i+1]
	}

	if err := e.ProcessStereoInPlace(e.scratchL, e.scratchR); err != nil {
		return err
	}

	for i := 0; i < frames; i++ {
		buf[2*i] = e.scratchL[i]
		buf[2*i+1] = e.scratchR[i]
	}

	return nil
}
