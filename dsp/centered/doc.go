// Package centered implements a real-time stereo center-correction
// engine.
//
// The engine estimates how far a stereo signal's energy is skewed away
// from the center of the stereo field and rotates the left/right pair
// so the image re-centers. Per block it runs: pre-correction peak and
// goniometer taps, an optional lookahead delay, a running-average pan
// angle estimate, a linear correction smoother stepped once per sample,
// and the rotation itself, followed by post-correction taps.
//
// Included components:
//   - Engine: the block pipeline with host-facing parameters and
//     latency reporting.
//   - Estimator: online running-average pan angle estimation.
//   - Smoother: linear angle ramp with per-block retargeting.
//   - Rotator: per-sample 2D rotation with atomic angle publication.
//   - PeakFollower: decaying per-channel peak metering.
//   - Scope: fixed-capacity lock-free ring of recent stereo frames.
//
// The per-sample path never blocks, locks, or allocates. Telemetry
// (peaks, scope frames, the instantaneous correction angle) crosses to
// a display consumer through atomic scalar cells only; readers may lag
// by up to one block, which is the intended contract for display data.
package centered
