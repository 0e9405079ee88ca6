package centered

import "math"

const (
	// baselineAngleDeg is the angle substituted for silent frames. It
	// doubles as the estimator's and smoother's reset value, so a reset
	// followed by silence produces no correction movement at all.
	baselineAngleDeg = -45.0

	// centerAngleDeg is the pan angle of a perfectly centered signal:
	// atan(|R|/|L|) with equal channels.
	centerAngleDeg = 45.0

	degToRad = math.Pi / 180.0
)

// PanAngle returns the pan angle of one stereo frame in degrees.
//
// The angle is atan(|right| / |left|), so a left-only frame maps to 0°,
// equal channels to 45°, and a right-only frame to 90°. A frame with
// both channels exactly zero maps to the −45° baseline instead of the
// 0/0 NaN the quotient would produce.
func PanAngle(left, right float64) float64 {
	if left == 0 && right == 0 {
		return baselineAngleDeg
	}

	return math.Atan(math.Abs(right)/math.Abs(left)) / degToRad
}

// Estimator produces one pan-angle estimate per processed block using
// an online running average, so it needs O(1) memory regardless of
// block or lookahead length.
//
// Feed frames between Begin and End, or use EstimateBlock for paired
// slices. NaN angles (from NaN input samples) are filtered out and do
// not participate in the average. A block with zero valid frames
// retains the previous block's estimate rather than dividing by zero.
type Estimator struct {
	estimate float64

	avg   float64
	count int
}

// NewEstimator returns an estimator holding the −45° baseline.
func NewEstimator() *Estimator {
	return &Estimator{estimate: baselineAngleDeg}
}

// Begin starts the accumulation for a new block.
func (e *Estimator) Begin() {
	e.avg = 0
	e.count = 0
}

// Observe folds one frame into the running average.
//
// The recurrence avg' = fma(avg, n−1, angle) / n is the walking-average
// form; no intermediate sum is kept, so nothing can overflow even for
// arbitrarily long blocks.
func (e *Estimator) Observe(left, right float64) {
	angle := PanAngle(left, right)
	if math.IsNaN(angle) {
		return
	}

	e.count++
	e.avg = math.FMA(e.avg, float64(e.count-1), angle) / float64(e.count)
}

// End commits the accumulated average and returns the block estimate in
// degrees. With zero valid frames the previous estimate is returned
// unchanged.
func (e *Estimator) End() float64 {
	if e.count > 0 {
		e.estimate = e.avg
	}

	return e.estimate
}

// EstimateBlock runs Begin/Observe/End over paired channel slices and
// returns the block estimate in degrees. Both slices must have the same
// length; extra samples in the longer slice are ignored.
func (e *Estimator) EstimateBlock(left, right []float64) float64 {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}

	e.Begin()

	for i := 0; i < n; i++ {
		e.Observe(left[i], right[i])
	}

	return e.End()
}

// Estimate returns the most recent committed estimate in degrees.
func (e *Estimator) Estimate() float64 {
	return e.estimate
}

// Reset restores the −45° baseline estimate.
func (e *Estimator) Reset() {
	e.estimate = baselineAngleDeg
	e.avg = 0
	e.count = 0
}
