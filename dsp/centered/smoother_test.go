package centered

import (
	"math"
	"testing"
)

func TestNewSmootherValidatesSampleRate(t *testing.T) {
	for _, sr := range []float64{0, -48000, math.NaN(), math.Inf(1)} {
		if _, err := NewSmoother(sr); err == nil {
			t.Fatalf("NewSmoother(%g) expected error, got nil", sr)
		}
	}
}

func TestSmootherInitialBaseline(t *testing.T) {
	s, err := NewSmoother(48000)
	if err != nil {
		t.Fatalf("NewSmoother() error = %v", err)
	}

	if got := s.Value(); got != -45 {
		t.Fatalf("initial Value() = %g, want -45", got)
	}

	if got := s.Next(); got != -45 {
		t.Fatalf("Next() with no target = %g, want -45", got)
	}
}

func TestSmootherReachesTargetExactly(t *testing.T) {
	const (
		sampleRate = 48000.0
		rampMs     = 5.0
	)

	s, err := NewSmoother(sampleRate)
	if err != nil {
		t.Fatalf("NewSmoother() error = %v", err)
	}

	s.SetTarget(30, rampMs)

	steps := int(math.Round(rampMs / 1000 * sampleRate))

	var got float64
	for i := 0; i < steps; i++ {
		got = s.Next()
	}

	if math.Abs(got-30) > 1e-5 {
		t.Fatalf("value after %d steps = %g, want 30", steps, got)
	}

	// Further calls hold the target.
	if held := s.Next(); held != 30 {
		t.Fatalf("held value = %g, want 30", held)
	}
}

func TestSmootherMonotonicNoOvershoot(t *testing.T) {
	s, err := NewSmoother(44100)
	if err != nil {
		t.Fatalf("NewSmoother() error = %v", err)
	}

	s.Reset(0)
	s.SetTarget(90, 10)

	prev := s.Value()
	for i := 0; i < 2000; i++ {
		v := s.Next()
		if v < prev {
			t.Fatalf("step %d: value %g decreased below %g while ramping up", i, v, prev)
		}

		if v > 90 {
			t.Fatalf("step %d: value %g overshot target 90", i, v)
		}

		prev = v
	}

	if prev != 90 {
		t.Fatalf("final value = %g, want 90", prev)
	}
}

func TestSmootherDownwardRamp(t *testing.T) {
	s, err := NewSmoother(48000)
	if err != nil {
		t.Fatalf("NewSmoother() error = %v", err)
	}

	s.Reset(45)
	s.SetTarget(-45, 1)

	prev := s.Value()
	for i := 0; i < 100; i++ {
		v := s.Next()
		if v > prev {
			t.Fatalf("step %d: value %g increased above %g while ramping down", i, v, prev)
		}

		prev = v
	}

	if prev != -45 {
		t.Fatalf("final value = %g, want -45", prev)
	}
}

func TestSmootherZeroRampJumps(t *testing.T) {
	s, err := NewSmoother(48000)
	if err != nil {
		t.Fatalf("NewSmoother() error = %v", err)
	}

	s.SetTarget(15, 0)

	if got := s.Value(); got != 15 {
		t.Fatalf("Value() after zero-length ramp = %g, want 15", got)
	}
}

func TestSmootherRetargetMidRamp(t *testing.T) {
	s, err := NewSmoother(48000)
	if err != nil {
		t.Fatalf("NewSmoother() error = %v", err)
	}

	s.Reset(0)
	s.SetTarget(90, 10)

	for i := 0; i < 100; i++ {
		s.Next()
	}

	mid := s.Value()
	s.SetTarget(-10, 1)

	steps := int(math.Round(1.0 / 1000 * 48000))
	var got float64
	for i := 0; i < steps; i++ {
		got = s.Next()
	}

	if math.Abs(got - -10) > 1e-5 {
		t.Fatalf("value after retarget = %g, want -10 (retarget started from %g)", got, mid)
	}

	if got := s.Target(); got != -10 {
		t.Fatalf("Target() = %g, want -10", got)
	}
}

func TestSmootherReset(t *testing.T) {
	s, err := NewSmoother(48000)
	if err != nil {
		t.Fatalf("NewSmoother() error = %v", err)
	}

	s.SetTarget(60, 25)
	s.Next()

	s.Reset(-45)

	if got := s.Value(); got != -45 {
		t.Fatalf("Value() after Reset() = %g, want -45", got)
	}

	if got := s.Next(); got != -45 {
		t.Fatalf("Next() after Reset() = %g, want -45 (ramp must be cancelled)", got)
	}
}
