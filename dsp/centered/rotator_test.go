package centered

import (
	"math"
	"testing"
)

func TestRotatorIdentityAtZeroPan(t *testing.T) {
	r := NewRotator()

	samples := [][2]float64{{0.5, -0.25}, {1, 1}, {-0.7, 0.3}, {0, 0}}

	for _, s := range samples {
		l, rr := r.Process(s[0], s[1], 0)
		if l != s[0] || rr != s[1] {
			t.Fatalf("Process(%g, %g, 0) = (%g, %g), want input unchanged", s[0], s[1], l, rr)
		}
	}
}

func TestRotatorQuarterTurn(t *testing.T) {
	r := NewRotator()

	// +90°: (L, R) -> (-R, L).
	l, rr := r.Process(1, 0, math.Pi/2)
	if math.Abs(l) > 1e-12 || math.Abs(rr-1) > 1e-12 {
		t.Fatalf("quarter turn of (1,0) = (%g, %g), want (0, 1)", l, rr)
	}
}

func TestRotatorRecentersHardPan(t *testing.T) {
	r := NewRotator()

	// A hard-left frame rotated by +45° lands in-phase on the center.
	l, rr := r.Process(1, 0, 45*degToRad)

	want := math.Sqrt2 / 2
	if math.Abs(l-want) > 1e-12 || math.Abs(rr-want) > 1e-12 {
		t.Fatalf("hard left rotated 45° = (%g, %g), want (%g, %g)", l, rr, want, want)
	}

	// A hard-right frame rotated by −45° does the same.
	l, rr = r.Process(0, 1, -45*degToRad)
	if math.Abs(l-want) > 1e-12 || math.Abs(rr-want) > 1e-12 {
		t.Fatalf("hard right rotated -45° = (%g, %g), want (%g, %g)", l, rr, want, want)
	}
}

func TestRotatorPreservesEnergy(t *testing.T) {
	r := NewRotator()

	left, right := 0.8, -0.35
	inEnergy := left*left + right*right

	for _, pan := range []float64{-math.Pi / 2, -0.3, 0.1, 1.2} {
		l, rr := r.Process(left, right, pan)

		outEnergy := l*l + rr*rr
		if math.Abs(outEnergy-inEnergy) > 1e-12 {
			t.Fatalf("pan %g: energy %g != input energy %g", pan, outEnergy, inEnergy)
		}
	}
}

func TestRotatorPublishesPan(t *testing.T) {
	r := NewRotator()

	r.Process(0.1, 0.2, 0.75)

	if got := r.Pan(); got != 0.75 {
		t.Fatalf("Pan() = %g, want 0.75", got)
	}

	r.Reset()

	if got := r.Pan(); got != 0 {
		t.Fatalf("Pan() after Reset() = %g, want 0", got)
	}
}

func BenchmarkRotatorProcess(b *testing.B) {
	r := NewRotator()

	b.ReportAllocs()
	b.ResetTimer()

	var l, rr float64
	for i := 0; i < b.N; i++ {
		l, rr = r.Process(0.5, -0.5, 0.3)
	}

	_ = l
	_ = rr
}
