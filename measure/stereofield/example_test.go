package stereofield_test

import (
	"fmt"

	"github.com/cwbudde/algo-centered/dsp/signal"
	"github.com/cwbudde/algo-centered/measure/stereofield"
)

func ExampleAnalyze() {
	g := signal.NewGeneratorWithOptions(nil, signal.WithSeed(1))

	mono, err := g.WhiteNoise(0.5, 4800)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	left, right, err := signal.Pan(mono, 45)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	rep, err := stereofield.Analyze(left, right, 48000)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("balance:     %.2f\n", rep.Balance)
	fmt.Printf("correlation: %.2f\n", rep.Correlation)
	fmt.Printf("angle:       %.1f°\n", rep.DominantAngle)
	fmt.Printf("lag:         %d samples\n", rep.LagSamples)
	// Output:
	// balance:     0.00
	// correlation: 1.00
	// angle:       45.0°
	// lag:         0 samples
}
