// Command centeredsim runs the center-correction engine over a
// generated off-center test signal and prints stereo-field
// measurements before and after correction.
//
// Usage:
//
//	centeredsim [flags]
//
// Examples:
//
//	centeredsim -pan 20
//	centeredsim -pan 70 -amount 50 -lookahead 10
//	centeredsim -noise -pan 10 -duration 2
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-centered/dsp/centered"
	"github.com/cwbudde/algo-centered/dsp/core"
	"github.com/cwbudde/algo-centered/dsp/signal"
	"github.com/cwbudde/algo-centered/measure/stereofield"
)

func main() {
	var (
		sampleRate = flag.Float64("samplerate", 48000, "sample rate in Hz")
		freq       = flag.Float64("freq", 440, "test tone frequency in Hz")
		pan        = flag.Float64("pan", 15, "source pan angle in degrees (0 left, 45 center, 90 right)")
		amount     = flag.Float64("amount", 100, "correction amount in percent")
		reaction   = flag.Float64("reaction", 5, "reaction time in ms")
		lookahead  = flag.Float64("lookahead", 5, "lookahead in ms")
		duration   = flag.Float64("duration", 1, "signal duration in seconds")
		blockSize  = flag.Int("block", 512, "processing block size in frames")
		useNoise   = flag.Bool("noise", false, "use white noise instead of a sine")
	)

	flag.Parse()

	if err := run(*sampleRate, *freq, *pan, *amount, *reaction, *lookahead, *duration, *blockSize, *useNoise); err != nil {
		fmt.Fprintln(os.Stderr, "centeredsim:", err)
		os.Exit(1)
	}
}

//nolint:funlen
func run(sampleRate, freq, pan, amount, reaction, lookahead, duration float64, blockSize int, useNoise bool) error {
	frames := int(sampleRate * duration)
	if frames <= 0 {
		return fmt.Errorf("duration too short: %f s", duration)
	}

	if blockSize <= 0 {
		return fmt.Errorf("block size must be > 0: %d", blockSize)
	}

	gen := signal.NewGenerator(core.WithSampleRate(sampleRate))

	var (
		left, right []float64
		err         error
	)

	if useNoise {
		left, right, err = gen.PannedNoise(0.5, pan, frames)
	} else {
		left, right, err = gen.PannedSine(freq, 0.5, pan, frames)
	}

	if err != nil {
		return err
	}

	pre, err := stereofield.Analyze(left, right, sampleRate)
	if err != nil {
		return err
	}

	var latency int

	engine, err := centered.New(sampleRate,
		centered.WithCorrectionAmount(amount),
		centered.WithReactionTime(reaction),
		centered.WithLookahead(lookahead),
		centered.WithLatencyCallback(func(samples int) { latency = samples }),
	)
	if err != nil {
		return err
	}

	engine.AttachDisplay()

	for start := 0; start < frames; start += blockSize {
		end := start + blockSize
		if end > frames {
			end = frames
		}

		if err := engine.ProcessStereoInPlace(left[start:end], right[start:end]); err != nil {
			return err
		}
	}

	// Skip the lookahead delay and the correction ramp-in so the post
	// report reflects the settled behavior.
	skip := latency + int(reaction/1000*sampleRate)
	if skip >= frames {
		skip = 0
	}

	post, err := stereofield.Analyze(left[skip:], right[skip:], sampleRate)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "\t%s\t%s\n", "pre", "post")
	fmt.Fprintf(w, "rms L (dB)\t%.2f\t%.2f\n", pre.RMSLeft_dB, post.RMSLeft_dB)
	fmt.Fprintf(w, "rms R (dB)\t%.2f\t%.2f\n", pre.RMSRight_dB, post.RMSRight_dB)
	fmt.Fprintf(w, "balance\t%+.3f\t%+.3f\n", pre.Balance, post.Balance)
	fmt.Fprintf(w, "correlation\t%+.3f\t%+.3f\n", pre.Correlation, post.Correlation)
	fmt.Fprintf(w, "angle (deg)\t%.2f\t%.2f\n", pre.DominantAngle, post.DominantAngle)

	if err := w.Flush(); err != nil {
		return err
	}

	preL, preR := engine.PrePeaks()
	postL, postR := engine.PostPeaks()

	fmt.Println()
	fmt.Printf("latency: %d samples (%.2f ms)\n", latency, float64(latency)/sampleRate*1000)
	fmt.Printf("correction angle: %.2f° (%.4f rad)\n",
		engine.CorrectionAngle()/math.Pi*180, engine.CorrectionAngle())
	fmt.Printf("peaks pre: L %.3f R %.3f, post: L %.3f R %.3f\n", preL, preR, postL, postR)

	return nil
}
