package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-sonify/analysis"
	"github.com/cwbudde/algo-sonify/internal/wavio"
	"github.com/cwbudde/algo-sonify/irsynth"
)

func main() {
	cfg := irsynth.DefaultReverbConfig()

	output := flag.String("output", "reverb_ir.wav", "Output WAV path")
	flag.IntVar(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "Output sample rate")
	flag.Float64Var(&cfg.DurationS, "duration", cfg.DurationS, "IR length in seconds")
	flag.IntVar(&cfg.Channels, "channels", cfg.Channels, "Independent noise channels (1 or 2)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	flag.Float64Var(&cfg.DecayBase, "decay", cfg.DecayBase, "Decay factor per step, in (0,1)")
	flag.Float64Var(&cfg.EarlyS, "early", cfg.EarlyS, "Length of the early region (s)")
	flag.Float64Var(&cfg.EarlyStepS, "early-step", cfg.EarlyStepS, "Decay step in the early region (s)")
	flag.Float64Var(&cfg.TailStepS, "tail-step", cfg.TailStepS, "Decay step in the tail (s)")
	flag.Float64Var(&cfg.FadeOutS, "fade-out", cfg.FadeOutS, "Cosine fade-out at the end (s)")
	flag.Float64Var(&cfg.NormalizePeak, "normalize", cfg.NormalizePeak, "Peak normalization target (0 = off)")
	flag.Parse()

	left, right, err := irsynth.GenerateReverb(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ir-synth error: %v\n", err)
		os.Exit(1)
	}

	if err := wavio.WriteStereo(*output, left, right, cfg.SampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "wav write error: %v\n", err)
		os.Exit(1)
	}

	lv := analysis.Measure(interleave(left, right))
	fmt.Printf("Wrote %s\n", *output)
	fmt.Printf("SampleRate: %d Hz, Duration: %.3f s, Samples: %d\n", cfg.SampleRate, cfg.DurationS, len(left))
	fmt.Printf("Peak: %.6f (%.1f dBFS), RMS: %.6f (%.1f dBFS)\n", lv.Peak(), lv.PeakDB(), lv.RMS(), lv.RMSDB())
}

func interleave(left, right []float32) []float32 {
	out := make([]float32, 2*len(left))
	for i := range left {
		out[2*i] = left[i]
		out[2*i+1] = right[i]
	}
	return out
}
