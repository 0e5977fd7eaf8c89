// Package irsynth builds the impulse responses fed to the reverb convolver.
package irsynth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-sonify/internal/wavio"
)

// ReverbConfig controls reverb IR synthesis.
//
// The envelope decays as DecayBase^(t/EarlyStepS) during the first EarlyS
// seconds and as DecayBase^(t/TailStepS) afterwards. The tail continues from
// the level reached at EarlyS, so the envelope has no step at the boundary.
type ReverbConfig struct {
	SampleRate int
	DurationS  float64
	Channels   int
	Seed       int64

	DecayBase  float64
	EarlyS     float64
	EarlyStepS float64 // faster decay of the early region
	TailStepS  float64

	FadeOutS      float64 // cosine fade-out at the end; 0 = no fade
	NormalizePeak float64 // 0 leaves the raw noise level (peak close to 1)
}

// DefaultReverbConfig returns the 3 second two-channel room.
func DefaultReverbConfig() ReverbConfig {
	return ReverbConfig{
		SampleRate: 48000,
		DurationS:  3.0,
		Channels:   2,
		Seed:       1,
		DecayBase:  0.95,
		EarlyS:     0.1,
		EarlyStepS: 0.02,
		TailStepS:  0.1,
	}
}

func (c *ReverbConfig) Validate() error {
	if c.SampleRate < 8000 {
		return fmt.Errorf("sample rate too low: %d", c.SampleRate)
	}
	if c.DurationS <= 0 {
		return fmt.Errorf("duration must be > 0")
	}
	if c.Channels != 1 && c.Channels != 2 {
		return fmt.Errorf("channels must be 1 or 2, got %d", c.Channels)
	}
	if c.DecayBase <= 0 || c.DecayBase >= 1 {
		return fmt.Errorf("decay base must be in (0,1)")
	}
	if c.EarlyS < 0 {
		return fmt.Errorf("early region must be >= 0")
	}
	if c.EarlyStepS <= 0 || c.TailStepS <= 0 {
		return fmt.Errorf("decay steps must be > 0")
	}
	if c.FadeOutS < 0 {
		return fmt.Errorf("fade out must be >= 0")
	}
	if c.NormalizePeak < 0 {
		return fmt.Errorf("normalize peak must be >= 0")
	}
	return nil
}

// Envelope returns the decay gain at t seconds.
func (c *ReverbConfig) Envelope(t float64) float64 {
	if t < c.EarlyS {
		return math.Pow(c.DecayBase, t/c.EarlyStepS)
	}
	atBoundary := math.Pow(c.DecayBase, c.EarlyS/c.EarlyStepS)
	return atBoundary * math.Pow(c.DecayBase, (t-c.EarlyS)/c.TailStepS)
}

// GenerateReverb synthesizes a stereo reverb IR: uniform noise in [-1,1)
// shaped by the two-stage envelope. A mono config returns identical channels.
func GenerateReverb(cfg ReverbConfig) ([]float32, []float32, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	n := int(math.Round(cfg.DurationS * float64(cfg.SampleRate)))
	if n < 1 {
		n = 1
	}
	left := make([]float64, n)
	right := make([]float64, n)

	rng := rand.New(rand.NewSource(cfg.Seed))
	for ch, buf := range [][]float64{left, right} {
		if ch == 1 && cfg.Channels == 1 {
			copy(right, left)
			break
		}
		for i := range buf {
			t := float64(i) / float64(cfg.SampleRate)
			buf[i] = (rng.Float64()*2 - 1) * cfg.Envelope(t)
		}
	}

	applyFadeOut(left, cfg.FadeOutS, cfg.SampleRate)
	applyFadeOut(right, cfg.FadeOutS, cfg.SampleRate)

	s := 1.0
	if cfg.NormalizePeak > 0 {
		peak := max(maxAbs(left), maxAbs(right), 1e-12)
		s = cfg.NormalizePeak / peak
	}
	outL := make([]float32, n)
	outR := make([]float32, n)
	for i := range n {
		outL[i] = float32(left[i] * s)
		outR[i] = float32(right[i] * s)
	}
	return outL, outR, nil
}

// LoadWAV reads a mono or stereo IR and resamples it to sampleRate.
func LoadWAV(path string, sampleRate int) ([]float32, []float32, error) {
	left, right, srcRate, err := wavio.ReadStereo(path)
	if err != nil {
		return nil, nil, err
	}
	left, err = wavio.Resample(left, srcRate, sampleRate)
	if err != nil {
		return nil, nil, fmt.Errorf("resample %s: %w", path, err)
	}
	right, err = wavio.Resample(right, srcRate, sampleRate)
	if err != nil {
		return nil, nil, fmt.Errorf("resample %s: %w", path, err)
	}
	return left, right, nil
}

func maxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		a := math.Abs(v)
		if a > m {
			m = a
		}
	}
	return m
}

// applyFadeOut applies a cosine fade-out to the last fadeS seconds of buf.
func applyFadeOut(buf []float64, fadeS float64, sampleRate int) {
	if fadeS <= 0 || len(buf) == 0 {
		return
	}
	fadeSamples := int(math.Round(fadeS * float64(sampleRate)))
	if fadeSamples > len(buf) {
		fadeSamples = len(buf)
	}
	start := len(buf) - fadeSamples
	for i := 0; i < fadeSamples; i++ {
		t := float64(i) / float64(fadeSamples) // 0..1
		gain := 0.5 * (1.0 + math.Cos(t*math.Pi))
		buf[start+i] *= gain
	}
}
