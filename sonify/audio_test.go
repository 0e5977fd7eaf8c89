package sonify_test

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-sonify/analysis"
	"github.com/cwbudde/algo-sonify/sonify"
	"github.com/cwbudde/algo-sonify/synth"
	"github.com/cwbudde/algo-sonify/waveform"
)

const testRate = 48000

func newSynthEngine(t *testing.T) (*sonify.Engine, *synth.Context) {
	t.Helper()
	var ctx *synth.Context
	factory := func() (sonify.Context, error) {
		c, err := synth.NewContext(testRate)
		if err != nil {
			return nil, err
		}
		ctx = c
		return c, nil
	}
	cfg := sonify.DefaultConfig()
	cfg.Reverb.DurationS = 0.2
	e, err := sonify.NewEngine(cfg, factory)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if err := e.SetSound(true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	return e, ctx
}

func TestSineVoiceSoundsAtMappedPitch(t *testing.T) {
	e, ctx := newSynthEngine(t)
	defer e.Close()

	c := sonify.DefaultControls()
	c.HarmonicAmount = 0
	c.ReverbMix = 0
	e.Step(c, nil)

	ctx.Process(testRate / 2)
	out := ctx.Process(8192)

	a, err := analysis.NewAnalyzer(8192, testRate)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	left := make([]float64, 8192)
	for i := range left {
		left[i] = float64(out[2*i])
	}
	s, err := a.Spectrum(left)
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	want := e.Signal(waveform.Sine).AudioFrequency()
	if got := s.PeakFrequency(100, 2000); math.Abs(got-want) > 5 {
		t.Fatalf("peak: got %.1f Hz want %.1f Hz", got, want)
	}
	if lv := analysis.Measure(out); lv.Peak() <= 0.01 {
		t.Fatalf("output too quiet: %+v", lv)
	}
}

func TestDisabledSoundIsSilent(t *testing.T) {
	e, ctx := newSynthEngine(t)
	defer e.Close()

	e.Step(sonify.DefaultControls(), nil)
	ctx.Process(testRate / 4)
	if err := e.SetSound(false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	// Let the reverb tail die out.
	ctx.Process(testRate / 2)
	if lv := analysis.Measure(ctx.Process(4096)); lv.Peak() > 1e-6 {
		t.Fatalf("disabled output peak %v", lv.Peak())
	}
}

func TestDeselectFadesOut(t *testing.T) {
	e, ctx := newSynthEngine(t)
	defer e.Close()

	c := sonify.DefaultControls()
	c.ReverbMix = 0
	e.Step(c, nil)
	ctx.Process(testRate / 4)
	loud := analysis.Measure(ctx.Process(4096)).RMS()

	c.Selected = nil
	e.Step(c, nil)
	ctx.Process(testRate) // ten transition time constants
	quiet := analysis.Measure(ctx.Process(4096)).RMS()

	if loud <= 0 || quiet > loud*1e-3 {
		t.Fatalf("rms before %v after %v", loud, quiet)
	}
	if e.VoiceCount() != waveform.NumTypes {
		t.Fatalf("voices torn down on deselect: %d", e.VoiceCount())
	}
}
