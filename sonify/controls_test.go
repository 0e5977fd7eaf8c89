package sonify

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-sonify/freqmap"
	"github.com/cwbudde/algo-sonify/waveform"
)

func TestSanitizeClampsRanges(t *testing.T) {
	c := Controls{
		Amplitude:      9,
		Frequency:      -1,
		Setpoint:       1000,
		ScrollSpeed:    0,
		Selected:       []waveform.Type{waveform.Perlin, waveform.Type(42), waveform.Perlin, waveform.Sine},
		MasterVolume:   2,
		ReverbMix:      -0.5,
		FilterCutoff:   5,
		FilterQ:        100,
		HarmonicAmount: math.NaN(),
		Detune:         math.Inf(1),
		Mapping:        freqmap.Mode(7),
	}.Sanitize()

	checks := []struct {
		name      string
		got, want float64
	}{
		{"amplitude", c.Amplitude, MaxAmplitude},
		{"frequency", c.Frequency, MinFrequency},
		{"setpoint", c.Setpoint, MaxSetpoint},
		{"scroll", c.ScrollSpeed, MinScrollSpeed},
		{"volume", c.MasterVolume, 1},
		{"reverb", c.ReverbMix, 0},
		{"cutoff", c.FilterCutoff, MinFilterCutoff},
		{"q", c.FilterQ, MaxFilterQ},
		{"harmonics", c.HarmonicAmount, DefaultControls().HarmonicAmount},
		{"detune", c.Detune, DefaultControls().Detune},
	}
	for _, tc := range checks {
		if tc.got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, tc.got, tc.want)
		}
	}
	if c.Mapping != freqmap.Linear {
		t.Fatalf("mapping: got %v", c.Mapping)
	}
	if len(c.Selected) != 2 || c.Selected[0] != waveform.Perlin || c.Selected[1] != waveform.Sine {
		t.Fatalf("selection: got %v", c.Selected)
	}
}

func TestSanitizeKeepsValidControls(t *testing.T) {
	d := DefaultControls()
	c := d.Sanitize()
	if c.Amplitude != d.Amplitude || c.FilterCutoff != d.FilterCutoff || len(c.Selected) != 1 {
		t.Fatalf("defaults changed: %+v", c)
	}
}

func TestToggle(t *testing.T) {
	c := DefaultControls()
	c2 := c.Toggle(waveform.Cosine)
	if !c2.IsSelected(waveform.Cosine) || !c2.IsSelected(waveform.Sine) {
		t.Fatalf("toggle on: %v", c2.Selected)
	}
	if c.IsSelected(waveform.Cosine) {
		t.Fatalf("toggle mutated the receiver")
	}
	c3 := c2.Toggle(waveform.Sine)
	if c3.IsSelected(waveform.Sine) || len(c3.Selected) != 1 {
		t.Fatalf("toggle off: %v", c3.Selected)
	}
}
