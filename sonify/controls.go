package sonify

import (
	"math"
	"slices"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-sonify/freqmap"
	"github.com/cwbudde/algo-sonify/waveform"
)

// Control ranges; Sanitize clamps into these.
const (
	MinAmplitude    = 0.1
	MaxAmplitude    = 2.0
	MinFrequency    = 0.005
	MaxFrequency    = 5.0
	MinScrollSpeed  = 1.0
	MaxScrollSpeed  = 100.0
	MinSetpoint     = -200.0
	MaxSetpoint     = 200.0
	MinFilterCutoff = 20.0
	MaxFilterCutoff = 20000.0
	MinFilterQ      = 0.1
	MaxFilterQ      = 30.0
	MaxDetuneCents  = 100.0
)

// Controls is an immutable snapshot of every user control, taken once per
// tick. Nothing in the engine holds on to a Controls between ticks.
type Controls struct {
	Amplitude   float64
	Frequency   float64 // visual frequency
	Setpoint    float64
	ScrollSpeed float64

	// Selected lists the visible and audible signals in legend order.
	Selected []waveform.Type

	MasterVolume   float64 // 0..1
	ReverbMix      float64 // 0..1
	FilterCutoff   float64 // Hz
	FilterQ        float64
	HarmonicAmount float64 // 0..1
	Detune         float64 // cents, applied when voices are built

	Mapping freqmap.Mode
}

// DefaultControls returns the initial control positions.
func DefaultControls() Controls {
	return Controls{
		Amplitude:      1,
		Frequency:      0.02,
		Setpoint:       0,
		ScrollSpeed:    1,
		Selected:       []waveform.Type{waveform.Sine},
		MasterVolume:   0.5,
		ReverbMix:      0.3,
		FilterCutoff:   1000,
		FilterQ:        5,
		HarmonicAmount: 0.5,
		Detune:         5,
		Mapping:        freqmap.Linear,
	}
}

// Sanitize returns a copy with every value inside its range. Non-finite
// values fall back to the default; unknown and duplicate signal types are
// dropped from the selection.
func (c Controls) Sanitize() Controls {
	d := DefaultControls()
	c.Amplitude = clampOr(c.Amplitude, MinAmplitude, MaxAmplitude, d.Amplitude)
	c.Frequency = clampOr(c.Frequency, MinFrequency, MaxFrequency, d.Frequency)
	c.Setpoint = clampOr(c.Setpoint, MinSetpoint, MaxSetpoint, d.Setpoint)
	c.ScrollSpeed = clampOr(c.ScrollSpeed, MinScrollSpeed, MaxScrollSpeed, d.ScrollSpeed)
	c.MasterVolume = clampOr(c.MasterVolume, 0, 1, d.MasterVolume)
	c.ReverbMix = clampOr(c.ReverbMix, 0, 1, d.ReverbMix)
	c.FilterCutoff = clampOr(c.FilterCutoff, MinFilterCutoff, MaxFilterCutoff, d.FilterCutoff)
	c.FilterQ = clampOr(c.FilterQ, MinFilterQ, MaxFilterQ, d.FilterQ)
	c.HarmonicAmount = clampOr(c.HarmonicAmount, 0, 1, d.HarmonicAmount)
	c.Detune = clampOr(c.Detune, 0, MaxDetuneCents, d.Detune)
	if c.Mapping != freqmap.Linear && c.Mapping != freqmap.Exponential {
		c.Mapping = d.Mapping
	}

	sel := make([]waveform.Type, 0, len(c.Selected))
	for _, t := range c.Selected {
		if t.Valid() && !slices.Contains(sel, t) {
			sel = append(sel, t)
		}
	}
	c.Selected = sel
	return c
}

// IsSelected reports whether t is in the selection.
func (c Controls) IsSelected(t waveform.Type) bool {
	return slices.Contains(c.Selected, t)
}

// Toggle returns a copy with t added to or removed from the selection.
func (c Controls) Toggle(t waveform.Type) Controls {
	sel := slices.Clone(c.Selected)
	if i := slices.Index(sel, t); i >= 0 {
		sel = slices.Delete(sel, i, i+1)
	} else {
		sel = append(sel, t)
	}
	c.Selected = sel
	return c
}

func clampOr(v, lo, hi, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return core.Clamp(v, lo, hi)
}
