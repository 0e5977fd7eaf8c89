package waveform

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
)

const (
	// periodicScale converts amplitude into chart units for the periodic and Perlin shapes.
	periodicScale = 100.0
	// perlinScale stretches the noise field along both axes.
	perlinScale = 0.1
	// randomSpread spreads per-call seeds across the noise lattice.
	randomSpread = 1000.0
)

// Input carries everything Evaluate needs for a single sample.
type Input struct {
	X         float64 // horizontal position in chart units
	Amplitude float64
	Frequency float64
	Phase     float64
	Time      float64
	Setpoint  float64

	// NoiseOffset is the per-signal offset into the Perlin field.
	NoiseOffset float64
	// NoiseSeed in [0,1) selects the Random sample. Callers redraw it on every call.
	NoiseSeed float64
}

// Evaluate maps a signal type and its parameters to a y-value. It has no side
// effects and always returns a finite number; callers clamp the result with Clamp.
func Evaluate(t Type, in Input, noise *Noise, halfHeight float64) float64 {
	var y float64
	switch t {
	case Sine:
		y = in.Amplitude * periodicScale * math.Sin(in.Frequency*in.X+in.Phase+in.Time)
	case Cosine:
		y = in.Amplitude * periodicScale * math.Cos(in.Frequency*in.X+in.Phase+in.Time)
	case Random:
		y = halfHeight * bipolar(noise.At(in.NoiseSeed*randomSpread, 0)) * in.Amplitude
	case Perlin:
		nx := in.NoiseOffset + in.X*in.Frequency*perlinScale
		ny := in.Time * perlinScale
		y = in.Amplitude * periodicScale * bipolar(noise.At(nx, ny))
	case Setpoint:
		y = in.Setpoint
	}
	if !isFinite(y) {
		return 0
	}
	return y
}

// Clamp limits v to [-halfHeight, halfHeight]. NaN maps to 0.
func Clamp(v, halfHeight float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return core.Clamp(v, -halfHeight, halfHeight)
}

// bipolar maps [0,1] onto [-1,1].
func bipolar(u float64) float64 {
	return u*2 - 1
}
