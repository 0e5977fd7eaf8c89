package sonify

import "math/rand"

// Harmonic is one extra oscillator layered under a voice's fundamental.
type Harmonic struct {
	Ratio        float64 // frequency multiple of the fundamental
	Spread       float64 // fixed draw in [-1, 1], scaled by the detune control
	RelativeGain float64
}

// Level is the partial's gain for a given harmonic amount (0..1).
func (h Harmonic) Level(amount float64) float64 {
	return h.RelativeGain * amount
}

// Detune is the partial's detune in cents for a detune spread in cents.
func (h Harmonic) Detune(spread float64) float64 {
	return h.Spread * spread
}

const (
	subRatio = 0.5
	subGain  = 0.5
)

// BuildHarmonics lays out a half-frequency sub voice followed by up to
// three upper partials at ratios 2, 3 and 4. Upper partials get a random
// spread so the detune control can move them live, and a gain of 1/ratio.
func BuildHarmonics(maxPartials int, rng *rand.Rand) []Harmonic {
	maxPartials = min(max(maxPartials, 0), 3)
	out := make([]Harmonic, 0, 1+maxPartials)
	out = append(out, Harmonic{Ratio: subRatio, RelativeGain: subGain})
	for i := range maxPartials {
		ratio := float64(i + 2)
		s := 0.0
		if rng != nil {
			s = rng.Float64()*2 - 1
		}
		out = append(out, Harmonic{
			Ratio:        ratio,
			Spread:       s,
			RelativeGain: 1 / ratio,
		})
	}
	return out
}
