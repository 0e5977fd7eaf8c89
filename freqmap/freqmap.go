// Package freqmap converts the visual frequency of a waveform into an audible
// pitch.
package freqmap

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects the mapping curve.
type Mode int

const (
	// Linear maps base + visual*multiplier.
	Linear Mode = iota
	// Exponential maps equal visual steps to equal pitch intervals.
	Exponential
)

func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Exponential:
		return "exponential"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode resolves "linear" or "exponential" (also "exp").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear", "lin":
		return Linear, nil
	case "exponential", "exp":
		return Exponential, nil
	}
	return Linear, fmt.Errorf("unknown frequency mapping %q", s)
}

// Config holds the constants of both curves.
type Config struct {
	BaseFrequency float64 // Hz at visual 0 (linear) or at MinVisual (exponential)
	Multiplier    float64 // Hz per visual unit, linear only

	MinVisual    float64
	MaxVisual    float64
	MaxFrequency float64 // Hz at MaxVisual, exponential only
}

// DefaultConfig is A3 with the slider range of the frequency control.
func DefaultConfig() Config {
	return Config{
		BaseFrequency: 220,
		Multiplier:    10000,
		MinVisual:     0.005,
		MaxVisual:     0.05,
		MaxFrequency:  880,
	}
}

// Validate reports configuration values that would make a curve degenerate.
func (c Config) Validate() error {
	if !(c.BaseFrequency > 0) || math.IsInf(c.BaseFrequency, 0) {
		return fmt.Errorf("base frequency must be > 0")
	}
	if math.IsNaN(c.Multiplier) || math.IsInf(c.Multiplier, 0) {
		return fmt.Errorf("multiplier must be finite")
	}
	if !(c.MaxVisual > c.MinVisual) {
		return fmt.Errorf("max visual frequency must be > min visual frequency")
	}
	if !(c.MaxFrequency > 0) || math.IsInf(c.MaxFrequency, 0) {
		return fmt.Errorf("max frequency must be > 0")
	}
	return nil
}

// Mapper turns a visual frequency into Hz.
type Mapper interface {
	Map(visual float64) float64
}

// New returns the strategy for mode.
func New(mode Mode, cfg Config) Mapper {
	if mode == Exponential {
		return ExponentialCurve{Config: cfg}
	}
	return LinearCurve{Config: cfg}
}

// LinearCurve is the linear strategy.
type LinearCurve struct{ Config }

func (m LinearCurve) Map(visual float64) float64 {
	if math.IsNaN(visual) || math.IsInf(visual, 0) {
		visual = 0
	}
	return m.BaseFrequency + visual*m.Multiplier
}

// ExponentialCurve is the exponential strategy. The visual value is normalized into
// [MinVisual, MaxVisual] and clamped to [0,1] first, so the boundaries map to
// exactly BaseFrequency and MaxFrequency.
type ExponentialCurve struct{ Config }

func (m ExponentialCurve) Map(visual float64) float64 {
	span := m.MaxVisual - m.MinVisual
	if !(span > 0) || math.IsNaN(visual) {
		return m.BaseFrequency
	}
	norm := (visual - m.MinVisual) / span
	switch {
	case norm <= 0:
		return m.BaseFrequency
	case norm >= 1:
		return m.MaxFrequency
	}
	return m.BaseFrequency * math.Pow(m.MaxFrequency/m.BaseFrequency, norm)
}
