package waveform

import (
	"fmt"
	"math"
	"strings"
)

// Type identifies one of the closed set of signal shapes.
type Type int

const (
	Sine Type = iota
	Cosine
	Random
	Perlin
	Setpoint

	numTypes
)

// NumTypes is the number of known signal types.
const NumTypes = int(numTypes)

// Types returns all signal types in display order.
func Types() []Type {
	return []Type{Sine, Cosine, Random, Perlin, Setpoint}
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	return t >= Sine && t < numTypes
}

func (t Type) String() string {
	switch t {
	case Sine:
		return "Sine"
	case Cosine:
		return "Cosine"
	case Random:
		return "Random"
	case Perlin:
		return "Perlin"
	case Setpoint:
		return "Setpoint"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType resolves a type name case-insensitively.
func ParseType(name string) (Type, error) {
	for _, t := range Types() {
		if strings.EqualFold(strings.TrimSpace(name), t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown signal type %q", name)
}

// Label is the legend text shown for the signal.
func (t Type) Label() string {
	switch t {
	case Sine:
		return "Sine Wave"
	case Cosine:
		return "Cosine Wave"
	}
	return t.String()
}

// DefaultAmplitude returns the amplitude a fresh signal of type t starts with.
func (t Type) DefaultAmplitude() float64 {
	switch t {
	case Random:
		return 0.5
	case Perlin:
		return 0.7
	}
	return 1
}

// DefaultFrequency returns the visual frequency a fresh signal starts with.
func (t Type) DefaultFrequency() float64 {
	if t == Setpoint {
		return 0
	}
	return 0.02
}

// DefaultPhase returns the phase offset in radians. Cosine is shifted by pi/2.
func (t Type) DefaultPhase() float64 {
	if t == Cosine {
		return math.Pi / 2
	}
	return 0
}

// Opacity is the alpha (0..255) used when drawing the signal over the theme colour.
func (t Type) Opacity() uint8 {
	switch t {
	case Sine:
		return 255
	case Cosine:
		return 180
	case Random:
		return 160
	case Perlin:
		return 140
	case Setpoint:
		return 120
	}
	return 255
}
