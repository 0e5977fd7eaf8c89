// Package theme holds the chart colour themes.
package theme

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-sonify/waveform"
)

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// RGBA is RGB with alpha.
type RGBA struct {
	RGB
	A uint8
}

// Theme colours the chart background, grid lines, text and signal traces.
type Theme struct {
	Name   string
	BG     RGB
	Grid   RGB
	Text   RGB
	Signal RGB
}

var themes = []Theme{
	{Name: "Fallout", Grid: RGB{0, 95, 0}, Text: RGB{0, 238, 0}, Signal: RGB{0, 238, 0}},
	{Name: "Red", Grid: RGB{95, 0, 0}, Text: RGB{238, 0, 0}, Signal: RGB{238, 0, 0}},
	{Name: "Blue", Grid: RGB{0, 0, 95}, Text: RGB{0, 0, 238}, Signal: RGB{0, 0, 238}},
	{Name: "Amber", Grid: RGB{102, 51, 0}, Text: RGB{255, 191, 0}, Signal: RGB{255, 191, 0}},
	{Name: "Cyan", Grid: RGB{0, 95, 95}, Text: RGB{0, 255, 255}, Signal: RGB{0, 255, 255}},
	{Name: "Purple", Grid: RGB{55, 0, 55}, Text: RGB{138, 43, 226}, Signal: RGB{138, 43, 226}},
}

// Default is the theme used when none is configured.
const Default = "Fallout"

// All returns every theme in cycling order.
func All() []Theme {
	return append([]Theme(nil), themes...)
}

// Names lists the theme names in cycling order.
func Names() []string {
	out := make([]string, len(themes))
	for i, t := range themes {
		out[i] = t.Name
	}
	return out
}

// ByName looks a theme up case-insensitively.
func ByName(name string) (Theme, error) {
	for _, t := range themes {
		if strings.EqualFold(strings.TrimSpace(name), t.Name) {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("unknown theme %q (have %s)", name, strings.Join(Names(), ", "))
}

// Next returns the theme after name, wrapping around. An unknown name
// yields the first theme.
func Next(name string) Theme {
	for i, t := range themes {
		if strings.EqualFold(name, t.Name) {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

// SignalColor is the trace colour of a signal type: the theme's signal
// colour at the type's opacity.
func (t Theme) SignalColor(typ waveform.Type) RGBA {
	return RGBA{RGB: t.Signal, A: typ.Opacity()}
}

// Blend mixes c over bg using its alpha, for outputs without transparency.
func (c RGBA) Blend(bg RGB) RGB {
	mix := func(fg, bg uint8) uint8 {
		return uint8((int(fg)*int(c.A) + int(bg)*(255-int(c.A)) + 127) / 255)
	}
	return RGB{mix(c.R, bg.R), mix(c.G, bg.G), mix(c.B, bg.B)}
}
