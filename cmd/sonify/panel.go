package main

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-sonify/freqmap"
	"github.com/cwbudde/algo-sonify/sonify"
	"github.com/cwbudde/algo-sonify/theme"
	"github.com/cwbudde/algo-sonify/waveform"
)

// action is what a key press asks the main loop to do beyond changing
// controls.
type action int

const (
	actionNone action = iota
	actionQuit
	actionToggleSound
)

// nudge is one parameter step bound to a lower/upper key pair.
type nudge struct {
	down, up byte
	name     string
	field    func(*sonify.Controls) *float64
	step     float64
	factor   bool // multiply/divide by step instead of adding
}

var nudges = []nudge{
	{'a', 'A', "amplitude", func(c *sonify.Controls) *float64 { return &c.Amplitude }, 0.1, false},
	{'f', 'F', "frequency", func(c *sonify.Controls) *float64 { return &c.Frequency }, 1.25, true},
	{'p', 'P', "setpoint", func(c *sonify.Controls) *float64 { return &c.Setpoint }, 10, false},
	{'w', 'W', "scroll", func(c *sonify.Controls) *float64 { return &c.ScrollSpeed }, 1, false},
	{'v', 'V', "volume", func(c *sonify.Controls) *float64 { return &c.MasterVolume }, 0.05, false},
	{'r', 'R', "reverb", func(c *sonify.Controls) *float64 { return &c.ReverbMix }, 0.05, false},
	{'c', 'C', "cutoff", func(c *sonify.Controls) *float64 { return &c.FilterCutoff }, 1.2, true},
	{'q', 'Q', "resonance", func(c *sonify.Controls) *float64 { return &c.FilterQ }, 0.5, false},
	{'h', 'H', "harmonics", func(c *sonify.Controls) *float64 { return &c.HarmonicAmount }, 0.05, false},
	{'d', 'D', "detune", func(c *sonify.Controls) *float64 { return &c.Detune }, 1, false},
}

// panel holds the user-facing state the keyboard edits.
type panel struct {
	controls sonify.Controls
	theme    theme.Theme
	message  string
}

func newPanel(c sonify.Controls, th theme.Theme) *panel {
	return &panel{controls: c.Sanitize(), theme: th}
}

// handleKey applies one key press.
func (p *panel) handleKey(b byte) action {
	switch {
	case b == 0x03 || b == 'x':
		return actionQuit
	case b == 's' || b == 'S':
		return actionToggleSound
	case b == 't' || b == 'T':
		p.theme = theme.Next(p.theme.Name)
		p.message = "theme " + p.theme.Name
		return actionNone
	case b == 'm' || b == 'M':
		if p.controls.Mapping == freqmap.Linear {
			p.controls.Mapping = freqmap.Exponential
		} else {
			p.controls.Mapping = freqmap.Linear
		}
		p.message = "mapping " + p.controls.Mapping.String()
		return actionNone
	case b >= '1' && int(b-'1') < waveform.NumTypes:
		t := waveform.Types()[b-'1']
		p.controls = p.controls.Toggle(t)
		state := "off"
		if p.controls.IsSelected(t) {
			state = "on"
		}
		p.message = fmt.Sprintf("%s %s", t.Label(), state)
		return actionNone
	}

	for _, n := range nudges {
		if b != n.down && b != n.up {
			continue
		}
		v := n.field(&p.controls)
		switch {
		case n.factor && b == n.up:
			*v *= n.step
		case n.factor:
			*v /= n.step
		case b == n.up:
			*v += n.step
		default:
			*v -= n.step
		}
		p.controls = p.controls.Sanitize()
		p.message = fmt.Sprintf("%s %.4g", n.name, *n.field(&p.controls))
		return actionNone
	}
	return actionNone
}

// help lists the key bindings.
func help() string {
	var sb strings.Builder
	sb.WriteString("keys: s sound  t theme  m mapping  1-5 signals  x quit\n")
	for _, n := range nudges {
		fmt.Fprintf(&sb, "  %c/%c %s\n", n.down, n.up, n.name)
	}
	return sb.String()
}
