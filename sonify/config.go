package sonify

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-sonify/freqmap"
	"github.com/cwbudde/algo-sonify/irsynth"
)

// SelectionPolicy decides what a selection change does to live voices.
type SelectionPolicy int

const (
	// GateOnSelect keeps every voice running and ramps the gain of
	// deselected ones to zero.
	GateOnSelect SelectionPolicy = iota
	// RebuildOnSelect stops and recreates every voice whenever the
	// selection changes. Unaffected voices restart too, which is audible.
	RebuildOnSelect
)

func (p SelectionPolicy) String() string {
	if p == RebuildOnSelect {
		return "rebuild"
	}
	return "gate"
}

// ParseSelectionPolicy resolves "gate" or "rebuild".
func ParseSelectionPolicy(s string) (SelectionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gate":
		return GateOnSelect, nil
	case "rebuild":
		return RebuildOnSelect, nil
	}
	return GateOnSelect, fmt.Errorf("unknown selection policy %q", s)
}

// View selects what a frame's traces show.
type View int

const (
	// ViewScroll draws each signal's scroll history.
	ViewScroll View = iota
	// ViewSweep draws the full-width curve at the signal's current time.
	ViewSweep
)

func (v View) String() string {
	if v == ViewSweep {
		return "sweep"
	}
	return "scroll"
}

// ParseView resolves "scroll" or "sweep".
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "scroll":
		return ViewScroll, nil
	case "sweep":
		return ViewSweep, nil
	}
	return ViewScroll, fmt.Errorf("unknown view %q", s)
}

// CompressorSettings are the bus compressor parameters.
type CompressorSettings struct {
	ThresholdDB float64
	KneeDB      float64
	Ratio       float64
	AttackS     float64
	ReleaseS    float64
}

// Config is fixed for the lifetime of an Engine.
type Config struct {
	ChartWidth  int
	ChartHeight int
	// Overscan extra samples are kept beyond the visible width.
	Overscan int
	// BaseStep is the time advance per tick at scroll speed 1.
	BaseStep float64

	TransitionTime float64 // gain time constant (s)
	FrequencyGlide float64 // frequency time constant (s)
	VoiceWeight    float64
	MaxPartials    int // upper harmonics per voice, 0..3

	Mapper       freqmap.Config
	Reverb       irsynth.ReverbConfig
	ReverbIRPath string // optional WAV; the synthesized IR is the fallback
	Compressor   CompressorSettings

	Policy SelectionPolicy
	View   View
	Seed   int64
}

// DefaultConfig returns the standard 700x500 chart setup.
func DefaultConfig() Config {
	return Config{
		ChartWidth:     700,
		ChartHeight:    500,
		Overscan:       64,
		BaseStep:       0.001,
		TransitionTime: 0.1,
		FrequencyGlide: 0.02,
		VoiceWeight:    0.2,
		MaxPartials:    3,
		Mapper:         freqmap.DefaultConfig(),
		Reverb:         irsynth.DefaultReverbConfig(),
		Compressor: CompressorSettings{
			ThresholdDB: -24,
			KneeDB:      30,
			Ratio:       12,
			AttackS:     0.003,
			ReleaseS:    0.25,
		},
		Seed: 1,
	}
}

func (c *Config) Validate() error {
	if c.ChartWidth < 1 || c.ChartHeight < 2 {
		return fmt.Errorf("chart size must be positive: %dx%d", c.ChartWidth, c.ChartHeight)
	}
	if c.Overscan < 0 {
		return fmt.Errorf("overscan must be >= 0")
	}
	if c.BaseStep <= 0 {
		return fmt.Errorf("base step must be > 0")
	}
	if c.TransitionTime <= 0 || c.FrequencyGlide < 0 {
		return fmt.Errorf("transition times must be positive")
	}
	if c.VoiceWeight < 0 {
		return fmt.Errorf("voice weight must be >= 0")
	}
	if c.MaxPartials < 0 || c.MaxPartials > 3 {
		return fmt.Errorf("max partials must be in [0,3], got %d", c.MaxPartials)
	}
	if err := c.Mapper.Validate(); err != nil {
		return fmt.Errorf("frequency mapping: %w", err)
	}
	if c.Compressor.Ratio < 1 {
		return fmt.Errorf("compressor ratio must be >= 1")
	}
	return nil
}

// HalfHeight is the largest absolute y-value on the chart.
func (c *Config) HalfHeight() float64 {
	return float64(c.ChartHeight) / 2
}

// Capacity is the scroll buffer size.
func (c *Config) Capacity() int {
	return c.ChartWidth + 1 + c.Overscan
}
