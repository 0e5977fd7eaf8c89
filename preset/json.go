package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-sonify/freqmap"
	"github.com/cwbudde/algo-sonify/sonify"
	"github.com/cwbudde/algo-sonify/theme"
	"github.com/cwbudde/algo-sonify/waveform"
)

// File is the JSON schema for visualizer presets. Absent fields keep their
// defaults.
type File struct {
	Theme       string   `json:"theme"`
	Signals     []string `json:"signals"`
	Mapping     string   `json:"mapping"`
	Amplitude   *float64 `json:"amplitude"`
	Frequency   *float64 `json:"frequency"`
	Setpoint    *float64 `json:"setpoint"`
	ScrollSpeed *float64 `json:"scroll_speed"`

	Volume    *float64    `json:"volume"`
	Reverb    *float64    `json:"reverb"`
	Filter    *FilterSpec `json:"filter"`
	Harmonics *float64    `json:"harmonics"`
	Detune    *float64    `json:"detune"`

	BaseFrequency  *float64 `json:"base_frequency"`
	Multiplier     *float64 `json:"frequency_multiplier"`
	TransitionTime *float64 `json:"transition_time"`

	Policy          string `json:"policy"`
	View            string `json:"view"`
	Seed            *int64 `json:"seed"`
	ReverbIRWavPath string `json:"reverb_ir_wav_path"`
}

// FilterSpec is the lowpass section of a preset.
type FilterSpec struct {
	Cutoff *float64 `json:"cutoff"`
	Q      *float64 `json:"q"`
}

type rangedField struct {
	name   string
	src    *float64
	dst    *float64
	lo, hi float64
}

// Preset is a fully resolved start-up state.
type Preset struct {
	Config   sonify.Config
	Controls sonify.Controls
	Theme    string
}

// Default returns the built-in start-up state.
func Default() *Preset {
	return &Preset{
		Config:   sonify.DefaultConfig(),
		Controls: sonify.DefaultControls(),
		Theme:    theme.Default,
	}
}

// LoadJSON loads a preset JSON file and applies it on top of the defaults.
func LoadJSON(path string) (*Preset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	p := Default()
	if err := ApplyFile(p, &f); err != nil {
		return nil, err
	}

	if ir := p.Config.ReverbIRPath; ir != "" && !filepath.IsAbs(ir) {
		base := filepath.Dir(path)
		p.Config.ReverbIRPath = filepath.Clean(filepath.Join(base, ir))
	}
	return p, nil
}

// ApplyFile applies a parsed preset file onto an existing preset.
func ApplyFile(dst *Preset, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination preset")
	}
	if f == nil {
		return nil
	}
	c := &dst.Controls
	cfg := &dst.Config

	if f.Theme != "" {
		th, err := theme.ByName(f.Theme)
		if err != nil {
			return err
		}
		dst.Theme = th.Name
	}
	if f.Signals != nil {
		sel := make([]waveform.Type, 0, len(f.Signals))
		for _, name := range f.Signals {
			t, err := waveform.ParseType(name)
			if err != nil {
				return fmt.Errorf("signals: %w", err)
			}
			sel = append(sel, t)
		}
		c.Selected = sel
	}
	if f.Mapping != "" {
		m, err := freqmap.ParseMode(f.Mapping)
		if err != nil {
			return err
		}
		c.Mapping = m
	}

	ranged := []rangedField{
		{"amplitude", f.Amplitude, &c.Amplitude, sonify.MinAmplitude, sonify.MaxAmplitude},
		{"frequency", f.Frequency, &c.Frequency, sonify.MinFrequency, sonify.MaxFrequency},
		{"setpoint", f.Setpoint, &c.Setpoint, sonify.MinSetpoint, sonify.MaxSetpoint},
		{"scroll_speed", f.ScrollSpeed, &c.ScrollSpeed, sonify.MinScrollSpeed, sonify.MaxScrollSpeed},
		{"volume", f.Volume, &c.MasterVolume, 0, 1},
		{"reverb", f.Reverb, &c.ReverbMix, 0, 1},
		{"harmonics", f.Harmonics, &c.HarmonicAmount, 0, 1},
		{"detune", f.Detune, &c.Detune, 0, sonify.MaxDetuneCents},
	}
	if f.Filter != nil {
		ranged = append(ranged,
			rangedField{"filter.cutoff", f.Filter.Cutoff, &c.FilterCutoff, sonify.MinFilterCutoff, sonify.MaxFilterCutoff},
			rangedField{"filter.q", f.Filter.Q, &c.FilterQ, sonify.MinFilterQ, sonify.MaxFilterQ},
		)
	}
	for _, r := range ranged {
		if r.src == nil {
			continue
		}
		if *r.src < r.lo || *r.src > r.hi {
			return fmt.Errorf("%s must be in [%g,%g], got %g", r.name, r.lo, r.hi, *r.src)
		}
		*r.dst = *r.src
	}

	if f.BaseFrequency != nil {
		if *f.BaseFrequency <= 0 {
			return fmt.Errorf("base_frequency must be > 0")
		}
		cfg.Mapper.BaseFrequency = *f.BaseFrequency
	}
	if f.Multiplier != nil {
		cfg.Mapper.Multiplier = *f.Multiplier
	}
	if f.TransitionTime != nil {
		if *f.TransitionTime <= 0 {
			return fmt.Errorf("transition_time must be > 0")
		}
		cfg.TransitionTime = *f.TransitionTime
	}
	if f.Policy != "" {
		p, err := sonify.ParseSelectionPolicy(f.Policy)
		if err != nil {
			return err
		}
		cfg.Policy = p
	}
	if f.View != "" {
		v, err := sonify.ParseView(f.View)
		if err != nil {
			return err
		}
		cfg.View = v
	}
	if f.Seed != nil {
		cfg.Seed = *f.Seed
		cfg.Reverb.Seed = *f.Seed
	}
	if f.ReverbIRWavPath != "" {
		cfg.ReverbIRPath = strings.TrimSpace(f.ReverbIRWavPath)
	}
	return cfg.Validate()
}
