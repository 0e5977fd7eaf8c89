package sonify

import (
	"fmt"
	"io"
	"log"

	"github.com/cwbudde/algo-sonify/waveform"
)

// ShapeFor maps a signal type to its oscillator shape.
func ShapeFor(t waveform.Type) Shape {
	switch t {
	case waveform.Random, waveform.Perlin:
		return ShapeSawtooth
	case waveform.Setpoint:
		return ShapeSquare
	}
	return ShapeSine
}

// VoiceUpdate carries one signal's audio-relevant state for a tick.
type VoiceUpdate struct {
	Type      waveform.Type
	Frequency float64 // Hz
	Amplitude float64
	Selected  bool
}

type partial struct {
	h    Harmonic
	osc  Oscillator
	gain Gain
}

// Voice is the synthesis unit of one signal: a fundamental oscillator and
// its harmonics, all summed through one gain into the mix bus.
type Voice struct {
	typ       waveform.Type
	harmonics []Harmonic

	transition float64
	glide      float64
	weight     float64

	ctx      Context
	osc      Oscillator
	gain     Gain
	partials []partial
	active   bool

	frequency float64
	target    float64
	amount    float64
	detune    float64

	log *log.Logger
}

// NewVoice prepares an inactive voice for t.
func NewVoice(t waveform.Type, harmonics []Harmonic, cfg *Config, logger *log.Logger) *Voice {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Voice{
		typ:        t,
		harmonics:  harmonics,
		transition: cfg.TransitionTime,
		glide:      cfg.FrequencyGlide,
		weight:     cfg.VoiceWeight,
		log:        logger,
	}
}

// Shared holds the controls every voice reads alongside its own update.
type Shared struct {
	MasterVolume   float64
	HarmonicAmount float64
	Detune         float64 // cents
}

// Activate creates the oscillators, starts them silent and connects the
// voice to out. Setpoint voices keep the frequency given here for good.
func (v *Voice) Activate(ctx Context, out Node, frequency float64, sh Shared) (err error) {
	if v.active {
		return nil
	}
	v.ctx = ctx
	v.active = true
	defer func() {
		if err != nil {
			v.Deactivate()
		}
	}()

	now := ctx.CurrentTime()
	shape := ShapeFor(v.typ)

	v.gain = ctx.NewGain()
	v.gain.Gain().SetValueAtTime(0, now)
	if err := v.gain.Connect(out); err != nil {
		return fmt.Errorf("connect %s voice: %w", v.typ, err)
	}

	v.osc = ctx.NewOscillator(shape)
	v.osc.Frequency().SetValueAtTime(frequency, now)
	if err := v.osc.Connect(v.gain); err != nil {
		return fmt.Errorf("connect %s oscillator: %w", v.typ, err)
	}

	for _, h := range v.harmonics {
		p := partial{h: h, osc: ctx.NewOscillator(shape), gain: ctx.NewGain()}
		p.osc.Frequency().SetValueAtTime(frequency*h.Ratio, now)
		p.osc.Detune().SetValueAtTime(h.Detune(sh.Detune), now)
		p.gain.Gain().SetValueAtTime(h.Level(sh.HarmonicAmount), now)
		v.partials = append(v.partials, p)
		if err := p.osc.Connect(p.gain); err != nil {
			return fmt.Errorf("connect %s partial: %w", v.typ, err)
		}
		if err := p.gain.Connect(v.gain); err != nil {
			return fmt.Errorf("connect %s partial: %w", v.typ, err)
		}
	}

	if err := v.osc.Start(now); err != nil {
		return fmt.Errorf("start %s oscillator: %w", v.typ, err)
	}
	for _, p := range v.partials {
		if err := p.osc.Start(now); err != nil {
			return fmt.Errorf("start %s partial: %w", v.typ, err)
		}
	}

	v.frequency = frequency
	v.target = 0
	v.amount = sh.HarmonicAmount
	v.detune = sh.Detune
	return nil
}

// Update ramps frequency and gain toward the signal's current state. The
// gain target is amplitude*masterVolume*weight while selected and 0 otherwise.
// Harmonic levels and partial detune follow the shared controls.
// Unchanged targets schedule nothing.
func (v *Voice) Update(u VoiceUpdate, sh Shared) {
	if !v.active {
		return
	}
	now := v.ctx.CurrentTime()

	if v.typ != waveform.Setpoint && u.Frequency != v.frequency && u.Frequency > 0 {
		v.osc.Frequency().SetTargetAtTime(u.Frequency, now, v.glide)
		for _, p := range v.partials {
			p.osc.Frequency().SetTargetAtTime(u.Frequency*p.h.Ratio, now, v.glide)
		}
		v.frequency = u.Frequency
	}

	target := 0.0
	if u.Selected {
		target = u.Amplitude * sh.MasterVolume * v.weight
	}
	if target != v.target {
		v.gain.Gain().SetTargetAtTime(target, now, v.transition)
		v.target = target
	}

	if sh.HarmonicAmount != v.amount {
		for _, p := range v.partials {
			p.gain.Gain().SetTargetAtTime(p.h.Level(sh.HarmonicAmount), now, v.transition)
		}
		v.amount = sh.HarmonicAmount
	}

	if sh.Detune != v.detune {
		for _, p := range v.partials {
			if p.h.Spread != 0 {
				p.osc.Detune().SetTargetAtTime(p.h.Detune(sh.Detune), now, v.transition)
			}
		}
		v.detune = sh.Detune
	}
}

// Deactivate stops and disconnects every oscillator. Calling it again, or
// on a voice that never started, does nothing.
func (v *Voice) Deactivate() {
	if !v.active {
		return
	}
	v.active = false
	now := v.ctx.CurrentTime()
	for _, o := range v.oscillators() {
		if err := o.Stop(now); err != nil {
			v.log.Printf("sonify: %s voice: ignoring stop: %v", v.typ, err)
		}
		o.Disconnect()
	}
	for _, p := range v.partials {
		if p.gain != nil {
			p.gain.Disconnect()
		}
	}
	if v.gain != nil {
		v.gain.Disconnect()
	}
	v.osc, v.gain, v.partials = nil, nil, nil
}

func (v *Voice) oscillators() []Oscillator {
	out := make([]Oscillator, 0, 1+len(v.partials))
	if v.osc != nil {
		out = append(out, v.osc)
	}
	for _, p := range v.partials {
		out = append(out, p.osc)
	}
	return out
}

// Type is the signal type the voice plays.
func (v *Voice) Type() waveform.Type { return v.typ }

// Active reports whether the oscillators are running.
func (v *Voice) Active() bool { return v.active }

// TargetGain is the last scheduled gain target.
func (v *Voice) TargetGain() float64 { return v.target }

// TargetFrequency is the last scheduled fundamental frequency.
func (v *Voice) TargetFrequency() float64 { return v.frequency }

// TargetDetune is the last scheduled detune spread in cents.
func (v *Voice) TargetDetune() float64 { return v.detune }
