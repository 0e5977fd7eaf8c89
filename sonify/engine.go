package sonify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"slices"
	"sync"

	"github.com/cwbudde/algo-sonify/freqmap"
	"github.com/cwbudde/algo-sonify/irsynth"
	"github.com/cwbudde/algo-sonify/waveform"
)

// ErrAudioUnavailable is returned by SetSound when the audio environment
// cannot be opened. The visual side keeps running.
var ErrAudioUnavailable = errors.New("sonify: audio unavailable")

// State is the sound state machine.
type State int

const (
	SoundDisabled State = iota
	SoundEnabling
	SoundEnabled
	SoundDisabling
)

func (s State) String() string {
	switch s {
	case SoundDisabled:
		return "disabled"
	case SoundEnabling:
		return "enabling"
	case SoundEnabled:
		return "enabled"
	case SoundDisabling:
		return "disabling"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// AudioUpdate is the audio half of a tick. It is a plain value so it can
// cross a channel to a separate audio goroutine.
type AudioUpdate struct {
	// Voices holds one entry per known signal, selected or not.
	Voices         []VoiceUpdate
	Bus            BusSettings
	HarmonicAmount float64
	Detune         float64
	Selection      []waveform.Type
}

func (u AudioUpdate) shared() Shared {
	return Shared{
		MasterVolume:   u.Bus.MasterVolume,
		HarmonicAmount: u.HarmonicAmount,
		Detune:         u.Detune,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes diagnostics to l. The default discards them.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine owns one Signal per type and, while sound is enabled, one Voice
// per type. Tick runs on the render goroutine; the audio methods may be
// called from any goroutine.
type Engine struct {
	cfg     Config
	factory ContextFactory
	log     *log.Logger

	signals []*waveform.Signal // indexed by type

	mu          sync.Mutex
	state       State
	unavailable bool
	actx        Context
	bus         *MixBus
	voices      map[waveform.Type]*Voice
	latest      AudioUpdate
	lastSel     []waveform.Type
	rng         *rand.Rand
}

// NewEngine creates the signals. No audio is touched until SetSound(true).
// Until the first Tick or SetControls, enabling sound uses DefaultControls.
func NewEngine(cfg Config, factory ContextFactory, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:     cfg,
		factory: factory,
		log:     log.New(io.Discard, "", 0),
		voices:  make(map[waveform.Type]*Voice),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
	}
	for _, o := range opts {
		o(e)
	}

	noise := waveform.NewNoise(cfg.Seed)
	mapper := freqmap.New(freqmap.Linear, cfg.Mapper)
	for _, t := range waveform.Types() {
		s := waveform.NewSignal(t, waveform.SignalOptions{
			Capacity: cfg.Capacity(),
			Seed:     cfg.Seed + int64(t) + 1,
			Noise:    noise,
		})
		s.SetAudioFrequency(mapper.Map(s.Frequency()))
		e.signals = append(e.signals, s)
	}
	e.latest = e.audioUpdate(DefaultControls().Sanitize())
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Signal returns the signal of type t. It must only be used from the
// goroutine that calls Tick.
func (e *Engine) Signal(t waveform.Type) *waveform.Signal {
	if !t.Valid() {
		return nil
	}
	return e.signals[t]
}

// Tick advances every selected signal by one step and returns the frame to
// draw and the audio update to apply. Deselected signals do not advance.
func (e *Engine) Tick(c Controls) (Frame, AudioUpdate) {
	c = c.Sanitize()
	mapper := freqmap.New(c.Mapping, e.cfg.Mapper)
	in := waveform.TickInput{
		Amplitude:   c.Amplitude,
		Frequency:   c.Frequency,
		Setpoint:    c.Setpoint,
		ScrollSpeed: c.ScrollSpeed,
		HalfHeight:  e.cfg.HalfHeight(),
		BaseStep:    e.cfg.BaseStep,
	}
	for _, t := range c.Selected {
		e.signals[t].Tick(in, mapper)
	}

	frame := e.frame(c)
	u := e.audioUpdate(c)

	e.mu.Lock()
	e.latest = u
	frame.Sound = e.state
	e.mu.Unlock()
	return frame, u
}

// SetControls records c as the controls sound is enabled with, without
// advancing any signal. Call it before SetSound when no Tick has run yet.
func (e *Engine) SetControls(c Controls) {
	u := e.audioUpdate(c.Sanitize())
	e.mu.Lock()
	e.latest = u
	e.mu.Unlock()
}

func (e *Engine) audioUpdate(c Controls) AudioUpdate {
	u := AudioUpdate{
		Voices: make([]VoiceUpdate, 0, len(e.signals)),
		Bus: BusSettings{
			MasterVolume: c.MasterVolume,
			ReverbMix:    c.ReverbMix,
			FilterCutoff: c.FilterCutoff,
			FilterQ:      c.FilterQ,
		},
		HarmonicAmount: c.HarmonicAmount,
		Detune:         c.Detune,
		Selection:      slices.Clone(c.Selected),
	}
	for _, s := range e.signals {
		u.Voices = append(u.Voices, VoiceUpdate{
			Type:      s.Type(),
			Frequency: s.AudioFrequency(),
			Amplitude: s.Amplitude(),
			Selected:  c.IsSelected(s.Type()),
		})
	}
	return u
}

// ApplyAudio pushes an update into the bus and voices. It does nothing
// unless sound is enabled. A voice that fails is logged and skipped.
func (e *Engine) ApplyAudio(u AudioUpdate) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != SoundEnabled {
		return
	}
	if e.cfg.Policy == RebuildOnSelect && !slices.Equal(e.lastSel, u.Selection) {
		e.latest = u
		e.rebuildLocked()
	}
	e.lastSel = slices.Clone(u.Selection)

	e.isolate("mix bus", func() { e.bus.Apply(u.Bus) })
	e.updateVoicesLocked(u)
}

func (e *Engine) updateVoicesLocked(u AudioUpdate) {
	sh := u.shared()
	for _, vu := range u.Voices {
		v := e.voices[vu.Type]
		if v == nil {
			continue
		}
		e.isolate(vu.Type.String()+" voice", func() { v.Update(vu, sh) })
	}
}

func (e *Engine) isolate(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Printf("sonify: %s update failed: %v", what, r)
		}
	}()
	fn()
}

// RunAudio applies updates from a channel until ctx is done or the channel
// is closed. When updates queue up only the newest is applied.
func (e *Engine) RunAudio(ctx context.Context, updates <-chan AudioUpdate) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u, ok := <-updates:
			if !ok {
				return nil
			}
		drain:
			for {
				select {
				case next, ok := <-updates:
					if !ok {
						e.ApplyAudio(u)
						return nil
					}
					u = next
				default:
					break drain
				}
			}
			e.ApplyAudio(u)
		}
	}
}

// Step runs a full tick on one goroutine: advance, apply audio, render.
func (e *Engine) Step(c Controls, sink RenderSink) Frame {
	frame, u := e.Tick(c)
	e.ApplyAudio(u)
	if sink != nil {
		Render(frame, sink)
	}
	return frame
}

// SetSound enables or disables audio. Enabling opens the audio context on
// first use and builds a voice for every known signal, silent until the
// next update ramps it in.
func (e *Engine) SetSound(on bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if on {
		return e.enableLocked()
	}
	e.disableLocked()
	return nil
}

// ToggleSound flips the sound state.
func (e *Engine) ToggleSound() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == SoundEnabled {
		e.disableLocked()
		return nil
	}
	return e.enableLocked()
}

func (e *Engine) enableLocked() error {
	if e.state == SoundEnabled {
		return nil
	}
	if err := e.openLocked(); err != nil {
		e.unavailable = true
		e.log.Printf("sonify: sound disabled: %v", err)
		return err
	}
	e.unavailable = false

	e.state = SoundEnabling
	e.buildVoicesLocked()
	e.state = SoundEnabled

	e.lastSel = slices.Clone(e.latest.Selection)
	u := e.latest
	e.isolate("mix bus", func() { e.bus.Apply(u.Bus) })
	e.updateVoicesLocked(u)
	return nil
}

func (e *Engine) disableLocked() {
	if e.state != SoundEnabled {
		return
	}
	e.state = SoundDisabling
	e.stopVoicesLocked()
	e.state = SoundDisabled
}

// openLocked creates the audio context and bus once.
func (e *Engine) openLocked() error {
	if e.actx != nil {
		return nil
	}
	if e.factory == nil {
		return ErrAudioUnavailable
	}
	actx, err := e.factory()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}
	if actx == nil {
		return ErrAudioUnavailable
	}

	left, right := e.impulseResponse(actx.SampleRate())
	bus, err := NewMixBus(actx, &e.cfg, left, right)
	if err != nil {
		e.log.Printf("sonify: %v; continuing without reverb", err)
		bus, err = NewMixBus(actx, &e.cfg, nil, nil)
	}
	if err != nil {
		_ = actx.Close()
		return fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}
	e.actx = actx
	e.bus = bus
	return nil
}

func (e *Engine) impulseResponse(sampleRate float64) ([]float32, []float32) {
	if p := e.cfg.ReverbIRPath; p != "" {
		l, r, err := irsynth.LoadWAV(p, int(sampleRate))
		if err == nil {
			return l, r
		}
		e.log.Printf("sonify: reverb IR %s: %v; using synthesized IR", p, err)
	}
	rc := e.cfg.Reverb
	rc.SampleRate = int(sampleRate)
	l, r, err := irsynth.GenerateReverb(rc)
	if err != nil {
		e.log.Printf("sonify: reverb IR: %v; reverb disabled", err)
		return nil, nil
	}
	return l, r
}

func (e *Engine) buildVoicesLocked() {
	u := e.latest
	for _, vu := range u.Voices {
		hs := BuildHarmonics(e.cfg.MaxPartials, e.rng)
		v := NewVoice(vu.Type, hs, &e.cfg, e.log)
		if err := v.Activate(e.actx, e.bus.Input(), vu.Frequency, u.shared()); err != nil {
			e.log.Printf("sonify: %v", err)
			continue
		}
		e.voices[vu.Type] = v
	}
}

func (e *Engine) stopVoicesLocked() {
	for t, v := range e.voices {
		v.Deactivate()
		delete(e.voices, t)
	}
}

func (e *Engine) rebuildLocked() {
	e.stopVoicesLocked()
	e.buildVoicesLocked()
}

// State returns the sound state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SoundAvailable is false after the audio environment failed to open.
func (e *Engine) SoundAvailable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.unavailable
}

// VoiceCount returns the number of live voices.
func (e *Engine) VoiceCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.voices)
}

// AudioContext returns the open audio context, or nil.
func (e *Engine) AudioContext() Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.actx
}

// Close disables sound and releases the audio context.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disableLocked()
	if e.actx == nil {
		return nil
	}
	e.bus.Close()
	err := e.actx.Close()
	e.actx, e.bus = nil, nil
	return err
}
