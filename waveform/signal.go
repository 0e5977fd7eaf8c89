package waveform

import "math/rand"

// FrequencyMapper converts a visual frequency into an audible one in Hz.
type FrequencyMapper interface {
	Map(visual float64) float64
}

// SignalOptions configures a new Signal.
type SignalOptions struct {
	// Capacity bounds the scroll history (visible width plus overscan).
	Capacity int
	// Seed drives the Perlin offset and the Random channel's per-call seeds.
	Seed int64
	// Noise is shared between signals; a nil Noise is built from Seed.
	Noise *Noise
}

// TickInput is the slice of global controls a signal reads on each tick.
type TickInput struct {
	Amplitude   float64
	Frequency   float64
	Setpoint    float64
	ScrollSpeed float64

	HalfHeight float64
	BaseStep   float64
}

// Signal is the per-type waveform generator: current parameters, its time
// axis, the scroll history and the derived audio frequency.
//
// A Signal has a single writer, the render loop.
type Signal struct {
	typ       Type
	amplitude float64
	frequency float64
	phase     float64
	setpoint  float64
	time      float64

	noiseOffset    float64
	audioFrequency float64

	buffer *ScrollBuffer
	noise  *Noise
	rng    *rand.Rand
}

// NewSignal creates a signal with the type's default parameters.
func NewSignal(t Type, opts SignalOptions) *Signal {
	rng := rand.New(rand.NewSource(opts.Seed))
	noise := opts.Noise
	if noise == nil {
		noise = NewNoise(opts.Seed)
	}
	return &Signal{
		typ:         t,
		amplitude:   t.DefaultAmplitude(),
		frequency:   t.DefaultFrequency(),
		phase:       t.DefaultPhase(),
		noiseOffset: rng.Float64() * 1000,
		buffer:      NewScrollBuffer(opts.Capacity),
		noise:       noise,
		rng:         rng,
	}
}

// Tick reads the controls, evaluates the leading sample, pushes it and
// advances time. Setpoint signals keep their time frozen.
func (s *Signal) Tick(in TickInput, m FrequencyMapper) {
	s.SetParameters(in.Amplitude, in.Frequency, in.Setpoint)

	y := Clamp(Evaluate(s.typ, s.input(0), s.noise, in.HalfHeight), in.HalfHeight)
	s.buffer.Push(Sample{Timestamp: s.time, Value: y})

	if s.typ != Setpoint {
		s.time += in.BaseStep * in.ScrollSpeed
	}
	if m != nil {
		s.audioFrequency = m.Map(s.frequency)
	}
}

// SetParameters replaces amplitude, frequency and setpoint. Setpoint signals
// always run at amplitude 1 and frequency 0. The phase keeps its type default.
func (s *Signal) SetParameters(amplitude, frequency, setpoint float64) {
	if s.typ == Setpoint {
		amplitude, frequency = 1, 0
	}
	s.amplitude = amplitude
	s.frequency = frequency
	s.setpoint = setpoint
}

// Trace evaluates the full chart width at the current time without touching
// the scroll history, yielding width+1 clamped values for x = 0..width.
func (s *Signal) Trace(width int, halfHeight float64) []float64 {
	if width < 0 {
		width = 0
	}
	out := make([]float64, width+1)
	for x := range out {
		out[x] = Clamp(Evaluate(s.typ, s.input(float64(x)), s.noise, halfHeight), halfHeight)
	}
	return out
}

func (s *Signal) input(x float64) Input {
	in := Input{
		X:           x,
		Amplitude:   s.amplitude,
		Frequency:   s.frequency,
		Phase:       s.phase,
		Time:        s.time,
		Setpoint:    s.setpoint,
		NoiseOffset: s.noiseOffset,
	}
	if s.typ == Random {
		in.NoiseSeed = s.rng.Float64()
	}
	return in
}

// Type is the waveform the signal generates.
func (s *Signal) Type() Type { return s.typ }

// Label is the legend text for the signal.
func (s *Signal) Label() string { return s.typ.Label() }

// Amplitude is the current amplitude control.
func (s *Signal) Amplitude() float64 { return s.amplitude }

// Frequency is the current frequency control.
func (s *Signal) Frequency() float64 { return s.frequency }

// Phase is the type's fixed phase offset in radians.
func (s *Signal) Phase() float64 { return s.phase }

// Setpoint is the level drawn by Setpoint signals.
func (s *Signal) Setpoint() float64 { return s.setpoint }

// Time is the signal clock, advanced by Tick.
func (s *Signal) Time() float64 { return s.time }

// AudioFrequency is the mapped pitch in Hz.
func (s *Signal) AudioFrequency() float64 { return s.audioFrequency }

// Buffer is the scroll history of plotted values.
func (s *Signal) Buffer() *ScrollBuffer { return s.buffer }

// SetAudioFrequency overrides the mapped pitch until the next Tick.
func (s *Signal) SetAudioFrequency(hz float64) { s.audioFrequency = hz }
