package synth

import (
	"math"

	"github.com/cwbudde/algo-approx"
	"github.com/cwbudde/algo-sonify/sonify"
)

// Oscillator is a band-limited (polyBLEP) sine, sawtooth or square source.
type Oscillator struct {
	node
	shape     sonify.Shape
	frequency *Param
	detune    *Param

	phase     float64 // [0,1)
	startAt   float64
	stopAt    float64
	started   bool
	stopped   bool
	freqBuf   []float64
	detuneBuf []float64
}

func newOscillator(ctx *Context, shape sonify.Shape) *Oscillator {
	nyquist := ctx.sampleRate / 2
	o := &Oscillator{
		shape:     shape,
		frequency: newParam(ctx, 440, -nyquist, nyquist),
		detune:    newParam(ctx, 0, -153600, 153600),
		stopAt:    math.Inf(1),
		freqBuf:   make([]float64, QuantumFrames),
		detuneBuf: make([]float64, QuantumFrames),
	}
	o.init(ctx, o)
	return o
}

func (o *Oscillator) Frequency() sonify.Param { return o.frequency }
func (o *Oscillator) Detune() sonify.Param    { return o.detune }

// Start begins output at t. An oscillator starts once.
func (o *Oscillator) Start(t float64) error {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	if o.started {
		return ErrAlreadyStarted
	}
	o.started = true
	o.startAt = t
	return nil
}

// Stop ends output at t. Stopping twice, or before Start, is an error.
func (o *Oscillator) Stop(t float64) error {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	if !o.started {
		return ErrNotStarted
	}
	if o.stopped {
		return ErrAlreadyStopped
	}
	o.stopped = true
	o.stopAt = max(t, o.startAt)
	return nil
}

func (o *Oscillator) process(q int64, _ stereo) {
	o.out.zero()
	if !o.started || o.frameTime(q, 0) >= o.stopAt {
		return
	}
	if o.frameTime(q, QuantumFrames-1) < o.startAt {
		return
	}
	o.frequency.fill(&o.node, q, o.freqBuf)
	o.detune.fill(&o.node, q, o.detuneBuf)

	sr := o.ctx.sampleRate
	for i := range QuantumFrames {
		t := o.frameTime(q, i)
		if t < o.startAt || t >= o.stopAt {
			continue
		}
		f := o.freqBuf[i]
		if d := o.detuneBuf[i]; d != 0 {
			f *= centsToRatio(d)
		}
		dt := f / sr
		v := o.sample(dt)
		o.out[0][i] = v
		o.out[1][i] = v

		o.phase += dt
		o.phase -= math.Floor(o.phase)
	}
}

func (o *Oscillator) sample(dt float64) float64 {
	p := o.phase
	switch o.shape {
	case sonify.ShapeSawtooth:
		return 2*p - 1 - polyBLEP(p, dt)
	case sonify.ShapeSquare:
		v := 1.0
		if p >= 0.5 {
			v = -1
		}
		half := p + 0.5
		half -= math.Floor(half)
		return v + polyBLEP(p, dt) - polyBLEP(half, dt)
	}
	return math.Sin(2 * math.Pi * p)
}

// polyBLEP smooths the discontinuity at phase 0 over one sample.
func polyBLEP(p, dt float64) float64 {
	dt = math.Abs(dt)
	if dt <= 0 || dt >= 0.5 {
		return 0
	}
	switch {
	case p < dt:
		x := p / dt
		return x + x - x*x - 1
	case p > 1-dt:
		x := (p - 1) / dt
		return x*x + x + x + 1
	}
	return 0
}

func pow2Approx(x float32) float32 {
	const ln2 = 0.69314718055994530942
	return approx.FastExp(x * ln2)
}

func centsToRatio(cents float64) float64 {
	return float64(pow2Approx(float32(cents / 1200.0)))
}
