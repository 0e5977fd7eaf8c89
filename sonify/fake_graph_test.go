package sonify

import (
	"errors"
	"fmt"
)

type paramEvent struct {
	kind string // "set", "ramp", "target", "cancel"
	v, t float64
	tc   float64
}

type fakeParam struct {
	value  float64
	events []paramEvent
	panics bool
}

func (p *fakeParam) Value() float64 { return p.value }

func (p *fakeParam) SetValueAtTime(v, t float64) {
	p.record(paramEvent{kind: "set", v: v, t: t})
	p.value = v
}

func (p *fakeParam) LinearRampToValueAtTime(v, t float64) {
	p.record(paramEvent{kind: "ramp", v: v, t: t})
	p.value = v
}

func (p *fakeParam) SetTargetAtTime(v, t, tc float64) {
	p.record(paramEvent{kind: "target", v: v, t: t, tc: tc})
	p.value = v
}

func (p *fakeParam) CancelScheduledValues(t float64) {
	p.record(paramEvent{kind: "cancel", t: t})
}

func (p *fakeParam) record(e paramEvent) {
	if p.panics {
		panic("param exploded")
	}
	p.events = append(p.events, e)
}

func (p *fakeParam) last() paramEvent {
	if len(p.events) == 0 {
		return paramEvent{}
	}
	return p.events[len(p.events)-1]
}

type fakeNode struct {
	ctx   *fakeContext
	name  string
	outs  []Node
	fails bool
}

func (n *fakeNode) Connect(dst Node) error {
	if n.fails || n.ctx.failConnect {
		return errors.New("connect refused")
	}
	n.outs = append(n.outs, dst)
	return nil
}

func (n *fakeNode) Disconnect() { n.outs = nil }

type fakeOscillator struct {
	fakeNode
	shape     Shape
	freq      fakeParam
	detune    fakeParam
	started   bool
	stopped   bool
	stopCalls int
}

func (o *fakeOscillator) Frequency() Param { return &o.freq }
func (o *fakeOscillator) Detune() Param    { return &o.detune }

func (o *fakeOscillator) Start(float64) error {
	if o.started {
		return errors.New("already started")
	}
	o.started = true
	return nil
}

func (o *fakeOscillator) Stop(float64) error {
	o.stopCalls++
	if o.stopped {
		return errors.New("already stopped")
	}
	o.stopped = true
	return nil
}

type fakeGain struct {
	fakeNode
	gain fakeParam
}

func (g *fakeGain) Gain() Param { return &g.gain }

type fakeFilter struct {
	fakeNode
	freq, q fakeParam
}

func (f *fakeFilter) Frequency() Param { return &f.freq }
func (f *fakeFilter) Q() Param         { return &f.q }

type fakeConvolver struct {
	fakeNode
	left, right []float32
}

func (c *fakeConvolver) SetBuffer(l, r []float32) error {
	if len(l) == 0 {
		return errors.New("empty buffer")
	}
	c.left, c.right = l, r
	return nil
}

type fakeCompressor struct {
	fakeNode
	threshold, knee, ratio, attack, release fakeParam
}

func (c *fakeCompressor) Threshold() Param { return &c.threshold }
func (c *fakeCompressor) Knee() Param      { return &c.knee }
func (c *fakeCompressor) Ratio() Param     { return &c.ratio }
func (c *fakeCompressor) Attack() Param    { return &c.attack }
func (c *fakeCompressor) Release() Param   { return &c.release }

type fakeContext struct {
	now         float64
	failConnect bool
	closed      bool

	oscillators []*fakeOscillator
	gains       []*fakeGain
	filters     []*fakeFilter
	convolvers  []*fakeConvolver
	compressors []*fakeCompressor
	dest        fakeNode
}

func newFakeContext() *fakeContext {
	c := &fakeContext{}
	c.dest = fakeNode{ctx: c, name: "destination"}
	return c
}

func (c *fakeContext) CurrentTime() float64 { return c.now }
func (c *fakeContext) SampleRate() float64  { return 8000 }
func (c *fakeContext) Destination() Node    { return &c.dest }

func (c *fakeContext) NewOscillator(s Shape) Oscillator {
	o := &fakeOscillator{fakeNode: fakeNode{ctx: c, name: fmt.Sprintf("osc%d", len(c.oscillators))}, shape: s}
	c.oscillators = append(c.oscillators, o)
	return o
}

func (c *fakeContext) NewGain() Gain {
	g := &fakeGain{fakeNode: fakeNode{ctx: c, name: "gain"}}
	c.gains = append(c.gains, g)
	return g
}

func (c *fakeContext) NewLowpass() Filter {
	f := &fakeFilter{fakeNode: fakeNode{ctx: c, name: "lowpass"}}
	c.filters = append(c.filters, f)
	return f
}

func (c *fakeContext) NewConvolver() Convolver {
	v := &fakeConvolver{fakeNode: fakeNode{ctx: c, name: "convolver"}}
	c.convolvers = append(c.convolvers, v)
	return v
}

func (c *fakeContext) NewCompressor() Compressor {
	v := &fakeCompressor{fakeNode: fakeNode{ctx: c, name: "compressor"}}
	c.compressors = append(c.compressors, v)
	return v
}

func (c *fakeContext) Close() error {
	c.closed = true
	return nil
}

// live counts started oscillators that have not been stopped.
func (c *fakeContext) live() int {
	n := 0
	for _, o := range c.oscillators {
		if o.started && !o.stopped {
			n++
		}
	}
	return n
}

func factoryFor(c *fakeContext) ContextFactory {
	return func() (Context, error) { return c, nil }
}

// testConfig keeps synthesized impulse responses short.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Reverb.DurationS = 0.05
	cfg.Reverb.EarlyS = 0.01
	cfg.Reverb.EarlyStepS = 0.005
	cfg.Reverb.TailStepS = 0.01
	cfg.Reverb.FadeOutS = 0.01
	return cfg
}
