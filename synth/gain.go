package synth

import "github.com/cwbudde/algo-sonify/sonify"

// Gain multiplies its input by an a-rate gain.
type Gain struct {
	node
	gain *Param
	buf  []float64
}

func newGain(ctx *Context) *Gain {
	g := &Gain{
		gain: newParam(ctx, 1, -1e6, 1e6),
		buf:  make([]float64, QuantumFrames),
	}
	g.init(ctx, g)
	return g
}

func (g *Gain) Gain() sonify.Param { return g.gain }

func (g *Gain) process(q int64, in stereo) {
	g.gain.fill(&g.node, q, g.buf)
	for ch := range 2 {
		for i, v := range in[ch] {
			g.out[ch][i] = v * g.buf[i]
		}
	}
}
