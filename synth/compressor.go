package synth

import (
	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/effects/dynamics"
	"github.com/cwbudde/algo-sonify/sonify"
)

// Compressor applies soft-knee compression per channel. Parameters are
// k-rate and clamped to the ranges the dynamics processor accepts.
type Compressor struct {
	node
	threshold *Param // dB
	knee      *Param // dB
	ratio     *Param
	attack    *Param // seconds
	release   *Param // seconds

	procs [2]*dynamics.Compressor
	last  [5]float64
	ready bool
}

func newCompressor(ctx *Context) *Compressor {
	c := &Compressor{
		threshold: newParam(ctx, -24, -100, 0),
		knee:      newParam(ctx, 30, 0, 40),
		ratio:     newParam(ctx, 12, 1, 20),
		attack:    newParam(ctx, 0.003, 0, 1),
		release:   newParam(ctx, 0.25, 0, 1),
	}
	for ch := range c.procs {
		p, err := dynamics.NewCompressor(ctx.sampleRate)
		if err != nil {
			continue
		}
		_ = p.SetAutoMakeup(false)
		_ = p.SetMakeupGain(0)
		c.procs[ch] = p
	}
	c.init(ctx, c)
	return c
}

func (c *Compressor) Threshold() sonify.Param { return c.threshold }
func (c *Compressor) Knee() sonify.Param      { return c.knee }
func (c *Compressor) Ratio() sonify.Param     { return c.ratio }
func (c *Compressor) Attack() sonify.Param    { return c.attack }
func (c *Compressor) Release() sonify.Param   { return c.release }

func (c *Compressor) process(q int64, in stereo) {
	cur := [5]float64{
		c.threshold.kvalue(&c.node, q),
		c.knee.kvalue(&c.node, q),
		c.ratio.kvalue(&c.node, q),
		c.attack.kvalue(&c.node, q),
		c.release.kvalue(&c.node, q),
	}
	if !c.ready || cur != c.last {
		c.configure(cur)
		c.last, c.ready = cur, true
	}
	for ch, p := range c.procs {
		if p == nil {
			copy(c.out[ch], in[ch])
			continue
		}
		for i, v := range in[ch] {
			c.out[ch][i] = p.ProcessSample(v)
		}
	}
}

func (c *Compressor) configure(v [5]float64) {
	for _, p := range c.procs {
		if p == nil {
			continue
		}
		_ = p.SetThreshold(v[0])
		_ = p.SetKnee(core.Clamp(v[1], 0, 24))
		_ = p.SetRatio(core.Clamp(v[2], 1, 100))
		_ = p.SetAttack(core.Clamp(v[3]*1000, 0.1, 1000))
		_ = p.SetRelease(core.Clamp(v[4]*1000, 1, 5000))
	}
}
