package synth

import (
	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
	"github.com/cwbudde/algo-sonify/sonify"
)

// Filter is a stereo lowpass biquad. Frequency and Q are k-rate: the
// coefficients are redesigned at most once per quantum.
type Filter struct {
	node
	frequency *Param
	q         *Param

	sections [2]*biquad.Section
	lastFreq float64
	lastQ    float64
	designed bool
}

func newLowpass(ctx *Context) *Filter {
	f := &Filter{
		frequency: newParam(ctx, 350, 10, ctx.sampleRate/2),
		q:         newParam(ctx, 1, 0.0001, 1000),
	}
	f.init(ctx, f)
	return f
}

func (f *Filter) Frequency() sonify.Param { return f.frequency }
func (f *Filter) Q() sonify.Param         { return f.q }

func (f *Filter) process(q int64, in stereo) {
	freq := f.frequency.kvalue(&f.node, q)
	res := f.q.kvalue(&f.node, q)
	if !f.designed || freq != f.lastFreq || res != f.lastQ {
		f.lastFreq, f.lastQ, f.designed = freq, res, true
		// keep just below Nyquist so the design stays stable
		c := design.Lowpass(core.Clamp(freq, 10, 0.49*f.ctx.sampleRate), res, f.ctx.sampleRate)
		for ch := range f.sections {
			if f.sections[ch] == nil {
				f.sections[ch] = biquad.NewSection(c)
			} else {
				f.sections[ch].Coefficients = c
			}
		}
	}
	for ch := range 2 {
		s := f.sections[ch]
		for i, v := range in[ch] {
			f.out[ch][i] = core.FlushDenormals(s.ProcessSample(v))
		}
	}
}
