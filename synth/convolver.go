package synth

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/effects/reverb"
)

// convolverBlockOrder sets the first partition to 2^7 = one quantum.
const convolverBlockOrder = 7

// Convolver feeds the mono sum of its input through one partitioned
// convolution per output channel. Without a buffer it outputs silence.
type Convolver struct {
	node
	// Normalize scales the impulse response to a calibrated loudness when
	// SetBuffer is called.
	Normalize bool

	engines [2]*reverb.ConvolutionReverb
	mono    []float64
	work    []float64
}

func newConvolver(ctx *Context) *Convolver {
	c := &Convolver{
		Normalize: true,
		mono:      make([]float64, QuantumFrames),
		work:      make([]float64, QuantumFrames),
	}
	c.init(ctx, c)
	return c
}

// SetBuffer installs a stereo impulse response at the context's sample rate.
// The convolution engines are built before the graph lock is taken.
func (c *Convolver) SetBuffer(left, right []float32) error {
	if len(left) == 0 {
		return errors.New("synth: empty impulse response")
	}
	if len(right) == 0 {
		right = left
	}
	if len(right) != len(left) {
		return fmt.Errorf("synth: impulse response channel length mismatch: %d vs %d", len(left), len(right))
	}

	scale := 1.0
	if c.Normalize {
		scale = normalizationScale(left, right, c.ctx.sampleRate)
	}
	var engines [2]*reverb.ConvolutionReverb
	for ch, ir := range [][]float32{left, right} {
		kernel := make([]float64, len(ir))
		for i, v := range ir {
			kernel[i] = float64(v) * scale
		}
		e, err := reverb.NewConvolutionReverb(kernel, convolverBlockOrder)
		if err != nil {
			return fmt.Errorf("synth: convolver: %w", err)
		}
		e.SetWetDry(1, 0)
		engines[ch] = e
	}

	c.ctx.mu.Lock()
	c.engines = engines
	c.ctx.mu.Unlock()
	return nil
}

func (c *Convolver) process(_ int64, in stereo) {
	if c.engines[0] == nil {
		c.out.zero()
		return
	}
	for i := range c.mono {
		c.mono[i] = 0.5 * (in[0][i] + in[1][i])
	}
	for ch, e := range c.engines {
		copy(c.work, c.mono)
		if err := e.ProcessInPlace(c.work); err != nil {
			clear(c.out[ch])
			continue
		}
		copy(c.out[ch], c.work)
	}
}

// normalizationScale brings an impulse response to a fixed RMS level,
// compensated for sample rate, so long and short responses sound alike.
func normalizationScale(left, right []float32, sampleRate float64) float64 {
	const (
		gainCalibration           = 0.00125
		gainCalibrationSampleRate = 44100.0
		minPower                  = 0.000125
	)
	var power float64
	for _, ch := range [][]float32{left, right} {
		for _, v := range ch {
			power += float64(v) * float64(v)
		}
	}
	power = math.Sqrt(power / float64(len(left)+len(right)))
	power = max(power, minPower)
	return (1 / power) * gainCalibration * gainCalibrationSampleRate / sampleRate
}
