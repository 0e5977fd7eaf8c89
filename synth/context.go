// Package synth is an in-process audio graph: oscillators, gains, a lowpass
// biquad, a partitioned convolution reverb and a compressor, rendered in
// fixed quanta with sample-accurate parameter automation.
package synth

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-sonify/sonify"
)

// QuantumFrames is the number of frames rendered per graph pass.
const QuantumFrames = 128

var (
	ErrAlreadyStarted = errors.New("synth: oscillator already started")
	ErrAlreadyStopped = errors.New("synth: oscillator already stopped")
	ErrNotStarted     = errors.New("synth: oscillator not started")
	ErrForeignNode    = errors.New("synth: node belongs to another context")
)

var _ sonify.Context = (*Context)(nil)

// Context owns the graph and its clock. All methods are safe for concurrent
// use: one goroutine typically schedules parameters while another calls
// Process from the audio callback.
type Context struct {
	mu         sync.Mutex
	sampleRate float64
	quantum    int64 // index of the next quantum to render
	dest       *Destination
	fifo       []float32
	closed     bool
}

// NewContext creates a graph running at sampleRate.
func NewContext(sampleRate float64) (*Context, error) {
	if !(sampleRate >= 3000) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("synth: invalid sample rate %v", sampleRate)
	}
	c := &Context{sampleRate: sampleRate}
	c.dest = &Destination{}
	c.dest.init(c, c.dest)
	return c, nil
}

func (c *Context) SampleRate() float64 { return c.sampleRate }

// CurrentTime is the time in seconds of the next frame to be rendered.
func (c *Context) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now()
}

func (c *Context) now() float64 {
	return float64(c.quantum*QuantumFrames) / c.sampleRate
}

// Destination is the graph's output.
func (c *Context) Destination() sonify.Node { return c.dest }

// Process renders numFrames stereo frames and returns them interleaved.
// Output is clamped to [-1, 1]. A closed context renders silence.
func (c *Context) Process(numFrames int) []float32 {
	out := make([]float32, numFrames*2)
	if numFrames <= 0 {
		return out
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return out
	}
	for len(c.fifo) < len(out) {
		c.renderQuantum()
	}
	copy(out, c.fifo)
	c.fifo = append(c.fifo[:0], c.fifo[len(out):]...)
	return out
}

func (c *Context) renderQuantum() {
	buf := c.dest.pull(c.quantum)
	for i := range QuantumFrames {
		c.fifo = append(c.fifo,
			float32(core.Clamp(buf[0][i], -1, 1)),
			float32(core.Clamp(buf[1][i], -1, 1)))
	}
	c.quantum++
}

// Close stops rendering. Further Process calls return silence.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.fifo = nil
	return nil
}

func (c *Context) NewOscillator(shape sonify.Shape) sonify.Oscillator {
	return newOscillator(c, shape)
}

func (c *Context) NewGain() sonify.Gain { return newGain(c) }

func (c *Context) NewLowpass() sonify.Filter { return newLowpass(c) }

func (c *Context) NewConvolver() sonify.Convolver { return newConvolver(c) }

func (c *Context) NewCompressor() sonify.Compressor { return newCompressor(c) }
