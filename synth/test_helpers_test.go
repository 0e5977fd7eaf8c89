package synth

import (
	"testing"

	"github.com/cwbudde/algo-sonify/sonify"
)

const testRate = 48000.0

func newTestContext(t *testing.T) *Context {
	t.Helper()
	c, err := NewContext(testRate)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return c
}

// dcSource returns a started 0 Hz square oscillator, a constant 1.
func dcSource(t *testing.T, c *Context) sonify.Oscillator {
	t.Helper()
	o := c.NewOscillator(sonify.ShapeSquare)
	o.Frequency().SetValueAtTime(0, 0)
	if err := o.Start(0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return o
}

func mustConnect(t *testing.T, src, dst sonify.Node) {
	t.Helper()
	if err := src.Connect(dst); err != nil {
		t.Fatalf("Connect: %v", err)
	}
}

func left(interleaved []float32) []float64 {
	out := make([]float64, len(interleaved)/2)
	for i := range out {
		out[i] = float64(interleaved[i*2])
	}
	return out
}
