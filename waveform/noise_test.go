package waveform

import "testing"

func TestNoiseRangeAndDeterminism(t *testing.T) {
	a := NewNoise(7)
	b := NewNoise(7)
	for i := 0; i < 1000; i++ {
		x := float64(i) * 0.37
		y := float64(i) * 0.011
		va, vb := a.At(x, y), b.At(x, y)
		if va != vb {
			t.Fatalf("same seed differs at %d: %f vs %f", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("noise out of [0,1): %f", va)
		}
	}
}

func TestNoiseMirrorsNegativeCoordinates(t *testing.T) {
	n := NewNoise(2)
	if n.At(-3.5, -1.25) != n.At(3.5, 1.25) {
		t.Fatalf("expected mirrored lookup for negative coordinates")
	}
}

func TestNilNoiseReturnsMidpoint(t *testing.T) {
	var n *Noise
	if v := n.At(1, 2); v != 0.5 {
		t.Fatalf("nil noise: got %f", v)
	}
}
