package sonify

import (
	"math"
	"math/rand"
	"testing"
)

func TestBuildHarmonicsLayout(t *testing.T) {
	hs := BuildHarmonics(3, nil)
	if len(hs) != 4 {
		t.Fatalf("len: got %d want 4", len(hs))
	}
	if hs[0].Ratio != 0.5 || hs[0].RelativeGain != 0.5 {
		t.Fatalf("sub: %+v", hs[0])
	}
	for i, h := range hs[1:] {
		r := float64(i + 2)
		if h.Ratio != r || math.Abs(h.RelativeGain-1/r) > 1e-12 || h.Spread != 0 {
			t.Fatalf("partial %d: %+v", i, h)
		}
	}
}

func TestBuildHarmonicsDetuneBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for range 50 {
		hs := BuildHarmonics(3, rng)
		if hs[0].Spread != 0 {
			t.Fatalf("sub voice detuned: %+v", hs[0])
		}
		for _, h := range hs[1:] {
			if math.Abs(h.Spread) > 1 || math.Abs(h.Detune(10)) > 10 {
				t.Fatalf("detune out of range: %+v", h)
			}
		}
	}
}

func TestHarmonicDetuneScales(t *testing.T) {
	h := Harmonic{Ratio: 2, Spread: -0.4, RelativeGain: 0.5}
	if got := h.Detune(0); got != 0 {
		t.Fatalf("detune at 0: %v", got)
	}
	if got := h.Detune(50); math.Abs(got+20) > 1e-12 {
		t.Fatalf("detune at 50: %v", got)
	}
}

func TestBuildHarmonicsClampsCount(t *testing.T) {
	if n := len(BuildHarmonics(9, nil)); n != 4 {
		t.Fatalf("max partials 9: got %d", n)
	}
	if n := len(BuildHarmonics(-1, nil)); n != 1 {
		t.Fatalf("max partials -1: got %d", n)
	}
}

func TestHarmonicLevel(t *testing.T) {
	h := Harmonic{Ratio: 3, RelativeGain: 1.0 / 3}
	if got := h.Level(0.6); math.Abs(got-0.2) > 1e-12 {
		t.Fatalf("level: got %v", got)
	}
	if got := h.Level(0); got != 0 {
		t.Fatalf("level at 0: got %v", got)
	}
}
