package waveform

import (
	"math"
	"math/rand"
	"testing"
)

func TestEvaluateSineAtOrigin(t *testing.T) {
	in := Input{Amplitude: 1, Frequency: 0.02}
	if got := Evaluate(Sine, in, nil, 250); got != 0 {
		t.Fatalf("expected 0 at t=0, got %f", got)
	}

	in.Time = 0.001 * 1
	want := 100 * math.Sin(0.001)
	if got := Evaluate(Sine, in, nil, 250); math.Abs(got-want) > 1e-12 {
		t.Fatalf("after one step: got=%g want=%g", got, want)
	}
}

func TestEvaluateCosineUsesPhase(t *testing.T) {
	in := Input{Amplitude: 1, Frequency: 0.02, Phase: Cosine.DefaultPhase()}
	got := Evaluate(Cosine, in, nil, 250)
	if math.Abs(got) > 1e-9 {
		t.Fatalf("cos(pi/2) should vanish, got %g", got)
	}
	in.Phase = 0
	if got := Evaluate(Cosine, in, nil, 250); math.Abs(got-100) > 1e-9 {
		t.Fatalf("expected 100 at zero phase, got %g", got)
	}
}

func TestEvaluateSetpointIgnoresPosition(t *testing.T) {
	for _, x := range []float64{0, 17, 700} {
		in := Input{X: x, Time: x * 3, Setpoint: -120}
		if got := Evaluate(Setpoint, in, nil, 250); got != -120 {
			t.Fatalf("x=%f: got %f", x, got)
		}
	}
}

func TestEvaluateRandomScalesByHalfHeight(t *testing.T) {
	n := NewNoise(3)
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 2000; i++ {
		in := Input{Amplitude: 1, NoiseSeed: rng.Float64()}
		y := Evaluate(Random, in, n, 250)
		if math.Abs(y) > 250 {
			t.Fatalf("random sample escaped half height: %f", y)
		}
	}
}

func TestEvaluatePerlinIsCoherentInTime(t *testing.T) {
	n := NewNoise(11)
	in := Input{Amplitude: 1, Frequency: 0.02, NoiseOffset: 42}
	prev := Evaluate(Perlin, in, n, 250)
	for i := 1; i < 500; i++ {
		in.Time = float64(i) * 0.001
		y := Evaluate(Perlin, in, n, 250)
		if math.Abs(y-prev) > 1 {
			t.Fatalf("perlin jumped by %f at step %d", y-prev, i)
		}
		prev = y
	}
}

func TestEvaluateClampedOutputStaysInBounds(t *testing.T) {
	const half = 250.0
	n := NewNoise(1)
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 5000; i++ {
		in := Input{
			X:           rng.Float64() * 800,
			Amplitude:   rng.Float64() * 10,
			Frequency:   rng.Float64(),
			Phase:       rng.Float64() * 2 * math.Pi,
			Time:        rng.Float64() * 1e4,
			Setpoint:    (rng.Float64()*2 - 1) * 1000,
			NoiseOffset: rng.Float64() * 1000,
			NoiseSeed:   rng.Float64(),
		}
		for _, typ := range Types() {
			y := Clamp(Evaluate(typ, in, n, half), half)
			if y < -half || y > half || math.IsNaN(y) {
				t.Fatalf("%s out of bounds: %f (input %+v)", typ, y, in)
			}
		}
	}
}

func TestEvaluateNeverReturnsNonFinite(t *testing.T) {
	in := Input{Amplitude: math.Inf(1), Frequency: 0.02, Time: 1}
	if y := Evaluate(Sine, in, nil, 250); y != 0 {
		t.Fatalf("expected non-finite result to collapse to 0, got %f", y)
	}
	in = Input{Amplitude: 1, NoiseOffset: math.NaN()}
	if y := Evaluate(Perlin, in, NewNoise(1), 250); math.IsNaN(y) || math.IsInf(y, 0) {
		t.Fatalf("perlin produced %f", y)
	}
	if y := Clamp(math.NaN(), 250); y != 0 {
		t.Fatalf("clamp(NaN) = %f", y)
	}
}
