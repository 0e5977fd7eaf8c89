package analysis

import (
	"math"
	"testing"
)

func sine(n int, hz, sr, amp float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amp * math.Sin(2*math.Pi*hz*float64(i)/sr)
	}
	return x
}

func TestPeakFrequencyFindsSine(t *testing.T) {
	const sr = 48000.0
	a, err := NewAnalyzer(8192, sr)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	for _, hz := range []float64{220, 420, 1234.5} {
		spec, err := a.Spectrum(sine(8192, hz, sr, 0.5))
		if err != nil {
			t.Fatalf("Spectrum: %v", err)
		}
		got := spec.PeakFrequency(50, 5000)
		if math.Abs(got-hz) > spec.BinHz()/2 {
			t.Fatalf("peak for %.1f Hz: got %.2f (bin %.2f Hz)", hz, got, spec.BinHz())
		}
	}
}

func TestSpectrumAmplitudeNormalization(t *testing.T) {
	const sr = 48000.0
	const size = 4096
	a, err := NewAnalyzer(size, sr)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	binHz := sr / size
	spec, err := a.Spectrum(sine(size, 100*binHz, sr, 1))
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	if m := spec.Magnitudes[100]; math.Abs(m-1) > 0.01 {
		t.Fatalf("on-bin magnitude %f, want ~1", m)
	}
	db := spec.MagnitudesDB()
	if math.Abs(db[100]) > 0.1 {
		t.Fatalf("on-bin level %f dB, want ~0", db[100])
	}
}

func TestBandsLocateEnergy(t *testing.T) {
	const sr = 48000.0
	a, err := NewAnalyzer(4096, sr)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	spec, err := a.Spectrum(sine(4096, 440, sr, 0.5))
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	bands := spec.Bands([]float64{20, 300, 1000, 6000})
	if len(bands) != 3 {
		t.Fatalf("expected 3 bands, got %d", len(bands))
	}
	if !(bands[1] > bands[0]+30 && bands[1] > bands[2]+30) {
		t.Fatalf("expected energy in the 300-1000 Hz band, got %v", bands)
	}
}

func TestNewAnalyzerRejectsBadSize(t *testing.T) {
	if _, err := NewAnalyzer(1000, 48000); err == nil {
		t.Fatalf("expected error for non power of two")
	}
	if _, err := NewAnalyzer(1024, 0); err == nil {
		t.Fatalf("expected error for zero sample rate")
	}
}

func TestMeasureLevels(t *testing.T) {
	const n = 4800
	buf := make([]float32, n*2)
	for i := range n {
		buf[i*2] = float32(0.5 * math.Sin(2*math.Pi*float64(i)/48))
		buf[i*2+1] = 0
	}
	lv := Measure(buf)
	if math.Abs(lv.PeakL-0.5) > 1e-3 || lv.PeakR != 0 {
		t.Fatalf("peaks: %f / %f", lv.PeakL, lv.PeakR)
	}
	if math.Abs(lv.RMSL-0.5/math.Sqrt2) > 1e-3 {
		t.Fatalf("rms left: %f", lv.RMSL)
	}
	if math.Abs(lv.PeakDB()-(-6.0206)) > 0.05 {
		t.Fatalf("peak dB: %f", lv.PeakDB())
	}
	if !math.IsInf(Measure(nil).RMSDB(), -1) {
		t.Fatalf("silence should read -Inf dB")
	}
	mono := Mono(buf)
	if len(mono) != n || math.Abs(mono[12]-0.25) > 1e-6 {
		t.Fatalf("mono mixdown: len=%d v=%f", len(mono), mono[12])
	}
}
