package wavio

import (
	"math"
	"path/filepath"
	"testing"
)

func TestWriteReadStereoRoundTripLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ir.wav")
	left := []float32{0, 0.5, -0.5, 0.25}
	right := []float32{0.1, -0.1, 0.2, -0.2}
	if err := WriteStereo(path, left, right, 48000); err != nil {
		t.Fatalf("WriteStereo: %v", err)
	}

	l, r, rate, err := ReadStereo(path)
	if err != nil {
		t.Fatalf("ReadStereo: %v", err)
	}
	if rate != 48000 {
		t.Fatalf("sample rate: got %d", rate)
	}
	if len(l) != len(left) || len(r) != len(right) {
		t.Fatalf("frames: got %d/%d", len(l), len(r))
	}
	for i := range left {
		if math.Abs(float64(l[i]-left[i])) > 1e-3 || math.Abs(float64(r[i]-right[i])) > 1e-3 {
			t.Fatalf("frame %d: got (%f,%f) want (%f,%f)", i, l[i], r[i], left[i], right[i])
		}
	}
}

func TestWriteStereoRejectsMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := WriteStereo(path, []float32{0}, []float32{0, 1}, 48000); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestWriterStreamsBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.wav")
	w, err := Create(path, 44100)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	block := make([]float32, 256)
	for i := range block {
		block[i] = 0.1
	}
	for range 4 {
		if err := w.Write(block); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if w.Frames() != 512 {
		t.Fatalf("frames: got %d", w.Frames())
	}
	if err := w.Write([]float32{0}); err == nil {
		t.Fatalf("expected odd-length error")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := w.Write(block); err == nil {
		t.Fatalf("expected write after close to fail")
	}

	l, _, rate, err := ReadStereo(path)
	if err != nil {
		t.Fatalf("ReadStereo: %v", err)
	}
	if rate != 44100 || len(l) != 512 {
		t.Fatalf("got rate=%d frames=%d", rate, len(l))
	}
}

func TestResampleChangesLength(t *testing.T) {
	in := make([]float32, 4800)
	for i := range in {
		in[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 48000))
	}
	same, err := Resample(in, 48000, 48000)
	if err != nil || len(same) != len(in) {
		t.Fatalf("identity resample: len=%d err=%v", len(same), err)
	}
	out, err := Resample(in, 48000, 24000)
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}
	if math.Abs(float64(len(out))-2400) > 64 {
		t.Fatalf("expected ~2400 samples, got %d", len(out))
	}
}
