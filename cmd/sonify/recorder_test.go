package main

import (
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-sonify/internal/wavio"
	"github.com/cwbudde/algo-sonify/sonify"
	"github.com/cwbudde/algo-sonify/synth"
)

func TestTapRecordsRenderedAudio(t *testing.T) {
	src, err := synth.NewContext(48000)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	osc := src.NewOscillator(sonify.ShapeSine)
	if err := osc.Connect(src.Destination()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := osc.Start(0); err != nil {
		t.Fatalf("start: %v", err)
	}

	path := filepath.Join(t.TempDir(), "rec", "out.wav")
	tp, err := newTap(path, 48000)
	if err != nil {
		t.Fatalf("newTap: %v", err)
	}
	for range 4 {
		tp.observe(src.Process(1000))
	}
	if tp.recordedFrames() != 4000 {
		t.Fatalf("frames: %d", tp.recordedFrames())
	}
	if lv := tp.latest(); lv.Peak() < 0.9 {
		t.Fatalf("levels: %+v", lv)
	}
	if err := tp.close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	left, right, rate, err := wavio.ReadStereo(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if rate != 48000 || len(left) != 4000 || len(right) != 4000 {
		t.Fatalf("wav: rate=%d len=%d/%d", rate, len(left), len(right))
	}
}

func TestTapWithoutRecording(t *testing.T) {
	tp, err := newTap("", 48000)
	if err != nil {
		t.Fatalf("newTap: %v", err)
	}
	tp.observe([]float32{0.5, -0.25, 0, 0})
	if lv := tp.latest(); lv.PeakL != 0.5 || lv.PeakR != 0.25 {
		t.Fatalf("levels: %+v", lv)
	}
	if tp.recordedFrames() != 0 || tp.close() != nil {
		t.Fatalf("recording state without a path")
	}
}

func TestLoadPresetOverrides(t *testing.T) {
	o := options{signals: "Cosine,Random", themeName: "purple", view: "sweep", scroll: 20, fps: 60}
	p, err := loadPreset(&o)
	if err != nil {
		t.Fatalf("loadPreset: %v", err)
	}
	if p.Theme != "Purple" || len(p.Controls.Selected) != 2 || p.Controls.ScrollSpeed != 20 {
		t.Fatalf("preset: %+v", p)
	}
	o.signals = "Triangle"
	if _, err := loadPreset(&o); err == nil {
		t.Fatalf("expected error for unknown signal")
	}
	o.signals, o.fps = "", 0
	if _, err := loadPreset(&o); err == nil {
		t.Fatalf("expected error for fps 0")
	}
}
