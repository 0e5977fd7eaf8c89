package main

import (
	"sync"

	"github.com/cwbudde/algo-sonify/analysis"
	"github.com/cwbudde/algo-sonify/internal/wavio"
)

// tap observes every rendered block: it keeps the latest output levels and
// optionally appends the audio to a WAV file.
type tap struct {
	mu     sync.Mutex
	levels analysis.Levels
	rec    *wavio.Writer
	err    error
}

// newTap records to path when it is not empty.
func newTap(path string, sampleRate int) (*tap, error) {
	t := &tap{}
	if path == "" {
		return t, nil
	}
	w, err := wavio.Create(path, sampleRate)
	if err != nil {
		return nil, err
	}
	t.rec = w
	return t, nil
}

// observe is called from the audio thread with interleaved stereo samples.
// A failed write stops recording; the error is reported by close.
func (t *tap) observe(samples []float32) {
	lv := analysis.Measure(samples)
	t.mu.Lock()
	t.levels = lv
	rec := t.rec
	if t.err != nil {
		rec = nil
	}
	t.mu.Unlock()

	if rec == nil {
		return
	}
	if err := rec.Write(samples); err != nil {
		t.mu.Lock()
		if t.err == nil {
			t.err = err
		}
		t.mu.Unlock()
	}
}

func (t *tap) latest() analysis.Levels {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.levels
}

// recordedFrames is 0 when not recording.
func (t *tap) recordedFrames() int {
	if t.rec == nil {
		return 0
	}
	return t.rec.Frames()
}

func (t *tap) close() error {
	if t.rec == nil {
		return nil
	}
	err := t.rec.Close()
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	return err
}
