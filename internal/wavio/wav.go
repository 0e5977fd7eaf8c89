// Package wavio reads and writes the stereo WAV files used for impulse
// responses and recordings.
package wavio

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// ReadStereo decodes a WAV file into left/right channels. Mono files are
// duplicated into both channels; channels beyond the second are ignored.
func ReadStereo(path string) ([]float32, []float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, nil, 0, fmt.Errorf("invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, nil, 0, fmt.Errorf("invalid wav buffer: %s", path)
	}

	numCh := buf.Format.NumChannels
	rate := buf.Format.SampleRate
	if rate <= 0 {
		return nil, nil, 0, fmt.Errorf("invalid wav sample-rate: %d", rate)
	}
	frames := len(buf.Data) / numCh
	if frames == 0 {
		return nil, nil, 0, fmt.Errorf("empty wav data: %s", path)
	}

	left := make([]float32, frames)
	right := make([]float32, frames)
	for i := range frames {
		left[i] = buf.Data[i*numCh]
		if numCh == 1 {
			right[i] = left[i]
		} else {
			right[i] = buf.Data[i*numCh+1]
		}
	}
	return left, right, rate, nil
}

// Resample converts in from one sample rate to another. Equal rates return in
// unchanged.
func Resample(in []float32, fromRate, toRate int) ([]float32, error) {
	if fromRate == toRate {
		return in, nil
	}
	r, err := dspresample.NewForRates(
		float64(fromRate),
		float64(toRate),
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return nil, err
	}

	in64 := make([]float64, len(in))
	for i, v := range in {
		in64[i] = float64(v)
	}
	out64 := r.Process(in64)
	out := make([]float32, len(out64))
	for i, v := range out64 {
		out[i] = float32(v)
	}
	return out, nil
}

// WriteStereo writes separate left/right channels as a 16-bit stereo WAV.
func WriteStereo(path string, left, right []float32, sampleRate int) error {
	if len(left) != len(right) {
		return fmt.Errorf("left/right length mismatch")
	}
	data := make([]float32, len(left)*2)
	for i := range left {
		data[i*2] = left[i]
		data[i*2+1] = right[i]
	}

	w, err := Create(path, sampleRate)
	if err != nil {
		return err
	}
	if err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// Writer streams interleaved stereo float32 frames into a 16-bit WAV file.
// It is safe for concurrent use; the audio thread writes while the UI may close.
type Writer struct {
	mu         sync.Mutex
	f          *os.File
	enc        *wav.Encoder
	sampleRate int
	frames     int
	closed     bool
}

// Create opens path for writing, creating parent directories as needed.
func Create(path string, sampleRate int) (*Writer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{
		f:          f,
		enc:        wav.NewEncoder(f, sampleRate, 16, 2, 1),
		sampleRate: sampleRate,
	}, nil
}

// Write appends interleaved stereo samples.
func (w *Writer) Write(interleaved []float32) error {
	if len(interleaved)%2 != 0 {
		return fmt.Errorf("interleaved stereo data has odd length %d", len(interleaved))
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return fmt.Errorf("wav writer closed")
	}
	if len(interleaved) == 0 {
		return nil
	}
	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  w.sampleRate,
			NumChannels: 2,
		},
		Data:           interleaved,
		SourceBitDepth: 16,
	}
	if err := w.enc.Write(buf); err != nil {
		return err
	}
	w.frames += len(interleaved) / 2
	return nil
}

// Frames returns the number of stereo frames written so far.
func (w *Writer) Frames() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// Close finalizes the header and closes the file. Closing twice is a no-op.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	encErr := w.enc.Close()
	fileErr := w.f.Close()
	if encErr != nil {
		return encErr
	}
	return fileErr
}
