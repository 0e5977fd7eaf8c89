// Package analysis measures the rendered output: magnitude spectrum and
// peak / RMS levels.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/window"
	algofft "github.com/cwbudde/algo-fft"
)

// Analyzer computes Hann-windowed magnitude spectra of a fixed size.
// An Analyzer reuses its buffers and is not safe for concurrent use.
type Analyzer struct {
	size       int
	sampleRate float64
	plan       *algofft.Plan[complex128]
	win        []float64
	in         []complex128
	out        []complex128
}

// NewAnalyzer prepares an FFT of size points. size must be a power of two.
func NewAnalyzer(size int, sampleRate float64) (*Analyzer, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("fft size must be a power of two >= 2, got %d", size)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0")
	}
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("fft plan: %w", err)
	}
	return &Analyzer{
		size:       size,
		sampleRate: sampleRate,
		plan:       plan,
		win:        window.Generate(window.TypeHann, size, window.WithPeriodic()),
		in:         make([]complex128, size),
		out:        make([]complex128, size),
	}, nil
}

// Size returns the FFT length.
func (a *Analyzer) Size() int { return a.size }

// Spectrum analyzes the last Size() samples of x; shorter input is
// zero-padded. Magnitudes are normalized so a full-scale sine whose frequency
// sits on a bin reads close to 1.
func (a *Analyzer) Spectrum(x []float64) (Spectrum, error) {
	if len(x) > a.size {
		x = x[len(x)-a.size:]
	}
	var winSum float64
	for i := range a.in {
		w := a.win[i]
		winSum += w
		v := 0.0
		if i < len(x) {
			v = x[i]
		}
		a.in[i] = complex(v*w, 0)
	}
	if err := a.plan.Forward(a.out, a.in); err != nil {
		return Spectrum{}, err
	}

	bins := a.size/2 + 1
	mags := make([]float64, bins)
	scale := 2 / winSum
	for k := range mags {
		mags[k] = cmplx.Abs(a.out[k]) * scale
	}
	return Spectrum{SampleRate: a.sampleRate, Size: a.size, Magnitudes: mags}, nil
}

// Spectrum holds linear magnitudes for bins 0..Size/2.
type Spectrum struct {
	SampleRate float64
	Size       int
	Magnitudes []float64
}

// BinHz is the frequency spacing between bins.
func (s Spectrum) BinHz() float64 {
	if s.Size == 0 {
		return 0
	}
	return s.SampleRate / float64(s.Size)
}

// PeakFrequency returns the strongest frequency in [loHz, hiHz], refined by
// parabolic interpolation over the neighbouring bins. It returns 0 when the
// range holds no bins.
func (s Spectrum) PeakFrequency(loHz, hiHz float64) float64 {
	binHz := s.BinHz()
	if binHz == 0 || len(s.Magnitudes) < 3 {
		return 0
	}
	lo := max(1, int(math.Ceil(loHz/binHz)))
	hi := min(len(s.Magnitudes)-2, int(math.Floor(hiHz/binHz)))
	if lo > hi {
		return 0
	}
	best := lo
	for k := lo + 1; k <= hi; k++ {
		if s.Magnitudes[k] > s.Magnitudes[best] {
			best = k
		}
	}

	a := db(s.Magnitudes[best-1])
	b := db(s.Magnitudes[best])
	c := db(s.Magnitudes[best+1])
	offset := 0.0
	if den := a - 2*b + c; den != 0 {
		offset = 0.5 * (a - c) / den
	}
	return (float64(best) + core.Clamp(offset, -0.5, 0.5)) * binHz
}

// MagnitudesDB returns the spectrum in dBFS, floored at -240 dB.
func (s Spectrum) MagnitudesDB() []float64 {
	out := make([]float64, len(s.Magnitudes))
	for i, m := range s.Magnitudes {
		out[i] = db(m)
	}
	return out
}

// Bands sums energy between consecutive edges (Hz) and returns one dB level
// per band, len(edges)-1 values.
func (s Spectrum) Bands(edges []float64) []float64 {
	if len(edges) < 2 {
		return nil
	}
	binHz := s.BinHz()
	out := make([]float64, len(edges)-1)
	for b := range out {
		var power float64
		if binHz > 0 {
			lo := max(1, int(math.Ceil(edges[b]/binHz)))
			hi := min(len(s.Magnitudes)-1, int(math.Ceil(edges[b+1]/binHz))-1)
			for k := lo; k <= hi; k++ {
				power += s.Magnitudes[k] * s.Magnitudes[k]
			}
		}
		out[b] = max(core.LinearPowerToDB(power), -240)
	}
	return out
}

func db(x float64) float64 {
	if x < 1e-12 {
		x = 1e-12
	}
	return core.LinearToDB(x)
}
