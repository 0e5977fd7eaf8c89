package analysis

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
)

// Levels are per-channel peak and RMS amplitudes of a stereo block.
type Levels struct {
	PeakL, PeakR float64
	RMSL, RMSR   float64
}

// Measure computes levels of interleaved stereo samples.
func Measure(interleaved []float32) Levels {
	var lv Levels
	frames := len(interleaved) / 2
	if frames == 0 {
		return lv
	}
	var sumL, sumR float64
	for i := range frames {
		l := float64(interleaved[i*2])
		r := float64(interleaved[i*2+1])
		lv.PeakL = max(lv.PeakL, math.Abs(l))
		lv.PeakR = max(lv.PeakR, math.Abs(r))
		sumL += l * l
		sumR += r * r
	}
	lv.RMSL = math.Sqrt(sumL / float64(frames))
	lv.RMSR = math.Sqrt(sumR / float64(frames))
	return lv
}

// Peak is the larger channel peak.
func (l Levels) Peak() float64 { return max(l.PeakL, l.PeakR) }

// RMS is the RMS over both channels.
func (l Levels) RMS() float64 {
	return math.Sqrt(0.5 * (l.RMSL*l.RMSL + l.RMSR*l.RMSR))
}

// PeakDB returns Peak in dBFS, -Inf for silence.
func (l Levels) PeakDB() float64 { return core.LinearToDB(l.Peak()) }

// RMSDB returns RMS in dBFS, -Inf for silence.
func (l Levels) RMSDB() float64 { return core.LinearToDB(l.RMS()) }

// Mono averages interleaved stereo into one channel.
func Mono(interleaved []float32) []float64 {
	n := len(interleaved) / 2
	out := make([]float64, n)
	for i := range n {
		out[i] = 0.5 * (float64(interleaved[i*2]) + float64(interleaved[i*2+1]))
	}
	return out
}
