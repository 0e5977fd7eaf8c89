package freqmap

import "math"

// Note is a named pitch in equal temperament, A4 = 440 Hz.
type Note struct {
	Name      string
	Frequency float64
}

var notes = []Note{
	{"C3", 130.81},
	{"C#3/Db3", 138.59},
	{"D3", 146.83},
	{"D#3/Eb3", 155.56},
	{"E3", 164.81},
	{"F3", 174.61},
	{"F#3/Gb3", 185.00},
	{"G3", 196.00},
	{"G#3/Ab3", 207.65},
	{"A3", 220.00},
	{"A#3/Bb3", 233.08},
	{"B3", 246.94},
	{"C4", 261.63},
	{"C#4/Db4", 277.18},
	{"D4", 293.66},
	{"D#4/Eb4", 311.13},
	{"E4", 329.63},
	{"F4", 349.23},
	{"F#4/Gb4", 369.99},
	{"G4", 392.00},
	{"G#4/Ab4", 415.30},
	{"A4", 440.00},
	{"A#4/Bb4", 466.16},
	{"B4", 493.88},
	{"C5", 523.25},
}

// Notes returns the C3..C5 table.
func Notes() []Note {
	return append([]Note(nil), notes...)
}

// NearestNote returns the table entry closest to hz in cents, and the
// deviation in cents. Pitches outside C3..C5 snap to the nearest end.
func NearestNote(hz float64) (Note, float64) {
	if !(hz > 0) || math.IsInf(hz, 0) {
		return notes[0], 0
	}
	best := notes[0]
	bestCents := math.Inf(1)
	for _, n := range notes {
		c := 1200 * math.Log2(hz/n.Frequency)
		if math.Abs(c) < math.Abs(bestCents) {
			best, bestCents = n, c
		}
	}
	return best, bestCents
}
