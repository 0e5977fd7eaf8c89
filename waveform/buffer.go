package waveform

import "iter"

// Sample is one time-stamped value of a signal.
type Sample struct {
	Timestamp float64
	Value     float64
}

// ScrollBuffer keeps the most recent samples of a signal, newest at index 0.
// Once full, every Push evicts the oldest sample. Push is O(1).
//
// ScrollBuffer is not safe for concurrent use; readers that run on another
// goroutine should work from Snapshot.
type ScrollBuffer struct {
	data []Sample
	head int // index of the newest sample
	n    int
}

// NewScrollBuffer allocates a buffer holding at most capacity samples.
// A capacity below 1 is raised to 1.
func NewScrollBuffer(capacity int) *ScrollBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &ScrollBuffer{
		data: make([]Sample, capacity),
		head: capacity - 1,
	}
}

// Push inserts s at the front.
func (b *ScrollBuffer) Push(s Sample) {
	b.head--
	if b.head < 0 {
		b.head = len(b.data) - 1
	}
	b.data[b.head] = s
	if b.n < len(b.data) {
		b.n++
	}
}

// Len returns the number of stored samples.
func (b *ScrollBuffer) Len() int {
	return b.n
}

// Cap returns the maximum number of stored samples.
func (b *ScrollBuffer) Cap() int {
	return len(b.data)
}

// At returns the i-th newest sample. At(0) is the most recent push.
func (b *ScrollBuffer) At(i int) (Sample, bool) {
	if i < 0 || i >= b.n {
		return Sample{}, false
	}
	return b.data[(b.head+i)%len(b.data)], true
}

// Reset drops every sample.
func (b *ScrollBuffer) Reset() {
	b.n = 0
	b.head = len(b.data) - 1
}

// Window yields (pixelOffset, value) for the visible part of the chart, where
// pixelOffset = visibleWidth - index for index 0..visibleWidth. Samples past the
// visible width are not yielded. The sequence can be ranged over repeatedly.
func (b *ScrollBuffer) Window(visibleWidth int) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		last := min(visibleWidth, b.n-1)
		for i := 0; i <= last; i++ {
			s, _ := b.At(i)
			if !yield(visibleWidth-i, s.Value) {
				return
			}
		}
	}
}

// Snapshot copies the samples newest-first.
func (b *ScrollBuffer) Snapshot() []Sample {
	out := make([]Sample, b.n)
	for i := range out {
		out[i], _ = b.At(i)
	}
	return out
}
