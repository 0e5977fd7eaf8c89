package waveform

import "testing"

func TestScrollBufferNeverExceedsCapacity(t *testing.T) {
	b := NewScrollBuffer(8)
	for i := 0; i < 100; i++ {
		b.Push(Sample{Timestamp: float64(i), Value: float64(i)})
		if b.Len() > b.Cap() {
			t.Fatalf("len %d exceeds cap %d", b.Len(), b.Cap())
		}
	}
	if b.Len() != 8 {
		t.Fatalf("expected full buffer, got %d", b.Len())
	}
}

func TestScrollBufferNewestFirstOldestEvicted(t *testing.T) {
	b := NewScrollBuffer(3)
	for i := 1; i <= 5; i++ {
		b.Push(Sample{Timestamp: float64(i), Value: float64(i * 10)})
	}
	want := []float64{50, 40, 30}
	for i, w := range want {
		s, ok := b.At(i)
		if !ok || s.Value != w {
			t.Fatalf("index %d: got %+v ok=%v want %f", i, s, ok, w)
		}
	}
	if _, ok := b.At(3); ok {
		t.Fatalf("expected evicted sample to be gone")
	}
}

func TestScrollBufferWindowOffsets(t *testing.T) {
	b := NewScrollBuffer(20)
	for i := 0; i < 20; i++ {
		b.Push(Sample{Value: float64(i)})
	}

	const width = 5
	var offsets []int
	var values []float64
	for off, v := range b.Window(width) {
		offsets = append(offsets, off)
		values = append(values, v)
	}
	if len(offsets) != width+1 {
		t.Fatalf("expected %d points, got %d", width+1, len(offsets))
	}
	for i := range offsets {
		if offsets[i] != width-i {
			t.Fatalf("offset %d: got %d want %d", i, offsets[i], width-i)
		}
		if values[i] != float64(19-i) {
			t.Fatalf("value %d: got %f want %f", i, values[i], float64(19-i))
		}
	}

	count := 0
	for range b.Window(width) {
		count++
	}
	if count != width+1 {
		t.Fatalf("window is not restartable: second pass yielded %d", count)
	}
}

func TestScrollBufferWindowShorterThanWidth(t *testing.T) {
	b := NewScrollBuffer(10)
	b.Push(Sample{Value: 1})
	b.Push(Sample{Value: 2})
	n := 0
	for off := range b.Window(700) {
		if off != 700-n {
			t.Fatalf("unexpected offset %d at %d", off, n)
		}
		n++
	}
	if n != 2 {
		t.Fatalf("expected 2 points, got %d", n)
	}
}

func TestScrollBufferSnapshotIsCopy(t *testing.T) {
	b := NewScrollBuffer(4)
	b.Push(Sample{Value: 1})
	snap := b.Snapshot()
	b.Push(Sample{Value: 2})
	if len(snap) != 1 || snap[0].Value != 1 {
		t.Fatalf("snapshot changed after push: %+v", snap)
	}
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("reset left %d samples", b.Len())
	}
}
