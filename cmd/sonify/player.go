//go:build !noaudio

package main

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/cwbudde/algo-sonify/synth"
	"github.com/ebitengine/oto/v3"
)

// player pulls rendered audio from a synth context into an oto stream.
type player struct {
	src *synth.Context
	tap *tap

	otoCtx *oto.Context
	player *oto.Player
	mu     sync.Mutex
}

func openPlayer(src *synth.Context, t *tap) (*player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   int(src.SampleRate()),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   40 * time.Millisecond,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	p := &player{src: src, tap: t, otoCtx: ctx}
	p.player = ctx.NewPlayer(p)
	p.player.Play()
	return p, nil
}

// Read implements io.Reader for oto.
func (p *player) Read(b []byte) (int, error) {
	frames := len(b) / 8
	samples := p.src.Process(frames)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(s))
	}
	clear(b[8*frames:])
	if p.tap != nil {
		p.tap.observe(samples)
	}
	return len(b), nil
}

func (p *player) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}
