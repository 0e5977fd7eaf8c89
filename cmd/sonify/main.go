package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cwbudde/algo-sonify/freqmap"
	"github.com/cwbudde/algo-sonify/preset"
	"github.com/cwbudde/algo-sonify/sonify"
	"github.com/cwbudde/algo-sonify/synth"
	"github.com/cwbudde/algo-sonify/theme"
)

type options struct {
	presetPath string
	themeName  string
	signals    string
	mapping    string
	policy     string
	view       string
	irPath     string
	scroll     float64
	seed       int64

	sampleRate int
	fps        int
	sound      bool
	record     string
	logPath    string
}

func main() {
	var o options
	flag.StringVar(&o.presetPath, "preset", "", "Preset JSON file path (optional)")
	flag.StringVar(&o.themeName, "theme", "", "Colour theme: "+strings.Join(theme.Names(), ", "))
	flag.StringVar(&o.signals, "signals", "", "Comma-separated signals to show, e.g. Sine,Perlin")
	flag.StringVar(&o.mapping, "mapping", "", "Frequency mapping: linear or exponential")
	flag.StringVar(&o.policy, "policy", "", "Selection policy: gate or rebuild")
	flag.StringVar(&o.view, "view", "", "Chart view: scroll or sweep")
	flag.StringVar(&o.irPath, "ir", "", "Reverb IR WAV path override (optional)")
	flag.Float64Var(&o.scroll, "scroll", 0, "Scroll speed override (1-100)")
	flag.Int64Var(&o.seed, "seed", 0, "Random seed override (0 keeps the preset's)")
	flag.IntVar(&o.sampleRate, "sample-rate", 48000, "Audio sample rate in Hz")
	flag.IntVar(&o.fps, "fps", 60, "Ticks per second")
	flag.BoolVar(&o.sound, "sound", false, "Start with sound enabled")
	flag.StringVar(&o.record, "record", "", "Record the audio output to this WAV file")
	flag.StringVar(&o.logPath, "log", "", "Write diagnostics to this file")
	flag.Parse()

	p, err := loadPreset(&o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(io.Discard, "", 0)
	if o.logPath != "" {
		f, err := os.Create(o.logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, p, &o, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadPreset resolves the preset file and applies command-line overrides.
func loadPreset(o *options) (*preset.Preset, error) {
	p := preset.Default()
	if o.presetPath != "" {
		var err error
		if p, err = preset.LoadJSON(o.presetPath); err != nil {
			return nil, fmt.Errorf("loading preset %q: %w", o.presetPath, err)
		}
	}

	f := &preset.File{
		Theme:           o.themeName,
		Mapping:         o.mapping,
		Policy:          o.policy,
		View:            o.view,
		ReverbIRWavPath: o.irPath,
	}
	if o.signals != "" {
		f.Signals = strings.Split(o.signals, ",")
	}
	if o.scroll != 0 {
		f.ScrollSpeed = &o.scroll
	}
	if o.seed != 0 {
		f.Seed = &o.seed
	}
	if err := preset.ApplyFile(p, f); err != nil {
		return nil, err
	}
	if o.fps <= 0 {
		return nil, fmt.Errorf("fps must be > 0")
	}
	return p, nil
}

func run(ctx context.Context, p *preset.Preset, o *options, logger *log.Logger) error {
	t, err := newTap(o.record, o.sampleRate)
	if err != nil {
		return err
	}

	var out *player
	factory := func() (sonify.Context, error) {
		sctx, err := synth.NewContext(float64(o.sampleRate))
		if err != nil {
			return nil, err
		}
		pl, err := openPlayer(sctx, t)
		if err != nil {
			_ = sctx.Close()
			return nil, err
		}
		out = pl
		return sctx, nil
	}

	engine, err := sonify.NewEngine(p.Config, factory, sonify.WithLogger(logger))
	if err != nil {
		_ = t.close()
		return err
	}

	th, err := theme.ByName(p.Theme)
	if err != nil {
		_ = t.close()
		return err
	}
	pan := newPanel(p.Controls, th)

	term, err := openTerminal()
	if err != nil {
		_ = t.close()
		return err
	}
	defer term.restore()

	updates := make(chan sonify.AudioUpdate, 4)
	audioCtx, cancelAudio := context.WithCancel(ctx)
	audioDone := make(chan struct{})
	go func() {
		defer close(audioDone)
		_ = engine.RunAudio(audioCtx, updates)
	}()

	defer func() {
		cancelAudio()
		<-audioDone
		if out != nil {
			_ = out.close()
		}
		_ = engine.Close()
		if err := t.close(); err != nil {
			logger.Printf("recording: %v", err)
		}
	}()

	engine.SetControls(pan.controls)
	if o.sound {
		if err := engine.SetSound(true); err != nil {
			pan.message = err.Error()
		}
	}

	cols, rows := term.size()
	ch := newChart(cols, rows-3)
	ticker := time.NewTicker(time.Second / time.Duration(o.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case b := <-term.keys:
			switch pan.handleKey(b) {
			case actionQuit:
				return nil
			case actionToggleSound:
				if err := engine.ToggleSound(); err != nil {
					pan.message = err.Error()
				} else {
					pan.message = "sound " + engine.State().String()
				}
			}
		case <-ticker.C:
			frame, u := engine.Tick(pan.controls)
			offer(updates, u)

			if c, r := term.size(); c != ch.cols || r-3 != ch.rows {
				ch.resize(c, r-3)
			}
			ch.begin(frame, pan.theme)
			sonify.Render(frame, ch)
			if err := ch.flush(os.Stdout, statusLine(engine, pan, t), pan.message, "s sound  t theme  m mapping  1-5 signals  a/f/p/w/v/r/c/q/h/d nudge  x quit"); err != nil {
				return err
			}
		}
	}
}

// offer queues u, replacing a stale queued update when the audio side lags.
func offer(ch chan sonify.AudioUpdate, u sonify.AudioUpdate) {
	for {
		select {
		case ch <- u:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func statusLine(e *sonify.Engine, p *panel, t *tap) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "sound %s", e.State())
	if !e.SoundAvailable() {
		sb.WriteString(" (unavailable)")
	}
	fmt.Fprintf(&sb, " | %s | %s", p.controls.Mapping, p.theme.Name)
	if e.State() == sonify.SoundEnabled {
		lv := t.latest()
		fmt.Fprintf(&sb, " | out %.1f dBFS", lv.PeakDB())
	}
	if len(p.controls.Selected) > 0 {
		sel := p.controls.Selected[0]
		hz := e.Signal(sel).AudioFrequency()
		note, cents := freqmap.NearestNote(hz)
		fmt.Fprintf(&sb, " | %s %.1f Hz ~%s %+.0fc", sel, hz, note.Name, cents)
	}
	if n := t.recordedFrames(); n > 0 {
		fmt.Fprintf(&sb, " | rec %d frames", n)
	}
	return sb.String()
}
