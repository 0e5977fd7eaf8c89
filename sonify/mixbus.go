package sonify

import "fmt"

// BusSettings are the shared bus controls for a tick.
type BusSettings struct {
	MasterVolume float64
	ReverbMix    float64
	FilterCutoff float64
	FilterQ      float64
}

// MixBus is the shared signal path:
//
//	voices -> master -> lowpass -> compressor -> destination
//	                       \-> reverb send -> convolver -/
type MixBus struct {
	ctx        Context
	master     Gain
	filter     Filter
	send       Gain
	convolver  Convolver
	compressor Compressor

	transition float64
	last       BusSettings
	applied    bool
}

// NewMixBus builds the bus on ctx. A nil impulse response leaves the wet
// path silent.
func NewMixBus(ctx Context, cfg *Config, irLeft, irRight []float32) (*MixBus, error) {
	b := &MixBus{
		ctx:        ctx,
		master:     ctx.NewGain(),
		filter:     ctx.NewLowpass(),
		send:       ctx.NewGain(),
		convolver:  ctx.NewConvolver(),
		compressor: ctx.NewCompressor(),
		transition: cfg.TransitionTime,
	}

	now := ctx.CurrentTime()
	c := cfg.Compressor
	b.compressor.Threshold().SetValueAtTime(c.ThresholdDB, now)
	b.compressor.Knee().SetValueAtTime(c.KneeDB, now)
	b.compressor.Ratio().SetValueAtTime(c.Ratio, now)
	b.compressor.Attack().SetValueAtTime(c.AttackS, now)
	b.compressor.Release().SetValueAtTime(c.ReleaseS, now)

	if len(irLeft) > 0 {
		if err := b.convolver.SetBuffer(irLeft, irRight); err != nil {
			return nil, fmt.Errorf("reverb impulse response: %w", err)
		}
	}

	links := []struct {
		src Node
		dst Node
	}{
		{b.master, b.filter},
		{b.filter, b.compressor},
		{b.filter, b.send},
		{b.send, b.convolver},
		{b.convolver, b.compressor},
		{b.compressor, ctx.Destination()},
	}
	for _, l := range links {
		if err := l.src.Connect(l.dst); err != nil {
			b.Close()
			return nil, fmt.Errorf("mix bus: %w", err)
		}
	}
	return b, nil
}

// Input is where voices connect.
func (b *MixBus) Input() Node { return b.master }

// Apply moves the bus toward s. The first call sets values directly; later
// changes are ramped over the transition time, the reverb send linearly.
func (b *MixBus) Apply(s BusSettings) {
	now := b.ctx.CurrentTime()
	if !b.applied {
		b.master.Gain().SetValueAtTime(s.MasterVolume, now)
		b.send.Gain().SetValueAtTime(s.ReverbMix, now)
		b.filter.Frequency().SetValueAtTime(s.FilterCutoff, now)
		b.filter.Q().SetValueAtTime(s.FilterQ, now)
		b.last, b.applied = s, true
		return
	}

	if s.MasterVolume != b.last.MasterVolume {
		b.master.Gain().SetTargetAtTime(s.MasterVolume, now, b.transition)
	}
	if s.ReverbMix != b.last.ReverbMix {
		g := b.send.Gain()
		g.CancelScheduledValues(now)
		g.SetValueAtTime(g.Value(), now)
		g.LinearRampToValueAtTime(s.ReverbMix, now+b.transition)
	}
	if s.FilterCutoff != b.last.FilterCutoff {
		b.filter.Frequency().SetTargetAtTime(s.FilterCutoff, now, b.transition)
	}
	if s.FilterQ != b.last.FilterQ {
		b.filter.Q().SetTargetAtTime(s.FilterQ, now, b.transition)
	}
	b.last = s
}

// Settings returns the last applied settings.
func (b *MixBus) Settings() BusSettings { return b.last }

// Close disconnects every bus node.
func (b *MixBus) Close() {
	for _, n := range []Node{b.master, b.filter, b.send, b.convolver, b.compressor} {
		n.Disconnect()
	}
}
