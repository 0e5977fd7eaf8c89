package synth

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-approx"
	"github.com/cwbudde/algo-sonify/sonify"
)

type eventKind int

const (
	evSetValue eventKind = iota
	evLinearRamp
	evSetTarget
)

type event struct {
	kind  eventKind
	time  float64
	value float64
	tau   float64

	// set when a target event becomes active
	started bool
	from    float64
}

// Param is an a-rate automatable parameter. Its timeline follows the usual
// set / linear ramp / exponential approach semantics, evaluated per frame.
type Param struct {
	ctx      *Context
	value    float64
	min, max float64

	events []event
	// start point of a linear ramp
	anchorT, anchorV float64
}

var _ sonify.Param = (*Param)(nil)

func newParam(ctx *Context, value, lo, hi float64) *Param {
	return &Param{ctx: ctx, value: value, min: lo, max: hi}
}

// Value returns the most recently rendered value.
func (p *Param) Value() float64 {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	return p.clamp(p.value)
}

func (p *Param) SetValueAtTime(v, t float64) {
	if !finite(v) || !finite(t) {
		return
	}
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.insert(event{kind: evSetValue, time: t, value: v})
}

func (p *Param) LinearRampToValueAtTime(v, t float64) {
	if !finite(v) || !finite(t) {
		return
	}
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	if len(p.events) == 0 {
		// Ramp from the current value, starting now.
		p.insert(event{kind: evSetValue, time: p.ctx.now(), value: p.value})
	}
	p.insert(event{kind: evLinearRamp, time: t, value: v})
}

func (p *Param) SetTargetAtTime(target, t, timeConstant float64) {
	if !finite(target) || !finite(t) || !finite(timeConstant) {
		return
	}
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	if timeConstant <= 0 {
		p.insert(event{kind: evSetValue, time: t, value: target})
		return
	}
	p.insert(event{kind: evSetTarget, time: t, value: target, tau: timeConstant})
}

// CancelScheduledValues drops every event at or after t.
func (p *Param) CancelScheduledValues(t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	keep := p.events[:0]
	for _, e := range p.events {
		if e.time < t {
			keep = append(keep, e)
		}
	}
	p.events = keep
}

// insert keeps events ordered by time; equal times keep insertion order.
func (p *Param) insert(e event) {
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].time > e.time })
	p.events = append(p.events, event{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = e
}

// fill writes the parameter value for every frame of quantum q into out.
func (p *Param) fill(n *node, q int64, out []float64) {
	if len(p.events) == 0 {
		for i := range out {
			out[i] = p.value
		}
		return
	}
	for i := range out {
		out[i] = p.at(n.frameTime(q, i))
	}
}

// kvalue evaluates the parameter once at the start of quantum q.
func (p *Param) kvalue(n *node, q int64) float64 {
	if len(p.events) == 0 {
		return p.value
	}
	return p.at(n.frameTime(q, 0))
}

// at advances the timeline to t, which must not decrease between calls.
func (p *Param) at(t float64) float64 {
	for len(p.events) > 0 {
		e := &p.events[0]
		if e.time > t && e.kind != evLinearRamp {
			break
		}
		switch e.kind {
		case evSetValue:
			p.settle(e.value, e.time)
			continue
		case evLinearRamp:
			if e.time <= t {
				p.settle(e.value, e.time)
				continue
			}
			span := e.time - p.anchorT
			if span <= 0 {
				p.value = e.value
			} else {
				frac := (t - p.anchorT) / span
				p.value = p.anchorV + (e.value-p.anchorV)*math.Max(0, frac)
			}
			return p.clamp(p.value)
		case evSetTarget:
			if !e.started {
				e.started = true
				e.from = p.value
			}
			if len(p.events) > 1 && p.events[1].time <= t {
				next := p.events[1].time
				p.settle(e.approach(next), next)
				continue
			}
			p.value = e.approach(t)
			return p.clamp(p.value)
		}
	}
	return p.clamp(p.value)
}

// settle finishes the head event at time t with value v.
func (p *Param) settle(v, t float64) {
	p.value = v
	p.anchorT, p.anchorV = t, v
	p.events = p.events[1:]
}

func (e *event) approach(t float64) float64 {
	x := -(t - e.time) / e.tau
	if x < -30 {
		return e.value
	}
	return e.value + (e.from-e.value)*float64(approx.FastExp(float32(x)))
}

func (p *Param) clamp(v float64) float64 {
	return min(max(v, p.min), p.max)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
