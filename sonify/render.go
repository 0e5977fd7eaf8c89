package sonify

import "github.com/cwbudde/algo-sonify/waveform"

// Point is a chart coordinate. X runs from 0 (left) to Frame.Width; Y is the
// signal value, positive up, within +-Frame.Height/2.
type Point struct {
	X, Y float64
}

// Trace is one signal's polyline.
type Trace struct {
	Type   waveform.Type
	Label  string
	Points []Point
}

// Frame is everything a renderer needs for one tick.
type Frame struct {
	Width  int
	Height int
	View   View
	Traces []Trace // selected signals in legend order
	Time   float64 // time of the first selected signal
	Sound  State
}

// RenderSink draws frames. Colours are looked up by signal type.
type RenderSink interface {
	DrawPolyline(colorKey waveform.Type, points []Point)
	DrawLegendEntry(label string, colorKey waveform.Type, slot int)
	DrawTimeBadge(t float64)
}

// Render draws every trace, then the legend and the time badge. Each trace
// reaches DrawPolyline once per frame, even with fewer than two points.
func Render(f Frame, sink RenderSink) {
	for _, tr := range f.Traces {
		sink.DrawPolyline(tr.Type, tr.Points)
	}
	for i, tr := range f.Traces {
		sink.DrawLegendEntry(tr.Label, tr.Type, i)
	}
	sink.DrawTimeBadge(f.Time)
}

func (e *Engine) frame(c Controls) Frame {
	f := Frame{
		Width:  e.cfg.ChartWidth,
		Height: e.cfg.ChartHeight,
		View:   e.cfg.View,
		Traces: make([]Trace, 0, len(c.Selected)),
	}
	half := e.cfg.HalfHeight()
	for i, t := range c.Selected {
		s := e.signals[t]
		if i == 0 {
			f.Time = s.Time()
		}
		tr := Trace{Type: t, Label: s.Label()}
		switch e.cfg.View {
		case ViewSweep:
			ys := s.Trace(f.Width, half)
			tr.Points = make([]Point, len(ys))
			for x, y := range ys {
				tr.Points[x] = Point{X: float64(x), Y: y}
			}
		default:
			tr.Points = make([]Point, 0, min(s.Buffer().Len(), f.Width+1))
			for x, y := range s.Buffer().Window(f.Width) {
				tr.Points = append(tr.Points, Point{X: float64(x), Y: y})
			}
		}
		f.Traces = append(f.Traces, tr)
	}
	return f
}
