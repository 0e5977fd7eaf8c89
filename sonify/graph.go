// Package sonify turns the waveform signals into sound and drives the
// combined visual/audio tick.
//
// The audio side talks to an audio graph through the small interfaces in this
// file. Parameters are automated on the graph's own clock (seconds), with
// either an immediate value or a scheduled ramp.
package sonify

// Shape is an oscillator waveform.
type Shape int

const (
	ShapeSine Shape = iota
	ShapeSawtooth
	ShapeSquare
)

func (s Shape) String() string {
	switch s {
	case ShapeSine:
		return "sine"
	case ShapeSawtooth:
		return "sawtooth"
	case ShapeSquare:
		return "square"
	}
	return "unknown"
}

// Param is an automatable node parameter.
type Param interface {
	// Value is the parameter value at the graph's current time.
	Value() float64
	SetValueAtTime(v, t float64)
	LinearRampToValueAtTime(v, t float64)
	// SetTargetAtTime approaches target exponentially from t on with the
	// given time constant.
	SetTargetAtTime(target, t, timeConstant float64)
	CancelScheduledValues(t float64)
}

// Node is a processing node in the audio graph.
type Node interface {
	Connect(dst Node) error
	// Disconnect removes every outgoing connection.
	Disconnect()
}

// Oscillator is a periodic source of one Shape.
type Oscillator interface {
	Node
	Frequency() Param
	Detune() Param // cents
	Start(t float64) error
	// Stop schedules the end of the oscillator. A second Stop fails.
	Stop(t float64) error
}

// Gain scales its input by an automatable factor.
type Gain interface {
	Node
	Gain() Param
}

// Filter is a lowpass biquad.
type Filter interface {
	Node
	Frequency() Param
	Q() Param
}

// Convolver convolves its mono-summed input with a stereo impulse response.
type Convolver interface {
	Node
	SetBuffer(left, right []float32) error
}

// Compressor parameters use dB for threshold and knee and seconds for
// attack and release.
type Compressor interface {
	Node
	Threshold() Param
	Knee() Param
	Ratio() Param
	Attack() Param
	Release() Param
}

// Context creates nodes and owns the audio clock.
type Context interface {
	CurrentTime() float64
	SampleRate() float64
	NewOscillator(shape Shape) Oscillator
	NewGain() Gain
	NewLowpass() Filter
	NewConvolver() Convolver
	NewCompressor() Compressor
	Destination() Node
	Close() error
}

// ContextFactory opens the audio environment. It is called lazily the first
// time sound is enabled.
type ContextFactory func() (Context, error)
