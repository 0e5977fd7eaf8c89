package synth

import "github.com/cwbudde/algo-sonify/sonify"

type stereo [2][]float64

func newStereo() stereo {
	return stereo{make([]float64, QuantumFrames), make([]float64, QuantumFrames)}
}

func (s stereo) zero() {
	clear(s[0])
	clear(s[1])
}

// graphNode is implemented by every node type in this package.
type graphNode interface {
	sonify.Node
	base() *node
	// process renders one quantum into n.out; in holds the summed inputs.
	process(q int64, in stereo)
}

// node is the connection and caching state shared by all node types.
type node struct {
	ctx  *Context
	self graphNode

	inputs  []*node
	outputs []*node

	in, out  stereo
	rendered int64
	visiting bool
}

func (n *node) init(ctx *Context, self graphNode) {
	n.ctx = ctx
	n.self = self
	n.in = newStereo()
	n.out = newStereo()
	n.rendered = -1
}

func (n *node) base() *node { return n }

// Connect routes this node's output into dst.
func (n *node) Connect(dst sonify.Node) error {
	g, ok := dst.(graphNode)
	if !ok || g.base().ctx != n.ctx {
		return ErrForeignNode
	}
	d := g.base()
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	for _, o := range n.outputs {
		if o == d {
			return nil
		}
	}
	n.outputs = append(n.outputs, d)
	d.inputs = append(d.inputs, n)
	return nil
}

func (n *node) Disconnect() {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	for _, d := range n.outputs {
		d.inputs = removeNode(d.inputs, n)
	}
	n.outputs = nil
}

// pull renders quantum q once and returns the cached output. A node reached
// again while it is rendering contributes silence, which breaks cycles.
func (n *node) pull(q int64) stereo {
	if n.rendered == q {
		return n.out
	}
	if n.visiting {
		return stereo{zeros[:], zeros[:]}
	}
	n.visiting = true
	n.in.zero()
	for _, src := range n.inputs {
		s := src.pull(q)
		for ch := range 2 {
			for i, v := range s[ch] {
				n.in[ch][i] += v
			}
		}
	}
	n.self.process(q, n.in)
	n.visiting = false
	n.rendered = q
	return n.out
}

var zeros [QuantumFrames]float64

func removeNode(list []*node, n *node) []*node {
	out := list[:0]
	for _, x := range list {
		if x != n {
			out = append(out, x)
		}
	}
	return out
}

// frameTime is the time of frame i in quantum q.
func (n *node) frameTime(q int64, i int) float64 {
	return float64(q*QuantumFrames+int64(i)) / n.ctx.sampleRate
}

// Destination sums everything connected to it.
type Destination struct{ node }

func (d *Destination) process(_ int64, in stereo) {
	copy(d.out[0], in[0])
	copy(d.out[1], in[1])
}
