package waveform

import (
	"math"
	"math/rand"
)

const (
	noiseYWrapB   = 4
	noiseYWrap    = 1 << noiseYWrapB
	noiseSize     = 4095
	noiseOctaves  = 4
	noiseFalloff  = 0.5
	noiseMidpoint = 0.5
)

// Noise is a seeded lattice value noise with cosine interpolation summed over
// four octaves. Output lies in [0, 1). The lattice is immutable after
// construction so At is safe for concurrent readers.
type Noise struct {
	lattice [noiseSize + 1]float64
}

// NewNoise builds a noise lattice from seed.
func NewNoise(seed int64) *Noise {
	n := &Noise{}
	rng := rand.New(rand.NewSource(seed))
	for i := range n.lattice {
		n.lattice[i] = rng.Float64()
	}
	return n
}

func scaledCosine(i float64) float64 {
	return 0.5 * (1.0 - math.Cos(i*math.Pi))
}

// At samples the noise field at (x, y). Negative coordinates are mirrored.
func (n *Noise) At(x, y float64) float64 {
	if n == nil || !isFinite(x) || !isFinite(y) {
		return noiseMidpoint
	}
	x = math.Abs(x)
	y = math.Abs(y)

	xi, yi := int(x), int(y)
	xf, yf := x-float64(xi), y-float64(yi)

	r := 0.0
	ampl := 0.5
	for o := 0; o < noiseOctaves; o++ {
		of := xi + (yi << noiseYWrapB)

		rxf := scaledCosine(xf)
		ryf := scaledCosine(yf)

		n1 := n.lattice[of&noiseSize]
		n1 += rxf * (n.lattice[(of+1)&noiseSize] - n1)
		n2 := n.lattice[(of+noiseYWrap)&noiseSize]
		n2 += rxf * (n.lattice[(of+noiseYWrap+1)&noiseSize] - n2)
		n1 += ryf * (n2 - n1)

		r += n1 * ampl
		ampl *= noiseFalloff

		xi <<= 1
		xf *= 2
		yi <<= 1
		yf *= 2
		if xf >= 1.0 {
			xi++
			xf--
		}
		if yf >= 1.0 {
			yi++
			yf--
		}
	}
	return r
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
