// Package field synthesizes the spatially correlated substructure density
// field and its gamma marginal remap.
package field

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/kweller/subnucleon/config"
	"github.com/kweller/subnucleon/randsrc"
)

// Generator produces periodic 2D random field realizations with a Gaussian
// correlation function of the configured correlation length. Synthesis runs
// white noise -> FFT -> radial Gaussian transfer function -> inverse FFT,
// then remaps the marginal from normal to gamma. Spectral filtering keeps
// the cost at O(N log N) where a real-space convolution would be O(N*kernel).
type Generator struct {
	n1, n2 int
	l1, l2 float64

	// Spectral transfer constants, precomputed from the correlation length.
	varK   float64 // overall filter amplitude
	coeffK float64 // -2*pi^2*lx^2, exponent scale

	remap  *MarginalTransform
	stream *randsrc.Stream

	// Current realization and reusable spectral scratch.
	field [][]float64
	phi   [][]complex128
}

// New builds a generator for the configured grid. The first realization is
// not synthesized until Regenerate is called.
func New(fc config.FieldConfig, stream *randsrc.Stream) (*Generator, error) {
	remap, err := NewMarginalTransform(fc.MarginalTableSize, fc.Variance)
	if err != nil {
		return nil, fmt.Errorf("field: building marginal transform: %w", err)
	}

	lx := fc.CorrelationLength
	g := &Generator{
		n1:     fc.GridN1,
		n2:     fc.GridN2,
		l1:     fc.Length1,
		l2:     fc.Length2,
		varK:   math.Sqrt(2 * math.Pi * lx * lx / float64(fc.GridN1) / float64(fc.GridN2) / fc.Length1 / fc.Length2),
		coeffK: -2 * math.Pi * math.Pi * lx * lx,
		remap:  remap,
		stream: stream,
		field:  make([][]float64, fc.GridN1),
		phi:    make([][]complex128, fc.GridN1),
	}
	for i := range g.field {
		g.field[i] = make([]float64, fc.GridN2)
		g.phi[i] = make([]complex128, fc.GridN2)
	}
	return g, nil
}

// Regenerate synthesizes a fresh realization in place.
func (g *Generator) Regenerate() {
	g.whiteNoise()
	k := fft.FFT2(g.phi)
	g.applyTransfer(k)
	x := fft.IFFT2(k)

	// IFFT2 is normalized by 1/(n1*n2); the filter amplitude assumes an
	// unnormalized inverse transform, so scale back up here.
	norm := float64(g.n1 * g.n2)
	for i := range g.field {
		for j := range g.field[i] {
			g.field[i][j] = g.remap.Apply(real(x[i][j]) * norm)
		}
	}
}

// whiteNoise fills the scratch grid with independent standard-normal draws.
func (g *Generator) whiteNoise() {
	for i := range g.phi {
		for j := range g.phi[i] {
			g.phi[i][j] = complex(g.stream.Normal(), 0)
		}
	}
}

// applyTransfer multiplies each spectral coefficient by the radially
// symmetric Gaussian filter. Frequencies fold back above Nyquist, hence the
// min(i, n-i) index mapping.
func (g *Generator) applyTransfer(k [][]complex128) {
	for i := 0; i < g.n1; i++ {
		si := float64(min(i, g.n1-i)) / g.l1
		for j := 0; j < g.n2; j++ {
			sj := float64(min(j, g.n2-j)) / g.l2
			ker := g.varK * math.Exp(0.5*g.coeffK*(si*si+sj*sj))
			k[i][j] *= complex(ker, 0)
		}
	}
}

// Value returns the field at grid index (i, j). Indices wrap modulo the
// grid size, so offset queries past the nominal bounds stay defined.
func (g *Generator) Value(i, j int) float64 {
	i = ((i % g.n1) + g.n1) % g.n1
	j = ((j % g.n2) + g.n2) % g.n2
	return g.field[i][j]
}

// Dims returns the grid resolution.
func (g *Generator) Dims() (int, int) {
	return g.n1, g.n2
}
