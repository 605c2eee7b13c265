package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// MarginalTransform is a monotone map from a standard-normal sample to a
// Gamma(shape, scale=1/shape) sample, built once as an inverse-CDF lookup
// table. Applied pointwise to a correlated Gaussian field it preserves the
// field's rank-order spatial structure while fixing the marginal law.
// Immutable after construction and safe for concurrent readers.
type MarginalTransform struct {
	shape float64
	cdf   []float64 // gamma CDF samples, strictly increasing
	x     []float64 // gamma abscissas matching cdf
	inv   interp.PiecewiseLinear
}

// NewMarginalTransform samples the Gamma(shape) CDF at tableSize evenly
// spaced abscissas covering ten standard deviations and fits the inverse
// interpolant. The gamma quantile has no closed form, hence the table.
func NewMarginalTransform(tableSize int, shape float64) (*MarginalTransform, error) {
	if tableSize < 2 {
		return nil, fmt.Errorf("field: marginal table size must be at least 2, got %d", tableSize)
	}
	if shape <= 0 {
		return nil, fmt.Errorf("field: gamma shape must be positive, got %g", shape)
	}

	dx := 10 * math.Sqrt(shape) / float64(tableSize)
	cdf := make([]float64, 0, tableSize)
	x := make([]float64, 0, tableSize)
	for i := 0; i < tableSize; i++ {
		xi := float64(i) * dx
		ci := mathext.GammaIncReg(shape, xi)
		// The CDF saturates to 1 in float64 well before the last abscissa
		// for small shapes; keep only the strictly increasing prefix so the
		// inverse stays well defined.
		if i > 0 && ci <= cdf[len(cdf)-1] {
			break
		}
		cdf = append(cdf, ci)
		x = append(x, xi)
	}
	if len(cdf) < 2 {
		return nil, fmt.Errorf("field: degenerate marginal table for shape %g", shape)
	}

	mt := &MarginalTransform{shape: shape, cdf: cdf, x: x}
	if err := mt.inv.Fit(cdf, x); err != nil {
		return nil, fmt.Errorf("field: fitting inverse CDF: %w", err)
	}
	return mt, nil
}

// Apply maps a standard-normal sample to its gamma-quantile counterpart.
// Probabilities outside the table clamp to the boundary quantiles, and
// interpolation results that round below zero floor at zero.
func (mt *MarginalTransform) Apply(gaussian float64) float64 {
	p := distuv.UnitNormal.CDF(gaussian)
	switch {
	case p < mt.cdf[0]:
		return mt.x[0] / mt.shape
	case p > mt.cdf[len(mt.cdf)-1]:
		return mt.x[len(mt.x)-1] / mt.shape
	}
	v := mt.inv.Predict(p) / mt.shape
	if v < 0 {
		return 0
	}
	return v
}
