package nucleon

import "math"

// fastExp evaluates exp(x) over a fixed interval by nearest-entry table
// lookup. The thickness exponential dominates the per-pair cost, so the
// hot path trades a bounded interpolation error for a table read; inputs
// outside the tabulated interval fall back to math.Exp.
type fastExp struct {
	xmin, xmax float64
	dxInv      float64
	table      []float64
}

func newFastExp(xmin, xmax float64, steps int) *fastExp {
	dx := (xmax - xmin) / float64(steps-1)
	f := &fastExp{
		xmin:  xmin,
		xmax:  xmax,
		dxInv: 1 / dx,
		table: make([]float64, steps),
	}
	for i := range f.table {
		f.table[i] = math.Exp(xmin + float64(i)*dx)
	}
	return f
}

func (f *fastExp) eval(x float64) float64 {
	if x < f.xmin || x > f.xmax {
		return math.Exp(x)
	}
	return f.table[int((x-f.xmin)*f.dxInv+0.5)]
}
