package nucleon

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kweller/subnucleon/config"
	"github.com/kweller/subnucleon/field"
	"github.com/kweller/subnucleon/randsrc"
)

// Profile encapsulates properties shared by all nucleons: the transverse
// thickness function, cross section, multiplicity fluctuations, and the
// substructure field. It samples nucleon-nucleon participation per pair.
//
// A Profile owns one field realization and one fluctuation prefactor, both
// mutable, so it is single-threaded by design; concurrent event processing
// takes one Profile (with its own Stream) per worker. The kernel table and
// marginal transform inside are immutable and shared safely.
type Profile struct {
	widthSqr     float64
	truncSqr     float64
	maxImpactSqr float64

	// Cached -1/(2w^2) for the thickness exponent.
	negHalfInvWidthSqr float64

	crossSecParam float64
	cellSize1     float64
	cellSize2     float64

	gen    *field.Generator
	kernel *KernelTable
	fexp   *fastExp

	fluctDist distuv.Gamma
	stream    *randsrc.Stream

	// Thickness prefactor = fluct / (2*pi*w^2), refreshed by Fluctuate.
	prefactor float64
}

// NewProfile builds a profile from the configuration, synthesizes the first
// field realization, and performs one initial fluctuation so the prefactor
// is never read uninitialized.
func NewProfile(cfg *config.Config, stream *randsrc.Stream) (*Profile, error) {
	gen, err := field.New(cfg.Field, stream)
	if err != nil {
		return nil, fmt.Errorf("nucleon: %w", err)
	}
	gen.Regenerate()

	d := &cfg.Derived
	k := cfg.Nucleon.FluctShape
	p := &Profile{
		widthSqr:           d.WidthSqr,
		truncSqr:           d.TruncSqr,
		maxImpactSqr:       d.MaxImpactSqr,
		negHalfInvWidthSqr: -0.5 / d.WidthSqr,
		crossSecParam:      cfg.Nucleon.CrossSectionParam,
		cellSize1:          d.CellSize1,
		cellSize2:          d.CellSize2,
		gen:                gen,
		kernel:             NewKernelTable(d.KernelCut, cfg.Nucleon.Width, d.CellArea),
		fexp:               newFastExp(-0.5*d.TruncSqr/d.WidthSqr, 0, 1000),
		fluctDist:          stream.Gamma(k, 1/k),
		stream:             stream,
	}
	p.Fluctuate()
	return p, nil
}

// Radius returns the radius at which the thickness profile is truncated.
func (p *Profile) Radius() float64 {
	return math.Sqrt(p.truncSqr)
}

// MaxImpact returns the maximum impact parameter for participation.
func (p *Profile) MaxImpact() float64 {
	return math.Sqrt(p.maxImpactSqr)
}

// Fluctuate draws a fresh multiplicity factor into the thickness prefactor.
// Call once per nucleon before evaluating its thickness for a new event.
func (p *Profile) Fluctuate() {
	p.prefactor = p.fluctDist.Rand() / (2 * math.Pi) / p.widthSqr
}

// Thickness computes the thickness function at a squared distance from the
// profile center. Zero beyond the truncation radius.
func (p *Profile) Thickness(distanceSqr float64) float64 {
	if distanceSqr > p.truncSqr {
		return 0
	}
	return p.prefactor * p.fexp.eval(p.negHalfInvWidthSqr*distanceSqr)
}

// Participate randomly determines whether a pair of nucleons participates,
// marking both when it does.
func (p *Profile) Participate(a, b *Nucleon) bool {
	// If both nucleons are already participants, there's nothing to do.
	if a.IsParticipant() && b.IsParticipant() {
		return true
	}

	dx := a.X() - b.X()
	dy := a.Y() - b.Y()
	distanceSqr := dx*dx + dy*dy

	// Check if nucleons are out of range.
	if distanceSqr > p.maxImpactSqr {
		return false
	}

	// The probability is
	//   P = 1 - exp(-Kf * exp(cross_param - b^2/(4w^2)))
	// evaluated in its complementary form to avoid cancellation for small P,
	// and sampled as (1 - P) < U, exploiting the symmetry of the uniform.
	kf := p.overlap(a, b, dx, dy)
	oneMinusProb := math.Exp(-kf * math.Exp(p.crossSecParam-0.25*distanceSqr/p.widthSqr))

	if oneMinusProb < p.stream.Uniform() {
		a.setParticipant()
		b.setParticipant()
		return true
	}
	return false
}

// Overlap returns the substructure overlap factor Kf for a pair, as used
// inside Participate. Exposed for diagnostics and telemetry.
func (p *Profile) Overlap(a, b *Nucleon) float64 {
	return p.overlap(a, b, a.X()-b.X(), a.Y()-b.Y())
}

// overlap computes the substructure overlap factor Kf: the kernel-weighted
// sum of both nucleons' field patches, with the pair's physical separation
// mapped onto grid offsets for the second patch.
func (p *Profile) overlap(a, b *Nucleon, dx, dy float64) float64 {
	si := int(math.Round(dx / p.cellSize1))
	sj := int(math.Round(dy / p.cellSize2))

	cut := p.kernel.Cut()
	var kf float64
	for di := -cut; di <= cut; di++ {
		for dj := -cut; dj <= cut; dj++ {
			kf += p.kernel.Weight(di, dj) *
				p.gen.Value(a.FI()+di, a.FJ()+dj) *
				p.gen.Value(b.FI()+di+si, b.FJ()+dj+sj)
		}
	}
	return kf
}

// Substructure returns the raw field value at offset (i, j) from anchor
// (ic, jc), for orchestration that deposits density outside the
// participation path.
func (p *Profile) Substructure(ic, jc, i, j int) float64 {
	return p.gen.Value(ic+i, jc+j)
}

// NewEvent synthesizes a fresh field realization for the next event.
func (p *Profile) NewEvent() {
	p.gen.Regenerate()
}

// ThicknessMap evaluates the substructure-weighted thickness of a nucleon
// on the given sample coordinates: the smooth profile modulated by the
// field patch around the nucleon's anchor. Rows index xs, columns ys.
func (p *Profile) ThicknessMap(n *Nucleon, xs, ys []float64) [][]float64 {
	out := make([][]float64, len(xs))
	for i, x := range xs {
		out[i] = make([]float64, len(ys))
		rx := x - n.X()
		di := int(math.Round(rx / p.cellSize1))
		for j, y := range ys {
			ry := y - n.Y()
			t := p.Thickness(rx*rx + ry*ry)
			if t == 0 {
				continue
			}
			dj := int(math.Round(ry / p.cellSize2))
			out[i][j] = t * p.gen.Value(n.FI()+di, n.FJ()+dj)
		}
	}
	return out
}
