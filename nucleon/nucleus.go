package nucleon

import (
	"github.com/kweller/subnucleon/config"
	"github.com/kweller/subnucleon/randsrc"
)

// Nucleus positions a set of nucleons for each event. Positioning is the
// only way to move a nucleon: it resets participant status and re-anchors
// the substructure patch. Full nuclear geometry sampling (Woods-Saxon and
// friends) lives with the event orchestration; implementations here cover
// the light cases needed to drive the fluctuate/participate sequence.
type Nucleus interface {
	// SampleNucleons positions all nucleons for a new event with the
	// nucleus center shifted by (xOff, yOff).
	SampleNucleons(xOff, yOff float64)
	// Nucleons returns the owned nucleons. Callers must not retain the
	// slice across SampleNucleons calls.
	Nucleons() []*Nucleon
}

// MinimalNucleus holds nucleons at fixed body-frame offsets from the
// nucleus center. A single zero offset models a proton.
type MinimalNucleus struct {
	offsets  [][2]float64
	nucleons []*Nucleon

	stream *randsrc.Stream
	margin int
	n1, n2 int
}

// NewMinimalNucleus creates a nucleus with one nucleon per offset.
func NewMinimalNucleus(offsets [][2]float64, cfg *config.Config, stream *randsrc.Stream) *MinimalNucleus {
	nucleons := make([]*Nucleon, len(offsets))
	for i := range nucleons {
		nucleons[i] = &Nucleon{}
	}
	return &MinimalNucleus{
		offsets:  offsets,
		nucleons: nucleons,
		stream:   stream,
		margin:   cfg.Derived.AnchorMargin,
		n1:       cfg.Field.GridN1,
		n2:       cfg.Field.GridN2,
	}
}

// NewProton creates a single-nucleon nucleus centered on its offset.
func NewProton(cfg *config.Config, stream *randsrc.Stream) *MinimalNucleus {
	return NewMinimalNucleus([][2]float64{{0, 0}}, cfg, stream)
}

// SampleNucleons implements Nucleus.
func (m *MinimalNucleus) SampleNucleons(xOff, yOff float64) {
	for i, n := range m.nucleons {
		n.setPosition(xOff+m.offsets[i][0], yOff+m.offsets[i][1], m.stream, m.margin, m.n1, m.n2)
	}
}

// Nucleons implements Nucleus.
func (m *MinimalNucleus) Nucleons() []*Nucleon {
	return m.nucleons
}
