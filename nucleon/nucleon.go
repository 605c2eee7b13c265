// Package nucleon implements the nucleon thickness profile, substructure
// overlap, and pair participation sampling.
package nucleon

import "github.com/kweller/subnucleon/randsrc"

// Nucleon stores a transverse position, the anchor indices of its
// substructure patch, and participant status. Designed to be constructed
// once and repeatedly repositioned. The properties are globally readable
// but can only be set through a Nucleus and Profile.Participate.
type Nucleon struct {
	x, y        float64
	fi, fj      int
	participant bool
}

// X returns the transverse x position.
func (n *Nucleon) X() float64 { return n.x }

// Y returns the transverse y position.
func (n *Nucleon) Y() float64 { return n.y }

// FI returns the substructure anchor row index.
func (n *Nucleon) FI() int { return n.fi }

// FJ returns the substructure anchor column index.
func (n *Nucleon) FJ() int { return n.fj }

// IsParticipant reports whether this nucleon participates in the event.
func (n *Nucleon) IsParticipant() bool { return n.participant }

// setPosition sets the transverse position, resets participant status, and
// draws fresh anchor indices with a margin keeping the kernel window inside
// the nominal grid.
func (n *Nucleon) setPosition(x, y float64, stream *randsrc.Stream, margin, n1, n2 int) {
	n.x = x
	n.y = y
	n.participant = false
	n.fi = margin + int(stream.Uniform()*float64(n1-2*margin))
	n.fj = margin + int(stream.Uniform()*float64(n2-2*margin))
}

// setParticipant marks the nucleon as a participant.
func (n *Nucleon) setParticipant() {
	n.participant = true
}
