package nucleon

import "math"

// KernelTable holds the truncated-Gaussian convolution weights between two
// nucleon thickness profiles, discretized on the substructure grid. The
// true overlap of two Gaussian profiles is itself Gaussian in the offset,
// so truncating a few widths out bounds the per-pair cost to a fixed
// window with negligible error. Immutable after construction.
type KernelTable struct {
	cut     int
	weights [][]float64
}

// NewKernelTable builds the weight grid for offsets |di|,|dj| <= cut on a
// grid with the given cell area, for a profile of the given width.
func NewKernelTable(cut int, width, cellArea float64) *KernelTable {
	size := 2*cut + 1
	wsqr := width * width
	norm := cellArea / (math.Pi * wsqr)

	weights := make([][]float64, size)
	for i := range weights {
		weights[i] = make([]float64, size)
		di := float64(i - cut)
		for j := range weights[i] {
			dj := float64(j - cut)
			weights[i][j] = math.Exp(-(di*di+dj*dj)*cellArea/wsqr) * norm
		}
	}
	return &KernelTable{cut: cut, weights: weights}
}

// Cut returns the half-window size in grid cells.
func (k *KernelTable) Cut() int { return k.cut }

// Weight returns the kernel weight at offset (di, dj), or 0 outside the
// truncation window.
func (k *KernelTable) Weight(di, dj int) float64 {
	if di < -k.cut || di > k.cut || dj < -k.cut || dj > k.cut {
		return 0
	}
	return k.weights[di+k.cut][dj+k.cut]
}
