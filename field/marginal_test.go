package field

import (
	"math"
	"testing"

	"github.com/kweller/subnucleon/randsrc"
)

func TestMarginalTransformRejectsBadParams(t *testing.T) {
	tests := []struct {
		name      string
		tableSize int
		shape     float64
	}{
		{"table too small", 1, 1.0},
		{"zero shape", 500, 0},
		{"negative shape", 500, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMarginalTransform(tt.tableSize, tt.shape); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestMarginalTransformNonNegative(t *testing.T) {
	for _, shape := range []float64{0.3, 1.0, 3.0} {
		mt, err := NewMarginalTransform(500, shape)
		if err != nil {
			t.Fatalf("shape %g: %v", shape, err)
		}
		for g := -8.0; g <= 8.0; g += 0.01 {
			if v := mt.Apply(g); v < 0 {
				t.Fatalf("shape %g: Apply(%g) = %g, want >= 0", shape, g, v)
			}
		}
	}
}

func TestMarginalTransformMonotone(t *testing.T) {
	mt, err := NewMarginalTransform(500, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	prev := mt.Apply(-8)
	for g := -8.0; g <= 8.0; g += 0.005 {
		v := mt.Apply(g)
		if v < prev {
			t.Fatalf("Apply not monotone: Apply(%g) = %g < previous %g", g, v, prev)
		}
		prev = v
	}
}

func TestMarginalTransformClamps(t *testing.T) {
	mt, err := NewMarginalTransform(500, 1.0)
	if err != nil {
		t.Fatal(err)
	}

	// Far in the lower tail the normal CDF underflows the table's first
	// sampled probability; the first gamma abscissa is zero.
	if v := mt.Apply(-40); v != mt.x[0]/mt.shape {
		t.Errorf("lower clamp = %g, want %g", v, mt.x[0]/mt.shape)
	}
	// Far in the upper tail it clamps to the last quantile.
	last := mt.x[len(mt.x)-1] / mt.shape
	if v := mt.Apply(40); v != last {
		t.Errorf("upper clamp = %g, want %g", v, last)
	}
}

func TestMarginalTransformMeanNearUnity(t *testing.T) {
	// Gamma(k, 1/k) has unit mean, so pushing standard normals through the
	// transform should give a sample mean near 1.
	mt, err := NewMarginalTransform(500, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	s := randsrc.New(11)

	const n = 50000
	var sum float64
	for i := 0; i < n; i++ {
		sum += mt.Apply(s.Normal())
	}
	mean := sum / n
	if math.Abs(mean-1) > 0.05 {
		t.Errorf("sample mean = %g, want ~1", mean)
	}
}
