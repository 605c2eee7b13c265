package nucleon

import (
	"math"
	"testing"
)

func TestFastExpAccuracy(t *testing.T) {
	f := newFastExp(-12.5, 0, 1000)
	for x := -12.5; x <= 0; x += 0.003 {
		got := f.eval(x)
		want := math.Exp(x)
		if math.Abs(got-want)/want > 0.01 {
			t.Fatalf("eval(%g) = %g, want %g within 1%%", x, got, want)
		}
	}
}

func TestFastExpOutsideRange(t *testing.T) {
	f := newFastExp(-12.5, 0, 1000)
	for _, x := range []float64{-20, 1, 5} {
		if got, want := f.eval(x), math.Exp(x); got != want {
			t.Errorf("eval(%g) = %g, want exact %g outside table", x, got, want)
		}
	}
}

func TestFastExpEndpoints(t *testing.T) {
	f := newFastExp(-12.5, 0, 1000)
	if got := f.eval(0); math.Abs(got-1) > 1e-9 {
		t.Errorf("eval(0) = %g, want 1", got)
	}
	if got, want := f.eval(-12.5), math.Exp(-12.5); math.Abs(got-want)/want > 1e-9 {
		t.Errorf("eval(-12.5) = %g, want %g", got, want)
	}
}
