package resample

import (
	"math"
	"testing"
)

func TestLanczos3Weight(t *testing.T) {
	if got := Lanczos3.Weight(0); got != 1 {
		t.Errorf("Weight(0) = %v, want 1", got)
	}

	// The windowed sinc crosses zero at every non-zero integer inside the
	// support and vanishes outside it.
	for _, x := range []float64{-2, -1, 1, 2} {
		if got := Lanczos3.Weight(x); math.Abs(got) > 1e-12 {
			t.Errorf("Weight(%v) = %v, want 0", x, got)
		}
	}
	for _, x := range []float64{3, -3, 4.5} {
		if got := Lanczos3.Weight(x); got != 0 {
			t.Errorf("Weight(%v) = %v, want 0 outside support", x, got)
		}
	}

	// Symmetry.
	for _, x := range []float64{0.3, 1.7, 2.9} {
		if l, r := Lanczos3.Weight(-x), Lanczos3.Weight(x); l != r {
			t.Errorf("Weight(-%v) = %v, Weight(%v) = %v", x, l, x, r)
		}
	}

	if Lanczos3.Taps() != 3 {
		t.Errorf("Taps() = %v, want 3", Lanczos3.Taps())
	}
}

func TestLanczos2Weight(t *testing.T) {
	if got := Lanczos2.Weight(0); got != 1 {
		t.Errorf("Weight(0) = %v, want 1", got)
	}
	if got := Lanczos2.Weight(2); got != 0 {
		t.Errorf("Weight(2) = %v, want 0", got)
	}
	if Lanczos2.Taps() != 2 {
		t.Errorf("Taps() = %v, want 2", Lanczos2.Taps())
	}
}

func TestMitchellWeight(t *testing.T) {
	// At x=0 the Mitchell-Netravali polynomial evaluates to (6-2B)/6.
	want := (6 - 2.0/3.0) / 6
	if got := Mitchell.Weight(0); math.Abs(got-want) > 1e-12 {
		t.Errorf("Weight(0) = %v, want %v", got, want)
	}
	if got := Mitchell.Weight(2); got != 0 {
		t.Errorf("Weight(2) = %v, want 0", got)
	}

	// The two polynomial pieces must agree at x=1.
	lo := Mitchell.Weight(1 - 1e-9)
	hi := Mitchell.Weight(1 + 1e-9)
	if math.Abs(lo-hi) > 1e-6 {
		t.Errorf("discontinuity at x=1: %v vs %v", lo, hi)
	}
}

func TestBilinearWeight(t *testing.T) {
	if got := Bilinear.Weight(0); got != 1 {
		t.Errorf("Weight(0) = %v, want 1", got)
	}
	if got := Bilinear.Weight(0.25); got != 0.75 {
		t.Errorf("Weight(0.25) = %v, want 0.75", got)
	}
	if got := Bilinear.Weight(1); got != 0 {
		t.Errorf("Weight(1) = %v, want 0", got)
	}
}

func TestFilterNames(t *testing.T) {
	tests := []struct {
		f    Filter
		want string
	}{
		{Lanczos3, "lanczos3"},
		{Lanczos2, "lanczos2"},
		{Mitchell, "mitchell"},
		{Bilinear, "bilinear"},
	}
	for _, tt := range tests {
		if got := tt.f.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}
