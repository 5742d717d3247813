package resample

import (
	"math"
	"testing"
)

func TestMakeKernelNormalized(t *testing.T) {
	tests := []struct {
		name       string
		srcN, dstN int
		f          Filter
	}{
		{"downscale 6x", 1920, 320, Lanczos3},
		{"upscale 3x", 320, 960, Lanczos3},
		{"identity", 512, 512, Lanczos3},
		{"odd sizes", 99, 50, Lanczos3},
		{"mitchell downscale", 1000, 333, Mitchell},
		{"bilinear upscale", 100, 173, Bilinear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := makeKernel(tt.srcN, tt.dstN, tt.f)

			if len(k.starts) != tt.dstN {
				t.Fatalf("len(starts) = %d, want %d", len(k.starts), tt.dstN)
			}
			if len(k.weights) != tt.dstN*k.taps {
				t.Fatalf("len(weights) = %d, want %d", len(k.weights), tt.dstN*k.taps)
			}

			for i := 0; i < tt.dstN; i++ {
				var sum float64
				for _, w := range k.weights[i*k.taps : (i+1)*k.taps] {
					sum += float64(w)
				}
				if math.Abs(sum-1) > 1e-5 {
					t.Fatalf("sample %d: weight sum = %v, want 1", i, sum)
				}
			}
		})
	}
}

func TestMakeKernelIdentity(t *testing.T) {
	// At scale 1 the kernel centers land exactly on source samples, so each
	// span reduces to a unit weight at the center. The off-center taps hit
	// sinc zero crossings; they stay below floating-point noise.
	k := makeKernel(64, 64, Lanczos3)

	for i := 0; i < 64; i++ {
		row := k.weights[i*k.taps : (i+1)*k.taps]
		for j, w := range row {
			src := int(k.starts[i]) + j
			if src == i {
				if math.Abs(float64(w)-1) > 1e-6 {
					t.Fatalf("sample %d: center weight = %v, want 1", i, w)
				}
			} else if math.Abs(float64(w)) > 1e-6 {
				t.Fatalf("sample %d: weight at offset %d = %v, want ~0", i, src-i, w)
			}
		}
	}
}

func TestMakeKernelSupportWidensOnDownscale(t *testing.T) {
	down := makeKernel(600, 100, Lanczos3) // ratio 6
	up := makeKernel(100, 600, Lanczos3)   // ratio 1/6

	if down.taps <= up.taps {
		t.Errorf("downscale taps = %d, upscale taps = %d; downscale should be wider",
			down.taps, up.taps)
	}

	// At ratio 6 the support is 3*6 = 18 source samples each side.
	if want := 2*18 + 1; down.taps != want {
		t.Errorf("downscale taps = %d, want %d", down.taps, want)
	}
}

func TestKernelKeyDistinct(t *testing.T) {
	keys := map[uint64]string{}
	add := func(srcN, dstN int, f Filter, label string) {
		k := kernelKey(srcN, dstN, f)
		if prev, dup := keys[k]; dup {
			t.Errorf("key collision: %s and %s", prev, label)
		}
		keys[k] = label
	}

	add(1920, 320, Lanczos3, "1920->320 lanczos3")
	add(320, 1920, Lanczos3, "320->1920 lanczos3")
	add(1920, 320, Mitchell, "1920->320 mitchell")
	add(1920, 321, Lanczos3, "1920->321 lanczos3")
	add(1921, 320, Lanczos3, "1921->320 lanczos3")
}

func TestKernelForCaches(t *testing.T) {
	a := kernelFor(777, 333, Lanczos3)
	b := kernelFor(777, 333, Lanczos3)
	if a != b {
		t.Error("kernelFor should return the cached table on repeat calls")
	}
}

func TestClampIndex(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{-5, 10, 0},
		{0, 10, 0},
		{5, 10, 5},
		{9, 10, 9},
		{10, 10, 9},
		{100, 10, 9},
	}
	for _, tt := range tests {
		if got := clampIndex(tt.i, tt.n); got != tt.want {
			t.Errorf("clampIndex(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}
