package resample

import (
	"math"

	"github.com/gogpu/fx/internal/cache"
)

// kernel holds precomputed contributor spans for one axis.
//
// For destination sample i, the contributing source samples are
// starts[i] .. starts[i]+len(span)-1 (clamped to the axis bounds by the
// apply loops), weighted by weights[i*taps .. i*taps+taps-1]. Each span's
// weights sum to 1.
type kernel struct {
	taps    int       // weights per destination sample
	starts  []int32   // first contributing source index, per destination sample
	weights []float32 // normalized weights, taps per destination sample
}

// kernelCache retains weight tables across processors. A video pipeline
// resizes thousands of identically-sized frames; the table depends only on
// (srcN, dstN, filter).
var kernelCache = cache.NewSharded[uint64, *kernel](cache.DefaultCapacity, cache.Uint64Hasher)

// kernelKey packs (srcN, dstN, filter id) into a cache key.
// Axis sizes are limited to 24 bits, far beyond any practical frame size.
func kernelKey(srcN, dstN int, f Filter) uint64 {
	return uint64(srcN)<<32 | uint64(dstN)<<8 | uint64(f.id())
}

// kernelFor returns the contributor table for resampling an axis of srcN
// samples to dstN samples, computing and caching it on first use.
func kernelFor(srcN, dstN int, f Filter) *kernel {
	key := kernelKey(srcN, dstN, f)
	return kernelCache.GetOrCreate(key, func() *kernel {
		return makeKernel(srcN, dstN, f)
	})
}

// makeKernel computes the contributor table for one axis.
//
// Destination sample i maps to the continuous source coordinate
// (i+0.5)*ratio - 0.5 (pixel-center convention). When minifying, the filter
// support is stretched by the inverse scale so the kernel integrates over
// all covered source samples.
func makeKernel(srcN, dstN int, f Filter) *kernel {
	ratio := float64(srcN) / float64(dstN)
	filterScale := ratio
	if filterScale < 1 {
		filterScale = 1
	}
	support := f.Taps() * filterScale

	taps := int(math.Ceil(support))*2 + 1

	k := &kernel{
		taps:    taps,
		starts:  make([]int32, dstN),
		weights: make([]float32, dstN*taps),
	}

	for i := 0; i < dstN; i++ {
		center := (float64(i)+0.5)*ratio - 0.5
		lo := int(math.Ceil(center - support))
		hi := int(math.Floor(center + support))
		if hi-lo+1 > taps {
			hi = lo + taps - 1
		}

		row := k.weights[i*taps : (i+1)*taps]
		var sum float64
		for j := lo; j <= hi; j++ {
			w := f.Weight((float64(j) - center) / filterScale)
			row[j-lo] = float32(w)
			sum += w
		}

		// Normalize so each span is a partition of unity: uniform input
		// stays uniform regardless of scale or position.
		if sum != 0 {
			inv := float32(1 / sum)
			for j := range row {
				row[j] *= inv
			}
		}

		k.starts[i] = int32(lo)
	}

	return k
}

// clampIndex clamps a source index to [0, n-1] (clamp-to-edge sampling).
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
