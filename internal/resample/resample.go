package resample

import (
	"github.com/gogpu/fx/internal/parallel"
)

// Resize scales an RGBA pixel buffer from srcW x srcH to dstW x dstH using
// the given filter. Both buffers are tightly packed, 4 bytes per pixel.
// dst must hold dstW*dstH*4 bytes.
//
// The resize is separable: a horizontal pass into a float32 intermediate,
// then a vertical pass into dst. Out-of-bounds source samples clamp to the
// edge. If pool is non-nil, rows are processed in parallel bands.
func Resize(dst []uint8, dstW, dstH int, src []uint8, srcW, srcH int, f Filter, pool *parallel.WorkerPool) {
	if dstW <= 0 || dstH <= 0 || srcW <= 0 || srcH <= 0 {
		return
	}

	hk := kernelFor(srcW, dstW, f)
	vk := kernelFor(srcH, dstH, f)

	// Intermediate: horizontally resized, original height.
	mid := make([]float32, dstW*srcH*4)

	forRows(pool, srcH, func(y0, y1 int) {
		resizeRowsH(mid, dstW, src, srcW, y0, y1, hk)
	})

	forRows(pool, dstH, func(y0, y1 int) {
		resizeRowsV(dst, dstW, mid, srcH, y0, y1, vk)
	})
}

// forRows runs fn over [0, n) in parallel bands when a pool is available,
// serially otherwise.
func forRows(pool *parallel.WorkerPool, n int, fn func(y0, y1 int)) {
	if pool != nil {
		pool.ForRows(n, fn)
		return
	}
	fn(0, n)
}

// resizeRowsH applies the horizontal kernel to source rows [y0, y1),
// writing float32 RGBA samples into mid.
func resizeRowsH(mid []float32, dstW int, src []uint8, srcW, y0, y1 int, k *kernel) {
	for y := y0; y < y1; y++ {
		srcRow := src[y*srcW*4 : (y+1)*srcW*4]
		midRow := mid[y*dstW*4 : (y+1)*dstW*4]

		for x := 0; x < dstW; x++ {
			start := int(k.starts[x])
			weights := k.weights[x*k.taps : (x+1)*k.taps]

			var r, g, b, a float32
			for j, w := range weights {
				if w == 0 {
					continue
				}
				si := clampIndex(start+j, srcW) * 4
				r += w * float32(srcRow[si+0])
				g += w * float32(srcRow[si+1])
				b += w * float32(srcRow[si+2])
				a += w * float32(srcRow[si+3])
			}

			mi := x * 4
			midRow[mi+0] = r
			midRow[mi+1] = g
			midRow[mi+2] = b
			midRow[mi+3] = a
		}
	}
}

// resizeRowsV applies the vertical kernel for destination rows [y0, y1),
// reading float32 RGBA samples from mid and writing clamped bytes into dst.
func resizeRowsV(dst []uint8, dstW int, mid []float32, srcH, y0, y1 int, k *kernel) {
	rowStride := dstW * 4

	for y := y0; y < y1; y++ {
		start := int(k.starts[y])
		weights := k.weights[y*k.taps : (y+1)*k.taps]
		dstRow := dst[y*rowStride : (y+1)*rowStride]

		for x := 0; x < dstW; x++ {
			var r, g, b, a float32
			base := x * 4
			for j, w := range weights {
				if w == 0 {
					continue
				}
				mi := clampIndex(start+j, srcH)*rowStride + base
				r += w * mid[mi+0]
				g += w * mid[mi+1]
				b += w * mid[mi+2]
				a += w * mid[mi+3]
			}

			dstRow[base+0] = clampByte(r)
			dstRow[base+1] = clampByte(g)
			dstRow[base+2] = clampByte(b)
			dstRow[base+3] = clampByte(a)
		}
	}
}

// clampByte rounds a float32 sample to the nearest byte, clamping overshoot.
// Lanczos overshoots near sharp edges; clamping matches the behavior of
// 8-bit GPU render targets.
func clampByte(v float32) uint8 {
	v += 0.5
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
