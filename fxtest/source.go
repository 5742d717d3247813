package fxtest

import (
	"math"

	"github.com/gogpu/fx"
)

// HorizontalGradient returns an opaque frame whose red and green channels
// ramp linearly left to right and blue ramps top to bottom. Gradients are
// useful references: a well-normalized resampler reproduces a linear ramp
// at any scale.
func HorizontalGradient(width, height int) *fx.Frame {
	f := fx.NewFrame(width, height)
	d := f.Data()
	for y := 0; y < height; y++ {
		v := rampByte(y, height)
		for x := 0; x < width; x++ {
			h := rampByte(x, width)
			i := (y*width + x) * 4
			d[i+0] = h
			d[i+1] = h
			d[i+2] = v
			d[i+3] = 255
		}
	}
	return f
}

// RadialBlobs returns an opaque frame with smooth overlapping radial bumps,
// a band-limited pattern with detail at several scales.
func RadialBlobs(width, height int) *fx.Frame {
	type blob struct {
		cx, cy, radius float64
		c              fx.RGBA
	}
	blobs := []blob{
		{0.25, 0.30, 0.35, fx.RGB(1.0, 0.3, 0.2)},
		{0.70, 0.25, 0.28, fx.RGB(0.2, 0.9, 0.4)},
		{0.55, 0.70, 0.40, fx.RGB(0.3, 0.4, 1.0)},
		{0.15, 0.80, 0.22, fx.RGB(0.9, 0.8, 0.1)},
	}

	f := fx.NewFrame(width, height)
	w, h := float64(width), float64(height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b float64
			for _, bl := range blobs {
				dx := (float64(x)+0.5)/w - bl.cx
				dy := (float64(y)+0.5)/h - bl.cy
				dist := math.Sqrt(dx*dx+dy*dy) / bl.radius
				if dist >= 1 {
					continue
				}
				// Smooth falloff, zero-valued and zero-sloped at the rim.
				wgt := 0.5 + 0.5*math.Cos(math.Pi*dist)
				r += wgt * bl.c.R
				g += wgt * bl.c.G
				b += wgt * bl.c.B
			}
			f.SetPixel(x, y, fx.RGBA{R: min1(r), G: min1(g), B: min1(b), A: 1})
		}
	}
	return f
}

// Checkerboard returns an opaque frame of alternating cells of the two
// colors, each cell by cell pixels square.
func Checkerboard(width, height, cell int, a, b fx.RGBA) *fx.Frame {
	if cell < 1 {
		cell = 1
	}
	f := fx.NewFrame(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/cell)+(y/cell))%2 == 0 {
				f.SetPixel(x, y, a)
			} else {
				f.SetPixel(x, y, b)
			}
		}
	}
	return f
}

// rampByte maps index i of n samples to a byte so that the first sample is 0
// and the last is 255, with pixel-center spacing in between.
func rampByte(i, n int) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(math.Round(float64(i) / float64(n-1) * 255))
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
