package fxtest

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/fx"
)

// ReferenceScale resamples src to the given size with the Catmull-Rom
// scaler from golang.org/x/image/draw. It is an independent implementation
// used to cross-check the library's own resampler: the two filters differ,
// so comparisons should use a conservative PSNR threshold.
func ReferenceScale(src *fx.Frame, width, height int) *fx.Frame {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Rect, src.ToImage(), src.Bounds(), draw.Src, nil)
	return fx.FromImage(dst)
}
