package fx

import (
	"errors"
	"fmt"
	"image"
)

// Crop extracts a rectangular region from each frame.
//
// The crop rectangle is given in pixel coordinates of the input frame and
// is intersected with the frame bounds, so a rectangle larger than the
// frame degrades to a no-op.
type Crop struct {
	rect image.Rectangle
}

var _ Effect = (*Crop)(nil)

// NewCrop creates a Crop effect extracting the width x height region whose
// top-left corner is at (x, y).
func NewCrop(x, y, width, height int) *Crop {
	return &Crop{rect: image.Rect(x, y, x+width, y+height)}
}

// region returns the crop rectangle clamped to the given input size.
func (c *Crop) region(inputWidth, inputHeight int) image.Rectangle {
	return c.rect.Intersect(image.Rect(0, 0, inputWidth, inputHeight))
}

// OutputSize returns the size of the cropped region for the given input size.
func (c *Crop) OutputSize(inputWidth, inputHeight int) Size {
	r := c.region(inputWidth, inputHeight)
	return Size{Width: r.Dx(), Height: r.Dy()}
}

// IsNoOp reports whether the crop rectangle covers the entire input.
func (c *Crop) IsNoOp(inputWidth, inputHeight int) bool {
	return c.region(inputWidth, inputHeight) == image.Rect(0, 0, inputWidth, inputHeight)
}

// NewProcessor creates a processor applying this crop to frames.
func (c *Crop) NewProcessor(opts ...Option) (Processor, error) {
	if c.rect.Empty() {
		return nil, fmt.Errorf("fx: empty crop rectangle %v", c.rect)
	}
	return &cropProcessor{effect: c}, nil
}

// cropProcessor copies the crop region row by row.
type cropProcessor struct {
	effect   *Crop
	released bool
}

func (p *cropProcessor) Process(input *Frame) (*Frame, error) {
	if p.released {
		return nil, ErrProcessorReleased
	}
	if input == nil {
		return nil, errors.New("fx: nil input frame")
	}
	if p.effect.IsNoOp(input.Width(), input.Height()) {
		return input, nil
	}

	r := p.effect.region(input.Width(), input.Height())
	if r.Empty() {
		return nil, fmt.Errorf("fx: crop %v outside %dx%d frame",
			p.effect.rect, input.Width(), input.Height())
	}

	output := NewFrame(r.Dx(), r.Dy())
	output.PresentationTime = input.PresentationTime

	srcStride := input.Width() * 4
	dstStride := r.Dx() * 4
	src := input.Data()
	dst := output.Data()

	for y := 0; y < r.Dy(); y++ {
		srcOff := (r.Min.Y+y)*srcStride + r.Min.X*4
		copy(dst[y*dstStride:(y+1)*dstStride], src[srcOff:srcOff+dstStride])
	}

	return output, nil
}

func (p *cropProcessor) Release() error {
	p.released = true
	return nil
}
