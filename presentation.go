package fx

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Presentation fits frames into a fixed output size, preserving aspect
// ratio and filling the remainder with a background color (letterbox or
// pillarbox). Layout scaling uses bilinear interpolation; use
// LanczosResample upstream when filter quality matters.
type Presentation struct {
	width      int
	height     int
	background RGBA
}

var _ Effect = (*Presentation)(nil)

// NewPresentation creates a Presentation with the given output size and a
// black background.
func NewPresentation(width, height int) *Presentation {
	return &Presentation{width: width, height: height, background: Black}
}

// WithBackground returns a copy of the presentation using the given fill
// color for letterbox and pillarbox bars.
func (p *Presentation) WithBackground(c RGBA) *Presentation {
	q := *p
	q.background = c
	return &q
}

// OutputSize returns the fixed presentation size, independent of input.
func (p *Presentation) OutputSize(inputWidth, inputHeight int) Size {
	return Size{Width: p.width, Height: p.height}
}

// IsNoOp reports whether the input already has the presentation size.
func (p *Presentation) IsNoOp(inputWidth, inputHeight int) bool {
	return inputWidth == p.width && inputHeight == p.height
}

// NewProcessor creates a processor applying this presentation to frames.
func (p *Presentation) NewProcessor(opts ...Option) (Processor, error) {
	if p.width <= 0 || p.height <= 0 {
		return nil, fmt.Errorf("fx: invalid presentation size %dx%d", p.width, p.height)
	}
	return &presentationProcessor{effect: p}, nil
}

type presentationProcessor struct {
	effect   *Presentation
	released bool
}

func (p *presentationProcessor) Process(input *Frame) (*Frame, error) {
	if p.released {
		return nil, ErrProcessorReleased
	}
	if input == nil {
		return nil, errors.New("fx: nil input frame")
	}
	e := p.effect
	if e.IsNoOp(input.Width(), input.Height()) {
		return input, nil
	}

	output := NewFrame(e.width, e.height)
	output.PresentationTime = input.PresentationTime
	output.Clear(e.background)

	// Fit the input inside the output box, centered.
	sx := float64(e.width) / float64(input.Width())
	sy := float64(e.height) / float64(input.Height())
	s := sx
	if sy < s {
		s = sy
	}
	fw := int(float64(input.Width())*s + 0.5)
	fh := int(float64(input.Height())*s + 0.5)
	if fw < 1 {
		fw = 1
	}
	if fh < 1 {
		fh = 1
	}
	ox := (e.width - fw) / 2
	oy := (e.height - fh) / 2

	// Wrap both buffers as image.RGBA without copying.
	src := &image.RGBA{
		Pix:    input.Data(),
		Stride: input.Width() * 4,
		Rect:   image.Rect(0, 0, input.Width(), input.Height()),
	}
	dst := &image.RGBA{
		Pix:    output.Data(),
		Stride: e.width * 4,
		Rect:   image.Rect(0, 0, e.width, e.height),
	}

	draw.BiLinear.Scale(dst, image.Rect(ox, oy, ox+fw, oy+fh), src, src.Rect, draw.Src, nil)

	return output, nil
}

func (p *presentationProcessor) Release() error {
	p.released = true
	return nil
}
