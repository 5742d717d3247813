package fx

import "errors"

// RGBMatrix applies a 4x4 color matrix to every pixel. Colors are treated
// as column vectors (r, g, b, 1) in the [0, 1] range; the alpha channel
// passes through unchanged.
//
// The matrix is stored row-major:
//
//	| m[0]  m[1]  m[2]  m[3]  |   | r |
//	| m[4]  m[5]  m[6]  m[7]  | * | g |
//	| m[8]  m[9]  m[10] m[11] |   | b |
//	| m[12] m[13] m[14] m[15] |   | 1 |
type RGBMatrix struct {
	m [16]float64
}

var _ Effect = (*RGBMatrix)(nil)

// identityRGBMatrix is the 4x4 identity.
var identityRGBMatrix = [16]float64{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// NewRGBMatrix creates an RGBMatrix effect from a row-major 4x4 matrix.
func NewRGBMatrix(m [16]float64) *RGBMatrix {
	return &RGBMatrix{m: m}
}

// Brightness creates an RGBMatrix that adds b to each color channel.
// b is in the [-1, 1] range; 0 is a no-op.
func Brightness(b float64) *RGBMatrix {
	m := identityRGBMatrix
	m[3] = b
	m[7] = b
	m[11] = b
	return &RGBMatrix{m: m}
}

// Contrast creates an RGBMatrix that scales channels around mid-gray.
// c is in the [-1, 1] range; 0 is a no-op, -1 produces solid gray.
func Contrast(c float64) *RGBMatrix {
	scale := c + 1
	offset := 0.5 * (1 - scale)
	m := identityRGBMatrix
	m[0], m[5], m[10] = scale, scale, scale
	m[3], m[7], m[11] = offset, offset, offset
	return &RGBMatrix{m: m}
}

// OutputSize returns the input size; color matrices never resize.
func (e *RGBMatrix) OutputSize(inputWidth, inputHeight int) Size {
	return Size{Width: inputWidth, Height: inputHeight}
}

// IsNoOp reports whether the matrix is the identity.
func (e *RGBMatrix) IsNoOp(inputWidth, inputHeight int) bool {
	return e.m == identityRGBMatrix
}

// NewProcessor creates a processor applying this color matrix to frames.
func (e *RGBMatrix) NewProcessor(opts ...Option) (Processor, error) {
	p := &rgbMatrixProcessor{effect: e}
	p.buildLUT()
	return p, nil
}

// rgbMatrixProcessor applies the matrix per pixel. For matrices without
// channel mixing (the common brightness/contrast case), a per-channel
// 256-entry lookup table replaces the multiply.
type rgbMatrixProcessor struct {
	effect   *RGBMatrix
	lut      *[3][256]uint8
	released bool
}

// buildLUT precomputes per-channel lookup tables when the matrix has no
// cross-channel terms.
func (p *rgbMatrixProcessor) buildLUT() {
	m := &p.effect.m
	if m[1] != 0 || m[2] != 0 || m[4] != 0 || m[6] != 0 || m[8] != 0 || m[9] != 0 ||
		m[12] != 0 || m[13] != 0 || m[14] != 0 || m[15] != 1 {
		return
	}

	var lut [3][256]uint8
	for v := 0; v < 256; v++ {
		in := float64(v) / 255
		lut[0][v] = quantize(m[0]*in + m[3])
		lut[1][v] = quantize(m[5]*in + m[7])
		lut[2][v] = quantize(m[10]*in + m[11])
	}
	p.lut = &lut
}

func (p *rgbMatrixProcessor) Process(input *Frame) (*Frame, error) {
	if p.released {
		return nil, ErrProcessorReleased
	}
	if input == nil {
		return nil, errors.New("fx: nil input frame")
	}
	if p.effect.IsNoOp(input.Width(), input.Height()) {
		return input, nil
	}

	output := NewFrame(input.Width(), input.Height())
	output.PresentationTime = input.PresentationTime

	src := input.Data()
	dst := output.Data()

	if p.lut != nil {
		for i := 0; i < len(src); i += 4 {
			dst[i+0] = p.lut[0][src[i+0]]
			dst[i+1] = p.lut[1][src[i+1]]
			dst[i+2] = p.lut[2][src[i+2]]
			dst[i+3] = src[i+3]
		}
		return output, nil
	}

	m := &p.effect.m
	for i := 0; i < len(src); i += 4 {
		r := float64(src[i+0]) / 255
		g := float64(src[i+1]) / 255
		b := float64(src[i+2]) / 255

		dst[i+0] = quantize(m[0]*r + m[1]*g + m[2]*b + m[3])
		dst[i+1] = quantize(m[4]*r + m[5]*g + m[6]*b + m[7])
		dst[i+2] = quantize(m[8]*r + m[9]*g + m[10]*b + m[11])
		dst[i+3] = src[i+3]
	}

	return output, nil
}

// quantize maps a [0, 1] channel value to a byte, rounding to nearest.
func quantize(v float64) uint8 {
	return uint8(clamp255(v*255) + 0.5)
}

func (p *rgbMatrixProcessor) Release() error {
	p.released = true
	return nil
}
