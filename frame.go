package fx

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("fx: unsupported image format")
)

// Frame represents a rectangular RGBA pixel buffer carrying one video frame
// or still image, together with its presentation time. Pixel data uses
// straight (non-premultiplied) alpha.
type Frame struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel

	// PresentationTime is the timestamp of the frame within its stream.
	// Zero for still images.
	PresentationTime time.Duration
}

// NewFrame creates a new frame with the given dimensions.
func NewFrame(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the frame.
func (f *Frame) Width() int {
	return f.width
}

// Height returns the height of the frame.
func (f *Frame) Height() int {
	return f.height
}

// Size returns the frame dimensions.
func (f *Frame) Size() Size {
	return Size{Width: f.width, Height: f.height}
}

// Data returns the raw pixel data (RGBA format).
func (f *Frame) Data() []uint8 {
	return f.data
}

// SetPixel sets the color of a single pixel.
func (f *Frame) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	i := (y*f.width + x) * 4
	f.data[i+0] = uint8(clamp255(c.R * 255))
	f.data[i+1] = uint8(clamp255(c.G * 255))
	f.data[i+2] = uint8(clamp255(c.B * 255))
	f.data[i+3] = uint8(clamp255(c.A * 255))
}

// GetPixel returns the color of a single pixel.
func (f *Frame) GetPixel(x, y int) RGBA {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return Transparent
	}
	i := (y*f.width + x) * 4
	return RGBA{
		R: float64(f.data[i+0]) / 255,
		G: float64(f.data[i+1]) / 255,
		B: float64(f.data[i+2]) / 255,
		A: float64(f.data[i+3]) / 255,
	}
}

// Clear fills the entire frame with a color.
func (f *Frame) Clear(c RGBA) {
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))

	for i := 0; i < len(f.data); i += 4 {
		f.data[i+0] = r
		f.data[i+1] = g
		f.data[i+2] = b
		f.data[i+3] = a
	}
}

// Clone returns a deep copy of the frame, including its presentation time.
func (f *Frame) Clone() *Frame {
	c := NewFrame(f.width, f.height)
	copy(c.data, f.data)
	c.PresentationTime = f.PresentationTime
	return c
}

// Target returns a FrameTarget view of the frame's pixel buffer for
// accelerator output.
func (f *Frame) Target() FrameTarget {
	return FrameTarget{
		Data:   f.data,
		Width:  f.width,
		Height: f.height,
		Stride: f.width * 4,
	}
}

// ToImage converts the frame to an image.RGBA. Bytes are copied as-is,
// which matches image.RGBA's premultiplied layout only for opaque pixels;
// for translucent frames use the Frame's own image.Image implementation.
func (f *Frame) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	copy(img.Pix, f.data)
	return img
}

// FromImage creates a frame from an image.
func FromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	fr := NewFrame(width, height)

	// Fast path for opaque image.RGBA with a tight stride. image.RGBA is
	// premultiplied, which agrees with the frame's straight alpha only
	// when every pixel is opaque; translucent images take the conversion
	// loop below.
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == width*4 &&
		bounds.Min == (image.Point{}) && rgba.Opaque() {
		copy(fr.data, rgba.Pix)
		return fr
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			i := (y*width + x) * 4
			fr.data[i+0] = n.R
			fr.data[i+1] = n.G
			fr.data[i+2] = n.B
			fr.data[i+3] = n.A
		}
	}

	return fr
}

// SavePNG saves the frame to a PNG file.
func (f *Frame) SavePNG(path string) error {
	out, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	return png.Encode(out, f.ToImage())
}

// LoadPNG loads a PNG image from the given file path.
func LoadPNG(path string) (*Frame, error) {
	in, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("fx: open file: %w", err)
	}
	defer func() { _ = in.Close() }()

	img, err := png.Decode(in)
	if err != nil {
		return nil, fmt.Errorf("fx: decode png: %w", err)
	}
	return FromImage(img), nil
}

// LoadImage loads an image from the given file path, auto-detecting the
// format. Supported formats: PNG, JPEG.
func LoadImage(path string) (*Frame, error) {
	in, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("fx: open file: %w", err)
	}
	defer func() { _ = in.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err := png.Decode(in)
		if err != nil {
			return nil, fmt.Errorf("fx: decode png: %w", err)
		}
		return FromImage(img), nil
	case ".jpg", ".jpeg":
		img, err := jpeg.Decode(in)
		if err != nil {
			return nil, fmt.Errorf("fx: decode jpeg: %w", err)
		}
		return FromImage(img), nil
	default:
		img, _, err := image.Decode(in)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
		}
		return FromImage(img), nil
	}
}

// At implements the image.Image interface.
func (f *Frame) At(x, y int) color.Color {
	return f.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// ColorModel implements the image.Image interface.
func (f *Frame) ColorModel() color.Model {
	return color.NRGBAModel
}
