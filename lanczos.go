package fx

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/fx/internal/parallel"
	"github.com/gogpu/fx/internal/resample"
)

// noOpScaleTolerance is the scale-factor delta below which resampling is
// considered a no-op. Scaling 1080 rows to 1072 falls inside the tolerance,
// 1068 falls outside. Skipping near-identity scales avoids a full filter
// pass that would only shift pixels by fractions of their width.
const noOpScaleTolerance = 0.01

// LanczosResample scales frames using the Lanczos windowed-sinc filter with
// three lobes, matching ffmpeg's scale filter with flags=lanczos:param0=3.
//
// The effect scales each input to fit within a bounding box while
// preserving aspect ratio. Use ScaleToFit to construct it.
type LanczosResample struct {
	maxWidth  int
	maxHeight int
}

var _ Effect = (*LanczosResample)(nil)

// ScaleToFit creates a LanczosResample that scales frames to fit within
// maxWidth x maxHeight, preserving aspect ratio. Frames already inside the
// box are scaled up until one axis touches it.
func ScaleToFit(maxWidth, maxHeight int) *LanczosResample {
	return &LanczosResample{maxWidth: maxWidth, maxHeight: maxHeight}
}

// scaleFor returns the uniform scale factor applied to an input of the
// given size.
func (l *LanczosResample) scaleFor(inputWidth, inputHeight int) float64 {
	sx := float64(l.maxWidth) / float64(inputWidth)
	sy := float64(l.maxHeight) / float64(inputHeight)
	return math.Min(sx, sy)
}

// OutputSize returns the scaled size for the given input size.
func (l *LanczosResample) OutputSize(inputWidth, inputHeight int) Size {
	s := l.scaleFor(inputWidth, inputHeight)
	return Size{
		Width:  int(math.Round(float64(inputWidth) * s)),
		Height: int(math.Round(float64(inputHeight) * s)),
	}
}

// IsNoOp reports whether resampling a frame of the given size would leave
// it effectively unchanged: either the output size equals the input size,
// or the scale factor is within the no-op tolerance of 1.
func (l *LanczosResample) IsNoOp(inputWidth, inputHeight int) bool {
	s := l.scaleFor(inputWidth, inputHeight)
	return math.Abs(s-1) < noOpScaleTolerance
}

// NewProcessor creates a processor applying this resample to frames.
func (l *LanczosResample) NewProcessor(opts ...Option) (Processor, error) {
	if l.maxWidth <= 0 || l.maxHeight <= 0 {
		return nil, fmt.Errorf("fx: invalid scale-to-fit size %dx%d", l.maxWidth, l.maxHeight)
	}

	o := defaultProcOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &lanczosProcessor{
		effect: l,
		opts:   o,
		pool:   parallel.NewWorkerPool(o.workers),
	}, nil
}

// lanczosProcessor applies LanczosResample to frames. It tries the
// registered accelerator first and falls back to the CPU filter path.
type lanczosProcessor struct {
	effect   *LanczosResample
	opts     procOptions
	pool     *parallel.WorkerPool
	released bool
}

// Process resamples one frame. If the effect is a no-op for the frame's
// size, the input frame is returned unchanged.
func (p *lanczosProcessor) Process(input *Frame) (*Frame, error) {
	if p.released {
		return nil, ErrProcessorReleased
	}
	if input == nil {
		return nil, errors.New("fx: nil input frame")
	}
	if p.effect.IsNoOp(input.Width(), input.Height()) {
		return input, nil
	}

	out := p.effect.OutputSize(input.Width(), input.Height())
	output := NewFrame(out.Width, out.Height)
	output.PresentationTime = input.PresentationTime

	if p.tryAccelerator(output, input) {
		return output, nil
	}

	resample.Resize(
		output.Data(), out.Width, out.Height,
		input.Data(), input.Width(), input.Height(),
		resample.Lanczos3, p.pool,
	)
	return output, nil
}

// tryAccelerator attempts the GPU path. Returns true if the output frame
// was produced by the accelerator.
func (p *lanczosProcessor) tryAccelerator(output, input *Frame) bool {
	if p.opts.disableAccel {
		return false
	}
	a := RegisteredAccelerator()
	if a == nil || !a.CanAccelerate(AccelResample) {
		return false
	}

	err := a.Resample(output.Target(), input)
	if err == nil {
		return true
	}
	if errors.Is(err, ErrFallbackToCPU) {
		Logger().Debug("resample not accelerated", "accelerator", a.Name())
	} else {
		Logger().Warn("accelerated resample failed, using CPU path",
			"accelerator", a.Name(), "err", err)
	}
	return false
}

// Release frees the processor's worker pool.
func (p *lanczosProcessor) Release() error {
	if p.released {
		return nil
	}
	p.released = true
	p.pool.Close()
	return nil
}
