package fx

import "errors"

// ErrProcessorReleased is returned when a frame is queued to a processor
// after Release.
var ErrProcessorReleased = errors.New("fx: processor released")

// Effect describes a frame transformation.
//
// Effects are cheap, immutable descriptions. The actual per-frame work is
// done by a Processor created via NewProcessor. This split lets callers
// inspect output sizes and no-op behavior before committing GPU or kernel
// resources.
type Effect interface {
	// OutputSize returns the frame size this effect produces for the given
	// input size.
	OutputSize(inputWidth, inputHeight int) Size

	// IsNoOp reports whether applying this effect to a frame of the given
	// size would leave it unchanged. Pipelines use this to skip stages.
	IsNoOp(inputWidth, inputHeight int) bool

	// NewProcessor creates a processor that applies this effect to frames.
	NewProcessor(opts ...Option) (Processor, error)
}

// Processor applies an effect to a stream of frames.
//
// Processors may hold kernel tables, pooled buffers, or GPU resources.
// Callers must call Release when done. A Processor is safe for use from a
// single goroutine; concurrent Process calls require external locking.
type Processor interface {
	// Process transforms one input frame and returns the output frame.
	// The input frame is not modified. The output frame carries the input's
	// presentation time.
	Process(input *Frame) (*Frame, error)

	// Release frees resources held by the processor. Process must not be
	// called after Release.
	Release() error
}
