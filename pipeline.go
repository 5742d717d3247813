package fx

import "errors"

// Pipeline applies an ordered chain of effects to frames.
//
// Stages whose effect reports a no-op for the current frame size are
// skipped, so a ScaleToFit followed by a Presentation of the same size
// costs nothing when the input already matches.
//
// A Pipeline owns its processors; call Release when done.
type Pipeline struct {
	effects  []Effect
	procs    []Processor
	released bool
}

// NewPipeline creates a pipeline from the given effects, in order.
// The options are passed to every effect's NewProcessor.
func NewPipeline(effects []Effect, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		effects: effects,
		procs:   make([]Processor, 0, len(effects)),
	}

	for _, e := range effects {
		proc, err := e.NewProcessor(opts...)
		if err != nil {
			_ = p.Release()
			return nil, err
		}
		p.procs = append(p.procs, proc)
	}

	return p, nil
}

// OutputSize returns the frame size the pipeline produces for the given
// input size, accounting for skipped no-op stages.
func (p *Pipeline) OutputSize(inputWidth, inputHeight int) Size {
	size := Size{Width: inputWidth, Height: inputHeight}
	for _, e := range p.effects {
		if e.IsNoOp(size.Width, size.Height) {
			continue
		}
		size = e.OutputSize(size.Width, size.Height)
	}
	return size
}

// Process runs one frame through all stages and returns the result.
// The input frame is not modified.
func (p *Pipeline) Process(input *Frame) (*Frame, error) {
	if p.released {
		return nil, ErrProcessorReleased
	}
	if input == nil {
		return nil, errors.New("fx: nil input frame")
	}

	current := input
	for i, proc := range p.procs {
		if p.effects[i].IsNoOp(current.Width(), current.Height()) {
			continue
		}
		next, err := proc.Process(current)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// Release frees all processors. Safe to call multiple times.
func (p *Pipeline) Release() error {
	if p.released {
		return nil
	}
	p.released = true

	var errs []error
	for _, proc := range p.procs {
		if err := proc.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
