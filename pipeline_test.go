package fx

import (
	"errors"
	"testing"
)

func TestPipelineOutputSize(t *testing.T) {
	p, err := NewPipeline([]Effect{
		ScaleToFit(640, 640),
		NewCrop(0, 0, 320, 180),
	}, WithoutAccelerator())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	defer func() { _ = p.Release() }()

	// 1920x1080 scales to 640x360, then crops to 320x180.
	if got := p.OutputSize(1920, 1080); got != (Size{320, 180}) {
		t.Errorf("OutputSize = %s, want 320x180", got)
	}
}

func TestPipelineProcess(t *testing.T) {
	p, err := NewPipeline([]Effect{
		ScaleToFit(64, 64),
		Brightness(0.2),
	}, WithoutAccelerator(), WithWorkers(2))
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	defer func() { _ = p.Release() }()

	input := NewFrame(128, 96)
	input.Clear(RGBA{R: 0.4, G: 0.4, B: 0.4, A: 1})

	output, err := p.Process(input)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if output.Size() != (Size{64, 48}) {
		t.Fatalf("output size = %s, want 64x48", output.Size())
	}

	// 0.4*255 = 102, brightened by 0.2*255 = 51.
	if got := output.Data()[0]; got != 153 {
		t.Errorf("pixel byte = %d, want 153", got)
	}
}

func TestPipelineSkipsNoOpStages(t *testing.T) {
	p, err := NewPipeline([]Effect{
		ScaleToFit(128, 96), // no-op for a 128x96 input
		Brightness(0),       // identity, always skipped
	}, WithoutAccelerator())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	defer func() { _ = p.Release() }()

	input := NewFrame(128, 96)
	output, err := p.Process(input)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if output != input {
		t.Error("all-no-op pipeline should return the input frame unchanged")
	}
}

func TestPipelineCreationFailureReleasesProcessors(t *testing.T) {
	_, err := NewPipeline([]Effect{
		ScaleToFit(64, 64),
		ScaleToFit(0, 0), // invalid
	})
	if err == nil {
		t.Fatal("expected error from invalid effect")
	}
}

func TestPipelineRelease(t *testing.T) {
	p, err := NewPipeline([]Effect{ScaleToFit(64, 64)}, WithoutAccelerator())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	if err := p.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := p.Release(); err != nil {
		t.Errorf("second Release should be a no-op, got %v", err)
	}

	if _, err := p.Process(NewFrame(128, 96)); !errors.Is(err, ErrProcessorReleased) {
		t.Errorf("Process after Release = %v, want ErrProcessorReleased", err)
	}
}

func TestPipelineNilFrame(t *testing.T) {
	p, err := NewPipeline([]Effect{ScaleToFit(64, 64)}, WithoutAccelerator())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	defer func() { _ = p.Release() }()

	if _, err := p.Process(nil); err == nil {
		t.Error("expected error for nil input frame")
	}
}
