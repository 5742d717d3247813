package fx

import (
	"errors"
	"testing"
)

func TestCropOutputSize(t *testing.T) {
	tests := []struct {
		name              string
		x, y, w, h        int
		inWidth, inHeight int
		want              Size
	}{
		{"interior", 10, 20, 100, 50, 640, 480, Size{100, 50}},
		{"full frame", 0, 0, 640, 480, 640, 480, Size{640, 480}},
		{"clamped right", 600, 0, 100, 100, 640, 480, Size{40, 100}},
		{"clamped bottom", 0, 440, 100, 100, 640, 480, Size{100, 40}},
		{"larger than frame", -10, -10, 1000, 1000, 640, 480, Size{640, 480}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCrop(tt.x, tt.y, tt.w, tt.h)
			if got := c.OutputSize(tt.inWidth, tt.inHeight); got != tt.want {
				t.Errorf("OutputSize = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCropIsNoOp(t *testing.T) {
	if !NewCrop(0, 0, 640, 480).IsNoOp(640, 480) {
		t.Error("full-frame crop should be a no-op")
	}
	if !NewCrop(-10, -10, 1000, 1000).IsNoOp(640, 480) {
		t.Error("crop covering the frame should be a no-op")
	}
	if NewCrop(0, 0, 320, 480).IsNoOp(640, 480) {
		t.Error("partial crop should not be a no-op")
	}
}

func TestCropProcess(t *testing.T) {
	input := NewFrame(8, 8)
	input.SetPixel(3, 2, White)
	input.SetPixel(2, 2, RGB(1, 0, 0))

	proc, err := NewCrop(2, 1, 4, 3).NewProcessor()
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	defer func() { _ = proc.Release() }()

	output, err := proc.Process(input)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if output.Width() != 4 || output.Height() != 3 {
		t.Fatalf("output size = %s, want 4x3", output.Size())
	}

	// (3, 2) in the input lands at (1, 1) in the crop.
	if got := output.GetPixel(1, 1); got != White {
		t.Errorf("pixel (1, 1) = %+v, want white", got)
	}
	if got := output.GetPixel(0, 1); got != (RGBA{R: 1, A: 1}) {
		t.Errorf("pixel (0, 1) = %+v, want red", got)
	}
}

func TestCropProcessNoOpReturnsInput(t *testing.T) {
	proc, err := NewCrop(0, 0, 8, 8).NewProcessor()
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	defer func() { _ = proc.Release() }()

	input := NewFrame(8, 8)
	output, err := proc.Process(input)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if output != input {
		t.Error("no-op crop should return the input frame unchanged")
	}
}

func TestCropEmptyRect(t *testing.T) {
	if _, err := NewCrop(0, 0, 0, 10).NewProcessor(); err == nil {
		t.Error("expected error for empty crop rectangle")
	}
}

func TestCropOutsideFrame(t *testing.T) {
	proc, err := NewCrop(100, 100, 10, 10).NewProcessor()
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	defer func() { _ = proc.Release() }()

	if _, err := proc.Process(NewFrame(8, 8)); err == nil {
		t.Error("expected error for crop outside the frame")
	}
}

func TestCropNilFrame(t *testing.T) {
	proc, err := NewCrop(0, 0, 4, 4).NewProcessor()
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	defer func() { _ = proc.Release() }()

	if _, err := proc.Process(nil); err == nil {
		t.Error("expected error for nil input frame")
	}
}

func TestCropReleased(t *testing.T) {
	proc, err := NewCrop(0, 0, 4, 4).NewProcessor()
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	_ = proc.Release()

	if _, err := proc.Process(NewFrame(8, 8)); !errors.Is(err, ErrProcessorReleased) {
		t.Errorf("Process after Release = %v, want ErrProcessorReleased", err)
	}
}
