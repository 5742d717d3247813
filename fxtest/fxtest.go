// Package fxtest provides test support for frame effects: PSNR comparison,
// procedural source frames, an independent reference scaler, and optional
// frame dumps for debugging.
//
// Frames produced during a test run can be saved for inspection by setting
// FX_TEST_OUTPUT_DIR to a writable directory.
package fxtest

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/fx"
)

// PSNRThresholdDB is the default peak signal-to-noise ratio, in dB, above
// which two frames are considered visually equivalent.
const PSNRThresholdDB = 35.0

// PSNR computes the peak signal-to-noise ratio between two frames, in dB,
// over the RGB channels (alpha is excluded). Identical frames return +Inf.
func PSNR(want, got *fx.Frame) (float64, error) {
	if want == nil || got == nil {
		return 0, errors.New("fxtest: nil frame")
	}
	if want.Width() != got.Width() || want.Height() != got.Height() {
		return 0, fmt.Errorf("fxtest: size mismatch: want %s, got %s", want.Size(), got.Size())
	}

	wd, gd := want.Data(), got.Data()
	var sum float64
	for i := 0; i < len(wd); i += 4 {
		for c := 0; c < 3; c++ {
			d := float64(wd[i+c]) - float64(gd[i+c])
			sum += d * d
		}
	}
	if sum == 0 {
		return math.Inf(1), nil
	}
	n := float64(want.Width() * want.Height() * 3)
	mse := sum / n
	return 10 * math.Log10(255*255/mse), nil
}

// AssertSimilar fails the test when got differs from want by more than the
// given PSNR threshold. Both frames are saved when FX_TEST_OUTPUT_DIR is set.
func AssertSimilar(t *testing.T, want, got *fx.Frame, thresholdDB float64) {
	t.Helper()
	MaybeSaveFrame(t, "want", want)
	MaybeSaveFrame(t, "got", got)
	psnr, err := PSNR(want, got)
	if err != nil {
		t.Fatalf("PSNR: %v", err)
	}
	if psnr < thresholdDB {
		t.Errorf("PSNR = %.2f dB, want >= %.2f dB", psnr, thresholdDB)
	}
}

// MaybeSaveFrame writes the frame as a PNG under FX_TEST_OUTPUT_DIR when the
// variable is set, using the test name and label for the filename. Does
// nothing otherwise. Save failures are reported but do not fail the test.
func MaybeSaveFrame(t *testing.T, label string, frame *fx.Frame) {
	t.Helper()
	dir := os.Getenv("FX_TEST_OUTPUT_DIR")
	if dir == "" || frame == nil {
		return
	}
	name := fmt.Sprintf("%s_%s.png", sanitize(t.Name()), label)
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Logf("fxtest: create output dir: %v", err)
		return
	}
	if err := frame.SavePNG(path); err != nil {
		t.Logf("fxtest: save %s: %v", path, err)
		return
	}
	t.Logf("fxtest: saved %s", path)
}

// ReadFrame loads a golden frame from a PNG or JPEG file.
func ReadFrame(path string) (*fx.Frame, error) {
	return fx.LoadImage(path)
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
