// Package fx provides frame effects for Go video and image pipelines.
//
// # Overview
//
// fx is a Pure Go frame-effects library designed to integrate with the
// GoGPU ecosystem. It applies effects such as high-quality Lanczos
// resampling, cropping, presentation fitting, and color matrices to RGBA
// frames, with a software path that always works and an optional GPU
// compute path via gogpu/wgpu.
//
// # Quick Start
//
//	import "github.com/gogpu/fx"
//
//	frame, _ := fx.LoadImage("input.jpg")
//
//	// Scale to fit within 1280x720, preserving aspect ratio.
//	resample := fx.ScaleToFit(1280, 720)
//	proc, _ := resample.NewProcessor()
//	defer proc.Release()
//
//	out, _ := proc.Process(frame)
//	_ = out.SavePNG("output.png")
//
// # Effects
//
// Every effect implements the Effect interface: it reports its output size
// for a given input size, can detect when it would be a no-op, and creates
// a Processor that transforms frames. Effects compose via Pipeline, which
// skips no-op stages.
//
// # GPU Acceleration
//
// The default path is CPU-only. GPU acceleration is opt-in via blank import:
//
//	import _ "github.com/gogpu/fx/gpu" // enables wgpu compute acceleration
//
// If GPU initialization fails, processing transparently falls back to the
// CPU path.
//
// # Coordinate System
//
// Frames use standard raster coordinates: origin (0,0) at top-left,
// X increases right, Y increases down.
package fx

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
