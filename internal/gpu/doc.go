//go:build !nogpu

// Package gpu provides a Pure Go GPU-accelerated frame resampler.
//
// This is an internal package used by the fx library for GPU resampling.
// It leverages WebGPU compute shaders via the gogpu/wgpu Pure Go WebGPU
// implementation (zero CGO) on the Vulkan backend.
//
// # Architecture
//
// The resampler runs a single compute pass per frame:
//
//	Frame pixels -> storage buffer -> Lanczos3 compute shader -> staging buffer -> readback
//
// One shader invocation computes one destination pixel, evaluating the full
// 2D windowed-sinc kernel with clamp-to-edge sampling and weight-sum
// normalization. The WGSL source is embedded and validated through naga at
// accelerator init, so shader errors surface early with a readable message.
//
// # Fallback
//
// If no adapter can be opened, or pipeline creation fails, the accelerator
// still registers but reports fx.ErrFallbackToCPU on every frame, keeping
// processing on the CPU path without caller involvement.
package gpu
