//go:build !nogpu

// Package gpu registers the wgpu compute accelerator for GPU-accelerated
// frame resampling.
//
// Import this package to route Lanczos resampling through a compute shader
// when a GPU is available. If GPU initialization fails (no Vulkan available),
// registration is silently skipped and processing falls back to CPU.
//
// Usage:
//
//	import _ "github.com/gogpu/fx/gpu" // enable GPU acceleration
package gpu

import (
	"github.com/gogpu/fx"
	gpuimpl "github.com/gogpu/fx/internal/gpu"
	"github.com/gogpu/gpucontext"
)

func init() {
	accel := &gpuimpl.ResampleAccelerator{}
	if err := fx.RegisterAccelerator(accel); err != nil {
		fx.Logger().Warn("GPU accelerator not available", "err", err)
	}
}

// DeviceHandle is an alias for gpucontext.DeviceProvider, for callers that
// already hold a shared GPU context.
type DeviceHandle = gpucontext.DeviceProvider

// SetDeviceProvider configures the registered accelerator to use a shared
// GPU device from an external provider (e.g., a gogpu window) instead of
// creating its own instance.
//
// The provider must also expose HalDevice() any and HalQueue() any returning
// wgpu/hal types; providers that don't are rejected with an error.
func SetDeviceProvider(provider DeviceHandle) error {
	return fx.SetAcceleratorDeviceProvider(provider)
}
