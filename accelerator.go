package fx

import (
	"errors"
	"sync"
)

// ErrFallbackToCPU indicates the GPU accelerator cannot handle this operation.
// The caller should transparently fall back to CPU processing.
var ErrFallbackToCPU = errors.New("fx: falling back to CPU processing")

// AcceleratedOp describes operation types for GPU capability checking.
type AcceleratedOp uint32

const (
	// AccelResample represents filtered resampling (Lanczos scaling).
	AccelResample AcceleratedOp = 1 << iota

	// AccelCrop represents rectangular crop operations.
	AccelCrop

	// AccelRGBMatrix represents per-pixel color matrix operations.
	AccelRGBMatrix
)

// FrameTarget provides pixel buffer access for accelerator output.
// The Data slice must be in RGBA format, 4 bytes per pixel, laid out
// row by row with the given Stride.
type FrameTarget struct {
	Data          []uint8
	Width, Height int
	Stride        int // bytes per row
}

// Accelerator is an optional GPU acceleration provider.
//
// When registered via RegisterAccelerator, processors try GPU acceleration
// first for supported operations. If the accelerator returns ErrFallbackToCPU
// or any error, processing transparently falls back to CPU.
//
// Implementations should be provided by GPU backend packages (e.g., fx/gpu/).
// Users opt in to GPU acceleration via blank import:
//
//	import _ "github.com/gogpu/fx/gpu" // enables GPU acceleration
type Accelerator interface {
	// Name returns the accelerator name (e.g., "wgpu", "vulkan").
	Name() string

	// Init initializes GPU resources. Called once during registration.
	Init() error

	// Close releases GPU resources.
	Close()

	// CanAccelerate reports whether the accelerator supports the given operation.
	// This is a fast check used to skip GPU entirely for unsupported operations.
	CanAccelerate(op AcceleratedOp) bool

	// Resample scales src into the target using the accelerator's Lanczos
	// filter. The target dimensions select the output size.
	// Returns ErrFallbackToCPU if the operation cannot be GPU-accelerated.
	Resample(target FrameTarget, src *Frame) error
}

// DeviceProviderAware is an optional interface for accelerators that can share
// GPU resources with an external provider (e.g., a gogpu window).
// When SetDeviceProvider is called, the accelerator reuses the provided GPU
// device instead of creating its own.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

var (
	accelMu sync.RWMutex
	accel   Accelerator
)

// RegisterAccelerator registers a GPU accelerator for optional GPU processing.
//
// Only one accelerator can be registered. Subsequent calls replace the previous one.
// The accelerator's Init() method is called during registration.
// If Init() fails, the accelerator is not registered and the error is returned.
//
// Typical usage via blank import in GPU backend packages:
//
//	func init() {
//	    fx.RegisterAccelerator(NewWGPUAccelerator())
//	}
func RegisterAccelerator(a Accelerator) error {
	if a == nil {
		return errors.New("fx: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}
	propagateLogger(a, Logger())
	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// RegisteredAccelerator returns the currently registered accelerator, or nil
// if none.
func RegisteredAccelerator() Accelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}

// SetAcceleratorDeviceProvider passes a device provider to the registered
// accelerator, enabling GPU device sharing. If no accelerator is registered
// or it doesn't support device sharing, this is a no-op.
//
// The provider should implement HalDevice() any and HalQueue() any methods
// that return wgpu/hal types.
func SetAcceleratorDeviceProvider(provider any) error {
	a := RegisteredAccelerator()
	if a == nil {
		return nil
	}
	if dpa, ok := a.(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
