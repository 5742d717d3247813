//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unsafe"

	"github.com/gogpu/fx"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// resampleParams is the uniform block for the resample shader.
// Layout must match struct Params in shaders/resample.wgsl.
type resampleParams struct {
	SrcWidth  uint32
	SrcHeight uint32
	DstWidth  uint32
	DstHeight uint32
}

// ResampleAccelerator provides GPU-accelerated Lanczos resampling using
// wgpu/hal compute shaders. It implements the fx.Accelerator interface.
//
// Each Resample call uploads the source frame, dispatches one compute
// invocation per destination pixel, and reads the result back through a
// staging buffer. If the GPU is unavailable the accelerator stays
// registered but reports ErrFallbackToCPU for every frame.
type ResampleAccelerator struct {
	mu sync.Mutex

	logger *slog.Logger

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	spirv []uint32

	gpuReady       bool
	externalDevice bool // true when using shared device (don't destroy on Close)
}

var (
	_ fx.Accelerator         = (*ResampleAccelerator)(nil)
	_ fx.DeviceProviderAware = (*ResampleAccelerator)(nil)
)

func (a *ResampleAccelerator) Name() string { return "wgpu-resample" }

func (a *ResampleAccelerator) CanAccelerate(op fx.AcceleratedOp) bool {
	return op&fx.AccelResample != 0
}

// SetLogger accepts the fx logger (propagated by fx.SetLogger).
func (a *ResampleAccelerator) SetLogger(l *slog.Logger) {
	a.mu.Lock()
	a.logger = l
	a.mu.Unlock()
}

// log returns the configured logger, defaulting to the fx package logger.
func (a *ResampleAccelerator) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return fx.Logger()
}

func (a *ResampleAccelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	spirv, err := compileShaderToSPIRV(resampleShaderSource)
	if err != nil {
		// A shader that fails validation is a bug, not a missing GPU.
		return fmt.Errorf("wgpu-resample: %w", err)
	}
	a.spirv = spirv

	if err := a.initGPU(); err != nil {
		a.log().Warn("GPU init failed, resampling stays on CPU", "err", err)
	}
	return nil
}

func (a *ResampleAccelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.destroyPipelines()
	if !a.externalDevice {
		if a.device != nil {
			a.device.Destroy()
			a.device = nil
		}
		if a.instance != nil {
			a.instance.Destroy()
			a.instance = nil
		}
	} else {
		// Shared resources belong to the provider, not us.
		a.device = nil
		a.instance = nil
	}
	a.queue = nil
	a.gpuReady = false
	a.externalDevice = false
}

// SetDeviceProvider switches the accelerator to use a shared GPU device
// from an external provider (e.g., gogpu). The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func (a *ResampleAccelerator) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu-resample: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu-resample: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu-resample: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Destroy own resources if we created them
	a.destroyPipelines()
	if !a.externalDevice && a.device != nil {
		a.device.Destroy()
	}
	if a.instance != nil {
		a.instance.Destroy()
		a.instance = nil
	}

	a.device = device
	a.queue = queue
	a.externalDevice = true

	if err := a.createPipelines(); err != nil {
		a.gpuReady = false
		return fmt.Errorf("wgpu-resample: create pipelines with shared device: %w", err)
	}
	a.gpuReady = true
	a.log().Info("switched to shared GPU device")
	return nil
}

func (a *ResampleAccelerator) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	a.instance = instance
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	a.device = openDev.Device
	a.queue = openDev.Queue
	if err := a.createPipelines(); err != nil {
		a.device.Destroy()
		a.device = nil
		a.queue = nil
		return fmt.Errorf("create pipelines: %w", err)
	}
	a.gpuReady = true
	a.log().Info("GPU resample accelerator initialized", "adapter", selected.Info.Name)
	return nil
}

func (a *ResampleAccelerator) createPipelines() error {
	if a.spirv == nil {
		spirv, err := compileShaderToSPIRV(resampleShaderSource)
		if err != nil {
			return fmt.Errorf("compile resample shader: %w", err)
		}
		a.spirv = spirv
	}

	shader, err := createShaderModule(a.device, "fx_resample", a.spirv)
	if err != nil {
		return fmt.Errorf("compile resample shader: %w", err)
	}
	a.shader = shader

	bindLayout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "fx_resample_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	a.bindLayout = bindLayout

	pipeLayout, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "fx_resample_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{a.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	a.pipeLayout = pipeLayout

	pipeline, err := a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "fx_resample_pipeline", Layout: a.pipeLayout,
		Compute: hal.ComputeState{Module: a.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	a.pipeline = pipeline

	return nil
}

func (a *ResampleAccelerator) destroyPipelines() {
	if a.device == nil {
		return
	}
	if a.pipeline != nil {
		a.device.DestroyComputePipeline(a.pipeline)
		a.pipeline = nil
	}
	if a.pipeLayout != nil {
		a.device.DestroyPipelineLayout(a.pipeLayout)
		a.pipeLayout = nil
	}
	if a.bindLayout != nil {
		a.device.DestroyBindGroupLayout(a.bindLayout)
		a.bindLayout = nil
	}
	if a.shader != nil {
		a.device.DestroyShaderModule(a.shader)
		a.shader = nil
	}
}

// Resample scales src into target on the GPU.
func (a *ResampleAccelerator) Resample(target fx.FrameTarget, src *fx.Frame) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.gpuReady {
		return fx.ErrFallbackToCPU
	}
	if target.Width <= 0 || target.Height <= 0 || src.Width() <= 0 || src.Height() <= 0 {
		return fmt.Errorf("wgpu-resample: invalid dimensions %dx%d -> %dx%d",
			src.Width(), src.Height(), target.Width, target.Height)
	}
	if target.Stride != target.Width*4 {
		// The shader writes tightly packed rows.
		return fx.ErrFallbackToCPU
	}

	return a.dispatch(target, src)
}

// dispatch uploads src, runs one compute pass, and reads back into target.
func (a *ResampleAccelerator) dispatch(target fx.FrameTarget, src *fx.Frame) error {
	srcW, srcH := uint32(src.Width()), uint32(src.Height())
	dstW, dstH := uint32(target.Width), uint32(target.Height)
	srcBufSize := uint64(srcW) * uint64(srcH) * 4
	dstBufSize := uint64(dstW) * uint64(dstH) * 4

	params := resampleParams{
		SrcWidth: srcW, SrcHeight: srcH,
		DstWidth: dstW, DstHeight: dstH,
	}
	paramSize := uint64(unsafe.Sizeof(params))
	paramsBytes := structToBytes(unsafe.Pointer(&params), unsafe.Sizeof(params)) //nolint:gosec // safe struct access

	paramsBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "fx_resample_params", Size: paramSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create params buffer: %w", err)
	}
	defer a.device.DestroyBuffer(paramsBuf)

	srcBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "fx_resample_src", Size: srcBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create source buffer: %w", err)
	}
	defer a.device.DestroyBuffer(srcBuf)

	dstBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "fx_resample_dst", Size: dstBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create destination buffer: %w", err)
	}
	defer a.device.DestroyBuffer(dstBuf)

	stagingBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "fx_resample_staging", Size: dstBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer a.device.DestroyBuffer(stagingBuf)

	a.queue.WriteBuffer(paramsBuf, 0, paramsBytes)
	a.queue.WriteBuffer(srcBuf, 0, packPixelsForGPU(src.Data(), int(srcW*srcH)))

	bindGroup, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "fx_resample_bind", Layout: a.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: paramsBuf.NativeHandle(), Offset: 0, Size: paramSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: srcBuf.NativeHandle(), Offset: 0, Size: srcBufSize}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: dstBuf.NativeHandle(), Offset: 0, Size: dstBufSize}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer a.device.DestroyBindGroup(bindGroup)

	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "fx_resample_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("fx_resample"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	computePass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "fx_resample_pass"})
	computePass.SetPipeline(a.pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.Dispatch((dstW+7)/8, (dstH+7)/8, 1)
	computePass.End()

	encoder.CopyBufferToBuffer(dstBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: dstBufSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer a.device.FreeCommandBuffer(cmdBuf)

	fence, err := a.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer a.device.DestroyFence(fence)
	submission, err := a.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := a.device.Wait(fence, submission, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	mapped, err := a.device.MapBuffer(stagingBuf, 0, dstBufSize)
	if err != nil {
		return fmt.Errorf("map staging buffer: %w", err)
	}
	readback := make([]byte, dstBufSize)
	copy(readback, unsafe.Slice((*byte)(mapped.Ptr), dstBufSize))
	if err := a.device.UnmapBuffer(stagingBuf); err != nil {
		return fmt.Errorf("unmap staging buffer: %w", err)
	}
	unpackPixelsFromGPU(readback, target.Data, int(dstW*dstH))
	return nil
}

func structToBytes(ptr unsafe.Pointer, size uintptr) []byte {
	return unsafe.Slice((*byte)(ptr), size) //nolint:gosec // safe struct serialization
}

// packPixelsForGPU converts RGBA bytes to packed little-endian u32 words
// (R in the low byte) as the shader expects.
func packPixelsForGPU(data []uint8, pixelCount int) []byte {
	out := make([]byte, pixelCount*4)
	for i := 0; i < pixelCount; i++ {
		srcIdx := i * 4
		r := uint32(data[srcIdx+0])
		g := uint32(data[srcIdx+1])
		b := uint32(data[srcIdx+2])
		a := uint32(data[srcIdx+3])
		packed := r | (g << 8) | (b << 16) | (a << 24)
		binary.LittleEndian.PutUint32(out[i*4:], packed)
	}
	return out
}

// unpackPixelsFromGPU converts packed u32 words back to RGBA bytes.
func unpackPixelsFromGPU(readback []byte, dst []uint8, pixelCount int) {
	for i := 0; i < pixelCount; i++ {
		packed := binary.LittleEndian.Uint32(readback[i*4:])
		dstIdx := i * 4
		dst[dstIdx+0] = uint8(packed)
		dst[dstIdx+1] = uint8(packed >> 8)
		dst[dstIdx+2] = uint8(packed >> 16)
		dst[dstIdx+3] = uint8(packed >> 24)
	}
}
