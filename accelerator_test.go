package fx

import (
	"errors"
	"sync"
	"testing"
)

// mockAccelerator implements Accelerator for testing.
type mockAccelerator struct {
	name       string
	initErr    error
	closed     bool
	canAccel   AcceleratedOp
	onResample func(target FrameTarget, src *Frame) error
	mu         sync.Mutex
}

func (m *mockAccelerator) Name() string { return m.name }

func (m *mockAccelerator) Init() error { return m.initErr }

func (m *mockAccelerator) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

func (m *mockAccelerator) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *mockAccelerator) CanAccelerate(op AcceleratedOp) bool {
	return m.canAccel&op != 0
}

func (m *mockAccelerator) Resample(target FrameTarget, src *Frame) error {
	if m.onResample != nil {
		return m.onResample(target, src)
	}
	return ErrFallbackToCPU
}

// resetAccelerator clears the global accelerator state between tests.
func resetAccelerator() {
	accelMu.Lock()
	accel = nil
	accelMu.Unlock()
}

func TestRegisterAcceleratorNil(t *testing.T) {
	resetAccelerator()

	err := RegisterAccelerator(nil)
	if err == nil {
		t.Fatal("expected error when registering nil accelerator")
	}
	if RegisteredAccelerator() != nil {
		t.Error("accelerator should remain nil after failed registration")
	}
}

func TestRegisterAcceleratorInitError(t *testing.T) {
	resetAccelerator()

	initErr := errors.New("GPU init failed")
	mock := &mockAccelerator{name: "failing", initErr: initErr}
	if err := RegisterAccelerator(mock); !errors.Is(err, initErr) {
		t.Errorf("RegisterAccelerator = %v, want %v", err, initErr)
	}
	if RegisteredAccelerator() != nil {
		t.Error("accelerator should remain nil after failed init")
	}
}

func TestRegisterAcceleratorReplacesOld(t *testing.T) {
	resetAccelerator()
	defer resetAccelerator()

	first := &mockAccelerator{name: "first"}
	second := &mockAccelerator{name: "second"}

	if err := RegisterAccelerator(first); err != nil {
		t.Fatalf("register first: %v", err)
	}
	if err := RegisterAccelerator(second); err != nil {
		t.Fatalf("register second: %v", err)
	}

	if got := RegisteredAccelerator(); got != second {
		t.Errorf("RegisteredAccelerator() = %v, want second", got)
	}
	if !first.isClosed() {
		t.Error("replaced accelerator should be closed")
	}
	if second.isClosed() {
		t.Error("active accelerator should not be closed")
	}
}

// providerAwareMock adds device-provider support to the mock.
type providerAwareMock struct {
	mockAccelerator
	provider any
}

func (m *providerAwareMock) SetDeviceProvider(provider any) error {
	m.provider = provider
	return nil
}

func TestSetAcceleratorDeviceProvider(t *testing.T) {
	resetAccelerator()
	defer resetAccelerator()

	// No accelerator registered: no-op.
	if err := SetAcceleratorDeviceProvider("provider"); err != nil {
		t.Errorf("SetAcceleratorDeviceProvider with no accelerator = %v", err)
	}

	// Accelerator without device-provider support: no-op.
	plain := &mockAccelerator{name: "plain"}
	if err := RegisterAccelerator(plain); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := SetAcceleratorDeviceProvider("provider"); err != nil {
		t.Errorf("SetAcceleratorDeviceProvider on plain accelerator = %v", err)
	}

	// Provider-aware accelerator receives the provider.
	aware := &providerAwareMock{mockAccelerator: mockAccelerator{name: "aware"}}
	if err := RegisterAccelerator(aware); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := SetAcceleratorDeviceProvider("provider"); err != nil {
		t.Fatalf("SetAcceleratorDeviceProvider: %v", err)
	}
	if aware.provider != "provider" {
		t.Errorf("provider = %v, want %q", aware.provider, "provider")
	}
}

func TestLanczosUsesAccelerator(t *testing.T) {
	resetAccelerator()
	defer resetAccelerator()

	mock := &mockAccelerator{
		name:     "mock",
		canAccel: AccelResample,
		onResample: func(target FrameTarget, src *Frame) error {
			for i := range target.Data {
				target.Data[i] = 0xAB
			}
			return nil
		},
	}
	if err := RegisterAccelerator(mock); err != nil {
		t.Fatalf("register: %v", err)
	}

	proc, err := ScaleToFit(50, 50).NewProcessor()
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	defer func() { _ = proc.Release() }()

	output, err := proc.Process(NewFrame(100, 100))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i, v := range output.Data() {
		if v != 0xAB {
			t.Fatalf("byte %d = %#x, want accelerator output 0xAB", i, v)
		}
	}
}

func TestLanczosFallsBackToCPU(t *testing.T) {
	resetAccelerator()
	defer resetAccelerator()

	mock := &mockAccelerator{name: "mock", canAccel: AccelResample}
	if err := RegisterAccelerator(mock); err != nil {
		t.Fatalf("register: %v", err)
	}

	proc, err := ScaleToFit(50, 50).NewProcessor()
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	defer func() { _ = proc.Release() }()

	input := NewFrame(100, 100)
	input.Clear(RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1})
	want := input.GetPixel(0, 0)

	output, err := proc.Process(input)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got := output.GetPixel(25, 25); got != want {
		t.Errorf("CPU fallback pixel = %+v, want %+v", got, want)
	}
}

func TestWithoutAcceleratorSkipsAccelerator(t *testing.T) {
	resetAccelerator()
	defer resetAccelerator()

	called := false
	mock := &mockAccelerator{
		name:     "mock",
		canAccel: AccelResample,
		onResample: func(FrameTarget, *Frame) error {
			called = true
			return nil
		},
	}
	if err := RegisterAccelerator(mock); err != nil {
		t.Fatalf("register: %v", err)
	}

	proc, err := ScaleToFit(50, 50).NewProcessor(WithoutAccelerator())
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	defer func() { _ = proc.Release() }()

	if _, err := proc.Process(NewFrame(100, 100)); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if called {
		t.Error("accelerator should not be called with WithoutAccelerator")
	}
}
