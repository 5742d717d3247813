package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNewWorkerPoolDefaults(t *testing.T) {
	p := NewWorkerPool(0)
	defer p.Close()

	if got := p.Workers(); got != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers() = %d, want GOMAXPROCS %d", got, runtime.GOMAXPROCS(0))
	}
	if !p.IsRunning() {
		t.Error("new pool should be running")
	}
}

func TestExecuteAll(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}

	p.ExecuteAll(work)

	if got := counter.Load(); got != 100 {
		t.Errorf("executed %d tasks, want 100", got)
	}
}

func TestExecuteAllEmpty(t *testing.T) {
	p := NewWorkerPool(2)
	defer p.Close()

	// Must not block or panic.
	p.ExecuteAll(nil)
	p.ExecuteAll([]func(){})
}

func TestForRowsCoversAllRows(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Close()

	heights := []int{1, 3, 4, 7, 100, 1081}
	for _, h := range heights {
		var mu sync.Mutex
		covered := make([]int, h)

		p.ForRows(h, func(y0, y1 int) {
			if y0 < 0 || y1 > h || y0 >= y1 {
				t.Errorf("height %d: bad band [%d, %d)", h, y0, y1)
				return
			}
			mu.Lock()
			for y := y0; y < y1; y++ {
				covered[y]++
			}
			mu.Unlock()
		})

		for y, n := range covered {
			if n != 1 {
				t.Fatalf("height %d: row %d covered %d times, want exactly once", h, y, n)
			}
		}
	}
}

func TestForRowsZeroHeight(t *testing.T) {
	p := NewWorkerPool(2)
	defer p.Close()

	called := false
	p.ForRows(0, func(int, int) { called = true })
	if called {
		t.Error("ForRows(0) should not invoke the callback")
	}
}

func TestForRowsSingleWorkerRunsSerial(t *testing.T) {
	p := NewWorkerPool(1)
	defer p.Close()

	var bands [][2]int
	p.ForRows(10, func(y0, y1 int) {
		bands = append(bands, [2]int{y0, y1})
	})

	if len(bands) != 1 || bands[0] != [2]int{0, 10} {
		t.Errorf("bands = %v, want one full band", bands)
	}
}

func TestCloseIdempotent(t *testing.T) {
	p := NewWorkerPool(2)

	p.Close()
	p.Close()

	if p.IsRunning() {
		t.Error("pool should not be running after Close")
	}
}

func TestForRowsAfterCloseRunsSerial(t *testing.T) {
	p := NewWorkerPool(4)
	p.Close()

	var counter atomic.Int64
	p.ForRows(20, func(y0, y1 int) {
		counter.Add(int64(y1 - y0))
	})

	if got := counter.Load(); got != 20 {
		t.Errorf("covered %d rows after close, want 20", got)
	}
}

func TestExecuteAllAfterCloseIsNoOp(t *testing.T) {
	p := NewWorkerPool(2)
	p.Close()

	called := false
	p.ExecuteAll([]func(){func() { called = true }})
	if called {
		t.Error("ExecuteAll on a closed pool should not run work")
	}
}
