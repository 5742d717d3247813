package fx

// Option configures a Processor during creation.
// Use functional options to customize processing behavior.
//
// Example:
//
//	// Default: accelerator if registered, all CPU cores otherwise.
//	proc, _ := fx.ScaleToFit(1280, 720).NewProcessor()
//
//	// Force the CPU path with a bounded worker count:
//	proc, _ := fx.ScaleToFit(1280, 720).NewProcessor(
//	    fx.WithoutAccelerator(),
//	    fx.WithWorkers(2),
//	)
type Option func(*procOptions)

// procOptions holds optional configuration for processor creation.
type procOptions struct {
	disableAccel bool
	workers      int
}

// defaultProcOptions returns the default processor options.
func defaultProcOptions() procOptions {
	return procOptions{
		disableAccel: false,
		workers:      0, // 0 means GOMAXPROCS
	}
}

// WithoutAccelerator forces the CPU path even when a GPU accelerator is
// registered. Useful for golden tests and deterministic output.
func WithoutAccelerator() Option {
	return func(o *procOptions) {
		o.disableAccel = true
	}
}

// WithWorkers bounds the number of worker goroutines used by CPU processing.
// n <= 0 selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *procOptions) {
		o.workers = n
	}
}
