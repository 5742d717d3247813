// Command fxscale scales an image to fit a bounding box using Lanczos
// resampling, with optional brightness and contrast adjustment.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/fx"
	_ "github.com/gogpu/fx/gpu" // enable GPU acceleration when available
)

func main() {
	var (
		width      = flag.Int("width", 1280, "maximum output width")
		height     = flag.Int("height", 720, "maximum output height")
		output     = flag.String("output", "scaled.png", "output PNG file")
		brightness = flag.Float64("brightness", 0, "brightness adjustment, -1 to 1")
		contrast   = flag.Float64("contrast", 0, "contrast adjustment, -1 to 1")
		cpu        = flag.Bool("cpu", false, "force CPU processing")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: fxscale [flags] input-image")
	}

	if *verbose {
		fx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	input, err := fx.LoadImage(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to load %s: %v", flag.Arg(0), err)
	}

	effects := []fx.Effect{
		fx.ScaleToFit(*width, *height),
		fx.Brightness(*brightness),
		fx.Contrast(*contrast),
	}

	var opts []fx.Option
	if *cpu {
		opts = append(opts, fx.WithoutAccelerator())
	}

	pipeline, err := fx.NewPipeline(effects, opts...)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}
	defer func() {
		if err := pipeline.Release(); err != nil {
			log.Printf("Release: %v", err)
		}
	}()

	result, err := pipeline.Process(input)
	if err != nil {
		log.Fatalf("Failed to process: %v", err)
	}

	if err := result.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Saved %s (%s -> %s)\n", *output, input.Size(), result.Size())
}
