package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-smallpt/pkg/core"
	"github.com/df07/go-smallpt/pkg/integrator"
	"github.com/df07/go-smallpt/pkg/loaders"
	"github.com/df07/go-smallpt/pkg/renderer"
	"github.com/df07/go-smallpt/pkg/scene"
)

// options holds the parsed command line
type options struct {
	output    string
	sceneName string
	partial   bool
	quiet     bool
	logFormat string
	config    renderer.Config
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	defaults := renderer.DefaultConfig()
	opts := options{config: defaults}

	fs := flag.NewFlagSet("smallpt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.output, "o", "", "Output file (default image.png, or image.part with -partial)")
	fs.StringVar(&opts.sceneName, "scene", "cornell", "Scene: "+strings.Join(scene.BuiltinNames(), ", ")+" or a .json file")
	fs.IntVar(&opts.config.Width, "width", defaults.Width, "Image width in pixels")
	fs.IntVar(&opts.config.Height, "height", defaults.Height, "Image height in pixels")
	samples := fs.Int("samples", defaults.SamplesPerPixel(), "Samples per pixel, spread over a 2x2 sub-pixel grid")
	fs.IntVar(&opts.config.NumWorkers, "num-threads", 0, "Number of worker threads (0 = logical CPUs)")
	fs.Uint64Var(&opts.config.Seed, "seed", defaults.Seed, "Random seed")
	fs.IntVar(&opts.config.SampleOffset, "sample-offset", 0, "First sample pass, for rendering disjoint partials")
	fs.BoolVar(&opts.partial, "partial", false, "Write raw radiance sums for merging instead of an image")
	fs.BoolVar(&opts.quiet, "quiet", false, "Only print errors")
	fs.StringVar(&opts.logFormat, "log-format", "plain", "Log output: plain, text or json")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	switch opts.logFormat {
	case "plain", "text", "json":
	default:
		return options{}, fmt.Errorf("unknown log format %q", opts.logFormat)
	}

	opts.config.SamplesPerSubpixel = max(1, *samples/4)
	if opts.output == "" {
		opts.output = "image.png"
		if opts.partial {
			opts.output = "image.part"
		}
	}

	if err := opts.config.Validate(); err != nil {
		return options{}, err
	}
	return opts, nil
}

// createScene returns a built-in scene by name or loads a JSON scene file
func createScene(name string) (*scene.Scene, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return loaders.LoadScene(name)
	}
	return scene.Builtin(name)
}

// newLogger returns the logger selected by -quiet and -log-format.
// Structured formats go through slog and carry no progress line.
func newLogger(opts options, stdout io.Writer) (core.Logger, renderer.ProgressFunc) {
	if opts.quiet {
		return renderer.NopLogger{}, nil
	}

	switch opts.logFormat {
	case "text":
		return renderer.NewSlogLogger(slog.New(slog.NewTextHandler(stdout, nil))), nil
	case "json":
		return renderer.NewSlogLogger(slog.New(slog.NewJSONHandler(stdout, nil))), nil
	}

	progress := func(percent float64) {
		fmt.Fprintf(stdout, "Rendering (%d spp) %.4f%%...\r", opts.config.SamplesPerPixel(), percent)
	}
	return renderer.NewWriterLogger(stdout), progress
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	logger, progress := newLogger(opts, stdout)
	logger.Printf("Host: %s\n", renderer.HostSummary())

	sc, err := createScene(opts.sceneName)
	if err != nil {
		return err
	}

	pt := integrator.NewPathTracer(integrator.DefaultConfig())
	buf, _, err := renderer.Render(ctx, sc, pt, opts.config, logger, progress)
	if err != nil {
		return err
	}

	if opts.partial {
		logger.Printf("\nWriting partial output to '%s'\n", opts.output)
		return loaders.SavePartial(opts.output, buf)
	}

	logger.Printf("\nWriting output to '%s'\n", opts.output)
	return loaders.SaveImage(opts.output, buf.ToImage())
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	startTime := time.Now()
	if err := run(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !opts.quiet {
		fmt.Printf("Done in %v\n", time.Since(startTime).Round(time.Millisecond))
	}
}
