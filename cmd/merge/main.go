// Command merge combines partial renders into one image.
//
//	merge [-o image.png] files...
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-smallpt/pkg/core"
	"github.com/df07/go-smallpt/pkg/film"
	"github.com/df07/go-smallpt/pkg/loaders"
	"github.com/df07/go-smallpt/pkg/renderer"
)

// mergeFiles loads every partial and sums them. The first unreadable file,
// or the first whose size differs from files[0], aborts the merge.
func mergeFiles(files []string, logger core.Logger) (*film.Buffer, error) {
	buffers := make([]*film.Buffer, 0, len(files))
	for _, name := range files {
		logger.Printf("Loading '%s'\n", name)
		buf, err := loaders.LoadPartial(name)
		if err != nil {
			return nil, err
		}
		logger.Printf("Found %d samples in %dx%d image\n", buf.Samples, buf.Width, buf.Height)
		if len(buffers) > 0 {
			first := buffers[0]
			if buf.Width != first.Width || buf.Height != first.Height {
				return nil, fmt.Errorf("%w: %s is %dx%d but %s is %dx%d", film.ErrDimensionMismatch,
					name, buf.Width, buf.Height, files[0], first.Width, first.Height)
			}
		}
		buffers = append(buffers, buf)
	}

	merged, err := film.Merge(buffers...)
	if err != nil {
		return nil, fmt.Errorf("cannot merge partials: %w", err)
	}
	return merged, nil
}

func run(args []string, logger core.Logger, stderr io.Writer) error {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("o", "image.png", "Output image file")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Combine several partial renders into one image")
		fmt.Fprintln(stderr, "Usage: merge [-o image.png] files...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no partial files given")
	}

	merged, err := mergeFiles(fs.Args(), logger)
	if err != nil {
		return err
	}

	logger.Printf("Merged %d samples\n", merged.Samples)
	logger.Printf("Writing output to '%s'\n", *output)
	return loaders.SaveImage(*output, merged.ToImage())
}

func main() {
	err := run(os.Args[1:], renderer.NewDefaultLogger(), os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
