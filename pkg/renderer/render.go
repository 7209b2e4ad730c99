package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-smallpt/pkg/core"
	"github.com/df07/go-smallpt/pkg/film"
	"github.com/df07/go-smallpt/pkg/integrator"
	"github.com/df07/go-smallpt/pkg/scene"
)

// ProgressFunc receives the percentage of rows completed so far.
// It is called from the collecting goroutine only.
type ProgressFunc func(percent float64)

// Render renders every row of the image in parallel and returns the
// accumulated buffer. Each pixel holds its estimate times
// config.SamplesPerPixel(), so buffers from split renders can be merged.
//
// Rows are rendered independently; the output does not depend on the number
// of workers. After ctx is cancelled no new rows are started. When any row
// fails, the remaining rows are skipped, in-flight rows are drained and the
// first error is returned without a buffer.
func Render(ctx context.Context, sc *scene.Scene, integratorInst integrator.Integrator, config Config, logger core.Logger, progress ProgressFunc) (*film.Buffer, RenderStats, error) {
	if err := config.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid render config: %w", err)
	}
	if logger == nil {
		logger = NopLogger{}
	}

	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}
	numWorkers = min(numWorkers, config.Height)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startTime := time.Now()
	pool := NewWorkerPool(NewRowRenderer(sc, integratorInst, config), config.Height, numWorkers)
	logger.Printf("Rendering %dx%d at %d samples/pixel using %d workers...\n",
		config.Width, config.Height, config.SamplesPerPixel(), pool.GetNumWorkers())

	pool.Start(ctx)
	for y := 0; y < config.Height; y++ {
		pool.SubmitTask(RowTask{Row: y})
	}

	buf := film.NewBuffer(config.Width, config.Height)
	buf.Samples = config.SamplesPerPixel()
	samples := float64(buf.Samples)

	var firstErr error
	completed := 0
	for i := 0; i < config.Height; i++ {
		result, ok := pool.GetResult()
		if !ok {
			firstErr = errors.New("worker pool closed unexpectedly")
			break
		}
		if result.Err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("row %d: %w", result.Row, result.Err)
				cancel()
			}
			continue
		}

		row := buf.Row(result.Row)
		for x, pixel := range result.Pixels {
			row[x] = pixel.Multiply(samples)
		}

		completed++
		if progress != nil {
			progress(100 * float64(completed) / float64(config.Height))
		}
	}
	pool.Stop()

	if firstErr != nil {
		logger.Printf("Render failed after %d of %d rows: %v\n", completed, config.Height, firstErr)
		return nil, RenderStats{}, firstErr
	}

	stats := newRenderStats(config, pool.GetNumWorkers(), time.Since(startTime))
	logger.Printf("Render completed: %s\n", stats.Summary())
	return buf, stats, nil
}
