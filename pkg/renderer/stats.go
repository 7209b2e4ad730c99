package renderer

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	SamplesPerPixel int           // Radiance samples per pixel (4 per sub-pixel pass)
	TotalSamples    int64         // Total number of camera rays traced
	Workers         int           // Number of workers used
	Duration        time.Duration // Wall-clock render time
}

func newRenderStats(config Config, workers int, duration time.Duration) RenderStats {
	pixels := config.Width * config.Height
	return RenderStats{
		TotalPixels:     pixels,
		SamplesPerPixel: config.SamplesPerPixel(),
		TotalSamples:    int64(pixels) * int64(config.SamplesPerPixel()),
		Workers:         workers,
		Duration:        duration,
	}
}

// SamplesPerSecond returns the camera ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// Summary formats the statistics for a log line, grouping digits
func (s RenderStats) Summary() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d pixels, %d samples in %v (%.0f samples/s)",
		s.TotalPixels, s.TotalSamples, s.Duration.Round(time.Millisecond), s.SamplesPerSecond())
}
