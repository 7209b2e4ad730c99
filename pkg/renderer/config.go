package renderer

import "fmt"

// DefaultSeed is the global seed used when none is given
const DefaultSeed = 0x193a6754

// Config contains the settings for a single render
type Config struct {
	Width              int    // Image width in pixels
	Height             int    // Image height in pixels
	SamplesPerSubpixel int    // Camera rays per sub-pixel of the 2x2 grid
	SampleOffset       int    // Index of the first sample pass, for splitting a render into partials
	NumWorkers         int    // Number of parallel workers (0 = host logical CPUs)
	Seed               uint64 // Global seed mixed into every row generator
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:              1024,
		Height:             768,
		SamplesPerSubpixel: 1,
		SampleOffset:       0,
		NumWorkers:         0, // Auto-detect CPU count
		Seed:               DefaultSeed,
	}
}

// SamplesPerPixel returns the number of radiance samples summed into each pixel
func (c Config) SamplesPerPixel() int {
	return 4 * c.SamplesPerSubpixel
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	case c.SamplesPerSubpixel <= 0:
		return fmt.Errorf("samples per sub-pixel must be positive, got %d", c.SamplesPerSubpixel)
	case c.SampleOffset < 0:
		return fmt.Errorf("sample offset must not be negative, got %d", c.SampleOffset)
	case c.NumWorkers < 0:
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	}
	return nil
}
