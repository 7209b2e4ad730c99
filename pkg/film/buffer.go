package film

import (
	"errors"
	"fmt"

	"github.com/df07/go-smallpt/pkg/core"
)

var (
	// ErrDimensionMismatch is returned when combining buffers of different sizes
	ErrDimensionMismatch = errors.New("buffer dimensions do not match")

	// ErrNoBuffers is returned when merging an empty list
	ErrNoBuffers = errors.New("no buffers to merge")
)

// Buffer accumulates radiance sums for a width x height image.
// Every pixel holds the sum of Samples radiance estimates; the displayed
// value is the sum divided by Samples. Row 0 is the top of the image.
type Buffer struct {
	Width   int
	Height  int
	Samples int // Number of samples summed into every pixel
	sums    []core.Vec3
}

// NewBuffer creates an all-black buffer with no samples
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		sums:   make([]core.Vec3, width*height),
	}
}

// SetRow stores the radiance sums for row y
func (b *Buffer) SetRow(y int, sums []core.Vec3) {
	copy(b.sums[y*b.Width:(y+1)*b.Width], sums)
}

// Row returns the radiance sums for row y. The slice aliases the buffer.
func (b *Buffer) Row(y int) []core.Vec3 {
	return b.sums[y*b.Width : (y+1)*b.Width]
}

// Sum returns the raw radiance sum at (x, y)
func (b *Buffer) Sum(x, y int) core.Vec3 {
	return b.sums[y*b.Width+x]
}

// SetSum stores the raw radiance sum at (x, y)
func (b *Buffer) SetSum(x, y int, v core.Vec3) {
	b.sums[y*b.Width+x] = v
}

// Pixel returns the mean radiance at (x, y), or black when nothing has been sampled
func (b *Buffer) Pixel(x, y int) core.Vec3 {
	if b.Samples == 0 {
		return core.Vec3{}
	}
	return b.sums[y*b.Width+x].Multiply(1.0 / float64(b.Samples))
}

// Add sums other into b pixel by pixel and adds its sample count
func (b *Buffer) Add(other *Buffer) error {
	if b.Width != other.Width || b.Height != other.Height {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, b.Width, b.Height, other.Width, other.Height)
	}
	for i, v := range other.sums {
		b.sums[i] = b.sums[i].Add(v)
	}
	b.Samples += other.Samples
	return nil
}

// Merge returns a new buffer holding the sum of all given buffers.
// Dimensions are checked before anything is summed.
func Merge(buffers ...*Buffer) (*Buffer, error) {
	if len(buffers) == 0 {
		return nil, ErrNoBuffers
	}

	first := buffers[0]
	for i, other := range buffers[1:] {
		if other.Width != first.Width || other.Height != first.Height {
			return nil, fmt.Errorf("%w: buffer %d is %dx%d, expected %dx%d",
				ErrDimensionMismatch, i+1, other.Width, other.Height, first.Width, first.Height)
		}
	}

	merged := NewBuffer(first.Width, first.Height)
	for _, buf := range buffers {
		if err := merged.Add(buf); err != nil {
			return nil, err
		}
	}
	return merged, nil
}
