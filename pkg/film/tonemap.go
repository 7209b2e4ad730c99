package film

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-smallpt/pkg/core"
)

// Gamma used to encode linear radiance for display
const Gamma = 2.2

// ToByte gamma-encodes a linear value into [0, 255].
// NaN and non-positive values map to 0.
func ToByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	encoded := math.Floor(math.Pow(v, 1.0/Gamma)*255.0 + 0.5)
	if encoded > 255 {
		return 255
	}
	return uint8(encoded)
}

// ToColor gamma-encodes a linear RGB value
func ToColor(v core.Vec3) color.RGBA {
	return color.RGBA{
		R: ToByte(v.X),
		G: ToByte(v.Y),
		B: ToByte(v.Z),
		A: 255,
	}
}

// ToImage tone-maps the mean radiance of every pixel into an 8-bit image
func (b *Buffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			img.SetRGBA(x, y, ToColor(b.Pixel(x, y)))
		}
	}
	return img
}
