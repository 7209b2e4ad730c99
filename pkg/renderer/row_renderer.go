package renderer

import (
	"github.com/df07/go-smallpt/pkg/core"
	"github.com/df07/go-smallpt/pkg/geometry"
	"github.com/df07/go-smallpt/pkg/integrator"
	"github.com/df07/go-smallpt/pkg/scene"
)

// RowRenderer renders single image rows using an integrator
type RowRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	camera     *geometry.Camera
	config     Config
}

// NewRowRenderer creates a new row renderer with the given scene and integrator
func NewRowRenderer(sc *scene.Scene, integratorInst integrator.Integrator, config Config) *RowRenderer {
	return &RowRenderer{
		scene:      sc,
		integrator: integratorInst,
		camera:     geometry.NewCamera(sc.Camera, config.Width, config.Height),
		config:     config,
	}
}

// RenderRow returns the estimated color of every pixel in row y, where y = 0
// is the top of the image. Each pixel is split into 2x2 sub-pixels; every
// sub-pixel mean is clamped to [0, 1] before the four are averaged.
//
// Sample pass p draws from its own generator, so rendering passes [0, n) and
// [n, 2n) separately sees the same random numbers as rendering [0, 2n) at once.
func (rr *RowRenderer) RenderRow(y int) []core.Vec3 {
	spp := rr.config.SamplesPerSubpixel
	samplers := make([]*core.RandomSampler, spp)
	for i := range samplers {
		samplers[i] = core.NewRowSampler(rr.config.Seed, y, rr.config.SampleOffset+i)
	}

	row := make([]core.Vec3, rr.config.Width)
	for x := range row {
		pixel := core.Vec3{}
		for sx := 0; sx < 2; sx++ {
			for sy := 0; sy < 2; sy++ {
				sub := core.Vec3{}
				for _, sampler := range samplers {
					dx := core.TentSample(sampler)
					dy := core.TentSample(sampler)
					ray := rr.camera.GetRay(x, y, (float64(sx)+0.5+dx)/2, (float64(sy)+0.5+dy)/2)
					sub = sub.Add(rr.integrator.RayColor(ray, rr.scene, sampler).Multiply(1.0 / float64(spp)))
				}
				pixel = pixel.Add(sub.Clamp01().Multiply(0.25))
			}
		}
		row[x] = pixel
	}
	return row
}
