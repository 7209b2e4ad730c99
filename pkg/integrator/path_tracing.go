package integrator

import (
	"github.com/df07/go-smallpt/pkg/core"
	"github.com/df07/go-smallpt/pkg/material"
	"github.com/df07/go-smallpt/pkg/scene"
)

// Config controls path termination and refraction branching
type Config struct {
	RouletteDepth int // Bounces before Russian roulette starts
	MaxDepth      int // Hard cap on path length, even when roulette would continue
	SplitDepth    int // Up to this depth refraction traces both reflected and transmitted rays
}

// DefaultConfig returns the termination settings used for normal renders
func DefaultConfig() Config {
	return Config{
		RouletteDepth: 5,
		MaxDepth:      500,
		SplitDepth:    2,
	}
}

// PathTracer implements unidirectional path tracing with next event
// estimation on diffuse surfaces
type PathTracer struct {
	config Config
}

// NewPathTracer creates a new path tracer
func NewPathTracer(config Config) *PathTracer {
	return &PathTracer{config: config}
}

// RayColor computes the color for a camera ray
func (pt *PathTracer) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.Radiance(s, ray, 0, sampler, true)
}

// Radiance estimates the light arriving along ray after depth bounces.
// includeEmission is false when the previous bounce was diffuse: that
// bounce already counted direct light, so hitting a light again must not.
func (pt *PathTracer) Radiance(s *scene.Scene, ray core.Ray, depth int, sampler core.Sampler, includeEmission bool) core.Vec3 {
	hit, isHit := s.Intersect(ray)
	if !isHit {
		return core.Vec3{}
	}

	// Normal facing against the incoming ray
	oriented := hit.Normal
	if hit.Normal.Dot(ray.Direction) >= 0 {
		oriented = hit.Normal.Negate()
	}

	emission := core.Vec3{}
	if includeEmission {
		emission = hit.Emission
	}
	color := hit.Color

	depth++
	if depth > pt.config.RouletteDepth {
		survival, _ := color.MaxComponent()
		if sampler.Get1D() < survival && depth < pt.config.MaxDepth {
			color = color.Multiply(1.0 / survival)
		} else {
			return emission
		}
	}

	switch hit.Material {
	case material.Specular:
		reflected := core.NewRay(hit.Point, material.Reflect(ray.Direction, hit.Normal))
		return emission.Add(color.MultiplyVec(pt.Radiance(s, reflected, depth, sampler, true)))
	case material.Refractive:
		return emission.Add(color.MultiplyVec(pt.refractive(s, ray, hit.Point, hit.Normal, oriented, depth, sampler)))
	default:
		return emission.Add(color.MultiplyVec(pt.diffuse(s, hit.Point, oriented, depth, sampler)))
	}
}

// diffuse combines sampled direct light with one cosine-weighted indirect bounce
func (pt *PathTracer) diffuse(s *scene.Scene, point, oriented core.Vec3, depth int, sampler core.Sampler) core.Vec3 {
	direction := core.SampleCosineHemisphere(oriented, sampler.Get1D(), sampler.Get1D())
	direct := s.SampleLights(point, oriented, sampler)
	indirect := pt.Radiance(s, core.NewRay(point, direction), depth, sampler, false)
	return direct.Add(indirect)
}

// refractive handles a dielectric boundary. Shallow paths follow both the
// reflected and transmitted rays; deeper paths pick one, weighted by the
// probability of picking it.
func (pt *PathTracer) refractive(s *scene.Scene, ray core.Ray, point, normal, oriented core.Vec3, depth int, sampler core.Sampler) core.Vec3 {
	reflected := core.NewRay(point, material.Reflect(ray.Direction, normal))
	refr, ok := material.Refract(ray.Direction, normal, oriented)
	if !ok {
		// Total internal reflection
		return pt.Radiance(s, reflected, depth, sampler, true)
	}

	transmitted := core.NewRay(point, refr.Direction)
	reflectance := refr.Reflectance
	transmittance := 1.0 - reflectance

	if depth > pt.config.SplitDepth {
		p := 0.25 + 0.5*reflectance
		if sampler.Get1D() < p {
			return pt.Radiance(s, reflected, depth, sampler, true).Multiply(reflectance / p)
		}
		return pt.Radiance(s, transmitted, depth, sampler, true).Multiply(transmittance / (1.0 - p))
	}

	return pt.Radiance(s, reflected, depth, sampler, true).Multiply(reflectance).
		Add(pt.Radiance(s, transmitted, depth, sampler, true).Multiply(transmittance))
}
