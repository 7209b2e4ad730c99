package geometry

import (
	"math"

	"github.com/df07/go-smallpt/pkg/core"
	"github.com/df07/go-smallpt/pkg/material"
)

// Epsilon is the minimum hit distance, keeping spawned rays off their own surface
const Epsilon = 1e-4

// Sphere represents a sphere primitive
type Sphere struct {
	Material      material.Material
	Center        core.Vec3
	Radius        float64
	Emission      core.Vec3
	Color         core.Vec3
	radiusSquared float64
	emissive      bool
}

// NewSphere creates a new sphere
func NewSphere(mat material.Material, radius float64, center, emission, color core.Vec3) *Sphere {
	maxEmission, _ := emission.MaxComponent()
	return &Sphere{
		Material:      mat,
		Center:        center,
		Radius:        radius,
		Emission:      emission,
		Color:         color,
		radiusSquared: radius * radius,
		emissive:      maxEmission > 0,
	}
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) (float64, bool) {
	op := s.Center.Subtract(ray.Origin)
	b := op.Dot(ray.Direction)
	discriminant := b*b - op.Dot(op) + s.radiusSquared
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	if t := b - sqrtD; t > Epsilon {
		return t, true
	}
	if t := b + sqrtD; t > Epsilon {
		return t, true
	}
	return 0, false
}

// GetHit returns the shading record for a hit at distance dist
func (s *Sphere) GetHit(ray core.Ray, dist float64) Hit {
	point := ray.At(dist)
	return Hit{
		Point:    point,
		Normal:   point.Subtract(s.Center).Divide(s.Radius),
		Material: s.Material,
		Emission: s.Emission,
		Color:    s.Color,
	}
}

// IsEmissive reports whether the sphere is a light source
func (s *Sphere) IsEmissive() bool {
	return s.emissive
}

// RandomEmission samples the cone of directions subtended by the sphere as
// seen from `from`. Points inside the sphere or on its surface receive nothing.
func (s *Sphere) RandomEmission(from, normal core.Vec3, sampler core.Sampler) (core.Vec3, core.Vec3) {
	toCenter := s.Center.Subtract(from)
	distSquared := toCenter.LengthSquared()
	// d² - r² ≈ 2r(d - r), so this rejects points closer than Epsilon to the surface
	if distSquared-s.radiusSquared <= 2*Epsilon*s.Radius {
		return toCenter, core.Vec3{}
	}

	w := toCenter.Normalize()
	cosThetaMax := math.Sqrt(1.0 - s.radiusSquared/distSquared)
	direction := core.SampleCone(w, cosThetaMax, sampler.Get1D(), sampler.Get1D())

	cosine := direction.Dot(normal)
	if cosine <= 0 {
		return direction, core.Vec3{}
	}

	// Uniform cone PDF is 1/omega; the Lambertian BRDF contributes 1/π
	omega := 2.0 * math.Pi * (1.0 - cosThetaMax)
	return direction, s.Emission.Multiply(cosine * omega / math.Pi)
}
