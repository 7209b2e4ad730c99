package geometry

import (
	"math"

	"github.com/df07/go-smallpt/pkg/core"
	"github.com/df07/go-smallpt/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal.
// Planes never emit: an infinite emitter cannot be sampled as a cone.
type Plane struct {
	Material material.Material
	Point    core.Vec3 // A point on the plane
	Normal   core.Vec3 // Unit normal
	Color    core.Vec3
}

// NewPlane creates a new plane
func NewPlane(mat material.Material, point, normal, color core.Vec3) *Plane {
	return &Plane{
		Material: mat,
		Point:    point,
		Normal:   normal.Normalize(), // Ensure normal is normalized
		Color:    color,
	}
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray) (float64, bool) {
	// Calculate denominator: dot product of ray direction and plane normal
	denominator := ray.Direction.Dot(p.Normal)

	// If denominator is close to zero, ray is parallel to plane (no intersection)
	if math.Abs(denominator) < 1e-8 {
		return 0, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= Epsilon {
		return 0, false
	}
	return t, true
}

// GetHit returns the shading record for a hit at distance dist
func (p *Plane) GetHit(ray core.Ray, dist float64) Hit {
	return Hit{
		Point:    ray.At(dist),
		Normal:   p.Normal,
		Material: p.Material,
		Color:    p.Color,
	}
}

// IsEmissive always reports false
func (p *Plane) IsEmissive() bool {
	return false
}

// RandomEmission returns no light
func (p *Plane) RandomEmission(from, normal core.Vec3, sampler core.Sampler) (core.Vec3, core.Vec3) {
	return p.Normal, core.Vec3{}
}
