package geometry

import (
	"github.com/df07/go-smallpt/pkg/core"
	"github.com/df07/go-smallpt/pkg/material"
)

// Hit contains the shading information for a ray-primitive intersection.
// It is only valid for a single shading evaluation.
type Hit struct {
	Point    core.Vec3         // Point of intersection
	Normal   core.Vec3         // Unit outward surface normal
	Material material.Material // Material of the hit primitive
	Emission core.Vec3         // Emitted radiance of the hit primitive
	Color    core.Vec3         // Albedo of the hit primitive
	Index    int               // Scene index of the hit primitive
}

// Shape is a renderable primitive that can be intersected, shaded and,
// when emissive, sampled as a light source
type Shape interface {
	// Intersect returns the nearest distance along the ray beyond the
	// self-intersection epsilon, or false on a miss
	Intersect(ray core.Ray) (float64, bool)

	// GetHit builds the shading record for a hit at distance dist
	GetHit(ray core.Ray, dist float64) Hit

	// IsEmissive reports whether any emission channel is positive
	IsEmissive() bool

	// RandomEmission samples a direction from `from` toward the primitive and
	// returns it with the direct-lighting contribution for a Lambertian
	// receiver with the given normal, already divided by the sampling PDF
	RandomEmission(from, normal core.Vec3, sampler core.Sampler) (direction, contribution core.Vec3)
}
