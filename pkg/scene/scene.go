package scene

import (
	"math"

	"github.com/df07/go-smallpt/pkg/core"
	"github.com/df07/go-smallpt/pkg/geometry"
)

// Scene owns an ordered arena of primitives. A primitive's index in the arena
// is its identity for shadow tests. A scene must not be modified once
// rendering starts; after that it is safe to share between goroutines.
type Scene struct {
	Camera geometry.CameraConfig
	shapes []geometry.Shape
	lights []int // indices of emissive shapes
}

// New creates an empty scene viewed through the given camera
func New(camera geometry.CameraConfig) *Scene {
	return &Scene{Camera: camera}
}

// Add appends a primitive and returns its index
func (s *Scene) Add(shape geometry.Shape) int {
	index := len(s.shapes)
	s.shapes = append(s.shapes, shape)
	if shape.IsEmissive() {
		s.lights = append(s.lights, index)
	}
	return index
}

// Len returns the number of primitives
func (s *Scene) Len() int {
	return len(s.shapes)
}

// Shape returns the primitive at index i
func (s *Scene) Shape(i int) geometry.Shape {
	return s.shapes[i]
}

// Lights returns the indices of all emissive primitives
func (s *Scene) Lights() []int {
	return s.lights
}

// nearest returns the index and distance of the closest primitive hit by the
// ray, or -1. Equal distances keep the earlier primitive.
func (s *Scene) nearest(ray core.Ray) (int, float64) {
	hitIndex := -1
	hitDist := math.Inf(1)
	for i, shape := range s.shapes {
		if dist, isHit := shape.Intersect(ray); isHit && dist < hitDist {
			hitDist = dist
			hitIndex = i
		}
	}
	return hitIndex, hitDist
}

// Intersect returns the hit record of the nearest primitive along the ray
func (s *Scene) Intersect(ray core.Ray) (geometry.Hit, bool) {
	index, dist := s.nearest(ray)
	if index < 0 {
		return geometry.Hit{}, false
	}
	hit := s.shapes[index].GetHit(ray, dist)
	hit.Index = index
	return hit, true
}

// ShadowCast reports whether the nearest primitive along the ray is the
// light at index light, i.e. whether that light is visible from the ray origin
func (s *Scene) ShadowCast(ray core.Ray, light int) bool {
	index, _ := s.nearest(ray)
	return index >= 0 && index == light
}

// SampleLights estimates direct lighting at a Lambertian point by drawing one
// direction toward every emissive primitive and keeping the unoccluded ones
func (s *Scene) SampleLights(from, normal core.Vec3, sampler core.Sampler) core.Vec3 {
	emission := core.Vec3{}
	for _, light := range s.lights {
		direction, contribution := s.shapes[light].RandomEmission(from, normal, sampler)
		if contribution.IsZero() {
			continue
		}
		if s.ShadowCast(core.NewRay(from, direction), light) {
			emission = emission.Add(contribution)
		}
	}
	return emission
}
