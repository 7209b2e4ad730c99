package scene

import (
	"testing"

	"github.com/df07/go-smallpt/pkg/core"
	"github.com/df07/go-smallpt/pkg/geometry"
	"github.com/df07/go-smallpt/pkg/material"
)

func diffuseSphere(radius float64, center core.Vec3) *geometry.Sphere {
	return geometry.NewSphere(material.Diffuse, radius, center, Black, Grey)
}

func lightSphere(radius float64, center core.Vec3) *geometry.Sphere {
	return geometry.NewSphere(material.Diffuse, radius, center, core.NewVec3(10, 10, 10), Black)
}

func TestScene_AddAssignsIndicesAndLights(t *testing.T) {
	s := New(geometry.DefaultCameraConfig())

	if i := s.Add(diffuseSphere(1, core.Vec3{})); i != 0 {
		t.Errorf("Expected index 0, got %d", i)
	}
	if i := s.Add(lightSphere(1, core.NewVec3(0, 5, 0))); i != 1 {
		t.Errorf("Expected index 1, got %d", i)
	}
	if i := s.Add(diffuseSphere(1, core.NewVec3(5, 0, 0))); i != 2 {
		t.Errorf("Expected index 2, got %d", i)
	}

	if s.Len() != 3 {
		t.Errorf("Expected 3 shapes, got %d", s.Len())
	}
	lights := s.Lights()
	if len(lights) != 1 || lights[0] != 1 {
		t.Errorf("Expected lights [1], got %v", lights)
	}
}

func TestScene_IntersectNearest(t *testing.T) {
	s := New(geometry.DefaultCameraConfig())
	s.Add(diffuseSphere(1, core.NewVec3(0, 0, -10)))
	near := s.Add(diffuseSphere(1, core.NewVec3(0, 0, -5)))
	s.Add(diffuseSphere(1, core.NewVec3(0, 0, -20)))

	hit, isHit := s.Intersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Index != near {
		t.Errorf("Expected nearest index %d, got %d", near, hit.Index)
	}
	if hit.Point.Subtract(core.NewVec3(0, 0, -4)).Length() > 1e-9 {
		t.Errorf("Expected hit at (0,0,-4), got %v", hit.Point)
	}
}

func TestScene_IntersectMiss(t *testing.T) {
	s := New(geometry.DefaultCameraConfig())
	if _, isHit := s.Intersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))); isHit {
		t.Error("Empty scene should never be hit")
	}

	s.Add(diffuseSphere(1, core.NewVec3(0, 0, -5)))
	if _, isHit := s.Intersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))); isHit {
		t.Error("Expected miss")
	}
}

func TestScene_IntersectTieKeepsEarlierPrimitive(t *testing.T) {
	s := New(geometry.DefaultCameraConfig())
	first := s.Add(diffuseSphere(1, core.NewVec3(0, 0, -5)))
	s.Add(diffuseSphere(1, core.NewVec3(0, 0, -5)))

	hit, isHit := s.Intersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)))
	if !isHit || hit.Index != first {
		t.Errorf("Expected tie to resolve to index %d, got %d (hit=%t)", first, hit.Index, isHit)
	}
}

// occlusionScene has one light below an opaque sphere and one unobstructed
// light above, both seen from the origin
func occlusionScene() (s *Scene, below, above int) {
	s = New(geometry.DefaultCameraConfig())
	below = s.Add(lightSphere(1, core.NewVec3(0, -10, 0)))
	s.Add(diffuseSphere(2, core.NewVec3(0, -5, 0)))
	above = s.Add(lightSphere(1, core.NewVec3(0, 10, 0)))
	return s, below, above
}

func TestScene_ShadowCast(t *testing.T) {
	s, below, above := occlusionScene()
	origin := core.Vec3{}

	if s.ShadowCast(core.NewRay(origin, core.NewVec3(0, -1, 0)), below) {
		t.Error("Light below the occluder should not be visible")
	}
	if !s.ShadowCast(core.NewRay(origin, core.NewVec3(0, 1, 0)), above) {
		t.Error("Unobstructed light should be visible")
	}
	if s.ShadowCast(core.NewRay(origin, core.NewVec3(0, 1, 0)), below) {
		t.Error("Hitting a different light must not count as visible")
	}
	if s.ShadowCast(core.NewRay(origin, core.NewVec3(1, 0, 0)), above) {
		t.Error("A ray that hits nothing must not count as visible")
	}
}

func TestScene_SampleLights_Occlusion(t *testing.T) {
	s, _, _ := occlusionScene()
	sampler := core.NewRandomSampler(11, 13)
	origin := core.Vec3{}

	for i := 0; i < 1000; i++ {
		// Facing down: only the occluded light is in front of the surface
		if got := s.SampleLights(origin, core.NewVec3(0, -1, 0), sampler); !got.IsZero() {
			t.Fatalf("Occluded light contributed %v", got)
		}
	}

	// Facing up: the unobstructed light contributes
	for i := 0; i < 100; i++ {
		got := s.SampleLights(origin, core.NewVec3(0, 1, 0), sampler)
		if got.X <= 0 || got.Y <= 0 || got.Z <= 0 {
			t.Fatalf("Expected positive contribution from the visible light, got %v", got)
		}
	}
}

func TestScene_SampleLights_NoLights(t *testing.T) {
	s := New(geometry.DefaultCameraConfig())
	s.Add(diffuseSphere(1, core.NewVec3(0, -5, 0)))

	got := s.SampleLights(core.Vec3{}, core.NewVec3(0, 1, 0), core.NewRandomSampler(1, 2))
	if !got.IsZero() {
		t.Errorf("Expected no direct light without emitters, got %v", got)
	}
}

func TestBuiltin(t *testing.T) {
	tests := []struct {
		name        string
		expectError bool
		shapes      int
		lights      int
	}{
		{"cornell", false, 9, 1},
		{"simple", false, 3, 1},
		{"nonexistent", true, 0, 0},
		{"", true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Builtin(tt.name)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene %q", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.Len() != tt.shapes || len(s.Lights()) != tt.lights {
				t.Errorf("Expected %d shapes and %d lights, got %d and %d", tt.shapes, tt.lights, s.Len(), len(s.Lights()))
			}
		})
	}

	a, _ := Builtin("cornell")
	b, _ := Builtin("cornell")
	if a == b {
		t.Error("Builtin should return a fresh scene each time")
	}
}
