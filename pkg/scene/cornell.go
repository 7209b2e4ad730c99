package scene

import (
	"github.com/df07/go-smallpt/pkg/core"
	"github.com/df07/go-smallpt/pkg/geometry"
	"github.com/df07/go-smallpt/pkg/material"
)

// Palette of the Cornell-sphere scene
var (
	Black = core.NewVec3(0, 0, 0)
	Red   = core.NewVec3(0.75, 0.25, 0.25)
	Blue  = core.NewVec3(0.25, 0.25, 0.75)
	Grey  = core.NewVec3(0.75, 0.75, 0.75)
	White = core.NewVec3(0.999, 0.999, 0.999)
)

// NewCornellScene creates the classic Cornell box built from spheres: five
// huge spheres approximate the walls, with a mirror ball, a glass ball and a
// large emissive sphere poking through the ceiling
func NewCornellScene() *Scene {
	s := New(geometry.DefaultCameraConfig())

	// Walls: left, right, back, front, floor, ceiling
	s.Add(geometry.NewSphere(material.Diffuse, 1e5, core.NewVec3(1e5+1, 40.8, 81.6), Black, Red))
	s.Add(geometry.NewSphere(material.Diffuse, 1e5, core.NewVec3(-1e5+99, 40.8, 81.6), Black, Blue))
	s.Add(geometry.NewSphere(material.Diffuse, 1e5, core.NewVec3(50, 40.8, 1e5), Black, Grey))
	s.Add(geometry.NewSphere(material.Diffuse, 1e5, core.NewVec3(50, 40.8, -1e5+170), Black, Black))
	s.Add(geometry.NewSphere(material.Diffuse, 1e5, core.NewVec3(50, 1e5, 81.6), Black, Grey))
	s.Add(geometry.NewSphere(material.Diffuse, 1e5, core.NewVec3(50, -1e5+81.6, 81.6), Black, Grey))

	s.Add(geometry.NewSphere(material.Specular, 16.5, core.NewVec3(27, 16.5, 47), Black, White))
	s.Add(geometry.NewSphere(material.Refractive, 16.5, core.NewVec3(73, 16.5, 78), Black, White))

	// Light
	s.Add(geometry.NewSphere(material.Diffuse, 600, core.NewVec3(50, 681.6-0.27, 81.6), core.NewVec3(12, 12, 12), Black))

	return s
}

// NewSimpleScene creates a small scene with a grey ball resting on a floor
// plane under a single spherical light, inside the Cornell camera's view
func NewSimpleScene() *Scene {
	s := New(geometry.DefaultCameraConfig())

	s.Add(geometry.NewPlane(material.Diffuse, core.NewVec3(50, 0, 81.6), core.NewVec3(0, 1, 0), Grey))
	s.Add(geometry.NewSphere(material.Diffuse, 16.5, core.NewVec3(50, 16.5, 81.6), Black, Grey))
	s.Add(geometry.NewSphere(material.Diffuse, 5, core.NewVec3(50, 70, 81.6), core.NewVec3(4, 4, 4), Black))

	return s
}
