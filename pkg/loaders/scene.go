package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-smallpt/pkg/core"
	"github.com/df07/go-smallpt/pkg/geometry"
	"github.com/df07/go-smallpt/pkg/material"
	"github.com/df07/go-smallpt/pkg/scene"
)

// vec3JSON is a vector written as [x, y, z]
type vec3JSON [3]float64

func (v vec3JSON) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type cameraJSON struct {
	Position   *vec3JSON `json:"position"`
	Direction  *vec3JSON `json:"direction"`
	FOVScale   float64   `json:"fovScale"`
	NearOffset float64   `json:"nearOffset"`
}

type sphereJSON struct {
	Material material.Material `json:"material"`
	Radius   float64           `json:"radius"`
	Center   vec3JSON          `json:"center"`
	Emission vec3JSON          `json:"emission"`
	Color    vec3JSON          `json:"color"`
}

type planeJSON struct {
	Material material.Material `json:"material"`
	Point    vec3JSON          `json:"point"`
	Normal   vec3JSON          `json:"normal"`
	Color    vec3JSON          `json:"color"`
}

type sceneJSON struct {
	Camera  *cameraJSON  `json:"camera"`
	Spheres []sphereJSON `json:"spheres"`
	Planes  []planeJSON  `json:"planes"`
}

// LoadScene reads a JSON scene description from disk
func LoadScene(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sc, err := ReadScene(file)
	if err != nil {
		return nil, fmt.Errorf("error loading scene %s: %w", filename, err)
	}
	return sc, nil
}

// ReadScene decodes a JSON scene description. Fields missing from the
// camera fall back to the default camera.
func ReadScene(r io.Reader) (*scene.Scene, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var desc sceneJSON
	if err := decoder.Decode(&desc); err != nil {
		return nil, fmt.Errorf("invalid scene JSON: %w", err)
	}
	if len(desc.Spheres)+len(desc.Planes) == 0 {
		return nil, errors.New("scene has no primitives")
	}

	sc := scene.New(desc.Camera.config())
	for i, s := range desc.Spheres {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		sc.Add(geometry.NewSphere(s.Material, s.Radius, s.Center.vec(), s.Emission.vec(), s.Color.vec()))
	}
	for i, p := range desc.Planes {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		sc.Add(geometry.NewPlane(p.Material, p.Point.vec(), p.Normal.vec(), p.Color.vec()))
	}
	return sc, nil
}

func (c *cameraJSON) config() geometry.CameraConfig {
	config := geometry.DefaultCameraConfig()
	if c == nil {
		return config
	}
	if c.Position != nil {
		config.Position = c.Position.vec()
	}
	if c.Direction != nil {
		config.Direction = c.Direction.vec()
	}
	if c.FOVScale > 0 {
		config.FOVScale = c.FOVScale
	}
	if c.NearOffset > 0 {
		config.NearOffset = c.NearOffset
	}
	return config
}

func validateColor(color vec3JSON) error {
	for i, c := range color {
		if c < 0 || c > 1 {
			return fmt.Errorf("color channel %d must be in [0, 1], got %g", i, c)
		}
	}
	return nil
}

func (p planeJSON) validate() error {
	if p.Normal.vec().IsZero() {
		return errors.New("normal must not be zero")
	}
	return validateColor(p.Color)
}

func (s sphereJSON) validate() error {
	if s.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %g", s.Radius)
	}
	if err := validateColor(s.Color); err != nil {
		return err
	}
	for i, e := range s.Emission {
		if e < 0 {
			return fmt.Errorf("emission channel %d must not be negative, got %g", i, e)
		}
	}
	return nil
}
