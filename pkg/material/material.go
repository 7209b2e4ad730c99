package material

import (
	"fmt"
	"strings"
)

// Material is the closed set of surface behaviours a primitive can have
type Material int

const (
	// Diffuse is an ideal Lambertian reflector, lit by explicit light sampling
	Diffuse Material = iota
	// Specular is a perfect mirror
	Specular
	// Refractive is a smooth dielectric (glass) with a fixed index of refraction
	Refractive
)

// String returns the lower-case material name used in scene files
func (m Material) String() string {
	switch m {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	case Refractive:
		return "refractive"
	default:
		return fmt.Sprintf("material(%d)", int(m))
	}
}

// Parse converts a material name into a Material
func Parse(name string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "diffuse", "diff":
		return Diffuse, nil
	case "specular", "spec", "mirror":
		return Specular, nil
	case "refractive", "refr", "glass":
		return Refractive, nil
	default:
		return 0, fmt.Errorf("unknown material %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler
func (m Material) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Material) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
