package material

import (
	"math"

	"github.com/df07/go-smallpt/pkg/core"
)

// Indices of refraction for the refractive material
const (
	VacuumIOR = 1.0
	GlassIOR  = 1.5
)

// Reflect mirrors direction d about the normal n: d - 2(n·d)n
func Reflect(d, n core.Vec3) core.Vec3 {
	return d.Subtract(n.Multiply(2 * n.Dot(d)))
}

// Refraction is the transmitted half of a dielectric interaction
type Refraction struct {
	Direction   core.Vec3 // Unit transmitted direction
	Reflectance float64   // Schlick Fresnel reflectance R; transmittance is 1-R
}

// Refract computes the transmitted direction of the unit direction d at a glass
// boundary with geometric normal n and ray-facing normal oriented. It returns
// false on total internal reflection.
func Refract(d, n, oriented core.Vec3) (Refraction, bool) {
	into := n.Dot(oriented) > 0
	nnt := VacuumIOR / GlassIOR
	if !into {
		nnt = GlassIOR / VacuumIOR
	}

	ddn := d.Dot(oriented)
	cos2t := 1.0 - nnt*nnt*(1.0-ddn*ddn)
	if cos2t < 0 {
		return Refraction{}, false
	}

	tbd := ddn*nnt + math.Sqrt(cos2t)
	if !into {
		tbd = -tbd
	}
	tdir := d.Multiply(nnt).Subtract(n.Multiply(tbd)).Normalize()

	var c float64
	if into {
		c = 1.0 + ddn
	} else {
		c = 1.0 - tdir.Dot(n)
	}

	return Refraction{
		Direction:   tdir,
		Reflectance: Schlick(BaseReflectance(VacuumIOR, GlassIOR), c),
	}, true
}

// BaseReflectance returns R0 = ((nt-ni)/(nt+ni))² for normal incidence
func BaseReflectance(ni, nt float64) float64 {
	a := nt - ni
	b := nt + ni
	return (a * a) / (b * b)
}

// Schlick approximates Fresnel reflectance given R0 and c = 1 - cosθ
func Schlick(r0, c float64) float64 {
	c2 := c * c
	return r0 + (1.0-r0)*c2*c2*c
}
