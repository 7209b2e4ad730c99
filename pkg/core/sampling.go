package core

import (
	"math"
	"math/rand/v2"
)

// Sampler provides uniform random numbers for rendering algorithms
// Can be swapped out for deterministic testing
type Sampler interface {
	// Get1D returns a uniform float64 in [0, 1)
	Get1D() float64
}

// RandomSampler wraps a seeded PCG generator
type RandomSampler struct {
	random *rand.Rand
}

// Seed stream constants mixed into every row generator
const (
	rowStreamKey  = 0x15aac60d
	passStreamKey = 0xb017f00d
)

// NewRandomSampler creates a sampler from two seed words
func NewRandomSampler(seed1, seed2 uint64) *RandomSampler {
	return &RandomSampler{random: rand.New(rand.NewPCG(seed1, seed2))}
}

// NewRowSampler creates the generator for one sample pass of one image row.
// The stream depends only on (seed, row, pass), never on which worker runs it.
func NewRowSampler(seed uint64, row, pass int) *RandomSampler {
	r := uint64(row)
	seed1 := (1+r*r)<<32 ^ seed
	seed2 := uint64(pass)<<32 ^ rowStreamKey ^ passStreamKey<<16 ^ r
	return NewRandomSampler(seed1, seed2)
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// TentSample maps one uniform draw onto a triangular distribution over [-1, 1)
func TentSample(s Sampler) float64 {
	u := 2.0 * s.Get1D()
	if u < 1.0 {
		return math.Sqrt(u) - 1.0
	}
	return 1.0 - math.Sqrt(2.0-u)
}

// OrthonormalBasis builds u, v perpendicular to the unit vector w.
// The helper axis is Y unless w is nearly parallel to it.
func OrthonormalBasis(w Vec3) (u, v Vec3) {
	var helper Vec3
	if math.Abs(w.X) > 0.1 {
		helper = NewVec3(0, 1, 0)
	} else {
		helper = NewVec3(1, 0, 0)
	}
	u = helper.Cross(w).Normalize()
	v = w.Cross(u)
	return u, v
}

// SampleCosineHemisphere generates a cosine-weighted direction around the unit normal w.
// u1 selects the azimuth and u2 the radius on the projected disk.
func SampleCosineHemisphere(w Vec3, u1, u2 float64) Vec3 {
	phi := 2.0 * math.Pi * u1
	r := math.Sqrt(u2)
	u, v := OrthonormalBasis(w)
	return u.Multiply(math.Cos(phi) * r).
		Add(v.Multiply(math.Sin(phi) * r)).
		Add(w.Multiply(math.Sqrt(1.0 - u2))).
		Normalize()
}

// SampleCone samples a direction uniformly by solid angle within a cone around w
func SampleCone(w Vec3, cosThetaMax, u1, u2 float64) Vec3 {
	cosTheta := 1.0 - u1 + u1*cosThetaMax
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * u2
	u, v := OrthonormalBasis(w)
	return u.Multiply(math.Cos(phi) * sinTheta).
		Add(v.Multiply(math.Sin(phi) * sinTheta)).
		Add(w.Multiply(cosTheta)).
		Normalize()
}
