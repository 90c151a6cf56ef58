package tracer

import (
	"math/rand"

	"github.com/achilleasa/photon-gi/types"
	"github.com/chewxy/math32"
)

// Sampler is a source of uniform random numbers in [0, 1). Samplers are not
// safe for concurrent use; each worker owns one.
type Sampler interface {
	Get1D() float32
	Get2D() types.Vec2
}

// RandomSampler wraps a seeded math/rand generator.
type RandomSampler struct {
	random *rand.Rand
}

// Create a sampler seeded with seed.
func NewRandomSampler(seed int64) *RandomSampler {
	return &RandomSampler{random: rand.New(rand.NewSource(seed))}
}

func (r *RandomSampler) Get1D() float32 {
	return r.random.Float32()
}

func (r *RandomSampler) Get2D() types.Vec2 {
	return types.XY(r.random.Float32(), r.random.Float32())
}

// Generate a cosine-weighted direction in the hemisphere around the unit
// vector normal.
func sampleCosineHemisphere(normal types.Vec3, u types.Vec2) types.Vec3 {
	sinPhi, cosPhi := math32.Sincos(2 * math32.Pi * u[0])
	cosTheta := math32.Sqrt(u[1])
	sinTheta := math32.Sqrt(1 - u[1])

	v := types.XYZ(cosPhi*sinTheta, sinPhi*sinTheta, cosTheta)
	return types.OrthonormalBasis(normal).Mul3x1(v).Normalize()
}

// Generate a uniformly distributed direction on the unit sphere.
func sampleUniformSphere(u types.Vec2) types.Vec3 {
	z := 1 - 2*u[0]
	r := math32.Sqrt(math32.Max(0, 1-z*z))
	sinPhi, cosPhi := math32.Sincos(2 * math32.Pi * u[1])
	return types.XYZ(r*cosPhi, r*sinPhi, z)
}
