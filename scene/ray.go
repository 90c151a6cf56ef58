package scene

import "github.com/achilleasa/photon-gi/types"

// A ray with a world-space origin and a unit direction.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
}

// Point along the ray at distance t.
func (r Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Intersection describes the closest surface hit along a ray. When Hit is
// false all other fields are zero.
type Intersection struct {
	Point  types.Vec3
	Normal types.Vec3

	// Distance from the ray origin to Point.
	Distance float32

	Material *Material
	Hit      bool
}

// Intersector is implemented by anything that can report the closest surface
// hit along a ray. Implementations must be safe for concurrent use.
type Intersector interface {
	Intersect(ray Ray) Intersection
}
