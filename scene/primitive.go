package scene

import (
	"github.com/achilleasa/photon-gi/types"
	"github.com/chewxy/math32"
)

// Primitive identifies a model-space shape. Nodes place primitives in the
// world through their transform.
type Primitive uint8

const (
	// No geometry; the node only groups its children.
	NoPrimitive Primitive = iota

	// Sphere of radius 1 centered at the origin.
	UnitSphere

	// Square in the z = 0 plane spanning [-1, 1] on x and y. Squares are
	// two-sided; the reported normal always faces the incoming ray.
	UnitSquare
)

func (p Primitive) String() string {
	switch p {
	case UnitSphere:
		return "sphere"
	case UnitSquare:
		return "square"
	}
	return "none"
}

// Intersect a model-space ray (origin o, direction d; d need not be unit
// length) with the primitive. Returns the ray parameter of the closest hit
// greater than tMin and the model-space normal at that point.
func (p Primitive) intersect(o, d types.Vec3, tMin float32) (float32, types.Vec3, bool) {
	switch p {
	case UnitSphere:
		a := d.Dot(d)
		b := o.Dot(d)
		c := o.Dot(o) - 1
		disc := b*b - a*c
		if disc < 0 || a == 0 {
			return 0, types.Vec3{}, false
		}
		sq := math32.Sqrt(disc)
		t := (-b - sq) / a
		if t <= tMin {
			t = (-b + sq) / a
			if t <= tMin {
				return 0, types.Vec3{}, false
			}
		}
		return t, o.Add(d.Mul(t)), true
	case UnitSquare:
		if math32.Abs(d[2]) < 1e-12 {
			return 0, types.Vec3{}, false
		}
		t := -o[2] / d[2]
		if t <= tMin {
			return 0, types.Vec3{}, false
		}
		hit := o.Add(d.Mul(t))
		if math32.Abs(hit[0]) > 1 || math32.Abs(hit[1]) > 1 {
			return 0, types.Vec3{}, false
		}
		if d[2] > 0 {
			return t, types.Vec3{0, 0, -1}, true
		}
		return t, types.Vec3{0, 0, 1}, true
	}
	return 0, types.Vec3{}, false
}
