// Package photon implements the photon map: a growable store that collects
// photons while they are traced, a balancer that turns the store into a
// left-balanced kd-tree packed in a flat array, and a k-nearest-neighbour
// search that produces density based irradiance estimates.
package photon

import (
	"github.com/achilleasa/photon-gi/types"
	"github.com/chewxy/math32"
)

// A Photon records a packet of light power that arrived at a surface.
//
// The incoming direction is kept in spherical coordinates. Theta is in [0, π]
// and Phi holds half of the azimuth, folded into [0, π).
type Photon struct {
	Pos   types.Vec3
	Power types.Color

	Theta float32
	Phi   float32

	// The kd-tree splitting axis; assigned during balancing.
	Plane types.Axis
}

// Create a photon, compressing its incoming direction.
func newPhoton(power types.Color, pos, dir types.Vec3) Photon {
	z := dir[2]
	if z > 1 {
		z = 1
	} else if z < -1 {
		z = -1
	}

	phi := math32.Atan2(dir[1], dir[0]) / 2
	if phi < 0 {
		phi += math32.Pi
	}

	return Photon{
		Pos:   pos,
		Power: power,
		Theta: math32.Acos(z),
		Phi:   phi,
	}
}

// Reconstruct the photon's incoming direction.
func (p *Photon) Dir() types.Vec3 {
	sinTheta, cosTheta := math32.Sincos(p.Theta)
	sinPhi, cosPhi := math32.Sincos(p.Phi * 2)
	return types.Vec3{sinTheta * cosPhi, sinTheta * sinPhi, cosTheta}
}
