package tracer

import (
	"github.com/achilleasa/photon-gi/scene"
	"github.com/achilleasa/photon-gi/types"
)

// Light is a photon emitter.
type Light interface {
	// The power carried by each emitted photon before the maps are
	// normalized by the number of emitted photons.
	Power() types.Color

	// Generate an emission ray. Caustic emission may use a different
	// footprint than global emission.
	Emit(s Sampler, caustic bool) scene.Ray
}

// SquareLight is an area light that emits from a square patch with a
// cosine-weighted distribution around its normal.
type SquareLight struct {
	Center types.Vec3
	Normal types.Vec3

	// Half side length of the emitting patch for global and caustic photons.
	// A caustic size of zero turns the patch into a point for caustics.
	HalfSize        float32
	CausticHalfSize float32

	Color types.Color

	basis types.Mat3
}

// Create a square light.
func NewSquareLight(center, normal types.Vec3, halfSize, causticHalfSize float32, color types.Color) *SquareLight {
	normal = normal.Normalize()
	return &SquareLight{
		Center:          center,
		Normal:          normal,
		HalfSize:        halfSize,
		CausticHalfSize: causticHalfSize,
		Color:           color,
		basis:           types.OrthonormalBasis(normal),
	}
}

// Create the light that matches the ceiling panel of scene.NewCornellBox.
func NewCornellLight() *SquareLight {
	return NewSquareLight(
		types.XYZ(0, scene.CornellLightHeight, 0),
		types.XYZ(0, -1, 0),
		scene.CornellLightHalfSize,
		scene.CornellLightHalfSize+2,
		types.RGB(1, 1, 1),
	)
}

func (l *SquareLight) Power() types.Color {
	return l.Color
}

func (l *SquareLight) Emit(s Sampler, caustic bool) scene.Ray {
	halfSize := l.HalfSize
	if caustic {
		halfSize = l.CausticHalfSize
	}

	u := s.Get2D()
	offset := types.XYZ((2*u[0]-1)*halfSize, (2*u[1]-1)*halfSize, 0)
	return scene.Ray{
		Origin: l.Center.Add(l.basis.Mul3x1(offset)),
		Dir:    sampleCosineHemisphere(l.Normal, s.Get2D()),
	}
}

// PointLight emits uniformly in all directions.
type PointLight struct {
	Position types.Vec3
	Color    types.Color
}

// Create a point light.
func NewPointLight(pos types.Vec3, color types.Color) *PointLight {
	return &PointLight{Position: pos, Color: color}
}

func (l *PointLight) Power() types.Color {
	return l.Color
}

func (l *PointLight) Emit(s Sampler, _ bool) scene.Ray {
	return scene.Ray{
		Origin: l.Position,
		Dir:    sampleUniformSphere(s.Get2D()),
	}
}
