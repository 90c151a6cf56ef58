package scene

import (
	"github.com/achilleasa/photon-gi/types"
	"github.com/chewxy/math32"
)

const (
	// Half extent of the cornell box room.
	CornellHalfSize = 50

	// Half extent of the ceiling light panel.
	CornellLightHalfSize = 16

	// Height of the plane photons are emitted from; just below the panel.
	CornellLightHeight = 49.99
)

// Create a closed cornell box centered at the origin with a red left wall, a
// green right wall, a light panel on the ceiling, a mirror sphere and a glass
// sphere on the floor.
func NewCornellBox() *Scene {
	var (
		white = NewDiffuseMaterial(types.RGB(0.75, 0.75, 0.75))
		red   = NewDiffuseMaterial(types.RGB(0.75, 0.25, 0.25))
		green = NewDiffuseMaterial(types.RGB(0.25, 0.75, 0.25))
		light = NewLightMaterial(types.RGB(1, 1, 1))
		glass = NewGlassMaterial(types.RGB(0.95, 0.95, 0.95), 1.5)

		mirror = NewMirrorMaterial(types.RGB(0.95, 0.95, 0.95))

		xAxis   = types.XYZ(1, 0, 0)
		yAxis   = types.XYZ(0, 1, 0)
		quarter = math32.Pi / 2

		wallScale = types.XYZ(CornellHalfSize, CornellHalfSize, 1)
	)

	const h = CornellHalfSize
	room := NewNode("room").AddChild(
		NewGeometryNode("floor", UnitSquare, white).Translate(types.XYZ(0, -h, 0)).Rotate(xAxis, quarter).Scale(wallScale),
		NewGeometryNode("ceiling", UnitSquare, white).Translate(types.XYZ(0, h, 0)).Rotate(xAxis, quarter).Scale(wallScale),
		NewGeometryNode("back", UnitSquare, white).Translate(types.XYZ(0, 0, -h)).Scale(wallScale),
		NewGeometryNode("front", UnitSquare, white).Translate(types.XYZ(0, 0, h)).Scale(wallScale),
		NewGeometryNode("left", UnitSquare, red).Translate(types.XYZ(-h, 0, 0)).Rotate(yAxis, quarter).Scale(wallScale),
		NewGeometryNode("right", UnitSquare, green).Translate(types.XYZ(h, 0, 0)).Rotate(yAxis, quarter).Scale(wallScale),
		NewGeometryNode("light", UnitSquare, light).
			Translate(types.XYZ(0, 49.995, 0)).
			Rotate(xAxis, quarter).
			Scale(types.XYZ(CornellLightHalfSize, CornellLightHalfSize, 1)),
	)

	spheres := NewNode("spheres").Translate(types.XYZ(0, -h+15, 0)).AddChild(
		NewGeometryNode("mirror ball", UnitSphere, mirror).Translate(types.XYZ(-20, 0, -10)).Scale(types.XYZ(15, 15, 15)),
		NewGeometryNode("glass ball", UnitSphere, glass).Translate(types.XYZ(20, 0, 15)).Scale(types.XYZ(15, 15, 15)),
	)

	return New(NewNode("cornell box").AddChild(room, spheres))
}
