package scene

import (
	"math"

	"github.com/achilleasa/photon-gi/types"
)

// Bounding boxes are padded by this amount so that flat primitives still
// enclose a volume.
const bboxPadding = 1e-3

// Model space bounds of each primitive.
var primitiveBounds = map[Primitive][2]types.Vec3{
	UnitSphere: {types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1)},
	UnitSquare: {types.XYZ(-1, -1, 0), types.XYZ(1, 1, 0)},
}

func emptyBBox() [2]types.Vec3 {
	return [2]types.Vec3{
		{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Recalculate the world-space bounding boxes of every node. Each node box
// encloses its own primitive and all of its children, forming a bounding
// volume hierarchy that Intersect uses to skip subtrees. Must be called after
// the graph is modified.
func (sc *Scene) Refit() {
	if sc.Root == nil {
		return
	}
	stack := make(matrixStack, 0, 8)
	refit(sc.Root, &stack)
}

// The stack holds model-to-world matrices here.
func refit(node *Node, stack *matrixStack) [2]types.Vec3 {
	if len(*stack) == 0 {
		*stack = append(*stack, node.transform)
	} else {
		*stack = append(*stack, stack.top().Mul4(node.transform))
	}
	defer stack.pop()

	bbox := emptyBBox()
	if bounds, ok := primitiveBounds[node.Primitive]; ok {
		modelToWorld := stack.top()
		for corner := 0; corner < 8; corner++ {
			p := types.XYZ(
				bounds[corner&1][0],
				bounds[(corner>>1)&1][1],
				bounds[(corner>>2)&1][2],
			)
			p = modelToWorld.MulPoint(p)
			bbox[0] = types.MinVec3(bbox[0], p)
			bbox[1] = types.MaxVec3(bbox[1], p)
		}
		pad := types.XYZ(bboxPadding, bboxPadding, bboxPadding)
		bbox[0] = bbox[0].Sub(pad)
		bbox[1] = bbox[1].Add(pad)
	}

	for _, child := range node.Children {
		childBBox := refit(child, stack)
		bbox[0] = types.MinVec3(bbox[0], childBBox[0])
		bbox[1] = types.MaxVec3(bbox[1], childBBox[1])
	}

	node.bbox = bbox
	return bbox
}

// Slab test of ray against the node bounding box. Boxes entirely behind the
// ray origin or farther than maxDist are rejected.
func (n *Node) hitsBBox(ray Ray, maxDist float32) bool {
	tNear, tFar := float32(0), maxDist
	for axis := 0; axis < 3; axis++ {
		lo, hi := n.bbox[0][axis], n.bbox[1][axis]
		origin, dir := ray.Origin[axis], ray.Dir[axis]

		// Ray is parallel to this axis
		if dir > -1e-12 && dir < 1e-12 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		invDir := 1 / dir
		t0, t1 := (lo-origin)*invDir, (hi-origin)*invDir
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tNear {
			tNear = t0
		}
		if t1 < tFar {
			tFar = t1
		}
		if tNear > tFar {
			return false
		}
	}
	return true
}

// Get the world-space bounding box of the node and its children as computed
// by the last Refit.
func (n *Node) BBox() [2]types.Vec3 {
	return n.bbox
}
