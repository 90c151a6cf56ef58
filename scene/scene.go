package scene

import (
	"math"

	"github.com/achilleasa/photon-gi/types"
)

// Hits closer than this to the ray origin are ignored so that rays spawned
// from a surface do not re-intersect it.
const minHitDistance = 1e-3

// Scene is an Intersector backed by a node graph. Scenes must be created with
// New and the graph must not be modified while queries are running.
type Scene struct {
	Root *Node
}

// Create a scene rooted at root and compute its bounding volumes.
func New(root *Node) *Scene {
	sc := &Scene{Root: root}
	sc.Refit()
	return sc
}

// A stack of world-to-model matrices, one per level of the graph walk. Each
// query owns its stack so concurrent queries never share state.
type matrixStack []types.Mat4

func (s *matrixStack) push(inverse types.Mat4) {
	if len(*s) == 0 {
		*s = append(*s, inverse)
		return
	}
	*s = append(*s, inverse.Mul4((*s)[len(*s)-1]))
}

func (s *matrixStack) pop() {
	*s = (*s)[:len(*s)-1]
}

func (s matrixStack) top() types.Mat4 {
	return s[len(s)-1]
}

// Find the closest intersection along ray. The ray direction must be
// normalized so that the reported distance is in world units.
func (sc *Scene) Intersect(ray Ray) Intersection {
	if sc == nil || sc.Root == nil {
		return Intersection{}
	}

	best := Intersection{Distance: math.MaxFloat32}
	stack := make(matrixStack, 0, 8)
	sc.traverse(sc.Root, &stack, ray, &best)
	if !best.Hit {
		return Intersection{}
	}
	return best
}

func (sc *Scene) traverse(node *Node, stack *matrixStack, ray Ray, best *Intersection) {
	if !node.hitsBBox(ray, best.Distance) {
		return
	}

	stack.push(node.inverse)
	defer stack.pop()

	if node.Primitive != NoPrimitive {
		worldToModel := stack.top()
		o := worldToModel.MulPoint(ray.Origin)
		d := worldToModel.MulDir(ray.Dir)

		// Affine transforms preserve the ray parameter so t is also the
		// world-space distance.
		if t, n, ok := node.Primitive.intersect(o, d, minHitDistance); ok && t < best.Distance {
			*best = Intersection{
				Point:    ray.At(t),
				Normal:   worldToModel.Transpose().MulDir(n).Normalize(),
				Distance: t,
				Material: node.Material,
				Hit:      true,
			}
		}
	}

	for _, child := range node.Children {
		sc.traverse(child, stack, ray, best)
	}
}
