package scene

import "github.com/achilleasa/photon-gi/types"

// Node is an element of the scene graph. A node carries a local transform
// relative to its parent, an optional primitive with its material and any
// number of children.
type Node struct {
	Name      string
	Primitive Primitive
	Material  *Material
	Children  []*Node

	transform types.Mat4
	inverse   types.Mat4

	// World-space bounds maintained by Scene.Refit.
	bbox [2]types.Vec3
}

// Create a grouping node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		transform: types.Ident4(),
		inverse:   types.Ident4(),
		bbox:      emptyBBox(),
	}
}

// Create a node that renders prim with the given material.
func NewGeometryNode(name string, prim Primitive, mat *Material) *Node {
	n := NewNode(name)
	n.Primitive = prim
	n.Material = mat
	return n
}

// Append children to the node. Returns the node to allow chaining.
func (n *Node) AddChild(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Post-multiply the node transform with a translation.
func (n *Node) Translate(v types.Vec3) *Node {
	return n.apply(types.Translate4(v))
}

// Post-multiply the node transform with a rotation of angle radians around axis.
func (n *Node) Rotate(axis types.Vec3, angle float32) *Node {
	return n.apply(types.QuatFromAxisAngle(axis, angle).Mat4())
}

// Post-multiply the node transform with a scale.
func (n *Node) Scale(v types.Vec3) *Node {
	return n.apply(types.Scale4(v))
}

// The local model-to-parent transform.
func (n *Node) Transform() types.Mat4 {
	return n.transform
}

func (n *Node) apply(m types.Mat4) *Node {
	n.transform = n.transform.Mul4(m)
	n.inverse = n.transform.Inv()
	return n
}
