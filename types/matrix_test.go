package types

import (
	"testing"

	"github.com/chewxy/math32"
)

func approxVec3(a, b Vec3, eps float32) bool {
	return math32.Abs(a[0]-b[0]) < eps && math32.Abs(a[1]-b[1]) < eps && math32.Abs(a[2]-b[2]) < eps
}

func TestMat4Inverse(t *testing.T) {
	type spec struct {
		m Mat4
	}
	specs := []spec{
		{Ident4()},
		{Translate4(XYZ(1, -2, 3))},
		{Scale4(XYZ(2, 4, 0.5)).Mul4(Translate4(XYZ(10, 0, -5)))},
		{Translate4(XYZ(3, 3, 3)).Mul4(QuatFromAxisAngle(XYZ(0, 1, 0), 0.7).Mat4()).Mul4(Scale4(XYZ(2, 2, 2)))},
	}

	p := XYZ(0.25, -1.5, 7)
	for index, s := range specs {
		inv := s.m.Inv()
		got := inv.MulPoint(s.m.MulPoint(p))
		if !approxVec3(got, p, 1e-4) {
			t.Fatalf("[spec %d] expected inverse transform to yield %v; got %v", index, p, got)
		}
	}
}

func TestMat4SingularInverse(t *testing.T) {
	m := Scale4(XYZ(1, 0, 1))
	if inv := m.Inv(); inv != (Mat4{}) {
		t.Fatalf("expected singular matrix inverse to be zero; got %v", inv)
	}
}

func TestQuatRotationMatchesMatrix(t *testing.T) {
	q := QuatFromAxisAngle(XYZ(1, 1, 0), 1.1)
	v := XYZ(0.3, -0.2, 0.9)

	exp := q.Rotate(v)
	got := q.Mat4().MulDir(v)
	if !approxVec3(exp, got, 1e-5) {
		t.Fatalf("expected rotation matrix to yield %v; got %v", exp, got)
	}
}

func TestOrthonormalBasis(t *testing.T) {
	normals := []Vec3{
		XYZ(0, 0, 1),
		XYZ(0, -1, 0),
		XYZ(1, 1, 1).Normalize(),
		XYZ(-0.2, 0.1, -0.97).Normalize(),
	}

	for index, n := range normals {
		basis := OrthonormalBasis(n)

		u := basis.Mul3x1(XYZ(1, 0, 0))
		v := basis.Mul3x1(XYZ(0, 1, 0))
		w := basis.Mul3x1(XYZ(0, 0, 1))

		if !approxVec3(w, n, 1e-6) {
			t.Fatalf("[spec %d] expected basis z axis to equal the normal %v; got %v", index, n, w)
		}
		if d := math32.Abs(u.Dot(v)) + math32.Abs(u.Dot(w)) + math32.Abs(v.Dot(w)); d > 1e-5 {
			t.Fatalf("[spec %d] expected basis vectors to be orthogonal; dot sum %f", index, d)
		}
		if math32.Abs(u.Len()-1) > 1e-5 || math32.Abs(v.Len()-1) > 1e-5 {
			t.Fatalf("[spec %d] expected unit basis vectors; got |u|=%f |v|=%f", index, u.Len(), v.Len())
		}
	}
}
