package photon

import (
	"testing"

	"github.com/achilleasa/photon-gi/types"
	"github.com/chewxy/math32"
)

func TestDirectionCompression(t *testing.T) {
	dirs := []types.Vec3{
		{0, 0, 1},
		{0, 0, -1},
		{1, 0, 0},
		{-1, 0, 0},
		{0, -1, 0},
		types.XYZ(1, -2, 0.5).Normalize(),
		types.XYZ(-0.3, -0.3, -0.9).Normalize(),
	}

	for index, dir := range dirs {
		p := newPhoton(types.RGB(1, 1, 1), types.Vec3{}, dir)
		if p.Theta < 0 || p.Theta > math32.Pi {
			t.Fatalf("[spec %d] expected theta in [0, π]; got %f", index, p.Theta)
		}
		if p.Phi < 0 || p.Phi >= math32.Pi {
			t.Fatalf("[spec %d] expected phi in [0, π); got %f", index, p.Phi)
		}

		got := p.Dir()
		if got.Sub(dir).Len() > 1e-5 {
			t.Fatalf("[spec %d] expected reconstructed direction %v; got %v", index, dir, got)
		}
	}
}

func TestStoreGrowsAndTracksBBox(t *testing.T) {
	s := NewStore(2)
	positions := []types.Vec3{
		{1, 2, 3},
		{-4, 0, 1},
		{2, 8, -6},
		{0, 0, 0},
		{3, -1, 2},
	}
	for _, pos := range positions {
		s.Store(types.RGB(1, 1, 1), pos, types.XYZ(0, -1, 0))
	}

	if s.Len() != len(positions) {
		t.Fatalf("expected %d photons; got %d", len(positions), s.Len())
	}
	if s.Cap() < s.Len() {
		t.Fatalf("expected capacity >= %d; got %d", s.Len(), s.Cap())
	}

	bbox := s.BBox()
	expMin := types.Vec3{-4, -1, -6}
	expMax := types.Vec3{3, 8, 3}
	if bbox[0] != expMin || bbox[1] != expMax {
		t.Fatalf("expected bbox [%v, %v]; got [%v, %v]", expMin, expMax, bbox[0], bbox[1])
	}

	for i := 1; i <= s.Len(); i++ {
		if got := s.Photon(i).Pos; got != positions[i-1] {
			t.Fatalf("expected photon %d at %v; got %v", i, positions[i-1], got)
		}
	}
}

func TestStoreCeilingDropsPhotons(t *testing.T) {
	s := NewStore(1)
	s.SetMaxPhotons(3)
	for i := 0; i < 10; i++ {
		s.Store(types.RGB(1, 1, 1), types.XYZ(float32(i), 0, 0), types.XYZ(0, 0, -1))
	}

	if s.Len() != 3 {
		t.Fatalf("expected 3 stored photons; got %d", s.Len())
	}
	if s.Dropped() != 7 {
		t.Fatalf("expected 7 dropped photons; got %d", s.Dropped())
	}
	if bbox := s.BBox(); bbox[1][0] != 2 {
		t.Fatalf("expected dropped photons to leave the bbox untouched; got max x %f", bbox[1][0])
	}
}

func TestRescalePowerIsIncremental(t *testing.T) {
	s := NewStore(4)

	// First batch
	s.Store(types.RGB(4, 4, 4), types.Vec3{}, types.XYZ(0, 0, -1))
	s.Store(types.RGB(4, 4, 4), types.Vec3{}, types.XYZ(0, 0, -1))
	s.RescalePower(0.5)

	// Second batch
	s.Store(types.RGB(4, 4, 4), types.Vec3{}, types.XYZ(0, 0, -1))
	s.RescalePower(0.25)

	expPower := []float32{2, 2, 1}
	for i, exp := range expPower {
		if got := s.Photon(i + 1).Power[0]; got != exp {
			t.Fatalf("expected photon %d power %f; got %f", i+1, exp, got)
		}
	}

	// Nothing new was stored; this should be a no-op
	s.RescalePower(0)
	if got := s.Photon(3).Power[0]; got != 1 {
		t.Fatalf("expected rescale without new photons to be a no-op; got power %f", got)
	}
}

func TestMergeStores(t *testing.T) {
	a := NewStore(2)
	b := NewStore(2)
	a.Store(types.RGB(1, 0, 0), types.XYZ(1, 1, 1), types.XYZ(0, 1, 0))
	b.Store(types.RGB(0, 1, 0), types.XYZ(-1, -1, -1), types.XYZ(1, 0, 0))
	b.Store(types.RGB(0, 0, 1), types.XYZ(5, 0, 0), types.XYZ(0, 0, 1))

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("expected 3 photons after merge; got %d", a.Len())
	}
	if got := a.Photon(3); got != b.Photon(2) {
		t.Fatalf("expected merged photon to be copied verbatim; got %+v", got)
	}
	bbox := a.BBox()
	if bbox[0] != (types.Vec3{-1, -1, -1}) || bbox[1] != (types.Vec3{5, 1, 1}) {
		t.Fatalf("unexpected bbox after merge: %v", bbox)
	}
}
