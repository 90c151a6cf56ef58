package photon

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/achilleasa/photon-gi/types"
	"github.com/chewxy/math32"
)

func TestIrradianceEstimateEmptyMap(t *testing.T) {
	m := Balance(NewStore(1))
	got := m.IrradianceEstimate(types.Vec3{}, types.XYZ(0, 0, 1), 1, 5)
	if !got.IsBlack() {
		t.Fatalf("expected zero irradiance; got %v", got)
	}

	var nilMap *BalancedMap
	if got = nilMap.IrradianceEstimate(types.Vec3{}, types.XYZ(0, 0, 1), 1, 5); !got.IsBlack() {
		t.Fatalf("expected zero irradiance for nil map; got %v", got)
	}
}

func TestIrradianceEstimateSinglePhoton(t *testing.T) {
	s := NewStore(1)
	s.Store(types.RGB(1, 1, 1), types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	m := Balance(s)

	np := m.LocateNearest(types.XYZ(0, 0, 0.1), types.XYZ(0, 0, 1), 1, 5)
	if np.Found() != 1 {
		t.Fatalf("expected to locate 1 photon; got %d", np.Found())
	}

	got := m.IrradianceEstimate(types.XYZ(0, 0, 0.1), types.XYZ(0, 0, 1), 1, 5)
	if !got.IsBlack() {
		t.Fatalf("expected zero irradiance when fewer than 2 photons are found; got %v", got)
	}
}

func TestIrradianceEstimateCoincidentPhotons(t *testing.T) {
	s := NewStore(4)
	for i := 0; i < 10; i++ {
		s.Store(types.RGB(1, 1, 1), types.XYZ(2, 2, 2), types.XYZ(0, 0, -1))
	}
	m := Balance(s)

	var maxDist float32 = 0.5
	np := m.LocateNearest(types.XYZ(2, 2, 2), types.XYZ(0, 0, 1), maxDist, 10)
	if np.Found() != 10 {
		t.Fatalf("expected to locate 10 photons; got %d", np.Found())
	}

	got := m.IrradianceEstimate(types.XYZ(2, 2, 2), types.XYZ(0, 0, 1), maxDist, 10)
	exp := 10 / (math32.Pi * np.Bound())
	for ch := 0; ch < 3; ch++ {
		if math32.Abs(got[ch]-exp) > exp*1e-5 {
			t.Fatalf("expected channel %d irradiance %f; got %f", ch, exp, got[ch])
		}
	}
}

func TestIrradianceEstimateIgnoresBackfacingPhotons(t *testing.T) {
	s := NewStore(4)
	s.Store(types.RGB(1, 1, 1), types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	s.Store(types.RGB(1, 1, 1), types.XYZ(0.1, 0, 0), types.XYZ(0, 0, -1))
	s.Store(types.RGB(5, 5, 5), types.XYZ(0, 0.1, 0), types.XYZ(0, 0, 1))
	m := Balance(s)

	got := m.IrradianceEstimate(types.Vec3{}, types.XYZ(0, 0, 1), 1, 10)
	exp := 2 / math32.Pi
	if math32.Abs(got[0]-exp) > 1e-5 {
		t.Fatalf("expected irradiance %f from front-facing photons only; got %f", exp, got[0])
	}
}

func TestLocateNearestMatchesBruteForce(t *testing.T) {
	type spec struct {
		count      int
		maxDist    float32
		maxPhotons int
	}
	specs := []spec{
		{1, 1, 1},
		{2, 10, 5},
		{17, 0.3, 3},
		{30, 0.5, 8},
		{50, 0.2, 50},
		{50, 2, 1},
		{50, 2, 10},
		{50, 0.05, 4},
	}

	rng := rand.New(rand.NewSource(7))
	for index, s := range specs {
		store := NewStore(1)
		for i := 0; i < s.count; i++ {
			store.Store(
				types.RGB(1, 1, 1),
				types.XYZ(rng.Float32(), rng.Float32(), rng.Float32()),
				types.XYZ(0, 0, -1),
			)
		}
		m := Balance(store)
		photons := m.Photons()

		for q := 0; q < 25; q++ {
			pos := types.XYZ(rng.Float32(), rng.Float32(), rng.Float32())
			normal := types.XYZ(rng.Float32()-0.5, rng.Float32()-0.5, rng.Float32()-0.5).Normalize()

			// Brute force
			var candidates []float32
			byDist := make(map[float32]types.Vec3)
			for _, p := range photons {
				d2 := penalizedDist2(p.Pos, pos, normal)
				if d2 < s.maxDist*s.maxDist {
					candidates = append(candidates, d2)
					byDist[d2] = p.Pos
				}
			}
			sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
			if len(candidates) > s.maxPhotons {
				candidates = candidates[:s.maxPhotons]
			}
			expSet := make(map[types.Vec3]bool)
			for _, d2 := range candidates {
				expSet[byDist[d2]] = true
			}

			np := m.LocateNearest(pos, normal, s.maxDist, s.maxPhotons)
			if np.Found() != len(expSet) {
				t.Fatalf("[spec %d, query %d] expected %d photons; got %d", index, q, len(expSet), np.Found())
			}
			for i := 0; i < np.Found(); i++ {
				p, _ := np.Candidate(i)
				if !expSet[p.Pos] {
					t.Fatalf("[spec %d, query %d] photon %v is not among the %d nearest", index, q, p.Pos, s.maxPhotons)
				}
			}
		}
	}
}

func TestSearchBoundShrinksOnceFull(t *testing.T) {
	s := NewStore(8)
	for i := 1; i <= 8; i++ {
		s.Store(types.RGB(1, 1, 1), types.XYZ(float32(i), 0, 0), types.XYZ(0, 0, -1))
	}
	m := Balance(s)

	np := m.LocateNearest(types.Vec3{}, types.XYZ(0, 0, 1), 100, 3)
	if np.Found() != 3 {
		t.Fatalf("expected 3 photons; got %d", np.Found())
	}
	if np.Bound() >= 100*100 {
		t.Fatalf("expected the search bound to shrink below the initial radius; got %f", np.Bound())
	}
	for i := 0; i < np.Found(); i++ {
		p, d2 := np.Candidate(i)
		if p.Pos[0] > 3 {
			t.Fatalf("expected only the 3 closest photons; got photon at %v", p.Pos)
		}
		if d2 > np.Bound() {
			t.Fatalf("expected candidate distance %f to be within bound %f", d2, np.Bound())
		}
	}
}

func BenchmarkIrradianceEstimate(b *testing.B) {
	m := Balance(randomStore(100000, 3))
	pos := types.XYZ(5, 2, 0)
	normal := types.XYZ(0, 1, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.IrradianceEstimate(pos, normal, 0.5, 100)
	}
}
