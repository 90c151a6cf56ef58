package tracer

import (
	"sync/atomic"
	"testing"

	"github.com/achilleasa/photon-gi/icache"
	"github.com/achilleasa/photon-gi/scene"
	"github.com/achilleasa/photon-gi/types"
	"github.com/chewxy/math32"
)

// An intersector that reports a hit at a fixed distance for every ray unless
// the miss predicate says otherwise.
type mockIntersector struct {
	distance float32
	material *scene.Material
	miss     func(ray scene.Ray) bool
	calls    int64
}

func (mi *mockIntersector) Intersect(ray scene.Ray) scene.Intersection {
	atomic.AddInt64(&mi.calls, 1)
	if mi.miss != nil && mi.miss(ray) {
		return scene.Intersection{}
	}
	return scene.Intersection{
		Point:    ray.At(mi.distance),
		Normal:   ray.Dir.Neg(),
		Distance: mi.distance,
		Material: mi.material,
		Hit:      true,
	}
}

func giTestLight(t *testing.T, sc scene.Intersector) *PhotonLight {
	opts := DefaultOptions()
	opts.StratificationN = 4
	opts.StratificationM = 2
	pl, err := NewPhotonLight(sc, NewPointLight(types.XYZ(0, 10, 0), types.RGB(1, 1, 1)), opts)
	if err != nil {
		t.Fatal(err)
	}
	return pl
}

func TestGlobalIlluminationSeedsCache(t *testing.T) {
	sc := &mockIntersector{distance: 20, material: scene.NewDiffuseMaterial(types.RGB(1, 1, 1))}
	pl := giTestLight(t, sc)

	shadeCalls := 0
	shade := func(ray scene.Ray, hit scene.Intersection) types.Color {
		shadeCalls++
		if ray.Dir.Dot(types.XYZ(0, 0, 1)) < 0 {
			t.Errorf("expected gather ray in the hemisphere of the normal; got %v", ray.Dir)
		}
		return types.RGB(0.5, 0.25, 1)
	}

	hit := scene.Intersection{Point: types.XYZ(1, 2, 3), Normal: types.XYZ(0, 0, 1), Hit: true}
	irr, cached := pl.GlobalIllumination(hit, shade)
	if cached {
		t.Fatal("expected first query to miss the cache")
	}
	if shadeCalls != 8 {
		t.Fatalf("expected 8 gather samples; got %d", shadeCalls)
	}
	if !approxVec3(types.Vec3(irr), types.XYZ(0.5, 0.25, 1), 1e-5) {
		t.Fatalf("expected irradiance (0.5, 0.25, 1); got %v", irr)
	}
	if pl.Cache().Len() != 1 {
		t.Fatalf("expected 1 cached sample; got %d", pl.Cache().Len())
	}

	// 1/sum(1/d) = 2.5 is clamped to minSpacing/tolerance
	expR0 := icache.DefaultMinSpacing / icache.DefaultTolerance
	if r0 := pl.Cache().Samples()[0].R0; math32.Abs(r0-expR0) > 1e-3 {
		t.Fatalf("expected cached sample r0 to be %f; got %f", expR0, r0)
	}

	irr, cached = pl.GlobalIllumination(hit, shade)
	if !cached {
		t.Fatal("expected second query to hit the cache")
	}
	if shadeCalls != 8 {
		t.Fatalf("expected cached query to skip sampling; got %d shade calls", shadeCalls)
	}
	if !approxVec3(types.Vec3(irr), types.XYZ(0.5, 0.25, 1), 1e-5) {
		t.Fatalf("expected cached irradiance (0.5, 0.25, 1); got %v", irr)
	}

	if stats := pl.Stats(); stats.CacheSamples != 1 {
		t.Fatalf("expected stats to report 1 cache sample; got %d", stats.CacheSamples)
	}
}

func TestGlobalIlluminationCacheRadius(t *testing.T) {
	type spec struct {
		distance float32
		expR0    float32
	}
	specs := []spec{
		// 8 samples: r0 = d/8
		{80, 10},
		{400, 50},
		// Below minSpacing/tolerance
		{8, icache.DefaultMinSpacing / icache.DefaultTolerance},
	}

	shade := func(scene.Ray, scene.Intersection) types.Color { return types.RGB(1, 1, 1) }
	for index, s := range specs {
		pl := giTestLight(t, &mockIntersector{distance: s.distance, material: scene.NewDiffuseMaterial(types.RGB(1, 1, 1))})
		hit := scene.Intersection{Normal: types.XYZ(0, 0, 1), Hit: true}
		pl.GlobalIllumination(hit, shade)

		if pl.Cache().Len() != 1 {
			t.Fatalf("[spec %d] expected 1 cached sample; got %d", index, pl.Cache().Len())
		}
		if r0 := pl.Cache().Samples()[0].R0; math32.Abs(r0-s.expR0) > 1e-3*s.expR0 {
			t.Fatalf("[spec %d] expected r0 %f; got %f", index, s.expR0, r0)
		}

		// A point 1.0 away lies outside the validity box of the clamped sample
		_, cached := pl.GlobalIllumination(scene.Intersection{Point: types.XYZ(1, 0, 0), Normal: types.XYZ(0, 0, 1), Hit: true}, shade)
		if expCached := s.expR0*icache.DefaultTolerance > 1; cached != expCached {
			t.Fatalf("[spec %d] expected cached=%t for a query 1.0 away; got %t", index, expCached, cached)
		}
	}
}

func TestGlobalIlluminationPartialHits(t *testing.T) {
	type spec struct {
		miss      func(ray scene.Ray) bool
		expIrr    types.Color
		expCached int
	}
	specs := []spec{
		// Half the hemisphere escapes: the estimate is not cached
		{func(ray scene.Ray) bool { return ray.Dir[0] > 0 }, types.RGB(1, 1, 1), 0},
		// Nothing is hit
		{func(ray scene.Ray) bool { return true }, types.Color{}, 0},
	}

	for index, s := range specs {
		sc := &mockIntersector{distance: 1, material: scene.NewDiffuseMaterial(types.RGB(1, 1, 1)), miss: s.miss}
		pl := giTestLight(t, sc)
		shade := func(scene.Ray, scene.Intersection) types.Color { return types.RGB(1, 1, 1) }

		hit := scene.Intersection{Normal: types.XYZ(0, 0, 1), Hit: true}
		irr, cached := pl.GlobalIllumination(hit, shade)
		if cached {
			t.Fatalf("[spec %d] expected a cache miss", index)
		}
		if irr != s.expIrr {
			t.Fatalf("[spec %d] expected irradiance %v; got %v", index, s.expIrr, irr)
		}
		if pl.Cache().Len() != s.expCached {
			t.Fatalf("[spec %d] expected %d cached samples; got %d", index, s.expCached, pl.Cache().Len())
		}
	}
}

func TestGlobalIlluminationMiss(t *testing.T) {
	sc := &mockIntersector{distance: 1}
	pl := giTestLight(t, sc)

	if irr, cached := pl.GlobalIllumination(scene.Intersection{}, nil); cached || !irr.IsBlack() {
		t.Fatal("expected a zero estimate for a missed primary ray")
	}
	if sc.calls != 0 {
		t.Fatalf("expected no gather rays for a missed primary ray; got %d", sc.calls)
	}
}

func TestGatherShade(t *testing.T) {
	pl := giTestLight(t, &mockIntersector{distance: 1})

	light := scene.Intersection{Material: scene.NewLightMaterial(types.RGB(2, 2, 2)), Hit: true}
	if c := pl.GatherShade(scene.Ray{}, light); c != types.RGB(2, 2, 2) {
		t.Fatalf("expected light emission; got %v", c)
	}

	// No photon maps yet
	wall := scene.Intersection{Normal: types.XYZ(0, 0, 1), Material: scene.NewDiffuseMaterial(types.RGB(1, 1, 1)), Hit: true}
	if c := pl.GatherShade(scene.Ray{Dir: types.XYZ(0, 0, -1)}, wall); !c.IsBlack() {
		t.Fatalf("expected black wall without photon maps; got %v", c)
	}
}
