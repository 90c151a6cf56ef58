// Package icache implements an irradiance cache: a sparse set of previously
// computed indirect irradiance samples that are blended to approximate the
// irradiance at nearby surface points.
package icache

import (
	"sort"
	"sync"

	"github.com/achilleasa/photon-gi/log"
	"github.com/achilleasa/photon-gi/types"
	"github.com/chewxy/math32"
	"github.com/dhconnelly/rtreego"
)

const (
	DefaultTolerance  float32 = 0.15
	DefaultMinSpacing float32 = 0.5

	// The default ratio between the max and min sample spacing.
	DefaultMaxSpacingRatio float32 = 100

	// Weights are clamped to this value to avoid the singularity at d = 0.
	maxWeight float32 = 1e10

	// Half side of the box used to query the sample index.
	queryTolerance = 1e-6

	// R-tree branching factors.
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
)

// A Sample is a cached irradiance value together with the region in which it
// can be reused.
type Sample struct {
	Pos    types.Vec3
	Normal types.Vec3

	// Validity radius.
	R0 float32

	Irradiance types.Color

	// Insertion order.
	seq uint64

	// The half side of the sample's validity box (r0 * tolerance).
	halfSide float32
}

// Bounds implements rtreego.Spatial.
func (s *Sample) Bounds() rtreego.Rect {
	return rtreego.Point{
		float64(s.Pos[0]), float64(s.Pos[1]), float64(s.Pos[2]),
	}.ToRect(float64(s.halfSide))
}

// Compute the blending weight of this sample at pos/normal. A zero weight
// indicates that pos lies outside the sample's validity box.
func (s *Sample) weight(pos, normal types.Vec3) float32 {
	v := s.Pos.Sub(pos)
	if math32.Abs(v[0]) >= s.halfSide || math32.Abs(v[1]) >= s.halfSide || math32.Abs(v[2]) >= s.halfSide {
		return 0
	}

	cosAngle := 1 - normal.Dot(s.Normal)
	if cosAngle < 0 {
		cosAngle = 0
	}

	w := 1 / (v.Len()/s.R0 + math32.Sqrt(cosAngle))
	if w > maxWeight || math32.IsInf(w, 1) || math32.IsNaN(w) {
		w = maxWeight
	}
	return w
}

// Cache is an append-only irradiance cache. It is safe for concurrent use.
type Cache struct {
	sync.RWMutex
	logger log.Logger

	tolerance    float32
	invTolerance float32
	minSpacing   float32
	maxSpacing   float32

	samples []*Sample
	index   *rtreego.Rtree

	// Number of samples dropped by Insert.
	rejected int
}

// An Option customizes a Cache.
type Option func(*Cache)

// Set the max spacing as a multiple of the min spacing.
func WithMaxSpacingRatio(ratio float32) Option {
	return func(c *Cache) {
		c.maxSpacing = ratio * c.minSpacing
	}
}

// Create a new cache. Samples are only reused at points where their weight
// exceeds 1/tolerance; minSpacing bounds the smallest validity radius.
func New(tolerance, minSpacing float32, opts ...Option) *Cache {
	logger := log.New("icache")
	if tolerance <= 0 {
		logger.Warningf("invalid tolerance %f; using %f", tolerance, DefaultTolerance)
		tolerance = DefaultTolerance
	}
	if minSpacing <= 0 {
		logger.Warningf("invalid min spacing %f; using %f", minSpacing, DefaultMinSpacing)
		minSpacing = DefaultMinSpacing
	}

	c := &Cache{
		logger:       logger,
		tolerance:    tolerance,
		invTolerance: 1 / tolerance,
		minSpacing:   minSpacing,
		maxSpacing:   DefaultMaxSpacingRatio * minSpacing,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset()

	return c
}

// Remove all cached samples.
func (c *Cache) Reset() {
	c.Lock()
	defer c.Unlock()

	c.samples = nil
	c.index = rtreego.NewTree(3, rtreeMinChildren, rtreeMaxChildren)
	c.rejected = 0
}

// Insert an irradiance sample. The validity radius r0 is clamped so that
// r0*tolerance lies within [minSpacing, maxSpacing]. Samples with a
// non-finite position, radius or irradiance are dropped.
func (c *Cache) Insert(pos, normal types.Vec3, r0 float32, irr types.Color) {
	if !finite(r0) || !finite(pos[0], pos[1], pos[2]) || !finite(irr[0], irr[1], irr[2]) {
		c.Lock()
		c.rejected++
		if c.rejected == 1 {
			c.logger.Warningf("dropping irradiance sample with non-finite values (pos %v, r0 %f, irradiance %v)", pos, r0, irr)
		}
		c.Unlock()
		return
	}
	r0 = clamp(r0*c.tolerance, c.minSpacing, c.maxSpacing) * c.invTolerance

	c.Lock()
	defer c.Unlock()

	s := &Sample{
		Pos:        pos,
		Normal:     normal.Normalize(),
		R0:         r0,
		Irradiance: irr,
		seq:        uint64(len(c.samples)),
		halfSide:   r0 * c.tolerance,
	}
	c.samples = append(c.samples, s)
	c.index.Insert(s)
}

// Lookup the irradiance at pos by blending all samples whose weight exceeds
// 1/tolerance. The second return value is false if no sample qualifies.
func (c *Cache) Query(pos, normal types.Vec3) (types.Color, bool) {
	normal = normal.Normalize()
	queryRect := rtreego.Point{
		float64(pos[0]), float64(pos[1]), float64(pos[2]),
	}.ToRect(queryTolerance)

	c.RLock()
	candidates := c.index.SearchIntersect(queryRect)
	c.RUnlock()

	// Blend newest samples first so the result does not depend on the
	// R-tree layout.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].(*Sample).seq > candidates[j].(*Sample).seq
	})

	var irr types.Color
	var totalWeight float32
	found := false
	for _, candidate := range candidates {
		s := candidate.(*Sample)
		w := s.weight(pos, normal)
		if w <= c.invTolerance {
			continue
		}

		irr = irr.Add(s.Irradiance.Scale(w))
		totalWeight += w
		found = true
	}

	if !found {
		return types.Color{}, false
	}
	return irr.Scale(1 / totalWeight), true
}

// Get the number of cached samples.
func (c *Cache) Len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.samples)
}

// Get a copy of the cached samples, newest first.
func (c *Cache) Samples() []Sample {
	c.RLock()
	defer c.RUnlock()

	out := make([]Sample, len(c.samples))
	for i, s := range c.samples {
		out[len(c.samples)-1-i] = *s
	}
	return out
}

// Get the number of samples dropped because of non-finite values.
func (c *Cache) Rejected() int {
	c.RLock()
	defer c.RUnlock()
	return c.rejected
}

func finite(values ...float32) bool {
	for _, v := range values {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func clamp(v, min, max float32) float32 {
	if v > max {
		return max
	}
	if v < min {
		return min
	}
	return v
}
