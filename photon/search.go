package photon

import (
	"github.com/achilleasa/photon-gi/types"
	"github.com/chewxy/math32"
)

// Photons that lie off the tangent plane of the query point have their squared
// distance inflated by |n·(p-x)| * d² * surfacePenalty. This down-weights
// photons that are close in space but belong to a differently oriented
// surface (e.g. the other side of a thin wall).
const surfacePenalty float32 = 0.01

// NearestPhotons holds the state of a k-nearest-neighbour query.
//
// Candidates are stored unsorted at indices 1..found. dist2[0] holds the
// current search bound; it starts at maxDist² and shrinks to the distance of
// each evicted candidate once the buffer is full.
type NearestPhotons struct {
	pos    types.Vec3
	normal types.Vec3

	max   int
	found int

	dist2   []float32
	photons []*Photon
}

// Get the number of photons found.
func (np *NearestPhotons) Found() int {
	return np.found
}

// Get the final squared search radius.
func (np *NearestPhotons) Bound() float32 {
	return np.dist2[0]
}

// Get the i-th candidate (0-based) and its penalised squared distance.
func (np *NearestPhotons) Candidate(i int) (Photon, float32) {
	return *np.photons[i+1], np.dist2[i+1]
}

func (np *NearestPhotons) insert(p *Photon, dist2 float32) {
	if np.found < np.max {
		np.found++
		np.dist2[np.found] = dist2
		np.photons[np.found] = p
		return
	}

	// Buffer is full; replace the furthest candidate if p is closer
	worst := 1
	for j := 2; j <= np.found; j++ {
		if np.dist2[j] > np.dist2[worst] {
			worst = j
		}
	}

	if dist2 < np.dist2[worst] {
		np.dist2[0] = np.dist2[worst]
		np.dist2[worst] = dist2
		np.photons[worst] = p
	}
}

// Locate up to maxPhotons photons within maxDist of pos. The returned state
// is owned by the caller.
func (m *BalancedMap) LocateNearest(pos, normal types.Vec3, maxDist float32, maxPhotons int) *NearestPhotons {
	if maxPhotons < 0 {
		maxPhotons = 0
	}

	np := &NearestPhotons{
		pos:     pos,
		normal:  normal,
		max:     maxPhotons,
		dist2:   make([]float32, maxPhotons+1),
		photons: make([]*Photon, maxPhotons+1),
	}
	np.dist2[0] = maxDist * maxDist

	if m != nil && m.count > 0 && maxPhotons > 0 && maxDist > 0 {
		m.locate(np, 1)
	}
	return np
}

func (m *BalancedMap) locate(np *NearestPhotons, index int) {
	if index > m.count {
		return
	}
	p := &m.photons[index]

	// Internal node; visit the near side first and the far side only if the
	// splitting plane is within the current bound.
	if index <= m.halfStored+1 {
		dist1 := np.pos[p.Plane] - p.Pos[p.Plane]
		if dist1 > 0 {
			m.locate(np, 2*index+1)
			if dist1*dist1 < np.dist2[0] {
				m.locate(np, 2*index)
			}
		} else {
			m.locate(np, 2*index)
			if dist1*dist1 < np.dist2[0] {
				m.locate(np, 2*index+1)
			}
		}
	}

	if dist2 := penalizedDist2(p.Pos, np.pos, np.normal); dist2 < np.dist2[0] {
		np.insert(p, dist2)
	}
}

// Squared distance between a photon at p and the query point x, inflated by
// the photon's offset from the tangent plane at x.
func penalizedDist2(p, x, normal types.Vec3) float32 {
	v := p.Sub(x)
	dist2 := v.LenSq()
	return dist2 + math32.Abs(normal.Dot(v))*dist2*surfacePenalty
}

// Estimate the irradiance at pos from the maxPhotons nearest photons within
// maxDist. Only photons arriving at the front side of the surface (as defined
// by normal) contribute. Fewer than two photons yield a zero estimate.
func (m *BalancedMap) IrradianceEstimate(pos, normal types.Vec3, maxDist float32, maxPhotons int) types.Color {
	var irrad types.Color

	np := m.LocateNearest(pos, normal, maxDist, maxPhotons)
	if np.found < 2 || np.dist2[0] <= 0 {
		return irrad
	}

	for i := 1; i <= np.found; i++ {
		p := np.photons[i]
		if p.Dir().Dot(normal) < 0 {
			irrad = irrad.Add(p.Power)
		}
	}

	return irrad.Scale(1.0 / (math32.Pi * np.dist2[0]))
}
