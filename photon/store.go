package photon

import (
	"math"

	"github.com/achilleasa/photon-gi/log"
	"github.com/achilleasa/photon-gi/types"
)

// Store collects photons in a flat, 1-indexed slice while a light source is
// being traced. Once all photons have been emitted the store is handed to
// Balance which converts it into a BalancedMap.
type Store struct {
	logger log.Logger

	// Photons stored at indices 1..count; index 0 is unused.
	photons []Photon
	count   int

	// Photons up to this index have already been scaled by RescalePower.
	prevScale int

	// Upper bound for the number of stored photons. Zero means unlimited.
	maxPhotons int
	dropped    int

	bboxMin types.Vec3
	bboxMax types.Vec3
}

// Create a store with room for capacity photons. The store grows
// automatically when it fills up.
func NewStore(capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}

	s := &Store{
		logger: log.New("photon store"),
	}
	s.photons = make([]Photon, capacity+1)
	s.resetBBox()
	return s
}

func (s *Store) resetBBox() {
	s.bboxMin = types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	s.bboxMax = types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
}

// Release the photon storage after it has been handed over to a balanced map.
func (s *Store) reset() {
	s.photons = make([]Photon, 2)
	s.count = 0
	s.prevScale = 0
	s.resetBBox()
}

// Limit the number of photons that the store may hold. Photons stored after
// the limit is reached are dropped. A value <= 0 removes the limit.
func (s *Store) SetMaxPhotons(maxPhotons int) {
	if maxPhotons < 0 {
		maxPhotons = 0
	}
	s.maxPhotons = maxPhotons
}

// Store a photon that arrived at pos travelling along dir.
//
// If the store is full its capacity is doubled. When growing would exceed the
// configured ceiling the photon is dropped; the first drop is logged.
func (s *Store) Store(power types.Color, pos, dir types.Vec3) {
	s.add(newPhoton(power, pos, dir))
}

func (s *Store) add(p Photon) {
	if s.maxPhotons > 0 && s.count >= s.maxPhotons {
		s.drop()
		return
	}

	if s.count >= s.Cap() {
		newCap := 2*s.Cap() + 1
		if s.maxPhotons > 0 && newCap > s.maxPhotons {
			newCap = s.maxPhotons
		}
		grown := make([]Photon, newCap+1)
		copy(grown, s.photons[:s.count+1])
		s.photons = grown
	}

	s.count++
	s.photons[s.count] = p
	s.bboxMin = types.MinVec3(s.bboxMin, p.Pos)
	s.bboxMax = types.MaxVec3(s.bboxMax, p.Pos)
}

func (s *Store) drop() {
	if s.dropped == 0 {
		s.logger.Warningf("photon store full (%d photons); dropping further photons", s.count)
	}
	s.dropped++
}

// Scale the power of all photons stored since the previous call. This is
// invoked once per emission batch with scale = 1 / (emitted photons).
func (s *Store) RescalePower(scale float32) {
	for i := s.prevScale + 1; i <= s.count; i++ {
		s.photons[i].Power = s.photons[i].Power.Scale(scale)
	}
	s.prevScale = s.count
}

// Append the photons of another store. The merged photons count as not yet
// rescaled.
func (s *Store) Merge(other *Store) {
	for i := 1; i <= other.count; i++ {
		s.add(other.photons[i])
	}
	s.dropped += other.dropped
}

// Get the number of stored photons.
func (s *Store) Len() int {
	return s.count
}

// Get the number of photons that fit without growing the store.
func (s *Store) Cap() int {
	return len(s.photons) - 1
}

// Get the number of photons dropped because of the store ceiling.
func (s *Store) Dropped() int {
	return s.dropped
}

// Get the bounding box of all stored photons.
func (s *Store) BBox() [2]types.Vec3 {
	return [2]types.Vec3{s.bboxMin, s.bboxMax}
}

// Get the i-th stored photon (1-based).
func (s *Store) Photon(i int) Photon {
	return s.photons[i]
}
