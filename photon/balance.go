package photon

import (
	"time"

	"github.com/achilleasa/photon-gi/log"
	"github.com/achilleasa/photon-gi/types"
)

// BalancedMap is a left-balanced kd-tree stored as an implicit heap: the
// photon at index i has its children at 2i and 2i+1 (1-based). A balanced map
// is immutable and can be queried concurrently.
type BalancedMap struct {
	photons []Photon
	count   int

	// Nodes with an index <= halfStored+1 may have children.
	halfStored int

	bbox [2]types.Vec3
}

type balancer struct {
	photons []Photon

	// Photon indices in balanced (heap) order and in working order.
	pbal []int32
	porg []int32

	// The bounding box of the segment currently being balanced.
	bboxMin types.Vec3
	bboxMax types.Vec3
}

// Balance converts the photons collected by a store into a left-balanced
// kd-tree. The store hands its photon storage over to the returned map and
// is left empty.
func Balance(store *Store) *BalancedMap {
	logger := log.New("photon map")
	start := time.Now()

	count := store.count
	bbox := store.BBox()
	photons := store.photons[:count+1]

	if count > 1 {
		b := &balancer{
			photons: photons,
			pbal:    make([]int32, count+1),
			porg:    make([]int32, count+1),
			bboxMin: bbox[0],
			bboxMax: bbox[1],
		}
		for i := range b.porg {
			b.porg[i] = int32(i)
		}

		b.balanceSegment(1, 1, count)
		b.porg = nil
		b.reorganize()
	}

	store.reset()

	logger.Debugf("balanced %d photons in %d ms", count, time.Since(start).Nanoseconds()/1e6)
	return &BalancedMap{
		photons:    photons,
		count:      count,
		halfStored: count/2 - 1,
		bbox:       bbox,
	}
}

// Compute the index of the median element for the segment [start, end] so
// that the resulting tree is left-balanced.
func balancedMedian(start, end int) int {
	size := end - start + 1
	median := 1
	for 4*median <= size {
		median += median
	}

	if 3*median <= size {
		return 2*median + start - 1
	}
	return end - median + 1
}

// Recursively balance segment [start, end] of porg placing its median at
// tree index.
func (b *balancer) balanceSegment(index, start, end int) {
	median := balancedMedian(start, end)

	// Split along the longest side of the current segment bbox
	axis := b.bboxMax.Sub(b.bboxMin).MaxAxis()

	b.medianSplit(start, end, median, axis)

	b.pbal[index] = b.porg[median]
	node := &b.photons[b.porg[median]]
	node.Plane = axis

	if median > start {
		if start < median-1 {
			tmp := b.bboxMax[axis]
			b.bboxMax[axis] = node.Pos[axis]
			b.balanceSegment(2*index, start, median-1)
			b.bboxMax[axis] = tmp
		} else {
			b.pbal[2*index] = b.porg[start]
		}
	}

	if median < end {
		if median+1 < end {
			tmp := b.bboxMin[axis]
			b.bboxMin[axis] = node.Pos[axis]
			b.balanceSegment(2*index+1, median+1, end)
			b.bboxMin[axis] = tmp
		} else {
			b.pbal[2*index+1] = b.porg[end]
		}
	}
}

// Partition porg[start..end] so that the element at median is in its sorted
// position along axis, everything before it is <= and everything after it is
// >= its coordinate.
func (b *balancer) medianSplit(start, end, median int, axis types.Axis) {
	p := b.porg
	coord := func(i int) float32 {
		return b.photons[p[i]].Pos[axis]
	}

	left, right := start, end
	for right > left {
		v := coord(right)
		i := left - 1
		j := right
		for {
			for {
				i++
				if coord(i) >= v {
					break
				}
			}
			for {
				j--
				if coord(j) <= v || j <= left {
					break
				}
			}
			if i >= j {
				break
			}
			p[i], p[j] = p[j], p[i]
		}

		p[i], p[right] = p[right], p[i]
		if i >= median {
			right = i - 1
		}
		if i <= median {
			left = i + 1
		}
	}
}

// Move photons into heap order in place by following the permutation cycles
// encoded in pbal.
func (b *balancer) reorganize() {
	count := len(b.pbal) - 1
	j := 1
	cycleStart := 1
	held := b.photons[j]

	for i := 1; i <= count; i++ {
		d := int(b.pbal[j])
		b.pbal[j] = 0
		if d != cycleStart {
			b.photons[j] = b.photons[d]
			j = d
			continue
		}

		// Cycle closed; find the start of the next one
		b.photons[j] = held
		if i < count {
			for ; cycleStart <= count; cycleStart++ {
				if b.pbal[cycleStart] != 0 {
					break
				}
			}
			held = b.photons[cycleStart]
			j = cycleStart
		}
	}
}

// Get the number of photons in the map.
func (m *BalancedMap) Len() int {
	return m.count
}

// Get the half-count cutoff (count/2 - 1) of the tree.
func (m *BalancedMap) HalfStored() int {
	return m.halfStored
}

// Get the photon at heap index i (1-based).
func (m *BalancedMap) Photon(i int) Photon {
	return m.photons[i]
}

// Get a copy of all photons in heap order.
func (m *BalancedMap) Photons() []Photon {
	out := make([]Photon, m.count)
	copy(out, m.photons[1:])
	return out
}

// Get the bounding box of the photons in the map.
func (m *BalancedMap) BBox() [2]types.Vec3 {
	return m.bbox
}
