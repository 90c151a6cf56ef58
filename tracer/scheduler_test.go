package tracer

import (
	"testing"
	"time"
)

func TestNaiveScheduler(t *testing.T) {
	type spec struct {
		batch    int
		workers  int
		expected []int
	}
	specs := []spec{
		{10, 2, []int{5, 5}},
		{11, 2, []int{6, 5}},
		{3, 4, []int{3, 0, 0, 0}},
		{10, 0, []int{}},
	}

	for index, s := range specs {
		assignment := NaiveScheduler().Schedule(s.batch, make([]BatchStat, s.workers))
		if len(assignment) != len(s.expected) {
			t.Fatalf("[spec %d] expected %d assignments; got %d", index, len(s.expected), len(assignment))
		}
		for w, exp := range s.expected {
			if assignment[w] != exp {
				t.Fatalf("[spec %d] expected worker %d to be assigned %d photons; got %d", index, w, exp, assignment[w])
			}
		}
	}
}

func TestPerfectScheduler(t *testing.T) {
	type spec struct {
		time1  time.Duration
		time2  time.Duration
		expW1  int
		expW2  int
		noData bool
	}
	specs := []spec{
		// First call always behaves like the naive scheduler
		{noData: true, expW1: 5, expW2: 5},
		// Second call should use the batch times to assign photons
		{time1: 1, time2: 5, expW1: 9, expW2: 1},
		// This time worker 2 performed much better
		{time1: 5, time2: 1, expW1: 7, expW2: 3},
	}

	sch := PerfectScheduler()
	last := make([]BatchStat, 2)
	for index, s := range specs {
		if !s.noData {
			last[0].Time = s.time1
			last[1].Time = s.time2
		}

		assignment := sch.Schedule(10, last)
		if assignment[0] != s.expW1 {
			t.Fatalf("[spec %d] expected worker 0 to be assigned %d photons; got %d", index, s.expW1, assignment[0])
		}
		if assignment[1] != s.expW2 {
			t.Fatalf("[spec %d] expected worker 1 to be assigned %d photons; got %d", index, s.expW2, assignment[1])
		}

		last[0].Photons = assignment[0]
		last[1].Photons = assignment[1]
	}
}
