package tracer

import (
	"math"
	"time"
)

// BatchStat is the feedback a worker reports after processing a batch.
type BatchStat struct {
	// Number of photons assigned to the worker.
	Photons int

	// Time spent processing them.
	Time time.Duration
}

// The BatchScheduler interface is implemented by all photon batch scheduling
// algorithms.
type BatchScheduler interface {
	// Split a batch of photons among len(last) workers using the feedback
	// collected from the previous batch.
	//
	// This function returns the photon assignment for each worker.
	Schedule(batch int, last []BatchStat) []int
}

// The naive scheduler splits the batch evenly and ignores any feedback.
type naiveScheduler struct{}

// Create a new naive scheduler instance.
func NaiveScheduler() BatchScheduler {
	return naiveScheduler{}
}

func (naiveScheduler) Schedule(batch int, last []BatchStat) []int {
	assignment := make([]int, len(last))
	if len(last) == 0 {
		return assignment
	}

	share := batch / len(last)
	for idx := range assignment {
		assignment[idx] = share
	}

	// Leftovers go to the first worker
	assignment[0] += batch - share*len(last)
	return assignment
}

// The perfect scheduler assumes that the cost of tracing a photon does not
// change much between two subsequent batches.
type perfectScheduler struct {
	naive naiveScheduler
}

// Create a new perfect scheduler instance.
func PerfectScheduler() BatchScheduler {
	return &perfectScheduler{}
}

// Split the batch using the throughput of each worker in the previous batch.
// The share of worker w for batch i+1 is:
// s_w,i+1 = (photons_w,i / time_w,i) / Σ(photons_i / time_i)
//
// If any worker has no feedback the batch is split evenly.
func (sch *perfectScheduler) Schedule(batch int, last []BatchStat) []int {
	var total float64
	for _, stat := range last {
		if stat.Photons <= 0 || stat.Time <= 0 {
			return sch.naive.Schedule(batch, last)
		}
		total += float64(stat.Photons) / float64(stat.Time)
	}
	if total == 0 {
		return sch.naive.Schedule(batch, last)
	}

	scaler := float64(batch) / total
	assignment := make([]int, len(last))
	scheduled := 0
	for idx, stat := range last {
		assignment[idx] = int(math.Floor(float64(stat.Photons) / float64(stat.Time) * scaler))
		scheduled += assignment[idx]
	}

	// In case photons don't add up to the batch size append the missing ones to the first worker
	assignment[0] += batch - scheduled
	return assignment
}
