package tracer

import "time"

// Pass identifies one of the photon tracing passes.
type Pass uint8

const (
	GlobalPass Pass = iota
	CausticPass
)

func (p Pass) String() string {
	if p == CausticPass {
		return "caustic"
	}
	return "global"
}

// ProgressFunc receives the completion percentage of a pass. It is invoked
// from the goroutine that called TraceFromLight.
type ProgressFunc func(pass Pass, percent int)

// Statistics for a single photon tracing pass.
type PassStats struct {
	Pass Pass

	// Photons requested by the caller.
	Requested int

	// Photons the map power was normalized with.
	Emitted int

	// Emission attempts, including photons re-emitted because they
	// escaped the scene on their first segment.
	Attempts int
	Retries  int

	// Completed walks; for the caustic pass only walks that reached a
	// specular surface first are counted.
	Completed int

	Stored   int
	Dropped  int
	Absorbed int
	Escaped  int
	Bounces  int

	// Time for emitting, merging and balancing.
	Duration time.Duration
}

func (ps *PassStats) add(other PassStats) {
	ps.Emitted += other.Emitted
	ps.Attempts += other.Attempts
	ps.Retries += other.Retries
	ps.Completed += other.Completed
	ps.Absorbed += other.Absorbed
	ps.Escaped += other.Escaped
	ps.Bounces += other.Bounces
}

// Stats for the photon maps of a light.
type Stats struct {
	Global  PassStats
	Caustic PassStats

	// Number of samples in the irradiance cache.
	CacheSamples int
}
