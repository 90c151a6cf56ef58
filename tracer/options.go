package tracer

import "runtime"

type Options struct {
	// Number of emission goroutines. Results are only reproducible for a
	// given Seed when a single worker is used.
	Workers int

	// Photons are handed to the workers in batches of this size.
	BatchSize int

	// Seed for the per-worker samplers.
	Seed int64

	// Random walk limits. A walk ends after MaxBounces surface interactions
	// or when the photon power drops to MinPowerRatio times the power it
	// was emitted with.
	MaxBounces    int
	MinPowerRatio float32

	// Upper bound for the number of photons kept in each photon map (0 = unlimited).
	MaxStoredPhotons int

	// Store photons at the first diffuse surface hit by the emitted ray.
	// Disable when direct lighting is computed separately.
	StoreDirectHits bool

	// Hemisphere stratification used when seeding the irradiance cache
	// (N azimuth x M elevation cells).
	StratificationN int
	StratificationM int

	// Irradiance cache tuning.
	CacheTolerance  float32
	CacheMinSpacing float32

	// Photon map density estimate settings.
	IndirectMaxDistance float32
	IndirectMaxPhotons  int
	CausticMaxDistance  float32
	CausticMaxPhotons   int

	// Optional progress callback.
	Progress ProgressFunc
}

// Get the default tracer options.
func DefaultOptions() Options {
	return Options{
		Workers:             runtime.NumCPU(),
		BatchSize:           10000,
		Seed:                1,
		MaxBounces:          100,
		MinPowerRatio:       0.1,
		StoreDirectHits:     true,
		StratificationN:     16,
		StratificationM:     8,
		CacheTolerance:      0.15,
		CacheMinSpacing:     0.5,
		IndirectMaxDistance: 5,
		IndirectMaxPhotons:  200,
		CausticMaxDistance:  1,
		CausticMaxPhotons:   100,
	}
}

// Validate options.
func (opts Options) Validate() error {
	switch {
	case opts.Workers < 1:
		return ErrInvalidWorkers
	case opts.BatchSize < 1:
		return ErrInvalidBatchSize
	case opts.MaxBounces < 1:
		return ErrInvalidMaxBounces
	case opts.MinPowerRatio < 0 || opts.MinPowerRatio >= 1:
		return ErrInvalidMinPower
	case opts.StratificationN < 1 || opts.StratificationM < 1:
		return ErrInvalidStratification
	case opts.CacheTolerance <= 0 || opts.CacheMinSpacing <= 0:
		return ErrInvalidCacheSettings
	case opts.IndirectMaxDistance <= 0 || opts.IndirectMaxPhotons < 1 ||
		opts.CausticMaxDistance <= 0 || opts.CausticMaxPhotons < 1:
		return ErrInvalidEstimateSettings
	}
	return nil
}
