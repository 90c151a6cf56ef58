package tracer

import "errors"

var (
	ErrSceneNotDefined         = errors.New("tracer: no scene defined")
	ErrLightNotDefined         = errors.New("tracer: no light defined")
	ErrInvalidPhotonCount      = errors.New("tracer: photon counts must not be negative")
	ErrInvalidWorkers          = errors.New("tracer: at least one worker is required")
	ErrInvalidBatchSize        = errors.New("tracer: batch size must be positive")
	ErrInvalidMaxBounces       = errors.New("tracer: max bounces must be positive")
	ErrInvalidMinPower         = errors.New("tracer: min power ratio must be in [0, 1)")
	ErrInvalidStratification   = errors.New("tracer: stratification cells must be positive")
	ErrInvalidCacheSettings    = errors.New("tracer: cache tolerance and spacing must be positive")
	ErrInvalidEstimateSettings = errors.New("tracer: estimate radius and photon count must be positive")
)
