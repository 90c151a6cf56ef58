package tracer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/achilleasa/photon-gi/icache"
	"github.com/achilleasa/photon-gi/log"
	"github.com/achilleasa/photon-gi/photon"
	"github.com/achilleasa/photon-gi/scene"
)

// PhotonLight owns the global and caustic photon maps of a single light
// together with the irradiance cache seeded from them.
//
// TraceFromLight must complete before the illumination queries are used.
// Queries are safe for concurrent use.
type PhotonLight struct {
	logger log.Logger

	sc    scene.Intersector
	light Light
	opts  Options

	cache *icache.Cache

	// Samplers for illumination queries.
	samplers   sync.Pool
	samplerSeq int64

	sync.RWMutex
	globalMap  *photon.BalancedMap
	causticMap *photon.BalancedMap
	stats      Stats
}

// Create a photon light for the given scene and emitter.
func NewPhotonLight(sc scene.Intersector, light Light, opts Options) (*PhotonLight, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if light == nil {
		return nil, ErrLightNotDefined
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	pl := &PhotonLight{
		logger: log.New("photon tracer"),
		sc:     sc,
		light:  light,
		opts:   opts,
		cache:  icache.New(opts.CacheTolerance, opts.CacheMinSpacing),
	}
	pl.samplers.New = func() interface{} {
		seq := atomic.AddInt64(&pl.samplerSeq, 1)
		return NewRandomSampler(pl.opts.Seed ^ seq*seedStride)
	}

	return pl, nil
}

// Emit numGlobal photons into the global map and trace numCaustic caustic
// paths into the caustic map. Both maps are normalized by the number of
// emitted photons and balanced. Any previous maps and cached irradiance
// samples are discarded.
func (pl *PhotonLight) TraceFromLight(numGlobal, numCaustic int) error {
	if numGlobal < 0 || numCaustic < 0 {
		return ErrInvalidPhotonCount
	}

	workers := make([]*worker, pl.opts.Workers)
	for id := range workers {
		workers[id] = newWorker(id, pl.sc, pl.light, &pl.opts)
		workers[id].start()
	}
	defer func() {
		for _, w := range workers {
			w.close()
		}
	}()

	// Global photons may be stored several times along their walk
	globalMap, globalStats := pl.runPass(GlobalPass, numGlobal, 4*numGlobal, workers)
	causticMap, causticStats := pl.runPass(CausticPass, numCaustic, numCaustic, workers)

	pl.Lock()
	pl.globalMap = globalMap
	pl.causticMap = causticMap
	pl.stats.Global = globalStats
	pl.stats.Caustic = causticStats
	pl.Unlock()

	pl.cache.Reset()
	return nil
}

func (pl *PhotonLight) runPass(pass Pass, target, capacity int, workers []*worker) (*photon.BalancedMap, PassStats) {
	start := time.Now()
	stats := PassStats{Pass: pass, Requested: target}

	for _, w := range workers {
		w.reset(pass, capacity/len(workers)+1)
	}

	scheduler := PerfectScheduler()
	doneChan := make(chan batchResult, len(workers))
	last := make([]BatchStat, len(workers))
	lastPercent := -1
	for done := 0; done < target; {
		batch := pl.opts.BatchSize
		if batch > target-done {
			batch = target - done
		}

		pending := 0
		for idx, photons := range scheduler.Schedule(batch, last) {
			last[idx] = BatchStat{}
			if photons == 0 {
				continue
			}
			workers[idx].enqueue(batchRequest{pass: pass, photons: photons, doneChan: doneChan})
			pending++
		}
		for ; pending > 0; pending-- {
			res := <-doneChan
			last[res.worker] = res.stat
		}

		done += batch
		if percent := done * 100 / target; pl.opts.Progress != nil && percent != lastPercent {
			pl.opts.Progress(pass, percent)
			lastPercent = percent
		}
	}

	// Merge worker stores in worker order
	stored := 0
	for _, w := range workers {
		stats.add(w.stats)
		stored += w.store.Len()
	}
	store := photon.NewStore(stored)
	store.SetMaxPhotons(pl.opts.MaxStoredPhotons)
	for _, w := range workers {
		store.Merge(w.store)
		w.store = nil
	}
	if stats.Emitted > 0 {
		store.RescalePower(1 / float32(stats.Emitted))
	}
	stats.Stored = store.Len()
	stats.Dropped = store.Dropped()

	m := photon.Balance(store)
	stats.Duration = time.Since(start)

	pl.logger.Noticef(
		"%s pass: emitted %d photons (%d attempts), stored %d in %d ms",
		pass, stats.Emitted, stats.Attempts, stats.Stored, stats.Duration.Nanoseconds()/1e6,
	)
	return m, stats
}

// Replace the photon maps with previously built ones, e.g. maps restored
// with photon.ReadArchive. Cached irradiance samples are discarded.
func (pl *PhotonLight) LoadMaps(globalMap, causticMap *photon.BalancedMap) {
	pl.Lock()
	pl.globalMap = globalMap
	pl.causticMap = causticMap
	pl.stats = Stats{
		Global:  PassStats{Pass: GlobalPass},
		Caustic: PassStats{Pass: CausticPass},
	}
	if globalMap != nil {
		pl.stats.Global.Stored = globalMap.Len()
	}
	if causticMap != nil {
		pl.stats.Caustic.Stored = causticMap.Len()
	}
	pl.Unlock()

	pl.cache.Reset()
}

// Get the balanced global photon map. Returns nil before TraceFromLight.
func (pl *PhotonLight) GlobalMap() *photon.BalancedMap {
	pl.RLock()
	defer pl.RUnlock()
	return pl.globalMap
}

// Get the balanced caustic photon map. Returns nil before TraceFromLight.
func (pl *PhotonLight) CausticMap() *photon.BalancedMap {
	pl.RLock()
	defer pl.RUnlock()
	return pl.causticMap
}

// Get the irradiance cache.
func (pl *PhotonLight) Cache() *icache.Cache {
	return pl.cache
}

// Get tracing statistics.
func (pl *PhotonLight) Stats() Stats {
	pl.RLock()
	stats := pl.stats
	pl.RUnlock()

	stats.CacheSamples = pl.cache.Len()
	return stats
}
