package tracer

import (
	"fmt"
	"sync"
	"time"

	"github.com/achilleasa/photon-gi/log"
	"github.com/achilleasa/photon-gi/photon"
	"github.com/achilleasa/photon-gi/scene"
)

const (
	// Each worker sampler is seeded with Seed + id*seedStride.
	seedStride = 7919

	// A worker gives up on a batch after emitting this many times the
	// number of photons it was asked for.
	maxGlobalAttemptFactor  = 8
	maxCausticAttemptFactor = 100
)

// A unit of work that is processed by a worker.
type batchRequest struct {
	pass    Pass
	photons int

	// A channel to signal on batch completion.
	doneChan chan<- batchResult
}

type batchResult struct {
	worker int
	stat   BatchStat
}

// A worker traces photons on its own goroutine into a private photon store.
type worker struct {
	id     int
	logger log.Logger

	sc      scene.Intersector
	light   Light
	opts    *Options
	sampler Sampler

	// Photons and statistics for the current pass.
	store *photon.Store
	stats PassStats

	reqChan   chan batchRequest
	closeChan chan struct{}
	wg        sync.WaitGroup
}

func newWorker(id int, sc scene.Intersector, light Light, opts *Options) *worker {
	return &worker{
		id:      id,
		logger:  log.New(fmt.Sprintf("photon worker %d", id)),
		sc:      sc,
		light:   light,
		opts:    opts,
		sampler: NewRandomSampler(opts.Seed + int64(id)*seedStride),
		reqChan: make(chan batchRequest, 1),
	}
}

// Prepare the worker for a new pass. Must not be called while a batch is
// being processed.
func (w *worker) reset(pass Pass, capacity int) {
	w.store = photon.NewStore(capacity)
	w.store.SetMaxPhotons(w.opts.MaxStoredPhotons)
	w.stats = PassStats{Pass: pass}
}

func (w *worker) enqueue(req batchRequest) {
	w.reqChan <- req
}

// Spawn a go-routine to process batch requests.
func (w *worker) start() {
	// Worker already running
	if w.closeChan != nil {
		return
	}
	w.closeChan = make(chan struct{})

	readyChan := make(chan struct{})
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		close(readyChan)
		for {
			select {
			case req := <-w.reqChan:
				req.doneChan <- batchResult{worker: w.id, stat: w.process(req)}
			case <-w.closeChan:
				return
			}
		}
	}()

	// Wait for go-routine to start
	<-readyChan
}

// Stop the worker go-routine.
func (w *worker) close() {
	if w.closeChan == nil {
		return
	}
	close(w.closeChan)
	w.wg.Wait()
	w.closeChan = nil
}

func (w *worker) process(req batchRequest) BatchStat {
	start := time.Now()

	switch req.pass {
	case GlobalPass:
		emitted, attempts := 0, 0
		for maxAttempts := req.photons * maxGlobalAttemptFactor; emitted < req.photons && attempts < maxAttempts; {
			attempts++
			if w.traceGlobalPhoton() {
				emitted++
			}
		}
		if emitted < req.photons {
			w.logger.Warningf("only %d of %d photons hit the scene after %d emission attempts", emitted, req.photons, attempts)
		}
		w.stats.Emitted += emitted
		w.stats.Completed += emitted
		w.stats.Attempts += attempts
	case CausticPass:
		completed, attempts := 0, 0
		for maxAttempts := req.photons * maxCausticAttemptFactor; completed < req.photons && attempts < maxAttempts; {
			attempts++
			if w.traceCausticPhoton() {
				completed++
			}
		}
		if completed < req.photons {
			w.logger.Warningf("only %d of %d caustic paths completed after %d emission attempts", completed, req.photons, attempts)
		}
		w.stats.Emitted += attempts
		w.stats.Completed += completed
		w.stats.Attempts += attempts
	}

	return BatchStat{Photons: req.photons, Time: time.Since(start)}
}
