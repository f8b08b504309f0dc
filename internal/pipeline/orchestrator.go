package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/tripgest/internal/config"
	"github.com/dgallion1/tripgest/internal/metrics"
	"github.com/dgallion1/tripgest/internal/tripstore"
)

// Orchestrator manages the trip generation pipeline.
type Orchestrator struct {
	jobs    *JobStore
	queue   chan *Job
	gen     Generator
	store   tripstore.Store
	metrics *metrics.Metrics
	log     *slog.Logger
	cfg     config.Config

	cleanupEvery time.Duration
	backoff      func(attempt int) time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, gen Generator, store tripstore.Store, m *metrics.Metrics, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:         NewJobStore(cfg.JobTTL),
		queue:        make(chan *Job, cfg.MaxQueueSize),
		gen:          gen,
		store:        store,
		metrics:      m,
		log:          log,
		cfg:          cfg,
		cleanupEvery: 5 * time.Minute,
		backoff:      GenerateBackoff,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.gen, o.store, o.metrics, o.log)
			w.backoff = o.backoff
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(o.cleanupEvery)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				if n := o.jobs.Cleanup(); n > 0 {
					o.log.Debug("evicted expired jobs", "count", n)
				}
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		o.metrics.ObserveJob(string(StatusFailed))
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
