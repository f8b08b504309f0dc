package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/metrics"
	"github.com/dgallion1/tripgest/internal/suggest"
	"github.com/dgallion1/tripgest/internal/tripstore"
)

// MaxGenerateAttempts bounds calls to the generator for one job, counting
// the first.
const MaxGenerateAttempts = 3

// maxGenerateBackoff caps the wait between attempts before jitter.
const maxGenerateBackoff = 30 * time.Second

// Generator produces raw itinerary lines for a trip request.
type Generator interface {
	Generate(ctx context.Context, req suggest.TripRequest) ([]string, error)
}

// Worker processes a single generation job.
type Worker struct {
	gen     Generator
	store   tripstore.Store
	metrics *metrics.Metrics
	log     *slog.Logger
	backoff func(attempt int) time.Duration
}

func NewWorker(gen Generator, store tripstore.Store, m *metrics.Metrics, log *slog.Logger) *Worker {
	return &Worker{
		gen:     gen,
		store:   store,
		metrics: m,
		log:     log,
		backoff: GenerateBackoff,
	}
}

// Process runs generation, parsing and storage for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "trip_id", job.TripID, "user_id", job.UserID)

	// Phase 1: Generate
	job.SetStatus(StatusGenerating, "generating")
	lines, err := w.generate(ctx, job, log)
	if err != nil {
		log.Error("generation failed", "error", err)
		w.fail(job, "generating", fmt.Sprintf("generate: %s", err))
		return
	}
	log.Info("generated itinerary", "lines", len(lines))

	// Phase 2: Parse
	job.SetStatus(StatusParsing, "parsing")
	doc, rep := itinerary.Parse(lines)
	job.SetResult(doc.Stats(), rep)
	w.metrics.ObserveParse("job", doc, rep)
	if rep.Degraded() {
		log.Warn("generated itinerary needed placeholder structure",
			"synthetic_days", rep.SyntheticDays,
			"orphan_sections", rep.OrphanSections,
		)
	}

	// Phase 3: Store
	job.SetStatus(StatusStoring, "storing")
	req := job.Request
	trip := &tripstore.Trip{
		ID:          job.TripID,
		UserID:      job.UserID,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Preferences: req.Preferences,
		Origin:      tripstore.OriginGenerated,
		Suggestions: lines,
		Itinerary:   doc,
		ContentHash: LinesHash(lines),
		CreatedAt:   time.Now().UTC(),
	}
	if err := w.store.Save(ctx, trip); err != nil {
		log.Error("store failed", "error", err)
		w.fail(job, "storing", fmt.Sprintf("store: %s", err))
		return
	}

	job.SetStatus(StatusCompleted, "done")
	w.metrics.ObserveJob(string(StatusCompleted))
	log.Info("trip stored", "days", len(doc))
}

// generate calls the generator, retrying transient failures with backoff.
func (w *Worker) generate(ctx context.Context, job *Job, log *slog.Logger) ([]string, error) {
	var lines []string
	var lastErr error
	for attempt := range MaxGenerateAttempts {
		job.IncrAttempts()
		start := time.Now()
		lines, lastErr = w.gen.Generate(ctx, job.Request)
		w.metrics.ObserveLLM(time.Since(start), lastErr)
		if lastErr == nil || !TransientGenerateError(lastErr) {
			break
		}
		if attempt == MaxGenerateAttempts-1 {
			break
		}
		log.Warn("retryable generation error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(w.backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return lines, lastErr
}

// TransientGenerateError reports whether a generation failure came from a
// rate limit or upstream outage of the model API. Malformed requests and
// auth failures are not retried.
func TransientGenerateError(err error) bool {
	var retryErr *suggest.RetryableError
	return errors.As(err, &retryErr)
}

// GenerateBackoff is the wait before generation attempt n+1: 1s, 2s, 4s...
// capped at maxGenerateBackoff, plus up to half again in jitter.
func GenerateBackoff(attempt int) time.Duration {
	base := maxGenerateBackoff
	if attempt < 5 {
		base = min(time.Duration(1<<uint(attempt))*time.Second, maxGenerateBackoff)
	}
	return base + time.Duration(rand.Int64N(int64(base)/2))
}

func (w *Worker) fail(job *Job, phase, msg string) {
	job.AddError(msg)
	job.SetStatus(StatusFailed, phase)
	w.metrics.ObserveJob(string(StatusFailed))
}
