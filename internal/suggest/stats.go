package suggest

import (
	"slices"
	"sync"
	"time"
)

type callSample struct {
	at         time.Time
	durationMs int64
	failed     bool
}

// StatsSnapshot aggregates the generation calls inside the window.
type StatsSnapshot struct {
	Calls    int     `json:"calls"`
	Failures int     `json:"failures"`
	MinMs    int64   `json:"min_ms"`
	MaxMs    int64   `json:"max_ms"`
	AvgMs    float64 `json:"avg_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P95Ms    float64 `json:"p95_ms"`
	P99Ms    float64 `json:"p99_ms"`
}

// LLMStats keeps a rolling window of generation call latencies.
type LLMStats struct {
	mu      sync.Mutex
	samples []callSample
	window  time.Duration
	now     func() time.Time
}

func NewLLMStats(window time.Duration) *LLMStats {
	if window <= 0 {
		window = time.Hour
	}
	return &LLMStats{
		samples: make([]callSample, 0, 64),
		window:  window,
		now:     time.Now,
	}
}

// Record adds a completed call. Negative durations are stored as zero.
func (s *LLMStats) Record(durationMs int64) {
	s.add(durationMs, false)
}

// RecordFailure adds a call that did not produce an itinerary.
func (s *LLMStats) RecordFailure(durationMs int64) {
	s.add(durationMs, true)
}

func (s *LLMStats) add(durationMs int64, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.expireLocked(now)
	s.samples = append(s.samples, callSample{at: now, durationMs: max(durationMs, 0), failed: failed})
}

func (s *LLMStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked(s.now())
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	snap := StatsSnapshot{Calls: len(s.samples)}
	durations := make([]int64, len(s.samples))
	var total int64
	for i, sm := range s.samples {
		durations[i] = sm.durationMs
		total += sm.durationMs
		if sm.failed {
			snap.Failures++
		}
	}
	slices.Sort(durations)

	snap.MinMs = durations[0]
	snap.MaxMs = durations[len(durations)-1]
	snap.AvgMs = float64(total) / float64(len(durations))
	snap.P50Ms = interpolate(durations, 0.50)
	snap.P95Ms = interpolate(durations, 0.95)
	snap.P99Ms = interpolate(durations, 0.99)
	return snap
}

// expireLocked drops samples older than the window. Samples are appended in
// time order, so the expired ones form a prefix.
func (s *LLMStats) expireLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	i := 0
	for i < len(s.samples) && s.samples[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.samples = append(s.samples[:0], s.samples[i:]...)
	}
}

// interpolate returns the q-quantile (0..1) of sorted values using linear
// interpolation between closest ranks.
func interpolate(sorted []int64, q float64) float64 {
	if len(sorted) == 1 || q <= 0 {
		return float64(sorted[0])
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return float64(sorted[len(sorted)-1])
	}
	frac := pos - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[lo+1]-sorted[lo])
}
