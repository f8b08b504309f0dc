package suggest

import (
	"testing"
	"time"
)

func TestLLMStats_SnapshotPercentiles(t *testing.T) {
	stats := NewLLMStats(time.Hour)
	for _, ms := range []int64{500, 100, 300, 200, 400} {
		stats.Record(ms)
	}

	snap := stats.Snapshot()
	if snap.Calls != 5 {
		t.Fatalf("expected calls=5, got %d", snap.Calls)
	}
	if snap.MinMs != 100 || snap.MaxMs != 500 {
		t.Fatalf("expected min=100 max=500, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestLLMStats_CountsFailures(t *testing.T) {
	stats := NewLLMStats(time.Hour)
	stats.Record(100)
	stats.RecordFailure(50)
	stats.RecordFailure(-5)

	snap := stats.Snapshot()
	if snap.Calls != 3 || snap.Failures != 2 {
		t.Fatalf("expected 3 calls and 2 failures, got %+v", snap)
	}
	if snap.MinMs != 0 {
		t.Fatalf("expected negative duration clamped to 0, got %d", snap.MinMs)
	}
}

func TestLLMStats_ExpiresOldSamples(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stats := NewLLMStats(time.Minute)
	stats.now = func() time.Time { return now }

	stats.Record(100)
	now = now.Add(2 * time.Minute)
	if snap := stats.Snapshot(); snap.Calls != 0 {
		t.Fatalf("expected expired sample to be dropped, got %d calls", snap.Calls)
	}

	stats.Record(200)
	snap := stats.Snapshot()
	if snap.Calls != 1 || snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected a single 200ms sample, got %+v", snap)
	}
}

func TestLLMStats_Empty(t *testing.T) {
	if snap := NewLLMStats(0).Snapshot(); snap != (StatsSnapshot{}) {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}
