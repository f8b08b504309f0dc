package pipeline

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/suggest"
	"github.com/google/uuid"
)

// JobStatus represents the state of a trip generation job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusGenerating JobStatus = "generating"
	StatusParsing    JobStatus = "parsing"
	StatusStoring    JobStatus = "storing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Terminal reports whether no further transitions will happen.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job tracks the generation of a single trip.
type Job struct {
	mu sync.Mutex

	ID     string
	TripID string
	UserID string

	Request suggest.TripRequest

	Status   JobStatus
	Phase    string
	Attempts int

	CreatedAt time.Time
	UpdatedAt time.Time

	report itinerary.Report
	stats  itinerary.Stats
	errors []string
}

// NewJob returns a queued job with fresh job and trip ids.
func NewJob(userID string, req suggest.TripRequest) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		TripID:    uuid.NewString(),
		UserID:    userID,
		Request:   req,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes finished jobs idle for longer than the TTL. Jobs still
// in flight are kept regardless of age.
func (s *JobStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	removed := 0
	for id, job := range s.jobs {
		job.mu.Lock()
		expired := job.Status.Terminal() && now.Sub(job.UpdatedAt) > s.ttl
		job.mu.Unlock()
		if expired {
			delete(s.jobs, id)
			removed++
		}
	}
	return removed
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// IncrAttempts counts one generation call.
func (j *Job) IncrAttempts() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Attempts++
	j.UpdatedAt = time.Now()
}

// SetResult records what the parse of the generated lines produced.
func (j *Job) SetResult(stats itinerary.Stats, rep itinerary.Report) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.stats = stats
	j.report = rep
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string           `json:"job_id"`
	TripID      string           `json:"trip_id"`
	UserID      string           `json:"user_id"`
	Destination string           `json:"destination"`
	Status      JobStatus        `json:"status"`
	Phase       string           `json:"phase"`
	Attempts    int              `json:"attempts"`
	Stats       itinerary.Stats  `json:"stats"`
	Report      itinerary.Report `json:"report"`
	Errors      []string         `json:"errors"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.errors...)
	return JobSnapshot{
		ID:          j.ID,
		TripID:      j.TripID,
		UserID:      j.UserID,
		Destination: j.Request.Destination,
		Status:      j.Status,
		Phase:       j.Phase,
		Attempts:    j.Attempts,
		Stats:       j.stats,
		Report:      j.report,
		Errors:      errs,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

// LinesHash hashes itinerary lines as they would appear in a text file.
func LinesHash(lines []string) string {
	return ContentHashHex([]byte(strings.Join(lines, "\n")))
}
