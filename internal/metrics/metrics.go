// Package metrics exposes Prometheus collectors for parsing and trip generation.
package metrics

import (
	"net/http"
	"time"

	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector on a private registry so tests and
// multiple servers in one process do not collide.
type Metrics struct {
	registry *prometheus.Registry

	parses        *prometheus.CounterVec
	days          prometheus.Histogram
	syntheticDays prometheus.Counter
	orphanLines   prometheus.Counter
	orphanGroups  prometheus.Counter
	jobs          *prometheus.CounterVec
	llmLatency    *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		parses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripgest_parses_total",
			Help: "Itineraries built, by entry point.",
		}, []string{"source"}),
		days: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tripgest_itinerary_days",
			Help:    "Days per built itinerary.",
			Buckets: []float64{0, 1, 2, 3, 5, 7, 10, 14, 21, 30},
		}),
		syntheticDays: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripgest_synthetic_days_total",
			Help: "Days synthesized for content that appeared before any day header.",
		}),
		orphanLines: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripgest_orphan_lines_total",
			Help: "Content lines seen while no section was open.",
		}),
		orphanGroups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripgest_orphan_sections_total",
			Help: "Notes sections created to hold orphaned lines.",
		}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripgest_jobs_total",
			Help: "Generation jobs by terminal status.",
		}, []string{"status"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tripgest_llm_request_seconds",
			Help:    "Latency of itinerary generation calls.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 9),
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.parses, m.days, m.syntheticDays, m.orphanLines, m.orphanGroups, m.jobs, m.llmLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveParse records one build of doc from the given entry point
// ("api", "import", "job", ...).
func (m *Metrics) ObserveParse(source string, doc itinerary.Document, rep itinerary.Report) {
	if m == nil {
		return
	}
	m.parses.WithLabelValues(source).Inc()
	m.days.Observe(float64(len(doc)))
	m.syntheticDays.Add(float64(rep.SyntheticDays))
	m.orphanLines.Add(float64(rep.OrphanLines))
	m.orphanGroups.Add(float64(rep.OrphanSections))
}

// ObserveJob records a job reaching a terminal status.
func (m *Metrics) ObserveJob(status string) {
	if m == nil {
		return
	}
	m.jobs.WithLabelValues(status).Inc()
}

// ObserveLLM records a generation call's latency.
func (m *Metrics) ObserveLLM(d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.llmLatency.WithLabelValues(outcome).Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
