package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/tripgest/internal/config"
	"github.com/dgallion1/tripgest/internal/metrics"
	"github.com/dgallion1/tripgest/internal/pipeline"
	"github.com/dgallion1/tripgest/internal/render"
	"github.com/dgallion1/tripgest/internal/suggest"
	"github.com/dgallion1/tripgest/internal/tripstore"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for tripgest.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	store        tripstore.Store
	llm          *suggest.Client
	metrics      *metrics.Metrics
	renderer     *render.Renderer
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. orch and llm may be nil,
// in which case generation endpoints answer 503.
func NewServer(orch *pipeline.Orchestrator, store tripstore.Store, llm *suggest.Client, m *metrics.Metrics, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		store:        store,
		llm:          llm,
		metrics:      m,
		renderer:     render.New(),
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/itineraries/parse", s.handleParse)
		r.Post("/api/itineraries/classify", s.handleClassify)

		r.Post("/api/trips", s.handleCreateTrip)
		r.Get("/api/trips", s.handleListTrips)
		r.Post("/api/trips/import", s.handleImportTrip)
		r.Get("/api/trips/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/trips/{tripID}", s.handleGetTrip)
		r.Delete("/api/trips/{tripID}", s.handleDeleteTrip)
		r.Get("/api/trips/{tripID}/view", s.handleViewTrip)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
