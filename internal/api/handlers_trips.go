package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/pipeline"
	"github.com/dgallion1/tripgest/internal/source"
	"github.com/dgallion1/tripgest/internal/suggest"
	"github.com/dgallion1/tripgest/internal/tripstore"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/net/html"
)

type createTripRequest struct {
	UserID string `json:"user_id"`
	suggest.TripRequest
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil {
		jsonError(w, "itinerary generation unavailable", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var body createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if body.UserID == "" {
		jsonError(w, "user_id is required", http.StatusBadRequest)
		return
	}
	req := body.TripRequest.Normalize()
	if err := req.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := pipeline.NewJob(body.UserID, req)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"trip_id":  job.TripID,
		"status":   pipeline.StatusQueued,
		"days":     req.Days(),
		"poll_url": fmt.Sprintf("/api/trips/jobs/%s", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// handleImportTrip stores an itinerary exported elsewhere. The upload is
// loaded into lines, built and saved synchronously. A file whose lines
// match a trip the user already has returns that trip unless force=true.
func (s *Server) handleImportTrip(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	userID := r.FormValue("user_id")
	if userID == "" {
		jsonError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !source.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	loader, err := source.ForFile(filename, source.Options{PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext})
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	lines, err := loader.Load(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "could not read itinerary: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	ctx := r.Context()
	hash := pipeline.LinesHash(lines)
	if r.FormValue("force") != "true" {
		existing, err := s.store.FindByHash(ctx, userID, hash)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, map[string]any{"trip": existing, "duplicate": true})
			return
		case !errors.Is(err, tripstore.ErrNotFound):
			s.log.Warn("dedup check failed, proceeding", "user_id", userID, "error", err)
		}
	}

	doc, rep := itinerary.Parse(lines)
	s.metrics.ObserveParse("import", doc, rep)

	destination := strings.TrimSpace(r.FormValue("destination"))
	if destination == "" {
		destination = strings.TrimSuffix(filename, filepath.Ext(filename))
	}
	trip := &tripstore.Trip{
		ID:          uuid.NewString(),
		UserID:      userID,
		Destination: destination,
		StartDate:   strings.TrimSpace(r.FormValue("start_date")),
		EndDate:     strings.TrimSpace(r.FormValue("end_date")),
		Preferences: strings.TrimSpace(r.FormValue("preferences")),
		Origin:      tripstore.OriginImported,
		Suggestions: lines,
		Itinerary:   doc,
		ContentHash: hash,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Save(ctx, trip); err != nil {
		s.log.Error("save imported trip", "user_id", userID, "error", err)
		jsonError(w, "failed to save trip", http.StatusInternalServerError)
		return
	}

	s.log.Info("imported trip", "trip_id", trip.ID, "user_id", userID, "filename", filename, "days", len(doc))
	writeJSON(w, http.StatusCreated, map[string]any{"trip": trip, "report": rep})
}

type tripSummary struct {
	ID          string           `json:"id"`
	Destination string           `json:"destination"`
	StartDate   string           `json:"start_date,omitempty"`
	EndDate     string           `json:"end_date,omitempty"`
	Origin      tripstore.Origin `json:"origin"`
	Stats       itinerary.Stats  `json:"stats"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonError(w, "user_id query parameter is required", http.StatusBadRequest)
		return
	}

	trips, err := s.store.ListByUser(r.Context(), userID)
	if err != nil {
		jsonError(w, "failed to list trips: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]tripSummary, 0, len(trips))
	for _, t := range trips {
		out = append(out, tripSummary{
			ID:          t.ID,
			Destination: t.Destination,
			StartDate:   t.StartDate,
			EndDate:     t.EndDate,
			Origin:      t.Origin,
			Stats:       t.Itinerary.Stats(),
			CreatedAt:   t.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"trips": out})
}

func (s *Server) loadTrip(w http.ResponseWriter, r *http.Request) (*tripstore.Trip, bool) {
	trip, err := s.store.Get(r.Context(), chi.URLParam(r, "tripID"))
	if errors.Is(err, tripstore.ErrNotFound) {
		jsonError(w, "trip not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		jsonError(w, "failed to load trip: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return trip, true
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.loadTrip(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	err := s.store.Delete(r.Context(), tripID)
	if errors.Is(err, tripstore.ErrNotFound) {
		jsonError(w, "trip not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to delete trip: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.log.Info("deleted trip", "trip_id", tripID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleViewTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.loadTrip(w, r)
	if !ok {
		return
	}

	var body bytes.Buffer
	if err := s.renderer.WriteHTML(&body, trip.Itinerary); err != nil {
		jsonError(w, "failed to render trip", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head><body>\n<h1>%s</h1>\n",
		html.EscapeString(trip.Destination), html.EscapeString(trip.Destination))
	body.WriteTo(w)
	io.WriteString(w, "\n</body></html>\n")
}
