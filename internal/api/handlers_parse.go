package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/dgallion1/tripgest/internal/itinerary"
)

type parseRequest struct {
	Lines []string `json:"lines"`
	Text  *string  `json:"text"`
}

// readLines accepts either a text/plain body or a JSON body carrying
// "lines" or "text".
func (s *Server) readLines(w http.ResponseWriter, r *http.Request) ([]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "text/plain" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return itinerary.ReadLines(bytes.NewReader(data))
	}

	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	switch {
	case req.Lines != nil:
		return req.Lines, nil
	case req.Text != nil:
		return itinerary.SplitLines(*req.Text), nil
	default:
		return nil, fmt.Errorf(`body must contain "lines" or "text"`)
	}
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	lines, err := s.readLines(w, r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, rep := itinerary.Parse(lines)
	s.metrics.ObserveParse("api", doc, rep)

	switch r.URL.Query().Get("format") {
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.renderer.WriteHTML(w, doc); err != nil {
			s.log.Error("render html", "error", err)
		}
		return
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := s.renderer.WriteText(w, doc); err != nil {
			s.log.Error("render text", "error", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"itinerary": doc,
		"report":    rep,
		"stats":     doc.Stats(),
	})
}

type classifiedLine struct {
	Line string        `json:"line"`
	Tag  itinerary.Tag `json:"tag"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	lines, err := s.readLines(w, r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	out := make([]classifiedLine, len(lines))
	for i, line := range lines {
		out[i] = classifiedLine{Line: line, Tag: itinerary.Classify(line)}
	}
	writeJSON(w, http.StatusOK, out)
}
