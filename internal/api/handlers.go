package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sahilbaig/examparse/internal/extract"
	"github.com/sahilbaig/examparse/internal/pipeline"
	"github.com/sahilbaig/examparse/internal/source"
)

// maxRequestBytes caps the JSON request body; extraction requests carry a
// URL and a mode, nothing bigger.
const maxRequestBytes = 64 * 1024

type extractRequest struct {
	URL  string `json:"url"`
	Mode string `json:"mode,omitempty"`
}

func decodeExtractRequest(w http.ResponseWriter, r *http.Request) (extractRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return req, false
	}
	if req.URL == "" {
		jsonError(w, "url is required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (s *Server) handleDescriptions(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeExtractRequest(w, r)
	if !ok {
		return
	}
	records, preview, err := s.runner.Descriptions(r.Context(), req.URL)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeRecords(w, "descriptions", records, preview)
}

func (s *Server) handleDirections(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeExtractRequest(w, r)
	if !ok {
		return
	}
	records, preview, err := s.runner.Directions(r.Context(), req.URL)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeRecords(w, "directions", records, preview)
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeExtractRequest(w, r)
	if !ok {
		return
	}
	mode := pipeline.ModeRules
	switch req.Mode {
	case "", string(pipeline.ModeRules):
	case string(pipeline.ModeModel):
		mode = pipeline.ModeModel
	default:
		jsonError(w, "mode must be \"rules\" or \"model\"", http.StatusBadRequest)
		return
	}
	records, preview, err := s.runner.Questions(r.Context(), req.URL, mode)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeRecords(w, "questions", records, preview)
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeExtractRequest(w, r)
	if !ok {
		return
	}
	records, preview, err := s.runner.Sections(r.Context(), req.URL)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeRecords(w, "sections", records, preview)
}

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.llm == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"model": s.llm.Model(),
		"stats": s.llm.Stats(),
	})
}

// writeRecords emits the success envelope. The records slice is encoded as
// [] rather than null when empty so clients can index it unconditionally.
func writeRecords[T any](w http.ResponseWriter, key string, records []T, preview string) {
	if records == nil {
		records = []T{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		key:             records,
		"chunk_preview": preview,
	})
}

// writeFailure maps pipeline errors to status codes: bad input 400,
// fragment with no question marker 404, everything else is a failed
// document acquisition 502.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, source.ErrInvalidURL):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, extract.ErrNoQuestions):
		jsonError(w, err.Error(), http.StatusNotFound)
	default:
		jsonError(w, err.Error(), http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
