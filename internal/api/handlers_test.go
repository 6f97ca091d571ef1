package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sahilbaig/examparse/internal/exam"
	"github.com/sahilbaig/examparse/internal/extract"
	"github.com/sahilbaig/examparse/internal/llm"
	"github.com/sahilbaig/examparse/internal/pipeline"
	"github.com/sahilbaig/examparse/internal/source"
)

type stubPipeline struct {
	directions []exam.Direction
	questions  []exam.Question
	sections   []exam.Section
	preview    string
	err        error

	lastURL  string
	lastMode pipeline.Mode
}

func (p *stubPipeline) Descriptions(ctx context.Context, url string) ([]exam.Direction, string, error) {
	p.lastURL = url
	return p.directions, p.preview, p.err
}

func (p *stubPipeline) Directions(ctx context.Context, url string) ([]exam.Direction, string, error) {
	p.lastURL = url
	return p.directions, p.preview, p.err
}

func (p *stubPipeline) Questions(ctx context.Context, url string, mode pipeline.Mode) ([]exam.Question, string, error) {
	p.lastURL = url
	p.lastMode = mode
	return p.questions, p.preview, p.err
}

func (p *stubPipeline) Sections(ctx context.Context, url string) ([]exam.Section, string, error) {
	p.lastURL = url
	return p.sections, p.preview, p.err
}

type stubStats struct {
	snapshot llm.StatsSnapshot
}

func (s *stubStats) Model() string            { return "test-model" }
func (s *stubStats) Stats() llm.StatsSnapshot { return s.snapshot }

func newTestServer(p Pipeline) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(p, &stubStats{}, log)
}

func post(t *testing.T, srv *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return got
}

func TestExtract_MissingURL(t *testing.T) {
	srv := newTestServer(&stubPipeline{})
	for _, path := range []string{
		"/api/extract/descriptions",
		"/api/extract/directions",
		"/api/extract/questions",
		"/api/extract/sections",
	} {
		t.Run(path, func(t *testing.T) {
			rec := post(t, srv, path, `{}`)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			got := decodeBody(t, rec)
			if msg, _ := got["error"].(string); msg == "" {
				t.Error("expected error message in body")
			}
		})
	}
}

func TestExtract_MalformedBody(t *testing.T) {
	srv := newTestServer(&stubPipeline{})
	rec := post(t, srv, "/api/extract/sections", `{"url": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestQuestions_InvalidMode(t *testing.T) {
	p := &stubPipeline{}
	srv := newTestServer(p)
	rec := post(t, srv, "/api/extract/questions", `{"url":"http://x/doc","mode":"guess"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if p.lastURL != "" {
		t.Error("pipeline must not run on an invalid mode")
	}
}

func TestQuestions_ModeSelection(t *testing.T) {
	tests := []struct {
		name string
		body string
		want pipeline.Mode
	}{
		{"default is rules", `{"url":"http://x/doc"}`, pipeline.ModeRules},
		{"explicit rules", `{"url":"http://x/doc","mode":"rules"}`, pipeline.ModeRules},
		{"explicit model", `{"url":"http://x/doc","mode":"model"}`, pipeline.ModeModel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubPipeline{}
			srv := newTestServer(p)
			rec := post(t, srv, "/api/extract/questions", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if p.lastMode != tt.want {
				t.Errorf("expected mode %q, got %q", tt.want, p.lastMode)
			}
		})
	}
}

func TestExtract_SuccessEnvelope(t *testing.T) {
	p := &stubPipeline{
		directions: []exam.Direction{
			{Type: exam.DirectionType, From: 1, To: 5, Text: "Fill each blank."},
		},
		preview: "first 200 chars...",
	}
	srv := newTestServer(p)
	rec := post(t, srv, "/api/extract/directions", `{"url":"http://x/doc"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	got := decodeBody(t, rec)
	if got["success"] != true {
		t.Error("expected success true")
	}
	if got["chunk_preview"] != "first 200 chars..." {
		t.Errorf("unexpected preview: %v", got["chunk_preview"])
	}
	records, ok := got["directions"].([]any)
	if !ok || len(records) != 1 {
		t.Fatalf("expected 1 direction record, got %v", got["directions"])
	}
	if p.lastURL != "http://x/doc" {
		t.Errorf("expected url forwarded, got %q", p.lastURL)
	}
}

func TestExtract_EmptyRecordsEncodeAsArray(t *testing.T) {
	srv := newTestServer(&stubPipeline{preview: "p"})
	rec := post(t, srv, "/api/extract/descriptions", `{"url":"http://x/doc"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"descriptions":[]`) {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}

func TestExtract_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid url", source.ErrInvalidURL, http.StatusBadRequest},
		{"no questions", extract.ErrNoQuestions, http.StatusNotFound},
		{"acquisition failure", io.ErrUnexpectedEOF, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&stubPipeline{err: tt.err})
			rec := post(t, srv, "/api/extract/questions", `{"url":"http://x/doc"}`)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
			got := decodeBody(t, rec)
			if got["success"] != nil {
				t.Error("failure body must not carry a success flag")
			}
		})
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubPipeline{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected health body: %s", rec.Body.String())
	}
}

func TestLLMStats(t *testing.T) {
	srv := newTestServer(&stubPipeline{})
	req := httptest.NewRequest(http.MethodGet, "/api/stats/llm", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	got := decodeBody(t, rec)
	if got["model"] != "test-model" {
		t.Errorf("expected model name, got %v", got["model"])
	}
	if _, ok := got["stats"].(map[string]any); !ok {
		t.Errorf("expected stats object, got %v", got["stats"])
	}
}
