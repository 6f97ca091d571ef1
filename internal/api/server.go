package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sahilbaig/examparse/internal/exam"
	"github.com/sahilbaig/examparse/internal/llm"
	"github.com/sahilbaig/examparse/internal/pipeline"
)

// Pipeline runs one extraction flow per call. Satisfied by *pipeline.Runner.
type Pipeline interface {
	Descriptions(ctx context.Context, url string) ([]exam.Direction, string, error)
	Directions(ctx context.Context, url string) ([]exam.Direction, string, error)
	Questions(ctx context.Context, url string, mode pipeline.Mode) ([]exam.Question, string, error)
	Sections(ctx context.Context, url string) ([]exam.Section, string, error)
}

// StatsSource reports the backing model and its latency aggregates.
// Satisfied by *llm.Client.
type StatsSource interface {
	Model() string
	Stats() llm.StatsSnapshot
}

// Server is the HTTP API server for examparse.
type Server struct {
	router chi.Router
	runner Pipeline
	llm    StatsSource
	log    *slog.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(runner Pipeline, stats StatsSource, log *slog.Logger) *Server {
	s := &Server{
		runner: runner,
		llm:    stats,
		log:    log,
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
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", s.handleHealth)

	r.Post("/api/extract/descriptions", s.handleDescriptions)
	r.Post("/api/extract/directions", s.handleDirections)
	r.Post("/api/extract/questions", s.handleQuestions)
	r.Post("/api/extract/sections", s.handleSections)

	r.Get("/api/stats/llm", s.handleLLMStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
