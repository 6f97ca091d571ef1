// Package pipeline wires the extraction flow for one request: acquire page
// text, bound it to a fragment, run the selected extractor, and hand back
// validated records with a diagnostic preview. Every call is synchronous and
// request-scoped; there is no shared mutable state and no retry.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/sahilbaig/examparse/internal/chunker"
	"github.com/sahilbaig/examparse/internal/config"
	"github.com/sahilbaig/examparse/internal/exam"
	"github.com/sahilbaig/examparse/internal/extract"
	"github.com/sahilbaig/examparse/internal/source"
)

// Mode picks the extractor implementation for paths where the caller may
// choose. Selection is by intent, never by sniffing the text.
type Mode string

const (
	ModeModel Mode = "model"
	ModeRules Mode = "rules"
)

// Directions front-matter usually announces itself with this token; the
// fragment window anchors on it when present.
const directionsMarker = "DIRECTIONS"

// Runner executes one extraction flow per call.
type Runner struct {
	fetcher *source.Fetcher
	rules   extract.RuleExtractor
	model   *extract.ModelExtractor
	cfg     config.Config
	log     *slog.Logger
}

func NewRunner(fetcher *source.Fetcher, model *extract.ModelExtractor, cfg config.Config, log *slog.Logger) *Runner {
	return &Runner{
		fetcher: fetcher,
		model:   model,
		cfg:     cfg,
		log:     log,
	}
}

// boundedText fetches the document and concatenates its front pages up to
// the configured ceilings.
func (r *Runner) boundedText(ctx context.Context, url string) (string, error) {
	doc, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	text := chunker.BoundPages(doc.Pages, r.cfg.MaxPages, r.cfg.ChunkSize)
	r.log.Info("document acquired",
		"title", doc.Title,
		"pages", len(doc.Pages),
		"bounded_chars", len(text),
	)
	return text, nil
}

// Descriptions runs the directions task over the front-matter fragment and
// normalizes the single-array response shape.
func (r *Runner) Descriptions(ctx context.Context, url string) ([]exam.Direction, string, error) {
	text, err := r.boundedText(ctx, url)
	if err != nil {
		return nil, "", err
	}
	fragment := chunker.WindowAt(text, 0, r.cfg.ChunkSize)
	recs := r.model.Directions(ctx, fragment)
	return recs, r.preview(fragment), nil
}

// Directions anchors the fragment at the directions marker and scans the
// response for independent objects, so one malformed record cannot sink the
// batch.
func (r *Runner) Directions(ctx context.Context, url string) ([]exam.Direction, string, error) {
	text, err := r.boundedText(ctx, url)
	if err != nil {
		return nil, "", err
	}
	fragment := chunker.Window(text, directionsMarker, r.cfg.ChunkSize)
	recs := r.model.ScatteredDirections(ctx, fragment)
	return recs, r.preview(fragment), nil
}

// Questions windows the fragment at the first numeric question marker and
// extracts questions with the implementation the caller picked. A text with
// no marker is a distinct not-found outcome, not an empty success.
func (r *Runner) Questions(ctx context.Context, url string, mode Mode) ([]exam.Question, string, error) {
	text, err := r.boundedText(ctx, url)
	if err != nil {
		return nil, "", err
	}
	offset, found := extract.FirstQuestionOffset(text)
	if !found {
		return nil, r.preview(text), extract.ErrNoQuestions
	}
	fragment := chunker.WindowAt(text, offset, r.cfg.ChunkSize)

	var recs []exam.Question
	if mode == ModeRules {
		recs = r.rules.Questions(ctx, fragment)
	} else {
		recs = r.model.Questions(ctx, fragment)
	}
	return recs, r.preview(fragment), nil
}

// Sections partitions the fragment on section headers with the rule-based
// grammar.
func (r *Runner) Sections(ctx context.Context, url string) ([]exam.Section, string, error) {
	text, err := r.boundedText(ctx, url)
	if err != nil {
		return nil, "", err
	}
	fragment := chunker.WindowAt(text, 0, r.cfg.ChunkSize)
	return r.rules.Sections(ctx, fragment), r.preview(fragment), nil
}

// preview returns the first PreviewLen runes of the analyzed fragment for
// response diagnostics.
func (r *Runner) preview(fragment string) string {
	p := chunker.WindowAt(fragment, 0, r.cfg.PreviewLen)
	if len(p) < len(fragment) {
		p += "..."
	}
	return p
}
