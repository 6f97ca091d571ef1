package extract

import (
	"context"
	"log/slog"

	"github.com/sahilbaig/examparse/internal/exam"
)

// Generator produces free-form text for a prompt. *llm.Client implements it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelExtractor delegates segmentation to a generative backend and repairs
// its output into validated records. Generation failures are absorbed
// locally: the caller sees an empty result, never an error, and "no output"
// is a valid outcome for the rest of the pipeline.
type ModelExtractor struct {
	gen Generator
	log *slog.Logger
}

var _ Extractor = (*ModelExtractor)(nil)

func NewModelExtractor(gen Generator, log *slog.Logger) *ModelExtractor {
	return &ModelExtractor{gen: gen, log: log}
}

// Directions extracts direction blocks, expecting a single top-level array.
func (m *ModelExtractor) Directions(ctx context.Context, fragment string) []exam.Direction {
	raw, ok := m.generate(ctx, "directions", BuildDirectionsPrompt(fragment))
	if !ok {
		return nil
	}
	return NormalizeDirections(raw)
}

// ScatteredDirections extracts direction blocks from output where each
// record is an independent top-level object embedded anywhere in the text,
// so one malformed object does not discard the others.
func (m *ModelExtractor) ScatteredDirections(ctx context.Context, fragment string) []exam.Direction {
	raw, ok := m.generate(ctx, "directions", BuildDirectionsPrompt(fragment))
	if !ok {
		return nil
	}
	return ScanDirections(raw)
}

// Questions extracts numbered questions with options.
func (m *ModelExtractor) Questions(ctx context.Context, fragment string) []exam.Question {
	raw, ok := m.generate(ctx, "questions", BuildQuestionsPrompt(fragment))
	if !ok {
		return nil
	}
	return NormalizeQuestions(raw)
}

// Sections extracts labeled sections owning their questions.
func (m *ModelExtractor) Sections(ctx context.Context, fragment string) []exam.Section {
	raw, ok := m.generate(ctx, "sections", BuildSectionsPrompt(fragment))
	if !ok {
		return nil
	}
	return NormalizeSections(raw)
}

func (m *ModelExtractor) generate(ctx context.Context, task, prompt string) (string, bool) {
	raw, err := m.gen.Generate(ctx, prompt)
	if err != nil {
		m.log.Warn("model generation failed, degrading to empty result",
			"task", task,
			"error", err,
		)
		return "", false
	}
	return raw, true
}
