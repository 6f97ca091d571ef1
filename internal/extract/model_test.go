package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

// fakeGenerator scripts the backend: fixed output or a fixed error.
type fakeGenerator struct {
	output string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestModelExtractor_DirectionsFromMessyOutput(t *testing.T) {
	gen := &fakeGenerator{output: `Here is what I found:
[{"type": "description", "from": 1, "to": 5, "text": "DIRECTIONS for questions 1 to 5",}]`}
	m := NewModelExtractor(gen, discardLogger())

	got := m.Directions(context.Background(), "some exam text")
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].From != 1 || got[0].To != 5 {
		t.Errorf("unexpected record %+v", got[0])
	}
}

func TestModelExtractor_PromptEmbedsFragmentVerbatim(t *testing.T) {
	gen := &fakeGenerator{output: "[]"}
	m := NewModelExtractor(gen, discardLogger())

	fragment := "DIRECTIONS for questions 1 to 5: unusual wording ><&"
	m.Directions(context.Background(), fragment)
	if !strings.Contains(gen.prompt, fragment) {
		t.Error("expected fragment embedded verbatim in the prompt")
	}
}

func TestModelExtractor_GenerationFailureDegradesToEmpty(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	m := NewModelExtractor(gen, discardLogger())

	if got := m.Directions(context.Background(), "text"); got != nil {
		t.Errorf("expected empty result on generation failure, got %v", got)
	}
	if got := m.Questions(context.Background(), "text"); got != nil {
		t.Errorf("expected empty result on generation failure, got %v", got)
	}
	if got := m.Sections(context.Background(), "text"); got != nil {
		t.Errorf("expected empty result on generation failure, got %v", got)
	}
	if got := m.ScatteredDirections(context.Background(), "text"); got != nil {
		t.Errorf("expected empty result on generation failure, got %v", got)
	}
}

func TestModelExtractor_ScatteredDirections(t *testing.T) {
	gen := &fakeGenerator{output: `block: {"type":"description","from":1,"to":2,"text":"a"}
another: {"type":"description","from":3,"to":4,"text":"b"}`}
	m := NewModelExtractor(gen, discardLogger())

	got := m.ScatteredDirections(context.Background(), "text")
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
}

func TestModelExtractor_QuestionsSingleOptionAccepted(t *testing.T) {
	// The model path tolerates a single option; only the rule path insists on two.
	gen := &fakeGenerator{output: `[{"number": 1, "text": "True or false?", "options": {"a": "true"}}]`}
	m := NewModelExtractor(gen, discardLogger())

	got := m.Questions(context.Background(), "text")
	if len(got) != 1 {
		t.Fatalf("expected 1 question, got %d", len(got))
	}
}
