// Package extract recognizes exam structure (direction blocks, section
// headers, questions, options) inside a noisy text fragment, either
// with a deterministic grammar or by delegating to a generative model and
// repairing its output.
package extract

import (
	"context"
	"errors"

	"github.com/sahilbaig/examparse/internal/exam"
)

// ErrNoQuestions reports that no numeric question marker was located in the
// analyzed text. Callers that need the distinction get it as an error, not
// as an empty-but-successful result.
var ErrNoQuestions = errors.New("no questions found")

// Option floors per extraction path. The rule-based grammar demands two
// options so headers and noise that merely look like question markers are
// rejected; the model path sees text the rules already failed on, so a
// single recognized option is enough.
const (
	minRuleOptions  = 2
	minModelOptions = 1
)

// Extractor recognizes exam structure in one text fragment. Implementations
// absorb their own recognition failures into empty results; the caller picks
// rule-based or model-assisted by intent, never by sniffing the text.
type Extractor interface {
	Directions(ctx context.Context, fragment string) []exam.Direction
	Questions(ctx context.Context, fragment string) []exam.Question
	Sections(ctx context.Context, fragment string) []exam.Section
}
