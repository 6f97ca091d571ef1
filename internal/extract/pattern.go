package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/sahilbaig/examparse/internal/exam"
)

// RuleExtractor recognizes exam structure with a fixed grammar: "Section:"
// headers, "Q.N)" question markers, "a)"-style option lines, and
// "DIRECTIONS for questions X to Y" blocks. No fuzzy matching; scans are
// greedy left-to-right, leftmost match wins.
type RuleExtractor struct{}

var (
	sectionRe   = regexp.MustCompile(`Section:\s*([A-Za-z][A-Za-z ]*)`)
	questionRe  = regexp.MustCompile(`Q\.(\d+)\)`)
	optionRe    = regexp.MustCompile(`^\s*([a-z])\)\s*(.+?)\s*$`)
	directionRe = regexp.MustCompile(`(?i)DIRECTIONS?\s+for\s+questions?\s+(\d+)\s+to\s+(\d+)`)

	// First-question anchor: either marker style counts as a numeric
	// question marker, bare ("1.") or labeled ("Q.1)").
	questionMarkerRe = regexp.MustCompile(`Q\.\d+\)|\b\d+\.`)
)

var _ Extractor = RuleExtractor{}

// FirstQuestionOffset returns the byte offset of the first numeric question
// marker in either style, or ok=false when the text has none.
func FirstQuestionOffset(text string) (int, bool) {
	loc := questionMarkerRe.FindStringIndex(text)
	if loc == nil {
		return 0, false
	}
	return loc[0], true
}

// SectionTitles returns header titles in document order, label stripped and
// whitespace-trimmed.
func SectionTitles(text string) []string {
	var titles []string
	for _, m := range sectionRe.FindAllStringSubmatch(text, -1) {
		titles = append(titles, strings.TrimSpace(m[1]))
	}
	return titles
}

// Sections partitions the fragment on section-header boundaries and runs
// question recognition over each slice. Text before the first header has no
// owning section and is discarded.
func (RuleExtractor) Sections(_ context.Context, fragment string) []exam.Section {
	locs := sectionRe.FindAllStringSubmatchIndex(fragment, -1)
	var sections []exam.Section
	for i, loc := range locs {
		title := strings.TrimSpace(fragment[loc[2]:loc[3]])
		end := len(fragment)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections = append(sections, exam.Section{
			Section:   title,
			Questions: parseQuestions(fragment[loc[1]:end]),
		})
	}
	return sections
}

// Questions recognizes "Q.N)" question blocks across the whole fragment.
func (RuleExtractor) Questions(_ context.Context, fragment string) []exam.Question {
	return parseQuestions(fragment)
}

// Directions recognizes "DIRECTIONS for questions X to Y" blocks; each block
// runs to the next directions header or end of fragment.
func (RuleExtractor) Directions(_ context.Context, fragment string) []exam.Direction {
	locs := directionRe.FindAllStringSubmatchIndex(fragment, -1)
	var dirs []exam.Direction
	for i, loc := range locs {
		from, err1 := strconv.Atoi(fragment[loc[2]:loc[3]])
		to, err2 := strconv.Atoi(fragment[loc[4]:loc[5]])
		if err1 != nil || err2 != nil {
			continue
		}
		end := len(fragment)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		d := exam.Direction{
			Type: exam.DirectionType,
			From: from,
			To:   to,
			Text: strings.TrimSpace(fragment[loc[0]:end]),
		}
		if d.Valid() {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func parseQuestions(text string) []exam.Question {
	locs := questionRe.FindAllStringSubmatchIndex(text, -1)
	var questions []exam.Question
	for i, loc := range locs {
		number, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if q, ok := parseQuestionBlock(number, text[loc[1]:end]); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

// parseQuestionBlock splits one question slice into body and option run. The
// body is everything before the first option line; option lines are accepted
// only while their letters stay consecutive from "a". Blocks with an empty
// body or fewer than two options are noise that superficially matched the
// numeric marker, and are rejected.
func parseQuestionBlock(number int, block string) (exam.Question, bool) {
	var body strings.Builder
	options := make(map[string]string)
	next := byte('a')
	inOptions := false

	for line := range strings.Lines(block) {
		line = strings.TrimRight(line, "\n")
		if m := optionRe.FindStringSubmatch(line); m != nil && m[1][0] == next {
			options[m[1]] = strings.TrimSpace(m[2])
			next++
			inOptions = true
			continue
		}
		if inOptions {
			break
		}
		if body.Len() > 0 {
			body.WriteString("\n")
		}
		body.WriteString(line)
	}

	q := exam.Question{
		Number:  number,
		Text:    strings.TrimSpace(body.String()),
		Options: options,
	}
	if !q.Valid(minRuleOptions) {
		return exam.Question{}, false
	}
	return q, true
}
