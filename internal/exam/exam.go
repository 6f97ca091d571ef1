// Package exam defines the validated record types the extraction pipeline
// produces: direction blocks, questions, and sections. All of them are value
// types with no identity beyond their position in a result sequence.
package exam

import "strings"

// DirectionType is the fixed literal every direction record carries.
const DirectionType = "description"

// Direction is an instructional block scoped to a question-number range,
// e.g. "DIRECTIONS for questions 1 to 5: ...".
type Direction struct {
	Type string `json:"type"`
	From int    `json:"from"`
	To   int    `json:"to"`
	Text string `json:"text"`
}

// Valid reports whether the record satisfies the direction invariants:
// fixed type literal, 0 <= From <= To, non-empty text.
func (d Direction) Valid() bool {
	if d.Type != DirectionType {
		return false
	}
	if d.From < 0 || d.To < 0 || d.From > d.To {
		return false
	}
	return strings.TrimSpace(d.Text) != ""
}

// Question is a numbered exam question with lettered options.
type Question struct {
	Number  int               `json:"number"`
	Text    string            `json:"text"`
	Options map[string]string `json:"options"`
}

// Valid reports whether the question satisfies the record invariants:
// positive number, non-empty text, at least minOptions options whose letters
// run consecutively from "a" with no gaps.
func (q Question) Valid(minOptions int) bool {
	if q.Number <= 0 || strings.TrimSpace(q.Text) == "" {
		return false
	}
	if len(q.Options) < minOptions {
		return false
	}
	for i := range len(q.Options) {
		if _, ok := q.Options[string(rune('a'+i))]; !ok {
			return false
		}
	}
	return true
}

// Section groups the questions between one section header and the next,
// preserving document order.
type Section struct {
	Section   string     `json:"section"`
	Questions []Question `json:"questions"`
}
