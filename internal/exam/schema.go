package exam

import (
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// JSON Schemas for candidate records coming back from the model. The schemas
// cover required fields and types; cross-field invariants (From <= To,
// consecutive option letters) live in the Valid methods.

const directionSchemaJSON = `{
	"type": "object",
	"required": ["type", "from", "to", "text"],
	"properties": {
		"type": {"const": "description"},
		"from": {"type": "integer", "minimum": 0},
		"to": {"type": "integer", "minimum": 0},
		"text": {"type": "string", "minLength": 1}
	}
}`

const questionSchemaJSON = `{
	"type": "object",
	"required": ["number", "text", "options"],
	"properties": {
		"number": {"type": "integer", "minimum": 1},
		"text": {"type": "string", "minLength": 1},
		"options": {
			"type": "object",
			"additionalProperties": {"type": "string"}
		}
	}
}`

const sectionSchemaJSON = `{
	"type": "object",
	"required": ["section", "questions"],
	"properties": {
		"section": {"type": "string", "minLength": 1},
		"questions": {"type": "array"}
	}
}`

var (
	directionSchema = jsonschema.MustCompileString("direction.json", directionSchemaJSON)
	questionSchema  = jsonschema.MustCompileString("question.json", questionSchemaJSON)
	sectionSchema   = jsonschema.MustCompileString("section.json", sectionSchemaJSON)
)

func conforms(schema *jsonschema.Schema, raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return schema.Validate(v) == nil
}

// DecodeDirection validates one candidate record against the direction
// schema and invariants. Records that fail are dropped, never repaired.
func DecodeDirection(raw json.RawMessage) (Direction, bool) {
	if !conforms(directionSchema, raw) {
		return Direction{}, false
	}
	var d Direction
	if err := json.Unmarshal(raw, &d); err != nil || !d.Valid() {
		return Direction{}, false
	}
	return d, true
}

// DecodeQuestion validates one candidate question record. minOptions is the
// option floor of the extraction path that produced it.
func DecodeQuestion(raw json.RawMessage, minOptions int) (Question, bool) {
	if !conforms(questionSchema, raw) {
		return Question{}, false
	}
	var q Question
	if err := json.Unmarshal(raw, &q); err != nil || !q.Valid(minOptions) {
		return Question{}, false
	}
	return q, true
}

// DecodeSection validates one candidate section record. Invalid member
// questions are dropped individually; the section itself survives as long as
// its title is non-empty.
func DecodeSection(raw json.RawMessage, minOptions int) (Section, bool) {
	if !conforms(sectionSchema, raw) {
		return Section{}, false
	}
	var candidate struct {
		Section   string            `json:"section"`
		Questions []json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal(raw, &candidate); err != nil {
		return Section{}, false
	}
	title := strings.TrimSpace(candidate.Section)
	if title == "" {
		return Section{}, false
	}
	sec := Section{Section: title}
	for _, qr := range candidate.Questions {
		if q, ok := DecodeQuestion(qr, minOptions); ok {
			sec.Questions = append(sec.Questions, q)
		}
	}
	return sec, true
}
