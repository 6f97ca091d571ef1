package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/sahilbaig/examparse/internal/exam"
)

// The normalizer turns free-form model output into validated records. It
// never returns an error: the source is untrusted generation, and the worst
// case is an empty result. Repairs are bounded, ordered, and applied only
// after a strict parse fails; record values are never rewritten.

type repairRule struct {
	name  string
	apply func(string) string
}

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*):`)
	codeFenceRe     = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")
)

var repairRules = []repairRule{
	{
		name:  "drop_trailing_commas",
		apply: func(s string) string { return trailingCommaRe.ReplaceAllString(s, "$1") },
	},
	{
		name:  "quote_bare_keys",
		apply: func(s string) string { return bareKeyRe.ReplaceAllString(s, `$1"$2"$3:`) },
	},
}

// NormalizeDirections parses output expected to contain one JSON array of
// direction records, validating each element independently.
func NormalizeDirections(raw string) []exam.Direction {
	var out []exam.Direction
	for _, item := range decodeArray(raw) {
		if d, ok := exam.DecodeDirection(item); ok {
			out = append(out, d)
		}
	}
	return out
}

// NormalizeQuestions parses output expected to contain one JSON array of
// question records.
func NormalizeQuestions(raw string) []exam.Question {
	var out []exam.Question
	for _, item := range decodeArray(raw) {
		if q, ok := exam.DecodeQuestion(item, minModelOptions); ok {
			out = append(out, q)
		}
	}
	return out
}

// NormalizeSections parses output expected to contain one JSON array of
// section records.
func NormalizeSections(raw string) []exam.Section {
	var out []exam.Section
	for _, item := range decodeArray(raw) {
		if s, ok := exam.DecodeSection(item, minModelOptions); ok {
			out = append(out, s)
		}
	}
	return out
}

// ScanDirections extracts every balanced top-level {...} substring in the
// output and validates each independently.
func ScanDirections(raw string) []exam.Direction {
	var out []exam.Direction
	for _, obj := range balancedObjects(stripCodeFence(raw)) {
		item := decodeValue(obj)
		if item == nil {
			continue
		}
		if d, ok := exam.DecodeDirection(item); ok {
			out = append(out, d)
		}
	}
	return out
}

// decodeArray slices raw down to its outermost bracket pair and parses it as
// an array of candidate records, repairing once on strict-parse failure.
func decodeArray(raw string) []json.RawMessage {
	sliced, ok := sliceBrackets(stripCodeFence(raw))
	if !ok {
		return nil
	}
	item := decodeValue(sliced)
	if item == nil {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(item, &items); err != nil {
		return nil
	}
	return items
}

// decodeValue applies the strict-then-repair policy to one JSON value:
// strict parse, then the ordered repair rules with a single retry, then
// jsonrepair as the last documented fallback. Returns nil when nothing
// parseable remains.
func decodeValue(s string) json.RawMessage {
	if json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}
	repaired := s
	for _, rule := range repairRules {
		repaired = rule.apply(repaired)
	}
	if json.Valid([]byte(repaired)) {
		return json.RawMessage(repaired)
	}
	fixed, err := jsonrepair.JSONRepair(s)
	if err != nil || !json.Valid([]byte(fixed)) {
		return nil
	}
	return json.RawMessage(fixed)
}

// sliceBrackets cuts raw to the span from its first structural opening
// bracket through the last matching closing bracket.
func sliceBrackets(raw string) (string, bool) {
	start := strings.IndexAny(raw, "[{")
	if start < 0 {
		return "", false
	}
	closing := byte(']')
	if raw[start] == '{' {
		closing = '}'
	}
	end := strings.LastIndexByte(raw, closing)
	if end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// stripCodeFence unwraps a ```json ... ``` block if the output is wrapped in
// one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFenceRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

// balancedObjects returns each top-level brace-balanced substring, tracking
// strings and escapes so braces inside values don't skew the depth count.
func balancedObjects(s string) []string {
	var objects []string
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				objects = append(objects, s[start:i+1])
				start = -1
			}
		}
	}
	return objects
}
