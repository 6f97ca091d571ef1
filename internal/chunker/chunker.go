// Package chunker produces the bounded text fragments the extractors
// analyze. All lengths are measured in runes so a fragment boundary never
// lands inside a UTF-8 code point.
package chunker

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// Chunks yields consecutive non-overlapping fragments of at most maxLen
// runes covering text exactly once, in order. Every fragment except possibly
// the last has exactly maxLen runes. The sequence is a pure function of its
// inputs: re-ranging restarts it.
func Chunks(text string, maxLen int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if maxLen <= 0 || text == "" {
			return
		}
		runes := []rune(text)
		for start := 0; start < len(runes); start += maxLen {
			end := min(start+maxLen, len(runes))
			if !yield(string(runes[start:end])) {
				return
			}
		}
	}
}

// Window returns the fragment starting at the first occurrence of marker and
// spanning at most window runes. An absent marker degrades to the start of
// text; Window never fails.
func Window(text, marker string, window int) string {
	offset := 0
	if marker != "" {
		if i := strings.Index(text, marker); i >= 0 {
			offset = i
		}
	}
	return WindowAt(text, offset, window)
}

// WindowAt returns at most window runes of text starting at the given byte
// offset. Out-of-range offsets degrade to the start of text.
func WindowAt(text string, offset, window int) string {
	if window <= 0 || text == "" {
		return ""
	}
	if offset < 0 || offset >= len(text) {
		offset = 0
	}
	runes := []rune(text[offset:])
	if len(runes) > window {
		runes = runes[:window]
	}
	return string(runes)
}

// BoundPages concatenates page texts in order, scanning at most maxPages
// pages and stopping once the accumulated text exceeds maxRunes. Front
// matter (directions, the first question block) appears early, so a small
// ceiling captures it without reading the whole document.
func BoundPages(pages []string, maxPages, maxRunes int) string {
	var b strings.Builder
	total := 0
	for i, page := range pages {
		if maxPages > 0 && i >= maxPages {
			break
		}
		if strings.TrimSpace(page) == "" {
			continue
		}
		b.WriteString(page)
		b.WriteString("\n")
		total += utf8.RuneCountInString(page) + 1
		if maxRunes > 0 && total > maxRunes {
			break
		}
	}
	return b.String()
}
