// Package catalog ingests the over-the-counter drug export, normalizes its
// free-text fields and answers symptom queries over the resulting table.
package catalog

import (
	"regexp"
	"strings"
)

// Pre-compiled patterns, applied in declaration order by Clean
var (
	// Retracted content: the span and everything inside it is removed
	deletedSpanPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?s)<del>.*?</del>`),
		regexp.MustCompile(`(?s)<s>.*?</s>`),
	}

	// Any remaining tag on a single line; the text between tags is kept
	tagPattern = regexp.MustCompile(`<.*?>`)
)

// Clean normalizes one free-text field of the export.
// It removes retracted <del>/<s> spans, strips remaining tags, escapes
// tildes so that markdown renderers do not read them as strike-through and
// trims surrounding whitespace. Malformed markup is left as is.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	text := raw
	for _, re := range deletedSpanPatterns {
		text = re.ReplaceAllLiteralString(text, "")
	}
	text = tagPattern.ReplaceAllLiteralString(text, "")
	text = escapeTildes(text)

	return strings.TrimSpace(text)
}

// escapeTildes prefixes every tilde with a backslash, skipping tildes that
// are already escaped so that cleaning twice gives the same result
func escapeTildes(text string) string {
	if !strings.Contains(text, "~") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + strings.Count(text, "~"))

	prev := rune(0)
	for _, r := range text {
		if r == '~' && prev != '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
