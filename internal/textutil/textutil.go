// Package textutil holds the whitespace and slug rules shared by the parser,
// the renderer and filename construction.
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSegmentLength bounds a sanitized filename segment.
const DefaultSegmentLength = 80

var (
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	indentedLine    = regexp.MustCompile(`\n[ \t]+`)
	blankLineRun    = regexp.MustCompile(`\n{3,}`)
	nonSlug         = regexp.MustCompile(`[^a-z0-9]+`)
	nonAlnum        = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	underscoreRun   = regexp.MustCompile(`_+`)
)

// NormalizeWhitespace converts line endings to LF, collapses horizontal
// whitespace, drops line indentation, keeps at most one blank line between
// paragraphs and trims the result.
func NormalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalSpace.ReplaceAllString(text, " ")
	text = indentedLine.ReplaceAllString(text, "\n")
	text = blankLineRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// ToKey slugs a label: "Application Deadline" becomes "application_deadline".
func ToKey(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	key = nonSlug.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}

var stripMarks = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.Predicate(func(r rune) bool { return r >= 0x300 && r <= 0x36f })),
)

// SanitizeFilenameSegment reduces input to an ASCII slug of at most maxLength
// bytes with no leading or trailing underscore. An empty result is "unknown".
func SanitizeFilenameSegment(input string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultSegmentLength
	}
	folded, _, err := transform.String(stripMarks, input)
	if err != nil {
		folded = input
	}
	safe := nonAlnum.ReplaceAllString(folded, "_")
	safe = strings.Trim(safe, "_")
	safe = underscoreRun.ReplaceAllString(safe, "_")
	if safe == "" {
		return "unknown"
	}
	if len(safe) <= maxLength {
		return safe
	}
	return strings.TrimRight(safe[:maxLength], "_")
}

// NonEmptyLines splits text on LF and returns the trimmed, non-blank lines.
func NonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
