// Package kv recovers label/value pairs from flattened page text.
package kv

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Ahnaf19/JobSnap/internal/models"
	"github.com/Ahnaf19/JobSnap/internal/textutil"
)

// MaxLabelLength is the longest line treated as a label awaiting its value on
// the following line.
const MaxLabelLength = 40

var inlineLabel = regexp.MustCompile(`([A-Za-z][A-Za-z &/]+)\s*:\s*`)

// ExtractLabelValuePairs scans "Label Words: value" runs. A value extends to
// the next label or to the end of text. A repeated label overwrites the
// earlier value.
func ExtractLabelValuePairs(text string) models.Fields {
	normalized := textutil.NormalizeWhitespace(text)
	matches := inlineLabel.FindAllStringSubmatchIndex(normalized, -1)

	var pairs models.Fields
	for i, m := range matches {
		end := len(normalized)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		label := strings.TrimSpace(normalized[m[2]:m[3]])
		value := strings.TrimSpace(normalized[m[1]:end])
		key := textutil.ToKey(label)
		if label == "" || value == "" || key == "" {
			continue
		}
		pairs.Set(key, value)
	}
	return pairs
}

// ExtractDetailsFromLines reads "Label: value" lines and "Label\nvalue" or
// "Label:\nvalue" line pairs. Bullet lines and skipHeadings are ignored. The
// first occurrence of a key wins.
func ExtractDetailsFromLines(text string, skipHeadings []string) models.Fields {
	skip := make(map[string]struct{}, len(skipHeadings))
	for _, heading := range skipHeadings {
		skip[headingKey(heading)] = struct{}{}
	}
	skipped := func(line string) bool {
		_, ok := skip[headingKey(line)]
		return ok
	}

	lines := textutil.NonEmptyLines(textutil.NormalizeWhitespace(text))
	var details models.Fields
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if skipped(line) || strings.HasPrefix(line, "- ") {
			continue
		}

		if idx := strings.Index(line, ":"); idx > 0 {
			label := strings.TrimSpace(line[:idx])
			value := strings.TrimSpace(line[idx+1:])
			if key := textutil.ToKey(label); key != "" && value != "" {
				details.Add(key, value)
				continue
			}
		}

		if i+1 >= len(lines) {
			continue
		}
		next := lines[i+1]
		if strings.HasPrefix(next, "- ") || skipped(next) || utf8.RuneCountInString(line) > MaxLabelLength {
			continue
		}
		// "Salary:" alone on a line labels the line after it.
		key := textutil.ToKey(strings.TrimSuffix(line, ":"))
		if key == "" || details.Has(key) {
			continue
		}
		details.Add(key, next)
		i++
	}
	return details
}

func headingKey(line string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(line), ":"))
}
