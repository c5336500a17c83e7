// Package section slices linearized page text into named sections and
// subsection blocks using declarative heading tables.
package section

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/Ahnaf19/JobSnap/internal/models"
	"github.com/Ahnaf19/JobSnap/internal/textutil"
)

// Heading is a canonical key with the heading spellings that introduce it.
type Heading struct {
	Key       string
	Spellings []string
}

// Range is the span [Start, End) of text belonging to a located heading.
type Range struct {
	Key     string
	Heading string
	Start   int
	End     int
}

// Sub is a parsed subsection body.
type Sub struct {
	Key     string
	Heading string
	Block   *models.Block
}

var patterns sync.Map // heading -> *regexp.Regexp

func pattern(heading string) *regexp.Regexp {
	if re, ok := patterns.Load(heading); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?im)(^|\n)\s*` + regexp.QuoteMeta(heading) + `\s*:?(\s*\n|\s*$)`)
	actual, _ := patterns.LoadOrStore(heading, re)
	return actual.(*regexp.Regexp)
}

// Find locates heading standing alone on its own line, optionally followed by
// a colon, at or after from. The returned offset is the start of the match,
// which may include the preceding line break.
func Find(text, heading string, from int) (int, bool) {
	if from < 0 {
		from = 0
	}
	if from > len(text) || strings.TrimSpace(heading) == "" {
		return 0, false
	}
	loc := pattern(heading).FindStringIndex(text[from:])
	if loc == nil {
		return 0, false
	}
	return from + loc[0], true
}

// findAny returns the earliest match among the spellings of h.
func findAny(text string, h Heading, from int) (int, string, bool) {
	best, bestSpelling, found := 0, "", false
	for _, spelling := range h.Spellings {
		idx, ok := Find(text, spelling, from)
		if !ok {
			continue
		}
		if !found || idx < best {
			best, bestSpelling, found = idx, spelling, true
		}
	}
	return best, bestSpelling, found
}

// Slice locates the headings of table in order. Each search starts just past
// the previously located heading, so repeated heading text cannot match an
// earlier section. Missing headings are skipped.
func Slice(text string, table []Heading) []Range {
	var found []Range
	cursor := 0
	for _, h := range table {
		idx, spelling, ok := findAny(text, h, cursor)
		if !ok {
			continue
		}
		found = append(found, Range{Key: h.Key, Heading: spelling, Start: idx})
		cursor = idx + 1
	}
	for i := range found {
		found[i].End = len(text)
		if i+1 < len(found) {
			found[i].End = found[i+1].Start
		}
	}
	return found
}

// Texts maps each located section key to its text.
func Texts(text string, table []Heading) map[string]string {
	out := make(map[string]string)
	for _, r := range Slice(text, table) {
		out[r.Key] = text[r.Start:r.End]
	}
	return out
}

// Subsections splits a section body at any of the given headings, searched
// from the start of the normalized text and ordered by position. Bodies with
// bullet lines become bullet blocks, anything else a text block. Empty bodies
// and a lone "-" are dropped.
func Subsections(text string, headings []Heading) []Sub {
	cleaned := textutil.NormalizeWhitespace(text)

	type position struct {
		heading  Heading
		spelling string
		index    int
	}
	var positions []position
	for _, h := range headings {
		idx, spelling, ok := findAny(cleaned, h, 0)
		if !ok {
			continue
		}
		positions = append(positions, position{heading: h, spelling: spelling, index: idx})
	}
	sort.SliceStable(positions, func(i, j int) bool { return positions[i].index < positions[j].index })

	var subs []Sub
	for i, pos := range positions {
		end := len(cleaned)
		if i+1 < len(positions) {
			end = positions[i+1].index
		}
		body := StripHeading(cleaned[pos.index:end], pos.spelling)
		block := ParseBlock(body)
		if block == nil {
			continue
		}
		subs = append(subs, Sub{Key: pos.heading.Key, Heading: pos.spelling, Block: block})
	}
	return subs
}

// ParseBlock classifies body as bullets or prose. It returns nil for an empty
// body or a lone "-".
func ParseBlock(body string) *models.Block {
	if bullets := ParseBullets(body); len(bullets) > 0 {
		return models.NewBulletBlock(bullets)
	}
	text := textutil.NormalizeWhitespace(body)
	if text == "-" {
		return nil
	}
	return models.NewTextBlock(text)
}

// ParseBullets returns the content of every "- " or "* " line.
func ParseBullets(text string) []string {
	var bullets []string
	for _, line := range strings.Split(textutil.NormalizeWhitespace(text), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- ") && !strings.HasPrefix(line, "* ") {
			continue
		}
		if bullet := strings.TrimSpace(line[2:]); bullet != "" {
			bullets = append(bullets, bullet)
		}
	}
	return bullets
}

// StripHeading drops leading blank lines and then the first line if it is
// heading, compared case-insensitively and ignoring a trailing colon.
func StripHeading(chunk, heading string) string {
	lines := strings.Split(chunk, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 0 && headingKey(lines[0]) == headingKey(heading) {
		lines = lines[1:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// StripAnyHeading applies StripHeading with the first heading that matches.
func StripAnyHeading(chunk string, headings ...string) string {
	trimmed := strings.TrimSpace(chunk)
	for _, heading := range headings {
		if stripped := StripHeading(chunk, heading); stripped != trimmed {
			return stripped
		}
	}
	return trimmed
}

func headingKey(line string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(line), ":"))
}
