// Package ngstate reads the hydration cache that bdjobs pages embed in a
// <script id="ng-state"> element and locates the job-detail record in it.
package ngstate

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DetailsMarker identifies the cache entry holding the job-detail response.
const DetailsMarker = "Job-Details"

// Entry is one top-level key of the state object.
type Entry struct {
	Key   string
	Value any
}

// State is the decoded state object in document order.
type State []Entry

// Detail is the raw job-detail record.
type Detail map[string]any

var transferEscapes = strings.NewReplacer(
	"&q;", `"`,
	"&s;", "'",
	"&l;", "<",
	"&g;", ">",
	"&a;", "&",
)

// ExtractState decodes the ng-state script of html. It returns nil when the
// element is missing, empty or not a JSON object.
func ExtractState(html string) State {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	raw := strings.TrimSpace(doc.Find("script#ng-state").First().Text())
	if raw == "" {
		return nil
	}
	state, err := decodeState(raw)
	if err != nil {
		// Older Angular releases escape the payload.
		state, err = decodeState(transferEscapes.Replace(raw))
		if err != nil {
			return nil
		}
	}
	return state
}

func decodeState(raw string) (State, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}

	state := State{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		state = append(state, Entry{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return state, nil
}

// FindJobDetails returns the first element of .b.data of the first entry
// whose .u contains DetailsMarker and whose data is a non-empty array.
func FindJobDetails(state State) Detail {
	for _, entry := range state {
		if !strings.Contains(stringValue(mapValue(entry.Value, "u")), DetailsMarker) {
			continue
		}
		data, ok := mapValue(mapValue(entry.Value, "b"), "data").([]any)
		if !ok || len(data) == 0 {
			continue
		}
		if detail, ok := data[0].(map[string]any); ok {
			return Detail(detail)
		}
	}
	return nil
}

// String returns the first non-blank value among keys, rendered as text.
func (d Detail) String(keys ...string) string {
	for _, key := range keys {
		if value := stringValue(d[key]); value != "" {
			return value
		}
	}
	return ""
}

// Present is String without placeholder values such as "Na".
func (d Detail) Present(keys ...string) string {
	value := d.String(keys...)
	if strings.EqualFold(value, "na") || strings.EqualFold(value, "n/a") {
		return ""
	}
	return value
}
