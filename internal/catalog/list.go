package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Ahnaf19/JobSnap/internal/models"
	"github.com/araddon/dateparse"
)

type SortKey string

const (
	SortSaved    SortKey = "saved"
	SortDeadline SortKey = "deadline"
	SortCompany  SortKey = "company"
)

func ParseSortKey(value string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortSaved:
		return SortSaved, nil
	case SortDeadline:
		return SortDeadline, nil
	case SortCompany:
		return SortCompany, nil
	default:
		return "", fmt.Errorf("unsupported sort %q (use saved, deadline or company)", value)
	}
}

// Deadline parses the free-form application deadline in loc.
func (e Entry) Deadline(loc *time.Location) (time.Time, bool) {
	value := strings.TrimSpace(models.Value(e.ApplicationDeadline))
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := dateparse.ParseIn(value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysLeft rounds the time until deadline up to whole days. It is negative
// once the deadline has passed by more than a day.
func DaysLeft(deadline, now time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}

// Sort orders entries in place: saved is newest first, deadline is earliest
// first with unparseable deadlines last, company is case-insensitive A-Z.
func Sort(entries []Entry, key SortKey, loc *time.Location) {
	switch key {
	case SortDeadline:
		sort.SliceStable(entries, func(i, j int) bool {
			di, oki := entries[i].Deadline(loc)
			dj, okj := entries[j].Deadline(loc)
			if oki != okj {
				return oki
			}
			return oki && di.Before(dj)
		})
	case SortCompany:
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(models.Value(entries[i].Company)) < strings.ToLower(models.Value(entries[j].Company))
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].SavedAt > entries[j].SavedAt
		})
	}
}

// Filter selects entries for listing.
type Filter struct {
	Active  bool
	Expired bool
	Tag     string
	Now     time.Time
	Loc     *time.Location
}

// Apply keeps the entries matching f. Active and Expired only keep entries
// with a parseable deadline.
func (f Filter) Apply(entries []Entry) []Entry {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	tag := strings.ToLower(strings.TrimSpace(f.Tag))

	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if f.Active || f.Expired {
			deadline, ok := entry.Deadline(f.Loc)
			if !ok {
				continue
			}
			if f.Active && !deadline.After(now) {
				continue
			}
			if f.Expired && deadline.After(now) {
				continue
			}
		}
		if tag != "" && !hasTag(entry, tag) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func hasTag(entry Entry, tag string) bool {
	for _, t := range entry.Tags {
		if strings.ToLower(strings.TrimSpace(t)) == tag {
			return true
		}
	}
	return false
}
