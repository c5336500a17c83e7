package catalog

import "strings"

// UpsertStats captures what an Upsert changed.
type UpsertStats struct {
	TotalIn  int
	Replaced int
	Added    int
	TotalOut int
}

// Upsert drops every entry with entry's job id and appends entry, so the
// most recently saved job is always last.
func Upsert(entries []Entry, entry Entry) ([]Entry, UpsertStats) {
	stats := UpsertStats{TotalIn: len(entries)}
	id := strings.TrimSpace(entry.JobID)

	out := make([]Entry, 0, len(entries)+1)
	for _, existing := range entries {
		if id != "" && strings.TrimSpace(existing.JobID) == id {
			stats.Replaced++
			continue
		}
		out = append(out, existing)
	}
	out = append(out, entry)
	if stats.Replaced == 0 {
		stats.Added = 1
	}

	stats.TotalOut = len(out)
	return out, stats
}

// Find returns the entry for jobID.
func Find(entries []Entry, jobID string) (Entry, bool) {
	jobID = strings.TrimSpace(jobID)
	for _, entry := range entries {
		if strings.TrimSpace(entry.JobID) == jobID {
			return entry, true
		}
	}
	return Entry{}, false
}
