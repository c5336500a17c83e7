package catalog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the catalog file inside an output root.
const FileName = "index.jsonl"

// Path returns the catalog path for an output root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// ReadStats counts what ReadEntries saw.
type ReadStats struct {
	Lines   int
	Skipped int
}

// ReadEntries reads one entry per non-blank line. A missing file is an empty
// catalog and lines that do not decode are skipped.
func ReadEntries(path string) ([]Entry, ReadStats, error) {
	var stats ReadStats
	if strings.TrimSpace(path) == "" {
		return nil, stats, fmt.Errorf("path is required")
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Entry{}, stats, nil
		}
		return nil, stats, err
	}
	defer f.Close()

	entries := []Entry{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		stats.Lines++
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil || strings.TrimSpace(entry.JobID) == "" {
			stats.Skipped++
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, err
	}
	return entries, stats, nil
}

// WriteEntries replaces the catalog at path with entries, one JSON object
// per line. The file is written beside path and renamed into place.
func WriteEntries(path string, entries []Entry) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is required")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("encode entry %s: %w", entry.JobID, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+FileName+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Update upserts entry into the catalog at path.
func Update(path string, entry Entry) (UpsertStats, error) {
	if err := entry.Validate(); err != nil {
		return UpsertStats{}, err
	}
	entries, _, err := ReadEntries(path)
	if err != nil {
		return UpsertStats{}, err
	}
	out, stats := Upsert(entries, entry)
	if err := WriteEntries(path, out); err != nil {
		return stats, err
	}
	return stats, nil
}
