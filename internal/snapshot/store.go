// Package snapshot persists a parsed job as a directory holding the fetched
// page, the parsed record and the rendered document, and keeps the catalog
// in step with it.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Ahnaf19/JobSnap/internal/catalog"
	"github.com/Ahnaf19/JobSnap/internal/models"
	"github.com/Ahnaf19/JobSnap/internal/parser"
	"github.com/Ahnaf19/JobSnap/internal/scraper"
	"github.com/rs/zerolog"
)

var ErrMissingJob = errors.New("job has no job id")

const (
	RawHTMLFile = "raw.html"
	JobJSONFile = "job.json"
)

var numericDir = regexp.MustCompile(`^\d+$`)

// Store writes snapshots under root, one directory per job id.
type Store struct {
	root     string
	template string
	logger   zerolog.Logger
}

func NewStore(root, template string, logger zerolog.Logger) *Store {
	return &Store{root: root, template: template, logger: logger}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) IndexPath() string {
	return catalog.Path(s.root)
}

func (s *Store) JobDir(jobID string) string {
	return filepath.Join(s.root, jobID)
}

// Exists reports whether a job.json was already saved for jobID.
func (s *Store) Exists(jobID string) bool {
	info, err := os.Stat(filepath.Join(s.JobDir(jobID), JobJSONFile))
	return err == nil && !info.IsDir()
}

// Result locates the files written by Save.
type Result struct {
	Dir          string
	RawHTMLPath  string
	JSONPath     string
	MarkdownPath string
	IndexPath    string
	Entry        catalog.Entry
	Stats        catalog.UpsertStats
}

// Save writes raw.html, job.json and the Markdown document for job and
// upserts its catalog entry. Tags already recorded for the job are kept and
// tags are added to them. A document left by an earlier save under a
// different name is removed.
func (s *Store) Save(job *models.Job, html, markdown string, tags ...string) (Result, error) {
	if job == nil || models.IsBlank(job.JobID) {
		return Result{}, ErrMissingJob
	}
	jobID := strings.TrimSpace(*job.JobID)

	dir := s.JobDir(jobID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create %s: %w", dir, err)
	}

	filename := BuildFilename(FilenameParams{
		Template: s.template,
		Title:    models.Value(job.Title),
		Company:  models.Value(job.Company),
		JobID:    jobID,
	})
	res := Result{
		Dir:          dir,
		RawHTMLPath:  filepath.Join(dir, RawHTMLFile),
		JSONPath:     filepath.Join(dir, JobJSONFile),
		MarkdownPath: filepath.Join(dir, filename),
		IndexPath:    s.IndexPath(),
	}

	data, err := encodeJob(job)
	if err != nil {
		return Result{}, err
	}
	for _, f := range []struct {
		path string
		data []byte
	}{
		{res.RawHTMLPath, []byte(html)},
		{res.JSONPath, data},
		{res.MarkdownPath, []byte(markdown)},
	} {
		if err := os.WriteFile(f.path, f.data, 0o644); err != nil {
			return Result{}, fmt.Errorf("write %s: %w", f.path, err)
		}
	}

	paths, err := s.relativePaths(res)
	if err != nil {
		return Result{}, err
	}
	prev, hasPrev := s.previous(jobID)
	if hasPrev {
		s.removeStaleDocument(prev, paths.JobMD)
	}

	res.Entry = catalog.NewEntry(job, markdown, paths)
	res.Entry.Tags = mergeTags(prev.Tags, tags)
	res.Stats, err = catalog.Update(res.IndexPath, res.Entry)
	if err != nil {
		return Result{}, fmt.Errorf("update %s: %w", res.IndexPath, err)
	}
	s.logger.Debug().
		Str("job_id", jobID).
		Str("dir", dir).
		Int("replaced", res.Stats.Replaced).
		Msg("snapshot saved")
	return res, nil
}

func (s *Store) relativePaths(res Result) (catalog.Paths, error) {
	rel := func(path string) (string, error) {
		r, err := filepath.Rel(s.root, path)
		if err != nil {
			return "", err
		}
		return filepath.ToSlash(r), nil
	}
	var paths catalog.Paths
	var err error
	if paths.RawHTML, err = rel(res.RawHTMLPath); err != nil {
		return paths, err
	}
	if paths.JobJSON, err = rel(res.JSONPath); err != nil {
		return paths, err
	}
	if paths.JobMD, err = rel(res.MarkdownPath); err != nil {
		return paths, err
	}
	return paths, nil
}

func (s *Store) previous(jobID string) (catalog.Entry, bool) {
	entries, _, err := catalog.ReadEntries(s.IndexPath())
	if err != nil {
		return catalog.Entry{}, false
	}
	return catalog.Find(entries, jobID)
}

func (s *Store) removeStaleDocument(prev catalog.Entry, current string) {
	if prev.Paths.JobMD == "" || prev.Paths.JobMD == current {
		return
	}
	old := filepath.Join(s.root, filepath.FromSlash(prev.Paths.JobMD))
	if filepath.Dir(old) != s.JobDir(prev.JobID) || !strings.HasSuffix(strings.ToLower(old), ".md") {
		return
	}
	if err := os.Remove(old); err == nil {
		s.logger.Debug().Str("path", old).Msg("removed previous document")
	}
}

// mergeTags appends the new tags not already present, compared
// case-insensitively, keeping first-seen order.
func mergeTags(existing, added []string) []string {
	var out []string
	seen := make(map[string]bool, len(existing)+len(added))
	for _, list := range [][]string{existing, added} {
		for _, tag := range list {
			tag = strings.TrimSpace(tag)
			key := strings.ToLower(tag)
			if tag == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, tag)
		}
	}
	return out
}

func encodeJob(job *models.Job) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(job); err != nil {
		return nil, fmt.Errorf("encode job: %w", err)
	}
	return buf.Bytes(), nil
}

// Snapshot is a saved job directory read back for reparsing.
type Snapshot struct {
	Dir         string
	RawHTMLPath string
	HTML        string
	// Job is the previously parsed record, nil when job.json is missing or unreadable.
	Job *models.Job
}

// Load reads a job directory, or a raw.html file and the directory holding it.
func Load(target string) (Snapshot, error) {
	info, err := os.Stat(target)
	if err != nil {
		return Snapshot{}, fmt.Errorf("path not found: %s", target)
	}
	snap := Snapshot{Dir: target, RawHTMLPath: filepath.Join(target, RawHTMLFile)}
	if !info.IsDir() {
		snap.Dir = filepath.Dir(target)
		snap.RawHTMLPath = target
	}

	html, err := os.ReadFile(snap.RawHTMLPath)
	if err != nil {
		return Snapshot{}, err
	}
	snap.HTML = string(html)

	if data, err := os.ReadFile(filepath.Join(snap.Dir, JobJSONFile)); err == nil {
		var job models.Job
		if err := json.Unmarshal(data, &job); err == nil {
			snap.Job = &job
		}
	}
	return snap, nil
}

// JobID recovers the id from the saved record, its URL, or a numeric
// directory name, in that order.
func (s Snapshot) JobID() (string, bool) {
	if s.Job != nil {
		if id := strings.TrimSpace(models.Value(s.Job.JobID)); id != "" {
			return id, true
		}
		if id, ok := scraper.ExtractJobID(models.Value(s.Job.URL)); ok {
			return id, true
		}
	}
	if base := filepath.Base(s.Dir); numericDir.MatchString(base) {
		return base, true
	}
	return "", false
}

// URL is the saved URL, else the canonical page of the recovered id.
func (s Snapshot) URL() string {
	if s.Job != nil {
		if url := strings.TrimSpace(models.Value(s.Job.URL)); url != "" {
			return url
		}
	}
	if id, ok := s.JobID(); ok {
		return parser.DetailsURL(id)
	}
	return ""
}
