package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Ahnaf19/JobSnap/internal/catalog"
	"github.com/Ahnaf19/JobSnap/internal/config"
	"github.com/Ahnaf19/JobSnap/internal/export"
	"github.com/Ahnaf19/JobSnap/internal/network"
	"github.com/rs/zerolog"
)

const jobURL = "https://bdjobs.com/jobs/details/1436685"

type stubFetcher struct {
	html  string
	err   error
	calls int
}

func (s *stubFetcher) Name() string { return "stub" }

func (s *stubFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	s.calls++
	return s.html, s.err
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "parser", "testdata", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(data)
}

func testContext(t *testing.T, fetcher *stubFetcher) (*Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	ctx := &Context{
		Out:        &out,
		Err:        io.Discard,
		Config:     config.DefaultConfig(),
		ProjectDir: t.TempDir(),
		Logger:     zerolog.Nop(),
		Now:        func() time.Time { return time.Date(2026, 1, 12, 9, 30, 0, 0, time.UTC) },
	}
	if fetcher != nil {
		ctx.Fetcher = fetcher
	}
	return ctx, &out
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{errors.New("boom"), ExitUnknown},
		{exitError(ExitFetchFailed, errors.New("down")), ExitFetchFailed},
		{fmt.Errorf("wrapped: %w", exitError(ExitWriteFailed, errors.New("disk"))), ExitWriteFailed},
		{fmt.Errorf("%w: bad json", config.ErrInvalid), ExitConfigInvalid},
	}
	for _, tc := range cases {
		if got := ExitCode(tc.err); got != tc.want {
			t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
	if exitError(ExitParseFailed, nil) != nil {
		t.Fatalf("exitError(nil) should be nil")
	}
}

func TestSaveWritesSnapshot(t *testing.T) {
	fetcher := &stubFetcher{html: fixture(t, "job_details_state.html")}
	ctx, out := testContext(t, fetcher)

	cmd := &SaveCmd{URL: jobURL, Tag: []string{"ml"}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := strings.Join([]string{
		"Saved: " + filepath.Join("jobs", "1436685"),
		"Markdown: " + filepath.Join("jobs", "1436685", "AI_Engineer_Acme_Ltd_1436685.md"),
		"Index: " + filepath.Join("jobs", "index.jsonl"),
	}, "\n") + "\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}

	root := filepath.Join(ctx.ProjectDir, "jobs")
	entries, _, err := catalog.ReadEntries(catalog.Path(root))
	if err != nil || len(entries) != 1 {
		t.Fatalf("ReadEntries() = %v, %v", entries, err)
	}
	entry := entries[0]
	if entry.JobID != "1436685" || entry.SavedAt != "2026-01-12T09:30:00Z" {
		t.Fatalf("entry = %+v", entry)
	}
	if len(entry.Tags) != 1 || entry.Tags[0] != "ml" {
		t.Fatalf("entry tags = %v", entry.Tags)
	}
	for _, name := range []string{"raw.html", "job.json", "AI_Engineer_Acme_Ltd_1436685.md"} {
		if _, err := os.Stat(filepath.Join(root, "1436685", name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}

func TestSaveSkipsExisting(t *testing.T) {
	fetcher := &stubFetcher{html: fixture(t, "job_details_state.html")}
	ctx, out := testContext(t, fetcher)

	if err := (&SaveCmd{URL: jobURL}).Run(ctx); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	out.Reset()

	if err := (&SaveCmd{URL: jobURL, Skip: true}).Run(ctx); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("fetch calls = %d, want 1", fetcher.calls)
	}
	if !strings.HasPrefix(out.String(), "Skipped: "+filepath.Join("jobs", "1436685")) {
		t.Fatalf("output = %q", out.String())
	}
	if !strings.Contains(out.String(), "AI_Engineer_Acme_Ltd_1436685.md") {
		t.Fatalf("skip output lacks document path: %q", out.String())
	}

	ctx.Config.Skip = true
	if err := (&SaveCmd{URL: jobURL}).Run(ctx); err != nil || fetcher.calls != 1 {
		t.Fatalf("config skip: err = %v, calls = %d", err, fetcher.calls)
	}
}

func TestSaveHonorsOutAndTemplate(t *testing.T) {
	fetcher := &stubFetcher{html: fixture(t, "job_details_state.html")}
	ctx, _ := testContext(t, fetcher)
	ctx.JSONOutput = true
	var out bytes.Buffer
	ctx.Out = &out

	if err := (&SaveCmd{URL: jobURL, Out: "saved", Template: "{job_id}"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var report snapshotReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("invalid json %q: %v", out.String(), err)
	}
	if report.Status != "saved" || report.Markdown != filepath.Join("saved", "1436685", "1436685.md") {
		t.Fatalf("report = %+v", report)
	}
}

func TestSaveErrors(t *testing.T) {
	ctx, _ := testContext(t, &stubFetcher{})
	if err := (&SaveCmd{URL: "https://bdjobs.com/jobs/search"}).Run(ctx); ExitCode(err) != ExitInvalidArgs {
		t.Fatalf("bad url: ExitCode = %d (%v)", ExitCode(err), err)
	}

	ctx, _ = testContext(t, &stubFetcher{err: errors.New("http 503")})
	if err := (&SaveCmd{URL: jobURL}).Run(ctx); ExitCode(err) != ExitFetchFailed {
		t.Fatalf("fetch failure: ExitCode = %d (%v)", ExitCode(err), err)
	}

	ctx, _ = testContext(t, &stubFetcher{html: ""})
	if err := (&SaveCmd{URL: jobURL}).Run(ctx); ExitCode(err) != ExitParseFailed {
		t.Fatalf("empty page: ExitCode = %d (%v)", ExitCode(err), err)
	}
}

func TestReparseRewritesSnapshot(t *testing.T) {
	fetcher := &stubFetcher{html: fixture(t, "job_details_state.html")}
	ctx, out := testContext(t, fetcher)
	if err := (&SaveCmd{URL: jobURL, Tag: []string{"keep"}}).Run(ctx); err != nil {
		t.Fatalf("save error = %v", err)
	}
	out.Reset()

	ctx.Now = func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }
	if err := (&ReparseCmd{Target: filepath.Join("jobs", "1436685"), Template: "{job_id}.md"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "Reparsed: "+filepath.Join("jobs", "1436685")) {
		t.Fatalf("output = %q", out.String())
	}

	root := filepath.Join(ctx.ProjectDir, "jobs")
	if _, err := os.Stat(filepath.Join(root, "1436685", "AI_Engineer_Acme_Ltd_1436685.md")); !os.IsNotExist(err) {
		t.Fatalf("old document still present: %v", err)
	}
	entries, _, _ := catalog.ReadEntries(catalog.Path(root))
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].SavedAt != "2026-02-01T00:00:00Z" || entries[0].Paths.JobMD != "1436685/1436685.md" {
		t.Fatalf("entry = %+v", entries[0])
	}
	if len(entries[0].Tags) != 1 || entries[0].Tags[0] != "keep" {
		t.Fatalf("tags lost on reparse: %v", entries[0].Tags)
	}
	if entries[0].URL == nil || *entries[0].URL != jobURL {
		t.Fatalf("url = %v", entries[0].URL)
	}
}

func TestReparseMissingPath(t *testing.T) {
	ctx, _ := testContext(t, nil)
	err := (&ReparseCmd{Target: "nope"}).Run(ctx)
	if ExitCode(err) != ExitInvalidArgs {
		t.Fatalf("ExitCode = %d (%v)", ExitCode(err), err)
	}
}

func TestParseCommand(t *testing.T) {
	ctx, out := testContext(t, nil)
	page := filepath.Join(ctx.ProjectDir, "page.html")
	if err := os.WriteFile(page, []byte(fixture(t, "job_details_text.html")), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := (&ParseCmd{File: "page.html", URL: "https://bdjobs.com/jobs/details/99", Format: "md"}).Run(ctx); err != nil {
		t.Fatalf("Run(md) error = %v", err)
	}
	if !strings.Contains(out.String(), "job_id: \"99\"") || !strings.Contains(out.String(), "# Junior Engineer") {
		t.Fatalf("markdown output = %q", out.String())
	}

	if err := (&ParseCmd{File: "page.html", JobID: "5", SavedAt: "2026-01-01T00:00:00Z", Format: "json", Output: "out.json"}).Run(ctx); err != nil {
		t.Fatalf("Run(json) error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(ctx.ProjectDir, "out.json"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if record["job_id"] != "5" || record["saved_at"] != "2026-01-01T00:00:00Z" || record["url"] != nil {
		t.Fatalf("record = %v", record)
	}

	if err := (&ParseCmd{File: "missing.html", Format: "md"}).Run(ctx); ExitCode(err) != ExitInvalidArgs {
		t.Fatalf("missing file: ExitCode = %d (%v)", ExitCode(err), err)
	}
}

func TestListCommand(t *testing.T) {
	ctx, out := testContext(t, nil)
	root := filepath.Join(ctx.ProjectDir, "jobs")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	str := func(s string) *string { return &s }
	entries := []catalog.Entry{
		{JobID: "1", SavedAt: "2026-01-01T00:00:00Z", Title: str("Old"), ApplicationDeadline: str("2026-01-05"), Tags: []string{"go"}},
		{JobID: "2", SavedAt: "2026-01-03T00:00:00Z", Title: str("New"), ApplicationDeadline: str("2026-03-01")},
		{JobID: "3", SavedAt: "2026-01-02T00:00:00Z", Title: str("Mid")},
	}
	if err := catalog.WriteEntries(catalog.Path(root), entries); err != nil {
		t.Fatalf("WriteEntries() error = %v", err)
	}

	if err := (&ListCmd{By: "saved", Format: "csv", Links: "short"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 || !strings.HasPrefix(lines[1], "2,") || !strings.HasPrefix(lines[2], "3,") || !strings.HasPrefix(lines[3], "1,") {
		t.Fatalf("csv output = %q", out.String())
	}

	out.Reset()
	ctx.JSONOutput = true
	if err := (&ListCmd{By: "deadline", Active: true, Links: "short"}).Run(ctx); err != nil {
		t.Fatalf("Run(active) error = %v", err)
	}
	var rows []export.Row
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out.String())
	}
	if len(rows) != 1 || rows[0].JobID != "2" {
		t.Fatalf("active rows = %+v", rows)
	}

	out.Reset()
	if err := (&ListCmd{By: "saved", Tag: "GO", Links: "short"}).Run(ctx); err != nil {
		t.Fatalf("Run(tag) error = %v", err)
	}
	rows = nil
	_ = json.Unmarshal(out.Bytes(), &rows)
	if len(rows) != 1 || rows[0].JobID != "1" {
		t.Fatalf("tag rows = %+v", rows)
	}
}

func TestListTableEmpty(t *testing.T) {
	ctx, out := testContext(t, nil)
	if err := (&ListCmd{By: "saved", Format: "table", Links: "short"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "No jobs found matching the criteria.") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestExportCommand(t *testing.T) {
	fetcher := &stubFetcher{html: fixture(t, "job_details_state.html")}
	ctx, out := testContext(t, fetcher)
	if err := (&SaveCmd{URL: jobURL}).Run(ctx); err != nil {
		t.Fatalf("save error = %v", err)
	}
	out.Reset()

	if err := (&ExportCmd{JobDir: filepath.Join("jobs", "1436685"), Format: "html"}).Run(ctx); err != nil {
		t.Fatalf("Run(html) error = %v", err)
	}
	want := filepath.Join("jobs", "1436685", export.HTMLFileName)
	if strings.TrimSpace(out.String()) != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
	page, err := os.ReadFile(filepath.Join(ctx.ProjectDir, want))
	if err != nil || !strings.Contains(string(page), "<h1>AI Engineer</h1>") {
		t.Fatalf("html page: %v\n%s", err, page)
	}

	if err := (&ExportCmd{JobDir: "jobs/none", Format: "pdf"}).Run(ctx); ExitCode(err) != ExitInvalidArgs {
		t.Fatalf("missing dir: ExitCode = %d (%v)", ExitCode(err), err)
	}
}

func TestResolveFormatFlagsWin(t *testing.T) {
	ctx := &Context{Out: io.Discard, JSONOutput: true}
	if got, _ := resolveFormat(ctx, "csv", false); got != export.FormatJSON {
		t.Fatalf("resolveFormat(json) = %q", got)
	}
	ctx = &Context{Out: io.Discard, PlainText: true}
	if got, _ := resolveFormat(ctx, "", false); got != export.FormatTSV {
		t.Fatalf("resolveFormat(plain) = %q", got)
	}
	ctx = &Context{Out: io.Discard}
	if got, _ := resolveFormat(ctx, "", true); got != export.FormatCSV {
		t.Fatalf("resolveFormat(file) = %q", got)
	}
	if got, _ := resolveFormat(ctx, "md", false); got != export.FormatMarkdown {
		t.Fatalf("resolveFormat(md) = %q", got)
	}
}

func TestProxiesCheckReportsJobData(t *testing.T) {
	fetcher := &stubFetcher{html: fixture(t, "job_details_state.html")}
	ctx, out := testContext(t, fetcher)
	ctx.JSONOutput = true

	check := &ProxyCheckCmd{Job: "1436685", Timeout: 5, Proxies: "http://127.0.0.1:8080,proxy.local"}
	if err := check.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var results []proxyCheckResult
	if err := json.Unmarshal(out.Bytes(), &results); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Status != proxyOK || results[0].JobTitle != "AI Engineer" || results[0].Bytes == 0 {
		t.Fatalf("results[0] = %+v, want ok with job title", results[0])
	}
	if results[1].Status != proxyFailed || results[1].Error == "" {
		t.Fatalf("results[1] = %+v, want error for proxy without scheme", results[1])
	}
	if fetcher.calls != 1 {
		t.Fatalf("fetch calls = %d, want 1", fetcher.calls)
	}
}

func TestProxiesCheckWithoutJobData(t *testing.T) {
	ctx, out := testContext(t, &stubFetcher{html: "<html><body>Please verify you are human</body></html>"})
	ctx.PlainText = true

	check := &ProxyCheckCmd{Job: jobURL, Timeout: 5, Proxies: "http://127.0.0.1:8080"}
	err := check.Run(ctx)
	if got := ExitCode(err); got != ExitFetchFailed {
		t.Fatalf("ExitCode() = %d, want %d (err %v)", got, ExitFetchFailed, err)
	}
	if !strings.Contains(out.String(), "http://127.0.0.1:8080\t"+proxyNoState+"\t") {
		t.Fatalf("output = %q, want no_state row", out.String())
	}

	ctx, _ = testContext(t, &stubFetcher{err: errors.New("connection refused")})
	if got := ExitCode(check.Run(ctx)); got != ExitFetchFailed {
		t.Fatalf("ExitCode() = %d, want %d", got, ExitFetchFailed)
	}
}

func TestProxiesCheckArguments(t *testing.T) {
	t.Setenv("JOBSNAP_CONFIG_DIR", t.TempDir())
	t.Setenv("JOBSNAP_PROXIES", "")

	for _, job := range []string{"https://bdjobs.com/", "/jobs/details/12", ""} {
		ctx, _ := testContext(t, &stubFetcher{})
		check := &ProxyCheckCmd{Job: job, Timeout: 5, Proxies: "http://127.0.0.1:8080"}
		if got := ExitCode(check.Run(ctx)); got != ExitInvalidArgs {
			t.Fatalf("Run(job %q) exit = %d, want %d", job, got, ExitInvalidArgs)
		}
	}

	ctx, _ := testContext(t, &stubFetcher{})
	check := &ProxyCheckCmd{Job: jobURL, Timeout: 5}
	err := check.Run(ctx)
	if got := ExitCode(err); got != ExitInvalidArgs || !errors.Is(err, network.ErrNoProxies) {
		t.Fatalf("Run() without proxies = %v (exit %d), want ErrNoProxies", err, got)
	}
}
