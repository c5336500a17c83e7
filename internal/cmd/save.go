package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Ahnaf19/JobSnap/internal/catalog"
	"github.com/Ahnaf19/JobSnap/internal/models"
	"github.com/Ahnaf19/JobSnap/internal/parser"
	"github.com/Ahnaf19/JobSnap/internal/render"
	"github.com/Ahnaf19/JobSnap/internal/scraper"
	"github.com/Ahnaf19/JobSnap/internal/snapshot"
)

type SaveCmd struct {
	URL      string   `arg:"" help:"Job URL, e.g. https://bdjobs.com/jobs/details/1436685."`
	Out      string   `help:"Output directory (default from config, then jobs)." placeholder:"DIR"`
	Skip     bool     `help:"Do nothing when the job is already saved." aliases:"skip-existing"`
	Template string   `help:"Markdown filename template using {title}, {company} and {job_id}." aliases:"name"`
	Tag      []string `help:"Tag recorded in the catalog; repeatable or comma-separated." sep:","`
	Proxies  string   `help:"Comma-separated proxy URLs." env:"JOBSNAP_PROXIES"`
}

// snapshotReport is what save and reparse print.
type snapshotReport struct {
	Status   string `json:"status"`
	JobID    string `json:"job_id"`
	Dir      string `json:"dir"`
	Markdown string `json:"markdown"`
	Index    string `json:"index"`
}

func (s *SaveCmd) Run(ctx *Context) error {
	rawURL := strings.TrimSpace(s.URL)
	jobID, ok := scraper.ExtractJobID(rawURL)
	if !ok {
		return exitError(ExitInvalidArgs, fmt.Errorf("%w: expected /jobs/details/<job_id>", scraper.ErrInvalidJobURL))
	}

	root := ctx.resolvePath(firstNonEmpty(s.Out, ctx.Config.OutputDir))
	store := snapshot.NewStore(root, firstNonEmpty(s.Template, ctx.Config.Template), ctx.Logger)

	if (s.Skip || ctx.Config.Skip) && store.Exists(jobID) {
		ctx.Logger.Debug().Str("job_id", jobID).Msg("already saved, skipping")
		return writeSnapshotReport(ctx, snapshotReport{
			Status:   "skipped",
			JobID:    jobID,
			Dir:      store.JobDir(jobID),
			Markdown: savedDocument(store, jobID),
			Index:    store.IndexPath(),
		})
	}

	fetcher, err := ctx.fetcher(s.Proxies)
	if err != nil {
		return err
	}
	stopIndicator := startFetchIndicator(ctx)
	html, err := fetcher.FetchHTML(context.Background(), rawURL)
	if stopIndicator != nil {
		stopIndicator()
	}
	if err != nil {
		return exitError(ExitFetchFailed, fmt.Errorf("fetch failed: %w", err))
	}

	job := parser.New(ctx.Logger).Parse(parser.Input{
		HTML:    html,
		URL:     rawURL,
		JobID:   jobID,
		SavedAt: ctx.savedAt(),
	})
	if !extracted(job) {
		return exitError(ExitParseFailed, fmt.Errorf("parse failed: no job data extracted"))
	}

	res, err := store.Save(job, html, render.Markdown(job), s.Tag...)
	if err != nil {
		return exitError(ExitWriteFailed, err)
	}
	return writeSnapshotReport(ctx, snapshotReport{
		Status:   "saved",
		JobID:    jobID,
		Dir:      res.Dir,
		Markdown: res.MarkdownPath,
		Index:    res.IndexPath,
	})
}

// extracted reports whether parsing recovered anything from the page.
func extracted(job *models.Job) bool {
	if job == nil {
		return false
	}
	return !models.IsBlank(job.Title) || job.HasStructuredSections() || !models.IsBlank(job.RawText)
}

// savedDocument locates the Markdown document recorded for jobID.
func savedDocument(store *snapshot.Store, jobID string) string {
	entries, _, err := catalog.ReadEntries(store.IndexPath())
	if err != nil {
		return ""
	}
	entry, ok := catalog.Find(entries, jobID)
	if !ok || entry.Paths.JobMD == "" {
		return ""
	}
	return filepath.Join(store.Root(), filepath.FromSlash(entry.Paths.JobMD))
}

func writeSnapshotReport(ctx *Context, report snapshotReport) error {
	report.Dir = ctx.displayPath(report.Dir)
	report.Markdown = ctx.displayPath(report.Markdown)
	report.Index = ctx.displayPath(report.Index)

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	label := strings.ToUpper(report.Status[:1]) + report.Status[1:]
	lines := []string{
		fmt.Sprintf("%s: %s", label, report.Dir),
		fmt.Sprintf("Markdown: %s", firstNonEmpty(report.Markdown, "-")),
		fmt.Sprintf("Index: %s", report.Index),
	}
	if ctx.PlainText || ctx.UI == nil {
		_, err := fmt.Fprintln(ctx.Out, strings.Join(lines, "\n"))
		return err
	}
	if report.Status == "skipped" {
		ctx.UI.Infof("%s", lines[0])
	} else {
		ctx.UI.Successf("%s", lines[0])
	}
	if report.Markdown != "" {
		lines[1] = "Markdown: " + ctx.UI.LinkText(report.Markdown)
	}
	_, err := fmt.Fprintln(ctx.Out, strings.Join(lines[1:], "\n"))
	return err
}
