package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ahnaf19/JobSnap/internal/parser"
	"github.com/Ahnaf19/JobSnap/internal/render"
	"github.com/Ahnaf19/JobSnap/internal/snapshot"
)

type ReparseCmd struct {
	Target   string `arg:"" help:"Job directory or its raw.html file."`
	Template string `help:"Markdown filename template using {title}, {company} and {job_id}." aliases:"name"`
}

// Run parses the stored page again and rewrites job.json, the document and
// the catalog entry. The output root is the parent of the job directory.
func (r *ReparseCmd) Run(ctx *Context) error {
	target := ctx.resolvePath(r.Target)
	if _, err := os.Stat(target); err != nil {
		return exitError(ExitInvalidArgs, fmt.Errorf("path not found: %s", r.Target))
	}
	snap, err := snapshot.Load(target)
	if err != nil {
		return exitError(ExitInvalidArgs, err)
	}

	jobID, _ := snap.JobID()
	job := parser.New(ctx.Logger).Parse(parser.Input{
		HTML:    snap.HTML,
		URL:     snap.URL(),
		JobID:   jobID,
		SavedAt: ctx.savedAt(),
	})
	if !extracted(job) {
		return exitError(ExitParseFailed, fmt.Errorf("parse failed: no job data extracted"))
	}

	store := snapshot.NewStore(filepath.Dir(snap.Dir), firstNonEmpty(r.Template, ctx.Config.Template), ctx.Logger)
	res, err := store.Save(job, snap.HTML, render.Markdown(job))
	if errors.Is(err, snapshot.ErrMissingJob) {
		return exitError(ExitParseFailed, fmt.Errorf("parse failed: no job id for %s", r.Target))
	}
	if err != nil {
		return exitError(ExitWriteFailed, err)
	}
	return writeSnapshotReport(ctx, snapshotReport{
		Status:   "reparsed",
		JobID:    jobID,
		Dir:      res.Dir,
		Markdown: res.MarkdownPath,
		Index:    res.IndexPath,
	})
}
