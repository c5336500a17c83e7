package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Ahnaf19/JobSnap/internal/parser"
	"github.com/Ahnaf19/JobSnap/internal/render"
	"github.com/Ahnaf19/JobSnap/internal/scraper"
)

type ParseCmd struct {
	File    string `arg:"" help:"Saved job page; '-' reads stdin."`
	URL     string `help:"Page URL recorded in the result."`
	JobID   string `name:"job-id" help:"Job id; derived from --url when omitted."`
	SavedAt string `name:"saved-at" help:"Timestamp recorded in the result (default now)."`
	Format  string `help:"Output format: md or json." enum:"md,json" default:"md"`
	Output  string `short:"o" help:"Write output to a file."`
}

// Run parses a page offline and prints the document or the record.
func (p *ParseCmd) Run(ctx *Context) error {
	html, err := p.read(ctx)
	if err != nil {
		return exitError(ExitInvalidArgs, err)
	}

	jobID := strings.TrimSpace(p.JobID)
	if jobID == "" {
		jobID, _ = scraper.ExtractJobID(p.URL)
	}
	job := parser.New(ctx.Logger).Parse(parser.Input{
		HTML:    html,
		URL:     strings.TrimSpace(p.URL),
		JobID:   jobID,
		SavedAt: firstNonEmpty(strings.TrimSpace(p.SavedAt), ctx.savedAt()),
	})

	writer := ctx.Out
	if p.Output != "" {
		file, err := os.Create(ctx.resolvePath(p.Output))
		if err != nil {
			return exitError(ExitWriteFailed, err)
		}
		defer file.Close()
		writer = file
	}

	if p.Format == "json" || ctx.JSONOutput {
		enc := json.NewEncoder(writer)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(job)
	}
	_, err = io.WriteString(writer, render.Markdown(job))
	return err
}

func (p *ParseCmd) read(ctx *Context) (string, error) {
	if p.File == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(ctx.resolvePath(p.File))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", p.File, err)
	}
	return string(data), nil
}
