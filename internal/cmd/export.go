package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Ahnaf19/JobSnap/internal/export"
)

type ExportCmd struct {
	JobDir string `arg:"" help:"Saved job directory, e.g. jobs/1436685."`
	Format string `help:"Export format: html or pdf." enum:"html,pdf" default:"pdf"`
}

func (e *ExportCmd) Run(ctx *Context) error {
	format, err := export.ParseDocumentFormat(e.Format)
	if err != nil {
		return exitError(ExitInvalidArgs, err)
	}

	doc, err := export.LoadDocument(ctx.resolvePath(e.JobDir))
	if err != nil {
		if errors.Is(err, export.ErrNotDirectory) || errors.Is(err, export.ErrMissingJobJSON) || errors.Is(err, export.ErrNoMarkdown) {
			return exitError(ExitInvalidArgs, err)
		}
		return err
	}
	ctx.Logger.Debug().Str("markdown", doc.MarkdownPath).Str("format", string(format)).Msg("exporting document")

	path, err := doc.Write(format, ctx.now())
	if err != nil {
		return exitError(ExitWriteFailed, err)
	}

	shown := ctx.displayPath(path)
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]string{"format": string(format), "path": shown})
	}
	if ctx.UI == nil || ctx.PlainText {
		_, err := fmt.Fprintln(ctx.Out, shown)
		return err
	}
	label := "PDF"
	if format == export.FormatHTML {
		label = "HTML"
	}
	ctx.UI.Successf("%s saved: %s", label, shown)
	return nil
}
