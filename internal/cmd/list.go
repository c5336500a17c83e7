package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Ahnaf19/JobSnap/internal/catalog"
	"github.com/Ahnaf19/JobSnap/internal/export"
	"github.com/muesli/termenv"
)

type ListCmd struct {
	Out     string `help:"Output directory holding index.jsonl (default from config)." placeholder:"DIR"`
	By      string `help:"Sort by saved, deadline or company." enum:"saved,deadline,company" default:"saved"`
	Active  bool   `help:"Only jobs whose deadline is still ahead." xor:"deadline"`
	Expired bool   `help:"Only jobs whose deadline has passed." xor:"deadline"`
	Tag     string `help:"Only jobs carrying this tag."`
	Format  string `help:"Output format: table, csv, tsv, json, md." enum:",table,csv,tsv,json,md" default:""`
	Links   string `help:"Table link display: short or full." enum:"short,full" default:"short"`
	Output  string `short:"o" help:"Write output to a file."`
}

func (l *ListCmd) Run(ctx *Context) error {
	root := ctx.resolvePath(firstNonEmpty(l.Out, ctx.Config.OutputDir))
	entries, stats, err := catalog.ReadEntries(catalog.Path(root))
	if err != nil {
		return err
	}
	if stats.Skipped > 0 {
		ctx.Logger.Warn().Int("skipped", stats.Skipped).Str("index", catalog.Path(root)).Msg("ignored unreadable catalog lines")
	}

	key, err := catalog.ParseSortKey(l.By)
	if err != nil {
		return exitError(ExitInvalidArgs, err)
	}
	now := ctx.now()
	entries = catalog.Filter{Active: l.Active, Expired: l.Expired, Tag: l.Tag, Now: now, Loc: time.Local}.Apply(entries)
	catalog.Sort(entries, key, time.Local)

	writer := ctx.Out
	if l.Output != "" {
		file, err := os.Create(ctx.resolvePath(l.Output))
		if err != nil {
			return exitError(ExitWriteFailed, err)
		}
		defer file.Close()
		writer = file
	}

	format, err := resolveFormat(ctx, l.Format, l.Output != "")
	if err != nil {
		return exitError(ExitInvalidArgs, err)
	}

	if format == export.FormatTable {
		if len(entries) == 0 {
			fmt.Fprintln(writer, "No jobs found matching the criteria.")
			if ctx.UI != nil {
				fmt.Fprintln(writer, ctx.UI.Dim("Tip: run 'jobsnap save <url>' to save your first job."))
			}
			return nil
		}
		fmt.Fprintf(writer, "%s\n\n", boldText(ctx, jobCount(len(entries))))
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled && l.Output == ""
	opts := export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && isTTY(writer),
		LinkStyle:    export.LinkStyle(l.Links),
		Now:          now,
		Loc:          time.Local,
	}
	if colorEnabled {
		opts.Badge = ctx.UI.Render
	}
	return export.WriteEntries(writer, entries, format, opts)
}

func jobCount(n int) string {
	if n == 1 {
		return "1 job found"
	}
	return fmt.Sprintf("%d jobs found", n)
}

func boldText(ctx *Context, text string) string {
	if ctx.UI == nil {
		return text
	}
	return ctx.UI.Bold(text)
}

// resolveFormat lets --json and --plain win over --format. Without a flag,
// terminals get a table and files or pipes get CSV.
func resolveFormat(ctx *Context, flag string, toFile bool) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if flag != "" {
		return export.ParseFormat(flag)
	}
	if !toFile && isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}
