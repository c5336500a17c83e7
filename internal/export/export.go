// Package export writes the catalog listing in several formats and turns a
// saved job directory into a standalone HTML page or PDF.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Ahnaf19/JobSnap/internal/catalog"
	"github.com/Ahnaf19/JobSnap/internal/models"
	"github.com/Ahnaf19/JobSnap/internal/ui"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

func ParseFormat(value string) (Format, error) {
	switch format := Format(strings.ToLower(strings.TrimSpace(value))); format {
	case "":
		return FormatTable, nil
	case FormatTable, FormatCSV, FormatJSON, FormatMarkdown, FormatTSV:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use table, csv, tsv, json or md)", value)
	}
}

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
	// Now anchors days-left computations; zero means time.Now.
	Now time.Time
	Loc *time.Location
	// Badge styles deadline badges in the table; nil leaves them plain.
	Badge func(ui.Badge) string
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

// Row is one listed entry with its deadline countdown.
type Row struct {
	catalog.Entry
	DaysLeft *int `json:"days_left"`
}

// Rows pairs entries with their days left relative to opts.Now.
func Rows(entries []catalog.Entry, opts WriteOptions) []Row {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	rows := make([]Row, 0, len(entries))
	for _, entry := range entries {
		row := Row{Entry: entry}
		if deadline, ok := entry.Deadline(opts.Loc); ok {
			days := catalog.DaysLeft(deadline, now)
			row.DaysLeft = &days
		}
		rows = append(rows, row)
	}
	return rows
}

func WriteEntries(w io.Writer, entries []catalog.Entry, format Format, opts WriteOptions) error {
	rows := Rows(entries, opts)
	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatCSV:
		return writeCSV(w, rows, ',')
	case FormatTSV:
		return writeCSV(w, rows, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, rows)
	default:
		return writeTable(w, rows, opts)
	}
}

func writeJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeCSV(w io.Writer, rows []Row, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(csvRow(row)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, rows []Row, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(tableRow(row, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No saved jobs.")
		return err
	}
	for _, row := range rows {
		urlLine := "  URL: -"
		if url := safe(models.Value(row.URL)); url != "" {
			urlLine = fmt.Sprintf("  URL: [Open listing](<%s>)", url)
		}
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", orDash(row.Title), orDash(row.Company)),
			fmt.Sprintf("  Job ID: %s", row.JobID),
		}
		if deadline := safe(models.Value(row.ApplicationDeadline)); deadline != "" {
			lines = append(lines, fmt.Sprintf("  Deadline: %s (%s)", deadline, badgeFor(row).Text))
		}
		lines = append(lines, fmt.Sprintf("  Saved: %s", row.SavedAt), urlLine)
		if row.Paths.JobMD != "" {
			lines = append(lines, fmt.Sprintf("  Document: %s", row.Paths.JobMD))
		}
		if len(row.Tags) > 0 {
			lines = append(lines, fmt.Sprintf("  Tags: %s", strings.Join(row.Tags, ", ")))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func csvHeader() []string {
	return []string{
		"job_id",
		"title",
		"company",
		"application_deadline",
		"days_left",
		"published",
		"saved_at",
		"url",
		"job_md",
		"tags",
	}
}

func csvRow(row Row) []string {
	days := ""
	if row.DaysLeft != nil {
		days = strconv.Itoa(*row.DaysLeft)
	}
	return []string{
		row.JobID,
		safe(models.Value(row.Title)),
		safe(models.Value(row.Company)),
		safe(models.Value(row.ApplicationDeadline)),
		days,
		safe(models.Value(row.Published)),
		row.SavedAt,
		safe(models.Value(row.URL)),
		row.Paths.JobMD,
		strings.Join(row.Tags, ";"),
	}
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func orDash(value *string) string {
	if v := safe(models.Value(value)); v != "" {
		return v
	}
	return "-"
}

func badgeFor(row Row) ui.Badge {
	if row.DaysLeft == nil {
		return ui.NoDeadlineBadge()
	}
	return ui.DeadlineBadge(*row.DaysLeft)
}

func tableHeader() []string {
	return []string{
		"job_id",
		"title",
		"company",
		"deadline",
		"status",
		"url",
	}
}

func tableRow(row Row, output *termenv.Output, opts WriteOptions) []string {
	const linkColor = "#87CEEB"

	url := safe(models.Value(row.URL))
	displayURL := "-"
	if url != "" {
		displayURL = url
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			displayURL = shortURLLabel(url)
		}
		if opts.ColorEnabled {
			displayURL = output.String(displayURL).Foreground(output.Color(linkColor)).String()
		}
		if opts.Hyperlinks {
			displayURL = hyperlink(url, displayURL)
		}
	}

	badge := badgeFor(row)
	status := badge.Text
	if opts.Badge != nil {
		status = opts.Badge(badge)
	}
	return []string{
		row.JobID,
		orDash(row.Title),
		orDash(row.Company),
		orDash(row.ApplicationDeadline),
		status,
		displayURL,
	}
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
