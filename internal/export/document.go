package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Ahnaf19/JobSnap/internal/models"
	"github.com/Ahnaf19/JobSnap/internal/render"
	"github.com/Ahnaf19/JobSnap/internal/snapshot"
	"github.com/araddon/dateparse"
	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"
)

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"

	HTMLFileName = "job.html"
	PDFFileName  = "job.pdf"
)

var (
	ErrNotDirectory   = errors.New("job directory not found")
	ErrMissingJobJSON = errors.New("missing required file: " + snapshot.JobJSONFile)
	ErrNoMarkdown     = errors.New("no markdown file found")
)

func ParseDocumentFormat(value string) (Format, error) {
	switch format := Format(strings.ToLower(strings.TrimSpace(value))); format {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (use html or pdf)", value)
	}
}

// Document is a saved job ready for export.
type Document struct {
	Dir          string
	Job          models.Job
	MarkdownPath string
	Markdown     string
	// FrontMatter holds the document's YAML header, empty when absent.
	FrontMatter map[string]string
}

// LoadDocument reads job.json and the first .md file of a job directory.
func LoadDocument(dir string) (*Document, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	data, err := os.ReadFile(filepath.Join(dir, snapshot.JobJSONFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrMissingJobJSON
		}
		return nil, err
	}
	doc := &Document{Dir: dir}
	if err := json.Unmarshal(data, &doc.Job); err != nil {
		return nil, fmt.Errorf("decode %s: %w", snapshot.JobJSONFile, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkdown, dir)
	}
	sort.Strings(names)

	doc.MarkdownPath = filepath.Join(dir, names[0])
	markdown, err := os.ReadFile(doc.MarkdownPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", names[0], err)
	}
	doc.Markdown = string(markdown)
	doc.FrontMatter = ReadFrontMatter(doc.Markdown)
	return doc, nil
}

// Write renders the document as format into the job directory and returns
// the written path.
func (d *Document) Write(format Format, now time.Time) (string, error) {
	var (
		name string
		data []byte
		err  error
	)
	switch format {
	case FormatHTML:
		name, data = HTMLFileName, []byte(d.HTML(now))
	case FormatPDF:
		name = PDFFileName
		data, err = d.PDF(now)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return "", err
	}
	path := filepath.Join(d.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ReadFrontMatter decodes the leading "---" block of a Markdown document.
// Non-string values are formatted with %v.
func ReadFrontMatter(markdown string) map[string]string {
	lines := strings.Split(markdown, "\n")
	if len(lines) == 0 || lines[0] != "---" {
		return nil
	}
	for i := 1; i < len(lines); i++ {
		if lines[i] != "---" {
			continue
		}
		var raw map[string]any
		if err := yaml.Unmarshal([]byte(strings.Join(lines[1:i], "\n")), &raw); err != nil {
			return nil
		}
		out := make(map[string]string, len(raw))
		for key, value := range raw {
			if value != nil {
				out[key] = fmt.Sprintf("%v", value)
			}
		}
		return out
	}
	return nil
}

// StripMetadata removes the front matter, the title heading and the leading
// company and deadline lines, leaving only the section body.
func StripMetadata(markdown string) string {
	lines := strings.Split(markdown, "\n")
	if len(lines) > 0 && lines[0] == "---" {
		for i := 1; i < len(lines); i++ {
			if lines[i] == "---" {
				lines = lines[i+1:]
				break
			}
		}
	}

	lines = dropBlank(lines)
	if len(lines) > 0 && strings.HasPrefix(lines[0], "# ") {
		lines = lines[1:]
	}
	for len(lines) > 0 {
		first := lines[0]
		if strings.TrimSpace(first) != "" &&
			!strings.HasPrefix(first, "**Company:**") &&
			!strings.HasPrefix(first, "**Application Deadline:**") {
			break
		}
		lines = lines[1:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func dropBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	return lines
}

// Title prefers job.json, then the front matter.
func (d *Document) Title() string {
	return d.pick(d.Job.Title, "title", render.PlaceholderTitle)
}

func (d *Document) Company() string {
	return d.pick(d.Job.Company, "company", "")
}

func (d *Document) pick(value *string, key, fallback string) string {
	if v := strings.TrimSpace(models.Value(value)); v != "" {
		return v
	}
	if v := strings.TrimSpace(d.FrontMatter[key]); v != "" {
		return v
	}
	return fallback
}

type metaItem struct {
	label string
	value string
}

func (d *Document) metadata() []metaItem {
	items := []metaItem{
		{"Job ID", d.pick(d.Job.JobID, "job_id", "")},
		{"Company", d.Company()},
		{"Saved", formatDate(d.Job.SavedAt)},
	}
	if deadline := strings.TrimSpace(models.Value(d.Job.ApplicationDeadline)); deadline != "" {
		items = append(items, metaItem{"Deadline", formatDate(deadline)})
	}
	if published := strings.TrimSpace(models.Value(d.Job.Published)); published != "" {
		items = append(items, metaItem{"Published", formatDate(published)})
	}
	return items
}

// formatDate prints parseable dates as "2 Jan 2006" and anything else as is.
func formatDate(value string) string {
	value = strings.TrimSpace(value)
	t, err := dateparse.ParseAny(value)
	if err != nil {
		return value
	}
	return t.Format("2 Jan 2006")
}

const pageStyle = `    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', 'Helvetica Neue', Arial, sans-serif;
      line-height: 1.6;
      max-width: 800px;
      margin: 0 auto;
      padding: 20px;
      color: #333;
      background: #fff;
    }
    h1 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px; margin-top: 0; }
    h2 { color: #34495e; margin-top: 30px; border-bottom: 1px solid #e0e0e0; padding-bottom: 5px; }
    h3 { color: #555; margin-top: 20px; }
    ul { padding-left: 25px; margin: 10px 0; }
    li { margin: 8px 0; }
    .metadata {
      background: #f8f9fa;
      padding: 15px;
      border-radius: 5px;
      margin-bottom: 30px;
      font-size: 14px;
      border-left: 4px solid #3498db;
    }
    .metadata strong { color: #555; }
    .footer {
      margin-top: 50px;
      padding-top: 20px;
      border-top: 1px solid #ddd;
      font-size: 12px;
      color: #999;
      text-align: center;
    }
    @media print {
      body { max-width: 100%; }
      .metadata { page-break-inside: avoid; }
      h2 { page-break-after: avoid; }
    }
`

// HTML renders the document as a standalone page.
func (d *Document) HTML(now time.Time) string {
	var b strings.Builder
	title := d.Title()
	pageTitle := title
	if company := d.Company(); company != "" {
		pageTitle += " - " + company
	}

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "  <title>%s</title>\n", html.EscapeString(pageTitle))
	b.WriteString("  <style>\n" + pageStyle + "  </style>\n</head>\n<body>\n")

	b.WriteString("  <div class=\"metadata\">\n")
	for i, item := range d.metadata() {
		sep := ""
		if i > 0 {
			sep = " &nbsp;&nbsp; "
		}
		fmt.Fprintf(&b, "    %s<strong>%s:</strong> %s\n", sep, item.label, html.EscapeString(item.value))
	}
	b.WriteString("  </div>\n\n")

	fmt.Fprintf(&b, "  <h1>%s</h1>\n\n", html.EscapeString(title))
	b.WriteString(MarkdownToHTML(StripMetadata(d.Markdown)))
	b.WriteString("\n\n  <div class=\"footer\">\n")
	fmt.Fprintf(&b, "    Generated by JobSnap &bull; %s\n", now.Format("2 Jan 2006"))
	b.WriteString("  </div>\n</body>\n</html>\n")
	return b.String()
}

var (
	boldItalic = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	bold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italic     = regexp.MustCompile(`\*(.+?)\*`)
)

// inlineHTML escapes text and converts ***, ** and * emphasis.
func inlineHTML(text string) string {
	text = html.EscapeString(text)
	text = boldItalic.ReplaceAllString(text, "<strong><em>$1</em></strong>")
	text = bold.ReplaceAllString(text, "<strong>$1</strong>")
	return italic.ReplaceAllString(text, "<em>$1</em>")
}

// MarkdownToHTML converts the subset of Markdown the renderer emits:
// headings up to level three, "-" or "*" bullets, and paragraphs whose
// lines are joined with <br>.
func MarkdownToHTML(markdown string) string {
	var (
		out       []string
		paragraph []string
		items     []string
	)
	flush := func() {
		if len(paragraph) > 0 {
			out = append(out, "<p>"+strings.Join(paragraph, "<br>")+"</p>")
			paragraph = nil
		}
		if len(items) > 0 {
			out = append(out, "<ul>\n"+strings.Join(items, "\n")+"\n</ul>")
			items = nil
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if level, text, ok := headingLine(line); ok {
			flush()
			out = append(out, fmt.Sprintf("<h%d>%s</h%d>", level, inlineHTML(text), level))
			continue
		}
		if item, ok := bulletLine(line); ok {
			if len(paragraph) > 0 {
				flush()
			}
			items = append(items, "<li>"+inlineHTML(item)+"</li>")
			continue
		}
		if len(items) > 0 {
			flush()
		}
		paragraph = append(paragraph, inlineHTML(unescapeHeading(line)))
	}
	flush()
	return strings.Join(out, "\n")
}

func headingLine(line string) (int, string, bool) {
	for level := 3; level >= 1; level-- {
		prefix := strings.Repeat("#", level) + " "
		if text, ok := strings.CutPrefix(line, prefix); ok {
			return level, strings.TrimSpace(text), true
		}
	}
	return 0, "", false
}

func bulletLine(line string) (string, bool) {
	for _, prefix := range []string{"- ", "* "} {
		if item, ok := strings.CutPrefix(line, prefix); ok {
			return strings.TrimSpace(item), true
		}
	}
	return "", false
}

// unescapeHeading undoes the backslash the renderer puts before body lines
// that start with '#'.
func unescapeHeading(line string) string {
	if strings.HasPrefix(line, `\#`) {
		return line[1:]
	}
	return line
}

// PDF lays the same content out on A4 pages with the core Helvetica font.
func (d *Document) PDF(now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(85, 85, 85)
	parts := make([]string, 0, 5)
	for _, item := range d.metadata() {
		parts = append(parts, item.label+": "+item.value)
	}
	pdf.MultiCell(0, 5, tr(strings.Join(parts, "   ")), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, tr(d.Title()), "", "L", false)
	pdf.Ln(4)

	for _, line := range strings.Split(StripMetadata(d.Markdown), "\n") {
		if strings.TrimSpace(line) == "" {
			pdf.Ln(3)
			continue
		}
		if level, text, ok := headingLine(line); ok {
			pdfHeading(pdf, tr(plainInline(text)), level)
			continue
		}
		pdf.SetFont("Helvetica", "", 10)
		if item, ok := bulletLine(line); ok {
			pdf.MultiCell(0, 5, tr("• "+plainInline(item)), "", "L", false)
			continue
		}
		pdf.MultiCell(0, 5, tr(plainInline(unescapeHeading(line))), "", "L", false)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(153, 153, 153)
	pdf.CellFormat(0, 5, tr("Generated by JobSnap • "+now.Format("2 Jan 2006")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func pdfHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

// plainInline drops emphasis markers.
func plainInline(text string) string {
	text = boldItalic.ReplaceAllString(text, "$1")
	text = bold.ReplaceAllString(text, "$1")
	return strings.TrimSpace(italic.ReplaceAllString(text, "$1"))
}
