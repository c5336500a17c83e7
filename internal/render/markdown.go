// Package render serializes a models.Job into the Markdown document stored
// next to every snapshot: a front-matter block, a title and the known
// sections under fixed level-two headings.
package render

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Ahnaf19/JobSnap/internal/models"
	"github.com/Ahnaf19/JobSnap/internal/textutil"
)

const (
	HeadingSummary          = "Summary"
	HeadingRequirements     = "Requirements"
	HeadingResponsibilities = "Responsibilities & Context"
	HeadingSkills           = "Skills & Expertise"
	HeadingCompensation     = "Compensation & Other Benefits"
	HeadingReadBeforeApply  = "Read Before Apply"
	HeadingCompanyInfo      = "Company Information"
	HeadingRawText          = "Raw Text"
)

// Headings is the complete set of level-two headings a document may contain,
// in emission order.
var Headings = []string{
	HeadingSummary,
	HeadingRequirements,
	HeadingResponsibilities,
	HeadingSkills,
	HeadingCompensation,
	HeadingReadBeforeApply,
	HeadingCompanyInfo,
	HeadingRawText,
}

// PlaceholderTitle stands in for a missing job title.
const PlaceholderTitle = "Job Circular"

var requirementTitles = []struct {
	title string
	block func(*models.Requirements) *models.Block
}{
	{"Education", func(r *models.Requirements) *models.Block { return r.Education }},
	{"Experience", func(r *models.Requirements) *models.Block { return r.Experience }},
	{"Additional Requirements", func(r *models.Requirements) *models.Block { return r.AdditionalRequirements }},
	{"Required Skills", func(r *models.Requirements) *models.Block { return r.RequiredSkills }},
	{"Preferred Qualifications", func(r *models.Requirements) *models.Block { return r.PreferredQualifications }},
}

// Markdown renders job. A nil job renders as an empty record. The output
// ends with exactly one newline.
func Markdown(job *models.Job) string {
	if job == nil {
		job = &models.Job{}
	}

	chunks := []string{frontMatter(job), "# " + titleLine(job)}
	if meta := metaLines(job); meta != "" {
		chunks = append(chunks, meta)
	}

	structured := false
	for _, section := range []string{
		summarySection(job.Summary),
		requirementsSection(job.Requirements),
		responsibilitiesSection(job.ResponsibilitiesContext),
		skillsSection(job.SkillsExpertise),
		compensationSection(job.CompensationOtherBenefits),
		paragraphSection(HeadingReadBeforeApply, job.ReadBeforeApply),
		companySection(job.CompanyInformation),
	} {
		if section == "" {
			continue
		}
		chunks = append(chunks, section)
		structured = true
	}
	if !structured {
		if raw := paragraphSection(HeadingRawText, job.RawText); raw != "" {
			chunks = append(chunks, raw)
		}
	}

	return strings.TrimSpace(strings.Join(chunks, "\n\n")) + "\n"
}

func frontMatter(job *models.Job) string {
	fields := []struct {
		key   string
		value string
	}{
		{"job_id", models.Value(job.JobID)},
		{"url", models.Value(job.URL)},
		{"saved_at", job.SavedAt},
		{"title", models.Value(job.Title)},
		{"company", models.Value(job.Company)},
		{"application_deadline", models.Value(job.ApplicationDeadline)},
		{"published", models.Value(job.Published)},
		{"source", job.Source},
		{"parser_version", job.ParserVersion},
	}

	lines := make([]string, 0, len(fields)+2)
	lines = append(lines, "---")
	for _, f := range fields {
		lines = append(lines, f.key+": "+yamlScalar(f.value))
	}
	lines = append(lines, "---")
	return strings.Join(lines, "\n")
}

// yamlScalar leaves plain values bare and double-quotes anything a YAML
// reader could misread as structure or as a non-string type.
func yamlScalar(value string) string {
	value = textutil.NormalizeWhitespace(value)
	if !needsQuoting(value) {
		return value
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func needsQuoting(value string) bool {
	if value == "" {
		return true
	}
	if strings.ContainsAny(value, ":#\n\"\\\t") {
		return true
	}
	first, _ := utf8.DecodeRuneInString(value)
	if strings.ContainsRune("-?,[]{}&*!|>'%@`", first) {
		return true
	}
	switch strings.ToLower(value) {
	case "~", "null", "true", "false", "yes", "no", "on", "off", "y", "n":
		return true
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseInt(value, 0, 64); err == nil {
		return true
	}
	return false
}

func titleLine(job *models.Job) string {
	if title := inline(models.Value(job.Title)); title != "" {
		return title
	}
	return PlaceholderTitle
}

func metaLines(job *models.Job) string {
	var lines []string
	if company := inline(models.Value(job.Company)); company != "" {
		lines = append(lines, "**Company:** "+company)
	}
	if deadline := inline(models.Value(job.ApplicationDeadline)); deadline != "" {
		lines = append(lines, "**Application Deadline:** "+deadline)
	}
	return strings.Join(lines, "\n")
}

func summarySection(summary models.Fields) string {
	lines := fieldLines(summary)
	if len(lines) == 0 {
		return ""
	}
	return "## " + HeadingSummary + "\n" + strings.Join(lines, "\n")
}

func requirementsSection(req *models.Requirements) string {
	if req.IsEmpty() {
		return ""
	}
	var blocks []string
	for _, rt := range requirementTitles {
		if body := blockBody(rt.block(req)); body != "" {
			blocks = append(blocks, "### "+rt.title+"\n"+body)
		}
	}
	if len(blocks) == 0 {
		return ""
	}
	return "## " + HeadingRequirements + "\n\n" + strings.Join(blocks, "\n\n")
}

func responsibilitiesSection(resp *models.Responsibilities) string {
	if resp.IsEmpty() {
		return ""
	}
	if len(resp.Sections) == 0 {
		return paragraphSection(HeadingResponsibilities, resp.RawText)
	}
	parts := []string{"## " + HeadingResponsibilities}
	for _, sec := range resp.Sections {
		heading := inline(sec.Heading)
		body := blockBody(&sec.Block)
		if heading == "" || body == "" {
			continue
		}
		parts = append(parts, "### "+heading+"\n"+body)
	}
	if len(parts) == 1 {
		return ""
	}
	return strings.Join(parts, "\n\n")
}

func skillsSection(skills *models.Skills) string {
	if skills.IsEmpty() {
		return ""
	}
	var lines []string
	if items := bulletLines(skills.Skills); len(items) > 0 {
		lines = append(lines, "### Skills")
		lines = append(lines, items...)
	}
	if items := bulletLines(skills.SuggestedByBdjobs); len(items) > 0 {
		lines = append(lines, "### Suggested By Bdjobs")
		lines = append(lines, items...)
	}
	if len(lines) == 0 {
		return ""
	}
	return "## " + HeadingSkills + "\n" + strings.Join(lines, "\n")
}

func compensationSection(comp *models.Compensation) string {
	if comp.IsEmpty() {
		return ""
	}
	lines := bulletLines(comp.Benefits)
	if details := fieldLines(comp.Details); len(details) > 0 {
		lines = append(lines, "### Details")
		lines = append(lines, details...)
	}
	if len(lines) == 0 {
		return ""
	}
	return "## " + HeadingCompensation + "\n" + strings.Join(lines, "\n")
}

func companySection(info *models.CompanyInfo) string {
	if info.IsEmpty() {
		return ""
	}
	if lines := fieldLines(info.Details); len(lines) > 0 {
		return "## " + HeadingCompanyInfo + "\n" + strings.Join(lines, "\n")
	}
	return paragraphSection(HeadingCompanyInfo, info.RawText)
}

func paragraphSection(heading string, text *string) string {
	body := paragraph(models.Value(text))
	if body == "" {
		return ""
	}
	return "## " + heading + "\n" + body
}

func blockBody(block *models.Block) string {
	if block.IsEmpty() {
		return ""
	}
	if lines := bulletLines(block.Bullets); len(lines) > 0 {
		return strings.Join(lines, "\n")
	}
	return paragraph(models.Value(block.Text))
}

func bulletLines(items []string) []string {
	var lines []string
	for _, item := range items {
		if item = inline(item); item != "" {
			lines = append(lines, "- "+item)
		}
	}
	return lines
}

func fieldLines(fields models.Fields) []string {
	var lines []string
	for _, f := range fields {
		label := Label(f.Key)
		value := inline(f.Value)
		if label == "" || value == "" {
			continue
		}
		lines = append(lines, "- "+label+": "+value)
	}
	return lines
}

// Label turns a slug into display text: "application_deadline" becomes
// "Application Deadline".
func Label(key string) string {
	words := strings.Split(key, "_")
	out := words[:0]
	for _, word := range words {
		if word == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		out = append(out, string(unicode.ToUpper(r))+word[size:])
	}
	return strings.Join(out, " ")
}

// paragraph normalizes text and escapes lines that would otherwise read as
// Markdown headings.
func paragraph(text string) string {
	text = textutil.NormalizeWhitespace(text)
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "#") {
			lines[i] = `\` + line
		}
	}
	return strings.Join(lines, "\n")
}

// inline collapses text onto a single line.
func inline(text string) string {
	return strings.Join(textutil.NonEmptyLines(textutil.NormalizeWhitespace(text)), " ")
}
