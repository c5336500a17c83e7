package snapshot

import (
	"regexp"
	"strings"

	"github.com/Ahnaf19/JobSnap/internal/textutil"
)

// DefaultTemplate names the Markdown document of a snapshot.
const DefaultTemplate = "{title}_{company}_{job_id}.md"

var (
	pathSeparators = regexp.MustCompile(`[\\/]+`)
	unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)
	underscores    = regexp.MustCompile(`_+`)
)

// FilenameParams are the template and the job fields it may reference.
type FilenameParams struct {
	Template string
	Title    string
	Company  string
	JobID    string
}

// BuildFilename substitutes {title}, {company} and {job_id} with filename-safe
// slugs, sanitizes the whole result and ensures a .md suffix.
func BuildFilename(p FilenameParams) string {
	template := strings.TrimSpace(p.Template)
	if template == "" {
		template = DefaultTemplate
	}

	result := strings.NewReplacer(
		"{title}", segment(p.Title, "job"),
		"{company}", segment(p.Company, "unknown"),
		"{job_id}", segment(p.JobID, "unknown"),
	).Replace(template)

	result = pathSeparators.ReplaceAllString(result, "_")
	result = unsafeFilename.ReplaceAllString(result, "_")
	result = underscores.ReplaceAllString(result, "_")
	result = strings.Trim(result, "_")
	if result == "" {
		result = "job"
	}
	if !strings.HasSuffix(strings.ToLower(result), ".md") {
		result += ".md"
	}
	return result
}

func segment(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	return textutil.SanitizeFilenameSegment(value, textutil.DefaultSegmentLength)
}
