package parser

import (
	"regexp"
	"strings"

	"github.com/Ahnaf19/JobSnap/internal/htmltext"
	"github.com/Ahnaf19/JobSnap/internal/models"
	"github.com/Ahnaf19/JobSnap/internal/section"
	"github.com/Ahnaf19/JobSnap/internal/textutil"
)

var (
	siteSuffix       = regexp.MustCompile(`(?i)\s*[|-]\s*bdjobs(\.com)?\s*$`)
	deadlineLabelled = regexp.MustCompile(`(?i)Application Deadline\s*:\s*([^\n]+)`)
	deadlineLoose    = regexp.MustCompile(`(?i)Application Deadline\s*([^\n]+)`)
	calloutLines     = []*regexp.Regexp{
		regexp.MustCompile(`(?i)applicants are encouraged to submit video cv`),
		regexp.MustCompile(`(?i)to access application insights`),
	}
	titleSeparators = []string{" - ", " : ", " | ", " — ", " – "}
)

// FromText parses the visible page text: title and company from <title>,
// the deadline by pattern, and every known section through its sub-parser.
func FromText(in Input) *models.Job {
	pageText := pageText(in.HTML)
	titleTag, _ := htmltext.ExtractTitleTag(in.HTML)
	title, company := splitPageTitle(titleTag)

	job := &models.Job{
		JobID:               models.String(in.JobID),
		URL:                 models.String(in.URL),
		SavedAt:             in.SavedAt,
		Source:              Source,
		ParserVersion:       Version,
		Title:               title,
		Company:             company,
		ApplicationDeadline: findDeadline(pageText),
		RawText:             models.String(pageText),
	}

	texts := section.Texts(pageText, pageSections)
	if text, ok := texts[keySummary]; ok {
		job.Summary = parseSummary(text)
	}
	if text, ok := texts[keyRequirements]; ok {
		job.Requirements = parseRequirements(text)
	}
	if text, ok := texts[keyResponsibilities]; ok {
		job.ResponsibilitiesContext = parseResponsibilities(text)
	}
	if text, ok := texts[keySkills]; ok {
		job.SkillsExpertise = parseSkills(text)
	}
	if text, ok := texts[keyCompensation]; ok {
		job.CompensationOtherBenefits = parseCompensation(text)
	}
	if text, ok := texts[keyReadBeforeApply]; ok {
		job.ReadBeforeApply = parseReadBeforeApply(text)
	}
	if text, ok := texts[keyCompanyInfo]; ok {
		job.CompanyInformation = parseCompanyInfo(text)
	}
	if published, ok := job.Summary.Get("published"); ok {
		job.Published = models.String(published)
	}
	return job
}

// pageText flattens html and removes the site footer and call-out banners.
func pageText(html string) string {
	text := stripFooter(htmltext.HTMLToText(html))
	text = removeCalloutLines(text)
	return textutil.NormalizeWhitespace(text)
}

func stripFooter(text string) string {
	lower := strings.ToLower(text)
	cut := -1
	for _, marker := range footerMarkers {
		idx := strings.Index(lower, marker)
		if idx == -1 {
			continue
		}
		if cut == -1 || idx < cut {
			cut = idx
		}
	}
	if cut == -1 {
		return text
	}
	return strings.TrimSpace(text[:cut])
}

func removeCalloutLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if matchesAny(calloutLines, line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func matchesAny(patterns []*regexp.Regexp, line string) bool {
	for _, re := range patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// splitPageTitle reads "Title - Company | bdjobs.com" style page titles. The
// first separator that yields two or more parts wins; the first part is the
// title and the last the company.
func splitPageTitle(pageTitle string) (title, company *string) {
	cleaned := strings.TrimSpace(siteSuffix.ReplaceAllString(pageTitle, ""))
	for _, sep := range titleSeparators {
		if !strings.Contains(cleaned, sep) {
			continue
		}
		var parts []string
		for _, part := range strings.Split(cleaned, sep) {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) >= 2 {
			return models.String(parts[0]), models.String(parts[len(parts)-1])
		}
	}
	return models.String(cleaned), nil
}

func findDeadline(text string) *string {
	for _, re := range []*regexp.Regexp{deadlineLabelled, deadlineLoose} {
		if m := re.FindStringSubmatch(text); m != nil {
			if value := textutil.NormalizeWhitespace(m[1]); value != "" {
				return &value
			}
		}
	}
	return nil
}
