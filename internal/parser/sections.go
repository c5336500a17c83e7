package parser

import (
	"regexp"
	"strings"

	"github.com/Ahnaf19/JobSnap/internal/kv"
	"github.com/Ahnaf19/JobSnap/internal/models"
	"github.com/Ahnaf19/JobSnap/internal/section"
	"github.com/Ahnaf19/JobSnap/internal/textutil"
)

var (
	skillHeadingLine  = regexp.MustCompile(`(?i)^(skills\s*&\s*expertise|suggested by( bdjobs)?)$`)
	moreJobsLine      = regexp.MustCompile(`(?i)more jobs from this company`)
	suggestionMarkers = []string{"suggested by bdjobs", "suggested by"}
)

func parseSummary(text string) models.Fields {
	var summary models.Fields
	for _, field := range kv.ExtractLabelValuePairs(text) {
		lines := textutil.NonEmptyLines(field.Value)
		if len(lines) == 0 {
			continue
		}
		summary.Set(field.Key, lines[0])
	}
	return summary
}

func parseRequirements(text string) *models.Requirements {
	return requirementsFrom(section.Subsections(text, requirementSubsections))
}

func requirementsFrom(subs []section.Sub) *models.Requirements {
	req := &models.Requirements{}
	for _, sub := range subs {
		req.Set(sub.Key, sub.Block)
	}
	if req.IsEmpty() {
		return nil
	}
	return req
}

// parseResponsibilities keys blocks by their sub-heading. Without any known
// sub-heading the whole section becomes raw text.
func parseResponsibilities(text string) *models.Responsibilities {
	subs := section.Subsections(text, responsibilitySubsections)
	if len(subs) == 0 {
		cleaned := textutil.NormalizeWhitespace(section.StripAnyHeading(textutil.NormalizeWhitespace(text), responsibilityTitles...))
		if cleaned == "" {
			return nil
		}
		return &models.Responsibilities{RawText: &cleaned}
	}
	sections := make(models.Sections, 0, len(subs))
	for _, sub := range subs {
		sections = append(sections, models.Section{Heading: sub.Heading, Block: *sub.Block})
	}
	return &models.Responsibilities{Sections: sections}
}

// parseSkills splits the section at the "Suggested by Bdjobs" marker. Each
// half is read as bullets, or as one skill per line.
func parseSkills(text string) *models.Skills {
	cleaned := textutil.NormalizeWhitespace(text)
	if cleaned == "" {
		return nil
	}

	skillsText, suggestedText := cleaned, ""
	lower := strings.ToLower(cleaned)
	for _, marker := range suggestionMarkers {
		if idx := strings.Index(lower, marker); idx >= 0 {
			skillsText = cleaned[:idx]
			suggestedText = cleaned[idx+len(marker):]
			break
		}
	}

	skills := chipLines(skillsText)
	suggested := chipLines(suggestedText)
	if len(skills) == 0 && len(suggested) == 0 {
		return nil
	}
	return &models.Skills{Skills: skills, SuggestedByBdjobs: suggested}
}

func chipLines(text string) []string {
	if bullets := section.ParseBullets(text); len(bullets) > 0 {
		return bullets
	}
	var out []string
	for _, line := range textutil.NonEmptyLines(text) {
		if skillHeadingLine.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func parseCompensation(text string) *models.Compensation {
	cleaned := textutil.NormalizeWhitespace(section.StripAnyHeading(text, compensationHeadings...))
	comp := &models.Compensation{
		Benefits: section.ParseBullets(cleaned),
		Details:  kv.ExtractDetailsFromLines(cleaned, compensationHeadings),
	}
	if comp.IsEmpty() {
		return nil
	}
	return comp
}

func parseCompanyInfo(text string) *models.CompanyInfo {
	cleaned := textutil.NormalizeWhitespace(section.StripAnyHeading(text, companyHeadings...))
	var kept []string
	for _, line := range strings.Split(cleaned, "\n") {
		if moreJobsLine.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	cleaned = textutil.NormalizeWhitespace(strings.Join(kept, "\n"))

	if details := kv.ExtractDetailsFromLines(cleaned, companyHeadings); len(details) > 0 {
		return &models.CompanyInfo{Details: details}
	}
	if cleaned == "" {
		return nil
	}
	return &models.CompanyInfo{RawText: &cleaned}
}

func parseReadBeforeApply(text string) *string {
	return models.String(textutil.NormalizeWhitespace(section.StripAnyHeading(text, readBeforeHeadings...)))
}
