package parser

import (
	"regexp"
	"strings"

	"github.com/Ahnaf19/JobSnap/internal/htmltext"
	"github.com/Ahnaf19/JobSnap/internal/models"
	"github.com/Ahnaf19/JobSnap/internal/ngstate"
	"github.com/Ahnaf19/JobSnap/internal/section"
	"github.com/Ahnaf19/JobSnap/internal/textutil"
)

var commaSpacing = regexp.MustCompile(`,\s*`)

// FromState maps the ng-state job-detail record onto a models.Job. It
// returns nil when the page carries no usable state blob.
func FromState(in Input) *models.Job {
	detail := ngstate.FindJobDetails(ngstate.ExtractState(in.HTML))
	if detail == nil {
		return nil
	}
	return fromDetail(detail, in)
}

func fromDetail(d ngstate.Detail, in Input) *models.Job {
	jobID := firstNonEmpty(in.JobID, d.String("jobId", "JobId", "JobID"))
	url := in.URL
	if url == "" && jobID != "" {
		url = DetailsURL(jobID)
	}

	experience := htmlBullets(d.String("experience", "Experience"))

	return &models.Job{
		JobID:                     models.String(jobID),
		URL:                       models.String(url),
		SavedAt:                   in.SavedAt,
		Source:                    Source,
		ParserVersion:             Version,
		Title:                     models.String(d.String("JobTitle", "JobTitleEN", "JobTitleENG")),
		Company:                   models.String(d.String("CompanyNameENG", "CompnayName", "CompanyName", "CompanyNameEn")),
		ApplicationDeadline:       models.String(d.String("Deadline", "DeadlineDB")),
		Published:                 models.String(d.String("PostedOn")),
		Summary:                   stateSummary(d, experience),
		Requirements:              stateRequirements(d, experience),
		ResponsibilitiesContext:   stateResponsibilities(d),
		SkillsExpertise:           stateSkills(d),
		CompensationOtherBenefits: stateCompensation(d),
		ReadBeforeApply:           stateReadBeforeApply(d),
		CompanyInformation:        stateCompanyInfo(d),
	}
}

func stateSummary(d ngstate.Detail, experience []string) models.Fields {
	var summary models.Fields
	if v := d.String("JobVacancies"); v != "" {
		summary.Set("vacancy", v)
	}
	if len(experience) > 0 {
		summary.Set("experience", experience[0])
	}
	if v := d.Present("Age"); v != "" {
		summary.Set("age", v)
	}
	if v := d.String("JobLocation"); v != "" {
		summary.Set("location", v)
	}
	if v := d.String("JobSalaryRangeText", "JobSalaryRange"); v != "" {
		summary.Set("salary", v)
	}
	if v := d.String("PostedOn"); v != "" {
		summary.Set("published", v)
	}
	return summary
}

func stateRequirements(d ngstate.Detail, experience []string) *models.Requirements {
	req := &models.Requirements{}
	req.Set(models.RequirementEducation, models.NewBulletBlock(htmlBullets(d.String("EducationRequirements"))))
	req.Set(models.RequirementExperience, models.NewBulletBlock(experience))

	if fragment := d.String("AdditionJobRequirements"); fragment != "" {
		text := htmltext.HTMLToText(fragment)
		if subs := section.Subsections(text, additionalSubsections); len(subs) > 0 {
			for _, sub := range subs {
				req.Set(sub.Key, sub.Block)
			}
		} else {
			req.Set(models.RequirementAdditionalRequirements, section.ParseBlock(text))
		}
	}

	if req.IsEmpty() {
		return nil
	}
	return req
}

func stateResponsibilities(d ngstate.Detail) *models.Responsibilities {
	description := d.String("JobDescription")
	if description == "" {
		return nil
	}
	return parseResponsibilities(htmltext.HTMLToText(description))
}

func stateSkills(d ngstate.Detail) *models.Skills {
	skills := splitCommaList(d.String("SkillsRequired"))
	suggested := splitCommaList(d.String("SuggestedSkills"))
	if len(skills) == 0 && len(suggested) == 0 {
		return nil
	}
	return &models.Skills{Skills: skills, SuggestedByBdjobs: suggested}
}

func stateCompensation(d ngstate.Detail) *models.Compensation {
	comp := &models.Compensation{}
	if fragment := d.String("JobOtherBenifits", "JobOtherBenefits"); fragment != "" {
		comp.Benefits = htmlBullets(fragment)
		if len(comp.Benefits) == 0 {
			comp.Benefits = looseLines(htmltext.HTMLToText(fragment), "What We Offer")
		}
	}
	if v := d.String("JobWorkPlace"); v != "" {
		comp.Details.Set("workplace", strings.TrimSpace(commaSpacing.ReplaceAllString(v, ", ")))
	}
	if v := d.String("JobNature"); v != "" {
		comp.Details.Set("employment_status", v)
	}
	if v := d.Present("Gender"); v != "" {
		comp.Details.Set("gender", v)
	}
	if v := d.String("JobLocation"); v != "" {
		comp.Details.Set("job_location", v)
	}
	if comp.IsEmpty() {
		return nil
	}
	return comp
}

func stateReadBeforeApply(d ngstate.Detail) *string {
	instructions := d.String("ApplyInstruction")
	if instructions == "" {
		return nil
	}
	return models.String(htmltext.HTMLToText(instructions))
}

func stateCompanyInfo(d ngstate.Detail) *models.CompanyInfo {
	var details models.Fields
	if v := d.String("CompanyAddress"); v != "" {
		details.Set("address", textutil.NormalizeWhitespace(v))
	}
	if v := d.String("CompanyBusiness"); v != "" {
		details.Set("business", textutil.NormalizeWhitespace(v))
	}
	if len(details) == 0 {
		return nil
	}
	return &models.CompanyInfo{Details: details}
}

func htmlBullets(fragment string) []string {
	if fragment == "" {
		return nil
	}
	return section.ParseBullets(htmltext.HTMLToText(fragment))
}

func splitCommaList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// looseLines returns the non-blank lines of text except the given headings.
func looseLines(text string, drop ...string) []string {
	var out []string
	for _, line := range textutil.NonEmptyLines(textutil.NormalizeWhitespace(text)) {
		dropped := false
		for _, heading := range drop {
			if strings.EqualFold(strings.TrimSuffix(line, ":"), heading) {
				dropped = true
				break
			}
		}
		if !dropped {
			out = append(out, line)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
