// Package parser turns a saved bdjobs page into a models.Job by combining a
// parse of the embedded state blob with a parse of the visible text.
package parser

import (
	"strings"
	"time"

	"github.com/Ahnaf19/JobSnap/internal/models"
	"github.com/rs/zerolog"
)

const (
	Source  = "bdjobs"
	Version = "0.3.0"
)

// DetailsBaseURL prefixes a job id to form its canonical page URL.
const DetailsBaseURL = "https://bdjobs.com/jobs/details/"

// Input is one page to parse. Empty URL and JobID mean unknown.
type Input struct {
	HTML    string
	URL     string
	JobID   string
	SavedAt string
}

type Parser struct {
	logger zerolog.Logger
	now    func() time.Time
}

func New(logger zerolog.Logger) *Parser {
	return &Parser{logger: logger, now: time.Now}
}

// Parse runs both sources and merges them, state blob first. The raw page
// text is kept only when no structured section was recovered.
func Parse(in Input) *models.Job {
	return New(zerolog.Nop()).Parse(in)
}

func (p *Parser) Parse(in Input) *models.Job {
	if strings.TrimSpace(in.SavedAt) == "" {
		in.SavedAt = p.now().UTC().Format(time.RFC3339)
	}

	textJob := FromText(in)
	stateJob := FromState(in)
	if stateJob == nil {
		p.logger.Debug().Str("job_id", in.JobID).Msg("no ng-state job details, using page text only")
	} else {
		p.logger.Debug().Str("job_id", in.JobID).Msg("parsed ng-state job details")
	}

	job := Merge(stateJob, textJob)
	if job.HasStructuredSections() {
		job.RawText = nil
	} else {
		p.logger.Debug().Str("job_id", in.JobID).Msg("no structured sections found, keeping raw text")
	}
	return job
}

// Merge fills every empty top-level field of primary from fallback. Nested
// values are taken whole from whichever side wins. A nil primary yields
// fallback unchanged.
func Merge(primary, fallback *models.Job) *models.Job {
	if primary == nil {
		return fallback
	}
	merged := *primary
	if fallback == nil {
		return &merged
	}

	mergeString(&merged.JobID, fallback.JobID)
	mergeString(&merged.URL, fallback.URL)
	if strings.TrimSpace(merged.SavedAt) == "" {
		merged.SavedAt = fallback.SavedAt
	}
	if strings.TrimSpace(merged.Source) == "" {
		merged.Source = fallback.Source
	}
	if strings.TrimSpace(merged.ParserVersion) == "" {
		merged.ParserVersion = fallback.ParserVersion
	}
	mergeString(&merged.Title, fallback.Title)
	mergeString(&merged.Company, fallback.Company)
	mergeString(&merged.ApplicationDeadline, fallback.ApplicationDeadline)
	mergeString(&merged.Published, fallback.Published)
	if len(merged.Summary) == 0 {
		merged.Summary = fallback.Summary
	}
	if merged.Requirements.IsEmpty() {
		merged.Requirements = fallback.Requirements
	}
	if merged.ResponsibilitiesContext.IsEmpty() {
		merged.ResponsibilitiesContext = fallback.ResponsibilitiesContext
	}
	if merged.SkillsExpertise.IsEmpty() {
		merged.SkillsExpertise = fallback.SkillsExpertise
	}
	if merged.CompensationOtherBenefits.IsEmpty() {
		merged.CompensationOtherBenefits = fallback.CompensationOtherBenefits
	}
	mergeString(&merged.ReadBeforeApply, fallback.ReadBeforeApply)
	if merged.CompanyInformation.IsEmpty() {
		merged.CompanyInformation = fallback.CompanyInformation
	}
	mergeString(&merged.RawText, fallback.RawText)
	return &merged
}

func mergeString(dst **string, fallback *string) {
	if models.IsBlank(*dst) {
		*dst = fallback
	}
}

// DetailsURL is the canonical page URL for a job id.
func DetailsURL(jobID string) string {
	return DetailsBaseURL + jobID
}
