package models

import "strings"

// Job is the canonical record produced for one bdjobs posting.
// Optional scalars are nil when no source recovered them.
type Job struct {
	JobID         *string `json:"job_id"`
	URL           *string `json:"url"`
	SavedAt       string  `json:"saved_at"`
	Source        string  `json:"source"`
	ParserVersion string  `json:"parser_version"`

	Title               *string `json:"title"`
	Company             *string `json:"company"`
	ApplicationDeadline *string `json:"application_deadline"`
	Published           *string `json:"published"`

	Summary                   Fields            `json:"summary"`
	Requirements              *Requirements     `json:"requirements"`
	ResponsibilitiesContext   *Responsibilities `json:"responsibilities_context"`
	SkillsExpertise           *Skills           `json:"skills_expertise"`
	CompensationOtherBenefits *Compensation     `json:"compensation_other_benefits"`
	ReadBeforeApply           *string           `json:"read_before_apply"`
	CompanyInformation        *CompanyInfo      `json:"company_information"`
	RawText                   *string           `json:"raw_text"`
}

// HasStructuredSections reports whether any section other than raw_text carries content.
func (j *Job) HasStructuredSections() bool {
	if j == nil {
		return false
	}
	return len(j.Summary) > 0 ||
		!j.Requirements.IsEmpty() ||
		!j.ResponsibilitiesContext.IsEmpty() ||
		!j.SkillsExpertise.IsEmpty() ||
		!j.CompensationOtherBenefits.IsEmpty() ||
		!IsBlank(j.ReadBeforeApply) ||
		!j.CompanyInformation.IsEmpty()
}

// Requirements holds the fixed requirement sub-blocks.
type Requirements struct {
	Education               *Block `json:"education,omitempty"`
	Experience              *Block `json:"experience,omitempty"`
	AdditionalRequirements  *Block `json:"additional_requirements,omitempty"`
	RequiredSkills          *Block `json:"required_skills,omitempty"`
	PreferredQualifications *Block `json:"preferred_qualifications,omitempty"`
}

const (
	RequirementEducation               = "education"
	RequirementExperience              = "experience"
	RequirementAdditionalRequirements  = "additional_requirements"
	RequirementRequiredSkills          = "required_skills"
	RequirementPreferredQualifications = "preferred_qualifications"
)

// Set stores block under one of the requirement keys. Unknown keys and empty
// blocks are ignored.
func (r *Requirements) Set(key string, block *Block) bool {
	if block.IsEmpty() {
		return false
	}
	switch key {
	case RequirementEducation:
		r.Education = block
	case RequirementExperience:
		r.Experience = block
	case RequirementAdditionalRequirements:
		r.AdditionalRequirements = block
	case RequirementRequiredSkills:
		r.RequiredSkills = block
	case RequirementPreferredQualifications:
		r.PreferredQualifications = block
	default:
		return false
	}
	return true
}

func (r *Requirements) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.Education.IsEmpty() &&
		r.Experience.IsEmpty() &&
		r.AdditionalRequirements.IsEmpty() &&
		r.RequiredSkills.IsEmpty() &&
		r.PreferredQualifications.IsEmpty()
}

// Responsibilities is either a list of headed blocks or a raw text fallback.
type Responsibilities struct {
	Sections Sections `json:"sections,omitempty"`
	RawText  *string  `json:"raw_text,omitempty"`
}

func (r *Responsibilities) IsEmpty() bool {
	if r == nil {
		return true
	}
	return len(r.Sections) == 0 && IsBlank(r.RawText)
}

type Skills struct {
	Skills            []string `json:"skills"`
	SuggestedByBdjobs []string `json:"suggested_by_bdjobs"`
}

func (s *Skills) IsEmpty() bool {
	return s == nil || (len(s.Skills) == 0 && len(s.SuggestedByBdjobs) == 0)
}

type Compensation struct {
	Benefits []string `json:"benefits"`
	Details  Fields   `json:"details"`
}

func (c *Compensation) IsEmpty() bool {
	return c == nil || (len(c.Benefits) == 0 && len(c.Details) == 0)
}

// CompanyInfo carries Details or, when no label/value pairs were found, RawText.
type CompanyInfo struct {
	Details Fields  `json:"details,omitempty"`
	RawText *string `json:"raw_text,omitempty"`
}

func (c *CompanyInfo) IsEmpty() bool {
	return c == nil || (len(c.Details) == 0 && IsBlank(c.RawText))
}

// String returns a pointer to value, or nil when value is blank.
func String(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

// Value dereferences an optional string; nil yields "".
func Value(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func IsBlank(value *string) bool {
	return value == nil || strings.TrimSpace(*value) == ""
}
