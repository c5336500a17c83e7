package parser

import "github.com/Ahnaf19/JobSnap/internal/section"

const (
	keySummary          = "summary"
	keyRequirements     = "requirements"
	keyResponsibilities = "responsibilities_context"
	keySkills           = "skills_expertise"
	keyCompensation     = "compensation_other_benefits"
	keyReadBeforeApply  = "read_before_apply"
	keyCompanyInfo      = "company_information"
)

var (
	compensationHeadings = []string{"Compensation & Other Benefits", "Salary & Benefits"}
	companyHeadings      = []string{"Company Information"}
	readBeforeHeadings   = []string{"Read Before Apply"}
	responsibilityTitles = []string{"Responsibilities & Context", "Responsibilities"}
)

// pageSections lists the page sections in the order they appear on bdjobs.
var pageSections = []section.Heading{
	{Key: keySummary, Spellings: []string{"Summary"}},
	{Key: keyRequirements, Spellings: []string{"Requirements"}},
	{Key: keyResponsibilities, Spellings: responsibilityTitles},
	{Key: keySkills, Spellings: []string{"Skills & Expertise"}},
	{Key: keyCompensation, Spellings: compensationHeadings},
	{Key: keyReadBeforeApply, Spellings: readBeforeHeadings},
	{Key: keyCompanyInfo, Spellings: companyHeadings},
}

var requirementSubsections = []section.Heading{
	{Key: "education", Spellings: []string{"Education"}},
	{Key: "experience", Spellings: []string{"Experience"}},
	{Key: "additional_requirements", Spellings: []string{"Additional Requirements"}},
	{Key: "required_skills", Spellings: []string{"Required Skills"}},
	{Key: "preferred_qualifications", Spellings: []string{"Preferred Qualifications"}},
}

// additionalSubsections splits the AdditionJobRequirements fragment of the state blob.
var additionalSubsections = []section.Heading{
	{Key: "additional_requirements", Spellings: []string{"Requirements"}},
	{Key: "preferred_qualifications", Spellings: []string{"Preferred Qualifications"}},
}

var responsibilitySubsections = headingsByTitle(
	"About Us",
	"The Role",
	"Key Responsibilities",
	"Job Context",
	"Job Responsibilities",
	"Responsibilities",
)

// footerMarkers start the site chrome that follows every posting.
var footerMarkers = []string{
	"report this job / company",
	"need any support?",
	"our contact centre",
	"job seekers",
	"recruiter",
	"download job seeker app",
	"download employer app",
	"our valuable partners",
	"stay connected with us",
}

func headingsByTitle(titles ...string) []section.Heading {
	out := make([]section.Heading, 0, len(titles))
	for _, title := range titles {
		out = append(out, section.Heading{Key: title, Spellings: []string{title}})
	}
	return out
}
