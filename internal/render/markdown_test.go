package render

import (
	"strings"
	"testing"

	"github.com/Ahnaf19/JobSnap/internal/models"
	"github.com/Ahnaf19/JobSnap/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// topHeadings returns the text of every "## " line of doc in order.
func topHeadings(doc string) []string {
	var out []string
	for _, line := range strings.Split(doc, "\n") {
		if heading, ok := strings.CutPrefix(line, "## "); ok {
			out = append(out, strings.TrimSpace(heading))
		}
	}
	return out
}

func sampleJob() *models.Job {
	return &models.Job{
		JobID:               models.String("7"),
		URL:                 models.String("https://bdjobs.com/jobs/details/7"),
		SavedAt:             "2026-01-01T00:00:00Z",
		Source:              "bdjobs",
		ParserVersion:       "0.3.0",
		Title:               models.String("Go Developer"),
		Company:             models.String("Acme Ltd"),
		ApplicationDeadline: models.String("30 Jan 2026"),
		Summary:             models.Fields{{Key: "vacancy", Value: "2"}},
		Requirements: &models.Requirements{
			Education:  models.NewBulletBlock([]string{"BSc"}),
			Experience: models.NewTextBlock("3 years"),
		},
		SkillsExpertise: &models.Skills{Skills: []string{"Go"}},
		ReadBeforeApply: models.String("Apply online"),
	}
}

func TestMarkdownLayout(t *testing.T) {
	want := `---
job_id: "7"
url: "https://bdjobs.com/jobs/details/7"
saved_at: "2026-01-01T00:00:00Z"
title: Go Developer
company: Acme Ltd
application_deadline: 30 Jan 2026
published: ""
source: bdjobs
parser_version: 0.3.0
---

# Go Developer

**Company:** Acme Ltd
**Application Deadline:** 30 Jan 2026

## Summary
- Vacancy: 2

## Requirements

### Education
- BSc

### Experience
3 years

## Skills & Expertise
### Skills
- Go

## Read Before Apply
Apply online
`
	assert.Equal(t, want, Markdown(sampleJob()))
}

func TestMarkdownAllSections(t *testing.T) {
	job := sampleJob()
	job.ResponsibilitiesContext = &models.Responsibilities{Sections: models.Sections{
		{Heading: "About Us", Block: *models.NewTextBlock("We build things.")},
		{Heading: "Key Responsibilities", Block: *models.NewBulletBlock([]string{"Ship"})},
	}}
	job.SkillsExpertise.SuggestedByBdjobs = []string{"Docker"}
	job.CompensationOtherBenefits = &models.Compensation{
		Benefits: []string{"Lunch"},
		Details:  models.Fields{{Key: "employment_status", Value: "Full Time"}},
	}
	job.CompanyInformation = &models.CompanyInfo{Details: models.Fields{{Key: "address", Value: "Road 1"}}}

	doc := Markdown(job)
	assert.Equal(t, Headings[:7], topHeadings(doc))
	assert.Contains(t, doc, "## Responsibilities & Context\n\n### About Us\nWe build things.\n\n### Key Responsibilities\n- Ship")
	assert.Contains(t, doc, "### Skills\n- Go\n### Suggested By Bdjobs\n- Docker")
	assert.Contains(t, doc, "## Compensation & Other Benefits\n- Lunch\n### Details\n- Employment Status: Full Time")
	assert.Contains(t, doc, "## Company Information\n- Address: Road 1")
}

func TestMarkdownRawTextFallbacks(t *testing.T) {
	job := &models.Job{
		ResponsibilitiesContext: &models.Responsibilities{RawText: models.String("Do the work.")},
		CompanyInformation:      &models.CompanyInfo{RawText: models.String("Acme is a software firm.")},
	}
	doc := Markdown(job)

	assert.Contains(t, doc, "## Responsibilities & Context\nDo the work.")
	assert.Contains(t, doc, "## Company Information\nAcme is a software firm.")
}

func TestMarkdownRoundTripFromState(t *testing.T) {
	html := `<html><head><title>x</title></head><body>
<script id="ng-state" type="application/json">{"details":{"u":"https://gateway.bdjobs.com/Job-Details?id=1","b":{"data":[{"JobTitle":"AI Engineer","CompnayName":"Acme Ltd","EducationRequirements":"<li>BSc in CSE</li>"}]}}}</script>
</body></html>`
	job := parser.Parse(parser.Input{HTML: html, JobID: "1", SavedAt: "2026-01-01T00:00:00Z"})
	require.NotNil(t, job.Requirements)
	require.NotNil(t, job.Requirements.Education)
	assert.Equal(t, []string{"BSc in CSE"}, job.Requirements.Education.Bullets)

	doc := Markdown(job)
	assert.Contains(t, doc, "# AI Engineer\n")
	assert.Contains(t, doc, "### Education\n- BSc in CSE")
}

func TestMarkdownFallbackDocument(t *testing.T) {
	html := `<html><head><title>Title - Company</title></head><body><p>Just a plain page.</p></body></html>`
	job := parser.Parse(parser.Input{HTML: html, JobID: "1", SavedAt: "2026-01-01T00:00:00Z"})

	doc := Markdown(job)
	assert.Equal(t, []string{HeadingRawText}, topHeadings(doc))
	assert.Contains(t, doc, "# Title\n")
	assert.Contains(t, doc, "Just a plain page.")
}

func TestMarkdownSectionExclusivity(t *testing.T) {
	job := sampleJob()
	job.RawText = models.String("everything on the page")

	doc := Markdown(job)
	assert.NotContains(t, doc, "## "+HeadingRawText)
	assert.NotContains(t, doc, "everything on the page")
}

func TestMarkdownHeadingWhitelist(t *testing.T) {
	allowed := make(map[string]bool, len(Headings))
	for _, h := range Headings {
		allowed[h] = true
	}

	hostile := &models.Job{
		Title:           models.String("## Not a section"),
		ReadBeforeApply: models.String("intro\n## Injected\n### Nested"),
		Summary:         models.Fields{{Key: "note", Value: "line one\n## two"}},
		ResponsibilitiesContext: &models.Responsibilities{Sections: models.Sections{
			{Heading: "Role\n## Sneaky", Block: *models.NewTextBlock("## also")},
		}},
	}
	for _, job := range []*models.Job{nil, {}, sampleJob(), hostile, {RawText: models.String("## raw\nbody")}} {
		doc := Markdown(job)
		for _, heading := range topHeadings(doc) {
			assert.True(t, allowed[heading], "unexpected heading %q in\n%s", heading, doc)
		}
	}
}

func TestMarkdownPlaceholderTitle(t *testing.T) {
	doc := Markdown(nil)
	assert.Contains(t, doc, "\n# "+PlaceholderTitle+"\n")
	assert.NotContains(t, doc, "**Company:**")

	doc = Markdown(&models.Job{Title: models.String("   ")})
	assert.Contains(t, doc, "# "+PlaceholderTitle)
}

func TestMarkdownSingleTrailingNewline(t *testing.T) {
	for _, job := range []*models.Job{nil, sampleJob(), {RawText: models.String("text\n\n\n")}} {
		doc := Markdown(job)
		assert.True(t, strings.HasSuffix(doc, "\n"))
		assert.False(t, strings.HasSuffix(doc, "\n\n"))
	}
}

func TestMarkdownFrontMatterIsYAML(t *testing.T) {
	job := sampleJob()
	job.Title = models.String(`Lead: Data "Platform" #1`)
	job.Company = models.String("- Beta\nGroup")
	job.Published = models.String("true")

	doc := Markdown(job)
	require.True(t, strings.HasPrefix(doc, "---\n"))
	end := strings.Index(doc[4:], "\n---\n")
	require.GreaterOrEqual(t, end, 0)

	var meta map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(doc[4:4+end]), &meta))

	assert.Equal(t, "7", meta["job_id"])
	assert.Equal(t, `Lead: Data "Platform" #1`, meta["title"])
	assert.Equal(t, "- Beta\nGroup", meta["company"])
	assert.Equal(t, "true", meta["published"])
	assert.Equal(t, "2026-01-01T00:00:00Z", meta["saved_at"])
	assert.Equal(t, "0.3.0", meta["parser_version"])
	assert.Equal(t, "30 Jan 2026", meta["application_deadline"])
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Application Deadline", Label("application_deadline"))
	assert.Equal(t, "Vacancy", Label("vacancy"))
	assert.Equal(t, "A B", Label("_a__b_"))
	assert.Equal(t, "", Label(""))
}
