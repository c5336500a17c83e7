// Package catalog maintains index.jsonl, the one-line-per-job catalog kept at
// the root of the output directory.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Ahnaf19/JobSnap/internal/models"
	"github.com/go-playground/validator/v10"
)

var ErrNotFound = errors.New("job not found in catalog")

// Paths are relative to the output root.
type Paths struct {
	RawHTML string `json:"raw_html" validate:"required"`
	JobJSON string `json:"job_json" validate:"required"`
	JobMD   string `json:"job_md" validate:"required"`
}

// Entry is one catalog line.
type Entry struct {
	JobID               string   `json:"job_id" validate:"required,numeric"`
	URL                 *string  `json:"url"`
	SavedAt             string   `json:"saved_at" validate:"required"`
	Title               *string  `json:"title"`
	Company             *string  `json:"company"`
	ApplicationDeadline *string  `json:"application_deadline"`
	Published           *string  `json:"published"`
	ContentHash         string   `json:"content_hash" validate:"omitempty,len=64,hexadecimal"`
	Paths               Paths    `json:"paths"`
	ParserVersion       string   `json:"parser_version"`
	Tags                []string `json:"tags,omitempty"`
}

// NewEntry describes a saved job whose rendered document is markdown.
func NewEntry(job *models.Job, markdown string, paths Paths) Entry {
	return Entry{
		JobID:               models.Value(job.JobID),
		URL:                 job.URL,
		SavedAt:             job.SavedAt,
		Title:               job.Title,
		Company:             job.Company,
		ApplicationDeadline: job.ApplicationDeadline,
		Published:           job.Published,
		ContentHash:         ContentHash(markdown),
		Paths:               paths,
		ParserVersion:       job.ParserVersion,
	}
}

// ContentHash is the hex SHA-256 of a rendered document.
func ContentHash(document string) string {
	sum := sha256.Sum256([]byte(document))
	return hex.EncodeToString(sum[:])
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func entryValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the required fields of e.
func (e Entry) Validate() error {
	err := entryValidator().Struct(e)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid catalog entry %q: %s", e.JobID, strings.Join(problems, ", "))
}

// requiredJobFields are the job.json fields a complete snapshot carries.
var requiredJobFields = []struct {
	name    string
	present func(*models.Job) bool
}{
	{"job_id", func(j *models.Job) bool { return !models.IsBlank(j.JobID) }},
	{"url", func(j *models.Job) bool { return !models.IsBlank(j.URL) }},
	{"saved_at", func(j *models.Job) bool { return strings.TrimSpace(j.SavedAt) != "" }},
	{"source", func(j *models.Job) bool { return strings.TrimSpace(j.Source) != "" }},
	{"parser_version", func(j *models.Job) bool { return strings.TrimSpace(j.ParserVersion) != "" }},
	{"title", func(j *models.Job) bool { return !models.IsBlank(j.Title) }},
	{"company", func(j *models.Job) bool { return !models.IsBlank(j.Company) }},
	{"summary", func(j *models.Job) bool { return len(j.Summary) > 0 }},
	{"requirements", func(j *models.Job) bool { return !j.Requirements.IsEmpty() }},
	{"responsibilities_context", func(j *models.Job) bool { return !j.ResponsibilitiesContext.IsEmpty() }},
	{"company_information", func(j *models.Job) bool { return !j.CompanyInformation.IsEmpty() }},
}

// MissingFields lists the expected job.json fields that job leaves empty.
// A non-empty result is a quality warning, not an error.
func MissingFields(job *models.Job) []string {
	if job == nil {
		return []string{"job"}
	}
	var missing []string
	for _, f := range requiredJobFields {
		if !f.present(job) {
			missing = append(missing, f.name)
		}
	}
	return missing
}
