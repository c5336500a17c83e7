package kv

import (
	"testing"

	"github.com/Ahnaf19/JobSnap/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestExtractLabelValuePairs(t *testing.T) {
	t.Parallel()

	text := "Summary\nVacancy: 2\nAge : 25 to 30 years\nLocation: Dhaka\nSalary: Negotiable\nPublished: 12 Jan 2026"
	got := ExtractLabelValuePairs(text)

	want := models.Fields{
		{Key: "vacancy", Value: "2"},
		{Key: "age", Value: "25 to 30 years"},
		{Key: "location", Value: "Dhaka"},
		{Key: "salary", Value: "Negotiable"},
		{Key: "published", Value: "12 Jan 2026"},
	}
	assert.Equal(t, want, got)
}

func TestExtractLabelValuePairsDropsEmptyValues(t *testing.T) {
	t.Parallel()

	got := ExtractLabelValuePairs("Vacancy:\nSalary & Benefits: Festival bonus")
	value, ok := got.Get("salary_benefits")
	assert.True(t, ok)
	assert.Equal(t, "Festival bonus", value)
	assert.False(t, got.Has("vacancy"))
}

func TestExtractLabelValuePairsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ExtractLabelValuePairs(""))
	assert.Empty(t, ExtractLabelValuePairs("no labels here"))
}

func TestExtractDetailsFromLines(t *testing.T) {
	t.Parallel()

	text := `Compensation & Other Benefits
- Festival Bonus
- Lunch facilities
Salary
Negotiable
Workplace: Work at office
Employment Status
Full Time`

	got := ExtractDetailsFromLines(text, []string{"Compensation & Other Benefits"})
	want := models.Fields{
		{Key: "salary", Value: "Negotiable"},
		{Key: "workplace", Value: "Work at office"},
		{Key: "employment_status", Value: "Full Time"},
	}
	assert.Equal(t, want, got)
}

func TestExtractDetailsFromLinesFirstKeyWins(t *testing.T) {
	t.Parallel()

	got := ExtractDetailsFromLines("Address: Road 1, Dhaka\nAddress: Road 2\nAddress\nRoad 3", nil)
	assert.Equal(t, models.Fields{{Key: "address", Value: "Road 1, Dhaka"}}, got)
}

func TestExtractDetailsFromLinesLabelHeuristic(t *testing.T) {
	t.Parallel()

	long := "This sentence is clearly much longer than forty characters"
	got := ExtractDetailsFromLines(long+"\nnext line\nBusiness\n- bullet\nWeb\nexample.com", nil)

	assert.False(t, got.Has("this_sentence_is_clearly_much_longer_than_forty_characters"))
	assert.False(t, got.Has("business"))
	value, ok := got.Get("web")
	assert.True(t, ok)
	assert.Equal(t, "example.com", value)
	value, ok = got.Get("next_line")
	assert.True(t, ok)
	assert.Equal(t, "Business", value)
}

func TestExtractDetailsFromLinesSkipsHeadingAsValue(t *testing.T) {
	t.Parallel()

	got := ExtractDetailsFromLines("Business\nCompany Information:\nAddress\nDhaka", []string{"Company Information"})
	assert.Equal(t, models.Fields{{Key: "address", Value: "Dhaka"}}, got)
}

func TestExtractDetailsFromLinesColonLabelTakesNextLine(t *testing.T) {
	t.Parallel()

	got := ExtractDetailsFromLines("Salary:\nNegotiable\nWorkplace:\nWork at office", nil)
	want := models.Fields{
		{Key: "salary", Value: "Negotiable"},
		{Key: "workplace", Value: "Work at office"},
	}
	assert.Equal(t, want, got)
}
