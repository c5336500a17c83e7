package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsKeepInsertionOrder(t *testing.T) {
	t.Parallel()

	var fields Fields
	fields.Set("vacancy", "2")
	fields.Set("age", "25 to 30 years")
	fields.Set("location", "Dhaka")
	fields.Set("vacancy", "3")

	data, err := json.Marshal(fields)
	require.NoError(t, err)
	assert.JSONEq(t, `{"vacancy":"3","age":"25 to 30 years","location":"Dhaka"}`, string(data))
	assert.Equal(t, `{"vacancy":"3","age":"25 to 30 years","location":"Dhaka"}`, string(data))
}

func TestFieldsAddKeepsFirstValue(t *testing.T) {
	t.Parallel()

	var fields Fields
	assert.True(t, fields.Add("salary", "Negotiable"))
	assert.False(t, fields.Add("salary", "Tk. 20000"))

	got, ok := fields.Get("salary")
	require.True(t, ok)
	assert.Equal(t, "Negotiable", got)
}

func TestFieldsUnmarshalPreservesDocumentOrder(t *testing.T) {
	t.Parallel()

	var fields Fields
	require.NoError(t, json.Unmarshal([]byte(`{"z":"last","a":"first","n":12}`), &fields))
	assert.Equal(t, Fields{{"z", "last"}, {"a", "first"}, {"n", "12"}}, fields)
}

func TestJobNullSections(t *testing.T) {
	t.Parallel()

	job := Job{SavedAt: "2026-01-02T03:04:05Z", Source: "bdjobs", ParserVersion: "0.3.0"}
	data, err := json.Marshal(job)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "summary")
	assert.Nil(t, raw["summary"])
	assert.Nil(t, raw["job_id"])
	assert.Nil(t, raw["requirements"])

	var back Job
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Nil(t, back.Summary)
	assert.False(t, back.HasStructuredSections())
}

func TestResponsibilitiesRoundTrip(t *testing.T) {
	t.Parallel()

	resp := Responsibilities{Sections: Sections{
		{Heading: "The Role", Block: *NewTextBlock("Own the platform.")},
		{Heading: "About Us", Block: *NewBulletBlock([]string{"Founded 2001"})},
	}}
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"sections":{"The Role":{"bullets":null,"text":"Own the platform."},"About Us":{"bullets":["Founded 2001"],"text":null}}}`, string(data))

	var back Responsibilities
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back.Sections, 2)
	assert.Equal(t, "The Role", back.Sections[0].Heading)
	assert.Equal(t, "About Us", back.Sections[1].Heading)
	assert.Equal(t, []string{"Founded 2001"}, back.Sections[1].Block.Bullets)
}

func TestBlockConstructorsRejectEmpty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewBulletBlock(nil))
	assert.Nil(t, NewTextBlock("  \n "))
	assert.True(t, (*Block)(nil).IsEmpty())

	var req Requirements
	assert.False(t, req.Set(RequirementEducation, nil))
	assert.True(t, req.Set(RequirementEducation, NewBulletBlock([]string{"BSc in CSE"})))
	assert.False(t, req.Set("hobbies", NewTextBlock("chess")))
	assert.False(t, req.IsEmpty())
}
