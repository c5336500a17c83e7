package ngstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!doctype html>
<html><head><title>AI Engineer - Acme Ltd</title></head>
<body>
<app-root></app-root>
<script id="ng-state" type="application/json">{
  "config": {"u": "https://api.example/config", "b": {"data": [{"x": 1}]}},
  "empty": {"u": "https://api.example/Job-Details?id=1", "b": {"data": []}},
  "details": {"u": "https://api.example/Job-Details?id=1436685", "b": {"data": [
    {"JobId": 1436685, "JobTitle": "AI Engineer", "CompnayName": "Acme Ltd", "Age": "Na", "JobVacancies": " 2 "}
  ]}}
}</script>
</body></html>`

func TestExtractStateAndDetails(t *testing.T) {
	t.Parallel()

	state := ExtractState(page)
	require.Len(t, state, 3)
	assert.Equal(t, "config", state[0].Key)
	assert.Equal(t, "details", state[2].Key)

	detail := FindJobDetails(state)
	require.NotNil(t, detail)
	assert.Equal(t, "1436685", detail.String("jobId", "JobId", "JobID"))
	assert.Equal(t, "AI Engineer", detail.String("JobTitle"))
	assert.Equal(t, "Acme Ltd", detail.String("CompanyNameENG", "CompnayName"))
	assert.Equal(t, "2", detail.String("JobVacancies"))
	assert.Equal(t, "", detail.Present("Age"))
	assert.Equal(t, "", detail.String("Missing"))
}

func TestExtractStateMissingOrInvalid(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ExtractState(""))
	assert.Nil(t, ExtractState("<html><body>no state</body></html>"))
	assert.Nil(t, ExtractState(`<script id="ng-state">{not json</script>`))
	assert.Nil(t, ExtractState(`<script id="ng-state">[1,2]</script>`))
	assert.Nil(t, ExtractState(`<script id="ng-state">   </script>`))
}

func TestExtractStateUnescapesTransferState(t *testing.T) {
	t.Parallel()

	html := `<script id="ng-state" type="application/json">{&q;k&q;:{&q;u&q;:&q;/Job-Details&q;,&q;b&q;:{&q;data&q;:[{&q;JobTitle&q;:&q;R&a;D Lead&q;}]}}}</script>`
	detail := FindJobDetails(ExtractState(html))
	require.NotNil(t, detail)
	assert.Equal(t, "R&D Lead", detail.String("JobTitle"))
}

func TestFindJobDetailsWithoutMatch(t *testing.T) {
	t.Parallel()

	state := State{
		{Key: "a", Value: map[string]any{"u": "/other", "b": map[string]any{"data": []any{map[string]any{}}}}},
		{Key: "b", Value: "scalar"},
	}
	assert.Nil(t, FindJobDetails(state))
	assert.Nil(t, FindJobDetails(nil))
}
