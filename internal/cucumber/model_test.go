package cucumber

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResultsWrapsBareObject(t *testing.T) {
	features, err := ParseResults([]byte(`{"id":"login","name":"Login","elements":[]}`))
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, "login", features[0].ID)
}

func TestParseResultsStripsToolNoise(t *testing.T) {
	payload := "\x1b[33mUse of godog CLI is deprecated\x1b[0m\n" +
		`[{"id":"a","name":"A","uri":"a.feature"},{"id":"b","name":"B"}]`
	features, err := ParseResults([]byte(payload))
	require.NoError(t, err)
	require.Len(t, features, 2)
	assert.Equal(t, "a.feature", features[0].URI)
	assert.Equal(t, "b", features[1].ID)
}

func TestParseResultsEmptyAndMalformed(t *testing.T) {
	_, err := ParseResults([]byte("   \n"))
	assert.ErrorIs(t, err, ErrEmptyResults)

	_, err = ParseResults([]byte(`[{"id": "x",`))
	assert.Error(t, err)
}

func TestRawDurationAcceptsFloats(t *testing.T) {
	var result Result
	require.NoError(t, json.Unmarshal([]byte(`{"status":"passed","duration":1500000.6}`), &result))
	assert.Equal(t, RawDuration(1500001), result.Duration)
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"passed":    StatusPassed,
		"FAILED":    StatusFailed,
		"undefined": StatusNotDefined,
		"pending":   StatusPending,
		"ambiguous": StatusAmbiguous,
		"skipped":   StatusSkipped,
		"unknown":   StatusSkipped,
		"":          StatusSkipped,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseStatus(raw), raw)
	}
}

func TestGoverningStatusPriority(t *testing.T) {
	assert.Equal(t, StatusPassed, StatusCounts{}.Governing())
	assert.Equal(t, StatusSkipped, StatusCounts{Passed: 3, Skipped: 1}.Governing())
	assert.Equal(t, StatusPending, StatusCounts{Skipped: 1, Pending: 1}.Governing())
	assert.Equal(t, StatusNotDefined, StatusCounts{Pending: 1, NotDefined: 1}.Governing())
	assert.Equal(t, StatusAmbiguous, StatusCounts{NotDefined: 1, Ambiguous: 1}.Governing())
	assert.Equal(t, StatusFailed, StatusCounts{Ambiguous: 1, Failed: 1}.Governing())
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 0.0, Percentage(5, 0))
	assert.Equal(t, 33.33, Percentage(1, 3))
	assert.Equal(t, 66.67, Percentage(2, 3))
	assert.Equal(t, 100.0, Percentage(4, 4))

	var tally Tally
	tally.ComputePercentages()
	assert.Equal(t, 0.0, tally.PassedPercentage)
	assert.Equal(t, 0.0, tally.FailedPercentage)
}

func TestParseOutlineKey(t *testing.T) {
	assert.Equal(t, OutlineKey{BaseID: "f;s", Row: 1}, ParseOutlineKey("f;s;;1"))
	assert.Equal(t, OutlineKey{BaseID: "f;s", Row: 12}, ParseOutlineKey("f;s;;12"))
	assert.Equal(t, OutlineKey{BaseID: "f;s"}, ParseOutlineKey("f;s"))
	assert.Equal(t, OutlineKey{BaseID: "f;s;;x"}, ParseOutlineKey("f;s;;x"))

	head := ParseOutlineKey("f;s;;1")
	assert.True(t, head.IsHead())
	assert.True(t, head.SameGroup(ParseOutlineKey("f;s;;3")))
	assert.False(t, head.SameGroup(ParseOutlineKey("f;t;;2")))
}

func TestScenarioID(t *testing.T) {
	assert.Equal(t, "user-login;valid-credentials-work", ScenarioID("User Login", "Valid Credentials_work"))
}

func TestMetadataKeyedRoundTrip(t *testing.T) {
	input := `{"browser":{"name":"chrome","version":"120"},"device":"laptop","platform":{"name":"linux"},"team":"payments"}`
	var md Metadata
	require.NoError(t, json.Unmarshal([]byte(input), &md))
	assert.Equal(t, KeyedMetadata, md.Kind)
	assert.Equal(t, "chrome", md.Browser.Name)
	assert.Equal(t, "laptop", md.Device)
	assert.Equal(t, "payments", md.Extra["team"])

	out, err := json.Marshal(md)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestMetadataListRoundTrip(t *testing.T) {
	input := `[{"name":"Environment","value":"staging"},{"name":"reportTime","value":"2024/01/02 03:04:05"}]`
	var md Metadata
	require.NoError(t, json.Unmarshal([]byte(input), &md))
	assert.Equal(t, NameValueList, md.Kind)
	assert.Equal(t, "2024/01/02 03:04:05", md.ReportTime)
	require.Len(t, md.Entries, 1)

	out, err := json.Marshal(md)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestDecodeMetadataFromYAMLShapes(t *testing.T) {
	md, err := DecodeMetadata(map[any]any{"device": "phone", "browser": map[string]any{"name": "safari"}})
	require.NoError(t, err)
	assert.Equal(t, "phone", md.Device)
	assert.Equal(t, "safari", md.Browser.Name)

	none, err := DecodeMetadata(nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestMetadataCloneIsDeep(t *testing.T) {
	original := DefaultMetadata()
	clone := original.Clone()
	clone.Browser.Name = "firefox"
	clone.ReportTime = "now"
	assert.Equal(t, NotKnown, original.Browser.Name)
	assert.Empty(t, original.ReportTime)
}

func TestEmbeddingAccessors(t *testing.T) {
	legacy := Embedding{MimeType: "text/plain", Data: json.RawMessage(`"hello"`)}
	modern := Embedding{Media: &Media{Type: "application/json"}, Data: json.RawMessage(`{"a":1}`)}
	assert.Equal(t, "text/plain", legacy.Type())
	assert.Equal(t, "hello", legacy.DataString())
	assert.True(t, legacy.IsString())
	assert.Equal(t, "application/json", modern.Type())
	assert.False(t, modern.IsString())

	cleared, err := json.Marshal(Embedding{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(cleared))
}

func TestScenarioCountsOmittedUntilAggregated(t *testing.T) {
	scenario := &Scenario{ID: "f;s", Name: "S", Steps: []*Step{}}
	out, err := json.Marshal(scenario)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"f;s","name":"S","steps":[]}`, string(out))

	scenario.StatusCounts = &StatusCounts{Passed: 1}
	out, err = json.Marshal(scenario)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"passed":1`)
}
