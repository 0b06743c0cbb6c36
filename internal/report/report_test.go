package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cukereport/internal/config"
	"cukereport/internal/cucumber"
	"cukereport/internal/reporterr"
	"cukereport/internal/testutil"
)

func fixtureOptions(t *testing.T) config.Options {
	t.Helper()
	root := testutil.CopyDir(t, "testdata")
	return config.Options{
		JSONDir:           filepath.Join(root, "results"),
		ReportPath:        filepath.Join(t.TempDir(), "report"),
		FeaturesDir:       filepath.Join(root, "features"),
		ReportName:        "Shop",
		PageTitle:         "Shop tests",
		DisplayDuration:   true,
		SaveCollectedJSON: true,
		StableIDs:         true,
	}
}

func fixedDeps() Deps {
	clock := testutil.NewFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local))
	return Deps{Now: clock.Now}
}

func TestBuildAggregatesFixtureSuite(t *testing.T) {
	opts := fixtureOptions(t)
	suite, err := NewBuilder(opts, fixedDeps()).Build(testutil.Context(t, 0))
	require.NoError(t, err)

	require.Len(t, suite.Features, 2)
	checkout, search := suite.Features[0], suite.Features[1]
	assert.Equal(t, "Checkout", checkout.Name)
	assert.True(t, checkout.IsFailed)
	assert.False(t, search.IsFailed)
	assert.Equal(t, "laptop", search.Metadata.Device)
	assert.Equal(t, cucumber.NotKnown, checkout.Metadata.Device)

	assert.Equal(t, 2, suite.FeatureCount.Total)
	assert.Equal(t, 1, suite.FeatureCount.Failed)
	assert.Equal(t, 1, suite.FeatureCount.Passed)
	assert.Equal(t, 50.0, suite.FeatureCount.FailedPercentage)

	assert.Equal(t, 4, suite.ScenarioCount.Total)
	assert.Equal(t, 2, suite.ScenarioCount.Passed)
	assert.Equal(t, 1, suite.ScenarioCount.Failed)
	assert.Equal(t, 1, suite.ScenarioCount.Pending)

	assert.Equal(t, "00:00:01.301", checkout.Time)
	assert.Equal(t, "00:00:01.303", suite.TotalTime)
	assert.Equal(t, "2024/03/01 12:00:00", suite.GeneratedAt)

	head := checkout.Elements[2]
	assert.Equal(t, "Pay with <method>", head.Name)
	assert.Equal(t, cucumber.StatusCounts{Passed: 2, Failed: 1}, head.Counts())
	require.Len(t, head.Examples, 1)
	assert.Equal(t, []string{"method", "amount"}, head.Examples[0].Header)
	assert.Equal(t, "I pay with <method>", head.Steps[1].Name)
	assert.NotEmpty(t, head.Steps[1].RestWireData)

	failedRow := checkout.Elements[3]
	assert.Equal(t, []string{"data:image/png;base64,iVBORw0KGgo="}, failedRow.Steps[2].Image)
	assert.Equal(t, []any{map[string]any{"order": nil}}, failedRow.Steps[2].JSON)
	assert.Contains(t, failedRow.Steps[1].TableHTML, "<td>coin</td>")

	_, statErr := os.Stat(opts.ReportPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateWritesReport(t *testing.T) {
	opts := fixtureOptions(t)
	suite, err := NewBuilder(opts, fixedDeps()).Build(testutil.Context(t, 0))
	require.NoError(t, err)

	written, err := Generate(testutil.Context(t, 0), suite, opts.ReportPath)
	require.NoError(t, err)
	require.Len(t, written, 5)

	index, err := os.ReadFile(filepath.Join(opts.ReportPath, IndexFile))
	require.NoError(t, err)
	html := string(index)
	assert.Contains(t, html, "<title>Shop tests</title>")
	assert.Contains(t, html, "<h1>Shop</h1>")
	assert.Contains(t, html, `href="features/`+suite.Features[0].ID+`.html"`)
	assert.Contains(t, html, "<svg")
	assert.Contains(t, html, "Total time: 00:00:01.303")

	page, err := os.ReadFile(filepath.Join(opts.ReportPath, FeaturesDir, suite.Features[0].ID+".html"))
	require.NoError(t, err)
	feature := string(page)
	assert.Contains(t, feature, "Pay with &lt;method&gt;")
	assert.Contains(t, feature, "expected order &lt;42&gt; to exist")
	assert.Contains(t, feature, "cart is empty")
	assert.Contains(t, feature, `<div class="examples">`)
	assert.Contains(t, feature, "Customers pay for their cart.")
	assert.NotContains(t, feature, "hooks.Setup()")

	for _, name := range []string{"merged-output.json", EnrichedOutputFile} {
		_, err := os.Stat(filepath.Join(opts.ReportPath, name))
		assert.NoError(t, err, name)
	}
}

func TestCollectedJSONIsStableAcrossRuns(t *testing.T) {
	opts := fixtureOptions(t)
	run := func(out string) (merged, enriched []byte) {
		suite, err := NewBuilder(opts, fixedDeps()).Build(testutil.Context(t, 0))
		require.NoError(t, err)
		_, err = Generate(testutil.Context(t, 0), suite, out)
		require.NoError(t, err)
		merged, err = os.ReadFile(filepath.Join(out, "merged-output.json"))
		require.NoError(t, err)
		enriched, err = os.ReadFile(filepath.Join(out, EnrichedOutputFile))
		require.NoError(t, err)
		return merged, enriched
	}

	m1, e1 := run(filepath.Join(t.TempDir(), "a"))
	m2, e2 := run(filepath.Join(t.TempDir(), "b"))
	assert.Equal(t, m1, m2)
	assert.Equal(t, e1, e2)
	assert.NotContains(t, string(m1), `"featureCount"`)
	assert.Contains(t, string(e1), `"featureCount"`)
	assert.Contains(t, string(e1), `"display"`)
}

func TestBuildRejectsMissingOptionsBeforeIO(t *testing.T) {
	_, err := NewBuilder(config.Options{}, Deps{}).Build(testutil.Context(t, 0))
	require.Error(t, err)
	assert.True(t, reporterr.IsConfig(err))
	assert.Contains(t, err.Error(), config.KeyJSONDir)
	assert.Contains(t, err.Error(), config.KeyReportPath)
}

func TestBuildFailsOnMalformedEmbeddedJSON(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "bad.json", `[{"id":"f","name":"F","elements":[{"id":"f;s","name":"S","steps":[
		{"keyword":"Given ","name":"x","result":{"status":"passed"},
		 "embeddings":[{"mime_type":"application/json","data":"{not json"}]}]}]}]`)
	out := filepath.Join(t.TempDir(), "report")

	_, err := NewBuilder(config.Options{JSONDir: dir, ReportPath: out}, Deps{}).Build(testutil.Context(t, 0))
	require.Error(t, err)
	assert.True(t, reporterr.IsData(err))
	assert.Equal(t, reporterr.ExitError, reporterr.ExitCode(err))
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEmptyResultsDirectoryProducesEmptyReport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report")
	suite, err := NewBuilder(config.Options{JSONDir: t.TempDir(), ReportPath: out}, Deps{}).Build(testutil.Context(t, 0))
	require.NoError(t, err)
	assert.Empty(t, suite.Features)
	assert.Equal(t, 0.0, suite.ScenarioCount.PassedPercentage)

	written, err := Generate(testutil.Context(t, 0), suite, out)
	require.NoError(t, err)
	require.Len(t, written, 1)
	index, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(index), "<!doctype html>"))
}

func TestVisible(t *testing.T) {
	hiddenHook := &cucumber.Step{Hidden: true, Result: &cucumber.Result{Status: "passed"}}
	failedHook := &cucumber.Step{Hidden: true, Result: &cucumber.Result{Status: "failed"}}
	loggingHook := &cucumber.Step{Hidden: true, Result: &cucumber.Result{Status: "passed"}, Text: []string{"log"}}
	noResult := &cucumber.Step{Name: "x"}
	plain := &cucumber.Step{Result: &cucumber.Result{Status: "skipped"}}

	assert.False(t, Visible(hiddenHook))
	assert.True(t, Visible(failedHook))
	assert.True(t, Visible(loggingHook))
	assert.False(t, Visible(noResult))
	assert.True(t, Visible(plain))
}
