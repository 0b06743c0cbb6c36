package loader

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-logr/zapr"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"cukereport/internal/cucumber"
	"cukereport/internal/metrics"
	"cukereport/internal/reporterr"
	"cukereport/internal/testutil"
)

type recordingWarner struct {
	mu       sync.Mutex
	messages []string
}

func (w *recordingWarner) Warnf(format string, _ ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = append(w.messages, format)
}

func (w *recordingWarner) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.messages)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadMissingDirectoryIsConfigurationError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := Load(testutil.Context(t, 0), Options{JSONDir: dir}, Deps{})
	require.Error(t, err)
	assert.True(t, reporterr.IsConfig(err))
	assert.Contains(t, err.Error(), dir)
}

func TestLoadEmptyDirectoryWarns(t *testing.T) {
	warner := &recordingWarner{}
	features, err := Load(testutil.Context(t, 0), Options{JSONDir: t.TempDir()}, Deps{Console: warner})
	require.NoError(t, err)
	assert.Empty(t, features)
	assert.NotNil(t, features)
	assert.Equal(t, 1, warner.count())
}

func TestLoadSkipsMalformedFilesAndPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `[{"id":"first","name":"First"},{"id":"second","name":"Second"}]`)
	writeFile(t, dir, "b.json", `{"id":"broken",`)
	writeFile(t, dir, "c.json", `{"id":"third","name":"Third"}`)
	writeFile(t, dir, "d.json", ``)
	writeFile(t, dir, "notes.txt", `ignored`)

	core, logs := observer.New(zap.DebugLevel)
	warner := &recordingWarner{}
	reg := prometheus.NewRegistry()
	pipeline := metrics.NewPipeline(reg)
	deps := Deps{Logger: zapr.NewLogger(zap.New(core)), Console: warner, Metrics: pipeline}

	features, err := Load(testutil.Context(t, 0), Options{JSONDir: dir, Workers: 4}, deps)
	require.NoError(t, err)

	ids := make([]string, 0, len(features))
	for _, feature := range features {
		ids = append(ids, feature.ID)
	}
	assert.Equal(t, []string{"first", "second", "third"}, ids)
	assert.Equal(t, 2, warner.count())
	assert.Equal(t, 2, logs.FilterMessage("data warning").Len())
	assert.Equal(t, 2.0, promtest.ToFloat64(pipeline.FilesLoaded))
	assert.Equal(t, 1.0, promtest.ToFloat64(pipeline.FilesSkipped.WithLabelValues(metrics.SkipParseError)))
	assert.Equal(t, 1.0, promtest.ToFloat64(pipeline.FilesSkipped.WithLabelValues(metrics.SkipEmpty)))
}

func TestDataWarningsStayOffInfoLog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.json", `{"id":"broken",`)

	core, logs := observer.New(zap.InfoLevel)
	warner := &recordingWarner{}
	_, err := Load(testutil.Context(t, 0), Options{JSONDir: dir}, Deps{Logger: zapr.NewLogger(zap.New(core)), Console: warner})
	require.NoError(t, err)

	assert.Equal(t, 1, warner.count())
	assert.Zero(t, logs.Len())
}

func TestLoadRecursiveDiscovery(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b/nested.json", `{"id":"nested","name":"N"}`)
	writeFile(t, dir, "a.json", `{"id":"top","name":"T"}`)

	flat, err := Load(testutil.Context(t, 0), Options{JSONDir: dir}, Deps{})
	require.NoError(t, err)
	require.Len(t, flat, 1)

	all, err := Load(testutil.Context(t, 0), Options{JSONDir: dir, Recursive: true}, Deps{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "top", all[0].ID)
	assert.Equal(t, "nested", all[1].ID)
}

func TestLoadMetadataPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `[
		{"id":"own","name":"Own","metadata":{"device":"phone"}},
		{"id":"bare","name":"Bare"}
	]`)

	supplied := &cucumber.Metadata{Kind: cucumber.KeyedMetadata, Device: "ci-runner"}
	features, err := Load(testutil.Context(t, 0), Options{JSONDir: dir, Metadata: supplied}, Deps{})
	require.NoError(t, err)
	require.Len(t, features, 2)
	assert.Equal(t, "phone", features[0].Metadata.Device)
	assert.Equal(t, "ci-runner", features[1].Metadata.Device)
	assert.NotSame(t, supplied, features[1].Metadata)

	defaults, err := Load(testutil.Context(t, 0), Options{JSONDir: dir}, Deps{})
	require.NoError(t, err)
	assert.Equal(t, cucumber.NotKnown, defaults[1].Metadata.Device)
	assert.Equal(t, cucumber.NotKnown, defaults[1].Metadata.Browser.Name)
}

func TestLoadStampsReportTime(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"id":"f","name":"F"}`)

	features, err := Load(testutil.Context(t, 0), Options{JSONDir: dir, DisplayReportTime: true}, Deps{})
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Regexp(t, `^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}$`, features[0].Metadata.ReportTime)

	plain, err := Load(testutil.Context(t, 0), Options{JSONDir: dir}, Deps{})
	require.NoError(t, err)
	assert.Empty(t, plain[0].Metadata.ReportTime)
}

func TestLoadPreparesScenarios(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `[{"id":"f","name":"Shopping Cart","elements":[
		{"name":"Add Item","keyword":"Scenario","steps":[{"keyword":"Given ","name":"x","result":{"status":"passed"}}],
		 "before":[{"result":{"status":"passed","duration":5}}],
		 "after":[{"match":{"location":"hooks.go:10"},"result":{"status":"passed"}}]},
		{"id":"f;outline;;2","name":"Outline","keyword":"Scenario Outline"},
		null
	]}]`)

	features, err := Load(testutil.Context(t, 0), Options{JSONDir: dir}, Deps{})
	require.NoError(t, err)
	require.Len(t, features, 1)
	elements := features[0].Elements
	require.Len(t, elements, 2)

	first := elements[0]
	assert.Equal(t, "shopping-cart;add-item", first.ID)
	require.Len(t, first.Steps, 3)
	assert.Equal(t, HookBefore, first.Steps[0].Keyword)
	assert.Equal(t, UnknownHookLocation, first.Steps[0].Match.Location)
	assert.Equal(t, "hooks.go:10", first.Steps[2].Match.Location)
	assert.Nil(t, first.Before)

	assert.Equal(t, cucumber.OutlineKey{BaseID: "f;outline", Row: 2}, elements[1].Outline)
	assert.NotNil(t, elements[1].Steps)
}
