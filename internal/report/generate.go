package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/a-h/templ"

	"cukereport/internal/loader"
)

// Output file names inside the report directory.
const (
	IndexFile          = "index.html"
	FeaturesDir        = "features"
	EnrichedOutputFile = "enriched-output.json"
)

type outputFile struct {
	path string
	data []byte
}

// Generate renders every page into memory and then writes the report to
// reportPath. When collected JSON is saved, merged-output.json and
// enriched-output.json are written too. Nothing is written if rendering fails.
// It returns the written paths in order.
func Generate(ctx context.Context, suite *Suite, reportPath string) ([]string, error) {
	if suite == nil || suite.Summary == nil {
		return nil, fmt.Errorf("report model is required")
	}
	files, err := renderFiles(ctx, suite)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Join(reportPath, FeaturesDir), 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	written := make([]string, 0, len(files))
	for _, file := range files {
		path := filepath.Join(reportPath, file.path)
		if err := os.WriteFile(path, file.data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", file.path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func renderFiles(ctx context.Context, suite *Suite) ([]outputFile, error) {
	files := make([]outputFile, 0, len(suite.Features)+3)
	index, err := renderComponent(ctx, IndexPage(suite))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", IndexFile, err)
	}
	files = append(files, outputFile{path: IndexFile, data: index})

	for _, feature := range suite.Features {
		page, err := renderComponent(ctx, FeaturePage(suite, feature))
		if err != nil {
			return nil, fmt.Errorf("render feature %q: %w", feature.Name, err)
		}
		files = append(files, outputFile{path: filepath.Join(FeaturesDir, feature.ID+".html"), data: page})
	}

	if suite.Display.SaveCollectedJSON {
		if suite.merged != nil {
			files = append(files, outputFile{path: loader.MergedOutputFile, data: suite.merged})
		}
		enriched, err := loader.EncodeJSON(suite)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", EnrichedOutputFile, err)
		}
		files = append(files, outputFile{path: EnrichedOutputFile, data: enriched})
	}
	return files, nil
}

func renderComponent(ctx context.Context, component templ.Component) ([]byte, error) {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
