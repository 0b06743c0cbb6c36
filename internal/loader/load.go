// Package loader discovers Cucumber JSON result files and merges them into one
// ordered feature sequence.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"cukereport/internal/cucumber"
	"cukereport/internal/logging"
	"cukereport/internal/metrics"
)

// ReportTimeLayout formats the stamped report time.
const ReportTimeLayout = "2006/01/02 15:04:05"

// Options controls discovery and per-feature preparation.
type Options struct {
	JSONDir           string
	Recursive         bool
	Workers           int
	Metadata          *cucumber.Metadata
	DisplayReportTime bool
}

// Deps carries the loader's collaborators. Zero values are valid.
type Deps struct {
	Logger  logr.Logger
	Console logging.Warner
	Metrics *metrics.Pipeline
}

// Load reads every result file under opts.JSONDir and returns their features
// in file order, then in-file order. Files that cannot be parsed are reported
// as warnings and contribute nothing.
func Load(ctx context.Context, opts Options, deps Deps) ([]*cucumber.Feature, error) {
	files, err := Discover(opts.JSONDir, opts.Recursive)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		deps.warnf("no JSON files found in %s, the report will be empty", opts.JSONDir)
		return []*cucumber.Feature{}, nil
	}

	perFile := make([][]*cucumber.Feature, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(opts.Workers))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perFile[i] = loadFile(path, opts, deps)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}

	var merged []*cucumber.Feature
	for _, features := range perFile {
		merged = append(merged, features...)
	}
	if merged == nil {
		merged = []*cucumber.Feature{}
	}
	deps.Logger.V(1).Info("loaded results", "files", len(files), "features", len(merged))
	return merged, nil
}

func loadFile(path string, opts Options, deps Deps) []*cucumber.Feature {
	data, err := os.ReadFile(path)
	if err != nil {
		deps.warnf("cannot read %s: %v", path, err)
		deps.Metrics.RecordFileSkipped(metrics.SkipUnreadable)
		return nil
	}
	features, err := cucumber.ParseResults(data)
	switch {
	case errors.Is(err, cucumber.ErrEmptyResults):
		deps.warnf("%s is empty, skipping", path)
		deps.Metrics.RecordFileSkipped(metrics.SkipEmpty)
		return nil
	case err != nil:
		deps.warnf("cannot parse %s: %v", path, err)
		deps.Metrics.RecordFileSkipped(metrics.SkipParseError)
		return nil
	}
	deps.Metrics.RecordFileLoaded()
	deps.Logger.V(1).Info("parsed result file", "path", filepath.Base(path), "features", len(features))

	var reportTime string
	if opts.DisplayReportTime {
		if info, statErr := os.Stat(path); statErr == nil {
			reportTime = birthTime(path, info).Local().Format(ReportTimeLayout)
		}
	}
	for _, feature := range features {
		prepareFeature(feature, opts.Metadata, reportTime)
	}
	return features
}

// prepareFeature applies metadata, the report time, hook merging and outline
// keys to one feature record.
func prepareFeature(feature *cucumber.Feature, supplied *cucumber.Metadata, reportTime string) {
	switch {
	case feature.Metadata != nil:
	case supplied != nil:
		feature.Metadata = supplied.Clone()
	default:
		feature.Metadata = cucumber.DefaultMetadata()
	}
	if reportTime != "" && feature.Metadata.ReportTime == "" {
		feature.Metadata.ReportTime = reportTime
	}

	elements := feature.Elements[:0]
	for _, scenario := range feature.Elements {
		if scenario == nil {
			continue
		}
		if scenario.ID == "" {
			scenario.ID = cucumber.ScenarioID(feature.Name, scenario.Name)
		}
		if scenario.Steps == nil {
			scenario.Steps = []*cucumber.Step{}
		}
		MergeHooks(scenario)
		scenario.Outline = cucumber.ParseOutlineKey(scenario.ID)
		elements = append(elements, scenario)
	}
	feature.Elements = elements
}

func workerCount(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

func (d Deps) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	d.Logger.V(1).Info("data warning", "message", msg)
	if d.Console != nil {
		d.Console.Warnf("%s", msg)
	}
}
