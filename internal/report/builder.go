package report

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"cukereport/internal/aggregate"
	"cukereport/internal/config"
	"cukereport/internal/cucumber"
	"cukereport/internal/loader"
	"cukereport/internal/logging"
	"cukereport/internal/metrics"
)

// Deps carries the builder's collaborators. Zero values are valid.
type Deps struct {
	Logger  logr.Logger
	Console logging.Warner
	Metrics *metrics.Pipeline
	Now     func() time.Time
}

// Builder runs the loader and the aggregation passes.
type Builder struct {
	opts config.Options
	deps Deps
}

// NewBuilder creates a Builder for opts.
func NewBuilder(opts config.Options, deps Deps) *Builder {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Builder{opts: opts, deps: deps}
}

// Build validates the options, loads every result file and aggregates the
// suite. Nothing is written to disk.
func (b *Builder) Build(ctx context.Context) (*Suite, error) {
	started := time.Now()
	opts := b.opts
	if err := config.Prepare(&opts); err != nil {
		return nil, err
	}

	features, err := loader.Load(ctx, loader.Options{
		JSONDir:           opts.JSONDir,
		Recursive:         opts.Recursive,
		Workers:           opts.Workers,
		Metadata:          opts.ResolvedMetadata,
		DisplayReportTime: opts.DisplayReportTime,
	}, loader.Deps{Logger: b.deps.Logger, Console: b.deps.Console, Metrics: b.deps.Metrics})
	if err != nil {
		return nil, err
	}

	var merged []byte
	if opts.SaveCollectedJSON {
		if merged, err = loader.MergedJSON(features); err != nil {
			return nil, err
		}
	}

	ids := aggregate.RandomIDs()
	if opts.StableIDs {
		ids = aggregate.StableIDs()
	}
	agg := aggregate.New(aggregate.Options{
		Unit:     opts.Unit,
		Policy:   opts.Policy,
		Outlines: cucumber.NewFeatureSource(opts.FeaturesDir),
		IDs:      ids,
		Metrics:  b.deps.Metrics,
		Logger:   b.deps.Logger,
		Console:  b.deps.Console,
	})
	summary, err := agg.AggregateSuite(features)
	if err != nil {
		return nil, err
	}

	b.deps.Metrics.RecordBuild(time.Since(started))
	b.deps.Logger.Info("report model built",
		"features", summary.FeatureCount.Total,
		"scenarios", summary.ScenarioCount.Total,
		"duration", summary.TotalTime)
	return &Suite{
		Summary:     summary,
		Display:     NewDisplay(opts),
		GeneratedAt: b.deps.Now().Local().Format(GeneratedLayout),
		merged:      merged,
	}, nil
}
