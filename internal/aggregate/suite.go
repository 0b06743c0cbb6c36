package aggregate

import (
	"fmt"

	"cukereport/internal/attach"
	"cukereport/internal/cucumber"
)

// Summary is the aggregated suite.
type Summary struct {
	Features      []*cucumber.Feature `json:"features"`
	FeatureCount  cucumber.Tally      `json:"featureCount"`
	ScenarioCount cucumber.Tally      `json:"scenarios"`
	TotalDuration int64               `json:"totalDuration"`
	TotalTime     string              `json:"totalTime"`
}

// AggregateSuite aggregates every feature in order, assigns feature ids and
// computes the suite-wide tallies. The first error aborts the pass.
func (a *Aggregator) AggregateSuite(features []*cucumber.Feature) (*Summary, error) {
	summary := &Summary{Features: features}
	if summary.Features == nil {
		summary.Features = []*cucumber.Feature{}
	}
	for i, feature := range summary.Features {
		original := feature.ID
		if err := a.AggregateFeature(feature); err != nil {
			return nil, err
		}
		prefix := a.opts.IDs(fmt.Sprintf("%d/%s", i, original))
		feature.ID = attach.SanitizeID(prefix + "." + original)

		status := FeatureStatus(feature)
		summary.FeatureCount.Count(status)
		a.opts.Metrics.RecordFeature(string(status))
		if feature.Scenarios != nil {
			summary.ScenarioCount.Merge(*feature.Scenarios)
		}
		summary.TotalDuration += feature.Duration
	}
	summary.FeatureCount.ComputePercentages()
	summary.ScenarioCount.ComputePercentages()
	summary.TotalTime = FormatDuration(summary.TotalDuration, a.opts.Unit)
	a.opts.Logger.V(1).Info("aggregated suite",
		"features", summary.FeatureCount.Total,
		"scenarios", summary.ScenarioCount.Total,
		"failedFeatures", summary.FeatureCount.Failed)
	return summary, nil
}

// FeatureStatus classifies an aggregated feature as failed, ambiguous or passed.
func FeatureStatus(feature *cucumber.Feature) cucumber.Status {
	switch {
	case feature.IsFailed:
		return cucumber.StatusFailed
	case feature.IsAmbiguous:
		return cucumber.StatusAmbiguous
	default:
		return cucumber.StatusPassed
	}
}
