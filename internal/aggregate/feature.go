package aggregate

import (
	"fmt"

	"cukereport/internal/cucumber"
)

// AggregateFeature computes scenario counters, the feature's scenario tally,
// status flags and duration, merges outline rows into their head rows and
// finally computes percentages.
func (a *Aggregator) AggregateFeature(feature *cucumber.Feature) error {
	tally := &cucumber.Tally{}
	feature.IsFailed = false
	feature.IsAmbiguous = false

	var summed int64
	for _, scenario := range feature.Elements {
		if err := a.AggregateScenario(scenario); err != nil {
			return fmt.Errorf("feature %q: %w", feature.ID, err)
		}
		summed += scenario.Duration
		status := scenario.Counts().Governing()
		switch status {
		case cucumber.StatusFailed:
			feature.IsFailed = true
		case cucumber.StatusAmbiguous:
			feature.IsAmbiguous = true
		}
		// Backgrounds set the feature flags but are not tallied as scenarios.
		if scenario.IsBackground() {
			continue
		}
		tally.Count(status)
		a.opts.Metrics.RecordScenario(string(status))
	}
	if feature.IsFailed {
		feature.IsAmbiguous = false
	}

	feature.Elements = a.mergeOutlines(feature.URI, feature.Elements)

	feature.Duration = summed
	if a.opts.Policy == WallClock {
		if span, ok := wallClockSpan(feature.Elements, a.opts.Unit); ok {
			feature.Duration = a.opts.Unit.Raw(span)
		} else {
			a.opts.Logger.V(1).Info("wall-clock duration unavailable, using sum", "feature", feature.ID)
		}
	}
	feature.Time = FormatDuration(feature.Duration, a.opts.Unit)

	tally.ComputePercentages()
	feature.Scenarios = tally
	return nil
}
