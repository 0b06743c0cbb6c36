package aggregate

import (
	"fmt"

	"cukereport/internal/cucumber"
)

// AggregateScenario resets the scenario counters, classifies every step in
// order and sets the scenario duration and formatted time.
func (a *Aggregator) AggregateScenario(scenario *cucumber.Scenario) error {
	counts := &cucumber.StatusCounts{}
	var total int64
	for i, step := range scenario.Steps {
		if step == nil {
			continue
		}
		duration, err := a.classifyStep(step, scenario.ID, i, counts)
		if err != nil {
			return fmt.Errorf("scenario %q: %w", scenario.ID, err)
		}
		total += duration
	}
	scenario.StatusCounts = counts
	scenario.Duration = total
	scenario.Time = FormatDuration(total, a.opts.Unit)
	return nil
}
