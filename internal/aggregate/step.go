package aggregate

import (
	"strconv"

	"cukereport/internal/attach"
	"cukereport/internal/cucumber"
)

// classifyStep normalizes the step's attachments, then folds its outcome into
// counts and returns its raw duration. Steps without a result, and hidden
// steps with nothing visible that did not fail, are not counted.
func (a *Aggregator) classifyStep(step *cucumber.Step, scopeID string, seq int, counts *cucumber.StatusCounts) (int64, error) {
	newID := func() string {
		return a.opts.IDs(scopeID + "#" + strconv.Itoa(seq))
	}
	if err := attach.Normalize(step, scopeID, newID); err != nil {
		return 0, err
	}
	status, ok := step.Status()
	if !ok {
		return 0, nil
	}
	if step.Hidden && !hasVisibleContent(step) && status != cucumber.StatusFailed {
		return 0, nil
	}

	var duration int64
	if d := int64(step.Result.Duration); d > 0 {
		duration = d
		step.Time = FormatDuration(d, a.opts.Unit)
	}
	counts.Inc(status)
	a.opts.Metrics.RecordStep(string(status))
	return duration, nil
}

func hasVisibleContent(step *cucumber.Step) bool {
	return len(step.Text) > 0 || len(step.Image) > 0 || len(step.Attachments) > 0
}
