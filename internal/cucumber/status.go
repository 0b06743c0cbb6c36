package cucumber

import (
	"math"
	"strings"
)

// Status is a step or scenario outcome category.
type Status string

const (
	StatusPassed     Status = "passed"
	StatusFailed     Status = "failed"
	StatusSkipped    Status = "skipped"
	StatusPending    Status = "pending"
	StatusNotDefined Status = "notDefined"
	StatusAmbiguous  Status = "ambiguous"
)

// Priority lists outcomes from most to least severe.
var Priority = []Status{
	StatusFailed,
	StatusAmbiguous,
	StatusNotDefined,
	StatusPending,
	StatusSkipped,
	StatusPassed,
}

// ParseStatus maps a raw result status to an outcome. "undefined" becomes
// notDefined; anything unrecognized is treated as skipped.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "passed":
		return StatusPassed
	case "failed":
		return StatusFailed
	case "undefined", "notdefined":
		return StatusNotDefined
	case "pending":
		return StatusPending
	case "ambiguous":
		return StatusAmbiguous
	default:
		return StatusSkipped
	}
}

// StatusCounts holds one counter per outcome.
type StatusCounts struct {
	Passed     int `json:"passed"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
	Pending    int `json:"pending"`
	NotDefined int `json:"notDefined"`
	Ambiguous  int `json:"ambiguous"`
}

// Inc increments the counter for status.
func (c *StatusCounts) Inc(status Status) {
	c.AddN(status, 1)
}

// AddN adds n to the counter for status.
func (c *StatusCounts) AddN(status Status, n int) {
	switch status {
	case StatusPassed:
		c.Passed += n
	case StatusFailed:
		c.Failed += n
	case StatusPending:
		c.Pending += n
	case StatusNotDefined:
		c.NotDefined += n
	case StatusAmbiguous:
		c.Ambiguous += n
	default:
		c.Skipped += n
	}
}

// Get returns the counter for status.
func (c StatusCounts) Get(status Status) int {
	switch status {
	case StatusPassed:
		return c.Passed
	case StatusFailed:
		return c.Failed
	case StatusPending:
		return c.Pending
	case StatusNotDefined:
		return c.NotDefined
	case StatusAmbiguous:
		return c.Ambiguous
	default:
		return c.Skipped
	}
}

// Add folds other into c one category at a time.
func (c *StatusCounts) Add(other StatusCounts) {
	for _, status := range Priority {
		if n := other.Get(status); n > 0 {
			c.AddN(status, n)
		}
	}
}

// Sum returns the total over all categories.
func (c StatusCounts) Sum() int {
	return c.Passed + c.Failed + c.Skipped + c.Pending + c.NotDefined + c.Ambiguous
}

// Governing returns the first outcome in priority order with a non-zero count.
// Passed is the fallback.
func (c StatusCounts) Governing() Status {
	for _, status := range Priority {
		if c.Get(status) > 0 {
			return status
		}
	}
	return StatusPassed
}

// Tally is a set of outcome counters with a total and percentages.
type Tally struct {
	StatusCounts
	Total int `json:"total"`

	PassedPercentage     float64 `json:"passedPercentage"`
	FailedPercentage     float64 `json:"failedPercentage"`
	SkippedPercentage    float64 `json:"skippedPercentage"`
	PendingPercentage    float64 `json:"pendingPercentage"`
	NotDefinedPercentage float64 `json:"notDefinedPercentage"`
	AmbiguousPercentage  float64 `json:"ambiguousPercentage"`
}

// Count records one item with the given outcome.
func (t *Tally) Count(status Status) {
	t.Inc(status)
	t.Total++
}

// Merge adds other's counters and total into t.
func (t *Tally) Merge(other Tally) {
	t.Add(other.StatusCounts)
	t.Total += other.Total
}

// ComputePercentages fills the percentage fields from the counters.
func (t *Tally) ComputePercentages() {
	t.PassedPercentage = Percentage(t.Passed, t.Total)
	t.FailedPercentage = Percentage(t.Failed, t.Total)
	t.SkippedPercentage = Percentage(t.Skipped, t.Total)
	t.PendingPercentage = Percentage(t.Pending, t.Total)
	t.NotDefinedPercentage = Percentage(t.NotDefined, t.Total)
	t.AmbiguousPercentage = Percentage(t.Ambiguous, t.Total)
}

// Percentage returns count/total*100 rounded to two decimals, or 0 when total is 0.
func Percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*100*100) / 100
}
