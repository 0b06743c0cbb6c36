package aggregate

import (
	"strings"
	"time"

	"cukereport/internal/cucumber"
)

// wallClockSpan returns latest scenario end minus earliest scenario start.
// A scenario starts at its start_timestamp and ends after its summed step
// durations. ok is false when any non-background scenario has no parsable
// timestamp or nothing carries one.
func wallClockSpan(scenarios []*cucumber.Scenario, unit Unit) (time.Duration, bool) {
	var earliest, latest time.Time
	seen := false
	for _, scenario := range scenarios {
		start, ok := parseTimestamp(scenario.StartTimestamp)
		if !ok {
			if scenario.IsBackground() {
				continue
			}
			return 0, false
		}
		end := start.Add(unit.Duration(scenario.Duration))
		if !seen || start.Before(earliest) {
			earliest = start
		}
		if !seen || end.After(latest) {
			latest = end
		}
		seen = true
	}
	if !seen {
		return 0, false
	}
	return latest.Sub(earliest), true
}

func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
