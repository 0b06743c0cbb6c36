// Package aggregate classifies steps and rolls outcome counters and durations
// up through scenarios, features and the suite.
package aggregate

import (
	"fmt"
	"strings"
	"time"
)

// Unit is the unit of result.duration values in the input.
type Unit string

const (
	Nanoseconds  Unit = "ns"
	Milliseconds Unit = "ms"
)

// ParseUnit parses a unit name. Empty selects nanoseconds.
func ParseUnit(raw string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "ns", "nanoseconds":
		return Nanoseconds, nil
	case "ms", "milliseconds":
		return Milliseconds, nil
	}
	return "", fmt.Errorf("unknown duration unit %q", raw)
}

// Duration converts a raw value in this unit to a time.Duration.
func (u Unit) Duration(raw int64) time.Duration {
	if u == Milliseconds {
		return time.Duration(raw) * time.Millisecond
	}
	return time.Duration(raw)
}

// Raw converts d back to a raw value in this unit.
func (u Unit) Raw(d time.Duration) int64 {
	if u == Milliseconds {
		return d.Milliseconds()
	}
	return int64(d)
}

// Policy selects how feature durations are computed.
type Policy string

const (
	// Sum adds scenario durations.
	Sum Policy = "sum"
	// WallClock spans the earliest scenario start to the latest scenario end.
	WallClock Policy = "wallClock"
)

// ParsePolicy parses a duration aggregation policy. Empty selects Sum.
func ParsePolicy(raw string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "sum":
		return Sum, nil
	case "wallclock", "wall-clock":
		return WallClock, nil
	}
	return "", fmt.Errorf("unknown duration aggregation %q", raw)
}

// FormatDuration renders a raw duration as hh:mm:ss.SSS. Hours do not wrap.
func FormatDuration(raw int64, unit Unit) string {
	return FormatTime(unit.Duration(raw))
}

// FormatTime renders d as hh:mm:ss.SSS.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	hours := ms / 3_600_000
	minutes := ms / 60_000 % 60
	seconds := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, ms%1000)
}
