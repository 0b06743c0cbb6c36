package report

import (
	"fmt"
	"strings"

	"cukereport/internal/cucumber"
)

// statusColors maps outcomes to chart and badge colors.
var statusColors = map[cucumber.Status]string{
	cucumber.StatusPassed:     "#26b99a",
	cucumber.StatusFailed:     "#e74c3c",
	cucumber.StatusPending:    "#ffd119",
	cucumber.StatusSkipped:    "#3498db",
	cucumber.StatusNotDefined: "#f39c12",
	cucumber.StatusAmbiguous:  "#b73122",
}

// donutChart renders a tally as an inline SVG donut with a legend. Segments
// are circle strokes on a circumference of 100 so percentages map directly to
// dash lengths.
func donutChart(title string, tally cucumber.Tally, statuses []cucumber.Status) string {
	var b strings.Builder
	b.WriteString(`<figure class="chart">`)
	b.WriteString(`<svg viewBox="0 0 42 42" width="160" height="160" role="img" aria-label="` + esc(title) + `">`)
	b.WriteString(`<circle cx="21" cy="21" r="15.9155" fill="transparent" stroke="#eee" stroke-width="6"></circle>`)
	offset := 25.0
	for _, status := range statuses {
		pct := percentageOf(tally, status)
		if pct <= 0 {
			continue
		}
		fmt.Fprintf(&b, `<circle cx="21" cy="21" r="15.9155" fill="transparent" stroke="%s" stroke-width="6" stroke-dasharray="%.2f %.2f" stroke-dashoffset="%.2f"></circle>`,
			statusColors[status], pct, 100-pct, offset)
		offset -= pct
	}
	fmt.Fprintf(&b, `<text x="21" y="23" text-anchor="middle" font-size="6">%d</text>`, tally.Total)
	b.WriteString(`</svg><figcaption>`)
	b.WriteString(esc(title))
	b.WriteString(`<ul class="legend">`)
	for _, status := range statuses {
		fmt.Fprintf(&b, `<li><span class="swatch" style="background:%s"></span>%s: %d (%s%%)</li>`,
			statusColors[status], esc(string(status)), tally.Get(status), formatPercent(percentageOf(tally, status)))
	}
	b.WriteString(`</ul></figcaption></figure>`)
	return b.String()
}

func percentageOf(tally cucumber.Tally, status cucumber.Status) float64 {
	switch status {
	case cucumber.StatusPassed:
		return tally.PassedPercentage
	case cucumber.StatusFailed:
		return tally.FailedPercentage
	case cucumber.StatusPending:
		return tally.PendingPercentage
	case cucumber.StatusNotDefined:
		return tally.NotDefinedPercentage
	case cucumber.StatusAmbiguous:
		return tally.AmbiguousPercentage
	default:
		return tally.SkippedPercentage
	}
}

// featureStatuses are the feature classifications charted on the overview.
var featureStatuses = []cucumber.Status{cucumber.StatusPassed, cucumber.StatusFailed, cucumber.StatusAmbiguous}
