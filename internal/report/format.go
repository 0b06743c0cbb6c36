package report

import (
	"fmt"
	"strings"
)

// formatPercent renders a percentage with two decimals.
func formatPercent(pct float64) string {
	return fmt.Sprintf("%.2f", pct)
}

// descriptionHTML escapes a description and turns newlines into <br />.
func descriptionHTML(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = esc(strings.TrimSpace(line))
	}
	return strings.Join(lines, "<br />")
}
