//go:build cucumber

package cucumber

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"
)

// theOutputListsCommands asserts the output contains expected command names.
func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

// theExitCodeIs asserts the CLI exit code.
func (s *featureState) theExitCodeIs(expected int) error {
	if s.exitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d (stderr: %s)", expected, s.exitCode, s.stderr.String())
	}
	return nil
}

// theErrorOutputMentions checks stderr for a hint.
func (s *featureState) theErrorOutputMentions(snippet string) error {
	if !strings.Contains(s.stderr.String(), snippet) {
		return fmt.Errorf("expected stderr to mention %q, got %q", snippet, s.stderr.String())
	}
	return nil
}

func (s *featureState) theReportIndexExists() error {
	if _, err := os.Stat(filepath.Join(s.reportDir, "index.html")); err != nil {
		return fmt.Errorf("expected report index: %w", err)
	}
	return nil
}

func (s *featureState) noReportIsWritten() error {
	if _, err := os.Stat(s.reportDir); !os.IsNotExist(err) {
		return fmt.Errorf("expected no report directory, stat returned %v", err)
	}
	return nil
}

// theReportCountsScenarios reads enriched-output.json and checks one scenario counter.
func (s *featureState) theReportCountsScenarios(expected int, status string) error {
	data, err := os.ReadFile(filepath.Join(s.reportDir, "enriched-output.json"))
	if err != nil {
		return fmt.Errorf("read enriched output: %w", err)
	}
	var enriched struct {
		Scenarios map[string]any `json:"scenarios"`
	}
	if err := json.Unmarshal(data, &enriched); err != nil {
		return fmt.Errorf("decode enriched output: %w", err)
	}
	got, ok := enriched.Scenarios[status].(float64)
	if !ok {
		return fmt.Errorf("scenario counter %q missing", status)
	}
	if int(got) != expected {
		return fmt.Errorf("expected %d %s scenarios, got %d", expected, status, int(got))
	}
	return nil
}
