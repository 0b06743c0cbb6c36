//go:build cucumber

package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cucumber/godog"
)

// featureState holds scenario state for cucumber CLI tests.
type featureState struct {
	workDir    string
	resultsDir string
	reportDir  string
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	exitCode   int
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, state.reset()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a results directory with a "([^"]+)" scenario$`, state.aResultsDirectoryWithScenario)
	ctx.Step(`^a result file with malformed embedded JSON$`, state.aResultFileWithMalformedEmbeddedJSON)
	ctx.Step(`^an empty results directory$`, state.anEmptyResultsDirectory)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the exit code is (\d+)$`, state.theExitCodeIs)
	ctx.Step(`^the error output mentions "([^"]+)"$`, state.theErrorOutputMentions)
	ctx.Step(`^the report index exists$`, state.theReportIndexExists)
	ctx.Step(`^no report is written$`, state.noReportIsWritten)
	ctx.Step(`^the report counts (\d+) "([^"]+)" scenarios?$`, state.theReportCountsScenarios)
}

// reset creates fresh directories before each scenario.
func (s *featureState) reset() error {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	dir, err := os.MkdirTemp("", "cukereport-feature-*")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	s.workDir = dir
	s.resultsDir = filepath.Join(dir, "results")
	s.reportDir = filepath.Join(dir, "report")
	return os.MkdirAll(s.resultsDir, 0o755)
}

// cleanup removes temporary files.
func (s *featureState) cleanup() {
	if s.workDir != "" {
		_ = os.RemoveAll(s.workDir)
	}
}
