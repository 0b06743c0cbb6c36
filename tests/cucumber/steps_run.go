//go:build cucumber

package cucumber

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cukereport/internal/cli"
)

// iRunCommand executes a CLI command for the scenario. {results} and {report}
// expand to the scenario directories.
func (s *featureState) iRunCommand(command string) error {
	command = strings.NewReplacer("{results}", s.resultsDir, "{report}", s.reportDir).Replace(command)
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "cukereport" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

// aResultsDirectoryWithScenario writes one feature whose only scenario ends
// with a step of the given status.
func (s *featureState) aResultsDirectoryWithScenario(status string) error {
	features := []map[string]any{{
		"id":   "login",
		"name": "Login",
		"elements": []map[string]any{{
			"id":      "login;valid-user",
			"keyword": "Scenario",
			"name":    "Valid user",
			"steps": []map[string]any{
				{"keyword": "Given ", "name": "a user", "result": map[string]any{"status": "passed", "duration": 1000000}},
				{"keyword": "Then ", "name": "they log in", "result": map[string]any{"status": status, "duration": 1000000}},
			},
		}},
	}}
	data, err := json.Marshal(features)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.resultsDir, "login.json"), data, 0o644)
}

// aResultFileWithMalformedEmbeddedJSON writes a step whose JSON attachment does not parse.
func (s *featureState) aResultFileWithMalformedEmbeddedJSON() error {
	payload := `[{"id":"f","name":"F","elements":[{"id":"f;s","name":"S","steps":[
	  {"keyword":"Given ","name":"x","result":{"status":"passed"},
	   "embeddings":[{"mime_type":"application/json","data":"{broken"}]}]}]}]`
	return os.WriteFile(filepath.Join(s.resultsDir, "bad.json"), []byte(payload), 0o644)
}

// anEmptyResultsDirectory leaves the results directory without files.
func (s *featureState) anEmptyResultsDirectory() error {
	return nil
}
