package cucumber

import (
	"fmt"
	"io"
	"os"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
)

// OutlineTemplate is the literal scenario outline behind expanded rows.
type OutlineTemplate struct {
	Keyword  string
	Name     string
	Line     int
	StepText map[int]string
	Examples []ExamplesTable
}

// FeatureOutlines maps an examples row line to its outline template.
type FeatureOutlines map[int]*OutlineTemplate

// ParseFeatureFile parses a feature file and indexes its outlines by row line.
func ParseFeatureFile(path string) (FeatureOutlines, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read feature: %w", err)
	}
	defer file.Close()

	outlines, err := ParseFeature(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return outlines, nil
}

// ParseFeature parses Gherkin source and indexes its outlines by row line.
func ParseFeature(r io.Reader) (FeatureOutlines, error) {
	doc, err := gherkin.ParseGherkinDocument(r, (&messages.Incrementing{}).NewId)
	if err != nil {
		return nil, fmt.Errorf("parse feature: %w", err)
	}
	if doc.Feature == nil {
		return nil, fmt.Errorf("missing feature")
	}

	outlines := make(FeatureOutlines)
	for _, scenario := range collectScenarios(doc.Feature) {
		if len(scenario.Examples) == 0 {
			continue
		}
		template := newOutlineTemplate(scenario)
		for _, examples := range scenario.Examples {
			for _, row := range examples.TableBody {
				if line := lineFromLocation(row.Location); line > 0 {
					outlines[line] = template
				}
			}
		}
	}
	return outlines, nil
}

func newOutlineTemplate(scenario *messages.Scenario) *OutlineTemplate {
	template := &OutlineTemplate{
		Keyword:  strings.TrimSpace(scenario.Keyword),
		Name:     scenario.Name,
		Line:     lineFromLocation(scenario.Location),
		StepText: make(map[int]string, len(scenario.Steps)),
		Examples: make([]ExamplesTable, 0, len(scenario.Examples)),
	}
	for _, step := range scenario.Steps {
		if step == nil {
			continue
		}
		template.StepText[lineFromLocation(step.Location)] = step.Text
	}
	for _, examples := range scenario.Examples {
		if examples == nil {
			continue
		}
		table := ExamplesTable{
			Name:   examples.Name,
			Header: rowValues(examples.TableHeader),
			Rows:   make([][]string, 0, len(examples.TableBody)),
		}
		for _, row := range examples.TableBody {
			table.Rows = append(table.Rows, rowValues(row))
		}
		template.Examples = append(template.Examples, table)
	}
	return template
}

// collectScenarios flattens scenarios from a feature and its rules.
func collectScenarios(feature *messages.Feature) []*messages.Scenario {
	if feature == nil {
		return nil
	}
	scenarios := make([]*messages.Scenario, 0)
	for _, child := range feature.Children {
		if child == nil {
			continue
		}
		if child.Scenario != nil {
			scenarios = append(scenarios, child.Scenario)
		}
		if child.Rule != nil {
			for _, ruleChild := range child.Rule.Children {
				if ruleChild == nil {
					continue
				}
				if ruleChild.Scenario != nil {
					scenarios = append(scenarios, ruleChild.Scenario)
				}
			}
		}
	}
	return scenarios
}

func rowValues(row *messages.TableRow) []string {
	if row == nil {
		return nil
	}
	values := make([]string, 0, len(row.Cells))
	for _, cell := range row.Cells {
		if cell == nil {
			values = append(values, "")
			continue
		}
		values = append(values, cell.Value)
	}
	return values
}

// lineFromLocation extracts the line number from a Gherkin location.
func lineFromLocation(location *messages.Location) int {
	if location == nil {
		return 0
	}
	return int(location.Line)
}
