package aggregate

import "cukereport/internal/cucumber"

// mergeOutlines returns a new scenario list in which every outline head row
// (";;1") carries the summed counters of its sibling rows, up to the next
// head. Heads are copies; the input scenarios are not modified. When the
// feature file is available, heads also get the literal outline text and the
// examples tables.
func (a *Aggregator) mergeOutlines(uri string, scenarios []*cucumber.Scenario) []*cucumber.Scenario {
	out := make([]*cucumber.Scenario, len(scenarios))
	var head *cucumber.Scenario
	for i, scenario := range scenarios {
		if scenario.Outline.IsHead() {
			head = a.newOutlineHead(uri, scenario)
			out[i] = head
			continue
		}
		out[i] = scenario
		if head != nil && head.Outline.SameGroup(scenario.Outline) {
			head.StatusCounts.Add(scenario.Counts())
		}
	}
	return out
}

// newOutlineHead copies scenario with zeroed counters and restores the
// outline template text.
func (a *Aggregator) newOutlineHead(uri string, scenario *cucumber.Scenario) *cucumber.Scenario {
	head := *scenario
	head.StatusCounts = &cucumber.StatusCounts{}
	if a.opts.Outlines == nil {
		return &head
	}
	template, ok := a.opts.Outlines.Outline(uri, scenario.Line)
	if !ok {
		a.opts.Logger.V(1).Info("outline template not found", "uri", uri, "line", scenario.Line)
		a.warnSourceError(uri)
		return &head
	}
	head.Name = template.Name
	if template.Keyword != "" {
		head.Keyword = template.Keyword
	}
	head.Examples = template.Examples
	head.Steps = make([]*cucumber.Step, len(scenario.Steps))
	for i, step := range scenario.Steps {
		text, ok := template.StepText[stepLine(step)]
		if !ok {
			head.Steps[i] = step
			continue
		}
		restored := *step
		restored.Name = text
		head.Steps[i] = &restored
	}
	return &head
}

func stepLine(step *cucumber.Step) int {
	if step == nil {
		return 0
	}
	return step.Line
}

// warnSourceError reports the recorded read or parse error for uri once.
func (a *Aggregator) warnSourceError(uri string) {
	source, ok := a.opts.Outlines.(interface{ Err(uri string) error })
	if !ok || a.opts.Console == nil {
		return
	}
	if _, seen := a.warnedURIs[uri]; seen {
		return
	}
	if err := source.Err(uri); err != nil {
		a.warnedURIs[uri] = struct{}{}
		a.opts.Console.Warnf("outline templates unavailable for %s: %v", uri, err)
	}
}
