package loader

import "cukereport/internal/cucumber"

// Hook step constants.
const (
	HookName            = "Hook"
	HookBefore          = "Before"
	HookAfter           = "After"
	UnknownHookLocation = "can not be determined"
)

// MergeHooks splices the scenario's before hooks ahead of its steps and its
// after hooks behind them, then clears the hook arrays. Hook order within a
// phase is preserved.
func MergeHooks(scenario *cucumber.Scenario) {
	if scenario == nil || (len(scenario.Before) == 0 && len(scenario.After) == 0) {
		return
	}
	steps := make([]*cucumber.Step, 0, len(scenario.Before)+len(scenario.Steps)+len(scenario.After))
	steps = append(steps, HookSteps(HookBefore, scenario.Before)...)
	steps = append(steps, scenario.Steps...)
	steps = append(steps, HookSteps(HookAfter, scenario.After)...)
	scenario.Steps = steps
	scenario.Before = nil
	scenario.After = nil
}

// HookSteps maps hook records of one phase to hidden synthetic steps.
func HookSteps(phase string, hooks []cucumber.Hook) []*cucumber.Step {
	steps := make([]*cucumber.Step, 0, len(hooks))
	for _, hook := range hooks {
		match := hook.Match
		if match == nil || match.Location == "" {
			match = &cucumber.Match{Location: UnknownHookLocation}
		}
		steps = append(steps, &cucumber.Step{
			Keyword:    phase,
			Name:       HookName,
			Hidden:     true,
			Arguments:  hook.Arguments,
			Match:      match,
			Result:     hook.Result,
			Embeddings: hook.Embeddings,
		})
	}
	return steps
}
