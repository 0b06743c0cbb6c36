package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cukereport/internal/cucumber"
)

func TestMergeHooksOrdering(t *testing.T) {
	body := &cucumber.Step{Keyword: "Given ", Name: "a step"}
	scenario := &cucumber.Scenario{
		Steps: []*cucumber.Step{body},
		Before: []cucumber.Hook{
			{Match: &cucumber.Match{Location: "first"}},
			{Match: &cucumber.Match{Location: "second"}},
		},
		After: []cucumber.Hook{
			{Result: &cucumber.Result{Status: "failed", ErrorMessage: "teardown"}},
		},
	}

	MergeHooks(scenario)

	require.Len(t, scenario.Steps, 4)
	assert.Equal(t, "first", scenario.Steps[0].Match.Location)
	assert.Equal(t, "second", scenario.Steps[1].Match.Location)
	assert.Same(t, body, scenario.Steps[2])

	after := scenario.Steps[3]
	assert.Equal(t, HookAfter, after.Keyword)
	assert.Equal(t, HookName, after.Name)
	assert.Zero(t, after.Line)
	assert.True(t, after.Hidden)
	assert.Equal(t, UnknownHookLocation, after.Match.Location)
	assert.Equal(t, "teardown", after.Result.ErrorMessage)
}

func TestMergeHooksWithoutHooksKeepsSteps(t *testing.T) {
	steps := []*cucumber.Step{{Name: "only"}}
	scenario := &cucumber.Scenario{Steps: steps}
	MergeHooks(scenario)
	assert.Equal(t, steps, scenario.Steps)
	MergeHooks(nil)
}
