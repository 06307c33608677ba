package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namesOf(t *testing.T, mode Mode, in BuildInput) []string {
	t.Helper()
	_, tools := Build(mode, in)
	names := make([]string, 0, len(tools))
	for _, def := range tools {
		names = append(names, def.Name)
	}
	return names
}

func TestPlannerToolSet(t *testing.T) {
	names := namesOf(t, ModePlanner, BuildInput{Goal: "g"})
	assert.ElementsMatch(t, []string{ToolSetPlan, ToolAskUser}, names)
}

func TestWorkerToolSet(t *testing.T) {
	names := namesOf(t, ModeWorker, BuildInput{Goal: "g", Plan: []string{"s"}})
	assert.Contains(t, names, ToolOpenURL)
	assert.Contains(t, names, ToolScanPage)
	assert.Contains(t, names, ToolClickElement)
	assert.Contains(t, names, ToolTypeText)
	assert.Contains(t, names, ToolScroll)
	assert.Contains(t, names, ToolGetTabs)
	assert.Contains(t, names, ToolSwitchTab)
	assert.Contains(t, names, ToolCloseTab)
	assert.Contains(t, names, ToolMarkStepDone)
	assert.Contains(t, names, ToolFinishTask)
	assert.Contains(t, names, ToolAskUser)
	assert.NotContains(t, names, ToolSetPlan)
}

func TestPlannerPromptContainsGoalAndNotes(t *testing.T) {
	prompt, _ := Build(ModePlanner, BuildInput{
		Goal:  "find the cheapest flight",
		Notes: []string{"User clarification (Q: when? | A: tomorrow)"},
	})
	assert.Contains(t, prompt, "find the cheapest flight")
	assert.Contains(t, prompt, "tomorrow")
	assert.Contains(t, prompt, "SEARCH FIRST")
}

func TestWorkerPromptShowsCurrentStep(t *testing.T) {
	prompt, _ := Build(ModeWorker, BuildInput{
		Goal:    "g",
		Plan:    []string{"open the shop", "add to cart", "checkout"},
		Planned: true,
	})
	assert.Contains(t, prompt, "Current step: open the shop")
	assert.Contains(t, prompt, "2. add to cart")
	assert.Contains(t, prompt, "3. checkout")
}

func TestWorkerPromptDrained(t *testing.T) {
	prompt, _ := Build(ModeWorker, BuildInput{Goal: "g", Planned: true})
	assert.Contains(t, prompt, "finish_task")
	assert.NotContains(t, prompt, "Current step:")
}

func TestWorkerPromptRepeatWarning(t *testing.T) {
	prompt, _ := Build(ModeWorker, BuildInput{
		Goal:    "g",
		Plan:    []string{"s"},
		Planned: true,
		Repeats: 2,
	})
	assert.Contains(t, prompt, "repeated 2 time(s)")
}

func TestToolSchemasAreObjects(t *testing.T) {
	_, tools := Build(ModeWorker, BuildInput{Goal: "g", Plan: []string{"s"}, Planned: true})
	for _, def := range tools {
		require.Equal(t, "object", def.Parameters["type"], "tool %s", def.Name)
		_, ok := def.Parameters["properties"]
		assert.True(t, ok, "tool %s has no properties", def.Name)
	}
}
