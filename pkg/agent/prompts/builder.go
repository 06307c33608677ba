// Package prompts builds the mode-specific system prompts and tool schemas
// that drive the agent loop.
package prompts

import (
	"fmt"
	"strings"

	"github.com/eldarkhalilouv/ai-browser-agent/pkg/llm"
)

// Mode selects which persona the agent runs as for the current iteration.
type Mode int

const (
	// ModePlanner decomposes the goal into steps. Only planning tools are
	// exposed.
	ModePlanner Mode = iota
	// ModeWorker executes the current plan step with the full capability set.
	ModeWorker
)

func (m Mode) String() string {
	if m == ModePlanner {
		return "PLANNER"
	}
	return "WORKER"
}

// BuildInput is the task state a prompt is rendered from.
type BuildInput struct {
	Goal    string
	Plan    []string
	Notes   []string
	Repeats int
	// Planned reports whether a plan was ever set; with an empty Plan it
	// means every step has been completed.
	Planned bool
}

// Build renders the system prompt and the tool set for the given mode.
func Build(mode Mode, in BuildInput) (string, []llm.ToolDefinition) {
	if mode == ModePlanner {
		return buildPlanner(in), plannerTools
	}
	return buildWorker(in), workerTools
}

func buildPlanner(in BuildInput) string {
	var b strings.Builder
	b.WriteString(`You are the planning mode of an autonomous web browsing agent.
Decompose the user's goal into a short, ordered plan of concrete browsing steps, then call 'set_plan'.

Rules:
1. SEARCH FIRST. Unless the goal names an exact site, the first step is opening a search engine and searching.
2. Keep plans short and direct. Three to five steps is typical. One action per step.
3. Prefer direct URLs you are confident about over navigating through menus.
4. If the goal is ambiguous or requires a decision only the user can make, call 'ask_user' instead of guessing.
5. You must respond with a tool call, not plain text.
`)

	b.WriteString("\nGoal: " + in.Goal + "\n")
	writeNotes(&b, in.Notes)
	return b.String()
}

func buildWorker(in BuildInput) string {
	var b strings.Builder
	b.WriteString(`You are the execution mode of an autonomous web browsing agent.
You control a real browser through tools. Work on the current step only.

Rules:
1. Observe before acting: call 'scan_page' and use the element ids it returns. Never guess ids.
2. When a click or input fails, re-scan and try a different element or strategy instead of repeating the same call.
3. Ignore navigation chrome (menus, footers, login prompts) unless the step requires it.
4. When the current step is complete, call 'mark_step_done' with a factual summary.
5. You must respond with a tool call, not plain text.
`)

	b.WriteString("\nGoal: " + in.Goal + "\n")

	if len(in.Plan) > 0 {
		b.WriteString("\nCurrent step: " + in.Plan[0] + "\n")
		if len(in.Plan) > 1 {
			b.WriteString("Remaining steps:\n")
			for i, step := range in.Plan[1:] {
				b.WriteString(fmt.Sprintf("  %d. %s\n", i+2, step))
			}
		}
	} else if in.Planned {
		b.WriteString("\nAll plan steps are complete. Call 'finish_task' with the final result, or 'ask_user' if something essential is still missing.\n")
	}

	writeNotes(&b, in.Notes)

	if in.Repeats > 0 {
		b.WriteString(fmt.Sprintf("\nWarning: your last action was repeated %d time(s) without progress. Choose a different action.\n", in.Repeats))
	}
	return b.String()
}

func writeNotes(b *strings.Builder, notes []string) {
	if len(notes) == 0 {
		return
	}
	b.WriteString("\nNotes from earlier progress:\n")
	for _, note := range notes {
		b.WriteString("- " + note + "\n")
	}
}
