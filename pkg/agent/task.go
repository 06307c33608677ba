package agent

import (
	"github.com/eldarkhalilouv/ai-browser-agent/pkg/agent/prompts"
	"github.com/eldarkhalilouv/ai-browser-agent/pkg/types"
)

// Status is the lifecycle state of a task.
type Status int

const (
	// StatusPlanning means no plan has been set yet.
	StatusPlanning Status = iota
	// StatusExecuting means plan steps remain to be worked.
	StatusExecuting
	// StatusDraining means all steps completed but the task is not finished.
	StatusDraining
	// StatusDone means finish_task was called.
	StatusDone
	// StatusAborted means the iteration budget ran out.
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusPlanning:
		return "planning"
	case StatusExecuting:
		return "executing"
	case StatusDraining:
		return "draining"
	case StatusDone:
		return "done"
	case StatusAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// TaskState is the complete mutable state of one task run. History holds the
// working transcript and is wiped on every replanning; Notes survive wipes
// and carry durable progress across them.
type TaskState struct {
	Goal       string
	Plan       []string
	Notes      []string
	History    []*types.Message
	HasPlanned bool
	Iterations int
	Status     Status

	guard actionGuard
}

// NewTaskState creates the initial state for a goal.
func NewTaskState(goal string) *TaskState {
	return &TaskState{Goal: goal, Status: StatusPlanning}
}

// Mode derives the prompt mode from the current state: planner until a plan
// exists, worker from then on (including the drained state).
func (t *TaskState) Mode() prompts.Mode {
	if !t.HasPlanned {
		return prompts.ModePlanner
	}
	return prompts.ModeWorker
}

// setPlan installs a new plan and wipes the working transcript. Notes are
// kept so the next context window still knows what was learned.
func (t *TaskState) setPlan(steps []string) {
	t.Plan = steps
	t.History = nil
	t.HasPlanned = true
	if len(steps) > 0 {
		t.Status = StatusExecuting
	} else {
		t.Status = StatusDraining
	}
}

// completeStep records the step outcome as a note and pops the front plan
// step when one remains. The note is recorded even with an empty plan, so a
// summary sent after the last step still survives the next history wipe.
func (t *TaskState) completeStep(summary string) (string, bool) {
	t.Notes = append(t.Notes, "Step done: "+summary)
	if len(t.Plan) == 0 {
		return "", false
	}
	step := t.Plan[0]
	t.Plan = t.Plan[1:]
	if len(t.Plan) == 0 {
		t.Status = StatusDraining
	}
	return step, true
}

// TaskResult is the final outcome of a run.
type TaskResult struct {
	Status      Status
	FinalResult string
	Iterations  int
	Notes       []string
}
