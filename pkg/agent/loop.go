package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/eldarkhalilouv/ai-browser-agent/pkg/agent/prompts"
	"github.com/eldarkhalilouv/ai-browser-agent/pkg/llm"
	"github.com/eldarkhalilouv/ai-browser-agent/pkg/types"
)

// Run executes one task to completion. It returns a result for every outcome
// the loop itself can reach, including budget exhaustion; an error is
// returned only for context cancellation or an unanswerable ask_user.
func (a *Agent) Run(ctx context.Context, goal string) (*TaskResult, error) {
	state := NewTaskState(goal)
	a.log.Printf("task started: %s", goal)

	for state.Iterations < a.maxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		state.Iterations++

		mode := state.Mode()
		a.observer.OnIterationStart(state.Iterations, mode)

		state.History = a.history.Prune(state.History)

		system, tools := prompts.Build(mode, prompts.BuildInput{
			Goal:    state.Goal,
			Plan:    state.Plan,
			Notes:   state.Notes,
			Repeats: state.guard.Repeats(),
			Planned: state.HasPlanned,
		})
		messages := make([]*types.Message, 0, len(state.History)+1)
		messages = append(messages, types.NewSystemMessage(system))
		messages = append(messages, state.History...)

		reply, err := a.complete(ctx, messages, tools)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Transient transport failure: the iteration is consumed and the
			// loop continues after a backoff.
			a.log.Warnf("llm call failed (iteration %d): %v", state.Iterations, err)
			a.wait(ctx, a.retryDelay)
			continue
		}

		state.History = append(state.History, reply)
		if reply.Content != "" {
			a.observer.OnAssistantText(reply.Content)
		}

		if !reply.HasToolCalls() {
			state.History = append(state.History, types.NewUserMessage(nudgeFor(mode)))
			continue
		}

		final, err := a.processToolCalls(ctx, state, reply.ToolCalls)
		if err != nil {
			return nil, err
		}
		if final != nil {
			return final, nil
		}
	}

	a.log.Warnf("task aborted after %d iterations", state.Iterations)
	state.Status = StatusAborted
	return &TaskResult{
		Status:      StatusAborted,
		FinalResult: "Task aborted: iteration budget exhausted before completion.",
		Iterations:  state.Iterations,
		Notes:       state.Notes,
	}, nil
}

// processToolCalls dispatches the assistant's tool calls in order. It returns
// a non-nil result when the task reached a terminal state, and stops
// processing the remaining calls of a turn when the plan (and with it the
// working context) was replaced.
func (a *Agent) processToolCalls(ctx context.Context, state *TaskState, calls []types.ToolCall) (*TaskResult, error) {
	for _, tc := range calls {
		a.observer.OnToolCall(tc.Name, tc.Arguments)

		kind, known := actionKindByName[tc.Name]
		if !known {
			result := fmt.Sprintf("Error: unknown tool '%s'.", tc.Name)
			a.appendResult(state, tc, result)
			continue
		}

		switch kind {
		case actionSetPlan:
			var args setPlanArgs
			if err := decodeArgs(tc.Arguments, &args); err != nil {
				a.appendResult(state, tc, invalidArgumentsError(tc.Name, err))
				continue
			}
			state.setPlan(args.Steps)
			a.observer.OnPlanSet(args.Steps)
			a.log.Printf("plan set with %d steps", len(args.Steps))
			// History was wiped; nothing from this turn may leak into the
			// fresh context.
			return nil, nil

		case actionFinishTask:
			var args finishTaskArgs
			if err := decodeArgs(tc.Arguments, &args); err != nil {
				a.appendResult(state, tc, invalidArgumentsError(tc.Name, err))
				continue
			}
			state.Status = StatusDone
			a.observer.OnTaskFinished(args.FinalResult)
			a.log.Printf("task finished after %d iterations", state.Iterations)
			return &TaskResult{
				Status:      StatusDone,
				FinalResult: args.FinalResult,
				Iterations:  state.Iterations,
				Notes:       state.Notes,
			}, nil

		case actionAskUser:
			if count := state.guard.Record(tc.Name, tc.Arguments); count >= overrideThreshold {
				a.appendResult(state, tc, overrideResult(count))
				continue
			}
			var args askUserArgs
			if err := decodeArgs(tc.Arguments, &args); err != nil {
				a.appendResult(state, tc, invalidArgumentsError(tc.Name, err))
				continue
			}
			if a.asker == nil {
				a.appendResult(state, tc, "Error: no user is available to answer questions. Proceed with your best judgement.")
				continue
			}
			answer, err := a.asker.Ask(args.Question)
			if err != nil {
				return nil, fmt.Errorf("ask_user failed: %w", err)
			}
			state.Notes = append(state.Notes, fmt.Sprintf("User clarification (Q: %s | A: %s)", args.Question, answer))
			a.appendResult(state, tc, "User answered: "+answer)

		case actionMarkStepDone:
			if count := state.guard.Record(tc.Name, tc.Arguments); count >= overrideThreshold {
				a.appendResult(state, tc, overrideResult(count))
				continue
			}
			var args markStepDoneArgs
			if err := decodeArgs(tc.Arguments, &args); err != nil {
				a.appendResult(state, tc, invalidArgumentsError(tc.Name, err))
				continue
			}
			step, popped := state.completeStep(args.ResultSummary)
			if !popped {
				a.appendResult(state, tc, "Step marked done.")
				continue
			}
			a.log.Printf("step done: %s", step)
			a.appendResult(state, tc, fmt.Sprintf("Step '%s' marked done. %d step(s) remaining.", step, len(state.Plan)))

		default:
			count := state.guard.Record(tc.Name, tc.Arguments)
			if count >= overrideThreshold {
				a.appendResult(state, tc, overrideResult(count))
				continue
			}

			result := a.executeAction(ctx, kind, tc.Name, tc.Arguments)
			if resultSignalsFailure(result) {
				result += adaptiveHint(kind, result)
			}
			a.appendResult(state, tc, result)
		}
	}
	return nil, nil
}

// appendResult truncates and records one tool result, notifying the observer.
func (a *Agent) appendResult(state *TaskState, tc types.ToolCall, result string) {
	result = a.history.TruncateResult(result)
	a.observer.OnToolResult(tc.Name, result)
	state.History = append(state.History, types.NewToolMessage(tc.ID, result))
}

func (a *Agent) complete(ctx context.Context, messages []*types.Message, tools []llm.ToolDefinition) (*types.Message, error) {
	return a.provider.Complete(ctx, messages, tools)
}

func nudgeFor(mode prompts.Mode) string {
	if mode == prompts.ModePlanner {
		return "You must call 'set_plan' or 'ask_user'."
	}
	return "Action required. Please call a tool to proceed."
}

func (a *Agent) wait(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
