package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/eldarkhalilouv/ai-browser-agent/pkg/agent/prompts"
)

// actionKind enumerates every tool the agent can dispatch. The set is closed:
// an unknown name is an error result, never a dynamic lookup.
type actionKind int

const (
	actionSetPlan actionKind = iota
	actionAskUser
	actionOpenURL
	actionScanPage
	actionClickElement
	actionTypeText
	actionScroll
	actionMarkStepDone
	actionFinishTask
	actionGetTabs
	actionSwitchTab
	actionCloseTab
)

var actionKindByName = map[string]actionKind{
	prompts.ToolSetPlan:      actionSetPlan,
	prompts.ToolAskUser:      actionAskUser,
	prompts.ToolOpenURL:      actionOpenURL,
	prompts.ToolScanPage:     actionScanPage,
	prompts.ToolClickElement: actionClickElement,
	prompts.ToolTypeText:     actionTypeText,
	prompts.ToolScroll:       actionScroll,
	prompts.ToolMarkStepDone: actionMarkStepDone,
	prompts.ToolFinishTask:   actionFinishTask,
	prompts.ToolGetTabs:      actionGetTabs,
	prompts.ToolSwitchTab:    actionSwitchTab,
	prompts.ToolCloseTab:     actionCloseTab,
}

type setPlanArgs struct {
	Steps []string `json:"steps"`
}

type askUserArgs struct {
	Question string `json:"question"`
}

type markStepDoneArgs struct {
	ResultSummary string `json:"result_summary"`
}

type finishTaskArgs struct {
	FinalResult string `json:"final_result"`
}

type openURLArgs struct {
	URL string `json:"url"`
}

type clickArgs struct {
	ElementID int `json:"element_id"`
}

type typeTextArgs struct {
	ElementID int    `json:"element_id"`
	Text      string `json:"text"`
	Submit    *bool  `json:"submit"`
}

type scrollArgs struct {
	Direction string `json:"direction"`
}

type switchTabArgs struct {
	Idx int `json:"idx"`
}

// decodeArgs unmarshals a tool call's raw arguments. Empty arguments decode
// as an empty object so optional-argument tools tolerate omission.
func decodeArgs(raw string, out interface{}) error {
	if strings.TrimSpace(raw) == "" {
		raw = "{}"
	}
	return json.Unmarshal([]byte(raw), out)
}

func invalidArgumentsError(name string, err error) string {
	return fmt.Sprintf("Error: invalid arguments for '%s': %v", name, err)
}

// executeAction runs one browser-facing action and returns its result string.
// Control tools (set_plan, finish_task, mark_step_done, ask_user) are handled
// by the loop, not here.
func (a *Agent) executeAction(ctx context.Context, kind actionKind, name, raw string) string {
	switch kind {
	case actionOpenURL:
		var args openURLArgs
		if err := decodeArgs(raw, &args); err != nil {
			return invalidArgumentsError(name, err)
		}
		return a.executor.OpenURL(ctx, args.URL)

	case actionScanPage:
		return a.executor.ScanPage(ctx)

	case actionClickElement:
		var args clickArgs
		if err := decodeArgs(raw, &args); err != nil {
			return invalidArgumentsError(name, err)
		}
		return a.executor.ClickElement(ctx, args.ElementID)

	case actionTypeText:
		var args typeTextArgs
		if err := decodeArgs(raw, &args); err != nil {
			return invalidArgumentsError(name, err)
		}
		submit := true
		if args.Submit != nil {
			submit = *args.Submit
		}
		return a.executor.TypeText(ctx, args.ElementID, args.Text, submit)

	case actionScroll:
		var args scrollArgs
		if err := decodeArgs(raw, &args); err != nil {
			return invalidArgumentsError(name, err)
		}
		return a.executor.Scroll(ctx, args.Direction)

	case actionGetTabs:
		return a.executor.GetTabs(ctx)

	case actionSwitchTab:
		var args switchTabArgs
		if err := decodeArgs(raw, &args); err != nil {
			return invalidArgumentsError(name, err)
		}
		return a.executor.SwitchTab(ctx, args.Idx)

	case actionCloseTab:
		return a.executor.CloseTab(ctx)

	default:
		return fmt.Sprintf("Error: tool '%s' cannot be executed directly.", name)
	}
}

// resultSignalsFailure reports whether a tool result describes a failure the
// model should get a strategy hint for.
func resultSignalsFailure(result string) bool {
	return strings.Contains(result, "Error") || strings.Contains(strings.ToLower(result), "fail")
}

// adaptiveHint picks a recovery hint for a failed action. Hints are appended
// to the result before truncation so they always reach the model.
func adaptiveHint(kind actionKind, result string) string {
	var hint string
	switch kind {
	case actionClickElement:
		switch {
		case strings.Contains(result, "outside of the viewport"):
			hint = "The element is out of view. Scroll towards it and re-scan before clicking again."
		case strings.Contains(result, "obscured"):
			hint = "Something is covering the element. Look for a popup, cookie banner, or dialog to close first."
		default:
			hint = "Try scrolling to reveal the element, typing into a search field instead, or navigating with open_url."
		}
	case actionScanPage:
		hint = "The page may still be loading. Wait by scrolling once, reload via open_url, and ignore navigation chrome in the next scan."
	case actionTypeText:
		hint = "Click the input field first to focus it, then type again."
	default:
		return ""
	}
	return "\n\nADAPTIVE STRATEGY: " + hint
}
