package prompts

import "github.com/eldarkhalilouv/ai-browser-agent/pkg/llm"

// Tool names form the closed action vocabulary of the agent.
const (
	ToolSetPlan      = "set_plan"
	ToolAskUser      = "ask_user"
	ToolOpenURL      = "open_url"
	ToolScanPage     = "scan_page"
	ToolClickElement = "click_element"
	ToolTypeText     = "type_text"
	ToolScroll       = "scroll"
	ToolMarkStepDone = "mark_step_done"
	ToolFinishTask   = "finish_task"
	ToolGetTabs      = "get_tabs"
	ToolSwitchTab    = "switch_tab"
	ToolCloseTab     = "close_tab"
)

// objectSchema builds a JSON schema object with the given properties and
// required keys.
func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func integerProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

func booleanProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": description}
}

var setPlanTool = llm.ToolDefinition{
	Name:        ToolSetPlan,
	Description: "Replace the current plan with a new ordered list of steps. Resets the working context, so include everything the steps need.",
	Parameters: objectSchema(map[string]interface{}{
		"steps": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": "Ordered, concrete steps. Keep the list short and direct.",
		},
	}, "steps"),
}

var askUserTool = llm.ToolDefinition{
	Name:        ToolAskUser,
	Description: "Ask the user a clarifying question when the task is ambiguous or a decision is theirs to make.",
	Parameters: objectSchema(map[string]interface{}{
		"question": stringProp("The question to ask the user."),
	}, "question"),
}

var workerTools = []llm.ToolDefinition{
	{
		Name:        ToolOpenURL,
		Description: "Navigate the active tab to a URL.",
		Parameters: objectSchema(map[string]interface{}{
			"url": stringProp("Absolute URL to open. A bare host is treated as https."),
		}, "url"),
	},
	{
		Name:        ToolScanPage,
		Description: "Observe the current page: returns interactive elements with numeric ids plus page context. Always scan before clicking or typing.",
		Parameters:  objectSchema(map[string]interface{}{}),
	},
	{
		Name:        ToolClickElement,
		Description: "Click an element by its id from the latest scan.",
		Parameters: objectSchema(map[string]interface{}{
			"element_id": integerProp("Id of the element from the latest scan_page result."),
		}, "element_id"),
	},
	{
		Name:        ToolTypeText,
		Description: "Type text into an input element by its id from the latest scan.",
		Parameters: objectSchema(map[string]interface{}{
			"element_id": integerProp("Id of the input element from the latest scan_page result."),
			"text":       stringProp("Text to type. Replaces the current field content."),
			"submit":     booleanProp("Press Enter after typing. Defaults to true."),
		}, "element_id", "text"),
	},
	{
		Name:        ToolScroll,
		Description: "Scroll the page up or down by half a screen.",
		Parameters: objectSchema(map[string]interface{}{
			"direction": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"up", "down"},
				"description": "Scroll direction.",
			},
		}, "direction"),
	},
	{
		Name:        ToolGetTabs,
		Description: "List all open tabs with their indices.",
		Parameters:  objectSchema(map[string]interface{}{}),
	},
	{
		Name:        ToolSwitchTab,
		Description: "Switch to the tab at the given index.",
		Parameters: objectSchema(map[string]interface{}{
			"idx": integerProp("Tab index from get_tabs."),
		}, "idx"),
	},
	{
		Name:        ToolCloseTab,
		Description: "Close the active tab. The last remaining tab cannot be closed.",
		Parameters:  objectSchema(map[string]interface{}{}),
	},
	{
		Name:        ToolMarkStepDone,
		Description: "Mark the current plan step as completed and record what it produced.",
		Parameters: objectSchema(map[string]interface{}{
			"result_summary": stringProp("Short factual summary of what this step accomplished or found."),
		}, "result_summary"),
	},
	{
		Name:        ToolFinishTask,
		Description: "Finish the task and report the final result to the user. Terminal.",
		Parameters: objectSchema(map[string]interface{}{
			"final_result": stringProp("The complete answer or outcome for the user."),
		}, "final_result"),
	},
	askUserTool,
}

var plannerTools = []llm.ToolDefinition{setPlanTool, askUserTool}
