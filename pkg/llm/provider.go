// Package llm provides abstractions for LLM provider integration.
//
// Providers handle API communication with chat/tool-calling endpoints and
// return plain messages. This design keeps providers focused on LLM concerns
// without coupling them to agent-level orchestration: the agent layer owns
// conversation state, retries, and tool dispatch, so providers stay reusable
// and testable on their own.
package llm

import (
	"context"

	"github.com/eldarkhalilouv/ai-browser-agent/pkg/types"
)

// ToolDefinition describes one callable tool in the schema handed to the
// model. Parameters is a JSON Schema object.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// Provider defines the interface for chat/tool-calling LLM integrations.
type Provider interface {
	// Complete sends the system prompt, conversation history, and tool
	// schema to the model and returns exactly one assistant turn. The
	// returned message may carry text, tool calls, or both.
	//
	// Transport and API failures are returned as errors; the caller decides
	// whether to retry. Complete never fabricates a partial turn.
	Complete(ctx context.Context, messages []*types.Message, tools []ToolDefinition) (*types.Message, error)

	// GetModel returns the model name being used.
	GetModel() string
}
