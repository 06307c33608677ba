// Package types defines the message data model shared by the llm, agent,
// and history packages.
package types

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

// ToolCall is a single structured tool invocation issued by the model.
// Arguments is the raw JSON string exactly as the model produced it; it is
// decoded into a typed argument struct at dispatch time, not here.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Message is one entry of the task transcript. Exactly one shape per role:
//   - assistant: Content and/or ToolCalls
//   - tool: Content plus the ToolCallID it answers
//   - user/system: Content only
type Message struct {
	Role       MessageRole
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// NewSystemMessage creates a system-role message.
func NewSystemMessage(content string) *Message {
	return &Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user-role message.
func NewUserMessage(content string) *Message {
	return &Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant-role message without tool calls.
func NewAssistantMessage(content string) *Message {
	return &Message{Role: RoleAssistant, Content: content}
}

// NewToolMessage creates a tool-result message answering the given tool call.
func NewToolMessage(toolCallID, content string) *Message {
	return &Message{Role: RoleTool, Content: content, ToolCallID: toolCallID}
}

// HasToolCalls reports whether the message carries at least one tool call.
func (m *Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}
