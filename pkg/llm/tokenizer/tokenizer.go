// Package tokenizer wraps tiktoken for client-side token counting.
package tokenizer

import (
	"github.com/pkoukk/tiktoken-go"

	"github.com/eldarkhalilouv/ai-browser-agent/pkg/types"
)

// fallbackEncoding is used when the model has no registered encoding.
// cl100k_base is a reasonable approximation for any modern chat model.
const fallbackEncoding = "cl100k_base"

// Tokenizer counts tokens the way the active model would.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

// NewForModel creates a tokenizer keyed to the given model name, falling
// back to a generic encoding when the model is unknown. An error is returned
// only when neither encoding can be loaded.
func NewForModel(model string) (*Tokenizer, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, err
		}
	}
	return &Tokenizer{encoding: enc}, nil
}

// CountTokens returns the token count of the given text.
func (t *Tokenizer) CountTokens(text string) int {
	return len(t.encoding.Encode(text, nil, nil))
}

// CountMessageTokens approximates the cost of one history entry: the string
// content plus any tool-call payload it carries.
func (t *Tokenizer) CountMessageTokens(msg *types.Message) int {
	total := t.CountTokens(msg.Content)
	for _, tc := range msg.ToolCalls {
		total += t.CountTokens(tc.Name)
		total += t.CountTokens(tc.Arguments)
	}
	return total
}
