// Package history keeps the agent's conversation transcript inside a token
// budget. Pruning is recency-biased: the newest messages survive, the oldest
// are dropped first.
package history

import (
	"fmt"

	"github.com/eldarkhalilouv/ai-browser-agent/pkg/types"
)

const (
	// maxResultChars is the tool result size above which the result is
	// truncated before entering the transcript.
	maxResultChars = 20000
	// keptResultChars is how much of an oversized result survives.
	keptResultChars = 2000

	// messageOverheadChars approximates per-message framing when no real
	// tokenizer is available.
	messageOverheadChars = 12
)

// TokenCounter measures the token cost of one message. *tokenizer.Tokenizer
// satisfies it; tests substitute cheaper counters.
type TokenCounter interface {
	CountMessageTokens(msg *types.Message) int
}

// Manager prunes transcripts to a token limit.
type Manager struct {
	counter TokenCounter
	limit   int
}

// NewManager creates a manager with the given counter and token limit. A nil
// counter falls back to a character-based estimate.
func NewManager(counter TokenCounter, limit int) *Manager {
	return &Manager{counter: counter, limit: limit}
}

// Prune returns the longest suffix of messages that fits the token limit.
// The most recent message is always kept, even if it alone exceeds the
// limit. The input slice is not modified.
func (m *Manager) Prune(messages []*types.Message) []*types.Message {
	if len(messages) == 0 {
		return nil
	}

	kept := make([]*types.Message, 0, len(messages))
	total := 0
	for i := len(messages) - 1; i >= 0; i-- {
		cost := m.cost(messages[i])
		if len(kept) > 0 && total+cost > m.limit {
			break
		}
		kept = append(kept, messages[i])
		total += cost
	}

	// kept is newest-first; restore chronological order.
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}

// TruncateResult shortens an oversized tool result, keeping its head and
// appending a marker that tells the model how to recover the observation.
func (m *Manager) TruncateResult(result string) string {
	runes := []rune(result)
	if len(runes) <= maxResultChars {
		return result
	}
	return string(runes[:keptResultChars]) + fmt.Sprintf(
		"\n...[TRUNCATED] result was %d characters. Call scan_page again for a fresh observation if needed.",
		len(runes))
}

func (m *Manager) cost(msg *types.Message) int {
	if m.counter != nil {
		return m.counter.CountMessageTokens(msg)
	}
	chars := len(msg.Content) + messageOverheadChars
	for _, tc := range msg.ToolCalls {
		chars += len(tc.Name) + len(tc.Arguments)
	}
	return chars / 4
}
