package history

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldarkhalilouv/ai-browser-agent/pkg/types"
)

// charCounter charges one token per content character, making budgets easy
// to reason about in tests.
type charCounter struct{}

func (charCounter) CountMessageTokens(msg *types.Message) int {
	return len(msg.Content)
}

func msgOfLen(n int) *types.Message {
	return types.NewUserMessage(strings.Repeat("a", n))
}

func TestPruneEmpty(t *testing.T) {
	m := NewManager(charCounter{}, 100)
	assert.Nil(t, m.Prune(nil))
}

func TestPruneKeepsNewestWithinBudget(t *testing.T) {
	m := NewManager(charCounter{}, 100)
	messages := []*types.Message{
		types.NewUserMessage(strings.Repeat("a", 60)), // dropped
		types.NewUserMessage(strings.Repeat("b", 60)), // dropped
		types.NewUserMessage(strings.Repeat("c", 50)),
		types.NewUserMessage(strings.Repeat("d", 50)),
	}

	kept := m.Prune(messages)
	require.Len(t, kept, 2)
	assert.Equal(t, strings.Repeat("c", 50), kept[0].Content)
	assert.Equal(t, strings.Repeat("d", 50), kept[1].Content)
}

func TestPruneKeepsAllWhenUnderBudget(t *testing.T) {
	m := NewManager(charCounter{}, 1000)
	messages := []*types.Message{msgOfLen(10), msgOfLen(10), msgOfLen(10)}

	kept := m.Prune(messages)
	assert.Equal(t, messages, kept)
}

func TestPruneAlwaysKeepsMostRecent(t *testing.T) {
	m := NewManager(charCounter{}, 10)
	messages := []*types.Message{msgOfLen(5), msgOfLen(500)}

	kept := m.Prune(messages)
	require.Len(t, kept, 1)
	assert.Len(t, kept[0].Content, 500)
}

func TestPruneIsIdempotent(t *testing.T) {
	m := NewManager(charCounter{}, 100)
	messages := []*types.Message{msgOfLen(60), msgOfLen(50), msgOfLen(40)}

	once := m.Prune(messages)
	twice := m.Prune(once)
	assert.Equal(t, once, twice)
}

func TestPruneNilCounterEstimates(t *testing.T) {
	// ~253 estimated tokens per message ((1000+12)/4); limit fits two.
	m := NewManager(nil, 510)
	messages := []*types.Message{msgOfLen(1000), msgOfLen(1000), msgOfLen(1000)}

	kept := m.Prune(messages)
	assert.Len(t, kept, 2)
}

func TestTruncateResultShortPassesThrough(t *testing.T) {
	m := NewManager(charCounter{}, 100)
	result := strings.Repeat("x", 19999)
	assert.Equal(t, result, m.TruncateResult(result))
}

func TestTruncateResultLong(t *testing.T) {
	m := NewManager(charCounter{}, 100)
	result := strings.Repeat("x", 25000)

	truncated := m.TruncateResult(result)
	assert.True(t, strings.HasPrefix(truncated, strings.Repeat("x", 2000)))
	assert.Contains(t, truncated, "[TRUNCATED] result was 25000 characters")
	assert.Contains(t, truncated, "scan_page")
	assert.Less(t, len(truncated), 2200)
}
