package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardCountsConsecutiveRepeats(t *testing.T) {
	g := &actionGuard{}

	assert.Equal(t, 1, g.Record("click_element", `{"element_id":3}`))
	assert.Equal(t, 2, g.Record("click_element", `{"element_id":3}`))
	assert.Equal(t, 3, g.Record("click_element", `{"element_id":3}`))
	assert.Equal(t, 2, g.Repeats())
}

func TestGuardResetsOnDifferentAction(t *testing.T) {
	g := &actionGuard{}

	g.Record("click_element", `{"element_id":3}`)
	g.Record("click_element", `{"element_id":3}`)
	assert.Equal(t, 1, g.Record("scroll", `{"direction":"down"}`))
	assert.Equal(t, 0, g.Repeats())
}

func TestGuardDistinguishesArguments(t *testing.T) {
	g := &actionGuard{}

	g.Record("click_element", `{"element_id":3}`)
	assert.Equal(t, 1, g.Record("click_element", `{"element_id":4}`))
}

func TestOverrideResultMentionsCount(t *testing.T) {
	assert.Contains(t, overrideResult(3), "3 times in a row")
	assert.Contains(t, overrideResult(3), "SYSTEM OVERRIDE")
}
