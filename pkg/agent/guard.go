package agent

import "fmt"

// overrideThreshold is the consecutive-occurrence count at which an action is
// refused. The third identical call in a row is intercepted.
const overrideThreshold = 3

// actionFingerprint identifies an action by name and raw argument string.
type actionFingerprint struct {
	name string
	args string
}

// actionGuard detects the agent spinning on one action. Control tools are not
// recorded, so planning and finishing are never blocked.
type actionGuard struct {
	last  actionFingerprint
	count int
}

// Record registers a selected action and returns how many times in a row it
// has now been selected, including this one.
func (g *actionGuard) Record(name, args string) int {
	fp := actionFingerprint{name: name, args: args}
	if fp == g.last {
		g.count++
	} else {
		g.last = fp
		g.count = 1
	}
	return g.count
}

// Repeats returns how many times the last action repeated beyond its first
// occurrence.
func (g *actionGuard) Repeats() int {
	if g.count <= 1 {
		return 0
	}
	return g.count - 1
}

// overrideResult is the synthetic tool result injected instead of executing a
// looping action.
func overrideResult(count int) string {
	return fmt.Sprintf("SYSTEM OVERRIDE: you have chosen the exact same action %d times in a row. STOP. Pick a DIFFERENT tool or strategy.", count)
}
