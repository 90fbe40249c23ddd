package checklist

import (
	"sync"
	"time"
)

// DefaultEntryWait is the cool-down between ticking the last box and entering.
const DefaultEntryWait = 10 * time.Minute

// GateState reports where the entry cool-down stands.
type GateState struct {
	Armed     bool          `json:"armed"`
	Ready     bool          `json:"ready"`
	Remaining time.Duration `json:"remaining"`
	Deadline  time.Time     `json:"deadline,omitempty"`
}

// EntryGate starts a countdown once every criterion is ticked and clears it when any box is unticked.
type EntryGate struct {
	mu       sync.Mutex
	wait     time.Duration
	deadline time.Time
}

// NewEntryGate creates a gate with the given cool-down.
func NewEntryGate(wait time.Duration) *EntryGate {
	if wait < 0 {
		wait = 0
	}
	return &EntryGate{wait: wait}
}

// Observe records the current all-checked state at now and returns the gate state.
func (g *EntryGate) Observe(allChecked bool, now time.Time) GateState {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !allChecked {
		g.deadline = time.Time{}
		return GateState{}
	}
	if g.deadline.IsZero() {
		g.deadline = now.Add(g.wait)
	}
	remaining := g.deadline.Sub(now)
	if remaining <= 0 {
		return GateState{Armed: true, Ready: true, Deadline: g.deadline}
	}
	return GateState{Armed: true, Remaining: remaining, Deadline: g.deadline}
}
