// Package audit emits moderation-trail events for commit submissions and
// approvals. Emission is best-effort: a failed publish is logged by the
// caller, never surfaced to the end user.
package audit

import (
	"context"
	"sync"
	"time"
)

// Actions recorded in the trail.
const (
	ActionCommitSubmitted = "commit.submitted"
	ActionCommitApproved  = "commit.approved"
)

// Event is one moderation-trail entry. Keep it transport-agnostic so stores
// and sinks can fan out.
type Event struct {
	Action    string    `json:"action"`
	Hash      string    `json:"hash"`
	Alias     string    `json:"alias,omitempty"`
	Tap       string    `json:"tap,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher delivers audit events to a sink.
type Publisher interface {
	Emit(ctx context.Context, e Event) error
	Close() error
}

// Nop discards every event. Used when no sink is configured.
type Nop struct{}

func (Nop) Emit(context.Context, Event) error { return nil }
func (Nop) Close() error                      { return nil }

// Memory keeps events in-process. Useful in tests and single-node setups.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Emit(_ context.Context, e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

// Events returns a copy of everything emitted so far.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *Memory) Close() error { return nil }
