// Package testutil provides test doubles for the llm package.
package testutil

import (
	"context"
	"sync"

	"github.com/c360studio/traitmatrix/llm"
)

// Call records one backend invocation for later assertions.
type Call struct {
	// Multi is true for Converse calls, false for Generate calls.
	Multi bool
	// Messages holds the turns sent. Generate calls record the system and
	// user prompts as two turns.
	Messages []llm.Message
}

// MockBackend is a thread-safe fake inference backend. It returns queued
// responses in order and records every call.
//
// Usage:
//
//	mock := &testutil.MockBackend{
//	    Responses: []string{`[{"characteristic": "habit", "value": "tree"}]`},
//	}
type MockBackend struct {
	mu sync.Mutex

	// Responses are returned in sequence. When exhausted, the last
	// response repeats.
	Responses []string
	// Err, when set, is returned by every call instead of a response.
	Err error

	calls []Call
	index int
}

var _ llm.Backend = (*MockBackend)(nil)

// Generate implements llm.Backend.
func (m *MockBackend) Generate(_ context.Context, system, user string) (string, error) {
	return m.record(Call{Messages: []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}})
}

// Converse implements llm.Backend.
func (m *MockBackend) Converse(_ context.Context, messages []llm.Message) (string, error) {
	msgs := make([]llm.Message, len(messages))
	copy(msgs, messages)
	return m.record(Call{Multi: true, Messages: msgs})
}

func (m *MockBackend) record(c Call) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, c)

	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}

	resp := m.Responses[min(m.index, len(m.Responses)-1)]
	m.index++
	return resp, nil
}

// Calls returns a copy of the recorded calls.
func (m *MockBackend) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times the backend was invoked.
func (m *MockBackend) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Reset clears recorded calls and rewinds the response queue.
func (m *MockBackend) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.index = 0
}
