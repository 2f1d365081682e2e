package llm

import (
	"context"
	"sync"
)

// Mock is a canned Client for tests and local debugging. It records how many
// times Complete was called so tests can assert that validation failures never
// reach the upstream.
type Mock struct {
	mu       sync.Mutex
	calls    int
	Response string
	Err      error
}

func (m *Mock) Complete(_ context.Context, _ string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Calls reports how many completions were requested.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
