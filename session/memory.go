package session

import (
	"context"
	"sync"

	"carpenter/domain"
	"carpenter/table"
)

// Memory is a process-local session driver keyed by table name. Suitable
// for tests and single-process demos; every request shares the same state.
type Memory struct {
	mu     sync.RWMutex
	states map[string]domain.State
}

var _ table.Session = (*Memory)(nil)

// NewMemory creates an empty memory session store.
func NewMemory() *Memory {
	return &Memory{states: make(map[string]domain.State)}
}

func (m *Memory) State(_ context.Context, tableName string) (domain.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyState(m.states[tableName]), nil
}

func (m *Memory) Save(_ context.Context, tableName string, s domain.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[tableName] = copyState(s)
	return nil
}

// copyState deep-copies the filters map so callers cannot alias stored
// state.
func copyState(s domain.State) domain.State {
	if s.Filters == nil {
		return s
	}
	filters := make(map[string]string, len(s.Filters))
	for k, v := range s.Filters {
		filters[k] = v
	}
	s.Filters = filters
	return s
}

// Null is a session driver that holds nothing: state reads are always
// empty and saves are discarded. Useful for stateless export endpoints.
type Null struct{}

var _ table.Session = Null{}

func (Null) State(context.Context, string) (domain.State, error) { return domain.State{}, nil }

func (Null) Save(context.Context, string, domain.State) error { return nil }
