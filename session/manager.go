// Package session provides the session manager and the built-in session
// drivers: a process-local memory store, a no-op store, and an HTTP cookie
// store for request-scoped use.
package session

import (
	"carpenter/config"
	"carpenter/domain"
	"carpenter/table"
)

// Factory builds a session driver from its driver sub-config.
type Factory func(cfg config.Driver) (table.Session, error)

// Manager resolves a named session driver for one table build. Extensions
// overwrite built-ins under the same key (last write wins).
type Manager struct {
	cfg     config.Driver
	drivers map[string]Factory
}

// NewManager creates a manager over the built-in drivers plus extensions.
func NewManager(cfg config.Driver, extensions map[string]Factory) *Manager {
	m := &Manager{
		cfg: cfg,
		drivers: map[string]Factory{
			"memory": func(config.Driver) (table.Session, error) {
				return NewMemory(), nil
			},
			"none": func(config.Driver) (table.Session, error) {
				return Null{}, nil
			},
			"cookie": func(config.Driver) (table.Session, error) {
				return nil, domain.ErrValidation(
					"cookie session driver is request-bound: attach one per request with session.NewCookie or register an extension")
			},
		},
	}
	for key, f := range extensions {
		m.drivers[key] = f
	}
	return m
}

// Driver resolves the driver under key; the empty key selects the
// configured default.
func (m *Manager) Driver(key string) (table.Session, error) {
	if key == "" {
		key = m.cfg.Driver
	}
	if key == "" {
		key = "memory"
	}
	f, ok := m.drivers[key]
	if !ok {
		return nil, domain.ErrNotFound("session driver %q is not registered", key)
	}
	return f(m.cfg)
}
