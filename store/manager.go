// Package store provides the store manager and the built-in store drivers:
// an in-memory slice store and a database/sql store.
package store

import (
	"carpenter/config"
	"carpenter/domain"
	"carpenter/table"
)

// Factory builds a store driver from its driver sub-config.
type Factory func(cfg config.Driver) (table.Store, error)

// Manager resolves a named store driver for one table build. Extensions
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
			"slice": func(config.Driver) (table.Store, error) {
				return NewSlice(nil), nil
			},
			"sql": sqlFromConfig,
		},
	}
	for key, f := range extensions {
		m.drivers[key] = f
	}
	return m
}

// Driver resolves the driver under key; the empty key selects the
// configured default.
func (m *Manager) Driver(key string) (table.Store, error) {
	if key == "" {
		key = m.cfg.Driver
	}
	if key == "" {
		key = "slice"
	}
	f, ok := m.drivers[key]
	if !ok {
		return nil, domain.ErrNotFound("store driver %q is not registered", key)
	}
	return f(m.cfg)
}
