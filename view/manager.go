// Package view provides the view manager and the built-in view drivers:
// a gomponents HTML fragment, CSV export, and JSON.
package view

import (
	"carpenter/config"
	"carpenter/domain"
	"carpenter/table"
)

// Factory builds a view driver from its driver sub-config.
type Factory func(cfg config.Driver) (table.View, error)

// Manager resolves a named view driver for one table build. Extensions
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
			"html": func(cfg config.Driver) (table.View, error) {
				return NewHTML(HTMLBasePath(cfg.Option("base_path", ""))), nil
			},
			"csv": func(config.Driver) (table.View, error) {
				return CSV{}, nil
			},
			"json": func(config.Driver) (table.View, error) {
				return JSON{}, nil
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
func (m *Manager) Driver(key string) (table.View, error) {
	if key == "" {
		key = m.cfg.Driver
	}
	if key == "" {
		key = "html"
	}
	f, ok := m.drivers[key]
	if !ok {
		return nil, domain.ErrNotFound("view driver %q is not registered", key)
	}
	return f(m.cfg)
}
