// Package paginate provides the paginator manager and the built-in
// paginator drivers: numbered offset links and opaque next-page tokens.
package paginate

import (
	"carpenter/config"
	"carpenter/domain"
	"carpenter/table"
)

// Factory builds a paginator driver from its driver sub-config.
type Factory func(cfg config.Driver) (table.Paginator, error)

// Manager resolves a named paginator driver for one table build.
// Extensions overwrite built-ins under the same key (last write wins).
type Manager struct {
	cfg     config.Driver
	drivers map[string]Factory
}

// NewManager creates a manager over the built-in drivers plus extensions.
func NewManager(cfg config.Driver, extensions map[string]Factory) *Manager {
	m := &Manager{
		cfg: cfg,
		drivers: map[string]Factory{
			"offset": func(cfg config.Driver) (table.Paginator, error) {
				return NewOffset(
					WithBaseURL(cfg.Option("base_url", "")),
					WithPageParam(cfg.Option("page_param", "page")),
				), nil
			},
			"token": func(config.Driver) (table.Paginator, error) {
				return Token{}, nil
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
func (m *Manager) Driver(key string) (table.Paginator, error) {
	if key == "" {
		key = m.cfg.Driver
	}
	if key == "" {
		key = "offset"
	}
	f, ok := m.drivers[key]
	if !ok {
		return nil, domain.ErrNotFound("paginator driver %q is not registered", key)
	}
	return f(m.cfg)
}
