// Package carpenter builds data tables from pluggable parts: a store that
// fetches records, a session that keeps per-table UI state, a view that
// renders the result, and a paginator that shapes page navigation. Tables
// are registered under a name and constructed fresh on every Get, so one
// registry can serve many concurrent requests.
package carpenter

import (
	"context"
	"log/slog"
	"sync"

	"carpenter/config"
	"carpenter/domain"
	"carpenter/paginate"
	"carpenter/session"
	"carpenter/store"
	"carpenter/table"
	"carpenter/view"
)

// Carpenter is the table registry and factory. It is safe for concurrent
// use; every Get builds an independent table instance.
type Carpenter struct {
	cfg    *config.Config
	logger *slog.Logger

	mu       sync.RWMutex
	builders map[string]Ref
	types    map[string]func() Builder

	storeExt     map[string]store.Factory
	sessionExt   map[string]session.Factory
	viewExt      map[string]view.Factory
	paginatorExt map[string]paginate.Factory
}

// Option configures a Carpenter.
type Option func(*Carpenter)

// WithLogger sets the logger handed to every built table.
func WithLogger(l *slog.Logger) Option {
	return func(c *Carpenter) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Carpenter over the given configuration. A nil cfg means
// the defaults.
func New(cfg *config.Config, opts ...Option) *Carpenter {
	if cfg == nil {
		cfg = config.Default()
	}
	c := &Carpenter{
		cfg:          cfg,
		logger:       slog.Default(),
		builders:     make(map[string]Ref),
		types:        make(map[string]func() Builder),
		storeExt:     make(map[string]store.Factory),
		sessionExt:   make(map[string]session.Factory),
		viewExt:      make(map[string]view.Factory),
		paginatorExt: make(map[string]paginate.Factory),
	}
	// The memory session must outlive single builds or state would reset
	// on every Get. Pin one shared instance; ExtendSession can override.
	shared := session.NewMemory()
	c.sessionExt["memory"] = func(config.Driver) (table.Session, error) {
		return shared, nil
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add registers a builder reference under a table name. Registering the
// same name twice replaces the earlier builder.
func (c *Carpenter) Add(name string, ref Ref) *Carpenter {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builders[name] = ref
	return c
}

// AddFunc registers a builder function under a table name.
func (c *Carpenter) AddFunc(name string, fn func(t *table.Table) error) *Carpenter {
	return c.Add(name, FuncRef(fn))
}

// RegisterType registers a builder factory under a type name, making it
// addressable from symbolic refs ("reports.Passengers@compact").
func (c *Carpenter) RegisterType(name string, factory func() Builder) *Carpenter {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types[name] = factory
	return c
}

// Names returns the registered table names, unordered.
func (c *Carpenter) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.builders))
	for name := range c.builders {
		names = append(names, name)
	}
	return names
}

// Has reports whether a table is registered under name.
func (c *Carpenter) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.builders[name]
	return ok
}

// Get builds the table registered under name. The builder runs first,
// then the callbacks in order, so callers can apply per-request state
// (query parameters, driver overrides) on top of the builder's structure.
// The table is returned unmaterialized.
func (c *Carpenter) Get(ctx context.Context, name string, callbacks ...func(t *table.Table) error) (*table.Table, error) {
	c.mu.RLock()
	ref, ok := c.builders[name]
	c.mu.RUnlock()
	if !ok {
		return nil, &domain.UnknownTableError{Name: name}
	}
	return c.Make(ctx, name, ref, callbacks...)
}

// Make builds a table from an explicit builder reference, bypassing the
// registry. Default drivers from the configuration are attached before
// the builder runs, so the builder can override any of them.
func (c *Carpenter) Make(_ context.Context, name string, ref Ref, callbacks ...func(t *table.Table) error) (*table.Table, error) {
	c.mu.RLock()
	types := c.types
	builder, err := ref.resolve(types)
	c.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	t := table.New(name, table.WithLogger(c.logger)).
		PageSize(c.cfg.PageSize)
	if err := c.attachDrivers(t); err != nil {
		return nil, err
	}

	if err := builder.Build(t); err != nil {
		return nil, err
	}
	for _, cb := range callbacks {
		if err := cb(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// attachDrivers resolves the configured default driver of each kind
// through a fresh manager and wires it into the table.
func (c *Carpenter) attachDrivers(t *table.Table) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st, err := store.NewManager(c.cfg.Store, c.storeExt).Driver("")
	if err != nil {
		return err
	}
	se, err := session.NewManager(c.cfg.Session, c.sessionExt).Driver("")
	if err != nil {
		return err
	}
	vw, err := view.NewManager(c.cfg.View, c.viewExt).Driver("")
	if err != nil {
		return err
	}
	pg, err := paginate.NewManager(c.cfg.Paginator, c.paginatorExt).Driver("")
	if err != nil {
		return err
	}
	t.UseStore(st).UseSession(se).UseView(vw).UsePaginator(pg)
	return nil
}

// ExtendStore registers a store driver factory under key, shadowing a
// built-in of the same name.
func (c *Carpenter) ExtendStore(key string, f store.Factory) *Carpenter {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storeExt[key] = f
	return c
}

// ExtendSession registers a session driver factory under key.
func (c *Carpenter) ExtendSession(key string, f session.Factory) *Carpenter {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionExt[key] = f
	return c
}

// ExtendView registers a view driver factory under key.
func (c *Carpenter) ExtendView(key string, f view.Factory) *Carpenter {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewExt[key] = f
	return c
}

// ExtendPaginator registers a paginator driver factory under key.
func (c *Carpenter) ExtendPaginator(key string, f paginate.Factory) *Carpenter {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paginatorExt[key] = f
	return c
}
