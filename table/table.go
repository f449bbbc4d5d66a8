// Package table implements the core table model: ordered column
// declarations, the materialization step that turns store records into rows
// of presented cells, and the contracts of the four pluggable collaborators
// (store, session, view, paginator).
package table

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"carpenter/domain"
)

// Table aggregates column declarations, one driver per pluggable concern,
// and — after materialization — the resulting rows and page metadata.
//
// A table's life has two phases. During configuration the builder declares
// columns, the source target, page size, and default sort, and may override
// the drivers the facade wired in. Materialize closes the configuration
// phase: it reads session state, fetches records through the store, builds
// the row/cell graph, and asks the paginator for page metadata. Render
// materializes on demand, so no partially-built table is ever rendered.
type Table struct {
	name   string
	logger *slog.Logger

	columns []*Column
	byKey   map[string]*Column

	target      string
	pageSize    int
	defaultSort string
	defaultDir  domain.SortDirection

	store     Store
	session   Session
	view      View
	paginator Paginator

	built       bool
	stateLoaded bool
	rows        []*Row
	state       domain.State
	page        domain.PageInfo
}

// Option configures a Table at construction time.
type Option func(*Table)

// WithLogger attaches a logger used for materialization diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(t *Table) { t.logger = l }
}

// New creates an empty table with the given name.
func New(name string, opts ...Option) *Table {
	t := &Table{
		name:  name,
		byKey: make(map[string]*Column),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

// Name returns the table's registry name.
func (t *Table) Name() string { return t.name }

// AddColumn declares a column. Declaring the same key twice replaces the
// earlier declaration in place, preserving its position.
func (t *Table) AddColumn(key string, opts ...ColumnOption) *Column {
	col := newColumn(key, opts...)
	if prev, ok := t.byKey[key]; ok {
		for i, c := range t.columns {
			if c == prev {
				t.columns[i] = col
				break
			}
		}
	} else {
		t.columns = append(t.columns, col)
	}
	t.byKey[key] = col
	return col
}

// Column returns the declared column under key.
func (t *Table) Column(key string) (*Column, bool) {
	c, ok := t.byKey[key]
	return c, ok
}

// Columns returns all declared columns in declaration order.
func (t *Table) Columns() []*Column { return t.columns }

// VisibleColumns returns the declared columns that are not hidden.
func (t *Table) VisibleColumns() []*Column {
	out := make([]*Column, 0, len(t.columns))
	for _, c := range t.columns {
		if !c.hidden {
			out = append(out, c)
		}
	}
	return out
}

// Source sets the store-side target (table, view, collection name).
func (t *Table) Source(target string) *Table {
	t.target = target
	return t
}

// Target returns the store-side target set via Source.
func (t *Table) Target() string { return t.target }

// PageSize sets the number of rows per page.
func (t *Table) PageSize(n int) *Table {
	t.pageSize = n
	return t
}

// SortBy sets the default sort applied when the session holds none.
func (t *Table) SortBy(key string, dir domain.SortDirection) *Table {
	t.defaultSort = key
	t.defaultDir = dir.Normalize()
	return t
}

// UseStore overrides the store driver.
func (t *Table) UseStore(s Store) *Table { t.store = s; return t }

// UseSession overrides the session driver.
func (t *Table) UseSession(s Session) *Table { t.session = s; return t }

// UseView overrides the view driver.
func (t *Table) UseView(v View) *Table { t.view = v; return t }

// UsePaginator overrides the paginator driver.
func (t *Table) UsePaginator(p Paginator) *Table { t.paginator = p; return t }

// UpdateState reads the session-held state, applies fn to it, and saves it
// back. Calling it after materialization invalidates the built rows so the
// next Materialize refetches with the new state.
func (t *Table) UpdateState(ctx context.Context, fn func(*domain.State)) error {
	state, err := t.loadState(ctx)
	if err != nil {
		return err
	}
	fn(&state)
	if t.session != nil {
		if err := t.session.Save(ctx, t.name, state); err != nil {
			return fmt.Errorf("save state for table %q: %w", t.name, err)
		}
	}
	t.state = state
	t.stateLoaded = true
	if t.built {
		t.built = false
		t.rows = nil
	}
	return nil
}

// Materialize pulls records through the store and builds the row/cell
// graph. It is a no-op once the table is built. It fails with a validation
// error when columns or the store are missing — the structure must be
// finalized before any data is fetched.
func (t *Table) Materialize(ctx context.Context) error {
	if t.built {
		return nil
	}
	if len(t.columns) == 0 {
		return domain.ErrValidation("table %q has no columns", t.name)
	}
	if t.store == nil {
		return domain.ErrValidation("table %q has no store driver", t.name)
	}

	state, err := t.loadState(ctx)
	if err != nil {
		return err
	}
	t.stateLoaded = true
	t.state = t.sanitizeState(state)

	pageSize := domain.ClampPageSize(t.pageSize)
	page := t.state.Page
	if page < 1 {
		page = 1
	}

	q := domain.Query{
		Target:  t.target,
		Filters: t.state.Filters,
		Sort:    t.state.Sort,
		Dir:     t.state.Dir,
		Offset:  (page - 1) * pageSize,
		Limit:   pageSize,
	}
	rs, err := t.store.Fetch(ctx, q)
	if err != nil {
		return fmt.Errorf("fetch table %q: %w", t.name, err)
	}

	t.rows = make([]*Row, 0, len(rs.Records))
	for _, rec := range rs.Records {
		t.rows = append(t.rows, t.buildRow(rec))
	}

	if t.paginator != nil {
		info, err := t.paginator.Paginate(rs.Total, pageSize, page)
		if err != nil {
			return fmt.Errorf("paginate table %q: %w", t.name, err)
		}
		t.page = info
	} else {
		t.page = domain.PageInfo{
			Page:       page,
			PageSize:   pageSize,
			TotalRows:  rs.Total,
			TotalPages: domain.TotalPages(rs.Total, pageSize),
		}
	}

	t.built = true
	t.logger.Debug("table materialized",
		"table", t.name, "rows", len(t.rows), "total", rs.Total, "page", page)
	return nil
}

// Materialized reports whether rows have been built.
func (t *Table) Materialized() bool { return t.built }

// Rows returns the materialized rows in fetch order.
func (t *Table) Rows() []*Row { return t.rows }

// State returns the sanitized session state the last materialization used.
func (t *Table) State() domain.State { return t.state }

// PageInfo returns the pagination metadata of the last materialization.
func (t *Table) PageInfo() domain.PageInfo { return t.page }

// Render materializes the table if needed and delegates output to the view
// driver.
func (t *Table) Render(ctx context.Context, w io.Writer) error {
	if err := t.Materialize(ctx); err != nil {
		return err
	}
	if t.view == nil {
		return domain.ErrValidation("table %q has no view driver", t.name)
	}
	return t.view.Render(ctx, w, t)
}

// loadState returns the state this build works with. Once UpdateState or
// Materialize has read it, later calls reuse t.state instead of asking the
// session again: a driver may not echo saves back within the same build
// (the cookie driver reads the request header but writes the response), so
// a re-read would discard updates.
func (t *Table) loadState(ctx context.Context) (domain.State, error) {
	if t.stateLoaded || t.session == nil {
		return t.state, nil
	}
	state, err := t.session.State(ctx, t.name)
	if err != nil {
		return domain.State{}, fmt.Errorf("load state for table %q: %w", t.name, err)
	}
	return state, nil
}

// sanitizeState discards sort keys that do not name a sortable column and
// filters on unknown columns, substituting the table defaults.
func (t *Table) sanitizeState(s domain.State) domain.State {
	if col, ok := t.byKey[s.Sort]; !ok || !col.sortable {
		s.Sort = t.defaultSort
		s.Dir = t.defaultDir
	} else {
		s.Dir = s.Dir.Normalize()
	}
	for key := range s.Filters {
		if _, ok := t.byKey[key]; !ok {
			delete(s.Filters, key)
		}
	}
	return s
}

func (t *Table) buildRow(rec domain.Record) *Row {
	row := &Row{id: rec.ID()}
	for _, col := range t.columns {
		raw, _ := rec.Field(col.key)
		row.add(col.key, newCell(raw, row, col))
	}
	return row
}
