package table

import (
	"context"
	"io"

	"carpenter/domain"
)

// Store fetches raw records for one table build. Given the query assembled
// from the table's target and its session state, it returns one page of
// records plus the total count before paging.
type Store interface {
	Fetch(ctx context.Context, q domain.Query) (domain.RecordSet, error)
}

// Session persists per-table sort/filter/page state across requests,
// keyed by table name.
type Session interface {
	State(ctx context.Context, table string) (domain.State, error)
	Save(ctx context.Context, table string, s domain.State) error
}

// View renders a materialized table to w. Rendering is a pure
// transformation: it must not mutate the table.
type View interface {
	Render(ctx context.Context, w io.Writer, t *Table) error
}

// Paginator derives pagination metadata from the total record count, the
// page size, and the current page (1-based).
type Paginator interface {
	Paginate(total int64, pageSize, page int) (domain.PageInfo, error)
}
