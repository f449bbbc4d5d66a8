package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"carpenter/config"
	"carpenter/domain"
	"carpenter/table"
)

// identRe restricts SQL identifiers reaching query text. Targets, sort keys
// and filter keys that fail it are rejected before any SQL is built.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQL is a store driver over a database/sql handle. It works against any
// driver that understands double-quoted identifiers and ?-placeholders
// (SQLite and DuckDB among them).
type SQL struct {
	db       *sql.DB
	idColumn string
}

var _ table.Store = (*SQL)(nil)

// SQLOption configures the SQL store.
type SQLOption func(*SQL)

// WithIDColumn names the column used as the record identifier
// (default "id").
func WithIDColumn(name string) SQLOption {
	return func(s *SQL) { s.idColumn = name }
}

// NewSQL creates a SQL store over an existing database handle. The handle
// is shared, not owned: callers manage its lifecycle.
func NewSQL(db *sql.DB, opts ...SQLOption) *SQL {
	s := &SQL{db: db, idColumn: "id"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// sqlFromConfig opens a database handle from the driver options. Prefer
// registering an extension around a shared handle (NewSQL) in long-running
// processes; this path exists for configuration-only setups.
func sqlFromConfig(cfg config.Driver) (table.Store, error) {
	driver := cfg.Option("sql_driver", "sqlite3")
	dsn := cfg.Option("dsn", "")
	if dsn == "" {
		return nil, domain.ErrValidation("sql store requires a dsn option")
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	return NewSQL(db, WithIDColumn(cfg.Option("id_column", "id"))), nil
}

func (s *SQL) Fetch(ctx context.Context, q domain.Query) (domain.RecordSet, error) {
	if q.Target == "" {
		return domain.RecordSet{}, domain.ErrValidation("sql store requires a source target")
	}
	if !identRe.MatchString(q.Target) {
		return domain.RecordSet{}, domain.ErrValidation("invalid source target %q", q.Target)
	}

	where, args, err := buildWhere(q.Filters)
	if err != nil {
		return domain.RecordSet{}, err
	}

	var total int64
	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, quoteIdent(q.Target), where)
	if err := s.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return domain.RecordSet{}, fmt.Errorf("count %s: %w", q.Target, err)
	}

	query, queryArgs, err := buildSelect(q, where, args)
	if err != nil {
		return domain.RecordSet{}, err
	}
	rows, err := s.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return domain.RecordSet{}, fmt.Errorf("query %s: %w", q.Target, err)
	}
	defer rows.Close() //nolint:errcheck

	records, err := s.scanRecords(rows, q.Offset)
	if err != nil {
		return domain.RecordSet{}, err
	}
	return domain.RecordSet{Records: records, Total: total}, nil
}

func buildWhere(filters map[string]string) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}
	keys := make([]string, 0, len(filters))
	for key := range filters {
		if !identRe.MatchString(key) {
			return "", nil, domain.ErrValidation("invalid filter column %q", key)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, key := range keys {
		clauses = append(clauses, fmt.Sprintf(`LOWER(CAST(%s AS TEXT)) LIKE ? ESCAPE '\'`, quoteIdent(key)))
		args = append(args, "%"+escapeLike(strings.ToLower(filters[key]))+"%")
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

// escapeLike neutralizes LIKE metacharacters so filter expressions match as
// literal substrings, same as the slice driver.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func buildSelect(q domain.Query, where string, args []any) (string, []any, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `SELECT * FROM %s%s`, quoteIdent(q.Target), where)

	if q.Sort != "" {
		if !identRe.MatchString(q.Sort) {
			return "", nil, domain.ErrValidation("invalid sort column %q", q.Sort)
		}
		dir := "ASC"
		if q.Dir.Normalize() == domain.SortDesc {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, ` ORDER BY %s %s`, quoteIdent(q.Sort), dir)
	}

	queryArgs := append([]any(nil), args...)
	if q.Limit > 0 {
		sb.WriteString(` LIMIT ? OFFSET ?`)
		queryArgs = append(queryArgs, q.Limit, q.Offset)
	}
	return sb.String(), queryArgs, nil
}

func (s *SQL) scanRecords(rows *sql.Rows, offset int) ([]domain.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	var records []domain.Record
	for i := 0; rows.Next(); i++ {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for j := range values {
			ptrs[j] = &values[j]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		fields := make(map[string]any, len(cols))
		for j, col := range cols {
			fields[col] = normalizeSQLValue(values[j])
		}

		id, ok := fields[s.idColumn]
		if !ok {
			// No identifier column in the result: fall back to the
			// absolute row position.
			id = offset + i
		}
		records = append(records, domain.NewMapRecord(id, fields))
	}
	return records, rows.Err()
}

// normalizeSQLValue turns driver-specific raw values into the plain types
// presenters expect.
func normalizeSQLValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}
