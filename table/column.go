package table

import (
	"strings"
	"unicode/utf8"
)

// Presenter transforms a raw cell value before it is stored on the cell.
// The row is the (partially built) row the cell belongs to, provided for
// context; presenters must not mutate it.
type Presenter interface {
	Present(value any, row *Row) any
}

// PresenterFunc adapts a plain function to the Presenter interface.
type PresenterFunc func(value any, row *Row) any

func (f PresenterFunc) Present(value any, row *Row) any { return f(value, row) }

// SpreadsheetConfig configures a SpreadsheetCell in place before it is
// rendered on the export path.
type SpreadsheetConfig func(c *SpreadsheetCell)

// Column declares one field of a table: its key, display label, flags, and
// optional per-cell behavior. Columns are configured while the table is
// being built and treated as immutable once rows are materialized.
type Column struct {
	key         string
	label       string
	sortable    bool
	hidden      bool
	presenter   Presenter
	spreadsheet SpreadsheetConfig
}

// ColumnOption configures a column at declaration time.
type ColumnOption func(*Column)

// Label sets the column's display label. Unset labels are derived from the
// key ("first_name" becomes "First Name").
func Label(s string) ColumnOption {
	return func(c *Column) { c.label = s }
}

// Sortable marks the column as a valid sort target.
func Sortable() ColumnOption {
	return func(c *Column) { c.sortable = true }
}

// Hidden excludes the column from rendered output. Hidden columns are still
// materialized and available to presenters on other columns.
func Hidden() ColumnOption {
	return func(c *Column) { c.hidden = true }
}

// WithPresenter attaches a value presenter to the column.
func WithPresenter(p Presenter) ColumnOption {
	return func(c *Column) { c.presenter = p }
}

// Present attaches a plain presenter function to the column.
func Present(fn func(value any, row *Row) any) ColumnOption {
	return WithPresenter(PresenterFunc(fn))
}

// Spreadsheet attaches the export-path cell configurator.
func Spreadsheet(fn SpreadsheetConfig) ColumnOption {
	return func(c *Column) { c.spreadsheet = fn }
}

func newColumn(key string, opts ...ColumnOption) *Column {
	c := &Column{key: key}
	for _, opt := range opts {
		opt(c)
	}
	if c.label == "" {
		c.label = deriveLabel(key)
	}
	return c
}

// Key returns the column's field key.
func (c *Column) Key() string { return c.key }

// Label returns the column's display label.
func (c *Column) Label() string { return c.label }

// Sortable reports whether the column may be sorted on.
func (c *Column) Sortable() bool { return c.sortable }

// Hidden reports whether the column is excluded from rendered output.
func (c *Column) Hidden() bool { return c.hidden }

// Presenter returns the column's presenter, or nil.
func (c *Column) Presenter() Presenter { return c.presenter }

// deriveLabel turns a snake_case or kebab-case key into a title-cased label.
func deriveLabel(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
