package table

import "errors"

// ErrNoColumn is returned by Export when a cell has no owning column. The
// display path never produces such cells; the error makes the detached case
// explicit instead of silently returning nothing.
var ErrNoColumn = errors.New("cell has no owning column")

// Cell wraps one presented value. The row and column references are
// non-owning back-references kept for rendering context.
type Cell struct {
	value  any
	row    *Row
	column *Column
}

// newCell applies the column's presenter (when present) to the raw value
// and wraps the result. A panicking presenter aborts the whole table build.
func newCell(raw any, row *Row, col *Column) *Cell {
	value := raw
	if col != nil && col.presenter != nil {
		value = col.presenter.Present(raw, row)
	}
	return &Cell{value: value, row: row, column: col}
}

// Value returns the presented value.
func (c *Cell) Value() any { return c.value }

// Row returns the owning row.
func (c *Cell) Row() *Row { return c.row }

// Column returns the owning column, or nil for a detached cell.
func (c *Cell) Column() *Column { return c.column }

// Export produces the cell's export-path representation. Without a
// spreadsheet configurator on the column the presented value is returned
// unchanged. With one, a SpreadsheetCell is built from the value and the
// row's ID, handed to the configurator, and its rendered string returned.
func (c *Cell) Export() (any, error) {
	if c.column == nil {
		return nil, ErrNoColumn
	}
	if c.column.spreadsheet == nil {
		return c.value, nil
	}
	var rowID any
	if c.row != nil {
		rowID = c.row.id
	}
	sc := NewSpreadsheetCell(c.value, rowID)
	c.column.spreadsheet(sc)
	return sc.Render(), nil
}
