package view

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"carpenter/table"
)

// CSV writes the visible columns of the current page as CSV, one header
// row followed by one record per row. Cell values go through Export, so
// spreadsheet formatting callbacks apply.
type CSV struct{}

var _ table.View = CSV{}

func (CSV) Render(_ context.Context, w io.Writer, t *table.Table) error {
	columns := t.VisibleColumns()

	cw := csv.NewWriter(w)
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Label()
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(columns))
	for _, row := range t.Rows() {
		for i, col := range columns {
			record[i] = ""
			cell, ok := row.Cell(col.Key())
			if !ok {
				continue
			}
			value, err := cell.Export()
			if err != nil {
				return fmt.Errorf("export cell %q of row %v: %w", col.Key(), row.ID(), err)
			}
			record[i] = table.FormatValue(value)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %v: %w", row.ID(), err)
		}
	}

	cw.Flush()
	return cw.Error()
}
