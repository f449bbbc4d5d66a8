package view

import (
	"context"
	"encoding/json"
	"io"

	"carpenter/domain"
	"carpenter/table"
)

// JSON writes a self-describing document with the column metadata, the
// rows of the current page keyed by column, and the page info.
type JSON struct{}

var _ table.View = JSON{}

type jsonColumn struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
}

type jsonDocument struct {
	Table   string           `json:"table"`
	Columns []jsonColumn     `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Page    domain.PageInfo  `json:"page"`
}

func (JSON) Render(_ context.Context, w io.Writer, t *table.Table) error {
	columns := t.VisibleColumns()

	doc := jsonDocument{
		Table:   t.Name(),
		Columns: make([]jsonColumn, len(columns)),
		Rows:    make([]map[string]any, 0, len(t.Rows())),
		Page:    t.PageInfo(),
	}
	for i, col := range columns {
		doc.Columns[i] = jsonColumn{Key: col.Key(), Label: col.Label(), Sortable: col.Sortable()}
	}

	for _, row := range t.Rows() {
		fields := make(map[string]any, len(columns)+1)
		fields["id"] = row.ID()
		for _, col := range columns {
			if cell, ok := row.Cell(col.Key()); ok {
				fields[col.Key()] = cell.Value()
			}
		}
		doc.Rows = append(doc.Rows, fields)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
