package table

// Row is the ordered cell collection for one fetched record. Rows are built
// once during materialization and not mutated afterwards; they are owned by
// the table that created them.
type Row struct {
	id    any
	order []string
	cells map[string]*Cell
}

// ID returns the source record's identifier.
func (r *Row) ID() any { return r.id }

// Cell returns the cell under the given column key.
func (r *Row) Cell(key string) (*Cell, bool) {
	c, ok := r.cells[key]
	return c, ok
}

// Cells returns the row's cells in column declaration order.
func (r *Row) Cells() []*Cell {
	out := make([]*Cell, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.cells[key])
	}
	return out
}

// Len returns the number of cells in the row.
func (r *Row) Len() int { return len(r.order) }

func (r *Row) add(key string, c *Cell) {
	if r.cells == nil {
		r.cells = make(map[string]*Cell)
	}
	if _, exists := r.cells[key]; !exists {
		r.order = append(r.order, key)
	}
	r.cells[key] = c
}
