package domain

// SortDirection is the direction of an ORDER BY-style sort.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Normalize maps unknown direction strings to SortAsc.
func (d SortDirection) Normalize() SortDirection {
	if d == SortDesc {
		return SortDesc
	}
	return SortAsc
}

// Query is the fetch request a table hands to its store driver.
type Query struct {
	// Target names the store-side source (table, view, collection).
	// Drivers that carry their own data may ignore it.
	Target string
	// Filters maps column key to a match expression. Built-in drivers
	// treat the expression as a case-insensitive substring.
	Filters map[string]string
	// Sort is the column key to order by; empty means driver order.
	Sort string
	Dir  SortDirection
	// Offset/Limit select one page. Limit <= 0 means no paging.
	Offset int
	Limit  int
}

// State is the per-table UI state a session driver persists across
// requests: active sort, filters, and the current page (1-based).
type State struct {
	Sort    string            `json:"sort,omitempty"`
	Dir     SortDirection     `json:"dir,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
	Page    int               `json:"page,omitempty"`
}

// SetFilter records a filter expression for a column key; an empty
// expression clears the filter.
func (s *State) SetFilter(key, expr string) {
	if expr == "" {
		delete(s.Filters, key)
		return
	}
	if s.Filters == nil {
		s.Filters = map[string]string{}
	}
	s.Filters[key] = expr
}
