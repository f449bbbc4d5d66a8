package store

import (
	"context"
	"sort"
	"strings"
	"time"

	"carpenter/domain"
	"carpenter/table"
)

// Slice is an in-memory store driver over a fixed record slice. Filtering
// is case-insensitive substring matching; sorting compares numerically,
// by time, or lexically depending on the field values.
type Slice struct {
	records []domain.Record
}

var _ table.Store = (*Slice)(nil)

// NewSlice creates a slice store over the given records.
func NewSlice(records []domain.Record) *Slice {
	return &Slice{records: records}
}

// FromMaps builds a slice store from plain maps, reading each record's
// identifier from idKey.
func FromMaps(idKey string, rows []map[string]any) *Slice {
	records := make([]domain.Record, 0, len(rows))
	for _, fields := range rows {
		records = append(records, domain.NewMapRecord(fields[idKey], fields))
	}
	return NewSlice(records)
}

func (s *Slice) Fetch(_ context.Context, q domain.Query) (domain.RecordSet, error) {
	matched := s.filter(q.Filters)

	if q.Sort != "" {
		dir := q.Dir.Normalize()
		sort.SliceStable(matched, func(i, j int) bool {
			a, _ := matched[i].Field(q.Sort)
			b, _ := matched[j].Field(q.Sort)
			if dir == domain.SortDesc {
				return compareValues(b, a) < 0
			}
			return compareValues(a, b) < 0
		})
	}

	total := int64(len(matched))
	page := matched
	if q.Limit > 0 {
		start := q.Offset
		if start < 0 {
			start = 0
		}
		if start > len(page) {
			start = len(page)
		}
		end := start + q.Limit
		if end > len(page) {
			end = len(page)
		}
		page = page[start:end]
	}

	return domain.RecordSet{Records: page, Total: total}, nil
}

func (s *Slice) filter(filters map[string]string) []domain.Record {
	if len(filters) == 0 {
		return append([]domain.Record(nil), s.records...)
	}
	var out []domain.Record
	for _, rec := range s.records {
		if matchesAll(rec, filters) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesAll(rec domain.Record, filters map[string]string) bool {
	for key, expr := range filters {
		v, ok := rec.Field(key)
		if !ok {
			return false
		}
		haystack := strings.ToLower(table.FormatValue(v))
		if !strings.Contains(haystack, strings.ToLower(expr)) {
			return false
		}
	}
	return true
}

// compareValues orders two field values: numbers numerically, times
// chronologically, everything else by its formatted string. Nil sorts
// first.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if fa, aOK := toFloat(a); aOK {
		if fb, bOK := toFloat(b); bOK {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}
	if ta, aOK := a.(time.Time); aOK {
		if tb, bOK := b.(time.Time); bOK {
			return ta.Compare(tb)
		}
	}
	return strings.Compare(
		strings.ToLower(table.FormatValue(a)),
		strings.ToLower(table.FormatValue(b)),
	)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
