package table

import (
	"fmt"
	"strconv"
	"time"
)

// SpreadsheetCell is the alternate per-cell representation used on the
// export path (CSV, spreadsheet files). Column-level configurators mutate
// it in place before Render is called.
type SpreadsheetCell struct {
	// Value is the presented cell value the spreadsheet cell was built from.
	Value any
	// RowID is the owning row's record identifier.
	RowID any
	// Format, when set, is a fmt verb applied to Value ("%.2f", "%06d").
	Format string
	// TimeLayout, when set, formats time.Time values ("2006-01-02").
	TimeLayout string
}

// NewSpreadsheetCell builds a spreadsheet cell from a presented value and
// the owning row's identifier.
func NewSpreadsheetCell(value, rowID any) *SpreadsheetCell {
	return &SpreadsheetCell{Value: value, RowID: rowID}
}

// Render produces the cell's exported string.
func (s *SpreadsheetCell) Render() string {
	if ts, ok := s.Value.(time.Time); ok && s.TimeLayout != "" {
		return ts.Format(s.TimeLayout)
	}
	if s.Format != "" {
		return fmt.Sprintf(s.Format, s.Value)
	}
	return FormatValue(s.Value)
}

// FormatValue renders an arbitrary cell value as a string the way the
// built-in views do: nil becomes the empty string, times use RFC 3339,
// floats drop trailing zeros.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
