package model

import (
	"strconv"
	"time"
)

// NullText is how a NULL column value is rendered as text.
const NullText = "NULL"

// Row is an ordered tuple of column values.
// Values carry the engine's dynamic types: string for TEXT, int64 for
// INTEGER, float64 for REAL, []byte for BLOB and nil for NULL.
type Row []any

// Strings renders every value of the row as text.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = FormatValue(v)
	}
	return out
}

// IsNull reports whether the value at index i is NULL.
// An index outside the row is treated as NULL.
func (r Row) IsNull(i int) bool {
	if i < 0 || i >= len(r) {
		return true
	}
	return r[i] == nil
}

// FormatValue renders a single column value as text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return NullText
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return ""
	}
}
