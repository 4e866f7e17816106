package model

// ResultSet holds the column names and rows produced by one query.
type ResultSet struct {
	// Title names the result, typically the table it was read from.
	// It may be empty for ad-hoc queries.
	Title string

	// Columns are the column names in result order.
	Columns []string

	// Rows are the result rows. Each row has len(Columns) values.
	Rows []Row
}

// Len returns the number of rows.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// IsEmpty reports whether the result has no rows.
func (rs *ResultSet) IsEmpty() bool {
	return rs.Len() == 0
}

// Records returns the rows as maps keyed by column name.
// NULL values are kept as nil so JSON output renders them as null.
func (rs *ResultSet) Records() []map[string]any {
	if rs == nil {
		return []map[string]any{}
	}
	out := make([]map[string]any, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		rec := make(map[string]any, len(rs.Columns))
		for i, col := range rs.Columns {
			if i >= len(row) {
				rec[col] = nil
				continue
			}
			if b, ok := row[i].([]byte); ok {
				rec[col] = string(b)
				continue
			}
			rec[col] = row[i]
		}
		out = append(out, rec)
	}
	return out
}
