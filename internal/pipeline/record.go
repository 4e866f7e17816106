package pipeline

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/tracedb/internal/database"
)

// Record validation errors.
var (
	// ErrUnknownTable is returned for a record naming a table outside the schema.
	ErrUnknownTable = errors.New("unknown table")

	// ErrUnknownColumn is returned for a value whose column the table does not declare.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrNoValues is returned for a record without any column values.
	ErrNoValues = errors.New("record has no values")

	// ErrUnsupportedValue is returned for nested lists or maps.
	ErrUnsupportedValue = errors.New("unsupported value type")
)

// Record is one row to insert.
type Record struct {
	// Table is the destination table.
	Table string `yaml:"table"`

	// Values maps column names to values. Scalars only.
	Values map[string]any `yaml:"values"`
}

// importFile is the top-level structure of an import document.
type importFile struct {
	Records []Record `yaml:"records"`
}

// LoadRecords decodes an import document.
func LoadRecords(r io.Reader) ([]Record, error) {
	var f importFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}
	if f.Records == nil {
		f.Records = []Record{}
	}
	return f.Records, nil
}

// WithDefaultID returns a copy of r whose id value is set to id, unless the
// record already has one or its table has no id column.
// Column names match case-insensitively, as in Statement.
func (r Record) WithDefaultID(id string) Record {
	key := "id"
	for k, v := range r.Values {
		if !strings.EqualFold(k, "id") {
			continue
		}
		if v != nil {
			return r
		}
		key = k
	}
	table, ok := database.LookupTable(r.Table)
	if !ok || !table.HasColumn("id") {
		return r
	}
	values := make(map[string]any, len(r.Values)+1)
	for k, v := range r.Values {
		values[k] = v
	}
	values[key] = id
	return Record{Table: r.Table, Values: values}
}

// Statement builds the parameterized INSERT for the record.
// Columns are sorted so the statement is deterministic.
func (r Record) Statement() (string, []any, error) {
	table, ok := database.LookupTable(r.Table)
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownTable, r.Table)
	}
	if len(r.Values) == 0 {
		return "", nil, fmt.Errorf("%w: table %s", ErrNoValues, r.Table)
	}

	columns := make([]string, 0, len(r.Values))
	for col := range r.Values {
		if !table.HasColumn(col) {
			return "", nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, r.Table, col)
		}
		columns = append(columns, col)
	}
	sort.Strings(columns)

	args := make([]any, len(columns))
	for i, col := range columns {
		v := r.Values[col]
		switch v.(type) {
		case map[string]any, []any:
			return "", nil, fmt.Errorf("%w: %s.%s", ErrUnsupportedValue, r.Table, col)
		}
		args[i] = v
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table.Name, strings.Join(columns, ", "), placeholders)
	return query, args, nil
}
