package database

import (
	"strings"
)

// Column describes one declared column of a table.
type Column struct {
	// Name is the column name as declared.
	Name string

	// Type is the declared SQLite type (TEXT, REAL, INTEGER or DATE).
	Type string

	// PrimaryKey marks the column as the table's primary key.
	PrimaryKey bool
}

// Table describes one table of the fixed schema.
type Table struct {
	// Name is the table name.
	Name string

	// Columns are the declared columns in creation order.
	// This is also the order SELECT * returns them in.
	Columns []Column
}

// Table names of the fixed schema.
const (
	TableGeo            = "geo"
	TableNetworks       = "networks"
	TableRequests       = "requests"
	TableVictims        = "victims"
	TableVictimsData    = "victims_data"
	TableVictimsBattery = "victims_battery"
	TableClicks         = "clicks"
	TableHostsAlive     = "hostsalive"
)

func text(names ...string) []Column {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n, Type: "TEXT"}
	}
	return cols
}

// tables is the fixed schema in creation order.
var tables = []Table{
	{
		Name: TableGeo,
		Columns: append(
			[]Column{{Name: "id", Type: "TEXT", PrimaryKey: true}},
			text("city", "country_code", "country_name", "ip",
				"latitude", "longitude", "metro_code", "region_code",
				"region_name", "time_zone", "zip_code", "isp",
				"ua", "connection", "latitude_browser",
				"longitude_browser", "refer")...,
		),
	},
	{
		Name: TableNetworks,
		Columns: []Column{
			{Name: "id", Type: "TEXT"},
			{Name: "ip", Type: "TEXT"},
			{Name: "public_ip", Type: "INTEGER"},
			{Name: "network", Type: "TEXT"},
			{Name: "date", Type: "TEXT"},
		},
	},
	{
		Name:    TableRequests,
		Columns: text("id", "user_id", "site", "fid", "name", "value", "date"),
	},
	{
		Name: TableVictims,
		Columns: []Column{
			{Name: "id", Type: "TEXT"},
			{Name: "ip", Type: "TEXT"},
			{Name: "date", Type: "TEXT"},
			{Name: "time", Type: "REAL"},
			{Name: "bVersion", Type: "TEXT"},
			{Name: "browser", Type: "TEXT"},
			{Name: "device", Type: "TEXT"},
			{Name: "cpu", Type: "TEXT"},
			{Name: "ports", Type: "TEXT"},
			{Name: "status", Type: "TEXT"},
		},
	},
	{
		Name: TableVictimsData,
		Columns: []Column{
			{Name: "id", Type: "TEXT"},
			{Name: "name", Type: "TEXT"},
			{Name: "last_online", Type: "DATE"},
			{Name: "gpu", Type: "TEXT"},
			{Name: "donottrack", Type: "TEXT"},
			{Name: "navigation_mode", Type: "TEXT"},
		},
	},
	{
		Name: TableVictimsBattery,
		Columns: []Column{
			{Name: "id", Type: "TEXT"},
			{Name: "charging", Type: "TEXT"},
			{Name: "time_c", Type: "REAL"},
			{Name: "time_d", Type: "REAL"},
			{Name: "level", Type: "REAL"},
		},
	},
	{
		Name:    TableClicks,
		Columns: text("id", "site", "date"),
	},
	{
		Name:    TableHostsAlive,
		Columns: text("id", "remote_ip", "ping", "date"),
	},
}

// Schema returns the fixed schema in creation order.
// The returned slice is a copy and may be modified by the caller.
func Schema() []Table {
	out := make([]Table, len(tables))
	for i, t := range tables {
		out[i] = Table{Name: t.Name, Columns: append([]Column(nil), t.Columns...)}
	}
	return out
}

// LookupTable returns the schema of the named table.
func LookupTable(name string) (Table, bool) {
	for _, t := range tables {
		if t.Name == name {
			return Table{Name: t.Name, Columns: append([]Column(nil), t.Columns...)}, true
		}
	}
	return Table{}, false
}

// ColumnNames returns the declared column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether the table declares the column.
// SQLite column names are case-insensitive, so the match is too.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// CreateStatement returns the CREATE TABLE IF NOT EXISTS statement for t.
func (t Table) CreateStatement() string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE IF NOT EXISTS ")
	sb.WriteString(t.Name)
	sb.WriteString(" (\n")
	for i, c := range t.Columns {
		sb.WriteString("\t")
		sb.WriteString(c.Name)
		sb.WriteString(" ")
		sb.WriteString(c.Type)
		if c.PrimaryKey {
			sb.WriteString(" PRIMARY KEY")
		}
		if i < len(t.Columns)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(");\n")
	return sb.String()
}

// schemaScript returns the statements creating every table.
func schemaScript() string {
	var sb strings.Builder
	for _, t := range tables {
		sb.WriteString(t.CreateStatement())
	}
	return sb.String()
}
