package model

import (
	"testing"
	"time"
)

func TestFormatValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil renders as NULL", value: nil, want: "NULL"},
		{name: "string is unchanged", value: "Test City", want: "Test City"},
		{name: "bytes render as text", value: []byte("blob"), want: "blob"},
		{name: "int64", value: int64(42), want: "42"},
		{name: "float64 without exponent", value: 0.75, want: "0.75"},
		{name: "whole float64", value: float64(3), want: "3"},
		{name: "bool", value: true, want: "true"},
		{name: "time uses RFC3339", value: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), want: "2024-01-02T03:04:05Z"},
		{name: "unsupported type renders empty", value: struct{}{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatValue(tt.value); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestRow(t *testing.T) {
	t.Parallel()

	row := Row{"1", nil, int64(5)}

	t.Run("Strings renders every value", func(t *testing.T) {
		t.Parallel()
		got := row.Strings()
		want := []string{"1", "NULL", "5"}
		if len(got) != len(want) {
			t.Fatalf("expected %d values, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("value %d: expected %q, got %q", i, want[i], got[i])
			}
		}
	})

	t.Run("IsNull", func(t *testing.T) {
		t.Parallel()
		if row.IsNull(0) {
			t.Error("expected column 0 to be non-null")
		}
		if !row.IsNull(1) {
			t.Error("expected column 1 to be null")
		}
		if !row.IsNull(10) {
			t.Error("expected out of range index to be null")
		}
	})
}

func TestResultSet(t *testing.T) {
	t.Parallel()

	t.Run("nil result set is empty", func(t *testing.T) {
		t.Parallel()
		var rs *ResultSet
		if rs.Len() != 0 || !rs.IsEmpty() {
			t.Error("expected nil result set to be empty")
		}
		if len(rs.Records()) != 0 {
			t.Error("expected no records")
		}
	})

	t.Run("Records keys values by column", func(t *testing.T) {
		t.Parallel()
		rs := &ResultSet{
			Columns: []string{"id", "site", "date"},
			Rows: []Row{
				{"1", []byte("example.com"), nil},
			},
		}
		recs := rs.Records()
		if len(recs) != 1 {
			t.Fatalf("expected 1 record, got %d", len(recs))
		}
		if recs[0]["id"] != "1" {
			t.Errorf("expected id 1, got %v", recs[0]["id"])
		}
		if recs[0]["site"] != "example.com" {
			t.Errorf("expected bytes converted to string, got %v", recs[0]["site"])
		}
		if recs[0]["date"] != nil {
			t.Errorf("expected nil date, got %v", recs[0]["date"])
		}
	})

	t.Run("short rows fill missing columns with nil", func(t *testing.T) {
		t.Parallel()
		rs := &ResultSet{
			Columns: []string{"id", "site"},
			Rows:    []Row{{"1"}},
		}
		recs := rs.Records()
		if v, ok := recs[0]["site"]; !ok || v != nil {
			t.Errorf("expected site to be present and nil, got %v (present=%v)", v, ok)
		}
	})
}
