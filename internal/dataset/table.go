package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// NoiseFloor is the value at or below which a reading is treated as sensor
// idle or garbage and dropped during cleaning.
const NoiseFloor = 10.0

// Value is a table cell coerced to a number. OK is false for missing cells.
type Value struct {
	X  float64
	OK bool
}

// Missing is the sentinel for cells that did not coerce to a number.
var Missing = Value{}

// Coerce converts a raw cell to a numeric Value. Empty, unparseable and
// non-finite cells become Missing; it never fails.
func Coerce(s string) Value {
	raw := strings.TrimSpace(s)
	// Hex floats ("0x1p4") are not decimal readings.
	if raw == "" || strings.ContainsAny(raw, "xXpP") {
		return Missing
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing
	}
	return Value{X: f, OK: true}
}

// Table is a headerless grid of string cells addressed by position.
type Table struct {
	Rows  [][]string
	Width int
}

// Column coerces column col of every row.
func (t *Table) Column(col int) []Value {
	out := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		if col < len(row) {
			out[i] = Coerce(row[col])
		}
	}
	return out
}

// Len returns the row count.
func (t *Table) Len() int { return len(t.Rows) }

// ReadTable loads a headerless CSV. The first record fixes the width;
// shorter records are padded with empty cells and longer ones are rejected.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	t := &Table{}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: read row %d: %v", ErrSourceMalformed, len(t.Rows)+1, err)
		}
		if t.Width == 0 {
			t.Width = len(rec)
		}
		if len(rec) > t.Width {
			return nil, fmt.Errorf("%w: row %d has %d fields, expected %d", ErrSourceMalformed, len(t.Rows)+1, len(rec), t.Width)
		}
		row := make([]string, t.Width)
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("%w: no rows in %s", ErrSourceMalformed, path)
	}
	return t, nil
}

// CleanTable is a Table filtered on one numeric column. Every retained row
// has a present value strictly greater than NoiseFloor in that column.
type CleanTable struct {
	Table
	Col    int
	Values []Value
}

// Clean coerces column col and keeps the rows whose value exceeds
// NoiseFloor, preserving order.
func Clean(t *Table, col int) (*CleanTable, error) {
	if col < 0 || t.Width <= col {
		return nil, fmt.Errorf("%w: need column %d, have %d", ErrSourceMalformed, col, t.Width)
	}
	ct := &CleanTable{Table: Table{Width: t.Width}, Col: col}
	for i, v := range t.Column(col) {
		if !v.OK || v.X <= NoiseFloor {
			continue
		}
		ct.Rows = append(ct.Rows, t.Rows[i])
		ct.Values = append(ct.Values, v)
	}
	return ct, nil
}

// LoadAndClean reads path and cleans it on column col.
func LoadAndClean(path string, col int) (*CleanTable, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	return Clean(t, col)
}

// Floats returns the present values of vs.
func Floats(vs []Value) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if v.OK {
			out = append(out, v.X)
		}
	}
	return out
}
