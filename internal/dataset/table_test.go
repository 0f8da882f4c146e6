package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func TestCoerce(t *testing.T) {
	cases := []struct {
		in   string
		want Value
	}{
		{"12", Value{X: 12, OK: true}},
		{" -3.5 ", Value{X: -3.5, OK: true}},
		{"1e3", Value{X: 1000, OK: true}},
		{"", Missing},
		{"abc", Missing},
		{"NaN", Missing},
		{"1,5", Missing},
		{"0x1p4", Missing},
		{"0X10", Missing},
	}
	for _, c := range cases {
		if got := Coerce(c.in); got != c.want {
			t.Errorf("Coerce(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
	for _, in := range []string{"inf", "-Inf", "1e400"} {
		if v := Coerce(in); v.OK || math.IsInf(v.X, 0) {
			t.Errorf("Coerce(%q) = %+v, want missing", in, v)
		}
	}
}

func TestLoadAndClean_FiltersNoiseFloor(t *testing.T) {
	p := writeCSV(t, "a,b,5\na,b,11\na,b,10\na,b,x\na,b,\na,b,200\n")
	ct, err := LoadAndClean(p, 2)
	if err != nil {
		t.Fatalf("LoadAndClean: %v", err)
	}
	got := Floats(ct.Values)
	if !reflect.DeepEqual(got, []float64{11, 200}) {
		t.Fatalf("values = %v", got)
	}
	if ct.Len() != 2 || ct.Rows[1][2] != "200" {
		t.Fatalf("rows = %v", ct.Rows)
	}
}

func TestClean_Idempotent(t *testing.T) {
	p := writeCSV(t, "0,1,50,3\n0,1,2,3\n0,1,99,3\n0,1,-40,3\n")
	first, err := LoadAndClean(p, 2)
	if err != nil {
		t.Fatalf("LoadAndClean: %v", err)
	}
	second, err := Clean(&first.Table, 2)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-cleaning changed table:\n%+v\n%+v", first, second)
	}
}

func TestLoadAndClean_Malformed(t *testing.T) {
	cases := map[string]string{
		"too few columns": "1,2\n3,4\n",
		"empty file":      "",
		"ragged wider":    "1,2,30\n1,2,30,4\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadAndClean(writeCSV(t, body), 2)
			if !errors.Is(err, ErrSourceMalformed) {
				t.Fatalf("expected ErrSourceMalformed, got %v", err)
			}
		})
	}
}

func TestReadTable_PadsShortRows(t *testing.T) {
	tbl, err := ReadTable(writeCSV(t, "1,2,3,4,5\n1,2,3\n"))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if tbl.Width != 5 || len(tbl.Rows[1]) != 5 {
		t.Fatalf("unexpected shape: width=%d row=%v", tbl.Width, tbl.Rows[1])
	}
	if v := tbl.Column(4)[1]; v.OK {
		t.Fatalf("padded cell should be missing, got %+v", v)
	}
}

func TestLoadAndClean_AllFilteredIsEmptyNotError(t *testing.T) {
	ct, err := LoadAndClean(writeCSV(t, "0,0,1\n0,0,2\n"), 2)
	if err != nil {
		t.Fatalf("LoadAndClean: %v", err)
	}
	if ct.Len() != 0 {
		t.Fatalf("expected empty table, got %d rows", ct.Len())
	}
}
