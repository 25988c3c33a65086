package sample

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFilter(t *testing.T) {
	tbl := &Table{
		X:    []float64{0, 10, 20, 30},
		Y:    []float64{0, 0, 0, 0},
		Conc: []float64{0.05, 0.1, 2, 0.01},
	}
	f := tbl.Filter(0.1)
	want := &Table{
		X:    []float64{10, 20},
		Y:    []float64{0, 0},
		Conc: []float64{0.1, 2},
	}
	if !reflect.DeepEqual(f, want) {
		t.Errorf("filtered table = %+v, want %+v", f, want)
	}
}

func TestBounds(t *testing.T) {
	tbl := &Table{
		X:    []float64{10, 5, 20},
		Y:    []float64{-1, 7, 3},
		Conc: []float64{1, 1, 1},
	}
	x0, x1, y0, y1 := tbl.Bounds()
	if x0 != 5 || x1 != 20 || y0 != -1 || y1 != 7 {
		t.Errorf("bounds = (%g, %g, %g, %g), want (5, 20, -1, 7)", x0, x1, y0, y1)
	}
}

func TestTableRoundTrip(t *testing.T) {
	tbl := &Table{
		X:    []float64{0, 650, 1300},
		Y:    []float64{0, 400, 800},
		Conc: []float64{0.5, 12.25, 0},
	}
	path := filepath.Join(t.TempDir(), "table.csv")
	if err := tbl.Write(path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadTable(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, tbl) {
		t.Errorf("round trip: got %+v, want %+v", got, tbl)
	}
}

func TestReadTableHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("x,y,conc\n1,2,3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadTable(path); err == nil {
		t.Error("expected an error for a table with the wrong header")
	}
}

func TestReadTableBadValue(t *testing.T) {
	tbl := &Table{X: []float64{1}, Y: []float64{2}, Conc: []float64{3}}
	path := filepath.Join(t.TempDir(), "table.csv")
	if err := tbl.Write(path); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, append(b, []byte("4,5,oops\n")...), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadTable(path); err == nil {
		t.Error("expected an error for a non-numeric concentration")
	}
}
