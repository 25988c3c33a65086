/*
Copyright © 2025 the PINN authors.
This file is part of PINN.

PINN is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

PINN is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with PINN.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package sample thins full-grid concentration snapshots down to
// sparse synthetic observation sets, emulating the scattered
// monitoring wells a physics-informed neural network would be
// trained on. Points below a concentration threshold are discarded
// and the remainder is reduced with one of three selection policies:
// Latin-hypercube, uniform-random or grid-uniform.
package sample

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/78naegi/PINN"
	"gonum.org/v1/gonum/floats"
)

// Table is one concentration snapshot in memory: parallel coordinate
// and concentration columns, one entry per row.
type Table struct {
	X, Y, Conc []float64
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Conc) }

// Bounds returns the bounding box (xmin, xmax, ymin, ymax) of the
// rows. It panics on an empty table.
func (t *Table) Bounds() (x0, x1, y0, y1 float64) {
	return floats.Min(t.X), floats.Max(t.X), floats.Min(t.Y), floats.Max(t.Y)
}

// Filter returns the rows with concentration at or above minConc, in
// their original order.
func (t *Table) Filter(minConc float64) *Table {
	f := new(Table)
	for i, c := range t.Conc {
		if c >= minConc {
			f.X = append(f.X, t.X[i])
			f.Y = append(f.Y, t.Y[i])
			f.Conc = append(f.Conc, c)
		}
	}
	return f
}

// take returns a new table holding the rows at the given indices, in
// the given order.
func (t *Table) take(indices []int) *Table {
	out := &Table{
		X:    make([]float64, len(indices)),
		Y:    make([]float64, len(indices)),
		Conc: make([]float64, len(indices)),
	}
	for i, idx := range indices {
		out.X[i] = t.X[idx]
		out.Y[i] = t.Y[idx]
		out.Conc[i] = t.Conc[idx]
	}
	return out
}

// ReadTable reads a snapshot table from path. The header must match
// the snapshot column schema exactly.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sample: opening table: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("sample: reading table %s: %v", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sample: table %s is empty", path)
	}
	want := pinn.Columns()
	header := records[0]
	if len(header) != len(want) || header[0] != want[0] || header[1] != want[1] || header[2] != want[2] {
		return nil, fmt.Errorf("sample: table %s has header %v, want %v", path, header, want)
	}

	t := new(Table)
	for i, rec := range records[1:] {
		x, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("sample: table %s row %d: bad x coordinate %q", path, i+1, rec[0])
		}
		y, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("sample: table %s row %d: bad y coordinate %q", path, i+1, rec[1])
		}
		c, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("sample: table %s row %d: bad concentration %q", path, i+1, rec[2])
		}
		t.X = append(t.X, x)
		t.Y = append(t.Y, y)
		t.Conc = append(t.Conc, c)
	}
	return t, nil
}

// Write writes the table to path with the snapshot column schema.
func (t *Table) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sample: creating table: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(pinn.Columns()); err != nil {
		return err
	}
	rec := make([]string, 3)
	for i := range t.Conc {
		rec[0] = strconv.FormatFloat(t.X[i], 'g', -1, 64)
		rec[1] = strconv.FormatFloat(t.Y[i], 'g', -1, 64)
		rec[2] = strconv.FormatFloat(t.Conc[i], 'g', -1, 64)
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
