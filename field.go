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

package pinn

import (
	"github.com/GaryBoone/GoStats/stats"
	"github.com/ctessum/sparse"
)

// Field is the total contaminant concentration over the grid at one
// observation time. Conc has dimensions [Grid.Nodes (y), Grid.Nodes (x)]
// and is indexed Conc.Get(iy, ix).
type Field struct {
	Time float64 // observation time [d]
	Grid Grid
	Conc *sparse.DenseArray // [mg/L]
}

// Summary holds aggregate statistics of one field.
type Summary struct {
	Time float64
	Max  float64
	Mean float64
	Std  float64 // population standard deviation
}

// Evaluate computes the concentration field at observation time t.
// The field at t = 0 is identically zero. For t > 0 it is the linear
// superposition of the analytical point-source solution over all
// sources, each evaluated with its own concentration and injection
// rate.
func (s *Scenario) Evaluate(t float64) *Field {
	f := &Field{
		Time: t,
		Grid: s.Grid,
		Conc: sparse.ZerosDense(s.Grid.Nodes, s.Grid.Nodes),
	}
	if t == 0 {
		return f
	}
	a := s.aquifer()
	xs, ys := s.Grid.Xs(), s.Grid.Ys()
	for _, src := range s.Sources {
		for iy, y := range ys {
			for ix, x := range xs {
				f.Conc.AddVal(a.PointSource2(x, y, t, src.X, src.Y, src.C0, src.Qa), iy, ix)
			}
		}
	}
	return f
}

// EvaluateAll computes one field per observation time, in the order
// the times are listed.
func (s *Scenario) EvaluateAll() []*Field {
	fields := make([]*Field, len(s.ObsTimes))
	for i, t := range s.ObsTimes {
		fields[i] = s.Evaluate(t)
	}
	return fields
}

// Summarize returns aggregate statistics of the field.
func (f *Field) Summarize() Summary {
	var d stats.Stats
	d.UpdateArray(f.Conc.Elements)
	return Summary{
		Time: f.Time,
		Max:  d.Max(),
		Mean: d.Mean(),
		Std:  d.PopulationStandardDeviation(),
	}
}

// scaleCap returns the shared color-scale cap for a set of fields:
// 1.1 times the global maximum concentration over all of them. It is
// computed after all fields have been evaluated so that every per-time
// plot uses a comparable scale.
func scaleCap(fields []*Field) float64 {
	var max float64
	for _, f := range fields {
		if m := f.Conc.Max(); m > max {
			max = m
		}
	}
	return max * 1.1
}
