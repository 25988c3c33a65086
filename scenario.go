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

// Package pinn generates synthetic groundwater contaminant-plume
// datasets for training physics-informed neural networks. A Scenario
// describes an aquifer, a regular grid and a set of continuous point
// sources; evaluating it produces per-time concentration snapshots
// that are written out as CSV tables, contour plots and a parameter
// log. The sample subpackage thins the snapshots back down to sparse
// synthetic observations.
package pinn

import (
	"fmt"

	"github.com/78naegi/PINN/transport"
	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/floats"
)

// Source is a continuous contaminant point source.
type Source struct {
	X, Y float64 // location [m]
	C0   float64 // source concentration [mg/L]
	Qa   float64 // injection rate per unit aquifer thickness [m²/d]
}

// Grid is a regular square grid of evaluation nodes covering the
// simulated region. Nodes is the number of nodes along each axis, so
// the grid holds Nodes² evaluation points.
type Grid struct {
	X0, X1 float64 // x extent [m]
	Y0, Y1 float64 // y extent [m]
	Nodes  int
}

// Check returns an error if the grid is degenerate.
func (g Grid) Check() error {
	if g.Nodes < 2 {
		return fmt.Errorf("pinn: grid needs at least 2 nodes per axis but has %d", g.Nodes)
	}
	if g.X1 <= g.X0 {
		return fmt.Errorf("pinn: grid x extent [%g, %g] is empty", g.X0, g.X1)
	}
	if g.Y1 <= g.Y0 {
		return fmt.Errorf("pinn: grid y extent [%g, %g] is empty", g.Y0, g.Y1)
	}
	return nil
}

// Xs returns the x coordinates of the grid nodes.
func (g Grid) Xs() []float64 {
	return floats.Span(make([]float64, g.Nodes), g.X0, g.X1)
}

// Ys returns the y coordinates of the grid nodes.
func (g Grid) Ys() []float64 {
	return floats.Span(make([]float64, g.Nodes), g.Y0, g.Y1)
}

// Dx returns the node spacing along x.
func (g Grid) Dx() float64 { return (g.X1 - g.X0) / float64(g.Nodes-1) }

// Dy returns the node spacing along y.
func (g Grid) Dy() float64 { return (g.Y1 - g.Y0) / float64(g.Nodes-1) }

// CellPolygon returns the polygon covered by the grid cell centered on
// node (ix, iy), for map rendering.
func (g Grid) CellPolygon(ix, iy int) geom.Polygon {
	hx, hy := g.Dx()/2, g.Dy()/2
	x := g.X0 + float64(ix)*g.Dx()
	y := g.Y0 + float64(iy)*g.Dy()
	return geom.Polygon{{
		{X: x - hx, Y: y - hy},
		{X: x + hx, Y: y - hy},
		{X: x + hx, Y: y + hy},
		{X: x - hx, Y: y + hy},
		{X: x - hx, Y: y - hy},
	}}
}

// Scenario is the immutable configuration of one dataset-generation
// run. Construct a new value for every run; Scenario values must not
// be shared or mutated across runs.
type Scenario struct {
	Name string // used as the output directory name

	// Hydro-geologic parameters.
	Kxx, Kyy float64 // hydraulic conductivity along/across flow [m/d]
	Porosity float64 // effective porosity [-]
	AlphaL   float64 // longitudinal dispersivity [m]
	AlphaT   float64 // transverse dispersivity [m]

	// Optional solute parameters passed through to the analytical
	// solution.
	Diffusion   float64 // effective molecular diffusion [m²/d]
	Decay       float64 // first-order decay rate [1/d]
	Retardation float64 // linear retardation factor

	Grid    Grid
	Sources []Source

	StressCycle float64   // total simulated duration [d]
	ObsTimes    []float64 // observation times [d]
}

// SourcesFromLists assembles point sources from parallel coordinate,
// concentration and injection-rate lists, the form in which they
// arrive from configuration files. The three value lists must all
// match the number of coordinates.
func SourcesFromLists(xs, ys, c0s, qas []float64) ([]Source, error) {
	if len(ys) != len(xs) {
		return nil, fmt.Errorf("pinn: source y-coordinate list length (%d) does not match x-coordinate list length (%d)", len(ys), len(xs))
	}
	if len(c0s) != len(xs) {
		return nil, fmt.Errorf("pinn: source concentration list length (%d) does not match source count (%d)", len(c0s), len(xs))
	}
	if len(qas) != len(xs) {
		return nil, fmt.Errorf("pinn: injection rate list length (%d) does not match source count (%d)", len(qas), len(xs))
	}
	sources := make([]Source, len(xs))
	for i := range xs {
		sources[i] = Source{X: xs[i], Y: ys[i], C0: c0s[i], Qa: qas[i]}
	}
	return sources, nil
}

// Velocity returns the mean pore velocity v = Kxx/θ [m/d].
func (s *Scenario) Velocity() float64 { return s.Kxx / s.Porosity }

// aquifer returns the analytical flow-field parameters for s.
func (s *Scenario) aquifer() *transport.Aquifer {
	return &transport.Aquifer{
		Velocity:    s.Velocity(),
		AlphaL:      s.AlphaL,
		AlphaT:      s.AlphaT,
		Porosity:    s.Porosity,
		Diffusion:   s.Diffusion,
		Decay:       s.Decay,
		Retardation: s.Retardation,
	}
}

// Check validates the scenario. It must pass before any computation
// or file output happens.
func (s *Scenario) Check() error {
	if s.Name == "" {
		return fmt.Errorf("pinn: scenario has no name")
	}
	if err := s.Grid.Check(); err != nil {
		return err
	}
	if len(s.Sources) == 0 {
		return fmt.Errorf("pinn: scenario %q has no point sources", s.Name)
	}
	if len(s.ObsTimes) == 0 {
		return fmt.Errorf("pinn: scenario %q has no observation times", s.Name)
	}
	for _, t := range s.ObsTimes {
		if t < 0 {
			return fmt.Errorf("pinn: scenario %q has negative observation time %g", s.Name, t)
		}
	}
	if err := s.aquifer().Check(); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return nil
}
