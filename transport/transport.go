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

package transport

import (
	"fmt"
	"math"
)

// rFloor is the minimum source-receptor distance. The point-source
// solution is singular at the source location, so evaluations closer
// than this are clamped instead of returning +Inf.
const rFloor = 1.e-12

// Aquifer holds the physical parameters of a uniform flow field in a
// two-dimensional confined aquifer. Distances are in meters, times in
// days and concentrations in mg/L.
type Aquifer struct {
	Velocity float64 // mean pore velocity in the flow (x) direction [m/d]
	AlphaL   float64 // longitudinal dispersivity [m]
	AlphaT   float64 // transverse dispersivity [m]
	Porosity float64 // effective porosity [-]

	// Diffusion is the effective molecular diffusion coefficient
	// [m²/d]. It is usually negligible compared to mechanical
	// dispersion and may be left zero.
	Diffusion float64

	// Decay is the first-order decay rate of the solute [1/d].
	// Zero means a conservative solute.
	Decay float64

	// Retardation is the linear retardation factor caused by
	// adsorption. Values of zero or one mean no retardation.
	Retardation float64
}

// Check returns an error if the receiver does not describe a usable
// flow field.
func (a *Aquifer) Check() error {
	if a.Velocity <= 0 {
		return fmt.Errorf("transport: pore velocity must be positive but is %g", a.Velocity)
	}
	if a.Porosity <= 0 || a.Porosity > 1 {
		return fmt.Errorf("transport: porosity must be in (0,1] but is %g", a.Porosity)
	}
	if a.AlphaL <= 0 && a.Diffusion <= 0 {
		return fmt.Errorf("transport: longitudinal dispersivity and diffusion cannot both be zero")
	}
	if a.AlphaT <= 0 && a.Diffusion <= 0 {
		return fmt.Errorf("transport: transverse dispersivity and diffusion cannot both be zero")
	}
	if a.Decay < 0 {
		return fmt.Errorf("transport: decay rate cannot be negative but is %g", a.Decay)
	}
	if a.Retardation < 0 {
		return fmt.Errorf("transport: retardation factor cannot be negative but is %g", a.Retardation)
	}
	return nil
}

// dispersion returns the effective velocity and the longitudinal and
// transverse dispersion coefficients, with retardation applied.
func (a *Aquifer) dispersion() (v, dx, dy float64) {
	v = a.Velocity
	dx = a.AlphaL*v + a.Diffusion
	dy = a.AlphaT*v + a.Diffusion
	if r := a.Retardation; r > 1 {
		v /= r
		dx /= r
		dy /= r
	}
	return v, dx, dy
}

// PointSource2 returns the concentration [mg/L] at location (x,y) and
// time t [d] caused by a continuous point source at (xc,yc) injecting
// solute at concentration c0 [mg/L] with flow rate qa per unit aquifer
// thickness [m²/d]. It implements the transient two-dimensional
// solution of Wilson and Miller (1978) for a point source in uniform
// flow, extended with first-order decay and linear retardation:
//
//	c = c0 qa / (4 π n √(Dx Dy)) · exp((x-xc) v / (2 Dx)) · W(u, r β / (2 Dx))
//
// where W is the Hantush well function, u = r²/(4 Dx t),
// β = √(v² + 4 Dx λ) and r is the anisotropy-scaled source distance.
// The result for t ≤ 0 is zero.
func (a *Aquifer) PointSource2(x, y, t, xc, yc, c0, qa float64) float64 {
	if t <= 0 {
		return 0
	}
	v, dx, dy := a.dispersion()
	beta := math.Sqrt(v*v + 4*dx*a.Decay)
	r := math.Sqrt((x-xc)*(x-xc) + (y-yc)*(y-yc)*dx/dy)
	if r < rFloor {
		r = rFloor
	}
	u := r * r / (4 * dx * t)
	b := r * beta / (2 * dx)
	lead := c0 * qa / (4 * math.Pi * a.Porosity * math.Sqrt(dx*dy))
	return lead * math.Exp((x-xc)*v/(2*dx)) * Wh(u, b)
}
