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
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

const (
	// expCut is the argument beyond which exp(-y) underflows to
	// something negligible for the quadratures below.
	expCut = 720.

	// quadN is the number of Gauss-Legendre nodes per quadrature.
	quadN = 240
)

// Wh returns the Hantush leaky-aquifer well function
//
//	W(u,b) = ∫_u^∞ exp(-y - b²/(4y)) / y dy
//
// for u > 0 and b ≥ 0. W(u,0) reduces to the exponential integral
// E1(u). The integral is evaluated by fixed Gauss-Legendre quadrature
// after the substitution y = exp(s); for u < b/2 the reflection
// W(u,b) = 2 K0(b) - W(b²/(4u), b) moves the evaluation onto the
// well-behaved branch.
func Wh(u, b float64) float64 {
	if u <= 0 {
		return math.Inf(1)
	}
	b = math.Abs(b)
	if b > 0 && u < b/2 {
		return 2*BesselK0(b) - whDirect(b*b/(4*u), b)
	}
	return whDirect(u, b)
}

// whDirect integrates the Hantush kernel in log space. It is accurate
// when u is not far below b/2 and for all u when b is small.
func whDirect(u, b float64) float64 {
	if u >= expCut {
		return 0
	}
	f := func(s float64) float64 {
		y := math.Exp(s)
		arg := y
		if b > 0 {
			arg += b * b / (4 * y)
		}
		if arg > expCut {
			return 0
		}
		return math.Exp(-arg)
	}
	lo := math.Log(u)
	hi := math.Log(expCut)
	return quad.Fixed(f, lo, hi, quadN, nil, 0)
}

// BesselK0 returns the modified Bessel function of the second kind of
// order zero, computed from its integral representation
// K0(b) = ∫_0^∞ exp(-b cosh t) dt.
func BesselK0(b float64) float64 {
	b = math.Abs(b)
	if b == 0 {
		return math.Inf(1)
	}
	if b >= expCut {
		return 0
	}
	f := func(t float64) float64 {
		arg := b * math.Cosh(t)
		if arg > expCut {
			return 0
		}
		return math.Exp(-arg)
	}
	// cosh grows like exp(t)/2, so the integrand is dead past
	// t = log(2 expCut / b).
	hi := math.Log(2 * expCut / b)
	return quad.Fixed(f, 0, hi, quadN, nil, 0)
}
