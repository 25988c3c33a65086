package transport

import (
	"math"
	"testing"
)

func testAquifer() *Aquifer {
	return &Aquifer{
		Velocity: 0.8 / 0.22, // Kxx/θ
		AlphaL:   40,
		AlphaT:   8,
		Porosity: 0.22,
	}
}

// Wh(u,0) is the exponential integral E1(u).
func TestWh_ExponentialIntegral(t *testing.T) {
	tests := []struct {
		u, want float64
	}{
		{0.1, 1.8229239584193906},
		{0.5, 0.5597735947761608},
		{1, 0.21938393439552029},
		{2, 0.04890051070806112},
		{5, 0.0011482955912753257},
	}
	for _, test := range tests {
		got := Wh(test.u, 0)
		if relErr(got, test.want) > 1.e-5 {
			t.Errorf("Wh(%g, 0) = %g, want %g", test.u, got, test.want)
		}
	}
}

func TestBesselK0(t *testing.T) {
	tests := []struct {
		b, want float64
	}{
		{0.1, 2.4270690247020166},
		{0.5, 0.9244190712276656},
		{1, 0.42102443824070834},
		{2, 0.11389387274953343},
		{5, 0.003691098334042594},
	}
	for _, test := range tests {
		got := BesselK0(test.b)
		if relErr(got, test.want) > 1.e-5 {
			t.Errorf("BesselK0(%g) = %g, want %g", test.b, got, test.want)
		}
	}
}

// The well function decreases monotonically in u and is bounded above
// by both E1(u) and 2 K0(b).
func TestWh_Bounds(t *testing.T) {
	const b = 0.7
	prev := math.Inf(1)
	for _, u := range []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5} {
		w := Wh(u, b)
		if w >= prev {
			t.Errorf("Wh(%g, %g) = %g not less than Wh at the previous smaller u (%g)", u, b, w, prev)
		}
		if e1 := Wh(u, 0); w > e1*(1+1.e-10) {
			t.Errorf("Wh(%g, %g) = %g exceeds E1(%g) = %g", u, b, w, u, e1)
		}
		if k := 2 * BesselK0(b); w > k*(1+1.e-10) {
			t.Errorf("Wh(%g, %g) = %g exceeds 2K0(%g) = %g", u, b, w, b, k)
		}
		prev = w
	}
}

// As b → 0 the well function converges to E1(u), including across the
// u < b/2 reflection branch.
func TestWh_SmallB(t *testing.T) {
	for _, u := range []float64{0.01, 0.1, 1} {
		want := Wh(u, 0)
		got := Wh(u, 1.e-7)
		if relErr(got, want) > 1.e-4 {
			t.Errorf("Wh(%g, 1e-7) = %g, want ≈ E1(%g) = %g", u, got, u, want)
		}
	}
}

func TestAquiferCheck(t *testing.T) {
	if err := testAquifer().Check(); err != nil {
		t.Errorf("valid aquifer failed check: %v", err)
	}
	bad := []*Aquifer{
		{Velocity: 0, AlphaL: 40, AlphaT: 8, Porosity: 0.22},
		{Velocity: 1, AlphaL: 40, AlphaT: 8, Porosity: 0},
		{Velocity: 1, AlphaL: 40, AlphaT: 8, Porosity: 1.5},
		{Velocity: 1, AlphaL: 0, AlphaT: 8, Porosity: 0.22},
		{Velocity: 1, AlphaL: 40, AlphaT: 8, Porosity: 0.22, Decay: -1},
		{Velocity: 1, AlphaL: 40, AlphaT: 8, Porosity: 0.22, Retardation: -1},
	}
	for i, a := range bad {
		if err := a.Check(); err == nil {
			t.Errorf("case %d: expected check failure for %+v", i, a)
		}
	}
}

func TestPointSource2_ZeroTime(t *testing.T) {
	a := testAquifer()
	if c := a.PointSource2(100, 100, 0, 50, 50, 100, 0.1); c != 0 {
		t.Errorf("concentration at t=0 is %g, want 0", c)
	}
	if c := a.PointSource2(100, 100, -1, 50, 50, 100, 0.1); c != 0 {
		t.Errorf("concentration at t<0 is %g, want 0", c)
	}
}

// The solution is linear in both the source concentration and the
// injection rate.
func TestPointSource2_Linearity(t *testing.T) {
	a := testAquifer()
	const (
		x, y, tt, xc, yc = 400, 420, 30, 650, 400
		c0, qa           = 100., 0.1
	)
	base := a.PointSource2(x, y, tt, xc, yc, c0, qa)
	if base <= 0 {
		t.Fatalf("base concentration is %g, want > 0", base)
	}
	for _, k := range []float64{0.5, 2, 3.7} {
		if got := a.PointSource2(x, y, tt, xc, yc, k*c0, qa); relErr(got, k*base) > 1.e-12 {
			t.Errorf("scaling c0 by %g: got %g, want %g", k, got, k*base)
		}
		if got := a.PointSource2(x, y, tt, xc, yc, c0, k*qa); relErr(got, k*base) > 1.e-12 {
			t.Errorf("scaling qa by %g: got %g, want %g", k, got, k*base)
		}
	}
}

// Decay can only reduce concentrations; retardation slows the plume
// so downgradient concentrations drop at early times.
func TestPointSource2_DecayRetardation(t *testing.T) {
	a := testAquifer()
	const (
		x, y, tt, xc, yc = 700, 400, 30, 650, 400
		c0, qa           = 100., 0.1
	)
	base := a.PointSource2(x, y, tt, xc, yc, c0, qa)

	decayed := *a
	decayed.Decay = 0.05
	if got := decayed.PointSource2(x, y, tt, xc, yc, c0, qa); got >= base {
		t.Errorf("decaying solute concentration %g not less than conservative %g", got, base)
	}

	retarded := *a
	retarded.Retardation = 5
	if got := retarded.PointSource2(x, y, tt, xc, yc, c0, qa); got >= base {
		t.Errorf("retarded downgradient concentration %g not less than unretarded %g", got, base)
	}
}

// Concentrations fall off with distance from the source along the
// downgradient axis.
func TestPointSource2_Falloff(t *testing.T) {
	a := testAquifer()
	const (
		tt, xc, yc = 30., 650., 400.
		c0, qa     = 100., 0.1
	)
	prev := math.Inf(1)
	for _, dx := range []float64{10, 50, 100, 200, 400} {
		c := a.PointSource2(xc+dx, yc, tt, xc, yc, c0, qa)
		if c >= prev {
			t.Errorf("concentration %g at distance %g not less than %g closer in", c, dx, prev)
		}
		prev = c
	}
}

func relErr(got, want float64) float64 {
	return math.Abs(got-want) / math.Abs(want)
}
