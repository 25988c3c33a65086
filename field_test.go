package pinn

import (
	"math"
	"testing"

	"github.com/ctessum/sparse"
)

func TestEvaluateZeroTime(t *testing.T) {
	s := testScenario()
	f := s.Evaluate(0)
	if f.Time != 0 {
		t.Fatalf("field time = %g, want 0", f.Time)
	}
	if got, want := len(f.Conc.Elements), s.Grid.Nodes*s.Grid.Nodes; got != want {
		t.Fatalf("field has %d elements, want %d", got, want)
	}
	for i, v := range f.Conc.Elements {
		if v != 0 {
			t.Fatalf("element %d = %g at time zero, want 0", i, v)
		}
	}
}

func TestEvaluatePositive(t *testing.T) {
	s := testScenario()
	f := s.Evaluate(30)
	for i, v := range f.Conc.Elements {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("element %d = %g, want finite and non-negative", i, v)
		}
	}
	if f.Conc.Max() <= 0 {
		t.Error("expected a positive concentration somewhere in the field")
	}
}

// The solution is linear in the source term, so doubling the sources
// must double the field.
func TestEvaluateSuperposition(t *testing.T) {
	s1 := testScenario()
	s2 := testScenario()
	s2.Sources = append(s2.Sources, s2.Sources[0])

	f1 := s1.Evaluate(30)
	f2 := s2.Evaluate(30)
	for i := range f1.Conc.Elements {
		a, b := f1.Conc.Elements[i], f2.Conc.Elements[i]
		if a == 0 && b == 0 {
			continue
		}
		if rel := math.Abs(b-2*a) / math.Abs(2*a); rel > 1.e-12 {
			t.Fatalf("element %d: duplicated source gives %g, want 2×%g (relative error %g)", i, b, a, rel)
		}
	}
}

// The grid has a node exactly at the source location, which must hold
// the maximum concentration.
func TestEvaluateMaxAtSource(t *testing.T) {
	s := testScenario()
	f := s.Evaluate(30)

	var maxIy, maxIx int
	max := math.Inf(-1)
	for iy := 0; iy < s.Grid.Nodes; iy++ {
		for ix := 0; ix < s.Grid.Nodes; ix++ {
			if v := f.Conc.Get(iy, ix); v > max {
				max, maxIy, maxIx = v, iy, ix
			}
		}
	}
	xs, ys := s.Grid.Xs(), s.Grid.Ys()
	if xs[maxIx] != s.Sources[0].X || ys[maxIy] != s.Sources[0].Y {
		t.Errorf("maximum at (%g, %g), want at the source (%g, %g)",
			xs[maxIx], ys[maxIy], s.Sources[0].X, s.Sources[0].Y)
	}
}

func TestEvaluateAll(t *testing.T) {
	s := testScenario()
	fields := s.EvaluateAll()
	if len(fields) != len(s.ObsTimes) {
		t.Fatalf("got %d fields, want %d", len(fields), len(s.ObsTimes))
	}
	for i, f := range fields {
		if f.Time != s.ObsTimes[i] {
			t.Errorf("field %d at time %g, want %g", i, f.Time, s.ObsTimes[i])
		}
	}
}

func TestSummarize(t *testing.T) {
	f := &Field{
		Time: 30,
		Grid: Grid{X0: 0, X1: 1, Y0: 0, Y1: 1, Nodes: 2},
		Conc: sparse.ZerosDense(2, 2),
	}
	for i, v := range []float64{1, 2, 3, 4} {
		f.Conc.Elements[i] = v
	}
	sum := f.Summarize()
	if sum.Time != 30 {
		t.Errorf("summary time = %g, want 30", sum.Time)
	}
	if sum.Max != 4 {
		t.Errorf("max = %g, want 4", sum.Max)
	}
	if sum.Mean != 2.5 {
		t.Errorf("mean = %g, want 2.5", sum.Mean)
	}
	if want := math.Sqrt(1.25); math.Abs(sum.Std-want) > 1.e-12 {
		t.Errorf("std = %g, want %g", sum.Std, want)
	}
}

func TestScaleCap(t *testing.T) {
	mk := func(vals ...float64) *Field {
		f := &Field{Conc: sparse.ZerosDense(1, len(vals))}
		copy(f.Conc.Elements, vals)
		return f
	}
	got := scaleCap([]*Field{mk(0, 1), mk(5, 2), mk(3)})
	if want := 5.5; math.Abs(got-want) > 1.e-14 {
		t.Errorf("scale cap = %g, want %g", got, want)
	}
}
