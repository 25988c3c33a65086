package sample

import (
	"reflect"
	"strings"
	"testing"
)

// gridTable returns an n×n grid of rows with distinct locations and
// positive concentrations.
func gridTable(n int) *Table {
	t := new(Table)
	for iy := 0; iy < n; iy++ {
		for ix := 0; ix < n; ix++ {
			t.X = append(t.X, float64(ix)*10)
			t.Y = append(t.Y, float64(iy)*10)
			t.Conc = append(t.Conc, 1+float64(ix+iy))
		}
	}
	return t
}

func TestConfigCheck(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"unknown strategy", Config{Strategy: "kmeans", Num: 10}},
		{"negative count", Config{Strategy: Random, Num: -1}},
		{"no count or ratio", Config{Strategy: Random}},
		{"negative threshold", Config{Strategy: Random, Num: 10, MinConc: -0.1}},
	}
	for _, c := range cases {
		if err := c.cfg.Check(); err == nil {
			t.Errorf("%s: expected an error", c.name)
		}
	}
	ok := Config{Strategy: LHS, Ratio: 0.01, MinConc: 0.1}
	if err := ok.Check(); err != nil {
		t.Errorf("valid configuration rejected: %v", err)
	}
}

func TestConfigCheckNamesStrategies(t *testing.T) {
	cfg := Config{Strategy: "kmeans", Num: 10}
	err := cfg.Check()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{LHS, Random, Uniform} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not name strategy %q", err, want)
		}
	}
}

func TestTargetCount(t *testing.T) {
	cases := []struct {
		cfg   Config
		valid int
		want  int
	}{
		// A fixed count is capped at the valid rows and wins over
		// the ratio; a ratio keeps at least one row.
		{Config{Num: 10}, 100, 10},
		{Config{Num: 200}, 100, 100},
		{Config{Ratio: 0.01}, 1000, 10},
		{Config{Ratio: 0.01}, 50, 1},
		{Config{Ratio: 1.5}, 16, 16},
		{Config{Num: 10, Ratio: 0.5}, 100, 10},
	}
	for i, c := range cases {
		if got := c.cfg.targetCount(c.valid); got != c.want {
			t.Errorf("case %d: targetCount(%d) = %d, want %d", i, c.valid, got, c.want)
		}
	}
}

func TestSampleCounts(t *testing.T) {
	tbl := gridTable(10)
	for _, strategy := range []string{LHS, Random, Uniform} {
		cfg := &Config{Strategy: strategy, Num: 16}
		got, err := cfg.Sample(tbl)
		if err != nil {
			t.Fatalf("%s: %v", strategy, err)
		}
		if got.Len() > 16 {
			t.Errorf("%s: selected %d rows, want at most 16", strategy, got.Len())
		}
		if got.Len() == 0 {
			t.Errorf("%s: selected no rows", strategy)
		}
	}
}

// LHS and random selection have to hit the requested count exactly;
// uniform may fall short when the occupied bins run out.
func TestSampleExactCounts(t *testing.T) {
	tbl := gridTable(10)
	for _, strategy := range []string{LHS, Random} {
		cfg := &Config{Strategy: strategy, Num: 16}
		got, err := cfg.Sample(tbl)
		if err != nil {
			t.Fatalf("%s: %v", strategy, err)
		}
		if got.Len() != 16 {
			t.Errorf("%s: selected %d rows, want 16", strategy, got.Len())
		}
	}
}

func TestSampleDeterminism(t *testing.T) {
	tbl := gridTable(10)
	for _, strategy := range []string{LHS, Random, Uniform} {
		cfg := &Config{Strategy: strategy, Num: 12, Seed: 7}
		a, err := cfg.Sample(tbl)
		if err != nil {
			t.Fatalf("%s: %v", strategy, err)
		}
		b, err := cfg.Sample(tbl)
		if err != nil {
			t.Fatalf("%s: %v", strategy, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: two runs with the same seed differ", strategy)
		}
	}
}

func TestSampleSeedChangesSelection(t *testing.T) {
	tbl := gridTable(10)
	a, err := (&Config{Strategy: Random, Num: 12, Seed: 1}).Sample(tbl)
	if err != nil {
		t.Fatal(err)
	}
	b, err := (&Config{Strategy: Random, Num: 12, Seed: 2}).Sample(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(a, b) {
		t.Error("different seeds produced identical selections")
	}
}

func TestSampleUniqueRows(t *testing.T) {
	tbl := gridTable(10)
	for _, strategy := range []string{LHS, Random, Uniform} {
		cfg := &Config{Strategy: strategy, Num: 25}
		got, err := cfg.Sample(tbl)
		if err != nil {
			t.Fatalf("%s: %v", strategy, err)
		}
		seen := make(map[[2]float64]bool)
		for i := 0; i < got.Len(); i++ {
			key := [2]float64{got.X[i], got.Y[i]}
			if seen[key] {
				t.Errorf("%s: row (%g, %g) selected twice", strategy, got.X[i], got.Y[i])
			}
			seen[key] = true
		}
	}
}

func TestSampleWholeTable(t *testing.T) {
	tbl := gridTable(4)
	cfg := &Config{Strategy: Random, Num: 100} // more than the table holds
	got, err := cfg.Sample(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != tbl.Len() {
		t.Errorf("selected %d rows, want all %d", got.Len(), tbl.Len())
	}
}

// A ratio above one selects every row rather than overrunning the
// table.
func TestSampleRatioAboveOne(t *testing.T) {
	tbl := gridTable(4)
	for _, strategy := range []string{LHS, Random, Uniform} {
		cfg := &Config{Strategy: strategy, Ratio: 1.5}
		got, err := cfg.Sample(tbl)
		if err != nil {
			t.Fatalf("%s: %v", strategy, err)
		}
		if got.Len() > tbl.Len() {
			t.Errorf("%s: selected %d rows from a %d-row table", strategy, got.Len(), tbl.Len())
		}
	}
}

func TestSampleEmptyTable(t *testing.T) {
	cfg := &Config{Strategy: Random, Num: 5}
	if _, err := cfg.Sample(new(Table)); err == nil {
		t.Error("expected an error for an empty table")
	}
}

func TestSampleUnknownStrategy(t *testing.T) {
	cfg := &Config{Strategy: "sobol", Num: 5}
	if _, err := cfg.Sample(gridTable(4)); err == nil {
		t.Error("expected an error for an unsupported strategy")
	}
}

// Uniform selection is meant to spread rows over space: with enough
// requested rows, every occupied bin along x contributes.
func TestSampleUniformSpread(t *testing.T) {
	tbl := gridTable(10) // x spans [0, 90]
	cfg := &Config{Strategy: Uniform, Num: 9}
	got, err := cfg.Sample(tbl)
	if err != nil {
		t.Fatal(err)
	}
	thirds := make(map[int]bool)
	for i := 0; i < got.Len(); i++ {
		b := int(got.X[i] / 90 * 3)
		if b > 2 {
			b = 2
		}
		thirds[b] = true
	}
	if len(thirds) != 3 {
		t.Errorf("uniform selection covers %d thirds of the x range, want 3", len(thirds))
	}
}
