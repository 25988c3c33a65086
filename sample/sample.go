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

package sample

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Selection policies.
const (
	LHS     = "lhs"     // Latin-hypercube points matched to nearest rows
	Random  = "random"  // uniform random rows without replacement
	Uniform = "uniform" // one row per occupied spatial bin
)

// DefaultSeed is the random seed used when Config.Seed is zero, for
// reproducible sample sets.
const DefaultSeed = 42

// Config controls how a snapshot is thinned.
type Config struct {
	// Strategy is one of LHS, Random or Uniform.
	Strategy string

	// Num is the fixed number of rows to select, capped at the
	// number of valid rows. If zero, Ratio is used instead.
	Num int

	// Ratio is the fraction of valid rows to select when Num is
	// zero; at least one row is always selected, and at most all
	// of them.
	Ratio float64

	// MinConc is the minimum concentration a row must have to be
	// eligible for selection.
	MinConc float64

	// Seed seeds the quasi-random and random number generators.
	// Zero means DefaultSeed.
	Seed uint64
}

// Check returns an error if the configuration cannot produce a
// sample. It must pass before any file is read or written.
func (c *Config) Check() error {
	switch c.Strategy {
	case LHS, Random, Uniform:
	default:
		return fmt.Errorf("sample: unsupported strategy %q; choose one of %q, %q or %q",
			c.Strategy, LHS, Random, Uniform)
	}
	if c.Num < 0 {
		return fmt.Errorf("sample: sample count cannot be negative but is %d", c.Num)
	}
	if c.Num == 0 && c.Ratio <= 0 {
		return fmt.Errorf("sample: either a positive sample count or a positive sample ratio is required")
	}
	if c.MinConc < 0 {
		return fmt.Errorf("sample: minimum concentration cannot be negative but is %g", c.MinConc)
	}
	return nil
}

func (c *Config) seed() uint64 {
	if c.Seed == 0 {
		return DefaultSeed
	}
	return c.Seed
}

// targetCount resolves the number of rows to select out of valid
// eligible rows.
func (c *Config) targetCount(valid int) int {
	if c.Num > 0 {
		if c.Num > valid {
			return valid
		}
		return c.Num
	}
	n := int(float64(valid) * c.Ratio)
	if n < 1 {
		n = 1
	}
	if n > valid {
		n = valid
	}
	return n
}

// Sample selects rows from the already-filtered table t according to
// the configured strategy. The returned table has targetCount rows.
func (c *Config) Sample(t *Table) (*Table, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("sample: no rows to sample from")
	}
	n := c.targetCount(t.Len())
	rng := rand.New(rand.NewSource(c.seed()))
	var indices []int
	switch c.Strategy {
	case LHS:
		indices = sampleLHS(t, n, rng)
	case Random:
		indices = sampleRandom(t, n, rng)
	case Uniform:
		indices = sampleUniform(t, n, rng)
	}
	return t.take(indices), nil
}

// tableRow is an rtree entry locating one table row.
type tableRow struct {
	geom.Point
	idx int
}

// sampleLHS stratifies n quasi-random points over the table's
// bounding box, matches each to its nearest row through a spatial
// index, deduplicates the matches, and backfills any shortfall with
// random unselected rows. If deduplication leaves more than n unique
// rows, the list is truncated to the first n in ascending row order.
func sampleLHS(t *Table, n int, rng *rand.Rand) []int {
	x0, x1, y0, y1 := t.Bounds()

	// Stratified [0,1) draws for each axis; sharing one generator
	// keeps the two axis permutations independent.
	lh := sampleuv.LatinHypercube{Q: distuv.Uniform{Min: 0, Max: 1}, Src: rng}
	us := make([]float64, n)
	vs := make([]float64, n)
	lh.Sample(us)
	lh.Sample(vs)

	index := rtree.NewTree(25, 50)
	for i := 0; i < t.Len(); i++ {
		index.Insert(tableRow{Point: geom.Point{X: t.X[i], Y: t.Y[i]}, idx: i})
	}

	// Multiple stratified points can resolve to the same nearest
	// row; keep each row once.
	seen := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		p := geom.Point{
			X: x0 + us[i]*(x1-x0),
			Y: y0 + vs[i]*(y1-y0),
		}
		nearest := index.NearestNeighbor(p).(tableRow)
		seen[nearest.idx] = true
	}
	unique := make([]int, 0, len(seen))
	for idx := range seen {
		unique = append(unique, idx)
	}
	sort.Ints(unique)

	if len(unique) >= n {
		return unique[:n]
	}

	// Backfill from the unselected rows by random choice without
	// replacement until the target count (or the table) is
	// exhausted.
	remaining := make([]int, 0, t.Len()-len(unique))
	for i := 0; i < t.Len(); i++ {
		if !seen[i] {
			remaining = append(remaining, i)
		}
	}
	need := n - len(unique)
	if need > len(remaining) {
		need = len(remaining)
	}
	perm := rng.Perm(len(remaining))
	for _, j := range perm[:need] {
		unique = append(unique, remaining[j])
	}
	return unique
}

// sampleRandom selects n rows uniformly at random without
// replacement.
func sampleRandom(t *Table, n int, rng *rand.Rand) []int {
	return rng.Perm(t.Len())[:n]
}

// sampleUniform partitions the bounding box into ⌊√n⌋ equal-width
// bins per axis and selects one random row per occupied bin, visiting
// bins with x outermost and stopping once n rows are selected. Bins
// visited early are favored when the count runs out before the bins
// do.
func sampleUniform(t *Table, n int, rng *rand.Rand) []int {
	nb := int(math.Sqrt(float64(n)))
	if nb < 1 {
		nb = 1
	}
	x0, x1, y0, y1 := t.Bounds()

	binOf := func(v, lo, hi float64) int {
		if hi <= lo {
			return 0
		}
		b := int((v - lo) / (hi - lo) * float64(nb))
		if b >= nb {
			b = nb - 1
		}
		return b
	}
	bins := make(map[[2]int][]int)
	for i := 0; i < t.Len(); i++ {
		key := [2]int{binOf(t.X[i], x0, x1), binOf(t.Y[i], y0, y1)}
		bins[key] = append(bins[key], i)
	}

	indices := make([]int, 0, n)
	for xb := 0; xb < nb && len(indices) < n; xb++ {
		for yb := 0; yb < nb && len(indices) < n; yb++ {
			rows := bins[[2]int{xb, yb}]
			if len(rows) == 0 {
				continue
			}
			indices = append(indices, rows[rng.Intn(len(rows))])
		}
	}
	return indices
}
