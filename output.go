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
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Snapshot tables follow the column schema of the upstream dataset
// format: UTF-8 CSV with Chinese column headers, one file per
// observation time with the time value embedded in the file name.
const (
	ColX    = "X坐标_m"       // x coordinate [m]
	ColY    = "Y坐标_m"       // y coordinate [m]
	ColConc = "污染物浓度_mg/L" // concentration [mg/L]

	SnapshotPrefix = "全局浓度_" // full-grid snapshot file prefix
	SparsePrefix   = "稀疏观测_" // sparse sample file prefix
	snapshotSuffix = "天.csv"

	// ManifestFile is the name of the structured metadata sidecar
	// written next to the snapshot tables.
	ManifestFile = "manifest.toml"

	csvDirName  = "csv_results"
	plotDirName = "plot_results"
)

// Columns returns the snapshot table header.
func Columns() []string { return []string{ColX, ColY, ColConc} }

// formatTime renders an observation time the way it appears in file
// names: the shortest representation that round-trips the value.
func formatTime(t float64) string {
	return strconv.FormatFloat(t, 'g', -1, 64)
}

// SnapshotFilename returns the snapshot table file name for
// observation time t, e.g. 全局浓度_30天.csv.
func SnapshotFilename(t float64) string {
	return SnapshotPrefix + formatTime(t) + snapshotSuffix
}

// TimeFromFilename parses the observation time out of a snapshot file
// name. It is the fallback used when no manifest is available.
func TimeFromFilename(name string) (float64, error) {
	base := filepath.Base(name)
	if !strings.HasPrefix(base, SnapshotPrefix) || !strings.HasSuffix(base, snapshotSuffix) {
		return 0, fmt.Errorf("pinn: %q is not a snapshot table name", base)
	}
	v := strings.TrimSuffix(strings.TrimPrefix(base, SnapshotPrefix), snapshotSuffix)
	t, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("pinn: cannot parse observation time from %q: %v", base, err)
	}
	return t, nil
}

// Manifest is the structured metadata sidecar describing the snapshot
// tables of one scenario, so that consumers do not need to parse
// observation times back out of file names.
type Manifest struct {
	Scenario  string             `toml:"scenario"`
	Columns   []string           `toml:"columns"`
	Snapshots []ManifestSnapshot `toml:"snapshots"`
}

// ManifestSnapshot locates the table for one observation time.
type ManifestSnapshot struct {
	Time float64 `toml:"time"`
	File string  `toml:"file"`
}

// WriteManifest writes m to path as TOML.
func WriteManifest(m *Manifest, path string) error {
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pinn: creating manifest: %v", err)
	}
	defer w.Close()
	if err := toml.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("pinn: encoding manifest: %v", err)
	}
	return nil
}

// ReadManifest reads a snapshot manifest from path.
func ReadManifest(path string) (*Manifest, error) {
	m := new(Manifest)
	if _, err := toml.DecodeFile(path, m); err != nil {
		return nil, fmt.Errorf("pinn: reading manifest %s: %v", path, err)
	}
	return m, nil
}

// WriteCSV writes the field as a snapshot table to path. Rows are in
// flattened meshgrid order: x varies fastest, then y, giving Nodes²
// rows after the header.
func (f *Field) WriteCSV(path string) error {
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pinn: creating snapshot table: %v", err)
	}
	defer w.Close()

	cw := csv.NewWriter(w)
	if err := cw.Write(Columns()); err != nil {
		return err
	}
	xs, ys := f.Grid.Xs(), f.Grid.Ys()
	rec := make([]string, 3)
	for iy, y := range ys {
		for ix, x := range xs {
			rec[0] = strconv.FormatFloat(x, 'g', -1, 64)
			rec[1] = strconv.FormatFloat(y, 'g', -1, 64)
			rec[2] = strconv.FormatFloat(f.Conc.Get(iy, ix), 'g', -1, 64)
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeParamLog writes the human-readable parameter record for s.
func (s *Scenario) writeParamLog(path string) error {
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pinn: creating parameter log: %v", err)
	}
	defer w.Close()

	fmt.Fprintf(w, "========== %s simulation parameters ==========\n", s.Name)
	fmt.Fprintf(w, "[hydro-geologic parameters]\n")
	fmt.Fprintf(w, "hydraulic conductivity Kxx (m/d): %g\n", s.Kxx)
	fmt.Fprintf(w, "hydraulic conductivity Kyy (m/d): %g\n", s.Kyy)
	fmt.Fprintf(w, "effective porosity: %g\n", s.Porosity)
	fmt.Fprintf(w, "longitudinal dispersivity (m): %g\n", s.AlphaL)
	fmt.Fprintf(w, "transverse dispersivity (m): %g\n", s.AlphaT)
	if s.Diffusion > 0 {
		fmt.Fprintf(w, "molecular diffusion (m²/d): %g\n", s.Diffusion)
	}
	if s.Decay > 0 {
		fmt.Fprintf(w, "first-order decay rate (1/d): %g\n", s.Decay)
	}
	if s.Retardation > 1 {
		fmt.Fprintf(w, "retardation factor: %g\n", s.Retardation)
	}
	fmt.Fprintf(w, "pore velocity v (m/d): %.4f (v = Kxx/θ)\n\n", s.Velocity())

	fmt.Fprintf(w, "[simulated region]\n")
	fmt.Fprintf(w, "x range (m): %g ~ %g\n", s.Grid.X0, s.Grid.X1)
	fmt.Fprintf(w, "y range (m): %g ~ %g\n", s.Grid.Y0, s.Grid.Y1)
	fmt.Fprintf(w, "grid nodes per axis: %d\n\n", s.Grid.Nodes)

	fmt.Fprintf(w, "[point sources]\n")
	fmt.Fprintf(w, "source count: %d\n", len(s.Sources))
	for i, src := range s.Sources {
		fmt.Fprintf(w, "source %d: location (%g, %g) m, concentration %g mg/L, injection rate %g m²/d\n",
			i+1, src.X, src.Y, src.C0, src.Qa)
	}

	fmt.Fprintf(w, "\n[time parameters]\n")
	fmt.Fprintf(w, "stress cycle / total duration (d): %g\n", s.StressCycle)
	fmt.Fprintf(w, "observation times (d): %v\n", s.ObsTimes)
	return nil
}
