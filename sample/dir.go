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
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/78naegi/PINN"
	log "github.com/sirupsen/logrus"
)

// FileResult records what happened to one snapshot table during a
// directory run.
type FileResult struct {
	Input   string
	Output  string // empty when skipped or failed
	Time    float64
	Valid   int // rows at or above the concentration threshold
	Sampled int
	Skipped bool // no valid rows; warned and passed over
	Err     error
}

// snapshotFiles lists the snapshot tables in dir in observation-time
// order. The manifest sidecar is preferred; without one, file names
// matching the snapshot pattern are discovered and their embedded
// times parsed.
func snapshotFiles(dir string) ([]pinn.ManifestSnapshot, error) {
	if m, err := pinn.ReadManifest(filepath.Join(dir, pinn.ManifestFile)); err == nil {
		snaps := make([]pinn.ManifestSnapshot, len(m.Snapshots))
		copy(snaps, m.Snapshots)
		sort.Slice(snaps, func(i, j int) bool { return snaps[i].Time < snaps[j].Time })
		return snaps, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, pinn.SnapshotPrefix+"*"))
	if err != nil {
		return nil, err
	}
	var snaps []pinn.ManifestSnapshot
	for _, m := range matches {
		t, err := pinn.TimeFromFilename(m)
		if err != nil {
			continue // not a snapshot table
		}
		snaps = append(snaps, pinn.ManifestSnapshot{Time: t, File: filepath.Base(m)})
	}
	if len(snaps) == 0 {
		return nil, fmt.Errorf("sample: no snapshot tables found in %s", dir)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Time < snaps[j].Time })
	return snaps, nil
}

// Dir thins every snapshot table found in inDir and writes one
// reduced table per input to outDir, named by substituting the sparse
// prefix for the snapshot prefix. Inputs with no rows above the
// concentration threshold are skipped with a warning; a failure on
// one file does not stop the remaining files. The configuration is
// validated before anything is read or written.
func Dir(inDir, outDir string, cfg *Config) ([]FileResult, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	snaps, err := snapshotFiles(inDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("sample: creating output directory: %v", err)
	}

	results := make([]FileResult, 0, len(snaps))
	for _, snap := range snaps {
		r := FileResult{Input: filepath.Join(inDir, snap.File), Time: snap.Time}
		r = sampleFile(r, snap.File, outDir, cfg)
		if r.Err != nil {
			log.WithField("file", r.Input).WithError(r.Err).Error("sampling failed")
		}
		results = append(results, r)
	}
	return results, nil
}

func sampleFile(r FileResult, name, outDir string, cfg *Config) FileResult {
	t, err := ReadTable(r.Input)
	if err != nil {
		r.Err = err
		return r
	}
	valid := t.Filter(cfg.MinConc)
	r.Valid = valid.Len()
	if r.Valid == 0 {
		log.WithField("file", r.Input).Warn("no rows at or above the concentration threshold; skipping")
		r.Skipped = true
		return r
	}

	out, err := cfg.Sample(valid)
	if err != nil {
		r.Err = err
		return r
	}
	r.Sampled = out.Len()

	outName := strings.Replace(name, pinn.SnapshotPrefix, pinn.SparsePrefix, 1)
	outPath := filepath.Join(outDir, outName)
	if err := out.Write(outPath); err != nil {
		r.Err = err
		return r
	}
	r.Output = outPath

	x0, x1, y0, y1 := valid.Bounds()
	log.WithFields(log.Fields{
		"file":    name,
		"valid":   r.Valid,
		"sampled": r.Sampled,
		"xRange":  fmt.Sprintf("[%.1f, %.1f]", x0, x1),
		"yRange":  fmt.Sprintf("[%.1f, %.1f]", y0, y1),
	}).Info("sampled snapshot")
	return r
}
