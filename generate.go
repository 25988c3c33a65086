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
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// RunInfo describes the output of one completed scenario run.
type RunInfo struct {
	Scenario  *Scenario
	Dir       string // scenario root directory
	CSVDir    string
	PlotDir   string
	Summaries []Summary
	ScaleMax  float64 // shared color-scale cap (1.1 × global max)
}

// Run generates the full dataset for one scenario under outDir: one
// snapshot table and one plume map per observation time, a manifest,
// a parameter log and a summary time-series plot. It validates the
// scenario before touching the file system, and aborts on the first
// failure; there is no per-snapshot recovery.
func Run(s *Scenario, outDir string) (*RunInfo, error) {
	if err := s.Check(); err != nil {
		return nil, err
	}

	info := &RunInfo{
		Scenario: s,
		Dir:      filepath.Join(outDir, s.Name),
	}
	info.CSVDir = filepath.Join(info.Dir, csvDirName)
	info.PlotDir = filepath.Join(info.Dir, plotDirName)
	for _, dir := range []string{info.CSVDir, info.PlotDir} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("pinn: creating output directory: %v", err)
		}
	}

	if err := s.writeParamLog(filepath.Join(info.Dir, s.Name+"_参数记录.txt")); err != nil {
		return nil, err
	}

	// All fields are evaluated up front so the color scale can be
	// normalized across observation times.
	fields := s.EvaluateAll()
	info.ScaleMax = scaleCap(fields)
	cmap := fieldColorMap(fields, info.ScaleMax)

	manifest := &Manifest{
		Scenario: s.Name,
		Columns:  Columns(),
	}
	for _, f := range fields {
		log.WithFields(log.Fields{
			"scenario": s.Name,
			"time":     f.Time,
		}).Info("processing observation time")

		name := SnapshotFilename(f.Time)
		if err := f.WriteCSV(filepath.Join(info.CSVDir, name)); err != nil {
			return nil, err
		}
		manifest.Snapshots = append(manifest.Snapshots, ManifestSnapshot{Time: f.Time, File: name})

		plotName := fmt.Sprintf("浓度分布图_%s天.png", formatTime(f.Time))
		if err := f.WritePlumeMap(s.Sources, cmap, filepath.Join(info.PlotDir, plotName)); err != nil {
			return nil, err
		}

		info.Summaries = append(info.Summaries, f.Summarize())
	}

	if err := WriteManifest(manifest, filepath.Join(info.CSVDir, ManifestFile)); err != nil {
		return nil, err
	}
	if err := WriteTimeSeriesPlot(s.Name, info.Summaries,
		filepath.Join(info.PlotDir, s.Name+"_浓度时间序列.png")); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"scenario": s.Name,
		"dir":      info.Dir,
		"scaleMax": info.ScaleMax,
	}).Info("scenario complete")
	return info, nil
}

// ScenarioResult records the outcome of one scenario in a batch run.
type ScenarioResult struct {
	Name string
	Dir  string
	Err  error
}

// RunScenarios runs each scenario in order. A failing scenario is
// recorded in the results and does not stop the remaining scenarios.
func RunScenarios(scenarios []*Scenario, outDir string) []ScenarioResult {
	results := make([]ScenarioResult, 0, len(scenarios))
	for _, s := range scenarios {
		info, err := Run(s, outDir)
		r := ScenarioResult{Name: s.Name, Err: err}
		if err != nil {
			log.WithFields(log.Fields{
				"scenario": s.Name,
			}).WithError(err).Error("scenario failed")
		} else {
			r.Dir = info.Dir
		}
		results = append(results, r)
	}
	return results
}
