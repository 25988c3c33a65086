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

// Package pinnutil holds the command-line interface of the dataset
// generator and sparse sampler.
package pinnutil

import (
	"fmt"
	"os"

	"github.com/lnashier/viper"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/78naegi/PINN"
	"github.com/78naegi/PINN/sample"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to the
	// generator and the sampler.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path of a file to append log output to.
              If empty, logs go to standard error.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "OutputDir",
			usage: `
              OutputDir is the directory that scenario output
              directories are created under.`,
			shorthand:  "o",
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.Name",
			usage: `
              Scenario.Name labels the scenario and names its output
              directory.`,
			defaultVal: "scenario1",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.Kxx",
			usage: `
              Scenario.Kxx is the hydraulic conductivity along the
              flow direction [m/d].`,
			defaultVal: 0.8,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.Kyy",
			usage: `
              Scenario.Kyy is the hydraulic conductivity across the
              flow direction [m/d]. It is recorded in the parameter
              log; the analytical solution assumes uniform flow
              along x.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.Porosity",
			usage: `
              Scenario.Porosity is the effective porosity of the
              aquifer.`,
			defaultVal: 0.22,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.AlphaL",
			usage: `
              Scenario.AlphaL is the longitudinal dispersivity [m].`,
			defaultVal: 40.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.AlphaT",
			usage: `
              Scenario.AlphaT is the transverse dispersivity [m].`,
			defaultVal: 8.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.Diffusion",
			usage: `
              Scenario.Diffusion is the effective molecular diffusion
              coefficient [m²/d].`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.Decay",
			usage: `
              Scenario.Decay is the first-order solute decay rate
              [1/d].`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.Retardation",
			usage: `
              Scenario.Retardation is the linear retardation factor.
              Zero or one means no retardation.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.XMin",
			usage: `
              Scenario.XMin is the lower x extent of the simulated
              region [m].`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.XMax",
			usage: `
              Scenario.XMax is the upper x extent of the simulated
              region [m].`,
			defaultVal: 1300.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.YMin",
			usage: `
              Scenario.YMin is the lower y extent of the simulated
              region [m].`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.YMax",
			usage: `
              Scenario.YMax is the upper y extent of the simulated
              region [m].`,
			defaultVal: 800.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.GridNodes",
			usage: `
              Scenario.GridNodes is the number of grid nodes along
              each axis, giving GridNodes² evaluation points.`,
			defaultVal: 100,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.SourceX",
			usage: `
              Scenario.SourceX lists the x coordinates of the point
              sources [m]. SourceX, SourceY, SourceC0 and SourceQa
              must all have the same length.`,
			defaultVal: []float64{650},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.SourceY",
			usage: `
              Scenario.SourceY lists the y coordinates of the point
              sources [m].`,
			defaultVal: []float64{400},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.SourceC0",
			usage: `
              Scenario.SourceC0 lists the source concentrations
              [mg/L], one per source.`,
			defaultVal: []float64{100},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.SourceQa",
			usage: `
              Scenario.SourceQa lists the injection rates per unit
              aquifer thickness [m²/d], one per source.`,
			defaultVal: []float64{0.1},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.StressCycle",
			usage: `
              Scenario.StressCycle is the total simulated duration
              [d].`,
			defaultVal: 365.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Scenario.ObsTimes",
			usage: `
              Scenario.ObsTimes lists the observation times [d] at
              which snapshots are generated.`,
			defaultVal: []float64{0, 1, 10, 30, 60, 180, 300, 330},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Sample.InputDir",
			usage: `
              Sample.InputDir is the directory holding the snapshot
              tables to thin, typically the csv_results directory of
              a generated scenario.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sampleCmd.Flags()},
		},
		{
			name: "Sample.OutputDir",
			usage: `
              Sample.OutputDir is the directory the reduced tables
              are written to.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sampleCmd.Flags()},
		},
		{
			name: "Sample.Strategy",
			usage: `
              Sample.Strategy selects the thinning policy: lhs,
              random or uniform.`,
			defaultVal: sample.LHS,
			flagsets:   []*pflag.FlagSet{sampleCmd.Flags()},
		},
		{
			name: "Sample.Ratio",
			usage: `
              Sample.Ratio is the fraction of valid rows to keep when
              Sample.Num is zero.`,
			defaultVal: 0.01,
			flagsets:   []*pflag.FlagSet{sampleCmd.Flags()},
		},
		{
			name: "Sample.Num",
			usage: `
              Sample.Num is a fixed number of rows to keep per
              snapshot, capped at the number of valid rows. It takes
              precedence over Sample.Ratio when positive.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{sampleCmd.Flags()},
		},
		{
			name: "Sample.MinConc",
			usage: `
              Sample.MinConc is the minimum concentration [mg/L] a
              row must have to be eligible for selection.`,
			defaultVal: 0.1,
			flagsets:   []*pflag.FlagSet{sampleCmd.Flags()},
		},
		{
			name: "Sample.Seed",
			usage: `
              Sample.Seed seeds the random and quasi-random
              generators so sample sets are reproducible.`,
			defaultVal: int(sample.DefaultSeed),
			flagsets:   []*pflag.FlagSet{sampleCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("PINN")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, v, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, v, option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, v, option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, v, option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, v, option.usage)
				} else {
					set.IntP(option.name, option.shorthand, v, option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, v, option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, v, option.usage)
				}
			case []float64:
				if option.shorthand == "" {
					set.Float64Slice(option.name, v, option.usage)
				} else {
					set.Float64SliceP(option.name, option.shorthand, v, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(sampleCmd)
}

// setConfig finds and reads in the configuration file, if there is
// one, and redirects logging when a log file is configured.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("pinn: problem reading configuration file: %v", err)
		}
	}
	if logpath := Cfg.GetString("LogFile"); logpath != "" {
		f, err := os.OpenFile(logpath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("pinn: problem opening log file: %v", err)
		}
		log.SetOutput(f)
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "pinn",
	Short: "A groundwater contaminant-plume dataset generator.",
	Long: `pinn generates synthetic groundwater contaminant-transport datasets
from an analytical advection-dispersion solution and thins them into
sparse observation sets for training physics-informed neural networks.

Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the
format 'PINN_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of pinn.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("pinn v%s\n", pinn.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd generates the dataset for one or more scenarios.
var runCmd = &cobra.Command{
	Use:   "run [scenario config file...]",
	Short: "Generate concentration snapshot datasets.",
	Long: `run evaluates the analytical transport solution over the scenario
grid at every observation time and writes the snapshot tables, plume
maps, manifest and parameter log.

With no arguments the scenario described by the current configuration
is run. With arguments, each file is read as one scenario
configuration and the scenarios are run in order; a failing scenario
is reported in the summary and does not stop the remaining ones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir := os.ExpandEnv(Cfg.GetString("OutputDir"))
		results := runScenarios(cmd, args, outDir)

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				cmd.Printf("FAIL %s: %v\n", r.Name, r.Err)
			} else {
				cmd.Printf("ok   %s: %s\n", r.Name, r.Dir)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// runScenarios resolves the scenario list for runCmd and runs it.
func runScenarios(cmd *cobra.Command, args []string, outDir string) []pinn.ScenarioResult {
	if len(args) == 0 {
		s, err := ScenarioFromConfig(Cfg)
		if err != nil {
			return []pinn.ScenarioResult{{Name: Cfg.GetString("Scenario.Name"), Err: err}}
		}
		return pinn.RunScenarios([]*pinn.Scenario{s}, outDir)
	}

	var results []pinn.ScenarioResult
	for _, cfgFile := range args {
		Cfg.SetConfigFile(cfgFile)
		if err := Cfg.ReadInConfig(); err != nil {
			results = append(results, pinn.ScenarioResult{Name: cfgFile, Err: err})
			continue
		}
		s, err := ScenarioFromConfig(Cfg)
		if err != nil {
			results = append(results, pinn.ScenarioResult{Name: cfgFile, Err: err})
			continue
		}
		results = append(results, pinn.RunScenarios([]*pinn.Scenario{s}, outDir)...)
	}
	return results
}

// sampleCmd thins generated snapshots into sparse observation sets.
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Thin snapshot tables into sparse observation sets.",
	Long: `sample reads the snapshot tables in Sample.InputDir, discards rows
below the concentration threshold, selects a reduced subset per table
with the configured strategy, and writes one reduced table per input
to Sample.OutputDir.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := &sample.Config{
			Strategy: Cfg.GetString("Sample.Strategy"),
			Ratio:    Cfg.GetFloat64("Sample.Ratio"),
			Num:      Cfg.GetInt("Sample.Num"),
			MinConc:  Cfg.GetFloat64("Sample.MinConc"),
			Seed:     uint64(Cfg.GetInt("Sample.Seed")),
		}
		inDir := os.ExpandEnv(Cfg.GetString("Sample.InputDir"))
		outDir := os.ExpandEnv(Cfg.GetString("Sample.OutputDir"))
		if inDir == "" || outDir == "" {
			return fmt.Errorf("pinn: Sample.InputDir and Sample.OutputDir must both be set")
		}

		results, err := sample.Dir(inDir, outDir, cfg)
		if err != nil {
			return err
		}
		failed := 0
		for _, r := range results {
			switch {
			case r.Err != nil:
				failed++
				cmd.Printf("FAIL %s: %v\n", r.Input, r.Err)
			case r.Skipped:
				cmd.Printf("skip %s: no valid rows\n", r.Input)
			default:
				cmd.Printf("ok   %s: %d of %d valid rows -> %s\n", r.Input, r.Sampled, r.Valid, r.Output)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d snapshots failed", failed, len(results))
		}
		return nil
	},
	DisableAutoGenTag: true,
}
