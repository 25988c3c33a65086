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

package pinnutil

import (
	"fmt"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/78naegi/PINN"
)

// ScenarioFromConfig assembles a simulation scenario from the
// configuration keys under "Scenario.". The source coordinate,
// concentration and rate lists must have equal lengths.
func ScenarioFromConfig(cfg *viper.Viper) (*pinn.Scenario, error) {
	xs, err := getFloat64Slice(cfg, "Scenario.SourceX")
	if err != nil {
		return nil, err
	}
	ys, err := getFloat64Slice(cfg, "Scenario.SourceY")
	if err != nil {
		return nil, err
	}
	c0s, err := getFloat64Slice(cfg, "Scenario.SourceC0")
	if err != nil {
		return nil, err
	}
	qas, err := getFloat64Slice(cfg, "Scenario.SourceQa")
	if err != nil {
		return nil, err
	}
	sources, err := pinn.SourcesFromLists(xs, ys, c0s, qas)
	if err != nil {
		return nil, err
	}
	obsTimes, err := getFloat64Slice(cfg, "Scenario.ObsTimes")
	if err != nil {
		return nil, err
	}

	s := &pinn.Scenario{
		Name:        cfg.GetString("Scenario.Name"),
		Kxx:         cfg.GetFloat64("Scenario.Kxx"),
		Kyy:         cfg.GetFloat64("Scenario.Kyy"),
		Porosity:    cfg.GetFloat64("Scenario.Porosity"),
		AlphaL:      cfg.GetFloat64("Scenario.AlphaL"),
		AlphaT:      cfg.GetFloat64("Scenario.AlphaT"),
		Diffusion:   cfg.GetFloat64("Scenario.Diffusion"),
		Decay:       cfg.GetFloat64("Scenario.Decay"),
		Retardation: cfg.GetFloat64("Scenario.Retardation"),
		Grid: pinn.Grid{
			X0:    cfg.GetFloat64("Scenario.XMin"),
			X1:    cfg.GetFloat64("Scenario.XMax"),
			Y0:    cfg.GetFloat64("Scenario.YMin"),
			Y1:    cfg.GetFloat64("Scenario.YMax"),
			Nodes: cfg.GetInt("Scenario.GridNodes"),
		},
		Sources:     sources,
		StressCycle: cfg.GetFloat64("Scenario.StressCycle"),
		ObsTimes:    obsTimes,
	}
	if err := s.Check(); err != nil {
		return nil, err
	}
	return s, nil
}

// getFloat64Slice retrieves a configuration value as a slice of
// floats. Values bound to command-line flags come back from the
// configuration as the flag's "[a,b,c]" string form, so that form is
// handled here too.
func getFloat64Slice(cfg *viper.Viper, key string) ([]float64, error) {
	i := cfg.Get(key)
	switch v := i.(type) {
	case []float64:
		return v, nil
	case string:
		trimmed := strings.Trim(v, "[]")
		if trimmed == "" {
			return nil, nil
		}
		fields := strings.Split(trimmed, ",")
		out := make([]float64, len(fields))
		for j, field := range fields {
			f, err := cast.ToFloat64E(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("pinn: configuration variable %s: %v", key, err)
			}
			out[j] = f
		}
		return out, nil
	default:
		slice, err := cast.ToSliceE(i)
		if err != nil {
			return nil, fmt.Errorf("pinn: configuration variable %s: %v", key, err)
		}
		out := make([]float64, len(slice))
		for j, e := range slice {
			f, err := cast.ToFloat64E(e)
			if err != nil {
				return nil, fmt.Errorf("pinn: configuration variable %s: %v", key, err)
			}
			out[j] = f
		}
		return out, nil
	}
}
