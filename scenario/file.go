// Copyright 2025 Sonic Labs
// This file is part of Suppress, an epidemic suppression model
//
// Suppress is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Suppress is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Suppress. If not, see <http://www.gnu.org/licenses/>.

package scenario

import (
	"bytes"
	"math"
	"os"

	"github.com/0xsoniclabs/suppress/config"
	"github.com/0xsoniclabs/suppress/distribution"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// File is the YAML representation of a scenario. Times are in days unless
// stated otherwise; baseline infectiousness defaults to the literature
// generation time scaled by the severity's R0.
type File struct {
	Homogeneous    bool           `yaml:"homogeneous"`
	GenerationTime string         `yaml:"generation_time"`
	StartDay       float64        `yaml:"start_day"`
	Severities     []SeverityFile `yaml:"severities"`

	ContactSensitivityApp   Schedule `yaml:"contact_sensitivity_app"`
	ContactSensitivityNoApp Schedule `yaml:"contact_sensitivity_noapp"`
	Isolation               Schedule `yaml:"isolation"`
	AppAdoption             Schedule `yaml:"app_adoption"`

	DelayApp   Table `yaml:"delay_app"`
	DelayNoApp Table `yaml:"delay_noapp"`
}

type SeverityFile struct {
	Prior    float64  `yaml:"prior"`
	R0       *float64 `yaml:"r0"`
	Baseline *Table   `yaml:"baseline"`

	SymptomSensitivityApp   Schedule `yaml:"symptom_sensitivity_app"`
	SymptomSensitivityNoApp Schedule `yaml:"symptom_sensitivity_noapp"`
}

// Table is either a point mass after Days or a mass table on grid units
// starting at Start.
type Table struct {
	Days  float64   `yaml:"days"`
	Start int       `yaml:"start"`
	PMF   []float64 `yaml:"pmf"`
}

func (t Table) distribution(grid config.Grid, improper bool) (*distribution.Distribution, error) {
	if len(t.PMF) == 0 {
		return distribution.PointMass(int(math.Round(grid.ToUnits(t.Days))), distribution.WithHorizon(grid.Horizon()))
	}
	opts := []distribution.Option{distribution.StartingAt(t.Start), distribution.WithHorizon(grid.Horizon())}
	if improper {
		opts = append(opts, distribution.Improper())
	}
	return distribution.New(t.PMF, opts...)
}

// ReadFile decodes a YAML scenario file and builds the scenario.
func ReadFile(path string, params config.EpidemicParameters, grid config.Grid) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read scenario %v", path)
	}
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "cannot decode scenario %v", path), ErrInvalidScenario)
	}
	return f.Build(params, grid)
}

// Build turns the file into a validated scenario.
func (f File) Build(params config.EpidemicParameters, grid config.Grid) (*Scenario, error) {
	if len(f.Severities) == 0 {
		return nil, errors.Wrap(ErrInvalidScenario, "no severities")
	}
	lit, err := newLiterature(params, grid, f.GenerationTime)
	if err != nil {
		return nil, err
	}
	rho0 := lit.rho0

	n := len(f.Severities)
	priors := make([]float64, n)
	baseline := make([]*distribution.Distribution, n)
	ssApp := make([]Schedule, n)
	ssNoApp := make([]Schedule, n)
	for g, s := range f.Severities {
		priors[g] = s.Prior
		ssApp[g] = s.SymptomSensitivityApp
		ssNoApp[g] = s.SymptomSensitivityNoApp
		switch {
		case s.Baseline != nil && s.R0 != nil:
			return nil, errors.Wrapf(ErrInvalidScenario, "severity %v sets both r0 and baseline", g)
		case s.Baseline != nil:
			baseline[g], err = s.Baseline.distribution(grid, true)
		case s.R0 != nil:
			baseline[g], err = rho0.Scale(*s.R0)
		default:
			baseline[g], err = rho0.Scale(params.R0)
		}
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidScenario, "baseline of severity %v: %v", g, err)
		}
	}

	delayNoApp, err := f.DelayNoApp.distribution(grid, false)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidScenario, "no-app delay: %v", err)
	}
	startTime := grid.ToUnits(f.StartDay)
	if !f.Isolation.isSet() {
		return nil, errors.Wrap(ErrInvalidScenario, "isolation is missing")
	}

	if f.Homogeneous {
		for g := 0; g < n; g++ {
			if !ssApp[g].IsZero() {
				return nil, errors.Wrapf(ErrInvalidScenario, "homogeneous scenario sets an app symptom sensitivity for severity %v", g)
			}
		}
		if !f.ContactSensitivityApp.IsZero() || !f.AppAdoption.IsZero() {
			return nil, errors.Wrap(ErrInvalidScenario, "homogeneous scenario sets app parameters")
		}
		return NewHomogeneous(HomogeneousParams{
			SeverityPriors:     priors,
			Baseline:           baseline,
			SymptomOnset:       lit.onset,
			SymptomSensitivity: ssNoApp,
			ContactSensitivity: f.ContactSensitivityNoApp,
			Isolation:          f.Isolation,
			Delay:              delayNoApp,
			StartTime:          startTime,
			Grid:               grid,
		})
	}

	if !f.AppAdoption.isSet() {
		return nil, errors.Wrap(ErrInvalidScenario, "app adoption is missing")
	}
	delayApp, err := f.DelayApp.distribution(grid, false)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidScenario, "app delay: %v", err)
	}
	return New(Params{
		SeverityPriors:          priors,
		Baseline:                baseline,
		SymptomOnset:            lit.onset,
		SymptomSensitivityApp:   ssApp,
		SymptomSensitivityNoApp: ssNoApp,
		ContactSensitivityApp:   f.ContactSensitivityApp,
		ContactSensitivityNoApp: f.ContactSensitivityNoApp,
		Isolation:               f.Isolation,
		AppAdoption:             f.AppAdoption,
		DelayApp:                delayApp,
		DelayNoApp:              delayNoApp,
		StartTime:               startTime,
		Grid:                    grid,
	})
}
