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
	"math"
	"sort"

	"github.com/0xsoniclabs/suppress/config"
	"github.com/0xsoniclabs/suppress/distribution"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/maps"
)

var ErrUnknownPreset = errors.New("scenario: unknown preset")

// Generation time models of the baseline infectiousness.
const (
	WeibullGenerationTime = "weibull"
	GammaGenerationTime   = "gamma"
)

type presetBuilder func(lit literature) (*Scenario, error)

var presets = map[string]presetBuilder{
	// no isolation measure at all: R stays at R0
	"no-measures": func(lit literature) (*Scenario, error) {
		return lit.twoComponents(twoComponentValues{delayAppDays: 2, delayNoAppDays: 2})
	},
	// only symptomatic infected isolate, no contact tracing
	"symptoms-only": func(lit literature) (*Scenario, error) {
		return lit.homogeneous(0.5, 0, 0.9, 2)
	},
	// no app, high sensitivities
	"homogeneous": func(lit literature) (*Scenario, error) {
		return lit.homogeneous(0.5, 0.7, 0.9, 2)
	},
	"optimistic": func(lit literature) (*Scenario, error) {
		return lit.twoComponents(twoComponentValues{
			ssApp: 0.8, ssNoApp: 0.2, scApp: 0.8, scNoApp: 0.2, xi: 0.9,
			appAdoption: Constant(0.6), delayAppDays: 2, delayNoAppDays: 4,
		})
	},
	"pessimistic": func(lit literature) (*Scenario, error) {
		return lit.twoComponents(twoComponentValues{
			ssApp: 0.2, ssNoApp: 0.2, scApp: 0.5, scNoApp: 0.2, xi: 0.8,
			appAdoption: Constant(0.6), delayAppDays: 2, delayNoAppDays: 4,
		})
	},
	// the optimistic scenario with the app adopted over the first 30 days
	"app-adoption": func(lit literature) (*Scenario, error) {
		return lit.twoComponents(twoComponentValues{
			ssApp: 0.8, ssNoApp: 0.2, scApp: 0.8, scNoApp: 0.2, xi: 0.9,
			appAdoption: Ramp(0, 30, 0.6), delayAppDays: 2, delayNoAppDays: 4,
		})
	},
}

// PresetNames returns the names of the built-in scenarios in alphabetical order.
func PresetNames() []string {
	names := maps.Keys(presets)
	sort.Strings(names)
	return names
}

// NewPreset builds the named built-in scenario from the literature parameters.
func NewPreset(name string, params config.EpidemicParameters, grid config.Grid) (*Scenario, error) {
	build, ok := presets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPreset, "%q (available: %v)", name, PresetNames())
	}
	lit, err := newLiterature(params, grid, WeibullGenerationTime)
	if err != nil {
		return nil, err
	}
	return build(lit)
}

// literature holds the ingredients of the asymptomatic / symptomatic model.
type literature struct {
	priors   []float64
	rho0     *distribution.Distribution // generation time
	baseline []*distribution.Distribution
	onset    *distribution.Distribution
	grid     config.Grid
}

func newLiterature(params config.EpidemicParameters, grid config.Grid, generationTime string) (literature, error) {
	if err := params.Validate(); err != nil {
		return literature{}, errors.Wrapf(ErrInvalidScenario, "%v", err)
	}
	var (
		rho0 *distribution.Distribution
		err  error
	)
	switch generationTime {
	case WeibullGenerationTime, "":
		rho0, err = distribution.Weibull(params.GenerationShape, params.GenerationScale, grid)
	case GammaGenerationTime:
		rho0, err = distribution.Gamma(params.GammaShape, params.GammaRate, grid)
	default:
		return literature{}, errors.Wrapf(ErrInvalidScenario, "unknown generation time model %q", generationTime)
	}
	if err != nil {
		return literature{}, errors.Wrapf(ErrInvalidScenario, "generation time: %v", err)
	}
	onset, err := distribution.LogNormal(params.IncubationMu, params.IncubationSigma, grid)
	if err != nil {
		return literature{}, errors.Wrapf(ErrInvalidScenario, "symptom onset: %v", err)
	}

	r0 := params.SeverityR0()
	baseline := make([]*distribution.Distribution, len(r0))
	for g := range r0 {
		if baseline[g], err = rho0.Scale(r0[g]); err != nil {
			return literature{}, errors.Wrapf(ErrInvalidScenario, "baseline of severity %v: %v", g, err)
		}
	}
	return literature{
		priors:   params.SeverityPriors(),
		rho0:     rho0,
		baseline: baseline,
		onset:    onset,
		grid:     grid,
	}, nil
}

// delay returns the point mass at the given number of days.
func (l literature) delay(days float64) (*distribution.Distribution, error) {
	d, err := distribution.PointMass(int(math.Round(l.grid.ToUnits(days))), distribution.WithHorizon(l.grid.Horizon()))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidScenario, "delay of %v days: %v", days, err)
	}
	return d, nil
}

type twoComponentValues struct {
	ssApp, ssNoApp float64 // symptomatic severity only
	scApp, scNoApp float64
	xi             float64
	appAdoption    Schedule
	delayAppDays   float64
	delayNoAppDays float64
}

func (l literature) twoComponents(v twoComponentValues) (*Scenario, error) {
	delayApp, err := l.delay(v.delayAppDays)
	if err != nil {
		return nil, err
	}
	delayNoApp, err := l.delay(v.delayNoAppDays)
	if err != nil {
		return nil, err
	}
	return New(Params{
		SeverityPriors:          l.priors,
		Baseline:                l.baseline,
		SymptomOnset:            l.onset,
		SymptomSensitivityApp:   []Schedule{Constant(0), Constant(v.ssApp)},
		SymptomSensitivityNoApp: []Schedule{Constant(0), Constant(v.ssNoApp)},
		ContactSensitivityApp:   Constant(v.scApp),
		ContactSensitivityNoApp: Constant(v.scNoApp),
		Isolation:               Constant(v.xi),
		AppAdoption:             v.appAdoption,
		DelayApp:                delayApp,
		DelayNoApp:              delayNoApp,
		Grid:                    l.grid,
	})
}

func (l literature) homogeneous(ss, sc, xi, delayDays float64) (*Scenario, error) {
	delay, err := l.delay(delayDays)
	if err != nil {
		return nil, err
	}
	return NewHomogeneous(HomogeneousParams{
		SeverityPriors:     l.priors,
		Baseline:           l.baseline,
		SymptomOnset:       l.onset,
		SymptomSensitivity: []Schedule{Constant(0), Constant(ss)},
		ContactSensitivity: Constant(sc),
		Isolation:          Constant(xi),
		Delay:              delay,
		Grid:               l.grid,
	})
}
