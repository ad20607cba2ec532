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

// Package scenario holds the frozen configuration of one suppression run:
// the severity stratification, the baseline infectiousness, the notification
// sensitivities and delays, and the app adoption over time.
package scenario

import (
	"math"

	"github.com/0xsoniclabs/suppress/config"
	"github.com/0xsoniclabs/suppress/distribution"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

var ErrInvalidScenario = errors.New("scenario: the scenario is not well-defined")

// Params lists the ingredients of a scenario. Schedules are functions of
// the absolute time in days; distributions live on the grid.
type Params struct {
	SeverityPriors []float64                    // p_g
	Baseline       []*distribution.Distribution // β⁰_g, mass R⁰_g
	SymptomOnset   *distribution.Distribution   // τ^S

	SymptomSensitivityApp   []Schedule // s^{s,app}_g
	SymptomSensitivityNoApp []Schedule // s^{s,no-app}_g
	ContactSensitivityApp   Schedule   // source and recipient use the app
	ContactSensitivityNoApp Schedule   // at least one of them does not
	Isolation               Schedule   // ξ
	AppAdoption             Schedule   // p_app

	DelayApp   *distribution.Distribution // Δ^{A→T} with app
	DelayNoApp *distribution.Distribution // Δ^{A→T} without app

	StartTime float64 // t₀ in units
	Grid      config.Grid
}

// Scenario is a validated, immutable Params value.
type Scenario struct {
	p Params
}

// New validates the parameters and freezes them into a scenario.
func New(p Params) (*Scenario, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	frozen := p
	frozen.SeverityPriors = append([]float64(nil), p.SeverityPriors...)
	frozen.Baseline = append([]*distribution.Distribution(nil), p.Baseline...)
	frozen.SymptomSensitivityApp = append([]Schedule(nil), p.SymptomSensitivityApp...)
	frozen.SymptomSensitivityNoApp = append([]Schedule(nil), p.SymptomSensitivityNoApp...)
	return &Scenario{p: frozen}, nil
}

func validate(p Params) error {
	n := len(p.SeverityPriors)
	if n == 0 {
		return errors.Wrap(ErrInvalidScenario, "no severities")
	}
	for g, prior := range p.SeverityPriors {
		if !(prior >= 0 && prior <= 1) {
			return errors.Wrapf(ErrInvalidScenario, "prior (%v) of severity %v is not in [0,1]", prior, g)
		}
	}
	if total := floats.Sum(p.SeverityPriors); math.Abs(total-1) > config.FloatTolerance {
		return errors.Wrapf(ErrInvalidScenario, "the fractions of people infected with given severity must sum to 1 (%v)", total)
	}
	lengths := map[string]int{
		"baseline infectiousness":    len(p.Baseline),
		"app symptom sensitivity":    len(p.SymptomSensitivityApp),
		"no-app symptom sensitivity": len(p.SymptomSensitivityNoApp),
	}
	for name, l := range lengths {
		if l != n {
			return errors.Wrapf(ErrInvalidScenario, "the tuples depending on severities must have the same length; %v has %v entries, expected %v", name, l, n)
		}
	}
	if err := p.Grid.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidScenario, "%v", err)
	}
	if math.IsNaN(p.StartTime) || math.IsInf(p.StartTime, 0) {
		return errors.Wrapf(ErrInvalidScenario, "start time (%v) is not finite", p.StartTime)
	}

	for g, b := range p.Baseline {
		if b == nil {
			return errors.Wrapf(ErrInvalidScenario, "missing baseline infectiousness of severity %v", g)
		}
	}
	times := map[string]*distribution.Distribution{
		"symptom onset":     p.SymptomOnset,
		"app test delay":    p.DelayApp,
		"no-app test delay": p.DelayNoApp,
	}
	for name, d := range times {
		if d == nil {
			return errors.Wrapf(ErrInvalidScenario, "missing %v distribution", name)
		}
		if d.TotalMass() > 1+config.NormalizationTolerance {
			return errors.Wrapf(ErrInvalidScenario, "%v distribution has a total mass above one (%v)", name, d.TotalMass())
		}
	}

	for g := 0; g < n; g++ {
		if err := p.SymptomSensitivityApp[g].checkRange("app symptom sensitivity", 0, 1); err != nil {
			return err
		}
		if err := p.SymptomSensitivityNoApp[g].checkRange("no-app symptom sensitivity", 0, 1); err != nil {
			return err
		}
	}
	probabilities := map[string]Schedule{
		"app contact sensitivity":    p.ContactSensitivityApp,
		"no-app contact sensitivity": p.ContactSensitivityNoApp,
		"isolation effectiveness":    p.Isolation,
		"app adoption":               p.AppAdoption,
	}
	for name, s := range probabilities {
		if err := s.checkRange(name, 0, 1); err != nil {
			return err
		}
	}
	return nil
}

// HomogeneousParams describes a population without app stratification.
type HomogeneousParams struct {
	SeverityPriors     []float64
	Baseline           []*distribution.Distribution
	SymptomOnset       *distribution.Distribution
	SymptomSensitivity []Schedule
	ContactSensitivity Schedule
	Isolation          Schedule
	Delay              *distribution.Distribution
	StartTime          float64
	Grid               config.Grid
}

// NewHomogeneous builds a two-component scenario in which nobody uses the
// app: the adoption and every app sensitivity are pinned to zero.
func NewHomogeneous(p HomogeneousParams) (*Scenario, error) {
	noApp := make([]Schedule, len(p.SeverityPriors))
	for g := range noApp {
		noApp[g] = Constant(0)
	}
	immediate, err := distribution.PointMass(0, distribution.WithHorizon(p.Grid.Horizon()))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidScenario, "%v", err)
	}
	return New(Params{
		SeverityPriors:          p.SeverityPriors,
		Baseline:                p.Baseline,
		SymptomOnset:            p.SymptomOnset,
		SymptomSensitivityApp:   noApp,
		SymptomSensitivityNoApp: p.SymptomSensitivity,
		ContactSensitivityApp:   Constant(0),
		ContactSensitivityNoApp: p.ContactSensitivity,
		Isolation:               p.Isolation,
		AppAdoption:             Constant(0),
		DelayApp:                immediate,
		DelayNoApp:              p.Delay,
		StartTime:               p.StartTime,
		Grid:                    p.Grid,
	})
}

func (s *Scenario) NumSeverities() int {
	return len(s.p.SeverityPriors)
}

func (s *Scenario) SeverityPriors() []float64 {
	return append([]float64(nil), s.p.SeverityPriors...)
}

func (s *Scenario) Baseline(g int) *distribution.Distribution {
	return s.p.Baseline[g]
}

// BaselineR0 returns Σ p_g·R⁰_g.
func (s *Scenario) BaselineR0() float64 {
	r := 0.0
	for g, p := range s.p.SeverityPriors {
		r += p * s.p.Baseline[g].TotalMass()
	}
	return r
}

func (s *Scenario) SymptomOnset() *distribution.Distribution {
	return s.p.SymptomOnset
}

// The accessors below take the absolute time t in grid units.

func (s *Scenario) SymptomSensitivity(g int, app bool, t float64) float64 {
	if app {
		return s.p.SymptomSensitivityApp[g].At(s.p.Grid.ToDays(t))
	}
	return s.p.SymptomSensitivityNoApp[g].At(s.p.Grid.ToDays(t))
}

func (s *Scenario) ContactSensitivity(app bool, t float64) float64 {
	if app {
		return s.p.ContactSensitivityApp.At(s.p.Grid.ToDays(t))
	}
	return s.p.ContactSensitivityNoApp.At(s.p.Grid.ToDays(t))
}

func (s *Scenario) Isolation(t float64) float64 {
	return s.p.Isolation.At(s.p.Grid.ToDays(t))
}

func (s *Scenario) AppAdoption(t float64) float64 {
	return s.p.AppAdoption.At(s.p.Grid.ToDays(t))
}

func (s *Scenario) Delay(app bool) *distribution.Distribution {
	if app {
		return s.p.DelayApp
	}
	return s.p.DelayNoApp
}

func (s *Scenario) StartTime() float64 {
	return s.p.StartTime
}

func (s *Scenario) Grid() config.Grid {
	return s.p.Grid
}

// Params returns a copy of the parameters the scenario was built from.
func (s *Scenario) Params() Params {
	p := s.p
	p.SeverityPriors = s.SeverityPriors()
	p.Baseline = append([]*distribution.Distribution(nil), s.p.Baseline...)
	p.SymptomSensitivityApp = append([]Schedule(nil), s.p.SymptomSensitivityApp...)
	p.SymptomSensitivityNoApp = append([]Schedule(nil), s.p.SymptomSensitivityNoApp...)
	return p
}
