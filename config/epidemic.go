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

package config

import (
	"math"

	"github.com/cockroachdb/errors"
)

var ErrInvalidParameters = errors.New("config: invalid parameters")

// Grid defines the integer time axis every distribution lives on.
type Grid struct {
	UnitsPerDay int // number of τ units in one day
	HorizonDays int // support of every distribution ends here
}

func DefaultGrid() Grid {
	return Grid{UnitsPerDay: DefaultUnitsPerDay, HorizonDays: DefaultHorizonDays}
}

// Horizon returns τ_max in units.
func (g Grid) Horizon() int {
	return g.UnitsPerDay * g.HorizonDays
}

func (g Grid) ToUnits(days float64) float64 {
	return days * float64(g.UnitsPerDay)
}

func (g Grid) ToDays(units float64) float64 {
	return units / float64(g.UnitsPerDay)
}

func (g Grid) Validate() error {
	if g.UnitsPerDay <= 0 {
		return errors.Wrapf(ErrInvalidParameters, "units per day must be positive (%v)", g.UnitsPerDay)
	}
	if g.HorizonDays <= 0 {
		return errors.Wrapf(ErrInvalidParameters, "horizon must be positive (%v days)", g.HorizonDays)
	}
	return nil
}

// EpidemicParameters holds the literature constants of the asymptomatic /
// symptomatic two-severity model. Values are immutable once a scenario is built.
type EpidemicParameters struct {
	R0 float64

	// Weibull generation time, in days
	GenerationShape float64
	GenerationScale float64

	// Gamma generation time, alpha and rate beta in 1/days
	GammaShape float64
	GammaRate  float64

	// log-normal incubation period, parameters of log(days)
	IncubationMu    float64
	IncubationSigma float64

	SymptomaticFraction     float64 // p_sym
	SymptomaticContribution float64 // share of R0 due to symptomatic infected
}

// DefaultEpidemicParameters returns the COVID-19 values with R0 normalized to 1.
// The Weibull parameters give a mean generation time of 5.00 days and variance 3.61.
func DefaultEpidemicParameters() EpidemicParameters {
	return EpidemicParameters{
		R0:                      1,
		GenerationShape:         2.855,
		GenerationScale:         5.611,
		GammaShape:              4.865916955,
		GammaRate:               0.6487889273,
		IncubationMu:            1.644,
		IncubationSigma:         0.363,
		SymptomaticFraction:     0.6,
		SymptomaticContribution: 0.95,
	}
}

func (p EpidemicParameters) Validate() error {
	positive := map[string]float64{
		"generation shape": p.GenerationShape,
		"generation scale": p.GenerationScale,
		"gamma shape":      p.GammaShape,
		"gamma rate":       p.GammaRate,
		"incubation sigma": p.IncubationSigma,
	}
	for name, v := range positive {
		if !(v > 0) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalidParameters, "%v must be positive (%v)", name, v)
		}
	}
	if !(p.R0 >= 0) || math.IsInf(p.R0, 0) {
		return errors.Wrapf(ErrInvalidParameters, "R0 must be non-negative (%v)", p.R0)
	}
	if math.IsNaN(p.IncubationMu) || math.IsInf(p.IncubationMu, 0) {
		return errors.Wrapf(ErrInvalidParameters, "incubation mu is not finite (%v)", p.IncubationMu)
	}
	if !(p.SymptomaticFraction >= 0 && p.SymptomaticFraction <= 1) {
		return errors.Wrapf(ErrInvalidParameters, "symptomatic fraction (%v) is not in [0,1]", p.SymptomaticFraction)
	}
	if !(p.SymptomaticContribution >= 0 && p.SymptomaticContribution <= 1) {
		return errors.Wrapf(ErrInvalidParameters, "symptomatic contribution (%v) is not in [0,1]", p.SymptomaticContribution)
	}
	return nil
}

// SeverityPriors returns the probabilities of the asymptomatic and the
// symptomatic severity, in this order.
func (p EpidemicParameters) SeverityPriors() []float64 {
	return []float64{1 - p.SymptomaticFraction, p.SymptomaticFraction}
}

// SeverityR0 splits R0 into the per-severity components so that
// Σ p_g·R0_g == R0. An empty severity gets a zero component.
func (p EpidemicParameters) SeverityR0() []float64 {
	pAsy := 1 - p.SymptomaticFraction
	r0Asy, r0Sym := 0.0, 0.0
	if pAsy > 0 {
		r0Asy = (1 - p.SymptomaticContribution) / pAsy * p.R0
	}
	if p.SymptomaticFraction > 0 {
		r0Sym = p.SymptomaticContribution / p.SymptomaticFraction * p.R0
	}
	return []float64{r0Asy, r0Sym}
}
