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

package evolution

import (
	"github.com/0xsoniclabs/suppress/config"
	"github.com/0xsoniclabs/suppress/distribution"
)

// populations integrates the discrete renewal equation
//
//	ν(T) = Σ_{t'<T} ν(t')·β_{t'}(T−t')
//
// on the calendar grid, T counted in units since t₀. Every ν is an incidence
// per unit of time. A cohort infected at t' spreads with the aggregate
// infectiousness of the generation in force at t'. The baseline incidence ν⁰
// uses the unsuppressed infectiousness throughout.
//
// Before t₀ the incidence is a constant rate spreading with the pre-history
// infectiousness b. The rate is chosen such that ν(0) = ν⁰(0) = ν_start.
type populations struct {
	nuStart    float64
	preHistory *distribution.Distribution // b, aggregated over severities
	baseline   *distribution.Distribution // Σ p_g·β⁰_g

	profiles []*distribution.Distribution // infectiousness of the cohort at t'
	nu       []float64
	nu0      []float64
}

func newPopulations(nuStart float64, preHistory, baseline *distribution.Distribution) *populations {
	return &populations{
		nuStart:    nuStart,
		preHistory: preHistory,
		baseline:   baseline,
	}
}

// advance extends the incidence up to and including T. Cohorts not yet
// assigned to a generation spread with profile. It returns ν(T) and ν⁰(T).
func (p *populations) advance(T int, profile *distribution.Distribution) (float64, float64) {
	for len(p.profiles) < T {
		p.profiles = append(p.profiles, profile)
	}
	for t := len(p.nu); t <= T; t++ {
		p.nu = append(p.nu, p.at(t, func(c int) *distribution.Distribution { return p.profiles[c] }, p.nu))
		p.nu0 = append(p.nu0, p.at(t, func(int) *distribution.Distribution { return p.baseline }, p.nu0))
	}
	return p.nu[T], p.nu0[T]
}

func (p *populations) at(t int, profile func(int) *distribution.Distribution, nu []float64) float64 {
	res := p.seed(t)
	for c := max(t-p.baseline.Horizon(), 0); c < t; c++ {
		if nu[c] == 0 {
			continue
		}
		res += nu[c] * profile(c).PMF(t-c)
	}
	return res
}

// seed is the contribution at t ≥ 0 of the infected before t₀. A pre-history
// without infectiousness after τ = 0 leaves a single cohort ν_start at t₀.
func (p *populations) seed(t int) float64 {
	if t == 0 {
		return p.nuStart
	}
	tail := func(t int) float64 {
		return p.preHistory.TotalMass() - p.preHistory.CDF(t)
	}
	if tail(0) < config.DegenerateMass {
		return 0
	}
	return p.nuStart * tail(t) / tail(0)
}

func (p *populations) incidence() ([]float64, []float64) {
	return append([]float64(nil), p.nu...), append([]float64(nil), p.nu0...)
}
