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

package distribution

import (
	"math"

	"github.com/0xsoniclabs/suppress/config"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Cumulative is a continuous distribution on days, e.g. one of distuv's.
type Cumulative interface {
	CDF(x float64) float64
}

// FromDensity discretizes a continuous distribution onto the grid: the mass
// at τ is the probability of the cell ((τ−1)/u, τ/u] where u is the number
// of units per day. The mass beyond the horizon is dropped; the result is
// marked improper when the dropped tail exceeds the normalization tolerance.
func FromDensity(c Cumulative, grid config.Grid, opts ...Option) (*Distribution, error) {
	if err := grid.Validate(); err != nil {
		return nil, errors.Wrapf(ErrInvalidDistribution, "FromDensity: %v", err)
	}
	horizon := grid.Horizon()
	values := make([]float64, horizon+1)
	previous := 0.0
	for tau := 0; tau <= horizon; tau++ {
		f := c.CDF(grid.ToDays(float64(tau)))
		if math.IsNaN(f) {
			return nil, errors.Wrapf(ErrInvalidDistribution, "FromDensity: cumulative value at τ=%v is NaN", tau)
		}
		values[tau] = max(f-previous, 0)
		previous = max(f, previous)
	}
	options := []Option{WithHorizon(horizon)}
	if math.Abs(previous-1) > config.NormalizationTolerance {
		options = append(options, Improper())
	}
	return New(values, append(options, opts...)...)
}

// Weibull discretizes the Weibull distribution with shape k and scale λ in days.
func Weibull(shape, scale float64, grid config.Grid) (*Distribution, error) {
	if !(shape > 0 && scale > 0) {
		return nil, errors.Wrapf(ErrInvalidDistribution, "Weibull: invalid parameters (k=%v, λ=%v)", shape, scale)
	}
	return FromDensity(distuv.Weibull{K: shape, Lambda: scale}, grid)
}

// Gamma discretizes the gamma distribution with shape α and rate β in 1/days.
func Gamma(shape, rate float64, grid config.Grid) (*Distribution, error) {
	if !(shape > 0 && rate > 0) {
		return nil, errors.Wrapf(ErrInvalidDistribution, "Gamma: invalid parameters (α=%v, β=%v)", shape, rate)
	}
	return FromDensity(distuv.Gamma{Alpha: shape, Beta: rate}, grid)
}

// LogNormal discretizes the log-normal distribution of log-mean μ and log-deviation σ.
func LogNormal(mu, sigma float64, grid config.Grid) (*Distribution, error) {
	if !(sigma > 0) || math.IsNaN(mu) || math.IsInf(mu, 0) {
		return nil, errors.Wrapf(ErrInvalidDistribution, "LogNormal: invalid parameters (μ=%v, σ=%v)", mu, sigma)
	}
	return FromDensity(distuv.LogNormal{Mu: mu, Sigma: sigma}, grid)
}
