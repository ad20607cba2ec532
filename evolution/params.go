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
	"math"

	"github.com/0xsoniclabs/suppress/config"
	"github.com/0xsoniclabs/suppress/distribution"
	"github.com/cockroachdb/errors"
)

var ErrInvalidRunParams = errors.New("evolution: invalid run parameters")

// RunParams bounds a run of the engine.
type RunParams struct {
	NuStart             float64 // infected per unit of time at t₀
	MaxGenerations      int
	TMax                float64 // units after t₀; 0 disables the limit
	ExtinctionThreshold float64

	// PreHistory is the infectiousness of each severity before t₀. It
	// defaults to the baseline infectiousness.
	PreHistory []*distribution.Distribution
}

func DefaultRunParams() RunParams {
	return RunParams{
		NuStart:             config.DefaultNuStart,
		MaxGenerations:      config.DefaultMaxGenerations,
		ExtinctionThreshold: config.DefaultExtinctionThreshold,
	}
}

func (p RunParams) Validate() error {
	if !(p.NuStart > 0) || math.IsInf(p.NuStart, 0) {
		return errors.Wrapf(ErrInvalidRunParams, "initial number of infected (%v) must be positive", p.NuStart)
	}
	if p.MaxGenerations < 1 {
		return errors.Wrapf(ErrInvalidRunParams, "number of generations (%v) must be positive", p.MaxGenerations)
	}
	if !(p.TMax >= 0) {
		return errors.Wrapf(ErrInvalidRunParams, "time limit (%v) must not be negative", p.TMax)
	}
	if !(p.ExtinctionThreshold >= 0) {
		return errors.Wrapf(ErrInvalidRunParams, "extinction threshold (%v) must not be negative", p.ExtinctionThreshold)
	}
	for g, b := range p.PreHistory {
		if b == nil {
			return errors.Wrapf(ErrInvalidRunParams, "missing pre-history of severity %v", g)
		}
	}
	return nil
}
