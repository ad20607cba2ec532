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

// Numerical tolerances shared by the distribution algebra and the engine.
const (
	// NormalizationTolerance bounds |total mass - 1| of a proper distribution.
	NormalizationTolerance = 1e-3
	// FloatTolerance is used when comparing probabilities and rates.
	FloatTolerance = 1e-10
	// DegenerateMass is the smallest total mass that can be normalized.
	DegenerateMass = 1e-12
)

// Run defaults.
const (
	DefaultNuStart             = 1000.0
	DefaultMaxGenerations      = 20
	DefaultExtinctionThreshold = 0.5
	DefaultUnitsPerDay         = 10
	DefaultHorizonDays         = 25
)
