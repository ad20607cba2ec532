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
	"testing"

	"github.com/0xsoniclabs/suppress/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets_Names(t *testing.T) {
	assert.Equal(t, []string{"app-adoption", "homogeneous", "no-measures", "optimistic", "pessimistic", "symptoms-only"}, PresetNames())
}

func TestPresets_AllBuild(t *testing.T) {
	params := config.DefaultEpidemicParameters()
	grid := config.DefaultGrid()
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			s, err := NewPreset(name, params, grid)
			require.NoError(t, err)
			assert.Equal(t, 2, s.NumSeverities())
			// R0 of the literature model is normalized to one
			assert.InDelta(t, params.R0, s.BaselineR0(), config.NormalizationTolerance)
			// asymptomatic infected are never notified by symptoms
			assert.Equal(t, 0.0, s.SymptomSensitivity(0, true, 0))
			assert.Equal(t, 0.0, s.SymptomSensitivity(0, false, 0))
		})
	}
}

func TestPresets_Values(t *testing.T) {
	params := config.DefaultEpidemicParameters()
	grid := config.DefaultGrid()

	s, err := NewPreset("optimistic", params, grid)
	require.NoError(t, err)
	assert.Equal(t, 0.6, s.AppAdoption(0))
	assert.Equal(t, 0.8, s.SymptomSensitivity(1, true, 0))
	assert.Equal(t, 20, s.Delay(true).Start())
	assert.Equal(t, 40, s.Delay(false).Start())

	s, err = NewPreset("homogeneous", params, grid)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.AppAdoption(0))
	assert.Equal(t, 0.7, s.ContactSensitivity(false, 0))

	s, err = NewPreset("app-adoption", params, grid)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.AppAdoption(0))
	assert.InDelta(t, 0.3, s.AppAdoption(grid.ToUnits(15)), 1e-12)
	assert.Equal(t, 0.6, s.AppAdoption(grid.ToUnits(45)))

	s, err = NewPreset("no-measures", params, grid)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Isolation(0))
}

func TestPresets_Unknown(t *testing.T) {
	_, err := NewPreset("does-not-exist", config.DefaultEpidemicParameters(), config.DefaultGrid())
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestPresets_InvalidParameters(t *testing.T) {
	params := config.DefaultEpidemicParameters()
	params.GenerationShape = 0
	_, err := NewPreset("optimistic", params, config.DefaultGrid())
	assert.ErrorIs(t, err, ErrInvalidScenario)
}
