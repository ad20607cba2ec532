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
	"context"
	"math"
	"testing"

	"github.com/0xsoniclabs/suppress/config"
	"github.com/0xsoniclabs/suppress/distribution"
	"github.com/0xsoniclabs/suppress/logger"
	"github.com/0xsoniclabs/suppress/scenario"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func quietLogger(t *testing.T) logger.Logger {
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Noticef(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().IsEnabledFor(gomock.Any()).Return(false).AnyTimes()
	return log
}

func preset(t *testing.T, name string) *scenario.Scenario {
	t.Helper()
	s, err := scenario.NewPreset(name, config.DefaultEpidemicParameters(), config.DefaultGrid())
	require.NoError(t, err)
	return s
}

func pointMass(t *testing.T, tau int) *distribution.Distribution {
	t.Helper()
	d, err := distribution.PointMass(tau)
	require.NoError(t, err)
	return d
}

// singleSeverity returns a scenario with one severity, a Weibull generation
// time of total mass r0 and the given measures.
func singleSeverity(t *testing.T, r0, ss, sc, xi, pApp float64) *scenario.Scenario {
	t.Helper()
	params := config.DefaultEpidemicParameters()
	grid := config.DefaultGrid()
	rho, err := distribution.Weibull(params.GenerationShape, params.GenerationScale, grid)
	require.NoError(t, err)
	baseline, err := rho.Scale(r0)
	require.NoError(t, err)
	onset, err := distribution.LogNormal(params.IncubationMu, params.IncubationSigma, grid)
	require.NoError(t, err)
	s, err := scenario.New(scenario.Params{
		SeverityPriors:          []float64{1},
		Baseline:                []*distribution.Distribution{baseline},
		SymptomOnset:            onset,
		SymptomSensitivityApp:   []scenario.Schedule{scenario.Constant(ss)},
		SymptomSensitivityNoApp: []scenario.Schedule{scenario.Constant(ss)},
		ContactSensitivityApp:   scenario.Constant(sc),
		ContactSensitivityNoApp: scenario.Constant(sc),
		Isolation:               scenario.Constant(xi),
		AppAdoption:             scenario.Constant(pApp),
		DelayApp:                pointMass(t, 20),
		DelayNoApp:              pointMass(t, 20),
		Grid:                    grid,
	})
	require.NoError(t, err)
	return s
}

func TestRun_NoMeasuresKeepsReproductionNumber(t *testing.T) {
	s := preset(t, "no-measures")
	params := DefaultRunParams()
	params.MaxGenerations = 6
	res, err := Run(context.Background(), s, params, quietLogger(t))
	require.NoError(t, err)
	require.Len(t, res.History, 6)
	assert.Equal(t, MaxGenerations, res.Termination)

	for _, step := range res.History {
		assert.InDelta(t, s.BaselineR0(), step.R, config.FloatTolerance)
		assert.InDelta(t, 0, step.Effectiveness, config.FloatTolerance)
		assert.Equal(t, 0.0, step.FTInfinity)
		assert.InDelta(t, step.InfectedBaseline, step.Infected, 1e-9*step.InfectedBaseline)
	}
}

func TestRun_SingleSeverityWithoutMeasures(t *testing.T) {
	s := singleSeverity(t, 1, 0, 0, 0, 0.6)
	params := DefaultRunParams()
	params.MaxGenerations = 4
	res, err := Run(context.Background(), s, params, quietLogger(t))
	require.NoError(t, err)
	require.Len(t, res.History, 4)

	for i, step := range res.History {
		assert.Equal(t, i, step.Generation)
		assert.InDelta(t, 1, step.R, config.NormalizationTolerance)
		assert.Equal(t, 0.0, step.FTInfinity)
		assert.InDelta(t, 0.6, step.SourceAppProbability, config.FloatTolerance)
		require.Len(t, step.SourceSeverityProbabilities, 1)
		assert.InDelta(t, 1, step.SourceSeverityProbabilities[0], config.FloatTolerance)
	}

	// the time advances by the mean generation time
	mean, err := s.Baseline(0).Mean()
	require.NoError(t, err)
	for i := 1; i < len(res.History); i++ {
		assert.InDelta(t, res.History[i-1].Time+mean, res.History[i].Time, 1e-9)
	}
}

func TestRun_CertainImmediateIsolationExtinguishes(t *testing.T) {
	s, err := scenario.New(scenario.Params{
		SeverityPriors:          []float64{1},
		Baseline:                []*distribution.Distribution{singleSeverity(t, 2, 0, 0, 0, 0).Baseline(0)},
		SymptomOnset:            pointMass(t, 0),
		SymptomSensitivityApp:   []scenario.Schedule{scenario.Constant(1)},
		SymptomSensitivityNoApp: []scenario.Schedule{scenario.Constant(1)},
		ContactSensitivityApp:   scenario.Constant(1),
		ContactSensitivityNoApp: scenario.Constant(1),
		Isolation:               scenario.Constant(1),
		AppAdoption:             scenario.Constant(0.5),
		DelayApp:                pointMass(t, 0),
		DelayNoApp:              pointMass(t, 0),
		Grid:                    config.DefaultGrid(),
	})
	require.NoError(t, err)

	res, err := Run(context.Background(), s, DefaultRunParams(), quietLogger(t))
	require.NoError(t, err)
	require.Len(t, res.History, 1)
	assert.Equal(t, Extinguished, res.Termination)
	step := res.History[0]
	assert.Equal(t, 0.0, step.R)
	assert.Equal(t, 0.0, step.GenerationTime)
	assert.Equal(t, 1.0, step.Effectiveness)
	assert.InDelta(t, 1, step.FTInfinity, config.FloatTolerance)
}

func TestRun_SuppressionReducesInfections(t *testing.T) {
	s := preset(t, "optimistic")
	params := DefaultRunParams()
	params.NuStart = 1e6
	params.MaxGenerations = 5
	res, err := Run(context.Background(), s, params, quietLogger(t))
	require.NoError(t, err)
	require.Len(t, res.History, 5)

	for i, step := range res.History {
		assert.Less(t, step.R, s.BaselineR0())
		assert.Greater(t, step.Effectiveness, 0.0)
		assert.LessOrEqual(t, step.Infected, step.InfectedBaseline+1e-6)
		assert.Len(t, step.Strata, 2*s.NumSeverities())
		if i > 0 {
			assert.Greater(t, step.Time, res.History[i-1].Time)
			// contact tracing adds to the symptom-driven notifications
			assert.Greater(t, step.FAInfinity, step.FAsInfinity)
		} else {
			assert.InDelta(t, step.FAsInfinity, step.FAInfinity, config.FloatTolerance)
		}
	}
	last := res.History[len(res.History)-1]
	assert.Less(t, last.Infected, last.InfectedBaseline)
}

func TestRun_AggregatesAreConsistentWithStrata(t *testing.T) {
	s := preset(t, "pessimistic")
	params := DefaultRunParams()
	params.MaxGenerations = 3
	res, err := Run(context.Background(), s, params, quietLogger(t))
	require.NoError(t, err)

	for _, step := range res.History {
		r, weights, infected := 0.0, 0.0, 0.0
		for _, stratum := range step.Strata {
			r += stratum.Weight * stratum.R
			weights += stratum.Weight
			infected += stratum.Infected
			assert.Equal(t, stratum, step.Stratum(stratum.Severity, stratum.App))
		}
		assert.InDelta(t, 1, weights, config.FloatTolerance)
		assert.InDelta(t, step.R, r, config.FloatTolerance)
		assert.InDelta(t, step.R, step.Infectiousness.TotalMass(), config.FloatTolerance)
		assert.InDelta(t, step.Infected, infected, 1e-9*step.Infected)

		sum := 0.0
		for _, p := range step.SourceSeverityProbabilities {
			sum += p
		}
		assert.InDelta(t, 1, sum, config.FloatTolerance)
		assert.InDelta(t, step.AppProbability*step.RApp/step.R, step.SourceAppProbability, config.FloatTolerance)
		// app users are isolated more often
		assert.Less(t, step.RApp, step.RNoApp)
		assert.Less(t, step.SourceAppProbability, step.AppProbability)
	}
}

func TestRun_BaselinePreHistoryKeepsSteadyIncidence(t *testing.T) {
	s := preset(t, "no-measures")
	params := DefaultRunParams()
	params.MaxGenerations = 4
	res, err := Run(context.Background(), s, params, quietLogger(t))
	require.NoError(t, err)
	require.Len(t, res.History, 4)
	for _, step := range res.History {
		assert.InDelta(t, params.NuStart, step.Infected, 1)
		assert.InDelta(t, params.NuStart, step.InfectedBaseline, 1)
	}
	for _, nu := range res.Incidence {
		assert.InDelta(t, params.NuStart, nu, 1)
	}
}

func TestRun_UnsuppressedEpidemicGrows(t *testing.T) {
	s := singleSeverity(t, 2, 0, 0, 0, 0)
	params := DefaultRunParams()
	params.NuStart = 1e6
	params.MaxGenerations = 6
	res, err := Run(context.Background(), s, params, quietLogger(t))
	require.NoError(t, err)
	require.Len(t, res.History, 6)
	assert.Equal(t, MaxGenerations, res.Termination)

	assert.Equal(t, params.NuStart, res.History[0].Infected)
	for i := 1; i < len(res.History); i++ {
		assert.Greater(t, res.History[i].Infected, res.History[i-1].Infected, "generation %d", i)
	}
}

func TestRun_CriticalEpidemicWithFewInfectedPersists(t *testing.T) {
	s := singleSeverity(t, 1, 0, 0, 0, 0)
	params := DefaultRunParams()
	params.NuStart = 1
	params.MaxGenerations = 6
	res, err := Run(context.Background(), s, params, quietLogger(t))
	require.NoError(t, err)
	require.Len(t, res.History, 6)
	assert.Equal(t, MaxGenerations, res.Termination)
	for _, step := range res.History {
		assert.InDelta(t, 1, step.Infected, 1e-2)
	}
}

func TestRun_PreHistorySeedsNegativeTimes(t *testing.T) {
	s := singleSeverity(t, 1, 0, 0, 0, 0)
	params := DefaultRunParams()
	params.MaxGenerations = 2
	steady, err := Run(context.Background(), s, params, quietLogger(t))
	require.NoError(t, err)

	// everybody infected before t₀ infects once, ten days after infection
	params.PreHistory = []*distribution.Distribution{pointMass(t, 100)}
	res, err := Run(context.Background(), s, params, quietLogger(t))
	require.NoError(t, err)
	require.Len(t, res.History, 2)
	require.Len(t, steady.History, 2)

	assert.Equal(t, params.NuStart, res.History[0].Infected)
	assert.Equal(t, steady.History[0].Infected, res.History[0].Infected)
	// ν(t) = ν_start + Σ ν(t')·β(t−t') for t below ten days
	assert.Greater(t, res.History[1].Infected, 1.3*params.NuStart)
	assert.InDelta(t, params.NuStart, steady.History[1].Infected, 1)
	// the pre-history seeds the baseline population alike
	assert.InDelta(t, res.History[1].InfectedBaseline, res.History[1].Infected, 1e-9*res.History[1].Infected)
	// the measures do not depend on the pre-history
	assert.Equal(t, steady.History[1].Time, res.History[1].Time)
}

func TestRun_RejectsPreHistoryOfOtherSeverities(t *testing.T) {
	params := DefaultRunParams()
	params.PreHistory = []*distribution.Distribution{pointMass(t, 10)}
	_, err := Run(context.Background(), preset(t, "no-measures"), params, quietLogger(t))
	assert.ErrorIs(t, err, ErrInvalidRunParams)
}

func TestRun_SeverityWithoutPriorContributesNothing(t *testing.T) {
	grid := config.DefaultGrid()
	params := config.DefaultEpidemicParameters()
	onset, err := distribution.LogNormal(params.IncubationMu, params.IncubationSigma, grid)
	require.NoError(t, err)
	s, err := scenario.New(scenario.Params{
		SeverityPriors:          []float64{1, 0},
		Baseline:                []*distribution.Distribution{singleSeverity(t, 1.5, 0, 0, 0, 0).Baseline(0), distribution.Zero()},
		SymptomOnset:            onset,
		SymptomSensitivityApp:   []scenario.Schedule{scenario.Constant(0.5), scenario.Constant(0.5)},
		SymptomSensitivityNoApp: []scenario.Schedule{scenario.Constant(0.2), scenario.Constant(0.2)},
		ContactSensitivityApp:   scenario.Constant(0.8),
		ContactSensitivityNoApp: scenario.Constant(0.2),
		Isolation:               scenario.Constant(0.9),
		AppAdoption:             scenario.Constant(1),
		DelayApp:                pointMass(t, 20),
		DelayNoApp:              pointMass(t, 40),
		Grid:                    grid,
	})
	require.NoError(t, err)

	run := DefaultRunParams()
	run.MaxGenerations = 5
	res, err := Run(context.Background(), s, run, quietLogger(t))
	require.NoError(t, err)
	require.Len(t, res.History, 5)

	for _, step := range res.History {
		assert.False(t, math.IsNaN(step.R))
		assert.False(t, math.IsNaN(step.SourceAppProbability))
		assert.False(t, math.IsNaN(step.GenerationTime))
		assert.Greater(t, step.R, 0.0)
		require.Len(t, step.SourceSeverityProbabilities, 2)
		assert.InDelta(t, 1, step.SourceSeverityProbabilities[0], config.FloatTolerance)
		assert.Equal(t, 0.0, step.SourceSeverityProbabilities[1])
		assert.Equal(t, 0.0, step.RBySeverity[1])

		empty := step.Stratum(1, true)
		assert.Equal(t, 0.0, empty.Weight)
		assert.Equal(t, 0.0, empty.R)
		assert.Equal(t, 0.0, empty.Infected)
		assert.NotNil(t, empty.Infectiousness)
	}
}

func TestRun_SubcriticalEpidemicFallsBelowThreshold(t *testing.T) {
	s := singleSeverity(t, 0.1, 0, 0, 0, 0)
	params := DefaultRunParams()
	params.ExtinctionThreshold = 100
	params.MaxGenerations = 50
	res, err := Run(context.Background(), s, params, quietLogger(t))
	require.NoError(t, err)
	assert.Equal(t, Extinguished, res.Termination)
	require.NotEmpty(t, res.History)
	assert.Less(t, len(res.History), params.MaxGenerations)

	// the run stops on the infected count, not on a degenerate generation
	for _, step := range res.History {
		assert.InDelta(t, 0.1, step.R, config.NormalizationTolerance)
		assert.Greater(t, step.GenerationTime, 0.0)
		assert.GreaterOrEqual(t, step.Infected, params.ExtinctionThreshold)
	}
}

func TestRun_StopsAtTimeLimit(t *testing.T) {
	params := DefaultRunParams()
	params.TMax = 1
	res, err := Run(context.Background(), preset(t, "no-measures"), params, quietLogger(t))
	require.NoError(t, err)
	assert.Len(t, res.History, 1)
	assert.Equal(t, HorizonReached, res.Termination)
	assert.Len(t, res.Incidence, 1)
}

func TestRun_StopsBelowExtinctionThreshold(t *testing.T) {
	params := DefaultRunParams()
	params.ExtinctionThreshold = 2 * params.NuStart
	res, err := Run(context.Background(), preset(t, "no-measures"), params, quietLogger(t))
	require.NoError(t, err)
	assert.Empty(t, res.History)
	assert.Equal(t, Extinguished, res.Termination)
}

func TestRun_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, preset(t, "no-measures"), DefaultRunParams(), quietLogger(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_RejectsInvalidParams(t *testing.T) {
	params := DefaultRunParams()
	params.MaxGenerations = 0
	_, err := Run(context.Background(), preset(t, "no-measures"), params, quietLogger(t))
	assert.ErrorIs(t, err, ErrInvalidRunParams)
}

func TestRun_LogsEveryGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Noticef(gomock.Any(), gomock.Any()).Times(2)
	log.EXPECT().IsEnabledFor(logging.DEBUG).Return(true).Times(2)
	log.EXPECT().Debugf(gomock.Any(), gomock.Any()).Times(8)

	params := DefaultRunParams()
	params.MaxGenerations = 2
	_, err := Run(context.Background(), preset(t, "optimistic"), params, log)
	require.NoError(t, err)
}

func TestTermination_String(t *testing.T) {
	assert.Equal(t, "max-generations", MaxGenerations.String())
	assert.Equal(t, "extinguished", Extinguished.String())
	assert.Equal(t, "horizon-reached", HorizonReached.String())
	assert.Equal(t, "unknown", Termination(42).String())
}
