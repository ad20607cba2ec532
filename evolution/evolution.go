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

// Package evolution runs the generation loop of the suppression model:
// every generation derives its notification, test-time and infectiousness
// distributions from the previous one and advances the time by the mean
// generation time.
package evolution

import (
	"context"
	"math"

	"github.com/0xsoniclabs/suppress/config"
	"github.com/0xsoniclabs/suppress/distribution"
	"github.com/0xsoniclabs/suppress/logger"
	"github.com/0xsoniclabs/suppress/model"
	"github.com/0xsoniclabs/suppress/scenario"
	"github.com/cockroachdb/errors"
	"github.com/op/go-logging"
	"golang.org/x/sync/errgroup"
)

// Run computes the generations of the scenario until one of the
// termination conditions of params holds.
func Run(ctx context.Context, s *scenario.Scenario, params RunParams, log logger.Logger) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	unsuppressed, err := baselineInfectiousness(s)
	if err != nil {
		return nil, err
	}
	preHistory, err := preHistoryInfectiousness(s, params.PreHistory, unsuppressed)
	if err != nil {
		return nil, err
	}
	e := &engine{
		scenario:    s,
		log:         log,
		populations: newPopulations(params.NuStart, preHistory, unsuppressed),
	}

	res := &Result{Termination: MaxGenerations}
	t0 := s.StartTime()
	var previous *StepState
	for i := 0; i < params.MaxGenerations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t := t0
		var profile *distribution.Distribution
		if previous != nil {
			t = previous.Time + previous.GenerationTime
			profile = previous.Infectiousness
		}
		if params.TMax > 0 && t-t0 > params.TMax {
			res.Termination = HorizonReached
			break
		}

		nu, nu0 := e.populations.advance(int(math.Round(t-t0)), profile)
		if nu < params.ExtinctionThreshold {
			log.Noticef("Generation %d: %.2f infected at day %.2f, the epidemic is extinguished", i, nu, s.Grid().ToDays(t))
			res.Termination = Extinguished
			break
		}

		step, err := e.step(ctx, i, t, previous)
		if err != nil {
			return nil, errors.Wrapf(err, "generation %d", i)
		}
		e.setPopulations(step, nu, nu0)
		res.History = append(res.History, step)
		e.report(step)

		if step.R < config.DegenerateMass {
			log.Noticef("Generation %d: no infectiousness left, the epidemic is extinguished", i)
			res.Termination = Extinguished
			break
		}
		previous = step
	}
	res.Incidence, res.BaselineIncidence = e.populations.incidence()
	return res, nil
}

type engine struct {
	scenario    *scenario.Scenario
	log         logger.Logger
	populations *populations
}

// baselineInfectiousness returns Σ p_g·β⁰_g, the infectiousness without measures.
func baselineInfectiousness(s *scenario.Scenario) (*distribution.Distribution, error) {
	baselines := make([]*distribution.Distribution, s.NumSeverities())
	for g := range baselines {
		baselines[g] = s.Baseline(g)
	}
	return distribution.Mixture(s.SeverityPriors(), baselines)
}

// preHistoryInfectiousness aggregates the per-severity pre-history; without
// one the population before t₀ spreads like the unsuppressed one.
func preHistoryInfectiousness(s *scenario.Scenario, preHistory []*distribution.Distribution, unsuppressed *distribution.Distribution) (*distribution.Distribution, error) {
	if len(preHistory) == 0 {
		return unsuppressed, nil
	}
	if len(preHistory) != s.NumSeverities() {
		return nil, errors.Wrapf(ErrInvalidRunParams, "pre-history has %v severities, expected %v", len(preHistory), s.NumSeverities())
	}
	return distribution.Mixture(s.SeverityPriors(), preHistory)
}

// step computes generation i at time t. The strata are computed
// concurrently, each writing only its own slot; they are reduced after all
// of them finished.
func (e *engine) step(ctx context.Context, i int, t float64, previous *StepState) (*StepState, error) {
	s := e.scenario
	n := s.NumSeverities()
	priors := s.SeverityPriors()
	pApp := s.AppAdoption(t)
	xi := s.Isolation(t)
	weightsApp, weightsNoApp := model.StratumWeights(priors, pApp)

	// F^{A,c} only depends on the recipient's app status
	contact := map[bool]*distribution.Distribution{}
	if previous != nil {
		src := model.Source{
			AppProbability: previous.SourceAppProbability,
			TestTimeApp:    previous.TestTimeApp,
			TestTimeNoApp:  previous.TestTimeNoApp,
			GenerationTime: previous.GenerationTime,
		}
		for _, app := range []bool{true, false} {
			c, err := model.ContactNotification(src, app, s.ContactSensitivity(true, t), s.ContactSensitivity(false, t))
			if err != nil {
				return nil, err
			}
			contact[app] = c
		}
	}

	strata := make([]StratumState, 2*n)
	g, _ := errgroup.WithContext(ctx)
	for k := range strata {
		k := k
		severity, app := k%n, k < n
		weight := weightsNoApp[severity]
		if app {
			weight = weightsApp[severity]
		}
		g.Go(func() error {
			fas, err := model.SymptomNotification(s.SymptomOnset(), s.SymptomSensitivity(severity, app, t))
			if err != nil {
				return err
			}
			fa := fas
			if c, found := contact[app]; found {
				if fa, err = model.Notification(fas, c); err != nil {
					return err
				}
			}
			ft := model.TestTime(fa, s.Delay(app))
			beta, err := model.Suppress(s.Baseline(severity), ft, xi)
			if err != nil {
				return err
			}
			strata[k] = StratumState{
				Severity:            severity,
				App:                 app,
				Weight:              weight,
				SymptomNotification: fas,
				Notification:        fa,
				TestTime:            ft,
				Infectiousness:      beta,
				R:                   beta.TotalMass(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return e.reduce(i, t, pApp, strata)
}

// reduce aggregates the strata of a generation.
func (e *engine) reduce(i int, t, pApp float64, strata []StratumState) (*StepState, error) {
	s := e.scenario
	n := s.NumSeverities()
	priors := s.SeverityPriors()
	step := &StepState{
		Generation:       i,
		Time:             t,
		AppProbability:   pApp,
		Strata:           strata,
		RBySeverity:      make([]float64, n),
		RBySeverityApp:   make([]float64, n),
		RBySeverityNoApp: make([]float64, n),
	}

	weights := make([]float64, len(strata))
	profiles := make([]*distribution.Distribution, len(strata))
	for k, stratum := range strata {
		weights[k] = stratum.Weight
		profiles[k] = stratum.Infectiousness
		if stratum.App {
			step.RBySeverityApp[stratum.Severity] = stratum.R
		} else {
			step.RBySeverityNoApp[stratum.Severity] = stratum.R
		}
		step.FAsInfinity += stratum.Weight * stratum.SymptomNotification.TotalMass()
		step.FAInfinity += stratum.Weight * stratum.Notification.TotalMass()
		step.FTInfinity += stratum.Weight * stratum.TestTime.TotalMass()
	}
	for g := 0; g < n; g++ {
		step.RBySeverity[g] = pApp*step.RBySeverityApp[g] + (1-pApp)*step.RBySeverityNoApp[g]
	}

	var err error
	if step.RApp, err = model.WeightedSum(priors, step.RBySeverityApp); err != nil {
		return nil, err
	}
	if step.RNoApp, err = model.WeightedSum(priors, step.RBySeverityNoApp); err != nil {
		return nil, err
	}
	step.R = pApp*step.RApp + (1-pApp)*step.RNoApp
	if r0 := s.BaselineR0(); r0 > 0 {
		step.Effectiveness = 1 - step.R/r0
	}

	if step.Infectiousness, err = distribution.Mixture(weights, profiles); err != nil {
		return nil, err
	}
	step.SourceAppProbability = model.SourceAppProbability(pApp, step.RApp, step.R)
	if step.SourceSeverityProbabilities, err = model.SourceSeverityProbabilities(priors, step.RBySeverity, step.R); err != nil {
		return nil, err
	}

	testTimesApp := make([]*distribution.Distribution, n)
	testTimesNoApp := make([]*distribution.Distribution, n)
	for g := 0; g < n; g++ {
		testTimesApp[g] = strata[g].TestTime
		testTimesNoApp[g] = strata[n+g].TestTime
		step.FTAppInfinity += priors[g] * testTimesApp[g].TotalMass()
		step.FTNoAppInfinity += priors[g] * testTimesNoApp[g].TotalMass()
	}
	if step.TestTimeApp, err = distribution.Mixture(step.SourceSeverityProbabilities, testTimesApp); err != nil {
		return nil, err
	}
	if step.TestTimeNoApp, err = distribution.Mixture(step.SourceSeverityProbabilities, testTimesNoApp); err != nil {
		return nil, err
	}

	// without infectiousness there is no next generation to time
	if step.R >= config.DegenerateMass {
		if step.GenerationTime, err = step.Infectiousness.Mean(); err != nil {
			return nil, err
		}
	}
	return step, nil
}

func (e *engine) setPopulations(step *StepState, nu, nu0 float64) {
	step.Infected = nu
	step.InfectedBaseline = nu0
	for k := range step.Strata {
		step.Strata[k].Infected = nu * step.Strata[k].Weight
	}
}

func (e *engine) report(step *StepState) {
	grid := e.scenario.Grid()
	e.log.Noticef("Generation %d: day %.2f, R=%.3f, infected %.1f (%.1f without measures)",
		step.Generation, grid.ToDays(step.Time), step.R, step.Infected, step.InfectedBaseline)
	if !e.log.IsEnabledFor(logging.DEBUG) {
		return
	}
	e.log.Debugf("\tp_app=%.3f, source p_app=%.3f, source severities=%.3f",
		step.AppProbability, step.SourceAppProbability, step.SourceSeverityProbabilities)
	e.log.Debugf("\tR_app=%.3f, R_noapp=%.3f, R by severity=%.3f (app %.3f, no app %.3f)",
		step.RApp, step.RNoApp, step.RBySeverity, step.RBySeverityApp, step.RBySeverityNoApp)
	e.log.Debugf("\tFAs(∞)=%.3f, FA(∞)=%.3f, FT(∞)=%.3f (app %.3f, no app %.3f)",
		step.FAsInfinity, step.FAInfinity, step.FTInfinity, step.FTAppInfinity, step.FTNoAppInfinity)
	e.log.Debugf("\tE(τC)=%.2f days, effectiveness=%.3f",
		grid.ToDays(step.GenerationTime), step.Effectiveness)
}
