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

package model

import (
	"github.com/0xsoniclabs/suppress/config"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

// WeightedSum returns Σ w_i·x_i.
func WeightedSum(weights, values []float64) (float64, error) {
	if len(weights) != len(values) {
		return 0, errors.Wrapf(ErrInvalidInput, "WeightedSum: number of weights (%v) mismatches number of values (%v)", len(weights), len(values))
	}
	return floats.Dot(weights, values), nil
}

// StratumWeights returns the population share of every (severity, app)
// stratum: p_g·p_app for app users and p_g·(1−p_app) otherwise.
func StratumWeights(priors []float64, pApp float64) (app, noApp []float64) {
	app = make([]float64, len(priors))
	noApp = make([]float64, len(priors))
	floats.ScaleTo(app, pApp, priors)
	floats.ScaleTo(noApp, 1-pApp, priors)
	return app, noApp
}

// SourceAppProbability is the probability that an infector uses the app,
// p_app·R_app/R. Without infectiousness no reweighting is possible and the
// population share is returned.
func SourceAppProbability(pApp, rApp, rTotal float64) float64 {
	if rTotal < config.DegenerateMass {
		return pApp
	}
	return min(max(pApp*rApp/rTotal, 0), 1)
}

// SourceSeverityProbabilities returns tildep_g = p_g·R_g/R, the severity
// distribution of infectors. It falls back to the priors when R vanishes.
func SourceSeverityProbabilities(priors, rBySeverity []float64, rTotal float64) ([]float64, error) {
	if len(priors) != len(rBySeverity) {
		return nil, errors.Wrapf(ErrInvalidInput, "SourceSeverityProbabilities: %v priors for %v severities", len(priors), len(rBySeverity))
	}
	res := make([]float64, len(priors))
	if rTotal < config.DegenerateMass {
		copy(res, priors)
		return res, nil
	}
	floats.MulTo(res, priors, rBySeverity)
	floats.Scale(1/rTotal, res)
	return res, nil
}
