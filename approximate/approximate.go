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

// Package approximate evolves a two-component population with closed-form
// estimates of the notification probabilities instead of distributions.
// It is a quick sanity check of the full engine.
package approximate

import (
	"github.com/0xsoniclabs/suppress/config"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

var ErrInvalidScenario = errors.New("approximate: invalid scenario")

// SimplifiedScenario describes a population in which symptomatic people
// isolate after a fixed time and app users trace each other.
type SimplifiedScenario struct {
	R0      float64
	SsApp   float64 // symptom sensitivity with app
	SsNoApp float64 // symptom sensitivity without app
	ScApp   float64 // contact sensitivity between app users
	TsApp   float64 // days from infection to isolation for symptoms, with app
	TsNoApp float64 // same, without app
	PApp    float64
	Xi      float64
}

func (s SimplifiedScenario) validate() error {
	if !(s.R0 >= 0) {
		return errors.Wrapf(ErrInvalidScenario, "negative reproduction number (%v)", s.R0)
	}
	probabilities := []struct {
		name  string
		value float64
	}{
		{"app symptom sensitivity", s.SsApp},
		{"no-app symptom sensitivity", s.SsNoApp},
		{"app contact sensitivity", s.ScApp},
		{"app adoption", s.PApp},
		{"isolation effectiveness", s.Xi},
	}
	for _, p := range probabilities {
		if !(p.value >= 0 && p.value <= 1) {
			return errors.Wrapf(ErrInvalidScenario, "%v (%v) is not in [0,1]", p.name, p.value)
		}
	}
	if !(s.TsApp >= 0 && s.TsNoApp >= 0) {
		return errors.Wrapf(ErrInvalidScenario, "negative isolation times (%v, %v)", s.TsApp, s.TsNoApp)
	}
	return nil
}

// Iteration holds the estimates of one generation.
type Iteration struct {
	Index                int
	FTcApp               float64 // F^{T,c}_app(∞)
	FTApp                float64 // F^T_app(∞)
	FTNoApp              float64 // F^T_no-app(∞)
	RApp                 float64
	RNoApp               float64
	R                    float64
	SourceAppProbability float64
}

// SuppressedR estimates the reproduction number of people tested after
// symptoms with probability fts and after a contact with probability ftc.
// Symptomatic isolation happens ts days after infection, so the share of
// R0 emitted before ts is never suppressed by it.
func SuppressedR(r0, fts, ftc, xi, ts float64, params config.EpidemicParameters) float64 {
	before := distuv.Gamma{Alpha: params.GammaShape, Beta: params.GammaRate}.CDF(ts)
	symptoms := before + (1-before)*(1-xi*fts)
	contacts := 1 - xi*ftc
	return r0 * symptoms * contacts
}

// Evolve iterates the simplified model. Only app users are traced, so the
// no-app component is constant.
func Evolve(s SimplifiedScenario, params config.EpidemicParameters, iterations int) ([]Iteration, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, errors.Wrapf(ErrInvalidScenario, "%v", err)
	}
	if iterations < 0 {
		return nil, errors.Wrapf(ErrInvalidScenario, "negative number of iterations (%v)", iterations)
	}

	ftsApp, ftNoApp := s.SsApp, s.SsNoApp
	rNoApp := SuppressedR(s.R0, ftNoApp, 0, s.Xi, s.TsNoApp, params)

	res := make([]Iteration, 0, iterations)
	for i := 0; i < iterations; i++ {
		ftcApp := 0.0
		if i > 0 {
			prev := res[i-1]
			ftcApp = (prev.SourceAppProbability*prev.FTApp + (1-prev.SourceAppProbability)*ftNoApp) * s.ScApp
		}
		ftApp := ftsApp + ftcApp - ftsApp*ftcApp
		rApp := SuppressedR(s.R0, ftsApp, ftcApp, s.Xi, s.TsApp, params)
		r := s.PApp*rApp + (1-s.PApp)*rNoApp

		sourceApp := s.PApp
		if r > config.DegenerateMass {
			sourceApp = s.PApp * rApp / r
		}
		res = append(res, Iteration{
			Index:                i,
			FTcApp:               ftcApp,
			FTApp:                ftApp,
			FTNoApp:              ftNoApp,
			RApp:                 rApp,
			RNoApp:               rNoApp,
			R:                    r,
			SourceAppProbability: sourceApp,
		})
	}
	return res, nil
}
