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

// Package report turns the result of a run into tables, compressed archives
// and rows of a run store.
package report

import (
	"time"

	"github.com/0xsoniclabs/suppress/config"
	"github.com/0xsoniclabs/suppress/evolution"
)

// Generation is the summary of one StepState. Times are in days.
type Generation struct {
	RunId                string    `json:"-" db:"run_id"`
	Generation           int       `json:"generation" db:"generation"`
	Day                  float64   `json:"day" db:"day"`
	R                    float64   `json:"r" db:"r"`
	RApp                 float64   `json:"r_app" db:"r_app"`
	RNoApp               float64   `json:"r_noapp" db:"r_noapp"`
	Effectiveness        float64   `json:"effectiveness" db:"effectiveness"`
	GenerationTime       float64   `json:"generation_time" db:"generation_time"`
	AppProbability       float64   `json:"p_app" db:"p_app"`
	SourceAppProbability float64   `json:"source_p_app" db:"source_p_app"`
	FTInfinity           float64   `json:"ft_infinity" db:"ft_infinity"`
	Infected             float64   `json:"infected" db:"infected"`
	InfectedBaseline     float64   `json:"infected_baseline" db:"infected_baseline"`
	Infectiousness       []float64 `json:"infectiousness,omitempty" db:"-"` // aggregate β from τ = 0
}

// Record is the persistent form of a run.
type Record struct {
	RunId       string    `json:"run_id" db:"run_id"`
	Scenario    string    `json:"scenario" db:"scenario"`
	Fingerprint string    `json:"fingerprint" db:"fingerprint"`
	Termination string    `json:"termination" db:"termination"`
	UnitsPerDay int       `json:"units_per_day" db:"units_per_day"`
	Created     time.Time `json:"created" db:"created"`

	Generations       []Generation `json:"generations" db:"-"`
	Incidence         []float64    `json:"incidence,omitempty" db:"-"`
	BaselineIncidence []float64    `json:"baseline_incidence,omitempty" db:"-"`
}

// NewRecord summarizes a result computed on the given grid.
func NewRecord(runId, scenario, fingerprint string, grid config.Grid, res *evolution.Result) *Record {
	r := &Record{
		RunId:             runId,
		Scenario:          scenario,
		Fingerprint:       fingerprint,
		Termination:       res.Termination.String(),
		UnitsPerDay:       grid.UnitsPerDay,
		Created:           time.Now().UTC(),
		Generations:       make([]Generation, 0, len(res.History)),
		Incidence:         res.Incidence,
		BaselineIncidence: res.BaselineIncidence,
	}
	for _, step := range res.History {
		var profile []float64
		if !step.Infectiousness.IsEmpty() {
			profile = make([]float64, step.Infectiousness.End()+1)
			copy(profile[step.Infectiousness.Start():], step.Infectiousness.Values())
		}
		r.Generations = append(r.Generations, Generation{
			RunId:                runId,
			Generation:           step.Generation,
			Day:                  grid.ToDays(step.Time),
			R:                    step.R,
			RApp:                 step.RApp,
			RNoApp:               step.RNoApp,
			Effectiveness:        step.Effectiveness,
			GenerationTime:       grid.ToDays(step.GenerationTime),
			AppProbability:       step.AppProbability,
			SourceAppProbability: step.SourceAppProbability,
			FTInfinity:           step.FTInfinity,
			Infected:             step.Infected,
			InfectedBaseline:     step.InfectedBaseline,
			Infectiousness:       profile,
		})
	}
	return r
}
