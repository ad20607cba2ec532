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

package visualizer

import (
	"sync"

	"github.com/0xsoniclabs/suppress/report"
	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// NumProfilePoints is the number of points kept of a plotted curve.
const NumProfilePoints = 100

type viewState struct {
	record    *report.Record
	profiles  [][][2]float64 // infectiousness per day of every generation
	incidence [][2]float64
	baseline  [][2]float64
}

var (
	currentMu    sync.RWMutex
	currentState *viewState
)

func setViewState(r *report.Record) error {
	view, err := buildViewState(r)
	if err != nil {
		return err
	}
	currentMu.Lock()
	currentState = view
	currentMu.Unlock()
	return nil
}

func buildViewState(r *report.Record) (*viewState, error) {
	if r == nil {
		return nil, errors.New("visualizer: record is nil")
	}
	if r.UnitsPerDay <= 0 {
		return nil, errors.Newf("visualizer: invalid number of units per day (%v)", r.UnitsPerDay)
	}
	view := &viewState{
		record:    r,
		profiles:  make([][][2]float64, len(r.Generations)),
		incidence: compress(r.Incidence, r.UnitsPerDay, 1),
		baseline:  compress(r.BaselineIncidence, r.UnitsPerDay, 1),
	}
	for i, g := range r.Generations {
		// β per unit to β per day
		view.profiles[i] = compress(g.Infectiousness, r.UnitsPerDay, float64(r.UnitsPerDay))
	}
	return view, nil
}

func currentView() (*viewState, error) {
	currentMu.RLock()
	defer currentMu.RUnlock()
	if currentState == nil {
		return nil, errors.New("visualizer: run not initialised")
	}
	return currentState, nil
}

// compress turns values on the unit grid into a curve over days and
// reduces it with the Visvalingam-Whyatt algorithm.
func compress(values []float64, unitsPerDay int, scale float64) [][2]float64 {
	if len(values) == 0 {
		return nil
	}
	ls := make(orb.LineString, len(values))
	for i, v := range values {
		ls[i] = orb.Point{float64(i) / float64(unitsPerDay), v * scale}
	}
	if len(ls) > NumProfilePoints {
		ls = simplify.VisvalingamKeep(NumProfilePoints).Simplify(ls).(orb.LineString)
	}
	curve := make([][2]float64, len(ls))
	for i := range ls {
		curve[i] = [2]float64(ls[i])
	}
	return curve
}
