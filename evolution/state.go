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
	"github.com/0xsoniclabs/suppress/distribution"
)

// StratumState holds the distributions of one (severity, app) stratum of a generation.
type StratumState struct {
	Severity int
	App      bool
	Weight   float64 // population share p_g·p_app or p_g·(1−p_app)

	SymptomNotification *distribution.Distribution // F^{A,s}
	Notification        *distribution.Distribution // F^A
	TestTime            *distribution.Distribution // F^T
	Infectiousness      *distribution.Distribution // β

	R        float64
	Infected float64
}

// StepState is the record of one generation. It is appended once to the
// history and never modified afterwards.
type StepState struct {
	Generation int
	Time       float64 // t_i in units

	AppProbability              float64   // p_app(t_i)
	SourceAppProbability        float64   // tildep_app
	SourceSeverityProbabilities []float64 // tildep_g

	Strata []StratumState

	R                float64
	RApp             float64
	RNoApp           float64
	RBySeverity      []float64
	RBySeverityApp   []float64
	RBySeverityNoApp []float64
	Effectiveness    float64 // 1 − R/R⁰

	Infectiousness *distribution.Distribution // aggregate β
	TestTimeApp    *distribution.Distribution // F̃_T of sources with app
	TestTimeNoApp  *distribution.Distribution // F̃_T of sources without app
	GenerationTime float64                    // E[τ^C] in units

	FAsInfinity     float64
	FAInfinity      float64
	FTInfinity      float64
	FTAppInfinity   float64
	FTNoAppInfinity float64

	Infected         float64 // ν_i
	InfectedBaseline float64 // ν⁰_i
}

// Stratum returns the state of the given stratum.
func (s *StepState) Stratum(severity int, app bool) StratumState {
	n := len(s.RBySeverity)
	if app {
		return s.Strata[severity]
	}
	return s.Strata[n+severity]
}

// Termination tells why a run stopped.
type Termination int

const (
	MaxGenerations Termination = iota
	Extinguished
	HorizonReached
)

func (t Termination) String() string {
	switch t {
	case MaxGenerations:
		return "max-generations"
	case Extinguished:
		return "extinguished"
	case HorizonReached:
		return "horizon-reached"
	}
	return "unknown"
}

// Result is the outcome of a run.
type Result struct {
	History     []*StepState
	Termination Termination

	// Incidence per unit of time since t₀, with and without measures.
	Incidence         []float64
	BaselineIncidence []float64
}
