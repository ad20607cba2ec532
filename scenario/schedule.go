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
	"math"
	"sort"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Step sets the value of a schedule from a given day on.
type Step struct {
	From  float64 `yaml:"from"`
	Value float64 `yaml:"value"`
}

// Schedule is a piecewise-constant function of the absolute time in days.
// Before its first step a schedule is zero.
type Schedule struct {
	steps []Step
}

// Constant returns a schedule with the same value at all times.
func Constant(value float64) Schedule {
	return Schedule{steps: []Step{{From: math.Inf(-1), Value: value}}}
}

// Piecewise returns a schedule from steps given in any order.
func Piecewise(steps ...Step) (Schedule, error) {
	sorted := append([]Step(nil), steps...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].From < sorted[j].From
	})
	for i, s := range sorted {
		if math.IsNaN(s.From) || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
			return Schedule{}, errors.Wrapf(ErrInvalidScenario, "schedule step %v is not a number (%v, %v)", i, s.From, s.Value)
		}
		if i > 0 && sorted[i-1].From == s.From {
			return Schedule{}, errors.Wrapf(ErrInvalidScenario, "schedule has two steps starting at day %v", s.From)
		}
	}
	return Schedule{steps: sorted}, nil
}

// Ramp rises linearly, in daily steps, from zero at day start to value at day end.
func Ramp(start, end, value float64) Schedule {
	if end <= start {
		return Schedule{steps: []Step{{From: start, Value: value}}}
	}
	var steps []Step
	for day := start; day < end; day++ {
		steps = append(steps, Step{From: day, Value: value * (day - start) / (end - start)})
	}
	steps = append(steps, Step{From: end, Value: value})
	return Schedule{steps: steps}
}

// At returns the value of the schedule at the given day.
func (s Schedule) At(day float64) float64 {
	i := sort.Search(len(s.steps), func(i int) bool {
		return s.steps[i].From > day
	})
	if i == 0 {
		return 0
	}
	return s.steps[i-1].Value
}

func (s Schedule) Steps() []Step {
	return append([]Step(nil), s.steps...)
}

// isSet reports whether the schedule was given at all, as opposed to left at
// its zero value.
func (s Schedule) isSet() bool {
	return len(s.steps) > 0
}

func (s Schedule) IsZero() bool {
	for _, step := range s.steps {
		if step.Value != 0 {
			return false
		}
	}
	return true
}

// checkRange verifies that every value lies in [lo, hi].
func (s Schedule) checkRange(name string, lo, hi float64) error {
	for _, step := range s.steps {
		if !(step.Value >= lo && step.Value <= hi) {
			return errors.Wrapf(ErrInvalidScenario, "%v (%v from day %v) is not in [%v,%v]", name, step.Value, step.From, lo, hi)
		}
	}
	return nil
}

// UnmarshalYAML accepts either a scalar, used as a constant, or a list of steps.
func (s *Schedule) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := value.Decode(&v); err != nil {
			return err
		}
		*s = Constant(v)
		return nil
	case yaml.SequenceNode:
		var steps []Step
		if err := value.Decode(&steps); err != nil {
			return err
		}
		res, err := Piecewise(steps...)
		if err != nil {
			return err
		}
		*s = res
		return nil
	}
	return errors.Wrapf(ErrInvalidScenario, "line %v: a schedule is a number or a list of steps", value.Line)
}
