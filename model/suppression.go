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

// Package model contains the single-step blocks of the suppression model:
// notification, test time, suppression of infectiousness and aggregation
// of the strata of a generation.
package model

import (
	"math"

	"github.com/0xsoniclabs/suppress/config"
	"github.com/0xsoniclabs/suppress/distribution"
	"github.com/cockroachdb/errors"
)

var ErrInvalidInput = errors.New("model: invalid input")

// Suppress removes the fraction ξ·F_T(τ) of the baseline infectiousness:
// β(τ) = β⁰(τ)·(1 − ξ·F_T(τ)). The total mass of the result is the
// reproduction number of the stratum.
func Suppress(baseline, testTime *distribution.Distribution, xi float64) (*distribution.Distribution, error) {
	if !(xi >= 0 && xi <= 1) {
		return nil, errors.Wrapf(ErrInvalidInput, "Suppress: isolation effectiveness (%v) is not in [0,1]", xi)
	}
	if testTime.TotalMass() > 1+config.NormalizationTolerance {
		return nil, errors.Wrapf(ErrInvalidInput, "Suppress: test time mass (%v) exceeds one", testTime.TotalMass())
	}
	values := baseline.Values()
	for i := range values {
		f := min(testTime.CDF(baseline.Start()+i), 1)
		values[i] *= 1 - xi*f
	}
	return distribution.New(values,
		distribution.StartingAt(baseline.Start()),
		distribution.WithHorizon(baseline.Horizon()),
		distribution.Improper(),
	)
}

// SymptomNotification returns F^{A,s} = F_S·s: notification follows
// symptom onset with probability s.
func SymptomNotification(onset *distribution.Distribution, sensitivity float64) (*distribution.Distribution, error) {
	res, err := onset.RescaleByFactor(sensitivity)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "SymptomNotification: %v", err)
	}
	return res, nil
}

// Source describes the infectors of a generation as seen by their contacts.
type Source struct {
	AppProbability float64                    // tildep_app
	TestTimeApp    *distribution.Distribution // F̃_T of sources with app
	TestTimeNoApp  *distribution.Distribution // F̃_T of sources without app
	GenerationTime float64                    // E[τ^C] in units
}

// ContactNotification returns F^{A,c}, the time at which a contact of a
// source is notified, measured from the contact's infection. App tracing
// only works when both source and recipient use the app.
func ContactNotification(src Source, recipientHasApp bool, scApp, scNoApp float64) (*distribution.Distribution, error) {
	if !(src.AppProbability >= 0 && src.AppProbability <= 1) {
		return nil, errors.Wrapf(ErrInvalidInput, "ContactNotification: source app probability (%v) is not in [0,1]", src.AppProbability)
	}
	for _, s := range []float64{scApp, scNoApp} {
		if !(s >= 0 && s <= 1) {
			return nil, errors.Wrapf(ErrInvalidInput, "ContactNotification: contact sensitivity (%v) is not in [0,1]", s)
		}
	}
	if math.IsNaN(src.GenerationTime) || math.IsInf(src.GenerationTime, 0) || src.GenerationTime < 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "ContactNotification: invalid generation time (%v)", src.GenerationTime)
	}
	appWeight := scNoApp * src.AppProbability
	if recipientHasApp {
		appWeight = scApp * src.AppProbability
	}
	mixed, err := distribution.Mixture(
		[]float64{appWeight, scNoApp * (1 - src.AppProbability)},
		[]*distribution.Distribution{src.TestTimeApp, src.TestTimeNoApp},
	)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "ContactNotification: %v", err)
	}
	// the contact was infected one generation after the source; fractions
	// of a unit are dropped
	return mixed.Shift(-int(src.GenerationTime)), nil
}

// Notification combines both channels assuming they are independent:
// F^A = F^{A,s} + F^{A,c} − F^{A,s}·F^{A,c}.
func Notification(symptom, contact *distribution.Distribution) (*distribution.Distribution, error) {
	res, err := distribution.FirstOf(symptom, contact)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "Notification: %v", err)
	}
	return res, nil
}

// TestTime returns F^T = F^A ⊛ Δ^{A→T}.
func TestTime(notification, delay *distribution.Distribution) *distribution.Distribution {
	return notification.Convolve(delay)
}
