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

package distribution

import (
	"math"

	"github.com/0xsoniclabs/suppress/config"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

// Scale multiplies every mass by a non-negative factor. The result is
// improper unless the factor is one.
func (d *Distribution) Scale(factor float64) (*Distribution, error) {
	if factor < 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, errors.Wrapf(ErrInvalidDistribution, "Scale: invalid factor (%v)", factor)
	}
	values := d.Values()
	floats.Scale(factor, values)
	return build(d.start, values, d.improper || factor != 1, d.horizon), nil
}

// RescaleByFactor multiplies every mass by a probability c ∈ [0,1].
func (d *Distribution) RescaleByFactor(c float64) (*Distribution, error) {
	if !(c >= 0 && c <= 1) {
		return nil, errors.Wrapf(ErrInvalidDistribution, "RescaleByFactor: factor (%v) is not in [0,1]", c)
	}
	return d.Scale(c)
}

// Shift translates the distribution by an integer delay. Mass moved below
// zero collects at τ = 0 and mass moved beyond the horizon collects at the
// horizon, so the total mass is preserved exactly.
func (d *Distribution) Shift(delay int) *Distribution {
	if len(d.values) == 0 || delay == 0 {
		return d
	}
	start := max(d.start+delay, 0)
	end := min(d.End()+delay, d.horizon)
	if start > end {
		// the whole support collapses onto one boundary
		tau := 0
		if delay > 0 {
			tau = d.horizon
		}
		return build(tau, []float64{d.TotalMass()}, d.improper, d.horizon)
	}
	values := make([]float64, end-start+1)
	for i, x := range d.values {
		tau := min(max(d.start+i+delay, start), end)
		values[tau-start] += x
	}
	return build(start, values, d.improper, d.horizon)
}

// Convolve returns the distribution of the sum of two independent times.
// The support is truncated to the smaller horizon; truncated mass is
// discarded, not renormalized.
func (d *Distribution) Convolve(other *Distribution) *Distribution {
	horizon := min(d.horizon, other.horizon)
	if len(d.values) == 0 || len(other.values) == 0 {
		return Zero(WithHorizon(horizon))
	}
	start := d.start + other.start
	n := min(len(d.values)+len(other.values)-1, horizon-start+1)
	if n <= 0 {
		return Zero(WithHorizon(horizon))
	}
	values := make([]float64, n)
	for i, x := range d.values {
		if x == 0 {
			continue
		}
		for j, y := range other.values {
			if i+j >= n {
				break
			}
			values[i+j] += x * y
		}
	}
	res := build(start, values, d.improper || other.improper, horizon)
	if math.Abs(res.TotalMass()-d.TotalMass()*other.TotalMass()) > config.NormalizationTolerance {
		res.improper = true
	}
	return res
}

// Mixture returns Σ w_i·d_i. Weights must be non-negative; the result is
// proper only when every component is proper and the weights sum to one.
func Mixture(weights []float64, dists []*Distribution) (*Distribution, error) {
	if len(weights) != len(dists) {
		return nil, errors.Wrapf(ErrInvalidDistribution, "Mixture: number of weights (%v) mismatches number of distributions (%v)", len(weights), len(dists))
	}
	if len(dists) == 0 {
		return nil, errors.Wrap(ErrInvalidDistribution, "Mixture: no components")
	}
	lo, hi, horizon := math.MaxInt, math.MinInt, 0
	improper := false
	for i, d := range dists {
		w := weights[i]
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, errors.Wrapf(ErrInvalidDistribution, "Mixture: invalid weight (%v) of component %v", w, i)
		}
		horizon = max(horizon, d.horizon)
		improper = improper || d.improper
		if len(d.values) == 0 || w == 0 {
			continue
		}
		lo = min(lo, d.start)
		hi = max(hi, d.End())
	}
	if math.Abs(floats.Sum(weights)-1) > config.NormalizationTolerance {
		improper = true
	}
	if lo > hi {
		return build(0, nil, true, horizon), nil
	}
	values := make([]float64, hi-lo+1)
	for i, d := range dists {
		if len(d.values) == 0 || weights[i] == 0 {
			continue
		}
		offset := d.start - lo
		floats.AddScaled(values[offset:offset+len(d.values)], weights[i], d.values)
	}
	return build(lo, values, improper, horizon), nil
}

// FirstOf returns the distribution of the earlier of two independent
// improper times: F(τ) = F_a(τ) + F_b(τ) − F_a(τ)·F_b(τ).
func FirstOf(a, b *Distribution) (*Distribution, error) {
	for _, d := range []*Distribution{a, b} {
		if d.TotalMass() > 1+config.NormalizationTolerance {
			return nil, errors.Wrapf(ErrInvalidDistribution, "FirstOf: total mass (%v) exceeds one", d.TotalMass())
		}
	}
	horizon := max(a.horizon, b.horizon)
	switch {
	case len(a.values) == 0:
		return build(b.start, b.values, b.improper, horizon), nil
	case len(b.values) == 0:
		return build(a.start, a.values, a.improper, horizon), nil
	}
	lo := min(a.start, b.start)
	hi := max(a.End(), b.End())
	values := make([]float64, hi-lo+1)
	previous := 0.0
	for tau := lo; tau <= hi; tau++ {
		fa, fb := a.CDF(tau), b.CDF(tau)
		f := fa + fb - fa*fb
		values[tau-lo] = max(f-previous, 0)
		previous = max(f, previous)
	}
	return build(lo, values, math.Abs(previous-1) > config.NormalizationTolerance, horizon), nil
}
