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

// Package distribution implements an algebra over finite-support, possibly
// improper, discrete distributions on the non-negative integer time grid.
// All values are immutable; every operation returns a new distribution.
package distribution

import (
	"fmt"
	"math"
	"strings"

	"github.com/0xsoniclabs/suppress/config"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrInvalidDistribution    = errors.New("distribution: invalid distribution")
	ErrDegenerateDistribution = errors.New("distribution: degenerate distribution")
)

// Distribution is a non-negative mass function over τ ∈ [0, horizon].
// Masses are stored for the window [start, start+len(values)).
type Distribution struct {
	start      int
	values     []float64
	cumulative []float64 // Kahan sums of values
	improper   bool
	horizon    int
}

type Option func(*Distribution)

// StartingAt places the first mass value at τ = start.
func StartingAt(start int) Option {
	return func(d *Distribution) {
		d.start = start
	}
}

// WithHorizon sets τ_max; mass beyond it is discarded.
func WithHorizon(horizon int) Option {
	return func(d *Distribution) {
		d.horizon = horizon
	}
}

// Improper allows a total mass different from one.
func Improper() Option {
	return func(d *Distribution) {
		d.improper = true
	}
}

// New creates a distribution from a table of mass values. Unless the
// distribution is marked improper its total mass must be one within
// config.NormalizationTolerance.
func New(values []float64, opts ...Option) (*Distribution, error) {
	d := &Distribution{horizon: config.DefaultGrid().Horizon()}
	for _, opt := range opts {
		opt(d)
	}
	if d.horizon < 0 {
		return nil, errors.Wrapf(ErrInvalidDistribution, "New: negative horizon (%v)", d.horizon)
	}
	if d.start < 0 {
		return nil, errors.Wrapf(ErrInvalidDistribution, "New: support starts at a negative time (%v)", d.start)
	}
	for i, x := range values {
		if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, errors.Wrapf(ErrInvalidDistribution, "New: invalid mass (%v) at τ=%v", x, d.start+i)
		}
	}
	res := build(d.start, values, d.improper, d.horizon)
	if !res.improper && math.Abs(res.TotalMass()-1) > config.NormalizationTolerance {
		return nil, errors.Wrapf(ErrInvalidDistribution, "New: total mass of a proper distribution is not one (%v)", res.TotalMass())
	}
	return res, nil
}

// Zero returns the improper distribution without any mass.
func Zero(opts ...Option) *Distribution {
	d := &Distribution{horizon: config.DefaultGrid().Horizon()}
	for _, opt := range opts {
		opt(d)
	}
	return build(0, nil, true, max(d.horizon, 0))
}

// PointMass returns the proper distribution concentrated at τ = tau.
func PointMass(tau int, opts ...Option) (*Distribution, error) {
	return New([]float64{1}, append([]Option{StartingAt(tau)}, opts...)...)
}

// FromCDF creates a distribution from cumulative values F(start), F(start+1), ...
// The table must be non-decreasing; F(start-1) is taken to be zero.
func FromCDF(cdf []float64, opts ...Option) (*Distribution, error) {
	pmf := make([]float64, len(cdf))
	previous := 0.0
	for i, f := range cdf {
		if math.IsNaN(f) || f < previous-config.FloatTolerance {
			return nil, errors.Wrapf(ErrInvalidDistribution, "FromCDF: cumulative values decrease at index %v (%v < %v)", i, f, previous)
		}
		pmf[i] = max(f-previous, 0)
		previous = max(f, previous)
	}
	return New(pmf, opts...)
}

// build trims zero mass at both ends, clips the window to [0, horizon] and
// computes the cumulative sums. Values must be valid.
func build(start int, values []float64, improper bool, horizon int) *Distribution {
	lo, hi := 0, len(values)
	if start < 0 {
		lo = -start
	}
	if start+hi-1 > horizon {
		hi = horizon - start + 1
	}
	for lo < hi && values[lo] == 0 {
		lo++
	}
	for hi > lo && values[hi-1] == 0 {
		hi--
	}
	if lo >= hi {
		return &Distribution{start: 0, improper: true, horizon: horizon}
	}

	d := &Distribution{
		start:      start + lo,
		values:     make([]float64, hi-lo),
		cumulative: make([]float64, hi-lo),
		improper:   improper,
		horizon:    horizon,
	}
	copy(d.values, values[lo:hi])

	// Kahan summation keeps the tail of long distributions accurate
	sum, c := 0.0, 0.0
	for i, x := range d.values {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		d.cumulative[i] = sum
	}
	return d
}

// Start returns the first τ with non-zero mass, 0 for an empty distribution.
func (d *Distribution) Start() int {
	return d.start
}

// End returns the last τ with non-zero mass, Start()-1 for an empty distribution.
func (d *Distribution) End() int {
	return d.start + len(d.values) - 1
}

func (d *Distribution) Horizon() int {
	return d.horizon
}

func (d *Distribution) IsImproper() bool {
	return d.improper
}

func (d *Distribution) IsEmpty() bool {
	return len(d.values) == 0
}

// Values returns a copy of the masses of the window [Start(), End()].
func (d *Distribution) Values() []float64 {
	return append([]float64(nil), d.values...)
}

// PMF returns the mass at τ, zero outside the support.
func (d *Distribution) PMF(tau int) float64 {
	if tau < d.start || tau > d.End() {
		return 0
	}
	return d.values[tau-d.start]
}

// CDF returns the mass up to and including τ; it is flat beyond the support.
func (d *Distribution) CDF(tau int) float64 {
	if len(d.values) == 0 || tau < d.start {
		return 0
	}
	if tau >= d.End() {
		return d.cumulative[len(d.cumulative)-1]
	}
	return d.cumulative[tau-d.start]
}

func (d *Distribution) TotalMass() float64 {
	if len(d.values) == 0 {
		return 0
	}
	return d.cumulative[len(d.cumulative)-1]
}

// Mean returns the mean of the normalized distribution.
func (d *Distribution) Mean() (float64, error) {
	total := d.TotalMass()
	if total < config.DegenerateMass {
		return 0, errors.Wrapf(ErrDegenerateDistribution, "Mean: total mass (%v) is too small", total)
	}
	taus := make([]float64, len(d.values))
	for i := range taus {
		taus[i] = float64(d.start + i)
	}
	return floats.Dot(taus, d.values) / total, nil
}

// Normalize returns the proper distribution proportional to d.
func (d *Distribution) Normalize() (*Distribution, error) {
	total := d.TotalMass()
	if total < config.DegenerateMass {
		return nil, errors.Wrapf(ErrDegenerateDistribution, "Normalize: total mass (%v) is too small", total)
	}
	values := d.Values()
	floats.Scale(1/total, values)
	return build(d.start, values, false, d.horizon), nil
}

func (d *Distribution) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Distribution[start=%d, end=%d, mass=%.4f", d.start, d.End(), d.TotalMass())
	if d.improper {
		b.WriteString(", improper")
	}
	b.WriteString("]")
	return b.String()
}
