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

package config

import (
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config summarizes the command line configuration of a suppress command.
type Config struct {
	AppName     string
	CommandName string

	LogLevel string

	// evolution
	ScenarioFile        string
	Preset              string
	NuStart             float64
	MaxGenerations      int
	TMaxDays            float64
	ExtinctionThreshold float64
	Grid                Grid

	// output
	DbFile string
	Output string
	Quiet  bool
	RunId  string
	Port   string

	// simplified evolution
	R0                      float64
	SymptomSensitivityApp   float64
	SymptomSensitivityNoApp float64
	ContactSensitivityApp   float64
	IsolationTimeApp        float64
	IsolationTimeNoApp      float64
	AppAdoption             float64
	IsolationEffectiveness  float64
}

// NewConfig creates and validates the configuration of the current command.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := createConfigFromFlags(ctx)
	if ctx.Args().Len() > 0 {
		cfg.ScenarioFile = ctx.Args().First()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if err := cfg.Grid.Validate(); err != nil {
		return err
	}
	if cfg.NuStart <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "nu-start must be positive (%v)", cfg.NuStart)
	}
	if cfg.MaxGenerations < 1 {
		return errors.Wrapf(ErrInvalidConfig, "generations must be at least one (%v)", cfg.MaxGenerations)
	}
	if cfg.TMaxDays < 0 {
		return errors.Wrapf(ErrInvalidConfig, "t-max-days must not be negative (%v)", cfg.TMaxDays)
	}
	if cfg.ExtinctionThreshold < 0 {
		return errors.Wrapf(ErrInvalidConfig, "extinction threshold must not be negative (%v)", cfg.ExtinctionThreshold)
	}
	probabilities := map[string]float64{
		"ss-app":   cfg.SymptomSensitivityApp,
		"ss-noapp": cfg.SymptomSensitivityNoApp,
		"sc-app":   cfg.ContactSensitivityApp,
		"p-app":    cfg.AppAdoption,
		"xi":       cfg.IsolationEffectiveness,
	}
	for name, p := range probabilities {
		if !(p >= 0 && p <= 1) {
			return errors.Wrapf(ErrInvalidConfig, "%v (%v) is not in [0,1]", name, p)
		}
	}
	return nil
}
