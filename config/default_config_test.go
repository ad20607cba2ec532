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
	"flag"
	"testing"

	"github.com/0xsoniclabs/suppress/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestGetFlagValue(t *testing.T) {
	// app for testing
	app := cli.NewApp()
	app.Commands = []*cli.Command{
		{
			Name: "testcmd",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name: "intflag",
				},
				&cli.Float64Flag{
					Name: "float64flag",
				},
				&cli.StringFlag{
					Name: "stringflag",
				},
				&cli.PathFlag{
					Name: "pathflag",
				},
				&cli.BoolFlag{
					Name: "boolflag",
				},
			},
		},
	}

	// Setup test cases
	testCases := []struct {
		name          string
		setupFlags    func() (*cli.Context, error)
		flagToTest    interface{}
		expectedValue interface{}
	}{
		{
			name: "IntFlag value",
			setupFlags: func() (*cli.Context, error) {
				set := flag.NewFlagSet("test", 0)
				set.Int("intflag", 42, "")
				ctx := cli.NewContext(app, set, nil)
				ctx.Command = app.Commands[0]
				return ctx, nil
			},
			flagToTest:    cli.IntFlag{Name: "intflag"},
			expectedValue: 42,
		},
		{
			name: "Float64Flag value",
			setupFlags: func() (*cli.Context, error) {
				set := flag.NewFlagSet("test", 0)
				set.Float64("float64flag", 0.25, "")
				ctx := cli.NewContext(app, set, nil)
				ctx.Command = app.Commands[0]
				return ctx, nil
			},
			flagToTest:    cli.Float64Flag{Name: "float64flag"},
			expectedValue: 0.25,
		},
		{
			name: "StringFlag value",
			setupFlags: func() (*cli.Context, error) {
				set := flag.NewFlagSet("test", 0)
				set.String("stringflag", "test-string", "")
				ctx := cli.NewContext(app, set, nil)
				ctx.Command = app.Commands[0]
				return ctx, nil
			},
			flagToTest:    cli.StringFlag{Name: "stringflag"},
			expectedValue: "test-string",
		},
		{
			name: "PathFlag value",
			setupFlags: func() (*cli.Context, error) {
				set := flag.NewFlagSet("test", 0)
				set.String("pathflag", "/test/path", "")
				ctx := cli.NewContext(app, set, nil)
				ctx.Command = app.Commands[0]
				return ctx, nil
			},
			flagToTest:    cli.PathFlag{Name: "pathflag"},
			expectedValue: "/test/path",
		},
		{
			name: "BoolFlag value",
			setupFlags: func() (*cli.Context, error) {
				set := flag.NewFlagSet("test", 0)
				set.Bool("boolflag", true, "")
				ctx := cli.NewContext(app, set, nil)
				ctx.Command = app.Commands[0]
				return ctx, nil
			},
			flagToTest:    cli.BoolFlag{Name: "boolflag"},
			expectedValue: true,
		},
		{
			name: "missing flag returns default",
			setupFlags: func() (*cli.Context, error) {
				set := flag.NewFlagSet("test", 0)
				ctx := cli.NewContext(app, set, nil)
				ctx.Command = app.Commands[0]
				return ctx, nil
			},
			flagToTest:    utils.ExtinctionThresholdFlag,
			expectedValue: 0.5,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, err := tc.setupFlags()
			assert.NoError(t, err)

			value := getFlagValue(ctx, tc.flagToTest)
			assert.Equal(t, tc.expectedValue, value)
		})
	}
}

func TestNewConfig_FromCommandLine(t *testing.T) {
	var cfg *Config
	app := cli.NewApp()
	app.Commands = []*cli.Command{
		{
			Name: "evolve",
			Flags: []cli.Flag{
				&utils.NuStartFlag,
				&utils.GenerationsFlag,
				&utils.QuietFlag,
			},
			Action: func(ctx *cli.Context) error {
				var err error
				cfg, err = NewConfig(ctx)
				return err
			},
		},
	}

	args := utils.NewArgs("test").
		Arg("evolve").
		Flag(utils.NuStartFlag.Name, 250.0).
		Flag(utils.GenerationsFlag.Name, 7).
		Flag(utils.QuietFlag.Name, true).
		Arg("scenario.yaml").
		Build()
	require.NoError(t, app.Run(args))

	assert.Equal(t, "evolve", cfg.CommandName)
	assert.Equal(t, "scenario.yaml", cfg.ScenarioFile)
	assert.Equal(t, 250.0, cfg.NuStart)
	assert.Equal(t, 7, cfg.MaxGenerations)
	assert.True(t, cfg.Quiet)
	// flags not declared by the command keep their defaults
	assert.Equal(t, DefaultGrid(), cfg.Grid)
	assert.Equal(t, "optimistic", cfg.Preset)
	assert.Equal(t, 0.9, cfg.IsolationEffectiveness)
}

func TestNewConfig_RejectsInvalidValues(t *testing.T) {
	app := cli.NewApp()
	app.Commands = []*cli.Command{
		{
			Name: "evolve",
			Flags: []cli.Flag{
				&utils.NuStartFlag,
				&utils.IsolationEffectivenessFlag,
			},
			Action: func(ctx *cli.Context) error {
				_, err := NewConfig(ctx)
				return err
			},
		},
	}

	err := app.Run(utils.NewArgs("test").Arg("evolve").Flag(utils.NuStartFlag.Name, -1.0).Build())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	err = app.Run(utils.NewArgs("test").Arg("evolve").Flag(utils.IsolationEffectivenessFlag.Name, 1.5).Build())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
