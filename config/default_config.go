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
	"github.com/0xsoniclabs/suppress/logger"
	"github.com/0xsoniclabs/suppress/utils"
	"github.com/urfave/cli/v2"
)

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,

		LogLevel:            getFlagValue(ctx, logger.LogLevelFlag).(string),
		Preset:              getFlagValue(ctx, utils.PresetFlag).(string),
		NuStart:             getFlagValue(ctx, utils.NuStartFlag).(float64),
		MaxGenerations:      getFlagValue(ctx, utils.GenerationsFlag).(int),
		TMaxDays:            getFlagValue(ctx, utils.TMaxDaysFlag).(float64),
		ExtinctionThreshold: getFlagValue(ctx, utils.ExtinctionThresholdFlag).(float64),
		Grid: Grid{
			UnitsPerDay: getFlagValue(ctx, utils.UnitsPerDayFlag).(int),
			HorizonDays: getFlagValue(ctx, utils.HorizonDaysFlag).(int),
		},

		DbFile: getFlagValue(ctx, utils.DbFlag).(string),
		Output: getFlagValue(ctx, utils.OutputFlag).(string),
		Quiet:  getFlagValue(ctx, utils.QuietFlag).(bool),
		RunId:  getFlagValue(ctx, utils.RunIdFlag).(string),
		Port:   getFlagValue(ctx, utils.PortFlag).(string),

		R0:                      getFlagValue(ctx, utils.R0Flag).(float64),
		SymptomSensitivityApp:   getFlagValue(ctx, utils.SymptomSensitivityAppFlag).(float64),
		SymptomSensitivityNoApp: getFlagValue(ctx, utils.SymptomSensitivityNoAppFlag).(float64),
		ContactSensitivityApp:   getFlagValue(ctx, utils.ContactSensitivityAppFlag).(float64),
		IsolationTimeApp:        getFlagValue(ctx, utils.IsolationTimeAppFlag).(float64),
		IsolationTimeNoApp:      getFlagValue(ctx, utils.IsolationTimeNoAppFlag).(float64),
		AppAdoption:             getFlagValue(ctx, utils.AppAdoptionFlag).(float64),
		IsolationEffectiveness:  getFlagValue(ctx, utils.IsolationEffectivenessFlag).(float64),
	}

	return cfg
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	cmdFlags := ctx.Command.Flags
	for _, cmdFlag := range cmdFlags {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}

		case cli.Float64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Float64(f.Name)
			}

		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}

		case cli.PathFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Path(f.Name)
			}

		case cli.BoolFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Bool(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.BoolFlag:
		return f.Value
	}

	return nil
}
