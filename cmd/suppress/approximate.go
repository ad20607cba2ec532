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

package main

import (
	"github.com/0xsoniclabs/suppress/approximate"
	"github.com/0xsoniclabs/suppress/config"
	"github.com/0xsoniclabs/suppress/logger"
	"github.com/0xsoniclabs/suppress/report"
	"github.com/0xsoniclabs/suppress/utils"
	"github.com/urfave/cli/v2"
)

// ApproximateCommand iterates the simplified two-population model.
var ApproximateCommand = cli.Command{
	Action: approximateAction,
	Name:   "approximate",
	Usage:  "estimate the suppressed reproduction number of a simplified scenario",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.GenerationsFlag,
		&utils.R0Flag,
		&utils.SymptomSensitivityAppFlag,
		&utils.SymptomSensitivityNoAppFlag,
		&utils.ContactSensitivityAppFlag,
		&utils.IsolationTimeAppFlag,
		&utils.IsolationTimeNoAppFlag,
		&utils.AppAdoptionFlag,
		&utils.IsolationEffectivenessFlag,
		&utils.QuietFlag,
	},
	Description: `
The approximate command assumes a Gamma distributed generation time, a fixed
time from infection to isolation and contact tracing between app users only.
It prints the reproduction numbers of each generation.`,
}

func approximateAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Approximate")

	s := approximate.SimplifiedScenario{
		R0:      cfg.R0,
		SsApp:   cfg.SymptomSensitivityApp,
		SsNoApp: cfg.SymptomSensitivityNoApp,
		ScApp:   cfg.ContactSensitivityApp,
		TsApp:   cfg.IsolationTimeApp,
		TsNoApp: cfg.IsolationTimeNoApp,
		PApp:    cfg.AppAdoption,
		Xi:      cfg.IsolationEffectiveness,
	}
	iterations, err := approximate.Evolve(s, config.DefaultEpidemicParameters(), cfg.MaxGenerations)
	if err != nil {
		return err
	}
	last := iterations[len(iterations)-1]
	log.Noticef("R after %v generations: %.4f", len(iterations), last.R)

	printers := report.NewPrinters().
		AddPrinterToConsole(cfg.Quiet, func() string { return report.ApproximationTable(iterations) })
	return printers.Print()
}
