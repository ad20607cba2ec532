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
	"github.com/0xsoniclabs/suppress/config"
	"github.com/0xsoniclabs/suppress/evolution"
	"github.com/0xsoniclabs/suppress/logger"
	"github.com/0xsoniclabs/suppress/report"
	"github.com/0xsoniclabs/suppress/scenario"
	"github.com/0xsoniclabs/suppress/utils"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// EvolveCommand computes the generations of a scenario.
var EvolveCommand = cli.Command{
	Action:    evolveAction,
	Name:      "evolve",
	Usage:     "compute the generation-based evolution of a scenario",
	ArgsUsage: "[scenario.yaml]",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,

		// evolution
		&utils.PresetFlag,
		&utils.NuStartFlag,
		&utils.GenerationsFlag,
		&utils.TMaxDaysFlag,
		&utils.ExtinctionThresholdFlag,
		&utils.UnitsPerDayFlag,
		&utils.HorizonDaysFlag,

		// output
		&utils.DbFlag,
		&utils.OutputFlag,
		&utils.QuietFlag,
		&utils.RunIdFlag,
	},
	Description: `
The evolve command loads a scenario file, or the built-in scenario named by
--preset, and computes its generations until extinction, the generation limit
or the time horizon is reached. The table of generations is printed unless
--quiet is set; --output writes a compressed archive and --db stores the run.`,
}

func evolveAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Evolve")

	s, name, err := loadScenario(cfg)
	if err != nil {
		return err
	}
	params := runParams(cfg)
	runId := cfg.RunId
	if runId == "" {
		runId = s.Fingerprint(params.NuStart, params.MaxGenerations, params.TMax, params.ExtinctionThreshold)[:16]
	}
	log.Noticef("Evolve scenario %v (run %v)", name, runId)

	res, err := evolution.Run(ctx.Context, s, params, log)
	if err != nil {
		return errors.Wrapf(err, "cannot evolve scenario %v", name)
	}
	log.Noticef("Run terminated after %v generations: %v", len(res.History), res.Termination)

	record := report.NewRecord(runId, name, s.Fingerprint(), cfg.Grid, res)
	printers, err := report.NewPrinters().
		AddPrinterToConsole(cfg.Quiet, func() string { return report.GenerationTable(record) }).
		AddPrinterToArchive(cfg.Output, func() *report.Record { return record }).
		AddPrinterToSqlite3(cfg.DbFile, func() *report.Record { return record })
	if err != nil {
		return errors.Join(err, printers.Close())
	}
	return errors.Join(printers.Print(), printers.Close())
}

// loadScenario builds the scenario file given as argument, or the preset.
func loadScenario(cfg *config.Config) (*scenario.Scenario, string, error) {
	params := config.DefaultEpidemicParameters()
	if cfg.ScenarioFile != "" {
		s, err := scenario.ReadFile(cfg.ScenarioFile, params, cfg.Grid)
		return s, cfg.ScenarioFile, err
	}
	s, err := scenario.NewPreset(cfg.Preset, params, cfg.Grid)
	return s, cfg.Preset, err
}

func runParams(cfg *config.Config) evolution.RunParams {
	return evolution.RunParams{
		NuStart:             cfg.NuStart,
		MaxGenerations:      cfg.MaxGenerations,
		TMax:                cfg.Grid.ToUnits(cfg.TMaxDays),
		ExtinctionThreshold: cfg.ExtinctionThreshold,
	}
}
