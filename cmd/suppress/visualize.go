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
	"os"

	"github.com/0xsoniclabs/suppress/config"
	"github.com/0xsoniclabs/suppress/logger"
	"github.com/0xsoniclabs/suppress/report"
	"github.com/0xsoniclabs/suppress/utils"
	"github.com/0xsoniclabs/suppress/visualizer"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// VisualizeCommand shows the charts of a run.
var VisualizeCommand = cli.Command{
	Action:    visualizeAction,
	Name:      "visualize",
	Usage:     "produce charts of a computed run",
	ArgsUsage: "[run.json.gz]",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.DbFlag,
		&utils.RunIdFlag,
		&utils.PortFlag,
		&utils.OutputFlag,
	},
	Description: `
The visualize command loads a run from an archive, or the run --run-id from
the database --db. With --output the charts are written to an HTML page;
otherwise they are served on http://localhost:<port>.`,
}

func visualizeAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Visualize")

	record, err := loadRecord(cfg)
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		log.Noticef("Write charts of run %v to %v", record.RunId, cfg.Output)
		return writePage(record, cfg.Output)
	}
	log.Noticef("Open web browser with http://localhost:%v", cfg.Port)
	log.Notice("Press Ctrl+C to quit")
	return visualizer.FireUpWeb(record, cfg.Port)
}

// loadRecord reads the archive given as argument or the stored run.
func loadRecord(cfg *config.Config) (*report.Record, error) {
	if cfg.ScenarioFile != "" {
		return report.ReadArchive(cfg.ScenarioFile)
	}
	if cfg.DbFile == "" || cfg.RunId == "" {
		return nil, errors.Newf("either an archive or --%v and --%v are required", utils.DbFlag.Name, utils.RunIdFlag.Name)
	}
	store, err := report.OpenStore(cfg.DbFile)
	if err != nil {
		return nil, err
	}
	record, err := store.LoadRun(cfg.RunId)
	return record, errors.Join(err, store.Close())
}

func writePage(r *report.Record, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create %v", path)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return visualizer.RenderPage(r, f)
}
