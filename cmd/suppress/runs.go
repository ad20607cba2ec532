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
	"github.com/0xsoniclabs/suppress/logger"
	"github.com/0xsoniclabs/suppress/report"
	"github.com/0xsoniclabs/suppress/utils"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// RunsCommand lists the runs kept in a database.
var RunsCommand = cli.Command{
	Action: runsAction,
	Name:   "runs",
	Usage:  "list the runs stored in a database",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.DbFlag,
	},
}

func runsAction(ctx *cli.Context) (err error) {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.DbFile == "" {
		return errors.Newf("missing --%v", utils.DbFlag.Name)
	}
	store, err := report.OpenStore(cfg.DbFile)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, store.Close())
	}()
	runs, err := store.Runs()
	if err != nil {
		return err
	}
	return report.NewPrinters().
		AddPrinterToWriter(ctx.App.Writer, func() string { return report.RunsTable(runs) }).
		Print()
}
