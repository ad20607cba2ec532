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
	"bytes"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/suppress/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestCmd_RunRunsCommand(t *testing.T) {
	// given
	db := filepath.Join(t.TempDir(), "runs.db")
	evolve := cli.NewApp()
	evolve.Commands = []*cli.Command{&EvolveCommand}
	require.NoError(t, evolve.Run(utils.NewArgs("test").
		Arg(EvolveCommand.Name).
		Flag(utils.PresetFlag.Name, "pessimistic").
		Flag(utils.GenerationsFlag.Name, 2).
		Flag(utils.QuietFlag.Name, true).
		Flag(utils.RunIdFlag.Name, "first").
		Flag(utils.DbFlag.Name, db).
		Build()))

	var out bytes.Buffer
	app := cli.NewApp()
	app.Writer = &out
	app.Commands = []*cli.Command{&RunsCommand}

	// when
	err := app.Run(utils.NewArgs("test").Arg(RunsCommand.Name).Flag(utils.DbFlag.Name, db).Build())

	// then
	require.NoError(t, err)
	assert.Contains(t, out.String(), "first")
	assert.Contains(t, out.String(), "pessimistic")
}

func TestCmd_RunsCommandRequiresDatabase(t *testing.T) {
	app := cli.NewApp()
	app.Commands = []*cli.Command{&RunsCommand}

	err := app.Run(utils.NewArgs("test").Arg(RunsCommand.Name).Build())
	assert.ErrorContains(t, err, "--db")
}
