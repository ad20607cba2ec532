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
	"strings"

	"github.com/0xsoniclabs/suppress/scenario"
	"github.com/urfave/cli/v2"
)

// PresetsCommand lists the built-in scenarios.
var PresetsCommand = cli.Command{
	Action: presetsAction,
	Name:   "presets",
	Usage:  "list the built-in scenarios usable with --preset",
}

func presetsAction(ctx *cli.Context) error {
	_, err := ctx.App.Writer.Write([]byte(strings.Join(scenario.PresetNames(), "\n") + "\n"))
	return err
}
