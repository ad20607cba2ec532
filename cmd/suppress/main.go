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
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// SuppressApp defines metadata and the commands of the suppress executable.
var SuppressApp = cli.App{
	Name:      "Suppress Epidemic Model",
	HelpName:  "suppress",
	Usage:     "evolve an epidemic under isolation, testing and contact tracing",
	Copyright: "(c) 2025 Sonic Labs",
	Commands: []*cli.Command{
		&EvolveCommand,
		&ApproximateCommand,
		&PresetsCommand,
		&RunsCommand,
		&VisualizeCommand,
	},
	Description: `
Suppress computes generation by generation how symptom driven testing and
contact tracing reduce the reproduction number of an epidemic. Runs can be
archived, stored in a sqlite3 database and visualized in a browser.`,
}

// main implements suppress cli.
func main() {
	if err := SuppressApp.Run(os.Args); err != nil {
		code := 1
		fmt.Fprintln(os.Stderr, err)
		os.Exit(code)
	}
}
