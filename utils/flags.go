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

package utils

import (
	"github.com/urfave/cli/v2"
)

// evolution flags
var (
	PresetFlag = cli.StringFlag{
		Name:  "preset",
		Usage: "name of a built-in scenario used when no scenario file is given",
		Value: "optimistic",
	}
	NuStartFlag = cli.Float64Flag{
		Name:  "nu-start",
		Usage: "infections per unit of time at the start, sustained at earlier times",
		Value: 1000,
	}
	GenerationsFlag = cli.IntFlag{
		Name:  "generations",
		Usage: "maximum number of generations to compute",
		Value: 20,
	}
	TMaxDaysFlag = cli.Float64Flag{
		Name:  "t-max-days",
		Usage: "stop once the absolute time of a generation exceeds this many days (0 disables)",
		Value: 0,
	}
	ExtinctionThresholdFlag = cli.Float64Flag{
		Name:  "extinction-threshold",
		Usage: "the run halts once a generation has fewer infections than this",
		Value: 0.5,
	}
	UnitsPerDayFlag = cli.IntFlag{
		Name:  "units-per-day",
		Usage: "resolution of the time grid",
		Value: 10,
	}
	HorizonDaysFlag = cli.IntFlag{
		Name:  "horizon-days",
		Usage: "support of every distribution is clipped to this many days",
		Value: 25,
	}
)

// output flags
var (
	DbFlag = cli.PathFlag{
		Name:  "db",
		Usage: "sqlite3 file storing the computed runs",
	}
	OutputFlag = cli.PathFlag{
		Name:  "output",
		Usage: "output file (.json.gz archive for evolve, .html page for visualize)",
	}
	QuietFlag = cli.BoolFlag{
		Name:  "quiet",
		Usage: "disable printing of the generation table",
	}
	RunIdFlag = cli.StringFlag{
		Name:  "run-id",
		Usage: "identifier of a run stored in the database",
	}
	PortFlag = cli.StringFlag{
		Name:  "port",
		Usage: "port of the chart server",
		Value: "8080",
	}
)

// simplified evolution flags
var (
	R0Flag = cli.Float64Flag{
		Name:  "r0",
		Usage: "basic reproduction number",
		Value: 1,
	}
	SymptomSensitivityAppFlag = cli.Float64Flag{
		Name:  "ss-app",
		Usage: "probability that a symptomatic app user is notified",
		Value: 0.7,
	}
	SymptomSensitivityNoAppFlag = cli.Float64Flag{
		Name:  "ss-noapp",
		Usage: "probability that a symptomatic infected without app is notified",
		Value: 0.2,
	}
	ContactSensitivityAppFlag = cli.Float64Flag{
		Name:  "sc-app",
		Usage: "probability that a contact is notified when both parties use the app",
		Value: 0.8,
	}
	IsolationTimeAppFlag = cli.Float64Flag{
		Name:  "ts-app",
		Usage: "days from infection to isolation of a symptomatic app user",
		Value: 6.5,
	}
	IsolationTimeNoAppFlag = cli.Float64Flag{
		Name:  "ts-noapp",
		Usage: "days from infection to isolation of a symptomatic infected without app",
		Value: 8.5,
	}
	AppAdoptionFlag = cli.Float64Flag{
		Name:  "p-app",
		Usage: "fraction of the population using the app",
		Value: 0.6,
	}
	IsolationEffectivenessFlag = cli.Float64Flag{
		Name:  "xi",
		Usage: "fraction of the remaining infectiousness removed by a positive test",
		Value: 0.9,
	}
)
