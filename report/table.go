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

package report

import (
	"github.com/0xsoniclabs/suppress/approximate"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.English)

// GenerationTable renders one row per generation of the record.
func GenerationTable(r *Record) string {
	t := table.NewWriter()
	t.SetTitle("%s (%s)", r.Scenario, r.Termination)
	t.AppendHeader(table.Row{"gen", "day", "R", "R app", "R no app", "effectiveness", "E(τC) days", "p app", "source p app", "FT(∞)", "infected", "no measures"})
	for _, g := range r.Generations {
		t.AppendRow(table.Row{
			g.Generation,
			numbers.Sprintf("%.2f", g.Day),
			numbers.Sprintf("%.3f", g.R),
			numbers.Sprintf("%.3f", g.RApp),
			numbers.Sprintf("%.3f", g.RNoApp),
			numbers.Sprintf("%.1f%%", 100*g.Effectiveness),
			numbers.Sprintf("%.2f", g.GenerationTime),
			numbers.Sprintf("%.3f", g.AppProbability),
			numbers.Sprintf("%.3f", g.SourceAppProbability),
			numbers.Sprintf("%.3f", g.FTInfinity),
			numbers.Sprintf("%.0f", g.Infected),
			numbers.Sprintf("%.0f", g.InfectedBaseline),
		})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

// ApproximationTable renders the iterations of the simplified model.
func ApproximationTable(iterations []approximate.Iteration) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"i", "FTc app(∞)", "FT app(∞)", "FT no app(∞)", "R app", "R no app", "R", "source p app"})
	for _, it := range iterations {
		t.AppendRow(table.Row{
			it.Index,
			numbers.Sprintf("%.3f", it.FTcApp),
			numbers.Sprintf("%.3f", it.FTApp),
			numbers.Sprintf("%.3f", it.FTNoApp),
			numbers.Sprintf("%.3f", it.RApp),
			numbers.Sprintf("%.3f", it.RNoApp),
			numbers.Sprintf("%.3f", it.R),
			numbers.Sprintf("%.3f", it.SourceAppProbability),
		})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

// RunsTable lists stored runs.
func RunsTable(runs []Record) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"run", "scenario", "termination", "created"})
	for _, r := range runs {
		t.AppendRow(table.Row{r.RunId, r.Scenario, r.Termination, r.Created.Format("2006-01-02 15:04:05")})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}
