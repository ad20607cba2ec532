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

// Package visualizer renders the result of a run as HTML charts, either
// served by a local web server or written to a single page.
package visualizer

import (
	"fmt"
	"io"
	"net/http"

	"github.com/0xsoniclabs/suppress/report"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// HTML references for the rendered pages.
const reproductionRef = "reproduction"
const infectedRef = "infected"
const incidenceRef = "incidence"
const testingRef = "testing"
const infectiousnessRef = "infectiousness"

// MainHtml is the index page.
const MainHtml = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>Suppress: Epidemic Suppression</title>
  </head>
  <body>
    <h1>Suppress: Epidemic Suppression</h1>
    <ul>
    <li> <h3> <a href="/` + reproductionRef + `"> Reproduction Number </a> </h3> </li>
    <li> <h3> <a href="/` + infectedRef + `"> Infected per Generation </a> </h3> </li>
    <li> <h3> <a href="/` + incidenceRef + `"> Daily Incidence </a> </h3> </li>
    <li> <h3> <a href="/` + testingRef + `"> Testing and App Usage </a> </h3> </li>
    <li> <h3> <a href="/` + infectiousnessRef + `"> Infectiousness Profiles </a> </h3> </li>
    </ul>
</body>
</html>
`

// renderMain renders the main menu.
func renderMain(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprint(w, MainHtml)
}

func globalOptions(title, subtitle, xName, yName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:     types.ThemeChalk,
			PageTitle: title,
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	}
}

// convertCurve converts curve points to chart points.
func convertCurve(data [][2]float64) []opts.LineData {
	items := []opts.LineData{}
	for _, pair := range data {
		items = append(items, opts.LineData{Value: pair})
	}
	return items
}

// perGeneration returns the points (day, value) of every generation.
func perGeneration(r *report.Record, value func(g report.Generation) float64) []opts.LineData {
	items := []opts.LineData{}
	for _, g := range r.Generations {
		items = append(items, opts.LineData{Value: [2]float64{g.Day, value(g)}})
	}
	return items
}

// newReproductionChart plots the reproduction numbers over time.
func newReproductionChart(view *viewState) *charts.Line {
	r := view.record
	chart := charts.NewLine()
	chart.SetGlobalOptions(globalOptions("Reproduction Number", r.Scenario, "day", "R")...)
	chart.AddSeries("R", perGeneration(r, func(g report.Generation) float64 { return g.R })).
		AddSeries("R app", perGeneration(r, func(g report.Generation) float64 { return g.RApp })).
		AddSeries("R no app", perGeneration(r, func(g report.Generation) float64 { return g.RNoApp }))
	return chart
}

// newInfectedChart plots the infected of every generation with and without measures.
func newInfectedChart(view *viewState) *charts.Line {
	r := view.record
	chart := charts.NewLine()
	chart.SetGlobalOptions(globalOptions("Infected per Generation", r.Scenario, "day", "infected")...)
	chart.AddSeries("with measures", perGeneration(r, func(g report.Generation) float64 { return g.Infected })).
		AddSeries("without measures", perGeneration(r, func(g report.Generation) float64 { return g.InfectedBaseline }))
	return chart
}

// newIncidenceChart plots the incidence on the calendar.
func newIncidenceChart(view *viewState) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(globalOptions("Incidence", view.record.Scenario, "day", "infected per unit of time")...)
	chart.AddSeries("with measures", convertCurve(view.incidence)).
		AddSeries("without measures", convertCurve(view.baseline))
	return chart
}

// newTestingChart plots the probability of being tested and the app usage.
func newTestingChart(view *viewState) *charts.Line {
	r := view.record
	chart := charts.NewLine()
	chart.SetGlobalOptions(globalOptions("Testing and App Usage", r.Scenario, "day", "probability")...)
	chart.AddSeries("FT(∞)", perGeneration(r, func(g report.Generation) float64 { return g.FTInfinity })).
		AddSeries("p app", perGeneration(r, func(g report.Generation) float64 { return g.AppProbability })).
		AddSeries("source p app", perGeneration(r, func(g report.Generation) float64 { return g.SourceAppProbability })).
		AddSeries("effectiveness", perGeneration(r, func(g report.Generation) float64 { return g.Effectiveness }))
	return chart
}

// newInfectiousnessChart plots the aggregate infectiousness of every generation.
func newInfectiousnessChart(view *viewState) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(globalOptions("Infectiousness Profiles", view.record.Scenario, "days since infection", "β per day")...)
	for i, profile := range view.profiles {
		if len(profile) == 0 {
			continue
		}
		chart.AddSeries(fmt.Sprintf("generation %d", view.record.Generations[i].Generation), convertCurve(profile))
	}
	return chart
}

type chartBuilder func(view *viewState) *charts.Line

func render(build chartBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := currentView()
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		_ = build(view).Render(w)
	}
}

// NewServeMux returns the handlers of all pages.
func NewServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", renderMain)
	mux.HandleFunc("/"+reproductionRef, render(newReproductionChart))
	mux.HandleFunc("/"+infectedRef, render(newInfectedChart))
	mux.HandleFunc("/"+incidenceRef, render(newIncidenceChart))
	mux.HandleFunc("/"+testingRef, render(newTestingChart))
	mux.HandleFunc("/"+infectiousnessRef, render(newInfectiousnessChart))
	return mux
}

// FireUpWeb visualizes the run with a local web-server.
func FireUpWeb(r *report.Record, addr string) error {
	if err := setViewState(r); err != nil {
		return err
	}
	return http.ListenAndServe(":"+addr, NewServeMux())
}

// RenderPage writes all charts of the run into a single HTML page.
func RenderPage(r *report.Record, w io.Writer) error {
	view, err := buildViewState(r)
	if err != nil {
		return err
	}
	page := components.NewPage()
	page.PageTitle = "Suppress: " + r.Scenario
	page.AddCharts(
		newReproductionChart(view),
		newInfectedChart(view),
		newIncidenceChart(view),
		newTestingChart(view),
		newInfectiousnessChart(view),
	)
	return page.Render(w)
}
