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

package visualizer

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/0xsoniclabs/suppress/report"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *report.Record {
	incidence := make([]float64, 500)
	for i := range incidence {
		incidence[i] = 1000 / float64(i+1)
	}
	return &report.Record{
		RunId:       "run-1",
		Scenario:    "optimistic",
		Termination: "max-generations",
		UnitsPerDay: 10,
		Created:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Generations: []report.Generation{
			{Generation: 0, Day: 0, R: 0.8, RApp: 0.6, RNoApp: 0.9, Infected: 1000, InfectedBaseline: 1000, Infectiousness: []float64{0, 0.05, 0.03}},
			{Generation: 1, Day: 4.5, R: 0.7, RApp: 0.5, RNoApp: 0.85, Infected: 700, InfectedBaseline: 1000},
		},
		Incidence:         incidence,
		BaselineIncidence: incidence,
	}
}

func mustSetView(t *testing.T, r *report.Record) {
	t.Helper()
	require.NoError(t, setViewState(r))
}

func clearView(t *testing.T) {
	t.Helper()
	currentMu.Lock()
	currentState = nil
	currentMu.Unlock()
}

func TestVisualizer_renderMain(t *testing.T) {
	req, err := http.NewRequest("GET", "/", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	NewServeMux().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, MainHtml, rr.Body.String())
}

func TestVisualizer_renderCharts(t *testing.T) {
	mustSetView(t, sampleRecord())
	defer clearView(t)

	for _, ref := range []string{reproductionRef, infectedRef, incidenceRef, testingRef, infectiousnessRef} {
		t.Run(ref, func(t *testing.T) {
			req, err := http.NewRequest("GET", "/"+ref, nil)
			assert.NoError(t, err)

			rr := httptest.NewRecorder()
			NewServeMux().ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), "echarts")
		})
	}
}

func TestVisualizer_renderWithoutRun(t *testing.T) {
	clearView(t)
	req, err := http.NewRequest("GET", "/"+reproductionRef, nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	NewServeMux().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestVisualizer_convertCurve(t *testing.T) {
	result := convertCurve([][2]float64{{1.0, 2.0}, {3.0, 4.0}})
	assert.Len(t, result, 2)
	assert.Equal(t, opts.LineData{Value: [2]float64{1.0, 2.0}}, result[0])
	assert.Equal(t, opts.LineData{Value: [2]float64{3.0, 4.0}}, result[1])
}

func TestVisualizer_perGeneration(t *testing.T) {
	result := perGeneration(sampleRecord(), func(g report.Generation) float64 { return g.R })
	assert.Equal(t, []opts.LineData{
		{Value: [2]float64{0, 0.8}},
		{Value: [2]float64{4.5, 0.7}},
	}, result)
}

func TestVisualizer_RenderPage(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, RenderPage(sampleRecord(), &b))
	assert.Contains(t, b.String(), "Reproduction Number")
	assert.Contains(t, b.String(), "Infectiousness Profiles")
}

func TestVisualizer_RenderPageRejectsInvalidRecord(t *testing.T) {
	r := sampleRecord()
	r.UnitsPerDay = 0
	assert.Error(t, RenderPage(r, &bytes.Buffer{}))
	assert.Error(t, RenderPage(nil, &bytes.Buffer{}))
}
