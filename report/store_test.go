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
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mockDb, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	mockDb.ExpectExec("CREATE TABLE IF NOT EXISTS runs").WillReturnResult(sqlmock.NewResult(0, 0))
	store, err := NewStore(sqlx.NewDb(db, "sqlite3"))
	require.NoError(t, err)
	return store, mockDb
}

func TestStore_SaveRun(t *testing.T) {
	store, mockDb := newMockStore(t)
	r := sampleRecord()

	mockDb.ExpectBegin()
	mockDb.ExpectExec("INSERT OR REPLACE INTO runs").
		WithArgs(r.RunId, r.Scenario, r.Fingerprint, r.Termination, r.UnitsPerDay, r.Created).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mockDb.ExpectExec("DELETE FROM generations").WithArgs(r.RunId).WillReturnResult(sqlmock.NewResult(0, 0))
	for range r.Generations {
		mockDb.ExpectExec("INSERT INTO generations").WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mockDb.ExpectCommit()

	require.NoError(t, store.SaveRun(r))
	if err := mockDb.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestStore_SaveRunRollsBackOnError(t *testing.T) {
	store, mockDb := newMockStore(t)
	mockErr := errors.New("mock error")

	// case Begin error
	mockDb.ExpectBegin().WillReturnError(mockErr)
	assert.ErrorIs(t, store.SaveRun(sampleRecord()), mockErr)

	// case insert error
	mockDb.ExpectBegin()
	mockDb.ExpectExec("INSERT OR REPLACE INTO runs").WillReturnResult(sqlmock.NewResult(1, 1))
	mockDb.ExpectExec("DELETE FROM generations").WillReturnResult(sqlmock.NewResult(0, 0))
	mockDb.ExpectExec("INSERT INTO generations").WillReturnError(mockErr)
	mockDb.ExpectRollback()
	assert.ErrorIs(t, store.SaveRun(sampleRecord()), mockErr)

	if err := mockDb.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestStore_LoadRun(t *testing.T) {
	store, mockDb := newMockStore(t)
	r := sampleRecord()

	mockDb.ExpectQuery("FROM runs WHERE run_id").WithArgs(r.RunId).WillReturnRows(
		sqlmock.NewRows([]string{"run_id", "scenario", "fingerprint", "termination", "units_per_day", "created"}).
			AddRow(r.RunId, r.Scenario, r.Fingerprint, r.Termination, r.UnitsPerDay, r.Created))
	rows := sqlmock.NewRows([]string{"run_id", "generation", "day", "r", "r_app", "r_noapp", "effectiveness",
		"generation_time", "p_app", "source_p_app", "ft_infinity", "infected", "infected_baseline"})
	for _, g := range r.Generations {
		rows.AddRow(g.RunId, g.Generation, g.Day, g.R, g.RApp, g.RNoApp, g.Effectiveness, g.GenerationTime,
			g.AppProbability, g.SourceAppProbability, g.FTInfinity, g.Infected, g.InfectedBaseline)
	}
	mockDb.ExpectQuery("FROM generations WHERE run_id").WithArgs(r.RunId).WillReturnRows(rows)

	got, err := store.LoadRun(r.RunId)
	require.NoError(t, err)
	assert.Equal(t, r.Scenario, got.Scenario)
	assert.True(t, r.Created.Equal(got.Created))
	require.Len(t, got.Generations, 2)
	assert.Equal(t, 12345.0, got.Generations[1].Infected)
	assert.Nil(t, got.Generations[1].Infectiousness)
	assert.Empty(t, got.Incidence)
}

func TestStore_LoadRunUnknown(t *testing.T) {
	store, mockDb := newMockStore(t)
	mockDb.ExpectQuery("FROM runs WHERE run_id").WithArgs("missing").WillReturnError(sql.ErrNoRows)
	_, err := store.LoadRun("missing")
	assert.ErrorIs(t, err, ErrUnknownRun)
}

func TestStore_Runs(t *testing.T) {
	store, mockDb := newMockStore(t)
	r := sampleRecord()
	mockDb.ExpectQuery("FROM runs ORDER BY created").WillReturnRows(
		sqlmock.NewRows([]string{"run_id", "scenario", "fingerprint", "termination", "units_per_day", "created"}).
			AddRow(r.RunId, r.Scenario, r.Fingerprint, r.Termination, r.UnitsPerDay, r.Created).
			AddRow("run-2", "pessimistic", "ef", "extinguished", 10, r.Created))
	runs, err := store.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[1].RunId)
}

func TestStore_Sqlite3RoundTrip(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	r := sampleRecord()
	require.NoError(t, store.SaveRun(r))
	// saving again replaces the run
	require.NoError(t, store.SaveRun(r))

	got, err := store.LoadRun(r.RunId)
	require.NoError(t, err)
	assert.Equal(t, r.Termination, got.Termination)
	require.Len(t, got.Generations, len(r.Generations))
	for i, g := range got.Generations {
		assert.Equal(t, r.Generations[i].R, g.R)
		assert.Equal(t, r.RunId, g.RunId)
	}

	runs, err := store.Runs()
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	_, err = store.LoadRun("missing")
	assert.ErrorIs(t, err, ErrUnknownRun)
}
