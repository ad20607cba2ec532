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

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var ErrUnknownRun = errors.New("report: unknown run")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	scenario TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	termination TEXT NOT NULL,
	units_per_day INTEGER NOT NULL,
	created TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS generations (
	run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	generation INTEGER NOT NULL,
	day REAL NOT NULL,
	r REAL NOT NULL,
	r_app REAL NOT NULL,
	r_noapp REAL NOT NULL,
	effectiveness REAL NOT NULL,
	generation_time REAL NOT NULL,
	p_app REAL NOT NULL,
	source_p_app REAL NOT NULL,
	ft_infinity REAL NOT NULL,
	infected REAL NOT NULL,
	infected_baseline REAL NOT NULL,
	PRIMARY KEY (run_id, generation)
);`

const (
	insertRun = `INSERT OR REPLACE INTO runs (run_id, scenario, fingerprint, termination, units_per_day, created)
		VALUES (:run_id, :scenario, :fingerprint, :termination, :units_per_day, :created)`
	deleteGenerations = `DELETE FROM generations WHERE run_id = ?`
	insertGeneration  = `INSERT INTO generations (run_id, generation, day, r, r_app, r_noapp, effectiveness,
		generation_time, p_app, source_p_app, ft_infinity, infected, infected_baseline)
		VALUES (:run_id, :generation, :day, :r, :r_app, :r_noapp, :effectiveness,
		:generation_time, :p_app, :source_p_app, :ft_infinity, :infected, :infected_baseline)`
	selectRun         = `SELECT run_id, scenario, fingerprint, termination, units_per_day, created FROM runs WHERE run_id = ?`
	selectRuns        = `SELECT run_id, scenario, fingerprint, termination, units_per_day, created FROM runs ORDER BY created`
	selectGenerations = `SELECT run_id, generation, day, r, r_app, r_noapp, effectiveness, generation_time,
		p_app, source_p_app, ft_infinity, infected, infected_baseline
		FROM generations WHERE run_id = ? ORDER BY generation`
)

// Store keeps the summaries of runs in an SQL database.
type Store struct {
	db *sqlx.DB
}

// OpenStore opens or creates the sqlite3 database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open connection to sqlite3 %s", path)
	}
	s, err := NewStore(db)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return s, nil
}

// NewStore creates the tables of the store if they do not exist.
func NewStore(db *sqlx.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, errors.Wrap(err, "failed to create tables")
	}
	return &Store{db: db}, nil
}

// SaveRun stores the record, replacing an earlier run of the same id.
func (s *Store) SaveRun(r *Record) (err error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "unable to begin a transaction")
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err = tx.NamedExec(insertRun, r); err != nil {
		return errors.Wrapf(err, "unable to insert run %s", r.RunId)
	}
	if _, err = tx.Exec(deleteGenerations, r.RunId); err != nil {
		return errors.Wrapf(err, "unable to replace generations of run %s", r.RunId)
	}
	for _, g := range r.Generations {
		g.RunId = r.RunId
		if _, err = tx.NamedExec(insertGeneration, g); err != nil {
			return errors.Wrapf(err, "unable to insert generation %d of run %s", g.Generation, r.RunId)
		}
	}
	return tx.Commit()
}

// LoadRun returns the stored record of a run. Distributions and incidence
// are only kept in archives and are left empty.
func (s *Store) LoadRun(runId string) (*Record, error) {
	var r Record
	if err := s.db.Get(&r, selectRun, runId); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(ErrUnknownRun, "%q", runId)
		}
		return nil, errors.Wrapf(err, "unable to load run %s", runId)
	}
	if err := s.db.Select(&r.Generations, selectGenerations, runId); err != nil {
		return nil, errors.Wrapf(err, "unable to load generations of run %s", runId)
	}
	return &r, nil
}

// Runs lists the stored runs without their generations.
func (s *Store) Runs() ([]Record, error) {
	var runs []Record
	if err := s.db.Select(&runs, selectRuns); err != nil {
		return nil, errors.Wrap(err, "unable to list runs")
	}
	return runs, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
