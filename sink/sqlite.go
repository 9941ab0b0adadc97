/*
 * sqlite.go, part of govib.
 *
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package sink

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	chem "github.com/rmera/govib"
	"github.com/rmera/govib/wigner"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	created_at  TEXT NOT NULL,
	seed        INTEGER NOT NULL,
	temperature REAL NOT NULL,
	natoms      INTEGER NOT NULL,
	symbols     TEXT NOT NULL,
	zpve        REAL NOT NULL,
	ftve        REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS samples (
	run_id       TEXT NOT NULL,
	sample       INTEGER NOT NULL,
	ke_normal    REAL NOT NULL,
	pe_normal    REAL NOT NULL,
	ke_cartesian REAL NOT NULL,
	pe_cartesian REAL NOT NULL,
	PRIMARY KEY (run_id, sample),
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE TABLE IF NOT EXISTS atoms (
	run_id  TEXT NOT NULL,
	sample  INTEGER NOT NULL,
	atom    INTEGER NOT NULL,
	symbol  TEXT NOT NULL,
	x REAL NOT NULL, y REAL NOT NULL, z REAL NOT NULL,
	px REAL NOT NULL, py REAL NOT NULL, pz REAL NOT NULL,
	PRIMARY KEY (run_id, sample, atom),
	FOREIGN KEY (run_id, sample) REFERENCES samples(run_id, sample)
);
`

// RunInfo describes a sampling run, for the runs table.
type RunInfo struct {
	ID          string //a new UUID if empty
	Seed        uint64
	Temperature float64 //K
	ZPVE        float64
	FTVE        float64
	Geometry    *chem.Geometry
}

// SQLite stores samples in a SQLite database, in atomic units. Several runs can
// be stored in the same database, each identified by its run ID.
type SQLite struct {
	db    *sql.DB
	runID string
}

// NewSQLite opens (or creates) the database in path, and registers the run.
func NewSQLite(path string, run RunInfo) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	//SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	_, err = db.Exec(
		`INSERT INTO runs (run_id, created_at, seed, temperature, natoms, symbols, zpve, ftve)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, time.Now().UTC().Format(time.RFC3339Nano), int64(run.Seed), run.Temperature,
		run.Geometry.Len(), strings.Join(run.Geometry.Symbols, " "), run.ZPVE, run.FTVE,
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return &SQLite{db: db, runID: run.ID}, nil
}

// RunID returns the ID of the run being stored.
func (S *SQLite) RunID() string { return S.runID }

// Put stores sample s, with index i, in a single transaction.
func (S *SQLite) Put(i int, s *wigner.Sample) error {
	tx, err := S.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()
	_, err = tx.Exec(
		`INSERT INTO samples (run_id, sample, ke_normal, pe_normal, ke_cartesian, pe_cartesian)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		S.runID, i, s.NormalKE, s.NormalPE, s.CartesianKE, s.CartesianPE,
	)
	if err != nil {
		return fmt.Errorf("insert sample %d: %w", i, err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO atoms (run_id, sample, atom, symbol, x, y, z, px, py, pz)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare atoms: %w", err)
	}
	defer stmt.Close()
	for a, sym := range s.Position.Symbols {
		x := s.Position.Coords.RawRowView(a)
		p := s.Momentum.Coords.RawRowView(a)
		if _, err := stmt.Exec(S.runID, i, a, sym, x[0], x[1], x[2], p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("insert atom %d of sample %d: %w", a, i, err)
		}
	}
	return tx.Commit()
}

// Remove deletes sample i of the current run, if present.
func (S *SQLite) Remove(i int) error {
	tx, err := S.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()
	if _, err = tx.Exec(`DELETE FROM atoms WHERE run_id = ? AND sample = ?`, S.runID, i); err != nil {
		return fmt.Errorf("delete atoms of sample %d: %w", i, err)
	}
	if _, err = tx.Exec(`DELETE FROM samples WHERE run_id = ? AND sample = ?`, S.runID, i); err != nil {
		return fmt.Errorf("delete sample %d: %w", i, err)
	}
	return tx.Commit()
}

// StoredSample is a sample as read back from the database.
type StoredSample struct {
	Index                    int
	NormalKE, NormalPE       float64
	CartesianKE, CartesianPE float64
	Symbols                  []string
	Position, Momentum       []float64 //3N, atomic units
}

// Samples returns all the samples of the run runID, sorted by index.
func (S *SQLite) Samples(runID string) ([]StoredSample, error) {
	rows, err := S.db.Query(
		`SELECT sample, ke_normal, pe_normal, ke_cartesian, pe_cartesian
		 FROM samples WHERE run_id = ? ORDER BY sample`, runID)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	var ret []StoredSample
	for rows.Next() {
		var s StoredSample
		if err := rows.Scan(&s.Index, &s.NormalKE, &s.NormalPE, &s.CartesianKE, &s.CartesianPE); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		ret = append(ret, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for k := range ret {
		if err := S.loadAtoms(runID, &ret[k]); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func (S *SQLite) loadAtoms(runID string, s *StoredSample) error {
	rows, err := S.db.Query(
		`SELECT symbol, x, y, z, px, py, pz FROM atoms
		 WHERE run_id = ? AND sample = ? ORDER BY atom`, runID, s.Index)
	if err != nil {
		return fmt.Errorf("query atoms: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sym string
		var x, p [3]float64
		if err := rows.Scan(&sym, &x[0], &x[1], &x[2], &p[0], &p[1], &p[2]); err != nil {
			return fmt.Errorf("scan atom: %w", err)
		}
		s.Symbols = append(s.Symbols, sym)
		s.Position = append(s.Position, x[:]...)
		s.Momentum = append(s.Momentum, p[:]...)
	}
	return rows.Err()
}

// Seed returns the seed stored for the run runID.
func (S *SQLite) Seed(runID string) (uint64, error) {
	var seed int64
	err := S.db.QueryRow(`SELECT seed FROM runs WHERE run_id = ?`, runID).Scan(&seed)
	if err != nil {
		return 0, fmt.Errorf("query run %s: %w", runID, err)
	}
	//stored as the int64 with the same bits.
	return uint64(seed), nil
}

// Close closes the database.
func (S *SQLite) Close() error {
	return S.db.Close()
}
