// Package ftstore persists calibrated force/torque readings in SQLite,
// grouped into recording sessions.
package ftstore

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tailscale/tailsql/server/tailsql"
	_ "modernc.org/sqlite"
	"tailscale.com/tsweb"

	"github.com/banshee-data/netft/internal/netft"
)

type Store struct {
	*sql.DB
	path string
}

// OpenBare opens (or creates) the readings database without touching
// the schema. Used by the migrate commands, which manage the schema
// themselves.
func OpenBare(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &Store{DB: db, path: path}, nil
}

// Open opens the readings database and ensures the baseline schema
// exists. Schema evolution beyond the baseline is handled by the
// migrate commands in migrate.go.
func Open(path string) (*Store, error) {
	s, err := OpenBare(path)
	if err != nil {
		return nil, err
	}

	_, err = s.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			session_id        TEXT PRIMARY KEY,
			note              TEXT,
			started_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS readings (
			session_id        TEXT,
			sampled_at        TIMESTAMP,
			raw_fx            BIGINT,
			raw_fy            BIGINT,
			raw_fz            BIGINT,
			raw_tx            BIGINT,
			raw_ty            BIGINT,
			raw_tz            BIGINT,
			fx                DOUBLE,
			fy                DOUBLE,
			fz                DOUBLE,
			tx                DOUBLE,
			ty                DOUBLE,
			tz                DOUBLE,
			FOREIGN KEY(session_id) REFERENCES sessions(session_id)
		);
		CREATE INDEX IF NOT EXISTS idx_readings_session
			ON readings(session_id, sampled_at);
	`)
	if err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// CreateSession registers a new recording session and returns its ID.
func (s *Store) CreateSession(note string) (string, error) {
	id := uuid.NewString()
	_, err := s.Exec("INSERT INTO sessions (session_id, note) VALUES (?, ?)", id, note)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

// TimedReading is one stored sample with its raw counts.
type TimedReading struct {
	SessionID string          `json:"session_id"`
	SampledAt time.Time       `json:"sampled_at"`
	Raw       netft.RawCounts `json:"raw"`
	Reading   netft.Reading   `json:"reading"`
}

// RecordReading appends one sample to a session.
func (s *Store) RecordReading(sessionID string, sampledAt time.Time, raw netft.RawCounts, r netft.Reading) error {
	_, err := s.Exec(`
		INSERT INTO readings (
			session_id, sampled_at,
			raw_fx, raw_fy, raw_fz, raw_tx, raw_ty, raw_tz,
			fx, fy, fz, tx, ty, tz
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, sampledAt,
		raw[0], raw[1], raw[2], raw[3], raw[4], raw[5],
		r.Fx, r.Fy, r.Fz, r.Tx, r.Ty, r.Tz,
	)
	if err != nil {
		return fmt.Errorf("record reading: %w", err)
	}
	return nil
}

// Readings returns up to limit samples for a session in sample order.
func (s *Store) Readings(sessionID string, limit int) ([]TimedReading, error) {
	if limit <= 0 {
		limit = 10000
	}
	rows, err := s.Query(`
		SELECT session_id, sampled_at,
			raw_fx, raw_fy, raw_fz, raw_tx, raw_ty, raw_tz,
			fx, fy, fz, tx, ty, tz
		FROM readings WHERE session_id = ?
		ORDER BY sampled_at ASC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []TimedReading
	for rows.Next() {
		var tr TimedReading
		if err := rows.Scan(
			&tr.SessionID, &tr.SampledAt,
			&tr.Raw[0], &tr.Raw[1], &tr.Raw[2], &tr.Raw[3], &tr.Raw[4], &tr.Raw[5],
			&tr.Reading.Fx, &tr.Reading.Fy, &tr.Reading.Fz,
			&tr.Reading.Tx, &tr.Reading.Ty, &tr.Reading.Tz,
		); err != nil {
			return nil, err
		}
		readings = append(readings, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return readings, nil
}

// LatestReading returns the most recent sample across all sessions, or
// nil when the store is empty.
func (s *Store) LatestReading() (*TimedReading, error) {
	row := s.QueryRow(`
		SELECT session_id, sampled_at,
			raw_fx, raw_fy, raw_fz, raw_tx, raw_ty, raw_tz,
			fx, fy, fz, tx, ty, tz
		FROM readings ORDER BY sampled_at DESC LIMIT 1`)

	var tr TimedReading
	err := row.Scan(
		&tr.SessionID, &tr.SampledAt,
		&tr.Raw[0], &tr.Raw[1], &tr.Raw[2], &tr.Raw[3], &tr.Raw[4], &tr.Raw[5],
		&tr.Reading.Fx, &tr.Reading.Fy, &tr.Reading.Fz,
		&tr.Reading.Tx, &tr.Reading.Ty, &tr.Reading.Tz,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

// AttachAdminRoutes mounts the tsweb debugger with a live tailSQL
// console over the readings database.
func (s *Store) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		log.Fatalf("failed to create tailsql server: %v", err)
	}
	tsql.SetDB("sqlite://"+s.path, s.DB, &tailsql.DBOptions{
		Label: "Net F/T readings",
	})

	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())
}
