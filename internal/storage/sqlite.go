// Package storage provides SQLite-based persistence for the round journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// A journal entry holds what Replay needs (seed, grid, rules, and the
// player's direction changes) plus how the round ended. Scores are not kept.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	// ErrNotFound is returned when no round matches an ID.
	ErrNotFound = errors.New("round not found")
	// ErrAmbiguousID is returned when an ID prefix matches several rounds.
	ErrAmbiguousID = errors.New("round id prefix is ambiguous")
)

// Store manages the SQLite database connection for the round journal.
type Store struct {
	db *sql.DB
}

// Ensure Store implements RecordSaver
var _ snake.RecordSaver = (*Store)(nil)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// One connection serializes writers from concurrent sessions.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			hazards INTEGER NOT NULL,
			policy TEXT NOT NULL,
			block_reversal INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL,
			cause TEXT NOT NULL DEFAULT '',
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_started ON rounds(started_at DESC);

		CREATE TABLE IF NOT EXISTS round_inputs (
			round_id TEXT NOT NULL REFERENCES rounds(id),
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			direction TEXT NOT NULL,
			PRIMARY KEY (round_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecord journals a round and returns its ID. A record without an ID
// gets a fresh UUID.
func (s *Store) SaveRecord(rec snake.Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	_, err = tx.Exec(
		`INSERT INTO rounds
		 (id, variant, seed, width, height, hazards, policy, block_reversal, ticks, cause, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Variant,
		rec.Seed,
		rec.Width,
		rec.Height,
		rec.Hazards,
		string(rec.Policy),
		rec.BlockReversal,
		rec.Ticks,
		string(rec.Cause),
		formatTime(rec.StartedAt),
		formatTime(rec.EndedAt),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}

	for i, in := range rec.Inputs {
		if _, err := tx.Exec(
			"INSERT INTO round_inputs (round_id, seq, tick, direction) VALUES (?, ?, ?, ?)",
			rec.ID, i, in.Tick, in.Direction.String(),
		); err != nil {
			return "", fmt.Errorf("storage: cannot save input %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit round: %w", err)
	}
	return rec.ID, nil
}

const roundColumns = `id, variant, seed, width, height, hazards, policy, block_reversal, ticks, cause, started_at, ended_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(row scanner) (snake.Record, error) {
	var rec snake.Record
	var policy, cause, startedAt, endedAt string
	if err := row.Scan(
		&rec.ID,
		&rec.Variant,
		&rec.Seed,
		&rec.Width,
		&rec.Height,
		&rec.Hazards,
		&policy,
		&rec.BlockReversal,
		&rec.Ticks,
		&cause,
		&startedAt,
		&endedAt,
	); err != nil {
		return rec, err
	}
	rec.Policy = snake.SpawnPolicy(policy)
	rec.Cause = snake.Cause(cause)
	rec.StartedAt = parseTime(startedAt)
	rec.EndedAt = parseTime(endedAt)
	return rec, nil
}

// RecentRecords returns the most recently started rounds, newest first.
// Inputs are not loaded; use RecordByID for a replayable record.
func (s *Store) RecentRecords(limit int) ([]snake.Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []snake.Record
	for rows.Next() {
		rec, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// RecordByID loads a round with its inputs. id may be a full UUID or a
// unique prefix of one.
func (s *Store) RecordByID(id string) (snake.Record, error) {
	if id == "" {
		return snake.Record{}, fmt.Errorf("storage: empty round id: %w", ErrNotFound)
	}

	if _, err := uuid.Parse(id); err != nil {
		resolved, err := s.resolvePrefix(id)
		if err != nil {
			return snake.Record{}, err
		}
		id = resolved
	}

	rec, err := scanRound(s.db.QueryRow(
		`SELECT `+roundColumns+` FROM rounds WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("storage: round %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return rec, fmt.Errorf("storage: cannot query round: %w", err)
	}

	rec.Inputs, err = s.inputs(id)
	if err != nil {
		return rec, err
	}
	return rec, nil
}

func (s *Store) resolvePrefix(prefix string) (string, error) {
	rows, err := s.db.Query(
		"SELECT id FROM rounds WHERE substr(id, 1, ?) = ? LIMIT 2",
		len(prefix), prefix,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot query round ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("storage: round %s: %w", prefix, ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("storage: round %s: %w", prefix, ErrAmbiguousID)
	}
}

func (s *Store) inputs(id string) ([]snake.Input, error) {
	rows, err := s.db.Query(
		"SELECT tick, direction FROM round_inputs WHERE round_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	var inputs []snake.Input
	for rows.Next() {
		var in snake.Input
		var dir string
		if err := rows.Scan(&in.Tick, &dir); err != nil {
			return nil, fmt.Errorf("storage: cannot scan input: %w", err)
		}
		if in.Direction, err = core.ParseDirection(dir); err != nil {
			return nil, fmt.Errorf("storage: round %s: %w", id, err)
		}
		inputs = append(inputs, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return inputs, nil
}

// DeleteRecord removes a round and its inputs.
func (s *Store) DeleteRecord(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	if _, err := tx.Exec("DELETE FROM round_inputs WHERE round_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete inputs: %w", err)
	}
	res, err := tx.Exec("DELETE FROM rounds WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete round: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: round %s: %w", id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// CauseCounts returns how many journaled rounds of variant ended by each
// cause. Rounds quit before GameOver are counted under CauseNone. An empty
// variant counts every round.
func (s *Store) CauseCounts(variant string) (map[snake.Cause]int, error) {
	rows, err := s.db.Query(
		`SELECT cause, COUNT(*)
		 FROM rounds
		 WHERE ? = '' OR variant = ?
		 GROUP BY cause`,
		variant, variant,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count causes: %w", err)
	}
	defer rows.Close()

	counts := make(map[snake.Cause]int)
	for rows.Next() {
		var cause string
		var n int
		if err := rows.Scan(&cause, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		counts[snake.Cause(cause)] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return counts, nil
}

// timeLayout is fixed width so timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
