// Package store archives finished readings in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/f3rmion/saju/internal/archetype"
	"github.com/f3rmion/saju/internal/engine"
	"github.com/f3rmion/saju/internal/saju"
)

var (
	// ErrNotFound is returned for an unknown reading id.
	ErrNotFound = errors.New("reading not found")
	// ErrAmbiguous is returned when an id prefix matches several readings.
	ErrAmbiguous = errors.New("reading id prefix is ambiguous")
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Store is the reading archive.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Summary is one row of the archive listing.
type Summary struct {
	ID            string          `json:"id"`
	CreatedAt     time.Time       `json:"createdAt"`
	Input         saju.BirthInput `json:"input"`
	Archetype     archetype.ID    `json:"archetype"`
	AffinityScore int             `json:"affinityScore"`
	EngineVersion string          `json:"engineVersion"`
}

// Entry is a stored reading.
type Entry struct {
	Summary
	Reading *engine.Reading `json:"reading"`
}

// Open opens or creates the archive at path. The parent directory is
// created when missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS readings (
			id             TEXT PRIMARY KEY,
			created_at     TEXT    NOT NULL,
			birth_year     INTEGER NOT NULL,
			birth_month    INTEGER NOT NULL,
			birth_day      INTEGER NOT NULL,
			birth_hour     TEXT    NOT NULL,
			calendar_type  TEXT    NOT NULL,
			leap_month     INTEGER NOT NULL DEFAULT 0,
			gender         TEXT    NOT NULL,
			archetype      TEXT    NOT NULL,
			affinity       INTEGER NOT NULL,
			engine_version TEXT    NOT NULL,
			reading        TEXT    NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_readings_created ON readings(created_at);
		CREATE INDEX IF NOT EXISTS idx_readings_archetype ON readings(archetype);
	`)
	return err
}

// Save stores a reading under a new id and returns the id.
func (s *Store) Save(ctx context.Context, r *engine.Reading) (string, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("store: encode reading: %w", err)
	}

	id := uuid.NewString()
	in := r.Input
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO readings (id, created_at, birth_year, birth_month, birth_day, birth_hour,
			calendar_type, leap_month, gender, archetype, affinity, engine_version, reading)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, s.now().UTC().Format(time.RFC3339Nano), in.Year, in.Month, in.Day, in.Hour,
		string(in.Calendar), in.LeapMonth, string(in.Gender),
		string(r.Archetype.ID), r.Archetype.AffinityScore, r.EngineVersion, string(body),
	)
	if err != nil {
		return "", fmt.Errorf("store: insert reading: %w", err)
	}
	return id, nil
}

const summaryColumns = `id, created_at, birth_year, birth_month, birth_day, birth_hour,
	calendar_type, leap_month, gender, archetype, affinity, engine_version`

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner, extra ...any) (Summary, error) {
	var (
		sum      Summary
		created  string
		calendar string
		gender   string
		arch     string
	)
	dest := append([]any{
		&sum.ID, &created, &sum.Input.Year, &sum.Input.Month, &sum.Input.Day, &sum.Input.Hour,
		&calendar, &sum.Input.LeapMonth, &gender, &arch, &sum.AffinityScore, &sum.EngineVersion,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return Summary{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Summary{}, fmt.Errorf("store: reading %s: created_at: %w", sum.ID, err)
	}
	sum.CreatedAt = t
	sum.Input.Calendar = saju.CalendarType(calendar)
	sum.Input.Gender = saju.Gender(gender)
	sum.Archetype = archetype.ID(arch)
	return sum, nil
}

// Get loads a stored reading.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+summaryColumns+`, reading FROM readings WHERE id = ?`, id)

	var body string
	sum, err := scanSummary(row, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get reading: %w", err)
	}

	var r engine.Reading
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return nil, fmt.Errorf("store: decode reading %s: %w", id, err)
	}
	return &Entry{Summary: sum, Reading: &r}, nil
}

// List returns the newest readings first. A limit of zero or less lists
// everything.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+summaryColumns+` FROM readings ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list readings: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list readings: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes a reading.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM readings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete reading: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete reading: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("store: %s: %w", id, ErrNotFound)
	}
	return nil
}

// Resolve expands an id prefix to the full id of exactly one reading.
func (s *Store) Resolve(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("store: empty id: %w", ErrNotFound)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM readings WHERE substr(id, 1, ?) = ? ORDER BY id LIMIT 2`, len(prefix), prefix)
	if err != nil {
		return "", fmt.Errorf("store: resolve id: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("store: resolve id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("store: resolve id: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("store: %s: %w", prefix, ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("store: %s: %w", prefix, ErrAmbiguous)
	}
}

// CountByArchetype tallies stored readings per archetype.
func (s *Store) CountByArchetype(ctx context.Context) (map[archetype.ID]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT archetype, COUNT(*) FROM readings GROUP BY archetype`)
	if err != nil {
		return nil, fmt.Errorf("store: count readings: %w", err)
	}
	defer rows.Close()

	out := make(map[archetype.ID]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("store: count readings: %w", err)
		}
		out[archetype.ID(id)] = n
	}
	return out, rows.Err()
}
