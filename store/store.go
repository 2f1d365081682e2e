// Package store persists specifications in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrStore marks persistence failures: connectivity, constraints, bad ids.
var ErrStore = errors.New("spec store failed")

// timeLayout is RFC3339 with fixed-width nanoseconds. RFC3339Nano trims
// trailing zeros, which would break the lexicographic ORDER BY on created_at.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound reports an id that matched no row. It wraps ErrStore so callers
// that only care about "the store failed" keep working.
var ErrNotFound = fmt.Errorf("%w: no such spec", ErrStore)

// Spec is one persisted specification row. Field names on the wire match the
// table columns; the UI consumes them as-is.
type Spec struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Goal           string    `json:"goal"`
	Users          string    `json:"users"`
	Constraints    string    `json:"constraints"`
	OutputMarkdown string    `json:"output_markdown"`
	CreatedAt      time.Time `json:"created_at"`
}

// InsertFields is what a caller supplies on creation; id and created_at are
// assigned by the store.
type InsertFields struct {
	Title          string
	Goal           string
	Users          string
	Constraints    string
	OutputMarkdown string
}

// SpecStore is a thin create/read/update layer over the specs table.
type SpecStore struct {
	db *sql.DB
}

// Open initializes the SQLite database at path and creates the specs table if
// needed.
func Open(path string) (*SpecStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal_mode: %w", err)
	}

	s := &SpecStore{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SpecStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS specs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		goal TEXT NOT NULL,
		users TEXT NOT NULL DEFAULT '',
		constraints TEXT NOT NULL DEFAULT '',
		output_markdown TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_specs_created_at ON specs(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create specs table: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SpecStore) Close() error {
	return s.db.Close()
}

// Insert creates one spec row and returns its store-assigned id.
func (s *SpecStore) Insert(ctx context.Context, fields InsertFields) (string, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO specs (id, title, goal, users, constraints, output_markdown, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, fields.Title, fields.Goal, fields.Users, fields.Constraints,
		fields.OutputMarkdown, createdAt.Format(timeLayout))
	if err != nil {
		return "", fmt.Errorf("%w: insert: %v", ErrStore, err)
	}
	return id, nil
}

// ListRecent returns up to limit specs, newest created_at first.
func (s *SpecStore) ListRecent(ctx context.Context, limit int) ([]Spec, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, goal, users, constraints, output_markdown, created_at
		 FROM specs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrStore, err)
	}
	defer rows.Close()

	var specs []Spec
	for rows.Next() {
		spec, err := scanSpec(rows)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrStore, err)
	}
	return specs, nil
}

// Get fetches one spec by id.
func (s *SpecStore) Get(ctx context.Context, id string) (Spec, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, goal, users, constraints, output_markdown, created_at
		 FROM specs WHERE id = ?`, id)
	spec, err := scanSpec(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Spec{}, ErrNotFound
	}
	return spec, err
}

// UpdateOutput overwrites output_markdown for one spec. Full overwrite, no
// merge; an unknown id is an error.
func (s *SpecStore) UpdateOutput(ctx context.Context, id, newText string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE specs SET output_markdown = ? WHERE id = ?`, newText, id)
	if err != nil {
		return fmt.Errorf("%w: update: %v", ErrStore, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: update: %v", ErrStore, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Probe is a cheap existence check for health reporting. It never returns an
// error; any failure reads as unreachable.
func (s *SpecStore) Probe(ctx context.Context) bool {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM specs LIMIT 1`).Scan(&id)
	return err == nil || errors.Is(err, sql.ErrNoRows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpec(row rowScanner) (Spec, error) {
	var spec Spec
	var createdAt string
	err := row.Scan(&spec.ID, &spec.Title, &spec.Goal, &spec.Users,
		&spec.Constraints, &spec.OutputMarkdown, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Spec{}, err
		}
		return Spec{}, fmt.Errorf("%w: scan: %v", ErrStore, err)
	}
	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: bad created_at %q: %v", ErrStore, createdAt, err)
	}
	spec.CreatedAt = ts
	return spec, nil
}
