// Package history persists finished simulation runs to SQLite.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

const schemaV1 = `
-- One row per finalized token simulation
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    token TEXT NOT NULL,
    table_name TEXT NOT NULL,
    final_state INTEGER NOT NULL,
    accepted INTEGER NOT NULL,
    held INTEGER NOT NULL,
    consumed INTEGER NOT NULL,
    path TEXT NOT NULL,      -- JSON array of state ids
    triplets TEXT NOT NULL,  -- JSON object: symbol char -> count
    error TEXT,              -- unaccepted-symbol message, if any
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);

-- Schema version
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);
`

// Record is one finished simulation run.
type Record struct {
	ID         string         `json:"id"`
	Token      string         `json:"token"`
	TableName  string         `json:"table"`
	FinalState int            `json:"final_state"`
	Accepted   bool           `json:"accepted"`
	Held       bool           `json:"held"`
	Consumed   int            `json:"consumed"`
	Path       []int          `json:"path"`
	Triplets   map[string]int `json:"triplets"`
	Error      string         `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Store is a SQLite-backed run history. It serializes access behind a
// mutex and a single connection.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (or creates) the history database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := initSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO schema_version (version, applied_at) VALUES (?, ?)`,
		SchemaVersion, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Add records one finished run. A zero CreatedAt is stamped with the
// current time.
func (s *Store) Add(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		return fmt.Errorf("record ID is required")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	pathJSON, err := json.Marshal(rec.Path)
	if err != nil {
		return fmt.Errorf("marshal path: %w", err)
	}
	tripletsJSON, err := json.Marshal(rec.Triplets)
	if err != nil {
		return fmt.Errorf("marshal triplets: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, token, table_name, final_state, accepted, held, consumed, path, triplets, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Token, rec.TableName, rec.FinalState,
		boolToInt(rec.Accepted), boolToInt(rec.Held), rec.Consumed,
		string(pathJSON), string(tripletsJSON), rec.Error,
		rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first. limit <= 0 means no
// limit.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT id, token, table_name, final_state, accepted, held, consumed, path, triplets, error, created_at
		FROM runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var accepted, held int
		var pathJSON, tripletsJSON, createdAt string
		var errText sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Token, &rec.TableName, &rec.FinalState,
			&accepted, &held, &rec.Consumed, &pathJSON, &tripletsJSON, &errText, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.Accepted = accepted != 0
		rec.Held = held != 0
		rec.Error = errText.String
		if err := json.Unmarshal([]byte(pathJSON), &rec.Path); err != nil {
			return nil, fmt.Errorf("unmarshal path for run %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(tripletsJSON), &rec.Triplets); err != nil {
			return nil, fmt.Errorf("unmarshal triplets for run %s: %w", rec.ID, err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Clear removes all recorded runs.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("clear runs: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
