package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/acruzgit/heco-energy/internal/infrastructure/config"
)

// Database configuration constants.
const (
	// dirPermissions is the permission mode for the database directory.
	dirPermissions = 0750

	// filePermissions is the permission mode for the database file.
	filePermissions = 0600

	// msPerSecond converts seconds to milliseconds.
	msPerSecond = 1000

	// connectionTimeout is the timeout for verifying database connectivity.
	connectionTimeout = 5 * time.Second

	// defaultListLimit and maxListLimit bound Recent() page sizes.
	defaultListLimit = 50
	maxListLimit     = 200
)

// schema creates the import history table. Append-only; the pipeline never
// reads it to decide what to process.
const schema = `
CREATE TABLE IF NOT EXISTS import_history (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	file        TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	points      INTEGER NOT NULL,
	error       TEXT,
	completed_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_import_history_completed_at
	ON import_history(completed_at);
`

// Entry is one terminal file outcome.
type Entry struct {
	ID          int64     `json:"id"`
	File        string    `json:"file"`
	Outcome     string    `json:"outcome"` // "imported" or "failed"
	Points      int       `json:"points"`
	Error       string    `json:"error,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// Ledger records import outcomes in SQLite.
//
// It is an audit trail, not a work queue: pipeline correctness never
// depends on it, and a failed Record call is logged and ignored by the
// caller.
type Ledger struct {
	db   *sql.DB
	path string
}

// Open creates a new ledger with the specified configuration.
//
// It performs the following setup:
//  1. Creates the database directory if it doesn't exist
//  2. Opens the database file (creates if not present)
//  3. Configures WAL mode and busy timeout
//  4. Sets appropriate file permissions (0600)
//  5. Creates the import_history table if needed
//
// Parameters:
//   - cfg: History configuration from config.yaml
//
// Returns:
//   - *Ledger: Ready-to-use ledger
//   - error: If connection or setup fails
func Open(cfg config.HistoryConfig) (*Ledger, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	// Build connection string with pragmas
	// See: https://github.com/mattn/go-sqlite3#connection-string
	connStr := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on",
		cfg.Path,
		cfg.BusyTimeout*msPerSecond,
	)
	if cfg.WALMode {
		connStr += "&_journal_mode=WAL&_synchronous=NORMAL"
	}

	sqlDB, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	// SQLite works best with a single writer; the importer is
	// single-threaded anyway.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	l := &Ledger{
		db:   sqlDB,
		path: cfg.Path,
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("verifying ledger connection: %w", err)
	}

	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}

	// Set file permissions (owner read/write only)
	// Ignore error - file might not exist yet on first run
	_ = os.Chmod(cfg.Path, filePermissions)

	return l, nil
}

// Record appends one terminal outcome. The CompletedAt is filled in when zero.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - entry: The outcome to record
//
// Returns:
//   - error: If the insert fails
func (l *Ledger) Record(ctx context.Context, entry Entry) error {
	if entry.CompletedAt.IsZero() {
		entry.CompletedAt = time.Now().UTC()
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO import_history (file, outcome, points, error, completed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.File, entry.Outcome, entry.Points,
		nullableString(entry.Error),
		entry.CompletedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting import history: %w", err)
	}

	return nil
}

// Recent returns the most recent outcomes, newest first.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - limit: Maximum rows to return; clamped to [1, 200], default 50
//
// Returns:
//   - []Entry: Matching entries, newest first
//   - error: If the query fails
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, file, outcome, points, error, completed_at
		 FROM import_history
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying import history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var errText sql.NullString
		var completedAt string
		if err := rows.Scan(&e.ID, &e.File, &e.Outcome, &e.Points, &errText, &completedAt); err != nil {
			return nil, fmt.Errorf("scanning import history row: %w", err)
		}
		e.Error = errText.String
		ts, err := time.Parse(time.RFC3339, completedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing completed_at %q: %w", completedAt, err)
		}
		e.CompletedAt = ts
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating import history: %w", err)
	}

	return entries, nil
}

// HealthCheck verifies the ledger database responds.
func (l *Ledger) HealthCheck(ctx context.Context) error {
	if err := l.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ledger health check failed: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (l *Ledger) Close() error {
	if l.db == nil {
		return nil
	}
	if err := l.db.Close(); err != nil {
		return fmt.Errorf("closing ledger: %w", err)
	}
	return nil
}

// Path returns the filesystem path to the database file.
func (l *Ledger) Path() string {
	return l.path
}

// nullableString returns nil for empty strings, or the string otherwise.
// Used for nullable TEXT columns in SQLite.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
