// internal/scores/sqlite.go
//
// SQLite-backed Store.
// Responsibilities:
//   - Opening the database file with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Loading/saving the record as one row per difficulty.
//
// A difficulty without a row has no score yet.

package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess/assets"
	"github.com/robalobadob/guess/internal/game"
)

// DefaultDSN is the database location used when none is configured.
const DefaultDSN = "data/scores.db"

// SQLiteStore persists the record in the high_scores table.
type SQLiteStore struct {
	db *sql.DB
}

/**
 * OpenSQLite opens (and creates if missing) the database at dsn
 * and applies pending migrations.
 *
 * - Ensures parent directory exists for relative paths (e.g. data/scores.db).
 * - Configures busy timeout and WAL journaling so the scoreboard can read
 *   while the game writes.
 */
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite3", dsn+sep+"_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dsn, err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

/**
 * migrate applies the embedded SQL scripts.
 *
 * - Uses a _migrations table to track applied names.
 * - Executes each script in lexical order inside its own transaction.
 * - Skips scripts already applied.
 */
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	ms, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	for _, m := range ms {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, m.Name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", m.Name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.Name, err)
		}
		log.Info().Str("migration", m.Name).Msg("applied")
	}
	return nil
}

// Load reads every row into a record. Unknown difficulties or non-positive
// attempts are reported as ErrInvalidRecord.
func (s *SQLiteStore) Load(ctx context.Context) (Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT difficulty, attempts FROM high_scores`)
	if err != nil {
		return Record{}, fmt.Errorf("query high_scores: %w", err)
	}
	defer rows.Close()

	r := Default()
	for rows.Next() {
		var (
			key      string
			attempts int
		)
		if err := rows.Scan(&key, &attempts); err != nil {
			return Record{}, err
		}
		d := game.Difficulty(key)
		if !d.Valid() {
			return Record{}, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidRecord, key)
		}
		r.Set(d, attempts)
	}
	if err := rows.Err(); err != nil {
		return Record{}, err
	}
	return r, r.Validate()
}

// Save replaces the table contents with r in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, d := range game.Difficulties() {
		v, ok := r.Best(d)
		if !ok {
			if _, err := tx.ExecContext(ctx, `DELETE FROM high_scores WHERE difficulty=?`, string(d)); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("clear %s: %w", d, err)
			}
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO high_scores (difficulty, attempts, updated_at)
			VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
			ON CONFLICT(difficulty) DO UPDATE SET
				attempts = excluded.attempts,
				updated_at = excluded.updated_at`,
			string(d), v,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert %s: %w", d, err)
		}
	}
	return tx.Commit()
}
