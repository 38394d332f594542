// SPDX-License-Identifier: MIT

// Package sqlite provides a SQLite-backed session store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/katalvlaran/rowtrace/session"
	"github.com/katalvlaran/rowtrace/session/sqlite/migrations"
)

// Store persists session records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Summary is one row of List.
type Summary struct {
	ID         string
	Operations int
	Cursor     int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

var _ session.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite session store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err = applyMigrations(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}

	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return errors.New("storage is not configured")
	}

	return nil
}

func encode(r session.Record) (string, error) {
	if strings.TrimSpace(r.ID) == "" {
		return "", errors.New("session id is required")
	}
	payload, err := session.MarshalRecord(r)
	if err != nil {
		return "", fmt.Errorf("encode session %s: %w", r.ID, err)
	}

	return string(payload), nil
}

func timestamps(r session.Record) (created, updated time.Time) {
	created, updated = r.CreatedAt, r.UpdatedAt
	if created.IsZero() && updated.IsZero() {
		created = time.Now().UTC()
		updated = created
	}
	if created.IsZero() {
		created = updated
	}
	if updated.IsZero() {
		updated = created
	}

	return created, updated
}

// Save inserts or replaces one record.
func (s *Store) Save(ctx context.Context, r session.Record) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	payload, err := encode(r)
	if err != nil {
		return err
	}
	created, updated := timestamps(r)

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO sessions (id, payload, operations, cursor, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   payload = excluded.payload,
		   operations = excluded.operations,
		   cursor = excluded.cursor,
		   updated_at = excluded.updated_at`,
		r.ID, payload, len(r.Operations), r.Cursor, toMillis(created), toMillis(updated),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// Insert stores a new record and returns session.ErrAlreadyExists when the
// id is taken.
func (s *Store) Insert(ctx context.Context, r session.Record) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	payload, err := encode(r)
	if err != nil {
		return err
	}
	created, updated := timestamps(r)

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO sessions (id, payload, operations, cursor, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, payload, len(r.Operations), r.Cursor, toMillis(created), toMillis(updated),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", session.ErrAlreadyExists, r.ID)
		}
		return fmt.Errorf("insert session: %w", err)
	}

	return nil
}

// Load returns one record by id.
func (s *Store) Load(ctx context.Context, id string) (session.Record, error) {
	if err := s.ready(ctx); err != nil {
		return session.Record{}, err
	}

	var payload string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT payload FROM sessions WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Record{}, session.ErrNotFound
		}
		return session.Record{}, fmt.Errorf("load session: %w", err)
	}

	return session.UnmarshalRecord([]byte(payload))
}

// Delete removes one record. Deleting an unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// List returns up to limit sessions, most recently updated first.
// A limit ≤ 0 returns all of them.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, operations, cursor, created_at, updated_at
		 FROM sessions
		 ORDER BY updated_at DESC, id ASC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum              Summary
			created, updated int64
		)
		if err = rows.Scan(&sum.ID, &sum.Operations, &sum.Cursor, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sum.CreatedAt = fromMillis(created)
		sum.UpdatedAt = fromMillis(updated)
		out = append(out, sum)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return out, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())

	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "sessions.id")
}
