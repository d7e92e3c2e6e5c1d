package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"flightlog/internal/core"
	"flightlog/internal/store"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists user accounts and whole logbook sequences. Each
// logbook is stored as one JSON document keyed by user identity, matching the
// load/save-wholesale persistence boundary.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadEntries implements store.EntryStore. Any failure (missing row, corrupt
// JSON, closed database) degrades to an empty sequence; the error is logged,
// never surfaced.
func (r *SQLiteRepository) LoadEntries(ctx context.Context, userID string) []core.FlightEntry {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT entries FROM logbooks WHERE user_id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load logbook", "user", userID, "error", err)
		return nil
	}

	var entries []core.FlightEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		slog.ErrorContext(ctx, "Failed to decode stored logbook", "user", userID, "error", err)
		return nil
	}
	return entries
}

// SaveEntries implements store.EntryStore as an idempotent overwrite of the
// full sequence.
func (r *SQLiteRepository) SaveEntries(ctx context.Context, userID string, entries []core.FlightEntry) error {
	if entries == nil {
		entries = []core.FlightEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode logbook: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO logbooks (user_id, entries, revision, updated_at)
		 VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		 ON CONFLICT(user_id) DO UPDATE SET
		   entries = excluded.entries,
		   revision = logbooks.revision + 1,
		   updated_at = CURRENT_TIMESTAMP`,
		userID, string(raw))
	if err != nil {
		return fmt.Errorf("save logbook: %w", err)
	}

	slog.DebugContext(ctx, "Logbook saved", "user", userID, "entries", len(entries))
	return nil
}

// CreateUser implements store.UserStore.
func (r *SQLiteRepository) CreateUser(ctx context.Context, username string, passwordHash []byte) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, username).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if exists {
		return store.ErrUsernameTaken
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`,
		username, passwordHash)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User created", "user", username)
	return nil
}

// GetPasswordHash implements store.UserStore.
func (r *SQLiteRepository) GetPasswordHash(ctx context.Context, username string) ([]byte, error) {
	var hash []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT password_hash FROM users WHERE username = ?`, username).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get password hash: %w", err)
	}
	return hash, nil
}

// ListLogbookUsers implements store.LogbookLister.
func (r *SQLiteRepository) ListLogbookUsers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM logbooks ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list logbook users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		users = append(users, id)
	}
	return users, rows.Err()
}
