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

	"contas/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the ledger snapshot in a single row of the snapshots
// table, upserted in full on every save.
type SQLiteStore struct {
	db   *sql.DB
	name string
}

// NewSQLiteStore opens (creating if needed) the database at dbPath, runs
// migrations, and binds the store to the named snapshot slot.
func NewSQLiteStore(dbPath, name string) (*SQLiteStore, error) {
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

	return &SQLiteStore{db: db, name: name}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (core.Ledger, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE name = ?`, s.name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Ledger{}, false, nil
	}
	if err != nil {
		return core.Ledger{}, false, fmt.Errorf("load snapshot %q: %w", s.name, err)
	}

	var data core.Ledger
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return core.Ledger{}, false, fmt.Errorf("decode snapshot %q: %w", s.name, err)
	}
	return data, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, data core.Ledger) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", s.name, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (name, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		s.name, string(payload))
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", s.name, err)
	}

	slog.DebugContext(ctx, "Snapshot saved",
		"name", s.name,
		"bytes", len(payload),
		"card_entries", len(data.CreditCards),
		"earnings", len(data.Earnings))
	return nil
}
