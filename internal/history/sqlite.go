package history

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists the window slots in a local sqlite database so the
// history survives restarts.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and seeds the slots
// with zero values on first use.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}

	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS health_history (
		slot INTEGER PRIMARY KEY,
		value REAL NOT NULL DEFAULT 0
	);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create history table: %w", err)
	}

	for slot := 1; slot <= WindowSize; slot++ {
		if _, err := db.Exec(`INSERT OR IGNORE INTO health_history (slot, value) VALUES (?, 0)`, slot); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed history slot %d: %w", slot, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) ReadSlot(ctx context.Context, slot int) (float64, error) {
	var v float64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM health_history WHERE slot = ?`, slot).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("read history slot %d: %w", slot, err)
	}
	return v, nil
}

func (s *SQLiteStore) WriteSlot(ctx context.Context, slot int, value float64) error {
	if slot < 1 || slot > WindowSize {
		return fmt.Errorf("history slot %d out of range", slot)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO health_history (slot, value) VALUES (?, ?)
		 ON CONFLICT(slot) DO UPDATE SET value = excluded.value`, slot, value)
	if err != nil {
		return fmt.Errorf("write history slot %d: %w", slot, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
