package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"
)

const slotSchema = `
CREATE TABLE IF NOT EXISTS save_slots (
  slot TEXT PRIMARY KEY,
  payload TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SQLStore keeps slots as YAML payload rows in a SQLite database.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLStore opens (and migrates) the database at path.
func OpenSQLStore(ctx context.Context, path string) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("save: create dir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("save: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, slotSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("save: migrate %s: %w", path, err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Save(ctx context.Context, slot string, rec Record) error {
	payload, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("save: marshal slot %q: %w", slot, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO save_slots(slot, payload, updated_at)
		 VALUES(?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
		   payload=excluded.payload,
		   updated_at=CURRENT_TIMESTAMP`,
		SanitizeSlot(slot),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("save: write slot %q: %w", slot, err)
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context, slot string) (Record, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM save_slots WHERE slot = ?`, SanitizeSlot(slot)).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fmt.Errorf("save: load slot %q: %w", slot, ErrSlotNotFound)
		}
		return Record{}, fmt.Errorf("save: load slot %q: %w", slot, err)
	}
	var rec Record
	if err := yaml.Unmarshal([]byte(payload), &rec); err != nil {
		return Record{}, fmt.Errorf("save: unmarshal slot %q: %w", slot, err)
	}
	return rec, nil
}

func (s *SQLStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot FROM save_slots ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("save: list slots: %w", err)
	}
	defer rows.Close()
	slots := []string{}
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("save: list slots: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
