// Package store implements the embedded relational configuration store:
// input bindings, display-zone image bindings, and the brightness
// singleton.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultPath is the database file created alongside the daemon binary.
const DefaultPath = "./ajazz_launchpad_db.db3"

const schema = `
CREATE TABLE IF NOT EXISTS input_mapping (
	button_id INTEGER PRIMARY KEY,
	actions   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS image_mapping (
	display_zone_id INTEGER PRIMARY KEY,
	image_path       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS config_mapping (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	brightness INTEGER
);
`

// Store is the embedded-relational-store handle. It is safe for concurrent
// use; database/sql already serializes access to the underlying *sql.DB.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and
// idempotently applies the schema. Pass ":memory:" for an in-memory store,
// the form used by tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// InputBinding is one row of the input_mapping table.
type InputBinding struct {
	ButtonID uint16
	Actions  string
}

// SetInputBinding upserts the binding for buttonID, replacing any existing
// row for the same key.
func (s *Store) SetInputBinding(buttonID uint16, actions string) error {
	_, err := s.db.Exec(
		`INSERT INTO input_mapping (button_id, actions) VALUES (?, ?)
		 ON CONFLICT(button_id) DO UPDATE SET actions = excluded.actions`,
		buttonID, actions,
	)
	if err != nil {
		return fmt.Errorf("store: set input binding %d: %w", buttonID, err)
	}
	return nil
}

// GetAllInputBindings returns every input binding in unspecified order.
func (s *Store) GetAllInputBindings() ([]InputBinding, error) {
	rows, err := s.db.Query(`SELECT button_id, actions FROM input_mapping`)
	if err != nil {
		return nil, fmt.Errorf("store: get all input bindings: %w", err)
	}
	defer rows.Close()

	var out []InputBinding
	for rows.Next() {
		var b InputBinding
		if err := rows.Scan(&b.ButtonID, &b.Actions); err != nil {
			return nil, fmt.Errorf("store: scan input binding: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ImageBinding is one row of the image_mapping table.
type ImageBinding struct {
	DisplayZoneID uint16
	ImagePath     string
}

// SetImageBinding upserts the image bound to a display zone.
func (s *Store) SetImageBinding(zoneID uint16, imagePath string) error {
	_, err := s.db.Exec(
		`INSERT INTO image_mapping (display_zone_id, image_path) VALUES (?, ?)
		 ON CONFLICT(display_zone_id) DO UPDATE SET image_path = excluded.image_path`,
		zoneID, imagePath,
	)
	if err != nil {
		return fmt.Errorf("store: set image binding %d: %w", zoneID, err)
	}
	return nil
}

// ClearImageBinding deletes the image binding for one zone, if present.
func (s *Store) ClearImageBinding(zoneID uint16) error {
	if _, err := s.db.Exec(`DELETE FROM image_mapping WHERE display_zone_id = ?`, zoneID); err != nil {
		return fmt.Errorf("store: clear image binding %d: %w", zoneID, err)
	}
	return nil
}

// ClearAllImageBindings deletes every image binding.
func (s *Store) ClearAllImageBindings() error {
	if _, err := s.db.Exec(`DELETE FROM image_mapping`); err != nil {
		return fmt.Errorf("store: clear all image bindings: %w", err)
	}
	return nil
}

// GetAllImageBindings returns every image binding in unspecified order.
func (s *Store) GetAllImageBindings() ([]ImageBinding, error) {
	rows, err := s.db.Query(`SELECT display_zone_id, image_path FROM image_mapping`)
	if err != nil {
		return nil, fmt.Errorf("store: get all image bindings: %w", err)
	}
	defer rows.Close()

	var out []ImageBinding
	for rows.Next() {
		var b ImageBinding
		if err := rows.Scan(&b.DisplayZoneID, &b.ImagePath); err != nil {
			return nil, fmt.Errorf("store: scan image binding: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SetBrightness upserts the singleton brightness row.
func (s *Store) SetBrightness(b int) error {
	_, err := s.db.Exec(
		`INSERT INTO config_mapping (id, brightness) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET brightness = excluded.brightness`,
		b,
	)
	if err != nil {
		return fmt.Errorf("store: set brightness: %w", err)
	}
	return nil
}

// GetBrightness returns the persisted brightness, or ok=false if none has
// been set yet.
func (s *Store) GetBrightness() (brightness int, ok bool, err error) {
	row := s.db.QueryRow(`SELECT brightness FROM config_mapping WHERE id = 1`)
	if err := row.Scan(&brightness); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("store: get brightness: %w", err)
	}
	return brightness, true, nil
}
