// Package store persists user settings and the tailoring history ledger in a
// local SQLite database.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/hrakoto/tailor/internal/model"
)

// Settings keys.
const (
	keyProfile  = "profile"
	keyAPIKey   = "api_key"
	keyMasterCV = "master_cv"
)

// SQLiteStore implements model.SettingsStore and model.HistoryStore on a
// single database file. One process, one writer; no extra locking needed.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the
// schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			seq      INTEGER PRIMARY KEY AUTOINCREMENT,
			id       TEXT NOT NULL,
			company  TEXT NOT NULL,
			position TEXT NOT NULL,
			date     TEXT NOT NULL,
			status   TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) setValue(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("saving setting %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) getValue(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("loading setting %s: %w", key, err)
	}
	return value, true, nil
}

// SaveProfile stores the profile as JSON under the profile key.
func (s *SQLiteStore) SaveProfile(p model.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.setValue(keyProfile, string(data))
}

// LoadProfile returns the stored profile; ok is false when none was saved yet.
func (s *SQLiteStore) LoadProfile() (model.Profile, bool, error) {
	value, ok, err := s.getValue(keyProfile)
	if err != nil || !ok {
		return model.Profile{}, false, err
	}
	var p model.Profile
	if err := json.Unmarshal([]byte(value), &p); err != nil {
		return model.Profile{}, false, fmt.Errorf("unmarshal profile: %w", err)
	}
	return p, true, nil
}

// SaveAPIKey stores the provider credential.
func (s *SQLiteStore) SaveAPIKey(key string) error {
	return s.setValue(keyAPIKey, key)
}

// LoadAPIKey returns the stored credential, empty if none.
func (s *SQLiteStore) LoadAPIKey() (string, error) {
	value, _, err := s.getValue(keyAPIKey)
	return value, err
}

// SaveMasterCV stores the formatted master CV text.
func (s *SQLiteStore) SaveMasterCV(text string) error {
	return s.setValue(keyMasterCV, text)
}

// LoadMasterCV returns the stored master CV, empty if none.
func (s *SQLiteStore) LoadMasterCV() (string, error) {
	value, _, err := s.getValue(keyMasterCV)
	return value, err
}

// Append records one history entry. Entries are immutable once written.
func (s *SQLiteStore) Append(e model.HistoryEntry) error {
	_, err := s.db.Exec(
		"INSERT INTO history (id, company, position, date, status) VALUES (?, ?, ?, ?, ?)",
		e.ID, e.Company, e.Position, e.Date, e.Status)
	if err != nil {
		return fmt.Errorf("appending history entry %s: %w", e.ID, err)
	}
	return nil
}

// List returns all history entries, most recent first.
func (s *SQLiteStore) List() ([]model.HistoryEntry, error) {
	rows, err := s.db.Query(
		"SELECT id, company, position, date, status FROM history ORDER BY seq DESC")
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Company, &e.Position, &e.Date, &e.Status); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return entries, nil
}

// Clear drops every history entry. Safe to call on an empty ledger.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
