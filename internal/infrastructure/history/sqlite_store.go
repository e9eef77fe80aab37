package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/ports"
)

// SQLiteStore persists history in <storage-dir>/history.db.
// The database is opened per operation so the path follows the locator.
type SQLiteStore struct {
	locator ports.StorageLocator
	now     func() time.Time
}

// NewSQLiteStore creates a SQLite-backed history store.
func NewSQLiteStore(locator ports.StorageLocator) *SQLiteStore {
	return &SQLiteStore{locator: locator, now: time.Now}
}

// WithClock overrides the timestamp source.
func (s *SQLiteStore) WithClock(now func() time.Time) *SQLiteStore {
	s.now = now
	return s
}

func (s *SQLiteStore) open(create bool) (*sql.DB, string, error) {
	path, err := s.Path()
	if err != nil {
		return nil, "", err
	}
	if create {
		if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
			return nil, path, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, path, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,
		response TEXT NOT NULL,
		timestamp TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, path, err
	}
	return db, path, nil
}

// Append inserts a new entry.
func (s *SQLiteStore) Append(query, response string) error {
	db, path, err := s.open(true)
	if err != nil {
		return domain.NewError(domain.ErrPersistence, path, err)
	}
	defer db.Close()

	entry := domain.NewHistoryEntry(query, response, s.now())
	if _, err := db.Exec(`INSERT INTO history (query, response, timestamp) VALUES (?, ?, ?)`,
		entry.Query, entry.Response, entry.Timestamp); err != nil {
		return domain.NewError(domain.ErrPersistence, path, err)
	}
	return nil
}

// List returns entries in insertion order.
func (s *SQLiteStore) List() ([]domain.HistoryEntry, error) {
	path, err := s.Path()
	if err != nil {
		return nil, domain.NewError(domain.ErrPersistence, "resolve history path", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return []domain.HistoryEntry{}, nil
	}

	db, _, err := s.open(false)
	if err != nil {
		return nil, domain.NewError(domain.ErrPersistence, path, err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT query, response, timestamp FROM history ORDER BY id ASC`)
	if err != nil {
		return nil, domain.NewError(domain.ErrPersistence, path, err)
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var entry domain.HistoryEntry
		if err := rows.Scan(&entry.Query, &entry.Response, &entry.Timestamp); err != nil {
			return nil, domain.NewError(domain.ErrPersistence, path, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewError(domain.ErrPersistence, path, fmt.Errorf("iterate history: %w", err))
	}
	return entries, nil
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	path, err := s.Path()
	if err != nil {
		return domain.NewError(domain.ErrPersistence, "resolve history path", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	db, _, err := s.open(false)
	if err != nil {
		return domain.NewError(domain.ErrPersistence, path, err)
	}
	defer db.Close()
	if _, err := db.Exec("DELETE FROM history"); err != nil {
		return domain.NewError(domain.ErrPersistence, path, err)
	}
	return nil
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() (string, error) {
	return s.locator.HistoryDBPath()
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
