package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/pkg/filesystem"
	"github.com/doeshing/askcmd/internal/ports"
)

// FileStore keeps history as a JSON array in <storage-dir>/history.json.
// Every append rewrites the whole file; there is no locking between processes.
type FileStore struct {
	locator ports.StorageLocator
	now     func() time.Time
}

// NewFileStore creates a history store resolving its path through locator.
func NewFileStore(locator ports.StorageLocator) *FileStore {
	return &FileStore{locator: locator, now: time.Now}
}

// WithClock overrides the timestamp source.
func (f *FileStore) WithClock(now func() time.Time) *FileStore {
	f.now = now
	return f
}

// Append implements ports.HistoryRepository.
func (f *FileStore) Append(query, response string) error {
	path, err := f.Path()
	if err != nil {
		return domain.NewError(domain.ErrPersistence, "resolve history path", err)
	}

	// an unreadable or absent log starts a new one
	data, _ := os.ReadFile(path)
	entries, err := decode(data)
	if err != nil {
		return domain.NewError(domain.ErrPersistence, path, err)
	}

	entries = append(entries, domain.NewHistoryEntry(query, response, f.now()))
	raw, err := json.Marshal(entries)
	if err != nil {
		return domain.NewError(domain.ErrPersistence, path, err)
	}
	if err := filesystem.WriteFileAtomic(path, raw, domain.SecureFilePermissions); err != nil {
		return domain.NewError(domain.ErrPersistence, path, err)
	}
	return nil
}

// List implements ports.HistoryRepository.
func (f *FileStore) List() ([]domain.HistoryEntry, error) {
	path, err := f.Path()
	if err != nil {
		return nil, domain.NewError(domain.ErrPersistence, "resolve history path", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.HistoryEntry{}, nil
		}
		return nil, domain.NewError(domain.ErrPersistence, path, err)
	}
	entries, err := decode(data)
	if err != nil {
		return nil, domain.NewError(domain.ErrPersistence, path, err)
	}
	return entries, nil
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	path, err := f.Path()
	if err != nil {
		return domain.NewError(domain.ErrPersistence, "resolve history path", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.NewError(domain.ErrPersistence, path, err)
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() (string, error) {
	return f.locator.HistoryPath()
}

func decode(data []byte) ([]domain.HistoryEntry, error) {
	entries := []domain.HistoryEntry{}
	if len(bytes.TrimSpace(data)) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	if entries == nil {
		// literal "null"
		entries = []domain.HistoryEntry{}
	}
	return entries, nil
}

var _ ports.HistoryRepository = (*FileStore)(nil)
