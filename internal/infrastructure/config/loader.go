package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/pkg/filesystem"
	"github.com/doeshing/askcmd/internal/ports"
)

// FileStore loads and saves the JSON config at <storage-dir>/config.json.
type FileStore struct {
	locator ports.StorageLocator
}

// NewFileStore builds a store resolving its path through locator.
func NewFileStore(locator ports.StorageLocator) *FileStore {
	return &FileStore{locator: locator}
}

// Load implements ports.ConfigProvider.
func (s *FileStore) Load(context.Context) (domain.Config, error) {
	path, err := s.Path()
	if err != nil {
		return domain.Config{}, domain.NewError(domain.ErrNotConfigured, "resolve config path", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, domain.NewError(domain.ErrNotConfigured, path, nil)
		}
		return domain.Config{}, domain.NewError(domain.ErrInvalidConfig, path, err)
	}

	var cfg domain.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, domain.NewError(domain.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, domain.NewError(domain.ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// Save overwrites the config file, creating the storage directory if needed.
func (s *FileStore) Save(cfg domain.Config) error {
	if err := cfg.Validate(); err != nil {
		return domain.NewError(domain.ErrInvalidConfig, "save config", err)
	}
	path, err := s.Path()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := filesystem.WriteFileAtomic(path, raw, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Path returns the resolved config file location.
func (s *FileStore) Path() (string, error) {
	return s.locator.ConfigPath()
}

// Exists reports whether a config file is present, regardless of validity.
func (s *FileStore) Exists() bool {
	path, err := s.Path()
	if err != nil {
		return false
	}
	return filesystem.Exists(path)
}

// Backup copies the current config next to itself with a .bak suffix.
func (s *FileStore) Backup() (string, error) {
	path, err := s.Path()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := path + ".bak"
	if err := filesystem.WriteFileAtomic(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

var _ ports.ConfigStore = (*FileStore)(nil)
