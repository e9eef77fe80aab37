package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/ports"
)

// Locator resolves the askcmd storage directory, <user-config-dir>/.askcmd by default.
type Locator struct {
	overrideDir string
}

// NewLocator builds a locator honoring ASKCMD_CONFIG_DIR.
func NewLocator() *Locator {
	return &Locator{}
}

// NewLocatorAt pins storage to dir, ignoring the environment.
func NewLocatorAt(dir string) *Locator {
	return &Locator{overrideDir: dir}
}

// Dir implements ports.StorageLocator.
func (l *Locator) Dir() (string, error) {
	if l.overrideDir != "" {
		return l.overrideDir, nil
	}
	if custom := os.Getenv(domain.EnvConfigDir); custom != "" {
		return ExpandPath(custom), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find the configuration directory: %w", err)
	}
	return filepath.Join(base, "."+domain.AppName), nil
}

// ConfigPath implements ports.StorageLocator.
func (l *Locator) ConfigPath() (string, error) {
	return l.join(domain.ConfigFileName)
}

// HistoryPath implements ports.StorageLocator.
func (l *Locator) HistoryPath() (string, error) {
	return l.join(domain.HistoryFileName)
}

// HistoryDBPath implements ports.StorageLocator.
func (l *Locator) HistoryDBPath() (string, error) {
	return l.join(domain.HistoryDBFileName)
}

func (l *Locator) join(name string) (string, error) {
	dir, err := l.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// ExpandPath resolves a leading "~/" against the home directory.
func ExpandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

// WriteFileAtomic replaces path with data via a temp file in the same directory,
// so readers see either the old or the new content.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Exists reports whether path exists; errors other than not-exist count as present.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

var _ ports.StorageLocator = (*Locator)(nil)
