package history

import (
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/ports"
)

// NewFromEnv picks the history backend named by ASKCMD_HISTORY_BACKEND (json by default).
func NewFromEnv(locator ports.StorageLocator) (ports.HistoryRepository, error) {
	return New(os.Getenv(domain.EnvHistoryBackend), locator)
}

// New builds the named history backend.
func New(backend string, locator ports.StorageLocator) (ports.HistoryRepository, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", domain.HistoryBackendJSON:
		return NewFileStore(locator), nil
	case domain.HistoryBackendSQLite:
		return NewSQLiteStore(locator), nil
	default:
		return nil, fmt.Errorf("unsupported history backend %q (want %s or %s)",
			backend, domain.HistoryBackendJSON, domain.HistoryBackendSQLite)
	}
}
