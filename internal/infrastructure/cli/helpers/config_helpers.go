package helpers

import (
	"fmt"
	"io"

	configapp "github.com/doeshing/askcmd/internal/application/config"
	"github.com/doeshing/askcmd/internal/domain"
	configinfra "github.com/doeshing/askcmd/internal/infrastructure/config"
)

// SaveConfigWithValidation validates and saves configuration with automatic backup
func SaveConfigWithValidation(out io.Writer, store *configinfra.FileStore, cfg domain.Config) (string, error) {
	if store == nil {
		return "", fmt.Errorf("config store unavailable")
	}

	cfg = cfg.Normalized()
	if err := configapp.Validate(cfg); err != nil {
		return "", err
	}

	if store.Exists() {
		backup, err := store.Backup()
		if err != nil {
			return "", fmt.Errorf("failed to create configuration backup: %w", err)
		}
		fmt.Fprintf(out, "Existing config backed up to: %s\n", backup)
	}

	if err := store.Save(cfg); err != nil {
		return "", fmt.Errorf("failed to save configuration: %w", err)
	}

	return store.Path()
}
