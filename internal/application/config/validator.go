package config

import (
	"fmt"

	"github.com/doeshing/askcmd/internal/domain"
)

// Validate ensures a config collected by setup can be saved.
func Validate(cfg domain.Config) error {
	if err := cfg.Normalized().Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// Credential validates a prompt answer for the API key.
func Credential(val interface{}) error {
	str, ok := val.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", val)
	}
	return domain.ValidateCredential(str)
}

// ModelName validates a prompt answer for the model name.
func ModelName(val interface{}) error {
	str, ok := val.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", val)
	}
	return domain.ValidateModel(str)
}
