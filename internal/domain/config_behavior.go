package domain

import (
	"errors"
	"strings"
)

var (
	errEmptyCredential = errors.New("api_key must not be empty")
	errEmptyModel      = errors.New("model must not be empty")
)

// Validate reports whether the configuration can be used for a query.
func (c Config) Validate() error {
	if err := ValidateCredential(c.APIKey); err != nil {
		return err
	}
	return ValidateModel(c.Model)
}

// ValidateCredential rejects blank credentials.
func ValidateCredential(key string) error {
	if strings.TrimSpace(key) == "" {
		return errEmptyCredential
	}
	return nil
}

// ValidateModel rejects blank model identifiers.
func ValidateModel(model string) error {
	if strings.TrimSpace(model) == "" {
		return errEmptyModel
	}
	return nil
}

// Normalized returns a copy with surrounding whitespace removed from every field.
func (c Config) Normalized() Config {
	return Config{
		APIKey: strings.TrimSpace(c.APIKey),
		Model:  strings.TrimSpace(c.Model),
	}
}

// Masked returns a copy safe to display: only the last four characters of the
// credential survive.
func (c Config) Masked() Config {
	c.APIKey = MaskSecret(c.APIKey)
	return c
}

// MaskSecret hides all but the trailing four characters of secret.
func MaskSecret(secret string) string {
	runes := []rune(secret)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-4:])
}
