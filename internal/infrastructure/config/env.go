package config

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/ports"
)

// EnvProvider sources the config from the process environment for direct invocations.
type EnvProvider struct {
	dotenvFiles []string
}

// NewEnvProvider loads the given .env files (default: ./.env) before reading the environment.
// Variables already set in the process are never overridden.
func NewEnvProvider(dotenvFiles ...string) *EnvProvider {
	return &EnvProvider{dotenvFiles: dotenvFiles}
}

// Load implements ports.ConfigProvider.
func (p *EnvProvider) Load(context.Context) (domain.Config, error) {
	p.loadDotenv()

	key := strings.TrimSpace(os.Getenv(domain.EnvAPIKey))
	if key == "" {
		return domain.Config{}, domain.NewError(domain.ErrMissingCredential, domain.EnvAPIKey, nil)
	}

	model := strings.TrimSpace(os.Getenv(domain.EnvModel))
	if model == "" {
		model = domain.DefaultModel
	}

	cfg := domain.Config{APIKey: key, Model: model}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, domain.NewError(domain.ErrInvalidConfig, domain.EnvModel, err)
	}
	return cfg, nil
}

func (p *EnvProvider) loadDotenv() {
	files := p.dotenvFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		// a malformed .env file is ignored, matching a missing one
		_ = godotenv.Load(file)
	}
}

var _ ports.ConfigProvider = (*EnvProvider)(nil)
