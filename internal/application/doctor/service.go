package doctor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	Locator        ports.StorageLocator
	ConfigProvider ports.ConfigProvider
	History        ports.HistoryRepository
	Endpoint       string
}

// Run executes checks and returns a report. The error is non-nil when any check failed.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	if s.Locator != nil {
		if dir, err := s.Locator.Dir(); err != nil {
			checks = append(checks, fail("Storage directory", err.Error()))
		} else {
			checks = append(checks, ok("Storage directory", dir))
		}
	}

	if s.ConfigProvider != nil {
		checks = append(checks, configCheck(ctx, s.ConfigProvider))
	}

	if s.History != nil {
		if entries, err := s.History.List(); err != nil {
			checks = append(checks, fail("History", err.Error()))
		} else {
			checks = append(checks, ok("History", fmt.Sprintf("%d entries", len(entries))))
		}
	}

	checks = append(checks, credentialCheck())
	checks = append(checks, endpointCheck(s.Endpoint))

	report := domain.HealthReport{Checks: checks}
	for _, check := range checks {
		if check.Status == domain.HealthError {
			return report, errors.New("one or more checks failed")
		}
	}
	return report, nil
}

func configCheck(ctx context.Context, provider ports.ConfigProvider) domain.HealthCheck {
	cfg, err := provider.Load(ctx)
	switch {
	case err == nil:
		return ok("Config file", fmt.Sprintf("model %s, api_key %s", cfg.Model, domain.MaskSecret(cfg.APIKey)))
	case errors.Is(err, domain.ErrNotConfigured):
		return warn("Config file", fmt.Sprintf("not configured, run `%s setup`", domain.AppName))
	default:
		return fail("Config file", err.Error())
	}
}

func credentialCheck() domain.HealthCheck {
	if os.Getenv(domain.EnvAPIKey) == "" {
		return warn("Environment", fmt.Sprintf("%s not set (needed for direct mode only)", domain.EnvAPIKey))
	}
	return ok("Environment", fmt.Sprintf("%s set", domain.EnvAPIKey))
}

func endpointCheck(endpoint string) domain.HealthCheck {
	if endpoint == "" {
		endpoint = domain.DefaultEndpoint
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return fail("Endpoint", err.Error())
	}
	if !parsed.IsAbs() || (parsed.Scheme != "https" && parsed.Scheme != "http") || parsed.Host == "" {
		return fail("Endpoint", fmt.Sprintf("%s is not an absolute http(s) URL", endpoint))
	}
	if parsed.Scheme == "http" {
		return warn("Endpoint", fmt.Sprintf("%s is not using TLS", endpoint))
	}
	return ok("Endpoint", endpoint)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
