package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/infrastructure/config"
	"github.com/doeshing/askcmd/internal/infrastructure/history"
	"github.com/doeshing/askcmd/internal/pkg/filesystem"
)

func statusOf(t *testing.T, report domain.HealthReport, name string) domain.HealthStatus {
	t.Helper()
	for _, check := range report.Checks {
		if check.Name == name {
			return check.Status
		}
	}
	t.Fatalf("check %q missing from report %+v", name, report)
	return ""
}

func newService(dir string) *Service {
	loc := filesystem.NewLocatorAt(dir)
	return &Service{
		Locator:        loc,
		ConfigProvider: config.NewFileStore(loc),
		History:        history.NewFileStore(loc),
	}
}

func TestDoctorFreshEnvironmentWarns(t *testing.T) {
	t.Setenv(domain.EnvAPIKey, "")
	svc := newService(filepath.Join(t.TempDir(), ".askcmd"))

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := statusOf(t, report, "Config file"); got != domain.HealthWarn {
		t.Errorf("Config file = %s, want warn", got)
	}
	if got := statusOf(t, report, "History"); got != domain.HealthOK {
		t.Errorf("History = %s, want ok", got)
	}
	if got := statusOf(t, report, "Environment"); got != domain.HealthWarn {
		t.Errorf("Environment = %s, want warn", got)
	}
	if got := statusOf(t, report, "Endpoint"); got != domain.HealthOK {
		t.Errorf("Endpoint = %s, want ok", got)
	}
}

func TestDoctorConfiguredEnvironment(t *testing.T) {
	t.Setenv(domain.EnvAPIKey, "sk-env")
	dir := filepath.Join(t.TempDir(), ".askcmd")
	svc := newService(dir)
	if err := config.NewFileStore(filesystem.NewLocatorAt(dir)).Save(domain.Config{APIKey: "sk-test", Model: "gpt-4o"}); err != nil {
		t.Fatal(err)
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, check := range report.Checks {
		if check.Status != domain.HealthOK {
			t.Errorf("%s = %s (%s), want ok", check.Name, check.Status, check.Details)
		}
	}
}

func TestDoctorReportsBrokenState(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".askcmd")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, domain.HistoryFileName), []byte("nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	svc := newService(dir)
	svc.Endpoint = "not a url"

	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected failure")
	}
	for _, name := range []string{"Config file", "History", "Endpoint"} {
		if got := statusOf(t, report, name); got != domain.HealthError {
			t.Errorf("%s = %s, want error", name, got)
		}
	}
}

type failingLocator struct{}

func (failingLocator) Dir() (string, error)           { return "", errors.New("no home") }
func (failingLocator) ConfigPath() (string, error)    { return "", errors.New("no home") }
func (failingLocator) HistoryPath() (string, error)   { return "", errors.New("no home") }
func (failingLocator) HistoryDBPath() (string, error) { return "", errors.New("no home") }

func TestDoctorStorageFailure(t *testing.T) {
	svc := &Service{Locator: failingLocator{}}
	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected failure")
	}
	if got := statusOf(t, report, "Storage directory"); got != domain.HealthError {
		t.Errorf("Storage directory = %s", got)
	}
}
