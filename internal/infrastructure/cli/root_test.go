package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/askcmd/internal/app"
	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/pkg/filesystem"
	"github.com/doeshing/askcmd/internal/pkg/logger"
)

type stubTransport struct {
	status int
	body   string
	err    error
	calls  int
	auth   string
}

func (s *stubTransport) Post(_ context.Context, _ string, headers map[string]string, _ []byte) (int, []byte, error) {
	s.calls++
	s.auth = headers["Authorization"]
	return s.status, []byte(s.body), s.err
}

type stubPrompter struct {
	cfg      domain.Config
	err      error
	defaults domain.Config
}

func (s *stubPrompter) AskConfig(defaults domain.Config) (domain.Config, error) {
	s.defaults = defaults
	return s.cfg, s.err
}

type harness struct {
	dir       string
	transport *stubTransport
	prompter  *stubPrompter
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv(domain.EnvHistoryBackend, "")
	t.Setenv(domain.EnvEndpoint, "")
	t.Setenv(domain.EnvAPIKey, "")
	t.Setenv(domain.EnvModel, "")
	return &harness{
		dir: t.TempDir(),
		transport: &stubTransport{
			status: 200,
			body:   `{"choices":[{"message":{"role":"assistant","content":"  ls -la  \n"}}]}`,
		},
		prompter: &stubPrompter{},
	}
}

func (h *harness) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root, err := NewRootCmd(context.Background(), Options{
		App: app.Options{
			Locator:   filesystem.NewLocatorAt(h.dir),
			Transport: h.transport,
			Logger:    logger.Discard(),
		},
		Prompter: h.prompter,
	})
	if err != nil {
		t.Fatalf("NewRootCmd() error = %v", err)
	}
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func (h *harness) history(t *testing.T) []domain.HistoryEntry {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(h.dir, domain.HistoryFileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	return entries
}

func TestQueryWithoutConfigPrintsGuidance(t *testing.T) {
	h := newHarness(t)

	stdout, _, err := h.run(t, "query", "list", "files")
	if err != nil {
		t.Fatalf("query error = %v, want nil", err)
	}
	if !strings.Contains(stdout, "askcmd setup") {
		t.Fatalf("stdout = %q, want setup guidance", stdout)
	}
	if h.transport.calls != 0 {
		t.Fatalf("transport called %d times", h.transport.calls)
	}
	if entries := h.history(t); len(entries) != 0 {
		t.Fatalf("history = %+v, want empty", entries)
	}
}

func TestSetupThenQueryRecordsHistory(t *testing.T) {
	h := newHarness(t)

	stdout, _, err := h.run(t, "setup", "--api-key", "sk-test", "--model", "gpt-4o")
	if err != nil {
		t.Fatalf("setup error = %v", err)
	}
	if !strings.Contains(stdout, filepath.Join(h.dir, domain.ConfigFileName)) {
		t.Fatalf("setup output = %q, want config path", stdout)
	}

	stdout, _, err = h.run(t, "query", "list", "all", "files")
	if err != nil {
		t.Fatalf("query error = %v", err)
	}
	if stdout != "ls -la\n" {
		t.Fatalf("stdout = %q, want %q", stdout, "ls -la\n")
	}
	if h.transport.auth != "Bearer sk-test" {
		t.Fatalf("Authorization = %q", h.transport.auth)
	}

	entries := h.history(t)
	if len(entries) != 1 {
		t.Fatalf("history len = %d, want 1", len(entries))
	}
	if diff := cmp.Diff([2]string{"list all files", "ls -la"}, [2]string{entries[0].Query, entries[0].Response}); diff != "" {
		t.Fatalf("history entry mismatch (-want +got):\n%s", diff)
	}
}

func TestSetupPromptsForMissingValues(t *testing.T) {
	h := newHarness(t)
	h.prompter.cfg = domain.Config{APIKey: "sk-prompted", Model: "gpt-4o-mini"}

	if _, _, err := h.run(t, "setup", "--model", "gpt-4o-mini"); err != nil {
		t.Fatalf("setup error = %v", err)
	}
	if h.prompter.defaults.Model != "gpt-4o-mini" {
		t.Fatalf("prompter defaults = %+v", h.prompter.defaults)
	}

	stdout, _, err := h.run(t, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if strings.Contains(stdout, "sk-prompted") || !strings.Contains(stdout, "pted") {
		t.Fatalf("config show = %q, want masked key", stdout)
	}
	if !strings.Contains(stdout, "model: gpt-4o-mini") {
		t.Fatalf("config show = %q, want model", stdout)
	}
}

func TestSetupRejectsEmptyValues(t *testing.T) {
	h := newHarness(t)
	h.prompter.cfg = domain.Config{APIKey: "  ", Model: "gpt-4o"}

	if _, _, err := h.run(t, "setup"); err == nil {
		t.Fatal("setup with blank key succeeded")
	}
	if filesystem.Exists(filepath.Join(h.dir, domain.ConfigFileName)) {
		t.Fatal("config written for invalid input")
	}
}

func TestQueryUpstreamFailureIsFatal(t *testing.T) {
	h := newHarness(t)
	if _, _, err := h.run(t, "setup", "--api-key", "sk-test", "--model", "gpt-4o"); err != nil {
		t.Fatalf("setup error = %v", err)
	}
	h.transport.status = 401
	h.transport.body = `{"error":{"message":"Incorrect API key provided"}}`

	stdout, _, err := h.run(t, "query", "list", "files")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("error = %v, want ErrUpstream", err)
	}
	if stdout != "" {
		t.Fatalf("stdout = %q, want empty", stdout)
	}
	if entries := h.history(t); len(entries) != 0 {
		t.Fatalf("history = %+v, want empty", entries)
	}
}

func TestDirectModeUsesEnvironment(t *testing.T) {
	h := newHarness(t)
	t.Setenv(domain.EnvAPIKey, "sk-env")

	stdout, _, err := h.run(t, "show", "disk", "usage")
	if err != nil {
		t.Fatalf("direct mode error = %v", err)
	}
	if stdout != "ls -la\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	if h.transport.auth != "Bearer sk-env" {
		t.Fatalf("Authorization = %q", h.transport.auth)
	}
	if entries := h.history(t); len(entries) != 1 || entries[0].Query != "show disk usage" {
		t.Fatalf("history = %+v", entries)
	}
}

func TestDirectModeWithoutCredentialFails(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "show", "disk", "usage")
	if !errors.Is(err, domain.ErrMissingCredential) {
		t.Fatalf("error = %v, want ErrMissingCredential", err)
	}
	if h.transport.calls != 0 {
		t.Fatalf("transport called %d times", h.transport.calls)
	}
}

func TestHistoryFailureIsWarningOnly(t *testing.T) {
	h := newHarness(t)
	if _, _, err := h.run(t, "setup", "--api-key", "sk-test", "--model", "gpt-4o"); err != nil {
		t.Fatalf("setup error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(h.dir, domain.HistoryFileName), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := h.run(t, "query", "list", "files")
	if err != nil {
		t.Fatalf("query error = %v, want nil", err)
	}
	if stdout != "ls -la\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "warning:") {
		t.Fatalf("stderr = %q, want warning", stderr)
	}
}
