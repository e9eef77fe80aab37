package query

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/askcmd/internal/application/prompt"
	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/infrastructure/history"
	"github.com/doeshing/askcmd/internal/pkg/filesystem"
	"github.com/doeshing/askcmd/internal/pkg/logger"
)

func TestServiceRunPresentsThenRecords(t *testing.T) {
	client := &stubClient{reply: "  ls -la\n\n  echo done  "}
	hist := &stubHistory{}
	var events []string
	hist.onAppend = func() { events = append(events, "append") }
	presenter := &stubPresenter{onPresent: func() { events = append(events, "present") }}

	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: domain.Config{APIKey: "sk-test", Model: "gpt-4o"}},
		Client:         client,
		History:        hist,
		Presenter:      presenter,
		Logger:         logger.Discard(),
	}

	resp, err := svc.Run(context.Background(), domain.QueryRequest{Query: " list files "})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.Command != "ls -la\necho done" {
		t.Fatalf("Command = %q", resp.Command)
	}
	if diff := cmp.Diff([]string{"present", "append"}, events); diff != "" {
		t.Fatalf("call order mismatch (-want +got):\n%s", diff)
	}
	if client.credential != "sk-test" || client.model != "gpt-4o" {
		t.Fatalf("client received credential=%q model=%q", client.credential, client.model)
	}
	if diff := cmp.Diff(prompt.Build("list files"), client.messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if len(hist.entries) != 1 || hist.entries[0] != [2]string{" list files ", "ls -la\necho done"} {
		t.Fatalf("history = %+v", hist.entries)
	}
}

func TestServiceRunConfigErrorsAreReturned(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{name: "not configured", err: domain.NewError(domain.ErrNotConfigured, "config.json", nil), kind: domain.ErrNotConfigured},
		{name: "invalid config", err: domain.NewError(domain.ErrInvalidConfig, "config.json", errors.New("eof")), kind: domain.ErrInvalidConfig},
		{name: "missing credential", err: domain.NewError(domain.ErrMissingCredential, domain.EnvAPIKey, nil), kind: domain.ErrMissingCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{reply: "ls"}
			hist := &stubHistory{}
			svc := &Service{
				ConfigProvider: stubConfigProvider{err: tt.err},
				Client:         client,
				History:        hist,
				Logger:         logger.Discard(),
			}

			_, err := svc.Run(context.Background(), domain.QueryRequest{Query: "list files"})
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			if client.called {
				t.Fatal("client must not be called without config")
			}
			if len(hist.entries) != 0 {
				t.Fatal("nothing must be recorded")
			}
		})
	}
}

func TestServiceRunTransportFailureWritesNoHistory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".askcmd")
	store := history.NewFileStore(filesystem.NewLocatorAt(dir))
	presenter := &stubPresenter{}

	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: domain.Config{APIKey: "sk-test", Model: "gpt-4o"}},
		Client:         &stubClient{err: domain.NewError(domain.ErrTransport, "POST", errors.New("connection refused"))},
		History:        store,
		Presenter:      presenter,
		Logger:         logger.Discard(),
	}

	_, err := svc.Run(context.Background(), domain.QueryRequest{Query: "list files"})
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if presenter.called {
		t.Fatal("nothing should be presented on failure")
	}
	entries, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no history, got %+v", entries)
	}
}

func TestServiceRunHistoryFailureKeepsAnswer(t *testing.T) {
	presenter := &stubPresenter{}
	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: domain.Config{APIKey: "sk-test", Model: "gpt-4o"}},
		Client:         &stubClient{reply: "ls"},
		History:        &stubHistory{err: domain.NewError(domain.ErrPersistence, "history.json", errors.New("read-only file system"))},
		Presenter:      presenter,
		Logger:         logger.Discard(),
	}

	resp, err := svc.Run(context.Background(), domain.QueryRequest{Query: "list files"})
	if err != nil {
		t.Fatalf("Run() error = %v, history failures must not fail the query", err)
	}
	if !presenter.called {
		t.Fatal("answer must be presented")
	}
	if resp.Command != "ls" {
		t.Fatalf("Command = %q", resp.Command)
	}
	if !errors.Is(resp.HistoryErr, domain.ErrPersistence) {
		t.Fatalf("HistoryErr = %v", resp.HistoryErr)
	}
}

func TestServiceRunRejectsEmptyQuery(t *testing.T) {
	client := &stubClient{reply: "ls"}
	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: domain.Config{APIKey: "sk-test", Model: "gpt-4o"}},
		Client:         client,
		Logger:         logger.Discard(),
	}

	_, err := svc.Run(context.Background(), domain.QueryRequest{Query: "   "})
	if !errors.Is(err, domain.ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
	if client.called {
		t.Fatal("client must not be called for an empty query")
	}
}

func TestServiceRunMissingDependencies(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Run(context.Background(), domain.QueryRequest{Query: "ls"}); err == nil {
		t.Fatal("expected dependency error")
	}
}

func TestWithPresenterDoesNotMutateOriginal(t *testing.T) {
	svc := &Service{Logger: logger.Discard()}
	p := &stubPresenter{}

	clone := svc.WithPresenter(p)
	if svc.Presenter != nil {
		t.Fatal("original service was mutated")
	}
	if clone.Presenter != p {
		t.Fatal("clone did not receive presenter")
	}
}

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type stubClient struct {
	reply      string
	err        error
	called     bool
	messages   []domain.ConversationMessage
	credential string
	model      string
}

func (s *stubClient) Complete(_ context.Context, messages []domain.ConversationMessage, credential, model string) (string, error) {
	s.called = true
	s.messages = messages
	s.credential = credential
	s.model = model
	return s.reply, s.err
}

type stubHistory struct {
	entries  [][2]string
	err      error
	onAppend func()
}

func (s *stubHistory) Append(query, response string) error {
	if s.onAppend != nil {
		s.onAppend()
	}
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, [2]string{query, response})
	return nil
}

func (s *stubHistory) List() ([]domain.HistoryEntry, error) { return nil, nil }
func (s *stubHistory) Clear() error                        { return nil }
func (s *stubHistory) Path() (string, error)               { return "history.json", nil }

type stubPresenter struct {
	called    bool
	onPresent func()
}

func (s *stubPresenter) Present(domain.QueryResponse) error {
	s.called = true
	if s.onPresent != nil {
		s.onPresent()
	}
	return nil
}
