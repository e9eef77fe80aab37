// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like the config file, the history backend, HTTP clients or the CLI.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., CompletionClient, ConfigProvider)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/askcmd/internal/domain"
)

// StorageLocator resolves where askcmd keeps its files.
// Paths are computed on every call so tests can redirect storage.
type StorageLocator interface {
	Dir() (string, error)
	ConfigPath() (string, error)
	HistoryPath() (string, error)
	HistoryDBPath() (string, error)
}

// ConfigProvider loads the credential and model used for a query.
// Implementations read the config file or the process environment.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ConfigStore is a ConfigProvider that can also persist the configuration.
type ConfigStore interface {
	ConfigProvider
	Save(domain.Config) error
	Path() (string, error)
}

// HistoryRepository is the append-only log of past queries.
type HistoryRepository interface {
	Append(query, response string) error
	List() ([]domain.HistoryEntry, error)
	Clear() error
	Path() (string, error)
}

// Transport sends an HTTPS POST and returns the status and body.
// A non-nil error means no response was received.
type Transport interface {
	Post(ctx context.Context, url string, headers map[string]string, body []byte) (int, []byte, error)
}

// CompletionClient sends a conversation to the completion endpoint and returns
// the raw text of the first choice.
type CompletionClient interface {
	Complete(ctx context.Context, messages []domain.ConversationMessage, credential, model string) (string, error)
}

// ResponsePresenter delivers a finished answer to the user before it is recorded.
type ResponsePresenter interface {
	Present(domain.QueryResponse) error
}

// SetupPrompter collects the credential and model interactively.
type SetupPrompter interface {
	AskConfig(defaults domain.Config) (domain.Config, error)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
