package app

import (
	"context"
	"os"
	"time"

	"github.com/doeshing/askcmd/internal/application/doctor"
	"github.com/doeshing/askcmd/internal/application/query"
	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/infrastructure/ai"
	"github.com/doeshing/askcmd/internal/infrastructure/config"
	"github.com/doeshing/askcmd/internal/infrastructure/history"
	"github.com/doeshing/askcmd/internal/pkg/filesystem"
	"github.com/doeshing/askcmd/internal/pkg/logger"
	"github.com/doeshing/askcmd/internal/ports"
)

// Options tunes how the container is assembled.
type Options struct {
	Verbose bool
	// Timeout sets a client-side cap on top of the context deadline; zero disables it.
	Timeout time.Duration
	// Locator overrides the storage location; nil uses the user config directory.
	Locator ports.StorageLocator
	// Transport overrides the HTTP transport; nil uses resty.
	Transport ports.Transport
	// Endpoint overrides the completion URL; empty reads ASKCMD_ENDPOINT.
	Endpoint string
	Logger   ports.Logger
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	// QueryService reads the config file.
	QueryService *query.Service
	// DirectQueryService reads the credential from the environment.
	DirectQueryService *query.Service
	ConfigStore        *config.FileStore
	HistoryStore       ports.HistoryRepository
	DoctorService      *doctor.Service
	Locator            ports.StorageLocator
	Logger             ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(_ context.Context, opts Options) (*Container, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewStd(opts.Verbose)
	}

	locator := opts.Locator
	if locator == nil {
		locator = filesystem.NewLocator()
	}

	historyStore, err := history.NewFromEnv(locator)
	if err != nil {
		return nil, err
	}

	// Timeout zero leaves the bound to the command context (--timeout).
	transport := opts.Transport
	if transport == nil {
		transport = ai.NewRestyTransport(opts.Timeout)
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = os.Getenv(domain.EnvEndpoint)
	}
	client := ai.NewClient(transport, endpoint, log)

	cfgStore := config.NewFileStore(locator)

	queryService := &query.Service{
		ConfigProvider: cfgStore,
		Client:         client,
		History:        historyStore,
		Logger:         log,
	}

	directService := &query.Service{
		ConfigProvider: config.NewEnvProvider(),
		Client:         client,
		History:        historyStore,
		Logger:         log,
	}

	doctorService := &doctor.Service{
		Locator:        locator,
		ConfigProvider: cfgStore,
		History:        historyStore,
		Endpoint:       client.Endpoint(),
	}

	return &Container{
		QueryService:       queryService,
		DirectQueryService: directService,
		ConfigStore:        cfgStore,
		HistoryStore:       historyStore,
		DoctorService:      doctorService,
		Locator:            locator,
		Logger:             log,
	}, nil
}
