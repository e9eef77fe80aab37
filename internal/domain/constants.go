package domain

import "time"

// Application identity
const (
	// AppName names the binary and the storage directory (".askcmd").
	AppName = "askcmd"
	// ConfigFileName is the config file inside the storage directory
	ConfigFileName = "config.json"
	// HistoryFileName is the JSON history log inside the storage directory
	HistoryFileName = "history.json"
	// HistoryDBFileName is the SQLite history database inside the storage directory
	HistoryDBFileName = "history.db"
)

// Environment variables
const (
	EnvAPIKey         = "OPENAI_API_KEY"
	EnvModel          = "OPENAI_MODEL"
	EnvConfigDir      = "ASKCMD_CONFIG_DIR"
	EnvHistoryBackend = "ASKCMD_HISTORY_BACKEND"
	EnvEndpoint       = "ASKCMD_ENDPOINT"
	EnvDebug          = "ASKCMD_DEBUG"
)

// History backends
const (
	HistoryBackendJSON   = "json"
	HistoryBackendSQLite = "sqlite"
)

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Completion endpoint defaults
const (
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"
	DefaultModel    = "gpt-3.5-turbo"
	// DefaultHTTPClientTimeout bounds a single completion request
	DefaultHTTPClientTimeout = 30 * time.Second
)

// Time formats
const (
	// TimestampFormat is the persisted timestamp format
	TimestampFormat = time.RFC3339
	// DisplayTimestampFormat is used when listing history
	DisplayTimestampFormat = "Jan 02, 2006 03:04 PM"
)
