package commands

// Flag defaults
const (
	DefaultHistoryLimit = 0
	ExportFormatJSON    = "json"
	ExportFormatYAML    = "yaml"
	stdoutPath          = "-"
)

// Error messages
const (
	ErrConfigStoreUnavailable   = "config store unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrHistoryStoreUnavailable  = "history store unavailable"
	ErrPrompterUnavailable      = "setup prompter unavailable"
)

// Messages
const (
	MsgNoHistoryFound     = "No history found"
	MsgNoMatchingHistory  = "No matching history entries"
	MsgHistoryCleared     = "History cleared."
	MsgConfigurationValid = "Configuration valid"
)
