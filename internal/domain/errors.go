package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Adapters wrap failures in *Error so callers can match with errors.Is.
var (
	ErrNotConfigured     = errors.New("not configured")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrTransport         = errors.New("transport error")
	ErrUpstream          = errors.New("upstream error")
	ErrPersistence       = errors.New("persistence error")
	ErrMissingCredential = errors.New("missing credential")
	ErrEmptyQuery        = errors.New("query must not be empty")
)

// Error is a classified failure raised by an adapter.
type Error struct {
	Kind       error
	Op         string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewError builds a classified error.
func NewError(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// NewUpstreamError builds an ErrUpstream carrying the HTTP status, 0 when unknown.
func NewUpstreamError(op string, status int, err error) *Error {
	return &Error{Kind: ErrUpstream, Op: op, StatusCode: status, Err: err}
}

// Hint returns the user-facing remedy for err, or "" when none applies.
func Hint(err error) string {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return fmt.Sprintf("Config file not found. Please run `%s setup` to create one.", AppName)
	case errors.Is(err, ErrInvalidConfig):
		return fmt.Sprintf("Could not parse config file. Run `%s setup` to create another config file.", AppName)
	case errors.Is(err, ErrMissingCredential):
		return fmt.Sprintf("Set %s or run `%s setup` and use `%s query`.", EnvAPIKey, AppName, AppName)
	case errors.Is(err, ErrUpstream):
		return fmt.Sprintf("Check the credential (%s or `%s setup`) or try again later.", EnvAPIKey, AppName)
	case errors.Is(err, ErrTransport):
		return "Could not reach the completion endpoint. Check your network connection."
	case errors.Is(err, ErrPersistence):
		return "History could not be saved; the command above is still valid."
	default:
		return ""
	}
}

// IsSetupRequired reports whether err is resolved by running setup.
func IsSetupRequired(err error) bool {
	return errors.Is(err, ErrNotConfigured) || errors.Is(err, ErrInvalidConfig)
}
