// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"notionhabit/internal/config"
	"notionhabit/internal/service"
)

// Exit codes, one per error class.
const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a usage error (bad flags or arguments).
	UserError = 1

	// ConfigError indicates missing or unreadable configuration.
	ConfigError = 2

	// TransportError indicates the remote store could not be reached.
	TransportError = 3

	// RemoteError indicates the remote store rejected a request.
	RemoteError = 4

	// MalformedRecord indicates a record with an unexpected shape.
	MalformedRecord = 5

	// InvalidWindow indicates an out-of-range analysis window.
	InvalidWindow = 6

	// InternalError covers anything else.
	InternalError = 7
)

// FromError maps err to an exit code.
func FromError(err error) int {
	if err == nil {
		return Success
	}

	var (
		transportErr *service.TransportError
		remoteErr    *service.RemoteError
		malformedErr *service.MalformedRecordError
		windowErr    *service.InvalidWindowError
	)
	switch {
	case errors.Is(err, config.ErrMissingCredentials):
		return ConfigError
	case errors.As(err, &transportErr):
		return TransportError
	case errors.As(err, &remoteErr):
		return RemoteError
	case errors.As(err, &malformedErr):
		return MalformedRecord
	case errors.As(err, &windowErr):
		return InvalidWindow
	}
	return InternalError
}
