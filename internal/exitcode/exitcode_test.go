package exitcode_test

import (
	"errors"
	"fmt"
	"testing"

	"notionhabit/internal/config"
	"notionhabit/internal/exitcode"
	"notionhabit/internal/service"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitcode.Success},
		{"credentials", fmt.Errorf("%w: token", config.ErrMissingCredentials), exitcode.ConfigError},
		{"transport", &service.TransportError{Op: "query", Err: errors.New("offline")}, exitcode.TransportError},
		{"remote", &service.RemoteError{Op: "query", StatusCode: 401, Message: "API token is invalid."}, exitcode.RemoteError},
		{"wrapped remote", fmt.Errorf("update aborted after 2 habits: %w", &service.RemoteError{Op: "update"}), exitcode.RemoteError},
		{"malformed", &service.MalformedRecordError{ID: "p1", Path: "id"}, exitcode.MalformedRecord},
		{"window", &service.InvalidWindowError{Window: 9}, exitcode.InvalidWindow},
		{"other", errors.New("boom"), exitcode.InternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitcode.FromError(tt.err); got != tt.want {
				t.Errorf("expected exit code %d, got %d", tt.want, got)
			}
		})
	}
}
