package service

import "fmt"

// TransportError reports that the remote store could not be reached.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: no connection to remote store: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError reports a non-success response from the remote store.
type RemoteError struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: remote store rejected request (%d %s): %s", e.Op, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: remote store rejected request (%d): %s", e.Op, e.StatusCode, e.Message)
}

// MalformedRecordError reports a record missing an expected field.
type MalformedRecordError struct {
	ID   string
	Path string
}

func (e *MalformedRecordError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("malformed record: missing %s", e.Path)
	}
	return fmt.Sprintf("malformed record %s: missing %s", e.ID, e.Path)
}

// InvalidWindowError reports an out-of-range analysis window.
type InvalidWindowError struct {
	Window Window
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid window %d (want 0 - this week, 1 - past week, 2 - past month, 3 - past year)", int(e.Window))
}
