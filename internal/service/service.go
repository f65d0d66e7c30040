// Package service defines the backend-agnostic interface for habit record operations.
package service

import "context"

// StatusWriter patches the status of a single record.
type StatusWriter interface {
	// UpdateStatus sets the status of the record identified by id.
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// Store defines the interface for habit record backends.
// All remote store calls go through this interface.
// Commands never import the Notion client directly.
type Store interface {
	StatusWriter

	// Query returns every record matching all clauses (logical AND).
	// Results are in backend order (no client-side sorting).
	// Fails with *TransportError or *RemoteError.
	Query(ctx context.Context, clauses []Clause) ([]Record, error)
}
