// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"notionhabit/internal/service"
)

// ErrNotFound is returned when a record id is unknown.
var ErrNotFound = errors.New("not found")

// Update is one recorded status write.
type Update struct {
	ID     string
	Status service.Status
}

// FakeStore is an in-memory implementation of service.Store for testing.
// Date clauses match every record; the fake has no calendar.
type FakeStore struct {
	mu      sync.RWMutex
	records []service.Record

	// Queries holds the clause list of every Query call, in order.
	Queries [][]service.Clause

	// Updates holds every successful UpdateStatus call, in order.
	Updates []Update

	// Error injection for testing
	QueryErr  error
	UpdateErr error

	// FailUpdateAt makes the n-th UpdateStatus call (1-based) return UpdateErr.
	// Zero means UpdateErr (if set) applies to every call.
	FailUpdateAt int

	updateCalls int
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// AddRecord adds a habit record tagged "Habit".
func (f *FakeStore) AddRecord(id, name, date string, status service.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, service.Record{
		ID:     id,
		Name:   name,
		Date:   date,
		Tag:    service.BaseTag,
		Status: status,
	})
}

// Record returns the stored record with id.
func (f *FakeStore) Record(id string) (service.Record, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, r := range f.records {
		if r.ID == id {
			return r, true
		}
	}
	return service.Record{}, false
}

// UpdateCalls returns the number of UpdateStatus calls, failed ones included.
func (f *FakeStore) UpdateCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.updateCalls
}

// Query implements service.Store.
func (f *FakeStore) Query(ctx context.Context, clauses []service.Clause) ([]service.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Queries = append(f.Queries, append([]service.Clause(nil), clauses...))
	if f.QueryErr != nil {
		return nil, f.QueryErr
	}

	var result []service.Record
	for _, r := range f.records {
		if matchAll(r, clauses) {
			result = append(result, r)
		}
	}
	return result, nil
}

// UpdateStatus implements service.Store.
func (f *FakeStore) UpdateStatus(ctx context.Context, id string, status service.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updateCalls++
	if f.UpdateErr != nil && (f.FailUpdateAt == 0 || f.FailUpdateAt == f.updateCalls) {
		return f.UpdateErr
	}

	for i, r := range f.records {
		if r.ID == id {
			f.records[i].Status = status
			f.Updates = append(f.Updates, Update{ID: id, Status: status})
			return nil
		}
	}
	return ErrNotFound
}

func matchAll(r service.Record, clauses []service.Clause) bool {
	for _, c := range clauses {
		switch c.Field {
		case service.FieldTag:
			if r.Tag != c.Value {
				return false
			}
		case service.FieldStatus:
			if string(r.Status) != c.Value {
				return false
			}
		case service.FieldName:
			if !strings.Contains(r.Name, c.Value) {
				return false
			}
		}
	}
	return true
}
