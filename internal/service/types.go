package service

import (
	"context"
	"fmt"
)

// BaseTag is the tag every habit record carries.
const BaseTag = "Habit"

// Status is the completion state of a habit record.
type Status string

// Known status buckets.
const (
	StatusDone   Status = "Done"
	StatusFailed Status = "Failed"
	StatusToDo   Status = "To-Do"
)

// Known reports whether s is one of the three status buckets.
func (s Status) Known() bool {
	switch s {
	case StatusDone, StatusFailed, StatusToDo:
		return true
	}
	return false
}

// Record represents one habit occurrence read from the remote store.
type Record struct {
	ID     string
	Name   string
	Date   string // YYYY-MM-DD
	Tag    string // first tag only
	Status Status
}

// SetStatus writes a new status for this record. The record itself is not
// updated; callers must re-query before making further decisions about it.
func (r Record) SetStatus(ctx context.Context, w StatusWriter, status Status) error {
	return w.UpdateStatus(ctx, r.ID, status)
}

// Window is a relative date range used to scope analysis queries.
type Window int

// Supported windows.
const (
	ThisWeek Window = iota
	PastWeek
	PastMonth
	PastYear
)

// Valid reports whether w is one of the supported windows.
func (w Window) Valid() bool {
	return w >= ThisWeek && w <= PastYear
}

func (w Window) String() string {
	switch w {
	case ThisWeek:
		return "this week"
	case PastWeek:
		return "past week"
	case PastMonth:
		return "past month"
	case PastYear:
		return "past year"
	}
	return fmt.Sprintf("window(%d)", int(w))
}

// Field names the record attribute a clause filters on.
type Field int

const (
	FieldTag Field = iota
	FieldStatus
	FieldName
	FieldDate
)

// Clause is a single filter predicate.
// Value holds the operand for tag/status/name clauses; Window for date clauses.
type Clause struct {
	Field  Field
	Value  string
	Window Window
}

// TagContains matches records whose tag set contains tag.
func TagContains(tag string) Clause {
	return Clause{Field: FieldTag, Value: tag}
}

// StatusEquals matches records with the given status.
func StatusEquals(s Status) Clause {
	return Clause{Field: FieldStatus, Value: string(s)}
}

// NameContains matches records whose name contains name.
func NameContains(name string) Clause {
	return Clause{Field: FieldName, Value: name}
}

// DateWithin matches records dated inside the window.
func DateWithin(w Window) Clause {
	return Clause{Field: FieldDate, Window: w}
}

func (c Clause) String() string {
	switch c.Field {
	case FieldTag:
		return fmt.Sprintf("tag contains %q", c.Value)
	case FieldStatus:
		return fmt.Sprintf("status = %q", c.Value)
	case FieldName:
		return fmt.Sprintf("name contains %q", c.Value)
	case FieldDate:
		return fmt.Sprintf("date within %s", c.Window)
	}
	return fmt.Sprintf("clause(%d)", int(c.Field))
}
