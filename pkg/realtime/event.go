package realtime

import (
	"fmt"
)

type EventKind string

const (
	EventInsert EventKind = "INSERT"
	EventUpdate EventKind = "UPDATE"
	EventDelete EventKind = "DELETE"
)

// Row is a decoded row image from a change notification. Values are
// whatever the trigger serialized, untyped.
type Row map[string]any

// Event is the normalized shape of a change notification. New is set for
// INSERT and UPDATE, Old for UPDATE and DELETE; at least one is present.
type Event struct {
	Kind  EventKind `json:"kind"`
	Table string    `json:"table"`
	New   Row       `json:"new,omitempty"`
	Old   Row       `json:"old,omitempty"`
}

// EventFunc receives notifications. It is invoked from the subscription's
// own goroutine and must not block for long.
type EventFunc func(Event)

// Filter restricts a subscription to rows where Column equals Value,
// e.g. rows owned by one user.
type Filter struct {
	Column string
	Value  string
}

// Matches checks the filter against the new row image, falling back to the
// old image for deletes.
func (f *Filter) Matches(event Event) bool {
	if f == nil {
		return true
	}

	row := event.New
	if row == nil {
		row = event.Old
	}
	if row == nil {
		return false
	}

	value, ok := row[f.Column]
	if !ok {
		return false
	}

	return fmt.Sprint(value) == f.Value
}

func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.Column + "=" + f.Value
}
