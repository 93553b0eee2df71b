// Package changelog maintains the permanent record of detected bucket
// changes as an append-only, line-delimited JSON log. Entries are never
// rewritten, reordered or deleted.
package changelog

import (
	"time"
)

// Action classifies a change record.
type Action string

// Actions emitted by the diff engine.
const (
	ActionAdded    Action = "added"
	ActionModified Action = "modified"
	ActionRemoved  Action = "removed"
)

// Record is one immutable changelog entry. Time is the moment the monitor
// observed the change, not the object's own last-modified timestamp.
// The prev/new fields are only populated for modified records, to aid
// auditing.
type Record struct {
	Action Action    `json:"action"`
	Key    string    `json:"key"`
	Time   time.Time `json:"time"`

	PrevSize     *int64     `json:"prev_size,omitempty"`
	NewSize      *int64     `json:"new_size,omitempty"`
	PrevModified *time.Time `json:"prev_modified,omitempty"`
	NewModified  *time.Time `json:"new_modified,omitempty"`
}
