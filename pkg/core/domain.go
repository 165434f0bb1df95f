// Package core holds the domain of the notes store: the sectioned document,
// the session service driving it, search and the observer relay.
package core

import "fmt"

// Section is one named part of a Document.
type Section struct {
	Separator string `json:"separator" yaml:"separator"`
	Name      string `json:"name" yaml:"name"`
	Content   string `json:"content" yaml:"content"`
}

// EventType represents the type of change in a notes session.
type EventType string

const (
	EventLoaded         EventType = "LOADED"
	EventSaved          EventType = "SAVED"
	EventSelected       EventType = "SELECTED"
	EventContentChanged EventType = "CONTENT_CHANGED"
	EventSectionAdded   EventType = "SECTION_ADDED"
	EventSectionRenamed EventType = "SECTION_RENAMED"
	EventSectionDeleted EventType = "SECTION_DELETED"
	EventExternalUpdate EventType = "EXTERNAL_UPDATE"
)

// Event represents a change in the session.
// Previous is only set for renames.
type Event struct {
	Type      EventType
	Section   string
	Previous  string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	if e.Previous != "" {
		return fmt.Sprintf("%s %s -> %s", e.Type, e.Previous, e.Section)
	}
	if e.Section == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s %s", e.Type, e.Section)
}

// FileEventType represents the type of change observed on the backing file.
type FileEventType string

const (
	FileModified FileEventType = "MODIFY"
	FileRemoved  FileEventType = "DELETE"
)

// FileEvent is emitted by a Watchable repository.
type FileEvent struct {
	Type      FileEventType
	Path      string
	Timestamp int64
}

type contextKey string

// ChangeReasonKey is the context key for passing a change reason (commit message) to Save.
const ChangeReasonKey contextKey = "change_reason"
