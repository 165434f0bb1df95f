package core

import (
	"context"
	"time"
)

// Repository defines the contract for storing and retrieving the backing text of a document.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism (a local file, a file under Git, memory in tests).
type Repository interface {
	// Load returns the whole backing text. A missing backing file yields empty data and no error.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the whole backing text.
	Save(ctx context.Context, data []byte) error

	// Stat describes the backing file.
	Stat(ctx context.Context) (FileInfo, error)

	// Initialize ensures the underlying storage is ready (e.g., create directories, git init).
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for repositories that report external changes.
type Watchable interface {
	// Watch emits an event whenever the backing file changes on disk.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan FileEvent, error)
}

// Versioned defines an interface for repositories that keep a history of the backing file.
type Versioned interface {
	History(ctx context.Context, limit int) ([]Revision, error)
}

// Revision is one recorded version of the backing file.
type Revision struct {
	Hash    string    `json:"hash" yaml:"hash"`
	Date    time.Time `json:"date" yaml:"date"`
	Subject string    `json:"subject" yaml:"subject"`
}

// FileInfo describes the backing file of a document.
type FileInfo struct {
	Path    string    `json:"path" yaml:"path"`
	Exists  bool      `json:"exists" yaml:"exists"`
	Size    int64     `json:"size" yaml:"size"`
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
}
