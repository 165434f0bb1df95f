package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/notes/pkg/core"
	"github.com/aretw0/notes/pkg/git"
)

// Repository implements core.Repository over a single notes file, optionally versioned with Git.
type Repository struct {
	Path string

	dir    string
	git    *git.Client
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastSave      *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string // path of the notes file
	AutoInit  bool
	Gitless   bool
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger

	// ErrorHandler receives watcher failures. Nil logs them.
	ErrorHandler func(error)
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	path := filepath.Clean(config.Path)
	dir := filepath.Dir(path)
	return &Repository{
		Path:   path,
		dir:    dir,
		git:    git.NewClient(dir, "."+filepath.Base(path)+".lock", config.Logger),
		config: config,
	}
}

// Initialize performs the necessary setup for the repository (mkdir, git init).
func (r *Repository) Initialize(ctx context.Context) error {
	// 1. File / directory
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("notes file does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fmt.Errorf("notes path is a directory: %s", r.Path)
		}
	} else if !r.config.ReadOnly {
		if err := os.MkdirAll(r.dir, 0755); err != nil {
			return fmt.Errorf("failed to create notes directory: %w", err)
		}
	}

	// 2. Git
	if r.config.Gitless || r.config.ReadOnly {
		return nil
	}
	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}

	wasNewRepo := false
	if !r.git.IsRepo() {
		if !r.config.AutoInit {
			return fmt.Errorf("path is not a git repository: %s", r.dir)
		}
		if err := r.git.Init(); err != nil {
			return fmt.Errorf("failed to git init: %w", err)
		}
		wasNewRepo = true
	}

	mod, err := r.ensureIgnore()
	if err != nil {
		return fmt.Errorf("failed to ensure .gitignore: %w", err)
	}

	if mod && wasNewRepo {
		// A fresh repository starts with the ignore rules committed.
		if err := r.git.Add(".gitignore"); err != nil {
			return fmt.Errorf("failed to add .gitignore: %w", err)
		}
		if err := r.git.Commit("chore: ignore notes scratch files"); err != nil {
			return fmt.Errorf("failed to commit .gitignore: %w", err)
		}
	}

	return nil
}

// ensureIgnore keeps the lock file and atomic write leftovers out of Git.
func (r *Repository) ensureIgnore() (bool, error) {
	ignorePath := filepath.Join(r.dir, ".gitignore")
	entries := []string{r.git.LockName(), TempFilePrefix + "*"}

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	existing := make(map[string]bool)
	for line := range strings.SplitSeq(string(content), "\n") {
		existing[strings.TrimSpace(line)] = true
	}

	var missing []string
	for _, e := range entries {
		if !existing[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return false, nil
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return false, err
		}
	}
	if _, err := f.WriteString(strings.Join(missing, "\n") + "\n"); err != nil {
		return false, err
	}
	return true, nil
}

// Load reads the whole notes file. A missing file reads as empty.
func (r *Repository) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(r.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.Path, err)
	}
	return data, nil
}

// Save replaces the notes file atomically and commits it to Git.
//
// Workflow:
//  1. Refuse in read-only mode.
//  2. Create the parent directory and write atomically to disk.
//  3. (If Git enabled) 'git add' and 'git commit' with the change reason from ctx.
func (r *Repository) Save(ctx context.Context, data []byte) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	if err := writeFileAtomic(r.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	r.recordSave()

	if r.config.Gitless {
		return nil
	}

	unlock, err := r.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	filename := filepath.Base(r.Path)
	if err := r.git.Add(filename); err != nil {
		return fmt.Errorf("failed to git add: %w", err)
	}

	msg := "update " + filename
	if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
		msg = val
	}
	if err := r.git.Commit(msg); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}

// Stat describes the notes file.
func (r *Repository) Stat(ctx context.Context) (core.FileInfo, error) {
	info := core.FileInfo{Path: r.Path}
	fi, err := os.Stat(r.Path)
	if errors.Is(err, os.ErrNotExist) {
		return info, nil
	}
	if err != nil {
		return info, err
	}
	info.Exists = true
	info.Size = fi.Size()
	info.ModTime = fi.ModTime()
	return info, nil
}

// History returns the last limit commits of the notes file, newest first.
func (r *Repository) History(ctx context.Context, limit int) ([]core.Revision, error) {
	if r.config.Gitless {
		return nil, fmt.Errorf("history is not available in gitless mode")
	}
	revs, err := r.git.Log(filepath.Base(r.Path), limit)
	if err != nil {
		return nil, err
	}
	out := make([]core.Revision, len(revs))
	for i, rev := range revs {
		out[i] = core.Revision{Hash: rev.Hash, Date: rev.Date, Subject: rev.Subject}
	}
	return out, nil
}

var (
	_ core.Repository = (*Repository)(nil)
	_ core.Watchable  = (*Repository)(nil)
	_ core.Versioned  = (*Repository)(nil)
)
