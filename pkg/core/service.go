package core

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/cespare/xxhash/v2"

	"github.com/aretw0/notes/pkg/textbuf"
)

const defaultEventBuffer = 100

// Service drives a notes session: the loaded document, the active section,
// the edit buffer of that section and its unsaved change counter.
// Every state change is announced through the Relay.
type Service struct {
	mu sync.RWMutex

	repo    Repository
	doc     *Document
	active  string
	buffer  textbuf.Buffer
	unsaved int

	// fingerprint of the last text loaded from or written to the repository
	fingerprint uint64

	relay           *Relay
	logger          *slog.Logger
	bufferOptions   textbuf.Options
	eventBufferSize int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger used by the service and its relay.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBufferOptions configures the edit buffer of the active section.
func WithBufferOptions(opts textbuf.Options) ServiceOption {
	return func(s *Service) {
		s.bufferOptions = opts
	}
}

// WithEventBufferSize sets the capacity of channels returned by Stream.
func WithEventBufferSize(size int) ServiceOption {
	return func(s *Service) {
		if size > 0 {
			s.eventBufferSize = size
		}
	}
}

// NewService creates a Service over repo holding an empty document until Load is called.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:            repo,
		doc:             NewDocument(),
		logger:          slog.New(slog.DiscardHandler),
		eventBufferSize: defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.relay = NewRelay(s.logger)
	s.active = s.doc.Default()
	s.resetBuffer()
	return s
}

// Relay returns the relay the service notifies.
func (s *Service) Relay() *Relay {
	return s.relay
}

// Subscribe registers a listener for session events.
func (s *Service) Subscribe(l Listener) error { return s.relay.Subscribe(l) }

// Unsubscribe removes a listener.
func (s *Service) Unsubscribe(l Listener) { s.relay.Unsubscribe(l) }

func (s *Service) notify(t EventType, section, previous string) {
	s.relay.Notify(Event{Type: t, Section: section, Previous: previous, Timestamp: time.Now().Unix()})
}

// resetBuffer reloads the edit buffer from the active section. Caller holds mu.
func (s *Service) resetBuffer() {
	content, _ := s.doc.Content(s.active)
	s.buffer = textbuf.New(content, s.bufferOptions)
}

// Load reads the backing file and selects the default section.
func (s *Service) Load(ctx context.Context) error {
	s.mu.RLock()
	repo := s.repo
	s.mu.RUnlock()
	return s.load(ctx, repo)
}

// Open switches the session to another repository (another backing file).
// The current session is left untouched if the new file cannot be read.
func (s *Service) Open(ctx context.Context, repo Repository) error {
	if repo == nil {
		return errors.New("repository cannot be nil")
	}
	return s.load(ctx, repo)
}

func (s *Service) load(ctx context.Context, repo Repository) error {
	data, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}
	doc := Parse(string(data))

	s.mu.Lock()
	s.repo = repo
	s.doc = doc
	s.active = doc.Default()
	s.unsaved = 0
	s.fingerprint = xxhash.Sum64(data)
	s.resetBuffer()
	active := s.active
	s.mu.Unlock()

	s.logger.Debug("notes loaded", "sections", len(doc.sections), "active", active)
	s.notify(EventLoaded, active, "")
	return nil
}

// Document returns a snapshot of the loaded document.
func (s *Service) Document() *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Sections returns the separators in display order.
func (s *Service) Sections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Sections()
}

// Content returns the content of a section, including unsaved edits.
func (s *Service) Content(separator string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Content(separator)
}

// Active returns the separator of the active section.
func (s *Service) Active() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Unsaved returns the number of edits made since the last load, save or section switch.
func (s *Service) Unsaved() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unsaved
}

// IsUnsaved reports whether the session holds edits not yet written to disk.
func (s *Service) IsUnsaved() bool {
	return s.Unsaved() > 0
}

// Select makes separator the active section. Pending edits are saved first.
func (s *Service) Select(ctx context.Context, separator string) error {
	s.mu.Lock()
	if !s.doc.Has(separator) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, separator)
	}
	if s.unsaved > 0 {
		if err := s.persist(withReason(ctx, "update section %s", displayName(s.active)), s.doc); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.active = separator
	s.unsaved = 0
	s.resetBuffer()
	s.mu.Unlock()

	s.notify(EventSelected, separator, "")
	return nil
}

// SetContent replaces the content of the active section. Edit history is reset.
func (s *Service) SetContent(content string) error {
	s.mu.Lock()
	old, _ := s.doc.Content(s.active)
	if old == content {
		s.mu.Unlock()
		return nil
	}
	if err := s.doc.SetContent(s.active, content); err != nil {
		s.mu.Unlock()
		return err
	}
	s.unsaved++
	s.resetBuffer()
	active := s.active
	s.mu.Unlock()

	s.notify(EventContentChanged, active, "")
	return nil
}

// Insert inserts text at rune offset at of the active section and returns the new cursor.
func (s *Service) Insert(text string, at int) (int, error) {
	return s.edit(func(b textbuf.Buffer) (textbuf.Buffer, int, bool) {
		nb, cursor := b.Insert(text, at)
		return nb, cursor, true
	})
}

// Delete removes the runes between from and to in the active section and returns the new cursor.
func (s *Service) Delete(from, to int) (int, error) {
	return s.edit(func(b textbuf.Buffer) (textbuf.Buffer, int, bool) {
		nb, cursor := b.Delete(from, to)
		return nb, cursor, true
	})
}

// Undo reverts the last edit of the active section. It reports false when there was none.
func (s *Service) Undo() (int, bool, error) {
	var done bool
	cursor, err := s.edit(func(b textbuf.Buffer) (textbuf.Buffer, int, bool) {
		nb, cursor, ok := b.Undo()
		done = ok
		return nb, cursor, ok
	})
	return cursor, done, err
}

// Redo re-applies the last undone edit of the active section.
func (s *Service) Redo() (int, bool, error) {
	var done bool
	cursor, err := s.edit(func(b textbuf.Buffer) (textbuf.Buffer, int, bool) {
		nb, cursor, ok := b.Redo()
		done = ok
		return nb, cursor, ok
	})
	return cursor, done, err
}

func (s *Service) edit(fn func(textbuf.Buffer) (textbuf.Buffer, int, bool)) (int, error) {
	s.mu.Lock()
	nb, cursor, ok := fn(s.buffer)
	if !ok || nb.String() == s.buffer.String() {
		s.buffer = nb
		s.mu.Unlock()
		return cursor, nil
	}
	if err := s.doc.SetContent(s.active, nb.String()); err != nil {
		s.mu.Unlock()
		return cursor, err
	}
	s.buffer = nb
	s.unsaved++
	active := s.active
	s.mu.Unlock()

	s.notify(EventContentChanged, active, "")
	return cursor, nil
}

// AddSection appends a new empty section and persists the document.
func (s *Service) AddSection(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	staged := s.doc.Clone()
	separator, err := staged.Add(name)
	if err == nil {
		err = s.persist(withReason(ctx, "add section %s", displayName(separator)), staged)
	}
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	s.notify(EventSectionAdded, separator, "")
	return separator, nil
}

// RenameSection renames a section and persists the document.
func (s *Service) RenameSection(ctx context.Context, separator, newName string) (string, error) {
	s.mu.Lock()
	staged := s.doc.Clone()
	newSeparator, err := staged.Rename(separator, newName)
	if err == nil {
		err = s.persist(withReason(ctx, "rename section %s to %s", displayName(separator), displayName(newSeparator)), staged)
	}
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	if s.active == separator {
		s.active = newSeparator
	}
	s.mu.Unlock()

	s.notify(EventSectionRenamed, newSeparator, separator)
	return newSeparator, nil
}

// DeleteSection removes a section and persists the document.
// When the active section is deleted a fallback is selected: the previous
// section in order, else the new first one, else the recreated placeholder.
func (s *Service) DeleteSection(ctx context.Context, separator string) error {
	s.mu.Lock()
	staged := s.doc.Clone()
	fallback, err := staged.Delete(separator)
	if err == nil {
		err = s.persist(withReason(ctx, "delete section %s", displayName(separator)), staged)
	}
	if err != nil {
		s.mu.Unlock()
		return err
	}
	reselected := s.active == separator || !s.doc.Has(s.active)
	if reselected {
		s.active = fallback
		s.resetBuffer()
	}
	active := s.active
	s.mu.Unlock()

	s.notify(EventSectionDeleted, separator, "")
	if reselected {
		s.notify(EventSelected, active, "")
	}
	return nil
}

// Save writes the whole document to the repository.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	err := s.persist(withReason(ctx, "update section %s", displayName(s.active)), s.doc)
	active := s.active
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify(EventSaved, active, "")
	return nil
}

// persist writes d and makes it the session document. Caller holds mu.
// On failure nothing changes.
func (s *Service) persist(ctx context.Context, d *Document) error {
	data := []byte(d.String())
	if err := s.repo.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}
	s.doc = d
	s.unsaved = 0
	s.fingerprint = xxhash.Sum64(data)
	s.logger.Debug("notes saved", "bytes", len(data))
	return nil
}

// withReason attaches a change reason to ctx unless the caller already set one.
func withReason(ctx context.Context, format string, args ...any) context.Context {
	if v, ok := ctx.Value(ChangeReasonKey).(string); ok && v != "" {
		return ctx
	}
	return context.WithValue(ctx, ChangeReasonKey, fmt.Sprintf(format, args...))
}

// displayName returns the section name of a separator, or the separator itself if malformed.
func displayName(separator string) string {
	if name, err := NameFromSeparator(separator); err == nil {
		return name
	}
	return separator
}

// Search finds query in the document. When opts.AllSections is false and no
// section is given, the active section is searched.
func (s *Service) Search(query string, opts SearchOptions) (iter.Seq[SearchMatch], error) {
	s.mu.RLock()
	doc := s.doc.Clone()
	if !opts.AllSections && opts.Section == "" {
		opts.Section = s.active
	}
	s.mu.RUnlock()
	return doc.Search(query, opts)
}

// Info describes the session and its backing file.
type Info struct {
	File     FileInfo `json:"file" yaml:"file"`
	Sections int      `json:"sections" yaml:"sections"`
	Active   string   `json:"active" yaml:"active"`
	Unsaved  bool     `json:"unsaved" yaml:"unsaved"`
}

// Info returns metadata about the backing file and the session.
func (s *Service) Info(ctx context.Context) (Info, error) {
	s.mu.RLock()
	repo := s.repo
	info := Info{
		Sections: len(s.doc.sections),
		Unsaved:  s.unsaved > 0,
	}
	info.Active, _ = NameFromSeparator(s.active)
	s.mu.RUnlock()

	fi, err := repo.Stat(ctx)
	if err != nil {
		return Info{}, err
	}
	info.File = fi
	return info, nil
}

// History lists the recorded versions of the backing file, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]Revision, error) {
	s.mu.RLock()
	repo := s.repo
	s.mu.RUnlock()

	v, ok := repo.(Versioned)
	if !ok {
		return nil, errors.New("repository does not keep history")
	}
	return v.History(ctx, limit)
}

// Watch starts observing the backing file. External changes are merged into
// the session (see HandleExternalUpdate). Watching stops when ctx is done.
func (s *Service) Watch(ctx context.Context) error {
	s.mu.RLock()
	repo := s.repo
	s.mu.RUnlock()

	w, ok := repo.(Watchable)
	if !ok {
		return errors.New("repository does not support watching")
	}
	events, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				if e.Type == FileRemoved {
					s.logger.Warn("backing file removed, keeping session in memory", "path", e.Path)
					continue
				}
				if err := s.HandleExternalUpdate(ctx); err != nil {
					s.logger.Error("external update failed", "path", e.Path, "error", err)
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("watch loop panic", "error", err)
	}))
	return nil
}

// HandleExternalUpdate reloads the backing file after it changed on disk.
// Text identical to what the session last loaded or wrote is ignored.
// With unsaved edits, the active section is merged with its on-disk version
// and stays unsaved; otherwise the document is replaced.
func (s *Service) HandleExternalUpdate(ctx context.Context) error {
	s.mu.RLock()
	repo := s.repo
	s.mu.RUnlock()

	data, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload notes: %w", err)
	}
	fp := xxhash.Sum64(data)
	incoming := Parse(string(data))

	s.mu.Lock()
	if fp == s.fingerprint {
		s.mu.Unlock()
		return nil
	}
	if s.unsaved > 0 && incoming.Has(s.active) {
		current, _ := s.doc.Content(s.active)
		theirs, _ := incoming.Content(s.active)
		if err := incoming.SetContent(s.active, MergeStrings(current, theirs)); err != nil {
			s.logger.Warn("merge produced a separator line, keeping on-disk content", "section", s.active)
			s.unsaved = 0
		}
	} else {
		if s.unsaved > 0 {
			s.logger.Warn("active section removed on disk, discarding unsaved edits", "section", s.active)
		}
		s.unsaved = 0
	}
	if !incoming.Has(s.active) {
		s.active = incoming.Default()
	}
	s.doc = incoming
	s.fingerprint = fp
	s.resetBuffer()
	active := s.active
	s.mu.Unlock()

	s.notify(EventExternalUpdate, active, "")
	return nil
}

// Stream returns a buffered channel receiving session events until ctx is done.
// Events are dropped (and logged) when the consumer falls behind.
func (s *Service) Stream(ctx context.Context) <-chan Event {
	l := &channelListener{ch: make(chan Event, s.eventBufferSize)}
	_ = s.relay.Subscribe(l)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		s.relay.Unsubscribe(l)
		l.close()
		return nil
	})
	return l.ch
}

type channelListener struct {
	mu     sync.Mutex
	ch     chan Event
	closed bool
}

func (l *channelListener) OnEvent(e Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	select {
	case l.ch <- e:
		return nil
	default:
		return fmt.Errorf("event buffer full, dropping %s", e.Type)
	}
}

func (l *channelListener) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.ch)
	}
}
