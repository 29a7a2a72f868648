package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/cache"
	"storefront/internal/core"
	"storefront/internal/editor"
	applog "storefront/internal/log"
)

// Config bounds the number and idle lifetime of sessions.
type Config struct {
	TTL         time.Duration
	MaxSessions int
}

// DefaultConfig returns the limits used when none are configured.
func DefaultConfig() Config {
	return Config{TTL: 30 * time.Minute, MaxSessions: 1000}
}

// EditorOptions builds the options for one editor of a new workspace.
type EditorOptions func(sessionID, kind string) []editor.Option

// Store maps session ids to workspaces. Sessions that idle past TTL or fall
// off the LRU are forgotten; the next request starts again from seed data.
type Store struct {
	mu       sync.Mutex
	sessions *cache.LRUCache[*Workspace]
	schemas  []core.Schema
	options  EditorOptions
	now      func() time.Time
	logger   *applog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithEditorOptions sets how editors of new workspaces are configured.
func WithEditorOptions(fn EditorOptions) StoreOption {
	return func(s *Store) { s.options = fn }
}

// WithLogger sets the store logger.
func WithLogger(l *applog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l.WithComponent(applog.ComponentSession)
		}
	}
}

// WithClock replaces time.Now for session ageing.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates a store that seeds every workspace from schemas.
func NewStore(cfg Config, schemas []core.Schema, opts ...StoreOption) *Store {
	def := DefaultConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = def.MaxSessions
	}

	s := &Store{
		schemas: schemas,
		now:     time.Now,
		logger:  applog.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.sessions = cache.New(cache.Options[*Workspace]{
		MaxSize: cfg.MaxSessions,
		TTL:     cfg.TTL,
		Sliding: true,
		Now:     func() time.Time { return s.now() },
		OnEvict: func(id string, w *Workspace) {
			s.logger.Info("Session evicted",
				applog.FieldSessionID, id,
				applog.FieldOperation, applog.OpEvict,
				"age", s.now().Sub(w.CreatedAt()).String())
		},
	})
	return s
}

// Cleaner exposes the backing cache for periodic expiry sweeps.
func (s *Store) Cleaner() cache.Cleaner { return s.sessions }

// Get returns the workspace for id if it is still alive.
func (s *Store) Get(id string) (*Workspace, bool) {
	if id == "" {
		return nil, false
	}
	return s.sessions.Get(id)
}

// Resolve returns the workspace for id, creating a fresh seeded one under
// a new id when id is unknown, expired or malformed. created reports
// whether a new workspace was made.
func (s *Store) Resolve(id string) (w *Workspace, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := uuid.Parse(id); err == nil {
		if w, ok := s.sessions.Get(id); ok {
			return w, false
		}
	}

	newID := uuid.NewString()
	w = newWorkspace(newID, s.now(), s.schemas, func(kind string) []editor.Option {
		if s.options == nil {
			return nil
		}
		return s.options(newID, kind)
	})
	s.sessions.Set(newID, w)
	s.logger.Debug("Session created", applog.FieldSessionID, newID)
	return w, true
}

// Drop forgets a session immediately.
func (s *Store) Drop(id string) {
	s.sessions.Delete(id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.sessions.Size()
}
