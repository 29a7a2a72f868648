package editor

import (
	"context"
	"time"

	"storefront/internal/core"
	applog "storefront/internal/log"
	"storefront/internal/notify"
)

// Editor owns the state of one editor instance. It is not safe for
// concurrent use; callers that share an Editor across goroutines must
// serialise access themselves.
type Editor struct {
	schema   core.Schema
	state    State
	clock    func() time.Time
	notifier notify.Notifier
	slog     *applog.StructuredLogger
}

// Option configures an Editor.
type Option func(*Editor)

// WithClock replaces time.Now as the id source.
func WithClock(clock func() time.Time) Option {
	return func(e *Editor) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithNotifier sets where notifications are delivered.
func WithNotifier(n notify.Notifier) Option {
	return func(e *Editor) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithLogger enables debug logging of every applied action.
func WithLogger(l *applog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.slog = applog.NewStructuredLogger(l)
		}
	}
}

// New creates an editor seeded from schema.
func New(schema core.Schema, opts ...Option) *Editor {
	e := &Editor{
		schema:   schema,
		state:    NewState(schema),
		clock:    time.Now,
		notifier: notify.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Schema returns the schema the editor was built with.
func (e *Editor) Schema() core.Schema { return e.schema }

// State returns a copy of the current state.
func (e *Editor) State() State { return e.state.Clone() }

// Phase returns the current state machine phase.
func (e *Editor) Phase() Phase { return e.state.Phase() }

// Len returns the collection size.
func (e *Editor) Len() int { return len(e.state.Entities) }

// Dispatch applies a, stores the resulting state and delivers the
// notifications. The notifications are also returned so a caller can
// render them alongside the response.
func (e *Editor) Dispatch(ctx context.Context, a Action) []core.Notification {
	next, notes := Apply(e.schema, e.state, a, e.clock())
	e.state = next

	for _, n := range notes {
		e.notifier.Notify(ctx, n)
	}
	if e.slog != nil {
		e.slog.LogEditorOperation(ctx, e.schema.Kind, a.Op(), actionID(a, e.state), len(e.state.Entities), notes)
	}
	return notes
}

func (e *Editor) UpdateDraftField(ctx context.Context, name, value string) []core.Notification {
	return e.Dispatch(ctx, UpdateDraftField{Name: name, Value: value})
}

func (e *Editor) Submit(ctx context.Context) []core.Notification {
	return e.Dispatch(ctx, Submit{})
}

func (e *Editor) BeginEdit(ctx context.Context, id int64) []core.Notification {
	return e.Dispatch(ctx, BeginEdit{ID: id})
}

func (e *Editor) RequestDelete(ctx context.Context, id int64) []core.Notification {
	return e.Dispatch(ctx, RequestDelete{ID: id})
}

func (e *Editor) CancelDelete(ctx context.Context) []core.Notification {
	return e.Dispatch(ctx, CancelDelete{})
}

func (e *Editor) ConfirmDelete(ctx context.Context) []core.Notification {
	return e.Dispatch(ctx, ConfirmDelete{})
}

func actionID(a Action, s State) int64 {
	switch a := a.(type) {
	case BeginEdit:
		return a.ID
	case RequestDelete:
		return a.ID
	}
	if s.Draft.EditingID != nil {
		return *s.Draft.EditingID
	}
	return 0
}
