// Package session keeps one Workspace per browser session. A workspace
// holds an independent editor for every schema; nothing is shared between
// workspaces or between the editors inside one.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront/internal/core"
	"storefront/internal/editor"
)

// Workspace owns the editors of one session. HTTP handlers run
// concurrently, so every access goes through Do.
type Workspace struct {
	id        string
	createdAt time.Time

	mu      sync.Mutex
	editors map[string]*editor.Editor
	kinds   []string
}

func newWorkspace(id string, createdAt time.Time, schemas []core.Schema, optsFor func(kind string) []editor.Option) *Workspace {
	w := &Workspace{
		id:        id,
		createdAt: createdAt,
		editors:   make(map[string]*editor.Editor, len(schemas)),
		kinds:     make([]string, 0, len(schemas)),
	}
	for _, s := range schemas {
		var opts []editor.Option
		if optsFor != nil {
			opts = optsFor(s.Kind)
		}
		w.editors[s.Kind] = editor.New(s, opts...)
		w.kinds = append(w.kinds, s.Kind)
	}
	return w
}

// ID returns the session id.
func (w *Workspace) ID() string { return w.id }

// CreatedAt returns when the workspace was seeded.
func (w *Workspace) CreatedAt() time.Time { return w.createdAt }

// Kinds lists the editor kinds in navigation order.
func (w *Workspace) Kinds() []string {
	return append([]string(nil), w.kinds...)
}

// Do runs fn against the editor for kind while holding the workspace lock.
func (w *Workspace) Do(kind string, fn func(*editor.Editor)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.editors[kind]
	if !ok {
		return fmt.Errorf("workspace %s: %w: %q", w.id, core.ErrUnknownKind, kind)
	}
	fn(e)
	return nil
}

// Dispatch applies one action to the kind editor and returns its view
// together with the notifications it produced.
func (w *Workspace) Dispatch(ctx context.Context, kind string, a editor.Action) (editor.View, []core.Notification, error) {
	var (
		view  editor.View
		notes []core.Notification
	)
	err := w.Do(kind, func(e *editor.Editor) {
		notes = e.Dispatch(ctx, a)
		view = e.View()
	})
	return view, notes, err
}

// View renders the kind editor without changing it.
func (w *Workspace) View(kind string) (editor.View, error) {
	var view editor.View
	err := w.Do(kind, func(e *editor.Editor) {
		view = e.View()
	})
	return view, err
}

// Counts returns the collection size of every editor.
func (w *Workspace) Counts() map[string]int {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]int, len(w.editors))
	for kind, e := range w.editors {
		out[kind] = e.Len()
	}
	return out
}
