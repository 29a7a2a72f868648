// Package editor implements the Entity List Editor: one ordered collection
// of entities of a single schema, a form draft, and a two-step delete.
//
// Transitions are pure: Apply takes a State and an Action and returns the
// next State together with the notifications the transition produced.
// Editor wraps Apply with an owned State and forwards those notifications
// to a notify.Notifier.
package editor

import (
	"time"

	"storefront/internal/core"
)

// Phase names the state machine position of an editor.
type Phase string

const (
	PhaseCreate           Phase = "create"
	PhaseEdit             Phase = "edit"
	PhaseConfirmingDelete Phase = "confirming_delete"
)

// ConfirmState drives the delete confirmation dialog.
type ConfirmState struct {
	Open     bool   `json:"open"`
	TargetID *int64 `json:"target_id,omitempty"`
}

// State is everything one editor instance owns.
type State struct {
	Entities []core.Entity `json:"entities"`
	Draft    core.Draft    `json:"draft"`
	Confirm  ConfirmState  `json:"confirm"`
}

// NewState returns the initial state for schema: seeded entities, an empty
// draft in create mode and a closed dialog.
func NewState(schema core.Schema) State {
	entities := make([]core.Entity, len(schema.Seed))
	for i, e := range schema.Seed {
		entities[i] = core.Entity{ID: e.ID, Fields: schema.Project(e.Fields)}
	}
	return State{
		Entities: entities,
		Draft:    core.Draft{Fields: schema.EmptyFields()},
	}
}

// Phase reports where the state sits in the editor state machine.
func (s State) Phase() Phase {
	switch {
	case s.Confirm.Open:
		return PhaseConfirmingDelete
	case s.Draft.Editing():
		return PhaseEdit
	default:
		return PhaseCreate
	}
}

// IndexOf returns the position of id in the collection, or -1.
func (s State) IndexOf(id int64) int {
	for i, e := range s.Entities {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the entity with id.
func (s State) Find(id int64) (core.Entity, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s.Entities[i], true
	}
	return core.Entity{}, false
}

// Clone returns a deep copy so transitions never alias their input.
func (s State) Clone() State {
	out := State{
		Entities: make([]core.Entity, len(s.Entities)),
		Draft:    s.Draft.Clone(),
		Confirm:  ConfirmState{Open: s.Confirm.Open},
	}
	for i, e := range s.Entities {
		out.Entities[i] = e.Clone()
	}
	if s.Confirm.TargetID != nil {
		id := *s.Confirm.TargetID
		out.Confirm.TargetID = &id
	}
	return out
}

// nextID derives a new id from the clock in milliseconds. Should that value
// already be taken, the id after the current maximum is used instead.
func (s State) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id > 0 && s.IndexOf(id) < 0 {
		return id
	}
	var maxID int64
	for _, e := range s.Entities {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}
