package editor

import (
	"time"

	"storefront/internal/core"
	applog "storefront/internal/log"
)

// Action is one user intent an editor understands. The set is closed.
type Action interface {
	// Op names the action for logs.
	Op() string
	isAction()
}

type (
	UpdateDraftField struct{ Name, Value string }
	Submit           struct{}
	BeginEdit        struct{ ID int64 }
	RequestDelete    struct{ ID int64 }
	CancelDelete     struct{}
	ConfirmDelete    struct{}
)

func (UpdateDraftField) Op() string { return applog.OpUpdateDraft }
func (Submit) Op() string           { return applog.OpSubmit }
func (BeginEdit) Op() string        { return applog.OpBeginEdit }
func (RequestDelete) Op() string    { return applog.OpRequestDelete }
func (CancelDelete) Op() string     { return applog.OpCancelDelete }
func (ConfirmDelete) Op() string    { return applog.OpConfirmDelete }

func (UpdateDraftField) isAction() {}
func (Submit) isAction()           {}
func (BeginEdit) isAction()        {}
func (RequestDelete) isAction()    {}
func (CancelDelete) isAction()     {}
func (ConfirmDelete) isAction()    {}

// Apply runs one transition. The input state is never modified; now is
// only read when a new entity needs an id. BeginEdit and an edit-mode
// Submit on an id that does not resolve are silent no-ops; ConfirmDelete
// reports the schema's delete message whenever a target was set.
func Apply(schema core.Schema, s State, a Action, now time.Time) (State, []core.Notification) {
	next := s.Clone()

	switch a := a.(type) {
	case UpdateDraftField:
		if schema.HasField(a.Name) {
			next.Draft.Fields[a.Name] = a.Value
		}
		return next, nil

	case Submit:
		return submit(schema, next, now)

	case BeginEdit:
		e, ok := next.Find(a.ID)
		if !ok {
			return next, nil
		}
		id := e.ID
		next.Draft = core.Draft{Fields: schema.Project(e.Fields), EditingID: &id}
		return next, nil

	case RequestDelete:
		id := a.ID
		next.Confirm = ConfirmState{Open: true, TargetID: &id}
		return next, nil

	case CancelDelete:
		if !next.Confirm.Open {
			return next, nil
		}
		// Back to create mode; typed draft values stay in the form.
		next.Confirm = ConfirmState{}
		next.Draft.EditingID = nil
		return next, nil

	case ConfirmDelete:
		if next.Confirm.TargetID == nil {
			return next, nil
		}
		target := *next.Confirm.TargetID
		next.Confirm = ConfirmState{}
		resetDraft(schema, &next)

		if i := next.IndexOf(target); i >= 0 {
			next.Entities = append(next.Entities[:i], next.Entities[i+1:]...)
		}
		return next, []core.Notification{schema.Messages.Deleted}
	}

	return next, nil
}

func submit(schema core.Schema, next State, now time.Time) (State, []core.Notification) {
	fields := schema.Project(next.Draft.Fields)
	if err := schema.CheckRequired(fields); err != nil {
		return next, []core.Notification{core.Error(core.MsgAllFieldsRequired)}
	}

	var notes []core.Notification
	if next.Draft.EditingID == nil {
		next.Entities = append(next.Entities, core.Entity{ID: next.nextID(now), Fields: fields})
		notes = append(notes, core.Success(schema.Messages.Created))
	} else if i := next.IndexOf(*next.Draft.EditingID); i >= 0 {
		next.Entities[i].Fields = fields
		notes = append(notes, core.Info(schema.Messages.Updated))
	}

	resetDraft(schema, &next)
	return next, notes
}

func resetDraft(schema core.Schema, s *State) {
	s.Draft = core.Draft{Fields: schema.EmptyFields()}
}
