package editor

import (
	"fmt"
	"strings"

	"storefront/internal/core"
)

const (
	SubmitLabelCreate = "Submit"
	SubmitLabelUpdate = "Update"
)

// Column is one table header.
type Column struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Row is one rendered entity. Cells follow the schema's field order.
type Row struct {
	ID            int64    `json:"id"`
	Cells         []string `json:"cells"`
	Editing       bool     `json:"editing"`
	PendingDelete bool     `json:"pending_delete"`
}

// FormField pairs a field spec with the draft's current value.
type FormField struct {
	core.FieldSpec
	Value string `json:"value"`
}

// Dialog describes the delete confirmation dialog.
type Dialog struct {
	Open     bool   `json:"open"`
	TargetID int64  `json:"target_id,omitempty"`
	Message  string `json:"message,omitempty"`
}

// View is the render model of an editor: a table in collection order, the
// form, and the dialog.
type View struct {
	Kind         string      `json:"kind"`
	Title        string      `json:"title"`
	Singular     string      `json:"singular"`
	Phase        Phase       `json:"phase"`
	Columns      []Column    `json:"columns"`
	Rows         []Row       `json:"rows"`
	Empty        bool        `json:"empty"`
	EmptyMessage string      `json:"empty_message,omitempty"`
	Form         []FormField `json:"form"`
	EditingID    int64       `json:"editing_id,omitempty"`
	SubmitLabel  string      `json:"submit_label"`
	Dialog       Dialog      `json:"dialog"`
}

// Render builds the view of s under schema.
func Render(schema core.Schema, s State) View {
	v := View{
		Kind:        schema.Kind,
		Title:       schema.Title,
		Singular:    schema.Singular,
		Phase:       s.Phase(),
		Columns:     make([]Column, len(schema.Fields)),
		Rows:        make([]Row, 0, len(s.Entities)),
		Form:        make([]FormField, len(schema.Fields)),
		SubmitLabel: SubmitLabelCreate,
	}

	for i, f := range schema.Fields {
		v.Columns[i] = Column{Name: f.Name, Label: f.Label}
		v.Form[i] = FormField{FieldSpec: f, Value: s.Draft.Fields.Get(f.Name)}
	}

	if s.Draft.EditingID != nil {
		v.EditingID = *s.Draft.EditingID
		v.SubmitLabel = SubmitLabelUpdate
	}

	var target int64
	if s.Confirm.Open && s.Confirm.TargetID != nil {
		target = *s.Confirm.TargetID
		v.Dialog = Dialog{
			Open:     true,
			TargetID: target,
			Message:  fmt.Sprintf("Are you sure you want to delete this %s?", singularOf(schema)),
		}
	} else if s.Confirm.Open {
		v.Dialog = Dialog{Open: true, Message: "Are you sure?"}
	}

	for _, e := range s.Entities {
		v.Rows = append(v.Rows, Row{
			ID:            e.ID,
			Cells:         schema.Values(e.Fields),
			Editing:       s.Draft.EditingID != nil && e.ID == v.EditingID,
			PendingDelete: v.Dialog.Open && e.ID == target,
		})
	}

	if len(v.Rows) == 0 {
		v.Empty = true
		v.EmptyMessage = fmt.Sprintf("No %s found.", lowerTitle(schema))
	}
	return v
}

// View renders the editor's current state.
func (e *Editor) View() View {
	return Render(e.schema, e.state)
}

func singularOf(schema core.Schema) string {
	if schema.Singular != "" {
		return strings.ToLower(schema.Singular)
	}
	return "item"
}

func lowerTitle(schema core.Schema) string {
	if schema.Title != "" {
		return strings.ToLower(schema.Title)
	}
	return "items"
}
