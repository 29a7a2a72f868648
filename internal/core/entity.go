package core

import "maps"

type (
	// Fields holds the string values of an entity keyed by field name.
	// Ordering comes from the owning Schema, never from the map.
	Fields map[string]string

	// Entity is one record of an editor collection. ID is assigned on
	// creation and never changes.
	Entity struct {
		ID     int64  `json:"id"`
		Fields Fields `json:"fields"`
	}

	// Draft is the in-progress form state. A nil EditingID means the draft
	// will create a new entity on submit.
	Draft struct {
		Fields    Fields `json:"fields"`
		EditingID *int64 `json:"editing_id,omitempty"`
	}
)

// Get returns the value of name, or "" when unset.
func (f Fields) Get(name string) string {
	if f == nil {
		return ""
	}
	return f[name]
}

// Clone returns an independent copy.
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	return maps.Clone(f)
}

// Clone returns a deep copy of the entity.
func (e Entity) Clone() Entity {
	return Entity{ID: e.ID, Fields: e.Fields.Clone()}
}

// Editing reports whether the draft targets an existing entity.
func (d Draft) Editing() bool {
	return d.EditingID != nil
}

// Clone returns a deep copy of the draft.
func (d Draft) Clone() Draft {
	out := Draft{Fields: d.Fields.Clone()}
	if d.EditingID != nil {
		id := *d.EditingID
		out.EditingID = &id
	}
	return out
}
