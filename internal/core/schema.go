package core

import (
	"fmt"
	"strings"
)

// InputKind selects the form control rendered for a field.
type InputKind string

const (
	InputText     InputKind = "text"
	InputNumber   InputKind = "number"
	InputTextArea InputKind = "textarea"
	InputDate     InputKind = "date"
	InputSelect   InputKind = "select"
)

type (
	// FieldSpec describes one form field of a schema.
	FieldSpec struct {
		Name     string    `json:"name"`
		Label    string    `json:"label"`
		Required bool      `json:"required"`
		Input    InputKind `json:"input"`
		Options  []string  `json:"options,omitempty"` // InputSelect only
	}

	// Messages configures the toasts an editor emits. Created is always a
	// success and Updated always info; Deleted carries its own kind because
	// the editors disagree on how severe a delete is.
	Messages struct {
		Created string
		Updated string
		Deleted Notification
	}

	// Schema parametrizes one Entity List Editor instance.
	Schema struct {
		Kind     string // url-safe identifier, e.g. "products"
		Title    string // plural heading, e.g. "Products"
		Singular string
		Fields   []FieldSpec
		Messages Messages
		Seed     []Entity
	}
)

// FieldNames returns the field names in declaration order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Field looks up a field spec by name.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// HasField reports whether name is declared by the schema.
func (s Schema) HasField(name string) bool {
	_, ok := s.Field(name)
	return ok
}

// EmptyFields returns a Fields value with every declared field set to "".
func (s Schema) EmptyFields() Fields {
	out := make(Fields, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = ""
	}
	return out
}

// Project copies the declared fields out of f, dropping anything else.
func (s Schema) Project(f Fields) Fields {
	out := make(Fields, len(s.Fields))
	for _, spec := range s.Fields {
		out[spec.Name] = f.Get(spec.Name)
	}
	return out
}

// Missing returns the required fields that are blank in f, in declaration order.
func (s Schema) Missing(f Fields) []string {
	var missing []string
	for _, spec := range s.Fields {
		if spec.Required && strings.TrimSpace(f.Get(spec.Name)) == "" {
			missing = append(missing, spec.Name)
		}
	}
	return missing
}

// CheckRequired returns a *ValidationError when a required field is blank.
func (s Schema) CheckRequired(f Fields) error {
	if missing := s.Missing(f); len(missing) > 0 {
		return &ValidationError{Kind: s.Kind, Missing: missing}
	}
	return nil
}

// Values returns the values of f in schema order.
func (s Schema) Values(f Fields) []string {
	out := make([]string, len(s.Fields))
	for i, spec := range s.Fields {
		out[i] = f.Get(spec.Name)
	}
	return out
}

// Validate checks the schema declaration itself.
func (s Schema) Validate() error {
	var problems []string

	if strings.TrimSpace(s.Kind) == "" {
		problems = append(problems, "kind cannot be empty")
	}
	if len(s.Fields) == 0 {
		problems = append(problems, "at least one field is required")
	}

	seen := make(map[string]struct{}, len(s.Fields))
	for i, f := range s.Fields {
		if strings.TrimSpace(f.Name) == "" {
			problems = append(problems, fmt.Sprintf("field %d has no name", i))
			continue
		}
		if _, dup := seen[f.Name]; dup {
			problems = append(problems, fmt.Sprintf("duplicate field %q", f.Name))
		}
		seen[f.Name] = struct{}{}
		if f.Input == InputSelect && len(f.Options) == 0 {
			problems = append(problems, fmt.Sprintf("select field %q has no options", f.Name))
		}
	}

	if !s.Messages.Deleted.Kind.Valid() {
		problems = append(problems, fmt.Sprintf("invalid delete notification kind %q", s.Messages.Deleted.Kind))
	}

	ids := make(map[int64]struct{}, len(s.Seed))
	for _, e := range s.Seed {
		if _, dup := ids[e.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate seed id %d", e.ID))
		}
		ids[e.ID] = struct{}{}
		for name := range e.Fields {
			if _, ok := seen[name]; !ok {
				problems = append(problems, fmt.Sprintf("seed %d sets undeclared field %q", e.ID, name))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w %q:\n- %s", ErrInvalidSchema, s.Kind, strings.Join(problems, "\n- "))
	}
	return nil
}
