package core

import (
	"errors"
	"strings"
	"testing"
)

func testSchema() Schema {
	return Schema{
		Kind:  "widgets",
		Title: "Widgets",
		Fields: []FieldSpec{
			{Name: "name", Label: "Name", Required: true, Input: InputText},
			{Name: "color", Label: "Color", Input: InputSelect, Options: []string{"red", "blue"}},
			{Name: "notes", Label: "Notes", Input: InputTextArea},
		},
		Messages: Messages{Created: "added", Updated: "updated", Deleted: Warning("deleted")},
		Seed: []Entity{
			{ID: 1, Fields: Fields{"name": "a", "color": "red"}},
		},
	}
}

func TestSchemaProjectDropsUndeclared(t *testing.T) {
	s := testSchema()
	got := s.Project(Fields{"name": "x", "bogus": "y"})
	if len(got) != 3 {
		t.Fatalf("expected 3 fields, got %v", got)
	}
	if got["name"] != "x" || got["color"] != "" || got["notes"] != "" {
		t.Fatalf("unexpected projection: %v", got)
	}
	if _, ok := got["bogus"]; ok {
		t.Fatalf("undeclared field leaked into projection")
	}
}

func TestSchemaMissing(t *testing.T) {
	s := testSchema()
	cases := []struct {
		name   string
		fields Fields
		want   []string
	}{
		{"all empty", s.EmptyFields(), []string{"name"}},
		{"whitespace counts as empty", Fields{"name": "   "}, []string{"name"}},
		{"filled", Fields{"name": "ok"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Missing(tc.fields)
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Fatalf("Missing() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSchemaCheckRequiredWrapsSentinel(t *testing.T) {
	s := testSchema()
	err := s.CheckRequired(Fields{})
	if !errors.Is(err, ErrRequiredField) {
		t.Fatalf("expected ErrRequiredField, got %v", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Kind != "widgets" || len(ve.Missing) != 1 {
		t.Fatalf("unexpected validation error: %#v", err)
	}
	if err := s.CheckRequired(Fields{"name": "n"}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestSchemaValuesFollowDeclarationOrder(t *testing.T) {
	s := testSchema()
	got := s.Values(Fields{"notes": "c", "name": "a", "color": "b"})
	if strings.Join(got, "|") != "a|b|c" {
		t.Fatalf("Values() = %v", got)
	}
}

func TestSchemaValidate(t *testing.T) {
	if err := testSchema().Validate(); err != nil {
		t.Fatalf("expected valid schema, got %v", err)
	}

	bads := map[string]func(*Schema){
		"empty kind":       func(s *Schema) { s.Kind = "" },
		"no fields":        func(s *Schema) { s.Fields = nil; s.Seed = nil },
		"duplicate field":  func(s *Schema) { s.Fields = append(s.Fields, FieldSpec{Name: "name"}) },
		"select no option": func(s *Schema) { s.Fields[1].Options = nil },
		"bad delete kind":  func(s *Schema) { s.Messages.Deleted.Kind = "loud" },
		"duplicate seed":   func(s *Schema) { s.Seed = append(s.Seed, Entity{ID: 1}) },
		"undeclared seed":  func(s *Schema) { s.Seed[0].Fields["price"] = "1" },
	}
	for name, mutate := range bads {
		t.Run(name, func(t *testing.T) {
			s := testSchema()
			mutate(&s)
			err := s.Validate()
			if !errors.Is(err, ErrInvalidSchema) {
				t.Fatalf("expected ErrInvalidSchema, got %v", err)
			}
		})
	}
}

func TestDraftCloneIsIndependent(t *testing.T) {
	id := int64(7)
	d := Draft{Fields: Fields{"name": "a"}, EditingID: &id}
	c := d.Clone()
	c.Fields["name"] = "b"
	*c.EditingID = 9
	if d.Fields["name"] != "a" || *d.EditingID != 7 {
		t.Fatalf("clone shares state with original: %+v", d)
	}
	if !c.Editing() {
		t.Fatalf("clone lost editing target")
	}
}
