package core

import (
	"errors"
	"strings"
)

var (
	ErrRequiredField  = errors.New("required field is empty")
	ErrEntityNotFound = errors.New("entity not found")
	ErrUnknownKind    = errors.New("unknown editor kind")
	ErrInvalidSchema  = errors.New("invalid schema")
)

// ValidationError lists the required fields a draft left empty.
type ValidationError struct {
	Kind    string
	Missing []string
}

func (e *ValidationError) Error() string {
	return e.Kind + ": missing required fields: " + strings.Join(e.Missing, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrRequiredField
}
