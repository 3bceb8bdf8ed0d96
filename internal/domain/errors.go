package domain

import (
	"errors"
	"strings"
)

// Sentinel errors used across layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrFormOpen        = errors.New("a recipe form is already open")
	ErrFormClosed      = errors.New("no recipe form is open")
	ErrInvalidDraft    = errors.New("recipe draft is invalid")
	ErrInvalidDocument = errors.New("recipe document is invalid")
	ErrUnknownStep     = errors.New("unknown step type")
	ErrUnknownField    = errors.New("unknown field")
	ErrFieldHidden     = errors.New("field is not shown for the current selection")
	ErrInvalidValue    = errors.New("invalid value")
	ErrDeclined        = errors.New("declined")
)

// FieldError is a validation failure attached to one field path, e.g.
// "name" or "steps.1.centerY".
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) Error() string {
	return e.Path + ": " + e.Message
}

// FieldErrors is an ordered set of field failures. A nil or empty value
// means the input is valid.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

// Get returns the message attached to path.
func (fe FieldErrors) Get(path string) (string, bool) {
	for _, e := range fe {
		if e.Path == path {
			return e.Message, true
		}
	}
	return "", false
}

// Has reports whether path has a failure.
func (fe FieldErrors) Has(path string) bool {
	_, ok := fe.Get(path)
	return ok
}

// Paths returns the failing paths in order.
func (fe FieldErrors) Paths() []string {
	out := make([]string, len(fe))
	for i, e := range fe {
		out[i] = e.Path
	}
	return out
}

// Err returns fe as an error, or nil when there are no failures.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
