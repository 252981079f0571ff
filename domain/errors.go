package domain

import "strings"

// ValidationError aggregates one or more field-level failures so the HTTP
// layer can report them as a single 422 response regardless of how many
// constructors failed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// Add records a failing field's message and returns the receiver. On a nil
// receiver Add allocates a new ValidationError and returns that, so callers
// can build one lazily with `var verr *ValidationError; verr = verr.Add(...)`.
func (e *ValidationError) Add(msg string) *ValidationError {
	if e == nil {
		e = &ValidationError{}
	}
	e.Fields = append(e.Fields, msg)
	return e
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool { return e != nil && len(e.Fields) > 0 }
