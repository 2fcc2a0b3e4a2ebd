package formstate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownField is returned when a name is not declared by the validator.
	ErrUnknownField = errors.New("formstate: field not declared in schema")
	// ErrNilValidator is returned by New when no validator is supplied.
	ErrNilValidator = errors.New("formstate: validator is required")
	// ErrSubmitting is returned by HandleSubmit while another submit runs.
	ErrSubmitting = errors.New("formstate: submission already in progress")
)

// ValidationError carries the per-field messages that blocked a submit.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "formstate: validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("formstate: validation failed for %s", strings.Join(names, ", "))
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func unknownField(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownField, name)
}
