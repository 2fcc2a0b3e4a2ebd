package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	errInvalidDate = errors.New("invalid date")
	errNotFinite   = errors.New("value must be a finite number")
)

// Validate evaluates every declared field against values and returns one
// message per failing field. Values for undeclared names are ignored. The
// result is nil when everything passes.
func (s *Schema) Validate(values map[string]any) map[string]string {
	if s == nil {
		return nil
	}
	var out map[string]string
	for _, field := range s.fields {
		msg, failed := s.ValidateField(field.Name, values[field.Name])
		if !failed {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[field.Name] = msg
	}
	return out
}

// ValidateField evaluates a single value. Undeclared names always pass.
func (s *Schema) ValidateField(name string, value any) (string, bool) {
	if s == nil {
		return "", false
	}
	idx, ok := s.index[name]
	if !ok {
		return "", false
	}
	field := s.fields[idx]

	if isEmpty(field, value) {
		if field.Required {
			return field.Message(RuleRequired, DefaultRequiredMessage), true
		}
		return "", false
	}

	normalized, err := normalize(field, value)
	if err != nil {
		return field.Message(RuleType, err.Error()), true
	}

	if err := s.compiled[idx].VisitJSON(normalized, openapi3.MultiErrors()); err != nil {
		return messageFor(field, err), true
	}
	return "", false
}

func isEmpty(field Field, value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		// A required boolean is an acceptance toggle: false counts as missing.
		return field.Type == TypeBoolean && !v
	case time.Time:
		return v.IsZero()
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case []FileDescriptor:
		return len(v) == 0
	}
	if field.IsList() {
		raw, err := json.Marshal(value)
		return err == nil && (string(raw) == "[]" || string(raw) == "null")
	}
	return false
}

// normalize converts Go values into the generic JSON shapes VisitJSON expects.
func normalize(field Field, value any) (any, error) {
	if field.Type == TypeDate {
		return normalizeDate(value)
	}
	if f, ok := value.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil, errNotFinite
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("unsupported value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unsupported value: %w", err)
	}
	return out, nil
}

func normalizeDate(value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339), nil
	case *time.Time:
		if v == nil {
			return nil, errInvalidDate
		}
		return v.Format(time.RFC3339), nil
	case string:
		for _, layout := range []string{time.RFC3339, time.DateOnly, time.DateTime} {
			if parsed, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return parsed.Format(time.RFC3339), nil
			}
		}
	}
	return nil, errInvalidDate
}

func messageFor(field Field, err error) string {
	se := firstSchemaError(err)
	if se == nil {
		return field.Message(RuleType, err.Error())
	}
	rule := se.SchemaField
	if rule == RulePattern && field.Format == FormatEmail {
		rule = RuleFormat
	}
	reason := strings.TrimSpace(se.Reason)
	if reason == "" {
		reason = se.Error()
	}
	return field.Message(rule, reason)
}

func firstSchemaError(err error) *openapi3.SchemaError {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			if se := firstSchemaError(inner); se != nil {
				return se
			}
		}
		return nil
	}
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		return se
	}
	return nil
}
