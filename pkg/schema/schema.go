package schema

import (
	"fmt"
	"regexp"

	"github.com/getkin/kin-openapi/openapi3"
)

// Schema is an immutable, validated set of fields. The zero value and nil
// pointer behave as an empty schema.
type Schema struct {
	fields   []Field
	index    map[string]int
	compiled []*openapi3.Schema
}

// New validates the field declarations and compiles them for the validation
// engine. Field names must be unique.
func New(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields:   make([]Field, 0, len(fields)),
		index:    make(map[string]int, len(fields)),
		compiled: make([]*openapi3.Schema, 0, len(fields)),
	}
	for _, field := range fields {
		if err := field.validate(); err != nil {
			return nil, err
		}
		if _, exists := s.index[field.Name]; exists {
			return nil, fmt.Errorf("schema: duplicate field %q", field.Name)
		}
		if field.Pattern != "" {
			if _, err := regexp.Compile(field.Pattern); err != nil {
				return nil, fmt.Errorf("schema: field %q: invalid pattern: %w", field.Name, err)
			}
		}
		s.index[field.Name] = len(s.fields)
		s.fields = append(s.fields, cloneField(field))
		s.compiled = append(s.compiled, compileField(field))
	}
	return s, nil
}

// MustNew panics when the declarations are invalid. Intended for package
// level schema literals and tests.
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Has reports whether name is declared.
func (s *Schema) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// Names returns the declared names in declaration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.fields))
	for i, field := range s.fields {
		out[i] = field.Name
	}
	return out
}

// Field returns a copy of the named declaration.
func (s *Schema) Field(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	idx, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return cloneField(s.fields[idx]), true
}

// Fields returns copies of every declaration in order.
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}
	out := make([]Field, len(s.fields))
	for i, field := range s.fields {
		out[i] = cloneField(field)
	}
	return out
}

func cloneField(f Field) Field {
	out := f
	if f.MinLength != nil {
		out.MinLength = Int(*f.MinLength)
	}
	if f.MaxLength != nil {
		out.MaxLength = Int(*f.MaxLength)
	}
	if f.MinItems != nil {
		out.MinItems = Int(*f.MinItems)
	}
	if f.MaxItems != nil {
		out.MaxItems = Int(*f.MaxItems)
	}
	if f.Minimum != nil {
		out.Minimum = Float(*f.Minimum)
	}
	if f.Maximum != nil {
		out.Maximum = Float(*f.Maximum)
	}
	if len(f.Enum) > 0 {
		out.Enum = append([]string(nil), f.Enum...)
	}
	if len(f.Messages) > 0 {
		out.Messages = make(map[string]string, len(f.Messages))
		for k, v := range f.Messages {
			out.Messages[k] = v
		}
	}
	if f.UI != nil {
		ui := *f.UI
		ui.Options = append([]Option(nil), f.UI.Options...)
		out.UI = &ui
	}
	return out
}
