package schema

import (
	"fmt"
	"strings"
)

// Type enumerates the value shapes a field may hold.
type Type string

const (
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeDate    Type = "date"
	TypeStrings Type = "strings"
	TypeFiles   Type = "files"
)

// Rule keywords follow JSON Schema naming so engine failures map back onto
// them without translation. They also key Field.Messages.
const (
	RuleRequired  = "required"
	RuleType      = "type"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RuleMinimum   = "minimum"
	RuleMaximum   = "maximum"
	RulePattern   = "pattern"
	RuleFormat    = "format"
	RuleEnum      = "enum"
	RuleMinItems  = "minItems"
	RuleMaxItems  = "maxItems"
)

// FormatEmail is the only string format the engine adapter understands.
const FormatEmail = "email"

// DefaultRequiredMessage is reported for a missing required value when the
// field does not declare its own message.
const DefaultRequiredMessage = "This field is required"

// Field declares one named slot of a form. Pointer rules are optional; zero
// values mean "no constraint".
type Field struct {
	Name      string            `json:"name" yaml:"name"`
	Type      Type              `json:"type" yaml:"type"`
	Label     string            `json:"label,omitempty" yaml:"label,omitempty"`
	Required  bool              `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength *int              `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int              `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Minimum   *float64          `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum   *float64          `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	Pattern   string            `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Format    string            `json:"format,omitempty" yaml:"format,omitempty"`
	Enum      []string          `json:"enum,omitempty" yaml:"enum,omitempty"`
	MinItems  *int              `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems  *int              `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	Messages  map[string]string `json:"messages,omitempty" yaml:"messages,omitempty"`
	UI        *UIHints          `json:"ui,omitempty" yaml:"ui,omitempty"`
}

// Message returns the declared message for rule, or fallback when none is set.
func (f Field) Message(rule, fallback string) string {
	if msg := strings.TrimSpace(f.Messages[rule]); msg != "" {
		return msg
	}
	return fallback
}

// IsList reports whether the field holds a list value.
func (f Field) IsList() bool {
	return f.Type == TypeStrings || f.Type == TypeFiles
}

func (f Field) validate() error {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return fmt.Errorf("schema: field name is required")
	}
	if name != f.Name {
		return fmt.Errorf("schema: field %q has surrounding whitespace", f.Name)
	}
	switch f.Type {
	case TypeString, TypeBoolean, TypeNumber, TypeInteger, TypeDate, TypeStrings, TypeFiles:
	case "":
		return fmt.Errorf("schema: field %q: type is required", f.Name)
	default:
		return fmt.Errorf("schema: field %q: unknown type %q", f.Name, f.Type)
	}
	if f.Format != "" && f.Format != FormatEmail {
		return fmt.Errorf("schema: field %q: unsupported format %q", f.Name, f.Format)
	}
	if f.Format == FormatEmail && f.Pattern != "" {
		return fmt.Errorf("schema: field %q: pattern and email format are mutually exclusive", f.Name)
	}
	if f.Format != "" && f.Type != TypeString {
		return fmt.Errorf("schema: field %q: format requires a string field", f.Name)
	}
	if f.MinLength != nil && *f.MinLength < 0 {
		return fmt.Errorf("schema: field %q: minLength must not be negative", f.Name)
	}
	if f.MaxLength != nil && *f.MaxLength < 0 {
		return fmt.Errorf("schema: field %q: maxLength must not be negative", f.Name)
	}
	if f.MinItems != nil && *f.MinItems < 0 {
		return fmt.Errorf("schema: field %q: minItems must not be negative", f.Name)
	}
	if f.MaxItems != nil && *f.MaxItems < 0 {
		return fmt.Errorf("schema: field %q: maxItems must not be negative", f.Name)
	}
	if f.Minimum != nil && f.Maximum != nil && *f.Minimum > *f.Maximum {
		return fmt.Errorf("schema: field %q: minimum exceeds maximum", f.Name)
	}
	return f.UI.validate(f)
}

// Int returns a pointer to v; handy for building rules in code.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
