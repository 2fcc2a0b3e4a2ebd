package schema

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk definition of a form: its fields plus optional
// submission target and default values. YAML and JSON are both accepted.
type Document struct {
	ID       string         `json:"id,omitempty" yaml:"id,omitempty"`
	Title    string         `json:"title,omitempty" yaml:"title,omitempty"`
	Endpoint string         `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Defaults map[string]any `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	Fields   []Field        `json:"fields" yaml:"fields"`
}

// Parse decodes a definition document. Unknown keys are rejected so typos in
// rule names surface early.
func Parse(raw []byte) (*Document, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("schema: document is empty")
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("schema: decode document: %w", err)
	}
	if len(doc.Fields) == 0 {
		return nil, errors.New("schema: document declares no fields")
	}
	doc.Defaults = normalizeDefaults(doc.Defaults)
	return &doc, nil
}

// Schema compiles the document's field declarations.
func (d *Document) Schema() (*Schema, error) {
	if d == nil {
		return nil, errors.New("schema: document is nil")
	}
	return New(d.Fields...)
}

// normalizeDefaults turns YAML sequences into []any and nested mappings into
// map[string]any so defaults compare equal to values produced by bindings.
func normalizeDefaults(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = normalizeYAMLValue(v)
	}
	return out
}

func normalizeYAMLValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeDefaults(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, inner := range v {
			out[fmt.Sprint(k)] = normalizeYAMLValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = normalizeYAMLValue(inner)
		}
		return out
	case int:
		return float64(v)
	default:
		return v
	}
}
