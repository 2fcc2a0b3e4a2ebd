package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// messagesExtension lets OpenAPI authors attach per-rule messages to a
// property, e.g. `x-messages: {minLength: "too short"}`.
const messagesExtension = "x-messages"

// FromOpenAPI derives a definition document from the JSON request body of the
// operation identified by operationID. The operation path becomes the
// document endpoint. Properties that cannot be bound to a flat form field
// (nested objects, untyped values) are skipped.
func FromOpenAPI(ctx context.Context, raw []byte, operationID string) (*Document, error) {
	if strings.TrimSpace(operationID) == "" {
		return nil, errors.New("schema: operation id is required")
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: load openapi document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("schema: openapi document does not contain any paths")
	}

	paths := spec.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op == nil || op.OperationID != operationID {
				continue
			}
			return documentFromOperation(path, op)
		}
	}
	return nil, fmt.Errorf("schema: operation %q not found", operationID)
}

func documentFromOperation(path string, op *openapi3.Operation) (*Document, error) {
	body := requestSchema(op.RequestBody)
	if body == nil {
		return nil, fmt.Errorf("schema: operation %q has no JSON request body", op.OperationID)
	}

	required := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := &Document{
		ID:       op.OperationID,
		Title:    op.Summary,
		Endpoint: path,
	}
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := fieldFromProperty(name, ref.Value)
		if !ok {
			continue
		}
		_, field.Required = required[name]
		doc.Fields = append(doc.Fields, field)
		if ref.Value.Default != nil {
			if doc.Defaults == nil {
				doc.Defaults = make(map[string]any)
			}
			doc.Defaults[name] = ref.Value.Default
		}
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("schema: operation %q request body has no bindable properties", op.OperationID)
	}
	return doc, nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	media := body.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil
	}
	return media.Schema.Value
}

func fieldFromProperty(name string, prop *openapi3.Schema) (Field, bool) {
	field := Field{
		Name:     name,
		Label:    prop.Title,
		Messages: extensionMessages(prop.Extensions),
	}

	switch schemaType(prop.Type) {
	case "string":
		switch prop.Format {
		case "date", "date-time":
			field.Type = TypeDate
			return field, true
		case FormatEmail:
			field.Format = FormatEmail
		default:
			field.Pattern = prop.Pattern
		}
		field.Type = TypeString
		if prop.MinLength != 0 {
			field.MinLength = Int(int(prop.MinLength))
		}
		if prop.MaxLength != nil {
			field.MaxLength = Int(int(*prop.MaxLength))
		}
		field.Enum = stringifyEnum(prop.Enum)
	case "boolean":
		field.Type = TypeBoolean
	case "integer":
		field.Type = TypeInteger
		field.Minimum, field.Maximum = prop.Min, prop.Max
	case "number":
		field.Type = TypeNumber
		field.Minimum, field.Maximum = prop.Min, prop.Max
	case "array":
		if prop.Items == nil || prop.Items.Value == nil {
			return Field{}, false
		}
		items := prop.Items.Value
		switch {
		case schemaType(items.Type) == "string":
			field.Type = TypeStrings
			field.Enum = stringifyEnum(items.Enum)
		case schemaType(items.Type) == "object" && items.Properties["uri"] != nil:
			field.Type = TypeFiles
		default:
			return Field{}, false
		}
		if prop.MinItems != 0 {
			field.MinItems = Int(int(prop.MinItems))
		}
		if prop.MaxItems != nil {
			field.MaxItems = Int(int(*prop.MaxItems))
		}
	default:
		return Field{}, false
	}
	return field, true
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	for _, v := range values {
		if v != "null" {
			return v
		}
	}
	return ""
}

func stringifyEnum(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func extensionMessages(extensions map[string]any) map[string]string {
	raw, ok := extensions[messagesExtension]
	if !ok {
		return nil
	}
	var decoded map[string]any
	switch v := raw.(type) {
	case map[string]any:
		decoded = v
	case json.RawMessage:
		if err := json.Unmarshal(v, &decoded); err != nil {
			return nil
		}
	default:
		return nil
	}
	out := make(map[string]string, len(decoded))
	for rule, msg := range decoded {
		if s, ok := msg.(string); ok && strings.TrimSpace(s) != "" {
			out[rule] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
