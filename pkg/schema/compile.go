package schema

import "github.com/getkin/kin-openapi/openapi3"

// emailPattern is intentionally loose; deliverability is the server's job.
const emailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

func compileField(f Field) *openapi3.Schema {
	switch f.Type {
	case TypeBoolean:
		return openapi3.NewBoolSchema()
	case TypeNumber:
		return withBounds(openapi3.NewFloat64Schema(), f)
	case TypeInteger:
		return withBounds(openapi3.NewIntegerSchema(), f)
	case TypeDate:
		// Dates are normalized to RFC 3339 strings before they reach the engine.
		return openapi3.NewStringSchema()
	case TypeStrings:
		item := openapi3.NewStringSchema()
		item.Enum = enumValues(f.Enum)
		return withItemBounds(openapi3.NewArraySchema(), openapi3.NewSchemaRef("", item), f)
	case TypeFiles:
		return withItemBounds(openapi3.NewArraySchema(), openapi3.NewSchemaRef("", fileDescriptorSchema()), f)
	default:
		s := openapi3.NewStringSchema()
		if f.MinLength != nil {
			s.MinLength = uint64(*f.MinLength)
		}
		if f.MaxLength != nil {
			max := uint64(*f.MaxLength)
			s.MaxLength = &max
		}
		switch {
		case f.Pattern != "":
			s.Pattern = f.Pattern
		case f.Format == FormatEmail:
			s.Pattern = emailPattern
		}
		s.Enum = enumValues(f.Enum)
		return s
	}
}

func withBounds(s *openapi3.Schema, f Field) *openapi3.Schema {
	if f.Minimum != nil {
		min := *f.Minimum
		s.Min = &min
	}
	if f.Maximum != nil {
		max := *f.Maximum
		s.Max = &max
	}
	return s
}

func withItemBounds(s *openapi3.Schema, items *openapi3.SchemaRef, f Field) *openapi3.Schema {
	s.Items = items
	if f.MinItems != nil {
		s.MinItems = uint64(*f.MinItems)
	}
	if f.MaxItems != nil {
		max := uint64(*f.MaxItems)
		s.MaxItems = &max
	}
	return s
}

// fileDescriptorSchema mirrors the JSON shape of a picked file:
// {uri, name?, type?, size?}.
func fileDescriptorSchema() *openapi3.Schema {
	uri := openapi3.NewStringSchema()
	uri.MinLength = 1
	obj := openapi3.NewObjectSchema()
	obj.Properties = openapi3.Schemas{
		"uri":  openapi3.NewSchemaRef("", uri),
		"name": openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
		"type": openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
		"size": openapi3.NewSchemaRef("", openapi3.NewFloat64Schema()),
	}
	obj.Required = []string{"uri"}
	return obj
}

func enumValues(values []string) []any {
	if len(values) == 0 {
		return nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
