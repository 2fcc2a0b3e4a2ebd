// Package schema describes the named fields of a form together with their
// value types and validation rules. Rule evaluation is delegated to the
// kin-openapi schema engine: every field compiles into an openapi3.Schema and
// values are checked with VisitJSON. The package maps engine failures back to
// one human readable message per field, preferring the per-rule messages
// declared on the field.
//
// Schemas are built programmatically (New), parsed from YAML/JSON definition
// documents (Parse, Load), or derived from the JSON request body of an OpenAPI
// operation (FromOpenAPI). A Schema is immutable once built.
package schema
