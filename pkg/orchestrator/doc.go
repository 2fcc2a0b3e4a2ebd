// Package orchestrator drives form submission: it validates the value store
// against the schema, POSTs valid values as JSON, interprets the response
// envelope and exposes the resulting loading/error/success state to the
// bindings, banners and button that share its Context.
package orchestrator
