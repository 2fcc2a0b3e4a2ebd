// Package fields provides the input bindings of a dynamic form.
//
// Every binding is constructed against an explicit *orchestrator.Context and
// bound to one schema name. Bindings read their value and validation message
// from the context's store on demand and write user input back by name, so a
// renderer only ever needs View() to draw a control and the mutators to
// forward input.
package fields
