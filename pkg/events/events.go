// Package events fans form and submission changes out to observers.
//
// Observers are the reactive half of a form: banners, submit buttons and
// renderers subscribe to the stores they display and redraw when notified.
package events

import "time"

// Kind identifies what changed.
type Kind string

const (
	ValueChanged      Kind = "value_changed"
	ErrorsChanged     Kind = "errors_changed"
	FormReset         Kind = "form_reset"
	SubmittingChanged Kind = "submitting_changed"
	StateChanged      Kind = "state_changed"
)

// Event is one published change with a typed payload.
type Event[T any] struct {
	Kind    Kind
	Payload T
	At      time.Time
}
