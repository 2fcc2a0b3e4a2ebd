package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNilForm is returned when Fill is called without a form.
	ErrNilForm = errors.New("tui: form is required")
	// ErrTooManyRounds is returned when the form is still invalid after the
	// configured number of submit rounds.
	ErrTooManyRounds = errors.New("tui: form still invalid")
)
