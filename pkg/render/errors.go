package render

import "errors"

var (
	// ErrNoRenderer is returned when a nil renderer is used.
	ErrNoRenderer = errors.New("render: renderer is required")
	// ErrUnknownRenderer is returned when a name has no registered renderer.
	ErrUnknownRenderer = errors.New("render: unknown renderer")
	// ErrDuplicateRenderer is returned when a name is registered twice.
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
)
