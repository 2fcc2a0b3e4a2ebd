package fields

import "errors"

var (
	// ErrNilContext is returned when a binding is built without a context.
	ErrNilContext = errors.New("fields: context is required")
	// ErrUnknownOption is returned when a value is not among the options.
	ErrUnknownOption = errors.New("fields: value is not one of the options")
	// ErrNotImage is returned when an image-only upload receives another type.
	ErrNotImage = errors.New("fields: only image files are accepted")
	// ErrIndexOutOfRange is returned by FileUpload.Remove for a bad index.
	ErrIndexOutOfRange = errors.New("fields: file index out of range")
	// ErrDisabled is returned when a disabled binding is written.
	ErrDisabled = errors.New("fields: binding is disabled")
	// ErrInvalidDate is returned when date input cannot be parsed.
	ErrInvalidDate = errors.New("fields: invalid date")
	// ErrInvalidRange is returned for a slider whose bounds or step are unusable.
	ErrInvalidRange = errors.New("fields: invalid slider range")
)

// MessageError carries a localized, user-facing message while still matching
// its sentinel with errors.Is.
type MessageError struct {
	Err     error
	Message string
}

func (e *MessageError) Error() string { return e.Message }

func (e *MessageError) Unwrap() error { return e.Err }
