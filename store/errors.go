package store

import "errors"

// ErrNotFound is returned when a document does not exist or belongs to
// a different owner. Both cases look identical to the caller so record
// existence never leaks across users.
var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected write with a caller-facing message
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
