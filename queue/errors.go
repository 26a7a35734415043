package queue

import (
	"errors"
	"fmt"

	"github.com/queuectl/queuectl/store"
)

// ErrNotFound and ErrDuplicateID re-export the store package's sentinels
// so callers of queue.Service need not import store directly to match
// errors.Is against them.
var (
	ErrNotFound    = store.ErrNotFound
	ErrDuplicateID = store.ErrDuplicateID
)

// ValidationError reports bad caller input to Enqueue: a missing or
// empty id/command, or a negative max_retries.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("queue: validation: %s: %s", e.Field, e.Msg)
}

func validationErr(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
