package mediastore

import (
	"errors"
	"fmt"
)

// ErrKindRequired is returned when a list or put call omits the media kind.
var ErrKindRequired = errors.New("media kind is required")

// Error wraps any failure reported by the object store.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("media store %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
