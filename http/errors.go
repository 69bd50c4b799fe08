package http

import (
	"errors"
	"strconv"
)

// ErrUnauthorized is returned when a request carries no bearer token or one
// that is not configured.
var ErrUnauthorized = errors.New("bearer authentication failed")

// PartialWriteError reports a batch that failed after Written events were
// already stored. Stored events are not rolled back.
type PartialWriteError struct {
	Written int
	Err     error
}

func (e *PartialWriteError) Error() string {
	return "write event " + strconv.Itoa(e.Written) + ": " + e.Err.Error()
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
