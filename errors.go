package logtable

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is returned when an appender or backend is configured incorrectly
	ErrConfig = errors.New("invalid configuration")
	// ErrMissingConnection is returned when no connection or connection parameters are given
	ErrMissingConnection = fmt.Errorf("%w: missing connection parameters", ErrConfig)
	// ErrUnknownLayout is returned when a layout type is not registered
	ErrUnknownLayout = errors.New("unknown layout")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
