package client

import "errors"

var (
	ErrConfigRequired = errors.New("config is required")
	ErrNoRecords      = errors.New("no records to write")
)
