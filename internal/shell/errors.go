package shell

import (
	"errors"
)

var (
	ErrExists      = errors.New("already exists")
	ErrNotFound    = errors.New("no such file or directory")
	ErrNotDir      = errors.New("not a directory")
	ErrNotEmpty    = errors.New("directory not empty")
	ErrInvalidName = errors.New("invalid name")
	ErrUnknown     = errors.New("unknown command")
)

// usageError reports a command invoked with the wrong arguments.
type usageError struct {
	usage string
}

func (e *usageError) Error() string {
	return "usage: " + e.usage
}
