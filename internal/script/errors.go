package script

import "errors"

// Errors for script operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrBadReturn is returned when a script command returns something
	// other than a list of offsets or nil.
	ErrBadReturn = errors.New("script command must return a list of offsets or nil")

	// ErrDuplicateCommand is returned when a script defines a name twice.
	ErrDuplicateCommand = errors.New("script command already defined")
)
