package handler

import "errors"

// ErrInvalidArgument indicates a command argument has the wrong type or value.
var ErrInvalidArgument = errors.New("handler: invalid argument")
