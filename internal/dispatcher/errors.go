package dispatcher

import "errors"

// Failures reported in Result.Error by Dispatch. Each is wrapped with
// the offending action name.
var (
	ErrInvalidAction   = errors.New("dispatcher: action has no name")
	ErrNoHandler       = errors.New("dispatcher: no handler for action")
	ErrActionCancelled = errors.New("dispatcher: cancelled by pre-dispatch hook")
	ErrPanic           = errors.New("dispatcher: handler panicked")
	ErrMaxDepth        = errors.New("dispatcher: nested dispatch too deep")
)
