package execctx

import "errors"

// Returned by the Validate helpers when a handler needs a collaborator
// the dispatcher did not supply.
var (
	ErrMissingEngine   = errors.New("execctx: no engine attached")
	ErrMissingCommands = errors.New("execctx: no command runner attached")
)
