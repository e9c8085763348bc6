// Package chain runs a sequence of commands through the dispatcher.
//
// A chain runs each command in order. When it reaches a command that
// waits for user interaction (any name containing "ace_jump"), the rest
// of the chain is handed to that command as its continuation and the
// chain stops. The interactive command resumes the continuation itself
// once the user has answered.
package chain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
	"github.com/dshills/cursorkit/internal/input"
)

// ContinuationKey is the argument under which a deferred command
// receives the remaining commands, as a []input.Action.
const ContinuationKey = "continuation"

// DeferredMarker identifies commands that defer the rest of a chain.
const DeferredMarker = "ace_jump"

// Errors returned while parsing or running chains.
var (
	ErrMalformedArgs = errors.New("chain: command arguments must be a mapping")
	ErrMalformedSpec = errors.New("chain: malformed command spec")
)

// State is where a chain run ended up.
type State uint8

const (
	// Running means every command was dispatched in turn.
	Running State = iota
	// Deferred means the chain was handed to an interactive command.
	Deferred
)

func (s State) String() string {
	if s == Deferred {
		return "deferred"
	}
	return "running"
}

// IsDeferred reports whether the named command takes over the rest of
// a chain.
func IsDeferred(name string) bool {
	return strings.Contains(name, DeferredMarker)
}

// Outcome summarizes a chain run.
type Outcome struct {
	State State
	// Invoked counts the commands dispatched by this run.
	Invoked int
	// DeferredTo names the command holding the continuation.
	DeferredTo string
	// Pending is the number of commands handed over as continuation.
	Pending int
}

// Runner dispatches chains.
type Runner struct {
	commands execctx.CommandRunner
	log      execctx.Logger
}

// NewRunner creates a runner dispatching through commands.
func NewRunner(commands execctx.CommandRunner) *Runner {
	return &Runner{commands: commands, log: execctx.NopLogger}
}

// WithLogger returns the runner with the logger set.
func (r *Runner) WithLogger(log execctx.Logger) *Runner {
	if log != nil {
		r.log = log
	}
	return r
}

// Run dispatches specs in order.
// A command that fails stops the chain and its error is returned
// unchanged apart from naming the command.
func (r *Runner) Run(specs []input.Action) (Outcome, error) {
	var out Outcome

	for i, spec := range specs {
		spec = spec.WithSource(input.SourceChain)
		if spec.Args == nil {
			spec.Args = input.Args{}
		}

		if IsDeferred(spec.Name) {
			rest := make([]input.Action, len(specs)-i-1)
			copy(rest, specs[i+1:])

			spec.Args = spec.Args.With(ContinuationKey, rest)
			out.State = Deferred
			out.DeferredTo = spec.Name
			out.Pending = len(rest)
			out.Invoked++

			r.log.Debug("chain deferred to %s with %d pending", spec.Name, len(rest))
			if err := r.commands.Execute(spec); err != nil {
				return out, fmt.Errorf("%s: %w", spec.Name, err)
			}
			return out, nil
		}

		out.Invoked++
		if err := r.commands.Execute(spec); err != nil {
			return out, fmt.Errorf("%s: %w", spec.Name, err)
		}
	}

	out.State = Running
	return out, nil
}

// Continuation extracts the continuation injected into a deferred
// command's arguments. Missing means an empty continuation.
func Continuation(args input.Args) ([]input.Action, error) {
	v, ok := args.Get(ContinuationKey)
	if !ok || v == nil {
		return nil, nil
	}
	if specs, ok := v.([]input.Action); ok {
		out := make([]input.Action, len(specs))
		copy(out, specs)
		return out, nil
	}
	return Parse(v)
}
