// Package chain provides commands that run other commands.
//
// run_multiple_commands takes its list under the "commands" argument.
// Named chains defined from configuration or scripts become commands of
// their own that run a stored list.
package chain

import (
	"fmt"
	"sort"

	cmdchain "github.com/dshills/cursorkit/internal/dispatcher/chain"
	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
	"github.com/dshills/cursorkit/internal/dispatcher/handler"
	"github.com/dshills/cursorkit/internal/input"
)

// Action names and argument keys.
const (
	ActionRunMultipleCommands = "run_multiple_commands"
	ArgCommands               = "commands"
	DataOutcome               = "chain"
)

// Handler implements the chain namespace.
type Handler struct {
	*handler.BaseNamespaceHandler
	named map[string][]input.Action
}

// NewHandler creates a chain handler.
func NewHandler() *Handler {
	h := &Handler{
		BaseNamespaceHandler: handler.NewBaseNamespaceHandler("chain"),
		named:                make(map[string][]input.Action),
	}
	h.Register(ActionRunMultipleCommands, h.runMultiple)
	return h
}

// Define registers a named chain as a command. raw is parsed with the
// same rules as run_multiple_commands; a malformed list defines nothing.
// Chains must be defined before the handler is registered with a
// dispatcher.
func (h *Handler) Define(name string, raw any) error {
	if name == "" || name == ActionRunMultipleCommands {
		return fmt.Errorf("chain name %q: %w", name, handler.ErrInvalidArgument)
	}
	specs, err := cmdchain.Parse(raw)
	if err != nil {
		return fmt.Errorf("chain %s: %w", name, err)
	}

	h.named[name] = specs
	h.Register(name, func(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return run(ctx, h.named[name])
	})
	return nil
}

// Named returns the sorted names of every defined chain.
func (h *Handler) Named() []string {
	names := make([]string, 0, len(h.named))
	for name := range h.named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Specs returns a copy of the named chain's commands.
func (h *Handler) Specs(name string) ([]input.Action, bool) {
	specs, ok := h.named[name]
	if !ok {
		return nil, false
	}
	out := make([]input.Action, len(specs))
	copy(out, specs)
	return out, true
}

// HandleAction processes a chain action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForChain(); err != nil {
		return handler.Error(err)
	}
	return h.BaseNamespaceHandler.HandleAction(action, ctx)
}

func (h *Handler) runMultiple(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	raw, _ := action.Args.Get(ArgCommands)
	specs, err := cmdchain.Parse(raw)
	if err != nil {
		return handler.Error(err)
	}
	return run(ctx, specs)
}

// run dispatches specs. A chain handed to an interactive command is
// reported as async.
func run(ctx *execctx.ExecutionContext, specs []input.Action) handler.Result {
	if len(specs) == 0 {
		return handler.NoOp()
	}

	out, err := cmdchain.NewRunner(ctx.Commands).WithLogger(ctx.Log).Run(specs)
	if err != nil {
		return handler.Error(err).WithData(DataOutcome, out)
	}
	if out.State == cmdchain.Deferred {
		return handler.AsyncWithMessage(fmt.Sprintf("waiting on %s", out.DeferredTo)).
			WithData(DataOutcome, out)
	}
	return handler.Success().WithData(DataOutcome, out)
}
