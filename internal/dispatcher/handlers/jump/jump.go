package jump

import (
	"errors"
	"fmt"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/cursorkit/internal/dispatcher/chain"
	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
	"github.com/dshills/cursorkit/internal/dispatcher/handler"
	"github.com/dshills/cursorkit/internal/engine/buffer"
	"github.com/dshills/cursorkit/internal/engine/cursor"
	"github.com/dshills/cursorkit/internal/engine/lineinfo"
	"github.com/dshills/cursorkit/internal/input"
)

// Action names for jump commands.
const (
	ActionAceJumpWord = "ace_jump_word"
	ActionAceJumpLine = "ace_jump_line"
	ActionResolveJump = "resolve_jump"
)

// Argument and result data keys.
const (
	ArgLabel   = "label"
	DataLabels = "labels"
	DataChain  = "chain"
)

// Alphabet orders the characters used for labels, home row first.
const Alphabet = "asdfghjklqwertyuiopzxcvbnm"

// MaxTargets caps how many targets one jump labels.
const MaxTargets = len(Alphabet) * len(Alphabet)

// ErrUnknownLabel indicates resolve_jump named a label that is not pending.
var ErrUnknownLabel = errors.New("jump: unknown label")

// Target is one labelled jump destination.
type Target struct {
	Label  string
	Offset buffer.ByteOffset
}

type pendingJump struct {
	command      string
	targets      []Target
	continuation []input.Action
}

// Handler implements the jump namespace. It remembers at most one
// pending jump; starting a new jump replaces it.
type Handler struct {
	*handler.BaseNamespaceHandler

	mu      sync.Mutex
	pending *pendingJump
}

// NewHandler creates a jump handler.
func NewHandler() *Handler {
	h := &Handler{BaseNamespaceHandler: handler.NewBaseNamespaceHandler("jump")}
	h.Register(ActionAceJumpWord, h.aceJumpWord)
	h.Register(ActionAceJumpLine, h.aceJumpLine)
	h.Register(ActionResolveJump, h.resolveJump)
	return h
}

// HandleAction processes a jump action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	return h.BaseNamespaceHandler.HandleAction(action, ctx)
}

// Pending returns the labelled targets of the pending jump and how many
// chained commands wait on it. ok is false when no jump is pending.
func (h *Handler) Pending() (targets []Target, waiting int, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending == nil {
		return nil, 0, false
	}
	out := make([]Target, len(h.pending.targets))
	copy(out, h.pending.targets)
	return out, len(h.pending.continuation), true
}

// Cancel drops the pending jump and its continuation.
func (h *Handler) Cancel() {
	h.mu.Lock()
	h.pending = nil
	h.mu.Unlock()
}

func (h *Handler) aceJumpWord(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	region := ctx.Engine.VisibleRegion()
	text := ctx.Engine.TextRange(region.Start, region.End)

	var offsets []buffer.ByteOffset
	for _, i := range wordStarts(text) {
		offsets = append(offsets, region.Start+buffer.ByteOffset(i))
	}
	return h.start(action, ctx, offsets)
}

func (h *Handler) aceJumpLine(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	var offsets []buffer.ByteOffset
	for _, line := range ctx.Engine.Lines(ctx.Engine.VisibleRegion()) {
		text := ctx.Engine.TextRange(line.Start, line.End)
		if lineinfo.IsBlank(text) {
			continue
		}
		offsets = append(offsets, line.Start+buffer.ByteOffset(lineinfo.SoftBegin(text)))
	}
	return h.start(action, ctx, offsets)
}

// start labels offsets and parks the continuation until resolve_jump.
// With nothing to jump to the continuation runs straight away.
func (h *Handler) start(action input.Action, ctx *execctx.ExecutionContext, offsets []buffer.ByteOffset) handler.Result {
	cont, err := chain.Continuation(action.Args)
	if err != nil {
		return handler.Error(err)
	}

	if len(offsets) == 0 {
		h.Cancel()
		if len(cont) == 0 {
			return handler.NoOpWithMessage("no jump targets")
		}
		return resume(ctx, cont)
	}

	if len(offsets) > MaxTargets {
		ctx.Log.Warn("%s: %d targets, labelling the first %d", action.Name, len(offsets), MaxTargets)
		offsets = offsets[:MaxTargets]
	}

	targets := make([]Target, len(offsets))
	labels := make([]string, len(offsets))
	for i, off := range offsets {
		labels[i] = Label(i, len(offsets))
		targets[i] = Target{Label: labels[i], Offset: off}
	}

	h.mu.Lock()
	h.pending = &pendingJump{command: action.Name, targets: targets, continuation: cont}
	h.mu.Unlock()

	ctx.Log.Debug("%s: %d targets, %d chained commands waiting", action.Name, len(targets), len(cont))
	return handler.AsyncWithMessage(fmt.Sprintf("%d jump targets", len(targets))).
		WithData(DataLabels, labels)
}

// resolveJump moves to the labelled target and resumes the continuation.
func (h *Handler) resolveJump(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	v, _ := action.Args.Get(ArgLabel)
	label, ok := v.(string)
	if !ok || label == "" {
		return handler.Error(fmt.Errorf("%s: %q must be a non-empty string: %w",
			ActionResolveJump, ArgLabel, handler.ErrInvalidArgument))
	}

	h.mu.Lock()
	p := h.pending
	h.mu.Unlock()
	if p == nil {
		return handler.NoOpWithMessage("no pending jump")
	}

	var target *Target
	for i := range p.targets {
		if p.targets[i].Label == label {
			target = &p.targets[i]
			break
		}
	}
	if target == nil {
		return handler.Error(fmt.Errorf("%w: %q", ErrUnknownLabel, label))
	}

	if err := ctx.Engine.SetSelections([]cursor.Selection{cursor.NewCursorSelection(target.Offset)}); err != nil {
		return handler.Error(err)
	}

	// Cleared before resuming so a continuation may start another jump.
	h.mu.Lock()
	if h.pending == p {
		h.pending = nil
	}
	h.mu.Unlock()

	if len(p.continuation) == 0 {
		return handler.Success()
	}
	return resume(ctx, p.continuation)
}

// resume runs a continuation through the dispatcher.
func resume(ctx *execctx.ExecutionContext, cont []input.Action) handler.Result {
	if err := ctx.ValidateForChain(); err != nil {
		return handler.Error(err)
	}
	out, err := chain.NewRunner(ctx.Commands).WithLogger(ctx.Log).Run(cont)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithData(DataChain, out)
}

// Label returns the label of target i out of n. Up to len(Alphabet)
// targets get one character each, more get two.
func Label(i, n int) string {
	k := len(Alphabet)
	if n <= k {
		return Alphabet[i : i+1]
	}
	return string([]byte{Alphabet[(i/k)%k], Alphabet[i%k]})
}

// wordStarts returns the byte index of every word start in text.
// A word is a run of letters, digits and underscores.
func wordStarts(text string) []int {
	var starts []int
	inWord := false
	for i, r := range text {
		w := r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
		if w && !inWord {
			starts = append(starts, i)
		}
		inWord = w
	}
	return starts
}
