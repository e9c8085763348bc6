// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/dshills/cursorkit/internal/engine/buffer"
	"github.com/dshills/cursorkit/internal/engine/cursor"
	"github.com/dshills/cursorkit/internal/engine/history"
	"github.com/dshills/cursorkit/internal/input"
)

// EngineInterface is everything a command may ask of the host editor.
type EngineInterface interface {
	// Selection state
	Selections() []cursor.Selection
	SetSelections(sels []cursor.Selection) error

	// Read operations
	Lines(r buffer.Range) []buffer.Range
	LineAt(offset buffer.ByteOffset) buffer.Range
	TextRange(start, end buffer.ByteOffset) string
	Len() buffer.ByteOffset

	// Edits
	Begin(name string) *history.Transaction
	Commit(tx *history.Transaction) error

	// View info
	VisibleRegion() buffer.Range
}

// CommandRunner dispatches actions by name.
// A nil error means the command ran, possibly as a no-op.
type CommandRunner interface {
	Execute(action input.Action) error
}

// Logger is the subset of the application logger handlers use.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// NopLogger discards everything.
var NopLogger Logger = nopLogger{}

// ExecutionContext provides context for action execution.
type ExecutionContext struct {
	// Engine provides access to the text buffer and selections.
	Engine EngineInterface

	// Commands lets a handler dispatch further commands.
	Commands CommandRunner

	// Log receives handler diagnostics. Never nil after New.
	Log Logger

	// Data holds handler-specific context data.
	Data map[string]any
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Log:  NopLogger,
		Data: make(map[string]any),
	}
}

// WithEngine returns the context with the engine set.
func (ctx *ExecutionContext) WithEngine(engine EngineInterface) *ExecutionContext {
	ctx.Engine = engine
	return ctx
}

// WithCommands returns the context with the command runner set.
func (ctx *ExecutionContext) WithCommands(commands CommandRunner) *ExecutionContext {
	ctx.Commands = commands
	return ctx
}

// WithLogger returns the context with the logger set.
func (ctx *ExecutionContext) WithLogger(log Logger) *ExecutionContext {
	if log != nil {
		ctx.Log = log
	}
	return ctx
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value any) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]any)
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (any, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the context has an engine.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}

// ValidateForChain checks that the context can dispatch further commands.
func (ctx *ExecutionContext) ValidateForChain() error {
	if ctx.Commands == nil {
		return ErrMissingCommands
	}
	return nil
}
