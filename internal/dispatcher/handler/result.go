package handler

import (
	"fmt"

	"github.com/dshills/cursorkit/internal/engine/buffer"
	"github.com/dshills/cursorkit/internal/engine/history"
)

// ResultStatus classifies how a command ended.
type ResultStatus uint8

const (
	StatusOK        ResultStatus = iota // the command did its work
	StatusNoOp                          // nothing to do, not a failure
	StatusError                         // the command failed; see Result.Error
	StatusAsync                         // waiting for more input, e.g. a jump label
	StatusCancelled                     // stopped by a hook or the user
)

var statusNames = [...]string{
	StatusOK:        "ok",
	StatusNoOp:      "no-op",
	StatusError:     "error",
	StatusAsync:     "async",
	StatusCancelled: "cancelled",
}

func (s ResultStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Edit is one applied text change as reported to callers. Range is in
// the coordinates the buffer had when the change landed.
type Edit struct {
	Range   buffer.Range
	NewText string
	OldText string
}

// EditsFrom reports the operations a transaction applied.
func EditsFrom(ops history.OperationList) []Edit {
	edits := make([]Edit, 0, len(ops))
	for _, op := range ops {
		edits = append(edits, Edit{Range: op.Range, NewText: op.NewText, OldText: op.OldText})
	}
	return edits
}

// Result is what a handler returns. The With methods return modified
// copies, so results can be built in one expression.
type Result struct {
	Status  ResultStatus
	Error   error
	Message string
	Edits   []Edit

	// Data carries handler-specific output under exported Data* keys.
	Data map[string]any
}

// IsError reports StatusError.
func (r Result) IsError() bool { return r.Status == StatusError }

// Err returns the failure, or nil for every non-error status. An error
// result without an Error still yields one built from Message.
func (r Result) Err() error {
	switch {
	case r.Status != StatusError:
		return nil
	case r.Error != nil:
		return r.Error
	default:
		return fmt.Errorf("handler failed: %s", r.Message)
	}
}

// Shorthands for building a result with a given status.
func Success() Result                      { return Result{Status: StatusOK} }
func SuccessWithMessage(msg string) Result { return Result{Status: StatusOK, Message: msg} }
func NoOp() Result                         { return Result{Status: StatusNoOp} }
func NoOpWithMessage(msg string) Result    { return Result{Status: StatusNoOp, Message: msg} }
func Async() Result                        { return Result{Status: StatusAsync} }
func AsyncWithMessage(msg string) Result   { return Result{Status: StatusAsync, Message: msg} }
func Cancelled() Result                    { return Result{Status: StatusCancelled} }

func CancelledWithMessage(msg string) Result {
	return Result{Status: StatusCancelled, Message: msg}
}

// Error wraps err in an error result.
func Error(err error) Result { return Result{Status: StatusError, Error: err} }

// Errorf is Error(fmt.Errorf(format, args...)).
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

func (r Result) WithEdits(edits []Edit) Result {
	r.Edits = append(r.Edits[:len(r.Edits):len(r.Edits)], edits...)
	return r
}

// WithData sets key in a copy of the data map, leaving r untouched.
func (r Result) WithData(key string, value any) Result {
	data := make(map[string]any, len(r.Data)+1)
	for k, v := range r.Data {
		data[k] = v
	}
	data[key] = value
	r.Data = data
	return r
}

// GetData looks up key in the result data.
func (r Result) GetData(key string) (any, bool) {
	v, ok := r.Data[key]
	return v, ok
}

// GetDataInt returns key as an int, accepting the numeric types that
// JSON decoding and Lua conversion produce. Anything else is zero.
func (r Result) GetDataInt(key string) int {
	switch n := r.Data[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
