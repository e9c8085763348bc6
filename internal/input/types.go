package input

import (
	"fmt"
	"maps"
)

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceAPI indicates the action was dispatched directly by the host.
	SourceAPI ActionSource = iota
	// SourceCLI indicates the action came from the command line.
	SourceCLI
	// SourceChain indicates the action was issued by a command chain.
	SourceChain
	// SourceScript indicates the action originated from a Lua script.
	SourceScript
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceAPI:
		return "api"
	case SourceCLI:
		return "cli"
	case SourceChain:
		return "chain"
	case SourceScript:
		return "script"
	default:
		return "unknown"
	}
}

// Args holds the named arguments of an action.
// A nil Args behaves as an empty mapping.
type Args map[string]any

// Get retrieves a raw value.
func (a Args) Get(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a[key]
	return v, ok
}

// GetString retrieves a string value.
func (a Args) GetString(key string) string {
	if v, ok := a.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt retrieves an int value.
func (a Args) GetInt(key string) int {
	if v, ok := a.Get(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// GetBool retrieves a bool value.
func (a Args) GetBool(key string) bool {
	if v, ok := a.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Clone returns a shallow copy that is never nil.
func (a Args) Clone() Args {
	out := make(Args, len(a))
	maps.Copy(out, a)
	return out
}

// With returns a copy of the args with key set to value.
func (a Args) With(key string, value any) Args {
	out := a.Clone()
	out[key] = value
	return out
}

// Action represents a command to be executed by the dispatcher.
type Action struct {
	// Name is the command identifier (e.g., "go_to_soft_begin").
	Name string

	// Args contains command-specific arguments.
	Args Args

	// Source indicates where this action originated.
	Source ActionSource
}

// NewAction creates an action with an empty argument mapping.
func NewAction(name string) Action {
	return Action{Name: name, Args: Args{}}
}

// WithArgs returns a copy of the action with the given arguments.
func (a Action) WithArgs(args Args) Action {
	a.Args = args
	return a
}

// WithSource returns a copy of the action with the given source.
func (a Action) WithSource(src ActionSource) Action {
	a.Source = src
	return a
}

// String returns the action name followed by its arguments, if any.
func (a Action) String() string {
	if len(a.Args) == 0 {
		return a.Name
	}
	return fmt.Sprintf("%s %v", a.Name, map[string]any(a.Args))
}
