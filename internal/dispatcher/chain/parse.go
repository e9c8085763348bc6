package chain

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/cursorkit/internal/input"
)

// Parse converts a raw command list into actions.
//
// Each item is a list of the form [name] or [name, args], a mapping
// {"command": name, "args": args}, or a bare name. Absent or null args become an
// empty mapping. The whole list is checked before anything is returned,
// so a chain with one bad item runs nothing.
func Parse(raw any) ([]input.Action, error) {
	switch list := raw.(type) {
	case nil:
		return []input.Action{}, nil
	case []input.Action:
		out := make([]input.Action, len(list))
		copy(out, list)
		return out, nil
	case []any:
		out := make([]input.Action, 0, len(list))
		for i, item := range list {
			a, err := parseItem(item)
			if err != nil {
				return nil, fmt.Errorf("command %d: %w", i, err)
			}
			out = append(out, a)
		}
		return out, nil
	case [][]any:
		items := make([]any, len(list))
		for i := range list {
			items[i] = list[i]
		}
		return Parse(items)
	default:
		return nil, fmt.Errorf("%w: expected a list of commands, got %T", ErrMalformedSpec, raw)
	}
}

func parseItem(item any) (input.Action, error) {
	var nameVal, argsVal any

	switch v := item.(type) {
	case []any:
		if len(v) == 0 || len(v) > 2 {
			return input.Action{}, fmt.Errorf("%w: want [name] or [name, args], got %d elements", ErrMalformedSpec, len(v))
		}
		nameVal = v[0]
		if len(v) == 2 {
			argsVal = v[1]
		}
	case map[string]any:
		nameVal = v["command"]
		argsVal = v["args"]
	case input.Args:
		nameVal = v["command"]
		argsVal = v["args"]
	case string:
		nameVal = v
	default:
		return input.Action{}, fmt.Errorf("%w: unexpected %T", ErrMalformedSpec, item)
	}

	name, ok := nameVal.(string)
	if !ok || name == "" {
		return input.Action{}, fmt.Errorf("%w: command name must be a non-empty string", ErrMalformedSpec)
	}

	args, err := parseArgs(argsVal)
	if err != nil {
		return input.Action{}, fmt.Errorf("%s: %w", name, err)
	}
	return input.Action{Name: name, Args: args, Source: input.SourceChain}, nil
}

func parseArgs(v any) (input.Args, error) {
	switch a := v.(type) {
	case nil:
		return input.Args{}, nil
	case map[string]any:
		return input.Args(a).Clone(), nil
	case input.Args:
		return a.Clone(), nil
	default:
		return nil, fmt.Errorf("%w, got %T", ErrMalformedArgs, v)
	}
}

// ParseJSON parses a JSON command list such as
//
//	[["cursors_from_comma_list"], ["ace_jump_word", {}], {"command": "go_to_soft_begin"}]
func ParseJSON(s string) ([]input.Action, error) {
	if !gjson.Valid(s) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedSpec)
	}
	res := gjson.Parse(s)
	if !res.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedSpec)
	}
	return Parse(res.Value())
}

// ParseArgsJSON parses a JSON object into action arguments.
// An empty string yields empty arguments.
func ParseArgsJSON(s string) (input.Args, error) {
	if s == "" {
		return input.Args{}, nil
	}
	if !gjson.Valid(s) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedArgs)
	}
	res := gjson.Parse(s)
	if !res.IsObject() {
		return nil, fmt.Errorf("%w, got %s", ErrMalformedArgs, res.Type)
	}
	return parseArgs(res.Value())
}
