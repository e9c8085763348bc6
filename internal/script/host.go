package script

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
)

// ChainDefiner stores named chains. The chain namespace handler
// implements it.
type ChainDefiner interface {
	Define(name string, raw any) error
}

// Host owns a Lua state and the commands its scripts define.
// Scripts must be loaded before Commands is registered with a
// dispatcher.
type Host struct {
	state    *State
	chains   ChainDefiner
	commands *Handler
	log      execctx.Logger
	loaded   []string
}

// NewHost creates a host whose chain() calls land in chains.
func NewHost(chains ChainDefiner, opts ...StateOption) *Host {
	state := NewState(opts...)
	h := &Host{
		state:    state,
		chains:   chains,
		commands: newHandler(state),
		log:      execctx.NopLogger,
	}
	state.Register("chain", h.luaChain)
	state.Register("command", h.luaCommand)
	return h
}

// WithLogger sets the logger used while loading scripts.
func (h *Host) WithLogger(log execctx.Logger) *Host {
	if log != nil {
		h.log = log
	}
	return h
}

// Commands returns the namespace handler holding script commands.
func (h *Host) Commands() *Handler {
	return h.commands
}

// CommandNames returns the sorted names of script-defined commands.
func (h *Host) CommandNames() []string {
	names := make([]string, 0, len(h.commands.fns))
	for name := range h.commands.fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Loaded returns the files loaded so far, in order.
func (h *Host) Loaded() []string {
	return append([]string(nil), h.loaded...)
}

// LoadFile runs a script file.
func (h *Host) LoadFile(path string) error {
	if err := h.state.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	h.loaded = append(h.loaded, path)
	h.log.Debug("loaded script %s", path)
	return nil
}

// LoadString runs a script chunk; name labels errors.
func (h *Host) LoadString(name, code string) error {
	if err := h.state.DoString(code); err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	h.loaded = append(h.loaded, name)
	return nil
}

// Close releases the Lua state.
func (h *Host) Close() error {
	return h.state.Close()
}

// luaChain implements chain(name, specs).
func (h *Host) luaChain(L *lua.LState) int {
	name := L.CheckString(1)
	specs := L.CheckTable(2)
	raw := toGo(specs)
	if m, ok := raw.(map[string]any); ok && len(m) == 0 {
		raw = []any{}
	}
	if err := h.chains.Define(name, raw); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// luaCommand implements command(name, fn).
func (h *Host) luaCommand(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if err := h.commands.define(name, fn); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}
