// Package app wires cursorkit together: configuration, logging, the
// dispatcher with every command namespace, the shared saved-location
// store and the Lua script host.
package app

import (
	"fmt"
	"io"
	"sync"

	"github.com/dshills/cursorkit/internal/config"
	"github.com/dshills/cursorkit/internal/dispatcher"
	chainhandler "github.com/dshills/cursorkit/internal/dispatcher/handlers/chain"
	"github.com/dshills/cursorkit/internal/dispatcher/handlers/cursor"
	"github.com/dshills/cursorkit/internal/dispatcher/handlers/editor"
	"github.com/dshills/cursorkit/internal/dispatcher/handlers/jump"
	"github.com/dshills/cursorkit/internal/dispatcher/handler"
	"github.com/dshills/cursorkit/internal/engine"
	"github.com/dshills/cursorkit/internal/input"
	"github.com/dshills/cursorkit/internal/locstore"
	"github.com/dshills/cursorkit/internal/script"
)

// Application owns the dispatcher and everything registered with it.
// Documents share one saved-location store; a pending jump belongs to
// the document that started it and is dropped when another document
// runs a command.
type Application struct {
	mu sync.Mutex

	config     *config.Config
	logger     *Logger
	dispatcher *dispatcher.Dispatcher
	store      *locstore.Store
	jump       *jump.Handler
	chains     *chainhandler.Handler
	scripts    *script.Host

	active *Document
	closed bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file; empty reads only the
	// environment.
	ConfigPath string

	// LogLevel overrides the configured level when set.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// Scripts are loaded after the configured ones.
	Scripts []string
}

// New loads configuration and builds the application.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	return NewWithConfig(cfg, opts)
}

// NewWithConfig builds the application from already loaded settings.
func NewWithConfig(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}

	app := &Application{
		config:     cfg,
		logger:     NewLogger(opts.LogOutput, ParseLogLevel(level)),
		dispatcher: dispatcher.New(dispatcher.DefaultConfig().WithMetrics()),
		store:      locstore.New(),
		jump:       jump.NewHandler(),
		chains:     chainhandler.NewHandler(),
	}
	app.dispatcher.SetLogger(app.logger.Component("dispatcher"))
	hook := dispatcher.NewLoggingHook()
	app.dispatcher.RegisterPreHook(hook)
	app.dispatcher.RegisterPostHook(hook)

	for _, name := range cfg.ChainNames() {
		if err := app.chains.Define(name, cfg.Chains[name]); err != nil {
			return nil, &InitError{Component: "chains", Err: err}
		}
	}

	app.scripts = script.NewHost(app.chains).WithLogger(app.logger.Component("script"))
	scripts := append(append([]string(nil), cfg.Scripts...), opts.Scripts...)
	for _, path := range scripts {
		if err := app.scripts.LoadFile(path); err != nil {
			app.scripts.Close()
			return nil, &InitError{Component: "scripts", Err: err}
		}
	}

	app.dispatcher.RegisterNamespace(cursor.NewHandler(app.store))
	app.dispatcher.RegisterNamespace(editor.NewHandler())
	app.dispatcher.RegisterNamespace(app.jump)
	app.dispatcher.RegisterNamespace(app.chains)
	app.dispatcher.RegisterNamespace(app.scripts.Commands())

	app.logger.Debug("ready with %d commands, %d chains, %d scripts",
		len(app.dispatcher.Commands()), len(app.chains.Named()), len(scripts))
	return app, nil
}

// Config returns the resolved settings.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Dispatcher returns the command dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Store returns the saved-location store shared by every document.
func (app *Application) Store() *locstore.Store {
	return app.store
}

// Commands returns every registered command name, sorted.
func (app *Application) Commands() []string {
	return app.dispatcher.Commands()
}

// ScriptCommands returns the names of commands scripts defined.
func (app *Application) ScriptCommands() []string {
	return app.scripts.CommandNames()
}

// NewDocument creates a document over content, applying the
// configured viewport.
func (app *Application) NewDocument(path, content string, opts ...engine.Option) *Document {
	return NewDocument(path, content, app.engineOptions(opts)...)
}

// Open reads a file into a document, applying the configured viewport.
func (app *Application) Open(path string, opts ...engine.Option) (*Document, error) {
	doc, err := OpenDocument(path, app.engineOptions(opts)...)
	if err != nil {
		return nil, err
	}
	app.logger.Debug("opened %s (%d bytes)", path, doc.Engine.Len())
	return doc, nil
}

func (app *Application) engineOptions(opts []engine.Option) []engine.Option {
	var out []engine.Option
	if vp := app.config.Viewport; vp != nil {
		out = append(out, engine.WithVisibleLines(vp.First, vp.Last))
	}
	return append(out, opts...)
}

// Dispatch runs one command against doc.
func (app *Application) Dispatch(doc *Document, action input.Action) handler.Result {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return handler.Error(ErrClosed)
	}
	if app.active != doc {
		if _, _, ok := app.jump.Pending(); ok {
			app.logger.Warn("dropping pending jump: switched to %s", doc.Name)
			app.jump.Cancel()
		}
		app.active = doc
		app.dispatcher.SetEngine(doc.Engine)
	}
	return app.dispatcher.Dispatch(action)
}

// RunChain runs specs against doc as one run_multiple_commands call.
func (app *Application) RunChain(doc *Document, specs []input.Action) handler.Result {
	action := input.NewAction(chainhandler.ActionRunMultipleCommands).
		WithArgs(input.Args{chainhandler.ArgCommands: specs}).
		WithSource(input.SourceCLI)
	return app.Dispatch(doc, action)
}

// PendingJump reports the labels waiting for resolve_jump and how many
// commands will resume after it.
func (app *Application) PendingJump() ([]jump.Target, int, bool) {
	return app.jump.Pending()
}

// Close releases the script host. Later dispatches fail with ErrClosed.
func (app *Application) Close() error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return nil
	}
	app.closed = true
	if err := app.scripts.Close(); err != nil {
		return fmt.Errorf("closing scripts: %w", err)
	}
	return nil
}
