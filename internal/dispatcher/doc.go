// Package dispatcher routes actions to command handlers by name.
//
// Commands are looked up in two places:
//
//  1. Router: namespace handlers (cursor, editor, jump, chain, script)
//     each claim a set of action names. The router indexes those names
//     when the handler is registered, so named chains and script
//     commands must be defined before then.
//
//  2. Registry: single handlers registered under an exact name.
//
// # Handler Execution
//
// When an action is dispatched:
//
//  1. Pre-dispatch hooks are called (can modify or cancel the action)
//  2. The router, then the registry, supplies the handler
//  3. An ExecutionContext is built around the engine, the dispatcher
//     itself (so handlers can dispatch further commands) and the logger
//  4. The handler is executed (with optional panic recovery)
//  5. Post-dispatch hooks are called
//  6. Metrics are recorded (if enabled)
//
// Handlers may dispatch other commands re-entrantly through
// ctx.Commands. Nesting is bounded by Config.MaxDepth so that a chain
// that names itself fails instead of overflowing the stack.
//
// # Example
//
//	d := dispatcher.NewWithDefaults()
//	d.SetEngine(eng)
//	d.RegisterNamespace(cursorhandler.NewHandler(store))
//
//	result := d.Dispatch(input.NewAction("go_to_soft_begin"))
package dispatcher
