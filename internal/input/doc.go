// Package input defines the actions dispatched to command handlers.
//
// An Action names a command and carries a free-form argument mapping.
// Actions arrive from the CLI, from configured or scripted command
// chains, and from commands that resume a chain they were handed.
package input
