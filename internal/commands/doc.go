// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands turns ranked parser output into actions.
//
// The parser only enumerates and ranks interpretations. This package owns
// the policy on top of it: picking a winner, checking that mandatory
// arguments and argument values are present, running the command's execute
// callback, and deriving completion suggestions for interactive input.
//
// # Key Types
//
//   - Dispatcher: resolves an input line to one validated interpretation
//     and runs it
//   - Completer: suggests the next word for a partial input line
//   - ValidationError: a missing mandatory argument or argument value
//
// # Usage
//
// Run a command line:
//
//	d := commands.NewDispatcher(parser.New(registry))
//	if err := d.Run(ctx, "show interfaces ge-0/0/0"); err != nil {
//	    return err
//	}
//
// Get completions:
//
//	completions := commands.NewCompleter(p).Complete(ctx, "show int")
//	// Returns "show interfaces" first
package commands
