// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package grammar holds the command grammar registry consumed by the parser.
//
// A grammar is made of three kinds of records:
//
//   - Type: describes whether a matched argument expects a trailing value
//     token, and any flat or positional score bonus it contributes.
//   - Bundle: a named, reusable list of argument specifications that
//     several commands can splice into their own argument lists.
//   - Command: an invocation phrase ("show interfaces") plus arguments.
//
// Registering a command expands its phrase into leading synthetic arguments
// of the built-in "keyword" type, appends the explicit arguments, then
// appends a private copy of every referenced bundle's arguments.
//
// # Usage
//
//	reg := grammar.NewRegistry()
//	_ = reg.AddType(grammar.Type{Name: "text", NeedsData: true})
//	_, _ = reg.AddCommand(grammar.CommandSpec{
//	    Command:   "show log",
//	    Arguments: []grammar.ArgumentSpec{{Name: "since", Type: "text"}},
//	})
//
// Grammars are usually loaded from a command file:
//
//	err := grammar.LoadFile(reg, "commands.toml")
package grammar
