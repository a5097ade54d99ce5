// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the cmdline command-line surface.
//
// Parse turns os.Args into a Command and Args; each subcommand has a
// handler that returns an error and never exits. Exit maps errors to exit
// codes.
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	app, err := cli.NewApp(args)
//	switch cmd {
//	case cli.CmdParse:
//	    err = cli.HandleParse(ctx, app, args)
//	// ... other commands
//	}
//	cli.Exit(cmd.String(), err, args.JSON)
//
// # Commands
//
//   - repl: interactive prompt with history and tab completion (default)
//   - parse: print ranked interpretations of one line, or run it with --run
//   - check: validate a command file
//   - live: re-parse on every keystroke in a full-screen view
//   - help: usage, or help for one command
//   - version: build information
//
// The App loads the command file named by --grammar or the config, and
// reloads it when it changes if grammar.watch is set.
package cli
