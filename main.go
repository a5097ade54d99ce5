// cmdline - interpret abbreviated command lines against a command grammar.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeranaias/cmdline/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		cli.Exit(cmd.String(), err, args.JSON)
	}

	if cmd == cli.CmdVersion {
		cli.Exit(cmd.String(), cli.HandleVersion(os.Stdout, args), args.JSON)
		return
	}

	app, err := cli.NewApp(args)
	if err != nil {
		// Usage stays available with a broken config
		if cmd == cli.CmdHelp && len(args.Input) == 0 {
			cli.PrintUsage(os.Stdout)
		}
		cli.Exit(cmd.String(), err, args.JSON)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case cli.CmdParse:
		err = cli.HandleParse(ctx, app, args)
	case cli.CmdCheck:
		err = cli.HandleCheck(app, args)
	case cli.CmdLive:
		err = cli.HandleLive(ctx, app)
	case cli.CmdHelp:
		err = cli.HandleHelp(app, args)
	default:
		err = cli.HandleRepl(ctx, app)
	}

	stop()
	cli.Exit(cmd.String(), err, args.JSON)
}
