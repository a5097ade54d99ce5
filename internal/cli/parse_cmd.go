// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// parse_cmd.go - One-shot parsing: print the ranked interpretations of a
// line, or run the winner with --run.

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeranaias/cmdline/internal/commands"
	"github.com/jeranaias/cmdline/internal/parser"
	"github.com/jeranaias/cmdline/internal/ui/components"
)

// HandleParse handles "cmdline parse <input...>".
func HandleParse(ctx context.Context, app *App, args Args) error {
	if err := app.Load(); err != nil {
		return err
	}
	if args.Run {
		return runLine(ctx, app, args)
	}

	result := app.Parser().Parse(args.Line())
	if args.JSON {
		if err := NewJSONResponse("parse", NewParseReport(result, app.Config.UI.MaxResults)).Write(app.Out); err != nil {
			return err
		}
		if result.Empty() {
			return alreadyShown(commands.ErrNoMatch)
		}
		return nil
	}

	if result.Empty() {
		return fmt.Errorf("%q: %w", args.Line(), commands.ErrNoMatch)
	}
	fmt.Fprintln(app.Out, renderResult(app, result))
	return nil
}

// runLine resolves and executes one line. Ambiguous input lists the tied
// interpretations before failing.
func runLine(ctx context.Context, app *App, args Args) error {
	err := app.Dispatcher().Run(ctx, args.Line())
	if err == nil {
		if args.JSON {
			return NewJSONResponse("parse", map[string]string{"input": args.Line()}).Write(app.Out)
		}
		return nil
	}

	var ambiguous *commands.AmbiguityError
	if !errors.As(err, &ambiguous) {
		return err
	}

	result := app.Parser().Parse(args.Line())
	if args.JSON {
		_ = NewJSONErrorResponse("parse", err).WithData(NewParseReport(result, app.Config.UI.MaxResults)).Write(app.Out)
		return alreadyShown(err)
	}
	fmt.Fprintln(app.Err, renderResult(app, result))
	return err
}

func renderResult(app *App, result *parser.Result) string {
	list := components.NewPossibilityList(app.Theme, app.Config.UI.MaxResults)
	list.SetWidth(GetTerminalWidth())
	list.SetResult(result)
	return list.View()
}
