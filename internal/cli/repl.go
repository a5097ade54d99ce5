// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Interactive prompt with line editing, history and tab
// completion.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/cmdline/internal/commands"
	"github.com/jeranaias/cmdline/internal/config"
)

const replHelp = `Type a command line to run it. Words may be abbreviated.
  <line>?    show how the line is interpreted without running it
  :reload    reload the command file
  :help      show this help
  :quit      leave (also Ctrl+D)`

// =============================================================================
// LINE EDITOR
// =============================================================================

// LineEditor wraps liner with a history file in the config directory.
type LineEditor struct {
	line        *liner.State
	historyFile string
}

// NewLineEditor creates an editor that completes lines with complete.
func NewLineEditor(complete func(line string) []string) *LineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	e := &LineEditor{line: line, historyFile: filepath.Join(dir, "history")}
	e.loadHistory()
	return e
}

func (e *LineEditor) loadHistory() {
	if f, err := os.Open(e.historyFile); err == nil {
		e.line.ReadHistory(f)
		f.Close()
	}
}

// ReadLine prompts for one line and records it in history.
func (e *LineEditor) ReadLine(prompt string) (string, error) {
	input, err := e.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		e.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and restores the terminal.
func (e *LineEditor) Close() {
	if err := os.MkdirAll(filepath.Dir(e.historyFile), 0700); err == nil {
		if f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			e.line.WriteHistory(f)
			f.Close()
		}
	}
	e.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// HandleRepl handles "cmdline" and "cmdline repl".
func HandleRepl(ctx context.Context, app *App) error {
	if err := app.Load(); err != nil {
		return err
	}

	gw, err := app.StartWatcher(nil)
	if err != nil {
		app.Logger.Warn("hot reload disabled", "err", err)
	}
	if gw != nil {
		defer gw.Close()
	}

	editor := NewLineEditor(func(line string) []string {
		return commands.Values(app.Completer().Complete(ctx, line))
	})
	defer editor.Close()

	fmt.Fprintln(app.Out, app.Theme.Muted.Render(fmt.Sprintf("%d commands loaded. :help for help.", app.Parser().Registry().Len())))
	for {
		input, err := editor.ReadLine(app.Config.UI.Prompt)
		if err != nil {
			// Ctrl+C, Ctrl+D and read errors all end the session
			fmt.Fprintln(app.Out)
			return nil
		}
		if app.HandleLine(ctx, input) {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// HandleLine processes one REPL line and reports whether the session
// should end.
func (a *App) HandleLine(ctx context.Context, input string) bool {
	input = strings.TrimSpace(input)
	switch input {
	case "":
		return false
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		fmt.Fprintln(a.Out, replHelp)
		return false
	case ":reload":
		if n, err := a.Reload(); err != nil {
			fmt.Fprintln(a.Err, a.ErrTheme.RenderError(err.Error()))
		} else {
			fmt.Fprintln(a.Out, a.Theme.RenderSuccess(fmt.Sprintf("reloaded %d commands", n)))
		}
		return false
	}

	if strings.HasSuffix(input, "?") {
		result := a.Parser().Parse(strings.TrimSuffix(input, "?"))
		fmt.Fprintln(a.Out, renderResult(a, result))
		return false
	}

	err := a.Dispatcher().Run(ctx, input)
	if err == nil {
		return false
	}

	fmt.Fprintln(a.Err, a.ErrTheme.RenderError(err.Error()))
	var ambiguous *commands.AmbiguityError
	var invalid *commands.ValidationError
	switch {
	case errors.As(err, &ambiguous):
		fmt.Fprintln(a.Out, renderResult(a, a.Parser().Parse(input)))
	case errors.As(err, &invalid) && invalid.Usage != "":
		fmt.Fprintln(a.Out, a.Theme.Usage.Render("usage: "+invalid.Usage))
	}
	return false
}
