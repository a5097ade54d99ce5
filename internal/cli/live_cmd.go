// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// live_cmd.go - Full-screen view that re-parses on every keystroke.

package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cmdline/internal/ui/live"
)

// HandleLive handles "cmdline live". The line accepted in the view is run
// after the view closes.
func HandleLive(ctx context.Context, app *App) error {
	if err := RequiresTTY("live"); err != nil {
		return err
	}
	if err := app.Load(); err != nil {
		return err
	}

	reloads := make(chan live.ReloadMsg, 1)
	gw, err := app.StartWatcher(func(n int, err error) {
		select {
		case reloads <- live.ReloadMsg{Commands: n, Err: err}:
		default:
		}
	})
	if err != nil {
		app.Logger.Warn("hot reload disabled", "err", err)
	}

	model := live.New(ctx, app, live.Options{
		Theme:      app.Theme,
		Logger:     app.Logger.WithPrefix("live"),
		Prompt:     app.Config.UI.Prompt,
		MaxResults: app.Config.UI.MaxResults,
	})
	final, err := live.Run(ctx, model, reloads, tea.WithAltScreen())
	if gw != nil {
		gw.Close()
	}
	if err != nil {
		return err
	}

	if line := final.Chosen(); line != "" {
		return app.Dispatcher().Run(ctx, line)
	}
	return nil
}
