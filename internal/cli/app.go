// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Runtime shared by the subcommands: configuration, logging, the
// loaded grammar and the output streams.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/cmdline/internal/commands"
	"github.com/jeranaias/cmdline/internal/config"
	"github.com/jeranaias/cmdline/internal/grammar"
	"github.com/jeranaias/cmdline/internal/parser"
	"github.com/jeranaias/cmdline/internal/ui/styles"
)

// ErrNoGrammar is returned when no command file is configured.
var ErrNoGrammar = errors.New("no command file configured; use --grammar or set grammar.path")

// App is the state shared by every subcommand.
type App struct {
	Config *config.Config
	Logger *log.Logger

	// Out and Theme are for results; Err and ErrTheme for diagnostics
	Out      io.Writer
	Err      io.Writer
	Theme    *styles.Theme
	ErrTheme *styles.Theme

	parser atomic.Pointer[parser.Parser]
}

// AppOption configures an App.
type AppOption func(*App)

// WithOutput redirects results and diagnostics.
func WithOutput(out, errOut io.Writer) AppOption {
	return func(a *App) {
		a.Out = out
		a.Err = errOut
	}
}

// WithConfig uses cfg instead of loading configuration from disk.
func WithConfig(cfg *config.Config) AppOption {
	return func(a *App) {
		a.Config = cfg
	}
}

// NewApp resolves configuration and applies flag overrides. The grammar is
// not loaded until Load is called.
func NewApp(args Args, opts ...AppOption) (*App, error) {
	a := &App{Out: os.Stdout, Err: os.Stderr}
	for _, opt := range opts {
		opt(a)
	}

	if a.Config == nil {
		var cfg *config.Config
		var err error
		if args.ConfigPath != "" {
			cfg, err = config.LoadFromPath(args.ConfigPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		a.Config = cfg
	}

	cfg := a.Config
	if args.GrammarPath != "" {
		cfg.Grammar.Path = args.GrammarPath
	}
	if args.MaxResults > 0 {
		cfg.UI.MaxResults = args.MaxResults
	}
	if args.NoColor {
		cfg.UI.Color = "never"
	}
	if args.Verbose {
		cfg.Log.Level = "debug"
	}

	a.Logger = log.NewWithOptions(a.Err, log.Options{
		Prefix: "cmdline",
		Level:  cfg.LogLevel(),
	})
	a.Theme = NewTheme(a.Out, cfg.UI.Color)
	a.ErrTheme = NewTheme(a.Err, cfg.UI.Color)
	return a, nil
}

// GrammarPath returns the configured command file path.
func (a *App) GrammarPath() string {
	return a.Config.GrammarPath()
}

// Load builds the parser from the configured command file.
func (a *App) Load() error {
	p, err := a.build(a.GrammarPath())
	if err != nil {
		return err
	}
	a.parser.Store(p)
	a.Logger.Debug("grammar loaded", "path", a.GrammarPath(), "commands", p.Registry().Len())
	return nil
}

// Reload rebuilds the parser from the command file. On failure the
// previous parser stays in place.
func (a *App) Reload() (int, error) {
	p, err := a.build(a.GrammarPath())
	if err != nil {
		a.Logger.Error("reload failed, keeping previous commands", "path", a.GrammarPath(), "err", err)
		return 0, err
	}
	a.parser.Store(p)
	a.Logger.Info("grammar reloaded", "path", a.GrammarPath(), "commands", p.Registry().Len())
	return p.Registry().Len(), nil
}

// Parser returns the current parser. Load must have succeeded.
func (a *App) Parser() *parser.Parser {
	return a.parser.Load()
}

// Dispatcher returns a dispatcher over the current parser.
func (a *App) Dispatcher() *commands.Dispatcher {
	return commands.NewDispatcher(a.Parser(), commands.WithDispatchLogger(a.Logger.WithPrefix("dispatch")))
}

// Completer returns a completer over the current parser.
func (a *App) Completer() *commands.Completer {
	c := commands.NewCompleter(a.Parser())
	c.Max = a.Config.UI.MaxResults
	return c
}

func (a *App) build(path string) (*parser.Parser, error) {
	if path == "" {
		return nil, ErrNoGrammar
	}

	reg := grammar.NewRegistry(grammar.WithLogger(a.Logger.WithPrefix("grammar")))
	err := grammar.LoadFile(reg, path, grammar.WithDefaultHandler(grammar.Handler{Execute: a.echo}))
	if err != nil {
		return nil, &GrammarError{Path: path, Err: err}
	}

	return parser.New(reg,
		parser.WithWeights(a.Config.Weights()),
		parser.WithLogger(a.Logger.WithPrefix("parser")),
	), nil
}

// echo is the execute callback for commands loaded from a file: the
// command file carries no behavior, so running a command prints what it
// was called with.
func (a *App) echo(ctx context.Context, inv grammar.Invocation) error {
	fmt.Fprintln(a.Out, FormatInvocation(a.Theme, inv))
	return nil
}

// FormatInvocation renders a command and the arguments it received, such
// as: show log since="today" terse.
func FormatInvocation(theme *styles.Theme, inv grammar.Invocation) string {
	parts := []string{theme.Command.Render(inv.Command.Name)}
	for _, arg := range inv.Command.Arguments {
		if arg.Synthetic || !inv.Has(arg.Name) {
			continue
		}
		if value, ok := inv.Value(arg.Name); ok {
			parts = append(parts, theme.Keyword.Render(arg.Name)+"="+theme.Data.Render(strconv.Quote(value)))
		} else {
			parts = append(parts, theme.Keyword.Render(arg.Name))
		}
	}
	return strings.Join(parts, " ")
}
