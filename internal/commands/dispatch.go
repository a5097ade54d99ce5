// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/cmdline/internal/parser"
)

// ErrNoMatch is returned when no interpretation of the input survives.
var ErrNoMatch = errors.New("no matching command")

// AmbiguityError is returned when the best interpretations bind different
// commands with the same score.
type AmbiguityError struct {
	Input      string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous command %q: could be %s", e.Input, strings.Join(e.Candidates, ", "))
}

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher resolves input lines to commands and runs them.
type Dispatcher struct {
	parser *parser.Parser
	logger *log.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatchLogger sets the dispatcher's logger.
func WithDispatchLogger(logger *log.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher creates a dispatcher over p.
func NewDispatcher(p *parser.Parser, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		parser: p,
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "dispatch"}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Resolve parses input and returns the validated winning interpretation
// together with the full ranked result. The result is returned even when
// an error is, so callers can show the alternatives.
func (d *Dispatcher) Resolve(input string) (*parser.Possibility, *parser.Result, error) {
	result := d.parser.Parse(input)
	best := result.Best()
	if best == nil {
		return nil, result, ErrNoMatch
	}

	if tied := tiedCommands(result); len(tied) > 1 {
		return nil, result, &AmbiguityError{Input: strings.TrimSpace(input), Candidates: tied}
	}

	if err := Validate(best); err != nil {
		return best, result, err
	}
	return best, result, nil
}

// Run resolves input and calls the winning command's execute callback.
// Commands without a callback resolve successfully without running.
func (d *Dispatcher) Run(ctx context.Context, input string) error {
	best, result, err := d.Resolve(input)
	if err != nil {
		return err
	}

	if best.Command.Execute == nil {
		d.logger.Debug("command has no execute callback", "command", best.Command.Name, "parse_id", result.ID)
		return nil
	}

	d.logger.Debug("executing", "command", best.Command.Name, "parse_id", result.ID, "score", best.Score)
	if err := best.Command.Execute(ctx, best.Invocation()); err != nil {
		return fmt.Errorf("%s: %w", best.Command.Name, err)
	}
	return nil
}

// tiedCommands returns the distinct command names sharing the top score.
func tiedCommands(result *parser.Result) []string {
	top := result.Possibilities[0].Score
	var names []string
	seen := make(map[string]bool)
	for _, p := range result.Possibilities {
		if p.Score != top {
			break
		}
		if !seen[p.Command.Name] {
			seen[p.Command.Name] = true
			names = append(names, p.Command.Name)
		}
	}
	return names
}
