// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"

	"github.com/jeranaias/cmdline/internal/parser"
)

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks that an interpretation is complete: every mandatory
// argument was matched and every matched argument whose type needs a value
// has a non-empty one. All problems are returned joined.
func Validate(p *parser.Possibility) error {
	if p == nil {
		return ErrNoMatch
	}

	var errs []error
	for _, arg := range p.Command.Arguments {
		seen := p.Seen[arg.Name]
		if arg.Mandatory && !seen {
			errs = append(errs, &ValidationError{
				Command: p.Command.Name,
				Arg:     arg.Name,
				Message: "required argument missing",
				Usage:   p.Command.Usage(),
			})
			continue
		}
		if seen && arg.NeedsData() && p.Data[arg.Name] == "" {
			errs = append(errs, &ValidationError{
				Command:  p.Command.Name,
				Arg:      arg.Name,
				Message:  "value required",
				Expected: arg.TypeName,
			})
		}
	}
	return errors.Join(errs...)
}

// ValidationError represents an incomplete interpretation.
type ValidationError struct {
	Command  string
	Arg      string
	Message  string
	Expected string
	Usage    string
}

func (e *ValidationError) Error() string {
	msg := e.Command + ": " + e.Message
	if e.Arg != "" {
		msg += " for argument '" + e.Arg + "'"
	}
	if e.Expected != "" {
		msg += " - expected: " + e.Expected
	}
	if e.Usage != "" {
		msg += " (usage: " + e.Usage + ")"
	}
	return msg
}
