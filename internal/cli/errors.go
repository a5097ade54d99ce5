// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Exit codes and error display for all subcommands.
//
// Handlers always return errors and never exit; main maps the error to an
// exit code with GetExitCode.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/cmdline/internal/commands"
	"github.com/jeranaias/cmdline/internal/config"
	"github.com/jeranaias/cmdline/internal/grammar"
	"github.com/jeranaias/cmdline/internal/ui/styles"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error, including a failed
	// execute callback
	ExitGeneralError = 1
	// ExitUsageError indicates invalid subcommand usage, or input that
	// names a command but is incomplete
	ExitUsageError = 2
	// ExitConfigError indicates a configuration file or settings error
	ExitConfigError = 3
	// ExitAmbiguousError indicates input matching several commands equally
	ExitAmbiguousError = 4
	// ExitGrammarError indicates an unreadable or malformed command file
	ExitGrammarError = 5
	// ExitNotFoundError indicates input matching no command
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError reports a malformed cmdline invocation.
type UsageError struct {
	Message string
	Usage   string
}

func (e *UsageError) Error() string {
	if e.Usage != "" {
		return e.Message + "\nUsage: " + e.Usage
	}
	return e.Message
}

// GrammarError reports a command file that could not be loaded.
type GrammarError struct {
	Path string
	Err  error
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("command file %s: %v", e.Path, e.Err)
}

func (e *GrammarError) Unwrap() error {
	return e.Err
}

// shownError wraps an error whose output has already been written, so
// Exit only sets the exit code.
type shownError struct {
	err error
}

func (e *shownError) Error() string { return e.err.Error() }

func (e *shownError) Unwrap() error { return e.err }

// alreadyShown marks err as displayed.
func alreadyShown(err error) error {
	if err == nil {
		return nil
	}
	return &shownError{err: err}
}

// GetExitCode determines the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	var validationErr *commands.ValidationError
	var ambiguityErr *commands.AmbiguityError
	var grammarErr *GrammarError
	var recordErr *grammar.RecordError
	var configErrs config.ValidateErrors

	switch {
	case errors.As(err, &usageErr):
		return ExitUsageError
	case errors.As(err, &validationErr):
		return ExitUsageError
	case errors.As(err, &ambiguityErr):
		return ExitAmbiguousError
	case errors.Is(err, commands.ErrNoMatch):
		return ExitNotFoundError
	case errors.As(err, &grammarErr), errors.As(err, &recordErr):
		return ExitGrammarError
	case errors.As(err, &configErrs):
		return ExitConfigError
	}
	return ExitGeneralError
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError writes err to w in a consistent format. In JSON mode it
// writes a JSONResponse instead.
func DisplayError(w io.Writer, theme *styles.Theme, command string, err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		_ = NewJSONErrorResponse(command, err).Write(w)
		return
	}
	fmt.Fprintln(w, theme.RenderError(err.Error()))
}

// Exit displays err on stderr and exits with its exit code. It returns
// normally when err is nil.
func Exit(command string, err error, jsonMode bool) {
	if err == nil {
		return
	}
	var shown *shownError
	if errors.As(err, &shown) {
		os.Exit(GetExitCode(err))
	}
	out := io.Writer(os.Stderr)
	if jsonMode {
		out = os.Stdout
	}
	DisplayError(out, NewTheme(os.Stderr, "auto"), command, err, jsonMode)
	os.Exit(GetExitCode(err))
}
