// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package grammar

import (
	"errors"
	"fmt"
)

// Registration errors. Malformed records fail at registration time rather
// than producing wrong rankings later.
var (
	ErrEmptyName         = errors.New("name is empty")
	ErrInvalidName       = errors.New("name contains whitespace")
	ErrEmptyPhrase       = errors.New("command phrase is empty")
	ErrMissingType       = errors.New("argument has no type")
	ErrDuplicateArgument = errors.New("duplicate argument name")
	ErrDuplicateCommand  = errors.New("command already registered")
)

// RecordError ties a registration error to the record that caused it.
type RecordError struct {
	Kind string // "type", "bundle" or "command"
	Name string
	Arg  string
	Err  error
}

func (e *RecordError) Error() string {
	msg := fmt.Sprintf("%s %q", e.Kind, e.Name)
	if e.Arg != "" {
		msg += fmt.Sprintf(" argument %q", e.Arg)
	}
	return msg + ": " + e.Err.Error()
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
