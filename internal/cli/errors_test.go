// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/cmdline/internal/commands"
	"github.com/jeranaias/cmdline/internal/config"
	"github.com/jeranaias/cmdline/internal/grammar"
	"github.com/jeranaias/cmdline/internal/ui/styles"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitGeneralError},
		{"usage", &UsageError{Message: "bad"}, ExitUsageError},
		{"validation", &commands.ValidationError{Command: "tell", Message: "required argument missing"}, ExitUsageError},
		{"joined validation", errors.Join(&commands.ValidationError{Command: "tell"}, &commands.ValidationError{Command: "tell"}), ExitUsageError},
		{"ambiguous", &commands.AmbiguityError{Input: "show", Candidates: []string{"show log", "show version"}}, ExitAmbiguousError},
		{"no match", commands.ErrNoMatch, ExitNotFoundError},
		{"wrapped no match", fmt.Errorf("%q: %w", "x", commands.ErrNoMatch), ExitNotFoundError},
		{"already shown", alreadyShown(commands.ErrNoMatch), ExitNotFoundError},
		{"grammar", &GrammarError{Path: "g.toml", Err: errors.New("bad")}, ExitGrammarError},
		{"record", &grammar.RecordError{Kind: "command", Name: "x", Err: grammar.ErrEmptyPhrase}, ExitGrammarError},
		{"config", fmt.Errorf("load: %w", config.ValidateErrors{{Field: "ui.color", Message: "bad"}}), ExitConfigError},
		{"execute failure", fmt.Errorf("show log: %w", errors.New("disk")), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestUsageError(t *testing.T) {
	assert.Equal(t, "bad", (&UsageError{Message: "bad"}).Error())
	assert.Equal(t, "bad\nUsage: cmdline help", (&UsageError{Message: "bad", Usage: "cmdline help"}).Error())
}

func TestGrammarError_Unwrap(t *testing.T) {
	inner := &grammar.RecordError{Kind: "type", Name: "", Err: grammar.ErrEmptyName}
	err := &GrammarError{Path: "g.toml", Err: inner}
	assert.ErrorIs(t, err, grammar.ErrEmptyName)
	assert.Contains(t, err.Error(), "command file g.toml")
}

func TestDisplayError(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, styles.Plain(), "parse", errors.New("boom"), false)
	assert.Equal(t, "[X] boom\n", buf.String())

	buf.Reset()
	DisplayError(&buf, styles.Plain(), "parse", errors.New("boom"), true)
	var resp JSONResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "boom", *resp.Error)
	assert.Equal(t, "parse", resp.Command)

	buf.Reset()
	DisplayError(&buf, styles.Plain(), "parse", nil, false)
	assert.Empty(t, buf.String())
}
