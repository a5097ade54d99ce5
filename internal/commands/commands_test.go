// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/cmdline/internal/grammar"
	"github.com/jeranaias/cmdline/internal/parser"
)

type fixture struct {
	parser  *parser.Parser
	invoked []grammar.Invocation
	failing error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{}
	quiet := log.New(io.Discard)

	reg := grammar.NewRegistry(grammar.WithLogger(quiet))
	require.NoError(t, reg.AddType(grammar.Type{Name: "text", NeedsData: true}))
	require.NoError(t, reg.AddType(grammar.Type{Name: "flag"}))

	specs := []grammar.CommandSpec{
		{
			Command: "show interfaces",
			Help:    "Show interface status",
			Arguments: []grammar.ArgumentSpec{
				{Name: "interface", Type: "text", Help: "Interface name"},
				{Name: "statistics", Type: "flag"},
			},
		},
		{Command: "show alarms"},
		{Command: "show log", Arguments: []grammar.ArgumentSpec{{Name: "since", Type: "text"}}},
		{
			Command: "tell",
			Arguments: []grammar.ArgumentSpec{
				{Name: "user", Type: "text", Mandatory: true, Help: "Recipient"},
				{Name: "message", Type: "text", NoKeyword: true, MultipleWords: true},
			},
			Execute: func(ctx context.Context, inv grammar.Invocation) error {
				f.invoked = append(f.invoked, inv)
				return f.failing
			},
			Complete: func(ctx context.Context, argument, partial string) []string {
				if argument == "user" {
					return []string{"phil", "pat", "bob"}
				}
				return nil
			},
		},
	}
	for _, spec := range specs {
		_, err := reg.AddCommand(spec)
		require.NoError(t, err)
	}

	f.parser = parser.New(reg, parser.WithLogger(quiet))
	return f
}

func (f *fixture) dispatcher() *Dispatcher {
	return NewDispatcher(f.parser, WithDispatchLogger(log.New(io.Discard)))
}

// =============================================================================
// DISPATCHER TESTS
// =============================================================================

func TestDispatcher_Run(t *testing.T) {
	f := newFixture(t)
	err := f.dispatcher().Run(context.Background(), "tell user phil hello there")
	require.NoError(t, err)

	require.Len(t, f.invoked, 1)
	inv := f.invoked[0]
	assert.Equal(t, "tell", inv.Command.Name)
	assert.Equal(t, "phil", inv.Data["user"])
	assert.Equal(t, "hello there", inv.Data["message"])
}

func TestDispatcher_RunWrapsExecuteError(t *testing.T) {
	f := newFixture(t)
	f.failing = errors.New("user offline")
	err := f.dispatcher().Run(context.Background(), "tell user phil hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, f.failing)
	assert.Contains(t, err.Error(), "tell:")
}

func TestDispatcher_RunWithoutCallback(t *testing.T) {
	f := newFixture(t)
	assert.NoError(t, f.dispatcher().Run(context.Background(), "show alarms"))
	assert.Empty(t, f.invoked)
}

func TestDispatcher_MissingMandatory(t *testing.T) {
	f := newFixture(t)
	best, result, err := f.dispatcher().Resolve("tell message hi")
	require.Error(t, err)
	require.NotNil(t, best)
	require.NotNil(t, result)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "user", verr.Arg)
	assert.Equal(t, "required argument missing", verr.Message)

	assert.Error(t, f.dispatcher().Run(context.Background(), "tell message hi"))
	assert.Empty(t, f.invoked)
}

func TestDispatcher_MissingValue(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.dispatcher().Resolve("show log since")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "since", verr.Arg)
	assert.Equal(t, "value required", verr.Message)
	assert.Equal(t, "text", verr.Expected)
}

func TestDispatcher_NoMatch(t *testing.T) {
	f := newFixture(t)
	for _, input := range []string{"", "frobnicate", "show nothing"} {
		_, result, err := f.dispatcher().Resolve(input)
		assert.ErrorIs(t, err, ErrNoMatch, input)
		assert.True(t, result.Empty(), input)
	}
}

func TestDispatcher_Ambiguous(t *testing.T) {
	reg := grammar.NewRegistry(grammar.WithLogger(log.New(io.Discard)))
	for _, phrase := range []string{"show alarms", "show alerts"} {
		_, err := reg.AddCommand(grammar.CommandSpec{Command: phrase})
		require.NoError(t, err)
	}
	d := NewDispatcher(parser.New(reg, parser.WithLogger(log.New(io.Discard))))

	_, _, err := d.Resolve("show al")
	var amb *AmbiguityError
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, []string{"show alarms", "show alerts"}, amb.Candidates)
	assert.Contains(t, err.Error(), "ambiguous")

	best, _, err := d.Resolve("show ala")
	require.NoError(t, err)
	assert.Equal(t, "show alarms", best.Command.Name)
}

func TestValidate_Nil(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), ErrNoMatch)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Command: "tell", Arg: "user", Message: "required argument missing", Usage: "tell user <text>"}
	assert.Equal(t, "tell: required argument missing for argument 'user' (usage: tell user <text>)", err.Error())
}

// =============================================================================
// COMPLETER TESTS
// =============================================================================

func TestCompleter_Complete(t *testing.T) {
	f := newFixture(t)
	c := NewCompleter(f.parser)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     string
		wantFirst string
		contains  []string
	}{
		{
			name:      "empty input offers first words",
			input:     "",
			wantFirst: "show",
			contains:  []string{"show", "tell"},
		},
		{
			name:      "partial keyword",
			input:     "show int",
			wantFirst: "show interfaces",
			contains:  []string{"show interface"},
		},
		{
			name:      "next keyword",
			input:     "show ",
			wantFirst: "show alarms",
			contains:  []string{"show interfaces", "show log", "show log since"},
		},
		{
			name:      "values for pending argument",
			input:     "tell user ",
			wantFirst: "tell user bob",
			contains:  []string{"tell user pat", "tell user phil"},
		},
		{
			name:      "partial value",
			input:     "tell user ph",
			wantFirst: "tell user phil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Complete(ctx, tt.input)
			require.NotEmpty(t, got)
			assert.Equal(t, tt.wantFirst, got[0].Value)
			values := Values(got)
			for _, want := range tt.contains {
				assert.Contains(t, values, want)
			}
			for i := 1; i < len(got); i++ {
				assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
			}
		})
	}
}

func TestCompleter_PartialValueFiltersByPrefix(t *testing.T) {
	f := newFixture(t)
	got := NewCompleter(f.parser).Complete(context.Background(), "tell user ph")
	assert.Equal(t, []string{"tell user phil"}, Values(got))
}

func TestCompleter_Max(t *testing.T) {
	f := newFixture(t)
	c := NewCompleter(f.parser)
	c.Max = 2
	assert.Len(t, c.Complete(context.Background(), "show "), 2)
}

func TestCompleter_NoSuggestions(t *testing.T) {
	f := newFixture(t)
	c := NewCompleter(f.parser)
	assert.Empty(t, c.Complete(context.Background(), "frobnicate"))
	assert.Empty(t, c.Complete(context.Background(), "show alarms"))
}

func TestCompleter_Descriptions(t *testing.T) {
	f := newFixture(t)
	got := NewCompleter(f.parser).Complete(context.Background(), "show int")
	require.NotEmpty(t, got)
	assert.Equal(t, "interfaces", got[0].Display)
	assert.Equal(t, "Show interface status", got[0].Description)
}
