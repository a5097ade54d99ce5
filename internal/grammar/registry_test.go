// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package grammar

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) (*Registry, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	reg := NewRegistry(WithLogger(log.New(&buf)))
	require.NoError(t, reg.AddType(Type{Name: "text", NeedsData: true}))
	require.NoError(t, reg.AddType(Type{Name: "flag"}))
	return reg, &buf
}

func argNames(cmd *Command) []string {
	names := make([]string, len(cmd.Arguments))
	for i, a := range cmd.Arguments {
		names[i] = a.Name
	}
	return names
}

func TestNewRegistry_HasKeywordType(t *testing.T) {
	reg := NewRegistry()
	kw := reg.Type(KeywordType)
	require.NotNil(t, kw)
	assert.False(t, kw.NeedsData)
	assert.Equal(t, 0, reg.Len())
}

func TestAddCommand_ArgumentOrder(t *testing.T) {
	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.AddBundle(Bundle{
		Name:      "time-range",
		Arguments: []ArgumentSpec{{Name: "since", Type: "text"}, {Name: "until", Type: "text"}},
	}))

	cmd, err := reg.AddCommand(CommandSpec{
		Command:   "  show   log ",
		Arguments: []ArgumentSpec{{Name: "file", Type: "text", NoKeyword: true}},
		Bundles:   []string{"time-range"},
	})
	require.NoError(t, err)

	assert.Equal(t, "show log", cmd.Name)
	assert.Equal(t, []string{"show", "log"}, cmd.Words)
	assert.Equal(t, []string{"show", "log", "file", "since", "until"}, argNames(cmd))

	for i, a := range cmd.Arguments {
		assert.Equal(t, i, a.Index, a.Name)
		assert.True(t, a.Resolved(), a.Name)
	}
	assert.True(t, cmd.Arguments[0].Synthetic)
	assert.True(t, cmd.Arguments[1].IsKeyword())
	assert.False(t, cmd.Arguments[2].Synthetic)
	assert.True(t, cmd.Argument("since").NeedsData())
	assert.Same(t, cmd, reg.Command("show log"))
}

func TestAddCommand_BundleArgumentsAreCopied(t *testing.T) {
	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.AddBundle(Bundle{
		Name:      "common",
		Arguments: []ArgumentSpec{{Name: "detail", Type: "flag"}},
	}))

	a, err := reg.AddCommand(CommandSpec{Command: "show a", Bundles: []string{"common"}})
	require.NoError(t, err)
	b, err := reg.AddCommand(CommandSpec{Command: "show b x", Bundles: []string{"common"}})
	require.NoError(t, err)

	da, db := a.Argument("detail"), b.Argument("detail")
	require.NotNil(t, da)
	require.NotNil(t, db)
	assert.NotSame(t, da, db)
	assert.Equal(t, 2, da.Index)
	assert.Equal(t, 3, db.Index)

	da.Help = "mutated"
	assert.Empty(t, db.Help)
	assert.Empty(t, reg.Bundle("common").Arguments[0].Help)
}

func TestAddBundle_CopiesSpecSlice(t *testing.T) {
	reg, _ := newTestRegistry(t)
	specs := []ArgumentSpec{{Name: "detail", Type: "flag"}}
	require.NoError(t, reg.AddBundle(Bundle{Name: "b", Arguments: specs}))

	specs[0].Name = "changed"
	assert.Equal(t, "detail", reg.Bundle("b").Arguments[0].Name)
}

func TestAddCommand_UnknownReferencesWarn(t *testing.T) {
	reg, buf := newTestRegistry(t)

	cmd, err := reg.AddCommand(CommandSpec{
		Command:   "clear counters",
		Arguments: []ArgumentSpec{{Name: "port", Type: "interface-name"}},
		Bundles:   []string{"missing"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "unknown bundle")
	assert.Contains(t, out, "bundle=missing")
	assert.Contains(t, out, "unknown argument type")
	assert.Contains(t, out, "type=interface-name")

	port := cmd.Argument("port")
	require.NotNil(t, port)
	assert.False(t, port.Resolved())
	assert.False(t, port.NeedsData())
	assert.Len(t, cmd.Arguments, 3)
}

func TestAddCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec CommandSpec
		want error
	}{
		{
			name: "empty phrase",
			spec: CommandSpec{Command: "   "},
			want: ErrEmptyPhrase,
		},
		{
			name: "argument without name",
			spec: CommandSpec{Command: "ping", Arguments: []ArgumentSpec{{Type: "text"}}},
			want: ErrEmptyName,
		},
		{
			name: "argument without type",
			spec: CommandSpec{Command: "ping", Arguments: []ArgumentSpec{{Name: "host"}}},
			want: ErrMissingType,
		},
		{
			name: "argument name with space",
			spec: CommandSpec{Command: "ping", Arguments: []ArgumentSpec{{Name: "a b", Type: "text"}}},
			want: ErrInvalidName,
		},
		{
			name: "argument clashes with phrase word",
			spec: CommandSpec{Command: "show route", Arguments: []ArgumentSpec{{Name: "route", Type: "flag"}}},
			want: ErrDuplicateArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, _ := newTestRegistry(t)
			_, err := reg.AddCommand(tt.spec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var recErr *RecordError
			require.ErrorAs(t, err, &recErr)
			assert.Equal(t, "command", recErr.Kind)
			assert.Equal(t, 0, reg.Len())
		})
	}
}

func TestAddCommand_Duplicate(t *testing.T) {
	reg, _ := newTestRegistry(t)
	_, err := reg.AddCommand(CommandSpec{Command: "show version"})
	require.NoError(t, err)
	_, err = reg.AddCommand(CommandSpec{Command: "show  version"})
	assert.ErrorIs(t, err, ErrDuplicateCommand)
}

func TestAddType_Overwrites(t *testing.T) {
	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.AddType(Type{Name: "text", Score: 4}))
	assert.False(t, reg.Type("text").NeedsData)
	assert.Equal(t, 4, reg.Type("text").Score)

	assert.ErrorIs(t, reg.AddType(Type{}), ErrEmptyName)
	assert.ErrorIs(t, reg.AddBundle(Bundle{}), ErrEmptyName)
}

func TestCommands_RegistrationOrder(t *testing.T) {
	reg, _ := newTestRegistry(t)
	for _, phrase := range []string{"show version", "clear log", "ping"} {
		_, err := reg.AddCommand(CommandSpec{Command: phrase})
		require.NoError(t, err)
	}

	cmds := reg.Commands()
	require.Len(t, cmds, 3)
	assert.Equal(t, "show version", cmds[0].Name)
	assert.Equal(t, "clear log", cmds[1].Name)
	assert.Equal(t, "ping", cmds[2].Name)
	assert.Nil(t, reg.Command("show"))
}

func TestCommand_Usage(t *testing.T) {
	reg, _ := newTestRegistry(t)
	cmd, err := reg.AddCommand(CommandSpec{
		Command: "show log",
		Arguments: []ArgumentSpec{
			{Name: "file", Type: "text", NoKeyword: true, MultipleWords: true, Mandatory: true},
			{Name: "since", Type: "text"},
			{Name: "terse", Type: "flag"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "show log <file...> [since <text>] [terse]", cmd.Usage())
	assert.Len(t, cmd.Keywords(), 2)
}

func TestRegistry_Names(t *testing.T) {
	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.AddBundle(Bundle{Name: "time-range"}))
	require.NoError(t, reg.AddBundle(Bundle{Name: "filter"}))

	assert.Equal(t, []string{"flag", "keyword", "text"}, reg.TypeNames())
	assert.Equal(t, []string{"filter", "time-range"}, reg.BundleNames())
}
