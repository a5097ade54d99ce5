// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package grammar

import (
	"context"
	"strings"
)

// KeywordType is the name of the built-in type used for the synthetic
// arguments generated from a command's invocation phrase.
const KeywordType = "keyword"

// =============================================================================
// TYPE & ARGUMENT SPECIFICATIONS
// =============================================================================

// Type describes how arguments of this type are matched and scored.
type Type struct {
	// Name identifies the type within a registry
	Name string `toml:"name" json:"name"`

	// NeedsData means a keyword match must be followed by a value token
	NeedsData bool `toml:"needs_data" json:"needsData"`

	// Score is a flat bonus added when an argument of this type is matched
	Score int `toml:"score" json:"score,omitempty"`

	// Order is added to the positional bonus when the token index equals
	// the argument index
	Order int `toml:"order" json:"order,omitempty"`
}

// ArgumentSpec is the registration-time description of one argument.
type ArgumentSpec struct {
	Name          string `toml:"name" json:"name"`
	Type          string `toml:"type" json:"type"`
	Help          string `toml:"help" json:"help,omitempty"`
	NoKeyword     bool   `toml:"nokeyword" json:"nokeyword,omitempty"`
	MultipleWords bool   `toml:"multiple_words" json:"multipleWords,omitempty"`
	Mandatory     bool   `toml:"mandatory" json:"mandatory,omitempty"`
}

// Bundle is a named, reusable fragment of argument specifications.
type Bundle struct {
	Name      string         `toml:"name" json:"name"`
	Arguments []ArgumentSpec `toml:"argument" json:"arguments"`
}

// CommandSpec is the registration record for a command.
type CommandSpec struct {
	// Command is the space-separated invocation phrase
	Command   string         `toml:"command" json:"command"`
	Arguments []ArgumentSpec `toml:"argument" json:"arguments,omitempty"`
	Bundles   []string       `toml:"bundle" json:"bundle,omitempty"`
	Help      string         `toml:"help" json:"help,omitempty"`

	Execute  ExecuteFunc  `toml:"-" json:"-"`
	Complete CompleteFunc `toml:"-" json:"-"`
}

// =============================================================================
// CALLBACKS
// =============================================================================

// Invocation is what a command's execute callback receives once a caller
// has picked and validated an interpretation.
type Invocation struct {
	Command *Command
	Data    map[string]string
	Seen    map[string]bool
}

// Value returns the accumulated value for an argument.
func (inv Invocation) Value(name string) (string, bool) {
	v, ok := inv.Data[name]
	return v, ok
}

// Has reports whether the argument was matched.
func (inv Invocation) Has(name string) bool {
	return inv.Seen[name]
}

// ExecuteFunc runs a command. The parser never calls it.
type ExecuteFunc func(ctx context.Context, inv Invocation) error

// CompleteFunc proposes values for an argument given the partial token typed
// so far. The parser never calls it.
type CompleteFunc func(ctx context.Context, argument, partial string) []string

// =============================================================================
// RESOLVED COMMAND
// =============================================================================

// Argument is an argument as it exists inside a registered command.
type Argument struct {
	Name     string
	TypeName string

	// Type is nil when TypeName was not registered; such an argument is
	// never eligible for a keyword or positional match.
	Type *Type

	Help          string
	NoKeyword     bool
	MultipleWords bool
	Mandatory     bool

	// Index is the argument's position in the command's full argument list
	Index int

	// Synthetic is true for arguments generated from the invocation phrase
	Synthetic bool
}

// Resolved reports whether the argument's type is known.
func (a *Argument) Resolved() bool {
	return a.Type != nil
}

// IsKeyword reports whether the argument is of the keyword type.
func (a *Argument) IsKeyword() bool {
	return a.TypeName == KeywordType
}

// NeedsData reports whether a keyword match of this argument needs a value.
func (a *Argument) NeedsData() bool {
	return a.Type != nil && a.Type.NeedsData
}

// Command is a registered command. It is immutable after registration.
type Command struct {
	// Name is the invocation phrase with whitespace normalized
	Name string

	// Words are the invocation phrase tokens, in order
	Words []string

	Help string

	// Arguments holds synthetic keywords, then own arguments, then bundle
	// arguments, in that order
	Arguments []*Argument

	Bundles []string

	Execute  ExecuteFunc
	Complete CompleteFunc

	byName map[string]*Argument
}

// Argument returns the named argument, or nil.
func (c *Command) Argument(name string) *Argument {
	return c.byName[name]
}

// Keywords returns the arguments of the keyword type, in order.
func (c *Command) Keywords() []*Argument {
	var out []*Argument
	for _, arg := range c.Arguments {
		if arg.IsKeyword() {
			out = append(out, arg)
		}
	}
	return out
}

// Usage renders a one-line synopsis such as
// "show log [since <text>] <file...>".
func (c *Command) Usage() string {
	var b strings.Builder
	b.WriteString(c.Name)
	for _, arg := range c.Arguments {
		if arg.Synthetic {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(argumentUsage(arg))
	}
	return b.String()
}

func argumentUsage(arg *Argument) string {
	var s string
	switch {
	case arg.NoKeyword:
		s = "<" + arg.Name
		if arg.MultipleWords {
			s += "..."
		}
		s += ">"
	case arg.NeedsData():
		s = arg.Name + " <" + arg.TypeName + ">"
	default:
		s = arg.Name
	}
	if !arg.Mandatory {
		s = "[" + s + "]"
	}
	return s
}
