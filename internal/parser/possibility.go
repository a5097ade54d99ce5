// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

import (
	"sort"

	"github.com/jeranaias/cmdline/internal/grammar"
)

// =============================================================================
// MATCH
// =============================================================================

// Match binds one input token to one argument.
type Match struct {
	ID uint64

	Token      string
	TokenIndex int
	Argument   *grammar.Argument

	// Data is the value this token contributed, valid when HasData is set
	Data    string
	HasData bool

	// NeedsData means the next token must be consumed as this argument's value
	NeedsData bool

	// MultipleWords means the next token may extend this argument's value
	MultipleWords bool
}

// =============================================================================
// POSSIBILITY
// =============================================================================

// Possibility is one candidate interpretation of the input against one
// command. Expansion never mutates a possibility; it clones it.
type Possibility struct {
	ID uint64

	Command *grammar.Command
	Matches []Match
	Data    map[string]string
	Seen    map[string]bool
	Score   int
}

func newPossibility(id uint64, cmd *grammar.Command) *Possibility {
	return &Possibility{
		ID:      id,
		Command: cmd,
		Data:    make(map[string]string),
		Seen:    make(map[string]bool),
	}
}

// Clone returns a copy sharing nothing mutable with p. The command
// reference is kept.
func (p *Possibility) Clone(id uint64) *Possibility {
	next := &Possibility{
		ID:      id,
		Command: p.Command,
		Matches: make([]Match, len(p.Matches), len(p.Matches)+1),
		Data:    make(map[string]string, len(p.Data)+1),
		Seen:    make(map[string]bool, len(p.Seen)+1),
		Score:   p.Score,
	}
	copy(next.Matches, p.Matches)
	for k, v := range p.Data {
		next.Data[k] = v
	}
	for k := range p.Seen {
		next.Seen[k] = true
	}
	return next
}

// LastMatch returns the most recent match, or nil.
func (p *Possibility) LastMatch() *Match {
	if len(p.Matches) == 0 {
		return nil
	}
	return &p.Matches[len(p.Matches)-1]
}

// Value returns the accumulated value of an argument.
func (p *Possibility) Value(name string) (string, bool) {
	v, ok := p.Data[name]
	return v, ok
}

// MissingKeywords returns keyword arguments not yet matched, in order.
func (p *Possibility) MissingKeywords() []*grammar.Argument {
	var out []*grammar.Argument
	for _, arg := range p.Command.Arguments {
		if arg.IsKeyword() && !p.Seen[arg.Name] {
			out = append(out, arg)
		}
	}
	return out
}

// Unmatched returns every argument not yet matched, in order.
func (p *Possibility) Unmatched() []*grammar.Argument {
	var out []*grammar.Argument
	for _, arg := range p.Command.Arguments {
		if !p.Seen[arg.Name] {
			out = append(out, arg)
		}
	}
	return out
}

// Invocation packages the possibility for a command's execute callback.
// The maps are copies.
func (p *Possibility) Invocation() grammar.Invocation {
	data := make(map[string]string, len(p.Data))
	for k, v := range p.Data {
		data[k] = v
	}
	seen := make(map[string]bool, len(p.Seen))
	for k := range p.Seen {
		seen[k] = true
	}
	return grammar.Invocation{Command: p.Command, Data: data, Seen: seen}
}

func (p *Possibility) onlyNoKeyword() bool {
	for i := range p.Matches {
		if !p.Matches[i].Argument.NoKeyword {
			return false
		}
	}
	return true
}

// Rank sorts possibilities by score, best first. Equal scores keep their
// relative order.
func Rank(list []*Possibility) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Score > list[j].Score
	})
}
