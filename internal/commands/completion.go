// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"sort"
	"strings"

	"github.com/jeranaias/cmdline/internal/grammar"
	"github.com/jeranaias/cmdline/internal/parser"
)

// =============================================================================
// COMPLETION TYPE
// =============================================================================

// Completion represents a completion suggestion.
type Completion struct {
	// Value is the full input line after accepting the suggestion
	Value string

	// Display is the word being suggested
	Display string

	// Description shown alongside
	Description string

	// Score for ranking (higher = better match)
	Score int
}

// =============================================================================
// COMPLETER
// =============================================================================

// Completer derives completion suggestions from the ranked interpretations
// of a partial input line.
type Completer struct {
	parser *parser.Parser

	// Max caps the number of completions returned; zero means no cap
	Max int
}

// NewCompleter creates a new completer over p.
func NewCompleter(p *parser.Parser) *Completer {
	return &Completer{parser: p}
}

// Complete returns suggestions for input, best first.
//
// When the last token is still being typed, suggestions finish it: either
// the full name of the argument it prefixes or a value offered by the
// command's complete callback. When the input ends in whitespace,
// suggestions name the next argument, or offer values if the previous
// keyword is waiting for one.
func (c *Completer) Complete(ctx context.Context, input string) []Completion {
	tokens := parser.SplitTokens(input)
	if len(tokens) == 0 {
		return c.completeCommands()
	}

	result := c.parser.Parse(input)
	set := make(completionSet)

	if result.Trailing() {
		prefix := strings.Join(tokens, " ") + " "
		for _, p := range result.Possibilities {
			c.completeNext(ctx, set, p, prefix)
		}
	} else {
		partial := tokens[len(tokens)-1]
		prefix := strings.Join(tokens[:len(tokens)-1], " ")
		if prefix != "" {
			prefix += " "
		}
		for _, p := range result.Possibilities {
			c.completePartial(ctx, set, p, prefix, partial)
		}
	}

	completions := set.list()
	sortCompletions(completions)
	if c.Max > 0 && len(completions) > c.Max {
		completions = completions[:c.Max]
	}
	return completions
}

// completeCommands offers the first word of every command.
func (c *Completer) completeCommands() []Completion {
	set := make(completionSet)
	for _, cmd := range c.parser.Registry().Commands() {
		set.add(Completion{
			Value:   cmd.Words[0],
			Display: cmd.Words[0],
		})
	}
	completions := set.list()
	sortCompletions(completions)
	return completions
}

func (c *Completer) completePartial(ctx context.Context, set completionSet, p *parser.Possibility, prefix, partial string) {
	last := p.LastMatch()
	if last == nil {
		return
	}
	arg := last.Argument

	if !last.HasData {
		if len(partial) < len(arg.Name) {
			set.add(Completion{
				Value:       prefix + arg.Name,
				Display:     arg.Name,
				Description: describe(p.Command, arg),
				Score:       p.Score,
			})
		}
		return
	}

	if p.Command.Complete == nil {
		return
	}
	for _, v := range p.Command.Complete(ctx, arg.Name, partial) {
		if v == partial || !strings.HasPrefix(v, partial) {
			continue
		}
		set.add(Completion{
			Value:       prefix + v,
			Display:     v,
			Description: arg.Help,
			Score:       p.Score,
		})
	}
}

func (c *Completer) completeNext(ctx context.Context, set completionSet, p *parser.Possibility, prefix string) {
	last := p.LastMatch()
	if last != nil && last.NeedsData {
		if p.Command.Complete == nil {
			return
		}
		for _, v := range p.Command.Complete(ctx, last.Argument.Name, "") {
			set.add(Completion{
				Value:       prefix + v,
				Display:     v,
				Description: last.Argument.Help,
				Score:       p.Score,
			})
		}
		return
	}

	// Invocation words are offered in phrase order only.
	phraseOffered := false
	for _, arg := range p.Unmatched() {
		if !arg.Resolved() {
			continue
		}
		score := p.Score
		if arg.Synthetic {
			if phraseOffered {
				continue
			}
			phraseOffered = true
			score += c.parser.Weights().MissingKeyword
		}
		set.add(Completion{
			Value:       prefix + arg.Name,
			Display:     arg.Name,
			Description: describe(p.Command, arg),
			Score:       score,
		})
	}
}

func describe(cmd *grammar.Command, arg *grammar.Argument) string {
	if arg.Help != "" {
		return arg.Help
	}
	if arg.Synthetic {
		return cmd.Help
	}
	return ""
}

// completionSet keeps the best-scored completion per value.
type completionSet map[string]Completion

func (s completionSet) add(c Completion) {
	if prev, ok := s[c.Value]; ok && prev.Score >= c.Score {
		return
	}
	s[c.Value] = c
}

func (s completionSet) list() []Completion {
	out := make([]Completion, 0, len(s))
	for _, c := range s {
		out = append(out, c)
	}
	return out
}

// sortCompletions sorts completions by score (descending), then alphabetically.
func sortCompletions(completions []Completion) {
	sort.Slice(completions, func(i, j int) bool {
		if completions[i].Score != completions[j].Score {
			return completions[i].Score > completions[j].Score
		}
		return completions[i].Value < completions[j].Value
	})
}

// Values returns just the completion values, for line editors.
func Values(completions []Completion) []string {
	out := make([]string, len(completions))
	for i, c := range completions {
		out[i] = c.Value
	}
	return out
}
