// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/cmdline/internal/grammar"
)

// =============================================================================
// PARSER
// =============================================================================

// Parser expands input strings against a registry. Each call is
// self-contained; the only state shared between calls is the id counters.
type Parser struct {
	registry *grammar.Registry
	weights  Weights
	logger   *log.Logger

	parseSeq atomic.Uint64
	possSeq  atomic.Uint64
	matchSeq atomic.Uint64
}

// Option configures a Parser.
type Option func(*Parser)

// WithWeights overrides the scoring weights.
func WithWeights(w Weights) Option {
	return func(p *Parser) {
		p.weights = w
	}
}

// WithLogger sets the logger used for parse tracing.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a parser over the given registry.
func New(registry *grammar.Registry, opts ...Option) *Parser {
	p := &Parser{
		registry: registry,
		weights:  DefaultWeights(),
		logger:   log.NewWithOptions(os.Stderr, log.Options{Prefix: "parser"}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry returns the registry the parser reads.
func (p *Parser) Registry() *grammar.Registry {
	return p.registry
}

// Weights returns the scoring weights in use.
func (p *Parser) Weights() Weights {
	return p.weights
}

// =============================================================================
// RESULT
// =============================================================================

// Result is the outcome of one parse request.
type Result struct {
	ID            uint64
	Input         string
	Tokens        []string
	Possibilities []*Possibility
}

// Best returns the top possibility, or nil when nothing survived.
func (r *Result) Best() *Possibility {
	if r == nil || len(r.Possibilities) == 0 {
		return nil
	}
	return r.Possibilities[0]
}

// Empty reports whether no interpretation survived.
func (r *Result) Empty() bool {
	return r == nil || len(r.Possibilities) == 0
}

// Trailing reports whether the input ends in whitespace, meaning the last
// token is complete.
func (r *Result) Trailing() bool {
	return len(r.Input) > 0 && strings.TrimRight(r.Input, " \t\r\n\v\f") != r.Input
}

// =============================================================================
// EXECUTION
// =============================================================================

// Parse interprets input and returns the surviving possibilities sorted
// best first.
func (p *Parser) Parse(input string) *Result {
	result, _ := p.Execute(input)
	Rank(result.Possibilities)
	return result
}

// Execute interprets input and returns the surviving possibilities in
// expansion order, along with whether any survived.
func (p *Parser) Execute(input string) (*Result, bool) {
	result := &Result{
		ID:     p.parseSeq.Add(1),
		Input:  input,
		Tokens: SplitTokens(input),
	}

	current := make([]*Possibility, 0, p.registry.Len())
	for _, cmd := range p.registry.Commands() {
		current = append(current, newPossibility(p.possSeq.Add(1), cmd))
	}

	for index, token := range result.Tokens {
		var next []*Possibility
		for _, poss := range current {
			next = append(next, p.expand(poss, token, index)...)
		}
		current = next
		if len(current) == 0 {
			break
		}
	}

	result.Possibilities = p.postProcess(current)

	p.logger.Debug("parsed",
		"parse_id", result.ID,
		"tokens", len(result.Tokens),
		"survivors", len(result.Possibilities))

	return result, len(result.Possibilities) > 0
}

// expand returns the successors of poss for one token.
func (p *Parser) expand(poss *Possibility, token string, index int) []*Possibility {
	last := poss.LastMatch()

	// A pending value takes the token and nothing else is tried.
	if last != nil && last.NeedsData {
		arg := last.Argument
		return []*Possibility{p.extend(poss, Match{
			Token:         token,
			TokenIndex:    index,
			Argument:      arg,
			Data:          token,
			HasData:       true,
			MultipleWords: arg.MultipleWords,
		}, p.weights.NeedsData)}
	}

	var out []*Possibility

	// Keyword: the token prefixes the name of an unmatched argument.
	for _, arg := range poss.Command.Arguments {
		if poss.Seen[arg.Name] || !arg.Resolved() {
			continue
		}
		if !strings.HasPrefix(arg.Name, token) {
			continue
		}
		bonus := p.weights.Keyword + arg.Type.Score
		if len(token) == len(arg.Name) {
			bonus += p.weights.Exact
		}
		if index == arg.Index {
			bonus += p.weights.Order + arg.Type.Order
		}
		out = append(out, p.extend(poss, Match{
			Token:      token,
			TokenIndex: index,
			Argument:   arg,
			NeedsData:  arg.Type.NeedsData,
		}, bonus))
	}

	// Positional: the token fills the first unmatched nokeyword argument.
	// Later nokeyword arguments wait until every earlier one is matched.
	if arg := nextPositional(poss); arg != nil && arg.Resolved() {
		out = append(out, p.extend(poss, Match{
			Token:         token,
			TokenIndex:    index,
			Argument:      arg,
			Data:          token,
			HasData:       true,
			MultipleWords: arg.MultipleWords,
		}, p.weights.NoKeyword+arg.Type.Score))
	}

	// Continuation: the token extends a multiple-words value.
	if last != nil && last.MultipleWords {
		out = append(out, p.extend(poss, Match{
			Token:         token,
			TokenIndex:    index,
			Argument:      last.Argument,
			Data:          token,
			HasData:       true,
			MultipleWords: true,
		}, p.weights.MultipleWords))
	}

	return out
}

func nextPositional(poss *Possibility) *grammar.Argument {
	for _, arg := range poss.Command.Arguments {
		if arg.NoKeyword && !poss.Seen[arg.Name] {
			return arg
		}
	}
	return nil
}

// extend clones parent and appends m, accumulating score, seen and data.
func (p *Parser) extend(parent *Possibility, m Match, bonus int) *Possibility {
	next := parent.Clone(p.possSeq.Add(1))
	m.ID = p.matchSeq.Add(1)
	next.Matches = append(next.Matches, m)
	next.Score += bonus

	name := m.Argument.Name
	next.Seen[name] = true
	if m.HasData {
		if prev, ok := next.Data[name]; ok {
			next.Data[name] = prev + " " + m.Data
		} else {
			next.Data[name] = m.Data
		}
	}
	return next
}
