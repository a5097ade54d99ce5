// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

// Weights are the additive scoring constants.
type Weights struct {
	// Keyword is the base bonus for a token that prefixes an argument name
	Keyword int
	// Exact is added when the token is the whole argument name
	Exact int
	// Order is added when the token index equals the argument index
	Order int
	// NoKeyword scores a positional value
	NoKeyword int
	// NeedsData scores a value consumed for the previous keyword match
	NeedsData int
	// MultipleWords scores each extra word of a multiple-words value
	MultipleWords int
	// MissingKeyword is subtracted per unmatched keyword argument
	MissingKeyword int
}

// DefaultWeights returns the stock weights. A positional value scores below
// an exact keyword match; each missing keyword costs less than a full match
// earns, so partially typed commands still rank.
func DefaultWeights() Weights {
	return Weights{
		Keyword:        10,
		Exact:          5,
		Order:          2,
		NoKeyword:      3,
		NeedsData:      2,
		MultipleWords:  0,
		MissingKeyword: 8,
	}
}

// postProcess drops interpretations made only of positional matches and
// charges the missing-keyword penalty. It keeps the input order.
func (p *Parser) postProcess(list []*Possibility) []*Possibility {
	out := make([]*Possibility, 0, len(list))
	for _, poss := range list {
		if poss.onlyNoKeyword() {
			continue
		}
		poss.Score -= p.weights.MissingKeyword * len(poss.MissingKeywords())
		out = append(out, poss)
	}
	return out
}
