// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package parser interprets a free-form, possibly partial command line
// against a grammar registry and ranks the plausible interpretations.
//
// Parsing seeds one Possibility per registered command and folds the input
// tokens through an expansion step. Each step turns one possibility and one
// token into zero or more successors:
//
//   - a pending value for the previous match consumes the token outright;
//   - otherwise the token may prefix-match the name of any unmatched
//     argument, fill the next positional (nokeyword) argument, and extend a
//     multiple-words value, each as an independent branch.
//
// A possibility with no successor for a token is dropped. After the last
// token, interpretations made only of positional matches are discarded and
// every unmatched keyword argument costs a penalty.
//
// # Usage
//
//	p := parser.New(registry)
//	result := p.Parse("show int stat")
//	if best := result.Best(); best != nil {
//	    fmt.Println(best.Command.Name, best.Score)
//	}
//
// The parser never validates completeness and never runs commands; see the
// commands package for that.
package parser
