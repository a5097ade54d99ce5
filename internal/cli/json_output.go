// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - Machine-readable output for scripts and editors.

package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/jeranaias/cmdline/internal/parser"
)

// JSONResponse is the envelope for every --json output.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the RFC3339 time the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the subcommand that produced the response
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// WithData attaches data to an error response, such as the
// interpretations that made input ambiguous.
func (r *JSONResponse) WithData(data interface{}) *JSONResponse {
	r.Data = data
	return r
}

// Write encodes the response to w, indented.
func (r *JSONResponse) Write(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// =============================================================================
// PARSE REPORT
// =============================================================================

// ParseReport is the JSON form of a parse result.
type ParseReport struct {
	ParseID       uint64              `json:"parse_id"`
	Input         string              `json:"input"`
	Tokens        []string            `json:"tokens"`
	Total         int                 `json:"total"`
	Possibilities []PossibilityReport `json:"possibilities"`
}

// PossibilityReport is the JSON form of one interpretation.
type PossibilityReport struct {
	Rank    int               `json:"rank"`
	ID      uint64            `json:"id"`
	Command string            `json:"command"`
	Score   int               `json:"score"`
	Data    map[string]string `json:"data"`
	Matches []MatchReport     `json:"matches"`
	Missing []string          `json:"missing,omitempty"`
}

// MatchReport is the JSON form of one token binding.
type MatchReport struct {
	Token    string `json:"token"`
	Index    int    `json:"index"`
	Argument string `json:"argument"`
	Data     bool   `json:"data"`
}

// NewParseReport converts r, keeping at most max possibilities. Zero keeps
// all of them.
func NewParseReport(r *parser.Result, max int) ParseReport {
	report := ParseReport{
		ParseID:       r.ID,
		Input:         r.Input,
		Tokens:        r.Tokens,
		Total:         len(r.Possibilities),
		Possibilities: []PossibilityReport{},
	}
	if report.Tokens == nil {
		report.Tokens = []string{}
	}

	for i, p := range r.Possibilities {
		if max > 0 && i >= max {
			break
		}
		pr := PossibilityReport{
			Rank:    i + 1,
			ID:      p.ID,
			Command: p.Command.Name,
			Score:   p.Score,
			Data:    make(map[string]string, len(p.Data)),
			Matches: make([]MatchReport, len(p.Matches)),
		}
		for k, v := range p.Data {
			pr.Data[k] = v
		}
		for j, m := range p.Matches {
			pr.Matches[j] = MatchReport{
				Token:    m.Token,
				Index:    m.TokenIndex,
				Argument: m.Argument.Name,
				Data:     m.HasData,
			}
		}
		for _, arg := range p.MissingKeywords() {
			pr.Missing = append(pr.Missing, arg.Name)
		}
		report.Possibilities = append(report.Possibilities, pr)
	}
	return report
}
