// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// check_cmd.go - Validates a command file and summarizes what it defines.

package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/cmdline/internal/grammar"
	"github.com/jeranaias/cmdline/internal/util"
)

// CheckReport is the outcome of checking a command file.
type CheckReport struct {
	Path     string           `json:"path"`
	Commands []CommandSummary `json:"commands"`
	Types    []string         `json:"types"`
	Bundles  []string         `json:"bundles"`
	Warnings []string         `json:"warnings"`
}

// CommandSummary describes one loaded command.
type CommandSummary struct {
	Name  string `json:"name"`
	Usage string `json:"usage"`
	Help  string `json:"help,omitempty"`
}

// CheckFile loads path into a fresh registry and reports its contents.
// Warnings logged during registration, such as unknown type references,
// are collected instead of printed.
func CheckFile(path string) (*CheckReport, error) {
	var warnings bytes.Buffer
	logger := log.NewWithOptions(&warnings, log.Options{Level: log.WarnLevel})

	reg := grammar.NewRegistry(grammar.WithLogger(logger))
	if err := grammar.LoadFile(reg, path); err != nil {
		return nil, &GrammarError{Path: path, Err: err}
	}

	report := &CheckReport{
		Path:     path,
		Commands: make([]CommandSummary, 0, reg.Len()),
		Types:    reg.TypeNames(),
		Bundles:  reg.BundleNames(),
		Warnings: []string{},
	}
	for _, cmd := range reg.Commands() {
		report.Commands = append(report.Commands, CommandSummary{Name: cmd.Name, Usage: cmd.Usage(), Help: cmd.Help})
	}
	for _, line := range strings.Split(warnings.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			report.Warnings = append(report.Warnings, line)
		}
	}
	return report, nil
}

// HandleCheck handles "cmdline check [file]".
func HandleCheck(app *App, args Args) error {
	path := app.GrammarPath()
	if len(args.Input) > 0 {
		path = args.Input[0]
	}
	if path == "" {
		return ErrNoGrammar
	}

	report, err := CheckFile(path)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("check", report).Write(app.Out)
	}

	theme := app.Theme
	fmt.Fprintln(app.Out, theme.RenderSuccess(fmt.Sprintf("%s: %d commands, %d types, %d bundles",
		report.Path, len(report.Commands), len(report.Types), len(report.Bundles))))
	for _, w := range report.Warnings {
		fmt.Fprintln(app.Out, theme.RenderWarning(w))
	}
	if len(report.Commands) == 0 {
		return nil
	}

	fmt.Fprintln(app.Out)
	rows := make([][]string, 0, len(report.Commands))
	for _, cmd := range report.Commands {
		rows = append(rows, []string{cmd.Usage, cmd.Help})
	}
	for _, line := range util.Columns(rows, 2) {
		fmt.Fprintln(app.Out, "  "+strings.TrimRight(line, " "))
	}
	return nil
}
