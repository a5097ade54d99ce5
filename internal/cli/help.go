// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// help.go - Per-command help rendered as markdown.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/cmdline/internal/grammar"
)

// CommandMarkdown renders cmd's help page as markdown.
func CommandMarkdown(cmd *grammar.Command) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cmd.Name)
	if cmd.Help != "" {
		b.WriteString(cmd.Help + "\n\n")
	}
	fmt.Fprintf(&b, "```\n%s\n```\n\n", cmd.Usage())

	var rows []string
	for _, arg := range cmd.Arguments {
		if arg.Synthetic {
			continue
		}
		var notes []string
		if arg.Mandatory {
			notes = append(notes, "required")
		}
		if arg.NoKeyword {
			notes = append(notes, "positional")
		}
		if arg.MultipleWords {
			notes = append(notes, "multiple words")
		}
		if !arg.Resolved() {
			notes = append(notes, "unknown type")
		}
		rows = append(rows, fmt.Sprintf("| %s | %s | %s | %s |",
			arg.Name, arg.TypeName, strings.Join(notes, ", "), escapeCell(arg.Help)))
	}
	if len(rows) > 0 {
		b.WriteString("| Argument | Type | Notes | Description |\n|---|---|---|---|\n")
		b.WriteString(strings.Join(rows, "\n") + "\n")
	}
	if len(cmd.Bundles) > 0 {
		fmt.Fprintf(&b, "\nIncludes: %s\n", strings.Join(cmd.Bundles, ", "))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// renderMarkdown renders markdown for the terminal. Without color it uses
// glamour's plain style so piped output stays free of escapes. On a
// renderer failure the markdown is returned as is.
func renderMarkdown(content string, colored bool, width int) string {
	style := glamour.WithStandardStyle("notty")
	if colored {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// HandleHelp handles "cmdline help [phrase...]". Without a phrase it prints
// usage and, when a command file loads, the command list. A phrase may be
// abbreviated; it is resolved through the parser.
func HandleHelp(app *App, args Args) error {
	phrase := args.Line()
	loadErr := app.Load()

	if phrase == "" {
		PrintUsage(app.Out)
		if loadErr != nil {
			fmt.Fprintln(app.Err, app.ErrTheme.RenderWarning(loadErr.Error()))
			return nil
		}
		fmt.Fprintln(app.Out, "\nCommands:")
		listCommands(app.Out, app.Parser().Registry())
		return nil
	}

	if loadErr != nil {
		return loadErr
	}

	cmd := lookupCommand(app, phrase)
	if cmd == nil {
		return &UsageError{Message: fmt.Sprintf("no command matches %q", phrase), Usage: "cmdline help [command]"}
	}
	fmt.Fprint(app.Out, renderMarkdown(CommandMarkdown(cmd), app.Theme.Colored(), GetTerminalWidth()))
	return nil
}

// lookupCommand finds a command by exact phrase, falling back to the best
// interpretation of the phrase.
func lookupCommand(app *App, phrase string) *grammar.Command {
	reg := app.Parser().Registry()
	if cmd := reg.Command(strings.Join(strings.Fields(phrase), " ")); cmd != nil {
		return cmd
	}
	if best := app.Parser().Parse(phrase).Best(); best != nil {
		return best.Command
	}
	return nil
}

func listCommands(w io.Writer, reg *grammar.Registry) {
	for _, cmd := range reg.Commands() {
		if cmd.Help != "" {
			fmt.Fprintf(w, "  %-24s %s\n", cmd.Name, cmd.Help)
		} else {
			fmt.Fprintf(w, "  %s\n", cmd.Name)
		}
	}
}
