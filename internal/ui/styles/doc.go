// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the colors and lip gloss styles used to render parse
results, completions and help.

# Color System (colors.go)

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection:

  - Purple - Command names and the selected row
  - Cyan - Keywords and prompts
  - Emerald - Bound data and success
  - Amber - Warnings and scores
  - Rose - Errors and missing keywords

# Theme (theme.go)

A Theme binds the palette to a lipgloss.Renderer with a fixed color profile,
so output written to a pipe or with colors disabled is plain text:

	theme := styles.NewTheme(termenv.Ascii)
	fmt.Println(theme.Command.Render("show interfaces"))

# Accessibility

Status lines always carry an ASCII indicator ([OK], [X], [!], [i]) next to
the color, so nothing is conveyed by color alone.
*/
package styles
