// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styles for one output stream.
type Theme struct {
	Profile  termenv.Profile
	Renderer *lipgloss.Renderer

	// Possibility table
	Header    lipgloss.Style
	Rank      lipgloss.Style
	Score     lipgloss.Style
	BestScore lipgloss.Style
	Command   lipgloss.Style
	Keyword   lipgloss.Style
	Data      lipgloss.Style
	Missing   lipgloss.Style
	Selected  lipgloss.Style

	// Completion and help
	Description lipgloss.Style
	Usage       lipgloss.Style
	Prompt      lipgloss.Style
	Muted       lipgloss.Style
	Box         lipgloss.Style

	// Status
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a theme rendering to stdout with the given profile.
func NewTheme(profile termenv.Profile) *Theme {
	return NewThemeFor(os.Stdout, profile)
}

// NewThemeFor creates a theme for w. The profile is fixed rather than
// detected from w, so termenv.Ascii always yields plain text.
func NewThemeFor(w io.Writer, profile termenv.Profile) *Theme {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	t := &Theme{
		Profile:  profile,
		Renderer: r,
	}
	t.initStyles()
	return t
}

// Plain returns a theme that never emits escape sequences.
func Plain() *Theme {
	return NewThemeFor(io.Discard, termenv.Ascii)
}

// Colored reports whether the theme emits color.
func (t *Theme) Colored() bool {
	return t.Profile != termenv.Ascii
}

func (t *Theme) initStyles() {
	s := t.Renderer.NewStyle

	t.Header = s().Bold(true).Foreground(TextSecondary)
	t.Rank = s().Foreground(TextMuted)
	t.Score = s().Foreground(Amber)
	t.BestScore = s().Foreground(Amber).Bold(true)
	t.Command = s().Foreground(Purple).Bold(true)
	t.Keyword = s().Foreground(Cyan)
	t.Data = s().Foreground(Emerald)
	t.Missing = s().Foreground(Rose).Italic(true)
	t.Selected = s().Background(SelectionBg).Bold(true)

	t.Description = s().Foreground(TextSecondary)
	t.Usage = s().Foreground(TextPrimary)
	t.Prompt = s().Foreground(Cyan).Bold(true)
	t.Muted = s().Foreground(TextMuted).Italic(true)
	t.Box = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SuccessStyle = s().Foreground(Emerald).Bold(true)
	t.ErrorStyle = s().Foreground(Rose).Bold(true)
	t.WarningStyle = s().Foreground(Amber).Bold(true)
	t.InfoStyle = s().Foreground(Cyan)
}

// =============================================================================
// STATUS HELPERS
// =============================================================================

// RenderSuccess renders message with the success indicator.
func (t *Theme) RenderSuccess(message string) string {
	return t.SuccessStyle.Render(StatusIndicators.Success + " " + message)
}

// RenderError renders message with the error indicator.
func (t *Theme) RenderError(message string) string {
	return t.ErrorStyle.Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders message with the warning indicator.
func (t *Theme) RenderWarning(message string) string {
	return t.WarningStyle.Render(StatusIndicators.Warning + " " + message)
}

// RenderInfo renders message with the info indicator.
func (t *Theme) RenderInfo(message string) string {
	return t.InfoStyle.Render(StatusIndicators.Info + " " + message)
}
