// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/jeranaias/cmdline/internal/commands"
	"github.com/jeranaias/cmdline/internal/ui/styles"
	"github.com/jeranaias/cmdline/internal/util"
)

// =============================================================================
// COMPLETION POPUP COMPONENT
// =============================================================================

// CompletionPopup displays completion suggestions with one selected.
type CompletionPopup struct {
	completions []commands.Completion
	selected    int
	maxVisible  int
	width       int
	theme       *styles.Theme
}

// NewCompletionPopup creates a new completion popup.
func NewCompletionPopup(theme *styles.Theme) *CompletionPopup {
	return &CompletionPopup{
		maxVisible: 8,
		width:      60,
		theme:      theme,
	}
}

// SetCompletions sets the completions to display and resets the selection.
func (c *CompletionPopup) SetCompletions(completions []commands.Completion) {
	c.completions = completions
	c.selected = 0
}

// Completions returns the current completions.
func (c *CompletionPopup) Completions() []commands.Completion {
	return c.completions
}

// HasCompletions returns true if there are completions to show.
func (c *CompletionPopup) HasCompletions() bool {
	return len(c.completions) > 0
}

// Clear clears all completions.
func (c *CompletionPopup) Clear() {
	c.completions = nil
	c.selected = 0
}

// SetWidth sets the popup width.
func (c *CompletionPopup) SetWidth(width int) {
	c.width = width
}

// SetMaxVisible sets the maximum number of visible completions.
func (c *CompletionPopup) SetMaxVisible(max int) {
	c.maxVisible = max
}

// Next selects the next completion.
func (c *CompletionPopup) Next() {
	if len(c.completions) == 0 {
		return
	}
	c.selected = (c.selected + 1) % len(c.completions)
}

// Prev selects the previous completion.
func (c *CompletionPopup) Prev() {
	if len(c.completions) == 0 {
		return
	}
	c.selected = (c.selected - 1 + len(c.completions)) % len(c.completions)
}

// Selected returns the currently selected completion, or nil.
func (c *CompletionPopup) Selected() *commands.Completion {
	if c.selected < 0 || c.selected >= len(c.completions) {
		return nil
	}
	return &c.completions[c.selected]
}

// window returns the visible range, keeping the selection in view.
func (c *CompletionPopup) window() (int, int) {
	start, end := 0, len(c.completions)
	if c.maxVisible > 0 && end > c.maxVisible {
		start = c.selected - c.maxVisible/2
		if start < 0 {
			start = 0
		}
		end = start + c.maxVisible
		if end > len(c.completions) {
			end = len(c.completions)
			start = end - c.maxVisible
		}
	}
	return start, end
}

// View renders the popup.
func (c *CompletionPopup) View() string {
	if len(c.completions) == 0 {
		return ""
	}

	start, end := c.window()
	valueW := 0
	for i := start; i < end; i++ {
		valueW = max(valueW, util.StringWidth(c.completions[i].Display))
	}
	valueW = min(valueW, c.width/2)

	var items []string
	for i := start; i < end; i++ {
		items = append(items, c.renderItem(c.completions[i], i == c.selected, valueW))
	}
	if end < len(c.completions) {
		items = append(items, c.theme.Muted.Render("... "+strconv.Itoa(len(c.completions)-end)+" more"))
	}

	return c.theme.Box.Render(strings.Join(items, "\n"))
}

func (c *CompletionPopup) renderItem(comp commands.Completion, isSelected bool, valueW int) string {
	indicator := "  "
	valueStyle := c.theme.Keyword
	if isSelected {
		indicator = "> "
		valueStyle = c.theme.Selected
	}

	value := util.PadRight(util.TruncateWidth(comp.Display, valueW), valueW)
	line := indicator + valueStyle.Render(value)

	if comp.Description != "" {
		descW := c.width - valueW - 6
		if desc := util.TruncateWidth(comp.Description, descW); desc != "" {
			line += "  " + c.theme.Description.Render(desc)
		}
	}
	return line
}

// ViewInline renders the first few completions on one line.
func (c *CompletionPopup) ViewInline() string {
	if len(c.completions) == 0 {
		return ""
	}

	const maxInline = 3
	n := min(len(c.completions), maxInline)

	var parts []string
	for i := 0; i < n; i++ {
		style := c.theme.Description
		if i == c.selected {
			style = c.theme.Prompt
		}
		parts = append(parts, style.Render(c.completions[i].Display))
	}
	if len(c.completions) > n {
		parts = append(parts, c.theme.Muted.Render("..."+strconv.Itoa(len(c.completions)-n)+" more"))
	}
	return strings.Join(parts, " | ")
}
