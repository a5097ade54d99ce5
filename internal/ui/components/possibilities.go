// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/jeranaias/cmdline/internal/parser"
	"github.com/jeranaias/cmdline/internal/ui/styles"
	"github.com/jeranaias/cmdline/internal/util"
)

// =============================================================================
// INTERPRETATION TEXT
// =============================================================================

// Bindings returns the possibility's arguments in match order as
// "name" for keywords and "name=value" for data, one entry per argument.
func Bindings(p *parser.Possibility) []string {
	var out []string
	placed := make(map[string]bool, len(p.Matches))
	for _, m := range p.Matches {
		name := m.Argument.Name
		if placed[name] || m.Argument.Synthetic {
			continue
		}
		placed[name] = true
		if value, ok := p.Data[name]; ok {
			out = append(out, name+"="+strconv.Quote(value))
		} else {
			out = append(out, name)
		}
	}
	return out
}

// Missing returns the names of keywords the possibility has not matched.
func Missing(p *parser.Possibility) []string {
	var out []string
	for _, arg := range p.MissingKeywords() {
		out = append(out, arg.Name)
	}
	return out
}

// =============================================================================
// POSSIBILITY LIST COMPONENT
// =============================================================================

// PossibilityList renders ranked interpretations as a table.
type PossibilityList struct {
	possibilities []*parser.Possibility
	selected      int
	maxVisible    int
	width         int
	selectable    bool
	theme         *styles.Theme
}

// NewPossibilityList creates a list showing up to maxVisible rows. Zero
// shows every row.
func NewPossibilityList(theme *styles.Theme, maxVisible int) *PossibilityList {
	return &PossibilityList{
		maxVisible: maxVisible,
		width:      100,
		theme:      theme,
	}
}

// SetResult replaces the rows with the result's possibilities.
func (l *PossibilityList) SetResult(r *parser.Result) {
	if r == nil {
		l.possibilities = nil
	} else {
		l.possibilities = r.Possibilities
	}
	l.selected = 0
}

// SetWidth sets the maximum line width.
func (l *PossibilityList) SetWidth(width int) {
	l.width = width
}

// SetSelectable turns the selection marker column on or off.
func (l *PossibilityList) SetSelectable(on bool) {
	l.selectable = on
}

// Len returns the number of rows.
func (l *PossibilityList) Len() int {
	return len(l.possibilities)
}

// Next selects the next row.
func (l *PossibilityList) Next() {
	if n := l.visible(); n > 0 {
		l.selected = (l.selected + 1) % n
	}
}

// Prev selects the previous row.
func (l *PossibilityList) Prev() {
	if n := l.visible(); n > 0 {
		l.selected = (l.selected - 1 + n) % n
	}
}

// Selected returns the selected possibility, or nil.
func (l *PossibilityList) Selected() *parser.Possibility {
	if l.selected < 0 || l.selected >= len(l.possibilities) {
		return nil
	}
	return l.possibilities[l.selected]
}

func (l *PossibilityList) visible() int {
	n := len(l.possibilities)
	if l.maxVisible > 0 && n > l.maxVisible {
		n = l.maxVisible
	}
	return n
}

// View renders the table. Rows are rank, score, command, then bindings
// with missing keywords in brackets.
func (l *PossibilityList) View() string {
	if len(l.possibilities) == 0 {
		return l.theme.Muted.Render("no interpretation")
	}

	n := l.visible()
	rankW, scoreW, cmdW := 1, len("score"), len("command")
	for i := 0; i < n; i++ {
		p := l.possibilities[i]
		rankW = max(rankW, len(strconv.Itoa(i+1)))
		scoreW = max(scoreW, len(strconv.Itoa(p.Score)))
		cmdW = max(cmdW, util.StringWidth(p.Command.Name))
	}

	var lines []string
	lines = append(lines, l.marker(false)+l.theme.Header.Render(
		util.PadRight("#", rankW)+"  "+
			util.PadRight("score", scoreW)+"  "+
			util.PadRight("command", cmdW)+"  "+
			"arguments"))

	restW := l.width - rankW - scoreW - cmdW - 6 - util.StringWidth(l.marker(false))
	for i := 0; i < n; i++ {
		lines = append(lines, l.renderRow(i, rankW, scoreW, cmdW, restW))
	}

	if hidden := len(l.possibilities) - n; hidden > 0 {
		lines = append(lines, l.theme.Muted.Render("... "+strconv.Itoa(hidden)+" more"))
	}
	return strings.Join(lines, "\n")
}

func (l *PossibilityList) renderRow(i, rankW, scoreW, cmdW, restW int) string {
	p := l.possibilities[i]
	t := l.theme

	scoreStyle := t.Score
	if p.Score == l.possibilities[0].Score {
		scoreStyle = t.BestScore
	}

	// Pad before styling so escape codes do not count toward widths.
	rank := t.Rank.Render(util.PadRight(strconv.Itoa(i+1), rankW))
	score := scoreStyle.Render(util.PadRight(strconv.Itoa(p.Score), scoreW))
	cmd := t.Command.Render(util.PadRight(p.Command.Name, cmdW))

	var parts []string
	used := 0
	for _, b := range Bindings(p) {
		used += util.StringWidth(b) + 1
		if name, value, ok := strings.Cut(b, "="); ok {
			parts = append(parts, t.Keyword.Render(name)+"="+t.Data.Render(value))
		} else {
			parts = append(parts, t.Keyword.Render(b))
		}
	}
	if missing := Missing(p); len(missing) > 0 {
		text := "[missing " + strings.Join(missing, " ") + "]"
		if restW > 0 && used+util.StringWidth(text) > restW {
			text = util.TruncateWidth(text, max(restW-used, 0))
		}
		if text != "" {
			parts = append(parts, t.Missing.Render(text))
		}
	}

	line := l.marker(i == l.selected) + rank + "  " + score + "  " + cmd
	if len(parts) > 0 {
		line += "  " + strings.Join(parts, " ")
	}
	return strings.TrimRight(line, " ")
}

func (l *PossibilityList) marker(selected bool) string {
	switch {
	case !l.selectable:
		return ""
	case selected:
		return l.theme.Selected.Render(">") + " "
	default:
		return "  "
	}
}
