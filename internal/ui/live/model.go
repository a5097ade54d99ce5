// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package live

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jeranaias/cmdline/internal/commands"
	"github.com/jeranaias/cmdline/internal/parser"
	"github.com/jeranaias/cmdline/internal/ui/components"
	"github.com/jeranaias/cmdline/internal/ui/styles"
)

// =============================================================================
// SOURCE
// =============================================================================

// Source supplies the current parser. It is asked again on every
// keystroke, so a reloaded grammar takes effect immediately.
type Source interface {
	Parser() *parser.Parser
}

// SourceFunc adapts a function to Source.
type SourceFunc func() *parser.Parser

// Parser implements Source.
func (f SourceFunc) Parser() *parser.Parser { return f() }

// ReloadMsg reports that the command file was reloaded, or failed to.
type ReloadMsg struct {
	Commands int
	Err      error
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures a Model.
type Options struct {
	Theme      *styles.Theme
	Logger     *log.Logger
	Prompt     string
	MaxResults int
}

// Model is the live parsing view.
type Model struct {
	ctx    context.Context
	source Source
	theme  *styles.Theme
	logger *log.Logger
	keys   KeyMap
	help   help.Model

	input textinput.Model
	list  *components.PossibilityList
	popup *components.CompletionPopup

	result    *parser.Result
	lastInput string
	status    string
	chosen    string
	width     int
}

// New creates a live view over source.
func New(ctx context.Context, source Source, opts Options) Model {
	if opts.Theme == nil {
		opts.Theme = styles.Plain()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Prompt == "" {
		opts.Prompt = "> "
	}

	ti := textinput.New()
	ti.Prompt = opts.Prompt
	ti.PromptStyle = opts.Theme.Prompt
	ti.Placeholder = "start typing a command..."
	ti.CharLimit = 1024
	ti.Focus()

	m := Model{
		ctx:    ctx,
		source: source,
		theme:  opts.Theme,
		logger: opts.Logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  ti,
		list:   components.NewPossibilityList(opts.Theme, opts.MaxResults),
		popup:  components.NewCompletionPopup(opts.Theme),
		width:  80,
	}
	m.list.SetSelectable(true)
	m.refresh(true)
	return m
}

// Chosen returns the accepted input line, or "" if the user quit.
func (m Model) Chosen() string {
	return m.chosen
}

// Value returns the current input line.
func (m Model) Value() string {
	return m.input.Value()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 10)
		m.list.SetWidth(msg.Width)
		m.popup.SetWidth(min(msg.Width, 80))
		m.help.Width = msg.Width
		return m, nil

	case ReloadMsg:
		if msg.Err != nil {
			m.status = m.theme.RenderWarning("reload failed, keeping previous commands: " + msg.Err.Error())
		} else {
			m.status = m.theme.RenderInfo("reloaded " + strconv.Itoa(msg.Commands) + " commands")
		}
		m.refresh(true)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Accept):
		return m.accept()

	case key.Matches(msg, m.keys.Complete):
		if sel := m.popup.Selected(); sel != nil {
			m.input.SetValue(sel.Value + " ")
			m.input.CursorEnd()
			m.refresh(false)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextSuggest):
		m.popup.Next()
		return m, nil

	case key.Matches(msg, m.keys.PrevSuggest):
		m.popup.Prev()
		return m, nil

	case key.Matches(msg, m.keys.NextRow):
		m.list.Next()
		return m, nil

	case key.Matches(msg, m.keys.PrevRow):
		m.list.Prev()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.input.SetValue("")
		m.status = ""
		m.refresh(false)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh(false)
	return m, cmd
}

func (m Model) accept() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return m, nil
	}

	d := commands.NewDispatcher(m.source.Parser(), commands.WithDispatchLogger(m.logger))
	if _, _, err := d.Resolve(value); err != nil {
		m.status = m.theme.RenderError(err.Error())
		return m, nil
	}

	m.chosen = value
	return m, tea.Quit
}

// refresh re-parses the input when it changed, or always when force is set.
func (m *Model) refresh(force bool) {
	value := m.input.Value()
	if value == m.lastInput && !force {
		return
	}
	m.lastInput = value

	p := m.source.Parser()
	m.result = p.Parse(value)
	m.list.SetResult(m.result)
	m.popup.SetCompletions(commands.NewCompleter(p).Complete(m.ctx, value))
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.popup.HasCompletions() {
		b.WriteString(m.popup.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if strings.TrimSpace(m.input.Value()) == "" {
		b.WriteString(m.theme.Muted.Render("type to see interpretations"))
	} else {
		b.WriteString(m.list.View())
		if sel := m.list.Selected(); sel != nil {
			b.WriteString("\n\n")
			b.WriteString(m.theme.Usage.Render("usage: " + sel.Command.Usage()))
			if sel.Command.Help != "" {
				b.WriteString("\n")
				b.WriteString(m.theme.Description.Render(sel.Command.Help))
			}
		}
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

// =============================================================================
// PROGRAM
// =============================================================================

// Run starts the live view and blocks until the user accepts a line or
// quits. Reload notifications from reloads are forwarded to the view. The
// view stops when ctx is cancelled.
func Run(ctx context.Context, m Model, reloads <-chan ReloadMsg, opts ...tea.ProgramOption) (Model, error) {
	prog := tea.NewProgram(m, opts...)

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				prog.Quit()
				return
			case msg, ok := <-reloads:
				if !ok {
					reloads = nil
					continue
				}
				prog.Send(msg)
			}
		}
	}()

	final, err := prog.Run()
	if err != nil {
		return m, err
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return m, nil
}
