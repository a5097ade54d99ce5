// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package live

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard bindings for the live view.
type KeyMap struct {
	Accept      key.Binding
	Complete    key.Binding
	NextSuggest key.Binding
	PrevSuggest key.Binding
	NextRow     key.Binding
	PrevRow     key.Binding
	Clear       key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete"),
		),
		NextSuggest: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "next suggestion"),
		),
		PrevSuggest: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "prev suggestion"),
		),
		NextRow: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "next interpretation"),
		),
		PrevRow: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "prev interpretation"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Complete, k.NextSuggest, k.NextRow, k.Quit}
}
