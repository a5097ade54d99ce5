// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package live provides a Bubble Tea view that re-parses the input line on
// every keystroke and shows the ranked interpretations and completions as
// the user types.
//
// Enter accepts the line when it resolves to a single command; the caller
// reads it back with Model.Chosen and dispatches it after the program exits.
package live
