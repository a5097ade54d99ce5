// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components renders parser output for terminals.

  - PossibilityList (possibilities.go) - Ranked table of interpretations with
    score, command, bound arguments and missing keywords.
  - CompletionPopup (completion.go) - Selectable list of completion
    suggestions used by the live view.

Components take a *styles.Theme, so the same code produces colored output on
a terminal and plain text in pipes and tests.
*/
package components
