// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

import "strings"

// SplitTokens splits input on runs of whitespace. There is no quoting or
// escaping; multi-word values are expressed with multiple-words arguments.
func SplitTokens(input string) []string {
	return strings.Fields(input)
}
