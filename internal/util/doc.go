// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the config, cli and ui
// packages.
//
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - StringWidth, TruncateWidth, PadRight: display-width aware layout for
//     possibility tables, backed by go-runewidth
package util
