// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for cmdline.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - GrammarConfig: Where the command file lives and whether to watch it
//   - ScoringConfig: Parser scoring weights
//   - UIConfig, LogConfig: Presentation and logging
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CMDLINE_*, NO_COLOR)
//   - ~/.cmdline/config.toml
//   - ~/.cmdline/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	p := parser.New(registry, parser.WithWeights(cfg.Weights()))
package config
