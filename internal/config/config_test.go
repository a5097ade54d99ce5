// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/cmdline/internal/parser"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CMDLINE_GRAMMAR", "CMDLINE_WATCH", "CMDLINE_LOG_LEVEL", "CMDLINE_MAX_RESULTS", "NO_COLOR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Default()

	assert.Equal(t, filepath.Join(home, ".cmdline", "commands.toml"), cfg.Grammar.Path)
	assert.True(t, cfg.Grammar.Watch)
	assert.Equal(t, parser.DefaultWeights(), cfg.Weights())
	assert.Equal(t, 10, cfg.UI.MaxResults)
	assert.Equal(t, "auto", cfg.UI.Color)
	assert.Equal(t, log.WarnLevel, cfg.LogLevel())
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOMLKeepsUnsetDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
[grammar]
path = "/etc/cmdline/junos.toml"

[scoring]
keyword = 20
multiple_words = 1

[log]
level = "debug"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "/etc/cmdline/junos.toml", cfg.Grammar.Path)
	assert.True(t, cfg.Grammar.Watch)
	w := cfg.Weights()
	assert.Equal(t, 20, w.Keyword)
	assert.Equal(t, 1, w.MultipleWords)
	assert.Equal(t, 5, w.Exact)
	assert.Equal(t, 8, w.MissingKeyword)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
}

func TestLoadJSON(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", `{
  "scoring": {"order": 4},
  "ui": {"max_results": 3, "color": "never"}
}`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Scoring.Order)
	assert.Equal(t, 10, cfg.Scoring.Keyword)
	assert.Equal(t, 3, cfg.UI.MaxResults)
	assert.Equal(t, "never", cfg.UI.Color)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "config.toml", "[scoring]\nkeywrd = 3\n"},
		{"json", "config.json", `{"scoring": {"keywrd": 3}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			_, err := LoadFromPath(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoadSearchOrder(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".cmdline")
	require.NoError(t, os.MkdirAll(dir, 0755))

	// No files: defaults.
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.UI.MaxResults)

	// JSON only.
	writeFile(t, dir, "config.json", `{"ui": {"max_results": 4}}`)
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.UI.MaxResults)

	// TOML wins over JSON.
	writeFile(t, dir, "config.toml", "[ui]\nmax_results = 7\n")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.UI.MaxResults)
}

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CMDLINE_GRAMMAR", "/tmp/grammar.json")
	t.Setenv("CMDLINE_WATCH", "false")
	t.Setenv("CMDLINE_LOG_LEVEL", "error")
	t.Setenv("CMDLINE_MAX_RESULTS", "2")
	t.Setenv("NO_COLOR", "1")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "/tmp/grammar.json", cfg.Grammar.Path)
	assert.False(t, cfg.Grammar.Watch)
	assert.Equal(t, log.ErrorLevel, cfg.LogLevel())
	assert.Equal(t, 2, cfg.UI.MaxResults)
	assert.Equal(t, "never", cfg.UI.Color)
}

func TestApplyEnvOverridesIgnoresBadNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("CMDLINE_MAX_RESULTS", "lots")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, 10, cfg.UI.MaxResults)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{"valid", func(*Config) {}, nil},
		{"negative weight", func(c *Config) { c.Scoring.Exact = -1 }, []string{"scoring.exact"}},
		{"negative max results", func(c *Config) { c.UI.MaxResults = -5 }, []string{"ui.max_results"}},
		{"bad color", func(c *Config) { c.UI.Color = "sometimes" }, []string{"ui.color"}},
		{"bad level", func(c *Config) { c.Log.Level = "chatty" }, []string{"log.level"}},
		{
			"several",
			func(c *Config) {
				c.Scoring.Keyword = -1
				c.Scoring.MissingKeyword = -2
				c.UI.Color = ""
			},
			[]string{"scoring.keyword", "scoring.missing_keyword", "ui.color"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			var got []string
			for _, e := range verrs {
				got = append(got, e.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestLogLevelFallback(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "nonsense"
	assert.Equal(t, log.WarnLevel, cfg.LogLevel())
}

func TestSaveTOMLRoundTrip(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Grammar.Path = "/srv/commands.toml"
	cfg.Scoring.Order = 9
	cfg.UI.Prompt = "> "
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/commands.toml", filepath.Join(home, "commands.toml")},
		{"/abs/path.toml", "/abs/path.toml"},
		{"rel/~x.toml", "rel/~x.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}

	cfg := Default()
	cfg.Grammar.Path = "~/g.toml"
	assert.Equal(t, filepath.Join(home, "g.toml"), cfg.GrammarPath())
}
