// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/jeranaias/cmdline/internal/parser"
	"github.com/jeranaias/cmdline/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete cmdline configuration.
type Config struct {
	Grammar GrammarConfig `toml:"grammar" json:"grammar"`
	Scoring ScoringConfig `toml:"scoring" json:"scoring"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// GrammarConfig locates the command file.
type GrammarConfig struct {
	// Path to a TOML or JSON command file; "~" is expanded
	Path string `toml:"path" json:"path"`
	// Watch reloads the command file when it changes (repl and live only)
	Watch bool `toml:"watch" json:"watch"`
}

// ScoringConfig mirrors parser.Weights.
type ScoringConfig struct {
	Keyword        int `toml:"keyword" json:"keyword"`
	Exact          int `toml:"exact" json:"exact"`
	Order          int `toml:"order" json:"order"`
	NoKeyword      int `toml:"nokeyword" json:"nokeyword"`
	NeedsData      int `toml:"needs_data" json:"needs_data"`
	MultipleWords  int `toml:"multiple_words" json:"multiple_words"`
	MissingKeyword int `toml:"missing_keyword" json:"missing_keyword"`
}

// UIConfig controls output.
type UIConfig struct {
	// MaxResults caps how many interpretations are shown
	MaxResults int `toml:"max_results" json:"max_results"`
	// Color is "auto", "always" or "never"
	Color string `toml:"color" json:"color"`
	// Prompt is the repl prompt
	Prompt string `toml:"prompt" json:"prompt"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	w := parser.DefaultWeights()
	grammarPath := ""
	if dir, err := ConfigDir(); err == nil {
		grammarPath = filepath.Join(dir, "commands.toml")
	}
	return &Config{
		Grammar: GrammarConfig{
			Path:  grammarPath,
			Watch: true,
		},
		Scoring: ScoringConfig{
			Keyword:        w.Keyword,
			Exact:          w.Exact,
			Order:          w.Order,
			NoKeyword:      w.NoKeyword,
			NeedsData:      w.NeedsData,
			MultipleWords:  w.MultipleWords,
			MissingKeyword: w.MissingKeyword,
		},
		UI: UIConfig{
			MaxResults: 10,
			Color:      "auto",
			Prompt:     "cmdline> ",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Weights converts the scoring section to parser weights.
func (c *Config) Weights() parser.Weights {
	return parser.Weights{
		Keyword:        c.Scoring.Keyword,
		Exact:          c.Scoring.Exact,
		Order:          c.Scoring.Order,
		NoKeyword:      c.Scoring.NoKeyword,
		NeedsData:      c.Scoring.NeedsData,
		MultipleWords:  c.Scoring.MultipleWords,
		MissingKeyword: c.Scoring.MissingKeyword,
	}
}

// LogLevel returns the configured log level, or warn if it does not parse.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// GrammarPath returns the command file path with "~" expanded.
func (c *Config) GrammarPath() string {
	return ExpandHome(c.Grammar.Path)
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the cmdline configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".cmdline"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path on top of the
// defaults, then applies environment overrides and validates.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config keys: %v", undecoded)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// SaveTOML writes cfg to path atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# cmdline configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - CMDLINE_GRAMMAR: overrides grammar.path
//   - CMDLINE_WATCH: overrides grammar.watch
//   - CMDLINE_LOG_LEVEL: overrides log.level
//   - CMDLINE_MAX_RESULTS: overrides ui.max_results
//   - NO_COLOR: forces ui.color to "never"
func (c *Config) ApplyEnvOverrides() {
	if path := os.Getenv("CMDLINE_GRAMMAR"); path != "" {
		c.Grammar.Path = path
	}

	if watch := os.Getenv("CMDLINE_WATCH"); watch != "" {
		c.Grammar.Watch = watch == "1" || strings.ToLower(watch) == "true"
	}

	if level := os.Getenv("CMDLINE_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	if max := os.Getenv("CMDLINE_MAX_RESULTS"); max != "" {
		if n, err := strconv.Atoi(max); err == nil {
			c.UI.MaxResults = n
		}
	}

	if os.Getenv("NO_COLOR") != "" {
		c.UI.Color = "never"
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	weights := []struct {
		field string
		value int
	}{
		{"scoring.keyword", c.Scoring.Keyword},
		{"scoring.exact", c.Scoring.Exact},
		{"scoring.order", c.Scoring.Order},
		{"scoring.nokeyword", c.Scoring.NoKeyword},
		{"scoring.needs_data", c.Scoring.NeedsData},
		{"scoring.multiple_words", c.Scoring.MultipleWords},
		{"scoring.missing_keyword", c.Scoring.MissingKeyword},
	}
	for _, w := range weights {
		if w.value < 0 {
			errs = append(errs, ValidationError{
				Field:   w.field,
				Message: fmt.Sprintf("must not be negative, got %d", w.value),
			})
		}
	}

	if c.UI.MaxResults < 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.max_results",
			Message: fmt.Sprintf("must not be negative, got %d", c.UI.MaxResults),
		})
	}

	switch strings.ToLower(c.UI.Color) {
	case "auto", "always", "never":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.color",
			Message: fmt.Sprintf("invalid value '%s', must be one of: auto, always, never", c.UI.Color),
		})
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
