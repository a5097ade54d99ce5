// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package grammar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// COMMAND FILE
// =============================================================================

// File is the decoded form of a command file.
//
// TOML layout:
//
//	[[type]]
//	name = "text"
//	needs_data = true
//
//	[[bundle]]
//	name = "time-range"
//	  [[bundle.argument]]
//	  name = "since"
//	  type = "text"
//
//	[[command]]
//	command = "show log"
//	bundle = ["time-range"]
//	  [[command.argument]]
//	  name = "file"
//	  type = "text"
//	  nokeyword = true
//
// JSON files use "types", "bundles" and "commands" arrays with the same
// record fields.
type File struct {
	Types    []Type        `toml:"type" json:"types"`
	Bundles  []Bundle      `toml:"bundle" json:"bundles"`
	Commands []CommandSpec `toml:"command" json:"commands"`
}

// Format identifies a command file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks a format from a file extension, defaulting to TOML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// Handler attaches callbacks to a command loaded from a file.
type Handler struct {
	Execute  ExecuteFunc
	Complete CompleteFunc
}

type loadOptions struct {
	handlers map[string]Handler
	fallback *Handler
}

// LoadOption configures Apply and the Load functions.
type LoadOption func(*loadOptions)

// WithHandler binds callbacks to the command with the given phrase.
func WithHandler(phrase string, h Handler) LoadOption {
	return func(o *loadOptions) {
		o.handlers[strings.Join(strings.Fields(phrase), " ")] = h
	}
}

// WithHandlers binds several handlers at once.
func WithHandlers(handlers map[string]Handler) LoadOption {
	return func(o *loadOptions) {
		for phrase, h := range handlers {
			o.handlers[strings.Join(strings.Fields(phrase), " ")] = h
		}
	}
}

// WithDefaultHandler binds h to every command that has no handler of its
// own.
func WithDefaultHandler(h Handler) LoadOption {
	return func(o *loadOptions) {
		o.fallback = &h
	}
}

// Decode parses command file contents.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse JSON command file: %w", err)
		}
	case FormatTOML, "":
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML command file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown keys in command file: %v", undecoded)
		}
	default:
		return nil, fmt.Errorf("unsupported command file format %q", format)
	}
	return &f, nil
}

// Apply registers the file's types, then bundles, then commands, so that
// references between them resolve.
func (f *File) Apply(reg *Registry, opts ...LoadOption) error {
	o := loadOptions{handlers: make(map[string]Handler)}
	for _, opt := range opts {
		opt(&o)
	}

	for _, t := range f.Types {
		if err := reg.AddType(t); err != nil {
			return err
		}
	}
	for _, b := range f.Bundles {
		if err := reg.AddBundle(b); err != nil {
			return err
		}
	}

	bound := make(map[string]bool, len(o.handlers))
	for _, spec := range f.Commands {
		phrase := strings.Join(strings.Fields(spec.Command), " ")
		if h, ok := o.handlers[phrase]; ok {
			spec.Execute = h.Execute
			spec.Complete = h.Complete
			bound[phrase] = true
		} else if o.fallback != nil {
			spec.Execute = o.fallback.Execute
			spec.Complete = o.fallback.Complete
		}
		if _, err := reg.AddCommand(spec); err != nil {
			return err
		}
	}

	for phrase := range o.handlers {
		if !bound[phrase] {
			reg.logger.Warn("handler for unknown command", "command", phrase)
		}
	}
	return nil
}

// LoadFile reads a command file, choosing the format from its extension,
// and registers its contents.
func LoadFile(reg *Registry, path string, opts ...LoadOption) error {
	return loadAs(reg, path, FormatFromPath(path), opts)
}

// LoadTOML loads a TOML command file regardless of extension.
func LoadTOML(reg *Registry, path string, opts ...LoadOption) error {
	return loadAs(reg, path, FormatTOML, opts)
}

// LoadJSON loads a JSON command file regardless of extension.
func LoadJSON(reg *Registry, path string, opts ...LoadOption) error {
	return loadAs(reg, path, FormatJSON, opts)
}

func loadAs(reg *Registry, path string, format Format, opts []LoadOption) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read command file: %w", err)
	}
	f, err := Decode(data, format)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Apply(reg, opts...); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
