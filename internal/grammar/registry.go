// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package grammar

import (
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds types, bundles and commands. It is populated once and then
// read by any number of parse requests.
type Registry struct {
	types    map[string]*Type
	bundles  map[string]*Bundle
	commands []*Command
	byName   map[string]*Command
	logger   *log.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration warnings.
func WithLogger(logger *log.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates a registry holding only the built-in keyword type.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		types:   make(map[string]*Type),
		bundles: make(map[string]*Bundle),
		byName:  make(map[string]*Command),
		logger:  log.NewWithOptions(os.Stderr, log.Options{Prefix: "grammar"}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.types[KeywordType] = &Type{Name: KeywordType}
	return r
}

// AddType stores a type by name, replacing any previous type of that name.
func (r *Registry) AddType(t Type) error {
	if t.Name == "" {
		return &RecordError{Kind: "type", Err: ErrEmptyName}
	}
	r.types[t.Name] = &t
	return nil
}

// AddBundle stores a bundle by name. The argument list is copied.
func (r *Registry) AddBundle(b Bundle) error {
	if b.Name == "" {
		return &RecordError{Kind: "bundle", Err: ErrEmptyName}
	}
	for _, spec := range b.Arguments {
		if err := checkArgumentSpec(spec); err != nil {
			return &RecordError{Kind: "bundle", Name: b.Name, Arg: spec.Name, Err: err}
		}
	}
	b.Arguments = append([]ArgumentSpec(nil), b.Arguments...)
	r.bundles[b.Name] = &b
	return nil
}

// AddCommand registers a command. The invocation phrase becomes leading
// keyword arguments, followed by the explicit arguments and then a copy of
// each referenced bundle's arguments.
//
// Unknown bundles and argument types are logged and skipped over; the
// command is still registered. Malformed records return an error.
func (r *Registry) AddCommand(spec CommandSpec) (*Command, error) {
	words := strings.Fields(spec.Command)
	if len(words) == 0 {
		return nil, &RecordError{Kind: "command", Name: spec.Command, Err: ErrEmptyPhrase}
	}
	name := strings.Join(words, " ")
	if _, exists := r.byName[name]; exists {
		return nil, &RecordError{Kind: "command", Name: name, Err: ErrDuplicateCommand}
	}

	cmd := &Command{
		Name:     name,
		Words:    words,
		Help:     spec.Help,
		Bundles:  append([]string(nil), spec.Bundles...),
		Execute:  spec.Execute,
		Complete: spec.Complete,
		byName:   make(map[string]*Argument),
	}

	specs := make([]ArgumentSpec, 0, len(words)+len(spec.Arguments))
	for _, w := range words {
		specs = append(specs, ArgumentSpec{Name: w, Type: KeywordType})
	}
	specs = append(specs, spec.Arguments...)
	synthetic := len(words)

	for _, bundleName := range spec.Bundles {
		bundle, ok := r.bundles[bundleName]
		if !ok {
			r.logger.Warn("unknown bundle", "command", name, "bundle", bundleName)
			continue
		}
		specs = append(specs, bundle.Arguments...)
	}

	for i, s := range specs {
		if err := checkArgumentSpec(s); err != nil {
			return nil, &RecordError{Kind: "command", Name: name, Arg: s.Name, Err: err}
		}
		if _, dup := cmd.byName[s.Name]; dup {
			return nil, &RecordError{Kind: "command", Name: name, Arg: s.Name, Err: ErrDuplicateArgument}
		}

		arg := &Argument{
			Name:          s.Name,
			TypeName:      s.Type,
			Help:          s.Help,
			NoKeyword:     s.NoKeyword,
			MultipleWords: s.MultipleWords,
			Mandatory:     s.Mandatory,
			Index:         i,
			Synthetic:     i < synthetic,
		}
		if t, ok := r.types[s.Type]; ok {
			arg.Type = t
		} else {
			r.logger.Warn("unknown argument type", "command", name, "argument", s.Name, "type", s.Type)
		}

		cmd.Arguments = append(cmd.Arguments, arg)
		cmd.byName[arg.Name] = arg
	}

	r.commands = append(r.commands, cmd)
	r.byName[name] = cmd
	return cmd, nil
}

func checkArgumentSpec(s ArgumentSpec) error {
	if s.Name == "" {
		return ErrEmptyName
	}
	if strings.ContainsFunc(s.Name, unicode.IsSpace) {
		return ErrInvalidName
	}
	if s.Type == "" {
		return ErrMissingType
	}
	return nil
}

// =============================================================================
// LOOKUPS
// =============================================================================

// Commands returns every registered command in registration order.
func (r *Registry) Commands() []*Command {
	return append([]*Command(nil), r.commands...)
}

// Command returns a command by its invocation phrase, or nil.
func (r *Registry) Command(phrase string) *Command {
	return r.byName[strings.Join(strings.Fields(phrase), " ")]
}

// Type returns a registered type, or nil.
func (r *Registry) Type(name string) *Type {
	return r.types[name]
}

// Bundle returns a registered bundle, or nil.
func (r *Registry) Bundle(name string) *Bundle {
	return r.bundles[name]
}

// TypeNames returns the registered type names, sorted. The built-in keyword
// type is included.
func (r *Registry) TypeNames() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BundleNames returns the registered bundle names, sorted.
func (r *Registry) BundleNames() []string {
	names := make([]string, 0, len(r.bundles))
	for name := range r.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.commands)
}

// Logger returns the registry's logger.
func (r *Registry) Logger() *log.Logger {
	return r.logger
}
