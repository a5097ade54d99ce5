// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Subcommand routing and global flags.

package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the subcommand to execute.
type Command int

const (
	CmdRepl Command = iota
	CmdParse
	CmdCheck
	CmdLive
	CmdHelp
	CmdVersion
)

// String returns the subcommand name.
func (c Command) String() string {
	switch c {
	case CmdRepl:
		return "repl"
	case CmdParse:
		return "parse"
	case CmdCheck:
		return "check"
	case CmdLive:
		return "live"
	case CmdHelp:
		return "help"
	case CmdVersion:
		return "version"
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath  string
	GrammarPath string
	JSON        bool
	Verbose     bool
	NoColor     bool
	MaxResults  int

	// Run executes the winning command instead of listing interpretations
	Run bool

	// Input holds the positional arguments after the subcommand: the line
	// to parse, the file to check, or the phrase to describe.
	Input []string

	// Raw holds every argument as given
	Raw []string
}

// Line joins Input into one input line.
func (a Args) Line() string {
	return strings.Join(a.Input, " ")
}

var (
	boolFlags  = []string{"json", "run", "verbose", "v", "no-color", "help", "h", "version"}
	valueFlags = []string{"config", "grammar", "max"}
)

const usageText = `cmdline - interpret abbreviated command lines against a command grammar
Version: %s

USAGE:
  cmdline [flags] <subcommand> [args]
  cmdline [flags] <input...>          same as "parse <input...>"

SUBCOMMANDS:
  parse <input...>    Show every interpretation of input, best first
  check <file>        Validate a command file and list its commands
  repl                Interactive prompt with completion (default)
  live                Full-screen view that re-parses on every keystroke
  help [phrase]       Show help, or the usage of one command
  version             Show version information

FLAGS:
  --grammar <file>    Command file (overrides grammar.path)
  --config <file>     Configuration file (default ~/.cmdline/config.toml)
  --max <n>           Show at most n interpretations
  --run               Execute the winning command instead of listing
  --json              Machine-readable output for parse, check and version
  --no-color          Disable colored output
  -v, --verbose       Debug logging

EXAMPLES:
  cmdline parse sh int stat
  cmdline --grammar examples/junos.toml parse --json show log since today
  cmdline check examples/junos.toml
  cmdline help show log

ENVIRONMENT:
  CMDLINE_GRAMMAR, CMDLINE_WATCH, CMDLINE_LOG_LEVEL, CMDLINE_MAX_RESULTS, NO_COLOR
`

// PrintUsage writes the usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// VersionData is the JSON form of the version subcommand.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// HandleVersion writes version information to w.
func HandleVersion(w io.Writer, args Args) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Write(w)
	}
	fmt.Fprintf(w, "cmdline version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	return nil
}

// Parse parses command-line arguments (without the program name) and
// returns the subcommand and its arguments.
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, boolFlags...)
	args := Args{
		ConfigPath:  p.Flag("config"),
		GrammarPath: p.Flag("grammar"),
		JSON:        p.BoolFlag("json"),
		Verbose:     p.BoolFlag("verbose") || p.BoolFlag("v"),
		NoColor:     p.BoolFlag("no-color"),
		Run:         p.BoolFlag("run"),
		Raw:         argv,
	}

	if unknown := p.Unknown(append(boolFlags, valueFlags...)...); len(unknown) > 0 {
		return CmdHelp, args, &UsageError{
			Message: "unknown flag " + strings.Join(unknown, ", "),
			Usage:   "cmdline help",
		}
	}
	if p.HasFlag("max") {
		n, err := p.FlagInt("max")
		if err != nil {
			return CmdHelp, args, err
		}
		if n < 0 {
			return CmdHelp, args, &UsageError{Message: "--max must not be negative"}
		}
		args.MaxResults = n
	}

	if p.BoolFlag("help") || p.BoolFlag("h") {
		args.Input = p.PositionalFrom(0)
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version") {
		return CmdVersion, args, nil
	}

	if p.PositionalCount() == 0 {
		return CmdRepl, args, nil
	}

	sub := p.Positional(0)
	args.Input = p.PositionalFrom(1)

	switch strings.ToLower(sub) {
	case "parse":
		if len(args.Input) == 0 {
			return CmdParse, args, &UsageError{Message: "parse needs an input line", Usage: "cmdline parse <input...>"}
		}
		return CmdParse, args, nil
	case "check":
		if len(args.Input) > 1 {
			return CmdCheck, args, &UsageError{Message: "check takes one file", Usage: "cmdline check [file]"}
		}
		return CmdCheck, args, nil
	case "repl":
		return CmdRepl, args, nil
	case "live":
		return CmdLive, args, nil
	case "help":
		return CmdHelp, args, nil
	case "version":
		return CmdVersion, args, nil
	}

	// Anything else is input to interpret.
	args.Input = p.PositionalFrom(0)
	return CmdParse, args, nil
}
