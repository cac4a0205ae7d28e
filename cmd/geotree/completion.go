// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/geotree/internal/errors"
)

type completionFlag struct {
	name, desc string
	value      bool // takes an argument
}

type completionCommand struct {
	name, desc string
	flags      []completionFlag
}

var globalCompletionFlags = []completionFlag{
	{"config", "Path to .geotree/project.yaml", true},
	{"data-dir", "Data directory", true},
	{"json", "Output as JSON", false},
	{"no-color", "Disable colored output", false},
	{"debug", "Enable debug logging", false},
	{"quiet", "Suppress progress output", false},
	{"metrics-file", "Write Prometheus metrics to this file", true},
	{"version", "Show version and exit", false},
}

var completionCommands = []completionCommand{
	{"init", "Create .geotree/project.yaml and the data directory", []completionFlag{
		{"force", "Overwrite existing configuration", false},
		{"yes", "Use all defaults", false},
		{"levels", "Hierarchy level names", true},
		{"leaf-file", "Leaf CSV file name", true},
	}},
	{"ls", "List all records", nil},
	{"filter", "Filter records", []completionFlag{
		{"name", "Name contains this text", true},
		{"level", "First hierarchy level value", true},
		{"min", "Minimum population", true},
		{"max", "Maximum population", true},
	}},
	{"sort", "List records sorted by a field", []completionFlag{
		{"by", "Sort key (name, population, area)", true},
		{"desc", "Descending order", false},
	}},
	{"stats", "Show aggregate statistics", nil},
	{"add", "Add a record", []completionFlag{
		{"name", "Record name", true},
		{"population", "Population", true},
		{"area", "Area", true},
	}},
	{"edit", "Change a record", []completionFlag{
		{"name", "New name", true},
		{"population", "New population", true},
		{"area", "New area", true},
		{"pick", "Choose among same-named records", true},
	}},
	{"rm", "Delete a record (destructive!)", []completionFlag{
		{"yes", "Skip confirmation prompt", false},
		{"pick", "Choose among same-named records", true},
	}},
	{"status", "Show data directory status", nil},
	{"shell", "Start the interactive menu", nil},
	{"completion", "Generate shell completion script", nil},
}

func longFlags(flags []completionFlag) string {
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = "--" + f.name
	}
	return strings.Join(names, " ")
}

func bashCompletion() string {
	var b strings.Builder
	names := make([]string, len(completionCommands))
	for i, c := range completionCommands {
		names[i] = c.name
	}

	b.WriteString(`#!/bin/bash

# Bash completion script for geotree
# Installation:
#   source <(geotree completion bash)

_geotree_completion() {
    local cur commands
    commands="` + strings.Join(names, " ") + `"
    cur="${COMP_WORDS[COMP_CWORD]}"

    if [ $COMP_CWORD -eq 1 ]; then
        if [[ ${cur} == -* ]] ; then
            COMPREPLY=( $(compgen -W "` + longFlags(globalCompletionFlags) + `" -- ${cur}) )
        else
            COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
        fi
        return 0
    fi

    case "${COMP_WORDS[1]}" in
`)
	for _, c := range completionCommands {
		switch {
		case c.name == "completion":
			b.WriteString("        completion)\n            COMPREPLY=( $(compgen -W \"bash zsh fish\" -- ${cur}) )\n            ;;\n")
		case len(c.flags) > 0:
			fmt.Fprintf(&b, "        %s)\n            [[ ${cur} == -* ]] && COMPREPLY=( $(compgen -W \"%s\" -- ${cur}) )\n            ;;\n",
				c.name, longFlags(c.flags))
		}
	}
	b.WriteString(`    esac
}

complete -F _geotree_completion geotree
`)
	return b.String()
}

func zshFlag(f completionFlag) string {
	if f.value {
		return fmt.Sprintf("'--%s[%s]:%s:'", f.name, f.desc, f.name)
	}
	return fmt.Sprintf("'--%s[%s]'", f.name, f.desc)
}

func zshCompletion() string {
	var b strings.Builder
	b.WriteString(`#compdef geotree

# Zsh completion script for geotree
# Installation:
#   geotree completion zsh > "${fpath[1]}/_geotree"

_geotree() {
    local -a commands
    commands=(
`)
	for _, c := range completionCommands {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.name, c.desc)
	}
	b.WriteString("    )\n\n    _arguments -C \\\n")
	for _, f := range globalCompletionFlags {
		fmt.Fprintf(&b, "        %s \\\n", zshFlag(f))
	}
	b.WriteString(`        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
`)
	for _, c := range completionCommands {
		switch {
		case c.name == "completion":
			b.WriteString("                completion)\n                    _arguments '1:shell:(bash zsh fish)'\n                    ;;\n")
		case len(c.flags) > 0:
			parts := make([]string, len(c.flags))
			for i, f := range c.flags {
				parts[i] = zshFlag(f)
			}
			fmt.Fprintf(&b, "                %s)\n                    _arguments %s\n                    ;;\n",
				c.name, strings.Join(parts, " "))
		}
	}
	b.WriteString(`            esac
            ;;
    esac
}

_geotree
`)
	return b.String()
}

func fishCompletion() string {
	var b strings.Builder
	b.WriteString(`# Fish completion script for geotree
# Installation:
#   geotree completion fish > ~/.config/fish/completions/geotree.fish

`)
	for _, c := range completionCommands {
		fmt.Fprintf(&b, "complete -c geotree -f -n \"__fish_use_subcommand\" -a %q -d %q\n", c.name, c.desc)
	}
	b.WriteString("\n")
	for _, f := range globalCompletionFlags {
		fmt.Fprintf(&b, "complete -c geotree -l %s -d %q", f.name, f.desc)
		if f.value {
			b.WriteString(" -r")
		}
		b.WriteString("\n")
	}
	for _, c := range completionCommands {
		for _, f := range c.flags {
			fmt.Fprintf(&b, "complete -c geotree -n \"__fish_seen_subcommand_from %s\" -l %s -d %q", c.name, f.name, f.desc)
			if f.value {
				b.WriteString(" -r")
			}
			b.WriteString("\n")
		}
	}
	for _, sh := range []string{"bash", "zsh", "fish"} {
		fmt.Fprintf(&b, "complete -c geotree -n \"__fish_seen_subcommand_from completion\" -f -a %q\n", sh)
	}
	return b.String()
}

// runCompletion executes the 'completion' command, writing a completion
// script for bash, zsh or fish to stdout.
//
// Examples:
//
//	source <(geotree completion bash)
//	geotree completion zsh > "${fpath[1]}/_geotree"
//	geotree completion fish | source
func runCompletion(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("completion", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: geotree completion <shell>

Generate shell completion scripts for bash, zsh, or fish.

Examples:
  source <(geotree completion bash)
  geotree completion zsh > "${fpath[1]}/_geotree"
  geotree completion fish > ~/.config/fish/completions/geotree.fish
`)
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return errors.NewInputError(
			"Invalid arguments",
			"The completion command requires exactly one argument: the shell name",
			"Run 'geotree completion bash', 'geotree completion zsh', or 'geotree completion fish'",
		)
	}

	var script string
	switch shell := fs.Arg(0); shell {
	case "bash":
		script = bashCompletion()
	case "zsh":
		script = zshCompletion()
	case "fish":
		script = fishCompletion()
	default:
		return errors.NewInputError(
			"Unsupported shell",
			fmt.Sprintf("Shell '%s' is not supported. Valid options: bash, zsh, fish", shell),
			"Run 'geotree completion bash', 'geotree completion zsh', or 'geotree completion fish'",
		)
	}
	_, err := io.WriteString(stdout, script)
	return err
}
