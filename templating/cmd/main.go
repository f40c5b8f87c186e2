// Binary template_tango renders {{expr}} templates against
// variables gathered from stamp info files, variable files,
// imports and explicit NAME=VALUE assignments.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonp92/TemplateTango/templating"
	"github.com/jonp92/TemplateTango/variables"
)

type arrayFlags []string

func (af *arrayFlags) String() string {
	return ""
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

//nolint:funlen // CLI flag setup is inherently long
func run() error {
	const errCtx = "template_tango"

	var (
		stampInfoFile arrayFlags
		variable      arrayFlags
		variablesFile arrayFlags
		imports       arrayFlags
		output        string
		tpl           string
		executable    bool
		startTag      string
		endTag        string
		maxIterations int
		stringResults bool
		digest        bool
		verbose       bool
	)

	flag.Var(
		&stampInfoFile,
		"stamp_info_file",
		"Stamp info file path (repeatable)",
	)

	flag.Var(
		&variable,
		"variable",
		"Variable in NAME=VALUE format (repeatable)",
	)

	flag.Var(
		&variablesFile,
		"variables_file",
		"JSON or YAML file of variables (repeatable)",
	)

	flag.Var(
		&imports,
		"imports",
		"Import in NAME=filename format (repeatable)",
	)

	flag.StringVar(
		&output, "output", "",
		"Output file path (stdout if empty)",
	)

	flag.StringVar(
		&tpl, "template", "",
		"Input template file path (stdin if empty)",
	)

	flag.BoolVar(
		&executable, "executable", false,
		"Set executable bit on output file",
	)

	flag.StringVar(
		&startTag, "start_tag", "{{",
		"Start tag for template placeholders",
	)

	flag.StringVar(
		&endTag, "end_tag", "}}",
		"End tag for template placeholders",
	)

	flag.IntVar(
		&maxIterations, "max_iterations",
		templating.DefaultMaxIterations,
		"Maximum placeholder replacements per render and concatenation merges per expression",
	)

	flag.BoolVar(
		&stringResults, "string_results", false,
		"Render expressions that reduce to a quoted literal as that literal",
	)

	flag.BoolVar(
		&digest, "digest", false,
		"Keep a .digest sidecar and skip unchanged outputs",
	)

	flag.BoolVar(
		&verbose, "verbose", false,
		"Log every evaluated placeholder",
	)

	flag.Parse()

	if verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	vars, err := variables.Sources{
		StampInfoFiles: stampInfoFile,
		Files:          variablesFile,
		Assignments:    variable,
		Imports:        imports,
	}.Load()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	en := templating.Engine{
		StartTag:      startTag,
		EndTag:        endTag,
		MaxIterations: maxIterations,
		StringResults: stringResults,
		Digest:        digest,
	}

	if err := en.Expand(
		tpl, output, vars, executable,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
