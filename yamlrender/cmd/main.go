// Package main provides the yaml_render CLI that reads
// multi-document YAML, renders {{expr}} placeholders in its
// string values, and writes the result.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonp92/TemplateTango/templating"
	"github.com/jonp92/TemplateTango/variables"
	"github.com/jonp92/TemplateTango/yamlrender"
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
	const errCtx = "yaml_render"

	var (
		inFile        string
		outFile       string
		stampInfoFile arrayFlags
		variable      arrayFlags
		variablesFile arrayFlags
		imports       arrayFlags
		startTag      string
		endTag        string
		maxIterations int
		stringResults bool
		verbose       bool
	)

	flag.StringVar(
		&inFile, "infile", "",
		"input YAML file path",
	)

	flag.StringVar(
		&outFile, "outfile", "",
		"output YAML file path",
	)

	flag.Var(
		&stampInfoFile, "stamp_info_file",
		"stamp info file path (repeatable)",
	)

	flag.Var(
		&variable, "variable",
		"variable in NAME=VALUE format (repeatable)",
	)

	flag.Var(
		&variablesFile, "variables_file",
		"JSON or YAML file of variables (repeatable)",
	)

	flag.Var(
		&imports, "imports",
		"import in NAME=filename format (repeatable)",
	)

	flag.StringVar(
		&startTag, "start_tag", "{{",
		"start tag for template placeholders",
	)

	flag.StringVar(
		&endTag, "end_tag", "}}",
		"end tag for template placeholders",
	)

	flag.IntVar(
		&maxIterations, "max_iterations",
		templating.DefaultMaxIterations,
		"maximum placeholder replacements per value and concatenation merges per expression",
	)

	flag.BoolVar(
		&stringResults, "string_results", false,
		"render expressions that reduce to a quoted literal as that literal",
	)

	flag.BoolVar(
		&verbose, "verbose", false,
		"log every evaluated placeholder",
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

	inReader := os.Stdin

	if inFile != "" {
		fi, err := os.Open(inFile) //nolint:gosec // path from CLI flag
		if err != nil {
			return fmt.Errorf(
				"%s: opening input: %w",
				errCtx, err,
			)
		}

		defer fi.Close() //nolint:errcheck // best-effort close

		inReader = fi
	}

	outWriter := os.Stdout

	if outFile != "" {
		fo, err := os.Create(outFile) //nolint:gosec // path from CLI flag
		if err != nil {
			return fmt.Errorf(
				"%s: creating output: %w",
				errCtx, err,
			)
		}

		defer fo.Close() //nolint:errcheck // best-effort close

		outWriter = fo
	}

	en := &templating.Engine{
		StartTag:      startTag,
		EndTag:        endTag,
		MaxIterations: maxIterations,
		StringResults: stringResults,
	}

	if err := yamlrender.RenderDocuments(
		inReader, outWriter, en, vars,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info("rendered yaml", "infile", inFile, "variables", len(vars))

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
