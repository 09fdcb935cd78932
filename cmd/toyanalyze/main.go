// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"github.com/LucaBru/abstract-interpreter/internal/annotate"
	"github.com/LucaBru/abstract-interpreter/internal/ast"
	"github.com/LucaBru/abstract-interpreter/internal/config"
	"github.com/LucaBru/abstract-interpreter/internal/errors"
	"github.com/LucaBru/abstract-interpreter/internal/interp"
	"github.com/LucaBru/abstract-interpreter/grammar"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: toyanalyze <file.toy>")
		os.Exit(1)
	}

	path := os.Args[1]

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		os.Exit(1)
	}

	parsed, err := grammar.ParseSource(path, string(source))
	if err != nil {
		reportParseError(path, string(source), err)
		os.Exit(1)
	}

	prog := ast.Build(parsed)
	cfg := config.Load()
	in := interp.New(cfg)
	_, invariants := in.Run(prog)

	annotated := annotate.Annotate(string(source), prog, invariants)

	outPath := path + ".analysis"
	if err := os.WriteFile(outPath, []byte(annotated), 0o644); err != nil {
		color.Red("failed to write %s: %s", outPath, err)
		os.Exit(1)
	}

	color.Green("✅ analyzed %s -> %s", path, outPath)
}

// reportParseError prints a caret-style parse error using this project's
// own error reporter, falling back to the raw message if the error
// isn't one participle attached a source position to.
func reportParseError(path, source string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}

	reporter := errors.NewErrorReporter(path, source)
	pos := pe.Position()
	fmt.Print(reporter.FormatError(errors.CompilerError{
		Level:    errors.Error,
		Message:  strings.TrimSpace(pe.Message()),
		Position: ast.Position{Filename: pos.Filename, Offset: pos.Offset, Line: pos.Line, Column: pos.Column},
		Length:   1,
	}))
}
